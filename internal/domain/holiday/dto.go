package holiday

import (
	"github.com/nilehr/attendance-backend-go/internal/pkg/validator"
)

type AddHolidayRequest struct {
	Date        string `json:"date"` // YYYY-MM-DD
	Name        string `json:"name"`
	HolidayType string `json:"holiday_type"`
}

func (r *AddHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if r.HolidayType == "" {
		r.HolidayType = string(TypePublic) // Default type
	}
	if !validator.IsInSlice(r.HolidayType, []string{string(TypePublic), string(TypeCompany)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "holiday_type",
			Message: "holiday_type must be one of: public, company",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type HolidayResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Name        string `json:"name"`
	HolidayType string `json:"holiday_type"`
}

func ToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID,
		Date:        h.Date.Format("2006-01-02"),
		Name:        h.Name,
		HolidayType: string(h.HolidayType),
	}
}
