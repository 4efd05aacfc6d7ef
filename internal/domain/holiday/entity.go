package holiday

import "time"

type HolidayType string

const (
	TypePublic  HolidayType = "public"
	TypeCompany HolidayType = "company"
)

type Holiday struct {
	ID          string
	Date        time.Time // date only
	Name        string
	HolidayType HolidayType
	CreatedAt   time.Time
}
