package auth

import (
	"strings"

	"github.com/nilehr/attendance-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Username = strings.ToLower(strings.TrimSpace(r.Username))
	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordRequest struct {
	EmployeeID      string `json:"-"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r *ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CurrentPassword) {
		errs = append(errs, validator.ValidationError{
			Field:   "current_password",
			Message: "current_password is required",
		})
	}

	if len(r.NewPassword) < 6 {
		errs = append(errs, validator.ValidationError{
			Field:   "new_password",
			Message: "new_password must be at least 6 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in"`
	EmployeeID            string `json:"employee_id"`
	FullName              string `json:"full_name"`
	Role                  string `json:"role"`
}
