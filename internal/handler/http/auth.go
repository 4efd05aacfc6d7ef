package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/nilehr/attendance-backend-go/internal/domain/auth"
	"github.com/nilehr/attendance-backend-go/internal/handler/http/response"
	"github.com/nilehr/attendance-backend-go/internal/pkg/jwt"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService  jwt.Service
	authService auth.AuthService
}

func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:  jwtService,
		authService: authService,
	}
}

// employeeIDFromContext pulls the authenticated employee's ID out of the
// verified JWT claims.
func employeeIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", auth.ErrInvalidToken
	}
	employeeID, ok := claims["user_id"].(string)
	if !ok || employeeID == "" {
		return "", auth.ErrInvalidToken
	}
	return employeeID, nil
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tokenResponse, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	refreshTokenCookie := a.jwtService.RefreshTokenCookie(tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn)
	http.SetCookie(w, refreshTokenCookie)
	slog.Info("Employee logged in", "employee_id", tokenResponse.EmployeeID)
	response.Created(w, "Logged in successfully", tokenResponse)
}

// RefreshToken implements AuthHandler. The token is taken from the request
// body, falling back to the refresh cookie.
func (a *AuthHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var refreshReq auth.RefreshTokenRequest
	_ = json.NewDecoder(r.Body).Decode(&refreshReq)

	if refreshReq.RefreshToken == "" {
		if cookie, err := r.Cookie("refresh_token"); err == nil {
			refreshReq.RefreshToken = cookie.Value
		}
	}

	tokenResponse, err := a.authService.Refresh(r.Context(), refreshReq)
	if err != nil {
		slog.Error("RefreshToken service error", "error", err)
		response.HandleError(w, err)
		return
	}

	refreshTokenCookie := a.jwtService.RefreshTokenCookie(tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn)
	http.SetCookie(w, refreshTokenCookie)
	response.Success(w, tokenResponse)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	var logoutReq auth.RefreshTokenRequest
	_ = json.NewDecoder(r.Body).Decode(&logoutReq)

	if logoutReq.RefreshToken == "" {
		if cookie, err := r.Cookie("refresh_token"); err == nil {
			logoutReq.RefreshToken = cookie.Value
		}
	}

	if err := a.authService.Logout(r.Context(), logoutReq); err != nil {
		slog.Error("Logout service error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Expire the cookie
	expired := a.jwtService.RefreshTokenCookie("", 0)
	http.SetCookie(w, expired)
	response.SuccessWithMessage(w, "Logged out successfully", nil)
}

// ChangePassword implements AuthHandler.
func (a *AuthHandlerImpl) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var changeReq auth.ChangePasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&changeReq); err != nil {
		slog.Error("ChangePassword decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	employeeID, err := employeeIDFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	changeReq.EmployeeID = employeeID

	if err := a.authService.ChangePassword(r.Context(), changeReq); err != nil {
		slog.Error("ChangePassword service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Password changed", "employee_id", employeeID)
	response.SuccessWithMessage(w, "Password changed successfully", nil)
}
