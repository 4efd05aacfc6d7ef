package auth

import (
	"context"
)

// AuthService defines authentication business logic
type AuthService interface {
	// Login verifies credentials and issues access and refresh tokens
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// Refresh exchanges a valid refresh token for a new token pair
	Refresh(ctx context.Context, req RefreshTokenRequest) (TokenResponse, error)

	// Logout revokes the presented refresh token
	Logout(ctx context.Context, req RefreshTokenRequest) error

	// ChangePassword verifies the current password, stores a new hash and
	// revokes all outstanding refresh tokens
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
}
