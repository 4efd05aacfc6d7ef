package auth

import (
	"context"
)

// RefreshTokenRepository persists issued refresh tokens so they can be
// revoked on logout.
type RefreshTokenRepository interface {
	// Store saves a refresh token with its unix expiry
	Store(ctx context.Context, employeeID, token string, expiresAt int64) error

	// IsValid reports whether a token exists, is not revoked and not expired
	IsValid(ctx context.Context, token string) (bool, error)

	// Revoke marks a token revoked
	Revoke(ctx context.Context, token string) error

	// RevokeAllForEmployee revokes every token of one employee
	RevokeAllForEmployee(ctx context.Context, employeeID string) error
}
