package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/nilehr/attendance-backend-go/internal/domain/auth"
	"github.com/nilehr/attendance-backend-go/internal/pkg/database"
)

type refreshTokenRepository struct {
	db *database.DB
}

func NewRefreshTokenRepository(db *database.DB) auth.RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

// Store implements auth.RefreshTokenRepository.
func (r *refreshTokenRepository) Store(ctx context.Context, employeeID, token string, expiresAt int64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO refresh_tokens (employee_id, token, expires_at)
		VALUES ($1, $2, $3)
	`

	if _, err := q.Exec(ctx, query, employeeID, token, time.Unix(expiresAt, 0)); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	return nil
}

// IsValid implements auth.RefreshTokenRepository.
func (r *refreshTokenRepository) IsValid(ctx context.Context, token string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM refresh_tokens
			WHERE token = $1
			  AND revoked_at IS NULL
			  AND expires_at > NOW()
		)
	`

	var valid bool
	if err := q.QueryRow(ctx, query, token).Scan(&valid); err != nil {
		return false, fmt.Errorf("failed to check refresh token: %w", err)
	}

	return valid, nil
}

// Revoke implements auth.RefreshTokenRepository.
func (r *refreshTokenRepository) Revoke(ctx context.Context, token string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx,
		`UPDATE refresh_tokens SET revoked_at = NOW() WHERE token = $1 AND revoked_at IS NULL`,
		token,
	); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return nil
}

// RevokeAllForEmployee implements auth.RefreshTokenRepository.
func (r *refreshTokenRepository) RevokeAllForEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx,
		`UPDATE refresh_tokens SET revoked_at = NOW() WHERE employee_id = $1 AND revoked_at IS NULL`,
		employeeID,
	); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}

	return nil
}
