package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nilehr/attendance-backend-go/internal/domain/auth"
	"github.com/nilehr/attendance-backend-go/internal/domain/employee"
	"github.com/nilehr/attendance-backend-go/internal/pkg/database"
	"github.com/nilehr/attendance-backend-go/internal/pkg/jwt"
	"github.com/nilehr/attendance-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db           *database.DB
	employeeRepo employee.EmployeeRepository
	tokenRepo    auth.RefreshTokenRepository
	jwtService   jwt.Service
}

func NewAuthService(
	db *database.DB,
	employeeRepo employee.EmployeeRepository,
	tokenRepo auth.RefreshTokenRepository,
	jwtService jwt.Service,
) auth.AuthService {
	return &AuthServiceImpl{
		db:           db,
		employeeRepo: employeeRepo,
		tokenRepo:    tokenRepo,
		jwtService:   jwtService,
	}
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, emp employee.Employee) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse
	tokenResponse.EmployeeID = emp.ID
	tokenResponse.FullName = emp.FullName
	tokenResponse.Role = string(emp.Role)

	err := postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.jwtService.GenerateAccessToken(emp.ID, emp.Username, emp.Role)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.jwtService.GenerateRefreshToken(emp.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		if err := a.tokenRepo.Store(txCtx, emp.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn); err != nil {
			return fmt.Errorf("failed to save refresh token: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	emp, err := a.employeeRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get employee by username: %w", err)
	}

	if !emp.IsActive {
		return auth.TokenResponse{}, employee.ErrEmployeeInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, emp)
}

// Refresh implements auth.AuthService.
func (a *AuthServiceImpl) Refresh(ctx context.Context, req auth.RefreshTokenRequest) (auth.TokenResponse, error) {
	if req.RefreshToken == "" {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	employeeID, err := a.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	valid, err := a.tokenRepo.IsValid(ctx, req.RefreshToken)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	if !valid {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	emp, err := a.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	if !emp.IsActive {
		return auth.TokenResponse{}, employee.ErrEmployeeInactive
	}

	// Rotate: the old token dies with the new issue
	if err := a.tokenRepo.Revoke(ctx, req.RefreshToken); err != nil {
		return auth.TokenResponse{}, err
	}

	return a.issueTokens(ctx, emp)
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, req auth.RefreshTokenRequest) error {
	if req.RefreshToken == "" {
		return auth.ErrInvalidToken
	}
	return a.tokenRepo.Revoke(ctx, req.RefreshToken)
}

// ChangePassword implements auth.AuthService.
func (a *AuthServiceImpl) ChangePassword(ctx context.Context, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	emp, err := a.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := a.employeeRepo.UpdatePassword(txCtx, emp.ID, string(hash)); err != nil {
			return err
		}

		// Force re-login everywhere
		return a.tokenRepo.RevokeAllForEmployee(txCtx, emp.ID)
	})
}
