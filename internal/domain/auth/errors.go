package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInvalidToken        = errors.New("invalid or missing token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenRevoked = errors.New("refresh token revoked")
	ErrWrongPassword       = errors.New("current password is incorrect")
)
