package jwt

import (
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/nilehr/attendance-backend-go/internal/domain/employee"
)

type Service interface {
	GenerateAccessToken(employeeID string, username string, role employee.Role) (token string, expiresAt int64, err error)
	GenerateRefreshToken(employeeID string) (token string, expiresAt int64, err error)
	ValidateRefreshToken(tokenString string) (employeeID string, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
}

type JWTService struct {
	secretKey                  string
	accessTokenExpirationTime  string
	refreshTokenExpirationTime string
	tokenAuth                  *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string, refreshTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                  secretKey,
		accessTokenExpirationTime:  accessTokenExpirationTime,
		refreshTokenExpirationTime: refreshTokenExpirationTime,
		tokenAuth:                  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(employeeID string, username string, role employee.Role) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id":  employeeID,
		"username": username,
		"role":     string(role),
		"type":     "access",
		"exp":      expiresAt,
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateRefreshToken(employeeID string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.refreshTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()
	// jti keeps every issued token distinct even within the same second,
	// so rotation never re-mints the string it just revoked.
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": employeeID,
		"exp":     expiresAt,
		"type":    "refresh",
		"jti":     uuid.NewString(),
	})
	return tokenString, expiresAt, err
}

// ValidateRefreshToken decodes a refresh token and returns its subject
func (j *JWTService) ValidateRefreshToken(tokenString string) (employeeID string, err error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "refresh" {
		return "", jwt.ErrInvalidJWT()
	}

	userIDVal, ok := token.Get("user_id")
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}

	employeeID, ok = userIDVal.(string)
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}

	return employeeID, nil
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
	}
}
