package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("a"))
	assert.False(t, IsEmpty(" a "))
}

func TestIsValidUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		want     bool
	}{
		{"valid simple", "john", true},
		{"valid with underscore", "john_doe", true},
		{"valid with digits", "user123", true},
		{"minimum length", "abc", true},
		{"too short", "ab", false},
		{"empty", "", false},
		{"with dash", "john-doe", false},
		{"with space", "john doe", false},
		{"with dot", "john.doe", false},
		{"non ascii", "jöhn", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidUsername(tt.username))
		})
	}
}

func TestIsValidDate(t *testing.T) {
	_, ok := IsValidDate("2024-01-15")
	assert.True(t, ok)

	_, ok = IsValidDate("2024-13-01")
	assert.False(t, ok)

	_, ok = IsValidDate("15-01-2024")
	assert.False(t, ok)

	_, ok = IsValidDate("")
	assert.False(t, ok)
}

func TestIsValidDateTime(t *testing.T) {
	_, ok := IsValidDateTime("2024-01-15T10:30:00Z")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2024-01-15T10:30:00+07:00")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2024-01-15 10:30:00")
	assert.False(t, ok)

	_, ok = IsValidDateTime("2024-01-15")
	assert.False(t, ok)
}

func TestValidationErrorsError(t *testing.T) {
	errs := ValidationErrors{
		{Field: "username", Message: "username is required"},
		{Field: "password", Message: "password too short"},
	}

	assert.Equal(t, "username: username is required; password: password too short", errs.Error())
	assert.Equal(t, map[string]string{
		"username": "username is required",
		"password": "password too short",
	}, errs.ToMap())
}
