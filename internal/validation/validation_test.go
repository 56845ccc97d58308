package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		login string
		ok    bool
	}{
		{"abc", true},
		{"user_42", true},
		{strings.Repeat("a", 50), true},
		{"ab", false},
		{strings.Repeat("a", 51), false},
		{"has space", false},
		{"dash-ed", false},
		{"кириллица", false},
		{"", false},
	}

	for _, tt := range tests {
		err := ValidateLogin(tt.login)
		if tt.ok {
			assert.NoError(t, err, "login %q", tt.login)
		} else {
			assert.Error(t, err, "login %q", tt.login)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("user@example.com"))
	assert.NoError(t, ValidateEmail("u.ser+tag@sub.example.co"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("@example.com"))
	assert.Error(t, ValidateEmail("user@"))
	assert.Error(t, ValidateEmail(""))
}

// Handlers rely on errors.As to tell input-shape failures apart from
// internal ones.
func TestValidationFailuresAreTyped(t *testing.T) {
	var vErr *Error
	assert.ErrorAs(t, ValidateLogin("x"), &vErr)
	assert.ErrorAs(t, ValidateEmail("not-an-email"), &vErr)
	assert.ErrorAs(t, ValidatePassword("short"), &vErr)
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("secret"))
	assert.NoError(t, ValidatePassword(strings.Repeat("x", 72)))
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 73)))
}
