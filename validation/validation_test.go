package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.domain.org",
		"name+tag@example.co",
	}
	for _, email := range valid {
		assert.NoError(t, ValidateEmail(email), email)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@missing-user.com",
		"user@",
		"user@domain",
		strings.Repeat("a", 250) + "@x.com",
	}
	for _, email := range invalid {
		assert.Error(t, ValidateEmail(email), email)
	}
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("alice"))
	assert.NoError(t, ValidateUsername("user_42"))
	assert.NoError(t, ValidateUsername("kebab-case"))

	assert.Error(t, ValidateUsername("ab"), "too short")
	assert.Error(t, ValidateUsername(strings.Repeat("x", 31)), "too long")
	assert.Error(t, ValidateUsername("spaces not allowed"))
	assert.Error(t, ValidateUsername("dots.not.allowed"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("password123"))
	assert.NoError(t, ValidatePassword("12345678"))

	assert.Error(t, ValidatePassword("short"), "too short")
	assert.Error(t, ValidatePassword(strings.Repeat("p", 129)), "too long")
}
