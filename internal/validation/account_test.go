package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		valid    bool
	}{
		{"Valid simple", "testuser", true},
		{"Valid with digits", "user123", true},
		{"Valid with underscore", "test_user", true},
		{"Too short", "ab", false},
		{"Too long", strings.Repeat("a", 31), false},
		{"Invalid characters", "user name", false},
		{"Leading underscore", "_user", false},
		{"Trailing hyphen", "user-", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("test@example.com"))
	assert.NoError(t, ValidateEmail("a.b+c@sub.domain.org"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("missing@tld"))
	assert.Error(t, ValidateEmail("@example.com"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("sup3rsecret"))
	assert.Error(t, ValidatePassword("short1"))
	assert.Error(t, ValidatePassword("allletters"))
	assert.Error(t, ValidatePassword("12345678"))
	assert.Error(t, ValidatePassword(strings.Repeat("a1", 65)))
}
