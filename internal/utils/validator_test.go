package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"a@b.com", true},
		{"first.last+tag@example.co.uk", true},
		{"missing-at.com", false},
		{"a@b", false},
		{"  Mixed@Example.COM ", true},
		{"a@b..com", false},
		{"a@" + strings.Repeat("x", 250) + ".com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateEmail(tt.email))
		})
	}
}

func TestSanitizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.com", SanitizeEmail("  A@B.com "))
}

func TestGenerateRandomToken(t *testing.T) {
	first, err := GenerateRandomToken(32)
	assert.NoError(t, err)
	assert.Len(t, first, 64)

	second, err := GenerateRandomToken(32)
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}
