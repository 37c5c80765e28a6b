package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUserID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr string
	}{
		{"registered shape", "u_3f9a1c2b", ""},
		{"plain alphanumeric", "alice42", ""},
		{"hyphenated", "user-one", ""},
		{"empty", "", "user id cannot be empty"},
		{"too long", strings.Repeat("a", 101), "user id too long (max 100 characters)"},
		{"exactly max length", strings.Repeat("a", 100), ""},
		{"path traversal", "../etc/passwd", "user id contains invalid characters"},
		{"whitespace", "u 1", "user id contains invalid characters"},
		{"sql-ish", "u';--", "user id contains invalid characters"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateUserID(tc.id)
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tc.wantErr)
			}
		})
	}
}
