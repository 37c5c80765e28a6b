package utils

import (
	"errors"
	"regexp"
)

// Allow alphanumeric, underscore, hyphen - the shape of registered user IDs
var validUserIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateUserID validates that a path user ID is safe and within reasonable
// limits before it reaches storage or auth lookups.
func ValidateUserID(id string) error {
	if id == "" {
		return errors.New("user id cannot be empty")
	}

	if len(id) > 100 {
		return errors.New("user id too long (max 100 characters)")
	}

	if !validUserIDPattern.MatchString(id) {
		return errors.New("user id contains invalid characters")
	}

	return nil
}
