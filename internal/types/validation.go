package types

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

// ------------------------------
// Shared Errors
// ------------------------------

// ErrNotFound is returned when the store has no entry for the given id.
var ErrNotFound = errors.New("entry not found")

// userIDRegex validates user ids: 1-64 characters, letters, digits,
// underscore and hyphen. The anonymous placeholder id satisfies it too.
var userIDRegex = regexp.MustCompile(`^[A-Za-z0-9_\-]{1,64}$`)

// ValidateUserID validates a store user id.
func ValidateUserID(userID string) error {
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	if !userIDRegex.MatchString(userID) {
		return fmt.Errorf("user id must be 1-64 characters containing only letters, digits, underscore, and hyphen")
	}
	return nil
}

// ValidateEntryID validates a store-assigned entry id (UUID format).
func ValidateEntryID(id string) error {
	if id == "" {
		return fmt.Errorf("entry id is required")
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("entry id must be a valid UUID")
	}
	return nil
}

// ValidatePage bounds pagination parameters. Zero values are allowed and
// resolved to defaults by the caller.
func ValidatePage(page, pageSize int) error {
	if page < 0 {
		return fmt.Errorf("page must be >= 1")
	}
	if pageSize < 0 || pageSize > 100 {
		return fmt.Errorf("page size must be between 1 and 100")
	}
	return nil
}
