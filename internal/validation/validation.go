package validation

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/Rahul-Chotaliya/tradehub/internal/apperrors"
)

// Common validation errors
var (
	ErrInvalidUUID = fmt.Errorf("%w: invalid UUID format", apperrors.ErrValidation)
	ErrInvalidSlug = fmt.Errorf("%w: invalid slug format", apperrors.ErrValidation)
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

// ValidateSlug checks that s is a lowercase, hyphen-separated slug of at most 100 characters.
func ValidateSlug(s string) error {
	if len(s) == 0 || len(s) > 100 || !slugPattern.MatchString(s) {
		return fmt.Errorf("%w: %q", ErrInvalidSlug, s)
	}
	return nil
}

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse("2006-01-02", str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return returnTime.UTC(), nil
}
