package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// MaxIDLength bounds transaction IDs, matching the id column width.
const MaxIDLength = 64

// Common validation errors
var (
	ErrInvalidID   = fmt.Errorf("invalid ID")
	ErrInvalidDate = fmt.Errorf("invalid date")
)

// ValidateID checks that a transaction ID is present, bounded, and printable.
// IDs are opaque: records imported from the remote store need not be UUIDs.
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: ID cannot be empty", ErrInvalidID)
	}
	if len(id) > MaxIDLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidID, MaxIDLength)
	}
	for _, r := range id {
		if !unicode.IsPrint(r) {
			return fmt.Errorf("%w: contains non-printable characters", ErrInvalidID)
		}
	}
	return nil
}

// ParseTime parses a date in RFC3339 (with optional fractional seconds) or
// YYYY-MM-DD format and returns it in UTC.
func ParseTime(str string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: cannot parse %q as a date or datetime", ErrInvalidDate, str)
}
