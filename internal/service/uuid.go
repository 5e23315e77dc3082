package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidUUID indicates the string is not a valid UUID format
	ErrInvalidUUID = errors.New("invalid UUID format")
	// ErrNotUUIDv7 indicates the UUID is not version 7
	ErrNotUUIDv7 = errors.New("UUID must be version 7")
	// ErrFutureTimestamp indicates the UUIDv7 timestamp is too far in the future
	ErrFutureTimestamp = errors.New("UUID timestamp is too far in the future")
)

// MaxFutureSkew is how far ahead of the server clock a client-generated id may be
const MaxFutureSkew = time.Minute

// NewID returns a fresh UUIDv7. Ids sort by creation time, which the
// badger and SQL stores rely on for insertion order.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails if the random source does
		return uuid.NewString()
	}
	return id.String()
}

// ValidateUUIDv7 checks a client-supplied id: it must parse, be version 7,
// and not embed a timestamp more than MaxFutureSkew ahead.
func ValidateUUIDv7(id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidUUID, err)
	}

	if parsed.Version() != 7 {
		return fmt.Errorf("%w: got version %d", ErrNotUUIDv7, parsed.Version())
	}

	timestamp := ExtractUUIDv7Timestamp(id)
	if timestamp.After(time.Now().Add(MaxFutureSkew)) {
		return fmt.Errorf("%w: %v", ErrFutureTimestamp, timestamp.Format(time.RFC3339))
	}

	return nil
}

// ExtractUUIDv7Timestamp returns the creation time embedded in a UUIDv7,
// or the zero time if id does not parse.
func ExtractUUIDv7Timestamp(id string) time.Time {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return time.Time{}
	}
	sec, nsec := parsed.Time().UnixTime()
	return time.Unix(sec, nsec)
}

// resolveID validates a client-supplied id or generates one
func resolveID(id string) (string, error) {
	if id == "" {
		return NewID(), nil
	}
	if err := ValidateUUIDv7(id); err != nil {
		return "", &ValidationError{Field: "id", Message: err.Error()}
	}
	return id, nil
}
