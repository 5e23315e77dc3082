package service

import (
	"errors"
	"fmt"

	"github.com/whoamaiii/kreativium/backend/internal/repository"
)

var (
	// ErrNotFound is matched by every *NotFoundError
	ErrNotFound = errors.New("not found")
	// ErrOwnershipMismatch is matched by every *OwnershipMismatchError
	ErrOwnershipMismatch = errors.New("ownership mismatch")
	// ErrForbidden means the actor may not touch another user's records
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput is matched by every *ValidationError
	ErrInvalidInput = errors.New("invalid input")
	// ErrConflict is matched by every *ConflictError
	ErrConflict = errors.New("conflict")
)

// NotFoundError names the entity that a request referenced but the store
// does not hold.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConflictError is returned when a client-supplied id is already taken
type ConflictError struct {
	Entity string
	ID     string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %s already exists", e.Entity, e.ID)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// OwnershipMismatchError is returned when a link would join records of two
// different users.
type OwnershipMismatchError struct {
	ObservationUserID string
	ActivityUserID    string
}

func (e *OwnershipMismatchError) Error() string {
	return fmt.Sprintf("observation belongs to user %s but activity belongs to user %s",
		e.ObservationUserID, e.ActivityUserID)
}

func (e *OwnershipMismatchError) Is(target error) bool { return target == ErrOwnershipMismatch }

// ValidationError reports a single invalid request field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// createErr maps a duplicate id onto a *ConflictError and wraps anything else
func createErr(err error, entity, id string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return &ConflictError{Entity: entity, ID: id}
	}
	return fmt.Errorf("failed to record %s: %w", entity, err)
}

// notFoundOr turns a repository miss into a *NotFoundError and wraps any
// other store error.
func notFoundOr(err error, entity, id string) error {
	if errors.Is(err, repository.ErrRecordNotFound) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return fmt.Errorf("failed to get %s: %w", entity, err)
}
