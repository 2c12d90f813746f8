package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across repositories and services.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoMatch is returned by program deletion when the filters matched zero
	// sessions. Deleting nothing is a distinct outcome, not a silent success.
	ErrNoMatch = errors.New("no sessions matched the given filters")

	ErrDuplicateEmail = errors.New("email already in use")
	ErrSessionFull    = errors.New("session is at capacity")
	ErrMemberInactive = errors.New("member is not active")
)

// ConflictError is returned when a candidate session interval overlaps
// existing sessions of the same class. It carries the conflicting rows so the
// caller can display them.
type ConflictError struct {
	Conflicts []*Session
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("session overlaps %d existing session(s)", len(e.Conflicts))
}
