package domain

import (
	"context"
	"time"

	"gymadmin/internal/schedule"
)

// GenerateProgramInput describes a bulk generation request: one weekly
// recurrence rule applied to a class, with the optional per-session fields.
type GenerateProgramInput struct {
	ClassID           string
	Rule              schedule.GenerationRequest
	Capacity          *int
	CancelBeforeHours *int
}

// ProgramGenerationResult reports what a generation request produced.
// Created is zero, with no error, when no date in range matched the weekday.
type ProgramGenerationResult struct {
	Created  int        `json:"created"`
	Sessions []*Session `json:"sessions"`
}

// DeleteProgramInput describes a bulk deletion request against one class.
type DeleteProgramInput struct {
	ClassID string
	Request schedule.DeletionRequest
}

// ProgramDeletionResult reports which sessions a deletion request matched and
// how many rows the storage layer removed.
type ProgramDeletionResult struct {
	Matched []string `json:"matched"`
	Deleted int64    `json:"deleted"`
}

// ProgramService defines the scheduling logic: recurring program generation,
// conflict-gated ad-hoc session creation, range deletion, and calendar reads.
type ProgramService interface {
	GenerateProgram(ctx context.Context, tenantID string, in GenerateProgramInput) (*ProgramGenerationResult, error)
	// CreateSession inserts one ad-hoc session after checking it against
	// existing sessions of the same class; overlap yields a *ConflictError.
	CreateSession(ctx context.Context, tenantID string, session *Session) (*Session, error)
	// DeleteProgram removes the sessions matching the request and returns
	// ErrNoMatch when the filters selected nothing.
	DeleteProgram(ctx context.Context, tenantID string, in DeleteProgramInput) (*ProgramDeletionResult, error)
	ListSessions(ctx context.Context, tenantID string, filter SessionFilter) ([]*Session, error)
	UpdateSession(ctx context.Context, tenantID, sessionID string, startsAt, endsAt *time.Time, capacity, cancelBeforeHours *int) (*Session, error)
	DeleteSession(ctx context.Context, tenantID, sessionID string) error
}
