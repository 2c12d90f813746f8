package domain

import (
	"context"
	"time"
)

// Session represents one concrete scheduled occurrence of a class. StartsAt
// and EndsAt are absolute instants; EndsAt is always strictly after StartsAt,
// and overlap comparisons treat [StartsAt, EndsAt) as half-open.
// swagger:model Session
type Session struct {
	ID                string    `json:"id"`
	TenantID          string    `json:"tenant_id"`
	ClassID           string    `json:"class_id"`
	StartsAt          time.Time `json:"starts_at"`
	EndsAt            time.Time `json:"ends_at"`
	Capacity          *int      `json:"capacity,omitempty"`
	CancelBeforeHours *int      `json:"cancel_before_hours,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewSession returns a new Session with the given fields.
func NewSession(tenantID, classID string, startsAt, endsAt time.Time, capacity, cancelBeforeHours *int, createdAt, updatedAt time.Time) *Session {
	return &Session{
		TenantID:          tenantID,
		ClassID:           classID,
		StartsAt:          startsAt,
		EndsAt:            endsAt,
		Capacity:          capacity,
		CancelBeforeHours: cancelBeforeHours,
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
	}
}

// Valid reports whether the session interval is well-formed and the optional
// numeric fields are non-negative.
func (s *Session) Valid() bool {
	if !s.EndsAt.After(s.StartsAt) {
		return false
	}
	if s.Capacity != nil && *s.Capacity < 0 {
		return false
	}
	if s.CancelBeforeHours != nil && *s.CancelBeforeHours < 0 {
		return false
	}
	return true
}

// SessionFilter narrows session queries. The zero value matches every session
// of the tenant.
type SessionFilter struct {
	ClassID string // empty matches all classes
	From    *time.Time
	To      *time.Time // exclusive upper bound on starts_at
}

// SessionRepository defines the storage boundary for sessions.
type SessionRepository interface {
	Insert(ctx context.Context, session *Session) error
	// InsertMany persists the whole batch in one statement and rejects the
	// batch as a whole when any payload has an invalid interval.
	InsertMany(ctx context.Context, sessions []*Session) error
	Find(ctx context.Context, tenantID string, filter SessionFilter) ([]*Session, error)
	// FindOverlapping returns sessions of the class whose half-open interval
	// intersects [startsAt, endsAt). excludeID, when non-empty, omits that
	// session from the result (used when rescheduling).
	FindOverlapping(ctx context.Context, tenantID, classID string, startsAt, endsAt time.Time, excludeID string) ([]*Session, error)
	GetByID(ctx context.Context, tenantID, id string) (*Session, error)
	Update(ctx context.Context, session *Session) error
	Delete(ctx context.Context, tenantID, id string) error
	// DeleteMany removes the given sessions and returns how many rows were
	// actually deleted.
	DeleteMany(ctx context.Context, tenantID string, ids []string) (int64, error)
}
