package domain

import (
	"context"
	"time"
)

// CheckIn represents a member walking in, optionally into a specific session.
// swagger:model CheckIn
type CheckIn struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	MemberID    string    `json:"member_id"`
	SessionID   *string   `json:"session_id,omitempty"`
	CheckedInAt time.Time `json:"checked_in_at"`
}

// NewCheckIn returns a new CheckIn with the given fields. ID is set by the repository on create.
func NewCheckIn(tenantID, memberID string, sessionID *string, checkedInAt time.Time) *CheckIn {
	return &CheckIn{
		TenantID:    tenantID,
		MemberID:    memberID,
		SessionID:   sessionID,
		CheckedInAt: checkedInAt,
	}
}

// CheckInRepository defines the interface for check-in storage.
type CheckInRepository interface {
	Create(ctx context.Context, checkIn *CheckIn) error
	CountBySession(ctx context.Context, tenantID, sessionID string) (int, error)
	ListByMember(ctx context.Context, tenantID, memberID string) ([]*CheckIn, error)
}

// CheckInService defines the business logic for member check-ins.
type CheckInService interface {
	// CheckIn records a visit. The member must be active; when sessionID is
	// given the session must belong to the tenant and have free capacity.
	CheckIn(ctx context.Context, tenantID, memberID string, sessionID *string) (*CheckIn, error)
	ListByMember(ctx context.Context, tenantID, memberID string) ([]*CheckIn, error)
}
