package domain

import (
	"context"
	"time"
)

// Member represents a gym member of one tenant.
// swagger:model Member
type Member struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	PlanID    *string   `json:"plan_id,omitempty"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	JoinedAt  time.Time `json:"joined_at"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewMember returns a new Member with the given fields. ID is set by the repository on create.
func NewMember(tenantID string, planID *string, firstName, lastName, email, phone string, joinedAt time.Time, createdAt, updatedAt time.Time) *Member {
	return &Member{
		TenantID:  tenantID,
		PlanID:    planID,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     phone,
		JoinedAt:  joinedAt,
		Active:    true,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// MemberRepository defines the interface for member storage.
type MemberRepository interface {
	Create(ctx context.Context, member *Member) error
	GetByID(ctx context.Context, tenantID, id string) (*Member, error)
	// List returns one page of members matching the search term (name or
	// email, case-insensitive) together with the total match count.
	List(ctx context.Context, tenantID, search string, params PaginationParams) ([]*Member, int, error)
	Update(ctx context.Context, member *Member) error
	Delete(ctx context.Context, tenantID, id string) error
}

// MemberService defines the business logic for member management.
type MemberService interface {
	Create(ctx context.Context, member *Member) error
	GetByID(ctx context.Context, tenantID, id string) (*Member, error)
	List(ctx context.Context, tenantID, search string, params PaginationParams) ([]*Member, int, error)
	Update(ctx context.Context, member *Member) (*Member, error)
	Delete(ctx context.Context, tenantID, id string) error
}
