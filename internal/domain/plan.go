package domain

import (
	"context"
	"time"
)

// Plan represents a membership plan offered by a tenant.
// swagger:model Plan
type Plan struct {
	ID               string    `json:"id"`
	TenantID         string    `json:"tenant_id"`
	Name             string    `json:"name"`
	PriceCents       int       `json:"price_cents"`
	DurationDays     int       `json:"duration_days"`
	MaxVisitsPerWeek *int      `json:"max_visits_per_week,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewPlan returns a new Plan with the given fields. ID is set by the repository on create.
func NewPlan(tenantID, name string, priceCents, durationDays int, maxVisitsPerWeek *int, createdAt, updatedAt time.Time) *Plan {
	return &Plan{
		TenantID:         tenantID,
		Name:             name,
		PriceCents:       priceCents,
		DurationDays:     durationDays,
		MaxVisitsPerWeek: maxVisitsPerWeek,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}
}

// PlanRepository defines the interface for plan storage.
type PlanRepository interface {
	Create(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, tenantID, id string) (*Plan, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*Plan, error)
	Update(ctx context.Context, plan *Plan) error
	Delete(ctx context.Context, tenantID, id string) error
}

// PlanService defines the business logic for plan management.
type PlanService interface {
	Create(ctx context.Context, plan *Plan) error
	List(ctx context.Context, tenantID string) ([]*Plan, error)
	Update(ctx context.Context, plan *Plan) (*Plan, error)
	Delete(ctx context.Context, tenantID, id string) error
}
