package domain

import (
	"context"
	"time"
)

// Tenant represents one gym organization. All other data is partitioned by
// tenant, and the tenant's IANA timezone drives every local-date computation
// for its schedule.
// swagger:model Tenant
type Tenant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTenant returns a new Tenant with the given fields. ID is set by the repository on create.
func NewTenant(name, timezone string, createdAt, updatedAt time.Time) *Tenant {
	return &Tenant{
		Name:      name,
		Timezone:  timezone,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// Location resolves the tenant's configured timezone.
func (t *Tenant) Location() (*time.Location, error) {
	return time.LoadLocation(t.Timezone)
}

// TenantRepository defines the interface for tenant storage.
type TenantRepository interface {
	Create(ctx context.Context, tenant *Tenant) error
	GetByID(ctx context.Context, id string) (*Tenant, error)
}
