package domain

import (
	"context"
	"time"
)

// Class represents a recurring activity type (e.g. "Yoga") that sessions
// instantiate.
// swagger:model Class
type Class struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CoachName   string    `json:"coach_name"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewClass returns a new Class with the given fields. ID is set by the repository on create.
func NewClass(tenantID, name, description, coachName, color string, createdAt, updatedAt time.Time) *Class {
	return &Class{
		TenantID:    tenantID,
		Name:        name,
		Description: description,
		CoachName:   coachName,
		Color:       color,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// ClassRepository defines the interface for class storage.
type ClassRepository interface {
	Create(ctx context.Context, class *Class) error
	GetByID(ctx context.Context, tenantID, id string) (*Class, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*Class, error)
	Update(ctx context.Context, class *Class) error
	Delete(ctx context.Context, tenantID, id string) error
}

// ClassService defines the business logic for class management.
type ClassService interface {
	Create(ctx context.Context, class *Class) error
	GetByID(ctx context.Context, tenantID, id string) (*Class, error)
	List(ctx context.Context, tenantID string) ([]*Class, error)
	Update(ctx context.Context, class *Class) (*Class, error)
	Delete(ctx context.Context, tenantID, id string) error
}
