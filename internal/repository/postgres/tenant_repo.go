package postgres

import (
	"context"
	"database/sql"
	"errors"

	"gymadmin/internal/domain"
)

type tenantRepository struct {
	DB *sql.DB
}

func NewTenantRepository(db *sql.DB) domain.TenantRepository {
	return &tenantRepository{
		DB: db,
	}
}

func (r *tenantRepository) Create(ctx context.Context, t *domain.Tenant) error {
	query := `
		INSERT INTO tenants (name, timezone, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, t.Name, t.Timezone, t.CreatedAt, t.UpdatedAt).Scan(&t.ID)
}

func (r *tenantRepository) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	query := `
		SELECT id, name, timezone, created_at, updated_at
		FROM tenants
		WHERE id = $1
	`
	t := &domain.Tenant{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.Timezone, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}
