package postgres

import (
	"context"
	"database/sql"
	"errors"

	"gymadmin/internal/domain"
)

type classRepository struct {
	DB *sql.DB
}

func NewClassRepository(db *sql.DB) domain.ClassRepository {
	return &classRepository{
		DB: db,
	}
}

func (r *classRepository) Create(ctx context.Context, c *domain.Class) error {
	query := `
		INSERT INTO classes (tenant_id, name, description, coach_name, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, c.TenantID, c.Name, c.Description, c.CoachName, c.Color, c.CreatedAt, c.UpdatedAt).Scan(&c.ID)
}

func (r *classRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Class, error) {
	query := `
		SELECT id, tenant_id, name, description, coach_name, color, created_at, updated_at
		FROM classes
		WHERE tenant_id = $1 AND id = $2
	`
	c := &domain.Class{}
	err := r.DB.QueryRowContext(ctx, query, tenantID, id).Scan(
		&c.ID, &c.TenantID, &c.Name, &c.Description, &c.CoachName, &c.Color, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *classRepository) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Class, error) {
	query := `
		SELECT id, tenant_id, name, description, coach_name, color, created_at, updated_at
		FROM classes
		WHERE tenant_id = $1
		ORDER BY name
	`
	rows, err := r.DB.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var classes []*domain.Class
	for rows.Next() {
		c := &domain.Class{}
		if err := rows.Scan(&c.ID, &c.TenantID, &c.Name, &c.Description, &c.CoachName, &c.Color, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

func (r *classRepository) Update(ctx context.Context, c *domain.Class) error {
	query := `
		UPDATE classes
		SET name = $3, description = $4, coach_name = $5, color = $6, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
		RETURNING updated_at
	`
	err := r.DB.QueryRowContext(ctx, query, c.TenantID, c.ID, c.Name, c.Description, c.CoachName, c.Color).Scan(&c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func (r *classRepository) Delete(ctx context.Context, tenantID, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM classes WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
