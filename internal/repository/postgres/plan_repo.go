package postgres

import (
	"context"
	"database/sql"
	"errors"

	"gymadmin/internal/domain"
)

type planRepository struct {
	DB *sql.DB
}

func NewPlanRepository(db *sql.DB) domain.PlanRepository {
	return &planRepository{
		DB: db,
	}
}

func scanPlan(row interface{ Scan(...any) error }) (*domain.Plan, error) {
	p := &domain.Plan{}
	var maxVisits sql.NullInt64
	if err := row.Scan(&p.ID, &p.TenantID, &p.Name, &p.PriceCents, &p.DurationDays, &maxVisits, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if maxVisits.Valid {
		v := int(maxVisits.Int64)
		p.MaxVisitsPerWeek = &v
	}
	return p, nil
}

func (r *planRepository) Create(ctx context.Context, p *domain.Plan) error {
	query := `
		INSERT INTO plans (tenant_id, name, price_cents, duration_days, max_visits_per_week, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, p.TenantID, p.Name, p.PriceCents, p.DurationDays, p.MaxVisitsPerWeek, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
}

func (r *planRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Plan, error) {
	query := `
		SELECT id, tenant_id, name, price_cents, duration_days, max_visits_per_week, created_at, updated_at
		FROM plans
		WHERE tenant_id = $1 AND id = $2
	`
	p, err := scanPlan(r.DB.QueryRowContext(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *planRepository) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Plan, error) {
	query := `
		SELECT id, tenant_id, name, price_cents, duration_days, max_visits_per_week, created_at, updated_at
		FROM plans
		WHERE tenant_id = $1
		ORDER BY price_cents
	`
	rows, err := r.DB.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var plans []*domain.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (r *planRepository) Update(ctx context.Context, p *domain.Plan) error {
	query := `
		UPDATE plans
		SET name = $3, price_cents = $4, duration_days = $5, max_visits_per_week = $6, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
		RETURNING updated_at
	`
	err := r.DB.QueryRowContext(ctx, query, p.TenantID, p.ID, p.Name, p.PriceCents, p.DurationDays, p.MaxVisitsPerWeek).Scan(&p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func (r *planRepository) Delete(ctx context.Context, tenantID, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM plans WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
