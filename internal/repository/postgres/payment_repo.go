package postgres

import (
	"context"
	"database/sql"

	"gymadmin/internal/domain"
)

type paymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(db *sql.DB) domain.PaymentRepository {
	return &paymentRepository{
		DB: db,
	}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `
		INSERT INTO payments (tenant_id, member_id, plan_id, amount_cents, method, paid_at, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, p.TenantID, p.MemberID, p.PlanID, p.AmountCents, p.Method, p.PaidAt, p.Notes, p.CreatedAt).Scan(&p.ID)
}

func (r *paymentRepository) ListByMember(ctx context.Context, tenantID, memberID string) ([]*domain.Payment, error) {
	query := `
		SELECT id, tenant_id, member_id, plan_id, amount_cents, method, paid_at, notes, created_at
		FROM payments
		WHERE tenant_id = $1 AND member_id = $2
		ORDER BY paid_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, tenantID, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var payments []*domain.Payment
	for rows.Next() {
		p := &domain.Payment{}
		var planID sql.NullString
		if err := rows.Scan(&p.ID, &p.TenantID, &p.MemberID, &planID, &p.AmountCents, &p.Method, &p.PaidAt, &p.Notes, &p.CreatedAt); err != nil {
			return nil, err
		}
		if planID.Valid {
			p.PlanID = &planID.String
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) MonthlyTotals(ctx context.Context, tenantID string, year int) ([]*domain.MonthlyRevenue, error) {
	query := `
		SELECT EXTRACT(MONTH FROM paid_at)::int AS month, SUM(amount_cents)::int AS total_cents
		FROM payments
		WHERE tenant_id = $1 AND EXTRACT(YEAR FROM paid_at) = $2
		GROUP BY month
		ORDER BY month
	`
	rows, err := r.DB.QueryContext(ctx, query, tenantID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var totals []*domain.MonthlyRevenue
	for rows.Next() {
		t := &domain.MonthlyRevenue{}
		if err := rows.Scan(&t.Month, &t.TotalCents); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
