package postgres

import (
	"context"
	"database/sql"
	"errors"

	"gymadmin/internal/domain"
)

type memberRepository struct {
	DB *sql.DB
}

func NewMemberRepository(db *sql.DB) domain.MemberRepository {
	return &memberRepository{
		DB: db,
	}
}

const memberColumns = `id, tenant_id, plan_id, first_name, last_name, email, phone, joined_at, active, created_at, updated_at`

func scanMember(row interface{ Scan(...any) error }) (*domain.Member, error) {
	m := &domain.Member{}
	var planID sql.NullString
	if err := row.Scan(&m.ID, &m.TenantID, &planID, &m.FirstName, &m.LastName, &m.Email, &m.Phone, &m.JoinedAt, &m.Active, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	if planID.Valid {
		m.PlanID = &planID.String
	}
	return m, nil
}

func (r *memberRepository) Create(ctx context.Context, m *domain.Member) error {
	query := `
		INSERT INTO members (tenant_id, plan_id, first_name, last_name, email, phone, joined_at, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, m.TenantID, m.PlanID, m.FirstName, m.LastName, m.Email, m.Phone, m.JoinedAt, m.Active, m.CreatedAt, m.UpdatedAt).Scan(&m.ID)
}

func (r *memberRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE tenant_id = $1 AND id = $2
	`
	m, err := scanMember(r.DB.QueryRowContext(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *memberRepository) List(ctx context.Context, tenantID, search string, params domain.PaginationParams) ([]*domain.Member, int, error) {
	pattern := "%" + search + "%"
	countQuery := `
		SELECT COUNT(*)
		FROM members
		WHERE tenant_id = $1
		  AND (first_name ILIKE $2 OR last_name ILIKE $2 OR email ILIKE $2)
	`
	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, tenantID, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE tenant_id = $1
		  AND (first_name ILIKE $2 OR last_name ILIKE $2 OR email ILIKE $2)
		ORDER BY last_name, first_name
		LIMIT $3 OFFSET $4
	`
	rows, err := r.DB.QueryContext(ctx, query, tenantID, pattern, params.Limit(20), params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var members []*domain.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, 0, err
		}
		members = append(members, m)
	}
	return members, total, rows.Err()
}

func (r *memberRepository) Update(ctx context.Context, m *domain.Member) error {
	query := `
		UPDATE members
		SET plan_id = $3, first_name = $4, last_name = $5, email = $6, phone = $7, active = $8, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
		RETURNING updated_at
	`
	err := r.DB.QueryRowContext(ctx, query, m.TenantID, m.ID, m.PlanID, m.FirstName, m.LastName, m.Email, m.Phone, m.Active).Scan(&m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func (r *memberRepository) Delete(ctx context.Context, tenantID, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM members WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
