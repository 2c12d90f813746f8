package postgres

import (
	"context"
	"database/sql"

	"gymadmin/internal/domain"
)

type checkInRepository struct {
	DB *sql.DB
}

func NewCheckInRepository(db *sql.DB) domain.CheckInRepository {
	return &checkInRepository{
		DB: db,
	}
}

func (r *checkInRepository) Create(ctx context.Context, c *domain.CheckIn) error {
	query := `
		INSERT INTO check_ins (tenant_id, member_id, session_id, checked_in_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, c.TenantID, c.MemberID, c.SessionID, c.CheckedInAt).Scan(&c.ID)
}

func (r *checkInRepository) CountBySession(ctx context.Context, tenantID, sessionID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM check_ins WHERE tenant_id = $1 AND session_id = $2`,
		tenantID, sessionID,
	).Scan(&count)
	return count, err
}

func (r *checkInRepository) ListByMember(ctx context.Context, tenantID, memberID string) ([]*domain.CheckIn, error) {
	query := `
		SELECT id, tenant_id, member_id, session_id, checked_in_at
		FROM check_ins
		WHERE tenant_id = $1 AND member_id = $2
		ORDER BY checked_in_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, tenantID, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var checkIns []*domain.CheckIn
	for rows.Next() {
		c := &domain.CheckIn{}
		var sessionID sql.NullString
		if err := rows.Scan(&c.ID, &c.TenantID, &c.MemberID, &sessionID, &c.CheckedInAt); err != nil {
			return nil, err
		}
		if sessionID.Valid {
			c.SessionID = &sessionID.String
		}
		checkIns = append(checkIns, c)
	}
	return checkIns, rows.Err()
}
