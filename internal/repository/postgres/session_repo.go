package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"gymadmin/internal/domain"
)

type SessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) domain.SessionRepository {
	return &SessionRepository{
		DB: db,
	}
}

const sessionColumns = `id, tenant_id, class_id, starts_at, ends_at, capacity, cancel_before_hours, created_at, updated_at`

func scanSession(row interface{ Scan(...any) error }) (*domain.Session, error) {
	s := &domain.Session{}
	var capacity, cancelBefore sql.NullInt64
	if err := row.Scan(&s.ID, &s.TenantID, &s.ClassID, &s.StartsAt, &s.EndsAt, &capacity, &cancelBefore, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if capacity.Valid {
		v := int(capacity.Int64)
		s.Capacity = &v
	}
	if cancelBefore.Valid {
		v := int(cancelBefore.Int64)
		s.CancelBeforeHours = &v
	}
	return s, nil
}

func (r *SessionRepository) Insert(ctx context.Context, s *domain.Session) error {
	if !s.Valid() {
		return domain.ErrInvalidInput
	}
	query := `
		INSERT INTO sessions (tenant_id, class_id, starts_at, ends_at, capacity, cancel_before_hours, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, s.TenantID, s.ClassID, s.StartsAt, s.EndsAt, s.Capacity, s.CancelBeforeHours, s.CreatedAt, s.UpdatedAt).Scan(&s.ID)
}

// InsertMany writes the whole batch as one multi-row INSERT. Ids are assigned
// by the caller. The batch is rejected as a whole when any payload is invalid.
func (r *SessionRepository) InsertMany(ctx context.Context, sessions []*domain.Session) error {
	if len(sessions) == 0 {
		return nil
	}
	for _, s := range sessions {
		if !s.Valid() {
			return domain.ErrInvalidInput
		}
	}
	const cols = 9
	valueRows := make([]string, 0, len(sessions))
	args := make([]any, 0, len(sessions)*cols)
	for i, s := range sessions {
		base := i * cols
		valueRows = append(valueRows, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9))
		args = append(args, s.ID, s.TenantID, s.ClassID, s.StartsAt, s.EndsAt, s.Capacity, s.CancelBeforeHours, s.CreatedAt, s.UpdatedAt)
	}
	query := fmt.Sprintf(`
		INSERT INTO sessions (id, tenant_id, class_id, starts_at, ends_at, capacity, cancel_before_hours, created_at, updated_at)
		VALUES %s
	`, strings.Join(valueRows, ", "))
	_, err := r.DB.ExecContext(ctx, query, args...)
	return err
}

func (r *SessionRepository) Find(ctx context.Context, tenantID string, filter domain.SessionFilter) ([]*domain.Session, error) {
	where := []string{"tenant_id = $1"}
	args := []any{tenantID}
	n := 2
	if filter.ClassID != "" {
		where = append(where, fmt.Sprintf("class_id = $%d", n))
		args = append(args, filter.ClassID)
		n++
	}
	if filter.From != nil {
		where = append(where, fmt.Sprintf("starts_at >= $%d", n))
		args = append(args, *filter.From)
		n++
	}
	if filter.To != nil {
		where = append(where, fmt.Sprintf("starts_at < $%d", n))
		args = append(args, *filter.To)
		n++
	}
	query := fmt.Sprintf(`
		SELECT %s
		FROM sessions
		WHERE %s
		ORDER BY starts_at
	`, sessionColumns, strings.Join(where, " AND "))
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var sessions []*domain.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *SessionRepository) FindOverlapping(ctx context.Context, tenantID, classID string, startsAt, endsAt time.Time, excludeID string) ([]*domain.Session, error) {
	where := []string{"tenant_id = $1", "class_id = $2", "starts_at < $3", "ends_at > $4"}
	args := []any{tenantID, classID, endsAt, startsAt}
	if excludeID != "" {
		where = append(where, "id <> $5")
		args = append(args, excludeID)
	}
	query := fmt.Sprintf(`
		SELECT %s
		FROM sessions
		WHERE %s
		ORDER BY starts_at
	`, sessionColumns, strings.Join(where, " AND "))
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var sessions []*domain.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *SessionRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Session, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM sessions
		WHERE tenant_id = $1 AND id = $2
	`, sessionColumns)
	s, err := scanSession(r.DB.QueryRowContext(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *SessionRepository) Update(ctx context.Context, s *domain.Session) error {
	if !s.Valid() {
		return domain.ErrInvalidInput
	}
	query := `
		UPDATE sessions
		SET starts_at = $3, ends_at = $4, capacity = $5, cancel_before_hours = $6, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
		RETURNING updated_at
	`
	err := r.DB.QueryRowContext(ctx, query, s.TenantID, s.ID, s.StartsAt, s.EndsAt, s.Capacity, s.CancelBeforeHours).Scan(&s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func (r *SessionRepository) Delete(ctx context.Context, tenantID, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SessionRepository) DeleteMany(ctx context.Context, tenantID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE tenant_id = $1 AND id = ANY($2)`, tenantID, pq.Array(ids))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
