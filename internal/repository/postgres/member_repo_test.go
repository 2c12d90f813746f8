package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"gymadmin/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestMemberRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	planID := "p-1"

	tests := []struct {
		name    string
		member  *domain.Member
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
	}{
		{
			name: "success",
			member: &domain.Member{
				TenantID:  "t-1",
				PlanID:    &planID,
				FirstName: "Ana",
				LastName:  "Torres",
				Email:     "ana@example.com",
				JoinedAt:  now,
				Active:    true,
				CreatedAt: now,
				UpdatedAt: now,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO members`).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("m-1"))
			},
			wantID: "m-1",
		},
		{
			name:   "db error",
			member: &domain.Member{TenantID: "t-1", FirstName: "Ana"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO members`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewMemberRepository(db)
			err = repo.Create(ctx, tt.member)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.member.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMemberRepository_List(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs("t-1", "%ana%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectQuery(`SELECT (.+) FROM members`).
		WithArgs("t-1", "%ana%", 2, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "plan_id", "first_name", "last_name", "email", "phone", "joined_at", "active", "created_at", "updated_at"}).
			AddRow("m-3", "t-1", nil, "Ana", "Torres", "ana@example.com", "", now, true, now, now).
			AddRow("m-4", "t-1", "p-1", "Anabel", "Ruiz", "anabel@example.com", "", now, true, now, now))

	repo := NewMemberRepository(db)
	members, total, err := repo.List(ctx, "t-1", "ana", domain.PaginationParams{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, 5, total)
	require.Len(t, members, 2)
	require.Nil(t, members[0].PlanID)
	require.NotNil(t, members[1].PlanID)
	require.Equal(t, "p-1", *members[1].PlanID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberRepository_Delete_NotFound(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM members`).
		WithArgs("t-1", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewMemberRepository(db)
	require.ErrorIs(t, repo.Delete(ctx, "t-1", "missing"), domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
