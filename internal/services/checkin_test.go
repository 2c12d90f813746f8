package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gymadmin/internal/domain"

	"github.com/stretchr/testify/require"
)

type fakeMemberRepo struct {
	byID map[string]*domain.Member
}

func newFakeMemberRepo(members ...*domain.Member) *fakeMemberRepo {
	f := &fakeMemberRepo{byID: make(map[string]*domain.Member)}
	for _, m := range members {
		f.byID[m.ID] = m
	}
	return f
}

func (f *fakeMemberRepo) Create(ctx context.Context, m *domain.Member) error {
	m.ID = fmt.Sprintf("m-%d", len(f.byID)+1)
	f.byID[m.ID] = m
	return nil
}

func (f *fakeMemberRepo) GetByID(ctx context.Context, tenantID, id string) (*domain.Member, error) {
	if m, ok := f.byID[id]; ok && m.TenantID == tenantID {
		return m, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeMemberRepo) List(ctx context.Context, tenantID, search string, params domain.PaginationParams) ([]*domain.Member, int, error) {
	var out []*domain.Member
	for _, m := range f.byID {
		if m.TenantID == tenantID {
			out = append(out, m)
		}
	}
	return out, len(out), nil
}

func (f *fakeMemberRepo) Update(ctx context.Context, m *domain.Member) error {
	if _, ok := f.byID[m.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[m.ID] = m
	return nil
}

func (f *fakeMemberRepo) Delete(ctx context.Context, tenantID, id string) error {
	if m, ok := f.byID[id]; ok && m.TenantID == tenantID {
		delete(f.byID, id)
		return nil
	}
	return domain.ErrNotFound
}

type fakeCheckInRepo struct {
	checkIns []*domain.CheckIn
}

func (f *fakeCheckInRepo) Create(ctx context.Context, c *domain.CheckIn) error {
	c.ID = fmt.Sprintf("ci-%d", len(f.checkIns)+1)
	f.checkIns = append(f.checkIns, c)
	return nil
}

func (f *fakeCheckInRepo) CountBySession(ctx context.Context, tenantID, sessionID string) (int, error) {
	count := 0
	for _, c := range f.checkIns {
		if c.TenantID == tenantID && c.SessionID != nil && *c.SessionID == sessionID {
			count++
		}
	}
	return count, nil
}

func (f *fakeCheckInRepo) ListByMember(ctx context.Context, tenantID, memberID string) ([]*domain.CheckIn, error) {
	var out []*domain.CheckIn
	for _, c := range f.checkIns {
		if c.TenantID == tenantID && c.MemberID == memberID {
			out = append(out, c)
		}
	}
	return out, nil
}

func newCheckInFixture(capacity *int) (domain.CheckInService, *fakeCheckInRepo, *fakeMemberRepo) {
	members := newFakeMemberRepo(
		&domain.Member{ID: "m-1", TenantID: "t-1", FirstName: "Ana", LastName: "Gil", Active: true},
		&domain.Member{ID: "m-2", TenantID: "t-1", FirstName: "Bo", LastName: "Berg", Active: false},
	)
	sessions := newFakeSessionRepo()
	sessions.byID["s-1"] = &domain.Session{
		ID:       "s-1",
		TenantID: "t-1",
		ClassID:  "c-1",
		StartsAt: time.Date(2024, time.March, 4, 18, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2024, time.March, 4, 19, 0, 0, 0, time.UTC),
		Capacity: capacity,
	}
	checkIns := &fakeCheckInRepo{}
	svc := NewCheckInService(checkIns, members, sessions, 2*time.Second)
	return svc, checkIns, members
}

func TestCheckInService_CheckIn(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newCheckInFixture(nil)

	got, err := svc.CheckIn(ctx, "t-1", "m-1", nil)
	require.NoError(t, err)
	require.NotEmpty(t, got.ID)
	require.Nil(t, got.SessionID)
	require.Len(t, repo.checkIns, 1)
}

func TestCheckInService_CheckIn_InactiveMember(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newCheckInFixture(nil)

	_, err := svc.CheckIn(ctx, "t-1", "m-2", nil)
	require.ErrorIs(t, err, domain.ErrMemberInactive)
	require.Empty(t, repo.checkIns)
}

func TestCheckInService_CheckIn_SessionCapacity(t *testing.T) {
	ctx := context.Background()
	capacity := 1
	svc, _, _ := newCheckInFixture(&capacity)

	sessionID := "s-1"
	_, err := svc.CheckIn(ctx, "t-1", "m-1", &sessionID)
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, "t-1", "m-1", &sessionID)
	require.ErrorIs(t, err, domain.ErrSessionFull)
}

func TestCheckInService_CheckIn_UnknownSession(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCheckInFixture(nil)

	sessionID := "nope"
	_, err := svc.CheckIn(ctx, "t-1", "m-1", &sessionID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCheckInService_ListByMember_Empty(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCheckInFixture(nil)

	got, err := svc.ListByMember(ctx, "t-1", "m-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}
