package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"gymadmin/internal/domain"

	"github.com/stretchr/testify/require"
)

type fakePlanRepo struct {
	byID map[string]*domain.Plan
}

func newFakePlanRepo(plans ...*domain.Plan) *fakePlanRepo {
	f := &fakePlanRepo{byID: make(map[string]*domain.Plan)}
	for _, p := range plans {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakePlanRepo) Create(ctx context.Context, p *domain.Plan) error {
	p.ID = fmt.Sprintf("p-%d", len(f.byID)+1)
	f.byID[p.ID] = p
	return nil
}

func (f *fakePlanRepo) GetByID(ctx context.Context, tenantID, id string) (*domain.Plan, error) {
	if p, ok := f.byID[id]; ok && p.TenantID == tenantID {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakePlanRepo) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Plan, error) {
	var out []*domain.Plan
	for _, p := range f.byID {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlanRepo) Update(ctx context.Context, p *domain.Plan) error {
	if _, ok := f.byID[p.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[p.ID] = p
	return nil
}

func (f *fakePlanRepo) Delete(ctx context.Context, tenantID, id string) error {
	if p, ok := f.byID[id]; ok && p.TenantID == tenantID {
		delete(f.byID, id)
		return nil
	}
	return domain.ErrNotFound
}

type fakeEmailService struct {
	sent    []*domain.MemberWelcomeEmailData
	sendErr error
}

func (f *fakeEmailService) SendMemberWelcome(ctx context.Context, data *domain.MemberWelcomeEmailData) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, data)
	return nil
}

func newMemberFixture(emails *fakeEmailService) (domain.MemberService, *fakeMemberRepo) {
	members := newFakeMemberRepo()
	plans := newFakePlanRepo(&domain.Plan{ID: "p-1", TenantID: "t-1", Name: "Monthly Unlimited"})
	tenants := newFakeTenantRepo(&domain.Tenant{ID: "t-1", Name: "Iron Works", Timezone: "UTC"})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewMemberService(members, plans, tenants, emails, logger, 2*time.Second)
	return svc, members
}

func TestMemberService_Create(t *testing.T) {
	ctx := context.Background()
	emails := &fakeEmailService{}
	svc, members := newMemberFixture(emails)

	planID := "p-1"
	member := &domain.Member{
		TenantID:  "t-1",
		PlanID:    &planID,
		FirstName: "Ana",
		LastName:  "Gil",
		Email:     "ana@example.com",
	}
	require.NoError(t, svc.Create(ctx, member))
	require.NotEmpty(t, member.ID)
	require.True(t, member.Active)
	require.False(t, member.JoinedAt.IsZero())
	require.Len(t, members.byID, 1)

	require.Len(t, emails.sent, 1)
	require.Equal(t, "ana@example.com", emails.sent[0].Email)
	require.Equal(t, "Iron Works", emails.sent[0].GymName)
	require.Equal(t, "Monthly Unlimited", emails.sent[0].PlanName)
}

func TestMemberService_Create_EmailFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	emails := &fakeEmailService{sendErr: fmt.Errorf("ses unavailable")}
	svc, members := newMemberFixture(emails)

	member := &domain.Member{TenantID: "t-1", FirstName: "Ana", LastName: "Gil", Email: "ana@example.com"}
	require.NoError(t, svc.Create(ctx, member))
	require.Len(t, members.byID, 1)
}

func TestMemberService_Create_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemberFixture(&fakeEmailService{})

	// Missing name.
	err := svc.Create(ctx, &domain.Member{TenantID: "t-1", LastName: "Gil"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	// Unknown plan.
	planID := "nope"
	err = svc.Create(ctx, &domain.Member{TenantID: "t-1", PlanID: &planID, FirstName: "Ana", LastName: "Gil"})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemberService_Create_NoEmailNoWelcome(t *testing.T) {
	ctx := context.Background()
	emails := &fakeEmailService{}
	svc, _ := newMemberFixture(emails)

	require.NoError(t, svc.Create(ctx, &domain.Member{TenantID: "t-1", FirstName: "Ana", LastName: "Gil"}))
	require.Empty(t, emails.sent)
}

func TestMemberService_List_Empty(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemberFixture(&fakeEmailService{})

	got, total, err := svc.List(ctx, "t-1", "", domain.PaginationParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
	require.Zero(t, total)
}
