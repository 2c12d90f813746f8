package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gymadmin/internal/domain"

	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	byEmail   map[string]*domain.User
	createErr error
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	f := &fakeUserRepo{byEmail: make(map[string]*domain.User)}
	for _, u := range users {
		f.byEmail[u.Email] = u
	}
	return f
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	u.ID = fmt.Sprintf("u-%d", len(f.byEmail)+1)
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

// fakeHasher "hashes" by concatenation so tests can assert on stored values.
type fakeHasher struct{}

func (fakeHasher) GenerateSalt() (string, error) { return "salt", nil }

func (fakeHasher) Hash(salt, password string) (string, error) {
	return salt + ":" + password, nil
}

func (fakeHasher) Compare(hash, salt, password string) error {
	if hash != salt+":"+password {
		return fmt.Errorf("hash mismatch")
	}
	return nil
}

type fakeIssuer struct {
	lastClaims domain.TokenClaims
	lastExpiry time.Duration
}

func (f *fakeIssuer) Issue(claims domain.TokenClaims, expiry time.Duration) (string, error) {
	f.lastClaims = claims
	f.lastExpiry = expiry
	return "token-" + claims.UserID, nil
}

func newAuthFixture() (domain.AuthService, *fakeUserRepo, *fakeTenantRepo, *fakeIssuer) {
	users := newFakeUserRepo()
	tenants := newFakeTenantRepo()
	issuer := &fakeIssuer{}
	svc := NewAuthService(users, tenants, fakeHasher{}, issuer, 24*time.Hour, 2*time.Second)
	return svc, users, tenants, issuer
}

func TestAuthService_SignUp(t *testing.T) {
	ctx := context.Background()
	svc, users, tenants, _ := newAuthFixture()

	user, err := svc.SignUp(ctx, domain.SignUpInput{
		TenantName: "Iron Works",
		Timezone:   "Europe/Madrid",
		Email:      "Owner@IronWorks.example",
		Password:   "sup3rsecret",
		Name:       "Alex",
		LastName:   "Ruiz",
	})
	require.NoError(t, err)
	require.Equal(t, "owner@ironworks.example", user.Email)
	require.Equal(t, domain.RoleAdmin, user.Role)
	require.Equal(t, "salt:sup3rsecret", user.PasswordHash)

	tenant, err := tenants.GetByID(ctx, user.TenantID)
	require.NoError(t, err)
	require.Equal(t, "Iron Works", tenant.Name)
	require.Equal(t, "Europe/Madrid", tenant.Timezone)

	_, ok := users.byEmail["owner@ironworks.example"]
	require.True(t, ok)
}

func TestAuthService_SignUp_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		in   domain.SignUpInput
	}{
		{
			name: "bad email",
			in:   domain.SignUpInput{TenantName: "Gym", Email: "not-an-email", Password: "longenough"},
		},
		{
			name: "short password",
			in:   domain.SignUpInput{TenantName: "Gym", Email: "a@b.example", Password: "short"},
		},
		{
			name: "missing gym name",
			in:   domain.SignUpInput{Email: "a@b.example", Password: "longenough"},
		},
		{
			name: "bogus timezone",
			in:   domain.SignUpInput{TenantName: "Gym", Timezone: "Mars/Olympus", Email: "a@b.example", Password: "longenough"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, _ := newAuthFixture()
			_, err := svc.SignUp(ctx, tt.in)
			require.Error(t, err)
		})
	}
}

func TestAuthService_SignUp_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newAuthFixture()

	in := domain.SignUpInput{TenantName: "Gym", Email: "a@b.example", Password: "longenough"}
	_, err := svc.SignUp(ctx, in)
	require.NoError(t, err)

	in.TenantName = "Other Gym"
	_, err = svc.SignUp(ctx, in)
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	svc, _, _, issuer := newAuthFixture()

	user, err := svc.SignUp(ctx, domain.SignUpInput{
		TenantName: "Gym",
		Email:      "a@b.example",
		Password:   "longenough",
	})
	require.NoError(t, err)

	token, got, err := svc.Login(ctx, "A@B.example", "longenough")
	require.NoError(t, err)
	require.Equal(t, "token-"+user.ID, token)
	require.Equal(t, user.ID, got.ID)
	require.Equal(t, user.TenantID, issuer.lastClaims.TenantID)
	require.Equal(t, domain.RoleAdmin, issuer.lastClaims.Role)
	require.Equal(t, 24*time.Hour, issuer.lastExpiry)

	// Wrong password and unknown email report the same generic error.
	_, _, err = svc.Login(ctx, "a@b.example", "wrongpass")
	require.EqualError(t, err, "invalid credentials")
	_, _, err = svc.Login(ctx, "nobody@b.example", "longenough")
	require.EqualError(t, err, "invalid credentials")
}
