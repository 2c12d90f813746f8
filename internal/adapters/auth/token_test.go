package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gymadmin/internal/domain"
)

func TestJWTCodec_RoundTrip(t *testing.T) {
	codec := NewJWTCodec("test-secret")

	token, err := codec.Issue(domain.TokenClaims{
		UserID:   "u-1",
		TenantID: "t-1",
		Role:     domain.RoleAdmin,
	}, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "u-1", claims.UserID)
	require.Equal(t, "t-1", claims.TenantID)
	require.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestJWTCodec_Expired(t *testing.T) {
	codec := NewJWTCodec("test-secret")

	token, err := codec.Issue(domain.TokenClaims{UserID: "u-1", TenantID: "t-1"}, -time.Minute)
	require.NoError(t, err)

	_, err = codec.Verify(token)
	require.Error(t, err)
}

func TestJWTCodec_WrongSecret(t *testing.T) {
	token, err := NewJWTCodec("secret-a").Issue(domain.TokenClaims{UserID: "u-1"}, time.Hour)
	require.NoError(t, err)

	_, err = NewJWTCodec("secret-b").Verify(token)
	require.Error(t, err)
}

func TestJWTCodec_Garbage(t *testing.T) {
	_, err := NewJWTCodec("test-secret").Verify("not.a.jwt")
	require.Error(t, err)
}
