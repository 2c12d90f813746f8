package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	salt, err := hasher.GenerateSalt()
	require.NoError(t, err)
	require.Len(t, salt, 64)

	hash, err := hasher.Hash(salt, "correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	require.NoError(t, hasher.Compare(hash, salt, "correct horse battery staple"))
	require.Error(t, hasher.Compare(hash, salt, "wrong password"))
	require.Error(t, hasher.Compare(hash, "other-salt", "correct horse battery staple"))
}

func TestBcryptHasher_SaltsAreUnique(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	a, err := hasher.GenerateSalt()
	require.NoError(t, err)
	b, err := hasher.GenerateSalt()
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestBcryptHasher_LongPassword(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	// bcrypt truncates at 72 bytes; the SHA256 prehash keeps long passwords distinct.
	long := make([]byte, 100)
	for i := range long {
		long[i] = 'a'
	}
	longer := append(append([]byte{}, long...), 'b')

	salt, err := hasher.GenerateSalt()
	require.NoError(t, err)
	hash, err := hasher.Hash(salt, string(long))
	require.NoError(t, err)

	require.NoError(t, hasher.Compare(hash, salt, string(long)))
	require.Error(t, hasher.Compare(hash, salt, string(longer)))
}
