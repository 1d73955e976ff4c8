package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("sup3r-secret")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "sup3r-secret", hash)

	ok, err := VerifyPassword("sup3r-secret", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyPasswordMismatch(t *testing.T) {
	hash, err := HashPassword("sup3r-secret")
	require.NoError(t, err)

	ok, err := VerifyPassword("wrong-password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	ok, err := VerifyPassword("whatever", "not-a-bcrypt-hash")
	assert.Error(t, err)
	assert.False(t, ok)
}

// Hashes produced by the legacy admin tooling use the $2a$ prefix; they must
// keep verifying after the migration.
func TestVerifyPasswordLegacyPrefix(t *testing.T) {
	hash, err := HashPassword("legacy-pass")
	require.NoError(t, err)

	legacy := "$2a$" + hash[4:]
	ok, err := VerifyPassword("legacy-pass", legacy)
	require.NoError(t, err)
	assert.True(t, ok)
}
