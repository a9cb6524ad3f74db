// AngelaMos | 2026
// security_test.go

package core_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpke-dev/beatstore/internal/core"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := core.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	valid, err := core.VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestVerifyPasswordWrongPassword(t *testing.T) {
	hash, err := core.HashPassword("correct horse battery staple")
	require.NoError(t, err)

	valid, err := core.VerifyPassword("wrong guess", hash)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	first, err := core.HashPassword("same password")
	require.NoError(t, err)

	second, err := core.HashPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyPasswordTimingSafeNilHash(t *testing.T) {
	valid, rehash, err := core.VerifyPasswordTimingSafe("anything", nil)

	require.NoError(t, err)
	assert.False(t, valid)
	assert.Empty(t, rehash)
}

func TestVerifyPasswordTimingSafeMatch(t *testing.T) {
	hash, err := core.HashPassword("open sesame")
	require.NoError(t, err)

	valid, rehash, err := core.VerifyPasswordTimingSafe("open sesame", &hash)

	require.NoError(t, err)
	assert.True(t, valid)
	assert.Empty(t, rehash, "current params need no rehash")
}
