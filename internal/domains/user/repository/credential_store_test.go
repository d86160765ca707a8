package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCompareHash(t *testing.T) {
	raw, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	hash := string(raw)

	ok, err := compareHash(&hash, "secret123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = compareHash(&hash, "wrong-password")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = compareHash(nil, "secret123")
	require.NoError(t, err)
	assert.False(t, ok)

	broken := "not-a-bcrypt-hash"
	_, err = compareHash(&broken, "secret123")
	assert.Error(t, err)
}

func TestNewCredentialStore_CostFallback(t *testing.T) {
	store := NewCredentialStore(nil, 0).(*bcryptCredentialStore)
	assert.Equal(t, DefaultBcryptCost, store.cost)

	store = NewCredentialStore(nil, bcrypt.MinCost).(*bcryptCredentialStore)
	assert.Equal(t, bcrypt.MinCost, store.cost)
}
