package auth_test

import (
	"testing"

	"github.com/emresys/emre/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashAndVerify(t *testing.T) {
	hasher := auth.NewPasswordHasher()

	t.Run("roundtrip", func(t *testing.T) {
		hashed, err := hasher.Hash("correct horse battery staple")
		require.NoError(t, err)
		assert.Contains(t, hashed, "$argon2id$")

		ok, err := hasher.Verify("correct horse battery staple", hashed)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("wrong password", func(t *testing.T) {
		hashed, err := hasher.Hash("right-password")
		require.NoError(t, err)

		ok, err := hasher.Verify("wrong-password", hashed)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unique salts", func(t *testing.T) {
		first, err := hasher.Hash("same input")
		require.NoError(t, err)
		second, err := hasher.Hash("same input")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("tampered hash", func(t *testing.T) {
		_, err := hasher.Verify("anything", "$argon2id$v=19$not-a-real-hash")
		assert.Error(t, err)
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := hasher.Verify("anything", "plaintext")
		assert.Error(t, err)
	})
}
