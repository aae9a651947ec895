package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/emresys/emre/internal/auth"
	"github.com/emresys/emre/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager(t *testing.T) {
	userID := uuid.New()

	t.Run("generate and validate", func(t *testing.T) {
		tm := auth.NewTokenManager("test_secret", time.Hour)

		token, err := tm.Generate(userID)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		got, err := tm.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("expired token", func(t *testing.T) {
		tm := auth.NewTokenManager("test_secret", -time.Minute)

		token, err := tm.Generate(userID)
		require.NoError(t, err)

		_, err = tm.Validate(token)
		assert.True(t, errors.Is(err, domain.ErrInvalidToken))
	})

	t.Run("wrong secret", func(t *testing.T) {
		tm := auth.NewTokenManager("test_secret", time.Hour)
		other := auth.NewTokenManager("other_secret", time.Hour)

		token, err := tm.Generate(userID)
		require.NoError(t, err)

		_, err = other.Validate(token)
		assert.True(t, errors.Is(err, domain.ErrInvalidToken))
	})

	t.Run("garbage token", func(t *testing.T) {
		tm := auth.NewTokenManager("test_secret", time.Hour)

		_, err := tm.Validate("not.a.token")
		assert.True(t, errors.Is(err, domain.ErrInvalidToken))
	})
}
