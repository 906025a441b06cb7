package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/poketrainer/skillhub/internal/auth"
)

func TestManagerRoundTrip(t *testing.T) {
	m := auth.NewManager("test-secret", auth.TokenTTL)

	token, err := m.Generate("u1", "rafael@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID())
	require.Equal(t, "rafael@example.com", claims.Email)

	// expiry lands 7 days out, give or take scheduling slack
	remaining := time.Until(claims.ExpiresAt.Time)
	require.InDelta(t, auth.TokenTTL.Seconds(), remaining.Seconds(), 60)
}

func TestManagerVerifyGarbage(t *testing.T) {
	m := auth.NewManager("test-secret", auth.TokenTTL)

	_, err := m.Verify("not-a-token")
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestManagerVerifyWrongSecret(t *testing.T) {
	m := auth.NewManager("test-secret", auth.TokenTTL)
	other := auth.NewManager("other-secret", auth.TokenTTL)

	token, err := m.Generate("u1", "rafael@example.com")
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestManagerVerifyExpired(t *testing.T) {
	m := auth.NewManager("test-secret", -time.Minute)

	token, err := m.Generate("u1", "rafael@example.com")
	require.NoError(t, err)

	_, err = m.Verify(token)
	require.ErrorIs(t, err, auth.ErrTokenExpired)
}
