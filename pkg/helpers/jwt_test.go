package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, exp, err := m.Generate("user-1", false)
	require.NoError(t, err)
	require.True(t, exp.After(time.Now()))

	claims, err := m.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.False(t, claims.IsAdmin)
}

func TestJWTCarriesAdminFlag(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, _, err := m.Generate("admin-1", true)
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	require.True(t, claims.IsAdmin)
}

func TestJWTExpiredToken(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)

	token, _, err := m.Generate("user-1", false)
	require.NoError(t, err)

	_, err = m.Parse(token)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTWrongSecret(t *testing.T) {
	a := &JWTManager{Secret: []byte("secret-a"), TTL: time.Hour}
	b := &JWTManager{Secret: []byte("secret-b"), TTL: time.Hour}

	token, _, err := a.Generate("user-1", false)
	require.NoError(t, err)

	_, err = b.Parse(token)
	require.Error(t, err)
}

func TestJWTGarbageToken(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	_, err := m.Parse("not.a.token")
	require.Error(t, err)
}
