package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordHashAndCompare(t *testing.T) {
	hash, err := HashPassword("Sup3r$ecret")
	require.NoError(t, err)
	require.NotEqual(t, "Sup3r$ecret", hash)

	require.True(t, CompareHashAndPassword(hash, "Sup3r$ecret"))
	require.False(t, CompareHashAndPassword(hash, "wrong"))
}

func TestPasswordHashesAreSalted(t *testing.T) {
	h1, err := HashPassword("Sup3r$ecret")
	require.NoError(t, err)
	h2, err := HashPassword("Sup3r$ecret")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}

func TestGenTokenLengthAndUniqueness(t *testing.T) {
	a, err := GenToken(32)
	require.NoError(t, err)
	require.Len(t, a, 64, "hex doubles the byte length")

	b, err := GenToken(32)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}
