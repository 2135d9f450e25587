package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	items, err := s.Load(ctx, "cart_u1")
	require.NoError(t, err)
	require.Empty(t, items, "absent key loads empty")

	in := []Item{{ProductID: "p1", Size: "M", Quantity: 2, Price: 10}}
	require.NoError(t, s.Save(ctx, "cart_u1", in))

	items, err = s.Load(ctx, "cart_u1")
	require.NoError(t, err)
	require.Equal(t, in, items)

	require.NoError(t, s.Delete(ctx, "cart_u1"))
	items, err = s.Load(ctx, "cart_u1")
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestMemoryStoreKeysAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Save(ctx, "cart_u1", []Item{{ProductID: "p1", Quantity: 1}}))
	require.NoError(t, s.Save(ctx, "cart_u2", []Item{{ProductID: "p2", Quantity: 5}}))

	u1, err := s.Load(ctx, "cart_u1")
	require.NoError(t, err)
	require.Equal(t, "p1", u1[0].ProductID)

	u2, err := s.Load(ctx, "cart_u2")
	require.NoError(t, err)
	require.Equal(t, "p2", u2[0].ProductID)
}

func TestMemoryStoreSaveCopiesInput(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	in := []Item{{ProductID: "p1", Quantity: 1}}
	require.NoError(t, s.Save(ctx, "cart_u1", in))
	in[0].Quantity = 99

	items, err := s.Load(ctx, "cart_u1")
	require.NoError(t, err)
	require.Equal(t, 1, items[0].Quantity)
}
