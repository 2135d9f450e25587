package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/khalilbouhlel1/threadly-api/internal/domain/entity"
)

func testProduct(t *testing.T, name string, price float64) *entity.Product {
	t.Helper()
	return &entity.Product{
		ID:     primitive.NewObjectID(),
		Name:   name,
		Price:  price,
		Sizes:  []string{"S", "M", "L"},
		Images: []string{"https://img.example/" + name + ".jpg"},
		Stock:  map[string]int{"S": 5, "M": 10, "L": 2},
	}
}

func TestAddToCartMergesSameProductAndSize(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(NewMemoryStore())
	p := testProduct(t, "tee", 50)

	require.NoError(t, e.AddToCart(ctx, p, "M", 2))
	require.NoError(t, e.AddToCart(ctx, p, "M", 3))

	s := e.State()
	require.Len(t, s.Items, 1)
	require.Equal(t, 5, s.Items[0].Quantity)
}

func TestAddToCartDifferentSizesStaySeparate(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(NewMemoryStore())
	p := testProduct(t, "tee", 50)

	require.NoError(t, e.AddToCart(ctx, p, "M", 1))
	require.NoError(t, e.AddToCart(ctx, p, "L", 1))

	require.Len(t, e.State().Items, 2)
}

func TestTotalsDerivedAfterEveryMutation(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(NewMemoryStore())
	tee := testProduct(t, "tee", 50)
	jacket := testProduct(t, "jacket", 120)

	require.NoError(t, e.AddToCart(ctx, tee, "M", 2))
	require.NoError(t, e.AddToCart(ctx, jacket, "S", 1))

	s := e.State()
	require.Equal(t, 3, s.TotalItems)
	require.InDelta(t, 220, s.TotalAmount, 1e-9)

	require.NoError(t, e.UpdateQuantity(ctx, tee.ID.Hex(), "M", 4))
	s = e.State()
	require.Equal(t, 5, s.TotalItems)
	require.InDelta(t, 320, s.TotalAmount, 1e-9)

	require.NoError(t, e.RemoveFromCart(ctx, jacket.ID.Hex(), "S"))
	s = e.State()
	require.Equal(t, 4, s.TotalItems)
	require.InDelta(t, 200, s.TotalAmount, 1e-9)
}

func TestUpdateQuantityClampsToMinimumOne(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(NewMemoryStore())
	p := testProduct(t, "tee", 50)

	require.NoError(t, e.AddToCart(ctx, p, "M", 3))
	require.NoError(t, e.UpdateQuantity(ctx, p.ID.Hex(), "M", 0))

	require.Equal(t, 1, e.State().Items[0].Quantity)

	require.NoError(t, e.UpdateQuantity(ctx, p.ID.Hex(), "M", -7))
	require.Equal(t, 1, e.State().Items[0].Quantity)
}

func TestRemoveFromCartIsIdempotent(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(NewMemoryStore())
	p := testProduct(t, "tee", 50)

	require.NoError(t, e.AddToCart(ctx, p, "M", 1))
	require.NoError(t, e.RemoveFromCart(ctx, p.ID.Hex(), "M"))
	require.NoError(t, e.RemoveFromCart(ctx, p.ID.Hex(), "M"))

	s := e.State()
	require.Empty(t, s.Items)
	require.Zero(t, s.TotalItems)
	require.Zero(t, s.TotalAmount)
}

func TestBindReloadsWithoutMergingGuestCart(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	e := NewEngine(store)
	p := testProduct(t, "tee", 50)

	// Guest adds an item, then signs in.
	require.NoError(t, e.AddToCart(ctx, p, "M", 2))
	require.NoError(t, e.Bind(ctx, "user-1"))

	require.Empty(t, e.State().Items)

	// The guest cart still exists under its own key, untouched.
	guest, err := store.Load(ctx, GuestKey)
	require.NoError(t, err)
	require.Len(t, guest, 1)
}

func TestBindLoadsExistingUserCart(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	p := testProduct(t, "tee", 50)

	first := NewEngine(store)
	require.NoError(t, first.Bind(ctx, "user-1"))
	require.NoError(t, first.AddToCart(ctx, p, "L", 2))

	second := NewEngine(store)
	require.NoError(t, second.Bind(ctx, "user-1"))

	s := second.State()
	require.Len(t, s.Items, 1)
	require.Equal(t, 2, s.TotalItems)
	require.InDelta(t, 100, s.TotalAmount, 1e-9)
}

func TestClearDeletesKeyAndResetsState(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	e := NewEngine(store)
	p := testProduct(t, "tee", 50)

	require.NoError(t, e.AddToCart(ctx, p, "M", 2))
	require.NoError(t, e.Clear(ctx))

	s := e.State()
	require.Empty(t, s.Items)
	require.Zero(t, s.TotalItems)

	items, err := store.Load(ctx, GuestKey)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestOnChangeFiresOnRemoveAndUpdateOnly(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(NewMemoryStore())
	p := testProduct(t, "tee", 50)

	var calls int
	e.OnChange(func(State) { calls++ })

	require.NoError(t, e.AddToCart(ctx, p, "M", 1))
	require.Equal(t, 0, calls)

	require.NoError(t, e.UpdateQuantity(ctx, p.ID.Hex(), "M", 2))
	require.Equal(t, 1, calls)

	require.NoError(t, e.RemoveFromCart(ctx, p.ID.Hex(), "M"))
	require.Equal(t, 2, calls)
}

// Full walk: add size M twice, bump again, clamp an over-low update, remove.
func TestCartScenario(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(NewMemoryStore())
	p := testProduct(t, "hoodie", 50)

	require.NoError(t, e.AddToCart(ctx, p, "M", 2))
	s := e.State()
	require.Equal(t, 2, s.TotalItems)
	require.InDelta(t, 100, s.TotalAmount, 1e-9)

	require.NoError(t, e.AddToCart(ctx, p, "M", 1))
	s = e.State()
	require.Len(t, s.Items, 1)
	require.Equal(t, 3, s.TotalItems)
	require.InDelta(t, 150, s.TotalAmount, 1e-9)

	require.NoError(t, e.UpdateQuantity(ctx, p.ID.Hex(), "M", 0))
	s = e.State()
	require.Equal(t, 1, s.TotalItems)
	require.InDelta(t, 50, s.TotalAmount, 1e-9)

	require.NoError(t, e.RemoveFromCart(ctx, p.ID.Hex(), "M"))
	s = e.State()
	require.Empty(t, s.Items)
	require.Zero(t, s.TotalItems)
	require.Zero(t, s.TotalAmount)
}

func TestStateReturnsCopy(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(NewMemoryStore())
	p := testProduct(t, "tee", 50)

	require.NoError(t, e.AddToCart(ctx, p, "M", 1))
	s := e.State()
	s.Items[0].Quantity = 99

	require.Equal(t, 1, e.State().Items[0].Quantity)
}

func TestKeyDerivation(t *testing.T) {
	require.Equal(t, "cart_guest", Key(""))
	require.Equal(t, "cart_abc123", Key("abc123"))
}
