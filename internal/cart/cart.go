// Package cart implements the storefront shopping cart: a reducer over an
// item list with identity-scoped keyed persistence and derived totals. The
// engine is client-held state; the server never sees it. Persistence is a
// pluggable Store so a browser-local map and a redis hash behave identically.
package cart

import (
	"context"
	"sync"

	"github.com/khalilbouhlel1/threadly-api/internal/domain/entity"
)

// Item is one (product, size) selection. Name, price and image are snapshots
// taken at add time; the catalog price changing later does not re-sync them.
type Item struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
	UserID    string  `json:"userId,omitempty"`
}

// State is the reducer state. TotalItems and TotalAmount are always derived
// from Items by the reducer, never stored independently, so the aggregates
// cannot drift from the list.
type State struct {
	Items       []Item
	TotalItems  int
	TotalAmount float64
	Loading     bool
	Err         error
}

// Store is the keyed durable persistence capability injected into the engine.
// Load returns (nil, nil) for an absent key.
type Store interface {
	Load(ctx context.Context, key string) ([]Item, error)
	Save(ctx context.Context, key string, items []Item) error
	Delete(ctx context.Context, key string) error
}

// GuestKey is the storage key for the unauthenticated identity.
const GuestKey = "cart_guest"

// Key derives the identity-scoped storage key.
func Key(userID string) string {
	if userID == "" {
		return GuestKey
	}
	return "cart_" + userID
}

// Engine owns one identity's cart. All mutations persist the full list under
// the identity-scoped key, then run the reducer, then notify listeners.
// Mutations are serialized per engine; two engines sharing a key are
// last-write-wins with no merge, matching two browser tabs on one cart.
type Engine struct {
	mu       sync.Mutex
	store    Store
	userID   string
	state    State
	onChange []func(State)
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// OnChange registers a listener invoked after remove and quantity-update
// mutations, mirroring the out-of-band cart-changed event.
func (e *Engine) OnChange(fn func(State)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onChange = append(e.onChange, fn)
}

// State returns a copy of the current reducer state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

func (e *Engine) snapshot() State {
	s := e.state
	s.Items = append([]Item(nil), e.state.Items...)
	return s
}

// Bind switches the engine to a new identity and reloads the cart from that
// identity's key. Items held under the previous key are NOT merged in; a
// guest cart becomes unreachable after login but stays stored under its own
// key.
func (e *Engine) Bind(ctx context.Context, userID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.userID = userID
	items, err := e.store.Load(ctx, Key(userID))
	if err != nil {
		e.setError(err)
		return err
	}
	e.updateCart(items)
	return nil
}

// AddToCart merges quantity into the existing (productID, size) item or
// appends a new item carrying a snapshot of the product. No upper bound is
// enforced against live stock at this layer.
func (e *Engine) AddToCart(ctx context.Context, p *entity.Product, size string, quantity int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	items := append([]Item(nil), e.state.Items...)
	merged := false
	for i := range items {
		if items[i].ProductID == p.ID.Hex() && items[i].Size == size {
			items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, Item{
			ProductID: p.ID.Hex(),
			Name:      p.Name,
			Price:     p.Price,
			Image:     p.PrimaryImage(),
			Size:      size,
			Quantity:  quantity,
			UserID:    e.userID,
		})
	}
	return e.persist(ctx, items, false)
}

// RemoveFromCart filters out the matching item. Removing an absent item is a
// no-op, so the operation is idempotent.
func (e *Engine) RemoveFromCart(ctx context.Context, productID, size string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	items := make([]Item, 0, len(e.state.Items))
	for _, it := range e.state.Items {
		if it.ProductID == productID && it.Size == size {
			continue
		}
		items = append(items, it)
	}
	return e.persist(ctx, items, true)
}

// UpdateQuantity sets the matching item's quantity, clamped to a minimum of
// 1. There is no maximum or stock clamp here; that check happens at the
// product page before AddToCart only.
func (e *Engine) UpdateQuantity(ctx context.Context, productID, size string, quantity int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if quantity < 1 {
		quantity = 1
	}
	items := append([]Item(nil), e.state.Items...)
	for i := range items {
		if items[i].ProductID == productID && items[i].Size == size {
			items[i].Quantity = quantity
		}
	}
	return e.persist(ctx, items, true)
}

// Clear removes the identity-scoped entry and resets state to initial.
func (e *Engine) Clear(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.Delete(ctx, Key(e.userID)); err != nil {
		e.setError(err)
		return err
	}
	e.state = State{}
	return nil
}

// persist writes the list under the identity key, then dispatches the reducer
// update; notify mirrors the cart-changed event on remove/update paths.
func (e *Engine) persist(ctx context.Context, items []Item, notify bool) error {
	if err := e.store.Save(ctx, Key(e.userID), items); err != nil {
		e.setError(err)
		return err
	}
	e.updateCart(items)
	if notify {
		snap := e.snapshot()
		for _, fn := range e.onChange {
			fn(snap)
		}
	}
	return nil
}

// updateCart is the UPDATE_CART reduction: replace the list and recompute
// both aggregates from it.
func (e *Engine) updateCart(items []Item) {
	totalItems := 0
	totalAmount := 0.0
	for _, it := range items {
		totalItems += it.Quantity
		totalAmount += it.Price * float64(it.Quantity)
	}
	e.state = State{
		Items:       items,
		TotalItems:  totalItems,
		TotalAmount: totalAmount,
	}
}

func (e *Engine) setError(err error) {
	e.state.Err = err
	e.state.Loading = false
}
