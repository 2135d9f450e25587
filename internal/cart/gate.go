package cart

import "github.com/khalilbouhlel1/threadly-api/internal/domain/entity"

// Stock-availability gate used by the product page before AddToCart. Both
// checks read the last-fetched product snapshot; nothing here reserves stock,
// and no purchase flow decrements it.

// SizeAvailable reports whether the size can be selected: a zero or absent
// stock entry disables it.
func SizeAvailable(p *entity.Product, size string) bool {
	return p.Stock[size] > 0
}

// ClampQuantity clamps q to [1, stock[size]] at selection time. A size with
// no stock entry clamps to 1, matching the selector's fallback.
func ClampQuantity(p *entity.Product, size string, q int) int {
	limit := p.Stock[size]
	if limit < 1 {
		limit = 1
	}
	if q > limit {
		q = limit
	}
	if q < 1 {
		q = 1
	}
	return q
}
