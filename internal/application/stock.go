package application

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Stock arrives from the admin console in two historical shapes: per-size
// form fields ("stock[M]=3") and a JSON-encoded array of {size, quantity}
// pairs. Both normalize to []StockEntry, the single typed contract validated
// before it is merged into a product's stock map.

type StockEntry struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// StockError marks a stock submission the caller can fix; handlers map it to
// a validation failure rather than a server error.
type StockError struct {
	Msg string
}

func (e *StockError) Error() string { return e.Msg }

func stockErrorf(format string, args ...any) error {
	return &StockError{Msg: fmt.Sprintf(format, args...)}
}

// ParseStockEntries normalizes the submitted stock. A non-empty stockJSON
// takes precedence; otherwise one entry per declared size is read from
// stock[<size>] form fields, defaulting to 0 when absent or unparsable.
func ParseStockEntries(form url.Values, stockJSON string, sizes []string) ([]StockEntry, error) {
	if stockJSON != "" {
		var entries []StockEntry
		if err := json.Unmarshal([]byte(stockJSON), &entries); err != nil {
			return nil, fmt.Errorf("invalid stock payload: %w", err)
		}
		return entries, nil
	}

	entries := make([]StockEntry, 0, len(sizes))
	for _, size := range sizes {
		qty, _ := strconv.Atoi(form.Get("stock[" + size + "]"))
		if qty < 0 {
			qty = 0
		}
		entries = append(entries, StockEntry{Size: size, Quantity: qty})
	}
	return entries, nil
}

// ValidateStock rejects entries outside the declared sizes, negative
// quantities, and duplicate size keys.
func ValidateStock(entries []StockEntry, sizes []string) error {
	declared := make(map[string]bool, len(sizes))
	for _, s := range sizes {
		declared[s] = true
	}
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if !declared[e.Size] {
			return stockErrorf("stock size %q is not a declared size", e.Size)
		}
		if seen[e.Size] {
			return stockErrorf("duplicate stock entry for size %q", e.Size)
		}
		if e.Quantity < 0 {
			return stockErrorf("stock quantity for size %q must not be negative", e.Size)
		}
		seen[e.Size] = true
	}
	return nil
}

// BuildStock materializes validated entries into the stock map. The result
// replaces a product's stock wholesale: entries omitted here drop their size
// from the map.
func BuildStock(entries []StockEntry) map[string]int {
	stock := make(map[string]int, len(entries))
	for _, e := range entries {
		stock[e.Size] = e.Quantity
	}
	return stock
}
