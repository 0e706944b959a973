package view

import (
	"slices"
	"strings"

	"github.com/ksred/open-orders-api/internal/types"
)

// Filter narrows orders to those matching every active predicate of the
// selection. Inactive dimensions (zero values) match everything. The filter
// is stable: survivors keep their input order. The input slice is never
// modified.
func Filter(orders []types.Order, sel types.FilterSelection) []types.Order {
	search := strings.ToLower(sel.Search)

	out := make([]types.Order, 0, len(orders))
	for _, o := range orders {
		if sel.Client != "" && o.Client != sel.Client {
			continue
		}
		if sel.Product != "" && o.Product != sel.Product {
			continue
		}
		if sel.Status != "" && o.Status != sel.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(o.Ticker), search) &&
			!strings.Contains(strings.ToLower(o.Client), search) {
			continue
		}
		if len(sel.PinnedTickers) > 0 && !slices.Contains(sel.PinnedTickers, o.Ticker) {
			continue
		}
		out = append(out, o)
	}
	return out
}
