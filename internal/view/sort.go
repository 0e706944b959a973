package view

import (
	"sort"
	"strings"

	"github.com/ksred/open-orders-api/internal/types"
)

// Sort returns a copy of orders totally ordered by the given field and
// direction. Price compares numerically as a decimal; the remaining sortable
// fields compare by their natural string ordering. The sort is stable, so
// orders with equal keys keep their pre-sort relative order and re-sorting an
// already sorted slice is a no-op.
func Sort(orders []types.Order, field types.SortField, dir types.SortDirection) []types.Order {
	sorted := make([]types.Order, len(orders))
	copy(sorted, orders)

	sort.SliceStable(sorted, func(i, j int) bool {
		cmp := compareOrders(sorted[i], sorted[j], field)
		if dir == types.SortDescending {
			return cmp > 0
		}
		return cmp < 0
	})

	return sorted
}

func compareOrders(a, b types.Order, field types.SortField) int {
	switch field {
	case types.SortByPrice:
		return a.Price.Cmp(b.Price)
	case types.SortByClient:
		return strings.Compare(a.Client, b.Client)
	case types.SortByTicker:
		return strings.Compare(a.Ticker, b.Ticker)
	default:
		return strings.Compare(a.Time, b.Time)
	}
}
