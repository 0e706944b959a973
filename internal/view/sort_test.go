package view

import (
	"testing"

	"github.com/ksred/open-orders-api/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSort(t *testing.T) {
	tests := []struct {
		name    string
		field   types.SortField
		dir     types.SortDirection
		wantIDs []int
	}{
		{
			name:    "price ascending compares numerically",
			field:   types.SortByPrice,
			dir:     types.SortAscending,
			wantIDs: []int{1, 6, 3, 5, 4, 2},
		},
		{
			name:    "price descending",
			field:   types.SortByPrice,
			dir:     types.SortDescending,
			wantIDs: []int{2, 4, 5, 3, 6, 1},
		},
		{
			name:    "ticker ascending",
			field:   types.SortByTicker,
			dir:     types.SortAscending,
			wantIDs: []int{3, 5, 6, 2, 1, 4},
		},
		{
			name:  "time ascending keeps equal keys in input order",
			field: types.SortByTime,
			dir:   types.SortAscending,
			// Orders 1-4 share the same timestamp
			wantIDs: []int{1, 2, 3, 4, 5, 6},
		},
		{
			name:  "time descending keeps equal keys in input order",
			field: types.SortByTime,
			dir:   types.SortDescending,
			wantIDs: []int{6, 5, 1, 2, 3, 4},
		},
		{
			name:    "client ascending",
			field:   types.SortByClient,
			dir:     types.SortAscending,
			wantIDs: []int{1, 5, 3, 4, 2, 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sort(testOrders(), tt.field, tt.dir)
			assert.Equal(t, tt.wantIDs, orderIDs(got))
		})
	}
}

func TestSortAdjacentPairsRespectDirection(t *testing.T) {
	asc := Sort(testOrders(), types.SortByPrice, types.SortAscending)
	for i := 1; i < len(asc); i++ {
		assert.LessOrEqual(t, asc[i-1].Price.Cmp(asc[i].Price), 0)
	}

	desc := Sort(testOrders(), types.SortByPrice, types.SortDescending)
	for i := 1; i < len(desc); i++ {
		assert.GreaterOrEqual(t, desc[i-1].Price.Cmp(desc[i].Price), 0)
	}
}

func TestSortIsStableNoOpOnSortedInput(t *testing.T) {
	once := Sort(testOrders(), types.SortByTime, types.SortDescending)
	twice := Sort(once, types.SortByTime, types.SortDescending)

	require.Equal(t, len(once), len(twice))
	assert.Equal(t, orderIDs(once), orderIDs(twice))
}

func TestSortDoesNotMutateInput(t *testing.T) {
	orders := testOrders()
	Sort(orders, types.SortByPrice, types.SortDescending)
	assert.Equal(t, testOrders(), orders)
}

func TestSortPriceIsNumericNotLexicographic(t *testing.T) {
	orders := []types.Order{
		{OrderID: 1, Price: decimal.RequireFromString("900")},
		{OrderID: 2, Price: decimal.RequireFromString("1000")},
	}

	got := Sort(orders, types.SortByPrice, types.SortAscending)
	// Lexicographic comparison would put "1000" before "900"
	assert.Equal(t, []int{1, 2}, orderIDs(got))
}
