package view

import (
	"testing"

	"github.com/ksred/open-orders-api/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrders() []types.Order {
	return []types.Order{
		{OrderID: 1, Time: "08:14:31", Client: "AAA001", Ticker: "RELIANCE", Product: types.ProductCNC, Status: types.StatusPartial, Price: decimal.RequireFromString("250.50")},
		{OrderID: 2, Time: "08:14:31", Client: "AAA003", Ticker: "MRF", Product: types.ProductNRML, Status: types.StatusPartial, Price: decimal.RequireFromString("2700.00")},
		{OrderID: 3, Time: "08:14:31", Client: "AAA002", Ticker: "ASIANPAINT", Product: types.ProductNRML, Status: types.StatusPartial, Price: decimal.RequireFromString("1500.60")},
		{OrderID: 4, Time: "08:14:31", Client: "AAA002", Ticker: "TATAINVEST", Product: types.ProductIntraday, Status: types.StatusComplete, Price: decimal.RequireFromString("2300.10")},
		{OrderID: 5, Time: "08:15:22", Client: "AAA001", Ticker: "HDFC", Product: types.ProductCNC, Status: types.StatusPending, Price: decimal.RequireFromString("1650.75")},
		{OrderID: 6, Time: "08:16:45", Client: "AAA003", Ticker: "ICICIBANK", Product: types.ProductNRML, Status: types.StatusPartial, Price: decimal.RequireFromString("950.25")},
	}
}

func orderIDs(orders []types.Order) []int {
	ids := make([]int, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.OrderID)
	}
	return ids
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name    string
		sel     types.FilterSelection
		wantIDs []int
	}{
		{
			name:    "no active predicates keeps everything",
			sel:     types.FilterSelection{},
			wantIDs: []int{1, 2, 3, 4, 5, 6},
		},
		{
			name:    "client filter",
			sel:     types.FilterSelection{Client: "AAA002"},
			wantIDs: []int{3, 4},
		},
		{
			name:    "product filter",
			sel:     types.FilterSelection{Product: types.ProductNRML},
			wantIDs: []int{2, 3, 6},
		},
		{
			name:    "status filter",
			sel:     types.FilterSelection{Status: types.StatusPending},
			wantIDs: []int{5},
		},
		{
			name:    "search matches ticker case-insensitively",
			sel:     types.FilterSelection{Search: "reli"},
			wantIDs: []int{1},
		},
		{
			name:    "search matches client substring",
			sel:     types.FilterSelection{Search: "aaa001"},
			wantIDs: []int{1, 5},
		},
		{
			name:    "pinned tickers restrict to exactly those tickers",
			sel:     types.FilterSelection{PinnedTickers: []string{"RELIANCE", "ASIANPAINT"}},
			wantIDs: []int{1, 3},
		},
		{
			name: "predicates combine as AND",
			sel: types.FilterSelection{
				Client:  "AAA003",
				Product: types.ProductNRML,
				Search:  "icici",
			},
			wantIDs: []int{6},
		},
		{
			name: "conjunction can be empty",
			sel: types.FilterSelection{
				Client: "AAA001",
				Status: types.StatusComplete,
			},
			wantIDs: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(testOrders(), tt.sel)
			assert.Equal(t, tt.wantIDs, orderIDs(got))
		})
	}
}

func TestFilterSoundness(t *testing.T) {
	// Every survivor satisfies all active predicates, every excluded order
	// fails at least one.
	sel := types.FilterSelection{
		Product:       types.ProductNRML,
		Search:        "aaa",
		PinnedTickers: []string{"MRF", "ICICIBANK", "HDFC"},
	}

	orders := testOrders()
	got := Filter(orders, sel)

	matches := func(o types.Order) bool {
		return o.Product == types.ProductNRML &&
			(o.Ticker == "MRF" || o.Ticker == "ICICIBANK" || o.Ticker == "HDFC")
	}

	kept := make(map[int]bool)
	for _, o := range got {
		require.True(t, matches(o), "order %d should not have survived", o.OrderID)
		kept[o.OrderID] = true
	}
	for _, o := range orders {
		if matches(o) {
			assert.True(t, kept[o.OrderID], "order %d should have survived", o.OrderID)
		}
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	sel := types.FilterSelection{Product: types.ProductNRML, Search: "a"}

	once := Filter(testOrders(), sel)
	twice := Filter(once, sel)

	assert.Equal(t, once, twice)
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	orders := testOrders()
	Filter(orders, types.FilterSelection{Client: "AAA001"})
	assert.Equal(t, testOrders(), orders)
}
