package orders

import (
	"github.com/ksred/open-orders-api/internal/types"
	"github.com/shopspring/decimal"
)

// Dropdown options offered by the dashboard filters.
var (
	clientOptions  = []string{"AAA001", "AAA002", "AAA003"}
	productOptions = []types.Product{types.ProductCNC, types.ProductNRML, types.ProductIntraday}
	statusOptions  = []types.OrderStatus{types.StatusPending, types.StatusPartial, types.StatusComplete}
)

// SampleOrders returns the hard-coded orders the store is seeded with at
// process start.
func SampleOrders() []types.Order {
	return []types.Order{
		{
			OrderID:     1,
			Time:        "08:14:31",
			Client:      "AAA001",
			Ticker:      "RELIANCE",
			Side:        types.SideBuy,
			Product:     types.ProductCNC,
			ExecutedQty: 50,
			TotalQty:    100,
			Price:       decimal.RequireFromString("250.50"),
			Status:      types.StatusPartial,
			OrderType:   types.TypeLimit,
		},
		{
			OrderID:     2,
			Time:        "08:14:31",
			Client:      "AAA003",
			Ticker:      "MRF",
			Side:        types.SideBuy,
			Product:     types.ProductNRML,
			ExecutedQty: 10,
			TotalQty:    20,
			Price:       decimal.RequireFromString("2700.00"),
			Status:      types.StatusPartial,
			OrderType:   types.TypeLimit,
		},
		{
			OrderID:     3,
			Time:        "08:14:31",
			Client:      "AAA002",
			Ticker:      "ASIANPAINT",
			Side:        types.SideBuy,
			Product:     types.ProductNRML,
			ExecutedQty: 10,
			TotalQty:    30,
			Price:       decimal.RequireFromString("1500.60"),
			Status:      types.StatusPartial,
			OrderType:   types.TypeLimit,
		},
		{
			OrderID:     4,
			Time:        "08:14:31",
			Client:      "AAA002",
			Ticker:      "TATAINVEST",
			Side:        types.SideSell,
			Product:     types.ProductIntraday,
			ExecutedQty: 10,
			TotalQty:    10,
			Price:       decimal.RequireFromString("2300.10"),
			Status:      types.StatusComplete,
			OrderType:   types.TypeMarket,
		},
		{
			OrderID:     5,
			Time:        "08:15:22",
			Client:      "AAA001",
			Ticker:      "HDFC",
			Side:        types.SideSell,
			Product:     types.ProductCNC,
			ExecutedQty: 0,
			TotalQty:    25,
			Price:       decimal.RequireFromString("1650.75"),
			Status:      types.StatusPending,
			OrderType:   types.TypeLimit,
		},
		{
			OrderID:     6,
			Time:        "08:16:45",
			Client:      "AAA003",
			Ticker:      "ICICIBANK",
			Side:        types.SideBuy,
			Product:     types.ProductNRML,
			ExecutedQty: 15,
			TotalQty:    50,
			Price:       decimal.RequireFromString("950.25"),
			Status:      types.StatusPartial,
			OrderType:   types.TypeLimit,
		},
	}
}
