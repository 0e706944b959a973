package types

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Side string

type Product string

type OrderStatus string

type OrderType string

const (
	SideBuy  Side = "Buy"
	SideSell Side = "Sell"

	ProductCNC      Product = "CNC"
	ProductNRML     Product = "NRML"
	ProductIntraday Product = "INTRADAY"

	StatusPending  OrderStatus = "Pending"
	StatusPartial  OrderStatus = "Partial"
	StatusComplete OrderStatus = "Complete"
	StatusModified OrderStatus = "Modified"

	TypeLimit  OrderType = "LIMIT"
	TypeMarket OrderType = "MARKET"
)

// Valid reports whether the value belongs to the closed set of products.
func (p Product) Valid() bool {
	switch p {
	case ProductCNC, ProductNRML, ProductIntraday:
		return true
	}
	return false
}

// Valid reports whether the value belongs to the closed set of statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPartial, StatusComplete, StatusModified:
		return true
	}
	return false
}

// Order is one open trading order. OrderID is assigned at seed time and never
// changes. Status is caller-assigned: nothing derives it from the quantity
// fields, and ExecutedQty <= TotalQty is expected but not enforced.
type Order struct {
	gorm.Model  `json:"-"`
	OrderID     int             `gorm:"uniqueIndex" json:"order_id"`
	Time        string          `json:"time"`
	Client      string          `json:"client"`
	Ticker      string          `json:"ticker"`
	Side        Side            `json:"side"`
	Product     Product         `json:"product"`
	ExecutedQty int             `json:"executed_qty"`
	TotalQty    int             `json:"total_qty"`
	Price       decimal.Decimal `gorm:"type:numeric" json:"price"`
	Status      OrderStatus     `json:"status"`
	OrderType   OrderType       `json:"order_type"`
}
