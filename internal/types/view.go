package types

// SortField names an order field the dashboard can sort by.
type SortField string

type SortDirection string

const (
	SortByTime   SortField = "time"
	SortByClient SortField = "client"
	SortByTicker SortField = "ticker"
	SortByPrice  SortField = "price"

	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// DefaultPageSize is the fixed number of orders shown per page.
const DefaultPageSize = 10

// Valid reports whether the field is one of the sortable order fields.
func (f SortField) Valid() bool {
	switch f {
	case SortByTime, SortByClient, SortByTicker, SortByPrice:
		return true
	}
	return false
}

// FilterSelection is the ephemeral filter state of one dashboard session.
// A zero value on Client, Product, Status or Search means that dimension is
// not filtered; there is no "All ..." sentinel string. PinnedTickers, when
// non-empty, restricts results to exactly those tickers.
type FilterSelection struct {
	Client        string      `json:"client,omitempty"`
	Product       Product     `json:"product,omitempty"`
	Status        OrderStatus `json:"status,omitempty"`
	Search        string      `json:"search,omitempty"`
	PinnedTickers []string    `json:"pinned_tickers,omitempty"`
}

type SortSelection struct {
	Field     SortField     `json:"field"`
	Direction SortDirection `json:"direction"`
}

// PageSelection is a 1-based page number with a fixed page size.
type PageSelection struct {
	Page int `json:"page"`
	Size int `json:"size"`
}
