// Package view derives the visible order list of a dashboard session from the
// order store: filter, then sort, then paginate. Every stage is a pure
// function over its input, so the pipeline can be recomputed from a fresh
// store snapshot on any input change.
package view

import "github.com/ksred/open-orders-api/internal/types"

// Page is one derived page of the order list plus its pagination metadata.
// The page number lives in Number so embedding Page does not shadow it.
type Page struct {
	Orders     []types.Order `json:"orders"`
	Total      int           `json:"total"`
	TotalPages int           `json:"total_pages"`
	Number     int           `json:"page"`
	PageSize   int           `json:"page_size"`
}

// Derive runs the full filter -> sort -> paginate pipeline. The reported page
// number is the effective one after clamping, which can differ from the
// requested page when the filtered set shrank.
func Derive(orders []types.Order, f types.FilterSelection, s types.SortSelection, p types.PageSelection) Page {
	sorted := Sort(Filter(orders, f), s.Field, s.Direction)

	totalPages := TotalPages(len(sorted), p.Size)
	page := ClampPage(p.Page, totalPages)

	return Page{
		Orders:     Paginate(sorted, page, p.Size),
		Total:      len(sorted),
		TotalPages: totalPages,
		Number:     page,
		PageSize:   p.Size,
	}
}

// Export derives the filtered, sorted, unpaginated order list used by the
// CSV download.
func Export(orders []types.Order, f types.FilterSelection, s types.SortSelection) []types.Order {
	return Sort(Filter(orders, f), s.Field, s.Direction)
}
