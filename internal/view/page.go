package view

import "github.com/ksred/open-orders-api/internal/types"

// TotalPages returns ceil(count/size). Zero orders yields zero pages;
// navigation treats that as a single empty page via ClampPage.
func TotalPages(count, size int) int {
	if size <= 0 {
		return 0
	}
	return (count + size - 1) / size
}

// ClampPage forces a 1-based page number into [1, max(totalPages, 1)].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate returns the 1-based page of the given size: the slice
// [(page-1)*size, page*size) clipped to the collection length.
func Paginate(orders []types.Order, page, size int) []types.Order {
	start := (page - 1) * size
	if start < 0 || start >= len(orders) {
		return []types.Order{}
	}
	end := start + size
	if end > len(orders) {
		end = len(orders)
	}
	return orders[start:end]
}
