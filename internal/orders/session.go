package orders

import (
	"slices"

	"github.com/ksred/open-orders-api/internal/types"
	"github.com/ksred/open-orders-api/internal/view"
)

// Session is the ephemeral dashboard state of one authenticated client:
// filter, sort and page selections plus the dialog slot. None of it is
// persisted; a new session starts from the defaults below.
type Session struct {
	Filters types.FilterSelection
	Sort    types.SortSelection
	Page    types.PageSelection
	Dialog  Dialog
}

// NewSession returns a session with the dashboard defaults: no filters,
// newest orders first, first page.
func NewSession() *Session {
	return &Session{
		Sort: types.SortSelection{
			Field:     types.SortByTime,
			Direction: types.SortDescending,
		},
		Page: types.PageSelection{
			Page: 1,
			Size: types.DefaultPageSize,
		},
		Dialog: NewDialog(),
	}
}

// AddPinnedTicker pins a ticker to the allow-list. Pinning an already pinned
// ticker is a no-op, so the list behaves as an ordered set.
func (s *Session) AddPinnedTicker(ticker string) {
	if slices.Contains(s.Filters.PinnedTickers, ticker) {
		return
	}
	s.Filters.PinnedTickers = append(s.Filters.PinnedTickers, ticker)
}

// RemovePinnedTicker unpins a ticker; unknown tickers are ignored.
func (s *Session) RemovePinnedTicker(ticker string) {
	s.Filters.PinnedTickers = slices.DeleteFunc(s.Filters.PinnedTickers, func(t string) bool {
		return t == ticker
	})
}

// ClearFilters resets every filter dimension: pinned tickers, client,
// product, status and the search string. Sort and page selection are left
// untouched.
func (s *Session) ClearFilters() {
	s.Filters = types.FilterSelection{}
}

// SetSort applies a table-header click: sorting by the current field flips
// the direction, sorting by a new field starts ascending.
func (s *Session) SetSort(field types.SortField) {
	if s.Sort.Field == field {
		if s.Sort.Direction == types.SortAscending {
			s.Sort.Direction = types.SortDescending
		} else {
			s.Sort.Direction = types.SortAscending
		}
		return
	}
	s.Sort.Field = field
	s.Sort.Direction = types.SortAscending
}

// SetPage jumps to a page, clamped into [1, max(totalPages, 1)].
func (s *Session) SetPage(page, totalPages int) {
	s.Page.Page = view.ClampPage(page, totalPages)
}

// NextPage advances one page, clamped to the last page.
func (s *Session) NextPage(totalPages int) {
	s.SetPage(s.Page.Page+1, totalPages)
}

// PrevPage goes back one page, clamped to the first page.
func (s *Session) PrevPage(totalPages int) {
	s.SetPage(s.Page.Page-1, totalPages)
}
