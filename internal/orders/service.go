package orders

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/ksred/open-orders-api/internal/types"
	"github.com/ksred/open-orders-api/internal/view"
	"github.com/ksred/open-orders-api/pkg/response"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrDialogNotOpen is returned when a commit or abort arrives without a
	// matching open dialog.
	ErrDialogNotOpen = errors.New("no open dialog for this action")
)

// Service owns the order store and the per-client dashboard sessions. All
// session access is serialized through one mutex: the dashboard is a
// synchronous UI, so every derived view is computed atomically from the
// current store snapshot.
type Service struct {
	db *Database

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewService creates a new dashboard service with the given database connection
func NewService(gormDB *gorm.DB) *Service {
	return &Service{
		db:       NewDatabase(gormDB),
		sessions: make(map[string]*Session),
	}
}

// Seed loads the sample orders into the store.
func (s *Service) Seed() error {
	return s.db.SeedOrders(SampleOrders())
}

// session returns the dashboard session for a client, creating it on first
// use. Callers must hold s.mu.
func (s *Service) session(clientID string) *Session {
	sess, ok := s.sessions[clientID]
	if !ok {
		sess = NewSession()
		s.sessions[clientID] = sess
	}
	return sess
}

// OrderPage is the rendered order list of one session: the current page and
// its metadata plus an echo of the selections and the dropdown options.
type OrderPage struct {
	view.Page
	Filters types.FilterSelection `json:"filters"`
	Sort    types.SortSelection   `json:"sort"`
	Options FilterOptions         `json:"options"`
	Dialog  Dialog                `json:"dialog"`
}

// FilterOptions lists the values offered by the filter dropdowns.
type FilterOptions struct {
	Clients  []string            `json:"clients"`
	Products []types.Product     `json:"products"`
	Statuses []types.OrderStatus `json:"statuses"`
}

// ListOrders derives the current page of the client's dashboard from a fresh
// store snapshot.
func (s *Service) ListOrders(clientID string) (*OrderPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderLocked(s.session(clientID))
}

// renderLocked recomputes the derived view for a session. The effective page
// is written back so navigation stays clamped after the filtered set shrinks.
func (s *Service) renderLocked(sess *Session) (*OrderPage, error) {
	orders, err := s.db.ListOrders()
	if err != nil {
		return nil, err
	}

	page := view.Derive(orders, sess.Filters, sess.Sort, sess.Page)
	sess.Page.Page = page.Number

	return &OrderPage{
		Page:    page,
		Filters: sess.Filters,
		Sort:    sess.Sort,
		Options: FilterOptions{
			Clients:  clientOptions,
			Products: productOptions,
			Statuses: statusOptions,
		},
		Dialog: sess.Dialog,
	}, nil
}

// FilterUpdate carries the dropdown and search selections. Empty strings
// mean "no filter" for that dimension.
type FilterUpdate struct {
	Client  string            `json:"client"`
	Product types.Product     `json:"product"`
	Status  types.OrderStatus `json:"status"`
	Search  string            `json:"search"`
}

// SetFilters replaces the dropdown and search selections of the session.
// Pinned tickers are managed separately by AddPinnedTicker/RemovePinnedTicker.
func (s *Service) SetFilters(clientID string, upd FilterUpdate) (*OrderPage, error) {
	if upd.Product != "" && !upd.Product.Valid() {
		return nil, response.NewValidationError("product", "unknown product")
	}
	if upd.Status != "" && !upd.Status.Valid() {
		return nil, response.NewValidationError("status", "unknown status")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(clientID)
	sess.Filters.Client = upd.Client
	sess.Filters.Product = upd.Product
	sess.Filters.Status = upd.Status
	sess.Filters.Search = upd.Search
	return s.renderLocked(sess)
}

// AddPinnedTicker pins a ticker to the session's allow-list.
func (s *Service) AddPinnedTicker(clientID, ticker string) (*OrderPage, error) {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return nil, response.NewValidationError("ticker", "must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(clientID)
	sess.AddPinnedTicker(ticker)
	return s.renderLocked(sess)
}

// RemovePinnedTicker unpins a ticker from the session's allow-list.
func (s *Service) RemovePinnedTicker(clientID, ticker string) (*OrderPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(clientID)
	sess.RemovePinnedTicker(ticker)
	return s.renderLocked(sess)
}

// ClearFilters resets every filter dimension but keeps sort and page.
func (s *Service) ClearFilters(clientID string) (*OrderPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(clientID)
	sess.ClearFilters()
	return s.renderLocked(sess)
}

// SetSort applies a header click on a sortable column.
func (s *Service) SetSort(clientID string, field types.SortField) (*OrderPage, error) {
	if !field.Valid() {
		return nil, response.NewValidationError("field", "not a sortable field")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(clientID)
	sess.SetSort(field)
	return s.renderLocked(sess)
}

// SetPage jumps to a page of the current derived list.
func (s *Service) SetPage(clientID string, page int) (*OrderPage, error) {
	return s.navigate(clientID, func(sess *Session, totalPages int) {
		sess.SetPage(page, totalPages)
	})
}

// NextPage advances to the next page, staying on the last one at the end.
func (s *Service) NextPage(clientID string) (*OrderPage, error) {
	return s.navigate(clientID, func(sess *Session, totalPages int) {
		sess.NextPage(totalPages)
	})
}

// PrevPage goes back one page, staying on the first one at the start.
func (s *Service) PrevPage(clientID string) (*OrderPage, error) {
	return s.navigate(clientID, func(sess *Session, totalPages int) {
		sess.PrevPage(totalPages)
	})
}

// navigate clamps a page move against the total pages of the current
// filtered list, then re-renders.
func (s *Service) navigate(clientID string, move func(*Session, int)) (*OrderPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(clientID)
	orders, err := s.db.ListOrders()
	if err != nil {
		return nil, err
	}
	filtered := view.Filter(orders, sess.Filters)
	move(sess, view.TotalPages(len(filtered), sess.Page.Size))
	return s.renderLocked(sess)
}

// OpenModify stages an order's price and quantity into the session's dialog
// slot and returns the staged state. Any other open dialog is replaced.
func (s *Service) OpenModify(clientID string, orderID int) (*Dialog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.db.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, gorm.ErrRecordNotFound
	}

	sess := s.session(clientID)
	sess.Dialog.OpenModify(*order)
	return &sess.Dialog, nil
}

// OpenCancel stages an order for cancel confirmation.
func (s *Service) OpenCancel(clientID string, orderID int) (*Dialog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.db.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, gorm.ErrRecordNotFound
	}

	sess := s.session(clientID)
	sess.Dialog.OpenCancel(*order)
	return &sess.Dialog, nil
}

// CommitModify applies the staged edit to the order store: price and total
// quantity are overwritten and the status is forced to Modified. Empty
// request fields fall back to the values staged when the dialog opened.
// A value that does not parse rejects the commit and leaves the dialog open,
// so nothing non-numeric ever reaches the store.
func (s *Service) CommitModify(clientID, price, quantity string) (*OrderPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(clientID)
	if sess.Dialog.State != DialogEditing {
		return nil, ErrDialogNotOpen
	}

	if price != "" {
		sess.Dialog.StagedPrice = price
	}
	if quantity != "" {
		sess.Dialog.StagedQuantity = quantity
	}

	newPrice, err := parsePrice(sess.Dialog.StagedPrice)
	if err != nil {
		return nil, err
	}
	newQty, err := parseQuantity(sess.Dialog.StagedQuantity)
	if err != nil {
		return nil, err
	}

	order, err := s.db.GetOrder(sess.Dialog.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		// The order was cancelled while the dialog was open.
		sess.Dialog.Close()
		return nil, gorm.ErrRecordNotFound
	}

	order.Price = newPrice
	order.TotalQty = newQty
	order.Status = types.StatusModified
	if err := s.db.SaveOrder(order); err != nil {
		return nil, err
	}

	sess.Dialog.Close()
	return s.renderLocked(sess)
}

// CommitCancel removes the staged order from the store. The delete is
// idempotent: confirming a cancel for an order that is already gone still
// succeeds and just closes the dialog.
func (s *Service) CommitCancel(clientID string) (*OrderPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(clientID)
	if sess.Dialog.State != DialogConfirmingCancel {
		return nil, ErrDialogNotOpen
	}

	if err := s.db.DeleteOrder(sess.Dialog.OrderID); err != nil {
		return nil, err
	}

	sess.Dialog.Close()
	return s.renderLocked(sess)
}

// CloseDialog aborts whichever dialog is open without touching the store.
func (s *Service) CloseDialog(clientID string) (*OrderPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(clientID)
	sess.Dialog.Close()
	return s.renderLocked(sess)
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, response.NewValidationError("price", "must be a decimal number")
	}
	if price.IsNegative() {
		return decimal.Zero, response.NewValidationError("price", "must not be negative")
	}
	return price, nil
}

func parseQuantity(raw string) (int, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, response.NewValidationError("quantity", "must be an integer")
	}
	if qty < 0 {
		return 0, response.NewValidationError("quantity", "must not be negative")
	}
	return qty, nil
}
