package orders

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/ksred/open-orders-api/internal/types"
	"github.com/ksred/open-orders-api/internal/view"
)

// ExportFilename is the download name of the CSV document.
const ExportFilename = "open_orders.csv"

// csvOrder is one row of the export. Field order defines the header:
// Time,Client,Ticker,Side,Product,Executed Qty,Total Qty,Price,Status
type csvOrder struct {
	Time        string `csv:"Time"`
	Client      string `csv:"Client"`
	Ticker      string `csv:"Ticker"`
	Side        string `csv:"Side"`
	Product     string `csv:"Product"`
	ExecutedQty int    `csv:"Executed Qty"`
	TotalQty    int    `csv:"Total Qty"`
	Price       string `csv:"Price"`
	Status      string `csv:"Status"`
}

// ExportOrders writes the client's filtered and sorted order list, without
// pagination, as a CSV document. Fields pass through encoding/csv, so an
// embedded comma is quoted instead of corrupting the row.
func (s *Service) ExportOrders(clientID string, w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(clientID)
	orders, err := s.db.ListOrders()
	if err != nil {
		return err
	}

	return WriteOrdersCSV(w, view.Export(orders, sess.Filters, sess.Sort))
}

// WriteOrdersCSV writes orders to any io.Writer as CSV, one row per order in
// the given display order.
func WriteOrdersCSV(w io.Writer, orders []types.Order) error {
	rows := make([]csvOrder, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, csvOrder{
			Time:        o.Time,
			Client:      o.Client,
			Ticker:      o.Ticker,
			Side:        string(o.Side),
			Product:     string(o.Product),
			ExecutedQty: o.ExecutedQty,
			TotalQty:    o.TotalQty,
			Price:       o.Price.String(),
			Status:      string(o.Status),
		})
	}

	return gocsv.Marshal(&rows, w)
}
