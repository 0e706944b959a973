package orders

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/ksred/open-orders-api/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteOrdersCSVHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrdersCSV(&buf, nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, "Time,Client,Ticker,Side,Product,Executed Qty,Total Qty,Price,Status", lines[0])
}

func TestWriteOrdersCSVRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrdersCSV(&buf, SampleOrders()[:2]))

	reader := csv.NewReader(&buf)
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"08:14:31", "AAA001", "RELIANCE", "Buy", "CNC", "50", "100", "250.5", "Partial"}, records[1])
	assert.Equal(t, []string{"08:14:31", "AAA003", "MRF", "Buy", "NRML", "10", "20", "2700", "Partial"}, records[2])
}

func TestWriteOrdersCSVQuotesEmbeddedCommas(t *testing.T) {
	orders := []types.Order{{
		OrderID: 1,
		Time:    "08:14:31",
		Client:  "ACME, LLC",
		Ticker:  "RELIANCE",
		Side:    types.SideBuy,
		Product: types.ProductCNC,
		Price:   decimal.RequireFromString("100"),
		Status:  types.StatusPending,
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteOrdersCSV(&buf, orders))

	assert.Contains(t, buf.String(), `"ACME, LLC"`)

	// The quoted field survives a round trip intact
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "ACME, LLC", records[1][1])
}

func TestExportUsesFilteredSortedUnpaginatedList(t *testing.T) {
	svc := newTestService(t)

	// Sort by price descending and pin two tickers
	_, err := svc.SetSort(testClient, types.SortByPrice)
	require.NoError(t, err)
	_, err = svc.SetSort(testClient, types.SortByPrice)
	require.NoError(t, err)
	_, err = svc.AddPinnedTicker(testClient, "RELIANCE")
	require.NoError(t, err)
	_, err = svc.AddPinnedTicker(testClient, "MRF")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportOrders(testClient, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus the two pinned orders")
	assert.Equal(t, "MRF", records[1][2], "most expensive first")
	assert.Equal(t, "RELIANCE", records[2][2])
}
