package orders

import (
	"testing"

	"github.com/ksred/open-orders-api/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestNewSessionDefaults(t *testing.T) {
	sess := NewSession()

	assert.Equal(t, types.SortByTime, sess.Sort.Field)
	assert.Equal(t, types.SortDescending, sess.Sort.Direction)
	assert.Equal(t, 1, sess.Page.Page)
	assert.Equal(t, types.DefaultPageSize, sess.Page.Size)
	assert.Equal(t, DialogIdle, sess.Dialog.State)
	assert.Empty(t, sess.Filters.PinnedTickers)
}

func TestAddPinnedTickerIsIdempotent(t *testing.T) {
	sess := NewSession()

	sess.AddPinnedTicker("RELIANCE")
	sess.AddPinnedTicker("ASIANPAINT")
	sess.AddPinnedTicker("RELIANCE")

	assert.Equal(t, []string{"RELIANCE", "ASIANPAINT"}, sess.Filters.PinnedTickers)
}

func TestRemovePinnedTicker(t *testing.T) {
	sess := NewSession()
	sess.AddPinnedTicker("RELIANCE")
	sess.AddPinnedTicker("ASIANPAINT")

	sess.RemovePinnedTicker("RELIANCE")
	assert.Equal(t, []string{"ASIANPAINT"}, sess.Filters.PinnedTickers)

	// Removing an unknown ticker is a no-op
	sess.RemovePinnedTicker("MRF")
	assert.Equal(t, []string{"ASIANPAINT"}, sess.Filters.PinnedTickers)
}

func TestClearFiltersLeavesSortAndPageAlone(t *testing.T) {
	sess := NewSession()
	sess.Filters = types.FilterSelection{
		Client:        "AAA002",
		Product:       types.ProductNRML,
		Status:        types.StatusPartial,
		Search:        "reli",
		PinnedTickers: []string{"RELIANCE"},
	}
	sess.SetSort(types.SortByPrice)
	sess.SetPage(2, 3)

	sess.ClearFilters()

	assert.Equal(t, types.FilterSelection{}, sess.Filters)
	assert.Equal(t, types.SortByPrice, sess.Sort.Field)
	assert.Equal(t, 2, sess.Page.Page)
}

func TestSetSortTogglesDirectionOnSameField(t *testing.T) {
	sess := NewSession() // time desc

	sess.SetSort(types.SortByTime)
	assert.Equal(t, types.SortAscending, sess.Sort.Direction)

	sess.SetSort(types.SortByTime)
	assert.Equal(t, types.SortDescending, sess.Sort.Direction)
}

func TestSetSortNewFieldStartsAscending(t *testing.T) {
	sess := NewSession()
	sess.SetSort(types.SortByTime) // now time asc... flip to make direction desc
	sess.SetSort(types.SortByTime)

	sess.SetSort(types.SortByPrice)

	assert.Equal(t, types.SortByPrice, sess.Sort.Field)
	assert.Equal(t, types.SortAscending, sess.Sort.Direction)
}

func TestPageNavigationClamps(t *testing.T) {
	sess := NewSession()

	sess.PrevPage(3)
	assert.Equal(t, 1, sess.Page.Page, "previous from the first page stays put")

	sess.NextPage(3)
	assert.Equal(t, 2, sess.Page.Page)
	sess.NextPage(3)
	assert.Equal(t, 3, sess.Page.Page)
	sess.NextPage(3)
	assert.Equal(t, 3, sess.Page.Page, "next from the last page stays put")

	sess.SetPage(99, 3)
	assert.Equal(t, 3, sess.Page.Page)
	sess.SetPage(-1, 3)
	assert.Equal(t, 1, sess.Page.Page)

	// With no orders at all the viewer sits on page 1
	sess.SetPage(5, 0)
	assert.Equal(t, 1, sess.Page.Page)
}
