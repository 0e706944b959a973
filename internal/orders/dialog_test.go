package orders

import (
	"testing"

	"github.com/ksred/open-orders-api/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDialogOpenModifyStagesCurrentValues(t *testing.T) {
	d := NewDialog()
	order := types.Order{
		OrderID:  1,
		Price:    decimal.RequireFromString("250.5"),
		TotalQty: 100,
	}

	d.OpenModify(order)

	assert.Equal(t, DialogEditing, d.State)
	assert.Equal(t, 1, d.OrderID)
	assert.Equal(t, "250.5", d.StagedPrice)
	assert.Equal(t, "100", d.StagedQuantity)
}

func TestDialogOpenCancelStagesOrderOnly(t *testing.T) {
	d := NewDialog()
	d.OpenCancel(types.Order{OrderID: 4})

	assert.Equal(t, DialogConfirmingCancel, d.State)
	assert.Equal(t, 4, d.OrderID)
	assert.Empty(t, d.StagedPrice)
	assert.Empty(t, d.StagedQuantity)
}

func TestDialogCloseDiscardsStagedState(t *testing.T) {
	d := NewDialog()
	d.OpenModify(types.Order{OrderID: 2, Price: decimal.RequireFromString("10"), TotalQty: 5})

	d.Close()

	assert.Equal(t, DialogIdle, d.State)
	assert.Zero(t, d.OrderID)
	assert.Empty(t, d.StagedPrice)
	assert.Empty(t, d.StagedQuantity)
}

func TestDialogSlotIsExclusive(t *testing.T) {
	// The two flows share the one selected-order slot: opening the cancel
	// confirmation replaces an in-progress edit.
	d := NewDialog()
	d.OpenModify(types.Order{OrderID: 1, Price: decimal.RequireFromString("250.5"), TotalQty: 100})
	d.OpenCancel(types.Order{OrderID: 2})

	assert.Equal(t, DialogConfirmingCancel, d.State)
	assert.Equal(t, 2, d.OrderID)
	assert.Empty(t, d.StagedPrice)
}
