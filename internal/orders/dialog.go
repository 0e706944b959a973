package orders

import (
	"strconv"

	"github.com/ksred/open-orders-api/internal/types"
)

// DialogState names the state of a session's single dialog slot.
type DialogState string

const (
	DialogIdle             DialogState = "idle"
	DialogEditing          DialogState = "editing"
	DialogConfirmingCancel DialogState = "confirming_cancel"
)

// Dialog is the selected-order slot of one dashboard session. Both the
// modify and the cancel flow share it, so opening either dialog replaces
// whatever was open before: two dialogs can never be open at once.
//
// The staged price and quantity are kept as the raw strings the user edits.
// They are only parsed at commit time.
type Dialog struct {
	State          DialogState `json:"state"`
	OrderID        int         `json:"order_id,omitempty"`
	StagedPrice    string      `json:"staged_price,omitempty"`
	StagedQuantity string      `json:"staged_quantity,omitempty"`
}

// NewDialog returns a closed dialog slot.
func NewDialog() Dialog {
	return Dialog{State: DialogIdle}
}

// OpenModify stages the order's current price and total quantity as editable
// fields and moves the slot to Editing.
func (d *Dialog) OpenModify(order types.Order) {
	d.State = DialogEditing
	d.OrderID = order.OrderID
	d.StagedPrice = order.Price.String()
	d.StagedQuantity = strconv.Itoa(order.TotalQty)
}

// OpenCancel stages the order for cancel confirmation.
func (d *Dialog) OpenCancel(order types.Order) {
	d.State = DialogConfirmingCancel
	d.OrderID = order.OrderID
	d.StagedPrice = ""
	d.StagedQuantity = ""
}

// Close discards any staged state and returns the slot to Idle. It never
// touches the order store.
func (d *Dialog) Close() {
	*d = NewDialog()
}
