package orders

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ksred/open-orders-api/internal/auth"
	"github.com/ksred/open-orders-api/internal/types"
	"github.com/ksred/open-orders-api/pkg/response"
	"github.com/rs/zerolog/log"
)

// GinHandlers contains HTTP handlers for the dashboard endpoints
type GinHandlers struct {
	service *Service
}

// NewGinHandlers creates a new set of HTTP handlers for the dashboard endpoints
func NewGinHandlers(service *Service) *GinHandlers {
	return &GinHandlers{
		service: service,
	}
}

// clientID pulls the authenticated client ID out of the JWT claims set by
// the auth middleware. An empty return means the request was rejected.
func clientID(c *gin.Context) string {
	claims, exists := c.Get("claims")
	if !exists {
		response.Unauthorized(c, "Missing authentication claims")
		return ""
	}

	id := auth.GetClientID(claims)
	if id == "" {
		response.Unauthorized(c, "Invalid client ID in token")
	}
	return id
}

func orderIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		response.BadRequest(c, "Order ID must be an integer")
		return 0, false
	}
	return id, true
}

// ListOrdersHandler handles GET requests for the current derived order page
func (h *GinHandlers) ListOrdersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := clientID(c)
		if id == "" {
			return
		}

		page, err := h.service.ListOrders(id)
		response.Handle(c, page, err)
	}
}

// ExportOrdersHandler handles GET requests for the CSV download of the
// filtered, sorted order list
func (h *GinHandlers) ExportOrdersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := clientID(c)
		if id == "" {
			return
		}

		var buf bytes.Buffer
		if err := h.service.ExportOrders(id, &buf); err != nil {
			log.Error().Err(err).Str("client_id", id).Msg("failed to export orders")
			response.InternalError(c, "Failed to export orders")
			return
		}

		c.Header("Content-Disposition", `attachment; filename="`+ExportFilename+`"`)
		c.Data(http.StatusOK, "text/csv", buf.Bytes())
	}
}

// SetFiltersHandler handles PUT requests replacing the dropdown and search
// selections
func (h *GinHandlers) SetFiltersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := clientID(c)
		if id == "" {
			return
		}

		var upd FilterUpdate
		if err := c.ShouldBindJSON(&upd); err != nil {
			response.BadRequest(c, err.Error())
			return
		}

		page, err := h.service.SetFilters(id, upd)
		response.Handle(c, page, err)
	}
}

// AddPinnedTickerHandler handles POST requests pinning a ticker filter
func (h *GinHandlers) AddPinnedTickerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := clientID(c)
		if id == "" {
			return
		}

		var req struct {
			Ticker string `json:"ticker"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}

		page, err := h.service.AddPinnedTicker(id, req.Ticker)
		response.Handle(c, page, err)
	}
}

// RemovePinnedTickerHandler handles DELETE requests unpinning a ticker filter
// URL parameter: ticker
func (h *GinHandlers) RemovePinnedTickerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := clientID(c)
		if id == "" {
			return
		}

		page, err := h.service.RemovePinnedTicker(id, c.Param("ticker"))
		response.Handle(c, page, err)
	}
}

// ClearFiltersHandler handles DELETE requests resetting every filter
func (h *GinHandlers) ClearFiltersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := clientID(c)
		if id == "" {
			return
		}

		page, err := h.service.ClearFilters(id)
		response.Handle(c, page, err)
	}
}

// SetSortHandler handles PUT requests applying a sortable column header click
func (h *GinHandlers) SetSortHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := clientID(c)
		if id == "" {
			return
		}

		var req struct {
			Field types.SortField `json:"field"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}

		page, err := h.service.SetSort(id, req.Field)
		response.Handle(c, page, err)
	}
}

// SetPageHandler handles PUT requests jumping to a page
func (h *GinHandlers) SetPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := clientID(c)
		if id == "" {
			return
		}

		var req struct {
			Page int `json:"page"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}

		page, err := h.service.SetPage(id, req.Page)
		response.Handle(c, page, err)
	}
}

// NextPageHandler handles POST requests advancing one page
func (h *GinHandlers) NextPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := clientID(c)
		if id == "" {
			return
		}

		page, err := h.service.NextPage(id)
		response.Handle(c, page, err)
	}
}

// PrevPageHandler handles POST requests going back one page
func (h *GinHandlers) PrevPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := clientID(c)
		if id == "" {
			return
		}

		page, err := h.service.PrevPage(id)
		response.Handle(c, page, err)
	}
}

// OpenModifyHandler handles POST requests opening the modify dialog for an
// order
// URL parameter: order_id
func (h *GinHandlers) OpenModifyHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := clientID(c)
		if id == "" {
			return
		}

		orderID, ok := orderIDParam(c)
		if !ok {
			return
		}

		dialog, err := h.service.OpenModify(id, orderID)
		response.Handle(c, dialog, err)
	}
}

// OpenCancelHandler handles POST requests opening the cancel confirmation
// for an order
// URL parameter: order_id
func (h *GinHandlers) OpenCancelHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := clientID(c)
		if id == "" {
			return
		}

		orderID, ok := orderIDParam(c)
		if !ok {
			return
		}

		dialog, err := h.service.OpenCancel(id, orderID)
		response.Handle(c, dialog, err)
	}
}

// CommitModifyHandler handles POST requests committing the staged edit.
// Body fields price and quantity override the staged values when present.
func (h *GinHandlers) CommitModifyHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := clientID(c)
		if id == "" {
			return
		}

		var req struct {
			Price    string `json:"price"`
			Quantity string `json:"quantity"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}

		page, err := h.service.CommitModify(id, req.Price, req.Quantity)
		if err == ErrDialogNotOpen {
			response.BadRequest(c, err.Error())
			return
		}
		response.Handle(c, page, err)
	}
}

// CommitCancelHandler handles POST requests confirming the staged cancel
func (h *GinHandlers) CommitCancelHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := clientID(c)
		if id == "" {
			return
		}

		page, err := h.service.CommitCancel(id)
		if err == ErrDialogNotOpen {
			response.BadRequest(c, err.Error())
			return
		}
		response.Handle(c, page, err)
	}
}

// CloseDialogHandler handles POST requests aborting whichever dialog is open
func (h *GinHandlers) CloseDialogHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := clientID(c)
		if id == "" {
			return
		}

		page, err := h.service.CloseDialog(id)
		response.Handle(c, page, err)
	}
}
