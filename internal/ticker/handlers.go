package ticker

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/ksred/open-orders-api/pkg/response"
	"github.com/rs/zerolog/log"
)

// GinHandlers contains HTTP handlers for the ticker endpoints
type GinHandlers struct {
	service  *Service
	upgrader websocket.Upgrader
}

// NewGinHandlers creates a new set of HTTP handlers for the ticker endpoints
func NewGinHandlers(service *Service) *GinHandlers {
	return &GinHandlers{
		service: service,
		upgrader: websocket.Upgrader{
			// The dashboard is served from arbitrary origins in development
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// GetTickersHandler handles GET requests for the current ticker snapshot
func (h *GinHandlers) GetTickersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, h.service.Snapshot())
	}
}

// StreamTickersHandler upgrades the request to a websocket and pushes a
// ticker snapshot on every feed update until the client goes away.
func (h *GinHandlers) StreamTickersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Error().Err(err).Msg("failed to upgrade ticker stream")
			return
		}
		defer conn.Close()

		connID := uuid.New().String()
		logger := log.With().Str("component", "ticker_stream").Str("conn_id", connID).Logger()
		logger.Info().Msg("ticker stream connected")

		// Serializes writes: the bus delivers asynchronously and the
		// initial snapshot races the first tick otherwise.
		var writeMu sync.Mutex
		push := func(tickers []StockTicker) {
			writeMu.Lock()
			defer writeMu.Unlock()
			if err := conn.WriteJSON(tickers); err != nil {
				logger.Debug().Err(err).Msg("dropping ticker stream")
				conn.Close()
			}
		}

		if err := h.service.Bus().SubscribeAsync(TopicUpdated, push, false); err != nil {
			logger.Error().Err(err).Msg("failed to subscribe ticker stream")
			return
		}
		defer func() {
			if err := h.service.Bus().Unsubscribe(TopicUpdated, push); err != nil {
				logger.Debug().Err(err).Msg("failed to unsubscribe ticker stream")
			}
		}()

		push(h.service.Snapshot())

		// Block on the read side to notice the peer closing.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				logger.Info().Msg("ticker stream disconnected")
				return
			}
		}
	}
}
