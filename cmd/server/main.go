package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/asaskevich/EventBus"
	"github.com/ksred/open-orders-api/internal/auth"
	"github.com/ksred/open-orders-api/internal/config"
	"github.com/ksred/open-orders-api/internal/database"
	"github.com/ksred/open-orders-api/internal/orders"
	"github.com/ksred/open-orders-api/internal/ticker"
	"github.com/ksred/open-orders-api/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// init configures the application logging based on environment settings
// In development mode, it enables pretty printing with timestamps
// Debug logging can be enabled via DEBUG environment variable
func init() {
	// Configure pretty logging for development
	if os.Getenv("ENV") != "production" {
		output := zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
		zlog.Logger = zerolog.New(output).With().Timestamp().Logger()
	}

	// Set global log level
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if os.Getenv("DEBUG") == "true" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// main initializes and runs the dashboard API server with graceful shutdown
// support. It seeds the in-memory order store, starts the ticker feed and
// wires up all API routes.
func main() {
	cfg := config.Load()

	// Initialize the in-memory store
	db, err := database.NewDatabase()
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to initialize database")
	}

	// Initialize router
	router := gin.Default()

	// Initialize services and handlers
	authService := auth.NewService(cfg.JWTSecret)
	authHandlers := auth.NewGinHandlers(authService)
	// Register demo credentials
	authService.RegisterAPICredentials(auth.DemoAPIKey, auth.DemoAPISecret)

	orderService := orders.NewService(db)
	if err := orderService.Seed(); err != nil {
		zlog.Fatal().Err(err).Msg("Failed to seed orders")
	}
	orderHandlers := orders.NewGinHandlers(orderService)

	bus := EventBus.New()
	tickerService := ticker.NewService(bus)
	tickerHandlers := ticker.NewGinHandlers(tickerService)

	// Start the ticker feed; cancelling the context tears it down with the
	// server so the timer never outlives the dashboard.
	feed := ticker.NewFeed(tickerService, cfg.TickInterval)
	feedCtx, feedCancel := context.WithCancel(context.Background())
	defer feedCancel()

	go feed.Start(feedCtx)

	// Setup middleware
	router.Use(middleware.RateLimit())

	// Setup API routes
	setupRoutes(router, authService, authHandlers, orderHandlers, tickerHandlers)

	// Create server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown setup
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal().Err(err).Msg("listen")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info().Msg("Shutting down server...")

	// Stop the ticker feed before draining requests
	feedCancel()

	// Give outstanding operations 5 seconds to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	zlog.Info().Msg("Server exiting")
}

// setupRoutes configures all API endpoints and their handlers
// It groups routes by functionality:
// - Auth routes: Public endpoints for authentication
// - Order routes: The derived order list, dialogs and CSV export
// - View routes: Per-session filter, sort and page selections
// - Ticker routes: Header ticker snapshot and live stream
// All dashboard routes require a valid JWT.
func setupRoutes(
	router *gin.Engine,
	authService *auth.Service,
	authHandlers *auth.GinHandlers,
	orderHandlers *orders.GinHandlers,
	tickerHandlers *ticker.GinHandlers,
) {
	v1 := router.Group("/api/v1")
	{
		// Auth routes
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/token", authHandlers.GenerateTokenHandler())
		}

		// Order routes
		ordersGroup := v1.Group("/orders")
		ordersGroup.Use(middleware.JWTAuth(authService.Secret()))
		{
			ordersGroup.GET("", orderHandlers.ListOrdersHandler())
			ordersGroup.GET("/export", orderHandlers.ExportOrdersHandler())
			ordersGroup.POST("/:order_id/modify", orderHandlers.OpenModifyHandler())
			ordersGroup.POST("/:order_id/cancel", orderHandlers.OpenCancelHandler())
		}

		// Dialog routes operate on the session's open dialog
		dialog := v1.Group("/dialog")
		dialog.Use(middleware.JWTAuth(authService.Secret()))
		{
			dialog.POST("/modify", orderHandlers.CommitModifyHandler())
			dialog.POST("/cancel", orderHandlers.CommitCancelHandler())
			dialog.POST("/close", orderHandlers.CloseDialogHandler())
		}

		// View routes mutate the session's filter/sort/page selections
		viewGroup := v1.Group("/view")
		viewGroup.Use(middleware.JWTAuth(authService.Secret()))
		{
			viewGroup.PUT("/filters", orderHandlers.SetFiltersHandler())
			viewGroup.DELETE("/filters", orderHandlers.ClearFiltersHandler())
			viewGroup.POST("/filters/tickers", orderHandlers.AddPinnedTickerHandler())
			viewGroup.DELETE("/filters/tickers/:ticker", orderHandlers.RemovePinnedTickerHandler())
			viewGroup.PUT("/sort", orderHandlers.SetSortHandler())
			viewGroup.PUT("/page", orderHandlers.SetPageHandler())
			viewGroup.POST("/page/next", orderHandlers.NextPageHandler())
			viewGroup.POST("/page/previous", orderHandlers.PrevPageHandler())
		}

		// Ticker routes
		tickers := v1.Group("/tickers")
		tickers.Use(middleware.JWTAuth(authService.Secret()))
		{
			tickers.GET("", tickerHandlers.GetTickersHandler())
			tickers.GET("/stream", tickerHandlers.StreamTickersHandler())
		}
	}
}
