package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/gin-gonic/gin"
	"github.com/ksred/open-orders-api/internal/auth"
	"github.com/ksred/open-orders-api/internal/database"
	"github.com/ksred/open-orders-api/internal/orders"
	"github.com/ksred/open-orders-api/internal/ticker"
	"github.com/ksred/open-orders-api/pkg/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	minSessions   = 3
	maxSessions   = 10
	serverAddress = "http://localhost:8080"
)

var (
	pinnableTickers = []string{"RELIANCE", "MRF", "ASIANPAINT", "TATAINVEST", "HDFC", "ICICIBANK"}
	filterClients   = []string{"", "AAA001", "AAA002", "AAA003"}
	sortFields      = []string{"time", "client", "ticker", "price"}
)

// init configures the logger for the simulation with pretty printing and timestamp
func init() {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}

// routeStats tracks performance statistics for an API endpoint
type routeStats struct {
	name       string
	durations  []time.Duration
	totalCalls int
	failures   int
}

// addDuration records a new duration measurement for the route
func (rs *routeStats) addDuration(d time.Duration) {
	rs.durations = append(rs.durations, d)
	rs.totalCalls++
}

// calculate computes performance statistics from recorded durations
// Returns min, max, mean, median, 95th percentile, and 99th percentile durations
func (rs *routeStats) calculate() (min, max, mean, median, p95, p99 time.Duration) {
	if len(rs.durations) == 0 {
		return 0, 0, 0, 0, 0, 0
	}

	sort.Slice(rs.durations, func(i, j int) bool {
		return rs.durations[i] < rs.durations[j]
	})

	min = rs.durations[0]
	max = rs.durations[len(rs.durations)-1]

	var sum time.Duration
	for _, d := range rs.durations {
		sum += d
	}
	mean = sum / time.Duration(len(rs.durations))
	median = rs.durations[len(rs.durations)/2]

	p95idx := int(math.Ceil(float64(len(rs.durations))*0.95)) - 1
	p99idx := int(math.Ceil(float64(len(rs.durations))*0.99)) - 1
	p95 = rs.durations[p95idx]
	p99 = rs.durations[p99idx]

	return
}

// dashboardClient drives one scripted dashboard session over HTTP
type dashboardClient struct {
	baseURL   string
	authToken string
	client    *http.Client
	stats     map[string]*routeStats
}

// newDashboardClient authenticates against the API and prepares performance
// tracking for every dashboard route
func newDashboardClient() (*dashboardClient, error) {
	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	dc := &dashboardClient{
		baseURL: serverAddress,
		client:  client,
		stats: map[string]*routeStats{
			"auth":    {name: "Authentication"},
			"list":    {name: "List Orders"},
			"filters": {name: "Update Filters"},
			"pin":     {name: "Pin Ticker"},
			"sort":    {name: "Sort Column"},
			"page":    {name: "Page Navigation"},
			"modify":  {name: "Modify Order"},
			"cancel":  {name: "Cancel Order"},
			"export":  {name: "Export CSV"},
			"tickers": {name: "Get Tickers"},
		},
	}

	token, err := dc.authenticate()
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}
	dc.authToken = token

	return dc, nil
}

// authenticate performs API authentication and returns a JWT token
func (dc *dashboardClient) authenticate() (string, error) {
	start := time.Now()
	defer func() {
		dc.stats["auth"].addDuration(time.Since(start))
	}()

	credentials := map[string]string{
		"api_key":    auth.DemoAPIKey,
		"api_secret": auth.DemoAPISecret,
	}

	body, err := json.Marshal(credentials)
	if err != nil {
		return "", err
	}

	resp, err := dc.client.Post(
		fmt.Sprintf("%s/api/v1/auth/token", dc.baseURL),
		"application/json",
		bytes.NewBuffer(body),
	)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("authentication failed with status: %d", resp.StatusCode)
	}

	var result struct {
		Data struct {
			Token string `json:"jwt_token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	return result.Data.Token, nil
}

// call performs an authenticated request against a dashboard route and
// records its latency under the given stats key
func (dc *dashboardClient) call(statKey, method, path string, payload interface{}) (json.RawMessage, error) {
	start := time.Now()
	defer func() {
		dc.stats[statKey].addDuration(time.Since(start))
	}()

	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewBuffer(buf)
	}

	req, err := http.NewRequest(method, dc.baseURL+path, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", dc.authToken))
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := dc.client.Do(req)
	if err != nil {
		dc.stats[statKey].failures++
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		dc.stats[statKey].failures++
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		dc.stats[statKey].failures++
		return nil, fmt.Errorf("%s %s failed with status %d: %s", method, path, resp.StatusCode, string(respBody))
	}

	if strings.HasPrefix(resp.Header.Get("Content-Type"), "text/csv") {
		return json.RawMessage(respBody), nil
	}

	var result struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w, body: %s", err, string(respBody))
	}

	return result.Data, nil
}

// orderPage is the slice of the list response the simulation inspects
type orderPage struct {
	Orders []struct {
		OrderID int    `json:"order_id"`
		Ticker  string `json:"ticker"`
		Status  string `json:"status"`
	} `json:"orders"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
	Page       int `json:"page"`
}

func (dc *dashboardClient) listOrders() (*orderPage, error) {
	data, err := dc.call("list", "GET", "/api/v1/orders", nil)
	if err != nil {
		return nil, err
	}

	var page orderPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// runSession walks one scripted dashboard session: filter, pin, sort, page,
// modify one order, cancel another, then export
func runSession(dc *dashboardClient, session int) error {
	page, err := dc.listOrders()
	if err != nil {
		return err
	}
	log.Info().
		Int("session", session).
		Int("total", page.Total).
		Int("total_pages", page.TotalPages).
		Msg("Dashboard loaded")

	// Dropdown filters
	client := filterClients[rand.Intn(len(filterClients))]
	if _, err := dc.call("filters", "PUT", "/api/v1/view/filters", map[string]string{
		"client": client,
	}); err != nil {
		return err
	}

	// Pin a couple of tickers, then clear everything again
	for i := 0; i < 2; i++ {
		pin := pinnableTickers[rand.Intn(len(pinnableTickers))]
		if _, err := dc.call("pin", "POST", "/api/v1/view/filters/tickers", map[string]string{
			"ticker": pin,
		}); err != nil {
			return err
		}
	}
	if _, err := dc.call("filters", "DELETE", "/api/v1/view/filters", nil); err != nil {
		return err
	}

	// Sort by a random column, twice to exercise the direction toggle
	field := sortFields[rand.Intn(len(sortFields))]
	for i := 0; i < 2; i++ {
		if _, err := dc.call("sort", "PUT", "/api/v1/view/sort", map[string]string{
			"field": field,
		}); err != nil {
			return err
		}
	}

	// Walk forward and back through the pages
	if _, err := dc.call("page", "POST", "/api/v1/view/page/next", nil); err != nil {
		return err
	}
	if _, err := dc.call("page", "POST", "/api/v1/view/page/previous", nil); err != nil {
		return err
	}

	page, err = dc.listOrders()
	if err != nil {
		return err
	}
	if len(page.Orders) == 0 {
		log.Warn().Int("session", session).Msg("No orders left to mutate")
		return nil
	}

	// Modify the first visible order
	target := page.Orders[0].OrderID
	if _, err := dc.call("modify", "POST", fmt.Sprintf("/api/v1/orders/%d/modify", target), map[string]string{}); err != nil {
		return err
	}
	newPrice := fmt.Sprintf("%d.%02d", rand.Intn(3000)+100, rand.Intn(100))
	newQty := fmt.Sprintf("%d", rand.Intn(200)+1)
	if _, err := dc.call("modify", "POST", "/api/v1/dialog/modify", map[string]string{
		"price":    newPrice,
		"quantity": newQty,
	}); err != nil {
		return err
	}
	log.Info().
		Int("session", session).
		Int("order_id", target).
		Str("price", newPrice).
		Str("quantity", newQty).
		Msg("Order modified")

	// Occasionally cancel the last visible order
	if rand.Float64() < 0.3 && len(page.Orders) > 1 {
		victim := page.Orders[len(page.Orders)-1].OrderID
		if _, err := dc.call("cancel", "POST", fmt.Sprintf("/api/v1/orders/%d/cancel", victim), map[string]string{}); err != nil {
			return err
		}
		if _, err := dc.call("cancel", "POST", "/api/v1/dialog/cancel", map[string]string{}); err != nil {
			return err
		}
		log.Info().Int("session", session).Int("order_id", victim).Msg("Order cancelled")
	}

	// Download the CSV and check the header row
	csvData, err := dc.call("export", "GET", "/api/v1/orders/export", nil)
	if err != nil {
		return err
	}
	firstLine := strings.SplitN(string(csvData), "\n", 2)[0]
	log.Info().Int("session", session).Str("header", strings.TrimSpace(firstLine)).Msg("CSV exported")

	// Peek at the header tickers
	if _, err := dc.call("tickers", "GET", "/api/v1/tickers", nil); err != nil {
		return err
	}

	return nil
}

// printPerformanceStats renders the latency table for every exercised route
func (dc *dashboardClient) printPerformanceStats() {
	fmt.Println("\n" + strings.Repeat("=", 100))
	fmt.Println("DASHBOARD API PERFORMANCE")
	fmt.Println(strings.Repeat("=", 100))
	fmt.Printf("%-20s %10s %10s %10s %10s %10s %10s %10s %10s\n",
		"Route", "Calls", "Failures", "Min", "Max", "Mean", "Median", "P95", "P99")
	fmt.Println(strings.Repeat("-", 100))

	for _, stats := range dc.stats {
		min, max, mean, median, p95, p99 := stats.calculate()
		fmt.Printf("%-20s %10d %10d %10s %10s %10s %10s %10s %10s\n",
			stats.name,
			stats.totalCalls,
			stats.failures,
			min.Round(time.Millisecond),
			max.Round(time.Millisecond),
			mean.Round(time.Millisecond),
			median.Round(time.Millisecond),
			p95.Round(time.Millisecond),
			p99.Round(time.Millisecond))
	}
	fmt.Println(strings.Repeat("-", 100))
}

// main runs the dashboard simulation: it starts a local API server and
// replays a number of scripted dashboard sessions against it
func main() {
	go func() {
		if err := startServer(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for server to start
	time.Sleep(2 * time.Second)

	dc, err := newDashboardClient()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize dashboard client")
	}

	sessions := rand.Intn(maxSessions-minSessions) + minSessions
	log.Info().Int("sessions", sessions).Msg("Starting simulation")

	failed := 0
	start := time.Now()
	for i := 1; i <= sessions; i++ {
		if err := runSession(dc, i); err != nil {
			log.Error().Err(err).Int("session", i).Msg("Session failed")
			failed++
		}
	}

	log.Info().
		Int("sessions", sessions).
		Int("failed", failed).
		Dur("duration", time.Since(start)).
		Msg("Simulation completed")

	dc.printPerformanceStats()
}

// startServer initializes and starts the dashboard API server
// Sets up all required services, handlers and routes
func startServer() error {
	db, err := database.NewDatabase()
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	authService := auth.NewService("open-orders-secret-key")
	authService.RegisterAPICredentials(auth.DemoAPIKey, auth.DemoAPISecret)

	orderService := orders.NewService(db)
	if err := orderService.Seed(); err != nil {
		return fmt.Errorf("failed to seed orders: %w", err)
	}

	bus := EventBus.New()
	tickerService := ticker.NewService(bus)

	router := gin.Default()
	authHandlers := auth.NewGinHandlers(authService)
	orderHandlers := orders.NewGinHandlers(orderService)
	tickerHandlers := ticker.NewGinHandlers(tickerService)

	setupRoutes(router, authService, authHandlers, orderHandlers, tickerHandlers)

	return router.Run(":8080")
}

// setupRoutes configures all API endpoints and their handlers
// Mirrors the server command without the rate limiting middleware
func setupRoutes(
	router *gin.Engine,
	authService *auth.Service,
	authHandlers *auth.GinHandlers,
	orderHandlers *orders.GinHandlers,
	tickerHandlers *ticker.GinHandlers,
) {
	v1 := router.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/token", authHandlers.GenerateTokenHandler())
		}

		ordersGroup := v1.Group("/orders")
		ordersGroup.Use(middleware.JWTAuth(authService.Secret()))
		{
			ordersGroup.GET("", orderHandlers.ListOrdersHandler())
			ordersGroup.GET("/export", orderHandlers.ExportOrdersHandler())
			ordersGroup.POST("/:order_id/modify", orderHandlers.OpenModifyHandler())
			ordersGroup.POST("/:order_id/cancel", orderHandlers.OpenCancelHandler())
		}

		dialog := v1.Group("/dialog")
		dialog.Use(middleware.JWTAuth(authService.Secret()))
		{
			dialog.POST("/modify", orderHandlers.CommitModifyHandler())
			dialog.POST("/cancel", orderHandlers.CommitCancelHandler())
			dialog.POST("/close", orderHandlers.CloseDialogHandler())
		}

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

		tickers := v1.Group("/tickers")
		tickers.Use(middleware.JWTAuth(authService.Secret()))
		{
			tickers.GET("", tickerHandlers.GetTickersHandler())
			tickers.GET("/stream", tickerHandlers.StreamTickersHandler())
		}
	}
}
