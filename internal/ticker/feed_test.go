package ticker

import (
	"context"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/require"
)

func TestFeedPublishesUpdatesUntilCancelled(t *testing.T) {
	bus := EventBus.New()
	svc := NewService(bus)

	updates := make(chan []StockTicker, 16)
	require.NoError(t, bus.Subscribe(TopicUpdated, func(tickers []StockTicker) {
		select {
		case updates <- tickers:
		default:
		}
	}))

	feed := NewFeed(svc, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		feed.Start(ctx)
		close(done)
	}()

	// At least one update arrives while the feed is running
	select {
	case <-updates:
	case <-time.After(time.Second):
		t.Fatal("no ticker update received from running feed")
	}

	// Cancelling the context stops the loop promptly
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("feed did not stop after context cancellation")
	}
}
