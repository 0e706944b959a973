package ticker

import (
	"math"
	"math/rand"
	"sync"

	"github.com/asaskevich/EventBus"
)

// TopicUpdated carries a fresh []StockTicker snapshot after every tick.
const TopicUpdated = "tickers.updated"

// Service holds the current ticker values and publishes every update on the
// event bus so streams can fan them out.
type Service struct {
	bus EventBus.Bus

	mu      sync.RWMutex
	tickers []StockTicker
}

// NewService creates a ticker service seeded with the sample tickers.
func NewService(bus EventBus.Bus) *Service {
	return &Service{
		bus:     bus,
		tickers: SampleTickers(),
	}
}

// Bus returns the event bus updates are published on.
func (s *Service) Bus() EventBus.Bus {
	return s.bus
}

// Snapshot returns a copy of the current ticker values.
func (s *Service) Snapshot() []StockTicker {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]StockTicker, len(s.tickers))
	copy(out, s.tickers)
	return out
}

// Tick perturbs every ticker once and publishes the new snapshot.
func (s *Service) Tick(rng *rand.Rand) []StockTicker {
	s.mu.Lock()
	for i := range s.tickers {
		s.tickers[i] = perturb(s.tickers[i], rng)
	}
	snapshot := make([]StockTicker, len(s.tickers))
	copy(snapshot, s.tickers)
	s.mu.Unlock()

	s.bus.Publish(TopicUpdated, snapshot)
	return snapshot
}

// perturb nudges a ticker by a random percentage in [-0.1%, +0.1%] and
// accumulates the same percentage into its change figure. A zero-value
// ticker has no price to move and is left alone.
func perturb(t StockTicker, rng *rand.Rand) StockTicker {
	if t.Value == 0 {
		return t
	}

	changePct := (rng.Float64() - 0.5) * 0.2
	t.Value = round2(t.Value * (1 + changePct/100))
	t.Change = round2(t.Change + changePct)

	switch {
	case t.Change > 0:
		t.Trend = TrendUp
	case t.Change < 0:
		t.Trend = TrendDown
	default:
		t.Trend = TrendNeutral
	}
	return t
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
