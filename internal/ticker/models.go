package ticker

// Trend is the direction of a ticker's cumulative change.
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// StockTicker is one instrument shown in the dashboard header. Value and
// Change are display values rounded to two decimal places.
type StockTicker struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Change float64 `json:"change"`
	Trend  Trend   `json:"trend"`
}

// SampleTickers returns the hard-coded header tickers the feed starts from.
func SampleTickers() []StockTicker {
	return []StockTicker{
		{Name: "SIGNORIA", Value: 0.0, Change: 0, Trend: TrendNeutral},
		{Name: "NIFTY BANK", Value: 52323.30, Change: 1.2, Trend: TrendUp},
		{Name: "NIFTY FIN SERVICE", Value: 25255.75, Change: 0.8, Trend: TrendUp},
		{Name: "RELCHEMO", Value: 162.73, Change: -0.5, Trend: TrendDown},
	}
}
