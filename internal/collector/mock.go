package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"MarketPanel/internal/model"
)

// MockSource returns controllable fixed data for development and testing.
type MockSource struct {
	Series map[string][]model.OHLCV
	Errs   map[string]error

	mu    sync.Mutex
	calls []string
}

// NewMockSource creates an empty MockSource.
func NewMockSource() *MockSource {
	return &MockSource{
		Series: make(map[string][]model.OHLCV),
		Errs:   make(map[string]error),
	}
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) FetchDaily(_ context.Context, symbol string, start time.Time) (model.PriceSeries, error) {
	m.mu.Lock()
	m.calls = append(m.calls, symbol)
	m.mu.Unlock()

	if err, ok := m.Errs[symbol]; ok && err != nil {
		return model.PriceSeries{}, err
	}
	bars := Normalize(m.Series[symbol], start)
	if len(bars) == 0 {
		return model.PriceSeries{}, fmt.Errorf("mock %s: %w", symbol, ErrNoData)
	}
	return model.PriceSeries{Symbol: symbol, Bars: bars, FetchedAt: time.Now()}, nil
}

// Calls returns the symbols requested so far, in order.
func (m *MockSource) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// GenerateBars builds count consecutive weekday bars starting at start,
// drifting linearly from basePrice so the last close equals lastClose.
func GenerateBars(start time.Time, count int, basePrice, lastClose float64) []model.OHLCV {
	bars := make([]model.OHLCV, 0, count)
	d := model.NaiveDate(start)
	step := 0.0
	if count > 1 {
		step = (lastClose - basePrice) / float64(count-1)
	}
	for len(bars) < count {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			p := basePrice + step*float64(len(bars))
			bars = append(bars, model.OHLCV{
				Time:   d,
				Open:   p * 0.999,
				High:   p * 1.005,
				Low:    p * 0.995,
				Close:  p,
				Volume: 1000000,
			})
		}
		d = d.AddDate(0, 0, 1)
	}
	return bars
}
