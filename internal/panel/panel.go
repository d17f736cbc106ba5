package panel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"MarketPanel/internal/cache"
	"MarketPanel/internal/calculator"
	"MarketPanel/internal/chart"
	"MarketPanel/internal/logger"
	"MarketPanel/internal/model"
)

// Status tells the presentation layer what it can draw.
type Status string

const (
	StatusOK                  Status = "ok"
	StatusEmpty               Status = "empty"
	StatusInsufficientHistory Status = "insufficient_history"
)

// NoDataMessage is shown when every candidate came back empty.
const NoDataMessage = "no data available: the market-data provider returned nothing, check the connection and retry later"

// View is everything the presentation layer needs for one render.
// Metrics and Chart are nil when Status is StatusEmpty; Metrics is nil when
// Status is StatusInsufficientHistory.
type View struct {
	Status      Status           `json:"status"`
	Label       string           `json:"label,omitempty"`
	Symbol      string           `json:"symbol,omitempty"`
	Rows        int              `json:"rows"`
	LatestPrice float64          `json:"latest_price,omitempty"`
	AsOf        time.Time        `json:"as_of"`
	Metrics     *model.Metrics   `json:"metrics,omitempty"`
	Chart       *model.ChartSpec `json:"chart,omitempty"`
	Message     string           `json:"message,omitempty"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// Fetcher produces a fetch result for an ordered candidate list.
type Fetcher interface {
	Fetch(ctx context.Context, candidates []model.FetchCandidate, start time.Time) model.FetchResult
}

// Options is the panel configuration supplied by the hosting UI.
type Options struct {
	Candidates       []model.FetchCandidate
	Start            time.Time
	TTL              time.Duration
	EntryDate        time.Time
	EntryLabel       string
	ReferenceLabel   string
	ReferenceValues  map[string]float64 // keyed by candidate label
	DefaultReference float64
}

// Panel wires the cached fallback fetch to the metrics and chart builders.
type Panel struct {
	fetcher Fetcher
	cache   *cache.Cache
	opts    Options
	key     string
	now     func() time.Time
}

// New creates a Panel.
func New(fetcher Fetcher, c *cache.Cache, opts Options) *Panel {
	return &Panel{
		fetcher: fetcher,
		cache:   c,
		opts:    opts,
		key:     cache.Key(opts.Candidates, opts.Start),
		now:     time.Now,
	}
}

// ReferenceFor returns the horizontal reference value for a candidate label.
func (p *Panel) ReferenceFor(label string) float64 {
	if v, ok := p.opts.ReferenceValues[label]; ok {
		return v
	}
	return p.opts.DefaultReference
}

// Fetch returns the cached fetch result, fetching on a miss or after the TTL.
// The provider round ignores caller cancellation so a dropped request never
// caches a false empty result; source timeouts still bound it.
func (p *Panel) Fetch(ctx context.Context) model.FetchResult {
	ctx = context.WithoutCancel(ctx)
	return p.cache.GetOrFetch(ctx, p.key, p.opts.TTL, func(ctx context.Context) model.FetchResult {
		return p.fetcher.Fetch(ctx, p.opts.Candidates, p.opts.Start)
	})
}

// Render runs the whole pipeline once.
func (p *Panel) Render(ctx context.Context) View {
	log := logger.WithComponent("panel")
	view := View{GeneratedAt: p.now()}

	res := p.Fetch(ctx)
	if res.Empty() {
		view.Status = StatusEmpty
		view.Message = NoDataMessage
		log.Warn("rendering empty panel")
		return view
	}

	series := res.Series
	last := series.Last()
	view.Label = res.Label
	view.Symbol = series.Symbol
	view.Rows = series.Len()
	view.LatestPrice = last.Close
	view.AsOf = last.Time

	spec, err := chart.Build(series, chart.Config{
		SeriesName:     fmt.Sprintf("%s Index", res.Label),
		EntryDate:      p.opts.EntryDate,
		EntryLabel:     p.opts.EntryLabel,
		ReferenceValue: p.ReferenceFor(res.Label),
		ReferenceLabel: p.opts.ReferenceLabel,
	})
	if err != nil {
		// Build only fails on an empty series, which was ruled out above.
		view.Status = StatusEmpty
		view.Message = err.Error()
		return view
	}
	view.Chart = &spec

	m, err := calculator.ComputeMetrics(series)
	if errors.Is(err, calculator.ErrInsufficientHistory) {
		view.Status = StatusInsufficientHistory
		view.Message = err.Error()
		log.WithField("rows", series.Len()).Warn("not enough history for metrics")
		return view
	}
	view.Metrics = &m
	view.Status = StatusOK
	return view
}

// Refresh drops the cached result and renders again.
func (p *Panel) Refresh(ctx context.Context) View {
	p.cache.Invalidate(p.key)
	return p.Render(ctx)
}

// Cached returns the entry currently held for the panel's candidates.
func (p *Panel) Cached() (cache.Entry, bool) {
	return p.cache.Peek(p.key)
}

// CacheStats exposes the cache counters.
func (p *Panel) CacheStats() cache.Stats {
	return p.cache.Stats()
}
