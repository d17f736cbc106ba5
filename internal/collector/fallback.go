package collector

import (
	"context"
	"fmt"
	"time"

	"MarketPanel/internal/logger"
	"MarketPanel/internal/model"
)

// Attempt records the outcome of fetching one candidate.
type Attempt struct {
	Candidate model.FetchCandidate
	Rows      int
	Err       error
}

// FallbackFetcher tries an ordered list of candidates against a Source and
// returns the first non-empty series. Later candidates are never consulted
// once one succeeds.
type FallbackFetcher struct {
	Source Source
}

// NewFallbackFetcher creates a FallbackFetcher over src.
func NewFallbackFetcher(src Source) *FallbackFetcher {
	return &FallbackFetcher{Source: src}
}

// Fetch returns the first candidate's non-empty series, or model.EmptyResult
// when every candidate failed or returned no rows.
func (f *FallbackFetcher) Fetch(ctx context.Context, candidates []model.FetchCandidate, start time.Time) model.FetchResult {
	res, _ := f.FetchTrace(ctx, candidates, start)
	return res
}

// FetchTrace is Fetch that also reports every attempt made, in order.
func (f *FallbackFetcher) FetchTrace(ctx context.Context, candidates []model.FetchCandidate, start time.Time) (model.FetchResult, []Attempt) {
	log := logger.WithComponent("fallback")
	attempts := make([]Attempt, 0, len(candidates))

	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			log.Warnf("fetch aborted before %s: %v", c.Symbol, err)
			break
		}

		series, err := f.fetchOne(ctx, c.Symbol, start)
		if err == nil && series.Empty() {
			err = ErrNoData
		}
		attempts = append(attempts, Attempt{Candidate: c, Rows: series.Len(), Err: err})

		entry := log.WithField("symbol", c.Symbol).WithField("label", c.Label)
		if err != nil {
			entry.Warnf("candidate unavailable: %v", err)
			continue
		}
		entry.WithField("rows", series.Len()).Info("candidate satisfied request")
		return model.FetchResult{Series: series, Label: c.Label}, attempts
	}

	log.WithField("candidates", len(candidates)).Error("all candidates exhausted")
	return model.EmptyResult, attempts
}

// fetchOne isolates a single candidate so a panicking source only fails that
// candidate.
func (f *FallbackFetcher) fetchOne(ctx context.Context, symbol string, start time.Time) (series model.PriceSeries, err error) {
	defer func() {
		if r := recover(); r != nil {
			series, err = model.PriceSeries{}, fmt.Errorf("source %s panicked: %v", f.Source.Name(), r)
		}
	}()
	return f.Source.FetchDaily(ctx, symbol, start)
}
