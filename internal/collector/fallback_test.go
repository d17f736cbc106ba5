package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"MarketPanel/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start2024 = model.Date(2024, 1, 1)

var abCandidates = []model.FetchCandidate{
	{Symbol: "A", Label: "A"},
	{Symbol: "B", Label: "B"},
}

func TestFallbackFetcher_FirstNonEmptyWins(t *testing.T) {
	src := NewMockSource()
	src.Series["A"] = GenerateBars(start2024, 5, 100, 105)
	src.Series["B"] = GenerateBars(start2024, 100, 200, 300)

	res := NewFallbackFetcher(src).Fetch(context.Background(), abCandidates, start2024)

	require.False(t, res.Empty())
	assert.Equal(t, "A", res.Label)
	assert.Equal(t, 5, res.Series.Len())
	assert.Equal(t, []string{"A"}, src.Calls(), "later candidates must not be tried")
}

func TestFallbackFetcher_PrimaryFailsSecondaryUsed(t *testing.T) {
	src := NewMockSource()
	src.Errs["A"] = errors.New("connection reset")
	src.Series["B"] = GenerateBars(start2024, 10, 200, 210)

	res, attempts := NewFallbackFetcher(src).FetchTrace(context.Background(), abCandidates, start2024)

	assert.Equal(t, "B", res.Label)
	assert.Equal(t, 10, res.Series.Len())
	require.Len(t, attempts, 2)
	assert.Error(t, attempts[0].Err)
	assert.NoError(t, attempts[1].Err)
	assert.Equal(t, 10, attempts[1].Rows)
}

func TestFallbackFetcher_EmptyIsTreatedLikeFailure(t *testing.T) {
	src := NewMockSource()
	src.Series["A"] = nil
	src.Series["B"] = GenerateBars(start2024, 3, 1, 3)

	res := NewFallbackFetcher(src).Fetch(context.Background(), abCandidates, start2024)
	assert.Equal(t, "B", res.Label)
}

func TestFallbackFetcher_AllExhausted(t *testing.T) {
	src := NewMockSource()
	src.Errs["A"] = errors.New("timeout")

	res, attempts := NewFallbackFetcher(src).FetchTrace(context.Background(), abCandidates, start2024)

	assert.True(t, res.Empty())
	assert.Equal(t, model.EmptyResult, res)
	assert.Len(t, attempts, 2)
	assert.ErrorIs(t, attempts[1].Err, ErrNoData)
}

func TestFallbackFetcher_NoCandidates(t *testing.T) {
	res := NewFallbackFetcher(NewMockSource()).Fetch(context.Background(), nil, start2024)
	assert.True(t, res.Empty())
}

type panicSource struct{ *MockSource }

func (p panicSource) FetchDaily(ctx context.Context, symbol string, start time.Time) (model.PriceSeries, error) {
	if symbol == "A" {
		panic("decoder blew up")
	}
	return p.MockSource.FetchDaily(ctx, symbol, start)
}

func TestFallbackFetcher_PanicOnlyFailsThatCandidate(t *testing.T) {
	mock := NewMockSource()
	mock.Series["B"] = GenerateBars(start2024, 4, 1, 4)

	res, attempts := NewFallbackFetcher(panicSource{mock}).FetchTrace(context.Background(), abCandidates, start2024)

	assert.Equal(t, "B", res.Label)
	require.Len(t, attempts, 2)
	assert.ErrorContains(t, attempts[0].Err, "panicked")
}

func TestFallbackFetcher_CancelledContextTriesNoCandidate(t *testing.T) {
	src := NewMockSource()
	src.Series["A"] = GenerateBars(start2024, 5, 1, 5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := NewFallbackFetcher(src).Fetch(ctx, abCandidates, start2024)

	assert.True(t, res.Empty())
	assert.Empty(t, src.Calls())
}
