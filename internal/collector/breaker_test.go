package collector

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
)

func TestBreakerSource_OpensPerSymbol(t *testing.T) {
	mock := NewMockSource()
	mock.Errs["A"] = errors.New("503")
	mock.Series["B"] = GenerateBars(start2024, 3, 1, 3)

	src := NewBreakerSource(mock, BreakerOptions{ReadyToTrip: 2, Timeout: time.Hour})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := src.FetchDaily(ctx, "A", start2024)
		assert.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, src.State("A"))

	_, err := src.FetchDaily(ctx, "A", start2024)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, []string{"A", "A"}, mock.Calls(), "open breaker must not reach the source")

	series, err := src.FetchDaily(ctx, "B", start2024)
	assert.NoError(t, err)
	assert.Equal(t, 3, series.Len())
	assert.Equal(t, gobreaker.StateClosed, src.State("B"))
}

func TestBreakerSource_FallbackSkipsOpenCandidate(t *testing.T) {
	mock := NewMockSource()
	mock.Errs["A"] = errors.New("503")
	mock.Series["B"] = GenerateBars(start2024, 3, 1, 3)
	src := NewBreakerSource(mock, BreakerOptions{ReadyToTrip: 1, Timeout: time.Hour})
	f := NewFallbackFetcher(src)

	for i := 0; i < 3; i++ {
		res := f.Fetch(context.Background(), abCandidates, start2024)
		assert.Equal(t, "B", res.Label)
	}
	assert.Equal(t, []string{"A", "B", "B", "B"}, mock.Calls())
}

func TestBreakerSource_CancellationDoesNotTrip(t *testing.T) {
	mock := NewMockSource()
	mock.Errs["A"] = fmt.Errorf("yahoo fetch: %w", context.Canceled)
	src := NewBreakerSource(mock, BreakerOptions{ReadyToTrip: 1, Timeout: time.Hour})

	for i := 0; i < 3; i++ {
		_, err := src.FetchDaily(context.Background(), "A", start2024)
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, gobreaker.StateClosed, src.State("A"))
	assert.Len(t, mock.Calls(), 3)
}
