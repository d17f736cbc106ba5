package collector

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"MarketPanel/internal/logger"
	"MarketPanel/internal/model"

	"github.com/sony/gobreaker"
)

// BreakerOptions configures BreakerSource.
type BreakerOptions struct {
	// MaxRequests is the number of probes allowed while half-open.
	MaxRequests uint32 `yaml:"max_requests"`
	// Interval resets the failure counters while closed; zero never resets.
	Interval time.Duration `yaml:"interval"`
	// Timeout is how long the breaker stays open before probing again.
	Timeout time.Duration `yaml:"timeout"`
	// ReadyToTrip is the number of consecutive failures that opens the breaker.
	ReadyToTrip uint32 `yaml:"ready_to_trip"`
}

// BreakerSource wraps a Source with one circuit breaker per symbol, so a
// symbol that keeps failing is skipped quickly without affecting the others.
type BreakerSource struct {
	next     Source
	settings func(symbol string) gobreaker.Settings

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

// NewBreakerSource wraps next with per-symbol circuit breakers.
func NewBreakerSource(next Source, opts BreakerOptions) *BreakerSource {
	if opts.ReadyToTrip == 0 {
		opts.ReadyToTrip = 3
	}
	if opts.MaxRequests == 0 {
		opts.MaxRequests = 1
	}
	log := logger.WithComponent("breaker")
	return &BreakerSource{
		next:     next,
		breakers: make(map[string]*gobreaker.CircuitBreaker),
		settings: func(symbol string) gobreaker.Settings {
			return gobreaker.Settings{
				Name:        symbol,
				MaxRequests: opts.MaxRequests,
				Interval:    opts.Interval,
				Timeout:     opts.Timeout,
				ReadyToTrip: func(counts gobreaker.Counts) bool {
					return counts.ConsecutiveFailures >= opts.ReadyToTrip
				},
				// A caller giving up says nothing about the provider.
				IsSuccessful: func(err error) bool {
					return err == nil || errors.Is(err, context.Canceled)
				},
				OnStateChange: func(name string, from, to gobreaker.State) {
					log.WithField("symbol", name).Warnf("circuit breaker %s -> %s", from, to)
				},
			}
		},
	}
}

func (b *BreakerSource) Name() string { return fmt.Sprintf("breaker(%s)", b.next.Name()) }

func (b *BreakerSource) breaker(symbol string) *gobreaker.CircuitBreaker {
	b.mu.Lock()
	defer b.mu.Unlock()
	cb, ok := b.breakers[symbol]
	if !ok {
		cb = gobreaker.NewCircuitBreaker(b.settings(symbol))
		b.breakers[symbol] = cb
	}
	return cb
}

// State reports the breaker state for symbol.
func (b *BreakerSource) State(symbol string) gobreaker.State { return b.breaker(symbol).State() }

func (b *BreakerSource) FetchDaily(ctx context.Context, symbol string, start time.Time) (model.PriceSeries, error) {
	res, err := b.breaker(symbol).Execute(func() (interface{}, error) {
		return b.next.FetchDaily(ctx, symbol, start)
	})
	if err != nil {
		return model.PriceSeries{}, err
	}
	series, ok := res.(model.PriceSeries)
	if !ok {
		return model.PriceSeries{}, fmt.Errorf("breaker: unexpected result type %T", res)
	}
	return series, nil
}
