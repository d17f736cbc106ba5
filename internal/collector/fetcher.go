package collector

import (
	"context"
	"errors"
	"time"

	"MarketPanel/internal/model"
)

// ErrNoData is returned by a Source when the provider answered without rows.
var ErrNoData = errors.New("no data returned")

// Source fetches a daily price series from a market-data provider.
// A successful result is fully normalized: naive dates on or after start,
// strictly increasing, flat OHLCV fields.
type Source interface {
	FetchDaily(ctx context.Context, symbol string, start time.Time) (model.PriceSeries, error)
	Name() string
}
