package calculator

import (
	"errors"

	"MarketPanel/internal/model"
)

// ErrInsufficientHistory is returned when a series has fewer than two bars.
var ErrInsufficientHistory = errors.New("insufficient history: need at least 2 bars")

// ComputeMetrics returns the latest close, the close before it and their difference.
func ComputeMetrics(series model.PriceSeries) (model.Metrics, error) {
	n := series.Len()
	if n < 2 {
		return model.Metrics{}, ErrInsufficientHistory
	}
	last := series.Bars[n-1].Close
	prev := series.Bars[n-2].Close
	return model.Metrics{
		LastPrice: last,
		PrevPrice: prev,
		Delta:     last - prev,
	}, nil
}
