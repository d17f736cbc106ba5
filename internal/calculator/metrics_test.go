package calculator

import (
	"testing"
	"time"

	"MarketPanel/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seriesOf(closes ...float64) model.PriceSeries {
	bars := make([]model.OHLCV, len(closes))
	d := model.Date(2024, 1, 1)
	for i, c := range closes {
		bars[i] = model.OHLCV{Time: d.AddDate(0, 0, i), Close: c}
	}
	return model.PriceSeries{Symbol: "^KS11", Bars: bars}
}

func TestComputeMetrics(t *testing.T) {
	m, err := ComputeMetrics(seriesOf(2900, 3050, 3100.0, 3150.0))
	require.NoError(t, err)
	assert.Equal(t, model.Metrics{LastPrice: 3150, PrevPrice: 3100, Delta: 50}, m)
}

func TestComputeMetrics_NegativeDelta(t *testing.T) {
	m, err := ComputeMetrics(seriesOf(3150, 3100))
	require.NoError(t, err)
	assert.Equal(t, -50.0, m.Delta)
}

func TestComputeMetrics_InsufficientHistory(t *testing.T) {
	for _, s := range []model.PriceSeries{seriesOf(), seriesOf(3100)} {
		_, err := ComputeMetrics(s)
		assert.ErrorIs(t, err, ErrInsufficientHistory)
	}
}

func TestDateSpan(t *testing.T) {
	first, last, err := DateSpan(seriesOf(1, 2, 3).Bars)
	require.NoError(t, err)
	assert.Equal(t, model.Date(2024, 1, 1), first)
	assert.Equal(t, model.Date(2024, 1, 3), last)

	_, _, err = DateSpan(nil)
	assert.Error(t, err)
}

func TestInSpan(t *testing.T) {
	first, last := model.Date(2024, 1, 1), model.Date(2024, 6, 30)
	tests := []struct {
		date time.Time
		want bool
	}{
		{model.Date(2023, 12, 31), false},
		{model.Date(2024, 1, 1), true},
		{model.Date(2024, 3, 15), true},
		{model.Date(2024, 6, 30), true},
		{time.Date(2024, 6, 30, 23, 59, 0, 0, time.UTC), true},
		{model.Date(2024, 7, 1), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InSpan(tt.date, first, last), tt.date.String())
	}
}

func TestCloseRange(t *testing.T) {
	high, low, err := CloseRange(seriesOf(3100, 2900, 3150, 3000).Bars)
	require.NoError(t, err)
	assert.Equal(t, 3150.0, high)
	assert.Equal(t, 2900.0, low)

	_, _, err = CloseRange(nil)
	assert.Error(t, err)
}
