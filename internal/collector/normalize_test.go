package collector

import (
	"testing"
	"time"

	"MarketPanel/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_SortsDedupesAndStripsZone(t *testing.T) {
	kst := time.FixedZone("KST", 9*3600)
	bars := []model.OHLCV{
		{Time: time.Date(2024, 1, 3, 0, 0, 0, 0, kst), Close: 3},
		{Time: time.Date(2023, 12, 29, 9, 0, 0, 0, kst), Close: 0},
		{Time: time.Date(2024, 1, 2, 9, 0, 0, 0, kst), Close: 2},
		{Time: time.Date(2024, 1, 3, 15, 30, 0, 0, kst), Close: 33},
	}

	got := Normalize(bars, model.Date(2024, 1, 1))

	assert.Len(t, got, 2)
	assert.Equal(t, model.Date(2024, 1, 2), got[0].Time)
	assert.Equal(t, model.Date(2024, 1, 3), got[1].Time)
	assert.Equal(t, 33.0, got[1].Close, "last bar for a date wins")
	for _, b := range got {
		assert.Equal(t, time.UTC, b.Time.Location())
		assert.Zero(t, b.Time.Hour())
	}
	assert.Equal(t, 3.0, bars[0].Close, "input must not be modified")
}

func TestNormalize_StartIsInclusive(t *testing.T) {
	bars := []model.OHLCV{{Time: model.Date(2024, 1, 1), Close: 1}}
	assert.Len(t, Normalize(bars, model.Date(2024, 1, 1)), 1)
	assert.Empty(t, Normalize(bars, model.Date(2024, 1, 2)))
}

func TestGenerateBars_SkipsWeekends(t *testing.T) {
	bars := GenerateBars(model.Date(2024, 1, 5), 3, 100, 120) // Friday
	assert.Len(t, bars, 3)
	assert.Equal(t, model.Date(2024, 1, 5), bars[0].Time)
	assert.Equal(t, model.Date(2024, 1, 8), bars[1].Time)
	assert.Equal(t, 100.0, bars[0].Close)
	assert.InDelta(t, 120.0, bars[2].Close, 1e-9)
}
