package collector

import (
	"sort"
	"time"

	"MarketPanel/internal/model"
)

// Normalize strips time and zone from every bar, drops bars before start,
// sorts chronologically and keeps only the last bar seen for each date.
// The input slice is not modified.
func Normalize(bars []model.OHLCV, start time.Time) []model.OHLCV {
	start = model.NaiveDate(start)
	out := make([]model.OHLCV, 0, len(bars))
	for _, b := range bars {
		b.Time = model.NaiveDate(b.Time)
		if b.Time.Before(start) {
			continue
		}
		out = append(out, b)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })

	deduped := out[:0]
	for _, b := range out {
		if n := len(deduped); n > 0 && deduped[n-1].Time.Equal(b.Time) {
			deduped[n-1] = b
			continue
		}
		deduped = append(deduped, b)
	}
	return deduped
}
