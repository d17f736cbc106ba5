package calculator

import (
	"errors"
	"math"
	"time"

	"MarketPanel/internal/model"
)

var errNoBars = errors.New("no bars provided")

// DateSpan returns the first and last dates of chronologically ordered bars.
func DateSpan(bars []model.OHLCV) (first, last time.Time, err error) {
	if len(bars) == 0 {
		return time.Time{}, time.Time{}, errNoBars
	}
	return bars[0].Time, bars[len(bars)-1].Time, nil
}

// InSpan reports whether date falls within [first, last], both inclusive.
func InSpan(date, first, last time.Time) bool {
	d := model.NaiveDate(date)
	return !d.Before(model.NaiveDate(first)) && !d.After(model.NaiveDate(last))
}

// CloseRange scans the bars and returns the highest and lowest close.
func CloseRange(bars []model.OHLCV) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, errNoBars
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, b := range bars {
		if b.Close > high {
			high = b.Close
		}
		if b.Close < low {
			low = b.Close
		}
	}
	return high, low, nil
}
