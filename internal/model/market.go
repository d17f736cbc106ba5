package model

import "time"

// OHLCV represents a single daily bar. Time is a naive calendar date.
type OHLCV struct {
	Time   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceSeries holds normalized daily bars for one symbol, oldest first.
// A series is never mutated after it leaves the fetch pipeline.
type PriceSeries struct {
	Symbol    string    `json:"symbol"`
	Bars      []OHLCV   `json:"bars"`
	FetchedAt time.Time `json:"fetched_at"`
}

func (s PriceSeries) Len() int    { return len(s.Bars) }
func (s PriceSeries) Empty() bool { return len(s.Bars) == 0 }

// Last returns the most recent bar. Callers must check Empty first.
func (s PriceSeries) Last() OHLCV { return s.Bars[len(s.Bars)-1] }

// Date builds a naive calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// NaiveDate drops the clock time and zone of t, keeping its wall-clock date.
func NaiveDate(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string into a naive date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return NaiveDate(t), nil
}

// DateLayout is the wire format for naive dates.
const DateLayout = "2006-01-02"
