package chart

import (
	"errors"
	"time"

	"MarketPanel/internal/calculator"
	"MarketPanel/internal/model"
)

// ErrEmptySeries is returned when asked to chart a series with no bars.
var ErrEmptySeries = errors.New("cannot chart an empty series")

// Config holds the caller-supplied annotations.
type Config struct {
	SeriesName     string
	EntryDate      time.Time
	EntryLabel     string
	ReferenceValue float64
	ReferenceLabel string
}

// Default styling, matching the dashboard this panel feeds.
var (
	lineStyle      = model.LineStyle{Color: "#1f77b4", Width: 2}
	entryStyle     = model.LineStyle{Color: "red", Dash: "dot"}
	referenceStyle = model.LineStyle{Color: "green", Dash: "solid"}

	defaultLayout = model.ChartLayout{
		XAxisTitle: "Date",
		YAxisTitle: "Price (Index)",
		HoverMode:  "x unified",
		Template:   "plotly_white",
	}
)

// Build assembles the chart spec for series. The entry marker is only
// included when its date lies inside the series' date span.
func Build(series model.PriceSeries, cfg Config) (model.ChartSpec, error) {
	first, last, err := calculator.DateSpan(series.Bars)
	if err != nil {
		return model.ChartSpec{}, ErrEmptySeries
	}

	points := make([]model.Point, len(series.Bars))
	for i, b := range series.Bars {
		points[i] = model.Point{Date: b.Time, Close: b.Close}
	}

	spec := model.ChartSpec{
		Line: model.LineSeries{
			Name:   cfg.SeriesName,
			Points: points,
			Style:  lineStyle,
		},
		HorizontalMarker: model.HorizontalMarker{
			Value:              cfg.ReferenceValue,
			Label:              cfg.ReferenceLabel,
			AnnotationPosition: "bottom right",
			Style:              referenceStyle,
		},
		Layout: defaultLayout,
	}

	if !cfg.EntryDate.IsZero() && calculator.InSpan(cfg.EntryDate, first, last) {
		spec.VerticalMarker = &model.VerticalMarker{
			Date:               model.NaiveDate(cfg.EntryDate),
			Label:              cfg.EntryLabel,
			AnnotationPosition: "top left",
			Style:              entryStyle,
		}
	}
	return spec, nil
}
