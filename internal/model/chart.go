package model

import "time"

// Metrics holds the headline numbers shown above the chart.
type Metrics struct {
	LastPrice float64 `json:"last_price"`
	PrevPrice float64 `json:"prev_price"`
	Delta     float64 `json:"delta"`
}

// Point is one (date, close) sample of the line series.
type Point struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// LineStyle describes how a series or marker line is drawn.
type LineStyle struct {
	Color string `json:"color"`
	Width int    `json:"width,omitempty"`
	Dash  string `json:"dash,omitempty"` // solid, dot, dash
}

// LineSeries is the single continuous price line.
type LineSeries struct {
	Name   string    `json:"name"`
	Points []Point   `json:"points"`
	Style  LineStyle `json:"style"`
}

// VerticalMarker annotates a date on the x axis.
type VerticalMarker struct {
	Date               time.Time `json:"date"`
	Label              string    `json:"label"`
	AnnotationPosition string    `json:"annotation_position"`
	Style              LineStyle `json:"style"`
}

// HorizontalMarker annotates a value on the y axis.
type HorizontalMarker struct {
	Value              float64   `json:"value"`
	Label              string    `json:"label"`
	AnnotationPosition string    `json:"annotation_position"`
	Style              LineStyle `json:"style"`
}

// ChartLayout carries axis titles and renderer hints.
type ChartLayout struct {
	XAxisTitle string `json:"xaxis_title"`
	YAxisTitle string `json:"yaxis_title"`
	HoverMode  string `json:"hovermode"`
	Template   string `json:"template"`
}

// ChartSpec is a declarative description of the annotated price chart.
// VerticalMarker is nil when the entry date lies outside the data range.
type ChartSpec struct {
	Line             LineSeries       `json:"line"`
	VerticalMarker   *VerticalMarker  `json:"vertical_marker,omitempty"`
	HorizontalMarker HorizontalMarker `json:"horizontal_marker"`
	Layout           ChartLayout      `json:"layout"`
}
