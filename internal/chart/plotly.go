package chart

import (
	"strings"

	"MarketPanel/internal/model"
)

// Figure is a Plotly figure document: traces plus layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is a scatter trace drawn as a line.
type Trace struct {
	Type string    `json:"type"`
	Mode string    `json:"mode"`
	Name string    `json:"name"`
	X    []string  `json:"x"`
	Y    []float64 `json:"y"`
	Line Line      `json:"line"`
}

type Line struct {
	Color string `json:"color,omitempty"`
	Width int    `json:"width,omitempty"`
	Dash  string `json:"dash,omitempty"`
}

type Axis struct {
	Title string `json:"title"`
}

type Shape struct {
	Type string      `json:"type"`
	XRef string      `json:"xref"`
	YRef string      `json:"yref"`
	X0   interface{} `json:"x0"`
	X1   interface{} `json:"x1"`
	Y0   interface{} `json:"y0"`
	Y1   interface{} `json:"y1"`
	Line Line        `json:"line"`
}

type Annotation struct {
	Text      string      `json:"text"`
	XRef      string      `json:"xref"`
	YRef      string      `json:"yref"`
	X         interface{} `json:"x"`
	Y         interface{} `json:"y"`
	XAnchor   string      `json:"xanchor"`
	YAnchor   string      `json:"yanchor"`
	ShowArrow bool        `json:"showarrow"`
}

type Layout struct {
	XAxis       Axis         `json:"xaxis"`
	YAxis       Axis         `json:"yaxis"`
	HoverMode   string       `json:"hovermode"`
	Template    string       `json:"template"`
	Shapes      []Shape      `json:"shapes"`
	Annotations []Annotation `json:"annotations"`
}

// ToPlotly converts a spec into a Plotly figure. Markers become full-height
// or full-width line shapes with a text annotation at the requested corner.
func ToPlotly(spec model.ChartSpec) Figure {
	x := make([]string, len(spec.Line.Points))
	y := make([]float64, len(spec.Line.Points))
	for i, p := range spec.Line.Points {
		x[i] = p.Date.Format(model.DateLayout)
		y[i] = p.Close
	}

	fig := Figure{
		Data: []Trace{{
			Type: "scatter",
			Mode: "lines",
			Name: spec.Line.Name,
			X:    x,
			Y:    y,
			Line: toLine(spec.Line.Style),
		}},
		Layout: Layout{
			XAxis:       Axis{Title: spec.Layout.XAxisTitle},
			YAxis:       Axis{Title: spec.Layout.YAxisTitle},
			HoverMode:   spec.Layout.HoverMode,
			Template:    spec.Layout.Template,
			Shapes:      []Shape{},
			Annotations: []Annotation{},
		},
	}

	if vm := spec.VerticalMarker; vm != nil {
		date := vm.Date.Format(model.DateLayout)
		fig.Layout.Shapes = append(fig.Layout.Shapes, Shape{
			Type: "line", XRef: "x", YRef: "paper",
			X0: date, X1: date, Y0: 0, Y1: 1,
			Line: toLine(vm.Style),
		})
		fig.Layout.Annotations = append(fig.Layout.Annotations, vlineLabel(vm, date))
	}

	hm := spec.HorizontalMarker
	fig.Layout.Shapes = append(fig.Layout.Shapes, Shape{
		Type: "line", XRef: "paper", YRef: "y",
		X0: 0, X1: 1, Y0: hm.Value, Y1: hm.Value,
		Line: toLine(hm.Style),
	})
	fig.Layout.Annotations = append(fig.Layout.Annotations, hlineLabel(hm))

	return fig
}

func toLine(s model.LineStyle) Line {
	return Line{Color: s.Color, Width: s.Width, Dash: s.Dash}
}

// vlineLabel places the label at the top or bottom of a vertical line, on its
// left or right side.
func vlineLabel(vm *model.VerticalMarker, date string) Annotation {
	vert, horiz := splitPosition(vm.AnnotationPosition)
	a := Annotation{Text: vm.Label, XRef: "x", YRef: "paper", X: date, Y: 1, XAnchor: "left", YAnchor: "top"}
	if vert == "bottom" {
		a.Y, a.YAnchor = 0, "bottom"
	}
	if horiz == "left" {
		a.XAnchor = "right"
	}
	return a
}

// hlineLabel places the label at the left or right end of a horizontal line,
// above or below it.
func hlineLabel(hm model.HorizontalMarker) Annotation {
	vert, horiz := splitPosition(hm.AnnotationPosition)
	a := Annotation{Text: hm.Label, XRef: "paper", YRef: "y", X: 1, Y: hm.Value, XAnchor: "right", YAnchor: "bottom"}
	if horiz == "left" {
		a.X, a.XAnchor = 0, "left"
	}
	if vert == "bottom" {
		a.YAnchor = "top"
	}
	return a
}

// splitPosition splits "top left" style positions; missing parts default to
// top and right.
func splitPosition(pos string) (vert, horiz string) {
	vert, horiz = "top", "right"
	for _, f := range strings.Fields(pos) {
		switch f {
		case "top", "bottom":
			vert = f
		case "left", "right":
			horiz = f
		}
	}
	return vert, horiz
}
