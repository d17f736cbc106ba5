package report

import (
	"fmt"
	"strings"

	"MarketPanel/internal/calculator"
	"MarketPanel/internal/model"
	"MarketPanel/internal/panel"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Price formats v with thousands separators and two decimals, e.g. 3,150.00.
func Price(v float64) string {
	return printer.Sprintf("%.2f", v)
}

// Change formats a signed delta, e.g. +50.00 or -12.30.
func Change(v float64) string {
	return printer.Sprintf("%+.2f", v)
}

// FormatSummary renders the metric cards of a panel view as plain text.
func FormatSummary(v panel.View) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Market Panel | %s\n\n", v.GeneratedAt.Format("2006-01-02 15:04")))

	switch v.Status {
	case panel.StatusEmpty:
		b.WriteString("ERROR: " + v.Message + "\n")
		return b.String()
	case panel.StatusInsufficientHistory:
		b.WriteString(fmt.Sprintf("Current %s: %s (change unavailable)\n", v.Label, Price(v.LatestPrice)))
	default:
		b.WriteString(fmt.Sprintf("Current %s: %s (%s)\n", v.Label, Price(v.Metrics.LastPrice), Change(v.Metrics.Delta)))
	}
	b.WriteString("Portfolio Status: Monitoring\n")
	b.WriteString("Discipline Focus: Humility over Hubris\n\n")

	b.WriteString(fmt.Sprintf("Source: %s (%s), %d rows, as of %s\n",
		v.Label, v.Symbol, v.Rows, v.AsOf.Format(model.DateLayout)))

	if v.Chart != nil {
		if high, low, err := calculator.CloseRange(chartBars(v.Chart)); err == nil {
			b.WriteString(fmt.Sprintf("Range: %s - %s\n", Price(low), Price(high)))
		}
		hm := v.Chart.HorizontalMarker
		b.WriteString(fmt.Sprintf("%s: %s\n", hm.Label, Price(hm.Value)))
		if vm := v.Chart.VerticalMarker; vm != nil {
			b.WriteString(fmt.Sprintf("%s: %s\n", vm.Label, vm.Date.Format(model.DateLayout)))
		}
	}
	return b.String()
}

func chartBars(spec *model.ChartSpec) []model.OHLCV {
	bars := make([]model.OHLCV, len(spec.Line.Points))
	for i, p := range spec.Line.Points {
		bars[i] = model.OHLCV{Time: p.Date, Close: p.Close}
	}
	return bars
}
