package report

import (
	"testing"
	"time"

	"MarketPanel/internal/model"
	"MarketPanel/internal/panel"

	"github.com/stretchr/testify/assert"
)

func TestPrice(t *testing.T) {
	assert.Equal(t, "3,150.00", Price(3150))
	assert.Equal(t, "+50.00", Change(50))
	assert.Equal(t, "-12.30", Change(-12.3))
}

func TestFormatSummary_OK(t *testing.T) {
	v := panel.View{
		Status:      panel.StatusOK,
		Label:       "KOSPI",
		Symbol:      "^KS11",
		Rows:        2,
		AsOf:        model.Date(2025, 8, 22),
		GeneratedAt: time.Date(2025, 8, 22, 18, 0, 0, 0, time.UTC),
		Metrics:     &model.Metrics{LastPrice: 3150, PrevPrice: 3100, Delta: 50},
		Chart: &model.ChartSpec{
			Line: model.LineSeries{Points: []model.Point{
				{Date: model.Date(2025, 8, 21), Close: 3100},
				{Date: model.Date(2025, 8, 22), Close: 3150},
			}},
			HorizontalMarker: model.HorizontalMarker{Value: 3100, Label: "9.31 PER Equilibrium (Approx.)"},
			VerticalMarker:   &model.VerticalMarker{Date: model.Date(2025, 8, 22), Label: "Aug 22 Case Study Entry"},
		},
	}

	out := FormatSummary(v)

	assert.Contains(t, out, "Current KOSPI: 3,150.00 (+50.00)")
	assert.Contains(t, out, "Discipline Focus: Humility over Hubris")
	assert.Contains(t, out, "Source: KOSPI (^KS11), 2 rows, as of 2025-08-22")
	assert.Contains(t, out, "Range: 3,100.00 - 3,150.00")
	assert.Contains(t, out, "9.31 PER Equilibrium (Approx.): 3,100.00")
	assert.Contains(t, out, "Aug 22 Case Study Entry: 2025-08-22")
}

func TestFormatSummary_Empty(t *testing.T) {
	out := FormatSummary(panel.View{Status: panel.StatusEmpty, Message: panel.NoDataMessage})
	assert.Contains(t, out, "ERROR: no data available")
	assert.NotContains(t, out, "Portfolio Status")
}

func TestFormatSummary_InsufficientHistory(t *testing.T) {
	out := FormatSummary(panel.View{Status: panel.StatusInsufficientHistory, Label: "SPY", LatestPrice: 5800})
	assert.Contains(t, out, "Current SPY: 5,800.00 (change unavailable)")
}
