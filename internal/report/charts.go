package report

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/rocjay1/superstore-analytics/internal/currency"
	"github.com/rocjay1/superstore-analytics/internal/metrics"
	"github.com/rocjay1/superstore-analytics/internal/models"
	"github.com/shopspring/decimal"
	"github.com/wcharczuk/go-chart/v2"
)

// ErrUnknownChart is returned for a chart name that is not rendered.
var ErrUnknownChart = errors.New("unknown chart")

// Chart names.
const (
	ChartRegions    = "regions"
	ChartCategories = "categories"
	ChartMonthly    = "monthly"
	ChartDayOfWeek  = "day-of-week"
)

// ChartNames lists every renderable chart.
var ChartNames = []string{ChartRegions, ChartCategories, ChartMonthly, ChartDayOfWeek}

// RenderChart writes the named bar chart as PNG. Bars are in display
// currency. It returns a FeatureUnavailableError when the chart's column is
// missing from the data.
func RenderChart(w io.Writer, name string, b metrics.Bundle, f *currency.Formatter) error {
	var (
		title  string
		values []metrics.LabeledValue
	)
	switch name {
	case ChartRegions:
		title = "Revenue by Region"
		for _, r := range b.Regional.Regions {
			values = append(values, metrics.LabeledValue{Label: r.Region, Value: r.Sales})
		}
	case ChartCategories:
		title = "Revenue by Category"
		values = b.Products.Categories
	case ChartMonthly:
		monthly, ok := b.Trends.Monthly.Get()
		if !ok {
			return b.Trends.Monthly.Err()
		}
		title = "Monthly Revenue"
		for _, p := range monthly {
			values = append(values, metrics.LabeledValue{Label: p.Month, Value: p.Sales})
		}
	case ChartDayOfWeek:
		days, ok := b.Trends.DayOfWeek.Get()
		if !ok {
			return b.Trends.DayOfWeek.Err()
		}
		title = "Revenue by Day of Week"
		values = days
	default:
		return fmt.Errorf("%w: %s", ErrUnknownChart, name)
	}
	if len(values) == 0 {
		return models.ErrEmptyResult
	}

	bars := make([]chart.Value, len(values))
	lo, hi := 0.0, 0.0
	for i, v := range values {
		amount := f.Convert(v.Value).InexactFloat64()
		bars[i] = chart.Value{Label: v.Label, Value: amount}
		lo, hi = math.Min(lo, amount), math.Max(hi, amount)
	}
	if hi == lo {
		hi = lo + 1
	}

	barChart := chart.BarChart{
		Title: fmt.Sprintf("%s (%s)", title, f.Label()),
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  800,
		Height: 400,
		Bars:   bars,
	}
	barChart.YAxis.Range = &chart.ContinuousRange{Min: lo, Max: hi}
	symbol := f.Symbol()
	barChart.YAxis.ValueFormatter = func(v interface{}) string {
		if vf, isFloat := v.(float64); isFloat {
			return symbol + currency.Int(decimal.NewFromFloat(vf).Round(0).IntPart())
		}
		return ""
	}

	if err := barChart.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render %s chart: %w", name, err)
	}
	return nil
}
