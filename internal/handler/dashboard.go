package handler

import (
	"log/slog"
	"net/http"

	"github.com/rocjay1/superstore-analytics/internal/currency"
	"github.com/rocjay1/superstore-analytics/internal/metrics"
	"github.com/rocjay1/superstore-analytics/internal/models"
	"github.com/rocjay1/superstore-analytics/internal/report"
)

// DisplayValue is a chart label with its value formatted for display.
type DisplayValue struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Words string `json:"words,omitempty"`
}

// DashboardResponse is everything the dashboard renders for one selection.
type DashboardResponse struct {
	Currency      models.CurrencyMode       `json:"currency"`
	CurrencyLabel string                    `json:"currencyLabel"`
	Selection     models.Selection          `json:"selection"`
	Cards         []report.Card             `json:"cards"`
	Notices       []string                  `json:"notices"`
	Display       map[string][]DisplayValue `json:"display"`
	Metrics       metrics.Bundle            `json:"metrics"`
	Explorer      metrics.Explorer          `json:"explorer"`
}

// HandleDashboard computes the dashboard for the session's selection. Query
// parameters override the selection for this request only.
func (d *Dependencies) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	s, ok := d.requireSession(w, r)
	if !ok {
		return
	}

	view, sel, err := d.filtered(s, r.URL.Query())
	if writePipelineError(w, err) {
		return
	}

	bundle := metrics.Compute(view)
	f := currency.New(s)
	slog.Info("dashboard computed", "session_id", s.ID, "rows", view.Len())

	WriteJSON(w, http.StatusOK, DashboardResponse{
		Currency:      s.CurrencyMode(),
		CurrencyLabel: f.Label(),
		Selection:     sel,
		Cards:         report.Cards(bundle.KPIs, f),
		Notices:       notices(bundle),
		Display:       display(bundle, f),
		Metrics:       bundle,
		Explorer:      metrics.Explore(view),
	})
}

type erring interface{ Err() error }

// notices lists one message per missing column that disabled an aggregate.
func notices(b metrics.Bundle) []string {
	results := []erring{
		b.KPIs.TotalProfit, b.KPIs.TotalQuantity,
		b.Trends.Monthly, b.Trends.YearMonth, b.Trends.CategoryMonthly, b.Trends.DayOfWeek, b.Trends.ShipMode,
		b.Regional.States,
		b.Products.SubCategories, b.Products.SubCategoryProfit, b.Products.TopProducts,
		b.Profitability.CategoryProfit, b.Profitability.MonthlyProfit, b.Profitability.DiscountSample,
	}
	seen := make(map[string]bool)
	out := []string{}
	for _, r := range results {
		err := r.Err()
		if err == nil {
			continue
		}
		msg := report.Notice(err)
		if !seen[msg] {
			seen[msg] = true
			out = append(out, msg)
		}
	}
	return out
}

func display(b metrics.Bundle, f *currency.Formatter) map[string][]DisplayValue {
	format := func(values []metrics.LabeledValue) []DisplayValue {
		out := make([]DisplayValue, len(values))
		for i, v := range values {
			out[i] = DisplayValue{Label: v.Label, Value: f.Compact(v.Value), Words: f.Words(v.Value)}
		}
		return out
	}

	regions := make([]metrics.LabeledValue, len(b.Regional.Regions))
	for i, r := range b.Regional.Regions {
		regions[i] = metrics.LabeledValue{Label: r.Region, Value: r.Sales}
	}
	out := map[string][]DisplayValue{
		"regions":    format(regions),
		"categories": format(b.Products.Categories),
	}
	for name, r := range map[string]models.Result[[]metrics.LabeledValue]{
		"dayOfWeek":     b.Trends.DayOfWeek,
		"shipMode":      b.Trends.ShipMode,
		"topStates":     b.Regional.TopStates,
		"bottomStates":  b.Regional.BottomStates,
		"subCategories": b.Products.SubCategories,
	} {
		if values, ok := r.Get(); ok {
			out[name] = format(values)
		}
	}
	return out
}
