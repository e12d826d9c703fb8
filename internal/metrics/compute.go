// Package metrics aggregates a filtered view into KPIs and the grouped
// tables behind each dashboard chart. Every function here is pure: the same
// view always yields the same bundle, sample included.
//
// Aggregates that need an optional column come back as models.Result values,
// so a missing column disables exactly the aggregates that depend on it.
// Money stays in base currency; conversion belongs to the formatter.
package metrics

import (
	"github.com/rocjay1/superstore-analytics/internal/filter"
)

// Compute returns every aggregate of a non-empty view.
func Compute(view filter.View) Bundle {
	return Bundle{
		KPIs:          ComputeKPIs(view),
		Trends:        ComputeTrends(view),
		Regional:      ComputeRegional(view),
		Products:      ComputeProducts(view),
		Profitability: ComputeProfitability(view),
	}
}
