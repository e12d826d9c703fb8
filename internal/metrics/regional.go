package metrics

import (
	"github.com/rocjay1/superstore-analytics/internal/filter"
	"github.com/rocjay1/superstore-analytics/internal/models"
	"github.com/shopspring/decimal"
)

// TopN is the length of every top and bottom ranking.
const TopN = 10

// ComputeRegional returns the geographic aggregates of a view.
func ComputeRegional(view filter.View) Regional {
	r := Regional{
		Regions:        regionShares(view),
		RegionCategory: crossTab(view, models.ColRegion, models.ColCategory),
	}

	if view.Caps().Has(models.CapState) {
		states := labeled(view, groupBy(view, byColumn(view, models.ColState)), sales)
		SortDesc(states)
		r.States = models.Available(states)
		r.TopStates = models.Available(Top(states, TopN))
		r.BottomStates = models.Available(Bottom(states, TopN))
	} else {
		r.States = models.Unavailable[[]LabeledValue](models.ColState)
		r.TopStates = models.Unavailable[[]LabeledValue](models.ColState)
		r.BottomStates = models.Unavailable[[]LabeledValue](models.ColState)
	}
	return r
}

// regionShares rounds each share on its own; shares need not total 100.
func regionShares(view filter.View) []RegionShare {
	total := sum(view, allRows(view), sales)
	groups := groupBy(view, byColumn(view, models.ColRegion))
	out := make([]RegionShare, len(groups))
	for i, g := range groups {
		s := sum(view, g.rows, sales)
		out[i] = RegionShare{Region: g.key, Sales: s, Orders: len(g.rows)}
		if total.IsZero() {
			out[i].SharePct = models.Undefined[decimal.Decimal]("sales total is zero")
		} else {
			out[i].SharePct = models.Available(s.Mul(hundred).Div(total).RoundBank(1))
		}
	}
	return out
}

// crossTab sums sales by two columns. Labels are sorted and missing
// combinations are zero.
func crossTab(view filter.View, rowColumn, colColumn string) CrossTab {
	rows := groupBy(view, byColumn(view, rowColumn))
	cols := groupBy(view, byColumn(view, colColumn))

	ct := CrossTab{Rows: make([]string, len(rows)), Columns: make([]string, len(cols))}
	colIndex := make(map[string]int, len(cols))
	for j, c := range cols {
		ct.Columns[j] = c.key
		colIndex[c.key] = j
	}
	ct.Values = make([][]decimal.Decimal, len(rows))
	for i, g := range rows {
		ct.Rows[i] = g.key
		values := make([]decimal.Decimal, len(cols))
		for j := range values {
			values[j] = decimal.Zero
		}
		for _, pos := range g.rows {
			if j, ok := colIndex[view.Text(pos, colColumn)]; ok {
				values[j] = values[j].Add(view.Row(pos).Sales)
			}
		}
		ct.Values[i] = values
	}
	return ct
}
