package metrics

import (
	"sort"

	"github.com/rocjay1/superstore-analytics/internal/filter"
	"github.com/rocjay1/superstore-analytics/internal/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// group is a set of view positions sharing a key.
type group struct {
	key  string
	rows []int
}

// groupBy groups view positions by key. Groups come back in ascending key
// order, which is the pre-sort order every ranking ties back to. Positions
// for which key reports false are skipped.
func groupBy(view filter.View, key func(i int) (string, bool)) []group {
	index := make(map[string]int)
	var groups []group
	for i := 0; i < view.Len(); i++ {
		k, ok := key(i)
		if !ok {
			continue
		}
		pos, exists := index[k]
		if !exists {
			pos = len(groups)
			index[k] = pos
			groups = append(groups, group{key: k})
		}
		groups[pos].rows = append(groups[pos].rows, i)
	}
	sort.SliceStable(groups, func(a, b int) bool { return groups[a].key < groups[b].key })
	return groups
}

// byColumn keys rows by a categorical column, skipping empty cells.
func byColumn(view filter.View, column string) func(int) (string, bool) {
	return func(i int) (string, bool) {
		v := view.Text(i, column)
		return v, v != ""
	}
}

// byMonth keys rows by the year and month of their Order Date.
func byMonth(view filter.View) func(int) (string, bool) {
	return func(i int) (string, bool) {
		d := view.Row(i).OrderDate
		if d == nil {
			return "", false
		}
		return d.Format("2006-01"), true
	}
}

func allRows(view filter.View) []int {
	rows := make([]int, view.Len())
	for i := range rows {
		rows[i] = i
	}
	return rows
}

func sales(r *models.Row) decimal.Decimal  { return r.Sales }
func profit(r *models.Row) decimal.Decimal { return r.Profit }

// sum adds a measure over view positions.
func sum(view filter.View, rows []int, measure func(*models.Row) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, i := range rows {
		total = total.Add(measure(view.Row(i)))
	}
	return total
}

// mean averages a measure over view positions; zero positions yield zero.
func mean(view filter.View, rows []int, measure func(*models.Row) decimal.Decimal) decimal.Decimal {
	if len(rows) == 0 {
		return decimal.Zero
	}
	return sum(view, rows, measure).Div(decimal.NewFromInt(int64(len(rows))))
}

// margin returns profit as a percentage of sales, or Undefined when sales is
// zero. places < 0 leaves the value unrounded.
func margin(profit, sales decimal.Decimal, places int32) models.Result[decimal.Decimal] {
	if sales.IsZero() {
		return models.Undefined[decimal.Decimal]("sales total is zero")
	}
	pct := profit.Mul(hundred).Div(sales)
	if places >= 0 {
		pct = pct.RoundBank(places)
	}
	return models.Available(pct)
}

// labeled sums a measure per group.
func labeled(view filter.View, groups []group, measure func(*models.Row) decimal.Decimal) []LabeledValue {
	out := make([]LabeledValue, len(groups))
	for i, g := range groups {
		out[i] = LabeledValue{Label: g.key, Value: sum(view, g.rows, measure)}
	}
	return out
}

// SortDesc orders values largest first; equal values keep their order.
func SortDesc(values []LabeledValue) {
	sort.SliceStable(values, func(a, b int) bool { return values[a].Value.GreaterThan(values[b].Value) })
}

// SortAsc orders values smallest first; equal values keep their order.
func SortAsc(values []LabeledValue) {
	sort.SliceStable(values, func(a, b int) bool { return values[a].Value.LessThan(values[b].Value) })
}

// Top returns the first n values.
func Top(values []LabeledValue, n int) []LabeledValue {
	if n > len(values) {
		n = len(values)
	}
	return append([]LabeledValue{}, values[:n]...)
}

// Bottom returns the last n values, in their existing order.
func Bottom(values []LabeledValue, n int) []LabeledValue {
	if n > len(values) {
		n = len(values)
	}
	return append([]LabeledValue{}, values[len(values)-n:]...)
}
