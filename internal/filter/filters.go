package filter

import (
	"sort"

	"github.com/rocjay1/superstore-analytics/internal/models"
)

type predicate struct {
	column  string
	allowed map[string]bool
}

// Apply returns the rows of view that satisfy every constraint of sel.
//
// The date range applies to Order Date at calendar granularity; rows without
// a parsed date fail an active date range. A categorical constraint with no
// values passes nothing. Constraints on columns the table lacks are ignored.
// An empty result is reported as ErrEmptyResult (wrapped in an
// AllExcludedError when an empty constraint caused it); the returned view is
// still valid in that case.
func Apply(view View, sel models.Selection) (View, error) {
	table := view.Table()

	var dateRange *models.DateRange
	if sel.DateRange != nil && view.Caps().Has(models.CapOrderDate) {
		dateRange = sel.DateRange
	}

	columns := make([]string, 0, len(sel.Categorical))
	for column := range sel.Categorical {
		if table.HasColumn(column) {
			columns = append(columns, column)
		}
	}
	sort.Strings(columns)

	preds := make([]predicate, 0, len(columns))
	var excluded []string
	for _, column := range columns {
		values := sel.Categorical[column]
		if len(values) == 0 {
			excluded = append(excluded, column)
		}
		preds = append(preds, predicate{column: column, allowed: toSet(values)})
	}

	// Single pass: a row is kept only if it passes every predicate.
	positions := make([]int, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		if dateRange != nil {
			d := view.Row(i).OrderDate
			if d == nil || !dateRange.Contains(*d) {
				continue
			}
		}
		pass := true
		for _, p := range preds {
			if !p.allowed[view.Text(i, p.column)] {
				pass = false
				break
			}
		}
		if pass {
			positions = append(positions, i)
		}
	}

	result := subView(view, positions)
	if result.Len() == 0 {
		if len(excluded) > 0 {
			return result, &models.AllExcludedError{Field: excluded[0]}
		}
		return result, models.ErrEmptyResult
	}
	return result, nil
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

// DistinctValues returns the sorted non-empty values of a column in view.
func DistinctValues(view View, column string) []string {
	if !view.Table().HasColumn(column) {
		return nil
	}
	seen := make(map[string]bool)
	values := []string{}
	for i := 0; i < view.Len(); i++ {
		val := view.Text(i, column)
		if val != "" && !seen[val] {
			seen[val] = true
			values = append(values, val)
		}
	}
	sort.Strings(values)
	return values
}

// DateSpan returns the earliest and latest parsed Order Date in view.
func DateSpan(view View) (*models.DateRange, bool) {
	var span *models.DateRange
	for i := 0; i < view.Len(); i++ {
		d := view.Row(i).OrderDate
		if d == nil {
			continue
		}
		if span == nil {
			span = &models.DateRange{Start: *d, End: *d}
			continue
		}
		if d.Before(span.Start) {
			span.Start = *d
		}
		if d.After(span.End) {
			span.End = *d
		}
	}
	return span, span != nil
}

// DefaultSelection selects the full date span and every value of each filter
// column the table has.
func DefaultSelection(table *models.Table) models.Selection {
	view := All(table)
	sel := models.Selection{Categorical: make(map[string][]string)}
	if span, ok := DateSpan(view); ok {
		sel.DateRange = span
	}
	for _, column := range models.FilterColumns {
		// A column with no values offers nothing to select and stays unconstrained.
		if values := DistinctValues(view, column); len(values) > 0 {
			sel.Categorical[column] = values
		}
	}
	return sel
}
