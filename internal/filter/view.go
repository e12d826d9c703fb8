package filter

import (
	"github.com/rocjay1/superstore-analytics/internal/models"
)

// View is a read-only subset of a table's rows, held as indices into the
// table. Filtering never copies or mutates rows, so the table stays intact
// for the next selection.
type View struct {
	table   *models.Table
	indices []int
}

// All returns a view over every row of a table.
func All(table *models.Table) View {
	indices := make([]int, len(table.Rows))
	for i := range indices {
		indices[i] = i
	}
	return View{table: table, indices: indices}
}

// Len returns the number of rows in the view.
func (v View) Len() int {
	return len(v.indices)
}

// Row returns the i-th row of the view.
func (v View) Row(i int) *models.Row {
	return &v.table.Rows[v.indices[i]]
}

// Text returns the trimmed cell of the i-th row for a named column.
func (v View) Text(i int, column string) string {
	return v.table.Text(v.Row(i), column)
}

// Table returns the underlying table.
func (v View) Table() *models.Table {
	return v.table
}

// Caps returns the capability flags of the underlying table.
func (v View) Caps() models.Capability {
	if v.table == nil {
		return 0
	}
	return v.table.Caps
}

// Indices returns a copy of the table row indices in view order.
func (v View) Indices() []int {
	return append([]int{}, v.indices...)
}

// subView selects positions of the parent view, resolving them to table rows.
func subView(parent View, positions []int) View {
	indices := make([]int, len(positions))
	for i, p := range positions {
		indices[i] = parent.indices[p]
	}
	return View{table: parent.table, indices: indices}
}
