package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Column names of a Superstore order export.
const (
	ColSales       = "Sales"
	ColRegion      = "Region"
	ColCategory    = "Category"
	ColOrderDate   = "Order Date"
	ColShipDate    = "Ship Date"
	ColProfit      = "Profit"
	ColQuantity    = "Quantity"
	ColDiscount    = "Discount"
	ColState       = "State"
	ColSubCategory = "Sub-Category"
	ColProductName = "Product Name"
	ColSegment     = "Segment"
	ColShipMode    = "Ship Mode"
	ColCustomerID  = "Customer ID"
)

// RequiredColumns must be present in every uploaded file, checked in this order.
var RequiredColumns = []string{ColSales, ColRegion, ColCategory}

// FilterColumns are the categorical columns exposed as multi-select filters.
var FilterColumns = []string{ColRegion, ColCategory, ColSegment, ColShipMode}

// ColumnKind is the inferred type of a column.
type ColumnKind string

const (
	KindNumeric ColumnKind = "numeric"
	KindDate    ColumnKind = "date"
	KindText    ColumnKind = "text"
)

// Column describes one column of an uploaded file.
type Column struct {
	Name string     `json:"name"`
	Kind ColumnKind `json:"kind"`
}

// Row is a single order line. Raw holds the cells as read, in column order;
// the typed fields are resolved once at load time.
type Row struct {
	Raw       []string
	Sales     decimal.Decimal
	Profit    decimal.Decimal
	Discount  decimal.Decimal
	Quantity  int64
	OrderDate *time.Time
	ShipDate  *time.Time
}

// Table is a parsed transaction file.
type Table struct {
	Columns []Column
	Rows    []Row
	Caps    Capability

	index map[string]int
}

// NewTable creates an empty table with the given columns.
func NewTable(columns []Column) *Table {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c.Name] = i
	}
	return &Table{Columns: columns, index: index}
}

// ColumnIndex returns the position of a named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Header returns the column names in file order.
func (t *Table) Header() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Text returns the trimmed cell of a row for a named column, or "" when the
// column does not exist.
func (t *Table) Text(r *Row, column string) string {
	i, ok := t.index[column]
	if !ok || i >= len(r.Raw) {
		return ""
	}
	return strings.TrimSpace(r.Raw[i])
}

// CalendarDate drops the time of day, keeping the calendar date in UTC.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
