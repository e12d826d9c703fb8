package csvparse

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/rocjay1/superstore-analytics/internal/models"
	"github.com/shopspring/decimal"
)

// ErrNoHeader is returned for an empty upload.
var ErrNoHeader = errors.New("CSV has no header row")

// ParseCSV parses a Superstore order export into a table.
// It returns the table, messages for rows that were skipped, and an error when
// the file cannot be used at all (unreadable, empty, or missing a required column).
func ParseCSV(content string) (*models.Table, []string, error) {
	content = strings.TrimPrefix(content, "\ufeff")
	reader := csv.NewReader(strings.NewReader(content))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, ErrNoHeader
	}

	headers := parseHeaders(records[0])
	caps, err := Validate(headers)
	if err != nil {
		return nil, nil, err
	}

	body := records[1:]
	table := models.NewTable(inferColumns(headers, body))
	table.Caps = caps

	var errors []string
	for i, record := range body {
		rowNum := i + 2
		if isBlank(record) {
			continue
		}
		if extra := record[min(len(record), len(headers)):]; !isBlank(extra) {
			errors = append(errors, fmt.Sprintf("Row %d: too many fields (got %d, want %d)", rowNum, len(record), len(headers)))
			continue
		}
		row, err := mapToRow(table, pad(record, len(headers)))
		if err != nil {
			errors = append(errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		table.Rows = append(table.Rows, *row)
	}

	return table, errors, nil
}

func parseHeaders(row []string) []string {
	headers := make([]string, len(row))
	for i, h := range row {
		headers[i] = strings.TrimSpace(h)
	}
	return headers
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// pad extends a short record to n cells and drops blank trailing cells of a
// long one.
func pad(record []string, n int) []string {
	out := make([]string, n)
	copy(out, record)
	return out
}

// inferColumns classifies each column as date, numeric or text. Only the two
// order date columns are dates; a column is numeric when every non-empty cell
// parses as a number.
func inferColumns(headers []string, body [][]string) []models.Column {
	columns := make([]models.Column, len(headers))
	for i, h := range headers {
		kind := models.KindText
		switch {
		case h == models.ColOrderDate || h == models.ColShipDate:
			kind = models.KindDate
		case isNumericColumn(body, i):
			kind = models.KindNumeric
		}
		columns[i] = models.Column{Name: h, Kind: kind}
	}
	return columns
}

func isNumericColumn(body [][]string, col int) bool {
	seen := false
	for _, record := range body {
		if col >= len(record) {
			continue
		}
		cell := strings.TrimSpace(record[col])
		if cell == "" {
			continue
		}
		if _, err := decimal.NewFromString(cell); err != nil {
			return false
		}
		seen = true
	}
	return seen
}

func mapToRow(table *models.Table, raw []string) (*models.Row, error) {
	row := &models.Row{Raw: raw}

	salesStr := table.Text(row, models.ColSales)
	if salesStr == "" {
		return nil, fmt.Errorf("missing Sales")
	}
	sales, err := decimal.NewFromString(salesStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Sales: %s", salesStr)
	}
	if sales.IsNegative() {
		return nil, fmt.Errorf("invalid Sales: %s is negative", salesStr)
	}
	row.Sales = sales

	if table.Caps.Has(models.CapProfit) {
		if row.Profit, err = optionalDecimal(table, row, models.ColProfit); err != nil {
			return nil, err
		}
	}
	if table.Caps.Has(models.CapDiscount) {
		if row.Discount, err = optionalDecimal(table, row, models.ColDiscount); err != nil {
			return nil, err
		}
	}
	if table.Caps.Has(models.CapQuantity) {
		qty, err := optionalDecimal(table, row, models.ColQuantity)
		if err != nil {
			return nil, err
		}
		if !qty.Equal(qty.Truncate(0)) || qty.IsNegative() {
			return nil, fmt.Errorf("invalid Quantity: %s", table.Text(row, models.ColQuantity))
		}
		row.Quantity = qty.IntPart()
	}

	row.OrderDate = ParseDate(table.Text(row, models.ColOrderDate))
	row.ShipDate = ParseDate(table.Text(row, models.ColShipDate))

	return row, nil
}

// optionalDecimal parses a numeric cell; an empty cell yields zero.
func optionalDecimal(table *models.Table, row *models.Row, column string) (decimal.Decimal, error) {
	s := table.Text(row, column)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %s", column, s)
	}
	return d, nil
}
