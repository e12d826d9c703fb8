package csvparse

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rocjay1/superstore-analytics/internal/fixtures"
	"github.com/rocjay1/superstore-analytics/internal/models"
	"github.com/shopspring/decimal"
)

func TestParseCSV_Valid(t *testing.T) {
	table, errs, err := ParseCSV(fixtures.Orders)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("Expected no row errors, got: %v", errs)
	}
	if len(table.Rows) != 10 {
		t.Fatalf("Expected 10 rows, got %d", len(table.Rows))
	}

	r := table.Rows[2]
	if !r.Sales.Equal(decimal.NewFromInt(300)) {
		t.Errorf("Expected Sales 300, got %s", r.Sales)
	}
	if !r.Profit.Equal(decimal.NewFromInt(-30)) {
		t.Errorf("Expected Profit -30, got %s", r.Profit)
	}
	if !r.Discount.Equal(decimal.RequireFromString("0.2")) {
		t.Errorf("Expected Discount 0.2, got %s", r.Discount)
	}
	if r.Quantity != 3 {
		t.Errorf("Expected Quantity 3, got %d", r.Quantity)
	}
	if r.OrderDate == nil || r.OrderDate.Format(models.DateLayout) != "2024-02-01" {
		t.Errorf("Expected Order Date 2024-02-01, got %v", r.OrderDate)
	}
	if got := table.Text(&r, models.ColState); got != "California" {
		t.Errorf("Expected State 'California', got '%s'", got)
	}
	if len(table.Caps.Missing()) != 0 {
		t.Errorf("Expected every optional column, missing %v", table.Caps.Missing())
	}
}

func TestParseCSV_ColumnKinds(t *testing.T) {
	table, _, err := ParseCSV(fixtures.Orders)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	want := map[string]models.ColumnKind{
		models.ColSales:     models.KindNumeric,
		models.ColOrderDate: models.KindDate,
		models.ColRegion:    models.KindText,
		"Row ID":            models.KindNumeric,
	}
	for _, c := range table.Columns {
		if kind, ok := want[c.Name]; ok && c.Kind != kind {
			t.Errorf("Expected %s to be %s, got %s", c.Name, kind, c.Kind)
		}
	}
}

func TestParseCSV_BOMAndWhitespace(t *testing.T) {
	content := "\ufeff Sales , Region , Category \n 12.5 , East , Furniture \n"

	table, errs, err := ParseCSV(content)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("Expected no row errors, got: %v", errs)
	}
	if !table.HasColumn(models.ColSales) {
		t.Fatalf("Expected Sales header after BOM, got %v", table.Header())
	}
	if got := table.Text(&table.Rows[0], models.ColRegion); got != "East" {
		t.Errorf("Expected Region 'East', got '%s'", got)
	}
}

func TestParseCSV_RaggedAndBlankRows(t *testing.T) {
	content := "Sales,Region,Category,State\n100,East,Furniture\n\n200,West,Technology,Oregon,,\n"

	table, errs, err := ParseCSV(content)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("Expected no row errors, got: %v", errs)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(table.Rows))
	}
	if got := table.Text(&table.Rows[0], models.ColState); got != "" {
		t.Errorf("Expected empty State for short row, got '%s'", got)
	}
	if len(table.Rows[1].Raw) != 4 {
		t.Errorf("Expected blank trailing cells dropped to 4 cells, got %d", len(table.Rows[1].Raw))
	}
}

func TestParseCSV_TooManyFields(t *testing.T) {
	content := "Sales,Region,Category\n100,East,Furniture,Chairs\n200,West,Technology\n"

	table, errs, err := ParseCSV(content)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(errs) != 1 || errs[0] != "Row 2: too many fields (got 4, want 3)" {
		t.Fatalf("Expected one too many fields error on Row 2, got: %v", errs)
	}
	if len(table.Rows) != 1 || !table.Rows[0].Sales.Equal(decimal.NewFromInt(200)) {
		t.Errorf("Expected only the 200 row to be kept, got %d rows", len(table.Rows))
	}
}

func TestParseCSV_InvalidRows(t *testing.T) {
	content := `Sales,Region,Category,Quantity,Order Date
abc,East,Furniture,1,01/02/2024
-5,East,Furniture,1,01/02/2024
100,East,Furniture,1.5,01/02/2024
,West,Technology,1,01/02/2024
100,West,Technology,2,not a date`

	table, errs, err := ParseCSV(content)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(errs) != 4 {
		t.Fatalf("Expected 4 row errors, got %d: %v", len(errs), errs)
	}
	if !strings.HasPrefix(errs[0], "Row 2:") {
		t.Errorf("Expected first error on Row 2, got '%s'", errs[0])
	}
	if len(table.Rows) != 1 {
		t.Fatalf("Expected 1 valid row, got %d", len(table.Rows))
	}
	if table.Rows[0].OrderDate != nil {
		t.Errorf("Expected unparseable date to be nil, got %v", table.Rows[0].OrderDate)
	}
}

func TestParseCSV_MissingRequiredColumn(t *testing.T) {
	_, _, err := ParseCSV("Category,Profit\nFurniture,1\n")

	var missing *models.MissingRequiredColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("Expected MissingRequiredColumnError, got %v", err)
	}
	if missing.Field != models.ColSales {
		t.Errorf("Expected first missing column Sales, got %s", missing.Field)
	}
	if !errors.Is(err, models.ErrMissingRequiredColumn) {
		t.Errorf("Expected error to match ErrMissingRequiredColumn")
	}

	_, _, err = ParseCSV(fixtures.NoRegion)
	if !errors.As(err, &missing) || missing.Field != models.ColRegion {
		t.Errorf("Expected missing Region, got %v", err)
	}
}

func TestParseCSV_Empty(t *testing.T) {
	if _, _, err := ParseCSV(""); !errors.Is(err, ErrNoHeader) {
		t.Errorf("Expected ErrNoHeader, got %v", err)
	}
}

func TestValidate_Capabilities(t *testing.T) {
	caps, err := Validate([]string{"Sales", "Region", "Category", "Profit", "Unknown"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !caps.Has(models.CapProfit) {
		t.Errorf("Expected Profit capability")
	}
	if caps.Has(models.CapOrderDate) {
		t.Errorf("Expected no Order Date capability")
	}
	if got := caps.Present(); len(got) != 1 || got[0] != models.ColProfit {
		t.Errorf("Expected only Profit present, got %v", got)
	}
}

func TestWriteCSV(t *testing.T) {
	table, _, err := ParseCSV("Sales,Region,Category,Product Name\n100,East,Furniture,\"Chair, Deluxe\"\n200,West,Technology,Phone\n")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, table, []int{1, 0}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	want := "Sales,Region,Category,Product Name\n200,West,Technology,Phone\n100,East,Furniture,\"Chair, Deluxe\"\n"
	if buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
}
