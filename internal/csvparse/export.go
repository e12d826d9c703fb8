package csvparse

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/rocjay1/superstore-analytics/internal/models"
)

// ExportFilename is the download name of a filtered export.
const ExportFilename = "superstore_filtered.csv"

// WriteCSV writes the header and the raw cells of the given rows, in the
// original column order. No currency conversion or formatting is applied.
func WriteCSV(w io.Writer, table *models.Table, rows []int) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(table.Header()); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, i := range rows {
		if err := writer.Write(table.Rows[i].Raw); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
