// Command report prints the Superstore dashboard for an order export as text
// tables, optionally writing the filtered rows and PNG charts alongside.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rocjay1/superstore-analytics/internal/csvparse"
	"github.com/rocjay1/superstore-analytics/internal/currency"
	"github.com/rocjay1/superstore-analytics/internal/filter"
	"github.com/rocjay1/superstore-analytics/internal/metrics"
	"github.com/rocjay1/superstore-analytics/internal/models"
	"github.com/rocjay1/superstore-analytics/internal/report"
	"github.com/rocjay1/superstore-analytics/internal/services"
	"github.com/shopspring/decimal"
)

var (
	filePath  = flag.String("file", "", "Path to a Superstore CSV export")
	blobPath  = flag.String("blob", "", "Blob to read instead of -file, as container/name (uses BLOB_SERVICE_URL)")
	from      = flag.String("from", "", "Start of the order date range (YYYY-MM-DD)")
	to        = flag.String("to", "", "End of the order date range (YYYY-MM-DD)")
	regions   = flag.String("region", "", "Comma-separated regions to include")
	category  = flag.String("category", "", "Comma-separated categories to include")
	segments  = flag.String("segment", "", "Comma-separated segments to include")
	shipModes = flag.String("ship-mode", "", "Comma-separated ship modes to include")
	local     = flag.Bool("inr", false, "Show money in Indian Rupees")
	rate      = flag.String("rate", models.DefaultRate.String(), "Rupees per US dollar")
	exportTo  = flag.String("export", "", "Write the filtered rows to this CSV path")
	chartsDir = flag.String("charts", "", "Write PNG charts to this directory")
)

var filterFlags = map[string]string{
	"region":    models.ColRegion,
	"category":  models.ColCategory,
	"segment":   models.ColSegment,
	"ship-mode": models.ColShipMode,
}

func main() {
	flag.Parse()
	if err := run(context.Background()); err != nil {
		slog.Error("report failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	content, err := readInput(ctx)
	if err != nil {
		return err
	}

	table, rowErrors, err := csvparse.ParseCSV(content)
	if err != nil {
		return err
	}
	for _, msg := range rowErrors {
		slog.Warn("skipped row", "detail", msg)
	}
	if missing := table.Caps.Missing(); len(missing) > 0 {
		slog.Warn("optional columns missing, related sections are skipped", "columns", missing)
	}

	sel, err := selection(table)
	if err != nil {
		return err
	}
	view, err := filter.Apply(filter.All(table), sel)
	if err != nil {
		return err
	}

	mode := models.CurrencyMode{Local: *local, Rate: models.DefaultRate}
	r, err := decimal.NewFromString(*rate)
	if err != nil {
		return fmt.Errorf("invalid -rate %q: %w", *rate, err)
	}
	if err := mode.SetRate(r); err != nil {
		return err
	}
	formatter := currency.New(currency.Static(mode))

	bundle := metrics.Compute(view)
	report.WriteText(os.Stdout, bundle, formatter)

	if *exportTo != "" {
		if err := exportRows(*exportTo, view); err != nil {
			return err
		}
	}
	if *chartsDir != "" {
		if err := writeCharts(*chartsDir, bundle, formatter); err != nil {
			return err
		}
	}
	return nil
}

func readInput(ctx context.Context) (string, error) {
	switch {
	case *filePath != "" && *blobPath != "":
		return "", errors.New("use only one of -file and -blob")
	case *filePath != "":
		data, err := os.ReadFile(*filePath)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", *filePath, err)
		}
		return string(data), nil
	case *blobPath != "":
		container, name, err := services.ParseBlobPath(*blobPath)
		if err != nil {
			return "", err
		}
		blobService, err := services.NewBlobService(os.Getenv("BLOB_SERVICE_URL"))
		if err != nil {
			return "", err
		}
		ctx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()
		return blobService.DownloadText(ctx, container, name)
	default:
		return "", errors.New("an input is required, use -file or -blob")
	}
}

// selection starts from everything in the table and narrows it by the flags
// that were set. A filter flag set to "" deselects every value.
func selection(table *models.Table) (models.Selection, error) {
	sel := filter.DefaultSelection(table)
	flag.Visit(func(f *flag.Flag) {
		if column, ok := filterFlags[f.Name]; ok {
			sel = sel.With(column, splitList(f.Value.String()))
		}
	})

	if *from == "" && *to == "" {
		return sel, nil
	}
	var start, end time.Time
	if sel.DateRange != nil {
		start, end = sel.DateRange.Start, sel.DateRange.End
	}
	var err error
	if *from != "" {
		if start, err = time.Parse(models.DateLayout, *from); err != nil {
			return sel, fmt.Errorf("invalid -from date: %w", err)
		}
	}
	if *to != "" {
		if end, err = time.Parse(models.DateLayout, *to); err != nil {
			return sel, fmt.Errorf("invalid -to date: %w", err)
		}
	}
	if start.IsZero() || end.IsZero() {
		return sel, errors.New("-from and -to are both required without an Order Date column")
	}
	if end.Before(start) {
		return sel, errors.New("-to is before -from")
	}
	dr := models.NewDateRange(start, end)
	sel.DateRange = &dr
	return sel, nil
}

func splitList(s string) []string {
	values := []string{}
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func exportRows(path string, view filter.View) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := csvparse.WriteCSV(f, view.Table(), view.Indices()); err != nil {
		return err
	}
	slog.Info("exported filtered rows", "path", path, "rows", view.Len())
	return nil
}

func writeCharts(dir string, bundle metrics.Bundle, formatter *currency.Formatter) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create chart directory: %w", err)
	}
	for _, name := range report.ChartNames {
		path := filepath.Join(dir, name+".png")
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		err = report.RenderChart(f, name, bundle, formatter)
		f.Close()
		if errors.Is(err, models.ErrFeatureUnavailable) || errors.Is(err, models.ErrEmptyResult) {
			slog.Warn("chart skipped", "chart", name, "reason", report.Notice(err))
			os.Remove(path)
			continue
		}
		if err != nil {
			return err
		}
		slog.Info("wrote chart", "path", path)
	}
	return nil
}
