package metrics

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/rocjay1/superstore-analytics/internal/csvparse"
	"github.com/rocjay1/superstore-analytics/internal/filter"
	"github.com/rocjay1/superstore-analytics/internal/models"
)

// Explorer summarizes the shape of a view for the data explorer tab.
type Explorer struct {
	Rows     int             `json:"rows"`
	Columns  int             `json:"columns"`
	Nulls    int             `json:"nulls"`
	MemoryKB float64         `json:"memoryKB"`
	Describe []ColumnSummary `json:"describe"`
	Missing  []string        `json:"missingColumns"`
	Kinds    []models.Column `json:"columnKinds"`
}

// ColumnSummary holds descriptive statistics of one numeric column. Std is
// nil when there are fewer than two values.
type ColumnSummary struct {
	Column string   `json:"column"`
	Count  int      `json:"count"`
	Mean   float64  `json:"mean"`
	Std    *float64 `json:"std"`
	Min    float64  `json:"min"`
	P25    float64  `json:"p25"`
	P50    float64  `json:"p50"`
	P75    float64  `json:"p75"`
	Max    float64  `json:"max"`
}

// Explore returns row and column counts, the number of null cells, an
// approximate memory footprint, and descriptive statistics for every numeric
// column of view.
func Explore(view filter.View) Explorer {
	table := view.Table()
	e := Explorer{
		Rows:    view.Len(),
		Columns: len(table.Columns),
		Missing: view.Caps().Missing(),
		Kinds:   append([]models.Column{}, table.Columns...),
	}

	bytes := 0
	for i := 0; i < view.Len(); i++ {
		r := view.Row(i)
		for c, col := range table.Columns {
			cell := ""
			if c < len(r.Raw) {
				cell = r.Raw[c]
			}
			bytes += len(cell)
			if isNull(cell, col) {
				e.Nulls++
			}
		}
	}
	e.MemoryKB = round2(float64(bytes) / 1024)

	for c, col := range table.Columns {
		if col.Kind != models.KindNumeric {
			continue
		}
		values := make([]float64, 0, view.Len())
		for i := 0; i < view.Len(); i++ {
			raw := view.Row(i).Raw
			if c >= len(raw) {
				continue
			}
			if f, err := strconv.ParseFloat(strings.TrimSpace(raw[c]), 64); err == nil {
				values = append(values, f)
			}
		}
		if len(values) > 0 {
			e.Describe = append(e.Describe, describe(col.Name, values))
		}
	}
	return e
}

func isNull(cell string, col models.Column) bool {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return true
	}
	return col.Kind == models.KindDate && csvparse.ParseDate(cell) == nil
}

func describe(name string, values []float64) ColumnSummary {
	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)

	n := float64(len(sorted))
	total := 0.0
	for _, v := range sorted {
		total += v
	}
	mean := total / n

	s := ColumnSummary{
		Column: name,
		Count:  len(sorted),
		Mean:   round2(mean),
		Min:    round2(sorted[0]),
		P25:    round2(quantile(sorted, 0.25)),
		P50:    round2(quantile(sorted, 0.5)),
		P75:    round2(quantile(sorted, 0.75)),
		Max:    round2(sorted[len(sorted)-1]),
	}
	if len(sorted) > 1 {
		ss := 0.0
		for _, v := range sorted {
			ss += (v - mean) * (v - mean)
		}
		std := round2(math.Sqrt(ss / (n - 1)))
		s.Std = &std
	}
	return s
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
