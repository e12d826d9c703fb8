package metrics

import (
	"math/rand"
	"sort"

	"github.com/rocjay1/superstore-analytics/internal/filter"
	"github.com/rocjay1/superstore-analytics/internal/models"
	"github.com/shopspring/decimal"
)

const (
	// SampleSize caps the discount versus profit scatter.
	SampleSize = 3000
	// SampleSeed fixes the scatter sample so identical views sample identically.
	SampleSeed = 42
)

// Band is a discount interval. Lower is exclusive unless Inclusive is set.
type Band struct {
	Label     string
	Lower     decimal.Decimal
	Upper     decimal.Decimal
	Inclusive bool
}

// Bands are the fixed discount bands, in display order.
var Bands = []Band{
	{Label: "0-10%", Lower: decimal.Zero, Upper: decimal.RequireFromString("0.1"), Inclusive: true},
	{Label: "10-20%", Lower: decimal.RequireFromString("0.1"), Upper: decimal.RequireFromString("0.2")},
	{Label: "20-30%", Lower: decimal.RequireFromString("0.2"), Upper: decimal.RequireFromString("0.3")},
	{Label: "30-50%", Lower: decimal.RequireFromString("0.3"), Upper: decimal.RequireFromString("0.5")},
	{Label: "50%+", Lower: decimal.RequireFromString("0.5"), Upper: decimal.NewFromInt(1)},
}

// Contains reports whether d falls within the band.
func (b Band) Contains(d decimal.Decimal) bool {
	if d.GreaterThan(b.Upper) {
		return false
	}
	if b.Inclusive {
		return d.GreaterThanOrEqual(b.Lower)
	}
	return d.GreaterThan(b.Lower)
}

// BandOf returns the index of the band containing d, or -1.
func BandOf(d decimal.Decimal) int {
	for i, b := range Bands {
		if b.Contains(d) {
			return i
		}
	}
	return -1
}

// ComputeProfitability returns the profit aggregates of a view. Everything
// here needs Profit; some aggregates need a further column.
func ComputeProfitability(view filter.View) Profitability {
	caps := view.Caps()
	var p Profitability

	if !caps.Has(models.CapProfit) {
		p.CategoryProfit = models.Unavailable[[]LabeledValue](models.ColProfit)
		p.RegionMargin = models.Unavailable[[]RegionMargin](models.ColProfit)
		p.ProfitDistribution = models.Unavailable[[]decimal.Decimal](models.ColProfit)
		p.MonthlyProfit = models.Unavailable[[]MonthlyProfitPoint](models.ColProfit)
		p.DiscountSample = models.Unavailable[[]DiscountPoint](models.ColProfit)
		p.DiscountBands = models.Unavailable[[]DiscountBand](models.ColProfit)
		return p
	}

	p.CategoryProfit = models.Available(labeled(view, groupBy(view, byColumn(view, models.ColCategory)), profit))
	p.RegionMargin = models.Available(regionMargins(view))
	p.ProfitDistribution = models.Available(profitValues(view))

	if caps.Has(models.CapOrderDate) {
		p.MonthlyProfit = models.Available(monthlyProfit(view))
	} else {
		p.MonthlyProfit = models.Unavailable[[]MonthlyProfitPoint](models.ColOrderDate)
	}

	if caps.Has(models.CapDiscount) {
		p.DiscountSample = models.Available(DiscountSample(view))
		p.DiscountBands = models.Available(discountBands(view))
	} else {
		p.DiscountSample = models.Unavailable[[]DiscountPoint](models.ColDiscount)
		p.DiscountBands = models.Unavailable[[]DiscountBand](models.ColDiscount)
	}
	return p
}

func regionMargins(view filter.View) []RegionMargin {
	groups := groupBy(view, byColumn(view, models.ColRegion))
	out := make([]RegionMargin, len(groups))
	for i, g := range groups {
		s, pr := sum(view, g.rows, sales), sum(view, g.rows, profit)
		out[i] = RegionMargin{Region: g.key, Sales: s, Profit: pr, MarginPct: margin(pr, s, 2)}
	}
	return out
}

func profitValues(view filter.View) []decimal.Decimal {
	out := make([]decimal.Decimal, view.Len())
	for i := range out {
		out[i] = view.Row(i).Profit
	}
	return out
}

func monthlyProfit(view filter.View) []MonthlyProfitPoint {
	groups := groupBy(view, byMonth(view))
	out := make([]MonthlyProfitPoint, len(groups))
	for i, g := range groups {
		s, pr := sum(view, g.rows, sales), sum(view, g.rows, profit)
		out[i] = MonthlyProfitPoint{Month: g.key, Profit: pr, Sales: s, MarginPct: margin(pr, s, 2)}
	}
	return out
}

// DiscountSample picks at most SampleSize rows of view with a fixed seed.
// Views no larger than SampleSize are returned whole; picked rows keep
// their view order.
func DiscountSample(view filter.View) []DiscountPoint {
	positions := samplePositions(view.Len(), SampleSize, SampleSeed)
	indices := view.Indices()
	out := make([]DiscountPoint, len(positions))
	for i, pos := range positions {
		r := view.Row(pos)
		out[i] = DiscountPoint{Row: indices[pos], Discount: r.Discount, Profit: r.Profit}
	}
	return out
}

func samplePositions(n, size int, seed int64) []int {
	positions := make([]int, n)
	for i := range positions {
		positions[i] = i
	}
	if n <= size {
		return positions
	}
	rng := rand.New(rand.NewSource(seed))
	// Partial Fisher-Yates: the first size slots end up a uniform sample.
	for i := 0; i < size; i++ {
		j := i + rng.Intn(n-i)
		positions[i], positions[j] = positions[j], positions[i]
	}
	picked := positions[:size]
	sort.Ints(picked)
	return picked
}

func discountBands(view filter.View) []DiscountBand {
	rows := make([][]int, len(Bands))
	for i := 0; i < view.Len(); i++ {
		if b := BandOf(view.Row(i).Discount); b >= 0 {
			rows[b] = append(rows[b], i)
		}
	}
	var out []DiscountBand
	for b, positions := range rows {
		if len(positions) == 0 {
			continue
		}
		out = append(out, DiscountBand{
			Band:      Bands[b].Label,
			AvgProfit: mean(view, positions, profit),
			Orders:    len(positions),
		})
	}
	return out
}
