package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/rocjay1/superstore-analytics/internal/filter"
	"github.com/rocjay1/superstore-analytics/internal/models"
	"github.com/shopspring/decimal"
)

// MovingWindow is the number of months averaged by the monthly moving average.
const MovingWindow = 3

// Weekdays is the display order of the day-of-week aggregate.
var Weekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// ComputeTrends returns the time-based aggregates of a view.
func ComputeTrends(view filter.View) Trends {
	caps := view.Caps()
	var t Trends

	if caps.Has(models.CapOrderDate) {
		t.Monthly = models.Available(monthly(view))
		t.YearMonth = models.Available(yearMonth(view))
		t.DayOfWeek = models.Available(dayOfWeek(view))
		t.CategoryMonthly = models.Available(categoryMonthly(view))
	} else {
		t.Monthly = models.Unavailable[[]MonthlyPoint](models.ColOrderDate)
		t.YearMonth = models.Unavailable[[]YearMonthPoint](models.ColOrderDate)
		t.DayOfWeek = models.Unavailable[[]LabeledValue](models.ColOrderDate)
		t.CategoryMonthly = models.Unavailable[[]CategoryMonthPoint](models.ColOrderDate)
	}

	if caps.Has(models.CapShipMode) {
		modes := labeled(view, groupBy(view, byColumn(view, models.ColShipMode)), sales)
		SortAsc(modes)
		t.ShipMode = models.Available(modes)
	} else {
		t.ShipMode = models.Unavailable[[]LabeledValue](models.ColShipMode)
	}

	return t
}

func monthly(view filter.View) []MonthlyPoint {
	groups := groupBy(view, byMonth(view))
	points := make([]MonthlyPoint, len(groups))
	for i, g := range groups {
		points[i] = MonthlyPoint{Month: g.key, Sales: sum(view, g.rows, sales), Orders: len(g.rows)}
	}
	// Trailing average with a minimum window of one month.
	for i := range points {
		start := i - MovingWindow + 1
		if start < 0 {
			start = 0
		}
		total := decimal.Zero
		for _, p := range points[start : i+1] {
			total = total.Add(p.Sales)
		}
		points[i].MovingAvg = total.Div(decimal.NewFromInt(int64(i - start + 1)))
	}
	return points
}

func yearMonth(view filter.View) []YearMonthPoint {
	groups := groupBy(view, byMonth(view))
	points := make([]YearMonthPoint, 0, len(groups))
	for _, g := range groups {
		year, month, ok := splitMonth(g.key)
		if !ok {
			continue
		}
		points = append(points, YearMonthPoint{Year: year, Month: month, Sales: sum(view, g.rows, sales)})
	}
	return points
}

func splitMonth(key string) (int, int, bool) {
	y, m, found := strings.Cut(key, "-")
	if !found {
		return 0, 0, false
	}
	year, err := strconv.Atoi(y)
	if err != nil {
		return 0, 0, false
	}
	month, err := strconv.Atoi(m)
	if err != nil {
		return 0, 0, false
	}
	return year, month, true
}

func categoryMonthly(view filter.View) []CategoryMonthPoint {
	month := byMonth(view)
	key := func(i int) (string, bool) {
		m, ok := month(i)
		category := view.Text(i, models.ColCategory)
		if !ok || category == "" {
			return "", false
		}
		// Month keys are fixed width, so the composite sorts by month then category.
		return m + "\x00" + category, true
	}
	groups := groupBy(view, key)
	points := make([]CategoryMonthPoint, len(groups))
	for i, g := range groups {
		m, category, _ := strings.Cut(g.key, "\x00")
		points[i] = CategoryMonthPoint{Month: m, Category: category, Sales: sum(view, g.rows, sales)}
	}
	return points
}

func dayOfWeek(view filter.View) []LabeledValue {
	totals := make(map[time.Weekday]decimal.Decimal, len(Weekdays))
	for i := 0; i < view.Len(); i++ {
		r := view.Row(i)
		if r.OrderDate == nil {
			continue
		}
		day := r.OrderDate.Weekday()
		totals[day] = totals[day].Add(r.Sales)
	}
	out := make([]LabeledValue, len(Weekdays))
	for i, day := range Weekdays {
		out[i] = LabeledValue{Label: day.String(), Value: totals[day]}
	}
	return out
}
