package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/rocjay1/superstore-analytics/internal/currency"
	"github.com/rocjay1/superstore-analytics/internal/metrics"
	"github.com/rocjay1/superstore-analytics/internal/models"
	"github.com/shopspring/decimal"
)

type section struct {
	title string
	err   error
	write func(table *tablewriter.Table)
}

func writeSection(w io.Writer, s section) {
	fmt.Fprintf(w, "\n=== %s ===\n", s.title)
	if s.err != nil {
		fmt.Fprintf(w, "%s\n", Notice(s.err))
		return
	}
	table := tablewriter.NewWriter(w)
	s.write(table)
	table.Render()
}

// WriteText prints the dashboard as plain-text tables. Money is shown in the
// formatter's display currency; sections whose column is missing print a
// notice instead of a table.
func WriteText(w io.Writer, b metrics.Bundle, f *currency.Formatter) {
	fmt.Fprintf(w, "=== Key Performance Indicators (%s) ===\n", f.Label())
	kpis := tablewriter.NewWriter(w)
	kpis.SetHeader([]string{"KPI", "Value", "In Words", "Detail"})
	for _, c := range Cards(b.KPIs, f) {
		kpis.Append([]string{c.Label, c.Value, c.Words, c.Detail})
	}
	kpis.Render()

	for _, s := range sections(b, f) {
		writeSection(w, s)
	}
}

func sections(b metrics.Bundle, f *currency.Formatter) []section {
	money := f.Amount
	var out []section

	monthly, _ := b.Trends.Monthly.Get()
	out = append(out, section{title: "Monthly Revenue", err: b.Trends.Monthly.Err(), write: func(t *tablewriter.Table) {
		t.SetHeader([]string{"Month", "Revenue", "Orders", "3-Month Avg"})
		for _, p := range monthly {
			t.Append([]string{p.Month, money(p.Sales), strconv.Itoa(p.Orders), money(p.MovingAvg)})
		}
	}})

	days, _ := b.Trends.DayOfWeek.Get()
	out = append(out, labeledSection("Revenue by Day of Week", "Day", b.Trends.DayOfWeek.Err(), days, money))

	modes, _ := b.Trends.ShipMode.Get()
	out = append(out, labeledSection("Revenue by Ship Mode", "Ship Mode", b.Trends.ShipMode.Err(), modes, money))

	out = append(out, section{title: "Revenue by Region", write: func(t *tablewriter.Table) {
		t.SetHeader([]string{"Region", "Revenue", "Orders", "Share"})
		for _, r := range b.Regional.Regions {
			t.Append([]string{r.Region, money(r.Sales), strconv.Itoa(r.Orders), percent(r.SharePct, 1)})
		}
	}})

	top, _ := b.Regional.TopStates.Get()
	out = append(out, labeledSection("Top States", "State", b.Regional.TopStates.Err(), top, money))
	bottom, _ := b.Regional.BottomStates.Get()
	out = append(out, labeledSection("Bottom States", "State", b.Regional.BottomStates.Err(), bottom, money))

	ct := b.Regional.RegionCategory
	out = append(out, section{title: "Region x Category", write: func(t *tablewriter.Table) {
		t.SetHeader(append([]string{models.ColRegion}, ct.Columns...))
		for i, region := range ct.Rows {
			row := []string{region}
			for _, v := range ct.Values[i] {
				row = append(row, money(v))
			}
			t.Append(row)
		}
	}})

	out = append(out, labeledSection("Revenue by Category", "Category", nil, b.Products.Categories, money))

	subs, _ := b.Products.SubCategoryProfit.Get()
	out = append(out, section{title: "Sub-Category Profitability", err: b.Products.SubCategoryProfit.Err(), write: func(t *tablewriter.Table) {
		t.SetHeader([]string{"Sub-Category", "Revenue", "Profit", "Orders", "Margin"})
		for _, s := range subs {
			t.Append([]string{s.SubCategory, money(s.Sales), money(s.Profit), strconv.Itoa(s.Orders), percent(s.MarginPct, 1)})
		}
	}})

	products, _ := b.Products.TopProducts.Get()
	out = append(out, section{title: "Top Products", err: b.Products.TopProducts.Err(), write: func(t *tablewriter.Table) {
		t.SetHeader([]string{"#", "Product", "Revenue"})
		for i, p := range products {
			t.Append([]string{strconv.Itoa(i + 1), p.Short, money(p.Sales)})
		}
	}})

	margins, _ := b.Profitability.RegionMargin.Get()
	out = append(out, section{title: "Margin by Region", err: b.Profitability.RegionMargin.Err(), write: func(t *tablewriter.Table) {
		t.SetHeader([]string{"Region", "Revenue", "Profit", "Margin"})
		for _, m := range margins {
			t.Append([]string{m.Region, money(m.Sales), money(m.Profit), percent(m.MarginPct, 2)})
		}
	}})

	bands, _ := b.Profitability.DiscountBands.Get()
	out = append(out, section{title: "Average Profit by Discount Band", err: b.Profitability.DiscountBands.Err(), write: func(t *tablewriter.Table) {
		t.SetHeader([]string{"Discount", "Avg Profit", "Orders"})
		for _, band := range bands {
			t.Append([]string{band.Band, money(band.AvgProfit), strconv.Itoa(band.Orders)})
		}
	}})

	return out
}

func labeledSection(title, header string, err error, values []metrics.LabeledValue, money func(decimal.Decimal) string) section {
	return section{title: title, err: err, write: func(t *tablewriter.Table) {
		t.SetHeader([]string{header, "Revenue"})
		for _, v := range values {
			t.Append([]string{v.Label, money(v.Value)})
		}
	}}
}

func percent(r models.Result[decimal.Decimal], places int32) string {
	if v, ok := r.Get(); ok {
		return currency.Percent(v, places)
	}
	return NotAvailable
}
