package metrics

import (
	"github.com/rocjay1/superstore-analytics/internal/filter"
	"github.com/rocjay1/superstore-analytics/internal/models"
	"github.com/shopspring/decimal"
)

// ComputeKPIs returns the headline scalars of a view.
func ComputeKPIs(view filter.View) KPIs {
	caps := view.Caps()
	rows := allRows(view)

	k := KPIs{
		TotalSales:    sum(view, rows, sales),
		TotalOrders:   view.Len(),
		AvgOrderValue: mean(view, rows, sales),
	}

	if caps.Has(models.CapProfit) {
		total := sum(view, rows, profit)
		k.TotalProfit = models.Available(total)
		k.MarginPct = margin(total, k.TotalSales, -1)
	} else {
		k.TotalProfit = models.Unavailable[decimal.Decimal](models.ColProfit)
		k.MarginPct = models.Unavailable[decimal.Decimal](models.ColProfit)
	}

	if caps.Has(models.CapQuantity) {
		var qty int64
		for i := 0; i < view.Len(); i++ {
			qty += view.Row(i).Quantity
		}
		k.TotalQuantity = models.Available(qty)
	} else {
		k.TotalQuantity = models.Unavailable[int64](models.ColQuantity)
	}

	if caps.Has(models.CapCustomerID) {
		seen := make(map[string]bool)
		for i := 0; i < view.Len(); i++ {
			if id := view.Text(i, models.ColCustomerID); id != "" {
				seen[id] = true
			}
		}
		k.UniqueCustomers = len(seen)
	} else {
		k.UniqueCustomers = k.TotalOrders
		k.CustomersApproximated = true
	}

	return k
}
