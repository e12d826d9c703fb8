// Package report renders a computed dashboard as KPI cards, plain-text
// tables and PNG bar charts.
package report

import (
	"fmt"

	"github.com/rocjay1/superstore-analytics/internal/currency"
	"github.com/rocjay1/superstore-analytics/internal/metrics"
	"github.com/rocjay1/superstore-analytics/internal/models"
)

// NotAvailable is shown in place of a value that cannot be computed.
const NotAvailable = "N/A"

// Card is one formatted KPI.
type Card struct {
	Label     string `json:"label"`
	Value     string `json:"value"`
	Words     string `json:"words,omitempty"`
	Detail    string `json:"detail"`
	Available bool   `json:"available"`
}

// Cards formats the headline KPIs in display currency.
func Cards(k metrics.KPIs, f *currency.Formatter) []Card {
	cards := []Card{{
		Label:     "Total Revenue",
		Value:     f.Compact(k.TotalSales),
		Words:     f.Words(k.TotalSales),
		Detail:    currency.Int(int64(k.TotalOrders)) + " transactions",
		Available: true,
	}}

	profit := Card{Label: "Gross Profit", Value: NotAvailable, Detail: Notice(k.TotalProfit.Err())}
	if p, ok := k.TotalProfit.Get(); ok {
		profit.Value, profit.Words, profit.Available = f.Compact(p), f.Words(p), true
		if m, ok := k.MarginPct.Get(); ok {
			profit.Detail = currency.Percent(m, 1) + " margin"
		} else {
			profit.Detail = Notice(k.MarginPct.Err())
		}
	}
	cards = append(cards, profit)

	margin := Card{Label: "Profit Margin", Value: NotAvailable, Detail: Notice(k.MarginPct.Err())}
	if m, ok := k.MarginPct.Get(); ok {
		margin.Value, margin.Detail, margin.Available = currency.Percent(m, 1), "of total revenue", true
	}
	cards = append(cards, margin)

	units := Card{Label: "Units Sold", Value: NotAvailable, Detail: Notice(k.TotalQuantity.Err())}
	if q, ok := k.TotalQuantity.Get(); ok {
		units.Value, units.Detail, units.Available = currency.Int(q), "items shipped", true
	}
	cards = append(cards, units)

	cards = append(cards, Card{
		Label:     "Avg Order Value",
		Value:     f.Compact(k.AvgOrderValue),
		Words:     f.Words(k.AvgOrderValue),
		Detail:    "per transaction",
		Available: true,
	})

	customers := Card{
		Label:     "Customers",
		Value:     currency.Int(int64(k.UniqueCustomers)),
		Detail:    "unique buyers",
		Available: true,
	}
	if k.CustomersApproximated {
		customers.Detail = fmt.Sprintf("rows (no %s column)", models.ColCustomerID)
	}
	return append(cards, customers)
}

// Notice turns an unavailable result into the message shown to the user.
func Notice(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if len(msg) > 0 && msg[0] >= 'a' && msg[0] <= 'z' {
		msg = string(msg[0]-'a'+'A') + msg[1:]
	}
	return msg
}
