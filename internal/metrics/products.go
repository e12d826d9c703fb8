package metrics

import (
	"github.com/rocjay1/superstore-analytics/internal/filter"
	"github.com/rocjay1/superstore-analytics/internal/models"
)

// ShortNameLength is the rune length product names are cut to for display.
const ShortNameLength = 44

// ComputeProducts returns the category and product aggregates of a view.
func ComputeProducts(view filter.View) Products {
	caps := view.Caps()
	p := Products{
		Categories: labeled(view, groupBy(view, byColumn(view, models.ColCategory)), sales),
	}

	if caps.Has(models.CapSubCategory) {
		groups := groupBy(view, byColumn(view, models.ColSubCategory))
		subs := labeled(view, groups, sales)
		SortAsc(subs)
		p.SubCategories = models.Available(subs)

		if caps.Has(models.CapProfit) {
			p.SubCategoryProfit = models.Available(subCategoryProfit(view, groups))
		} else {
			p.SubCategoryProfit = models.Unavailable[[]SubCategoryProfit](models.ColProfit)
		}
	} else {
		p.SubCategories = models.Unavailable[[]LabeledValue](models.ColSubCategory)
		p.SubCategoryProfit = models.Unavailable[[]SubCategoryProfit](models.ColSubCategory)
	}

	if caps.Has(models.CapProductName) {
		p.TopProducts = models.Available(topProducts(view))
	} else {
		p.TopProducts = models.Unavailable[[]Product](models.ColProductName)
	}
	return p
}

func subCategoryProfit(view filter.View, groups []group) []SubCategoryProfit {
	out := make([]SubCategoryProfit, len(groups))
	for i, g := range groups {
		s, pr := sum(view, g.rows, sales), sum(view, g.rows, profit)
		out[i] = SubCategoryProfit{
			SubCategory: g.key,
			Sales:       s,
			Profit:      pr,
			Orders:      len(g.rows),
			MarginPct:   margin(pr, s, 1),
		}
	}
	return out
}

func topProducts(view filter.View) []Product {
	ranked := labeled(view, groupBy(view, byColumn(view, models.ColProductName)), sales)
	SortDesc(ranked)
	top := Top(ranked, TopN)
	out := make([]Product, len(top))
	for i, v := range top {
		out[i] = Product{Name: v.Label, Short: shorten(v.Label, ShortNameLength), Sales: v.Value}
	}
	return out
}

func shorten(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
