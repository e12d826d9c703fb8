package metrics

import (
	"github.com/rocjay1/superstore-analytics/internal/models"
	"github.com/shopspring/decimal"
)

// KPIs are the headline scalars of a filtered view. Money is in base currency.
type KPIs struct {
	TotalSales      decimal.Decimal                `json:"totalSales"`
	TotalOrders     int                            `json:"totalOrders"`
	AvgOrderValue   decimal.Decimal                `json:"avgOrderValue"`
	TotalProfit     models.Result[decimal.Decimal] `json:"totalProfit"`
	MarginPct       models.Result[decimal.Decimal] `json:"marginPct"`
	TotalQuantity   models.Result[int64]           `json:"totalQuantity"`
	UniqueCustomers int                            `json:"uniqueCustomers"`
	// CustomersApproximated is set when there is no Customer ID column and
	// UniqueCustomers falls back to the order count.
	CustomersApproximated bool `json:"customersApproximated"`
}

// LabeledValue is a single group key with its summed measure.
type LabeledValue struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// MonthlyPoint is one calendar month of revenue. MovingAvg averages this
// month with up to two preceding months.
type MonthlyPoint struct {
	Month     string          `json:"month"`
	Sales     decimal.Decimal `json:"sales"`
	Orders    int             `json:"orders"`
	MovingAvg decimal.Decimal `json:"movingAvg3"`
}

// YearMonthPoint is the revenue of one month of one year.
type YearMonthPoint struct {
	Year  int             `json:"year"`
	Month int             `json:"month"`
	Sales decimal.Decimal `json:"sales"`
}

// CategoryMonthPoint is the revenue of one category in one month.
type CategoryMonthPoint struct {
	Month    string          `json:"month"`
	Category string          `json:"category"`
	Sales    decimal.Decimal `json:"sales"`
}

// RegionShare is a region's revenue and its share of the total.
type RegionShare struct {
	Region   string                         `json:"region"`
	Sales    decimal.Decimal                `json:"sales"`
	Orders   int                            `json:"orders"`
	SharePct models.Result[decimal.Decimal] `json:"sharePct"`
}

// CrossTab is a two-way table of summed sales. Values[i][j] belongs to
// Rows[i] and Columns[j]; combinations with no rows are zero.
type CrossTab struct {
	Rows    []string            `json:"rows"`
	Columns []string            `json:"columns"`
	Values  [][]decimal.Decimal `json:"values"`
}

// SubCategoryProfit summarizes one sub-category.
type SubCategoryProfit struct {
	SubCategory string                         `json:"subCategory"`
	Sales       decimal.Decimal                `json:"sales"`
	Profit      decimal.Decimal                `json:"profit"`
	Orders      int                            `json:"orders"`
	MarginPct   models.Result[decimal.Decimal] `json:"marginPct"`
}

// Product is a product with its revenue. Short is the name cut for display.
type Product struct {
	Name  string          `json:"name"`
	Short string          `json:"short"`
	Sales decimal.Decimal `json:"sales"`
}

// RegionMargin is a region's profit margin.
type RegionMargin struct {
	Region    string                         `json:"region"`
	Sales     decimal.Decimal                `json:"sales"`
	Profit    decimal.Decimal                `json:"profit"`
	MarginPct models.Result[decimal.Decimal] `json:"marginPct"`
}

// MonthlyProfitPoint is one month of profit and margin.
type MonthlyProfitPoint struct {
	Month     string                         `json:"month"`
	Profit    decimal.Decimal                `json:"profit"`
	Sales     decimal.Decimal                `json:"sales"`
	MarginPct models.Result[decimal.Decimal] `json:"marginPct"`
}

// DiscountPoint is one sampled order line. Row is its index in the table.
type DiscountPoint struct {
	Row      int             `json:"row"`
	Discount decimal.Decimal `json:"discount"`
	Profit   decimal.Decimal `json:"profit"`
}

// DiscountBand is the average profit of orders within a discount band.
type DiscountBand struct {
	Band      string          `json:"band"`
	AvgProfit decimal.Decimal `json:"avgProfit"`
	Orders    int             `json:"orders"`
}

// Trends feed the sales trend charts.
type Trends struct {
	Monthly         models.Result[[]MonthlyPoint]       `json:"monthly"`
	YearMonth       models.Result[[]YearMonthPoint]     `json:"yearMonth"`
	CategoryMonthly models.Result[[]CategoryMonthPoint] `json:"categoryMonthly"`
	DayOfWeek       models.Result[[]LabeledValue]       `json:"dayOfWeek"`
	ShipMode        models.Result[[]LabeledValue]       `json:"shipMode"`
}

// Regional feeds the regional charts.
type Regional struct {
	Regions        []RegionShare                 `json:"regions"`
	States         models.Result[[]LabeledValue] `json:"states"`
	TopStates      models.Result[[]LabeledValue] `json:"topStates"`
	BottomStates   models.Result[[]LabeledValue] `json:"bottomStates"`
	RegionCategory CrossTab                      `json:"regionCategory"`
}

// Products feeds the product performance charts.
type Products struct {
	Categories        []LabeledValue                     `json:"categories"`
	SubCategories     models.Result[[]LabeledValue]      `json:"subCategories"`
	SubCategoryProfit models.Result[[]SubCategoryProfit] `json:"subCategoryProfit"`
	TopProducts       models.Result[[]Product]           `json:"topProducts"`
}

// Profitability feeds the profitability charts.
type Profitability struct {
	CategoryProfit     models.Result[[]LabeledValue]       `json:"categoryProfit"`
	RegionMargin       models.Result[[]RegionMargin]       `json:"regionMargin"`
	ProfitDistribution models.Result[[]decimal.Decimal]    `json:"profitDistribution"`
	MonthlyProfit      models.Result[[]MonthlyProfitPoint] `json:"monthlyProfit"`
	DiscountSample     models.Result[[]DiscountPoint]      `json:"discountSample"`
	DiscountBands      models.Result[[]DiscountBand]       `json:"discountBands"`
}

// Bundle is everything computed from one filtered view.
type Bundle struct {
	KPIs          KPIs          `json:"kpis"`
	Trends        Trends        `json:"trends"`
	Regional      Regional      `json:"regional"`
	Products      Products      `json:"products"`
	Profitability Profitability `json:"profitability"`
}
