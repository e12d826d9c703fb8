package currency

import (
	"testing"

	"github.com/rocjay1/superstore-analytics/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var (
	base  = New(Static(models.DefaultCurrencyMode()))
	local = New(Static(models.CurrencyMode{Local: true, Rate: models.DefaultRate}))
)

func TestCompact_Base(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"999", "$999.00"},
		{"12.345", "$12.34"},
		{"1000", "$1.0K"},
		{"1500", "$1.5K"},
		{"999999", "$1000.0K"},
		{"1000000", "$1.00M"},
		{"2300000", "$2.30M"},
		{"1234567890", "$1234.57M"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, base.Compact(d(tc.in)), tc.in)
	}
}

func TestWords_Base(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"999", ""},
		{"0", ""},
		{"1000", "1,000"},
		{"45678.9", "45,678"},
		{"1000000", "1 Million"},
		{"2300000", "2 Million 300 Thousand"},
		{"2000999", "2 Million"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, base.Words(d(tc.in)), tc.in)
	}
}

func TestCompact_Local(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"10", "₹835"},
		{"1000", "₹83,500"},
		{"1197.6", "₹100,000"},
		{"10000", "₹8.35 L"},
		{"1200000", "₹10.02 Cr"},
		{"12000000", "₹100.20 Cr"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, local.Compact(d(tc.in)), tc.in)
	}
}

func TestWords_Local(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"10", "₹835"},
		{"1000", "₹83,500"},
		{"10000", "8 Lakh 35 Thousand"},
		{"1200", "1 Lakh"},
		{"1200000", "10 Crore 2 Lakh"},
		{"12000000", "100 Crore 20 Lakh"},
		{"120000", "1 Crore"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, local.Words(d(tc.in)), tc.in)
	}
}

func TestNegativeValuesKeepSign(t *testing.T) {
	assert.Equal(t, "-$12.50", base.Compact(d("-12.5")))
	assert.Equal(t, "-$1.5K", base.Compact(d("-1500")))
	assert.Equal(t, "-$2.30M", base.Compact(d("-2300000")))
	assert.Equal(t, "-2 Million 300 Thousand", base.Words(d("-2300000")))
	assert.Equal(t, "-1,500", base.Words(d("-1500")))
	assert.Equal(t, "", base.Words(d("-999")))

	assert.Equal(t, "-₹835", local.Compact(d("-10")))
	assert.Equal(t, "-₹8.35 L", local.Compact(d("-10000")))
	assert.Equal(t, "-8 Lakh 35 Thousand", local.Words(d("-10000")))

	// Rounds to zero, so no sign.
	assert.Equal(t, "$0.00", base.Compact(d("-0.001")))
}

type mutableMode struct {
	mode models.CurrencyMode
}

func (m *mutableMode) CurrencyMode() models.CurrencyMode { return m.mode }

func TestRateReadAtCallTime(t *testing.T) {
	src := &mutableMode{mode: models.DefaultCurrencyMode()}
	f := New(src)

	assert.Equal(t, "$1.5K", f.Compact(d("1500")))
	assert.Equal(t, "$", f.Symbol())

	src.mode.Local = true
	assert.Equal(t, "₹1.25 L", f.Compact(d("1500")))
	assert.Equal(t, "₹ INR", f.Label())

	src.mode.Rate = d("100")
	assert.Equal(t, "₹1.50 L", f.Compact(d("1500")))
	assert.Equal(t, "1 Lakh 50 Thousand", f.Words(d("1500")))
}

func TestAmount(t *testing.T) {
	assert.Equal(t, "$1,234,567.89", base.Amount(d("1234567.891")))
	assert.Equal(t, "-$20.00", base.Amount(d("-20")))
	assert.Equal(t, "₹8,350.00", local.Amount(d("100")))
}

func TestPercentAndInt(t *testing.T) {
	assert.Equal(t, "25.0%", Percent(d("25"), 1))
	assert.Equal(t, "-4.29%", Percent(d("-4.2857"), 2))
	assert.Equal(t, "0", Int(0))
	assert.Equal(t, "999", Int(999))
	assert.Equal(t, "1,000", Int(1000))
	assert.Equal(t, "12,345,678", Int(12345678))
	assert.Equal(t, "-1,000", Int(-1000))
}
