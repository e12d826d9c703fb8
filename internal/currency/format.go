// Package currency renders monetary values for display in base currency
// (USD) or local currency (INR) at the session's exchange rate.
package currency

import (
	"strings"

	"github.com/rocjay1/superstore-analytics/internal/models"
	"github.com/shopspring/decimal"
)

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
	lakh     = decimal.NewFromInt(1_00_000)
	crore    = decimal.NewFromInt(1_00_00_000)
)

// ModeSource supplies the currency mode in force at the time of a call.
type ModeSource interface {
	CurrencyMode() models.CurrencyMode
}

// Static is a fixed currency mode.
type Static models.CurrencyMode

func (s Static) CurrencyMode() models.CurrencyMode {
	return models.CurrencyMode(s)
}

// Formatter formats money according to a ModeSource. The mode is read on
// every call, so a rate change applies to the next string produced.
type Formatter struct {
	source ModeSource
}

// New returns a formatter reading its mode from source.
func New(source ModeSource) *Formatter {
	return &Formatter{source: source}
}

// Symbol returns the symbol of the display currency.
func (f *Formatter) Symbol() string {
	if f.source.CurrencyMode().Local {
		return "₹"
	}
	return "$"
}

// Label names the display currency.
func (f *Formatter) Label() string {
	if f.source.CurrencyMode().Local {
		return "₹ INR"
	}
	return "$ USD"
}

// Convert returns value in display currency units.
func (f *Formatter) Convert(value decimal.Decimal) decimal.Decimal {
	mode := f.source.CurrencyMode()
	if mode.Local {
		return value.Mul(mode.Rate)
	}
	return value
}

// Compact renders value on the display currency's scale: $999.00, $1.5K,
// $2.30M in base currency; ₹83,500, ₹8.35 L, ₹1.00 Cr in local currency.
func (f *Formatter) Compact(value decimal.Decimal) string {
	mode := f.source.CurrencyMode()
	v := value.Abs()
	var s string
	if mode.Local {
		v = v.Mul(mode.Rate)
		switch {
		case v.GreaterThanOrEqual(crore):
			s = "₹" + v.Div(crore).StringFixedBank(2) + " Cr"
		case v.GreaterThanOrEqual(lakh):
			s = "₹" + v.Div(lakh).StringFixedBank(2) + " L"
		default:
			s = "₹" + group(v.StringFixedBank(0))
		}
	} else {
		switch {
		case v.GreaterThanOrEqual(million):
			s = "$" + v.Div(million).StringFixedBank(2) + "M"
		case v.GreaterThanOrEqual(thousand):
			s = "$" + v.Div(thousand).StringFixedBank(1) + "K"
		default:
			s = "$" + group(v.StringFixedBank(2))
		}
	}
	return signed(value, s)
}

// Words spells value as a scale breakdown: "2 Million 300 Thousand" or
// "1 Crore 20 Lakh". Base currency values under one thousand have no word
// form and yield "".
func (f *Formatter) Words(value decimal.Decimal) string {
	mode := f.source.CurrencyMode()
	v := value.Abs()
	var s string
	if mode.Local {
		v = v.Mul(mode.Rate)
		switch {
		case v.GreaterThanOrEqual(crore):
			s = breakdown(v, crore, "Crore", lakh, "Lakh")
		case v.GreaterThanOrEqual(lakh):
			s = breakdown(v, lakh, "Lakh", thousand, "Thousand")
		default:
			s = "₹" + group(v.StringFixedBank(0))
		}
	} else {
		switch {
		case v.GreaterThanOrEqual(million):
			s = breakdown(v, million, "Million", thousand, "Thousand")
		case v.GreaterThanOrEqual(thousand):
			s = group(v.Truncate(0).String())
		}
	}
	return signed(value, s)
}

// breakdown floors v into a count of major units and a count of minor units
// in the remainder, dropping the minor term when it is zero.
func breakdown(v, major decimal.Decimal, majorName string, minor decimal.Decimal, minorName string) string {
	majors, rest := v.QuoRem(major, 0)
	minors, _ := rest.QuoRem(minor, 0)
	s := majors.String() + " " + majorName
	if !minors.IsZero() {
		s += " " + minors.String() + " " + minorName
	}
	return s
}

// Amount renders value in display currency with two decimals and grouping.
func (f *Formatter) Amount(value decimal.Decimal) string {
	s := f.Symbol() + group(f.Convert(value).Abs().StringFixedBank(2))
	return signed(value, s)
}

// Percent renders a percentage with the given number of decimals.
func Percent(value decimal.Decimal, places int32) string {
	return value.StringFixedBank(places) + "%"
}

// Int renders an integer with thousands separators.
func Int(n int64) string {
	if n < 0 {
		return "-" + group(decimal.NewFromInt(n).Abs().String())
	}
	return group(decimal.NewFromInt(n).String())
}

// signed prefixes a minus sign when value is negative and s shows a nonzero
// digit, so values that round to zero never render as "-$0.00".
func signed(value decimal.Decimal, s string) string {
	if !value.IsNegative() || !strings.ContainsAny(s, "123456789") {
		return s
	}
	return "-" + s
}

// group inserts thousands separators into an unsigned decimal string.
func group(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")
	if len(intPart) > 3 {
		var b strings.Builder
		lead := len(intPart) % 3
		if lead > 0 {
			b.WriteString(intPart[:lead])
		}
		for i := lead; i < len(intPart); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}
	if hasFrac {
		return intPart + "." + frac
	}
	return intPart
}
