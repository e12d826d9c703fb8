package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// DefaultRate is the number of rupees per US dollar used until the user sets one.
	DefaultRate = decimal.RequireFromString("83.5")
	MinRate     = decimal.NewFromInt(50)
	MaxRate     = decimal.NewFromInt(150)
)

// CurrencyMode selects between base currency (USD) and local currency (INR)
// display. Rate is local units per one base unit.
type CurrencyMode struct {
	Local bool            `json:"local"`
	Rate  decimal.Decimal `json:"rate"`
}

// DefaultCurrencyMode returns base currency display at the default rate.
func DefaultCurrencyMode() CurrencyMode {
	return CurrencyMode{Rate: DefaultRate}
}

// SetRate validates and stores a new exchange rate, rounded to one decimal.
func (m *CurrencyMode) SetRate(rate decimal.Decimal) error {
	if rate.LessThan(MinRate) || rate.GreaterThan(MaxRate) {
		return fmt.Errorf("%w: %s is outside [%s, %s]", ErrRateOutOfRange, rate, MinRate, MaxRate)
	}
	m.Rate = rate.Round(1)
	return nil
}
