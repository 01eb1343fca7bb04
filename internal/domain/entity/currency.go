package entity

import "github.com/shopspring/decimal"

// BaseCurrencyCode is the currency all amounts are persisted in.
const BaseCurrencyCode = "FCFA"

// Currency is a display currency. ConversionRateToFCFA is "units of FCFA
// per 1 unit of this currency", so converting out of the base divides.
// Exactly one row is default at any time; the backend enforces that.
type Currency struct {
	Code                 string          `json:"code"`
	Name                 string          `json:"name"`
	Symbol               string          `json:"symbol,omitempty"`
	ConversionRateToFCFA decimal.Decimal `json:"conversion_rate_to_fcfa"`
	IsDefault            bool            `json:"is_default"`
}

// IsBase reports whether this currency is the persistence base.
func (c *Currency) IsBase() bool {
	return c.Code == BaseCurrencyCode
}

// DisplaySymbol returns the symbol, falling back to the code.
func (c *Currency) DisplaySymbol() string {
	if c.Symbol != "" {
		return c.Symbol
	}
	return c.Code
}

// FallbackCurrency is the value used whenever the default currency cannot
// be fetched: the app must never be unable to render a money value.
func FallbackCurrency() Currency {
	return Currency{
		Code:                 BaseCurrencyCode,
		Name:                 "Franc CFA",
		Symbol:               BaseCurrencyCode,
		ConversionRateToFCFA: decimal.NewFromInt(1),
		IsDefault:            true,
	}
}
