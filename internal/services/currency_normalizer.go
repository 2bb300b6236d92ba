// Package services contains shared domain services used by multiple modules.
package services

import (
	"github.com/rs/zerolog"
)

// minorUnitCurrencies maps minor-unit currency codes to their major unit.
// Exchange rates are quoted for the major unit, so minor-unit prices need the
// multiplier divided by 100 on top of the major-unit conversion.
var minorUnitCurrencies = map[string]string{
	"GBp": "GBP", // pence
	"GBX": "GBP", // pence (alternate code)
	"ZAc": "ZAR", // South African cents
}

// CurrencyNormalizer converts native-currency prices into USD values.
// Pure computation - exchange rates are supplied by the caller (the price
// provider resolves them by quoting a synthetic "USDXXX=X" pair and
// inverting).
type CurrencyNormalizer struct {
	log zerolog.Logger
}

// NewCurrencyNormalizer creates a new currency normalizer
func NewCurrencyNormalizer(log zerolog.Logger) *CurrencyNormalizer {
	return &CurrencyNormalizer{
		log: log.With().Str("service", "currency_normalizer").Logger(),
	}
}

// ToUSD converts a native-currency price to USD.
//
//   - USD (or empty currency) passes through unchanged; the rate is ignored.
//   - An explicit rate multiplies the price.
//   - Minor-unit currencies (e.g. GBp pence) scale the major-unit rate by
//     an additional 1/100.
//   - A zero or missing rate is treated as multiplier 1, never a division.
func (c *CurrencyNormalizer) ToUSD(nativePrice float64, currency string, exchangeRate float64) float64 {
	if currency == "" || currency == "USD" {
		return nativePrice
	}

	multiplier := exchangeRate
	if multiplier == 0 {
		c.log.Debug().
			Str("currency", currency).
			Msg("No exchange rate available, using native price as-is")
		multiplier = 1
	} else if _, isMinor := minorUnitCurrencies[currency]; isMinor {
		multiplier /= 100
	}

	return nativePrice * multiplier
}

// MajorUnit returns the rate-lookup currency for a quote currency: minor
// units map to their major unit, everything else maps to itself.
func MajorUnit(currency string) string {
	if major, ok := minorUnitCurrencies[currency]; ok {
		return major
	}
	return currency
}

// IsMinorUnit reports whether the currency is denominated in hundredths of
// its major unit.
func IsMinorUnit(currency string) bool {
	_, ok := minorUnitCurrencies[currency]
	return ok
}
