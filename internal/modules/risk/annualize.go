package risk

// TradingDaysPerYear is the annualization basis for daily observations.
const TradingDaysPerYear = 252

// ReturnAnnualizer scales a mean daily return to an annual figure. The
// strategy is explicit so the engine's covariance math stays independent of
// the annualization convention.
type ReturnAnnualizer interface {
	Annualize(meanDailyReturn float64) float64
}

// SimpleAnnualizer multiplies the mean daily return by the trading-day count.
// It overstates long-horizon returns versus compounding but matches the
// dashboard's historical figures.
type SimpleAnnualizer struct{}

// Annualize implements ReturnAnnualizer.
func (SimpleAnnualizer) Annualize(meanDailyReturn float64) float64 {
	return meanDailyReturn * TradingDaysPerYear
}
