// Package config holds the solver and convention parameters that the
// pricing kernel and futures evaluator depend on. These were previously
// hardcoded magic numbers scattered across the formulas.
package config

// Config holds solver tolerances and market-convention constants.
type Config struct {
	// RootFindTolerance is the |f(y)| tolerance for the price→YTM solver.
	RootFindTolerance float64

	// RootFindMaxIterations bounds the price→YTM solver.
	RootFindMaxIterations int

	// RootFindLowerBound and RootFindUpperBound bracket the YTM search.
	RootFindLowerBound float64
	RootFindUpperBound float64

	// RootFindInitialGuess is not read by the pricing kernel: the Brent
	// solver starts from the [RootFindLowerBound, RootFindUpperBound]
	// bracket alone.
	RootFindInitialGuess float64

	// FinalPeriodThresholdDays is the day gap between a bond's next coupon
	// date and its maturity date below which the valuation date is
	// considered to be inside the final coupon period. spec.md documents
	// this as a 15-day heuristic that "should be made configurable."
	FinalPeriodThresholdDays int

	// DefaultFictitiousCouponRate is the CFFEX notional coupon rate (r in
	// the conversion-factor formula) used for every product code unless a
	// caller sets tfeval.Inputs.FictitiousCouponRate; there is no
	// per-product rate table.
	DefaultFictitiousCouponRate float64

	// ConversionFactorDecimals is the number of decimal places CFFEX
	// rounds the conversion factor to.
	ConversionFactorDecimals int

	// DeliveryAccruedDecimals is the number of decimal places CFFEX rounds
	// delivery-date accrued interest to.
	DeliveryAccruedDecimals int
}

// DefaultConfig provides production-ready default values, matching the
// constants spec.md pins in its worked formulas.
var DefaultConfig = Config{
	RootFindTolerance:           1e-10,
	RootFindMaxIterations:       100,
	RootFindLowerBound:          -0.5,
	RootFindUpperBound:          1.0,
	RootFindInitialGuess:        0.01,
	FinalPeriodThresholdDays:    15,
	DefaultFictitiousCouponRate: 0.03,
	ConversionFactorDecimals:    4,
	DeliveryAccruedDecimals:     7,
}

// cfg is the active configuration. Defaults to DefaultConfig.
var cfg = DefaultConfig

// Set replaces the active configuration.
func Set(c Config) {
	cfg = c
}

// Get returns the active configuration.
func Get() Config {
	return cfg
}
