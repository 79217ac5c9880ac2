package pricing

import "math"

// The formulas below implement the closed-form price/yield relationships
// published in the interbank market's bond-yield-to-maturity calculation
// standard. Variable names follow spec.md's notation:
//
//	y  yield to maturity        FV  final redemption (principal + coupon)
//	PV dirty price              D   days from settlement to maturity
//	M  par value                N   whole years from carry to maturity
//	C  annual coupon amount     TY  days in the current compounding year
//	f  payment frequency        d   days from settlement to next coupon
//	n  remaining coupon count   TS  days in the current coupon period

// dirtyPriceOutsideFinalPeriod is used when n > 1 remaining coupons.
func dirtyPriceOutsideFinalPeriod(M, C, f, y float64, n int, TS, d float64) float64 {
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += (C / f) / math.Pow(1+y/f, d/TS+float64(i))
	}
	return sum + M/math.Pow(1+y/f, d/TS+float64(n-1))
}

// cashflowsOutsideFinalPeriod returns the (amount, time) pairs this bond
// pays from d forward, used for the duration calculation: every remaining
// coupon discounted to d, then the principal repayment at the last coupon.
func cashflowsOutsideFinalPeriod(M, C, f, y float64, n int, TS, d float64) ([]float64, []float64) {
	amounts := make([]float64, 0, n+1)
	times := make([]float64, 0, n+1)
	for i := 0; i < n; i++ {
		amounts = append(amounts, (C/f)/math.Pow(1+y/f, d/TS+float64(i)))
		times = append(times, d/365+float64(i)/f)
	}
	amounts = append(amounts, M/math.Pow(1+y/f, d/TS+float64(n-1)))
	times = append(times, d/365+float64(n-1)/f)
	return amounts, times
}

// modifiedDurationOutsideFinalPeriod computes Macaulay duration from the
// cashflow list above, then converts to modified duration.
func modifiedDurationOutsideFinalPeriod(M, C, f, y float64, n int, TS, d float64) float64 {
	amounts, times := cashflowsOutsideFinalPeriod(M, C, f, y, n, TS, d)
	var pv, weighted float64
	for i := range amounts {
		pv += amounts[i]
		weighted += times[i] * amounts[i]
	}
	macaulay := weighted / pv
	return macaulay / (1 + y/f)
}

// priceResidual is the root-finding target for price→YTM outside the final
// period: dirtyPriceOutsideFinalPeriod(y) - target.
func priceResidual(M, C, f float64, n int, TS, d, target float64) func(float64) float64 {
	return func(y float64) float64 {
		return dirtyPriceOutsideFinalPeriod(M, C, f, y, n, TS, d) - target
	}
}

// dirtyPriceInFinalPeriod implements the short-stub closed form used once
// the bond is inside its final coupon period (n <= 1): FV is discounted
// over the remaining D days at the simple rate y, scaled against TY, the
// length of the final full compounding year.
func dirtyPriceInFinalPeriod(y, FV, D, TY float64) float64 {
	return FV / (y*D/TY + 1)
}

// ytmFromDirtyPriceInFinalPeriod inverts dirtyPriceInFinalPeriod for y.
func ytmFromDirtyPriceInFinalPeriod(PV, FV, D, TY float64) float64 {
	return (FV - PV) / PV * (TY / D)
}
