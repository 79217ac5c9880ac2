// Package accrual computes accrued interest with the two day-counting
// variants the Chinese bond market uses: interbank ("head-count,
// tail-exclusive") and exchange ("head-and-tail").
package accrual

import (
	"fmt"
	"time"

	"github.com/swhysc/tbond/bonddate"
	"github.com/swhysc/tbond/bondattr"
)

// Result holds the accrued interest and the schedule facts used to derive
// it, so callers (Pricing, TfEvaluator) can reuse them without
// re-bracketing the schedule.
type Result struct {
	Accrued        float64
	DaysIn         int
	Period         int
	PreCouponDate  time.Time
	NextCouponDate time.Time
}

// Compute returns the accrued interest for attrs at date d. If preCP and
// nextCP are both non-zero, they're used directly (the batch-caller
// override path spec.md's PricingInputs describes); otherwise they're
// obtained by bracketing attrs' schedule.
//
// Let C = coupon_rate * par_value / inst_freq.
//
//   - Interbank: days_in = d - pre_cp; period = next_cp - pre_cp;
//     accrued = C * days_in / period.
//   - Exchange (SSE/SZE): days_in = 1 + (d - pre_cp);
//     accrued = coupon_rate * par_value * days_in / 365, regardless of
//     leap years.
func Compute(attrs *bondattr.BondAttributes, d time.Time, preCP, nextCP time.Time) (Result, error) {
	d = bonddate.Normalize(d)

	if preCP.IsZero() || nextCP.IsZero() {
		sched, err := attrs.Schedule()
		if err != nil {
			return Result{}, err
		}
		preCP, nextCP, err = sched.Bracket(d)
		if err != nil {
			return Result{}, fmt.Errorf("accrual: %w", err)
		}
	}

	period := bonddate.DaysBetween(preCP, nextCP)

	switch attrs.Market {
	case bondattr.Interbank:
		freq := attrs.InstFreq
		if freq == 0 {
			freq = 1
		}
		C := attrs.CouponRate * attrs.ParValue / float64(freq)
		daysIn := bonddate.DaysBetween(preCP, d)
		accrued := C * float64(daysIn) / float64(period)
		return Result{Accrued: accrued, DaysIn: daysIn, Period: period, PreCouponDate: preCP, NextCouponDate: nextCP}, nil

	case bondattr.ShanghaiExchange, bondattr.ShenzhenExchange:
		daysIn := 1 + bonddate.DaysBetween(preCP, d)
		accrued := attrs.CouponRate * attrs.ParValue * float64(daysIn) / 365.0
		return Result{Accrued: accrued, DaysIn: daysIn, Period: period, PreCouponDate: preCP, NextCouponDate: nextCP}, nil

	default:
		return Result{}, fmt.Errorf("accrual: unrecognized market %q", attrs.Market)
	}
}
