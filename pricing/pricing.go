// Package pricing implements the YTM<->dirty-price bidirectional mapping,
// accrued interest delegation, and duration calculations for fixed-rate
// coupon bonds. The formula selected (ib_f6 vs the short-stub ib_f5/ib_f4
// pair) depends on whether the valuation date falls inside the bond's
// final coupon period.
package pricing

import (
	"fmt"
	"time"

	"github.com/swhysc/tbond/accrual"
	"github.com/swhysc/tbond/bonddate"
	"github.com/swhysc/tbond/bondattr"
	"github.com/swhysc/tbond/internal/config"
	"github.com/swhysc/tbond/rootfind"
)

// PriceBasis selects which price a caller is supplying: clean or dirty.
type PriceBasis int

const (
	CleanPrice PriceBasis = iota
	DirtyPrice
)

// Inputs is the ephemeral, per-call request: a bond's static attributes, a
// valuation date, and exactly one of {YTM, a price}. PreCouponDate,
// NextCouponDate and RemainingCoupons let batch callers that have already
// bracketed the schedule skip re-bracketing it.
type Inputs struct {
	Attrs *bondattr.BondAttributes
	Date  time.Time

	YTM   *float64
	Price *float64

	PriceBasis PriceBasis

	PreCouponDate    time.Time
	NextCouponDate   time.Time
	RemainingCoupons *int
}

// Result is the full set of analytics Calculate produces for a single
// (bond, date) pair.
type Result struct {
	DirtyPrice float64
	CleanPrice float64
	YTM        float64

	Accrued        float64
	AccruedDaysIn  int
	AccruedPeriod  int
	PreCouponDate  time.Time
	NextCouponDate time.Time

	RemainingCoupons     int
	DaysToMaturity       int
	InFinalCouponPeriod  bool
	ModifiedDuration     float64
	MacaulayDuration     float64
	RootFindIterations   int
}

// BondPricer is the capability set a pricing backend must provide:
// compute the full analytics Result from either a YTM or a price. The core
// ships one implementation, PrimitivePricer; external collaborators
// (QuantLib-backed, vendor-API-backed calculators) can satisfy the same
// interface without the rest of the system knowing the difference.
type BondPricer interface {
	Calculate(in Inputs) (Result, error)
}

// PrimitivePricer is the core's only in-tree BondPricer: the closed-form
// interbank pricing standard described in spec.md §4.3.
type PrimitivePricer struct {
	Config config.Config
}

// NewPrimitivePricer builds a PrimitivePricer using the active global
// config (see internal/config).
func NewPrimitivePricer() *PrimitivePricer {
	return &PrimitivePricer{Config: config.Get()}
}

// Calculate implements BondPricer.
func (p *PrimitivePricer) Calculate(in Inputs) (Result, error) {
	attrs := in.Attrs

	if attrs.InterestType != bondattr.Fixed {
		return Result{}, fmt.Errorf("pricing: %s: %w: %s", attrs.BondCode, ErrUnsupportedInterestType, attrs.InterestType)
	}
	if in.YTM == nil && in.Price == nil {
		return Result{}, fmt.Errorf("pricing: %s: %w", attrs.BondCode, ErrUnderSpecified)
	}
	if in.YTM != nil && in.Price != nil {
		return Result{}, fmt.Errorf("pricing: %s: %w: both ytm and price supplied", attrs.BondCode, ErrUnderSpecified)
	}

	d := bonddate.Normalize(in.Date)

	sched, err := attrs.Schedule()
	if err != nil {
		return Result{}, err
	}

	acc, err := accrual.Compute(attrs, d, in.PreCouponDate, in.NextCouponDate)
	if err != nil {
		return Result{}, fmt.Errorf("pricing: %s: %w", attrs.BondCode, err)
	}

	remainingCoupons := sched.RemainingCountAfter(d)
	if in.RemainingCoupons != nil {
		remainingCoupons = *in.RemainingCoupons
	}

	finalPeriod, err := sched.IsInFinalCouponPeriod(d, p.threshold())
	if err != nil {
		return Result{}, fmt.Errorf("pricing: %s: %w", attrs.BondCode, err)
	}

	freq := attrs.InstFreq
	if freq == 0 {
		freq = 1
	}
	f := float64(freq)
	M := attrs.ParValue
	C := attrs.CouponRate * attrs.ParValue
	dNext := float64(bonddate.DaysBetween(d, acc.NextCouponDate))
	TS := float64(acc.Period)
	daysToMaturity := bonddate.DaysBetween(d, attrs.MaturityDate)
	D := float64(daysToMaturity)

	res := Result{
		Accrued:             acc.Accrued,
		AccruedDaysIn:       acc.DaysIn,
		AccruedPeriod:       acc.Period,
		PreCouponDate:       acc.PreCouponDate,
		NextCouponDate:      acc.NextCouponDate,
		RemainingCoupons:    remainingCoupons,
		DaysToMaturity:      daysToMaturity,
		InFinalCouponPeriod: finalPeriod,
	}

	var y float64

	switch {
	case in.YTM != nil:
		y = *in.YTM
		if finalPeriod {
			FV := M + C/f
			TY, err := sched.PreviousYearPeriodDays()
			if err != nil {
				return Result{}, fmt.Errorf("pricing: %s: %w", attrs.BondCode, err)
			}
			res.DirtyPrice = dirtyPriceInFinalPeriod(y, FV, D, float64(TY))
		} else {
			res.DirtyPrice = dirtyPriceOutsideFinalPeriod(M, C, f, y, remainingCoupons, TS, dNext)
		}
		res.CleanPrice = res.DirtyPrice - acc.Accrued

	case in.Price != nil:
		switch in.PriceBasis {
		case CleanPrice:
			res.CleanPrice = *in.Price
			res.DirtyPrice = res.CleanPrice + acc.Accrued
		case DirtyPrice:
			res.DirtyPrice = *in.Price
			res.CleanPrice = res.DirtyPrice - acc.Accrued
		}

		if finalPeriod {
			FV := M + C/f
			TY, err := sched.PreviousYearPeriodDays()
			if err != nil {
				return Result{}, fmt.Errorf("pricing: %s: %w", attrs.BondCode, err)
			}
			y = ytmFromDirtyPriceInFinalPeriod(res.DirtyPrice, FV, D, float64(TY))
		} else {
			target := res.DirtyPrice
			result, err := rootfind.Brent(
				priceResidual(M, C, f, remainingCoupons, TS, dNext, target),
				p.Config.RootFindLowerBound, p.Config.RootFindUpperBound,
				p.Config.RootFindTolerance, p.Config.RootFindMaxIterations,
			)
			res.RootFindIterations = result.Iterations
			if err != nil {
				return Result{}, fmt.Errorf("pricing: %s: %w: %v", attrs.BondCode, ErrRootFindFailed, err)
			}
			y = result.Root
		}
	}

	res.YTM = y
	res.ModifiedDuration = modifiedDurationOutsideFinalPeriod(M, C, f, y, remainingCoupons, TS, dNext)
	amounts, times := cashflowsOutsideFinalPeriod(M, C, f, y, remainingCoupons, TS, dNext)
	var pv, weighted float64
	for i := range amounts {
		pv += amounts[i]
		weighted += times[i] * amounts[i]
	}
	res.MacaulayDuration = weighted / pv

	return res, nil
}

func (p *PrimitivePricer) threshold() int {
	if p.Config.FinalPeriodThresholdDays > 0 {
		return p.Config.FinalPeriodThresholdDays
	}
	return config.DefaultConfig.FinalPeriodThresholdDays
}
