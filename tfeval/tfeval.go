// Package tfeval composes Pricing, ConversionFactor and FuturesCalendar
// into the full basis/carry/IRR/implied-YTM analytics for a treasury
// futures contract and a chosen deliverable bond.
package tfeval

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/swhysc/tbond/bonddate"
	"github.com/swhysc/tbond/bondattr"
	"github.com/swhysc/tbond/convfactor"
	"github.com/swhysc/tbond/futurescal"
	"github.com/swhysc/tbond/internal/config"
	"github.com/swhysc/tbond/pricing"
)

// Inputs is the ephemeral, per-call request a TfEvaluator is constructed
// or patched with.
type Inputs struct {
	EvaluatingDate time.Time
	FuturesCode    string
	FuturesPrice   float64
	BondAttrs      *bondattr.BondAttributes
	BondYTM        float64
	CapitalRate    float64

	// ReinvestRate is the optional coupon-reinvestment rate; its presence
	// changes the IRR formula's structure (spec.md §4.7 step 15), so it is
	// modeled as an explicit optional rather than a sentinel zero value
	// (0% reinvestment is a legitimate input).
	ReinvestRate *float64

	// Algo selects the forward/implied-YTM algorithm. Defaults to
	// CarryAlgo{} when nil.
	Algo ForwardYieldAlgo

	// FictitiousCouponRate overrides the CFFEX notional coupon (r in the
	// conversion-factor formula). Defaults to config's
	// DefaultFictitiousCouponRate when zero.
	FictitiousCouponRate float64
}

// State is the full set of derived analytics a Calc() call produces.
type State struct {
	DirtyPrice                float64
	CleanPrice                float64
	Accrued                   float64
	RemainingCouponsAfterEval int
	NextCouponDate            time.Time

	ConversionFactor           float64
	InvoicePrice               float64
	DeliveryAccrued            float64
	DeliveryPreCouponDate      time.Time
	DeliveryNextCouponDate     time.Time
	DeliveryDate               time.Time
	RemainingDays              int
	RemainingCouponsAfterDlv   int
	MonthsToNextCouponAfterDlv int

	RemainingCoupons         float64
	RemainingCouponsWeighted float64

	DeliveryCost      float64
	FuturesBondSpread float64
	BasisSpread       float64
	Carry             float64
	IRR               float64
	NetBasisSpread    float64
	ForwardYTM        float64
}

// Evaluator is an Unpriced TfEvaluator: a set of inputs with no derived
// state. Calc() transitions it to a PricedEvaluator; Update() produces a
// new Unpriced Evaluator with patched inputs, discarding any derived state
// a caller may be holding from a prior PricedEvaluator.
type Evaluator struct {
	inputs Inputs
	pricer pricing.BondPricer
}

// New builds an Unpriced Evaluator. pricer is injected so alternative
// BondPricer backends can be used without changing TfEvaluator.
func New(in Inputs, pricer pricing.BondPricer) Evaluator {
	return Evaluator{inputs: in, pricer: pricer}
}

// Inputs returns the evaluator's current inputs.
func (e Evaluator) Inputs() Inputs {
	return e.inputs
}

// Update returns a new Unpriced Evaluator with fn applied to a copy of the
// current inputs.
func (e Evaluator) Update(fn func(*Inputs)) Evaluator {
	in := e.inputs
	fn(&in)
	return Evaluator{inputs: in, pricer: e.pricer}
}

// PricedEvaluator is a TfEvaluator in the Priced state: an Evaluator plus
// the State its last Calc() produced.
type PricedEvaluator struct {
	Evaluator
	State State
}

// ErrNoBondAttrs is returned when Calc is invoked without BondAttrs set.
var ErrNoBondAttrs = errors.New("tfeval: BondAttrs is required")

// Calc runs the full evaluation sequence described in spec.md §4.7 and
// returns a PricedEvaluator. It never mutates e.
func (e Evaluator) Calc() (PricedEvaluator, error) {
	in := e.inputs
	if in.BondAttrs == nil {
		return PricedEvaluator{}, ErrNoBondAttrs
	}
	if in.Algo == nil {
		in.Algo = CarryAlgo{}
	}

	cfg := config.Get()
	fictitiousRate := in.FictitiousCouponRate
	if fictitiousRate == 0 {
		fictitiousRate = cfg.DefaultFictitiousCouponRate
	}

	attrs := in.BondAttrs
	evalDate := bonddate.Normalize(in.EvaluatingDate)

	// 1. Bond analytics at the evaluation date with the supplied YTM.
	ytm := in.BondYTM
	evalResult, err := e.pricer.Calculate(pricing.Inputs{
		Attrs: attrs,
		Date:  evalDate,
		YTM:   &ytm,
	})
	if err != nil {
		return PricedEvaluator{}, fmt.Errorf("tfeval: bond analytics at evaluation date: %w", err)
	}

	// 2. Resolve the delivery date and bracket the bond's schedule at it.
	contract, err := futurescal.Parse(in.FuturesCode)
	if err != nil {
		return PricedEvaluator{}, err
	}
	deliverDate := bonddate.Normalize(contract.PaymentDate())

	sched, err := attrs.Schedule()
	if err != nil {
		return PricedEvaluator{}, err
	}
	deliverPreCP, deliverNextCP, err := sched.Bracket(deliverDate)
	if err != nil {
		return PricedEvaluator{}, fmt.Errorf("tfeval: delivery date %s: %w", deliverDate.Format("2006-01-02"), err)
	}

	freq := attrs.InstFreq
	if freq == 0 {
		freq = 1
	}
	C := attrs.CouponRate * attrs.ParValue / float64(freq)

	// 3. Delivery-date accrued, rounded per the CFFEX convention.
	period := bonddate.DaysBetween(deliverPreCP, deliverNextCP)
	daysIn := bonddate.DaysBetween(deliverPreCP, deliverDate)
	deliverAccrued := roundTo(C*float64(daysIn)/float64(period), cfg.DeliveryAccruedDecimals)

	// 4. Remaining coupons after delivery, months to next coupon after
	// delivery.
	remainingAfterDlv := sched.RemainingCountAfter(deliverDate)
	monthsToNextCP := bonddate.MonthDelta(deliverDate, deliverNextCP)

	// 5. Conversion factor.
	cf := convfactor.Calculate(convfactor.Inputs{
		RemainingCoupons:     remainingAfterDlv,
		CouponRate:           attrs.CouponRate,
		Frequency:            freq,
		MonthsToNextCoupon:   monthsToNextCP,
		FictitiousCouponRate: fictitiousRate,
	}, cfg.ConversionFactorDecimals)

	// 6. Invoice price.
	invoicePrice := in.FuturesPrice*cf + deliverAccrued

	// 7. Remaining days to delivery.
	remainingDays := bonddate.DaysBetween(evalDate, deliverDate)
	if remainingDays <= 0 {
		return PricedEvaluator{}, fmt.Errorf("tfeval: %w: delivery date %s is not after evaluation date %s",
			ErrDegenerateEvaluation, deliverDate.Format("2006-01-02"), evalDate.Format("2006-01-02"))
	}

	// 8/9. Interim coupons between evaluation date and delivery date.
	interim := sched.DatesInOpenInterval(evalDate, deliverDate)
	var remainingCp, remainingCpWm float64
	if len(interim) > 0 {
		remainingCp = float64(len(interim)) * C
		for _, d := range interim {
			remainingCpWm += float64(bonddate.DaysBetween(d, deliverDate)) / 365.0 * C
		}
	}

	// 10. Delivery cost.
	deliveryCost := evalResult.DirtyPrice - remainingCp

	// 11. Futures/bond spread.
	fbSpread := invoicePrice - deliveryCost

	// 12. Basis spread.
	basisSpread := evalResult.CleanPrice - in.FuturesPrice*cf

	// 13. Carry.
	carry := (deliverAccrued - evalResult.Accrued + remainingCp) +
		in.CapitalRate*(remainingCpWm-evalResult.DirtyPrice*float64(remainingDays)/365.0)

	// 14. Net basis spread.
	netBasis := basisSpread - carry

	// 15. IRR.
	var irr float64
	if in.ReinvestRate != nil {
		irr = ((invoicePrice+remainingCp+remainingCpWm*(*in.ReinvestRate))/evalResult.DirtyPrice - 1) * 365 / float64(remainingDays)
	} else {
		denom := evalResult.DirtyPrice*float64(remainingDays)/365.0 - remainingCpWm
		if denom == 0 || !isFinite(denom) {
			return PricedEvaluator{}, fmt.Errorf("tfeval: %w: IRR denominator is zero or non-finite", ErrDegenerateEvaluation)
		}
		irr = (invoicePrice + remainingCp - evalResult.DirtyPrice) / denom
	}

	state := State{
		DirtyPrice:                 evalResult.DirtyPrice,
		CleanPrice:                 evalResult.CleanPrice,
		Accrued:                    evalResult.Accrued,
		RemainingCouponsAfterEval:  evalResult.RemainingCoupons,
		NextCouponDate:             evalResult.NextCouponDate,
		ConversionFactor:           cf,
		InvoicePrice:               invoicePrice,
		DeliveryAccrued:            deliverAccrued,
		DeliveryPreCouponDate:      deliverPreCP,
		DeliveryNextCouponDate:     deliverNextCP,
		DeliveryDate:               deliverDate,
		RemainingDays:              remainingDays,
		RemainingCouponsAfterDlv:   remainingAfterDlv,
		MonthsToNextCouponAfterDlv: monthsToNextCP,
		RemainingCoupons:           remainingCp,
		RemainingCouponsWeighted:   remainingCpWm,
		DeliveryCost:               deliveryCost,
		FuturesBondSpread:          fbSpread,
		BasisSpread:                basisSpread,
		Carry:                      carry,
		IRR:                        irr,
		NetBasisSpread:             netBasis,
	}

	// 16. Forward/implied YTM via the pluggable algorithm.
	ctx := &calcContext{
		in:             in,
		pricer:         e.pricer,
		cf:             cf,
		carry:          carry,
		deliverAccrued: deliverAccrued,
		deliverDate:    deliverDate,
		remainingDays:  remainingDays,
	}
	fytm, err := in.Algo.forwardYTM(ctx)
	if err != nil {
		return PricedEvaluator{}, err
	}
	state.ForwardYTM = fytm

	return PricedEvaluator{Evaluator: Evaluator{inputs: in, pricer: e.pricer}, State: state}, nil
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
