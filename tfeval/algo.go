package tfeval

import (
	"fmt"
	"math"
	"time"

	"github.com/swhysc/tbond/pricing"
)

// ForwardYieldAlgo computes the forward/implied bond YTM (f_ytm) from a
// priced TfEvaluator's intermediates. Each variant shares the signature
// (*calcContext) -> (ytm, err); they differ only in how they derive the
// delivery-date price they invert. Model as a tagged union rather than an
// interface hierarchy: a TfEvaluator is configured with exactly one
// algorithm at construction, defaulting to CarryAlgo.
type ForwardYieldAlgo interface {
	forwardYTM(c *calcContext) (float64, error)
}

// CarryAlgo (the default) prices the invoice at delivery as
// cf*futures_price + carry, converts to a dirty price by adding the
// delivery-date accrued, and inverts that dirty price for YTM at the
// delivery date.
type CarryAlgo struct{}

func (CarryAlgo) forwardYTM(c *calcContext) (float64, error) {
	tmpClean := c.cf*c.in.FuturesPrice + c.carry
	tmpDirty := tmpClean + c.deliverAccrued
	return c.invertDirtyPriceAt(c.deliverDate, tmpDirty)
}

// DiscountAlgo prices the invoice at delivery as cf*futures_price +
// delivery accrued, discounts that dirty price back to the evaluation
// date at the caller-supplied continuously-compounded DiscRate, and
// inverts the discounted price for YTM at the evaluation date.
type DiscountAlgo struct {
	DiscRate float64
}

func (a DiscountAlgo) forwardYTM(c *calcContext) (float64, error) {
	tmpDirty := c.cf*c.in.FuturesPrice + c.deliverAccrued
	disc := tmpDirty * math.Exp(-a.DiscRate*float64(c.remainingDays)/365)
	return c.invertDirtyPriceAt(c.in.EvaluatingDate, disc)
}

// SpotAlgo treats cf*futures_price directly as the delivery-date clean
// price, with no carry or discount adjustment, and inverts it for YTM at
// the delivery date. This mirrors the original system's WindModFYtmAlgo,
// used when comparing against a vendor feed that already normalizes by CF
// alone.
type SpotAlgo struct{}

func (SpotAlgo) forwardYTM(c *calcContext) (float64, error) {
	tmpClean := c.cf * c.in.FuturesPrice
	return c.invertCleanPriceAt(c.deliverDate, tmpClean)
}

// calcContext carries the intermediates forwardYTM implementations need;
// it is built by calc() and discarded once f_ytm is computed.
type calcContext struct {
	in             Inputs
	pricer         pricing.BondPricer
	cf             float64
	carry          float64
	deliverAccrued float64
	deliverDate    time.Time
	remainingDays  int
}

func (c *calcContext) invertDirtyPriceAt(d time.Time, dirty float64) (float64, error) {
	result, err := c.pricer.Calculate(pricing.Inputs{
		Attrs:      c.in.BondAttrs,
		Date:       d,
		Price:      &dirty,
		PriceBasis: pricing.DirtyPrice,
	})
	if err != nil {
		return 0, fmt.Errorf("tfeval: forward ytm: %w", err)
	}
	return result.YTM, nil
}

func (c *calcContext) invertCleanPriceAt(d time.Time, clean float64) (float64, error) {
	result, err := c.pricer.Calculate(pricing.Inputs{
		Attrs:      c.in.BondAttrs,
		Date:       d,
		Price:      &clean,
		PriceBasis: pricing.CleanPrice,
	})
	if err != nil {
		return 0, fmt.Errorf("tfeval: forward ytm: %w", err)
	}
	return result.YTM, nil
}
