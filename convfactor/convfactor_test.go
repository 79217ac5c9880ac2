package convfactor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/swhysc/tbond/convfactor"
)

func TestCalculateIsOneWhenCouponMatchesNotionalAndNoMonthOffset(t *testing.T) {
	// When the deliverable's coupon equals the fictitious coupon rate and
	// delivery falls exactly on the coupon month (x=0), the (1-c/r) term
	// vanishes and the formula collapses to CF=1 regardless of n.
	cf := convfactor.Calculate(convfactor.Inputs{
		RemainingCoupons:     5,
		CouponRate:           0.03,
		Frequency:            2,
		MonthsToNextCoupon:   0,
		FictitiousCouponRate: 0.03,
	}, 4)
	assert.Equal(t, 1.0, cf)
}

func TestCalculateWithinCFFEXRationalRange(t *testing.T) {
	// spec.md's testable invariant: a normal on-the-run 10-year
	// deliverable against a T-futures contract has 0.8 < cf < 1.2.
	cf := convfactor.Calculate(convfactor.Inputs{
		RemainingCoupons:     16,
		CouponRate:           0.0289,
		Frequency:            2,
		MonthsToNextCoupon:   3,
		FictitiousCouponRate: 0.03,
	}, 4)
	assert.Greater(t, cf, 0.8)
	assert.Less(t, cf, 1.2)
}

func TestCalculateRoundsToFourDecimals(t *testing.T) {
	cf := convfactor.Calculate(convfactor.Inputs{
		RemainingCoupons:     7,
		CouponRate:           0.025,
		Frequency:            1,
		MonthsToNextCoupon:   3,
		FictitiousCouponRate: 0.03,
	}, 4)
	rounded := float64(int(cf*10000+0.5)) / 10000
	assert.Equal(t, rounded, cf)
}
