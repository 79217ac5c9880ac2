package tfeval_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swhysc/tbond/bondattr"
	"github.com/swhysc/tbond/pricing"
	"github.com/swhysc/tbond/tfeval"
)

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func newBond(t *testing.T, code string, carry, maturity time.Time, couponRate float64) *bondattr.BondAttributes {
	t.Helper()
	attrs, err := bondattr.New(bondattr.BondAttributes{
		BondCode:     code,
		Market:       bondattr.Interbank,
		Abbr:         code,
		ParValue:     100,
		CouponType:   bondattr.CouponBearing,
		InterestType: bondattr.Fixed,
		CouponRate:   couponRate,
		InstFreq:     2,
		CarryDate:    carry,
		MaturityDate: maturity,
		DayCount:     "ACT/ACT",
	})
	require.NoError(t, err)
	return attrs
}

func TestCalcNoInterimCoupon(t *testing.T) {
	// T2212 delivers 2022-12-13; this bond's coupon schedule (Jan/Jul 15)
	// has no coupon date strictly between the evaluation date and
	// delivery.
	bond := newBond(t, "220021.IB", mustDate("2022-07-15"), mustDate("2032-07-15"), 0.0266)

	in := tfeval.Inputs{
		EvaluatingDate: mustDate("2022-10-28"),
		FuturesCode:    "T2212",
		FuturesPrice:   101.65,
		BondAttrs:      bond,
		BondYTM:        0.026625,
		CapitalRate:    0.0199,
	}
	priced, err := tfeval.New(in, pricing.NewPrimitivePricer()).Calc()
	require.NoError(t, err)
	assert.Equal(t, 0.0, priced.State.RemainingCoupons)
	assert.Equal(t, mustDate("2022-12-13"), priced.State.DeliveryDate)
	assert.Equal(t, time.Tuesday, priced.State.DeliveryDate.Weekday())
}

func TestCalcOneInterimCouponAndBasisIdentity(t *testing.T) {
	// T2212 delivers 2022-12-13; this bond's coupon schedule (May/Nov 20)
	// has exactly one coupon date (2022-11-20) strictly between the
	// evaluation date and delivery.
	bond := newBond(t, "200006.IB", mustDate("2020-11-20"), mustDate("2030-11-20"), 0.0295)

	in := tfeval.Inputs{
		EvaluatingDate: mustDate("2022-09-09"),
		FuturesCode:    "T2212",
		FuturesPrice:   101.39,
		BondAttrs:      bond,
		BondYTM:        0.026761,
		CapitalRate:    0.26,
	}
	priced, err := tfeval.New(in, pricing.NewPrimitivePricer()).Calc()
	require.NoError(t, err)

	assert.Greater(t, priced.State.RemainingCoupons, 0.0)
	assert.InDelta(t,
		in.FuturesPrice*priced.State.ConversionFactor+priced.State.DeliveryAccrued,
		priced.State.InvoicePrice, 1e-9)
	assert.InDelta(t, priced.State.BasisSpread, priced.State.NetBasisSpread+priced.State.Carry, 1e-9)
}

func TestCalcDefaultsToCarryAlgo(t *testing.T) {
	bond := newBond(t, "220021.IB", mustDate("2022-07-15"), mustDate("2032-07-15"), 0.0266)
	in := tfeval.Inputs{
		EvaluatingDate: mustDate("2022-10-28"),
		FuturesCode:    "T2212",
		FuturesPrice:   101.65,
		BondAttrs:      bond,
		BondYTM:        0.026625,
		CapitalRate:    0.0199,
	}
	priced, err := tfeval.New(in, pricing.NewPrimitivePricer()).Calc()
	require.NoError(t, err)
	assert.Greater(t, priced.State.ForwardYTM, 0.0)

	in.Algo = tfeval.CarryAlgo{}
	explicit, err := tfeval.New(in, pricing.NewPrimitivePricer()).Calc()
	require.NoError(t, err)
	assert.Equal(t, explicit.State.ForwardYTM, priced.State.ForwardYTM)
}

func TestUpdateDiscardsDerivedState(t *testing.T) {
	bond := newBond(t, "220021.IB", mustDate("2022-07-15"), mustDate("2032-07-15"), 0.0266)
	in := tfeval.Inputs{
		EvaluatingDate: mustDate("2022-10-28"),
		FuturesCode:    "T2212",
		FuturesPrice:   101.65,
		BondAttrs:      bond,
		BondYTM:        0.026625,
		CapitalRate:    0.0199,
	}
	evaluator := tfeval.New(in, pricing.NewPrimitivePricer())
	priced, err := evaluator.Calc()
	require.NoError(t, err)

	updated := priced.Update(func(i *tfeval.Inputs) { i.FuturesPrice = 102.00 })
	assert.Equal(t, 102.00, updated.Inputs().FuturesPrice)

	repriced, err := updated.Calc()
	require.NoError(t, err)
	assert.NotEqual(t, priced.State.InvoicePrice, repriced.State.InvoicePrice)
}

func TestCalcRejectsNilBondAttrs(t *testing.T) {
	in := tfeval.Inputs{
		EvaluatingDate: mustDate("2022-10-28"),
		FuturesCode:    "T2212",
		FuturesPrice:   101.65,
	}
	_, err := tfeval.New(in, pricing.NewPrimitivePricer()).Calc()
	assert.ErrorIs(t, err, tfeval.ErrNoBondAttrs)
}
