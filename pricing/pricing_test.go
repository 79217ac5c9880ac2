package pricing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swhysc/tbond/bondattr"
	"github.com/swhysc/tbond/pricing"
)

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func bond220012(t *testing.T) *bondattr.BondAttributes {
	t.Helper()
	attrs, err := bondattr.New(bondattr.BondAttributes{
		BondCode:     "220012.IB",
		Market:       bondattr.Interbank,
		Abbr:         "22附息国债12",
		ParValue:     100,
		CouponType:   bondattr.CouponBearing,
		InterestType: bondattr.Fixed,
		CouponRate:   0.0275,
		InstFreq:     1,
		CarryDate:    mustDate("2022-06-15"),
		MaturityDate: mustDate("2029-06-15"),
		DayCount:     "ACT/ACT",
	})
	require.NoError(t, err)
	return attrs
}

func TestPriceFromYTM(t *testing.T) {
	attrs := bond220012(t)
	ytm := 0.0279
	result, err := pricing.NewPrimitivePricer().Calculate(pricing.Inputs{
		Attrs: attrs,
		Date:  mustDate("2022-11-18"),
		YTM:   &ytm,
	})
	require.NoError(t, err)
	assert.InDelta(t, 100.9288, result.DirtyPrice, 5e-3)
	assert.InDelta(t, 99.7535, result.CleanPrice, 5e-3)
	assert.False(t, result.InFinalCouponPeriod)
	assert.Greater(t, result.ModifiedDuration, 0.0)
}

func TestYTMFromPriceRoundTrip(t *testing.T) {
	attrs := bond220012(t)
	cleanPrice := 99.7535
	result, err := pricing.NewPrimitivePricer().Calculate(pricing.Inputs{
		Attrs:      attrs,
		Date:       mustDate("2022-11-18"),
		Price:      &cleanPrice,
		PriceBasis: pricing.CleanPrice,
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.0279, result.YTM, 5e-4)
}

func TestPriceYTMRoundTripIsConsistent(t *testing.T) {
	attrs := bond220012(t)
	for _, y := range []float64{0.0001, 0.01, 0.05, 0.10, 0.15} {
		ytm := y
		priced, err := pricing.NewPrimitivePricer().Calculate(pricing.Inputs{
			Attrs: attrs,
			Date:  mustDate("2022-11-18"),
			YTM:   &ytm,
		})
		require.NoError(t, err)

		dirty := priced.DirtyPrice
		inverted, err := pricing.NewPrimitivePricer().Calculate(pricing.Inputs{
			Attrs:      attrs,
			Date:       mustDate("2022-11-18"),
			Price:      &dirty,
			PriceBasis: pricing.DirtyPrice,
		})
		require.NoError(t, err)
		assert.InDelta(t, y, inverted.YTM, 1e-6)
	}
}

func TestCleanPlusAccruedEqualsDirty(t *testing.T) {
	attrs := bond220012(t)
	ytm := 0.03
	result, err := pricing.NewPrimitivePricer().Calculate(pricing.Inputs{
		Attrs: attrs,
		Date:  mustDate("2022-11-18"),
		YTM:   &ytm,
	})
	require.NoError(t, err)
	assert.InDelta(t, result.DirtyPrice, result.CleanPrice+result.Accrued, 1e-9)
}

func TestUnderSpecifiedInputsRejected(t *testing.T) {
	attrs := bond220012(t)
	_, err := pricing.NewPrimitivePricer().Calculate(pricing.Inputs{
		Attrs: attrs,
		Date:  mustDate("2022-11-18"),
	})
	assert.ErrorIs(t, err, pricing.ErrUnderSpecified)
}

func TestUnsupportedInterestTypeRejected(t *testing.T) {
	attrs, err := bondattr.New(bondattr.BondAttributes{
		BondCode:     "240018.IB",
		Market:       bondattr.Interbank,
		Abbr:         "浮息债",
		ParValue:     100,
		CouponType:   bondattr.CouponBearing,
		InterestType: bondattr.Floating,
		CouponRate:   0.02,
		InstFreq:     2,
		CarryDate:    mustDate("2024-01-01"),
		MaturityDate: mustDate("2029-01-01"),
	})
	require.NoError(t, err)

	ytm := 0.03
	_, err = pricing.NewPrimitivePricer().Calculate(pricing.Inputs{Attrs: attrs, Date: mustDate("2024-06-01"), YTM: &ytm})
	assert.ErrorIs(t, err, pricing.ErrUnsupportedInterestType)
}
