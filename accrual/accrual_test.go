package accrual_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swhysc/tbond/accrual"
	"github.com/swhysc/tbond/bondattr"
)

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func newAttrs(t *testing.T, code string, market bondattr.Market) *bondattr.BondAttributes {
	t.Helper()
	attrs, err := bondattr.New(bondattr.BondAttributes{
		BondCode:     code,
		Market:       market,
		Abbr:         "22附息国债12",
		ParValue:     100,
		CouponType:   bondattr.CouponBearing,
		InterestType: bondattr.Fixed,
		CouponRate:   0.0354,
		InstFreq:     2,
		CarryDate:    mustDate("2018-08-16"),
		MaturityDate: mustDate("2028-08-16"),
		DayCount:     "ACT/ACT",
	})
	require.NoError(t, err)
	return attrs
}

func TestComputeInterbankAccrued(t *testing.T) {
	attrs := newAttrs(t, "180019.IB", bondattr.Interbank)
	res, err := accrual.Compute(attrs, mustDate("2022-10-18"), time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.InDelta(t, 0.606033, res.Accrued, 1e-6)
	assert.Equal(t, 63, res.DaysIn)
	assert.Equal(t, 184, res.Period)
}

func TestComputeExchangeAccrued(t *testing.T) {
	attrs := newAttrs(t, "019601.SH", bondattr.ShanghaiExchange)
	res, err := accrual.Compute(attrs, mustDate("2022-10-18"), time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.InDelta(t, 0.620712, res.Accrued, 1e-6)
	assert.Equal(t, 64, res.DaysIn)
}

func TestComputeZeroAtPreCouponDate(t *testing.T) {
	attrs := newAttrs(t, "180019.IB", bondattr.Interbank)
	res, err := accrual.Compute(attrs, mustDate("2022-08-16"), time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Accrued)
}

func TestComputeUsesSuppliedBracket(t *testing.T) {
	attrs := newAttrs(t, "180019.IB", bondattr.Interbank)
	res, err := accrual.Compute(attrs, mustDate("2022-10-18"), mustDate("2022-08-16"), mustDate("2023-02-16"))
	require.NoError(t, err)
	assert.InDelta(t, 0.606033, res.Accrued, 1e-6)
}
