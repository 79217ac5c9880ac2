// Package bondattr holds the immutable static description of a bond:
// market, coupon structure, issue/maturity dates, and the lazily-computed
// coupon schedule that hangs off it.
package bondattr

import (
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/swhysc/tbond/bonddate"
)

// Market identifies which venue a bond trades on. The settlement and
// accrual conventions differ by market (see the accrual package).
type Market string

const (
	Interbank        Market = "IB"
	ShanghaiExchange Market = "SH"
	ShenzhenExchange Market = "SZ"
)

// CouponType is the bond's coupon structure.
type CouponType string

const (
	CouponBearing    CouponType = "Coupon_Bear"
	ZeroCoupon       CouponType = "Zero_Coupon"
	OneTimeAtMaturity CouponType = "One_Time"
)

// InterestType is the rate-setting mechanism for coupons. The core only
// supports Fixed; the others are accepted on the wire (they appear in real
// vendor feeds) but fail with ErrUnsupportedInterestType at pricing time.
type InterestType string

const (
	Fixed       InterestType = "Fixed"
	Floating    InterestType = "Floating"
	Progressive InterestType = "Progressive"
	Zero        InterestType = "Zero"
)

var bondCodePattern = regexp.MustCompile(`^\d{6}\.(IB|SH|SZ)$`)

// BondAttributes is the immutable static record of a bond's parameters.
// Construct it with New, which validates field-level and cross-field
// invariants; once built, all exported fields are read-only by convention
// and the derived Schedule is cached internally.
type BondAttributes struct {
	BondCode     string       `validate:"required"`
	Market       Market       `validate:"required,oneof=IB SH SZ"`
	Abbr         string       `validate:"required"`
	ParValue     float64      `validate:"required,gt=0"`
	CouponType   CouponType   `validate:"required,oneof=Coupon_Bear Zero_Coupon One_Time"`
	InterestType InterestType `validate:"required,oneof=Fixed Floating Progressive Zero"`
	CouponRate   float64      `validate:"gte=0,lt=1"`
	InstFreq     int          `validate:"gte=0,lte=2"`
	CarryDate    time.Time    `validate:"required"`
	MaturityDate time.Time    `validate:"required"`
	DayCount     string

	scheduleOnce sync.Once
	schedule     *bonddate.Schedule
	scheduleErr  error
}

var structValidator = validator.New()

// New validates and constructs a BondAttributes value. It checks the
// field-level tags above plus the cross-field invariants spec.md requires:
// carry_date < maturity_date, and for Fixed+Coupon_Bear bonds,
// inst_freq ∈ {1, 2}.
func New(attrs BondAttributes) (*BondAttributes, error) {
	a := attrs
	a.BondCode = attrs.BondCode

	if err := structValidator.Struct(&a); err != nil {
		return nil, fmt.Errorf("bondattr: invalid attributes for %s: %w", a.BondCode, err)
	}
	if !bondCodePattern.MatchString(a.BondCode) {
		return nil, fmt.Errorf("bondattr: %w: %s", ErrInvalidBondCode, a.BondCode)
	}
	if !a.CarryDate.Before(a.MaturityDate) {
		return nil, fmt.Errorf("bondattr: carry date %s must precede maturity date %s for %s",
			a.CarryDate.Format("2006-01-02"), a.MaturityDate.Format("2006-01-02"), a.BondCode)
	}
	if a.InterestType == Fixed && a.CouponType == CouponBearing {
		if a.InstFreq != 1 && a.InstFreq != 2 {
			return nil, fmt.Errorf("bondattr: %s: inst_freq must be 1 or 2 for fixed coupon-bearing bonds, got %d",
				a.BondCode, a.InstFreq)
		}
	}

	a.CarryDate = bonddate.Normalize(a.CarryDate)
	a.MaturityDate = bonddate.Normalize(a.MaturityDate)

	return &a, nil
}

// MarketFromBondCode derives the Market tag from a bond code's suffix.
func MarketFromBondCode(bondCode string) (Market, error) {
	m := bondCodePattern.FindStringSubmatch(bondCode)
	if m == nil {
		return "", fmt.Errorf("bondattr: %w: %s", ErrInvalidBondCode, bondCode)
	}
	switch m[1] {
	case "IB":
		return Interbank, nil
	case "SH":
		return ShanghaiExchange, nil
	case "SZ":
		return ShenzhenExchange, nil
	default:
		return "", fmt.Errorf("bondattr: %w: %s", ErrInvalidBondCode, bondCode)
	}
}

// Schedule returns the bond's lazily-computed, cached coupon schedule.
// Computation happens at most once per BondAttributes value (sync.Once),
// satisfying the single-writer requirement for schedule caches shared
// across goroutines.
func (a *BondAttributes) Schedule() (*bonddate.Schedule, error) {
	a.scheduleOnce.Do(func() {
		freq := a.InstFreq
		if freq == 0 {
			// Zero-coupon bonds (inst_freq 0) get an annual schedule
			// backward from maturity so bracket/remaining queries work.
			freq = 1
		}
		a.schedule, a.scheduleErr = bonddate.NewSchedule(a.CarryDate, a.MaturityDate, freq)
	})
	return a.schedule, a.scheduleErr
}
