package bonddate

import (
	"errors"
	"fmt"
	"time"
)

// ErrDateOutOfRange is returned when a queried date falls outside a
// schedule's [carryDate, maturityDate) span.
var ErrDateOutOfRange = errors.New("bonddate: date out of range")

// Schedule is the ordered sequence of coupon dates D0 < D1 < ... < Dm for a
// single bond, with D0 == carry date and Dm == maturity date. It is
// generated once and is immutable thereafter.
type Schedule struct {
	dates []time.Time
}

// NewSchedule generates the coupon date list backward from maturityDate at
// a step of 12/instFreq months. Day-of-month is preserved (EDATE-style,
// see AddMonths); the first generated date at-or-before carryDate is
// replaced by carryDate exactly, producing a (possibly short) stub first
// period.
func NewSchedule(carryDate, maturityDate time.Time, instFreq int) (*Schedule, error) {
	carryDate = Normalize(carryDate)
	maturityDate = Normalize(maturityDate)

	if !carryDate.Before(maturityDate) {
		return nil, fmt.Errorf("bonddate: carry date %s must precede maturity date %s",
			carryDate.Format("2006-01-02"), maturityDate.Format("2006-01-02"))
	}
	if instFreq <= 0 {
		return nil, fmt.Errorf("bonddate: inst_freq must be positive, got %d", instFreq)
	}

	step := 12 / instFreq

	// Walk backward from maturity until we reach or pass carryDate.
	var reversed []time.Time
	cursor := maturityDate
	reversed = append(reversed, cursor)
	for cursor.After(carryDate) {
		cursor = AddMonths(cursor, -step)
		reversed = append(reversed, cursor)
	}

	// The last appended date is at or before carryDate; replace it with
	// carryDate exactly (stub period handling) and drop anything earlier.
	dates := make([]time.Time, len(reversed))
	for i, d := range reversed {
		dates[len(reversed)-1-i] = d
	}
	dates[0] = carryDate

	return &Schedule{dates: dates}, nil
}

// EndDate returns Dm, the maturity date.
func (s *Schedule) EndDate() time.Time {
	return s.dates[len(s.dates)-1]
}

// StartDate returns D0, the carry date.
func (s *Schedule) StartDate() time.Time {
	return s.dates[0]
}

// Dates returns the full ordered coupon date list. Callers must not mutate
// the returned slice.
func (s *Schedule) Dates() []time.Time {
	return s.dates
}

// Bracket returns (Di, Di+1) such that Di <= d < Di+1. Fails with
// ErrDateOutOfRange if d < D0 or d >= Dm.
func (s *Schedule) Bracket(d time.Time) (time.Time, time.Time, error) {
	d = Normalize(d)
	if d.Before(s.dates[0]) || !d.Before(s.dates[len(s.dates)-1]) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s not in [%s, %s)",
			ErrDateOutOfRange, d.Format("2006-01-02"),
			s.dates[0].Format("2006-01-02"), s.dates[len(s.dates)-1].Format("2006-01-02"))
	}
	for i := 1; i < len(s.dates); i++ {
		if s.dates[i-1].Before(d) || s.dates[i-1].Equal(d) {
			if d.Before(s.dates[i]) {
				return s.dates[i-1], s.dates[i], nil
			}
		}
	}
	return time.Time{}, time.Time{}, fmt.Errorf("%w: %s", ErrDateOutOfRange, d.Format("2006-01-02"))
}

// RemainingCountAfter returns the count of scheduled dates strictly greater
// than d.
func (s *Schedule) RemainingCountAfter(d time.Time) int {
	d = Normalize(d)
	count := 0
	for _, dt := range s.dates {
		if dt.After(d) {
			count++
		}
	}
	return count
}

// DatesInOpenInterval returns the ordered list of scheduled dates strictly
// between a and b.
func (s *Schedule) DatesInOpenInterval(a, b time.Time) []time.Time {
	a, b = Normalize(a), Normalize(b)
	var out []time.Time
	for _, dt := range s.dates {
		if dt.After(a) && dt.Before(b) {
			out = append(out, dt)
		}
	}
	return out
}

// PreviousYearPeriodDays returns TY: the day count of the most recent
// coupon period before maturity that spans a full calendar year. It walks
// the schedule backward from maturity, skipping sub-annual candidate gaps
// (< 360 days) the way the original closed-form "TY" derivation does, and
// returns the day difference of the first qualifying gap to maturity.
func (s *Schedule) PreviousYearPeriodDays() (int, error) {
	maturity := s.EndDate()
	for i := len(s.dates) - 2; i >= 1; i-- {
		if s.dates[i].Year() == maturity.Year() {
			continue
		}
		candidate := DaysBetween(s.dates[i], maturity)
		if candidate < 360 {
			continue
		}
		return candidate, nil
	}
	return 0, fmt.Errorf("bonddate: no qualifying full-year coupon period found before maturity")
}

// IsInFinalCouponPeriod reports whether d's next coupon date is within
// thresholdDays of maturity, i.e. d lies in the bond's final coupon
// period. This guards against the common case where the last scheduled
// coupon date and maturity differ by a few days.
func (s *Schedule) IsInFinalCouponPeriod(d time.Time, thresholdDays int) (bool, error) {
	_, nextCP, err := s.Bracket(d)
	if err != nil {
		return false, err
	}
	return DaysBetween(nextCP, s.EndDate()) < thresholdDays, nil
}
