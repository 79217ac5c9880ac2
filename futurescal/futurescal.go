// Package futurescal maps a CFFEX treasury-futures contract code to its
// last trading day and delivery (payment) day.
package futurescal

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/swhysc/tbond/bonddate"
)

// ErrInvalidFuturesCode is returned when a contract code doesn't match
// product-letters followed by four digits (e.g. "T2503").
var ErrInvalidFuturesCode = errors.New("futurescal: invalid futures code")

var codePattern = regexp.MustCompile(`^([A-Z]+)(\d{4})$`)

// Contract describes a parsed CFFEX treasury-futures contract code.
type Contract struct {
	Code         string
	ProductCode  string
	ContractYear int
	ContractMonth time.Month
}

// Parse validates and decomposes a futures code like "T2503" into its
// product code (T, TF, TS, TL) and contract year/month.
func Parse(code string) (Contract, error) {
	m := codePattern.FindStringSubmatch(code)
	if m == nil {
		return Contract{}, fmt.Errorf("%w: %s", ErrInvalidFuturesCode, code)
	}
	product := m[1]
	yymm := m[2]
	year := 2000 + int(yymm[0]-'0')*10 + int(yymm[1]-'0')
	month := int(yymm[2]-'0')*10 + int(yymm[3]-'0')
	if month < 1 || month > 12 {
		return Contract{}, fmt.Errorf("%w: %s: invalid month %02d", ErrInvalidFuturesCode, code, month)
	}
	return Contract{
		Code:          code,
		ProductCode:   product,
		ContractYear:  year,
		ContractMonth: time.Month(month),
	}, nil
}

// ContractMonthStart returns the first calendar day of the contract month.
func (c Contract) ContractMonthStart() time.Time {
	return time.Date(c.ContractYear, c.ContractMonth, 1, 0, 0, 0, 0, time.UTC)
}

// LastTradingDay returns the second Friday of the contract month: scan
// day-of-month 8..14 and return the first Friday found.
func (c Contract) LastTradingDay() time.Time {
	start := c.ContractMonthStart()
	for day := 8; day <= 14; day++ {
		d := start.AddDate(0, 0, day-1)
		if d.Weekday() == time.Friday {
			return d
		}
	}
	// Unreachable: every 7-day window contains exactly one Friday.
	panic("futurescal: no Friday found in delivery-month scan window")
}

// PaymentDate returns the delivery/payment day: last trading day + 4
// calendar days (always a Tuesday). No business-day adjustment is applied;
// it is deterministic by construction.
func (c Contract) PaymentDate() time.Time {
	return c.LastTradingDay().AddDate(0, 0, 4)
}

// Delivery is a convenience combining Parse + PaymentDate for callers that
// only need the delivery date.
func Delivery(code string) (time.Time, error) {
	c, err := Parse(code)
	if err != nil {
		return time.Time{}, err
	}
	return bonddate.Normalize(c.PaymentDate()), nil
}
