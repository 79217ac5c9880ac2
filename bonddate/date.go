// Package bonddate implements calendar-neutral date arithmetic and coupon
// schedule generation for fixed-rate bonds. Dates are represented as plain
// time.Time values normalized to UTC midnight; there is no timezone and no
// business-day calendar here (that lives in futurescal, scoped only to the
// CFFEX last-trading-day rule).
package bonddate

import "time"

// Normalize truncates t to a UTC calendar date, discarding any time-of-day
// component. All dates flowing through the pricing kernel are expected to
// already be normalized; callers constructing dates from external input
// should call this first.
func Normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of natural (calendar) days from start to
// end. Negative if end precedes start.
func DaysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

// AddMonths behaves like Excel's EDATE: it advances t by the given number
// of months and clamps the day-of-month to the target month's last day
// when the original day doesn't exist there (e.g. Jan 31 + 1 month = Feb
// 28/29, not Mar 3 as Go's AddDate would produce).
func AddMonths(t time.Time, months int) time.Time {
	naive := t.AddDate(0, months, 0)
	firstOfTarget := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	if naive.Month() == firstOfTarget.Month() {
		return naive
	}
	// naive overflowed into the following month; walk back to the last
	// day of the intended month.
	overflowMonth := naive.Month()
	for naive.Month() == overflowMonth {
		naive = naive.AddDate(0, 0, -1)
	}
	return naive
}

// MonthDelta counts the number of month boundaries crossed from the 2nd of
// from's month to the 1st of to's month. This is the CFFEX "x" input to the
// conversion-factor formula (months from the delivery month to the next
// coupon month after delivery) and follows the original implementation's
// day-02/day-01 construction literally: it anchors the start side on the
// 2nd (so a delivery date of the 1st still counts its own month) and the
// end side on the 1st, then counts whole months between them.
func MonthDelta(from, to time.Time) int {
	start := time.Date(from.Year(), from.Month(), 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)

	months := 0
	cursor := start
	for cursor.Before(end) {
		cursor = time.Date(cursor.Year(), cursor.Month()+1, 1, 0, 0, 0, 0, time.UTC)
		months++
	}
	return months
}
