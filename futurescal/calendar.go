package futurescal

import "time"

// cffexHolidays lists CFFEX (and, transitively, CNY interbank/exchange)
// public holidays on which no trading or delivery occurs. This is
// deliberately small: spec.md's Non-goals exclude general business-day
// calendars and scope in only "the Chinese market's holiday list used for
// futures' last-trading-day rule." The list below is illustrative of a
// handful of recent Spring Festival/National Day windows; a production
// deployment would source this from CFFEX's published annual notice.
var cffexHolidays = buildHolidaySet([]string{
	"2024-01-01",
	"2024-02-09", "2024-02-12", "2024-02-13", "2024-02-14", "2024-02-15", "2024-02-16", "2024-02-17",
	"2024-04-04", "2024-04-05", "2024-04-06",
	"2024-05-01", "2024-05-02", "2024-05-03",
	"2024-06-10",
	"2024-09-16", "2024-09-17",
	"2024-10-01", "2024-10-02", "2024-10-03", "2024-10-04", "2024-10-07",
	"2025-01-01",
	"2025-01-28", "2025-01-29", "2025-01-30", "2025-01-31", "2025-02-03", "2025-02-04",
	"2025-04-04",
	"2025-05-01", "2025-05-02", "2025-05-05",
	"2025-05-31", "2025-06-02",
	"2025-10-01", "2025-10-02", "2025-10-03", "2025-10-06", "2025-10-07", "2025-10-08",
})

func buildHolidaySet(dates []string) map[string]struct{} {
	m := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		m[d] = struct{}{}
	}
	return m
}

// isCFFEXHoliday reports whether t is a weekend or a listed CFFEX holiday.
func isCFFEXHoliday(t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return true
	}
	_, ok := cffexHolidays[t.Format("2006-01-02")]
	return ok
}

// LastTradingDayAdjusted applies CFFEX's real-world holiday rollforward:
// if the formulaic second-Friday last trading day falls on a listed
// holiday (Spring Festival and National Day golden weeks occasionally
// shift it), the day rolls forward to the next non-holiday business day.
// spec.md §4.5 specifies the unadjusted rule as the core contract;
// this is the one enrichment the Non-goals clause explicitly allows
// ("no business-day calendars beyond the Chinese market's holiday list
// used for futures' last-trading-day rule").
func (c Contract) LastTradingDayAdjusted() time.Time {
	d := c.LastTradingDay()
	for isCFFEXHoliday(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}
