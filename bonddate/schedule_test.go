package bonddate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swhysc/tbond/bonddate"
)

func TestNewScheduleSemiAnnual(t *testing.T) {
	sched, err := bonddate.NewSchedule(date("2018-08-16"), date("2028-08-16"), 2)
	require.NoError(t, err)
	assert.Equal(t, date("2018-08-16"), sched.StartDate())
	assert.Equal(t, date("2028-08-16"), sched.EndDate())
	assert.Len(t, sched.Dates(), 21)
}

func TestNewScheduleRejectsNonIncreasingDates(t *testing.T) {
	_, err := bonddate.NewSchedule(date("2028-08-16"), date("2018-08-16"), 2)
	assert.Error(t, err)
}

func TestNewScheduleRejectsNonPositiveFrequency(t *testing.T) {
	_, err := bonddate.NewSchedule(date("2018-08-16"), date("2028-08-16"), 0)
	assert.Error(t, err)
}

func TestBracket(t *testing.T) {
	sched, err := bonddate.NewSchedule(date("2018-08-16"), date("2028-08-16"), 2)
	require.NoError(t, err)

	pre, next, err := sched.Bracket(date("2022-10-18"))
	require.NoError(t, err)
	assert.Equal(t, date("2022-08-16"), pre)
	assert.Equal(t, date("2023-02-16"), next)
}

func TestBracketOutOfRange(t *testing.T) {
	sched, err := bonddate.NewSchedule(date("2018-08-16"), date("2028-08-16"), 2)
	require.NoError(t, err)

	_, _, err = sched.Bracket(date("2018-01-01"))
	assert.ErrorIs(t, err, bonddate.ErrDateOutOfRange)

	_, _, err = sched.Bracket(date("2028-08-16"))
	assert.ErrorIs(t, err, bonddate.ErrDateOutOfRange)
}

func TestRemainingCountAfter(t *testing.T) {
	sched, err := bonddate.NewSchedule(date("2022-06-15"), date("2029-06-15"), 1)
	require.NoError(t, err)
	assert.Equal(t, 7, sched.RemainingCountAfter(date("2022-11-18")))
}

func TestDatesInOpenInterval(t *testing.T) {
	sched, err := bonddate.NewSchedule(date("2022-06-15"), date("2029-06-15"), 1)
	require.NoError(t, err)
	interim := sched.DatesInOpenInterval(date("2022-09-09"), date("2023-06-18"))
	require.Len(t, interim, 1)
	assert.Equal(t, date("2023-06-15"), interim[0])
}

func TestPreviousYearPeriodDays(t *testing.T) {
	sched, err := bonddate.NewSchedule(date("2022-06-15"), date("2029-06-15"), 1)
	require.NoError(t, err)
	ty, err := sched.PreviousYearPeriodDays()
	require.NoError(t, err)
	assert.Equal(t, 365, ty)
}

func TestIsInFinalCouponPeriod(t *testing.T) {
	sched, err := bonddate.NewSchedule(date("2018-08-16"), date("2028-08-16"), 2)
	require.NoError(t, err)

	final, err := sched.IsInFinalCouponPeriod(date("2022-10-18"), 15)
	require.NoError(t, err)
	assert.False(t, final)

	final, err = sched.IsInFinalCouponPeriod(date("2028-08-10"), 15)
	require.NoError(t, err)
	assert.True(t, final)
}
