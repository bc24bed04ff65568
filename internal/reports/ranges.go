package reports

import (
	"time"

	"paytrack/internal/core"
)

// Preset date ranges for the report endpoints. All bounds are local
// calendar days in canonical form.

// TodayRange returns today as both bounds.
func TodayRange(now time.Time) (start, end string) {
	d := core.FormatDate(now)
	return d, d
}

// CurrentWeekRange returns the Sunday-to-Saturday week containing now.
func CurrentWeekRange(now time.Time) (start, end string) {
	now = now.Local()
	weekStart := now.AddDate(0, 0, -int(now.Weekday()))
	weekEnd := weekStart.AddDate(0, 0, 6)
	return core.FormatDate(weekStart), core.FormatDate(weekEnd)
}

// CurrentMonthRange returns the first and last day of now's month.
func CurrentMonthRange(now time.Time) (start, end string) {
	now = now.Local()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, -1)
	return core.FormatDate(first), core.FormatDate(last)
}

// MonthRange returns the bounds of an explicit year/month.
func MonthRange(year, month int) (start, end string) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)
	return core.FormatDate(first), core.FormatDate(last)
}
