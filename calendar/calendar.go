// Package calendar provides rule-based holiday calendars and business day arithmetic.
package calendar

import (
	"fmt"
	"sync"
	"time"

	"github.com/meenmo/mocurve/utils"
)

// CalendarID identifies a holiday calendar.
type CalendarID string

const (
	TARGET CalendarID = "TARGET"
	JPN    CalendarID = "JPN"
	USD    CalendarID = "USD"
	KRW    CalendarID = "KRW"
	// WeekendsOnly treats every weekday as a business day.
	WeekendsOnly CalendarID = "WEEKENDS"
)

// Parse validates a calendar name.
func Parse(s string) (CalendarID, error) {
	switch id := CalendarID(s); id {
	case TARGET, JPN, USD, KRW, WeekendsOnly:
		return id, nil
	default:
		return "", fmt.Errorf("calendar.Parse: unknown calendar %q", s)
	}
}

type yearKey struct {
	cal  CalendarID
	year int
}

// holidayCache memoizes the holiday set of a calendar for a year.
var holidayCache sync.Map // yearKey -> map[string]struct{}

func holidaysFor(cal CalendarID, year int) map[string]struct{} {
	k := yearKey{cal: cal, year: year}
	if v, ok := holidayCache.Load(k); ok {
		return v.(map[string]struct{})
	}

	var days []time.Time
	switch cal {
	case TARGET:
		days = targetHolidays(year)
	case JPN:
		days = jpnHolidays(year)
	case USD:
		days = usdHolidays(year)
	case KRW:
		days = krwHolidays(year)
	}
	set := make(map[string]struct{}, len(days))
	for _, d := range days {
		set[d.Format(utils.DateLayout)] = struct{}{}
	}
	v, _ := holidayCache.LoadOrStore(k, set)
	return v.(map[string]struct{})
}

// IsHoliday reports whether t is a listed holiday of cal. Weekends are not holidays.
func IsHoliday(cal CalendarID, t time.Time) bool {
	_, ok := holidaysFor(cal, t.Year())[t.Format(utils.DateLayout)]
	return ok
}

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}

// IsBusinessDay checks weekends and holiday sets.
func IsBusinessDay(cal CalendarID, t time.Time) bool {
	if isWeekend(t) {
		return false
	}
	return !IsHoliday(cal, t)
}

// Adjust applies Modified Following.
func Adjust(cal CalendarID, t time.Time) time.Time {
	adjusted := AdjustFollowing(cal, t)
	if adjusted.Month() != t.Month() {
		return AdjustPreceding(cal, t)
	}
	return adjusted
}

// AdjustFollowing rolls forward to the next business day.
func AdjustFollowing(cal CalendarID, t time.Time) time.Time {
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// AdjustPreceding rolls back to the previous business day.
func AdjustPreceding(cal CalendarID, t time.Time) time.Time {
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, -1)
	}
	return t
}

// AddBusinessDays advances n business days (n can be negative).
func AddBusinessDays(cal CalendarID, t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if IsBusinessDay(cal, t) {
			n -= step
		}
	}
	return t
}

// LastBusinessDayOfMonth returns the last business day of the month containing t.
func LastBusinessDayOfMonth(cal CalendarID, t time.Time) time.Time {
	last := time.Date(t.Year(), t.Month(), utils.DaysInMonth(t.Year(), t.Month()), 0, 0, 0, 0, time.UTC)
	return AdjustPreceding(cal, last)
}

// IsEndOfMonth checks if t is the last business day of its month.
func IsEndOfMonth(cal CalendarID, t time.Time) bool {
	return t.Equal(LastBusinessDayOfMonth(cal, t))
}
