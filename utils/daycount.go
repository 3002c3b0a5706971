package utils

import (
	"time"
)

// Day count convention names accepted by YearFraction.
const (
	Act360     = "ACT/360"
	Act365F    = "ACT/365F"
	Act365     = "ACT/365"
	Thirty360  = "30/360"
	ThirtyE360 = "30E/360"
)

// YearFraction computes the year fraction between two dates under convention.
// Unknown conventions fall back to ACT/365F.
func YearFraction(start, end time.Time, convention string) float64 {
	switch convention {
	case Act360:
		return Days(start, end) / 360.0
	case Thirty360, ThirtyE360:
		// D1 and D2 are capped at 30.
		d1 := min(start.Day(), 30)
		d2 := min(end.Day(), 30)
		y1, m1 := start.Year(), int(start.Month())
		y2, m2 := end.Year(), int(end.Month())
		return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 360.0
	default:
		return Days(start, end) / 365.0
	}
}
