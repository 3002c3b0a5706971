package swap

import (
	"fmt"
	"time"

	"github.com/meenmo/mocurve/calendar"
	"github.com/meenmo/mocurve/swap/market"
	"github.com/meenmo/mocurve/utils"
)

// SchedulePeriod is a cashflow period for a single leg.
//
// Dates are business-day adjusted per the leg convention.
type SchedulePeriod struct {
	StartDate   time.Time
	EndDate     time.Time
	PayDate     time.Time
	FixingDate  time.Time
	AccrualDays int
}

// stubThresholdDays is the largest front stub merged into the next regular period
// under backward generation.
const stubThresholdDays = 7

// SpotDate returns tradeDate plus spotLagDays business days on cal.
func SpotDate(cal calendar.CalendarID, tradeDate time.Time, spotLagDays int) time.Time {
	return calendar.AddBusinessDays(cal, tradeDate, spotLagDays)
}

// GenerateSchedule builds the payment schedule for a leg between unadjusted effective
// and maturity dates.
//
// Periods roll forward from effective unless leg.ScheduleDirection is ScheduleBackward,
// in which case they roll back from maturity and the first period becomes a front stub.
func GenerateSchedule(effective, maturity time.Time, leg market.LegConvention) ([]SchedulePeriod, error) {
	if !maturity.After(effective) {
		return nil, fmt.Errorf("GenerateSchedule: maturity %s not after effective %s",
			maturity.Format(utils.DateLayout), effective.Format(utils.DateLayout))
	}
	if leg.PayFrequency <= 0 {
		return nil, fmt.Errorf("GenerateSchedule: unsupported pay frequency %d", leg.PayFrequency)
	}

	var dates []time.Time
	if leg.ScheduleDirection == market.ScheduleBackward {
		dates = rollBackward(effective, maturity, leg)
	} else {
		dates = rollForward(effective, maturity, leg)
	}

	periods := make([]SchedulePeriod, 0, len(dates)-1)
	for i := 0; i < len(dates)-1; i++ {
		accrualStart := calendar.Adjust(leg.Calendar, dates[i])
		accrualEnd := calendar.Adjust(leg.Calendar, dates[i+1])
		payDate := calendar.AddBusinessDays(leg.Calendar, accrualEnd, leg.PayDelayDays)

		fixingDate := calendar.AddBusinessDays(leg.Calendar, accrualStart, -leg.FixingLagDays)
		if leg.ResetPosition == market.ResetInArrears || leg.IsOvernight() {
			fixingDate = calendar.AddBusinessDays(leg.Calendar, accrualEnd, -(leg.RateCutoffDays + leg.FixingLagDays))
		}

		periods = append(periods, SchedulePeriod{
			StartDate:   accrualStart,
			EndDate:     accrualEnd,
			PayDate:     payDate,
			FixingDate:  fixingDate,
			AccrualDays: int(utils.Days(accrualStart, accrualEnd)),
		})
	}
	return periods, nil
}

func step(d time.Time, months int, leg market.LegConvention) time.Time {
	if leg.RollConvention == market.BackwardEOM {
		return utils.AddMonth(d, months)
	}
	return d.AddDate(0, months, 0)
}

// rollForward returns unadjusted period boundaries from effective, ending with a short
// back stub when the tenor is not a whole number of periods.
func rollForward(effective, maturity time.Time, leg market.LegConvention) []time.Time {
	months := int(leg.PayFrequency)
	dates := []time.Time{effective}
	for n := 1; ; n++ {
		// Always step from the unadjusted effective date to avoid drift.
		next := step(effective, n*months, leg)
		if !next.Before(maturity) {
			break
		}
		dates = append(dates, next)
	}
	return append(dates, maturity)
}

// rollBackward returns unadjusted period boundaries rolled back from maturity. A front
// stub of at most stubThresholdDays is merged into the first regular period.
func rollBackward(effective, maturity time.Time, leg market.LegConvention) []time.Time {
	months := int(leg.PayFrequency)
	var rolled []time.Time
	for n := 1; ; n++ {
		prev := step(maturity, -n*months, leg)
		if !prev.After(effective) {
			break
		}
		rolled = append(rolled, prev)
	}
	if k := len(rolled); k > 0 && utils.Days(effective, rolled[k-1]) <= stubThresholdDays {
		rolled = rolled[:k-1]
	}

	dates := make([]time.Time, 0, len(rolled)+2)
	dates = append(dates, effective)
	for i := len(rolled) - 1; i >= 0; i-- {
		dates = append(dates, rolled[i])
	}
	return append(dates, maturity)
}
