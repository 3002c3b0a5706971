// Package market holds the static conventions of swap legs: indices, frequencies,
// day counts and tenors.
package market

import (
	"github.com/meenmo/mocurve/calendar"
)

// LegType distinguishes floating vs fixed.
type LegType string

const (
	LegFloating LegType = "FLOATING"
	LegFixed    LegType = "FIXED"
)

// Frequency enumerates payment/reset frequencies in months.
type Frequency int

const (
	FreqAnnual    Frequency = 12
	FreqSemi      Frequency = 6
	FreqQuarterly Frequency = 3
	FreqMonthly   Frequency = 1
)

// RollConvention for month-end handling.
type RollConvention string

const (
	RollNone    RollConvention = ""
	BackwardEOM RollConvention = "BACKWARD_EOM"
)

// ScheduleDirection selects the end from which regular periods are rolled.
type ScheduleDirection string

const (
	ScheduleForward  ScheduleDirection = "FORWARD"
	ScheduleBackward ScheduleDirection = "BACKWARD"
)

// ResetPosition indicates fixing timing.
type ResetPosition string

const (
	ResetInAdvance ResetPosition = "IN_ADVANCE"
	ResetInArrears ResetPosition = "IN_ARREARS"
)

// DayCount enum.
type DayCount string

const (
	Act360   DayCount = "ACT/360"
	Act365F  DayCount = "ACT/365F"
	Dc30360  DayCount = "30/360"
	Dc30E360 DayCount = "30E/360"
)

// LegConvention captures standard swap leg settings.
type LegConvention struct {
	LegType                 LegType
	ReferenceRate           ReferenceIndex
	Currency                string
	DayCount                DayCount
	PayFrequency            Frequency
	FixingLagDays           int
	PayDelayDays            int
	RollConvention          RollConvention
	ScheduleDirection       ScheduleDirection
	Calendar                calendar.CalendarID
	ResetPosition           ResetPosition
	RateCutoffDays          int
	IncludeInitialPrincipal bool
	IncludeFinalPrincipal   bool
}

// IsOvernight reports whether the leg compounds an overnight index.
func (l LegConvention) IsOvernight() bool {
	return l.LegType == LegFloating && IsOvernight(l.ReferenceRate)
}
