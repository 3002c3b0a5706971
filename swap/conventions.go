package swap

import (
	"maps"
	"slices"

	"github.com/meenmo/mocurve/calendar"
	"github.com/meenmo/mocurve/check"
	"github.com/meenmo/mocurve/swap/market"
)

func fixedLeg(cal calendar.CalendarID, ccy string, dc market.DayCount, freq market.Frequency) market.LegConvention {
	return market.LegConvention{
		LegType:           market.LegFixed,
		Currency:          ccy,
		DayCount:          dc,
		PayFrequency:      freq,
		RollConvention:    market.BackwardEOM,
		ScheduleDirection: market.ScheduleBackward,
		Calendar:          cal,
	}
}

func iborLeg(cal calendar.CalendarID, idx market.ReferenceIndex, dc market.DayCount, freq market.Frequency, fixingLag int) market.LegConvention {
	return market.LegConvention{
		LegType:           market.LegFloating,
		ReferenceRate:     idx,
		Currency:          idx.Currency(),
		DayCount:          dc,
		PayFrequency:      freq,
		FixingLagDays:     fixingLag,
		RollConvention:    market.BackwardEOM,
		ScheduleDirection: market.ScheduleBackward,
		Calendar:          cal,
		ResetPosition:     market.ResetInAdvance,
	}
}

func oisLeg(cal calendar.CalendarID, idx market.ReferenceIndex, dc market.DayCount, payDelay int) market.LegConvention {
	return market.LegConvention{
		LegType:        market.LegFloating,
		ReferenceRate:  idx,
		Currency:       idx.Currency(),
		DayCount:       dc,
		PayFrequency:   market.FreqAnnual,
		PayDelayDays:   payDelay,
		RollConvention: market.BackwardEOM,
		Calendar:       cal,
		ResetPosition:  market.ResetInArrears,
	}
}

func withPrincipal(l market.LegConvention) market.LegConvention {
	l.IncludeInitialPrincipal = true
	l.IncludeFinalPrincipal = true
	return l
}

// fixedFloatConventions are the standard fixed/float conventions by name.
var fixedFloatConventions = map[string]FixedFloatSwapConvention{
	"EUR-FIXED-1Y-EURIBOR-6M": {
		SpotLagDays: 2, Calendar: calendar.TARGET,
		FixedLeg: fixedLeg(calendar.TARGET, "EUR", market.Dc30E360, market.FreqAnnual),
		FloatLeg: iborLeg(calendar.TARGET, market.EURIBOR6M, market.Act360, market.FreqSemi, 2),
	},
	"EUR-FIXED-1Y-EURIBOR-3M": {
		SpotLagDays: 2, Calendar: calendar.TARGET,
		FixedLeg: fixedLeg(calendar.TARGET, "EUR", market.Dc30E360, market.FreqAnnual),
		FloatLeg: iborLeg(calendar.TARGET, market.EURIBOR3M, market.Act360, market.FreqQuarterly, 2),
	},
	"EUR-FIXED-1Y-ESTR-OIS": {
		SpotLagDays: 2, Calendar: calendar.TARGET,
		FixedLeg: fixedLeg(calendar.TARGET, "EUR", market.Act360, market.FreqAnnual),
		FloatLeg: oisLeg(calendar.TARGET, market.ESTR, market.Act360, 1),
	},
	"USD-FIXED-1Y-SOFR-OIS": {
		SpotLagDays: 2, Calendar: calendar.USD,
		FixedLeg: fixedLeg(calendar.USD, "USD", market.Act360, market.FreqAnnual),
		FloatLeg: oisLeg(calendar.USD, market.SOFR, market.Act360, 2),
	},
	"JPY-FIXED-6M-TIBOR-6M": {
		SpotLagDays: 2, Calendar: calendar.JPN,
		FixedLeg: fixedLeg(calendar.JPN, "JPY", market.Act365F, market.FreqSemi),
		FloatLeg: iborLeg(calendar.JPN, market.TIBOR6M, market.Act365F, market.FreqSemi, 2),
	},
	"JPY-FIXED-1Y-TONAR-OIS": {
		SpotLagDays: 2, Calendar: calendar.JPN,
		FixedLeg: fixedLeg(calendar.JPN, "JPY", market.Act365F, market.FreqAnnual),
		FloatLeg: oisLeg(calendar.JPN, market.TONAR, market.Act365F, 2),
	},
	"KRW-FIXED-3M-CD-3M": {
		SpotLagDays: 1, Calendar: calendar.KRW,
		FixedLeg: fixedLeg(calendar.KRW, "KRW", market.Act365F, market.FreqQuarterly),
		FloatLeg: iborLeg(calendar.KRW, market.CD91D, market.Act365F, market.FreqQuarterly, 1),
	},
}

// xccyConventions are the standard cross-currency basis conventions by name.
var xccyConventions = map[string]XCcyIborIborSwapConvention{
	"EUR-EURIBOR-3M-USD-TERMSOFR-3M": {
		SpotLagDays: 2, Calendar: calendar.TARGET,
		SpreadLeg: withPrincipal(iborLeg(calendar.TARGET, market.EURIBOR3M, market.Act360, market.FreqQuarterly, 2)),
		FlatLeg:   withPrincipal(iborLeg(calendar.USD, market.TERMSOFR3M, market.Act360, market.FreqQuarterly, 2)),
	},
	"JPY-TIBOR-3M-USD-TERMSOFR-3M": {
		SpotLagDays: 2, Calendar: calendar.JPN,
		SpreadLeg: withPrincipal(iborLeg(calendar.JPN, market.TIBOR3M, market.Act365F, market.FreqQuarterly, 2)),
		FlatLeg:   withPrincipal(iborLeg(calendar.USD, market.TERMSOFR3M, market.Act360, market.FreqQuarterly, 2)),
	},
}

// FixedFloatConvention looks up a fixed/float convention by name.
func FixedFloatConvention(name string) (FixedFloatSwapConvention, error) {
	c, ok := fixedFloatConventions[name]
	if !ok {
		return FixedFloatSwapConvention{}, check.Errorf("unknown fixed/float convention %q", name)
	}
	c.Name = name
	return c, nil
}

// XCcyIborIborConvention looks up a cross-currency convention by name.
func XCcyIborIborConvention(name string) (XCcyIborIborSwapConvention, error) {
	c, ok := xccyConventions[name]
	if !ok {
		return XCcyIborIborSwapConvention{}, check.Errorf("unknown cross-currency convention %q", name)
	}
	c.Name = name
	return c, nil
}

// ConventionNames lists every registered convention, sorted.
func ConventionNames() []string {
	names := slices.Collect(maps.Keys(fixedFloatConventions))
	names = append(names, slices.Collect(maps.Keys(xccyConventions))...)
	slices.Sort(names)
	return names
}
