package swap

import (
	"fmt"
	"time"

	"github.com/meenmo/mocurve/calendar"
	"github.com/meenmo/mocurve/check"
	"github.com/meenmo/mocurve/product"
	"github.com/meenmo/mocurve/swap/market"
)

// FixedFloatSwapConvention is a market convention for swaps of a fixed leg against an
// IBOR or overnight leg.
type FixedFloatSwapConvention struct {
	Name        string
	SpotLagDays int
	Calendar    calendar.CalendarID
	FixedLeg    market.LegConvention
	FloatLeg    market.LegConvention
}

// FixedFloatSwapTemplate is a convention applied to a forward start and a tenor.
type FixedFloatSwapTemplate struct {
	PeriodToStart market.Tenor
	Tenor         market.Tenor
	Convention    FixedFloatSwapConvention
}

// Validate checks that the template can produce trades.
func (t FixedFloatSwapTemplate) Validate() error {
	if t.Tenor.IsZero() || t.Tenor.Amount == 0 {
		return check.Errorf("FixedFloatSwapTemplate: tenor is required")
	}
	if err := check.NotEmpty(t.Convention.Name, "FixedFloatSwapTemplate: convention"); err != nil {
		return err
	}
	if t.Convention.FixedLeg.LegType != market.LegFixed || t.Convention.FloatLeg.LegType != market.LegFloating {
		return check.Errorf("FixedFloatSwapTemplate: convention %s must pair a fixed and a floating leg", t.Convention.Name)
	}
	return nil
}

// Label is e.g. "5Y" or "1Yx5Y" for forward starting swaps.
func (t FixedFloatSwapTemplate) Label() string {
	if t.PeriodToStart.Amount == 0 {
		return t.Tenor.String()
	}
	return t.PeriodToStart.String() + "x" + t.Tenor.String()
}

// ToTrade builds a swap traded on valuationDate. Buy pays the fixed rate.
func (t FixedFloatSwapTemplate) ToTrade(valuationDate time.Time, side product.BuySell, notional, fixedRate float64) (SwapTrade, error) {
	if err := t.Validate(); err != nil {
		return SwapTrade{}, err
	}
	c := t.Convention
	start, end := accrualWindow(c.Calendar, valuationDate, c.SpotLagDays, t.PeriodToStart, t.Tenor)

	fixedPeriods, err := GenerateSchedule(start, end, c.FixedLeg)
	if err != nil {
		return SwapTrade{}, fmt.Errorf("FixedFloatSwapTemplate.ToTrade: fixed leg: %w", err)
	}
	floatPeriods, err := GenerateSchedule(start, end, c.FloatLeg)
	if err != nil {
		return SwapTrade{}, fmt.Errorf("FixedFloatSwapTemplate.ToTrade: floating leg: %w", err)
	}

	payFixed := side == product.Buy
	return SwapTrade{
		tradeDate: valuationDate,
		startDate: calendar.Adjust(c.Calendar, start),
		endDate:   calendar.Adjust(c.Calendar, end),
		buySell:   side,
		legs: []Leg{
			{Convention: c.FixedLeg, Pay: payFixed, Notional: notional, FixedRate: fixedRate, Periods: fixedPeriods},
			{Convention: c.FloatLeg, Pay: !payFixed, Notional: notional, Periods: floatPeriods},
		},
	}, nil
}

// XCcyIborIborSwapConvention is a market convention for cross-currency basis swaps.
// The spread is quoted on SpreadLeg; FlatLeg is in the second currency.
type XCcyIborIborSwapConvention struct {
	Name        string
	SpotLagDays int
	Calendar    calendar.CalendarID
	SpreadLeg   market.LegConvention
	FlatLeg     market.LegConvention
}

// XCcyIborIborSwapTemplate is a cross-currency convention applied to a tenor.
type XCcyIborIborSwapTemplate struct {
	PeriodToStart market.Tenor
	Tenor         market.Tenor
	Convention    XCcyIborIborSwapConvention
}

// Validate checks that the template can produce trades.
func (t XCcyIborIborSwapTemplate) Validate() error {
	if t.Tenor.IsZero() || t.Tenor.Amount == 0 {
		return check.Errorf("XCcyIborIborSwapTemplate: tenor is required")
	}
	if err := check.NotEmpty(t.Convention.Name, "XCcyIborIborSwapTemplate: convention"); err != nil {
		return err
	}
	if t.Convention.SpreadLeg.LegType != market.LegFloating || t.Convention.FlatLeg.LegType != market.LegFloating {
		return check.Errorf("XCcyIborIborSwapTemplate: convention %s must have two floating legs", t.Convention.Name)
	}
	return nil
}

// Label is the tenor, prefixed with the forward start if any.
func (t XCcyIborIborSwapTemplate) Label() string {
	if t.PeriodToStart.Amount == 0 {
		return t.Tenor.String()
	}
	return t.PeriodToStart.String() + "x" + t.Tenor.String()
}

// ToTrade builds a cross-currency swap. notional is in the spread leg currency and
// the flat leg notional is notional * fxRate. Buy pays the spread leg.
func (t XCcyIborIborSwapTemplate) ToTrade(valuationDate time.Time, side product.BuySell, notional, fxRate, spread float64) (SwapTrade, error) {
	if err := t.Validate(); err != nil {
		return SwapTrade{}, err
	}
	if err := check.Positive(fxRate, "XCcyIborIborSwapTemplate.ToTrade: fx rate"); err != nil {
		return SwapTrade{}, err
	}
	c := t.Convention
	start, end := accrualWindow(c.Calendar, valuationDate, c.SpotLagDays, t.PeriodToStart, t.Tenor)

	spreadPeriods, err := GenerateSchedule(start, end, c.SpreadLeg)
	if err != nil {
		return SwapTrade{}, fmt.Errorf("XCcyIborIborSwapTemplate.ToTrade: spread leg: %w", err)
	}
	flatPeriods, err := GenerateSchedule(start, end, c.FlatLeg)
	if err != nil {
		return SwapTrade{}, fmt.Errorf("XCcyIborIborSwapTemplate.ToTrade: flat leg: %w", err)
	}

	paySpread := side == product.Buy
	return SwapTrade{
		tradeDate: valuationDate,
		startDate: calendar.Adjust(c.Calendar, start),
		endDate:   calendar.Adjust(c.Calendar, end),
		buySell:   side,
		legs: []Leg{
			{Convention: c.SpreadLeg, Pay: paySpread, Notional: notional, Spread: spread, Periods: spreadPeriods},
			{Convention: c.FlatLeg, Pay: !paySpread, Notional: notional * fxRate, Periods: flatPeriods},
		},
	}, nil
}

// accrualWindow returns the unadjusted start and end of a swap traded on tradeDate.
func accrualWindow(cal calendar.CalendarID, tradeDate time.Time, spotLag int, periodToStart, tenor market.Tenor) (time.Time, time.Time) {
	start := SpotDate(cal, tradeDate, spotLag)
	if periodToStart.Amount > 0 {
		start = periodToStart.AddTo(start)
	}
	return start, tenor.AddTo(start)
}
