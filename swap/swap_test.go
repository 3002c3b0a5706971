package swap_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/mocurve/calendar"
	"github.com/meenmo/mocurve/check"
	"github.com/meenmo/mocurve/product"
	"github.com/meenmo/mocurve/swap"
	"github.com/meenmo/mocurve/swap/market"
	"github.com/meenmo/mocurve/utils"
)

func d(s string) time.Time { return utils.MustParseDate(s) }

func TestGenerateSchedule_SinglePeriod(t *testing.T) {
	t.Parallel()

	effective := d("2025-01-02")
	maturity := d("2026-01-02")
	leg := market.LegConvention{
		LegType:           market.LegFloating,
		ReferenceRate:     market.TIBOR6M,
		DayCount:          market.Act365F,
		PayFrequency:      market.FreqAnnual,
		RollConvention:    market.BackwardEOM,
		ScheduleDirection: market.ScheduleBackward,
		Calendar:          calendar.USD,
		ResetPosition:     market.ResetInAdvance,
	}

	periods, err := swap.GenerateSchedule(effective, maturity, leg)
	require.NoError(t, err)
	require.Len(t, periods, 1)

	p := periods[0]
	assert.True(t, p.StartDate.Equal(effective))
	assert.True(t, p.EndDate.Equal(maturity))
	assert.True(t, p.PayDate.Equal(maturity))
	assert.True(t, p.FixingDate.Equal(effective))
	assert.Equal(t, 365, p.AccrualDays)
}

func TestGenerateSchedule_BackwardStubs(t *testing.T) {
	t.Parallel()

	leg := market.LegConvention{
		LegType:           market.LegFixed,
		DayCount:          market.Dc30360,
		PayFrequency:      market.FreqSemi,
		ScheduleDirection: market.ScheduleBackward,
		Calendar:          calendar.WeekendsOnly,
	}

	periods, err := swap.GenerateSchedule(d("2025-02-10"), d("2026-06-10"), leg)
	require.NoError(t, err)
	require.Len(t, periods, 3)
	assert.True(t, periods[0].EndDate.Equal(d("2025-06-10")), "front stub ends on the first regular date")
	assert.True(t, periods[2].StartDate.Equal(d("2025-12-10")))

	// A stub of five days is merged into the first regular period.
	periods, err = swap.GenerateSchedule(d("2025-06-05"), d("2026-06-10"), leg)
	require.NoError(t, err)
	require.Len(t, periods, 2)
	assert.True(t, periods[0].StartDate.Equal(d("2025-06-05")))
	assert.True(t, periods[0].EndDate.Equal(d("2025-12-10")))
}

func TestGenerateSchedule_ForwardEndOfMonth(t *testing.T) {
	t.Parallel()

	leg := market.LegConvention{
		LegType:        market.LegFixed,
		PayFrequency:   market.FreqQuarterly,
		RollConvention: market.BackwardEOM,
		Calendar:       calendar.WeekendsOnly,
	}
	periods, err := swap.GenerateSchedule(d("2025-01-31"), d("2025-07-31"), leg)
	require.NoError(t, err)
	require.Len(t, periods, 2)
	assert.True(t, periods[0].EndDate.Equal(d("2025-04-30")))
	assert.True(t, periods[1].EndDate.Equal(d("2025-07-31")))
}

func TestGenerateSchedule_Errors(t *testing.T) {
	t.Parallel()

	leg := market.LegConvention{PayFrequency: market.FreqAnnual, Calendar: calendar.WeekendsOnly}
	_, err := swap.GenerateSchedule(d("2025-01-02"), d("2025-01-02"), leg)
	require.Error(t, err)

	leg.PayFrequency = 0
	_, err = swap.GenerateSchedule(d("2025-01-02"), d("2026-01-02"), leg)
	require.Error(t, err)
}

func eurTemplate(t *testing.T, tenor string) swap.FixedFloatSwapTemplate {
	t.Helper()
	conv, err := swap.FixedFloatConvention("EUR-FIXED-1Y-EURIBOR-6M")
	require.NoError(t, err)
	return swap.FixedFloatSwapTemplate{Tenor: market.MustParseTenor(tenor), Convention: conv}
}

func TestFixedFloatSwapTemplate_ToTrade(t *testing.T) {
	t.Parallel()

	tmpl := eurTemplate(t, "5Y")
	assert.Equal(t, "5Y", tmpl.Label())

	trade, err := tmpl.ToTrade(d("2025-03-03"), product.Buy, 1e6, 0.025)
	require.NoError(t, err)

	assert.True(t, trade.TradeDate().Equal(d("2025-03-03")))
	assert.True(t, trade.StartDate().Equal(d("2025-03-05")))
	assert.True(t, trade.EndDate().Equal(d("2030-03-05")))
	assert.Equal(t, product.Buy, trade.BuySell())
	assert.False(t, trade.IsCrossCurrency())

	legs := trade.Legs()
	require.Len(t, legs, 2)
	assert.True(t, legs[0].Pay, "buyer pays fixed")
	assert.Equal(t, 0.025, legs[0].FixedRate)
	assert.Len(t, legs[0].Periods, 5)
	assert.False(t, legs[1].Pay)
	assert.Len(t, legs[1].Periods, 10)

	legs[0].Periods[0].StartDate = time.Time{}
	assert.False(t, trade.Leg(0).Periods[0].StartDate.IsZero(), "legs are copied")

	fwd := tmpl
	fwd.PeriodToStart = market.MustParseTenor("1Y")
	assert.Equal(t, "1Yx5Y", fwd.Label())
	fwdTrade, err := fwd.ToTrade(d("2025-03-03"), product.Sell, 1, 0)
	require.NoError(t, err)
	assert.True(t, fwdTrade.StartDate().Equal(d("2026-03-05")))
	assert.False(t, fwdTrade.Leg(0).Pay)
}

func TestFixedFloatSwapTemplate_Validation(t *testing.T) {
	t.Parallel()

	tmpl := eurTemplate(t, "5Y")
	tmpl.Tenor = market.Tenor{}
	_, err := tmpl.ToTrade(d("2025-03-03"), product.Buy, 1, 0)
	require.ErrorIs(t, err, check.ErrValidation)

	_, err = swap.FixedFloatConvention("EUR-FIXED-1Y-NOPE")
	require.ErrorIs(t, err, check.ErrValidation)
	_, err = swap.XCcyIborIborConvention("EUR-FIXED-1Y-EURIBOR-6M")
	require.ErrorIs(t, err, check.ErrValidation)

	assert.Contains(t, swap.ConventionNames(), "EUR-EURIBOR-3M-USD-TERMSOFR-3M")
}

func TestXCcyIborIborSwapTemplate_ToTrade(t *testing.T) {
	t.Parallel()

	conv, err := swap.XCcyIborIborConvention("EUR-EURIBOR-3M-USD-TERMSOFR-3M")
	require.NoError(t, err)
	tmpl := swap.XCcyIborIborSwapTemplate{Tenor: market.MustParseTenor("2Y"), Convention: conv}

	trade, err := tmpl.ToTrade(d("2025-03-03"), product.Buy, 1e6, 1.08, -0.0015)
	require.NoError(t, err)
	assert.True(t, trade.IsCrossCurrency())

	spreadLeg, flatLeg := trade.Leg(0), trade.Leg(1)
	assert.True(t, spreadLeg.Pay)
	assert.Equal(t, "EUR", spreadLeg.Currency())
	assert.Equal(t, -0.0015, spreadLeg.Spread)
	assert.Equal(t, 1e6, spreadLeg.Notional)
	assert.False(t, flatLeg.Pay)
	assert.Equal(t, "USD", flatLeg.Currency())
	assert.InDelta(t, 1.08e6, flatLeg.Notional, 1e-6)
	assert.Len(t, spreadLeg.Periods, 8)

	_, err = tmpl.ToTrade(d("2025-03-03"), product.Buy, 1e6, 0, 0)
	require.ErrorIs(t, err, check.ErrValidation)

	_, err = swap.PresentValue(trade, d("2025-03-03"), flatCurve{}, flatCurve{})
	require.ErrorIs(t, err, swap.ErrCrossCurrency)
}

type flatCurve struct {
	base time.Time
	rate float64
}

func (c flatCurve) DF(t time.Time) (float64, error) {
	return math.Exp(-c.rate * utils.YearFraction(c.base, t, utils.Act365F)), nil
}

func TestParRate_ZeroesPresentValue(t *testing.T) {
	t.Parallel()

	valDate := d("2025-03-03")
	curve := flatCurve{base: valDate, rate: 0.03}

	tmpl := eurTemplate(t, "10Y")
	probe, err := tmpl.ToTrade(valDate, product.Buy, 1e6, 0)
	require.NoError(t, err)
	par, err := swap.ParRate(probe, valDate, curve, curve)
	require.NoError(t, err)
	assert.InDelta(t, 0.03, par, 0.003)

	trade, err := tmpl.ToTrade(valDate, product.Buy, 1e6, par)
	require.NoError(t, err)
	pv, err := swap.PresentValue(trade, valDate, curve, curve)
	require.NoError(t, err)
	assert.InDelta(t, 0, pv, 1e-6)

	_, err = swap.PresentValue(trade, valDate, nil, curve)
	require.ErrorIs(t, err, swap.ErrNilCurve)
}
