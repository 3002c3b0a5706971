package swap

import (
	"errors"
	"fmt"
	"time"

	"github.com/meenmo/mocurve/swap/market"
	"github.com/meenmo/mocurve/utils"
)

var (
	// ErrNilCurve is returned when a required curve argument is nil.
	ErrNilCurve = errors.New("nil curve")
	// ErrCrossCurrency is returned when a single-currency valuation is asked of a
	// cross-currency trade.
	ErrCrossCurrency = errors.New("cross-currency trade")
)

// DiscountCurve provides discount factors by date. Projection curves use the same
// interface and infer simple forward rates from discount factor ratios.
type DiscountCurve interface {
	DF(t time.Time) (float64, error)
}

func forwardRate(proj DiscountCurve, start, end time.Time, dayCount market.DayCount) (float64, error) {
	alpha := utils.YearFraction(start, end, string(dayCount))
	if alpha == 0 {
		return 0, nil
	}
	dfStart, err := proj.DF(start)
	if err != nil {
		return 0, err
	}
	dfEnd, err := proj.DF(end)
	if err != nil {
		return 0, err
	}
	return (dfStart/dfEnd - 1.0) / alpha, nil
}

// LegPV discounts the remaining cashflows of a leg. Paid legs are negative.
func LegPV(leg Leg, valuationDate time.Time, disc, proj DiscountCurve) (float64, error) {
	if disc == nil {
		return 0, ErrNilCurve
	}
	floating := leg.Convention.LegType == market.LegFloating
	if floating && proj == nil {
		return 0, ErrNilCurve
	}

	sign := 1.0
	if leg.Pay {
		sign = -1.0
	}

	total := 0.0
	for _, p := range leg.Periods {
		if p.PayDate.Before(valuationDate) {
			continue
		}
		accrual := utils.YearFraction(p.StartDate, p.EndDate, string(leg.Convention.DayCount))

		rate := leg.FixedRate
		if floating {
			fwd, err := forwardRate(proj, p.StartDate, p.EndDate, leg.Convention.DayCount)
			if err != nil {
				return 0, fmt.Errorf("LegPV: forward %s: %w", p.StartDate.Format(utils.DateLayout), err)
			}
			rate = fwd + leg.Spread
		}
		df, err := disc.DF(p.PayDate)
		if err != nil {
			return 0, fmt.Errorf("LegPV: discount %s: %w", p.PayDate.Format(utils.DateLayout), err)
		}
		total += sign * leg.Notional * accrual * rate * df
	}

	if len(leg.Periods) == 0 {
		return total, nil
	}
	start := leg.Periods[0].StartDate
	end := leg.Periods[len(leg.Periods)-1].EndDate
	if leg.Convention.IncludeInitialPrincipal && !start.Before(valuationDate) {
		df, err := disc.DF(start)
		if err != nil {
			return 0, fmt.Errorf("LegPV: initial principal: %w", err)
		}
		total -= sign * leg.Notional * df
	}
	if leg.Convention.IncludeFinalPrincipal && !end.Before(valuationDate) {
		df, err := disc.DF(end)
		if err != nil {
			return 0, fmt.Errorf("LegPV: final principal: %w", err)
		}
		total += sign * leg.Notional * df
	}
	return total, nil
}

// PresentValue sums the leg values of a single-currency swap.
func PresentValue(trade SwapTrade, valuationDate time.Time, disc, proj DiscountCurve) (float64, error) {
	if trade.IsCrossCurrency() {
		return 0, fmt.Errorf("PresentValue: %w", ErrCrossCurrency)
	}
	total := 0.0
	for i, leg := range trade.legs {
		pv, err := LegPV(leg, valuationDate, disc, proj)
		if err != nil {
			return 0, fmt.Errorf("PresentValue: leg %d: %w", i, err)
		}
		total += pv
	}
	return total, nil
}

// ParRate returns the fixed rate that sets the value of a fixed/float swap to zero.
func ParRate(trade SwapTrade, valuationDate time.Time, disc, proj DiscountCurve) (float64, error) {
	if len(trade.legs) != 2 || trade.legs[0].Convention.LegType != market.LegFixed {
		return 0, fmt.Errorf("ParRate: trade is not fixed/float")
	}
	fixed := trade.legs[0]
	fixed.Pay = false
	fixed.FixedRate = 1
	annuity, err := LegPV(fixed, valuationDate, disc, nil)
	if err != nil {
		return 0, fmt.Errorf("ParRate: annuity: %w", err)
	}
	if annuity == 0 {
		return 0, fmt.Errorf("ParRate: annuity is zero")
	}

	float := trade.legs[1]
	float.Pay = false
	floatPV, err := LegPV(float, valuationDate, disc, proj)
	if err != nil {
		return 0, fmt.Errorf("ParRate: floating leg: %w", err)
	}
	return floatPV / annuity, nil
}
