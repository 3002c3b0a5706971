// Package curve builds the calibration inputs of interest rate curves and the
// interpolated curves they produce.
//
// Nodes map an instrument template and its quote to a calibration target. An external
// solver consumes them and returns knot values, which InterpolatedCurve turns into a
// continuous function with analytic parameter sensitivities.
package curve

import (
	"github.com/meenmo/mocurve/check"
)

// ValueType names the quantity on a curve or surface axis.
type ValueType string

const (
	ValueTypeDiscountFactor   ValueType = "DiscountFactor"
	ValueTypeZeroRate         ValueType = "ZeroRate"
	ValueTypeForwardRate      ValueType = "ForwardRate"
	ValueTypeYearFraction     ValueType = "YearFraction"
	ValueTypeBlackVolatility  ValueType = "BlackVolatility"
	ValueTypeNormalVolatility ValueType = "NormalVolatility"
	ValueTypeLogMoneyness     ValueType = "LogMoneyness"
	ValueTypeStrike           ValueType = "Strike"
)

// ParseValueType validates a value type name.
func ParseValueType(s string) (ValueType, error) {
	switch vt := ValueType(s); vt {
	case ValueTypeDiscountFactor, ValueTypeZeroRate, ValueTypeForwardRate, ValueTypeYearFraction,
		ValueTypeBlackVolatility, ValueTypeNormalVolatility, ValueTypeLogMoneyness, ValueTypeStrike:
		return vt, nil
	default:
		return "", check.Errorf("unknown value type %q", s)
	}
}

// initialGuess seeds a solver: discount factors start at 1, everything else at 0.
func initialGuess(vt ValueType) float64 {
	if vt == ValueTypeDiscountFactor {
		return 1.0
	}
	return 0.0
}
