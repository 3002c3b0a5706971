package interpolation

import (
	"fmt"
	"math"
)

// ExponentialExtrapolator models the curve outside the knot range as exp(m*x), with m
// chosen so that the boundary knot is reproduced exactly:
//
//	left:  exp(m * FirstKey) = FirstValue
//	right: exp(m * LastKey)  = LastValue
//
// The extrapolated value therefore meets the interior function at the boundary; the
// derivative generally does not.
type ExponentialExtrapolator struct{}

func (ExponentialExtrapolator) Name() string { return ExponentialName }

// anchor returns the boundary knot and the exponent m for x.
func (ExponentialExtrapolator) anchor(op string, b DataBundle, x float64) (s side, x0, y0, m float64, err error) {
	s, err = extrapolationSide(op, b, x)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	i := boundary(b, s)
	x0, y0 = b.Key(i), b.Value(i)
	if y0 <= 0 {
		return 0, 0, 0, 0, fmt.Errorf("%s: anchor value %v must be positive: %w", op, y0, ErrNumericDomain)
	}
	if x0 == 0 {
		return 0, 0, 0, 0, fmt.Errorf("%s: anchor key must be non-zero: %w", op, ErrNumericDomain)
	}
	return s, x0, y0, math.Log(y0) / x0, nil
}

// ValueAt returns exp(m*x).
func (e ExponentialExtrapolator) ValueAt(b DataBundle, x float64) (float64, error) {
	_, _, _, m, err := e.anchor("ExponentialExtrapolator.ValueAt", b, x)
	if err != nil {
		return 0, err
	}
	return math.Exp(m * x), nil
}

// FirstDerivativeAt returns m*exp(m*x).
func (e ExponentialExtrapolator) FirstDerivativeAt(b DataBundle, x float64) (float64, error) {
	_, _, _, m, err := e.anchor("ExponentialExtrapolator.FirstDerivativeAt", b, x)
	if err != nil {
		return 0, err
	}
	return m * math.Exp(m*x), nil
}

// NodeSensitivitiesAt differentiates exp(x*ln(y0)/x0) with respect to y0, which gives
// exp(m*x)*x/(x0*y0) at the anchor index and zero elsewhere.
func (e ExponentialExtrapolator) NodeSensitivitiesAt(b DataBundle, x float64) ([]float64, error) {
	s, x0, y0, m, err := e.anchor("ExponentialExtrapolator.NodeSensitivitiesAt", b, x)
	if err != nil {
		return nil, err
	}
	return unitSensitivity(b.Size(), boundary(b, s), math.Exp(m*x)*x/(x0*y0)), nil
}
