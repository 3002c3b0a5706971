package interpolation

import (
	"fmt"
	"math"
)

// LogLinear interpolates linearly in ln(y), i.e. y = y_i^(1-t) * y_{i+1}^t.
//
// This is the step-forward interpolation used for discount factors: the continuously
// compounded forward rate is constant between knots. Both bracketing values must be positive.
type LogLinear struct{}

func (LogLinear) Name() string { return LogLinearName }

// logLinear evaluates the log-linear segment through knots i and j at weight w of knot j,
// returning the value and the slope d(ln y)/dx.
func logLinear(op string, b DataBundle, i, j int, w float64) (float64, float64, error) {
	yi, yj := b.Value(i), b.Value(j)
	if yi <= 0 || yj <= 0 {
		return 0, 0, fmt.Errorf("%s: values %v and %v must be positive: %w", op, yi, yj, ErrNumericDomain)
	}
	logSlope := (math.Log(yj) - math.Log(yi)) / (b.Key(j) - b.Key(i))
	return math.Pow(yi, 1-w) * math.Pow(yj, w), logSlope, nil
}

func (LogLinear) ValueAt(b DataBundle, x float64) (float64, error) {
	const op = "LogLinear.ValueAt"
	if err := checkInterior(op, b, x); err != nil {
		return 0, err
	}
	if b.Size() == 1 {
		return b.FirstValue(), nil
	}
	i, t := bracket(b, x)
	y, _, err := logLinear(op, b, i, i+1, t)
	return y, err
}

func (LogLinear) FirstDerivativeAt(b DataBundle, x float64) (float64, error) {
	const op = "LogLinear.FirstDerivativeAt"
	if err := checkInterior(op, b, x); err != nil {
		return 0, err
	}
	if b.Size() == 1 {
		return 0, nil
	}
	i, t := bracket(b, x)
	y, logSlope, err := logLinear(op, b, i, i+1, t)
	if err != nil {
		return 0, err
	}
	return y * logSlope, nil
}

func (LogLinear) NodeSensitivitiesAt(b DataBundle, x float64) ([]float64, error) {
	const op = "LogLinear.NodeSensitivitiesAt"
	if err := checkInterior(op, b, x); err != nil {
		return nil, err
	}
	out := make([]float64, b.Size())
	if b.Size() == 1 {
		out[0] = 1
		return out, nil
	}
	i, t := bracket(b, x)
	y, _, err := logLinear(op, b, i, i+1, t)
	if err != nil {
		return nil, err
	}
	out[i] = (1 - t) * y / b.Value(i)
	out[i+1] = t * y / b.Value(i+1)
	return out, nil
}

// LogLinearExtrapolator extends the log-linear segment through the two boundary knots,
// which keeps the boundary forward rate constant beyond the last pillar.
// A single-knot bundle is extended flat.
type LogLinearExtrapolator struct{}

func (LogLinearExtrapolator) Name() string { return LogLinearName }

func (LogLinearExtrapolator) ValueAt(b DataBundle, x float64) (float64, error) {
	const op = "LogLinearExtrapolator.ValueAt"
	s, err := extrapolationSide(op, b, x)
	if err != nil {
		return 0, err
	}
	if b.Size() == 1 {
		return b.FirstValue(), nil
	}
	i, j := boundaryPair(b, s)
	y, _, err := logLinear(op, b, i, j, (x-b.Key(i))/(b.Key(j)-b.Key(i)))
	return y, err
}

func (LogLinearExtrapolator) FirstDerivativeAt(b DataBundle, x float64) (float64, error) {
	const op = "LogLinearExtrapolator.FirstDerivativeAt"
	s, err := extrapolationSide(op, b, x)
	if err != nil {
		return 0, err
	}
	if b.Size() == 1 {
		return 0, nil
	}
	i, j := boundaryPair(b, s)
	y, logSlope, err := logLinear(op, b, i, j, (x-b.Key(i))/(b.Key(j)-b.Key(i)))
	if err != nil {
		return 0, err
	}
	return y * logSlope, nil
}

func (LogLinearExtrapolator) NodeSensitivitiesAt(b DataBundle, x float64) ([]float64, error) {
	const op = "LogLinearExtrapolator.NodeSensitivitiesAt"
	s, err := extrapolationSide(op, b, x)
	if err != nil {
		return nil, err
	}
	out := make([]float64, b.Size())
	if b.Size() == 1 {
		out[0] = 1
		return out, nil
	}
	i, j := boundaryPair(b, s)
	w := (x - b.Key(i)) / (b.Key(j) - b.Key(i))
	y, _, err := logLinear(op, b, i, j, w)
	if err != nil {
		return nil, err
	}
	out[i] = (1 - w) * y / b.Value(i)
	out[j] = w * y / b.Value(j)
	return out, nil
}
