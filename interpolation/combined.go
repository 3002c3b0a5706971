package interpolation

import "github.com/meenmo/mocurve/check"

// CombinedInterpolator joins an interpolator with a left and a right extrapolator so that
// the resulting function is defined for every key.
type CombinedInterpolator struct {
	Interpolator Interpolator
	Left         Extrapolator
	Right        Extrapolator
}

// NewCombinedInterpolator checks that all three policies are set.
func NewCombinedInterpolator(interp Interpolator, leftExtrap, rightExtrap Extrapolator) (CombinedInterpolator, error) {
	if interp == nil {
		return CombinedInterpolator{}, check.Errorf("NewCombinedInterpolator: interpolator is required")
	}
	if leftExtrap == nil || rightExtrap == nil {
		return CombinedInterpolator{}, check.Errorf("NewCombinedInterpolator: both extrapolators are required")
	}
	return CombinedInterpolator{Interpolator: interp, Left: leftExtrap, Right: rightExtrap}, nil
}

// CombinedInterpolatorByName resolves the three policies by name.
func CombinedInterpolatorByName(interp, leftExtrap, rightExtrap string) (CombinedInterpolator, error) {
	i, err := InterpolatorByName(interp)
	if err != nil {
		return CombinedInterpolator{}, err
	}
	l, err := ExtrapolatorByName(leftExtrap)
	if err != nil {
		return CombinedInterpolator{}, err
	}
	r, err := ExtrapolatorByName(rightExtrap)
	if err != nil {
		return CombinedInterpolator{}, err
	}
	return NewCombinedInterpolator(i, l, r)
}

// Names returns the interpolator, left and right extrapolator names.
func (c CombinedInterpolator) Names() (string, string, string) {
	return c.Interpolator.Name(), c.Left.Name(), c.Right.Name()
}

// pick selects the policy responsible for x. Empty bundles and NaN keys go to the
// interpolator, which rejects them.
func (c CombinedInterpolator) pick(b DataBundle, x float64) function1D {
	switch {
	case b.Size() == 0:
		return c.Interpolator
	case x < b.FirstKey():
		return c.Left
	case x > b.LastKey():
		return c.Right
	default:
		return c.Interpolator
	}
}

func (c CombinedInterpolator) ValueAt(b DataBundle, x float64) (float64, error) {
	return c.pick(b, x).ValueAt(b, x)
}

func (c CombinedInterpolator) FirstDerivativeAt(b DataBundle, x float64) (float64, error) {
	return c.pick(b, x).FirstDerivativeAt(b, x)
}

func (c CombinedInterpolator) NodeSensitivitiesAt(b DataBundle, x float64) ([]float64, error) {
	return c.pick(b, x).NodeSensitivitiesAt(b, x)
}
