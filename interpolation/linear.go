package interpolation

// Linear interpolates linearly between adjacent knots.
type Linear struct{}

func (Linear) Name() string { return LinearName }

// bracket returns the interval index and the weight t of the upper knot.
func bracket(b DataBundle, x float64) (int, float64) {
	i := b.LowerBoundIndex(x)
	if b.Size() < 2 {
		return 0, 0
	}
	return i, (x - b.Key(i)) / (b.Key(i+1) - b.Key(i))
}

func (Linear) ValueAt(b DataBundle, x float64) (float64, error) {
	if err := checkInterior("Linear.ValueAt", b, x); err != nil {
		return 0, err
	}
	if b.Size() == 1 {
		return b.FirstValue(), nil
	}
	i, t := bracket(b, x)
	return b.Value(i) + t*(b.Value(i+1)-b.Value(i)), nil
}

func (Linear) FirstDerivativeAt(b DataBundle, x float64) (float64, error) {
	if err := checkInterior("Linear.FirstDerivativeAt", b, x); err != nil {
		return 0, err
	}
	if b.Size() == 1 {
		return 0, nil
	}
	i, _ := bracket(b, x)
	return (b.Value(i+1) - b.Value(i)) / (b.Key(i+1) - b.Key(i)), nil
}

func (Linear) NodeSensitivitiesAt(b DataBundle, x float64) ([]float64, error) {
	if err := checkInterior("Linear.NodeSensitivitiesAt", b, x); err != nil {
		return nil, err
	}
	out := make([]float64, b.Size())
	if b.Size() == 1 {
		out[0] = 1
		return out, nil
	}
	i, t := bracket(b, x)
	out[i] = 1 - t
	out[i+1] = t
	return out, nil
}

// LinearExtrapolator extends the secant through the two boundary knots.
// A single-knot bundle is extended flat.
type LinearExtrapolator struct{}

func (LinearExtrapolator) Name() string { return LinearName }

// boundaryPair returns the boundary knot index i and its neighbour j.
func boundaryPair(b DataBundle, s side) (i, j int) {
	if s == left {
		return 0, 1
	}
	return b.Size() - 1, b.Size() - 2
}

func (LinearExtrapolator) ValueAt(b DataBundle, x float64) (float64, error) {
	s, err := extrapolationSide("LinearExtrapolator.ValueAt", b, x)
	if err != nil {
		return 0, err
	}
	if b.Size() == 1 {
		return b.FirstValue(), nil
	}
	i, j := boundaryPair(b, s)
	slope := (b.Value(j) - b.Value(i)) / (b.Key(j) - b.Key(i))
	return b.Value(i) + slope*(x-b.Key(i)), nil
}

func (LinearExtrapolator) FirstDerivativeAt(b DataBundle, x float64) (float64, error) {
	s, err := extrapolationSide("LinearExtrapolator.FirstDerivativeAt", b, x)
	if err != nil {
		return 0, err
	}
	if b.Size() == 1 {
		return 0, nil
	}
	i, j := boundaryPair(b, s)
	return (b.Value(j) - b.Value(i)) / (b.Key(j) - b.Key(i)), nil
}

func (LinearExtrapolator) NodeSensitivitiesAt(b DataBundle, x float64) ([]float64, error) {
	s, err := extrapolationSide("LinearExtrapolator.NodeSensitivitiesAt", b, x)
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
	out[i] = 1 - w
	out[j] = w
	return out, nil
}

// FlatExtrapolator holds the boundary value constant.
type FlatExtrapolator struct{}

func (FlatExtrapolator) Name() string { return FlatName }

func (FlatExtrapolator) ValueAt(b DataBundle, x float64) (float64, error) {
	s, err := extrapolationSide("FlatExtrapolator.ValueAt", b, x)
	if err != nil {
		return 0, err
	}
	return b.Value(boundary(b, s)), nil
}

func (FlatExtrapolator) FirstDerivativeAt(b DataBundle, x float64) (float64, error) {
	if _, err := extrapolationSide("FlatExtrapolator.FirstDerivativeAt", b, x); err != nil {
		return 0, err
	}
	return 0, nil
}

func (FlatExtrapolator) NodeSensitivitiesAt(b DataBundle, x float64) ([]float64, error) {
	s, err := extrapolationSide("FlatExtrapolator.NodeSensitivitiesAt", b, x)
	if err != nil {
		return nil, err
	}
	return unitSensitivity(b.Size(), boundary(b, s), 1), nil
}
