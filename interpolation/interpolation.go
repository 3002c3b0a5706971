// Package interpolation turns an ordered set of curve knots into a queryable function.
//
// Interpolators answer queries inside the knot range, extrapolators outside it. Both
// return the value, the first derivative in x and the sensitivity of the value to every
// knot value, all in closed form. Implementations hold no state, so a single instance
// can be shared by any number of goroutines.
package interpolation

import (
	"errors"
	"fmt"
	"math"

	"github.com/meenmo/mocurve/check"
)

var (
	// ErrDomain is returned when a query key lies outside the domain of the operation.
	ErrDomain = errors.New("key outside domain")
	// ErrNumericDomain is returned when a closed-form formula cannot be evaluated
	// for the given knots, e.g. the log of a non-positive value.
	ErrNumericDomain = errors.New("numeric domain error")
)

// Interpolator evaluates a bundle at keys in [FirstKey, LastKey].
type Interpolator interface {
	Name() string
	ValueAt(b DataBundle, x float64) (float64, error)
	FirstDerivativeAt(b DataBundle, x float64) (float64, error)
	NodeSensitivitiesAt(b DataBundle, x float64) ([]float64, error)
}

// Extrapolator evaluates a bundle at keys strictly below FirstKey or strictly above LastKey.
type Extrapolator interface {
	Name() string
	ValueAt(b DataBundle, x float64) (float64, error)
	FirstDerivativeAt(b DataBundle, x float64) (float64, error)
	NodeSensitivitiesAt(b DataBundle, x float64) ([]float64, error)
}

// function1D is the query surface shared by interpolators and extrapolators.
type function1D interface {
	ValueAt(b DataBundle, x float64) (float64, error)
	FirstDerivativeAt(b DataBundle, x float64) (float64, error)
	NodeSensitivitiesAt(b DataBundle, x float64) ([]float64, error)
}

// Scheme names accepted by InterpolatorByName and ExtrapolatorByName.
const (
	LinearName      = "Linear"
	LogLinearName   = "LogLinear"
	FlatName        = "Flat"
	ExponentialName = "Exponential"
)

// InterpolatorByName returns the interpolator registered under name.
func InterpolatorByName(name string) (Interpolator, error) {
	switch name {
	case LinearName:
		return Linear{}, nil
	case LogLinearName:
		return LogLinear{}, nil
	default:
		return nil, check.Errorf("unknown interpolator %q", name)
	}
}

// ExtrapolatorByName returns the extrapolator registered under name.
func ExtrapolatorByName(name string) (Extrapolator, error) {
	switch name {
	case FlatName:
		return FlatExtrapolator{}, nil
	case LinearName:
		return LinearExtrapolator{}, nil
	case LogLinearName:
		return LogLinearExtrapolator{}, nil
	case ExponentialName:
		return ExponentialExtrapolator{}, nil
	default:
		return nil, check.Errorf("unknown extrapolator %q", name)
	}
}

// checkKey rejects the zero DataBundle and NaN keys, which belong to no domain.
func checkKey(op string, b DataBundle, x float64) error {
	if b.Size() == 0 {
		return check.Errorf("%s: empty data bundle", op)
	}
	if math.IsNaN(x) {
		return fmt.Errorf("%s: invalid key %v: %w", op, x, ErrDomain)
	}
	return nil
}

func checkInterior(op string, b DataBundle, x float64) error {
	if err := checkKey(op, b, x); err != nil {
		return err
	}
	if !b.Contains(x) {
		return fmt.Errorf("%s: value %v outside data range [%v, %v]: %w", op, x, b.FirstKey(), b.LastKey(), ErrDomain)
	}
	return nil
}

// side reports which boundary an extrapolated key belongs to.
type side int

const (
	left side = iota
	right
)

func extrapolationSide(op string, b DataBundle, x float64) (side, error) {
	if err := checkKey(op, b, x); err != nil {
		return 0, err
	}
	switch {
	case x < b.FirstKey():
		return left, nil
	case x > b.LastKey():
		return right, nil
	}
	return 0, fmt.Errorf("%s: value %v within data range [%v, %v]: %w", op, x, b.FirstKey(), b.LastKey(), ErrDomain)
}

// boundary returns the index of the anchor knot for the given side.
func boundary(b DataBundle, s side) int {
	if s == left {
		return 0
	}
	return b.Size() - 1
}

// unitSensitivity returns a zero vector of length n with a 1 at i, scaled by w.
func unitSensitivity(n, i int, w float64) []float64 {
	out := make([]float64, n)
	out[i] = w
	return out
}
