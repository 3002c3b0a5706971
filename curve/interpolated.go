package curve

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/meenmo/mocurve/check"
	"github.com/meenmo/mocurve/interpolation"
	"github.com/meenmo/mocurve/param"
)

// InterpolatedCurve is a named curve defined by knots and a combined interpolator.
// Its parameters are the knot values.
type InterpolatedCurve struct {
	name      string
	valueType ValueType
	bundle    interpolation.DataBundle
	interp    interpolation.CombinedInterpolator
	meta      []param.ParameterMetadata
}

// NewInterpolatedCurve builds a curve. meta may be nil, in which case each parameter is
// labelled by its x value.
func NewInterpolatedCurve(name string, vt ValueType, xs, ys []float64, meta []param.ParameterMetadata, interp interpolation.CombinedInterpolator) (InterpolatedCurve, error) {
	if err := check.NotEmpty(name, "NewInterpolatedCurve: name"); err != nil {
		return InterpolatedCurve{}, err
	}
	if interp.Interpolator == nil || interp.Left == nil || interp.Right == nil {
		return InterpolatedCurve{}, check.Errorf("NewInterpolatedCurve: %s: interpolator is required", name)
	}
	b, err := interpolation.NewDataBundle(xs, ys)
	if err != nil {
		return InterpolatedCurve{}, fmt.Errorf("NewInterpolatedCurve: %s: %w", name, err)
	}
	if meta == nil {
		meta = make([]param.ParameterMetadata, len(xs))
		for i, x := range b.Keys() {
			meta[i] = param.LabelMetadata(strconv.FormatFloat(x, 'f', -1, 64))
		}
	} else {
		if len(meta) != len(xs) {
			return InterpolatedCurve{}, check.Errorf("NewInterpolatedCurve: %s: %d metadata for %d parameters", name, len(meta), len(xs))
		}
		meta = append([]param.ParameterMetadata(nil), meta...)
	}
	return InterpolatedCurve{name: name, valueType: vt, bundle: b, interp: interp, meta: meta}, nil
}

func (c InterpolatedCurve) Name() string                                     { return c.name }
func (c InterpolatedCurve) ValueType() ValueType                             { return c.valueType }
func (c InterpolatedCurve) Bundle() interpolation.DataBundle                 { return c.bundle }
func (c InterpolatedCurve) Interpolator() interpolation.CombinedInterpolator { return c.interp }

// YValue evaluates the curve at x.
func (c InterpolatedCurve) YValue(x float64) (float64, error) {
	return c.interp.ValueAt(c.bundle, x)
}

// FirstDerivative is dy/dx at x.
func (c InterpolatedCurve) FirstDerivative(x float64) (float64, error) {
	return c.interp.FirstDerivativeAt(c.bundle, x)
}

// YValueParameterSensitivity is dy/dp_i at x for every parameter.
func (c InterpolatedCurve) YValueParameterSensitivity(x float64) ([]float64, error) {
	return c.interp.NodeSensitivitiesAt(c.bundle, x)
}

func (c InterpolatedCurve) ParameterCount() int { return c.bundle.Size() }

func (c InterpolatedCurve) ParameterValue(i int) (float64, error) {
	if err := check.IndexInRange(i, c.bundle.Size(), "InterpolatedCurve.ParameterValue: index"); err != nil {
		return 0, err
	}
	return c.bundle.Value(i), nil
}

func (c InterpolatedCurve) ParameterMetadata(i int) (param.ParameterMetadata, error) {
	if err := check.IndexInRange(i, len(c.meta), "InterpolatedCurve.ParameterMetadata: index"); err != nil {
		return nil, err
	}
	return c.meta[i], nil
}

// WithParameter returns a copy with parameter i set to v.
func (c InterpolatedCurve) WithParameter(i int, v float64) (InterpolatedCurve, error) {
	b, err := c.bundle.WithValue(i, v)
	if err != nil {
		return InterpolatedCurve{}, fmt.Errorf("InterpolatedCurve.WithParameter: %s: %w", c.name, err)
	}
	c.bundle = b
	return c, nil
}

// WithPerturbation returns a copy with p applied to every parameter.
func (c InterpolatedCurve) WithPerturbation(p param.ParameterPerturbation) (InterpolatedCurve, error) {
	b, err := c.bundle.WithValues(param.Apply(c.bundle.Values(), c.meta, p))
	if err != nil {
		return InterpolatedCurve{}, fmt.Errorf("InterpolatedCurve.WithPerturbation: %s: %w", c.name, err)
	}
	c.bundle = b
	return c, nil
}

// Equal reports structural equality.
func (c InterpolatedCurve) Equal(o InterpolatedCurve) bool {
	if c.name != o.name || c.valueType != o.valueType || len(c.meta) != len(o.meta) {
		return false
	}
	ci, cl, cr := c.interp.Names()
	oi, ol, or := o.interp.Names()
	if ci != oi || cl != ol || cr != or {
		return false
	}
	for i := range c.meta {
		if c.meta[i].Label() != o.meta[i].Label() {
			return false
		}
	}
	return c.bundle.Equal(o.bundle)
}

// Fingerprint is a structural hash suitable for cache keys.
func (c InterpolatedCurve) Fingerprint() uint64 {
	d := xxhash.New()
	interp, left, right := c.interp.Names()
	for _, s := range []string{c.name, string(c.valueType), interp, left, right} {
		_, _ = d.WriteString(s)
		_, _ = d.Write([]byte{0})
	}
	_, _ = d.Write(binary.LittleEndian.AppendUint64(nil, c.bundle.Fingerprint()))
	return d.Sum64()
}
