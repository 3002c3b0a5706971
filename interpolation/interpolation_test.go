package interpolation_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/meenmo/mocurve/check"
	"github.com/meenmo/mocurve/interpolation"
)

func discountKnots(t *testing.T) interpolation.DataBundle {
	t.Helper()
	b, err := interpolation.NewDataBundle(
		[]float64{0.25, 1, 2, 5, 10},
		[]float64{0.995, 0.98, 0.955, 0.88, 0.76},
	)
	require.NoError(t, err)
	return b
}

func TestNewDataBundle_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		keys   []float64
		values []float64
	}{
		{name: "empty", keys: nil, values: nil},
		{name: "length mismatch", keys: []float64{1, 2}, values: []float64{1}},
		{name: "not ascending", keys: []float64{1, 1}, values: []float64{1, 2}},
		{name: "descending", keys: []float64{2, 1}, values: []float64{1, 2}},
		{name: "nan value", keys: []float64{1}, values: []float64{math.NaN()}},
		{name: "inf key", keys: []float64{math.Inf(1)}, values: []float64{1}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := interpolation.NewDataBundle(tc.keys, tc.values)
			require.ErrorIs(t, err, check.ErrValidation)
		})
	}
}

func TestDataBundle_CopyOnWrite(t *testing.T) {
	t.Parallel()

	keys := []float64{1, 2, 3}
	values := []float64{10, 20, 30}
	b, err := interpolation.NewDataBundle(keys, values)
	require.NoError(t, err)

	// Caller-owned slices must not alias the bundle.
	keys[0] = -1
	values[0] = -1
	assert.Equal(t, 1.0, b.FirstKey())
	assert.Equal(t, 10.0, b.FirstValue())

	out := b.Values()
	out[1] = 99
	assert.Equal(t, 20.0, b.Value(1))

	b2, err := b.WithValue(1, 25)
	require.NoError(t, err)
	assert.Equal(t, 20.0, b.Value(1))
	assert.Equal(t, 25.0, b2.Value(1))
	assert.False(t, b.Equal(b2))
	assert.NotEqual(t, b.Fingerprint(), b2.Fingerprint())

	b3, err := b2.WithValue(1, 20)
	require.NoError(t, err)
	assert.True(t, b.Equal(b3))
	assert.Equal(t, b.Fingerprint(), b3.Fingerprint())

	_, err = b.WithValue(3, 1)
	require.ErrorIs(t, err, check.ErrValidation)
}

func TestDataBundle_FromMap(t *testing.T) {
	t.Parallel()

	b, err := interpolation.NewDataBundleFromMap(map[float64]float64{5: 0.9, 1: 0.99, 2: 0.97})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 5}, b.Keys())
	assert.Equal(t, []float64{0.99, 0.97, 0.9}, b.Values())
}

func TestDataBundle_LowerBoundIndex(t *testing.T) {
	t.Parallel()

	b := discountKnots(t)
	cases := map[float64]int{0.25: 0, 0.5: 0, 1: 1, 1.5: 1, 5: 3, 9.9: 3, 10: 3}
	for x, want := range cases {
		assert.Equal(t, want, b.LowerBoundIndex(x), "x=%v", x)
	}
}

func TestInterpolators_RejectOutsideRange(t *testing.T) {
	t.Parallel()

	b := discountKnots(t)
	for _, interp := range []interpolation.Interpolator{interpolation.Linear{}, interpolation.LogLinear{}} {
		for _, x := range []float64{0.2, 10.0001, -5} {
			_, err := interp.ValueAt(b, x)
			require.ErrorIs(t, err, interpolation.ErrDomain, "%s x=%v", interp.Name(), x)
			assert.Contains(t, err.Error(), "outside data range")
			_, err = interp.FirstDerivativeAt(b, x)
			require.ErrorIs(t, err, interpolation.ErrDomain)
			_, err = interp.NodeSensitivitiesAt(b, x)
			require.ErrorIs(t, err, interpolation.ErrDomain)
		}
	}
}

func TestExtrapolators_RejectInsideRange(t *testing.T) {
	t.Parallel()

	b := discountKnots(t)
	extrapolators := []interpolation.Extrapolator{
		interpolation.FlatExtrapolator{},
		interpolation.LinearExtrapolator{},
		interpolation.LogLinearExtrapolator{},
		interpolation.ExponentialExtrapolator{},
	}
	for _, e := range extrapolators {
		for _, x := range []float64{0.25, 3, 10} {
			_, err := e.ValueAt(b, x)
			require.ErrorIs(t, err, interpolation.ErrDomain, "%s x=%v", e.Name(), x)
		}
	}
}

func TestPolicies_RejectNaNKeyAndEmptyBundle(t *testing.T) {
	t.Parallel()

	b := discountKnots(t)
	combined, err := interpolation.CombinedInterpolatorByName(interpolation.LinearName, interpolation.FlatName, interpolation.ExponentialName)
	require.NoError(t, err)
	policies := []interface {
		Name() string
		ValueAt(interpolation.DataBundle, float64) (float64, error)
		NodeSensitivitiesAt(interpolation.DataBundle, float64) ([]float64, error)
	}{
		interpolation.Linear{},
		interpolation.LogLinear{},
		interpolation.FlatExtrapolator{},
		interpolation.LinearExtrapolator{},
		interpolation.LogLinearExtrapolator{},
		interpolation.ExponentialExtrapolator{},
	}
	for _, p := range policies {
		_, err := p.ValueAt(b, math.NaN())
		require.ErrorIs(t, err, interpolation.ErrDomain, p.Name())
		assert.Contains(t, err.Error(), "invalid key")
		_, err = p.NodeSensitivitiesAt(b, math.NaN())
		require.ErrorIs(t, err, interpolation.ErrDomain, p.Name())

		_, err = p.ValueAt(interpolation.DataBundle{}, 1)
		require.ErrorIs(t, err, check.ErrValidation, p.Name())
	}

	_, err = combined.ValueAt(b, math.NaN())
	assert.ErrorIs(t, err, interpolation.ErrDomain)
	_, err = combined.ValueAt(interpolation.DataBundle{}, 1)
	assert.ErrorIs(t, err, check.ErrValidation)
}

func TestInterpolators_ReproduceKnots(t *testing.T) {
	t.Parallel()

	b := discountKnots(t)
	for _, interp := range []interpolation.Interpolator{interpolation.Linear{}, interpolation.LogLinear{}} {
		for i := 0; i < b.Size(); i++ {
			v, err := interp.ValueAt(b, b.Key(i))
			require.NoError(t, err)
			assert.InDelta(t, b.Value(i), v, 1e-14, "%s knot %d", interp.Name(), i)
		}
	}
}

func TestLogLinear_ConstantForwardBetweenKnots(t *testing.T) {
	t.Parallel()

	b := discountKnots(t)
	v, err := interpolation.LogLinear{}.ValueAt(b, 3.5)
	require.NoError(t, err)

	fwd := math.Log(0.955/0.88) / 3
	assert.InDelta(t, 0.955*math.Exp(-fwd*1.5), v, 1e-14)
}

// checkAnalytics compares derivative and node sensitivities with central differences.
func checkAnalytics(t *testing.T, name string, f interface {
	ValueAt(interpolation.DataBundle, float64) (float64, error)
	FirstDerivativeAt(interpolation.DataBundle, float64) (float64, error)
	NodeSensitivitiesAt(interpolation.DataBundle, float64) ([]float64, error)
}, b interpolation.DataBundle, x float64) {
	t.Helper()

	value := func(bb interpolation.DataBundle, v float64) float64 {
		y, err := f.ValueAt(bb, v)
		require.NoError(t, err)
		return y
	}

	d, err := f.FirstDerivativeAt(b, x)
	require.NoError(t, err)
	numeric := fd.Derivative(func(v float64) float64 { return value(b, v) }, x, &fd.Settings{Formula: fd.Central, Step: 1e-7})
	assert.InDelta(t, numeric, d, 1e-6*math.Max(1, math.Abs(d)), "%s derivative x=%v", name, x)

	sens, err := f.NodeSensitivitiesAt(b, x)
	require.NoError(t, err)
	require.Len(t, sens, b.Size())
	const eps = 1e-7
	for i := 0; i < b.Size(); i++ {
		up, err := b.WithValue(i, b.Value(i)+eps)
		require.NoError(t, err)
		dn, err := b.WithValue(i, b.Value(i)-eps)
		require.NoError(t, err)
		bump := (value(up, x) - value(dn, x)) / (2 * eps)
		assert.InDelta(t, bump, sens[i], 1e-6*math.Max(1, math.Abs(bump)), "%s sensitivity %d x=%v", name, i, x)
	}
}

func TestInterpolators_AnalyticsMatchBumps(t *testing.T) {
	t.Parallel()

	b := discountKnots(t)
	for _, interp := range []interpolation.Interpolator{interpolation.Linear{}, interpolation.LogLinear{}} {
		for _, x := range []float64{0.3, 0.75, 1.6, 4.2, 7.5, 9.99} {
			checkAnalytics(t, interp.Name(), interp, b, x)
		}
	}
}

func TestExtrapolators_AnalyticsMatchBumps(t *testing.T) {
	t.Parallel()

	b := discountKnots(t)
	extrapolators := []interpolation.Extrapolator{
		interpolation.FlatExtrapolator{},
		interpolation.LinearExtrapolator{},
		interpolation.LogLinearExtrapolator{},
		interpolation.ExponentialExtrapolator{},
	}
	for _, e := range extrapolators {
		for _, x := range []float64{0.1, 0.2, 12, 30} {
			checkAnalytics(t, e.Name(), e, b, x)
		}
	}
}

func TestSingleKnotBundle(t *testing.T) {
	t.Parallel()

	b, err := interpolation.NewDataBundle([]float64{2}, []float64{0.97})
	require.NoError(t, err)

	v, err := interpolation.Linear{}.ValueAt(b, 2)
	require.NoError(t, err)
	assert.Equal(t, 0.97, v)

	sens, err := interpolation.LogLinear{}.NodeSensitivitiesAt(b, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, sens)

	v, err = interpolation.LinearExtrapolator{}.ValueAt(b, 5)
	require.NoError(t, err)
	assert.Equal(t, 0.97, v)

	v, err = interpolation.ExponentialExtrapolator{}.ValueAt(b, 4)
	require.NoError(t, err)
	assert.InDelta(t, 0.97*0.97, v, 1e-14)
}

func TestCombinedInterpolator_DispatchAndContinuity(t *testing.T) {
	t.Parallel()

	b := discountKnots(t)
	c, err := interpolation.CombinedInterpolatorByName(
		interpolation.LogLinearName,
		interpolation.FlatName,
		interpolation.ExponentialName,
	)
	require.NoError(t, err)

	interp, left, right := c.Names()
	assert.Equal(t, "LogLinear", interp)
	assert.Equal(t, "Flat", left)
	assert.Equal(t, "Exponential", right)

	v, err := c.ValueAt(b, 0.1)
	require.NoError(t, err)
	assert.Equal(t, 0.995, v)

	inside, err := c.ValueAt(b, b.LastKey())
	require.NoError(t, err)
	outside, err := c.ValueAt(b, b.LastKey()+1e-10)
	require.NoError(t, err)
	assert.InDelta(t, inside, outside, 1e-10)

	sens, err := c.NodeSensitivitiesAt(b, 15)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sens[0])
	assert.NotZero(t, sens[4])
}

func TestFactories_UnknownNames(t *testing.T) {
	t.Parallel()

	_, err := interpolation.InterpolatorByName("CubicSpline")
	require.ErrorIs(t, err, check.ErrValidation)
	_, err = interpolation.ExtrapolatorByName("Quadratic")
	require.ErrorIs(t, err, check.ErrValidation)
	_, err = interpolation.CombinedInterpolatorByName("Linear", "Flat", "nope")
	require.ErrorIs(t, err, check.ErrValidation)
	_, err = interpolation.NewCombinedInterpolator(nil, interpolation.FlatExtrapolator{}, interpolation.FlatExtrapolator{})
	require.ErrorIs(t, err, check.ErrValidation)
}
