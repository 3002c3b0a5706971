package interpolation

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/cespare/xxhash/v2"
	"gonum.org/v1/gonum/floats"

	"github.com/meenmo/mocurve/check"
)

// DataBundle is an immutable, ordered set of curve knots.
//
// Keys are strictly ascending and the bundle holds at least one knot. The slices are
// never handed out directly; accessors copy.
type DataBundle struct {
	keys   []float64
	values []float64
}

// NewDataBundle validates and copies the knots.
func NewDataBundle(keys, values []float64) (DataBundle, error) {
	if len(keys) == 0 {
		return DataBundle{}, check.Errorf("NewDataBundle: at least one knot is required")
	}
	if len(keys) != len(values) {
		return DataBundle{}, check.Errorf("NewDataBundle: %d keys but %d values", len(keys), len(values))
	}
	for i := range keys {
		if err := check.Finite(keys[i], "key"); err != nil {
			return DataBundle{}, err
		}
		if err := check.Finite(values[i], "value"); err != nil {
			return DataBundle{}, err
		}
		if i > 0 && keys[i] <= keys[i-1] {
			return DataBundle{}, check.Errorf("NewDataBundle: keys must be strictly ascending (%v after %v)", keys[i], keys[i-1])
		}
	}
	return DataBundle{
		keys:   append([]float64(nil), keys...),
		values: append([]float64(nil), values...),
	}, nil
}

// NewDataBundleFromMap sorts the map by key. Map keys are unique, so only finiteness is checked.
func NewDataBundleFromMap(knots map[float64]float64) (DataBundle, error) {
	keys := make([]float64, 0, len(knots))
	for k := range knots {
		keys = append(keys, k)
	}
	sort.Float64s(keys)
	values := make([]float64, len(keys))
	for i, k := range keys {
		values[i] = knots[k]
	}
	return NewDataBundle(keys, values)
}

// Size returns the number of knots.
func (b DataBundle) Size() int { return len(b.keys) }

// FirstKey, LastKey, FirstValue and LastValue panic on the zero DataBundle. Bundles built
// by NewDataBundle always hold at least one knot.
func (b DataBundle) FirstKey() float64   { return b.keys[0] }
func (b DataBundle) LastKey() float64    { return b.keys[len(b.keys)-1] }
func (b DataBundle) FirstValue() float64 { return b.values[0] }
func (b DataBundle) LastValue() float64  { return b.values[len(b.values)-1] }

// Key returns the i-th key.
func (b DataBundle) Key(i int) float64 { return b.keys[i] }

// Value returns the i-th value.
func (b DataBundle) Value(i int) float64 { return b.values[i] }

// Keys returns a copy of the keys.
func (b DataBundle) Keys() []float64 { return append([]float64(nil), b.keys...) }

// Values returns a copy of the values.
func (b DataBundle) Values() []float64 { return append([]float64(nil), b.values...) }

// Contains reports whether x lies in [FirstKey, LastKey].
func (b DataBundle) Contains(x float64) bool {
	return x >= b.FirstKey() && x <= b.LastKey()
}

// WithValue returns a new bundle with the i-th value replaced.
func (b DataBundle) WithValue(i int, v float64) (DataBundle, error) {
	if err := check.IndexInRange(i, b.Size(), "knot index"); err != nil {
		return DataBundle{}, err
	}
	if err := check.Finite(v, "value"); err != nil {
		return DataBundle{}, err
	}
	values := b.Values()
	values[i] = v
	return DataBundle{keys: b.keys, values: values}, nil
}

// WithValues returns a new bundle over the same keys.
func (b DataBundle) WithValues(values []float64) (DataBundle, error) {
	return NewDataBundle(b.keys, values)
}

// LowerBoundIndex returns the index i of the interval [key(i), key(i+1)] holding x.
//
// x equal to the last key maps to the last interval; the result is clamped to
// [0, Size()-2] for bundles of two or more knots and is 0 for a single knot.
func (b DataBundle) LowerBoundIndex(x float64) int {
	n := b.Size()
	if n < 2 {
		return 0
	}
	// First index with keys[i] > x.
	i := sort.Search(n, func(i int) bool { return b.keys[i] > x })
	i--
	if i < 0 {
		return 0
	}
	if i > n-2 {
		return n - 2
	}
	return i
}

// Equal compares knots structurally.
func (b DataBundle) Equal(o DataBundle) bool {
	return floats.Equal(b.keys, o.keys) && floats.Equal(b.values, o.values)
}

// Fingerprint is a structural hash of the knots, suitable as a cache key.
func (b DataBundle) Fingerprint() uint64 {
	d := xxhash.New()
	writeFloats(d, b.keys)
	writeFloats(d, b.values)
	return d.Sum64()
}

func writeFloats(d *xxhash.Digest, xs []float64) {
	var buf [8]byte
	for _, x := range xs {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(x))
		_, _ = d.Write(buf[:])
	}
}
