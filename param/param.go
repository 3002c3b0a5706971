// Package param describes the scalar parameters of curves and surfaces and the
// perturbations applied to them for scenario and bump risk.
package param

import (
	"time"
)

// ParameterMetadata labels a single parameter, e.g. a curve pillar or a surface node.
type ParameterMetadata interface {
	// Label is a short, unique description such as "5Y" or "Expiry=1.00, Strike=-0.10".
	Label() string
}

// DatedParameterMetadata is metadata anchored to a date, typically a curve node pillar.
type DatedParameterMetadata interface {
	ParameterMetadata
	Date() time.Time
}

// LabelMetadata is metadata consisting only of a label.
type LabelMetadata string

func (m LabelMetadata) Label() string { return string(m) }

// ParameterPerturbation maps a parameter to its perturbed value.
//
// It receives the parameter index, its current value and its metadata, and must be a
// pure function: the same inputs always give the same output.
type ParameterPerturbation func(index int, value float64, meta ParameterMetadata) float64

// ParallelShift adds amount to every parameter.
func ParallelShift(amount float64) ParameterPerturbation {
	return func(_ int, value float64, _ ParameterMetadata) float64 {
		return value + amount
	}
}

// RelativeShift scales every parameter by (1 + fraction).
func RelativeShift(fraction float64) ParameterPerturbation {
	return func(_ int, value float64, _ ParameterMetadata) float64 {
		return value * (1 + fraction)
	}
}

// BucketShift adds amount to the parameter at index only.
func BucketShift(index int, amount float64) ParameterPerturbation {
	return func(i int, value float64, _ ParameterMetadata) float64 {
		if i == index {
			return value + amount
		}
		return value
	}
}

// LabelShift adds amount to every parameter whose metadata label is one of labels.
func LabelShift(amount float64, labels ...string) ParameterPerturbation {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return func(_ int, value float64, meta ParameterMetadata) float64 {
		if meta == nil {
			return value
		}
		if _, ok := set[meta.Label()]; ok {
			return value + amount
		}
		return value
	}
}

// Apply runs p over values and returns the perturbed copy.
func Apply(values []float64, meta []ParameterMetadata, p ParameterPerturbation) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		var m ParameterMetadata
		if i < len(meta) {
			m = meta[i]
		}
		out[i] = p(i, v, m)
	}
	return out
}
