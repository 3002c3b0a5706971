// Package marketdata supplies observed quotes to curve nodes and volatility surfaces.
package marketdata

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// ErrMissing is returned when a requested observable has no value.
var ErrMissing = errors.New("market data not found")

// ObservableID identifies a single observable quote, e.g. "EUR-IRS-6M-5Y" or "EUR/USD".
type ObservableID string

func (id ObservableID) String() string { return string(id) }

// SortIDs sorts ids in place and removes duplicates.
func SortIDs(ids []ObservableID) []ObservableID {
	slices.Sort(ids)
	return slices.Compact(ids)
}

// Values supplies quotes by identifier.
type Values interface {
	Value(id ObservableID) (float64, error)
}

// MapValues is an immutable map-backed Values.
type MapValues struct {
	values map[ObservableID]float64
}

// NewMapValues copies m into a new MapValues.
func NewMapValues(m map[ObservableID]float64) MapValues {
	return MapValues{values: maps.Clone(m)}
}

// Value returns the quote for id or ErrMissing.
func (m MapValues) Value(id ObservableID) (float64, error) {
	v, ok := m.values[id]
	if !ok {
		return 0, fmt.Errorf("MapValues.Value: %s: %w", id, ErrMissing)
	}
	return v, nil
}

// IDs returns the identifiers held, sorted.
func (m MapValues) IDs() []ObservableID {
	return slices.Sorted(maps.Keys(m.values))
}

// Len returns the number of quotes.
func (m MapValues) Len() int { return len(m.values) }

// With returns a copy with id set to v.
func (m MapValues) With(id ObservableID, v float64) MapValues {
	out := maps.Clone(m.values)
	if out == nil {
		out = make(map[ObservableID]float64, 1)
	}
	out[id] = v
	return MapValues{values: out}
}

// ValuesFunc adapts a function to Values.
type ValuesFunc func(id ObservableID) (float64, error)

func (f ValuesFunc) Value(id ObservableID) (float64, error) { return f(id) }
