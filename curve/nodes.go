package curve

import (
	"fmt"
	"time"

	"github.com/meenmo/mocurve/check"
	"github.com/meenmo/mocurve/marketdata"
	"github.com/meenmo/mocurve/product"
)

// Nodes is the ordered node list of one curve, as consumed by a calibration solver.
type Nodes []Node

// Validate checks that labels are unique.
func (ns Nodes) Validate() error {
	if len(ns) == 0 {
		return check.Errorf("Nodes: at least one node is required")
	}
	seen := make(map[string]struct{}, len(ns))
	for _, n := range ns {
		if _, dup := seen[n.Label()]; dup {
			return check.Errorf("Nodes: duplicate label %q", n.Label())
		}
		seen[n.Label()] = struct{}{}
	}
	return nil
}

// Requirements is the sorted union of the node requirements.
func (ns Nodes) Requirements() []marketdata.ObservableID {
	var ids []marketdata.ObservableID
	for _, n := range ns {
		ids = append(ids, n.Requirements()...)
	}
	return marketdata.SortIDs(ids)
}

// Metadata returns the pillar of every node in order.
func (ns Nodes) Metadata(valuationDate time.Time) ([]TenorNodeMetadata, error) {
	out := make([]TenorNodeMetadata, len(ns))
	for i, n := range ns {
		m, err := n.Metadata(valuationDate)
		if err != nil {
			return nil, fmt.Errorf("Nodes.Metadata: %w", err)
		}
		out[i] = m
	}
	return out, nil
}

// Trades returns the calibration instrument of every node in order.
func (ns Nodes) Trades(valuationDate time.Time, md marketdata.Values) ([]product.Trade, error) {
	out := make([]product.Trade, len(ns))
	for i, n := range ns {
		t, err := n.Trade(valuationDate, md)
		if err != nil {
			return nil, fmt.Errorf("Nodes.Trades: %w", err)
		}
		out[i] = t
	}
	return out, nil
}

// InitialGuesses returns the solver seed of every node in order.
func (ns Nodes) InitialGuesses(valuationDate time.Time, md marketdata.Values, vt ValueType) []float64 {
	out := make([]float64, len(ns))
	for i, n := range ns {
		out[i] = n.InitialGuess(valuationDate, md, vt)
	}
	return out
}
