package curve

import (
	"time"

	"github.com/meenmo/mocurve/param"
	"github.com/meenmo/mocurve/swap/market"
)

// TenorNodeMetadata is the pillar of a curve node: the date read off the node's
// instrument, tagged with the template tenor.
type TenorNodeMetadata struct {
	date  time.Time
	tenor market.Tenor
	label string
}

var _ param.DatedParameterMetadata = TenorNodeMetadata{}

// NewTenorNodeMetadata builds metadata; an empty label defaults to the tenor.
func NewTenorNodeMetadata(date time.Time, tenor market.Tenor, label string) TenorNodeMetadata {
	if label == "" {
		label = tenor.String()
	}
	return TenorNodeMetadata{date: date, tenor: tenor, label: label}
}

func (m TenorNodeMetadata) Date() time.Time     { return m.date }
func (m TenorNodeMetadata) Tenor() market.Tenor { return m.tenor }
func (m TenorNodeMetadata) Label() string       { return m.label }
