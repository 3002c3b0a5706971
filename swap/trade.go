package swap

import (
	"time"

	"github.com/meenmo/mocurve/product"
	"github.com/meenmo/mocurve/swap/market"
)

// Leg is one side of a swap trade with its generated schedule.
type Leg struct {
	Convention market.LegConvention

	// Pay is true when the holder pays this leg.
	Pay      bool
	Notional float64

	// FixedRate applies to fixed legs, Spread to floating legs. Both are decimals.
	FixedRate float64
	Spread    float64
	Periods   []SchedulePeriod
}

// Currency of the leg.
func (l Leg) Currency() string {
	if l.Convention.Currency != "" {
		return l.Convention.Currency
	}
	return l.Convention.ReferenceRate.Currency()
}

func (l Leg) clone() Leg {
	l.Periods = append([]SchedulePeriod(nil), l.Periods...)
	return l
}

// SwapTrade is an immutable swap produced by a template.
type SwapTrade struct {
	tradeDate time.Time
	startDate time.Time
	endDate   time.Time
	buySell   product.BuySell
	legs      []Leg
}

var _ product.Trade = SwapTrade{}

func (s SwapTrade) TradeDate() time.Time     { return s.tradeDate }
func (s SwapTrade) StartDate() time.Time     { return s.startDate }
func (s SwapTrade) EndDate() time.Time       { return s.endDate }
func (s SwapTrade) BuySell() product.BuySell { return s.buySell }

// Legs returns a copy of the legs.
func (s SwapTrade) Legs() []Leg {
	out := make([]Leg, len(s.legs))
	for i, l := range s.legs {
		out[i] = l.clone()
	}
	return out
}

// Leg returns leg i.
func (s SwapTrade) Leg(i int) Leg { return s.legs[i].clone() }

// IsCrossCurrency reports whether the legs are in different currencies.
func (s SwapTrade) IsCrossCurrency() bool {
	for _, l := range s.legs[1:] {
		if l.Currency() != s.legs[0].Currency() {
			return true
		}
	}
	return false
}
