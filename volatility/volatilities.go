// Package volatility provides parameterized volatility surfaces for option pricing and
// bump-and-reval risk.
package volatility

import (
	"time"

	"github.com/meenmo/mocurve/curve"
	"github.com/meenmo/mocurve/option"
	"github.com/meenmo/mocurve/param"
)

// Volatilities is an immutable surface of N parameters. WithParameter and
// WithPerturbation return new instances and never modify the receiver.
type Volatilities interface {
	Name() string
	ValuationDate() time.Time

	// VolatilityType is ValueTypeBlackVolatility or ValueTypeNormalVolatility.
	VolatilityType() curve.ValueType

	// RelativeTime is the year fraction from the valuation date to date.
	RelativeTime(date time.Time) float64

	// Volatility at expiry (a year fraction) for strike, against forward.
	Volatility(expiry float64, strike option.Strike, forward float64) (float64, error)

	ParameterCount() int
	ParameterValue(i int) (float64, error)
	ParameterMetadata(i int) (param.ParameterMetadata, error)

	// WithParameter replaces parameter i. i outside [0, ParameterCount()) fails with
	// check.ErrValidation.
	WithParameter(i int, v float64) (Volatilities, error)

	// WithPerturbation applies p to every parameter. The result has the same parameter
	// count and metadata.
	WithPerturbation(p param.ParameterPerturbation) (Volatilities, error)

	Fingerprint() uint64
}
