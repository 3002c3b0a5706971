// Package pricer values European options on a forward against a volatility surface.
package pricer

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/meenmo/mocurve/check"
	"github.com/meenmo/mocurve/curve"
	"github.com/meenmo/mocurve/option"
	"github.com/meenmo/mocurve/volatility"
)

// BlackPrice is the undiscounted Black-76 price of a call or put on forward.
// With no time value left it returns the intrinsic value.
func BlackPrice(forward, strike, expiry, vol float64, isCall bool) float64 {
	if expiry <= 0 || vol <= 0 {
		return intrinsic(forward, strike, isCall)
	}
	sd := vol * math.Sqrt(expiry)
	d1 := (math.Log(forward/strike) + 0.5*sd*sd) / sd
	d2 := d1 - sd
	if isCall {
		return forward*distuv.UnitNormal.CDF(d1) - strike*distuv.UnitNormal.CDF(d2)
	}
	return strike*distuv.UnitNormal.CDF(-d2) - forward*distuv.UnitNormal.CDF(-d1)
}

// BlackVega is dBlackPrice/dvol, identical for calls and puts.
func BlackVega(forward, strike, expiry, vol float64) float64 {
	if expiry <= 0 || vol <= 0 {
		return 0
	}
	sd := vol * math.Sqrt(expiry)
	d1 := (math.Log(forward/strike) + 0.5*sd*sd) / sd
	return forward * distuv.UnitNormal.Prob(d1) * math.Sqrt(expiry)
}

// NormalPrice is the undiscounted Bachelier price.
func NormalPrice(forward, strike, expiry, vol float64, isCall bool) float64 {
	if expiry <= 0 || vol <= 0 {
		return intrinsic(forward, strike, isCall)
	}
	sd := vol * math.Sqrt(expiry)
	d := (forward - strike) / sd
	if !isCall {
		d = -d
	}
	return sd * (d*distuv.UnitNormal.CDF(d) + distuv.UnitNormal.Prob(d))
}

// NormalVega is dNormalPrice/dvol.
func NormalVega(forward, strike, expiry, vol float64) float64 {
	if expiry <= 0 || vol <= 0 {
		return 0
	}
	d := (forward - strike) / (vol * math.Sqrt(expiry))
	return math.Sqrt(expiry) * distuv.UnitNormal.Prob(d)
}

func intrinsic(forward, strike float64, isCall bool) float64 {
	if isCall {
		return math.Max(0, forward-strike)
	}
	return math.Max(0, strike-forward)
}

// BlackOption is a European option on a forward, paying at expiry.
type BlackOption struct {
	Expiry   time.Time
	Strike   float64
	Forward  float64
	IsCall   bool
	Notional float64
}

// Validate checks the option terms.
func (o BlackOption) Validate() error {
	if o.Expiry.IsZero() {
		return check.Errorf("BlackOption: expiry is required")
	}
	if err := check.Positive(o.Forward, "BlackOption: forward"); err != nil {
		return err
	}
	if err := check.NotNegative(o.Strike, "BlackOption: strike"); err != nil {
		return err
	}
	return check.NotZero(o.Notional, "BlackOption: notional")
}

func (o BlackOption) volatility(vols volatility.Volatilities) (float64, float64, error) {
	if err := o.Validate(); err != nil {
		return 0, 0, err
	}
	t := vols.RelativeTime(o.Expiry)
	vol, err := vols.Volatility(t, option.SimpleStrike(o.Strike), o.Forward)
	if err != nil {
		return 0, 0, err
	}
	return t, vol, nil
}

// PresentValue prices the option with the volatility read from vols, discounted by
// discountFactor. The model follows the surface's volatility type.
func (o BlackOption) PresentValue(vols volatility.Volatilities, discountFactor float64) (float64, error) {
	t, vol, err := o.volatility(vols)
	if err != nil {
		return 0, fmt.Errorf("BlackOption.PresentValue: %w", err)
	}
	switch vols.VolatilityType() {
	case curve.ValueTypeBlackVolatility:
		return o.Notional * discountFactor * BlackPrice(o.Forward, o.Strike, t, vol, o.IsCall), nil
	case curve.ValueTypeNormalVolatility:
		return o.Notional * discountFactor * NormalPrice(o.Forward, o.Strike, t, vol, o.IsCall), nil
	default:
		return 0, check.Errorf("BlackOption.PresentValue: unsupported volatility type %s", vols.VolatilityType())
	}
}

// Vega is dPresentValue/dvol at the volatility read from vols.
func (o BlackOption) Vega(vols volatility.Volatilities, discountFactor float64) (float64, error) {
	t, vol, err := o.volatility(vols)
	if err != nil {
		return 0, fmt.Errorf("BlackOption.Vega: %w", err)
	}
	switch vols.VolatilityType() {
	case curve.ValueTypeBlackVolatility:
		return o.Notional * discountFactor * BlackVega(o.Forward, o.Strike, t, vol), nil
	case curve.ValueTypeNormalVolatility:
		return o.Notional * discountFactor * NormalVega(o.Forward, o.Strike, t, vol), nil
	default:
		return 0, check.Errorf("BlackOption.Vega: unsupported volatility type %s", vols.VolatilityType())
	}
}

// VegaBuckets splits Vega over the grid parameters of vols.
func (o BlackOption) VegaBuckets(vols volatility.GridVolatilities, discountFactor float64) ([]float64, error) {
	vega, err := o.Vega(vols, discountFactor)
	if err != nil {
		return nil, err
	}
	sens, err := vols.ParameterSensitivities(vols.RelativeTime(o.Expiry), option.SimpleStrike(o.Strike), o.Forward)
	if err != nil {
		return nil, fmt.Errorf("BlackOption.VegaBuckets: %w", err)
	}
	for i := range sens {
		sens[i] *= vega
	}
	return sens, nil
}
