package curve

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/meenmo/mocurve/check"
	"github.com/meenmo/mocurve/param"
	"github.com/meenmo/mocurve/swap"
	"github.com/meenmo/mocurve/utils"
)

// ZeroRateDiscountCurve derives discount factors from an interpolated curve of
// continuously compounded zero rates against year fraction.
type ZeroRateDiscountCurve struct {
	valuationDate time.Time
	dayCount      string
	curve         InterpolatedCurve
}

var _ swap.DiscountCurve = ZeroRateDiscountCurve{}

// NewZeroRateDiscountCurve wraps c, whose value type must be ValueTypeZeroRate.
func NewZeroRateDiscountCurve(valuationDate time.Time, dayCount string, c InterpolatedCurve) (ZeroRateDiscountCurve, error) {
	if c.ValueType() != ValueTypeZeroRate {
		return ZeroRateDiscountCurve{}, check.Errorf("NewZeroRateDiscountCurve: %s has value type %s, want %s", c.Name(), c.ValueType(), ValueTypeZeroRate)
	}
	if err := check.NotEmpty(dayCount, "NewZeroRateDiscountCurve: day count"); err != nil {
		return ZeroRateDiscountCurve{}, err
	}
	return ZeroRateDiscountCurve{valuationDate: valuationDate, dayCount: dayCount, curve: c}, nil
}

func (d ZeroRateDiscountCurve) ValuationDate() time.Time { return d.valuationDate }
func (d ZeroRateDiscountCurve) Curve() InterpolatedCurve { return d.curve }

// RelativeTime is the year fraction from the valuation date to date.
func (d ZeroRateDiscountCurve) RelativeTime(date time.Time) float64 {
	return utils.YearFraction(d.valuationDate, date, d.dayCount)
}

// ZeroRateAt returns the continuously compounded zero rate to date.
func (d ZeroRateDiscountCurve) ZeroRateAt(date time.Time) (float64, error) {
	z, err := d.curve.YValue(d.RelativeTime(date))
	if err != nil {
		return 0, fmt.Errorf("ZeroRateDiscountCurve.ZeroRateAt: %w", err)
	}
	return z, nil
}

// DF returns exp(-z(t) t).
func (d ZeroRateDiscountCurve) DF(date time.Time) (float64, error) {
	t := d.RelativeTime(date)
	z, err := d.curve.YValue(t)
	if err != nil {
		return 0, fmt.Errorf("ZeroRateDiscountCurve.DF: %w", err)
	}
	return math.Exp(-z * t), nil
}

// DFParameterSensitivity is dDF/dp_i for every zero rate parameter.
func (d ZeroRateDiscountCurve) DFParameterSensitivity(date time.Time) ([]float64, error) {
	t := d.RelativeTime(date)
	z, err := d.curve.YValue(t)
	if err != nil {
		return nil, fmt.Errorf("ZeroRateDiscountCurve.DFParameterSensitivity: %w", err)
	}
	sens, err := d.curve.YValueParameterSensitivity(t)
	if err != nil {
		return nil, fmt.Errorf("ZeroRateDiscountCurve.DFParameterSensitivity: %w", err)
	}
	scale := -t * math.Exp(-z*t)
	for i := range sens {
		sens[i] *= scale
	}
	return sens, nil
}

// WithParameter returns a copy with zero rate parameter i set to v.
func (d ZeroRateDiscountCurve) WithParameter(i int, v float64) (ZeroRateDiscountCurve, error) {
	c, err := d.curve.WithParameter(i, v)
	if err != nil {
		return ZeroRateDiscountCurve{}, err
	}
	d.curve = c
	return d, nil
}

// WithPerturbation returns a copy with p applied to every zero rate parameter.
func (d ZeroRateDiscountCurve) WithPerturbation(p param.ParameterPerturbation) (ZeroRateDiscountCurve, error) {
	c, err := d.curve.WithPerturbation(p)
	if err != nil {
		return ZeroRateDiscountCurve{}, err
	}
	d.curve = c
	return d, nil
}

func (d ZeroRateDiscountCurve) ParameterCount() int { return d.curve.ParameterCount() }

func (d ZeroRateDiscountCurve) ParameterValue(i int) (float64, error) {
	return d.curve.ParameterValue(i)
}

func (d ZeroRateDiscountCurve) ParameterMetadata(i int) (param.ParameterMetadata, error) {
	return d.curve.ParameterMetadata(i)
}

// Fingerprint is a structural hash suitable for cache keys.
func (d ZeroRateDiscountCurve) Fingerprint() uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(d.valuationDate.Format(utils.DateLayout))
	_, _ = h.WriteString(d.dayCount)
	_, _ = h.Write(binary.LittleEndian.AppendUint64(nil, d.curve.Fingerprint()))
	return h.Sum64()
}
