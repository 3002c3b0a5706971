package volatility

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"gonum.org/v1/gonum/floats"

	"github.com/meenmo/mocurve/check"
	"github.com/meenmo/mocurve/curve"
	"github.com/meenmo/mocurve/interpolation"
	"github.com/meenmo/mocurve/option"
	"github.com/meenmo/mocurve/param"
	"github.com/meenmo/mocurve/utils"
)

// GridNodeMetadata identifies one grid point by expiry and log-moneyness.
type GridNodeMetadata struct {
	expiry float64
	strike option.LogMoneynessStrike
}

func (m GridNodeMetadata) Expiry() float64                   { return m.expiry }
func (m GridNodeMetadata) Strike() option.LogMoneynessStrike { return m.strike }

// Label is "<expiry>/<strike label>", for example "1/LogMoneyness=-0.1".
func (m GridNodeMetadata) Label() string {
	return strconv.FormatFloat(m.expiry, 'g', -1, 64) + "/" + m.strike.Label()
}

// GridParams configures a GridVolatilities.
type GridParams struct {
	Name           string
	ValuationDate  time.Time
	DayCount       string
	VolatilityType curve.ValueType

	// Expiries in year fractions and strikes in log-moneyness, both strictly ascending.
	Expiries []float64
	Strikes  []float64

	// Values holds one row per expiry, one column per strike.
	Values [][]float64

	ExpiryInterpolator interpolation.CombinedInterpolator
	StrikeInterpolator interpolation.CombinedInterpolator
}

// GridVolatilities is a volatility surface on an expiry by log-moneyness grid.
// Parameters are the grid values in row-major order: index = expiry*len(strikes)+strike.
// A query interpolates each expiry row along strike, then the results along expiry.
type GridVolatilities struct {
	name           string
	valuationDate  time.Time
	dayCount       string
	volatilityType curve.ValueType
	expiries       []float64
	strikes        []float64
	rows           []interpolation.DataBundle
	expiryInterp   interpolation.CombinedInterpolator
	strikeInterp   interpolation.CombinedInterpolator
}

var _ Volatilities = GridVolatilities{}

// NewGridVolatilities validates p and builds the surface.
func NewGridVolatilities(p GridParams) (GridVolatilities, error) {
	if err := check.NotEmpty(p.Name, "NewGridVolatilities: name"); err != nil {
		return GridVolatilities{}, err
	}
	if err := check.NotEmpty(p.DayCount, "NewGridVolatilities: day count"); err != nil {
		return GridVolatilities{}, err
	}
	if p.VolatilityType != curve.ValueTypeBlackVolatility && p.VolatilityType != curve.ValueTypeNormalVolatility {
		return GridVolatilities{}, check.Errorf("NewGridVolatilities: %s: unsupported volatility type %q", p.Name, p.VolatilityType)
	}
	for _, c := range []interpolation.CombinedInterpolator{p.ExpiryInterpolator, p.StrikeInterpolator} {
		if c.Interpolator == nil || c.Left == nil || c.Right == nil {
			return GridVolatilities{}, check.Errorf("NewGridVolatilities: %s: interpolator is required", p.Name)
		}
	}
	if len(p.Values) != len(p.Expiries) {
		return GridVolatilities{}, check.Errorf("NewGridVolatilities: %s: %d rows for %d expiries", p.Name, len(p.Values), len(p.Expiries))
	}
	// Validates the expiry axis; the values are placeholders.
	if _, err := interpolation.NewDataBundle(p.Expiries, make([]float64, len(p.Expiries))); err != nil {
		return GridVolatilities{}, fmt.Errorf("NewGridVolatilities: %s: expiries: %w", p.Name, err)
	}
	rows := make([]interpolation.DataBundle, len(p.Values))
	for i, row := range p.Values {
		b, err := interpolation.NewDataBundle(p.Strikes, row)
		if err != nil {
			return GridVolatilities{}, fmt.Errorf("NewGridVolatilities: %s: expiry %v: %w", p.Name, p.Expiries[i], err)
		}
		rows[i] = b
	}
	return GridVolatilities{
		name:           p.Name,
		valuationDate:  p.ValuationDate,
		dayCount:       p.DayCount,
		volatilityType: p.VolatilityType,
		expiries:       append([]float64(nil), p.Expiries...),
		strikes:        append([]float64(nil), p.Strikes...),
		rows:           rows,
		expiryInterp:   p.ExpiryInterpolator,
		strikeInterp:   p.StrikeInterpolator,
	}, nil
}

func (g GridVolatilities) Name() string                    { return g.name }
func (g GridVolatilities) ValuationDate() time.Time        { return g.valuationDate }
func (g GridVolatilities) VolatilityType() curve.ValueType { return g.volatilityType }
func (g GridVolatilities) Expiries() []float64             { return append([]float64(nil), g.expiries...) }
func (g GridVolatilities) Strikes() []float64              { return append([]float64(nil), g.strikes...) }

func (g GridVolatilities) RelativeTime(date time.Time) float64 {
	return utils.YearFraction(g.valuationDate, date, g.dayCount)
}

// column interpolates every row at log-moneyness lm.
func (g GridVolatilities) column(lm float64) (interpolation.DataBundle, error) {
	vs := make([]float64, len(g.rows))
	for i, row := range g.rows {
		v, err := g.strikeInterp.ValueAt(row, lm)
		if err != nil {
			return interpolation.DataBundle{}, err
		}
		vs[i] = v
	}
	return interpolation.NewDataBundle(g.expiries, vs)
}

// logMoneyness converts strike to the grid's strike axis. A zero strike on a zero forward
// has no log-moneyness and is rejected.
func logMoneyness(op string, strike option.Strike, forward float64) (float64, error) {
	lm, err := option.ToLogMoneyness(strike, forward)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(lm.Value()) {
		return 0, check.Errorf("%s: %s has no log-moneyness against forward %v", op, strike.Label(), forward)
	}
	return lm.Value(), nil
}

func (g GridVolatilities) Volatility(expiry float64, strike option.Strike, forward float64) (float64, error) {
	lm, err := logMoneyness("GridVolatilities.Volatility", strike, forward)
	if err != nil {
		return 0, fmt.Errorf("GridVolatilities.Volatility: %s: %w", g.name, err)
	}
	col, err := g.column(lm)
	if err != nil {
		return 0, fmt.Errorf("GridVolatilities.Volatility: %s: %w", g.name, err)
	}
	v, err := g.expiryInterp.ValueAt(col, expiry)
	if err != nil {
		return 0, fmt.Errorf("GridVolatilities.Volatility: %s: %w", g.name, err)
	}
	return v, nil
}

// ParameterSensitivities is d(Volatility)/dp for every parameter, in row-major order.
func (g GridVolatilities) ParameterSensitivities(expiry float64, strike option.Strike, forward float64) ([]float64, error) {
	lm, err := logMoneyness("GridVolatilities.ParameterSensitivities", strike, forward)
	if err != nil {
		return nil, fmt.Errorf("GridVolatilities.ParameterSensitivities: %s: %w", g.name, err)
	}
	col, err := g.column(lm)
	if err != nil {
		return nil, fmt.Errorf("GridVolatilities.ParameterSensitivities: %s: %w", g.name, err)
	}
	outer, err := g.expiryInterp.NodeSensitivitiesAt(col, expiry)
	if err != nil {
		return nil, fmt.Errorf("GridVolatilities.ParameterSensitivities: %s: %w", g.name, err)
	}
	n := len(g.strikes)
	out := make([]float64, g.ParameterCount())
	for i, w := range outer {
		if w == 0 {
			continue
		}
		inner, err := g.strikeInterp.NodeSensitivitiesAt(g.rows[i], lm)
		if err != nil {
			return nil, fmt.Errorf("GridVolatilities.ParameterSensitivities: %s: %w", g.name, err)
		}
		floats.AddScaled(out[i*n:(i+1)*n], w, inner)
	}
	return out, nil
}

func (g GridVolatilities) ParameterCount() int { return len(g.expiries) * len(g.strikes) }

func (g GridVolatilities) split(op string, i int) (int, int, error) {
	if err := check.IndexInRange(i, g.ParameterCount(), op+": index"); err != nil {
		return 0, 0, err
	}
	return i / len(g.strikes), i % len(g.strikes), nil
}

func (g GridVolatilities) ParameterValue(i int) (float64, error) {
	r, c, err := g.split("GridVolatilities.ParameterValue", i)
	if err != nil {
		return 0, err
	}
	return g.rows[r].Value(c), nil
}

func (g GridVolatilities) ParameterMetadata(i int) (param.ParameterMetadata, error) {
	r, c, err := g.split("GridVolatilities.ParameterMetadata", i)
	if err != nil {
		return nil, err
	}
	return g.nodeMetadata(r, c), nil
}

func (g GridVolatilities) nodeMetadata(r, c int) GridNodeMetadata {
	return GridNodeMetadata{expiry: g.expiries[r], strike: option.LogMoneynessStrike(g.strikes[c])}
}

// Values returns the grid, one row per expiry.
func (g GridVolatilities) Values() [][]float64 {
	out := make([][]float64, len(g.rows))
	for i, row := range g.rows {
		out[i] = row.Values()
	}
	return out
}

func (g GridVolatilities) WithParameter(i int, v float64) (Volatilities, error) {
	r, c, err := g.split("GridVolatilities.WithParameter", i)
	if err != nil {
		return nil, err
	}
	row, err := g.rows[r].WithValue(c, v)
	if err != nil {
		return nil, fmt.Errorf("GridVolatilities.WithParameter: %s: %w", g.name, err)
	}
	g.rows = append([]interpolation.DataBundle(nil), g.rows...)
	g.rows[r] = row
	return g, nil
}

func (g GridVolatilities) WithPerturbation(p param.ParameterPerturbation) (Volatilities, error) {
	n := len(g.strikes)
	rows := make([]interpolation.DataBundle, len(g.rows))
	for r, row := range g.rows {
		vs := row.Values()
		for c := range vs {
			i := r*n + c
			vs[c] = p(i, vs[c], g.nodeMetadata(r, c))
		}
		b, err := row.WithValues(vs)
		if err != nil {
			return nil, fmt.Errorf("GridVolatilities.WithPerturbation: %s: %w", g.name, err)
		}
		rows[r] = b
	}
	g.rows = rows
	return g, nil
}

// Fingerprint is a structural hash suitable for cache keys.
func (g GridVolatilities) Fingerprint() uint64 {
	d := xxhash.New()
	ei, el, er := g.expiryInterp.Names()
	si, sl, sr := g.strikeInterp.Names()
	for _, s := range []string{g.name, g.valuationDate.Format(utils.DateLayout), g.dayCount, string(g.volatilityType), ei, el, er, si, sl, sr} {
		_, _ = d.WriteString(s)
		_, _ = d.Write([]byte{0})
	}
	var buf []byte
	for _, x := range g.expiries {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(x))
	}
	for _, row := range g.rows {
		buf = binary.LittleEndian.AppendUint64(buf, row.Fingerprint())
	}
	_, _ = d.Write(buf)
	return d.Sum64()
}
