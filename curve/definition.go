package curve

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/meenmo/mocurve/check"
	"github.com/meenmo/mocurve/deposit"
	"github.com/meenmo/mocurve/interpolation"
	"github.com/meenmo/mocurve/marketdata"
	"github.com/meenmo/mocurve/param"
	"github.com/meenmo/mocurve/swap"
	"github.com/meenmo/mocurve/swap/market"
	"github.com/meenmo/mocurve/utils"
)

// Node kinds accepted in a definition.
const (
	NodeKindDeposit    = "deposit"
	NodeKindFixedFloat = "fixedFloat"
	NodeKindXCcy       = "xccy"
)

// NodeDefinition is the configuration of one node.
type NodeDefinition struct {
	Kind          string  `mapstructure:"kind" yaml:"kind"`
	Convention    string  `mapstructure:"convention" yaml:"convention"`
	Tenor         string  `mapstructure:"tenor" yaml:"tenor"`
	PeriodToStart string  `mapstructure:"periodtostart" yaml:"periodToStart,omitempty"`
	Quote         string  `mapstructure:"quote" yaml:"quote"`
	FX            string  `mapstructure:"fx" yaml:"fx,omitempty"`
	Spread        float64 `mapstructure:"spread" yaml:"spread,omitempty"`
	Label         string  `mapstructure:"label" yaml:"label,omitempty"`
}

// Definition is the configuration of a curve: its axis conventions, interpolation
// scheme and calibration nodes.
type Definition struct {
	Name              string           `mapstructure:"name" yaml:"name"`
	ValueType         string           `mapstructure:"valuetype" yaml:"valueType"`
	DayCount          string           `mapstructure:"daycount" yaml:"dayCount"`
	Interpolator      string           `mapstructure:"interpolator" yaml:"interpolator"`
	LeftExtrapolator  string           `mapstructure:"leftextrapolator" yaml:"leftExtrapolator"`
	RightExtrapolator string           `mapstructure:"rightextrapolator" yaml:"rightExtrapolator"`
	Nodes             []NodeDefinition `mapstructure:"nodes" yaml:"nodes"`
}

// ParseDefinition reads a YAML definition.
func ParseDefinition(r io.Reader) (Definition, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(r); err != nil {
		return Definition{}, fmt.Errorf("ParseDefinition: %w", err)
	}
	return decodeDefinition(v)
}

// LoadDefinition reads a definition file. The format follows the file extension.
func LoadDefinition(path string) (Definition, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Definition{}, fmt.Errorf("LoadDefinition: %w", err)
	}
	return decodeDefinition(v)
}

func decodeDefinition(v *viper.Viper) (Definition, error) {
	v.SetDefault("valuetype", string(ValueTypeZeroRate))
	v.SetDefault("daycount", utils.Act365F)
	v.SetDefault("interpolator", interpolation.LinearName)
	v.SetDefault("leftextrapolator", interpolation.FlatName)
	v.SetDefault("rightextrapolator", interpolation.FlatName)

	var d Definition
	if err := v.Unmarshal(&d); err != nil {
		return Definition{}, fmt.Errorf("decodeDefinition: %w", err)
	}
	if err := check.NotEmpty(d.Name, "curve definition: name"); err != nil {
		return Definition{}, err
	}
	return d, nil
}

// Encode writes d as YAML.
func (d Definition) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("Definition.Encode: %w", err)
	}
	return enc.Close()
}

// CombinedInterpolator resolves the configured scheme names.
func (d Definition) CombinedInterpolator() (interpolation.CombinedInterpolator, error) {
	c, err := interpolation.CombinedInterpolatorByName(d.Interpolator, d.LeftExtrapolator, d.RightExtrapolator)
	if err != nil {
		return interpolation.CombinedInterpolator{}, fmt.Errorf("Definition.CombinedInterpolator: %s: %w", d.Name, err)
	}
	return c, nil
}

// BuildNodes turns the node definitions into nodes.
func (d Definition) BuildNodes() (Nodes, error) {
	nodes := make(Nodes, 0, len(d.Nodes))
	for i, nd := range d.Nodes {
		n, err := nd.Build()
		if err != nil {
			return nil, fmt.Errorf("Definition.BuildNodes: %s: node %d: %w", d.Name, i, err)
		}
		nodes = append(nodes, n)
	}
	if err := nodes.Validate(); err != nil {
		return nil, fmt.Errorf("Definition.BuildNodes: %s: %w", d.Name, err)
	}
	return nodes, nil
}

func parseTenors(nd NodeDefinition) (market.Tenor, market.Tenor, error) {
	if nd.Tenor == "" {
		return market.Tenor{}, market.Tenor{}, check.Errorf("tenor is required")
	}
	tenor, err := market.ParseTenor(nd.Tenor)
	if err != nil {
		return market.Tenor{}, market.Tenor{}, check.Errorf("%v", err)
	}
	var start market.Tenor
	if nd.PeriodToStart != "" {
		if start, err = market.ParseTenor(nd.PeriodToStart); err != nil {
			return market.Tenor{}, market.Tenor{}, check.Errorf("%v", err)
		}
	}
	return start, tenor, nil
}

// Build constructs the node described by nd.
func (nd NodeDefinition) Build() (Node, error) {
	start, tenor, err := parseTenors(nd)
	if err != nil {
		return nil, err
	}
	switch nd.Kind {
	case NodeKindDeposit:
		conv, err := deposit.ConventionByName(nd.Convention)
		if err != nil {
			return nil, err
		}
		return NewTermDepositCurveNode(TermDepositCurveNodeParams{
			Template: deposit.TermDepositTemplate{Tenor: tenor, Convention: conv},
			RateID:   marketdata.ObservableID(nd.Quote),
			Spread:   nd.Spread,
			Label:    nd.Label,
		})
	case NodeKindFixedFloat:
		conv, err := swap.FixedFloatConvention(nd.Convention)
		if err != nil {
			return nil, err
		}
		return NewFixedFloatSwapCurveNode(FixedFloatSwapCurveNodeParams{
			Template: swap.FixedFloatSwapTemplate{PeriodToStart: start, Tenor: tenor, Convention: conv},
			RateID:   marketdata.ObservableID(nd.Quote),
			Spread:   nd.Spread,
			Label:    nd.Label,
		})
	case NodeKindXCcy:
		conv, err := swap.XCcyIborIborConvention(nd.Convention)
		if err != nil {
			return nil, err
		}
		return NewXCcyIborIborSwapCurveNode(XCcyIborIborSwapCurveNodeParams{
			Template: swap.XCcyIborIborSwapTemplate{PeriodToStart: start, Tenor: tenor, Convention: conv},
			SpreadID: marketdata.ObservableID(nd.Quote),
			FXID:     marketdata.ObservableID(nd.FX),
			Spread:   nd.Spread,
			Label:    nd.Label,
		})
	default:
		return nil, check.Errorf("unknown node kind %q", nd.Kind)
	}
}

// BuildCurve places values at the node pillars, measured as year fractions from
// valuationDate, and returns the interpolated curve.
func (d Definition) BuildCurve(valuationDate time.Time, nodes Nodes, values []float64) (InterpolatedCurve, error) {
	vt, err := ParseValueType(d.ValueType)
	if err != nil {
		return InterpolatedCurve{}, fmt.Errorf("Definition.BuildCurve: %s: %w", d.Name, err)
	}
	interp, err := d.CombinedInterpolator()
	if err != nil {
		return InterpolatedCurve{}, err
	}
	if len(values) != len(nodes) {
		return InterpolatedCurve{}, check.Errorf("Definition.BuildCurve: %s: %d values for %d nodes", d.Name, len(values), len(nodes))
	}
	pillars, err := nodes.Metadata(valuationDate)
	if err != nil {
		return InterpolatedCurve{}, fmt.Errorf("Definition.BuildCurve: %s: %w", d.Name, err)
	}
	xs := make([]float64, len(pillars))
	meta := make([]param.ParameterMetadata, len(pillars))
	for i, p := range pillars {
		xs[i] = utils.YearFraction(valuationDate, p.Date(), d.DayCount)
		meta[i] = p
	}
	return NewInterpolatedCurve(d.Name, vt, xs, values, meta, interp)
}
