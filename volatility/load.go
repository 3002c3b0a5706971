package volatility

import (
	"fmt"
	"io"

	"github.com/spf13/viper"

	"github.com/meenmo/mocurve/check"
	"github.com/meenmo/mocurve/curve"
	"github.com/meenmo/mocurve/interpolation"
	"github.com/meenmo/mocurve/utils"
)

// GridDefinition is the file form of a GridVolatilities. ValuationDate is YYYY-MM-DD.
type GridDefinition struct {
	Name                    string      `mapstructure:"name"`
	ValuationDate           string      `mapstructure:"valuationdate"`
	DayCount                string      `mapstructure:"daycount"`
	VolatilityType          string      `mapstructure:"volatilitytype"`
	ExpiryInterpolator      string      `mapstructure:"expiryinterpolator"`
	ExpiryLeftExtrapolator  string      `mapstructure:"expiryleftextrapolator"`
	ExpiryRightExtrapolator string      `mapstructure:"expiryrightextrapolator"`
	StrikeInterpolator      string      `mapstructure:"strikeinterpolator"`
	StrikeLeftExtrapolator  string      `mapstructure:"strikeleftextrapolator"`
	StrikeRightExtrapolator string      `mapstructure:"strikerightextrapolator"`
	Expiries                []float64   `mapstructure:"expiries"`
	Strikes                 []float64   `mapstructure:"strikes"`
	Values                  [][]float64 `mapstructure:"values"`
}

// ParseGrid reads a YAML grid definition.
func ParseGrid(r io.Reader) (GridDefinition, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(r); err != nil {
		return GridDefinition{}, fmt.Errorf("ParseGrid: %w", err)
	}
	return decodeGrid(v)
}

// LoadGrid reads a grid definition file. The format follows the file extension.
func LoadGrid(path string) (GridDefinition, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return GridDefinition{}, fmt.Errorf("LoadGrid: %w", err)
	}
	return decodeGrid(v)
}

func decodeGrid(v *viper.Viper) (GridDefinition, error) {
	v.SetDefault("daycount", utils.Act365F)
	v.SetDefault("volatilitytype", string(curve.ValueTypeBlackVolatility))
	for _, axis := range []string{"expiry", "strike"} {
		v.SetDefault(axis+"interpolator", interpolation.LinearName)
		v.SetDefault(axis+"leftextrapolator", interpolation.FlatName)
		v.SetDefault(axis+"rightextrapolator", interpolation.FlatName)
	}

	var d GridDefinition
	if err := v.Unmarshal(&d); err != nil {
		return GridDefinition{}, fmt.Errorf("decodeGrid: %w", err)
	}
	if err := check.NotEmpty(d.Name, "grid definition: name"); err != nil {
		return GridDefinition{}, err
	}
	return d, nil
}

// Build validates d and returns the surface.
func (d GridDefinition) Build() (GridVolatilities, error) {
	valDate, err := utils.ParseDate(d.ValuationDate)
	if err != nil {
		return GridVolatilities{}, check.Errorf("GridDefinition.Build: %s: valuation date: %v", d.Name, err)
	}
	vt, err := curve.ParseValueType(d.VolatilityType)
	if err != nil {
		return GridVolatilities{}, fmt.Errorf("GridDefinition.Build: %s: %w", d.Name, err)
	}
	expiry, err := interpolation.CombinedInterpolatorByName(d.ExpiryInterpolator, d.ExpiryLeftExtrapolator, d.ExpiryRightExtrapolator)
	if err != nil {
		return GridVolatilities{}, fmt.Errorf("GridDefinition.Build: %s: expiry axis: %w", d.Name, err)
	}
	strike, err := interpolation.CombinedInterpolatorByName(d.StrikeInterpolator, d.StrikeLeftExtrapolator, d.StrikeRightExtrapolator)
	if err != nil {
		return GridVolatilities{}, fmt.Errorf("GridDefinition.Build: %s: strike axis: %w", d.Name, err)
	}
	return NewGridVolatilities(GridParams{
		Name:               d.Name,
		ValuationDate:      valDate,
		DayCount:           d.DayCount,
		VolatilityType:     vt,
		Expiries:           d.Expiries,
		Strikes:            d.Strikes,
		Values:             d.Values,
		ExpiryInterpolator: expiry,
		StrikeInterpolator: strike,
	})
}
