package marketdata

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// quoteFile is the on-disk layout of a quote snapshot.
//
//	quotes:
//	  EUR-IRS-6M-5Y: 0.0251
//	  EUR/USD: "1.0850"
type quoteFile struct {
	Quotes map[string]any `yaml:"quotes"`
}

// ParseValues decodes a YAML quote snapshot. Values may be numbers or numeric strings.
func ParseValues(r io.Reader) (MapValues, error) {
	var f quoteFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return MapValues{}, fmt.Errorf("ParseValues: %w", err)
	}
	out := make(map[ObservableID]float64, len(f.Quotes))
	for k, raw := range f.Quotes {
		v, err := cast.ToFloat64E(raw)
		if err != nil {
			return MapValues{}, fmt.Errorf("ParseValues: quote %s: %w", k, err)
		}
		out[ObservableID(k)] = v
	}
	return MapValues{values: out}, nil
}

// LoadValues reads a YAML quote snapshot from path.
func LoadValues(path string) (MapValues, error) {
	f, err := os.Open(path)
	if err != nil {
		return MapValues{}, fmt.Errorf("LoadValues: %w", err)
	}
	defer f.Close()
	return ParseValues(f)
}
