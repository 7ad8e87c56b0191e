// Package catalog provides the static table of tradable instruments.
package catalog

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/techiepharm/FinSim-sub001/internal/model"
)

// entry mirrors one instrument in a catalog file.
type entry struct {
	Symbol    string     `yaml:"symbol"`
	Name      string     `yaml:"name"`
	Sector    string     `yaml:"sector"`
	BasePrice price      `yaml:"base_price"`
	Bias      model.Bias `yaml:"bias"`
}

type file struct {
	Instruments []entry `yaml:"instruments"`
}

// price decodes a YAML scalar straight into a decimal so base prices keep
// their exact cents.
type price struct {
	decimal.Decimal
}

func (p *price) UnmarshalYAML(value *yaml.Node) error {
	d, err := decimal.NewFromString(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid base_price %q: %w", value.Line, value.Value, err)
	}
	p.Decimal = d
	return nil
}

// Load reads a catalog file from path.
func Load(path string) ([]model.Instrument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a YAML catalog and validates every entry.
//
//	instruments:
//	  - symbol: NEXO
//	    name: Nexo Dynamics Inc
//	    sector: Tech
//	    base_price: 185.00
//	    bias: up
func Decode(r io.Reader) ([]model.Instrument, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	seen := make(map[string]bool, len(f.Instruments))
	out := make([]model.Instrument, 0, len(f.Instruments))
	for i, e := range f.Instruments {
		if e.Symbol == "" {
			return nil, fmt.Errorf("instrument %d: symbol is required", i)
		}
		if seen[e.Symbol] {
			return nil, fmt.Errorf("instrument %d: duplicate symbol %s", i, e.Symbol)
		}
		if !e.BasePrice.IsPositive() {
			return nil, fmt.Errorf("instrument %s: base_price must be positive", e.Symbol)
		}
		if !e.Bias.Valid() {
			return nil, fmt.Errorf("instrument %s: unknown bias %q", e.Symbol, e.Bias)
		}
		bias := e.Bias
		if bias == "" {
			bias = model.BiasNeutral
		}
		seen[e.Symbol] = true
		out = append(out, model.Instrument{
			Symbol:    e.Symbol,
			Name:      e.Name,
			Sector:    e.Sector,
			BasePrice: e.BasePrice.Decimal,
			Bias:      bias,
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("catalog has no instruments")
	}
	return out, nil
}

// LoadOrDefault loads the catalog at path, or the built-in one when path is empty.
func LoadOrDefault(path string) ([]model.Instrument, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Default returns the built-in catalog.
func Default() []model.Instrument {
	out, err := Decode(bytes.NewReader(defaultCatalog))
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return out
}
