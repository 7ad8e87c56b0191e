package catalog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techiepharm/FinSim-sub001/internal/catalog"
	"github.com/techiepharm/FinSim-sub001/internal/model"
)

func TestDefault(t *testing.T) {
	instruments := catalog.Default()
	require.NotEmpty(t, instruments)

	seen := map[string]bool{}
	for _, in := range instruments {
		assert.False(t, seen[in.Symbol], "duplicate %s", in.Symbol)
		seen[in.Symbol] = true
		assert.True(t, in.BasePrice.IsPositive(), in.Symbol)
		assert.NotEmpty(t, in.Sector, in.Symbol)
	}
	assert.Equal(t, "185", instruments[0].BasePrice.String())
}

func TestDecode(t *testing.T) {
	t.Run("parses exact prices and defaults bias", func(t *testing.T) {
		in, err := catalog.Decode(strings.NewReader(`
instruments:
  - symbol: ABC
    name: Alphabet Soup
    sector: Consumer
    base_price: 10.15
`))
		require.NoError(t, err)
		require.Len(t, in, 1)
		assert.Equal(t, "10.15", in[0].BasePrice.String())
		assert.Equal(t, model.BiasNeutral, in[0].Bias)
	})

	cases := map[string]string{
		"missing symbol": "instruments:\n  - {name: X, base_price: 1}\n",
		"duplicate":      "instruments:\n  - {symbol: A, base_price: 1}\n  - {symbol: A, base_price: 2}\n",
		"zero price":     "instruments:\n  - {symbol: A, base_price: 0}\n",
		"bad price":      "instruments:\n  - {symbol: A, base_price: cheap}\n",
		"unknown bias":   "instruments:\n  - {symbol: A, base_price: 1, bias: sideways}\n",
		"unknown field":  "instruments:\n  - {symbol: A, base_price: 1, colour: red}\n",
		"empty catalog":  "instruments: []\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := catalog.Decode(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	in, err := catalog.LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, catalog.Default(), in)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("instruments:\n  - {symbol: ZZZ, base_price: 3.5, bias: down}\n"), 0o600))
	in, err = catalog.LoadOrDefault(path)
	require.NoError(t, err)
	require.Len(t, in, 1)
	assert.Equal(t, model.BiasDown, in[0].Bias)

	_, err = catalog.LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
