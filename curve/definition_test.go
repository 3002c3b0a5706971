package curve_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/mocurve/check"
	"github.com/meenmo/mocurve/curve"
	"github.com/meenmo/mocurve/interpolation"
	"github.com/meenmo/mocurve/marketdata"
)

const eurDefinition = `
name: EUR-ESTR
dayCount: ACT/365F
interpolator: LogLinear
rightExtrapolator: Exponential
nodes:
  - kind: deposit
    convention: EUR-DEPOSIT-T2
    tenor: 3M
    quote: EUR-DEP-3M
  - kind: fixedFloat
    convention: EUR-FIXED-1Y-EURIBOR-6M
    tenor: 5Y
    quote: EUR-IRS-6M-5Y
    spread: 0.0005
  - kind: fixedFloat
    convention: EUR-FIXED-1Y-EURIBOR-6M
    periodToStart: 1Y
    tenor: 5Y
    quote: EUR-IRS-6M-5Y
    label: 1Yx5Y
  - kind: xccy
    convention: EUR-EURIBOR-3M-USD-TERMSOFR-3M
    tenor: 2Y
    quote: EUR-USD-XCCY-2Y
    fx: EUR/USD
`

func parseEUR(t *testing.T) curve.Definition {
	t.Helper()
	d, err := curve.ParseDefinition(strings.NewReader(eurDefinition))
	require.NoError(t, err)
	return d
}

func TestParseDefinition(t *testing.T) {
	t.Parallel()

	d := parseEUR(t)
	assert.Equal(t, "EUR-ESTR", d.Name)
	assert.Equal(t, string(curve.ValueTypeZeroRate), d.ValueType)
	assert.Equal(t, interpolation.LogLinearName, d.Interpolator)
	assert.Equal(t, interpolation.FlatName, d.LeftExtrapolator)
	assert.Equal(t, interpolation.ExponentialName, d.RightExtrapolator)
	require.Len(t, d.Nodes, 4)
	assert.Equal(t, "1Y", d.Nodes[2].PeriodToStart)
	assert.Equal(t, 0.0005, d.Nodes[1].Spread)
	assert.Equal(t, "EUR/USD", d.Nodes[3].FX)

	_, err := curve.ParseDefinition(strings.NewReader("interpolator: Linear\n"))
	assert.ErrorIs(t, err, check.ErrValidation)
}

func TestDefinition_BuildNodes(t *testing.T) {
	t.Parallel()

	nodes, err := parseEUR(t).BuildNodes()
	require.NoError(t, err)
	require.Len(t, nodes, 4)

	labels := make([]string, len(nodes))
	for i, n := range nodes {
		labels[i] = n.Label()
	}
	assert.Equal(t, []string{"3M", "5Y", "1Yx5Y", "2Y"}, labels)

	want := []marketdata.ObservableID{"EUR-DEP-3M", "EUR-IRS-6M-5Y", "EUR-USD-XCCY-2Y", "EUR/USD"}
	if diff := cmp.Diff(want, nodes.Requirements()); diff != "" {
		t.Fatalf("requirements mismatch (-want +got):\n%s", diff)
	}

	trades, err := nodes.Trades(valDate, quotes())
	require.NoError(t, err)
	assert.Len(t, trades, 4)
}

func TestDefinition_BuildNodesErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node curve.NodeDefinition
	}{
		{name: "unknown kind", node: curve.NodeDefinition{Kind: "fra", Convention: "EUR-DEPOSIT-T2", Tenor: "3M", Quote: "Q"}},
		{name: "unknown convention", node: curve.NodeDefinition{Kind: curve.NodeKindFixedFloat, Convention: "XXX", Tenor: "5Y", Quote: "Q"}},
		{name: "missing tenor", node: curve.NodeDefinition{Kind: curve.NodeKindDeposit, Convention: "EUR-DEPOSIT-T2", Quote: "Q"}},
		{name: "bad tenor", node: curve.NodeDefinition{Kind: curve.NodeKindDeposit, Convention: "EUR-DEPOSIT-T2", Tenor: "5Q", Quote: "Q"}},
		{name: "missing quote", node: curve.NodeDefinition{Kind: curve.NodeKindDeposit, Convention: "EUR-DEPOSIT-T2", Tenor: "3M"}},
		{name: "missing fx", node: curve.NodeDefinition{Kind: curve.NodeKindXCcy, Convention: "EUR-EURIBOR-3M-USD-TERMSOFR-3M", Tenor: "2Y", Quote: "Q"}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			d := curve.Definition{Name: "c", Nodes: []curve.NodeDefinition{tc.node}}
			_, err := d.BuildNodes()
			assert.ErrorIs(t, err, check.ErrValidation)
		})
	}

	dup := curve.Definition{Name: "c", Nodes: []curve.NodeDefinition{
		{Kind: curve.NodeKindDeposit, Convention: "EUR-DEPOSIT-T2", Tenor: "3M", Quote: "A"},
		{Kind: curve.NodeKindDeposit, Convention: "EUR-DEPOSIT-T2", Tenor: "3M", Quote: "B"},
	}}
	_, err := dup.BuildNodes()
	assert.ErrorIs(t, err, check.ErrValidation)
}

func TestDefinition_BuildCurve(t *testing.T) {
	t.Parallel()

	d := parseEUR(t)
	d.Nodes = d.Nodes[:2]
	nodes, err := d.BuildNodes()
	require.NoError(t, err)

	c, err := d.BuildCurve(valDate, nodes, []float64{0.021, 0.025})
	require.NoError(t, err)
	assert.Equal(t, "EUR-ESTR", c.Name())
	assert.Equal(t, curve.ValueTypeZeroRate, c.ValueType())

	keys := c.Bundle().Keys()
	require.Len(t, keys, 2)
	assert.InDelta(t, 0.25, keys[0], 0.01)
	assert.InDelta(t, 5, keys[1], 0.02)

	m, err := c.ParameterMetadata(1)
	require.NoError(t, err)
	assert.Equal(t, "5Y", m.Label())

	_, err = d.BuildCurve(valDate, nodes, []float64{0.021})
	assert.ErrorIs(t, err, check.ErrValidation)

	d.Interpolator = "Spline"
	_, err = d.BuildCurve(valDate, nodes, []float64{0.021, 0.025})
	assert.ErrorIs(t, err, check.ErrValidation)
}

func TestDefinition_EncodeRoundTrip(t *testing.T) {
	t.Parallel()

	d := parseEUR(t)
	var buf bytes.Buffer
	require.NoError(t, d.Encode(&buf))

	got, err := curve.ParseDefinition(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(d, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDefinition(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "eur.yaml")
	require.NoError(t, os.WriteFile(path, []byte(eurDefinition), 0o600))
	d, err := curve.LoadDefinition(path)
	require.NoError(t, err)
	assert.Equal(t, parseEUR(t), d)

	_, err = curve.LoadDefinition(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
