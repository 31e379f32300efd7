package jsonio_test

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metatwin/builder"
	"github.com/katalvlaran/metatwin/fba"
	"github.com/katalvlaran/metatwin/jsonio"
	"github.com/katalvlaran/metatwin/measurement"
	"github.com/katalvlaran/metatwin/network"
	"github.com/katalvlaran/metatwin/twin"
)

func toy(t *testing.T) *network.Network {
	t.Helper()
	n, err := builder.BuildNetwork("toy", nil, builder.Toy())
	require.NoError(t, err)
	charge := -1
	require.NoError(t, n.AddCompound(network.Compound{
		ID: "P", Name: "phosphate", Compartment: "c", Formula: "PO4", Charge: &charge,
		XRefs: []network.XRef{{DB: "chebi", ID: "CHEBI:18367"}},
	}))

	return n
}

func TestNetwork_RoundTrip(t *testing.T) {
	n := toy(t)
	var buf bytes.Buffer
	require.NoError(t, jsonio.DumpNetwork(&buf, n))

	got, err := jsonio.LoadNetwork(&buf)
	require.NoError(t, err)

	assert.Equal(t, n.ReactionIDs(), got.ReactionIDs())
	assert.Equal(t, n.CompoundIDs(), got.CompoundIDs())
	assert.Equal(t, n.Genes(), got.Genes())
	p, ok := got.Compound("P")
	require.True(t, ok)
	require.NotNil(t, p.Charge)
	assert.Equal(t, -1, *p.Charge)
	assert.Equal(t, "CHEBI:18367", p.XRefs[0].ID)

	want, err := n.StoichiometricMatrix()
	require.NoError(t, err)
	have, err := got.StoichiometricMatrix()
	require.NoError(t, err)
	assert.Equal(t, want.Matrix.String(), have.Matrix.String())
}

func TestNetwork_DefaultBounds(t *testing.T) {
	doc := `{"id":"n","compartments":[{"id":"c","steady":true}],
	"compounds":[{"id":"X","compartment":"c"}],
	"reactions":[{"id":"R","direction":"reversible","lower":null,"upper":5,"stoichiometry":{"X":-1}}]}`
	n, err := jsonio.LoadNetwork(strings.NewReader(doc))
	require.NoError(t, err)

	r, ok := n.Reaction("R")
	require.True(t, ok)
	assert.Equal(t, -network.DefaultFluxBound, r.Lower)
	assert.Equal(t, 5.0, r.Upper)

	_, err = jsonio.LoadNetwork(strings.NewReader(`{"id":`))
	require.ErrorIs(t, err, jsonio.ErrDecode)

	zero := strings.Replace(doc, `"X":-1`, `"X":-1,"Y":0`, 1)
	n, err = jsonio.LoadNetwork(strings.NewReader(zero))
	require.NoError(t, err)
	r, ok = n.Reaction("R")
	require.True(t, ok)
	assert.Len(t, r.Terms(), 1)
	assert.Equal(t, -1.0, r.Coefficient("X"))

	bad := strings.Replace(doc, `"X":-1`, `"Y":-1`, 1)
	_, err = jsonio.LoadNetwork(strings.NewReader(bad))
	require.ErrorIs(t, err, network.ErrUnknownCompound)
}

func TestContext_NullBounds(t *testing.T) {
	e, err := measurement.NewEntry("m", []measurement.Variable{{Ref: "R1", Coefficient: 2}, {Ref: "B_e", Coefficient: -1}},
		[]float64{math.Inf(-1), 0}, []float64{10, math.Inf(1)}, []float64{1, 2}, []float64{0.5, 1})
	require.NoError(t, err)
	c := measurement.New("ctx", "day1", "day2")
	require.NoError(t, c.Add(e))

	var buf bytes.Buffer
	require.NoError(t, jsonio.DumpContext(&buf, c))
	assert.Contains(t, buf.String(), "null")

	got, err := jsonio.LoadContext(&buf)
	require.NoError(t, err)
	assert.True(t, c.Equal(got))

	_, err = jsonio.LoadContext(strings.NewReader(
		`{"id":"x","entries":[{"id":"e","variables":[{"ref":"R","coefficient":1}],"lower":[0],"upper":[1],"target":[null],"confidence":[1]}]}`))
	require.ErrorIs(t, err, jsonio.ErrNullTarget)
}

func TestTwin_FileRoundTrip(t *testing.T) {
	data := measurement.New("ctx")
	e, err := measurement.Single("flux", "R2", 0, 100, 30, 1)
	require.NoError(t, err)
	require.NoError(t, data.Add(e))
	tw, err := twin.Single(toy(t), data)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "twin.json")
	require.NoError(t, jsonio.WriteFile(path, jsonio.TwinToDoc(tw)))
	got, err := jsonio.ReadTwinFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"toy"}, got.NetworkIDs())
	c, ok := got.Context("toy")
	require.True(t, ok)
	assert.True(t, data.Equal(c))

	_, err = jsonio.ReadTwinFile(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFluxResult_NaNIsNull(t *testing.T) {
	s, err := fba.New(fba.WithObjective(fba.MaximizeFlux("R2")))
	require.NoError(t, err)
	e, err := measurement.NewEntry("m", []measurement.Variable{{Ref: "R2", Coefficient: 1}},
		[]float64{0, 2000}, []float64{10, 3000}, []float64{0, 0}, []float64{0, 0})
	require.NoError(t, err)
	data := measurement.New("ctx", "ok", "bad")
	require.NoError(t, data.Add(e))
	res, err := s.SolveNetwork(context.Background(), toy(t), data)
	require.NoError(t, err)

	doc := jsonio.FluxResultToDoc(res)
	require.Len(t, doc.Simulations, 2)
	require.NotNil(t, doc.Simulations[0].Objective)
	assert.InDelta(t, 10, *doc.Simulations[0].Objective, 1e-6)
	assert.Nil(t, doc.Simulations[1].Objective)
	assert.Equal(t, "infeasible", doc.Simulations[1].Status)

	b, err := jsonio.Encode(doc, false)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"objective":null`)

	var back jsonio.FluxResultDoc
	require.NoError(t, jsonio.Decode(b, &back))
	assert.Equal(t, doc.Reactions, back.Reactions)
}
