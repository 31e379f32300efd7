package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metatwin/builder"
	"github.com/katalvlaran/metatwin/measurement"
	"github.com/katalvlaran/metatwin/network"
)

func TestBuildNetwork_Toy(t *testing.T) {
	n, err := builder.BuildNetwork("toy", nil, builder.Toy())
	require.NoError(t, err)
	require.NoError(t, n.Validate())

	assert.Equal(t, []string{"R1", "R2"}, n.ReactionIDs())
	assert.Equal(t, []string{"A", "B", "B_e"}, n.CompoundIDs())
	assert.Equal(t, []string{"g1", "g2", "g3", "g4"}, n.Genes())

	steady, err := n.IsSteadyCompound("B")
	require.NoError(t, err)
	assert.True(t, steady)

	r1, ok := n.Reaction("R1")
	require.True(t, ok)
	assert.Equal(t, -1.0, r1.Coefficient("A"))
	assert.Equal(t, 1.0, r1.Coefficient("B"))
	assert.Equal(t, network.DefaultFluxBound, r1.Upper)
}

func TestBuildNetwork_NilConstructor(t *testing.T) {
	_, err := builder.BuildNetwork("x", nil, builder.Toy(), nil)
	require.ErrorIs(t, err, builder.ErrConstructFailed)
}

func TestLinearPathway(t *testing.T) {
	n, err := builder.BuildNetwork("lin", []builder.BuilderOption{builder.WithGenes(), builder.WithFluxBound(10)},
		builder.LinearPathway(3))
	require.NoError(t, err)

	assert.Equal(t, []string{"EX_M0", "EX_M2", "R1", "R2"}, n.ReactionIDs())
	assert.Equal(t, []string{"g1", "g2"}, n.Genes())

	dead, err := n.DeadEnds()
	require.NoError(t, err)
	assert.Empty(t, dead)

	r, _ := n.Reaction("R2")
	assert.Equal(t, 10.0, r.Upper)
	assert.Equal(t, "g2", r.GeneRule.String())

	_, err = builder.BuildNetwork("lin", nil, builder.LinearPathway(1))
	require.ErrorIs(t, err, builder.ErrTooFewCompounds)
}

func TestBranched(t *testing.T) {
	n, err := builder.BuildNetwork("br", []builder.BuilderOption{builder.WithExcelColumnIDs(), builder.WithGenes()},
		builder.Branched(3))
	require.NoError(t, err)

	assert.Equal(t, []string{"EX_A", "EX_B", "R1", "R2", "R3"}, n.ReactionIDs())
	off, err := n.DisabledByGenes([]string{"g2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"R2"}, off)

	_, err = builder.BuildNetwork("br", nil, builder.Branched(0))
	require.ErrorIs(t, err, builder.ErrTooFewCompounds)
}

func TestDeadEnd_Composes(t *testing.T) {
	n, err := builder.BuildNetwork("gap", nil, builder.Toy(), builder.DeadEnd(0))
	require.NoError(t, err)

	dead, err := n.DeadEnds()
	require.NoError(t, err)
	assert.Equal(t, []string{"M0"}, dead)
}

func TestRandomNetwork(t *testing.T) {
	build := func() *network.Network {
		n, err := builder.BuildNetwork("rnd", []builder.BuilderOption{builder.WithSeed(7)},
			builder.RandomNetwork(4, 6, 0.4))
		require.NoError(t, err)
		return n
	}
	a, b := build(), build()
	require.NoError(t, a.Validate())
	assert.Len(t, a.ReactionIDs(), 4+6)

	for _, id := range a.ReactionIDs() {
		ra, _ := a.Reaction(id)
		rb, _ := b.Reaction(id)
		assert.Equal(t, ra.Terms(), rb.Terms(), id)
		assert.Equal(t, ra.Direction, rb.Direction, id)
		assert.NotEmpty(t, ra.Terms(), id)
	}

	_, err := builder.BuildNetwork("rnd", nil, builder.RandomNetwork(4, 6, 0.4))
	require.ErrorIs(t, err, builder.ErrNeedRandSource)
	_, err = builder.BuildNetwork("rnd", []builder.BuilderOption{builder.WithSeed(1)}, builder.RandomNetwork(4, 6, 1.5))
	require.ErrorIs(t, err, builder.ErrInvalidProbability)
}

func TestSeries(t *testing.T) {
	e, err := builder.Series("m", "R2", 3, 0.5, builder.WithAmplitude(10), builder.WithTrend(2), builder.WithSpread(1))
	require.NoError(t, err)

	assert.Equal(t, []float64{10, 12, 14}, e.Target)
	assert.Equal(t, []float64{9, 11, 13}, e.Lower)
	assert.Equal(t, []float64{11, 13, 15}, e.Upper)
	assert.Equal(t, []measurement.Variable{{Ref: "R2", Coefficient: 1}}, e.Variables)

	_, err = builder.Series("m", "R2", 3, 0.5, builder.WithNoise(1))
	require.ErrorIs(t, err, builder.ErrNeedRandSource)

	noisy, err := builder.Series("m", "R2", 4, 1, builder.WithNoise(0.1), builder.WithSeed(3))
	require.NoError(t, err)
	again, err := builder.Series("m", "R2", 4, 1, builder.WithNoise(0.1), builder.WithSeed(3))
	require.NoError(t, err)
	assert.True(t, noisy.Equal(again))
}

func TestOptionPanics(t *testing.T) {
	assert.Panics(t, func() { builder.WithIDScheme(nil) })
	assert.Panics(t, func() { builder.WithRand(nil) })
	assert.Panics(t, func() { builder.WithFluxBound(0) })
	assert.Panics(t, func() { builder.WithNoise(-1) })
	assert.Panics(t, func() { builder.WithSpread(-1) })
}

func TestIDFns(t *testing.T) {
	assert.Equal(t, "M3", builder.DefaultIDFn(3))
	assert.Equal(t, "A", builder.ExcelColumnIDFn(0))
	assert.Equal(t, "AA", builder.ExcelColumnIDFn(26))
	assert.Equal(t, "R7", builder.SymbolNumberIDFn("R")(7))
	assert.Panics(t, func() { builder.ExcelColumnIDFn(-1) })
}
