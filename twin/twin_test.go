package twin_test

import (
	"testing"

	"github.com/katalvlaran/metatwin/measurement"
	"github.com/katalvlaran/metatwin/network"
	"github.com/katalvlaran/metatwin/twin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toy(t *testing.T, id string) *network.Network {
	t.Helper()
	n := network.New(id)
	c, _ := network.LookupCompartment("c")
	e, _ := network.LookupCompartment("e")
	require.NoError(t, n.AddCompartment(c))
	require.NoError(t, n.AddCompartment(e))
	require.NoError(t, n.AddCompound(network.Compound{ID: "A", Compartment: "e"}))
	require.NoError(t, n.AddCompound(network.Compound{ID: "B", Compartment: "c"}))
	require.NoError(t, n.AddCompound(network.Compound{ID: "B_e", Compartment: "e"}))
	r1, _ := network.NewReaction("R1", network.Forward)
	require.NoError(t, r1.AddSubstrate("A", 1))
	require.NoError(t, r1.AddProduct("B", 1))
	require.NoError(t, r1.SetGeneRule("g1"))
	require.NoError(t, n.AddReaction(r1))
	r2, _ := network.NewReaction("R2", network.Forward)
	require.NoError(t, r2.AddSubstrate("B", 1))
	require.NoError(t, r2.AddProduct("B_e", 1))
	require.NoError(t, r2.SetBounds(0, 40))
	require.NoError(t, n.AddReaction(r2))

	return n
}

func exportCtx(t *testing.T, ref string, sims int, names ...string) *measurement.Context {
	t.Helper()
	c := measurement.New("ctx", names...)
	lo, hi, tg, cf := make([]float64, sims), make([]float64, sims), make([]float64, sims), make([]float64, sims)
	for i := range lo {
		hi[i], tg[i], cf[i] = 40, 30, 1
	}
	e, err := measurement.NewEntry("export", []measurement.Variable{{Ref: ref, Coefficient: 1}}, lo, hi, tg, cf)
	require.NoError(t, err)
	require.NoError(t, c.Add(e))

	return c
}

func TestTwin_AddNetworkAndContext(t *testing.T) {
	tw := twin.New("tw")
	require.NoError(t, tw.AddNetwork(toy(t, "ecoli")))
	require.ErrorIs(t, tw.AddNetwork(toy(t, "ecoli")), twin.ErrDuplicateNetwork)
	require.ErrorIs(t, tw.AddNetwork(toy(t, "a:b")), twin.ErrInvalidID)
	require.ErrorIs(t, tw.AddNetwork(nil), twin.ErrNilNetwork)

	require.ErrorIs(t, tw.AddContext("nope", exportCtx(t, "R2", 1)), twin.ErrUnknownNetwork)
	require.ErrorIs(t, tw.AddContext("ecoli", exportCtx(t, "R9", 1)), twin.ErrUnknownReference)
	require.NoError(t, tw.AddContext("ecoli", exportCtx(t, "B", 1)))
	require.ErrorIs(t, tw.AddContext("ecoli", exportCtx(t, "R2", 1)), twin.ErrDuplicateContext)
	require.NoError(t, tw.Validate())
}

func TestTwin_OwnsCopy(t *testing.T) {
	n := toy(t, "ecoli")
	tw, err := twin.Single(n, nil)
	require.NoError(t, err)
	require.NoError(t, n.RemoveReaction("R1"))

	owned, ok := tw.Network("ecoli")
	require.True(t, ok)
	assert.True(t, owned.HasReaction("R1"))
}

func TestTwin_Flatten(t *testing.T) {
	tw := twin.New("community")
	require.NoError(t, tw.AddNetwork(toy(t, "n1")))
	require.NoError(t, tw.AddNetwork(toy(t, "n2")))
	require.NoError(t, tw.AddContext("n1", exportCtx(t, "R2", 2, "glc", "ace")))
	require.NoError(t, tw.AddContext("n2", exportCtx(t, "B", 2)))

	flat, ctx, err := tw.Flatten()
	require.NoError(t, err)
	assert.Equal(t, []string{"n1:R1", "n1:R2", "n2:R1", "n2:R2"}, flat.ReactionIDs())
	assert.Equal(t, []string{"n1:A", "n1:B", "n1:B_e", "n2:A", "n2:B", "n2:B_e"}, flat.CompoundIDs())

	b, ok := flat.Compound("n2:B")
	require.True(t, ok)
	assert.Equal(t, "n2:c", b.Compartment)
	r2, _ := flat.Reaction("n1:R2")
	assert.Equal(t, 40.0, r2.Upper)
	assert.Equal(t, -1.0, r2.Coefficient("n1:B"))
	assert.Equal(t, []string{"n1:g1", "n2:g1"}, flat.Genes())
	r1, _ := flat.Reaction("n2:R1")
	require.NotNil(t, r1.GeneRule)
	assert.Equal(t, "n2:g1", r1.GeneRule.String())

	assert.Equal(t, []string{"glc", "ace"}, ctx.ConditionNames())
	e, ok := ctx.Entry("n2:export")
	require.True(t, ok)
	assert.Equal(t, []string{"n2:B"}, e.Refs())

	steady, err := flat.SteadyStoichiometricMatrix()
	require.NoError(t, err)
	assert.Equal(t, []string{"n1:B", "n2:B"}, steady.CompoundIDs)

	nid, id, ok := twin.SplitID("n2:export")
	require.True(t, ok)
	assert.Equal(t, "n2", nid)
	assert.Equal(t, "export", id)
	assert.Equal(t, "n2:export", twin.FlatID(nid, id))
}

func TestTwin_FlattenConditionMismatch(t *testing.T) {
	tw := twin.New("tw")
	require.NoError(t, tw.AddNetwork(toy(t, "n1")))
	require.NoError(t, tw.AddNetwork(toy(t, "n2")))
	require.NoError(t, tw.AddContext("n1", exportCtx(t, "R2", 2)))
	require.NoError(t, tw.AddContext("n2", exportCtx(t, "R2", 3)))

	_, _, err := tw.Flatten()
	require.ErrorIs(t, err, twin.ErrConditionMismatch)

	tw = twin.New("tw")
	require.NoError(t, tw.AddNetwork(toy(t, "n1")))
	require.NoError(t, tw.AddNetwork(toy(t, "n2")))
	require.NoError(t, tw.AddContext("n1", exportCtx(t, "R2", 1, "a")))
	require.NoError(t, tw.AddContext("n2", exportCtx(t, "R2", 1, "b")))
	require.ErrorIs(t, tw.Validate(), twin.ErrConditionMismatch)

	_, _, err = twin.New("empty").Flatten()
	require.ErrorIs(t, err, twin.ErrEmptyTwin)
}
