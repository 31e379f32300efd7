package reach_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metatwin/builder"
	"github.com/katalvlaran/metatwin/network"
	"github.com/katalvlaran/metatwin/reach"
)

func toyGraph(t *testing.T, island bool) *reach.Graph {
	t.Helper()
	n, err := builder.BuildNetwork("toy", nil, builder.Toy())
	require.NoError(t, err)
	if island {
		for _, id := range []string{"X", "Y"} {
			require.NoError(t, n.AddCompound(network.Compound{ID: id, Compartment: "c"}))
		}
		r, err := network.NewReaction("R3", network.Forward)
		require.NoError(t, err)
		require.NoError(t, r.AddSubstrate("X", 1))
		require.NoError(t, r.AddProduct("Y", 1))
		require.NoError(t, n.AddReaction(r))
	}
	g, err := reach.Build(n)
	require.NoError(t, err)

	return g
}

func cpd(id string) reach.Node { return reach.Node{Kind: reach.Compound, ID: id} }
func rxn(id string) reach.Node { return reach.Node{Kind: reach.Reaction, ID: id} }

func TestSearch_FromMedium(t *testing.T) {
	g := toyGraph(t, false)
	assert.Equal(t, []string{"A", "B_e"}, g.Seeds())

	res, err := reach.Search(g)
	require.NoError(t, err)
	assert.Equal(t, []reach.Node{cpd("A"), cpd("B_e"), rxn("R1"), cpd("B"), rxn("R2")}, res.Order)
	assert.Equal(t, 3, res.Depth[rxn("R2")])

	path, err := res.PathTo(rxn("R2"))
	require.NoError(t, err)
	assert.Equal(t, []reach.Node{cpd("A"), rxn("R1"), cpd("B"), rxn("R2")}, path)

	c, r := res.Unreached()
	assert.Empty(t, c)
	assert.Empty(t, r)
}

func TestSearch_Island(t *testing.T) {
	res, err := reach.Search(toyGraph(t, true))
	require.NoError(t, err)

	c, r := res.Unreached()
	assert.Equal(t, []string{"X", "Y"}, c)
	assert.Equal(t, []string{"R3"}, r)

	_, err = res.PathTo(cpd("Y"))
	require.ErrorIs(t, err, reach.ErrNotReached)
}

func TestSearch_Options(t *testing.T) {
	g := toyGraph(t, false)

	res, err := reach.Search(g, reach.WithSkip(func(id string) bool { return id == "R1" }))
	require.NoError(t, err)
	c, r := res.Unreached()
	assert.Equal(t, []string{"B"}, c)
	assert.Equal(t, []string{"R1", "R2"}, r)

	res, err = reach.Search(g, reach.WithMaxDepth(1))
	require.NoError(t, err)
	assert.Equal(t, []reach.Node{cpd("A"), cpd("B_e"), rxn("R1")}, res.Order)

	res, err = reach.Search(g, reach.WithSources("B"))
	require.NoError(t, err)
	assert.Equal(t, []reach.Node{cpd("B"), rxn("R2"), cpd("B_e")}, res.Order)
	assert.False(t, res.Reached(cpd("A")))

	_, err = reach.Search(g, reach.WithSources("Z"))
	require.ErrorIs(t, err, reach.ErrUnknownSource)

	_, err = reach.Search(g, reach.WithMaxDepth(-1))
	require.ErrorIs(t, err, reach.ErrOptionViolation)
}

func TestSearch_Abort(t *testing.T) {
	g := toyGraph(t, false)
	stop := errors.New("stop")
	_, err := reach.Search(g, reach.WithOnVisit(func(n reach.Node, _ int) error {
		if n == cpd("B") {
			return stop
		}
		return nil
	}))
	require.ErrorIs(t, err, stop)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = reach.Search(g, reach.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
}

func TestBuild_ReversibleAndClosed(t *testing.T) {
	n, err := builder.BuildNetwork("toy", nil, builder.Toy())
	require.NoError(t, err)
	r, _ := n.Reaction("R2")
	require.NoError(t, r.SetBounds(0, 0))
	require.NoError(t, n.RemoveReaction("R2"))
	require.NoError(t, n.AddReaction(r))
	g, err := reach.Build(n)
	require.NoError(t, err)
	assert.Empty(t, g.Successors(cpd("B")))

	n2 := network.New("rev")
	require.NoError(t, n2.AddCompartment(network.Compartment{ID: "c", IsSteady: true}))
	for _, id := range []string{"P", "Q"} {
		require.NoError(t, n2.AddCompound(network.Compound{ID: id, Compartment: "c"}))
	}
	rv, err := network.NewReaction("RV", network.Reversible)
	require.NoError(t, err)
	require.NoError(t, rv.AddSubstrate("P", 1))
	require.NoError(t, rv.AddProduct("Q", 1))
	require.NoError(t, n2.AddReaction(rv))
	g2, err := reach.Build(n2)
	require.NoError(t, err)
	assert.Equal(t, []reach.Node{rxn("RV")}, g2.Successors(cpd("P")))
	assert.Equal(t, []reach.Node{rxn("RV")}, g2.Successors(cpd("Q")))
	assert.ElementsMatch(t, []reach.Node{cpd("P"), cpd("Q")}, g2.Successors(rxn("RV")))

	_, err = reach.Build(nil)
	require.ErrorIs(t, err, reach.ErrNilNetwork)
}
