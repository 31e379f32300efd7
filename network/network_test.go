package network_test

import (
	"testing"

	"github.com/katalvlaran/metatwin/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// toy builds A(e) -> B(c) -> B_e(e).
func toy(t *testing.T) *network.Network {
	t.Helper()
	n := network.New("toy")
	c, _ := network.LookupCompartment("c")
	e, _ := network.LookupCompartment("e")
	require.NoError(t, n.AddCompartment(c))
	require.NoError(t, n.AddCompartment(e))
	require.NoError(t, n.AddCompound(network.Compound{ID: "A", Compartment: "e"}))
	require.NoError(t, n.AddCompound(network.Compound{ID: "B", Compartment: "c"}))
	require.NoError(t, n.AddCompound(network.Compound{ID: "B_e", Compartment: "e"}))

	r1, err := network.NewReaction("R1", network.Forward)
	require.NoError(t, err)
	require.NoError(t, r1.AddSubstrate("A", 1))
	require.NoError(t, r1.AddProduct("B", 1))
	require.NoError(t, r1.SetGeneRule("g1 and g2"))
	require.NoError(t, n.AddReaction(r1))

	r2, err := network.NewReaction("R2", network.Forward)
	require.NoError(t, err)
	require.NoError(t, r2.AddSubstrate("B", 1))
	require.NoError(t, r2.AddProduct("B_e", 1))
	require.NoError(t, r2.SetGeneRule("g3 or g4"))
	require.NoError(t, n.AddReaction(r2))

	return n
}

func TestNetwork_AddRejects(t *testing.T) {
	n := toy(t)

	require.ErrorIs(t, n.AddCompartment(network.Compartment{ID: "c"}), network.ErrDuplicateCompartment)
	require.ErrorIs(t, n.AddCompartment(network.Compartment{}), network.ErrEmptyID)
	require.ErrorIs(t, n.AddCompound(network.Compound{ID: "A", Compartment: "e"}), network.ErrDuplicateCompound)
	require.ErrorIs(t, n.AddCompound(network.Compound{ID: "Z", Compartment: "m"}), network.ErrUnknownCompartment)

	r, err := network.NewReaction("R3", network.Forward)
	require.NoError(t, err)
	require.NoError(t, r.AddSubstrate("nope", 1))
	require.ErrorIs(t, n.AddReaction(r), network.ErrUnknownCompound)

	dup, err := network.NewReaction("R1", network.Forward)
	require.NoError(t, err)
	require.ErrorIs(t, n.AddReaction(dup), network.ErrDuplicateReaction)
}

func TestNetwork_GettersReturnCopies(t *testing.T) {
	n := toy(t)

	r, ok := n.Reaction("R1")
	require.True(t, ok)
	require.NoError(t, r.SetBounds(0, 5))
	require.NoError(t, r.AddProduct("B_e", 1))

	again, _ := n.Reaction("R1")
	assert.Equal(t, network.DefaultFluxBound, again.Upper)
	assert.Len(t, again.Terms(), 2)

	_, ok = n.Reaction("missing")
	assert.False(t, ok)
	assert.Equal(t, []string{"R1", "R2"}, n.ReactionIDs())
	assert.Equal(t, []string{"A", "B", "B_e"}, n.CompoundIDs())
	assert.Equal(t, []string{"g1", "g2", "g3", "g4"}, n.Genes())
}

func TestNetwork_StoichiometricMatrix(t *testing.T) {
	n := toy(t)

	s, err := n.StoichiometricMatrix()
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "B_e"}, s.CompoundIDs)
	require.Equal(t, []string{"R1", "R2"}, s.ReactionIDs)
	require.Equal(t, "[-1, 0]\n[1, -1]\n[0, 1]\n", s.Matrix.String())

	v, err := s.At("B", "R2")
	require.NoError(t, err)
	assert.Equal(t, -1.0, v)
	_, err = s.At("B", "R9")
	require.ErrorIs(t, err, network.ErrUnknownReaction)

	ext, err := n.NonSteadyStoichiometricMatrix()
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B_e"}, ext.CompoundIDs)
	assert.Equal(t, "[-1, 0]\n[0, 1]\n", ext.Matrix.String())
}

// The steady matrix is exactly the steady rows of the full matrix.
func TestNetwork_SteadyRowsIdentity(t *testing.T) {
	nets := []*network.Network{toy(t), network.New("empty")}
	for _, n := range nets {
		full, err := n.StoichiometricMatrix()
		require.NoError(t, err)
		steady, err := n.SteadyStoichiometricMatrix()
		require.NoError(t, err)

		require.Equal(t, full.ReactionIDs, steady.ReactionIDs)
		for i, cid := range steady.CompoundIDs {
			fi, ok := full.RowIndex(cid)
			require.True(t, ok)
			want, err := full.Matrix.Row(fi)
			require.NoError(t, err)
			got, err := steady.Matrix.Row(i)
			require.NoError(t, err)
			require.Equal(t, want, got, cid)
		}
		ext, err := n.NonSteadyStoichiometricMatrix()
		require.NoError(t, err)
		require.Equal(t, len(full.CompoundIDs), len(steady.CompoundIDs)+len(ext.CompoundIDs))
	}
}

func TestNetwork_DanglingReference(t *testing.T) {
	n := toy(t)
	require.NoError(t, n.RemoveCompound("B"))

	_, err := n.StoichiometricMatrix()
	require.ErrorIs(t, err, network.ErrDanglingReference)
	assert.Contains(t, err.Error(), "R1")

	n = toy(t)
	require.NoError(t, n.RemoveCompartment("c"))
	_, err = n.SteadyStoichiometricMatrix()
	require.ErrorIs(t, err, network.ErrDanglingReference)
	require.ErrorIs(t, n.Validate(), network.ErrDanglingReference)
}

func TestNetwork_RemoveUnknown(t *testing.T) {
	n := toy(t)
	require.ErrorIs(t, n.RemoveReaction("x"), network.ErrUnknownReaction)
	require.ErrorIs(t, n.RemoveCompound("x"), network.ErrUnknownCompound)
	require.ErrorIs(t, n.RemoveCompartment("x"), network.ErrUnknownCompartment)

	require.NoError(t, n.RemoveReaction("R1"))
	assert.Equal(t, []string{"R2"}, n.ReactionIDs())
}

func TestNetwork_CloneIsIndependent(t *testing.T) {
	n := toy(t)
	cp := n.Clone()
	require.NoError(t, cp.RemoveReaction("R2"))

	assert.True(t, n.HasReaction("R2"))
	assert.False(t, cp.HasReaction("R2"))
}

func TestNetwork_DeadEndsAndSinks(t *testing.T) {
	n := network.New("gap")
	c, _ := network.LookupCompartment("c")
	require.NoError(t, n.AddCompartment(c))
	for _, id := range []string{"X", "Y", "Z"} {
		require.NoError(t, n.AddCompound(network.Compound{ID: id, Compartment: "c"}))
	}
	r, _ := network.NewReaction("R", network.Forward)
	require.NoError(t, r.AddSubstrate("X", 1))
	require.NoError(t, r.AddProduct("Y", 1))
	require.NoError(t, n.AddReaction(r))

	dead, err := n.DeadEnds()
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "Y"}, dead)

	withSinks, err := n.WithSinks(dead)
	require.NoError(t, err)
	assert.Equal(t, []string{"R", "sink_X", "sink_Y"}, withSinks.ReactionIDs())
	assert.Equal(t, []string{"R"}, n.ReactionIDs())

	dead, err = withSinks.DeadEnds()
	require.NoError(t, err)
	assert.Empty(t, dead)

	_, err = n.WithSinks([]string{"nope"})
	require.ErrorIs(t, err, network.ErrUnknownCompound)
}

func TestNetwork_DisabledByGenes(t *testing.T) {
	n := toy(t)

	off, err := n.DisabledByGenes([]string{"g1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"R1"}, off)

	off, err = n.DisabledByGenes([]string{"g3"})
	require.NoError(t, err)
	assert.Empty(t, off)

	off, err = n.DisabledByGenes([]string{"g3", "g4"})
	require.NoError(t, err)
	assert.Equal(t, []string{"R2"}, off)

	_, err = n.DisabledByGenes([]string{"g9"})
	require.ErrorIs(t, err, network.ErrUnknownGene)
}
