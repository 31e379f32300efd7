package network_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/metatwin/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaction_DefaultBounds(t *testing.T) {
	tests := []struct {
		d      network.Direction
		lo, hi float64
	}{
		{network.Forward, 0, 1000},
		{network.Reverse, -1000, 0},
		{network.Reversible, -1000, 1000},
	}
	for _, tc := range tests {
		t.Run(tc.d.String(), func(t *testing.T) {
			r, err := network.NewReaction("R", tc.d)
			require.NoError(t, err)
			assert.Equal(t, tc.lo, r.Lower)
			assert.Equal(t, tc.hi, r.Upper)
		})
	}

	_, err := network.NewReaction("", network.Forward)
	require.ErrorIs(t, err, network.ErrEmptyID)
	_, err = network.NewReaction("R", network.Direction(7))
	require.ErrorIs(t, err, network.ErrInvalidDirection)
}

func TestReaction_Terms(t *testing.T) {
	r, err := network.NewReaction("R", network.Reversible)
	require.NoError(t, err)
	require.NoError(t, r.AddSubstrate("A", 2))
	require.NoError(t, r.AddProduct("B", 1))

	require.ErrorIs(t, r.AddSubstrate("A", 1), network.ErrDuplicateCompound)
	require.ErrorIs(t, r.AddProduct("C", 0), network.ErrInvalidCoefficient)
	require.ErrorIs(t, r.AddProduct("C", math.Inf(1)), network.ErrInvalidCoefficient)
	require.ErrorIs(t, r.AddSubstrate("C", -1), network.ErrInvalidCoefficient)

	// opposite side nets out
	require.NoError(t, r.AddProduct("A", 1))
	assert.Equal(t, -1.0, r.Coefficient("A"))
	require.NoError(t, r.AddProduct("A", 1))
	assert.Equal(t, 0.0, r.Coefficient("A"))
	assert.Equal(t, []string{"B"}, r.Compounds())
}

func TestReaction_SetBounds(t *testing.T) {
	r, _ := network.NewReaction("R", network.Forward)
	require.NoError(t, r.SetBounds(0, math.Inf(1)))
	assert.Equal(t, network.DefaultFluxBound, r.Upper)
	require.ErrorIs(t, r.SetBounds(-1, 5), network.ErrInvalidBounds)
	require.ErrorIs(t, r.SetBounds(5, 1), network.ErrInvalidBounds)
	require.ErrorIs(t, r.SetBounds(math.NaN(), 1), network.ErrInvalidBounds)

	rev, _ := network.NewReaction("V", network.Reverse)
	require.ErrorIs(t, rev.SetBounds(-5, 1), network.ErrInvalidBounds)
	require.NoError(t, rev.SetBounds(-5, -1))
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]network.Direction{
		"forward": network.Forward, "<->": network.Reversible,
		"Reverse": network.Reverse, "": network.Forward,
	} {
		d, err := network.ParseDirection(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, d, in)
	}
	_, err := network.ParseDirection("sideways")
	require.ErrorIs(t, err, network.ErrInvalidDirection)
}

func TestResolveCompartment(t *testing.T) {
	c, err := network.ResolveCompartment("GO:0005576", false)
	require.NoError(t, err)
	assert.Equal(t, "e", c.ID)
	assert.False(t, c.IsSteady)

	_, err = network.ResolveCompartment("plastid", false)
	require.ErrorIs(t, err, network.ErrUnknownCompartment)

	c, err = network.ResolveCompartment("plastid", true)
	require.NoError(t, err)
	assert.Equal(t, network.OtherCompartmentID, c.ID)
	assert.True(t, c.IsSteady)
}
