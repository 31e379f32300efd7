package store_test

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metatwin/builder"
	"github.com/katalvlaran/metatwin/fba"
	"github.com/katalvlaran/metatwin/fva"
	"github.com/katalvlaran/metatwin/knockout"
	"github.com/katalvlaran/metatwin/network"
	"github.com/katalvlaran/metatwin/store"
)

const delta = 1e-3

var maxR2 = []fba.Option{fba.WithObjective(fba.MaximizeFlux("R2"))}

func toy(t *testing.T) *network.Network {
	t.Helper()
	n, err := builder.BuildNetwork("toy", nil, builder.Toy())
	require.NoError(t, err)

	return n
}

func open(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(context.Background(), store.DriverSQLite, filepath.Join(t.TempDir(), "db", "metatwin.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	return st
}

func TestOpen_Errors(t *testing.T) {
	_, err := store.Open(context.Background(), "oracle", "x")
	require.ErrorIs(t, err, store.ErrUnknownDriver)

	st := open(t)
	assert.Equal(t, store.DriverSQLite, st.Driver())
	_, err = st.Run(context.Background(), "missing")
	require.ErrorIs(t, err, store.ErrRunNotFound)
	_, err = st.Snapshot(context.Background(), "missing")
	require.ErrorIs(t, err, store.ErrRunNotFound)
}

func TestSaveFlux(t *testing.T) {
	ctx := context.Background()
	st := open(t)

	s, err := fba.New(maxR2...)
	require.NoError(t, err)
	res, err := s.SolveNetwork(ctx, toy(t), nil)
	require.NoError(t, err)

	run := store.NewRun("fba", "linear", "toy")
	run.Duration = 1500 * time.Millisecond
	require.NoError(t, st.SaveFlux(ctx, run, res))

	got, err := st.Run(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "fba", got.Kind)
	assert.Equal(t, 1, got.Simulations)
	assert.Equal(t, 1500*time.Millisecond, got.Duration)
	assert.True(t, run.StartedAt.Equal(got.StartedAt))

	sims, err := st.Simulations(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, sims, 1)
	assert.Equal(t, "optimal", sims[0].Status)
	assert.InDelta(t, 1000, sims[0].Objective, delta)

	rows, err := st.Fluxes(ctx, run.ID, store.LabelBase)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "R1", rows[0].Reaction)
	assert.InDelta(t, 1000, rows[0].Flux, delta)
	assert.True(t, math.IsNaN(rows[0].Min))

	snap, err := st.Snapshot(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"R1", "R2"}, snap.ReactionIDs)
	assert.Equal(t, []string{"optimal"}, snap.Statuses)
	assert.InDelta(t, 1000, snap.Flux[0][1], delta)

	other := store.NewRun("fba", "linear", "toy")
	require.NoError(t, st.SaveFlux(ctx, other, res))
	runs, err := st.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, other.ID, runs[0].ID)
}

func TestSaveVariability(t *testing.T) {
	ctx := context.Background()
	st := open(t)

	s, err := fva.New(maxR2, fva.WithFraction(0.5))
	require.NoError(t, err)
	res, err := s.SolveNetwork(ctx, toy(t), nil, nil)
	require.NoError(t, err)

	run := store.NewRun("fva", "linear", "toy")
	require.NoError(t, st.SaveVariability(ctx, run, res))

	rows, err := st.Fluxes(ctx, run.ID, store.LabelBase)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	r2 := rows[1]
	assert.Equal(t, "R2", r2.Reaction)
	assert.InDelta(t, 500, r2.Min, delta)
	assert.InDelta(t, 1000, r2.Max, delta)
	assert.InDelta(t, 1000, r2.Flux, delta)
}

func TestSaveKnockout(t *testing.T) {
	ctx := context.Background()
	st := open(t)

	s, err := knockout.New(maxR2)
	require.NoError(t, err)
	specs, err := knockout.ParseSpecs([]string{"R1", "R9"}, knockout.Reaction)
	require.NoError(t, err)
	res, err := s.SolveNetwork(ctx, toy(t), nil, specs)
	require.NoError(t, err)

	run := store.NewRun("knockout", "linear", "toy")
	require.NoError(t, st.SaveKnockout(ctx, run, res))

	sims, err := st.Simulations(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, sims, 3)
	byLabel := map[string]store.SimulationRow{}
	for _, r := range sims {
		byLabel[r.Label] = r
	}
	assert.InDelta(t, 1000, byLabel[store.LabelBase].Objective, delta)
	assert.InDelta(t, 0, byLabel[store.KnockoutLabel("R1")].Objective, delta)
	assert.Equal(t, store.LabelInvalid, byLabel[store.KnockoutLabel("R9")].Status)
	assert.Equal(t, -1, byLabel[store.KnockoutLabel("R9")].Sim)

	rows, err := st.Fluxes(ctx, run.ID, store.KnockoutLabel("R1"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "R2", rows[0].Reaction)
	assert.InDelta(t, 0, rows[0].Flux, delta)
}

func TestSaveKnockout_ReservedAndDuplicateIDs(t *testing.T) {
	ctx := context.Background()
	st := open(t)

	base, err := network.NewReaction("base", network.Forward)
	require.NoError(t, err)
	require.NoError(t, base.AddSubstrate("B", 1))
	require.NoError(t, base.AddProduct("B_e", 1))
	net := toy(t)
	require.NoError(t, net.AddReaction(base))

	s, err := knockout.New(maxR2)
	require.NoError(t, err)
	specs, err := knockout.ParseSpecs([]string{"base"}, knockout.Reaction)
	require.NoError(t, err)
	res, err := s.SolveNetwork(ctx, net, nil, specs)
	require.NoError(t, err)

	run := store.NewRun("knockout", "linear", "toy")
	require.NoError(t, st.SaveKnockout(ctx, run, res))
	sims, err := st.Simulations(ctx, run.ID)
	require.NoError(t, err)
	labels := make([]string, len(sims))
	for k, r := range sims {
		labels[k] = r.Label
	}
	assert.ElementsMatch(t, []string{store.LabelBase, store.KnockoutLabel("base")}, labels)

	res.Entries = append(res.Entries, res.Entries[0])
	err = st.SaveKnockout(ctx, store.NewRun("knockout", "linear", "toy"), res)
	require.ErrorIs(t, err, knockout.ErrDuplicateSpec)
}
