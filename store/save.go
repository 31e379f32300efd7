// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/gnames/gnfmt"

	"github.com/katalvlaran/metatwin/fba"
	"github.com/katalvlaran/metatwin/fva"
	"github.com/katalvlaran/metatwin/knockout"
)

// Labels of the simulation groups within one run.
const (
	LabelBase      = "base"
	LabelInvalid   = "invalid"
	knockoutPrefix = "ko:"
	invalidSimIdx  = -1
)

// KnockoutLabel is the label of the rows of knockout spec id. The prefix
// keeps spec ids apart from LabelBase.
func KnockoutLabel(id string) string { return knockoutPrefix + id }

// Snapshot is the compact form of a base flux result kept in runs.payload.
type Snapshot struct {
	Mode        string
	ReactionIDs []string
	Conditions  []string
	Statuses    []string
	Objectives  []float64   // NaN without an optimum
	Flux        [][]float64 // [sim][reaction]; empty without an optimum
}

// SnapshotOf summarises r.
func SnapshotOf(r *fba.Result) Snapshot {
	s := Snapshot{
		Mode:        r.Mode.String(),
		ReactionIDs: r.ReactionIDs,
		Conditions:  r.Conditions,
		Statuses:    make([]string, len(r.Simulations)),
		Objectives:  make([]float64, len(r.Simulations)),
		Flux:        make([][]float64, len(r.Simulations)),
	}
	for i, sim := range r.Simulations {
		s.Statuses[i] = sim.Status.String()
		s.Objectives[i] = sim.Objective
		s.Flux[i] = sim.Flux
	}

	return s
}

// SaveFlux stores a flux-balance result under run.
func (s *Store) SaveFlux(ctx context.Context, run Run, res *fba.Result) error {
	return s.save(ctx, run, res, func(tx *sql.Tx) error {
		return s.insertFlux(ctx, tx, run.ID, LabelBase, res, nil)
	})
}

// SaveVariability stores the base optimum and every range of res.
func (s *Store) SaveVariability(ctx context.Context, run Run, res *fva.Result) error {
	return s.save(ctx, run, res.Base, func(tx *sql.Tx) error {
		if err := s.insertSimulations(ctx, tx, run.ID, LabelBase, res.Base); err != nil {
			return err
		}
		q := s.rebind(`INSERT INTO fluxes (run_id, label, sim, reaction, flux, min_flux, max_flux)
			VALUES (?, ?, ?, ?, ?, ?, ?)`)
		for i := range res.Simulations {
			for _, rid := range res.ReactionIDs {
				rg, _ := res.Range(rid, i)
				v, ok := res.Base.Flux(rid, i)
				if !ok {
					v = math.NaN()
				}
				if _, err := tx.ExecContext(ctx, q, run.ID, LabelBase, i, rid,
					nullable(v), nullable(rg.Min), nullable(rg.Max)); err != nil {
					return fmt.Errorf("store: insert range %s: %w", rid, err)
				}
			}
		}
		return nil
	})
}

// SaveKnockout stores the baseline and each knockout under
// KnockoutLabel(spec id). Unresolvable specs get a single "invalid"
// simulation row. Duplicate spec ids are rejected before anything is written.
func (s *Store) SaveKnockout(ctx context.Context, run Run, res *knockout.Result) error {
	specs := make([]knockout.Spec, len(res.Entries))
	for k, e := range res.Entries {
		specs[k] = e.Spec
	}
	if err := knockout.CheckUnique(specs); err != nil {
		return fmt.Errorf("store: %w", err)
	}

	return s.save(ctx, run, res.Baseline, func(tx *sql.Tx) error {
		if res.Baseline != nil {
			if err := s.insertFlux(ctx, tx, run.ID, LabelBase, res.Baseline, nil); err != nil {
				return err
			}
		}
		q := s.rebind(`INSERT INTO simulations (run_id, label, sim, condition, status, objective, threshold)
			VALUES (?, ?, ?, ?, ?, NULL, NULL)`)
		for _, e := range res.Entries {
			label := KnockoutLabel(e.Spec.ID)
			if e.Invalid() {
				if _, err := tx.ExecContext(ctx, q, run.ID, label, invalidSimIdx, "", LabelInvalid); err != nil {
					return fmt.Errorf("store: insert knockout %s: %w", e.Spec.ID, err)
				}
				continue
			}
			if err := s.insertFlux(ctx, tx, run.ID, label, e.Result, e.Disabled); err != nil {
				return err
			}
		}
		return nil
	})
}

// save writes the run row with its snapshot payload, then body, in one
// transaction.
func (s *Store) save(ctx context.Context, run Run, base *fba.Result, body func(*sql.Tx) error) (retErr error) {
	var payload []byte
	if base != nil {
		enc := gnfmt.GNgob{}
		var err error
		if payload, err = enc.Encode(SnapshotOf(base)); err != nil {
			return fmt.Errorf("store: encode payload: %w", err)
		}
		run.Simulations = len(base.Simulations)
	}
	if run.Duration == 0 {
		run.Duration = time.Since(run.StartedAt)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, s.rebind(`INSERT INTO runs
		(id, kind, mode, network, started_at, duration_ms, simulations, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		run.ID, run.Kind, run.Mode, run.Network, run.StartedAt.UTC().Format(timeLayout),
		run.Duration.Milliseconds(), run.Simulations, payload,
	); err != nil {
		return fmt.Errorf("store: insert run %s: %w", run.ID, err)
	}
	if err = body(tx); err != nil {
		return err
	}

	return tx.Commit()
}

// insertFlux writes simulation rows and the flux of every reaction not in
// skip (knocked-out reactions are implied zero).
func (s *Store) insertFlux(ctx context.Context, tx *sql.Tx, runID, label string, res *fba.Result, skip []string) error {
	if err := s.insertSimulations(ctx, tx, runID, label, res); err != nil {
		return err
	}
	omit := make(map[string]bool, len(skip))
	for _, rid := range skip {
		omit[rid] = true
	}
	q := s.rebind(`INSERT INTO fluxes (run_id, label, sim, reaction, flux, min_flux, max_flux)
		VALUES (?, ?, ?, ?, ?, NULL, NULL)`)
	for i, sim := range res.Simulations {
		if sim.Flux == nil {
			continue
		}
		for j, rid := range res.ReactionIDs {
			if omit[rid] {
				continue
			}
			if _, err := tx.ExecContext(ctx, q, runID, label, i, rid, nullable(sim.Flux[j])); err != nil {
				return fmt.Errorf("store: insert flux %s: %w", rid, err)
			}
		}
	}

	return nil
}

func (s *Store) insertSimulations(ctx context.Context, tx *sql.Tx, runID, label string, res *fba.Result) error {
	q := s.rebind(`INSERT INTO simulations (run_id, label, sim, condition, status, objective, threshold)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	for i, sim := range res.Simulations {
		if _, err := tx.ExecContext(ctx, q, runID, label, i, sim.Condition, sim.Status.String(),
			nullable(sim.Objective), nullable(sim.Threshold)); err != nil {
			return fmt.Errorf("store: insert simulation %d: %w", i, err)
		}
	}

	return nil
}

// nullable maps NaN and ±Inf to NULL.
func nullable(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: !math.IsNaN(v) && !math.IsInf(v, 0)}
}
