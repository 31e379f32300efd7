// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/gnames/gnfmt"
)

// SimulationRow is one stored simulation outcome. Objective and Threshold
// are NaN when NULL.
type SimulationRow struct {
	Label     string
	Sim       int
	Condition string
	Status    string
	Objective float64
	Threshold float64
}

// FluxRow is one stored reaction flux; absent values are NaN.
type FluxRow struct {
	Label    string
	Sim      int
	Reaction string
	Flux     float64
	Min      float64
	Max      float64
}

// Simulations returns the simulation rows of run id ordered by label, sim.
func (s *Store) Simulations(ctx context.Context, id string) ([]SimulationRow, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`SELECT label, sim, condition, status, objective, threshold
		FROM simulations WHERE run_id = ? ORDER BY label, sim`), id)
	if err != nil {
		return nil, fmt.Errorf("store: select simulations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var res []SimulationRow
	for rows.Next() {
		var r SimulationRow
		var obj, thr sql.NullFloat64
		if err = rows.Scan(&r.Label, &r.Sim, &r.Condition, &r.Status, &obj, &thr); err != nil {
			return nil, fmt.Errorf("store: scan simulation: %w", err)
		}
		r.Objective, r.Threshold = orNaN(obj), orNaN(thr)
		res = append(res, r)
	}

	return res, rows.Err()
}

// Fluxes returns the flux rows of run id with label, ordered by sim and
// reaction id.
func (s *Store) Fluxes(ctx context.Context, id, label string) ([]FluxRow, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`SELECT label, sim, reaction, flux, min_flux, max_flux
		FROM fluxes WHERE run_id = ? AND label = ? ORDER BY sim, reaction`), id, label)
	if err != nil {
		return nil, fmt.Errorf("store: select fluxes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var res []FluxRow
	for rows.Next() {
		var r FluxRow
		var v, lo, hi sql.NullFloat64
		if err = rows.Scan(&r.Label, &r.Sim, &r.Reaction, &v, &lo, &hi); err != nil {
			return nil, fmt.Errorf("store: scan flux: %w", err)
		}
		r.Flux, r.Min, r.Max = orNaN(v), orNaN(lo), orNaN(hi)
		res = append(res, r)
	}

	return res, rows.Err()
}

// Snapshot decodes the payload of run id.
func (s *Store) Snapshot(ctx context.Context, id string) (Snapshot, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT payload FROM runs WHERE id = ?`), id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("store: select payload: %w", err)
	}

	var snap Snapshot
	if len(payload) == 0 {
		return snap, nil
	}
	enc := gnfmt.GNgob{}
	if err = enc.Decode(payload, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("store: decode payload: %w", err)
	}

	return snap, nil
}

func orNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}
