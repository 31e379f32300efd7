// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"time"

	"github.com/gnames/gnlib"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/metatwin/errcode"
	"github.com/katalvlaran/metatwin/fba"
	"github.com/katalvlaran/metatwin/jsonio"
	"github.com/katalvlaran/metatwin/store"
)

func getSolveCmd() *cobra.Command {
	var (
		in     inputFlags
		solver solverFlags
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Runs flux-balance analysis on a network or twin",
		Long: `Computes one flux distribution per simulation condition.

Linear mode optimises a single reaction (--objective, --sense) subject to
steady state and the measured bounds. Reaction ids are prefixed with their
network id ("<network>:<reaction>"). Quadratic mode fits fluxes to the
measured targets weighted by their confidence. Relaxation lets the
steady-state balances break at a price; flux bounds stay hard. Parsimony
adds a flux penalty.

Examples:
  # Maximise biomass of a single network with its context
  metatwin solve -n net.json -c ctx.json --objective ecoli:BIOMASS

  # Fit measured fluxes of a twin with slack on the balances
  metatwin solve -t twin.json --mode quadratic --relaxation 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			solver.apply(cmd, cfg)
			tw, err := in.load()
			if err != nil {
				gnlib.PrintUserMessage(err)
				return err
			}
			opts, err := fbaOptions()
			if err != nil {
				gnlib.PrintUserMessage(err)
				return err
			}
			s, err := fba.New(opts...)
			if err != nil {
				err = userError(errcode.SolverOptionsError, "Invalid solver settings", nil, err)
				gnlib.PrintUserMessage(err)
				return err
			}

			ctx := context.Background()
			run := store.NewRun("fba", s.Mode().String(), networkName(tw))
			start := time.Now()
			res, err := s.Solve(ctx, tw)
			if err != nil {
				err = userError(errcode.SolveError, "Flux balance failed for <em>%s</em>", []any{tw.ID}, err)
				gnlib.PrintUserMessage(err)
				return err
			}
			run.Duration = time.Since(start)
			summarize("fba", res, run.Duration)

			doc := jsonio.FluxResultToDoc(res)
			if err = record(ctx, run, doc, func(st *store.Store) error {
				return st.SaveFlux(ctx, run, res)
			}); err != nil {
				gnlib.PrintUserMessage(err)
				return err
			}

			return emit(in.out, doc)
		},
	}

	in.register(cmd)
	solver.register(cmd)

	return cmd
}
