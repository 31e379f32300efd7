// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"time"

	"github.com/gnames/gnlib"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/metatwin/config"
	"github.com/katalvlaran/metatwin/errcode"
	"github.com/katalvlaran/metatwin/fba"
	"github.com/katalvlaran/metatwin/fva"
	"github.com/katalvlaran/metatwin/jsonio"
	"github.com/katalvlaran/metatwin/store"
	"github.com/katalvlaran/metatwin/twin"
)

func getFVACmd() *cobra.Command {
	var (
		in        inputFlags
		solver    solverFlags
		fraction  float64
		reactions []string
	)

	cmd := &cobra.Command{
		Use:   "fva",
		Short: "Runs flux-variability analysis",
		Long: `Finds the smallest and largest flux of each reaction while the base
optimum is held to within --fraction of its value.

Examples:
  # Ranges of every reaction at 90% of maximal biomass
  metatwin fva -n net.json --objective ecoli:BIOMASS --fraction 0.9

  # Ranges of two reactions of a twin member
  metatwin fva -t twin.json --objective host:BIOMASS -r host:PGI -r host:PFK`,
		RunE: func(cmd *cobra.Command, args []string) error {
			solver.apply(cmd, cfg)
			if cmd.Flags().Changed("fraction") {
				cfg.Update([]config.Option{config.OptSolverFraction(fraction)})
			}
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
			s, err := newFVA(opts)
			if err != nil {
				err = userError(errcode.SolverOptionsError, "Invalid solver settings", nil, err)
				gnlib.PrintUserMessage(err)
				return err
			}

			return runFVA(s, tw, in.out, reactions)
		},
	}

	in.register(cmd)
	solver.register(cmd)
	cmd.Flags().Float64Var(&fraction, "fraction", 1, "fraction of the optimum to hold, in (0,1]")
	cmd.Flags().StringSliceVarP(&reactions, "reactions", "r", nil, "reactions to range (default: all)")

	return cmd
}

func newFVA(opts []fba.Option) (*fva.Solver, error) {
	base, err := fba.New(opts...)
	if err != nil {
		return nil, err
	}

	return fva.NewWithBase(base, cfg.FVAOptions()...)
}

func runFVA(s *fva.Solver, tw *twin.Twin, out string, reactions []string) error {
	ctx := context.Background()
	run := store.NewRun("fva", s.Base().Mode().String(), networkName(tw))
	start := time.Now()
	res, err := s.Solve(ctx, tw, reactions)
	if err != nil {
		err = userError(errcode.VariabilityError, "Flux variability failed for <em>%s</em>", []any{tw.ID}, err)
		gnlib.PrintUserMessage(err)
		return err
	}
	run.Duration = time.Since(start)
	summarize("fva", res.Base, run.Duration)

	doc := jsonio.VariabilityToDoc(res)
	if err = record(ctx, run, doc, func(st *store.Store) error {
		return st.SaveVariability(ctx, run, res)
	}); err != nil {
		gnlib.PrintUserMessage(err)
		return err
	}

	return emit(out, doc)
}
