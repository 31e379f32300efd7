// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"math"
	"slices"

	"github.com/gnames/gnlib"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/metatwin/builder"
	"github.com/katalvlaran/metatwin/errcode"
	"github.com/katalvlaran/metatwin/jsonio"
	"github.com/katalvlaran/metatwin/measurement"
	"github.com/katalvlaran/metatwin/twin"
)

func getGenerateCmd() *cobra.Command {
	var (
		topology    string
		size        int
		reactions   int
		prob        float64
		seed        int64
		genes       bool
		simulations int
		measure     string
		amplitude   float64
		trend       float64
		noise       float64
		spread      float64
		out         string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Writes a synthetic network, optionally with a measured series",
		Long: `Builds a synthetic network and writes it as a twin document.

Topologies:
  - pathway:  uptake, a chain of --size compounds and export
  - branched: uptake, --size parallel branches and export
  - random:   --size compounds, --reactions reactions, entries with probability --prob
  - toy:      two reactions with gene rules

With --simulations n, a context is attached holding one series over the
--measure reaction (default: the first reaction).

Examples:
  metatwin generate --topology pathway --size 5 -o chain.json
  metatwin generate --topology random --size 20 --reactions 40 --seed 7 --simulations 3 --noise 0.1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			bopts := []builder.BuilderOption{builder.WithSeed(seed)}
			if genes {
				bopts = append(bopts, builder.WithGenes())
			}
			var con builder.Constructor
			switch topology {
			case "pathway":
				con = builder.LinearPathway(size)
			case "branched":
				con = builder.Branched(size)
			case "random":
				con = builder.RandomNetwork(size, reactions, prob)
			case "toy":
				con = builder.Toy()
			default:
				err := userError(errcode.NetworkLoadError, "Unknown topology <em>%s</em>", []any{topology},
					fmt.Errorf("topology %q", topology))
				gnlib.PrintUserMessage(err)
				return err
			}

			net, err := builder.BuildNetwork(topology, bopts, con)
			if err != nil {
				err = userError(errcode.NetworkLoadError, "Cannot build <em>%s</em> network", []any{topology}, err)
				gnlib.PrintUserMessage(err)
				return err
			}

			var data *measurement.Context
			if simulations > 0 {
				if measure == "" && len(net.ReactionIDs()) > 0 {
					measure = net.ReactionIDs()[0]
				}
				if noise < 0 || spread < 0 || math.IsNaN(amplitude+trend) || math.IsInf(amplitude+trend, 0) {
					err := userError(errcode.ContextLoadError, "Series settings must be finite with non-negative noise and spread",
						nil, fmt.Errorf("noise=%g spread=%g", noise, spread))
					gnlib.PrintUserMessage(err)
					return err
				}
				sopts := append(slices.Clone(bopts),
					builder.WithAmplitude(amplitude), builder.WithTrend(trend), builder.WithSpread(spread))
				if noise > 0 {
					sopts = append(sopts, builder.WithNoise(noise))
				}
				e, err := builder.Series("flux_"+measure, measure, simulations, 1, sopts...)
				if err == nil {
					data = measurement.New(topology)
					err = data.Add(e)
				}
				if err != nil {
					err = userError(errcode.ContextLoadError, "Cannot build series over <em>%s</em>", []any{measure}, err)
					gnlib.PrintUserMessage(err)
					return err
				}
			}

			tw, err := twin.Single(net, data)
			if err != nil {
				err = userError(errcode.TwinInvalidError, "Series does not fit network <em>%s</em>", []any{net.ID}, err)
				gnlib.PrintUserMessage(err)
				return err
			}

			return emit(out, jsonio.TwinToDoc(tw))
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&topology, "topology", "pathway", "pathway, branched, random or toy")
	fs.IntVar(&size, "size", 5, "compounds (pathway, random) or branches (branched)")
	fs.IntVar(&reactions, "reactions", 10, "reactions of a random network")
	fs.Float64Var(&prob, "prob", 0.2, "stoichiometry density of a random network")
	fs.Int64Var(&seed, "seed", 1, "random seed")
	fs.BoolVar(&genes, "genes", false, "attach one gene rule per reaction")
	fs.IntVar(&simulations, "simulations", 0, "simulations of the measured series (0: no context)")
	fs.StringVar(&measure, "measure", "", "reaction measured by the series")
	fs.Float64Var(&amplitude, "amplitude", 1, "series level")
	fs.Float64Var(&trend, "trend", 0, "series change per simulation")
	fs.Float64Var(&noise, "noise", 0, "series Gaussian noise")
	fs.Float64Var(&spread, "spread", 0, "half-width of the measured bounds")
	fs.StringVarP(&out, "out", "o", "", "write the twin document here instead of STDOUT")

	return cmd
}
