// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnlib"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/metatwin/errcode"
	"github.com/katalvlaran/metatwin/jsonio"
	"github.com/katalvlaran/metatwin/knockout"
	"github.com/katalvlaran/metatwin/store"
)

func getKnockoutCmd() *cobra.Command {
	var (
		in       inputFlags
		solver   solverFlags
		specPath string
		kindName string
		quiet    bool
	)

	cmd := &cobra.Command{
		Use:   "knockout",
		Short: "Screens reaction or gene knockouts",
		Long: `Runs a baseline solve, then one solve per knockout with the listed
reactions (or the reactions their genes disable) fixed at zero.

The specs file has one knockout per line, targets separated by commas.
Targets carry the network prefix: "ecoli:PGI" for a reaction, "ecoli:b4025"
for a gene.
Blank lines and lines starting with '#' are skipped. Specs that name
unknown reactions or genes are reported as invalid and do not stop the
screen.

Examples:
  # Single and double reaction knockouts
  metatwin knockout -n net.json --objective ecoli:BIOMASS --specs ko.txt

  # Gene knockouts, result to a file
  metatwin knockout -n net.json --objective ecoli:BIOMASS --specs genes.txt --kind gene -o ko.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			solver.apply(cmd, cfg)
			specs, err := readSpecs(specPath, kindName)
			if err != nil {
				gnlib.PrintUserMessage(err)
				return err
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

			var kopts []knockout.Option
			if !quiet {
				bar := pb.Full.Start(len(specs))
				bar.Set("prefix", "Knockouts: ")
				bar.Set(pb.CleanOnFinish, true)
				defer bar.Finish()
				kopts = append(kopts, knockout.WithProgress(func(done, total int) {
					bar.SetCurrent(int64(done))
				}))
			}
			s, err := knockout.New(opts, kopts...)
			if err != nil {
				err = userError(errcode.SolverOptionsError, "Invalid solver settings", nil, err)
				gnlib.PrintUserMessage(err)
				return err
			}

			ctx := context.Background()
			run := store.NewRun("knockout", s.Base().Mode().String(), networkName(tw))
			start := time.Now()
			res, err := s.Solve(ctx, tw, specs)
			if err != nil {
				err = userError(errcode.KnockoutError, "Knockout screen failed for <em>%s</em>", []any{tw.ID}, err)
				gnlib.PrintUserMessage(err)
				return err
			}
			run.Duration = time.Since(start)
			if res.Baseline != nil {
				summarize("knockout", res.Baseline, run.Duration)
			}
			invalid := 0
			for _, e := range res.Entries {
				if e.Invalid() {
					invalid++
				}
			}
			fmt.Fprintf(os.Stderr, "  %-16s %s of %s\n", "invalid specs",
				humanize.Comma(int64(invalid)), humanize.Comma(int64(len(specs))))

			doc := jsonio.KnockoutToDoc(res)
			if err = record(ctx, run, doc, func(st *store.Store) error {
				return st.SaveKnockout(ctx, run, res)
			}); err != nil {
				gnlib.PrintUserMessage(err)
				return err
			}

			return emit(in.out, doc)
		},
	}

	in.register(cmd)
	solver.register(cmd)
	cmd.Flags().StringVarP(&specPath, "specs", "s", "", "knockout specs file, one per line")
	cmd.Flags().StringVarP(&kindName, "kind", "k", "reaction", "target kind: reaction or gene")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide the progress bar")

	return cmd
}

// readSpecs parses the knockout specs file at path.
func readSpecs(path, kindName string) ([]knockout.Spec, error) {
	kind, err := knockout.ParseKind(kindName)
	if err != nil {
		return nil, userError(errcode.KnockoutSpecError, "Unknown knockout kind <em>%s</em>", []any{kindName}, err)
	}
	if path == "" {
		return nil, userError(errcode.KnockoutSpecError, "The <em>--specs</em> file is required", nil,
			knockout.ErrEmptySpec)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, userError(errcode.ReadFileError, "Cannot open <em>%s</em>", []any{path}, err)
	}
	defer f.Close()

	specs, err := knockout.ReadSpecs(f, kind)
	if err != nil {
		return nil, userError(errcode.KnockoutSpecError, "Cannot parse specs in <em>%s</em>", []any{path}, err)
	}

	return specs, nil
}
