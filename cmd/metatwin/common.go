// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/metatwin/artifact"
	"github.com/katalvlaran/metatwin/config"
	"github.com/katalvlaran/metatwin/errcode"
	"github.com/katalvlaran/metatwin/fba"
	"github.com/katalvlaran/metatwin/jsonio"
	"github.com/katalvlaran/metatwin/measurement"
	"github.com/katalvlaran/metatwin/metrics"
	"github.com/katalvlaran/metatwin/numeric"
	"github.com/katalvlaran/metatwin/store"
	"github.com/katalvlaran/metatwin/twin"
)

// userError wraps err into a gn.Error carrying a CLI error code.
func userError(code gn.ErrorCode, msg string, vars []any, err error) error {
	return &gn.Error{
		Code: code,
		Msg:  msg,
		Vars: vars,
		Err:  err,
	}
}

// inputFlags name the documents a solving command reads.
type inputFlags struct {
	network string
	context string
	twin    string
	out     string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.network, "network", "n", "", "network JSON document")
	cmd.Flags().StringVarP(&f.context, "context", "c", "", "context JSON document for the network")
	cmd.Flags().StringVarP(&f.twin, "twin", "t", "", "twin JSON document (replaces --network/--context)")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "write the result document here instead of STDOUT")
}

// load builds the twin described by the flags.
func (f *inputFlags) load() (*twin.Twin, error) {
	if f.twin != "" {
		tw, err := jsonio.ReadTwinFile(f.twin)
		if err != nil {
			return nil, userError(errcode.TwinInvalidError, "Cannot read twin <em>%s</em>", []any{f.twin}, err)
		}
		return tw, nil
	}
	if f.network == "" {
		return nil, userError(errcode.NetworkLoadError, "Either <em>--network</em> or <em>--twin</em> is required",
			nil, fmt.Errorf("no input"))
	}
	net, err := jsonio.ReadNetworkFile(f.network)
	if err != nil {
		return nil, userError(errcode.NetworkLoadError, "Cannot read network <em>%s</em>", []any{f.network}, err)
	}
	var data *measurement.Context
	if f.context != "" {
		if data, err = jsonio.ReadContextFile(f.context); err != nil {
			return nil, userError(errcode.ContextLoadError, "Cannot read context <em>%s</em>", []any{f.context}, err)
		}
	}
	tw, err := twin.Single(net, data)
	if err != nil {
		return nil, userError(errcode.TwinInvalidError, "Context does not fit network <em>%s</em>", []any{net.ID}, err)
	}

	return tw, nil
}

// solverFlags override the solver section of the configuration.
type solverFlags struct {
	mode        string
	objective   string
	sense       string
	relaxation  float64
	parsimony   float64
	norm        string
	gapTolerant bool
}

func (f *solverFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.mode, "mode", "m", "", "solving mode: linear or quadratic")
	fs.StringVar(&f.objective, "objective", "", "reaction optimised in linear mode")
	fs.StringVar(&f.sense, "sense", "", "objective direction: max or min")
	fs.Float64Var(&f.relaxation, "relaxation", 0, "slack penalty strength (0 disables)")
	fs.Float64Var(&f.parsimony, "parsimony", 0, "flux penalty strength (0 disables)")
	fs.StringVar(&f.norm, "norm", "", "parsimony norm: l1 or l2")
	fs.BoolVar(&f.gapTolerant, "gap-tolerant", false, "add sink reactions for dead-end compounds")
}

// apply updates cfg with the flags the user set.
func (f *solverFlags) apply(cmd *cobra.Command, c *config.Config) {
	var opts []config.Option
	changed := cmd.Flags().Changed
	if changed("mode") {
		opts = append(opts, config.OptSolverMode(f.mode))
	}
	if changed("objective") {
		opts = append(opts, config.OptSolverObjective(f.objective))
	}
	if changed("sense") {
		opts = append(opts, config.OptSolverSense(f.sense))
	}
	if changed("relaxation") {
		opts = append(opts, config.OptSolverRelaxation(f.relaxation))
	}
	if changed("parsimony") {
		opts = append(opts, config.OptSolverParsimony(f.parsimony))
	}
	if changed("norm") {
		opts = append(opts, config.OptSolverNorm(f.norm))
	}
	if changed("gap-tolerant") {
		opts = append(opts, config.OptSolverGapTolerant(f.gapTolerant))
	}
	c.Update(opts)
}

// fbaOptions converts the configuration into solver options.
func fbaOptions() ([]fba.Option, error) {
	opts, err := cfg.FBAOptions(slog.Default(), collector)
	if err != nil {
		return nil, userError(errcode.SolverOptionsError, "Invalid solver settings", nil, err)
	}
	return opts, nil
}

func networkName(tw *twin.Twin) string {
	return strings.Join(tw.NetworkIDs(), "+")
}

// emit writes doc to path or STDOUT.
func emit(path string, doc any) error {
	if path == "" {
		return jsonio.Dump(os.Stdout, doc, true)
	}
	if err := jsonio.WriteFile(path, doc); err != nil {
		return userError(errcode.WriteFileError, "Cannot write <em>%s</em>", []any{path}, err)
	}
	gn.Info("Result written to <em>%s</em>", path)
	return nil
}

// record saves a run to the configured store and uploads doc to the
// configured artifact backend; both are optional.
func record(ctx context.Context, run store.Run, doc any, save func(*store.Store) error) error {
	if cfg.Store.DSN != "" {
		st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DSN)
		if err != nil {
			return userError(errcode.StoreOpenError, "Cannot open result store <em>%s</em>", []any{cfg.Store.DSN}, err)
		}
		defer st.Close()
		if err = save(st); err != nil {
			return userError(errcode.StoreWriteError, "Cannot record run <em>%s</em>", []any{run.ID}, err)
		}
		slog.Info("Run recorded", "run", run.ID, "driver", st.Driver())
	}

	if cfg.Artifact.Driver != "" {
		ac := cfg.Artifact
		bs, err := artifact.Open(ctx, artifact.Config{
			Driver: artifact.Driver(ac.Driver), Root: ac.Root, Bucket: ac.Bucket,
			Region: ac.Region, Endpoint: ac.Endpoint, PathStyle: ac.PathStyle,
		})
		if err != nil {
			return userError(errcode.ArtifactOpenError, "Cannot open artifact store <em>%s</em>", []any{ac.Driver}, err)
		}
		key := artifact.RunKey(run.ID, run.Kind)
		info, err := artifact.PutJSON(ctx, bs, key, doc, map[string]string{
			"kind": run.Kind, "mode": run.Mode, "network": run.Network,
		})
		if err != nil {
			return userError(errcode.ArtifactUploadError, "Cannot upload <em>%s</em>", []any{key}, err)
		}
		slog.Info("Artifact uploaded", "key", info.Key, "size", humanize.Bytes(uint64(info.Size)))
	}

	return nil
}

// summarize prints status counts of res and solve totals to STDERR.
func summarize(kind string, res *fba.Result, elapsed time.Duration) {
	counts := make(map[numeric.Status]int)
	for _, st := range res.Statuses() {
		counts[st]++
	}
	fmt.Fprintf(os.Stderr, "%s: %s simulations, %s reactions in %s\n",
		kind,
		humanize.Comma(int64(len(res.Simulations))),
		humanize.Comma(int64(len(res.ReactionIDs))),
		gnfmt.TimeString(elapsed.Seconds()),
	)
	for _, st := range []numeric.Status{
		numeric.StatusOptimal, numeric.StatusInfeasible, numeric.StatusUnbounded, numeric.StatusNumericalError,
	} {
		if n := counts[st]; n > 0 {
			fmt.Fprintf(os.Stderr, "  %-16s %s\n", st, humanize.Comma(int64(n)))
		}
	}

	totals, err := metrics.Totals(registry)
	if err != nil {
		slog.Warn("Cannot gather solve metrics", "error", err)
		return
	}
	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		slog.Debug("Solve total", "unit", k, "count", totals[k])
	}
}
