// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnlib"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/metatwin/errcode"
	"github.com/katalvlaran/metatwin/store"
)

func getRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs [run-id]",
		Short: "Lists runs recorded in the result store",
		Long: `Without arguments lists recorded runs, newest first. With a run id prints
the outcome of every simulation of that run.

The store is configured by store.driver and store.dsn (or
METATWIN_STORE_DRIVER, METATWIN_STORE_DSN).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if cfg.Store.DSN == "" {
				err := userError(errcode.StoreOpenError, "No result store configured, set <em>store.dsn</em>", nil,
					fmt.Errorf("empty dsn"))
				gnlib.PrintUserMessage(err)
				return err
			}
			st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DSN)
			if err != nil {
				err = userError(errcode.StoreOpenError, "Cannot open result store <em>%s</em>", []any{cfg.Store.DSN}, err)
				gnlib.PrintUserMessage(err)
				return err
			}
			defer st.Close()

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			if len(args) == 1 {
				err = showRun(ctx, st, args[0], w)
			} else {
				err = listRuns(ctx, st, w)
			}
			if err != nil {
				gnlib.PrintUserMessage(err)
				return err
			}

			return w.Flush()
		},
	}

	return cmd
}

func listRuns(ctx context.Context, st *store.Store, w *tabwriter.Writer) error {
	runs, err := st.Runs(ctx)
	if err != nil {
		return userError(errcode.StoreOpenError, "Cannot list runs", nil, err)
	}
	fmt.Fprintln(w, "ID\tKIND\tMODE\tNETWORK\tSTARTED\tDURATION\tSIMULATIONS")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Kind, r.Mode, r.Network,
			humanize.Time(r.StartedAt), gnfmt.TimeString(r.Duration.Seconds()),
			humanize.Comma(int64(r.Simulations)))
	}

	return nil
}

func showRun(ctx context.Context, st *store.Store, id string, w *tabwriter.Writer) error {
	run, err := st.Run(ctx, id)
	if err != nil {
		return userError(errcode.StoreOpenError, "Cannot find run <em>%s</em>", []any{id}, err)
	}
	rows, err := st.Simulations(ctx, run.ID)
	if err != nil {
		return userError(errcode.StoreOpenError, "Cannot read run <em>%s</em>", []any{id}, err)
	}
	fmt.Fprintf(w, "%s %s (%s) on %s\n\n", run.Kind, run.ID, run.Mode, run.Network)
	fmt.Fprintln(w, "LABEL\tSIM\tCONDITION\tSTATUS\tOBJECTIVE")
	for _, r := range rows {
		obj := "-"
		if !math.IsNaN(r.Objective) {
			obj = humanize.FormatFloat("#,###.######", r.Objective)
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", r.Label, r.Sim, r.Condition, r.Status, obj)
	}

	return nil
}
