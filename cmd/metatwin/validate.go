// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/gnames/gnlib"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/metatwin/errcode"
	"github.com/katalvlaran/metatwin/reach"
)

func getValidateCmd() *cobra.Command {
	var in inputFlags

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Checks a network, context or twin and reports dead ends",
		Long: `Loads the inputs, checks every network and context and the agreement of
simulation conditions, then lists dead-end compounds: steady compounds that
no reaction can both produce and consume. Dead ends make a network
infeasible under strict balances; --gap-tolerant in the solving commands
adds a sink for each of them. Reactions that no path from the medium
(compounds of non-steady compartments) reaches are listed as disconnected.

Examples:
  metatwin validate -n net.json -c ctx.json
  metatwin validate -t twin.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw, err := in.load()
			if err != nil {
				gnlib.PrintUserMessage(err)
				return err
			}
			if err = tw.Validate(); err != nil {
				err = userError(errcode.TwinInvalidError, "Twin <em>%s</em> is invalid", []any{tw.ID}, err)
				gnlib.PrintUserMessage(err)
				return err
			}

			var report strings.Builder
			for _, nid := range tw.NetworkIDs() {
				n, _ := tw.Network(nid)
				dead, err := n.DeadEnds()
				if err != nil {
					err = userError(errcode.NetworkLoadError, "Cannot analyse network <em>%s</em>", []any{nid}, err)
					gnlib.PrintUserMessage(err)
					return err
				}
				fmt.Fprintf(&report, "<em>%s</em>: %d compounds, %d reactions, %d genes\n",
					nid, len(n.CompoundIDs()), len(n.ReactionIDs()), len(n.Genes()))
				if len(dead) > 0 {
					fmt.Fprintf(&report, "  dead ends: %s\n", strings.Join(dead, ", "))
				}
				g, err := reach.Build(n)
				if err == nil {
					var res *reach.Result
					if res, err = reach.Search(g); err == nil {
						if _, rs := res.Unreached(); len(rs) > 0 {
							fmt.Fprintf(&report, "  disconnected from the medium: %s\n", strings.Join(rs, ", "))
						}
					}
				}
				if err != nil {
					err = userError(errcode.NetworkLoadError, "Cannot analyse network <em>%s</em>", []any{nid}, err)
					gnlib.PrintUserMessage(err)
					return err
				}
			}
			fmt.Println(gnlib.FormatMessage(report.String(), nil))
			fmt.Println(gnlib.FormatMessage("<em>✓ Inputs are valid.</em>", nil))

			return nil
		},
	}

	in.register(cmd)

	return cmd
}
