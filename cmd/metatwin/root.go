// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/gnames/gn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/metatwin/config"
	"github.com/katalvlaran/metatwin/errcode"
	"github.com/katalvlaran/metatwin/logger"
	"github.com/katalvlaran/metatwin/metrics"
)

var (
	cfgFile   string
	jobs      int
	logLevel  string
	cfg       *config.Config
	registry  *prometheus.Registry
	collector *metrics.Collector
	logCloser io.Closer
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "metatwin",
		Short: "metatwin solves flux problems on metabolic twins",
		Long: `metatwin computes feasible and optimal flux distributions of metabolic
reaction networks under measured constraints.

Commands:
  - solve:    flux-balance analysis (linear or quadratic)
  - fva:      flux-variability analysis under a held optimum
  - knockout: reaction or gene knockout screens
  - validate: check networks, contexts and twins, report dead ends
  - generate: write synthetic networks for testing
  - runs:     list runs recorded in the result store

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (METATWIN_*)
  3. Config file (~/.config/metatwin/config.yaml)
  4. Built-in defaults`,
		Version:           Version,
		PersistentPreRunE: bootstrap,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for metatwin")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ~/.config/metatwin/config.yaml)")
	pf.IntVarP(&jobs, "jobs", "j", 0, "concurrent workers (default: number of CPU threads)")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(
		getSolveCmd(),
		getFVACmd(),
		getKnockoutCmd(),
		getValidateCmd(),
		getGenerateCmd(),
		getRunsCmd(),
		getConfigCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	res, err := config.Load(cfgFile, home)
	if err != nil {
		err = userError(errcode.ConfigLoadError, "Cannot load configuration <em>%s</em>", []any{cfgFile}, err)
		gn.PrintErrorMessage(err)
		return err
	}
	cfg = res.Config

	var opts []config.Option
	if cmd.Flags().Changed("jobs") {
		opts = append(opts, config.OptJobsNumber(jobs))
	}
	if cmd.Flags().Changed("log-level") {
		opts = append(opts, config.OptLogLevel(logLevel))
	}
	cfg.Update(opts)

	var log *slog.Logger
	if log, logCloser, err = logger.New(cfg.Log, config.LogDir(home)); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	slog.SetDefault(log)

	registry = prometheus.NewRegistry()
	if collector, err = metrics.New(registry); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Debug("Configuration loaded", "source", res.Source, "config_file", res.SourcePath)
	return nil
}
