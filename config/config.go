// SPDX-License-Identifier: MIT

// Package config holds the run configuration of metatwin: solver settings,
// logging, result storage and artifact upload.
//
// The package does no I/O except in Load and Generate. A Config returned by
// New is always valid; every mutation goes through an Option, and invalid
// option values are reported with gn.Warn and ignored.
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults.
//
// Environment variables use the METATWIN_ prefix with underscores for
// nesting:
//
//	METATWIN_SOLVER_MODE=quadratic
//	METATWIN_LOG_LEVEL=debug
//	METATWIN_STORE_DSN=/tmp/metatwin.db
//	METATWIN_JOBS_NUMBER=8
package config

import (
	"path/filepath"
	"runtime"
	"time"
)

// AppName is used in generating file system paths.
var AppName = "metatwin"

// Config is the complete metatwin configuration.
type Config struct {
	Solver   SolverConfig   `mapstructure:"solver"   yaml:"solver"`
	Log      LogConfig      `mapstructure:"log"      yaml:"log"`
	Store    StoreConfig    `mapstructure:"store"    yaml:"store"`
	Artifact ArtifactConfig `mapstructure:"artifact" yaml:"artifact"`

	// JobsNumber bounds concurrent simulations, FVA bounds and knockouts.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir is set by the CLI at startup; it has no default.
	HomeDir string `mapstructure:"-" yaml:"-"`
}

// SolverConfig configures the flux solvers and the numeric backend.
type SolverConfig struct {
	// Mode is "linear" or "quadratic".
	Mode string `mapstructure:"mode" yaml:"mode"`
	// Objective is the reaction whose flux a linear solve optimises.
	Objective string `mapstructure:"objective" yaml:"objective"`
	// Sense is "max" or "min".
	Sense string `mapstructure:"sense" yaml:"sense"`
	// Relaxation is the slack penalty; 0 disables relaxation.
	Relaxation float64 `mapstructure:"relaxation" yaml:"relaxation"`
	// Parsimony is the flux penalty; 0 disables it.
	Parsimony float64 `mapstructure:"parsimony" yaml:"parsimony"`
	// Norm of the parsimony penalty, "l1" or "l2".
	Norm string `mapstructure:"norm" yaml:"norm"`
	// GapTolerant adds sink reactions for dead-end compounds.
	GapTolerant bool `mapstructure:"gap_tolerant" yaml:"gap_tolerant"`
	// ThresholdK is k in mean(|sv|) + k*std(|sv|).
	ThresholdK float64 `mapstructure:"threshold_k" yaml:"threshold_k"`
	// Fraction of the optimum held during variability analysis.
	Fraction float64 `mapstructure:"fraction" yaml:"fraction"`
	// TimeLimit bounds one backend call.
	TimeLimit time.Duration `mapstructure:"time_limit" yaml:"time_limit"`
	// MaxIterations bounds one quadratic backend call.
	MaxIterations int `mapstructure:"max_iterations" yaml:"max_iterations"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format is "json" or "text".
	Format string `mapstructure:"format" yaml:"format"`
	// Level is "debug", "info", "warn" or "error".
	Level string `mapstructure:"level" yaml:"level"`
	// Destination is "stderr", "stdout" or "file".
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// StoreConfig selects the result database. An empty DSN disables storage.
type StoreConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `mapstructure:"driver" yaml:"driver"`
	DSN    string `mapstructure:"dsn"    yaml:"dsn"`
}

// ArtifactConfig selects where JSON result documents are uploaded. An
// empty Driver disables uploads.
type ArtifactConfig struct {
	// Driver is "fs" or "s3".
	Driver    string `mapstructure:"driver"     yaml:"driver"`
	Root      string `mapstructure:"root"       yaml:"root"`
	Bucket    string `mapstructure:"bucket"     yaml:"bucket"`
	Region    string `mapstructure:"region"     yaml:"region"`
	Endpoint  string `mapstructure:"endpoint"   yaml:"endpoint"`
	PathStyle bool   `mapstructure:"path_style" yaml:"path_style"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		Solver: SolverConfig{
			Mode:          "linear",
			Sense:         "max",
			Norm:          "l1",
			ThresholdK:    3,
			Fraction:      1,
			TimeLimit:     60 * time.Second,
			MaxIterations: 50_000,
		},
		Log: LogConfig{
			Format:      "text",
			Level:       "info",
			Destination: "stderr",
		},
		Store: StoreConfig{
			Driver: "sqlite",
		},
		JobsNumber: runtime.NumCPU(),
	}
}

// ConfigDir returns ~/.config/metatwin under homeDir.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// LogDir returns ~/.local/share/metatwin/logs under homeDir.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the path of config.yaml under homeDir.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}
