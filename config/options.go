// SPDX-License-Identifier: MIT

package config

import (
	"strings"
	"time"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptSolverMode sets the solving strategy, "linear" or "quadratic".
func OptSolverMode(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Solver.Mode", s) {
			c.Solver.Mode = s
		}
	}
}

// OptSolverObjective sets the reaction optimised by a linear solve.
func OptSolverObjective(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Solver Objective", s) {
			c.Solver.Objective = s
		}
	}
}

// OptSolverSense sets the objective direction, "max" or "min".
func OptSolverSense(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Solver.Sense", s) {
			c.Solver.Sense = s
		}
	}
}

// OptSolverRelaxation sets the slack penalty strength.
func OptSolverRelaxation(f float64) Option {
	return func(c *Config) {
		if isValidRange("Solver Relaxation", f, 0, 1e6) {
			c.Solver.Relaxation = f
		}
	}
}

// OptSolverParsimony sets the parsimony strength.
func OptSolverParsimony(f float64) Option {
	return func(c *Config) {
		if isValidRange("Solver Parsimony", f, 0, 1e3) {
			c.Solver.Parsimony = f
		}
	}
}

// OptSolverNorm sets the parsimony norm, "l1" or "l2".
func OptSolverNorm(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Solver.Norm", s) {
			c.Solver.Norm = s
		}
	}
}

// OptSolverGapTolerant toggles sink reactions for dead ends.
func OptSolverGapTolerant(b bool) Option {
	return func(c *Config) {
		c.Solver.GapTolerant = b
	}
}

// OptSolverThresholdK sets k of the zero-flux threshold.
func OptSolverThresholdK(f float64) Option {
	return func(c *Config) {
		if isValidRange("Solver ThresholdK", f, 0, 100) {
			c.Solver.ThresholdK = f
		}
	}
}

// OptSolverFraction sets the optimum fraction held by variability analysis.
func OptSolverFraction(f float64) Option {
	return func(c *Config) {
		if isValidRange("Solver Fraction", f, 0, 1) {
			c.Solver.Fraction = f
		}
	}
}

// OptSolverTimeLimit bounds one backend call.
func OptSolverTimeLimit(d time.Duration) Option {
	return func(c *Config) {
		if isValidInt("Solver TimeLimit", int(d)) {
			c.Solver.TimeLimit = d
		}
	}
}

// OptSolverMaxIterations bounds one quadratic backend call.
func OptSolverMaxIterations(i int) Option {
	return func(c *Config) {
		if isValidInt("Solver MaxIterations", i) {
			c.Solver.MaxIterations = i
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format, "json" or "text".
func OptLogFormat(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "stderr", "stdout", "file".
func OptLogDestination(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptStoreDriver sets the result database driver, "sqlite" or "postgres".
func OptStoreDriver(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Store.Driver", s) {
			c.Store.Driver = s
		}
	}
}

// OptStoreDSN sets the result database location.
func OptStoreDSN(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Store DSN", s) {
			c.Store.DSN = s
		}
	}
}

// OptArtifactDriver sets the artifact backend, "fs" or "s3".
func OptArtifactDriver(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Artifact.Driver", s) {
			c.Artifact.Driver = s
		}
	}
}

// OptArtifactRoot sets the directory of the fs artifact backend.
func OptArtifactRoot(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Artifact Root", s) {
			c.Artifact.Root = s
		}
	}
}

// OptArtifactBucket sets the bucket of the s3 artifact backend.
func OptArtifactBucket(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Artifact Bucket", s) {
			c.Artifact.Bucket = s
		}
	}
}

// OptArtifactRegion sets the region of the s3 artifact backend.
func OptArtifactRegion(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Artifact Region", s) {
			c.Artifact.Region = s
		}
	}
}

// OptArtifactEndpoint sets a custom S3-compatible endpoint (e.g. MinIO).
func OptArtifactEndpoint(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Artifact Endpoint", s) {
			c.Artifact.Endpoint = s
		}
	}
}

// OptArtifactPathStyle toggles path-style S3 addressing.
func OptArtifactPathStyle(b bool) Option {
	return func(c *Config) {
		c.Artifact.PathStyle = b
	}
}

// OptJobsNumber sets the number of concurrent workers.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config and log locations.
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
