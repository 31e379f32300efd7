// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies opts in order. Invalid options are rejected with warnings
// and the config remains valid.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the persistent fields (those of config.yaml) into
// options. HomeDir is runtime-only and excluded.
func (c *Config) ToOptions() []Option {
	var res []Option
	if s := c.Solver.Mode; s != "" {
		res = append(res, OptSolverMode(s))
	}
	if s := c.Solver.Objective; s != "" {
		res = append(res, OptSolverObjective(s))
	}
	if s := c.Solver.Sense; s != "" {
		res = append(res, OptSolverSense(s))
	}
	if f := c.Solver.Relaxation; f > 0 {
		res = append(res, OptSolverRelaxation(f))
	}
	if f := c.Solver.Parsimony; f > 0 {
		res = append(res, OptSolverParsimony(f))
	}
	if s := c.Solver.Norm; s != "" {
		res = append(res, OptSolverNorm(s))
	}
	if c.Solver.GapTolerant {
		res = append(res, OptSolverGapTolerant(true))
	}
	if f := c.Solver.ThresholdK; f > 0 {
		res = append(res, OptSolverThresholdK(f))
	}
	if f := c.Solver.Fraction; f > 0 {
		res = append(res, OptSolverFraction(f))
	}
	if d := c.Solver.TimeLimit; d > 0 {
		res = append(res, OptSolverTimeLimit(d))
	}
	if i := c.Solver.MaxIterations; i > 0 {
		res = append(res, OptSolverMaxIterations(i))
	}

	if s := c.Log.Format; s != "" {
		res = append(res, OptLogFormat(s))
	}
	if s := c.Log.Level; s != "" {
		res = append(res, OptLogLevel(s))
	}
	if s := c.Log.Destination; s != "" {
		res = append(res, OptLogDestination(s))
	}

	if s := c.Store.Driver; s != "" {
		res = append(res, OptStoreDriver(s))
	}
	if s := c.Store.DSN; s != "" {
		res = append(res, OptStoreDSN(s))
	}

	if s := c.Artifact.Driver; s != "" {
		res = append(res, OptArtifactDriver(s))
	}
	if s := c.Artifact.Root; s != "" {
		res = append(res, OptArtifactRoot(s))
	}
	if s := c.Artifact.Bucket; s != "" {
		res = append(res, OptArtifactBucket(s))
	}
	if s := c.Artifact.Region; s != "" {
		res = append(res, OptArtifactRegion(s))
	}
	if s := c.Artifact.Endpoint; s != "" {
		res = append(res, OptArtifactEndpoint(s))
	}
	if c.Artifact.PathStyle {
		res = append(res, OptArtifactPathStyle(true))
	}

	if i := c.JobsNumber; i > 0 {
		res = append(res, OptJobsNumber(i))
	}

	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidRange(name string, f, lo, hi float64) bool {
	res := f >= lo && f <= hi
	if !res {
		gn.Warn("<em>%s</em> has to be within [%g, %g], ignoring %g", name, lo, hi, f)
	}
	return res
}

var enums = map[string][]string{
	"Solver.Mode":     {"linear", "quadratic"},
	"Solver.Sense":    {"max", "min"},
	"Solver.Norm":     {"l1", "l2"},
	"Log.Level":       {"debug", "info", "warn", "error"},
	"Log.Format":      {"json", "text"},
	"Log.Destination": {"stderr", "stdout", "file"},
	"Store.Driver":    {"sqlite", "postgres"},
	"Artifact.Driver": {"fs", "s3"},
}

func isValidEnum(name, val string) bool {
	set := make(map[string]struct{}, len(enums[name]))
	for _, v := range enums[name] {
		set[v] = struct{}{}
	}
	if _, ok := set[val]; ok {
		return true
	}

	var lines []string
	for _, v := range slices.Sorted(maps.Keys(set)) {
		lines = append(lines, fmt.Sprintf("  * %s", v))
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
