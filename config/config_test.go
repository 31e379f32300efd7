package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metatwin/config"
	"github.com/katalvlaran/metatwin/fba"
	"github.com/katalvlaran/metatwin/fva"
)

func TestNew_Defaults(t *testing.T) {
	c := config.New()
	assert.Equal(t, "linear", c.Solver.Mode)
	assert.Equal(t, "max", c.Solver.Sense)
	assert.Equal(t, 1.0, c.Solver.Fraction)
	assert.Equal(t, 60*time.Second, c.Solver.TimeLimit)
	assert.Equal(t, "info", c.Log.Level)
	assert.Positive(t, c.JobsNumber)
}

func TestUpdate_InvalidIgnored(t *testing.T) {
	c := config.New()
	c.Update([]config.Option{
		config.OptSolverMode("QUADRATIC"),
		config.OptLogLevel("verbose"),
		config.OptSolverFraction(1.5),
		config.OptJobsNumber(-2),
		config.OptStoreDSN("  "),
		config.OptArtifactDriver("s3"),
	})
	assert.Equal(t, "quadratic", c.Solver.Mode)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, 1.0, c.Solver.Fraction)
	assert.Positive(t, c.JobsNumber)
	assert.Empty(t, c.Store.DSN)
	assert.Equal(t, "s3", c.Artifact.Driver)
}

func TestToOptions_RoundTrip(t *testing.T) {
	c := config.New()
	c.Update([]config.Option{
		config.OptSolverObjective("R2"),
		config.OptSolverParsimony(0.5),
		config.OptSolverNorm("l2"),
		config.OptSolverGapTolerant(true),
		config.OptArtifactBucket("runs"),
		config.OptArtifactPathStyle(true),
	})

	got := config.New()
	got.Update(c.ToOptions())
	assert.Equal(t, c, got)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metatwin.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
solver:
  mode: quadratic
  time_limit: 5s
  fraction: 0.9
log:
  level: debug
jobs_number: 2
`), 0o644))
	t.Setenv("METATWIN_LOG_FORMAT", "json")

	res, err := config.Load(path, dir)
	require.NoError(t, err)
	assert.Equal(t, "file", res.Source)
	assert.Equal(t, path, res.SourcePath)

	c := res.Config
	assert.Equal(t, "quadratic", c.Solver.Mode)
	assert.Equal(t, 5*time.Second, c.Solver.TimeLimit)
	assert.Equal(t, 0.9, c.Solver.Fraction)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "json", c.Log.Format)
	assert.Equal(t, 2, c.JobsNumber)
	assert.Equal(t, dir, c.HomeDir)
	assert.Equal(t, "max", c.Solver.Sense)
}

func TestLoad_Missing(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"), "")
	require.ErrorIs(t, err, config.ErrConfigNotFound)

	res, err := config.Load("", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, config.New().Solver, res.Config.Solver)
}

func TestGenerate(t *testing.T) {
	home := t.TempDir()
	path := config.ConfigFilePath(home)
	require.NoError(t, config.Generate(path))
	require.NoError(t, config.Validate(path))
	require.ErrorIs(t, config.Generate(path), config.ErrConfigExists)

	res, err := config.Load("", home)
	require.NoError(t, err)
	assert.Equal(t, "file", res.Source)
	assert.Equal(t, config.New().Solver, res.Config.Solver)
}

func TestFBAOptions(t *testing.T) {
	c := config.New()
	c.Update([]config.Option{
		config.OptSolverObjective("R2"),
		config.OptSolverSense("min"),
		config.OptSolverParsimony(1),
	})
	opts, err := c.FBAOptions(nil, nil)
	require.NoError(t, err)

	s, err := fba.New(opts...)
	require.NoError(t, err)
	o, ok := s.Objective()
	require.True(t, ok)
	assert.Equal(t, fba.Minimize, o.Sense)
	assert.Equal(t, fba.Linear, s.Mode())

	_, err = fva.NewWithBase(s, c.FVAOptions()...)
	require.NoError(t, err)
}
