// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// ErrConfigNotFound is returned by Load for an explicit path that does not
// exist.
var ErrConfigNotFound = errors.New("config: file not found")

// LoadResult contains the loaded configuration and where it came from.
type LoadResult struct {
	Config     *Config
	SourcePath string // config file used, empty for defaults
	Source     string // "file", "defaults" or "defaults+env"
}

// Load reads a YAML config at path, applies METATWIN_* environment
// overrides and merges the result over New() through options. An empty path
// uses ConfigFilePath(homeDir) when that file exists.
func Load(path, homeDir string) (*LoadResult, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	initEnvVars(v)

	explicit := path != ""
	if !explicit && homeDir != "" {
		if p := ConfigFilePath(homeDir); fileExists(p) {
			path = p
		}
	}

	res := &LoadResult{Source: "defaults"}
	if path != "" {
		if !fileExists(path) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		res.Source = "file"
		res.SourcePath = v.ConfigFileUsed()
	} else if hasEnvVars() {
		res.Source = "defaults+env"
	}

	var raw Config
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg := New()
	cfg.Update(raw.ToOptions())
	if homeDir != "" {
		cfg.Update([]Option{OptHomeDir(homeDir)})
	}
	res.Config = cfg

	return res, nil
}

// initEnvVars binds the environment variables that match ToOptions fields.
// Keys are bound one by one so the accepted variables are explicit.
func initEnvVars(v *viper.Viper) {
	v.SetEnvPrefix("METATWIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range []string{
		"solver.mode", "solver.objective", "solver.sense", "solver.relaxation",
		"solver.parsimony", "solver.norm", "solver.gap_tolerant",
		"solver.threshold_k", "solver.fraction", "solver.time_limit",
		"solver.max_iterations",
		"log.level", "log.format", "log.destination",
		"store.driver", "store.dsn",
		"artifact.driver", "artifact.root", "artifact.bucket",
		"artifact.region", "artifact.endpoint", "artifact.path_style",
		"jobs_number",
	} {
		_ = v.BindEnv(key)
	}

	v.AutomaticEnv()
}

func hasEnvVars() bool {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "METATWIN_") {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
