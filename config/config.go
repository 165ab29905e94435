/*
Copyright © 2015-2022 Leo Antunes <leo@costela.net>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package config loads the run configuration and network definitions for
// the transpo command.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/costela/transpo"
	"github.com/costela/transpo/golp"
	"github.com/costela/transpo/internal/logging"
)

// EnvPrefix prefixes environment overrides, e.g. TRANSPO_SOLVER_METHOD.
const EnvPrefix = "TRANSPO"

// DefaultOutput is the workbook written when no output path is set.
const DefaultOutput = "Results.xlsx"

// Config is the full run configuration.
type Config struct {
	// Network is the path of a YAML network file. Empty selects the
	// built-in example network.
	Network string         `mapstructure:"network"`
	Output  string         `mapstructure:"output"  validate:"required"`
	Log     logging.Config `mapstructure:"log"`
	Solver  SolverConfig   `mapstructure:"solver"`
}

// SolverConfig tunes the engine.
type SolverConfig struct {
	Method    string  `mapstructure:"method"    validate:"oneof=primal dual"`
	Presolve  bool    `mapstructure:"presolve"`
	Verbose   bool    `mapstructure:"verbose"`
	Tolerance float64 `mapstructure:"tolerance" validate:"gt=0"`
}

// EngineOptions translates the solver settings into engine options.
func (s SolverConfig) EngineOptions() []golp.Option {
	method := golp.Primal
	if s.Method == "dual" {
		method = golp.Dual
	}
	return []golp.Option{
		golp.WithMethod(method),
		golp.WithPresolve(s.Presolve),
		golp.WithVerbose(s.Verbose),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("network", "")
	v.SetDefault("output", DefaultOutput)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", false)

	v.SetDefault("solver.method", "primal")
	v.SetDefault("solver.presolve", false)
	v.SetDefault("solver.verbose", false)
	v.SetDefault("solver.tolerance", transpo.DefaultTolerance)
}

// Load reads the configuration file at path, if any, applies TRANSPO_*
// environment overrides on top of the defaults and validates the result.
// The file format follows its extension (yaml, toml, json).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config error: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config error: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the field constraints of cfg.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
