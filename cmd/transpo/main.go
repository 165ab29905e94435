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

// Command transpo solves a transportation network at minimum cost and
// writes the primal and dual results to an .xlsx workbook.
//
//	transpo [-config transpo.yaml] [-network net.yaml] [-output Results.xlsx] [-log-level info]
//
// Without -network the built-in example is solved. -dump-network prints
// that example as YAML, ready to be edited and fed back.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/costela/transpo"
	"github.com/costela/transpo/config"
	"github.com/costela/transpo/internal/logging"
	"github.com/costela/transpo/report"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("transpo", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configFile  = fs.String("config", "", "Run configuration file (yaml, toml or json)")
		networkFile = fs.String("network", "", "Network definition file; the built-in example when empty")
		output      = fs.String("output", "", "Workbook to write (default "+config.DefaultOutput+")")
		logLevel    = fs.String("log-level", "", "One of debug, info, warn, error")
		dump        = fs.Bool("dump-network", false, "Print the built-in example network as YAML and exit")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *dump {
		if err := config.EncodeNetwork(stdout, config.DefaultNetwork()); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if *networkFile != "" {
		cfg.Network = *networkFile
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	logger, closer := logging.New(cfg.Log, stderr)
	defer closer.Close()
	logger = logger.With("run_id", uuid.NewString())

	net := config.DefaultNetwork()
	if cfg.Network != "" {
		if net, err = config.LoadNetwork(cfg.Network); err != nil {
			logger.Error("loading network failed", "path", cfg.Network, "error", err)
			return 1
		}
	}

	sol, err := transpo.Run(net, report.Workbook{Path: cfg.Output},
		transpo.WithLogger(logger),
		transpo.WithEngineOptions(cfg.Solver.EngineOptions()...),
		transpo.WithTolerance(cfg.Solver.Tolerance),
	)
	if err != nil {
		// the pipeline already logged the failing stage
		return 1
	}

	fmt.Fprint(stdout, sol.Summary())
	logger.Info("results written", "path", cfg.Output)

	return 0
}
