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

package transpo

import (
	"fmt"
	"log/slog"

	"github.com/costela/transpo/golp"
)

// Stage is a step of the batch pipeline. Stages only move forward.
type Stage int

const (
	StageDefined Stage = iota
	StageBuilt
	StageSolved
	StageReported
)

func (s Stage) String() string {
	switch s {
	case StageDefined:
		return "defined"
	case StageBuilt:
		return "built"
	case StageSolved:
		return "solved"
	case StageReported:
		return "reported"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Exporter persists a solved problem.
type Exporter interface {
	Export(sol *Solution) error
}

type runner struct {
	logger     *slog.Logger
	engineOpts []golp.Option
	tolerance  float64
}

// Run takes a network through Defined → Built → Solved → Reported on an
// engine model of its own. The first failing stage ends the run with a
// *StageError naming the stage that could not be reached; the cause
// stays reachable with errors.As (*ConfigurationError, *SolveError,
// *CheckError or whatever the exporter returned).
func Run(net Network, exporter Exporter, opts ...Option) (*Solution, error) {
	r := &runner{
		logger:    discardLogger(),
		tolerance: DefaultTolerance,
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("applying option: %w", err)
		}
	}

	return r.run(net, exporter)
}

func (r *runner) run(net Network, exporter Exporter) (*Solution, error) {
	log := r.logger.With("network", net.Name)
	log.Info("network defined",
		"supplies", len(net.Supplies),
		"demands", len(net.Demands),
		"capacity", net.TotalCapacity(),
		"demand", net.TotalDemand(),
	)
	if net.TotalDemand() > net.TotalCapacity() {
		log.Warn("aggregate demand exceeds aggregate capacity; expect an infeasible model")
	}

	// fail on configuration errors before an engine exists
	if err := net.Validate(); err != nil {
		return nil, r.fail(log, StageBuilt, err)
	}

	engineOpts := append([]golp.Option{golp.WithLogger(engineLog{logger: log})}, r.engineOpts...)
	engine, err := golp.NewModel(net.Name, golp.Minimize, engineOpts...)
	if err != nil {
		return nil, r.fail(log, StageBuilt, err)
	}
	defer engine.Delete()

	prob, err := Build(net, engine)
	if err != nil {
		return nil, r.fail(log, StageBuilt, err)
	}
	log.Info("model built", "variables", engine.VariableCount(), "constraints", engine.ConstraintCount())

	sol, err := prob.Solve()
	if err != nil {
		return nil, r.fail(log, StageSolved, err)
	}
	if err := sol.Check(net, r.tolerance); err != nil {
		return nil, r.fail(log, StageSolved, err)
	}
	log.Info("model solved",
		"status", sol.Status.String(),
		"objective", sol.Objective,
		"duration", sol.Duration,
	)

	if err := exporter.Export(sol); err != nil {
		return nil, r.fail(log, StageReported, err)
	}
	log.Info("report exported")

	return sol, nil
}

func (r *runner) fail(log *slog.Logger, stage Stage, err error) error {
	log.Error("pipeline halted", "stage", stage.String(), "error", err)
	return &StageError{Stage: stage, Err: err}
}
