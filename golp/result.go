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

package golp

// #cgo LDFLAGS: -lglpk
// #include <glpk.h>
// #include <stdlib.h>
import "C"

import (
	"errors"
	"fmt"
)

/* Types */

// Status is the generic status of the basic solution held by a model.
type Status C.int

const (
	SolutionOptimal    = Status(C.GLP_OPT)
	SolutionFeasible   = Status(C.GLP_FEAS)
	SolutionInfeasible = Status(C.GLP_INFEAS)
	NoFeasibleSolution = Status(C.GLP_NOFEAS)
	SolutionUnbounded  = Status(C.GLP_UNBND)
	SolutionUndefined  = Status(C.GLP_UNDEF)
)

func (s Status) String() string {
	switch s {
	case SolutionOptimal:
		return "optimal"
	case SolutionFeasible:
		return "feasible"
	case SolutionInfeasible:
		return "infeasible"
	case NoFeasibleSolution:
		return "no feasible solution"
	case SolutionUnbounded:
		return "unbounded"
	case SolutionUndefined:
		return "undefined"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// BasisStatus classifies a row or column in the final basis.
type BasisStatus C.int

const (
	Basic        = BasisStatus(C.GLP_BS)
	AtLowerBound = BasisStatus(C.GLP_NL)
	AtUpperBound = BasisStatus(C.GLP_NU)
	Free         = BasisStatus(C.GLP_NF)
	Fixed        = BasisStatus(C.GLP_NS)
)

func (b BasisStatus) String() string {
	switch b {
	case Basic:
		return "BASIC"
	case AtLowerBound:
		return "AT_LOWER_BOUND"
	case AtUpperBound:
		return "AT_UPPER_BOUND"
	case Free:
		return "FREE"
	case Fixed:
		return "FIXED_VALUE"
	default:
		return fmt.Sprintf("BASIS(%d)", int(b))
	}
}

// SolveError describes why Solve did not produce an optimal solution.
type SolveError int

const (
	ErrModelInfeasible SolveError = iota + 1
	ErrModelUnbounded
	ErrNoOptimum
	ErrBadBasis
	ErrSingularBasis
	ErrIllConditioned
	ErrBadBounds
	ErrEmptyModel
	ErrObjectiveLowerLimit
	ErrObjectiveUpperLimit
	ErrIterationLimit
	ErrTimeLimit
)

// ErrModelSolved is returned when a model is modified after Solve.
var ErrModelSolved = errors.New("model already solved; its structure is read-only")

// Error returns a string representation of the given error value.
func (e SolveError) Error() string {
	switch e {
	case ErrModelInfeasible:
		return "model is infeasible"
	case ErrModelUnbounded:
		return "model is unbounded"
	case ErrNoOptimum:
		return "no optimal solution found"
	case ErrBadBasis:
		return "initial basis invalid"
	case ErrSingularBasis:
		return "initial basis is exactly singular"
	case ErrIllConditioned:
		return "basis matrix is ill-conditioned"
	case ErrBadBounds:
		return "double-bounded variables have incorrect bounds"
	case ErrEmptyModel:
		return "problem instance has no rows/columns"
	case ErrObjectiveLowerLimit:
		return "objective lower limit reached"
	case ErrObjectiveUpperLimit:
		return "objective upper limit reached"
	case ErrIterationLimit:
		return "simplex iteration limit exceeded"
	case ErrTimeLimit:
		return "time limit exceeded"
	default:
		return fmt.Sprintf("unknown solve error %d", int(e))
	}
}

// glpkError maps glp_simplex return codes.
func glpkError(ret C.int) error {
	switch ret {
	case 0:
		return nil
	case C.GLP_EBADB:
		return ErrBadBasis
	case C.GLP_ESING:
		return ErrSingularBasis
	case C.GLP_ECOND:
		return ErrIllConditioned
	case C.GLP_EBOUND:
		return ErrBadBounds
	case C.GLP_EFAIL:
		return ErrEmptyModel
	case C.GLP_EOBJLL:
		return ErrObjectiveLowerLimit
	case C.GLP_EOBJUL:
		return ErrObjectiveUpperLimit
	case C.GLP_EITLIM:
		return ErrIterationLimit
	case C.GLP_ETMLIM:
		return ErrTimeLimit
	case C.GLP_ENOPFS:
		return ErrModelInfeasible
	case C.GLP_ENODFS:
		return ErrModelUnbounded
	default:
		return fmt.Errorf("unknown glpk error: %d", int(ret))
	}
}

// statusError maps a terminal, non-optimal solution status.
func statusError(s Status) error {
	switch s {
	case SolutionOptimal:
		return nil
	case SolutionInfeasible, NoFeasibleSolution:
		return ErrModelInfeasible
	case SolutionUnbounded:
		return ErrModelUnbounded
	default:
		return ErrNoOptimum
	}
}
