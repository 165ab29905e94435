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

/*
Package golp is a thin binding to the GLPK simplex solver, exposing just
enough of it to model continuous linear programs and to query the
sensitivity information of an optimal basis.

	model, _ := golp.NewModel("example", golp.Maximize)
	x1, _ := model.AddVariable("x1", 0, math.Inf(1), 1)
	x2, _ := model.AddVariable("x2", 0, math.Inf(1), 2)
	row, _ := model.AddConstraint("c1", math.Inf(-1), 14, []*golp.Variable{x1, x2}, []float64{2, 1})

	res, err := model.Solve() // err is a SolveError for non-optimal outcomes
	fmt.Println(res.ObjectiveValue(), res.Value(x1), res.Dual(row), res.RowBasis(row))
*/
package golp

// #cgo LDFLAGS: -lglpk
// #include <glpk.h>
// #include <stdlib.h>
import "C"

import (
	"fmt"
	"math"
	"runtime"
	"sync"
	"unsafe"
)

/* Types */

type Model struct {
	mu     sync.RWMutex
	prob   *C.glp_prob
	vars   []*Variable
	rows   []*Constraint
	ia     []C.int
	ja     []C.int
	ar     []C.double
	solved bool
	logger Logger

	// Method selects primal or dual simplex.
	Method Method
	// Presolve enables the GLPK LP presolver. It is off by default: the
	// sensitivity queries need a basis of the original problem.
	Presolve bool
	// Verbose raises GLPK's message level from errors-only to normal.
	Verbose bool
}

type Direction C.int

const (
	Minimize = Direction(C.GLP_MIN)
	Maximize = Direction(C.GLP_MAX)
)

type Method C.int

const (
	Primal = Method(C.GLP_PRIMAL)
	Dual   = Method(C.GLP_DUALP)
)

// maxNameLen is the longest row/column name GLPK accepts.
const maxNameLen = 255

/* Model related functions */

// NewModel instantiates a new linear programming model, providing a
// name (purely informational) and a optimization direction (either
// Minimize or Maximize)
func NewModel(name string, dir Direction, opts ...Option) (*Model, error) {
	if len(name) > maxNameLen {
		return nil, fmt.Errorf("model name longer than %d bytes", maxNameLen)
	}

	prob := C.glp_create_prob()

	c_name := C.CString(name)
	defer C.free(unsafe.Pointer(c_name))

	C.glp_set_prob_name(prob, c_name)
	C.glp_set_obj_dir(prob, C.int(dir))

	model := &Model{
		prob:   prob,
		logger: noopLogger{},
		Method: Primal,
	}
	// glpk indices start at 1; index 0 is reserved
	model.ia = append(model.ia, 0)
	model.ja = append(model.ja, 0)
	model.ar = append(model.ar, 0.0)

	// plug the underlying C library's destructors to the instance of Model,
	// otherwise we get a memory-leak of the underlying struct
	runtime.SetFinalizer(model, finalizeModel)

	for _, opt := range opts {
		if err := opt(model); err != nil {
			model.Delete()
			return nil, fmt.Errorf("applying model option: %w", err)
		}
	}

	return model, nil
}

// finalizeModel is the function registered to be called upon garbage-
// collection of the model value
func finalizeModel(model *Model) {
	model.Delete()
}

// Delete releases the underlying GLPK problem. Afterwards Name,
// Direction and the counts report zero values; adding to or solving the
// model, or reading results obtained from it, is not allowed.
func (model *Model) Delete() {
	model.mu.Lock()
	defer model.mu.Unlock()

	if model.prob == nil {
		return
	}
	C.glp_delete_prob(model.prob)
	model.prob = nil
	runtime.SetFinalizer(model, nil)
}

// Name returns the name provided upon instantiation of a model
func (model *Model) Name() string {
	model.mu.RLock()
	defer model.mu.RUnlock()

	if model.prob == nil {
		return ""
	}
	return C.GoString(C.glp_get_prob_name(model.prob))
}

// Direction returns the model's current optimization direction, or 0
// for a deleted model.
func (model *Model) Direction() Direction {
	model.mu.RLock()
	defer model.mu.RUnlock()

	if model.prob == nil {
		return 0
	}
	return Direction(C.glp_get_obj_dir(model.prob))
}

// Solved reports whether Solve has been called on the model.
func (model *Model) Solved() bool {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return model.solved
}

/* Column-related functions */

func (model *Model) VariableCount() int {
	model.mu.RLock()
	defer model.mu.RUnlock()

	if model.prob == nil {
		return 0
	}
	return int(C.glp_get_num_cols(model.prob))
}

// Variables returns the model's variables in creation order.
func (model *Model) Variables() []*Variable {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return append([]*Variable(nil), model.vars...)
}

// AddVariable adds a continuous variable with the given bounds and
// objective coefficient and returns a handle to it. Use math.Inf to leave
// a side unbounded.
//
// A variable is bound to its model. Attempting to use a variable
// created in one model for fetching solutions from a different model
// results in undefined behaviour.
//
// Empty names will automatically replaced by a unique name.
func (model *Model) AddVariable(name string, lower, upper, coefficient float64) (*Variable, error) {
	if err := checkBounds(lower, upper); err != nil {
		return nil, fmt.Errorf("variable %q: %w", name, err)
	}
	if math.IsNaN(coefficient) || math.IsInf(coefficient, 0) {
		return nil, fmt.Errorf("variable %q: objective coefficient must be finite, got %g", name, coefficient)
	}
	if len(name) > maxNameLen {
		return nil, fmt.Errorf("variable name %q longer than %d bytes", name, maxNameLen)
	}

	model.mu.Lock()
	defer model.mu.Unlock()

	if model.solved {
		return nil, ErrModelSolved
	}

	index := int(C.glp_add_cols(model.prob, 1)) - 1
	v := &Variable{model: model, index: index}
	model.vars = append(model.vars, v)

	if name == "" {
		name = fmt.Sprintf("V%d", index)
	}

	c_name := C.CString(name)
	defer C.free(unsafe.Pointer(c_name))

	C.glp_set_col_name(model.prob, C.int(index+1), c_name)
	C.glp_set_col_kind(model.prob, C.int(index+1), C.GLP_CV)
	C.glp_set_obj_coef(model.prob, C.int(index+1), C.double(coefficient))
	typ, lb, ub := boundType(lower, upper)
	C.glp_set_col_bnds(model.prob, C.int(index+1), typ, lb, ub)

	return v, nil
}

/* Constraint-related functions */

// ConstraintCount returns the number of individual constraints in
// the model
func (model *Model) ConstraintCount() int {
	model.mu.RLock()
	defer model.mu.RUnlock()

	if model.prob == nil {
		return 0
	}
	return int(C.glp_get_num_rows(model.prob))
}

// Constraints returns the model's constraints in creation order.
func (model *Model) Constraints() []*Constraint {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return append([]*Constraint(nil), model.rows...)
}

// AddConstraint adds a constraint lower <= sum(coefs[i]*vars[i]) <= upper
// to the model and returns a handle to it. An infinite lower or upper
// bound leaves that side open, so
//
//	AddConstraint("cap", math.Inf(-1), 10, vars, coefs)
//
// is a "≤ 10" constraint.
//
// Empty names will automatically replaced by a unique name.
func (model *Model) AddConstraint(name string, lower, upper float64, vars []*Variable, coefs []float64) (*Constraint, error) {
	if len(vars) != len(coefs) {
		return nil, fmt.Errorf("inconsistent number of variables and coefficients: %d != %d", len(vars), len(coefs))
	}
	if err := checkBounds(lower, upper); err != nil {
		return nil, fmt.Errorf("constraint %q: %w", name, err)
	}
	if len(name) > maxNameLen {
		return nil, fmt.Errorf("constraint name %q longer than %d bytes", name, maxNameLen)
	}
	for i, v := range vars {
		if v == nil || v.model != model {
			return nil, fmt.Errorf("constraint %q: variable %d does not belong to model", name, i)
		}
		if math.IsNaN(coefs[i]) || math.IsInf(coefs[i], 0) {
			return nil, fmt.Errorf("constraint %q: coefficient %d must be finite, got %g", name, i, coefs[i])
		}
	}

	model.mu.Lock()
	defer model.mu.Unlock()

	if model.solved {
		return nil, ErrModelSolved
	}

	index := int(C.glp_add_rows(model.prob, 1)) - 1
	row := &Constraint{model: model, index: index}
	model.rows = append(model.rows, row)

	if name == "" {
		name = fmt.Sprintf("R%d", index)
	}

	c_name := C.CString(name)
	defer C.free(unsafe.Pointer(c_name))

	C.glp_set_row_name(model.prob, C.int(index+1), c_name)
	typ, lb, ub := boundType(lower, upper)
	C.glp_set_row_bnds(model.prob, C.int(index+1), typ, lb, ub)

	for i, v := range vars {
		model.ia = append(model.ia, C.int(index+1))
		model.ja = append(model.ja, C.int(v.index+1))
		model.ar = append(model.ar, C.double(coefs[i]))
	}

	return row, nil
}

// loadMatrix hands the accumulated triplets to GLPK. Callers must hold
// the write lock.
func (model *Model) loadMatrix() {
	C.glp_load_matrix(model.prob, C.int(len(model.ia)-1), &model.ia[0], &model.ja[0], &model.ar[0])
}

func checkBounds(lower, upper float64) error {
	switch {
	case math.IsNaN(lower) || math.IsNaN(upper):
		return fmt.Errorf("bounds must not be NaN")
	case math.IsInf(lower, 1) || math.IsInf(upper, -1):
		return fmt.Errorf("bounds [%g, %g] are not satisfiable", lower, upper)
	case lower > upper:
		return fmt.Errorf("lower bound %g above upper bound %g", lower, upper)
	}
	return nil
}

// boundType maps a pair of bounds to GLPK's bound kinds. The signal of
// an infinite bound is ignored, as the lower and upper bounds are always
// assumed to be the negative and positive infinities, respectively.
func boundType(lower, upper float64) (C.int, C.double, C.double) {
	switch {
	case math.IsInf(lower, 0) && math.IsInf(upper, 0):
		return C.GLP_FR, 0, 0
	case math.IsInf(lower, 0):
		return C.GLP_UP, 0, C.double(upper)
	case math.IsInf(upper, 0):
		return C.GLP_LO, C.double(lower), 0
	case upper == lower:
		return C.GLP_FX, C.double(lower), C.double(upper)
	default:
		return C.GLP_DB, C.double(lower), C.double(upper)
	}
}

// boundsOf reverses boundType for a bound kind read back from GLPK.
func boundsOf(typ C.int, lb, ub C.double) (lower, upper float64) {
	lower = math.Inf(-1)
	upper = math.Inf(1)

	switch typ {
	case C.GLP_FR:
	case C.GLP_UP:
		upper = float64(ub)
	case C.GLP_LO:
		lower = float64(lb)
	case C.GLP_FX:
		// according to the glpk docs, only lb is used for fixed bounds
		lower = float64(lb)
		upper = float64(lb)
	case C.GLP_DB:
		lower = float64(lb)
		upper = float64(ub)
	default:
		panic(fmt.Sprintf("unsupported bound type %v", typ))
	}
	return
}
