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
/*
// https://golang.org/issue/19837
extern int termHook(void *info, char *msg);
*/
import "C"

import (
	"runtime"
	"strings"
	"time"
	"unsafe"
)

// Result holds the outcome of a successful Solve. Its values are read
// from the model on demand, so the model must stay alive and unmodified
// while the result is in use.
type Result struct {
	model    *Model
	status   Status
	duration time.Duration
}

//export termHook
func termHook(info unsafe.Pointer, msg *C.char) C.int {
	logger, ok := loadRef(info).(Logger)
	if !ok {
		return 0
	}

	logger.Print(strings.TrimRight(C.GoString(msg), "\n"))

	// non-zero suppresses glpk's own terminal output
	return 1
}

// Solve runs the simplex method on the model and blocks until GLPK
// returns. Anything short of an optimal solution is reported as a
// SolveError; the status GLPK ended with remains available via Status.
func (model *Model) Solve() (*Result, error) {
	model.mu.Lock()
	defer model.mu.Unlock()

	// the terminal hook lives in glpk's thread-local environment
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	ref := saveRef(model.logger)
	defer dropRef(ref)

	C.glp_term_hook((*[0]byte)(C.termHook), ref)
	defer C.glp_term_hook(nil, nil)

	model.loadMatrix()
	model.solved = true

	var parm C.glp_smcp
	C.glp_init_smcp(&parm)

	parm.meth = C.int(model.Method)

	if model.Verbose {
		parm.msg_lev = C.GLP_MSG_ON
	} else {
		parm.msg_lev = C.GLP_MSG_ERR
	}

	if model.Presolve {
		parm.presolve = C.GLP_ON
	} else {
		parm.presolve = C.GLP_OFF
	}

	start := time.Now()
	ret := C.glp_simplex(model.prob, &parm)
	elapsed := time.Since(start)

	if err := glpkError(ret); err != nil {
		return nil, err
	}

	status := Status(C.glp_get_status(model.prob))
	if err := statusError(status); err != nil {
		return nil, err
	}

	return &Result{
		model:    model,
		status:   status,
		duration: elapsed,
	}, nil
}

// Status returns the status of the model's current basic solution.
func (model *Model) Status() Status {
	model.mu.RLock()
	defer model.mu.RUnlock()

	if model.prob == nil {
		return SolutionUndefined
	}
	return Status(C.glp_get_status(model.prob))
}

/* Result-related functions */

// Status reports the solution status; always SolutionOptimal for
// results returned by Solve.
func (res *Result) Status() Status {
	return res.status
}

// Duration is the wall-clock time spent inside the simplex routine.
func (res *Result) Duration() time.Duration {
	return res.duration
}

func (res *Result) VariableCount() int {
	return res.model.VariableCount()
}

func (res *Result) ConstraintCount() int {
	return res.model.ConstraintCount()
}

// ObjectiveValue returns the value of the objective function for
// this optimization result.
func (res *Result) ObjectiveValue() float64 {
	res.model.mu.RLock()
	defer res.model.mu.RUnlock()

	return float64(C.glp_get_obj_val(res.model.prob))
}

// Value returns the computed value of the given variable.
func (res *Result) Value(v *Variable) float64 {
	res.model.mu.RLock()
	defer res.model.mu.RUnlock()

	return float64(C.glp_get_col_prim(res.model.prob, C.int(v.index+1)))
}

// ReducedCost returns the column dual of the given variable, i.e. the
// change of the objective per unit increase of a nonbasic variable.
func (res *Result) ReducedCost(v *Variable) float64 {
	res.model.mu.RLock()
	defer res.model.mu.RUnlock()

	return float64(C.glp_get_col_dual(res.model.prob, C.int(v.index+1)))
}

func (res *Result) VariableBasis(v *Variable) BasisStatus {
	res.model.mu.RLock()
	defer res.model.mu.RUnlock()

	return BasisStatus(C.glp_get_col_stat(res.model.prob, C.int(v.index+1)))
}

// Activity returns the value of the constraint's row expression.
func (res *Result) Activity(c *Constraint) float64 {
	res.model.mu.RLock()
	defer res.model.mu.RUnlock()

	return float64(C.glp_get_row_prim(res.model.prob, C.int(c.index+1)))
}

// Dual returns the dual value (shadow price) of the given constraint.
func (res *Result) Dual(c *Constraint) float64 {
	res.model.mu.RLock()
	defer res.model.mu.RUnlock()

	return float64(C.glp_get_row_dual(res.model.prob, C.int(c.index+1)))
}

func (res *Result) RowBasis(c *Constraint) BasisStatus {
	res.model.mu.RLock()
	defer res.model.mu.RUnlock()

	return BasisStatus(C.glp_get_row_stat(res.model.prob, C.int(c.index+1)))
}
