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

// Variable is a handle to a model column.
type Variable struct {
	model *Model
	index int
}

/* Variable-related functions (model variables, as opposed to Go variables) */

// Index returns the zero-based column position of the variable.
func (v *Variable) Index() int {
	return v.index
}

func (v *Variable) Name() string {
	v.model.mu.RLock()
	defer v.model.mu.RUnlock()

	return C.GoString(C.glp_get_col_name(v.model.prob, C.int(v.index+1)))
}

// Bounds returns the variable's bounds, with infinities for open sides.
func (v *Variable) Bounds() (lower, upper float64) {
	v.model.mu.RLock()
	defer v.model.mu.RUnlock()

	col := C.int(v.index + 1)
	return boundsOf(
		C.glp_get_col_type(v.model.prob, col),
		C.glp_get_col_lb(v.model.prob, col),
		C.glp_get_col_ub(v.model.prob, col),
	)
}

func (v *Variable) Coefficient() float64 {
	v.model.mu.RLock()
	defer v.model.mu.RUnlock()

	return float64(C.glp_get_obj_coef(v.model.prob, C.int(v.index+1)))
}
