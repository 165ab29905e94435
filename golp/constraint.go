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

// Constraint is a handle to a model row.
type Constraint struct {
	model *Model
	index int
}

// Index returns the zero-based row position of the constraint.
func (c *Constraint) Index() int {
	return c.index
}

func (c *Constraint) Name() string {
	c.model.mu.RLock()
	defer c.model.mu.RUnlock()

	return C.GoString(C.glp_get_row_name(c.model.prob, C.int(c.index+1)))
}

// Bounds returns the row's bounds, with infinities for open sides.
func (c *Constraint) Bounds() (lower, upper float64) {
	c.model.mu.RLock()
	defer c.model.mu.RUnlock()

	row := C.int(c.index + 1)
	return boundsOf(
		C.glp_get_row_type(c.model.prob, row),
		C.glp_get_row_lb(c.model.prob, row),
		C.glp_get_row_ub(c.model.prob, row),
	)
}
