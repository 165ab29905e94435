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

// Package report turns a solved transportation problem into flat tables
// and writes them as sheets of an .xlsx workbook.
package report

import (
	"fmt"

	"github.com/costela/transpo"
)

const (
	VariablesSheet   = "Variables"
	ConstraintsSheet = "Constraints"
)

var (
	VariablesHeader   = []string{"Variable", "Value", "Status", "ReducedCost"}
	ConstraintsHeader = []string{"Constraint", "Status", "DualValue"}
)

// Table is one sheet worth of rows under a header.
type Table struct {
	Sheet  string
	Header []string
	Rows   [][]interface{}
}

// VariableTable has one row per flow variable, in the solution's
// supply-outer/demand-inner order.
func VariableTable(sol *transpo.Solution) Table {
	t := Table{
		Sheet:  VariablesSheet,
		Header: VariablesHeader,
		Rows:   make([][]interface{}, 0, len(sol.Flows)),
	}
	for _, f := range sol.Flows {
		t.Rows = append(t.Rows, []interface{}{f.Name, f.Value, f.Basis.String(), f.ReducedCost})
	}
	return t
}

// ConstraintTable has one row per capacity row, then one per demand row.
func ConstraintTable(sol *transpo.Solution) Table {
	t := Table{
		Sheet:  ConstraintsSheet,
		Header: ConstraintsHeader,
		Rows:   make([][]interface{}, 0, len(sol.Restrictions)),
	}
	for _, r := range sol.Restrictions {
		t.Rows = append(t.Rows, []interface{}{r.Name, r.Basis.String(), r.Dual})
	}
	return t
}

// IOError reports a failure to persist the workbook. The target file is
// left as it was.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("report: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Workbook exports solutions to an .xlsx file, replacing any file
// already at Path.
type Workbook struct {
	Path string
}

var _ transpo.Exporter = Workbook{}

func (w Workbook) Export(sol *transpo.Solution) error {
	return Write(w.Path, VariableTable(sol), ConstraintTable(sol))
}
