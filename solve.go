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
	"strconv"
	"strings"
	"time"

	"github.com/costela/transpo/golp"
)

type RowKind int

const (
	CapacityRow RowKind = iota
	DemandRow
)

func (k RowKind) String() string {
	if k == CapacityRow {
		return "capacity"
	}
	return "demand"
}

// Flow is the solved state of one arc variable.
type Flow struct {
	Arc
	Name        string
	Cost        float64
	Value       float64
	ReducedCost float64
	Basis       golp.BasisStatus
}

// Restriction is the solved state of one capacity or demand row.
type Restriction struct {
	Name     string
	Kind     RowKind
	Node     string
	RHS      float64
	Activity float64
	Dual     float64
	Basis    golp.BasisStatus
}

// Solution carries everything read back from an optimal solve. Flows are
// ordered supply-outer/demand-inner; Restrictions list capacity rows in
// supply order followed by demand rows in demand order.
type Solution struct {
	Status          golp.Status
	Objective       float64
	VariableCount   int
	ConstraintCount int
	Duration        time.Duration
	Flows           []Flow
	Restrictions    []Restriction
}

// Solve hands the problem to the engine and blocks until it finishes.
// Only an optimal outcome is extracted; anything else is returned as a
// *SolveError. A problem can be solved once.
func (p *Problem) Solve() (*Solution, error) {
	if p.solved {
		return nil, ErrAlreadySolved
	}
	p.solved = true

	res, err := p.engine.Solve()
	if err != nil {
		return nil, &SolveError{Status: p.engine.Status(), Err: err}
	}

	net := p.network
	sol := &Solution{
		Status:          res.Status(),
		Objective:       res.ObjectiveValue(),
		VariableCount:   res.VariableCount(),
		ConstraintCount: res.ConstraintCount(),
		Duration:        res.Duration(),
		Flows:           make([]Flow, 0, len(net.Supplies)*len(net.Demands)),
		Restrictions:    make([]Restriction, 0, len(net.Supplies)+len(net.Demands)),
	}

	for i, s := range net.Supplies {
		for j, d := range net.Demands {
			v := p.flows[i][j]
			arc := Arc{Supply: s.ID, Demand: d.ID}
			sol.Flows = append(sol.Flows, Flow{
				Arc:         arc,
				Name:        VariableName(arc),
				Cost:        net.Costs[arc],
				Value:       res.Value(v),
				ReducedCost: res.ReducedCost(v),
				Basis:       res.VariableBasis(v),
			})
		}
	}

	for i, s := range net.Supplies {
		row := p.capacities[i]
		sol.Restrictions = append(sol.Restrictions, Restriction{
			Name:     CapacityName(s.ID),
			Kind:     CapacityRow,
			Node:     s.ID,
			RHS:      s.Capacity,
			Activity: res.Activity(row),
			Dual:     res.Dual(row),
			Basis:    res.RowBasis(row),
		})
	}

	for j, d := range net.Demands {
		row := p.demands[j]
		sol.Restrictions = append(sol.Restrictions, Restriction{
			Name:     DemandName(d.ID),
			Kind:     DemandRow,
			Node:     d.ID,
			RHS:      d.Demand,
			Activity: res.Activity(row),
			Dual:     res.Dual(row),
			Basis:    res.RowBasis(row),
		})
	}

	return sol, nil
}

// Flow returns the solved flow on an arc.
func (s *Solution) Flow(arc Arc) (Flow, bool) {
	for _, f := range s.Flows {
		if f.Arc == arc {
			return f, true
		}
	}
	return Flow{}, false
}

// Summary renders the console report of a solve.
func (s *Solution) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Number of variables = %d\n", s.VariableCount)
	fmt.Fprintf(&b, "Number of constraints = %d\n", s.ConstraintCount)
	fmt.Fprintf(&b, "Cost = %s\n", strconv.FormatFloat(s.Objective, 'f', -1, 64))
	fmt.Fprintf(&b, "Time = %.3f milliseconds\n", float64(s.Duration)/float64(time.Millisecond))
	return b.String()
}
