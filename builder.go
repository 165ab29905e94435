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
	"math"

	"github.com/costela/transpo/golp"
)

// Problem is a network translated into an engine model. It keeps a
// handle to every variable and row it created, so results are read back
// without name lookups.
type Problem struct {
	network    Network
	engine     *golp.Model
	flows      [][]*golp.Variable // [supply][demand]
	capacities []*golp.Constraint
	demands    []*golp.Constraint
	solved     bool
}

// Build validates the network and formulates it on the given engine,
// which must be a fresh minimization model: one non-negative flow
// variable per arc costed at the arc's unit cost, one "≤ capacity" row
// per supply node and one "≥ demand" row per demand node.
//
// Validation happens before the engine is touched, so a network with
// configuration errors leaves the engine empty.
func Build(net Network, engine *golp.Model) (*Problem, error) {
	if err := net.Validate(); err != nil {
		return nil, err
	}
	if engine.VariableCount() != 0 || engine.ConstraintCount() != 0 || engine.Solved() {
		return nil, ErrEngineInUse
	}
	if engine.Direction() != golp.Minimize {
		return nil, fmt.Errorf("transpo: engine must minimize")
	}

	p := &Problem{
		network:    net,
		engine:     engine,
		flows:      make([][]*golp.Variable, len(net.Supplies)),
		capacities: make([]*golp.Constraint, 0, len(net.Supplies)),
		demands:    make([]*golp.Constraint, 0, len(net.Demands)),
	}

	for i, s := range net.Supplies {
		p.flows[i] = make([]*golp.Variable, len(net.Demands))
		for j, d := range net.Demands {
			arc := Arc{Supply: s.ID, Demand: d.ID}
			v, err := engine.AddVariable(VariableName(arc), 0, math.Inf(1), net.Costs[arc])
			if err != nil {
				return nil, fmt.Errorf("adding flow variable for %s: %w", arc, err)
			}
			p.flows[i][j] = v
		}
	}

	ones := make([]float64, max(len(net.Supplies), len(net.Demands)))
	for i := range ones {
		ones[i] = 1
	}

	for i, s := range net.Supplies {
		row, err := engine.AddConstraint(CapacityName(s.ID), math.Inf(-1), s.Capacity, p.flows[i], ones[:len(net.Demands)])
		if err != nil {
			return nil, fmt.Errorf("adding capacity row for %q: %w", s.ID, err)
		}
		p.capacities = append(p.capacities, row)
	}

	inbound := make([]*golp.Variable, len(net.Supplies))
	for j, d := range net.Demands {
		for i := range net.Supplies {
			inbound[i] = p.flows[i][j]
		}
		row, err := engine.AddConstraint(DemandName(d.ID), d.Demand, math.Inf(1), inbound, ones[:len(net.Supplies)])
		if err != nil {
			return nil, fmt.Errorf("adding demand row for %q: %w", d.ID, err)
		}
		p.demands = append(p.demands, row)
	}

	return p, nil
}

// Flow returns the variable handle of the arc between the i-th supply
// and the j-th demand node.
func (p *Problem) Flow(i, j int) *golp.Variable {
	return p.flows[i][j]
}

// CapacityRow returns the row handle of the i-th supply node.
func (p *Problem) CapacityRow(i int) *golp.Constraint {
	return p.capacities[i]
}

// DemandRow returns the row handle of the j-th demand node.
func (p *Problem) DemandRow(j int) *golp.Constraint {
	return p.demands[j]
}
