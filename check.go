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

	"gonum.org/v1/gonum/floats"
)

// DefaultTolerance is the absolute slack allowed by Check.
const DefaultTolerance = 1e-6

// Check verifies a solution against its network without trusting the
// engine: row counts, non-negative flows, capacity and demand rows, and
// the objective recomputed from the flows. All violations are collected
// into a single *CheckError.
func (s *Solution) Check(net Network, tol float64) error {
	var violations []string
	violate := func(format string, args ...interface{}) {
		violations = append(violations, fmt.Sprintf(format, args...))
	}

	nS, nD := len(net.Supplies), len(net.Demands)
	if len(s.Flows) != nS*nD {
		violate("%d flows for %d arcs", len(s.Flows), nS*nD)
	}
	if len(s.Restrictions) != nS+nD {
		violate("%d restrictions for %d nodes", len(s.Restrictions), nS+nD)
	}
	if len(violations) > 0 {
		return &CheckError{Violations: violations}
	}

	costs := make([]float64, len(s.Flows))
	values := make([]float64, len(s.Flows))
	outbound := make([]float64, nS)
	inbound := make([]float64, nD)

	for k, f := range s.Flows {
		i, j := k/nD, k%nD
		if f.Arc != (Arc{Supply: net.Supplies[i].ID, Demand: net.Demands[j].ID}) {
			violate("flow %d is %s, out of order", k, f.Arc)
			continue
		}
		if f.Value < -tol {
			violate("negative flow %g on %s", f.Value, f.Arc)
		}
		costs[k] = net.Costs[f.Arc]
		values[k] = f.Value
		outbound[i] += f.Value
		inbound[j] += f.Value
	}

	for i, sup := range net.Supplies {
		if outbound[i] > sup.Capacity+tol {
			violate("supply %q ships %g over capacity %g", sup.ID, outbound[i], sup.Capacity)
		}
	}
	for j, dem := range net.Demands {
		if inbound[j] < dem.Demand-tol {
			violate("demand %q receives %g under requirement %g", dem.ID, inbound[j], dem.Demand)
		}
	}

	// relative slack for large objectives
	if total := floats.Dot(costs, values); math.Abs(total-s.Objective) > tol*math.Max(1, math.Abs(total)) {
		violate("objective %g differs from recomputed cost %g", s.Objective, total)
	}

	if len(violations) > 0 {
		return &CheckError{Violations: violations}
	}
	return nil
}
