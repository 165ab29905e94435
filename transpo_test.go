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
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costela/transpo/golp"
)

const (
	delta = 0.000001 // acceptable numerical deviation for test results
)

func exampleNetwork() Network {
	return Network{
		Name: "Transporte2",
		Supplies: []Supply{
			{ID: "P1", Capacity: 1000},
			{ID: "P2", Capacity: 1000},
			{ID: "P3", Capacity: 1000},
			{ID: "PF", Capacity: 200},
		},
		Demands: []Demand{
			{ID: "C1", Demand: 1000},
			{ID: "C2", Demand: 1000},
			{ID: "C3", Demand: 1200},
		},
		Costs: CostTable{
			{Supply: "P1", Demand: "C1"}: 150,
			{Supply: "P1", Demand: "C2"}: 200,
			{Supply: "P1", Demand: "C3"}: 350,
			{Supply: "P2", Demand: "C1"}: 560,
			{Supply: "P2", Demand: "C2"}: 1200,
			{Supply: "P2", Demand: "C3"}: 85,
			{Supply: "P3", Demand: "C1"}: 690,
			{Supply: "P3", Demand: "C2"}: 300,
			{Supply: "P3", Demand: "C3"}: 178,
			{Supply: "PF", Demand: "C1"}: 0,
			{Supply: "PF", Demand: "C2"}: 0,
			{Supply: "PF", Demand: "C3"}: 0,
		},
	}
}

func newEngine(t *testing.T) *golp.Model {
	t.Helper()

	model, err := golp.NewModel("test", golp.Minimize)
	require.NoError(t, err)

	return model
}

// randomNetwork builds a network whose total capacity covers total demand.
func randomNetwork(rng *rand.Rand, nS, nD int) Network {
	net := Network{Name: "random", Costs: CostTable{}}

	var demand float64
	for j := 0; j < nD; j++ {
		d := Demand{ID: fmt.Sprintf("D%d", j), Demand: float64(rng.Intn(100))}
		demand += d.Demand
		net.Demands = append(net.Demands, d)
	}
	for i := 0; i < nS; i++ {
		// each supply alone can cover a share, together at least all demand
		capacity := math.Ceil(demand/float64(nS)) + float64(rng.Intn(50))
		net.Supplies = append(net.Supplies, Supply{ID: fmt.Sprintf("S%d", i), Capacity: capacity})
	}
	for _, arc := range net.Arcs() {
		net.Costs[arc] = float64(rng.Intn(1000)) / 10
	}

	return net
}

func TestBuild(t *testing.T) {
	net := exampleNetwork()
	engine := newEngine(t)

	prob, err := Build(net, engine)
	require.NoError(t, err)

	assert.Equal(t, 12, engine.VariableCount())
	assert.Equal(t, 7, engine.ConstraintCount())

	for i, s := range net.Supplies {
		for j, d := range net.Demands {
			arc := Arc{Supply: s.ID, Demand: d.ID}
			v := prob.Flow(i, j)

			assert.Equal(t, i*len(net.Demands)+j, v.Index())
			assert.Equal(t, VariableName(arc), v.Name())
			assert.Equal(t, net.Costs[arc], v.Coefficient())
			l, h := v.Bounds()
			assert.Equal(t, 0.0, l)
			assert.Equal(t, math.Inf(1), h)
		}

		row := prob.CapacityRow(i)
		assert.Equal(t, "capacity_"+s.ID, row.Name())
		l, h := row.Bounds()
		assert.Equal(t, math.Inf(-1), l)
		assert.Equal(t, s.Capacity, h)
	}

	for j, d := range net.Demands {
		row := prob.DemandRow(j)
		assert.Equal(t, "demand_"+d.ID, row.Name())
		l, h := row.Bounds()
		assert.Equal(t, d.Demand, l)
		assert.Equal(t, math.Inf(1), h)
	}

	assert.Equal(t, "X[P1,C1]", prob.Flow(0, 0).Name())
	assert.Equal(t, "X[PF,C3]", prob.Flow(3, 2).Name())
}

func TestBuildInvalidLeavesEngineUntouched(t *testing.T) {
	cases := map[string]func(*Network){
		"negative cost": func(n *Network) {
			n.Costs[Arc{Supply: "P2", Demand: "C3"}] = -85
		},
		"negative capacity": func(n *Network) {
			n.Supplies[1].Capacity = -1
		},
		"negative demand": func(n *Network) {
			n.Demands[0].Demand = -1000
		},
		"missing arc": func(n *Network) {
			delete(n.Costs, Arc{Supply: "PF", Demand: "C2"})
		},
		"long id pair": withLongIDs,
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			net := exampleNetwork()
			mutate(&net)
			engine := newEngine(t)

			prob, err := Build(net, engine)
			assert.Nil(t, prob)

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.ErrorIs(t, err, ErrConfiguration)

			assert.Equal(t, 0, engine.VariableCount())
			assert.Equal(t, 0, engine.ConstraintCount())
			assert.False(t, engine.Solved())
		})
	}
}

func TestBuildEngineInUse(t *testing.T) {
	engine := newEngine(t)
	_, err := engine.AddVariable("stray", 0, 1, 1)
	require.NoError(t, err)

	_, err = Build(exampleNetwork(), engine)
	assert.ErrorIs(t, err, ErrEngineInUse)

	maximizing, err := golp.NewModel("max", golp.Maximize)
	require.NoError(t, err)

	_, err = Build(exampleNetwork(), maximizing)
	assert.Error(t, err)
}

func TestSolveExample(t *testing.T) {
	net := exampleNetwork()
	prob, err := Build(net, newEngine(t))
	require.NoError(t, err)

	sol, err := prob.Solve()
	require.NoError(t, err)

	assert.Equal(t, golp.SolutionOptimal, sol.Status)
	assert.Equal(t, 12, sol.VariableCount)
	assert.Equal(t, 7, sol.ConstraintCount)
	assert.InDelta(t, 510600, sol.Objective, delta)

	expected := map[Arc]float64{
		{Supply: "P1", Demand: "C1"}: 1000,
		{Supply: "P2", Demand: "C3"}: 1000,
		{Supply: "P3", Demand: "C2"}: 800,
		{Supply: "P3", Demand: "C3"}: 200,
		{Supply: "PF", Demand: "C2"}: 200,
	}
	require.Len(t, sol.Flows, 12)
	for k, arc := range net.Arcs() {
		f := sol.Flows[k]
		assert.Equal(t, arc, f.Arc)
		assert.Equal(t, VariableName(arc), f.Name)
		assert.Equal(t, net.Costs[arc], f.Cost)
		assert.InDelta(t, expected[arc], f.Value, delta, "flow on %s", arc)
	}

	// total capacity equals total demand, so every capacity row binds
	require.Len(t, sol.Restrictions, 7)
	for i, s := range net.Supplies {
		r := sol.Restrictions[i]
		assert.Equal(t, CapacityRow, r.Kind)
		assert.Equal(t, s.ID, r.Node)
		assert.Equal(t, "capacity_"+s.ID, r.Name)
		assert.InDelta(t, s.Capacity, r.Activity, delta)
	}
	for j, d := range net.Demands {
		r := sol.Restrictions[len(net.Supplies)+j]
		assert.Equal(t, DemandRow, r.Kind)
		assert.Equal(t, "demand_"+d.ID, r.Name)
		assert.InDelta(t, d.Demand, r.Activity, delta)
	}

	f, ok := sol.Flow(Arc{Supply: "PF", Demand: "C2"})
	require.True(t, ok)
	assert.InDelta(t, 200, f.Value, delta)

	assert.NoError(t, sol.Check(net, delta))
}

func TestSolveSensitivity(t *testing.T) {
	net := exampleNetwork()
	prob, err := Build(net, newEngine(t))
	require.NoError(t, err)

	sol, err := prob.Solve()
	require.NoError(t, err)

	for _, f := range sol.Flows {
		if f.Basis == golp.Basic {
			assert.InDelta(t, 0, f.ReducedCost, delta, "basic %s", f.Name)
		} else {
			assert.Equal(t, golp.AtLowerBound, f.Basis, f.Name)
			assert.InDelta(t, 0, f.Value, delta, f.Name)
			assert.GreaterOrEqual(t, f.ReducedCost, -delta, f.Name)
		}
	}

	// strong duality: the duals price the right-hand sides at the optimum
	var dualObjective float64
	for _, r := range sol.Restrictions {
		switch r.Kind {
		case CapacityRow:
			assert.LessOrEqual(t, r.Dual, delta, r.Name)
		case DemandRow:
			assert.GreaterOrEqual(t, r.Dual, -delta, r.Name)
		}
		dualObjective += r.Dual * r.RHS
	}
	assert.InDelta(t, sol.Objective, dualObjective, delta)

	// reduced cost = cost - u_s - v_d
	duals := map[string]float64{}
	for _, r := range sol.Restrictions {
		duals[r.Name] = r.Dual
	}
	for _, f := range sol.Flows {
		expected := f.Cost - duals[CapacityName(f.Supply)] - duals[DemandName(f.Demand)]
		assert.InDelta(t, expected, f.ReducedCost, delta, f.Name)
	}
}

func TestSolveTwice(t *testing.T) {
	prob, err := Build(exampleNetwork(), newEngine(t))
	require.NoError(t, err)

	_, err = prob.Solve()
	require.NoError(t, err)

	_, err = prob.Solve()
	assert.ErrorIs(t, err, ErrAlreadySolved)
}

func TestSolveInfeasible(t *testing.T) {
	net := exampleNetwork()
	net.Demands[2].Demand = 5000

	prob, err := Build(net, newEngine(t))
	require.NoError(t, err)

	sol, err := prob.Solve()
	assert.Nil(t, sol)

	var solveErr *SolveError
	require.ErrorAs(t, err, &solveErr)
	assert.ErrorIs(t, err, golp.ErrModelInfeasible)
	assert.NotEqual(t, golp.SolutionOptimal, solveErr.Status)
}

func TestSolveIdempotent(t *testing.T) {
	solve := func() *Solution {
		prob, err := Build(exampleNetwork(), newEngine(t))
		require.NoError(t, err)
		sol, err := prob.Solve()
		require.NoError(t, err)
		sol.Duration = 0
		return sol
	}

	assert.Equal(t, solve(), solve())
}

func TestSummary(t *testing.T) {
	sol := &Solution{VariableCount: 12, ConstraintCount: 7, Objective: 510600}

	summary := sol.Summary()
	assert.Contains(t, summary, "Number of variables = 12")
	assert.Contains(t, summary, "Number of constraints = 7")
	assert.Contains(t, summary, "Cost = 510600")
	assert.Contains(t, summary, "Time = 0.000 milliseconds")

	sol = &Solution{Objective: 1.5e21, Duration: 1500 * time.Microsecond}
	summary = sol.Summary()
	assert.Contains(t, summary, "Cost = 1500000000000000000000\n")
	assert.Contains(t, summary, "Time = 1.500 milliseconds")
}

func TestCheckDetectsViolations(t *testing.T) {
	net := exampleNetwork()
	prob, err := Build(net, newEngine(t))
	require.NoError(t, err)
	sol, err := prob.Solve()
	require.NoError(t, err)

	tampered := *sol
	tampered.Flows = append([]Flow(nil), sol.Flows...)
	tampered.Flows[0].Value += 50 // P1 over capacity and objective off
	tampered.Objective -= 1

	err = tampered.Check(net, delta)
	var checkErr *CheckError
	require.ErrorAs(t, err, &checkErr)
	assert.Len(t, checkErr.Violations, 2)

	short := *sol
	short.Flows = sol.Flows[:3]
	assert.Error(t, short.Check(net, delta))
}

func TestSolveProperties(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30

	properties := gopter.NewProperties(parameters)

	properties.Property("covered networks solve to a checked optimum", prop.ForAll(
		func(nS, nD int, seed int64) bool {
			net := randomNetwork(rand.New(rand.NewSource(seed)), nS, nD)

			engine, err := golp.NewModel(net.Name, golp.Minimize)
			if err != nil {
				return false
			}
			prob, err := Build(net, engine)
			if err != nil {
				return false
			}
			sol, err := prob.Solve()
			if err != nil {
				return false
			}

			return sol.Objective >= -delta &&
				len(sol.Flows) == nS*nD &&
				len(sol.Restrictions) == nS+nD &&
				sol.Check(net, delta) == nil
		},
		gen.IntRange(1, 6),
		gen.IntRange(1, 6),
		gen.Int64(),
	))

	properties.Property("invalid networks never reach the engine", prop.ForAll(
		func(nS, nD int, seed int64, negative float64) bool {
			rng := rand.New(rand.NewSource(seed))
			net := randomNetwork(rng, nS, nD)
			arcs := net.Arcs()
			net.Costs[arcs[rng.Intn(len(arcs))]] = -negative

			engine, err := golp.NewModel(net.Name, golp.Minimize)
			if err != nil {
				return false
			}
			_, err = Build(net, engine)

			return errors.Is(err, ErrConfiguration) &&
				engine.VariableCount() == 0 &&
				engine.ConstraintCount() == 0
		},
		gen.IntRange(1, 6),
		gen.IntRange(1, 6),
		gen.Int64(),
		gen.Float64Range(0.001, 1000),
	))

	properties.TestingRun(t)
}
