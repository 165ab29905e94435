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
Package transpo formulates transportation problems as linear programs,
solves them with GLPK and reads back a sensitivity report.

A transportation problem ships goods from supply nodes, each with a
capacity, to demand nodes, each with a requirement, at a unit cost per
arc:

	Minimize:
	  sum over arcs (s,d) of cost[s,d] * X[s,d]
	Subject to:
	  sum over d of X[s,d] <= capacity[s]   for every supply s
	  sum over s of X[s,d] >= demand[d]     for every demand d
	  X[s,d] >= 0

With transpo that is:

	net := transpo.Network{
		Name:     "example",
		Supplies: []transpo.Supply{{ID: "P1", Capacity: 1000}, {ID: "P2", Capacity: 1000}},
		Demands:  []transpo.Demand{{ID: "C1", Demand: 1200}},
		Costs: transpo.CostTable{
			{Supply: "P1", Demand: "C1"}: 150,
			{Supply: "P2", Demand: "C1"}: 560,
		},
	}

	model, _ := golp.NewModel(net.Name, golp.Minimize)
	prob, err := transpo.Build(net, model) // *ConfigurationError for bad networks
	sol, err := prob.Solve()              // *SolveError unless optimal

	fmt.Print(sol.Summary())
	for _, f := range sol.Flows {
		fmt.Println(f.Name, f.Value, f.Basis, f.ReducedCost)
	}

Run wraps those steps, verifies the solution and hands it to an Exporter
such as report.Workbook.
*/
package transpo
