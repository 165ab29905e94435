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
	"sort"
)

const (
	// maxIDLen bounds the network name and every node identifier.
	maxIDLen = 200
	// maxEngineNameLen is the longest row or column name GLPK accepts.
	// Flow variable names join two identifiers, so they are checked as
	// composed.
	maxEngineNameLen = 255
)

// Supply is a source node with a shipping capacity.
type Supply struct {
	ID       string
	Capacity float64
}

// Demand is a sink node with a requirement that must be met.
type Demand struct {
	ID     string
	Demand float64
}

// Arc identifies a (supply, demand) pair.
type Arc struct {
	Supply string
	Demand string
}

func (a Arc) String() string {
	return fmt.Sprintf("%s→%s", a.Supply, a.Demand)
}

// CostTable maps every arc of a network to its unit shipping cost. A
// valid table covers each (supply, demand) pair exactly once and names no
// unknown node.
type CostTable map[Arc]float64

// Network is a complete transportation problem definition. The order of
// Supplies and Demands is the order of variables, rows and report lines.
type Network struct {
	Name     string
	Supplies []Supply
	Demands  []Demand
	Costs    CostTable
}

// TotalCapacity sums the capacity of every supply node.
func (n Network) TotalCapacity() float64 {
	var total float64
	for _, s := range n.Supplies {
		total += s.Capacity
	}
	return total
}

// TotalDemand sums the requirement of every demand node.
func (n Network) TotalDemand() float64 {
	var total float64
	for _, d := range n.Demands {
		total += d.Demand
	}
	return total
}

// Arcs lists every arc, supply nodes outer and demand nodes inner.
func (n Network) Arcs() []Arc {
	arcs := make([]Arc, 0, len(n.Supplies)*len(n.Demands))
	for _, s := range n.Supplies {
		for _, d := range n.Demands {
			arcs = append(arcs, Arc{Supply: s.ID, Demand: d.ID})
		}
	}
	return arcs
}

// Validate checks the network for completeness and sign errors. It
// reports the first problem found as a *ConfigurationError.
func (n Network) Validate() error {
	if len(n.Name) > maxIDLen {
		return &ConfigurationError{Entity: "network", Reason: fmt.Sprintf("name longer than %d bytes", maxIDLen)}
	}
	if len(n.Supplies) == 0 {
		return &ConfigurationError{Entity: "supplies", Reason: "no supply nodes defined"}
	}
	if len(n.Demands) == 0 {
		return &ConfigurationError{Entity: "demands", Reason: "no demand nodes defined"}
	}

	supplies := make(map[string]bool, len(n.Supplies))
	for _, s := range n.Supplies {
		entity := fmt.Sprintf("supply %q", s.ID)
		if err := checkID(entity, s.ID, supplies); err != nil {
			return err
		}
		if err := checkQuantity(entity, "capacity", s.Capacity); err != nil {
			return err
		}
	}

	demands := make(map[string]bool, len(n.Demands))
	for _, d := range n.Demands {
		entity := fmt.Sprintf("demand %q", d.ID)
		if err := checkID(entity, d.ID, demands); err != nil {
			return err
		}
		if err := checkQuantity(entity, "demand", d.Demand); err != nil {
			return err
		}
	}

	for _, arc := range n.Arcs() {
		if name := VariableName(arc); len(name) > maxEngineNameLen {
			return &ConfigurationError{
				Entity: "arc " + arc.String(),
				Reason: fmt.Sprintf("variable name is %d bytes, longer than %d", len(name), maxEngineNameLen),
			}
		}
		cost, ok := n.Costs[arc]
		if !ok {
			return &ConfigurationError{Entity: "arc " + arc.String(), Reason: "missing from cost table"}
		}
		if err := checkQuantity("arc "+arc.String(), "cost", cost); err != nil {
			return err
		}
	}

	// with every known arc present, any surplus entry names an unknown node
	if len(n.Costs) != len(n.Supplies)*len(n.Demands) {
		var unknown []string
		for arc := range n.Costs {
			if !supplies[arc.Supply] || !demands[arc.Demand] {
				unknown = append(unknown, arc.String())
			}
		}
		sort.Strings(unknown)
		return &ConfigurationError{Entity: "arc " + unknown[0], Reason: "references an unknown node"}
	}

	return nil
}

func checkID(entity, id string, seen map[string]bool) error {
	switch {
	case id == "":
		return &ConfigurationError{Entity: entity, Reason: "empty identifier"}
	case len(id) > maxIDLen:
		return &ConfigurationError{Entity: entity, Reason: fmt.Sprintf("identifier longer than %d bytes", maxIDLen)}
	case seen[id]:
		return &ConfigurationError{Entity: entity, Reason: "duplicate identifier"}
	}
	seen[id] = true
	return nil
}

func checkQuantity(entity, field string, v float64) error {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return &ConfigurationError{Entity: entity, Reason: fmt.Sprintf("%s must be finite, got %g", field, v)}
	case v < 0:
		return &ConfigurationError{Entity: entity, Reason: fmt.Sprintf("negative %s %g", field, v)}
	}
	return nil
}

// VariableName is the engine name of the flow variable on an arc.
func VariableName(a Arc) string {
	return fmt.Sprintf("X[%s,%s]", a.Supply, a.Demand)
}

// CapacityName is the engine name of a supply node's capacity row.
func CapacityName(supply string) string {
	return "capacity_" + supply
}

// DemandName is the engine name of a demand node's requirement row.
func DemandName(demand string) string {
	return "demand_" + demand
}
