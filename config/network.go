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

package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/costela/transpo"
)

type supplyEntry struct {
	ID       string  `yaml:"id"`
	Capacity float64 `yaml:"capacity"`
}

type demandEntry struct {
	ID     string  `yaml:"id"`
	Demand float64 `yaml:"demand"`
}

// networkFile is the on-disk shape of a network. Costs are keyed by
// supply, then by demand.
type networkFile struct {
	Name     string                        `yaml:"name"`
	Supplies []supplyEntry                 `yaml:"supplies"`
	Demands  []demandEntry                 `yaml:"demands"`
	Costs    map[string]map[string]float64 `yaml:"costs"`
}

// LoadNetwork reads and validates the network file at path.
func LoadNetwork(path string) (transpo.Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return transpo.Network{}, fmt.Errorf("opening network file: %w", err)
	}
	defer f.Close()

	net, err := DecodeNetwork(f)
	if err != nil {
		return transpo.Network{}, fmt.Errorf("loading network %s: %w", path, err)
	}
	return net, nil
}

// DecodeNetwork parses a YAML network definition. Unknown keys are
// rejected. The result is validated, so every error is a
// *transpo.ConfigurationError.
func DecodeNetwork(r io.Reader) (transpo.Network, error) {
	var nf networkFile

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&nf); err != nil {
		if err == io.EOF {
			return transpo.Network{}, &transpo.ConfigurationError{Entity: "network file", Reason: "empty document"}
		}
		return transpo.Network{}, &transpo.ConfigurationError{Entity: "network file", Reason: err.Error()}
	}

	net := transpo.Network{
		Name:     nf.Name,
		Supplies: make([]transpo.Supply, 0, len(nf.Supplies)),
		Demands:  make([]transpo.Demand, 0, len(nf.Demands)),
		Costs:    make(transpo.CostTable),
	}
	for _, s := range nf.Supplies {
		net.Supplies = append(net.Supplies, transpo.Supply{ID: s.ID, Capacity: s.Capacity})
	}
	for _, d := range nf.Demands {
		net.Demands = append(net.Demands, transpo.Demand{ID: d.ID, Demand: d.Demand})
	}
	for supply, row := range nf.Costs {
		for demand, cost := range row {
			net.Costs[transpo.Arc{Supply: supply, Demand: demand}] = cost
		}
	}

	if err := net.Validate(); err != nil {
		return transpo.Network{}, err
	}
	return net, nil
}

// EncodeNetwork writes net in the format DecodeNetwork reads.
func EncodeNetwork(w io.Writer, net transpo.Network) error {
	nf := networkFile{
		Name:     net.Name,
		Supplies: make([]supplyEntry, 0, len(net.Supplies)),
		Demands:  make([]demandEntry, 0, len(net.Demands)),
		Costs:    make(map[string]map[string]float64, len(net.Supplies)),
	}
	for _, s := range net.Supplies {
		nf.Supplies = append(nf.Supplies, supplyEntry{ID: s.ID, Capacity: s.Capacity})
	}
	for _, d := range net.Demands {
		nf.Demands = append(nf.Demands, demandEntry{ID: d.ID, Demand: d.Demand})
	}
	for arc, cost := range net.Costs {
		row, ok := nf.Costs[arc.Supply]
		if !ok {
			row = make(map[string]float64)
			nf.Costs[arc.Supply] = row
		}
		row[arc.Demand] = cost
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&nf); err != nil {
		return fmt.Errorf("encoding network: %w", err)
	}
	return enc.Close()
}

// DefaultNetwork is the example used when no network file is given: three
// plants and a fictitious source PF at zero cost feeding three customers.
func DefaultNetwork() transpo.Network {
	return transpo.Network{
		Name: "Transporte2",
		Supplies: []transpo.Supply{
			{ID: "P1", Capacity: 1000},
			{ID: "P2", Capacity: 1000},
			{ID: "P3", Capacity: 1000},
			{ID: "PF", Capacity: 200},
		},
		Demands: []transpo.Demand{
			{ID: "C1", Demand: 1000},
			{ID: "C2", Demand: 1000},
			{ID: "C3", Demand: 1200},
		},
		Costs: transpo.CostTable{
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
