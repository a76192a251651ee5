// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package gram

import (
	"fmt"
	"sort"

	"sigs.k8s.io/yaml"
)

// yamlDoc mirrors the programmatic-mapping form of the external
// interface when it is persisted as a config file alongside a solver
// run.
type yamlDoc struct {
	Start string              `json:"start"`
	Rules map[string][]string `json:"rules"`
}

// FromYAML parses the YAML form of a grammar: a start symbol and a map
// from nonterminal to a list of alternatives, each alternative written
// in the same per-symbol surface syntax as ParseBNF's right-hand side.
func FromYAML(doc []byte) (*Grammar, error) {
	var y yamlDoc
	if err := yaml.Unmarshal(doc, &y); err != nil {
		return nil, fmt.Errorf("gram.FromYAML: %w", err)
	}
	if y.Start == "" {
		return nil, fmt.Errorf("gram.FromYAML: missing start symbol")
	}
	rules := make(map[string][]Alt, len(y.Rules))
	order := make([]string, 0, len(y.Rules))
	for nt := range y.Rules {
		order = append(order, nt)
	}
	sort.Strings(order)
	for _, nt := range order {
		alts := y.Rules[nt]
		for _, altSrc := range alts {
			alt, err := parseAlt(altSrc)
			if err != nil {
				return nil, fmt.Errorf("gram.FromYAML: %s: %w", nt, err)
			}
			rules[nt] = append(rules[nt], alt)
		}
	}
	g := New(y.Start, rules, order)
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}
