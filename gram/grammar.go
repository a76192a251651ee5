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

// Package gram holds the read-only context-free grammar consumed by the
// rest of the engine: a mapping from nonterminal symbols to ordered
// expansion alternatives, plus the grammar-graph reachability queries
// that the match, predicate, and insert packages need on their hot
// paths.
//
// The concrete-syntax grammar parser (and any grammar-graph reachability
// *library*) is a collaborator developed outside this module per the
// specification; ParseBNF and FromYAML below are minimal substitutes
// that keep this module self-contained for its own tests and CLI.
package gram

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Symbol is one element of an expansion alternative.
type Symbol struct {
	Name       string
	IsTerminal bool
}

func NT(name string) Symbol { return Symbol{Name: name} }
func T(text string) Symbol  { return Symbol{Name: text, IsTerminal: true} }

func (s Symbol) String() string {
	if s.IsTerminal {
		return fmt.Sprintf("%q", s.Name)
	}
	return s.Name
}

// Alt is one ordered expansion alternative.
type Alt []Symbol

// Grammar is an immutable mapping from nonterminal name to its ordered
// alternatives, plus a distinguished start symbol.
type Grammar struct {
	Start string
	rules map[string][]Alt
	// order preserves declaration order for deterministic iteration
	// (tests and the scheduler depend on stable expansion order).
	order []string

	closure *reachability
}

// New builds a Grammar from an explicit nonterminal->alternatives map
// (the "programmatic mapping" form of the external interface). order
// gives the nonterminal declaration order; nonterminals absent from
// order are appended in map-iteration order (non-deterministic, so
// callers that care about determinism should supply a complete order).
func New(start string, rules map[string][]Alt, order []string) *Grammar {
	g := &Grammar{Start: start, rules: rules, order: slices.Clone(order)}
	seen := make(map[string]bool, len(order))
	for _, nt := range order {
		seen[nt] = true
	}
	for nt := range rules {
		if !seen[nt] {
			g.order = append(g.order, nt)
			seen[nt] = true
		}
	}
	return g
}

// Alternatives returns the ordered alternatives for nonterminal nt, or
// nil if nt is not defined.
func (g *Grammar) Alternatives(nt string) []Alt {
	return g.rules[nt]
}

// IsNonterminal reports whether name is a defined nonterminal.
func (g *Grammar) IsNonterminal(name string) bool {
	_, ok := g.rules[name]
	return ok
}

// Nonterminals returns every defined nonterminal in declaration order.
func (g *Grammar) Nonterminals() []string {
	return slices.Clone(g.order)
}

// Validate checks that every nonterminal referenced by an alternative
// is itself defined, and that Start is defined. This is the admission
// check referenced by the specification error taxonomy (class 1).
func (g *Grammar) Validate() error {
	if !g.IsNonterminal(g.Start) {
		return fmt.Errorf("gram: start symbol %q is not defined", g.Start)
	}
	for _, nt := range g.order {
		for _, alt := range g.rules[nt] {
			for _, sym := range alt {
				if !sym.IsTerminal && !g.IsNonterminal(sym.Name) {
					return fmt.Errorf("gram: %q references undefined nonterminal %q", nt, sym.Name)
				}
			}
		}
	}
	return nil
}
