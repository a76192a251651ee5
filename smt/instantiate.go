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

package smt

import (
	"github.com/ctreegen/ctreegen/gram"
	"github.com/ctreegen/ctreegen/tree"
)

// VarType maps an SMT string variable to the nonterminal its value
// must parse as once instantiated.
type VarType map[string]string

// Instantiation is one accepted, tree-parsed model.
type Instantiation struct {
	Trees map[string]tree.Tree
}

// Instantiate performs the tree-aware instantiation loop: ask
// backend for a model of assertions over the variables named in
// types, parse every model string against the grammar rooted at its
// declared nonterminal type, and repeat (excluding rejected models)
// until maxModels distinct, fully-parseable models have been
// collected or the backend stops offering new ones.
//
// The returned Outcome is Sat if at least one instantiation was
// produced, Unsat if the backend proved unsatisfiability, or Unknown
// if the backend could satisfy the assertions but every model it
// offered failed to parse against the grammar (a local pruning
// outcome, not an error).
func Instantiate(backend Backend, g *gram.Grammar, ctx *tree.Context, assertions []Expr, types VarType, maxModels int) ([]Instantiation, Outcome) {
	if maxModels <= 0 {
		maxModels = 1
	}
	vars := make([]string, 0, len(types))
	for name := range types {
		vars = append(vars, name)
	}

	var accepted []Instantiation
	var exclude []map[string]string
	// Cap the number of rejected models we tolerate before giving up,
	// so a backend that only ever proposes un-parseable strings can't
	// spin forever.
	const maxRejects = 64
	rejects := 0

	for len(accepted) < maxModels && rejects < maxRejects {
		model, outcome, err := backend.Model(assertions, vars, exclude)
		if err != nil || outcome != Sat {
			if len(accepted) > 0 {
				return accepted, Sat
			}
			if outcome == Unsat {
				return nil, Unsat
			}
			return nil, Unknown
		}
		exclude = append(exclude, model)

		trees := make(map[string]tree.Tree, len(model))
		ok := true
		for name, val := range model {
			nt, known := types[name]
			if !known {
				continue
			}
			t, parsed := g.ParseExact(ctx, nt, val)
			if !parsed {
				ok = false
				break
			}
			trees[name] = t
		}
		if ok {
			accepted = append(accepted, Instantiation{Trees: trees})
		} else {
			rejects++
		}
	}
	if len(accepted) == 0 {
		return nil, Unknown
	}
	return accepted, Sat
}
