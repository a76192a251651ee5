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

package elim

import (
	"github.com/ctreegen/ctreegen/formula"
	"github.com/ctreegen/ctreegen/insert"
	"github.com/ctreegen/ctreegen/match"
	"github.com/ctreegen/ctreegen/tree"
)

// instantiateMatch builds the quantifier body instantiated for one
// match: the bound variable itself, plus every named bind-expression
// part, replaced by the corresponding subtree of t.
func instantiateMatch(t tree.Tree, q formula.Quant, matchPath tree.Path, b match.Binding) formula.Formula {
	body := formula.InstantiateBound(q.Body, q.Var, t.At(matchPath))
	for _, part := range q.Bind {
		if part.Name == nil || part.Name.Kind == formula.Dummy {
			continue
		}
		p, bound := b[part.Name.Name]
		if !bound {
			continue
		}
		body = formula.InstantiateBound(body, *part.Name, t.At(p))
	}
	return body
}

// containsFormula reports whether any of fs is syntactically identical
// to f (by String()), used to avoid growing a conjunction with a
// quantifier instantiation it already contains, since tryUniversal
// re-fires a quantifier it keeps alive on later calls.
func containsFormula(fs []formula.Formula, f formula.Formula) bool {
	s := f.String()
	for _, g := range fs {
		if g.String() == s {
			return true
		}
	}
	return false
}

// tryUniversal implements rule 4: instantiate the body of a universal
// quantifier for every subtree of its range that currently matches,
// conjoining each instantiation that is not already present. The
// quantifier itself is dropped only once no open leaf of its range
// subtree may still come to match; otherwise it is kept so a
// later, larger tree can fire it again.
func tryUniversal(cfg Config, t tree.Tree, conjuncts []formula.Formula) ([]State, bool) {
	for i, c := range conjuncts {
		q, isQuant := c.(formula.Quant)
		if !isQuant || !q.Universal {
			continue
		}
		ambient, _, ok := rangeTree(t, q.Range)
		if !ok {
			continue
		}
		matches := match.AllMatches(ambient, q.Var.Type, q.Bind)
		if cfg.MaxFreeInstantiations > 0 && len(matches) > cfg.MaxFreeInstantiations {
			matches = matches[:cfg.MaxFreeInstantiations]
		}

		var fresh []formula.Formula
		rest := withoutIndices(conjuncts, []int{i})
		for _, m := range matches {
			body := instantiateMatch(ambient, q, m.Path, m.Binding)
			if containsFormula(rest, body) || containsFormula(fresh, body) {
				continue
			}
			fresh = append(fresh, body)
		}
		done := !match.AnyOpenLeafMayMatch(cfg.Grammar, ambient, q.Var.Type)
		if len(fresh) == 0 {
			if done {
				// no match now and none can appear later: a universal
				// over an empty (or fully fired) range holds vacuously
				return []State{{Tree: t, Formula: rebuild(rest)}}, true
			}
			continue
		}

		next := append(append([]formula.Formula{}, rest...), fresh...)
		if !done {
			next = append(next, q)
		}
		return []State{{Tree: t, Formula: rebuild(next)}}, true
	}
	return nil, false
}

// tryExistential implements rule 5: the first existential quantifier
// in the conjunction is discharged either by matching an existing
// subtree (4a) or by inserting one via I (4b); both strategies are
// tried and every resulting match yields one successor state, with
// the existential dropped from each.
func tryExistential(ctx *tree.Context, cfg Config, t tree.Tree, conjuncts []formula.Formula) ([]State, bool) {
	for i, c := range conjuncts {
		q, isQuant := c.(formula.Quant)
		if !isQuant || q.Universal {
			continue
		}
		ambient, base, ok := rangeTree(t, q.Range)
		if !ok {
			continue
		}
		rest := withoutIndices(conjuncts, []int{i})

		var succs []State
		for _, m := range match.AllMatches(ambient, q.Var.Type, q.Bind) {
			body := instantiateMatch(ambient, q, m.Path, m.Binding)
			next := append(append([]formula.Formula{}, rest...), body)
			succs = append(succs, State{Tree: t, Formula: rebuild(next)})
		}

		for _, candidate := range insert.Insert(ctx, cfg.Grammar, ambient, q.Var.Type) {
			for _, m := range match.AllMatches(candidate, q.Var.Type, q.Bind) {
				body := instantiateMatch(candidate, q, m.Path, m.Binding)
				next := append(append([]formula.Formula{}, rest...), body)
				newTree := t
				if len(base) > 0 {
					newTree = t.Replace(base, candidate)
				} else {
					newTree = candidate
				}
				succs = append(succs, State{Tree: newTree, Formula: rebuild(next)})
			}
		}

		if cfg.MaxFreeInstantiations > 0 && len(succs) > cfg.MaxFreeInstantiations {
			succs = succs[:cfg.MaxFreeInstantiations]
		}
		if len(succs) > 0 {
			return succs, true
		}
	}
	return nil, false
}
