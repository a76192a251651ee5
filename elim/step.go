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
	"github.com/ctreegen/ctreegen/predicate"
	"github.com/ctreegen/ctreegen/tree"
)

// Step applies the highest-priority rule that fires for s and returns
// its successors. Only the top-level disjunct currently being worked
// is split eagerly (one successor per branch, left as-is for a later
// Step call); nested disjunctions inside a conjunct are not flattened
// (see DESIGN.md).
func Step(ctx *tree.Context, cfg Config, s State) ([]State, Outcome, error) {
	f := formula.Simplify(s.Formula)
	if bc, ok := f.(formula.BoolConst); ok {
		if !bool(bc) {
			return nil, Pruned, nil
		}
		if s.Tree.IsComplete() {
			return []State{{Tree: s.Tree, Formula: f}}, Final, nil
		}
		return expand(ctx, cfg, State{Tree: s.Tree, Formula: f})
	}

	nf := formula.NNF(f)
	if or, ok := nf.(formula.Or); ok {
		succs := make([]State, 0, len(or))
		for _, branch := range or {
			succs = append(succs, State{Tree: s.Tree, Formula: formula.Simplify(branch)})
		}
		return succs, Applied, nil
	}

	conjuncts := flatten(nf)

	if succs, ok, err := trySMTBlock(ctx, cfg, s.Tree, conjuncts); err != nil {
		return nil, Stuck, err
	} else if ok {
		if len(succs) == 0 {
			return nil, Pruned, nil
		}
		return succs, Applied, nil
	}

	if succs, pruned, ok, err := tryReadyPredicate(ctx, cfg, s.Tree, conjuncts); err != nil {
		return nil, Stuck, err
	} else if pruned {
		return nil, Pruned, nil
	} else if ok {
		return succs, Applied, nil
	}

	if succs, pruned, ok, err := tryStructural(s.Tree, conjuncts); err != nil {
		return nil, Stuck, err
	} else if pruned {
		return nil, Pruned, nil
	} else if ok {
		return succs, Applied, nil
	}

	if succs, ok := tryUniversal(cfg, s.Tree, conjuncts); ok {
		return succs, Applied, nil
	}

	if succs, ok := tryExistential(ctx, cfg, s.Tree, conjuncts); ok {
		return succs, Applied, nil
	}

	return expand(ctx, cfg, State{Tree: s.Tree, Formula: rebuild(conjuncts)})
}

// flatten returns f's top-level conjuncts: the elements of an And, or
// the single formula itself otherwise.
func flatten(f formula.Formula) []formula.Formula {
	if and, ok := f.(formula.And); ok {
		return append([]formula.Formula(nil), and...)
	}
	return []formula.Formula{f}
}

func rebuild(conjuncts []formula.Formula) formula.Formula {
	return formula.Simplify(formula.And(conjuncts))
}

// findByID locates the path of the node carrying id within t, if any.
func findByID(t tree.Tree, id int64) (tree.Path, bool) {
	for _, pt := range t.Paths() {
		if pt.Tree.ID() == id {
			return pt.Path, true
		}
	}
	return nil, false
}

// rangeTree resolves a quantifier's Range term to the ambient subtree
// it ranges over (either s.Tree itself, for the goal constant, or a
// subtree of s.Tree already bound by an enclosing instantiation),
// together with that subtree's absolute path within s.Tree.
func rangeTree(s tree.Tree, rangeTerm formula.Term) (tree.Tree, tree.Path, bool) {
	if rangeTerm.T != nil {
		path, ok := findByID(s, rangeTerm.T.ID())
		if !ok {
			return tree.Tree{}, nil, false
		}
		return *rangeTerm.T, path, true
	}
	if rangeTerm.V != nil && rangeTerm.V.Name == formula.GoalName {
		return s, nil, true
	}
	return tree.Tree{}, nil, false
}

// applySubst applies one predicate.Substitution to a tree and a
// conjunct list: a variable target rewrites every conjunct via
// formula.Substitute; a tree target locates the node it replaces by
// identity and replaces it in place.
func applySubst(t tree.Tree, conjuncts []formula.Formula, sub predicate.Substitution) (tree.Tree, []formula.Formula, bool) {
	switch {
	case sub.Target.V != nil:
		out := make([]formula.Formula, len(conjuncts))
		for i, c := range conjuncts {
			out[i] = formula.Substitute(c, *sub.Target.V, sub.Replacement)
		}
		return t, out, true
	case sub.Target.T != nil:
		path, ok := findByID(t, sub.Target.T.ID())
		if !ok {
			return t, nil, false
		}
		return t.Replace(path, sub.Replacement), conjuncts, true
	default:
		return t, nil, false
	}
}
