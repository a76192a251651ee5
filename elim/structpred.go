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

// tryStructural implements rule 3: evaluate the first StructPred atom
// whose arguments are all already bound to concrete nodes of t. Unlike a
// semantic predicate, a structural predicate is a pure function of
// argument paths — it never substitutes, it only decides.
// An atom whose arguments aren't resolved yet (a quantifier that binds
// it hasn't fired) is left in place for a later Step call, exactly as
// tryReadyPredicate skips an unready semantic atom.
func tryStructural(t tree.Tree, conjuncts []formula.Formula) (succs []State, pruned bool, ok bool, err error) {
	for i, c := range conjuncts {
		sp, isStruct := c.(formula.StructPred)
		if !isStruct {
			continue
		}
		if !argsResolved(t, sp.Args) {
			continue
		}
		v, evalErr := predicate.EvalStruct(sp.Name, t, sp.Args)
		if evalErr != nil {
			return nil, false, false, evalErr
		}
		if !v {
			return nil, true, false, nil
		}
		rem := withoutIndices(conjuncts, []int{i})
		return []State{{Tree: t, Formula: rebuild(rem)}}, false, true, nil
	}
	return nil, false, false, nil
}

// argsResolved reports whether every one of args is either a literal
// (always resolved) or a tree term already embedded in t.
func argsResolved(t tree.Tree, args []formula.Term) bool {
	for _, a := range args {
		if a.Lit != nil {
			continue
		}
		if a.T == nil {
			return false
		}
		if _, ok := findByID(t, a.T.ID()); !ok {
			return false
		}
	}
	return true
}
