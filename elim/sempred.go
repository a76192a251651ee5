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
	"fmt"

	"github.com/ctreegen/ctreegen/formula"
	"github.com/ctreegen/ctreegen/predicate"
	"github.com/ctreegen/ctreegen/tree"
)

// tryReadyPredicate implements rule 2: evaluate the first semantic
// predicate atom whose arguments are concrete enough to decide. An
// unready atom is skipped in favor of the next one, not treated as a
// failure to apply the rule, since a later atom further down the
// conjunction may already be decidable.
func tryReadyPredicate(ctx *tree.Context, cfg Config, t tree.Tree, conjuncts []formula.Formula) (succs []State, pruned bool, ok bool, err error) {
	for i, c := range conjuncts {
		sp, isSem := c.(formula.SemPred)
		if !isSem {
			continue
		}
		fn, known := cfg.Semantic[sp.Name]
		if !known {
			return nil, false, false, fmt.Errorf("elim: unrecognized semantic predicate %q", sp.Name)
		}
		res, evalErr := fn(ctx, cfg.Grammar, sp.Args)
		if evalErr != nil {
			return nil, false, false, fmt.Errorf("elim: evaluating %q: %w", sp.Name, evalErr)
		}
		switch res.Outcome {
		case predicate.Unready:
			continue
		case predicate.Decided:
			if !res.Value {
				return nil, true, false, nil
			}
			rem := withoutIndices(conjuncts, []int{i})
			return []State{{Tree: t, Formula: rebuild(rem)}}, false, true, nil
		case predicate.Substitute:
			rem := withoutIndices(conjuncts, []int{i})
			curTree := t
			okAll := true
			for _, sub := range res.Subst {
				if sub.Target.T != nil && !predicate.BindsTree(sp.Name) {
					// only a predicate that logically owns its tree
					// argument may replace that subtree in the state
					okAll = false
					break
				}
				var applied bool
				curTree, rem, applied = applySubst(curTree, rem, sub)
				if !applied {
					okAll = false
					break
				}
			}
			if !okAll {
				continue
			}
			return []State{{Tree: curTree, Formula: rebuild(rem)}}, false, true, nil
		}
	}
	return nil, false, false, nil
}
