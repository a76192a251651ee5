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
	"github.com/ctreegen/ctreegen/smt"
	"github.com/ctreegen/ctreegen/tree"
)

// trySMTBlock implements rule 1: every top-level SMT atom is solved en
// bloc (never independently), since atoms sharing variables must be
// satisfied jointly. ok is false when no SMT atom is present, in which
// case the caller falls through to the next rule; a true Sat/Unsat
// result is always consumed (an empty but non-nil successors slice
// together with ok==true signals "pruned via this rule" to the caller,
// which Step reports as Pruned).
func trySMTBlock(ctx *tree.Context, cfg Config, t tree.Tree, conjuncts []formula.Formula) ([]State, bool, error) {
	var atomIdx []int
	var assertions []smt.Expr
	for i, c := range conjuncts {
		if a, ok := c.(formula.SMTAtom); ok {
			atomIdx = append(atomIdx, i)
			assertions = append(assertions, a.Expr)
		}
	}
	if len(assertions) == 0 {
		return nil, false, nil
	}

	types := smt.VarType{}
	for _, a := range assertions {
		for _, v := range a.Vars() {
			if nt, known := cfg.ConstTypes[v]; known {
				types[v] = nt
			}
		}
	}

	remainder := withoutIndices(conjuncts, atomIdx)
	insts, outcome := smt.Instantiate(cfg.Backend, cfg.Grammar, ctx, assertions, types, cfg.MaxSMTModels)
	if outcome.PrunesSearch() {
		// unsat or unknown-with-no-accepted-model: this disjunct is
		// abandoned: local pruning, not an error.
		return []State{}, true, nil
	}

	succs := make([]State, 0, len(insts))
	for _, inst := range insts {
		rem := remainder
		for name, val := range inst.Trees {
			nt := types[name]
			c := formula.Var{Kind: formula.Const, Name: name, Type: nt}
			next := make([]formula.Formula, len(rem))
			for i, f := range rem {
				next[i] = formula.Substitute(f, c, val)
			}
			rem = next
		}
		succs = append(succs, State{Tree: t, Formula: rebuild(rem)})
	}
	return succs, true, nil
}

func withoutIndices(fs []formula.Formula, drop []int) []formula.Formula {
	skip := make(map[int]bool, len(drop))
	for _, i := range drop {
		skip[i] = true
	}
	out := make([]formula.Formula, 0, len(fs)-len(drop))
	for i, f := range fs {
		if !skip[i] {
			out = append(out, f)
		}
	}
	return out
}
