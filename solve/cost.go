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

package solve

import (
	"github.com/ctreegen/ctreegen/elim"
	"github.com/ctreegen/ctreegen/formula"
	"github.com/ctreegen/ctreegen/gram"
	"github.com/ctreegen/ctreegen/match"
	"github.com/ctreegen/ctreegen/tree"
)

// Cost is the per-state cost record: five components, each
// computed fresh when a state is inserted into the queue. A lower
// weighted sum sorts earlier (the queue is min-first).
type Cost struct {
	Depth              float64 // derivation depth: longest root-to-node path
	OpenLeaves         float64 // number of open leaves remaining
	ConjunctCount      float64 // size of φ, in top-level conjuncts
	KPathDeficit       float64 // local k-path coverage deficit
	VacuousQuants      float64 // quantifiers with no current match candidate
	GlobalKPathDeficit float64 // coverage deficit measured against all queued+emitted trees; zero unless the 6-weight global component is active
}

// depth returns the longest path from t's root to any node (open leaf
// or otherwise), used as the "distance to a closed tree" proxy.
func depth(t tree.Tree) int {
	d := 0
	for _, c := range t.Children() {
		if cd := depth(c) + 1; cd > d {
			d = cd
		}
	}
	return d
}

// conjuncts returns f's top-level And members, or f itself as a
// singleton, the same flattening elim.Step applies before dispatch.
func conjuncts(f formula.Formula) []formula.Formula {
	if and, ok := f.(formula.And); ok {
		return []formula.Formula(and)
	}
	return []formula.Formula{f}
}

// vacuousQuantifiers counts the top-level quantifier conjuncts whose
// range currently admits no match at all: neither the universal-
// elimination nor the match-existing half of existential-elimination
// can make progress on them yet, so they sit idle and
// only add to the eventual search-tree bushiness.
func vacuousQuantifiers(g *gram.Grammar, t tree.Tree, cs []formula.Formula) int {
	n := 0
	for _, c := range cs {
		q, ok := c.(formula.Quant)
		if !ok {
			continue
		}
		ambient, ok := resolveRange(t, q.Range)
		if !ok {
			n++
			continue
		}
		if len(match.AllMatches(ambient, q.Var.Type, q.Bind)) == 0 {
			n++
		}
	}
	return n
}

// resolveRange mirrors elim's unexported rangeTree: the goal constant
// resolves to t itself, a concrete tree term resolves to the subtree it
// identifies (by node ID, since Replace preserves the identity of every
// untouched node), and anything else is not yet resolvable.
func resolveRange(t tree.Tree, r formula.Term) (tree.Tree, bool) {
	if r.T != nil {
		for _, pt := range t.Paths() {
			if pt.Tree.ID() == r.T.ID() {
				return pt.Tree, true
			}
		}
		return tree.Tree{}, false
	}
	if r.V != nil && r.V.Name == formula.GoalName {
		return t, true
	}
	return tree.Tree{}, false
}

// Compute builds the cost record for s. k is the k-path window length
// (0 disables the k-path component, matching a grammar with no k-path
// weight configured); universe is the precomputed grammarKPaths(g, k,
// ...) set shared across one solver run. globalCovered, if non-nil, is
// the running union of k-paths exercised by every state seen so far in
// this run (queued or emitted) and activates the optional 6th weight.
func Compute(g *gram.Grammar, s elim.State, k int, universe map[string]bool, globalCovered map[string]bool) Cost {
	cs := conjuncts(formula.Simplify(s.Formula))
	c := Cost{
		Depth:         float64(depth(s.Tree)),
		OpenLeaves:    float64(len(s.Tree.OpenLeaves())),
		ConjunctCount: float64(len(cs)),
		VacuousQuants: float64(vacuousQuantifiers(g, s.Tree, cs)),
	}
	if k > 0 && len(universe) > 0 {
		local := kpaths(s.Tree, k)
		c.KPathDeficit = coverageDeficit(universe, local)
		if globalCovered != nil {
			merged := map[string]bool{}
			mergeInto(merged, globalCovered)
			mergeInto(merged, local)
			c.GlobalKPathDeficit = coverageDeficit(universe, merged)
		}
	}
	return c
}

// Weighted returns the weighted sum of c's five components (or six,
// when w carries a 6th global k-path weight).
func (c Cost) Weighted(w Weights) float64 {
	total := w.Depth*c.Depth +
		w.OpenLeaves*c.OpenLeaves +
		w.ConjunctCount*c.ConjunctCount +
		w.KPathDeficit*c.KPathDeficit +
		w.VacuousQuants*c.VacuousQuants
	if w.hasGlobal {
		total += w.GlobalKPathDeficit * c.GlobalKPathDeficit
	}
	return total
}
