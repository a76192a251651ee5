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
	"strings"

	"github.com/ctreegen/ctreegen/gram"
	"github.com/ctreegen/ctreegen/tree"
)

// kpaths returns every length-k sequence of symbol names occurring along
// a root-to-descendant walk of t, joined with "/" as a map key. A tree
// shorter than k contributes nothing. This is the tree side of k-path
// coverage: the fraction of length-k paths of the grammar graph
// exercised by a tree.
func kpaths(t tree.Tree, k int) map[string]bool {
	out := map[string]bool{}
	var walk func(t tree.Tree, trail []string)
	walk = func(t tree.Tree, trail []string) {
		trail = append(trail, t.Symbol())
		if len(trail) >= k {
			out[strings.Join(trail[len(trail)-k:], "/")] = true
		}
		for _, c := range t.Children() {
			walk(c, trail)
		}
	}
	walk(t, nil)
	return out
}

// grammarKPaths enumerates every length-k symbol sequence reachable in
// g's alternative graph, up to a node-visit budget, by walking from
// each nonterminal through its alternatives. This is the denominator
// for a k-path coverage fraction: it is an upper bound, not an exact
// count, since a cyclic grammar has infinitely many walks of length >=
// k and this only explores alternatives depth-first until paths stop
// growing new length-k windows up to a revisit cap per nonterminal.
func grammarKPaths(g *gram.Grammar, k int, maxPerStart int) map[string]bool {
	out := map[string]bool{}
	for _, nt := range g.Nonterminals() {
		visited := map[string]int{}
		var walk func(sym string, trail []string)
		walk = func(sym string, trail []string) {
			trail = append(trail, sym)
			if len(trail) >= k {
				out[strings.Join(trail[len(trail)-k:], "/")] = true
			}
			if visited[sym] >= maxPerStart {
				return
			}
			visited[sym]++
			for _, alt := range g.Alternatives(sym) {
				for _, s := range alt {
					walk(s.Name, trail)
				}
			}
		}
		walk(nt, nil)
	}
	return out
}

// coverageDeficit returns 1 - |covered ∩ universe| / |universe|, the
// fraction of the grammar's length-k paths the given set of trees does
// not yet exercise; 0 when universe is empty (a degenerate grammar with
// fewer than k levels has nothing to cover).
func coverageDeficit(universe map[string]bool, covered map[string]bool) float64 {
	if len(universe) == 0 {
		return 0
	}
	hit := 0
	for p := range universe {
		if covered[p] {
			hit++
		}
	}
	return 1 - float64(hit)/float64(len(universe))
}

func mergeInto(dst, src map[string]bool) {
	for p := range src {
		dst[p] = true
	}
}
