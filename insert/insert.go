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

// Package insert implements tree insertion: embedding a
// required nonterminal shape into an existing derivation tree, either
// by expanding an open leaf one step closer to it or by re-deriving a
// self-recursive node to make room for it as a sibling. Insertion never
// discards existing closed content; it only adds nodes or refines open
// leaves.
package insert

import (
	"github.com/ctreegen/ctreegen/gram"
	"github.com/ctreegen/ctreegen/tree"
)

// Insert returns the finite set of trees obtained from t by embedding
// one step of progress toward a node labeled needle, deduplicated by
// structural hash. The count predicate's insertion search calls this
// repeatedly (via a worklist) to reach a needle occurrence several
// expansions deep; existential elimination calls it once per step and
// keeps only candidates in which the needle already matches.
func Insert(ctx *tree.Context, g *gram.Grammar, t tree.Tree, needle string) []tree.Tree {
	var out []tree.Tree
	seen := map[uint64]bool{}
	add := func(cand tree.Tree) {
		h := cand.StructuralHash()
		if seen[h] {
			return
		}
		seen[h] = true
		out = append(out, cand)
	}

	for _, ol := range t.OpenLeaves() {
		expandHole(ctx, g, t, ol, needle, add)
	}
	for _, pt := range t.Paths() {
		if pt.Tree.IsInternal() {
			wrapSelfRecursive(ctx, g, t, pt, needle, add)
		}
	}
	return out
}

// canProgress reports whether expanding via alt could still lead to
// needle: alt must contain needle itself, or a nonterminal from which
// needle remains reachable.
func canProgress(g *gram.Grammar, alt gram.Alt, needle string) bool {
	for _, sym := range alt {
		if sym.IsTerminal {
			continue
		}
		if sym.Name == needle || g.Reachable(sym.Name, needle) {
			return true
		}
	}
	return false
}

// expandChildren builds one open/terminal child per symbol of alt. An
// empty alternative (the epsilon production) has no symbols at all;
// tree.Node requires at least one child, so it is represented the same
// way gram.ParseExact represents it: a single empty-text terminal leaf.
func expandChildren(ctx *tree.Context, alt gram.Alt) []tree.Tree {
	if len(alt) == 0 {
		return []tree.Tree{tree.Leaf(ctx, "")}
	}
	children := make([]tree.Tree, len(alt))
	for i, sym := range alt {
		if sym.IsTerminal {
			children[i] = tree.Leaf(ctx, sym.Name)
		} else {
			children[i] = tree.Open(ctx, sym.Name)
		}
	}
	return children
}

func expandHole(ctx *tree.Context, g *gram.Grammar, t tree.Tree, ol tree.PathTree, needle string, add func(tree.Tree)) {
	sym := ol.Tree.Symbol()
	if sym == needle {
		// An occurrence already exists at this open leaf; nothing to
		// insert here (the caller's counting logic already sees it).
		return
	}
	if !g.Reachable(sym, needle) {
		return
	}
	for _, alt := range g.Alternatives(sym) {
		if !canProgress(g, alt, needle) {
			continue
		}
		node := tree.Node(ctx, sym, expandChildren(ctx, alt))
		add(t.Replace(ol.Path, node))
	}
}

func wrapSelfRecursive(ctx *tree.Context, g *gram.Grammar, t tree.Tree, pt tree.PathTree, needle string, add func(tree.Tree)) {
	nt := pt.Tree.Symbol()
	for _, alt := range g.Alternatives(nt) {
		selfIdx := -1
		for i, sym := range alt {
			if !sym.IsTerminal && sym.Name == nt {
				selfIdx = i
				break
			}
		}
		if selfIdx < 0 {
			continue
		}
		if !canProgressExcluding(g, alt, selfIdx, needle) {
			continue
		}
		children := expandChildren(ctx, alt)
		children[selfIdx] = pt.Tree
		node := tree.Node(ctx, nt, children)
		add(t.Replace(pt.Path, node))
	}
}

func canProgressExcluding(g *gram.Grammar, alt gram.Alt, excludeIdx int, needle string) bool {
	for i, sym := range alt {
		if i == excludeIdx || sym.IsTerminal {
			continue
		}
		if sym.Name == needle || g.Reachable(sym.Name, needle) {
			return true
		}
	}
	return false
}
