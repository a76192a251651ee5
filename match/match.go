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

// Package match implements the bind-expression matcher: given
// a candidate subtree and a bind expression, decide whether the
// subtree's current shape is a prefix-compatible specialization of the
// shape the bind expression describes, and if so record the path of
// every named part; plus the may-match reachability guard that governs
// when a universal quantifier may be considered done.
package match

import (
	"github.com/ctreegen/ctreegen/formula"
	"github.com/ctreegen/ctreegen/gram"
	"github.com/ctreegen/ctreegen/tree"
)

// Binding maps a bound variable's name to the path, relative to the
// ambient tree's root, of the subtree it is matched to.
type Binding map[string]tree.Path

// Match attempts to align bind against the immediate children of s, a
// subtree whose own root path (within the ambient tree) is base. A
// Lit part must align with exactly one terminal-leaf child carrying
// that literal text; a Bind part consumes exactly one child of any
// kind (open, terminal, or internal) and records its path, unless the
// part names a Dummy variable (consumed but not recorded). Match fails
// (ok == false) if s does not yet have exactly len(bind) children — a
// node that hasn't been expanded to the matching shape is simply "not
// a match yet", not an error; the caller's may-match guard is what
// distinguishes "never" from "not yet".
func Match(s tree.Tree, base tree.Path, bind formula.BindExpr) (Binding, bool) {
	children := s.Children()
	if len(children) != len(bind) {
		return nil, false
	}
	out := make(Binding, len(bind))
	for i, part := range bind {
		child := children[i]
		if part.Name == nil {
			if !child.IsTerminalLeaf() || child.Label().Symbol != part.Literal {
				return nil, false
			}
			continue
		}
		if part.Name.Kind == formula.Dummy {
			continue
		}
		out[part.Name.Name] = base.Child(i)
	}
	return out, true
}

// MatchesRoot reports whether s itself (with no bind expression, i.e.
// an unconstrained quantifier) is eligible to bind a variable of
// nonterminal type want: s must be labeled with that nonterminal,
// whether open, internal, or (degenerately) about to be expanded.
func MatchesRoot(s tree.Tree, want string) bool {
	return !s.IsTerminalLeaf() && s.Symbol() == want
}

// MayMatch is the grammar-graph reachability guard: from an
// open leaf's current nonterminal, can some finite sequence of
// expansions produce a subtree rooted at the bind expression's
// required nonterminal want? It does not attempt to account for shape
// compatibility of an already-partially-expanded node — callers use
// AnyOpenLeafMayMatch for the actual ∀-quantifier "done" test, which
// combines this with every open leaf still present in the tree.
func MayMatch(g *gram.Grammar, from string, want string) bool {
	return g.Reachable(from, want)
}

// AnyOpenLeafMayMatch reports whether some open leaf of t may still
// come to match a variable of nonterminal type want, i.e. whether a
// universal quantifier ranging over want can be considered "done" with
// respect to t. A universal elimination may drop the
// quantifier from φ only once this returns false.
func AnyOpenLeafMayMatch(g *gram.Grammar, t tree.Tree, want string) bool {
	for _, ol := range t.OpenLeaves() {
		if MayMatch(g, ol.Tree.Symbol(), want) {
			return true
		}
	}
	return false
}

// AllMatches walks every subtree of t (at or under root) whose
// nonterminal could host want and returns, for each one that matches
// right now, its path and binding. bind == nil means an unconstrained
// quantifier: every subtree labeled want that is not an open leaf
// matches, with an empty
// binding (the quantifier's own bound variable is bound directly to
// that subtree by the caller).
func AllMatches(t tree.Tree, want string, bind formula.BindExpr) []PathBinding {
	var out []PathBinding
	var walk func(n tree.Tree, path tree.Path)
	walk = func(n tree.Tree, path tree.Path) {
		if n.Symbol() == want && !n.IsTerminalLeaf() {
			if bind == nil {
				if !n.IsOpenLeaf() {
					out = append(out, PathBinding{Path: path.Clone(), Binding: Binding{}})
				}
			} else if b, ok := Match(n, path, bind); ok {
				out = append(out, PathBinding{Path: path.Clone(), Binding: b})
			}
		}
		for i, c := range n.Children() {
			walk(c, path.Child(i))
		}
	}
	walk(t, nil)
	return out
}

// PathBinding pairs the path of a matched subtree with the bindings
// its bind expression produced.
type PathBinding struct {
	Path    tree.Path
	Binding Binding
}
