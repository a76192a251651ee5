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

// Package tree implements the immutable, identity-bearing derivation-tree
// model: nodes labeled with grammar symbols, open leaves ("holes") marking
// expansion points, and structure-sharing replacement.
package tree

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Path is a finite sequence of child indices from the root of a Tree,
// denoting one subtree. The empty Path denotes the root.
type Path []int

// Equal reports whether p and q denote the same subtree.
func (p Path) Equal(q Path) bool {
	return slices.Equal(p, q)
}

// IsPrefixOf reports whether p is a prefix of q (p itself counts as a
// prefix of its own extensions, including p == q).
func (p Path) IsPrefixOf(q Path) bool {
	if len(p) > len(q) {
		return false
	}
	for i, c := range p {
		if q[i] != c {
			return false
		}
	}
	return true
}

// Before reports whether p lexicographically precedes q, with the rule
// that a prefix is never before its own extension (so neither (1,)
// before (1,0) nor (1,0) before (1,) holds unless a differing index is
// found along the shared length).
func (p Path) Before(q Path) bool {
	if len(p) == 0 || len(q) == 0 {
		return false
	}
	n := len(p)
	if len(q) < n {
		n = len(q)
	}
	for i := 0; i < n; i++ {
		if p[i] != q[i] {
			return p[i] < q[i]
		}
	}
	// one is a prefix of the other: neither is "before"
	return false
}

// Child returns a new path extending p with one more child index.
func (p Path) Child(i int) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = i
	return out
}

// Clone returns an independent copy of p.
func (p Path) Clone() Path { return slices.Clone(p) }

// Label identifies a grammar symbol carried by a Tree node: either a
// terminal literal (a finished piece of text) or a nonterminal symbol
// name awaiting expansion.
type Label struct {
	Symbol     string
	IsTerminal bool
}

// Nonterminal builds a nonterminal Label.
func Nonterminal(sym string) Label { return Label{Symbol: sym} }

// Terminal builds a terminal Label carrying literal text.
func Terminal(text string) Label { return Label{Symbol: text, IsTerminal: true} }

func (l Label) String() string { return l.Symbol }

// Tree is an immutable derivation-tree node. The zero value is not a
// valid Tree; construct one with Leaf, Open, or Node.
//
// A Tree is one of three states:
//   - open leaf: nonterminal label, Children == nil
//   - terminal leaf: terminal label (Children is always unused/nil)
//   - internal: nonterminal label, len(Children) > 0
type Tree struct {
	id       int64
	label    Label
	children []Tree
}

// Open builds an open leaf (a hole) of the given nonterminal symbol,
// freshly identified by ctx.
func Open(ctx *Context, nonterminal string) Tree {
	return Tree{id: ctx.nextID(), label: Nonterminal(nonterminal)}
}

// Leaf builds a terminal leaf carrying literal text, freshly identified
// by ctx.
func Leaf(ctx *Context, text string) Tree {
	return Tree{id: ctx.nextID(), label: Terminal(text)}
}

// Node builds an internal node over the given nonterminal symbol and
// children, freshly identified by ctx. children must be non-empty;
// use Open for a hole.
func Node(ctx *Context, nonterminal string, children []Tree) Tree {
	if len(children) == 0 {
		panic("tree.Node: internal node requires at least one child, use tree.Open for a hole")
	}
	return Tree{id: ctx.nextID(), label: Nonterminal(nonterminal), children: slices.Clone(children)}
}

// ID returns the stable identity of this node. Identities are unique
// within a solution state; structural equality ignores them.
func (t Tree) ID() int64 { return t.id }

// Label returns the node's label.
func (t Tree) Label() Label { return t.label }

// Symbol is shorthand for Label().Symbol.
func (t Tree) Symbol() string { return t.label.Symbol }

// IsOpenLeaf reports whether t is an unexpanded hole.
func (t Tree) IsOpenLeaf() bool { return !t.label.IsTerminal && t.children == nil }

// IsTerminalLeaf reports whether t is a finished terminal.
func (t Tree) IsTerminalLeaf() bool { return t.label.IsTerminal }

// IsInternal reports whether t has been expanded into children.
func (t Tree) IsInternal() bool { return !t.label.IsTerminal && t.children != nil }

// Children returns t's children, or nil for leaves (open or terminal).
func (t Tree) Children() []Tree { return t.children }

// IsComplete reports whether t contains no open leaf anywhere in its
// subtree.
func (t Tree) IsComplete() bool {
	if t.IsOpenLeaf() {
		return false
	}
	for _, c := range t.children {
		if !c.IsComplete() {
			return false
		}
	}
	return true
}

// StringImage returns the concatenation of t's terminal leaves in
// left-to-right order. Open leaves contribute nothing.
func (t Tree) StringImage() string {
	var b strings.Builder
	t.writeImage(&b)
	return b.String()
}

func (t Tree) writeImage(b *strings.Builder) {
	if t.label.IsTerminal {
		b.WriteString(t.label.Symbol)
		return
	}
	for _, c := range t.children {
		c.writeImage(b)
	}
}

// At returns the subtree rooted at path p. It panics if p does not
// denote a valid position in t (the caller is expected to have derived
// p from t itself, e.g. via Paths or OpenLeaves).
func (t Tree) At(p Path) Tree {
	cur := t
	for _, idx := range p {
		cur = cur.children[idx]
	}
	return cur
}

// TryAt is the non-panicking form of At.
func (t Tree) TryAt(p Path) (Tree, bool) {
	cur := t
	for _, idx := range p {
		if idx < 0 || idx >= len(cur.children) {
			return Tree{}, false
		}
		cur = cur.children[idx]
	}
	return cur, true
}

// Replace returns a new tree equal to t except that the subtree at
// path p has been replaced by s. Replace preserves the identity of
// every node not on p: only the nodes along the path are copied, all
// sibling subtrees are shared by reference with the original.
func (t Tree) Replace(p Path, s Tree) Tree {
	if len(p) == 0 {
		return s
	}
	idx := p[0]
	newChildren := make([]Tree, len(t.children))
	copy(newChildren, t.children)
	newChildren[idx] = t.children[idx].Replace(p[1:], s)
	return Tree{id: t.id, label: t.label, children: newChildren}
}

// PathTree pairs a Path with the Tree rooted there.
type PathTree struct {
	Path Path
	Tree Tree
}

// Paths returns every (path, subtree) pair in t, in pre-order.
func (t Tree) Paths() []PathTree {
	var out []PathTree
	t.collectPaths(nil, &out)
	return out
}

func (t Tree) collectPaths(prefix Path, out *[]PathTree) {
	*out = append(*out, PathTree{Path: prefix.Clone(), Tree: t})
	for i, c := range t.children {
		c.collectPaths(append(prefix.Clone(), i), out)
	}
}

// OpenLeaves returns every open leaf in t together with its path, in
// pre-order.
func (t Tree) OpenLeaves() []PathTree {
	var out []PathTree
	t.collectOpenLeaves(nil, &out)
	return out
}

func (t Tree) collectOpenLeaves(prefix Path, out *[]PathTree) {
	if t.IsOpenLeaf() {
		*out = append(*out, PathTree{Path: prefix.Clone(), Tree: t})
		return
	}
	for i, c := range t.children {
		c.collectOpenLeaves(append(prefix.Clone(), i), out)
	}
}

// Equal reports structural equality: labels and child structure match,
// identities are ignored.
func (t Tree) Equal(o Tree) bool {
	if t.label != o.label {
		return false
	}
	if len(t.children) != len(o.children) {
		return false
	}
	for i := range t.children {
		if !t.children[i].Equal(o.children[i]) {
			return false
		}
	}
	return true
}

// String pretty-prints t: the string image for a closed tree, or the
// image interspersed with "<NT>" markers for open leaves.
func (t Tree) String() string {
	var b strings.Builder
	t.writePretty(&b)
	return b.String()
}

func (t Tree) writePretty(b *strings.Builder) {
	switch {
	case t.label.IsTerminal:
		b.WriteString(t.label.Symbol)
	case t.children == nil:
		b.WriteByte('<')
		b.WriteString(t.label.Symbol)
		b.WriteByte('>')
	default:
		for _, c := range t.children {
			c.writePretty(b)
		}
	}
}
