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

package gram

import "github.com/ctreegen/ctreegen/tree"

// ParseExact attempts to build a complete derivation tree rooted at
// nonterminal nt that derives exactly s. It is used by the SMT bridge's
// tree-aware instantiation: every model string returned by the
// external solver is parsed against the grammar rooted at the
// variable's declared nonterminal type, and rejected if parsing fails.
//
// This is a plain backtracking recognizer, not a chart parser: correct
// for context-free grammars without left recursion (a left-recursive
// rule recurses without consuming input and does not terminate) and
// exponential in the worst case on ambiguous grammars. Performance is an explicit non-goal; the
// grammars this module ships examples for (assignments, CSV rows,
// balanced XML) are small enough that this is not a practical problem.
func (g *Grammar) ParseExact(ctx *tree.Context, nt, s string) (tree.Tree, bool) {
	var result tree.Tree
	found := g.parseNT(ctx, nt, s, 0, func(end int, t tree.Tree) bool {
		if end == len(s) {
			result = t
			return true
		}
		return false
	})
	return result, found
}

func (g *Grammar) parseNT(ctx *tree.Context, nt, s string, pos int, k func(end int, t tree.Tree) bool) bool {
	for _, alt := range g.Alternatives(nt) {
		ok := g.parseSeq(ctx, alt, s, pos, func(end int, children []tree.Tree) bool {
			var built tree.Tree
			if len(children) == 0 {
				built = tree.Node(ctx, nt, []tree.Tree{tree.Leaf(ctx, "")})
			} else {
				built = tree.Node(ctx, nt, children)
			}
			return k(end, built)
		})
		if ok {
			return true
		}
	}
	return false
}

func (g *Grammar) parseSeq(ctx *tree.Context, alt Alt, s string, pos int, k func(end int, children []tree.Tree) bool) bool {
	if len(alt) == 0 {
		return k(pos, nil)
	}
	sym := alt[0]
	rest := alt[1:]
	if sym.IsTerminal {
		lit := sym.Name
		if len(s)-pos < len(lit) || s[pos:pos+len(lit)] != lit {
			return false
		}
		leaf := tree.Leaf(ctx, lit)
		return g.parseSeq(ctx, rest, s, pos+len(lit), func(end int, children []tree.Tree) bool {
			return k(end, append([]tree.Tree{leaf}, children...))
		})
	}
	return g.parseNT(ctx, sym.Name, s, pos, func(subEnd int, subTree tree.Tree) bool {
		return g.parseSeq(ctx, rest, s, subEnd, func(end int, children []tree.Tree) bool {
			return k(end, append([]tree.Tree{subTree}, children...))
		})
	})
}
