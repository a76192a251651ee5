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

package predicate

import "github.com/ctreegen/ctreegen/tree"

// Before reports whether p lexicographically precedes q, neither being
// a prefix of the other — a path is never before its own extension.
func Before(p, q tree.Path) bool {
	return p.Before(q)
}

// After reports whether p follows q: p does not precede q, and p is
// not a prefix of q (so a node is never "after" its own descendant).
func After(p, q tree.Path) bool {
	return !Before(p, q) && !p.IsPrefixOf(q)
}

// SamePosition reports whether p and q denote the same subtree.
func SamePosition(p, q tree.Path) bool {
	return p.Equal(q)
}

// DifferentPosition is the negation of SamePosition.
func DifferentPosition(p, q tree.Path) bool {
	return !p.Equal(q)
}

// Level reports whether p and q sit at the same "kind"-level within
// root: their nearest enclosing ancestor labeled kind is the same
// subtree. A path with no such ancestor is at the implicit top level,
// which only matches another path with no such ancestor either.
func Level(root tree.Tree, kind string, p, q tree.Path) bool {
	ap, ok1 := nearestAncestorOf(root, kind, p)
	aq, ok2 := nearestAncestorOf(root, kind, q)
	if ok1 != ok2 {
		return false
	}
	if !ok1 {
		return true
	}
	return ap.Equal(aq)
}

// nearestAncestorOf returns the longest proper prefix of p whose
// subtree in root is labeled kind, or ok == false if none exists.
func nearestAncestorOf(root tree.Tree, kind string, p tree.Path) (tree.Path, bool) {
	for n := len(p) - 1; n >= 0; n-- {
		anc := p[:n]
		if sub, ok := root.TryAt(anc); ok && sub.Symbol() == kind {
			return anc, true
		}
	}
	return nil, false
}
