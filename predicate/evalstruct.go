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

import (
	"fmt"

	"github.com/ctreegen/ctreegen/formula"
	"github.com/ctreegen/ctreegen/tree"
)

// EvalStruct evaluates a ground structural-predicate atom: name
// is one of StructNames' keys, root is the ambient tree every argument
// is resolved against, and args mirrors the atom's Args exactly (a
// literal for level's kind argument, a tree for every position
// argument). Every tree argument must already be a node embedded
// somewhere in root; a missing one is a specification error, not an
// internal one, since it means the caller tried to evaluate the
// predicate before the quantifier binding its argument had fired.
func EvalStruct(name string, root tree.Tree, args []formula.Term) (bool, error) {
	want, known := StructNames[name]
	if !known {
		return false, fmt.Errorf("predicate: unrecognized structural predicate %q", name)
	}
	if len(args) != want {
		return false, &ArityError{Name: name, Want: want, Got: len(args)}
	}

	if name == "level" {
		if args[0].Lit == nil {
			return false, fmt.Errorf("predicate: %s expects a literal kind as its first argument", name)
		}
		p, ok := pathOf(root, args[1])
		if !ok {
			return false, fmt.Errorf("predicate: %s: argument 2 is not a node of the ambient tree", name)
		}
		q, ok := pathOf(root, args[2])
		if !ok {
			return false, fmt.Errorf("predicate: %s: argument 3 is not a node of the ambient tree", name)
		}
		return Level(root, *args[0].Lit, p, q), nil
	}

	p, ok := pathOf(root, args[0])
	if !ok {
		return false, fmt.Errorf("predicate: %s: argument 1 is not a node of the ambient tree", name)
	}
	q, ok := pathOf(root, args[1])
	if !ok {
		return false, fmt.Errorf("predicate: %s: argument 2 is not a node of the ambient tree", name)
	}
	switch name {
	case "before":
		return Before(p, q), nil
	case "after":
		return After(p, q), nil
	case "same_position":
		return SamePosition(p, q), nil
	case "different_position":
		return DifferentPosition(p, q), nil
	default:
		return false, fmt.Errorf("predicate: unrecognized structural predicate %q", name)
	}
}

// pathOf locates t's embedded-tree argument by node identity within
// root, mirroring elim's own findByID.
func pathOf(root tree.Tree, t formula.Term) (tree.Path, bool) {
	if t.T == nil {
		return nil, false
	}
	id := t.T.ID()
	for _, pt := range root.Paths() {
		if pt.Tree.ID() == id {
			return pt.Path, true
		}
	}
	return nil, false
}
