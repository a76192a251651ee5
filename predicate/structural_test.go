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
	"testing"

	"github.com/ctreegen/ctreegen/tree"
)

func TestBeforeRejectsPrefixRelation(t *testing.T) {
	if Before(tree.Path{1}, tree.Path{1, 0}) {
		t.Fatalf("a path must never be before its own extension")
	}
	if Before(tree.Path{1, 0}, tree.Path{1}) {
		t.Fatalf("an extension must never be before its own prefix")
	}
	if !Before(tree.Path{0}, tree.Path{1}) {
		t.Fatalf("expected [0] before [1]")
	}
}

func TestAfterFollowsAndExcludesDescendants(t *testing.T) {
	if !After(tree.Path{1}, tree.Path{0}) {
		t.Fatalf("expected [1] after [0]")
	}
	if After(tree.Path{0}, tree.Path{0, 1}) {
		t.Fatalf("a node must never be after its own descendant")
	}
}

func TestSameAndDifferentPosition(t *testing.T) {
	p := tree.Path{1, 2}
	q := tree.Path{1, 2}
	r := tree.Path{1, 3}
	if !SamePosition(p, q) {
		t.Fatalf("expected equal paths to report same position")
	}
	if SamePosition(p, r) {
		t.Fatalf("expected unequal paths to report different position")
	}
	if !DifferentPosition(p, r) {
		t.Fatalf("expected DifferentPosition true for distinct paths")
	}
}

func TestLevelMatchesNearestCommonAncestor(t *testing.T) {
	ctx := tree.NewContext()
	innerA := tree.Node(ctx, "<block>", []tree.Tree{tree.Leaf(ctx, "a")})
	innerB := tree.Node(ctx, "<block>", []tree.Tree{tree.Leaf(ctx, "b")})
	root := tree.Node(ctx, "<prog>", []tree.Tree{innerA, innerB})

	pa := tree.Path{0, 0}
	pb := tree.Path{1, 0}
	if Level(root, "<block>", pa, pb) {
		t.Fatalf("expected paths under distinct block ancestors to differ in level")
	}
	if !Level(root, "<block>", pa, tree.Path{0, 0}) {
		t.Fatalf("expected a path to be at the same level as itself")
	}
}
