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

package match

import (
	"testing"

	"github.com/ctreegen/ctreegen/formula"
	"github.com/ctreegen/ctreegen/gram"
	"github.com/ctreegen/ctreegen/tree"
)

const assignBNF = `
<start> ::= <assgn>
<assgn> ::= <var> " := " <rhs>
<var> ::= "x" | "y"
<rhs> ::= <var> | <digit>
<digit> ::= "0" | "1"
`

func buildAssgn(ctx *tree.Context) tree.Tree {
	v := tree.Node(ctx, "<var>", []tree.Tree{tree.Leaf(ctx, "x")})
	sep := tree.Leaf(ctx, " := ")
	rhs := tree.Node(ctx, "<rhs>", []tree.Tree{tree.Node(ctx, "<digit>", []tree.Tree{tree.Leaf(ctx, "0")})})
	return tree.Node(ctx, "<assgn>", []tree.Tree{v, sep, rhs})
}

func TestMatchAlignsBindExprToChildren(t *testing.T) {
	ctx := tree.NewContext()
	assgn := buildAssgn(ctx)

	lhs := formula.Var{Kind: formula.Bound, Name: "lhs", Type: "<var>"}
	rhsVar := formula.Var{Kind: formula.Bound, Name: "rhs", Type: "<rhs>"}
	bind := formula.BindExpr{formula.Bind(lhs), formula.Lit(" := "), formula.Bind(rhsVar)}

	b, ok := Match(assgn, nil, bind)
	if !ok {
		t.Fatalf("expected bind expression to match")
	}
	if !b["lhs"].Equal(tree.Path{0}) {
		t.Fatalf("expected lhs bound to path [0], got %v", b["lhs"])
	}
	if !b["rhs"].Equal(tree.Path{2}) {
		t.Fatalf("expected rhs bound to path [2], got %v", b["rhs"])
	}
}

func TestMatchFailsOnLiteralMismatch(t *testing.T) {
	ctx := tree.NewContext()
	assgn := buildAssgn(ctx)

	lhs := formula.Var{Kind: formula.Bound, Name: "lhs", Type: "<var>"}
	rhsVar := formula.Var{Kind: formula.Bound, Name: "rhs", Type: "<rhs>"}
	bind := formula.BindExpr{formula.Bind(lhs), formula.Lit(" = "), formula.Bind(rhsVar)}

	if _, ok := Match(assgn, nil, bind); ok {
		t.Fatalf("expected mismatch on wrong literal text")
	}
}

func TestMatchFailsOnWrongArity(t *testing.T) {
	ctx := tree.NewContext()
	assgn := buildAssgn(ctx)
	lhs := formula.Var{Kind: formula.Bound, Name: "lhs", Type: "<var>"}
	bind := formula.BindExpr{formula.Bind(lhs)}
	if _, ok := Match(assgn, nil, bind); ok {
		t.Fatalf("expected mismatch when bind expression arity does not match children count")
	}
}

func TestMatchesRootUnconstrained(t *testing.T) {
	ctx := tree.NewContext()
	v := tree.Node(ctx, "<var>", []tree.Tree{tree.Leaf(ctx, "x")})
	if !MatchesRoot(v, "<var>") {
		t.Fatalf("expected var node to match unconstrained quantifier over var")
	}
	if MatchesRoot(v, "<rhs>") {
		t.Fatalf("expected var node not to match unconstrained quantifier over rhs")
	}
}

func TestAnyOpenLeafMayMatch(t *testing.T) {
	g, err := gram.ParseBNF(assignBNF)
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}
	ctx := tree.NewContext()
	start := tree.Open(ctx, "<start>")

	if !AnyOpenLeafMayMatch(g, start, "<digit>") {
		t.Fatalf("expected <start> to be able to reach <digit> via expansion")
	}

	digit := tree.Node(ctx, "<digit>", []tree.Tree{tree.Leaf(ctx, "0")})
	if AnyOpenLeafMayMatch(g, digit, "<rhs>") {
		t.Fatalf("expected a fully closed tree to have no open leaves that may still match")
	}
}

func TestAllMatchesFindsEveryCandidateSubtree(t *testing.T) {
	ctx := tree.NewContext()
	assgn := buildAssgn(ctx)

	matches := AllMatches(assgn, "<var>", nil)
	if len(matches) != 1 {
		t.Fatalf("expected exactly one var subtree, got %d", len(matches))
	}
	if !matches[0].Path.Equal(tree.Path{0}) {
		t.Fatalf("expected the var match at path [0], got %v", matches[0].Path)
	}
}

func TestProductEnumeratesCombinations(t *testing.T) {
	bindings := map[string][]tree.Path{
		"a": {{0}, {1}},
		"b": {{2}},
	}
	out := Product(bindings)
	if len(out) != 2 {
		t.Fatalf("expected 2 combinations, got %d", len(out))
	}
	for _, b := range out {
		if !b["b"].Equal(tree.Path{2}) {
			t.Fatalf("expected b always bound to [2], got %v", b["b"])
		}
	}
}

func TestProductEmptyOnMissingCandidates(t *testing.T) {
	bindings := map[string][]tree.Path{"a": nil}
	if out := Product(bindings); out != nil {
		t.Fatalf("expected nil result when a key has no candidates, got %v", out)
	}
}
