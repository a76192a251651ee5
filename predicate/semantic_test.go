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

	"github.com/ctreegen/ctreegen/formula"
	"github.com/ctreegen/ctreegen/gram"
	"github.com/ctreegen/ctreegen/tree"
)

const listBNF = `
<start> ::= <list>
<list> ::= <item> <list> | ""
<item> ::= "a" | "b"
`

func TestCountProposesValueForUnresolvedConstant(t *testing.T) {
	g, err := gram.ParseBNF(listBNF)
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}
	ctx := tree.NewContext()
	item := tree.Node(ctx, "<item>", []tree.Tree{tree.Leaf(ctx, "a")})
	closedList := tree.Node(ctx, "<list>", []tree.Tree{
		item,
		tree.Node(ctx, "<list>", []tree.Tree{tree.Leaf(ctx, "")}),
	})

	n := formula.Var{Kind: formula.Const, Name: "n", Type: formula.NumType}
	args := []formula.Term{
		formula.TreeTerm(closedList),
		formula.LitTerm("<item>"),
		formula.VarTerm(n),
	}
	res, err := Count(ctx, g, args)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if res.Outcome != Substitute {
		t.Fatalf("expected Substitute outcome for a fully closed tree, got %v", res.Outcome)
	}
	if got := res.Subst[0].Replacement.StringImage(); got != "1" {
		t.Fatalf("expected count of 1, got %q", got)
	}
}

func TestCountIsUnreadyWhileOpenLeavesCanStillProduceNeedle(t *testing.T) {
	g, err := gram.ParseBNF(listBNF)
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}
	ctx := tree.NewContext()
	openList := tree.Node(ctx, "<list>", []tree.Tree{
		tree.Node(ctx, "<item>", []tree.Tree{tree.Leaf(ctx, "a")}),
		tree.Open(ctx, "<list>"),
	})
	n := formula.Var{Kind: formula.Const, Name: "n", Type: formula.NumType}
	args := []formula.Term{
		formula.TreeTerm(openList),
		formula.LitTerm("<item>"),
		formula.VarTerm(n),
	}
	res, err := Count(ctx, g, args)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if res.Outcome != Unready {
		t.Fatalf("expected Unready while <list> can still expand to more items, got %v", res.Outcome)
	}
}

func TestCountDecidesFalseWhenOverTarget(t *testing.T) {
	g, err := gram.ParseBNF(listBNF)
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}
	ctx := tree.NewContext()
	closedList := tree.Node(ctx, "<list>", []tree.Tree{
		tree.Node(ctx, "<item>", []tree.Tree{tree.Leaf(ctx, "a")}),
		tree.Node(ctx, "<list>", []tree.Tree{
			tree.Node(ctx, "<item>", []tree.Tree{tree.Leaf(ctx, "b")}),
			tree.Node(ctx, "<list>", []tree.Tree{tree.Leaf(ctx, "")}),
		}),
	})
	target := tree.Leaf(ctx, "1")
	args := []formula.Term{
		formula.TreeTerm(closedList),
		formula.LitTerm("<item>"),
		formula.TreeTerm(target),
	}
	res, err := Count(ctx, g, args)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if res.Outcome != Decided || res.Value {
		t.Fatalf("expected Decided(false) when occurrences exceed target, got %v/%v", res.Outcome, res.Value)
	}
}

func TestCropLeavesShortStringUnconstrained(t *testing.T) {
	g, err := gram.ParseBNF(listBNF)
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}
	ctx := tree.NewContext()
	item := tree.Node(ctx, "<item>", []tree.Tree{tree.Leaf(ctx, "a")})
	width := tree.Leaf(ctx, "5")

	res, err := Crop(ctx, g, []formula.Term{formula.TreeTerm(item), formula.TreeTerm(width)})
	if err != nil {
		t.Fatalf("Crop: %v", err)
	}
	if res.Outcome != Decided || !res.Value {
		t.Fatalf("expected Decided(true) when string is already within width, got %v/%v", res.Outcome, res.Value)
	}
}

func TestLjustPadsToWidth(t *testing.T) {
	ctx := tree.NewContext()
	item := tree.Node(ctx, "<item>", []tree.Tree{tree.Leaf(ctx, "a")})
	g, err := gram.ParseBNF(`
<start> ::= <item>
<item> ::= "a" | "aXXXX"
`)
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}
	width := tree.Leaf(ctx, "5")
	fill := formula.LitTerm("X")
	just := Just(true, false)

	res, err := just(ctx, g, []formula.Term{formula.TreeTerm(item), formula.TreeTerm(width), fill})
	if err != nil {
		t.Fatalf("ljust: %v", err)
	}
	if res.Outcome != Substitute {
		t.Fatalf("expected a substitution proposing the padded reparse, got %v", res.Outcome)
	}
	if got := res.Subst[0].Replacement.StringImage(); got != "aXXXX" {
		t.Fatalf("expected padded string image \"aXXXX\", got %q", got)
	}
}

func TestOctalToDecimalComputesFromOctal(t *testing.T) {
	g, err := gram.ParseBNF(`
<start> ::= <dec>
<dec> ::= "8"
`)
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}
	ctx := tree.NewContext()
	octal := tree.Leaf(ctx, "10")
	fn := OctalToDecimal("<start>", "<dec>")

	res, err := fn(ctx, g, []formula.Term{formula.TreeTerm(octal), formula.VarTerm(formula.Var{Kind: formula.Const, Name: "d", Type: "<dec>"})})
	if err != nil {
		t.Fatalf("octal_to_decimal: %v", err)
	}
	if res.Outcome != Substitute {
		t.Fatalf("expected a substitution for the unresolved decimal side, got %v", res.Outcome)
	}
	if got := res.Subst[0].Replacement.StringImage(); got != "8" {
		t.Fatalf("expected decimal value \"8\", got %q", got)
	}
}
