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

package elim

import (
	"testing"

	"github.com/ctreegen/ctreegen/formula"
	"github.com/ctreegen/ctreegen/gram"
	"github.com/ctreegen/ctreegen/predicate"
	"github.com/ctreegen/ctreegen/smt"
	"github.com/ctreegen/ctreegen/tree"
)

func mustGrammar(t *testing.T, bnf string) *gram.Grammar {
	t.Helper()
	g, err := gram.ParseBNF(bnf)
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}
	return g
}

// TestStepExpandsLeftmostOpenLeaf covers rule 6: a state with no
// quantifier left to fire produces one successor per grammar
// alternative for the leftmost open leaf.
func TestStepExpandsLeftmostOpenLeaf(t *testing.T) {
	g := mustGrammar(t, `
<start> ::= <a>
<a> ::= "A" | "B"
`)
	ctx := tree.NewContext()
	cfg := Config{Grammar: g}
	s := State{Tree: tree.Open(ctx, "<start>"), Formula: formula.BoolConst(true)}

	succs, outcome, err := Step(ctx, cfg, s)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if outcome != Applied {
		t.Fatalf("outcome = %v, want Applied", outcome)
	}
	if len(succs) != 1 {
		t.Fatalf("expected one successor (single <start> alternative), got %d", len(succs))
	}
}

// TestStepPrunesUnsatisfiableExistential walks the UNSAT scenario: a
// grammar producing only "A", constrained to exist a node equal to
// "B". Driving Step to a fixed point should eventually prune, never
// reaching Final.
func TestStepPrunesUnsatisfiableExistential(t *testing.T) {
	g := mustGrammar(t, `
<start> ::= <a>
<a> ::= "A"
`)
	ctx := tree.NewContext()
	cfg := Config{Grammar: g, Backend: smt.NewReference(), MaxSMTModels: 4}

	goal := formula.Goal("<start>")
	f := formula.Exists("x", "<a>", goal, func(x formula.Var) formula.Builder {
		return formula.SMT(smt.Eq(smt.V(x.Name), smt.S("B")))
	}).Build()
	if err := formula.Check(f, goal); err != nil {
		t.Fatalf("Check: %v", err)
	}

	cur := State{Tree: tree.Open(ctx, "<start>"), Formula: f}
	const maxSteps = 20
	for i := 0; i < maxSteps; i++ {
		succs, outcome, err := Step(ctx, cfg, cur)
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
		switch outcome {
		case Pruned, Stuck:
			return
		case Final:
			t.Fatalf("reached Final on an UNSAT constraint")
		case Applied:
			if len(succs) == 0 {
				t.Fatalf("Applied with zero successors")
			}
			cur = succs[0]
		}
	}
	t.Fatalf("did not reach Pruned within %d steps", maxSteps)
}

// TestStepReadySemanticPredicateSubstitutes drives a count(...) atom
// to a Substitute outcome and checks that the proposed value is bound
// into the remaining formula, matching scenario 4's direct-evaluation
// case in spirit (count settles an unresolved numeric constant).
func TestStepReadySemanticPredicateSubstitutes(t *testing.T) {
	g := mustGrammar(t, `
<start> ::= <item>
<item> ::= "a"
`)
	ctx := tree.NewContext()
	closedItem := tree.Node(ctx, "<item>", []tree.Tree{tree.Leaf(ctx, "a")})
	closedStart := tree.Node(ctx, "<start>", []tree.Tree{closedItem})

	n := formula.Var{Kind: formula.Const, Name: "n", Type: formula.NumType}
	atom := formula.SemPred{Name: "count", Args: []formula.Term{
		formula.TreeTerm(closedStart),
		formula.LitTerm("<item>"),
		formula.VarTerm(n),
	}}
	cfg := Config{Grammar: g, Semantic: predicate.SemRegistry("<start>", "<start>")}
	s := State{Tree: closedStart, Formula: atom}

	succs, outcome, err := Step(ctx, cfg, s)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if outcome != Applied || len(succs) != 1 {
		t.Fatalf("outcome = %v, successors = %d, want Applied/1", outcome, len(succs))
	}
	if _, ok := succs[0].Formula.(formula.BoolConst); !ok {
		t.Fatalf("expected the count atom fully discharged to a bool constant, got %T", succs[0].Formula)
	}
}

// TestStepDischargesDefineBeforeUse drives the assignment-language
// constraint ("every right-hand-side variable was the left-hand side
// of an earlier assignment") to a fixed point over an already-closed
// tree, following the first successor at each step: "a := 1;b := a"
// satisfies it, "a := b;b := 1" does not.
func TestStepDischargesDefineBeforeUse(t *testing.T) {
	g := mustGrammar(t, `
<start> ::= <stmt>
<stmt> ::= <assgn> ";" <stmt> | <assgn>
<assgn> ::= <var> " := " <rhs>
<rhs> ::= <var> | <digit>
<var> ::= "a" | "b"
<digit> ::= "0" | "1"
`)
	ctx := tree.NewContext()

	varRef := func(v string) tree.Tree {
		return tree.Node(ctx, "<var>", []tree.Tree{tree.Leaf(ctx, v)})
	}
	digit := func(d string) tree.Tree {
		return tree.Node(ctx, "<rhs>", []tree.Tree{tree.Node(ctx, "<digit>", []tree.Tree{tree.Leaf(ctx, d)})})
	}
	rhsVarRef := func(v string) tree.Tree {
		return tree.Node(ctx, "<rhs>", []tree.Tree{varRef(v)})
	}
	mkAssgn := func(lhs string, rhs tree.Tree) tree.Tree {
		return tree.Node(ctx, "<assgn>", []tree.Tree{varRef(lhs), tree.Leaf(ctx, " := "), rhs})
	}
	program := func(a1, a2 tree.Tree) tree.Tree {
		inner := tree.Node(ctx, "<stmt>", []tree.Tree{a2})
		outer := tree.Node(ctx, "<stmt>", []tree.Tree{a1, tree.Leaf(ctx, ";"), inner})
		return tree.Node(ctx, "<start>", []tree.Tree{outer})
	}

	bindAssgn := func(lhs, rhs string) formula.BindExpr {
		return formula.BindExpr{
			formula.Bind(formula.Var{Kind: formula.Bound, Name: lhs, Type: "<var>"}),
			formula.Lit(" := "),
			formula.Bind(formula.Var{Kind: formula.Bound, Name: rhs, Type: "<rhs>"}),
		}
	}
	goal := formula.Goal("<start>")
	f := formula.ForallBind("asg", "<assgn>", bindAssgn("lhs", "rhs"), goal, func(asg formula.Var) formula.Builder {
		rhsVar := formula.Var{Kind: formula.Bound, Name: "rhs", Type: "<rhs>"}
		return formula.Forall("v", "<var>", rhsVar, func(v formula.Var) formula.Builder {
			return formula.ExistsBind("asg2", "<assgn>", bindAssgn("lhs2", "rhs2"), goal, func(asg2 formula.Var) formula.Builder {
				return formula.Struct("before", formula.VarTerm(asg2), formula.VarTerm(asg)).
					And(formula.SMT(smt.Eq(smt.V("lhs2"), smt.V(v.Name))))
			})
		})
	}).Build()
	if err := formula.Check(f, goal); err != nil {
		t.Fatalf("Check: %v", err)
	}

	cfg := Config{Grammar: g, Backend: smt.NewReference(), MaxSMTModels: 4}
	drive := func(program tree.Tree) Outcome {
		cur := State{Tree: program, Formula: f}
		for i := 0; i < 32; i++ {
			succs, outcome, err := Step(ctx, cfg, cur)
			if err != nil {
				t.Fatalf("Step: %v", err)
			}
			if outcome != Applied {
				return outcome
			}
			if len(succs) == 0 {
				t.Fatalf("Applied with zero successors")
			}
			cur = succs[0]
		}
		t.Fatalf("no fixed point within 32 steps")
		return Stuck
	}

	good := program(mkAssgn("a", digit("1")), mkAssgn("b", rhsVarRef("a")))
	if got := drive(good); got != Final {
		t.Fatalf("outcome = %v for %q, want Final", got, good.StringImage())
	}
	bad := program(mkAssgn("a", rhsVarRef("b")), mkAssgn("b", digit("1")))
	if got := drive(bad); got != Pruned {
		t.Fatalf("outcome = %v for %q, want Pruned", got, bad.StringImage())
	}
}

// TestStepDischargesBalancedTagConstraint checks the tag-matching
// constraint over a closed single-element document: for every tagged
// tree the opening and closing identifier strings must be equal.
func TestStepDischargesBalancedTagConstraint(t *testing.T) {
	g := mustGrammar(t, `
<start> ::= <elem>
<elem> ::= "<" <id> ">" <text> "</" <id> ">"
<id> ::= "a" | "b"
<text> ::= "t"
`)
	ctx := tree.NewContext()

	id := func(s string) tree.Tree {
		return tree.Node(ctx, "<id>", []tree.Tree{tree.Leaf(ctx, s)})
	}
	elem := func(open, close string) tree.Tree {
		e := tree.Node(ctx, "<elem>", []tree.Tree{
			tree.Leaf(ctx, "<"), id(open), tree.Leaf(ctx, ">"),
			tree.Node(ctx, "<text>", []tree.Tree{tree.Leaf(ctx, "t")}),
			tree.Leaf(ctx, "</"), id(close), tree.Leaf(ctx, ">"),
		})
		return tree.Node(ctx, "<start>", []tree.Tree{e})
	}

	bind := formula.BindExpr{
		formula.Lit("<"),
		formula.Bind(formula.Var{Kind: formula.Bound, Name: "oid", Type: "<id>"}),
		formula.Lit(">"),
		formula.Bind(formula.Var{Kind: formula.Bound, Name: "inner", Type: "<text>"}),
		formula.Lit("</"),
		formula.Bind(formula.Var{Kind: formula.Bound, Name: "cid", Type: "<id>"}),
		formula.Lit(">"),
	}
	goal := formula.Goal("<start>")
	f := formula.ForallBind("e", "<elem>", bind, goal, func(formula.Var) formula.Builder {
		return formula.SMT(smt.Eq(smt.V("oid"), smt.V("cid")))
	}).Build()
	if err := formula.Check(f, goal); err != nil {
		t.Fatalf("Check: %v", err)
	}

	cfg := Config{Grammar: g, Backend: smt.NewReference(), MaxSMTModels: 4}

	succs, outcome, err := Step(ctx, cfg, State{Tree: elem("a", "a"), Formula: f})
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if outcome != Applied || len(succs) != 1 {
		t.Fatalf("outcome = %v, successors = %d, want Applied/1", outcome, len(succs))
	}
	_, outcome, err = Step(ctx, cfg, succs[0])
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if outcome != Final {
		t.Fatalf("outcome = %v for matched tags, want Final", outcome)
	}

	succs, outcome, err = Step(ctx, cfg, State{Tree: elem("a", "b"), Formula: f})
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if outcome == Applied {
		// the mismatch may surface one simplification later
		_, outcome, err = Step(ctx, cfg, succs[0])
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	if outcome != Pruned {
		t.Fatalf("outcome = %v for mismatched tags, want Pruned", outcome)
	}
}

// TestStepStructuralPredicateDecides covers rule 3, grounded on
// scenario 1's define-before-use check: before(a2, a) over two
// sibling leaves should decide true in left-to-right order and false
// in the reverse, pruning the state.
func TestStepStructuralPredicateDecides(t *testing.T) {
	g := mustGrammar(t, `
<start> ::= "a2" "a"
`)
	ctx := tree.NewContext()
	first := tree.Leaf(ctx, "a2")
	second := tree.Leaf(ctx, "a")
	start := tree.Node(ctx, "<start>", []tree.Tree{first, second})
	cfg := Config{Grammar: g}

	before := formula.StructPred{Name: "before", Args: []formula.Term{
		formula.TreeTerm(first),
		formula.TreeTerm(second),
	}}
	succs, outcome, err := Step(ctx, cfg, State{Tree: start, Formula: before})
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if outcome != Applied || len(succs) != 1 {
		t.Fatalf("outcome = %v, successors = %d, want Applied/1", outcome, len(succs))
	}
	if bc, ok := succs[0].Formula.(formula.BoolConst); !ok || !bool(bc) {
		t.Fatalf("expected before(a2, a) to decide true, got %v", succs[0].Formula)
	}

	reversed := formula.StructPred{Name: "before", Args: []formula.Term{
		formula.TreeTerm(second),
		formula.TreeTerm(first),
	}}
	_, outcome, err = Step(ctx, cfg, State{Tree: start, Formula: reversed})
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if outcome != Pruned {
		t.Fatalf("outcome = %v, want Pruned for before(a, a2)", outcome)
	}
}
