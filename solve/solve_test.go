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

package solve

import (
	"testing"

	"github.com/ctreegen/ctreegen/elim"
	"github.com/ctreegen/ctreegen/formula"
	"github.com/ctreegen/ctreegen/gram"
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

func TestNewWeightsAcceptsFiveOrSixLength(t *testing.T) {
	if _, err := NewWeights([]float64{1, 2, 3, 4, 5}); err != nil {
		t.Fatalf("length 5: %v", err)
	}
	if _, err := NewWeights([]float64{1, 2, 3, 4, 5, 6}); err != nil {
		t.Fatalf("length 6: %v", err)
	}
	if _, err := NewWeights([]float64{1, 2, 3}); err == nil {
		t.Fatalf("expected error for length 3")
	}
}

func TestScheduleCyclesPhases(t *testing.T) {
	depthFirst, _ := NewWeights([]float64{1, 0, 0, 0, 0})
	coverageFirst, _ := NewWeights([]float64{0, 0, 0, 1, 0})
	sched := Schedule{{Weights: depthFirst, Steps: 2}, {Weights: coverageFirst, Steps: 1}}

	got := []Weights{sched.At(0), sched.At(1), sched.At(2), sched.At(3), sched.At(4)}
	want := []Weights{depthFirst, depthFirst, coverageFirst, depthFirst, depthFirst}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("phase at step %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

// TestSolverFindsExistentialSolution drives the full stack (tree, gram,
// formula, match, elim, solve) to one solution: a grammar producing "A"
// or "B", constrained to contain a node equal to "B".
func TestSolverFindsExistentialSolution(t *testing.T) {
	g := mustGrammar(t, `
<start> ::= <a>
<a> ::= "A" | "B"
`)
	ctx := tree.NewContext()
	goal := formula.Goal("<start>")
	f := formula.Exists("x", "<a>", goal, func(x formula.Var) formula.Builder {
		return formula.SMT(smt.Eq(smt.V(x.Name), smt.S("B")))
	}).Build()
	if err := formula.Check(f, goal); err != nil {
		t.Fatalf("Check: %v", err)
	}

	cfg := Config{
		Elim:         elim.Config{Grammar: g, Backend: smt.NewReference(), MaxSMTModels: 4},
		Schedule:     Constant(mustWeights(t, 1, 1, 1, 0, 1)),
		MaxSolutions: 1,
	}
	initial := elim.State{Tree: tree.Open(ctx, "<start>"), Formula: f}
	s := New(cfg, ctx, initial)

	sol, ok := s.Next()
	if !ok {
		t.Fatalf("expected a solution, got none after %d steps", s.Steps())
	}
	if !sol.Tree.IsComplete() {
		t.Fatalf("solution tree is not complete: %v", sol.Tree)
	}
	if sol.Tree.StringImage() != "B" {
		t.Fatalf("solution image = %q, want %q", sol.Tree.StringImage(), "B")
	}

	_, ok = s.Next()
	if ok {
		t.Fatalf("expected no second solution: MaxSolutions=1")
	}
}

// TestSolverReportsUnsatOnExhaustedQueue mirrors elim's UNSAT scenario,
// but through the scheduler: no grammar-reachable string ever matches
// the existential, so the queue must empty with zero emissions.
func TestSolverReportsUnsatOnExhaustedQueue(t *testing.T) {
	g := mustGrammar(t, `
<start> ::= <a>
<a> ::= "A"
`)
	ctx := tree.NewContext()
	goal := formula.Goal("<start>")
	f := formula.Exists("x", "<a>", goal, func(x formula.Var) formula.Builder {
		return formula.SMT(smt.Eq(smt.V(x.Name), smt.S("B")))
	}).Build()

	cfg := Config{
		Elim:         elim.Config{Grammar: g, Backend: smt.NewReference(), MaxSMTModels: 4},
		Schedule:     Constant(mustWeights(t, 1, 1, 1, 0, 1)),
		MaxSolutions: -1,
	}
	initial := elim.State{Tree: tree.Open(ctx, "<start>"), Formula: f}
	s := New(cfg, ctx, initial)

	if _, ok := s.Next(); ok {
		t.Fatalf("expected UNSAT, got a solution")
	}
	if s.Emitted() != 0 {
		t.Fatalf("Emitted() = %d, want 0", s.Emitted())
	}
	if s.QueueLen() != 0 {
		t.Fatalf("QueueLen() = %d, want 0 (exhausted)", s.QueueLen())
	}
}

func mustWeights(t *testing.T, v ...float64) Weights {
	t.Helper()
	w, err := NewWeights(v)
	if err != nil {
		t.Fatalf("NewWeights: %v", err)
	}
	return w
}
