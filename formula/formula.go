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

package formula

import (
	"fmt"
	"strings"

	"github.com/ctreegen/ctreegen/smt"
)

// Formula is the tagged sum of the algebraic formula constructors:
// SMT atoms, structural/semantic predicate atoms, quantifiers, and
// the Boolean connectives. Its only methods are isFormula and String —
// all traversal is done by type switches in the functions that need it,
// so that adding a constructor only means adding one more type switch
// arm, not threading a new virtual method through every node.
type Formula interface {
	isFormula()
	String() string
}

// BoolConst is the formula `true` or `false`, produced by simplify and
// by predicate evaluation.
type BoolConst bool

func (BoolConst) isFormula() {}
func (b BoolConst) String() string {
	if b {
		return "true"
	}
	return "false"
}

// SMTAtom wraps a boolean expression over string-typed free constants.
type SMTAtom struct {
	Expr smt.Expr
}

func (SMTAtom) isFormula() {}
func (a SMTAtom) String() string { return a.Expr.String() }

// StructPred is a structural-predicate atom: a pure function of the
// argument terms' *paths* in the ambient tree.
type StructPred struct {
	Name string
	Args []Term
}

func (StructPred) isFormula() {}
func (p StructPred) String() string { return predString(p.Name, p.Args) }

// SemPred is a semantic-predicate atom: a three-valued function of the
// argument terms' *trees*.
type SemPred struct {
	Name string
	Args []Term
}

func (SemPred) isFormula() {}
func (p SemPred) String() string { return predString(p.Name, p.Args) }

func predString(name string, args []Term) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}

// Quant is a universally or existentially quantified formula ranging
// over subtrees of a single nonterminal type, optionally shape-
// constrained by a bind expression.
type Quant struct {
	Universal bool
	Var       Var
	Bind      BindExpr // nil if unconstrained
	Range     Term     // the goal constant, an enclosing bound variable, or (post-substitution) a concrete tree
	Body      Formula
}

func (Quant) isFormula() {}
func (q Quant) String() string {
	kw := "exists"
	if q.Universal {
		kw = "forall"
	}
	if q.Bind != nil {
		return fmt.Sprintf("%s %s=%q in %s: %s", kw, q.Var, bindString(q.Bind), q.Range, q.Body)
	}
	return fmt.Sprintf("%s %s in %s: %s", kw, q.Var, q.Range, q.Body)
}

func bindString(b BindExpr) string {
	var sb strings.Builder
	for _, p := range b {
		if p.Name != nil {
			sb.WriteByte('{')
			sb.WriteString(p.Name.Name)
			sb.WriteByte('}')
		} else {
			sb.WriteString(p.Literal)
		}
	}
	return sb.String()
}

// And is a (possibly empty, meaning true) conjunction.
type And []Formula

func (And) isFormula() {}
func (a And) String() string { return joinFormulas(a, " and ") }

// Or is a (possibly empty, meaning false) disjunction.
type Or []Formula

func (Or) isFormula() {}
func (o Or) String() string { return joinFormulas(o, " or ") }

func joinFormulas(fs []Formula, sep string) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = f.String()
	}
	return "(" + strings.Join(parts, sep) + ")"
}

// Not is a negation, pushed down to atoms by NNF normalization.
type Not struct{ Of Formula }

func (Not) isFormula() {}
func (n Not) String() string { return "not " + n.Of.String() }
