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

import "github.com/ctreegen/ctreegen/smt"

// Builder is a programmatic constructor for Formula values, standing in
// for the textual `constraint { ... }` concrete syntax, whose parser is
// an external collaborator developed outside this module.
//
// A Builder is immutable: every method returns a new value, so a
// partially-built chain can be safely reused as a prefix for several
// continuations.
type Builder struct {
	f Formula
}

// ConstVar declares a free constant of the given nonterminal type.
func ConstVar(name, nonterminal string) Var {
	return Var{Kind: Const, Name: name, Type: nonterminal}
}

// Num declares a free constant of numeric type, for use with SMT atoms.
func Num(name string) Var {
	return Var{Kind: Const, Name: name, Type: NumType}
}

// bound declares the variable a quantifier binds.
func bound(name, nonterminal string) Var {
	return Var{Kind: Bound, Name: name, Type: nonterminal}
}

// Top starts a builder from an already-constructed Formula, typically
// an And/Or assembled from other Builder chains.
func Top(f Formula) Builder { return Builder{f: f} }

// SMT builds a leaf formula wrapping a raw SMT expression.
func SMT(e smt.Expr) Builder { return Builder{f: SMTAtom{Expr: e}} }

// Struct builds a leaf structural-predicate atom.
func Struct(name string, args ...Term) Builder {
	return Builder{f: StructPred{Name: name, Args: args}}
}

// Sem builds a leaf semantic-predicate atom.
func Sem(name string, args ...Term) Builder {
	return Builder{f: SemPred{Name: name, Args: args}}
}

// Forall starts a universally quantified formula: the bound variable
// boundName (of type nonterminal) ranges over every subtree reachable
// from rangeVar, and body is built against the bound variable.
func Forall(boundName, nonterminal string, rangeVar Var, body func(Var) Builder) Builder {
	return quant(true, boundName, nonterminal, nil, rangeVar, body)
}

// ForallBind is Forall with a bind expression shaping the matched
// subtree and naming its parts, mirroring sc.forall_bind(bind_expr,
// bound_variable, in_variable, body) from the original test suite.
func ForallBind(boundName, nonterminal string, bind BindExpr, rangeVar Var, body func(Var) Builder) Builder {
	return quant(true, boundName, nonterminal, bind, rangeVar, body)
}

// Exists starts an existentially quantified formula.
func Exists(boundName, nonterminal string, rangeVar Var, body func(Var) Builder) Builder {
	return quant(false, boundName, nonterminal, nil, rangeVar, body)
}

// ExistsBind is Exists with a bind expression.
func ExistsBind(boundName, nonterminal string, bind BindExpr, rangeVar Var, body func(Var) Builder) Builder {
	return quant(false, boundName, nonterminal, bind, rangeVar, body)
}

func quant(universal bool, boundName, nonterminal string, bind BindExpr, rangeVar Var, body func(Var) Builder) Builder {
	bv := bound(boundName, nonterminal)
	return Builder{f: Quant{
		Universal: universal,
		Var:       bv,
		Bind:      bind,
		Range:     VarTerm(rangeVar),
		Body:      body(bv).f,
	}}
}

// And conjoins b with more, flattening nested conjunctions.
func (b Builder) And(more ...Builder) Builder {
	var out And
	add := func(f Formula) {
		if inner, ok := f.(And); ok {
			out = append(out, inner...)
			return
		}
		out = append(out, f)
	}
	add(b.f)
	for _, m := range more {
		add(m.f)
	}
	return Builder{f: out}
}

// Or disjoins b with more, flattening nested disjunctions.
func (b Builder) Or(more ...Builder) Builder {
	var out Or
	add := func(f Formula) {
		if inner, ok := f.(Or); ok {
			out = append(out, inner...)
			return
		}
		out = append(out, f)
	}
	add(b.f)
	for _, m := range more {
		add(m.f)
	}
	return Builder{f: out}
}

// Not negates b.
func (b Builder) Not() Builder { return Builder{f: Not{Of: b.f}} }

// Build returns the assembled Formula.
func (b Builder) Build() Formula { return b.f }

// AndAll is a package-level convenience for conjoining a slice of
// already-built formulas, used by callers that assemble a constraint
// set programmatically rather than through a single Builder chain.
func AndAll(fs ...Formula) Formula {
	if len(fs) == 1 {
		return fs[0]
	}
	return And(fs)
}

// OrAll is the disjunctive counterpart of AndAll.
func OrAll(fs ...Formula) Formula {
	if len(fs) == 1 {
		return fs[0]
	}
	return Or(fs)
}
