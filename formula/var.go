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

// Package formula implements the algebraic formula model: SMT atoms,
// structural and semantic predicate atoms, quantifiers ranging over
// grammar-derived subtrees, and the Boolean connectives, together with
// capture-free substitution and on-demand normal forms.
//
// Formula nodes are a tagged sum of constructors traversed through
// explicit type switches rather than a class hierarchy.
package formula

import (
	"fmt"

	"github.com/ctreegen/ctreegen/tree"
)

// NumType is the distinguished type of numeric constants bound by
// "num v:" blocks in the concrete syntax.
const NumType = "NUM"

// GoalName is the name of the distinguished free constant that every
// solution state's formula keeps bound to its root tree T0.
const GoalName = "$goal"

// VarKind distinguishes the three kinds of variable: free-standing
// constants, quantifier-bound variables, and
// anonymous dummies used only inside a bind expression's shape.
type VarKind int

const (
	// Const is a free, globally named variable of a nonterminal type
	// or of NumType.
	Const VarKind = iota
	// Bound is introduced and scoped by an enclosing quantifier.
	Bound
	// Dummy is an anonymous literal placeholder inside a bind
	// expression; it never appears as a formula free variable.
	Dummy
)

func (k VarKind) String() string {
	switch k {
	case Const:
		return "const"
	case Bound:
		return "bound"
	case Dummy:
		return "dummy"
	default:
		return "unknown"
	}
}

// Var is a named, typed placeholder for a tree (or, when Type ==
// NumType, for a number).
type Var struct {
	Kind VarKind
	Name string
	Type string
}

// Equal reports whether v and o name the same variable. Two Dummy
// variables are never Equal, even with the same name, since dummies
// are anonymous per-occurrence placeholders.
func (v Var) Equal(o Var) bool {
	if v.Kind == Dummy || o.Kind == Dummy {
		return false
	}
	return v.Kind == o.Kind && v.Name == o.Name
}

func (v Var) String() string { return v.Name }

// Goal returns the distinguished goal constant of nonterminal type
// start.
func Goal(start string) Var {
	return Var{Kind: Const, Name: GoalName, Type: start}
}

// Term is an argument to a predicate or a quantifier's range: a
// variable reference (constant or bound), a directly-embedded concrete
// tree, or a raw string literal — predicates like count take a literal
// nonterminal name as one argument alongside variable/tree arguments,
// which is neither a grammar-derived value nor a solver-bound variable.
type Term struct {
	V   *Var
	T   *tree.Tree
	Lit *string
}

// VarTerm builds a Term referencing a variable.
func VarTerm(v Var) Term { return Term{V: &v} }

// TreeTerm builds a Term embedding a concrete tree directly.
func TreeTerm(t tree.Tree) Term { return Term{T: &t} }

// LitTerm builds a Term carrying a raw string literal, e.g. the
// nonterminal name argument of the count predicate.
func LitTerm(s string) Term { return Term{Lit: &s} }

// IsVar reports whether the term is a variable reference.
func (t Term) IsVar() bool { return t.V != nil }

func (t Term) String() string {
	switch {
	case t.V != nil:
		return t.V.String()
	case t.T != nil:
		return t.T.String()
	case t.Lit != nil:
		return fmt.Sprintf("%q", *t.Lit)
	default:
		return "<empty term>"
	}
}

// Equal reports term equality: two variable terms are equal iff the
// variables are equal; two tree terms are equal iff the trees are
// structurally equal; two literal terms are equal iff the strings
// match; terms of different kinds are never equal.
func (t Term) Equal(o Term) bool {
	if t.V != nil && o.V != nil {
		return t.V.Equal(*o.V)
	}
	if t.T != nil && o.T != nil {
		return t.T.Equal(*o.T)
	}
	if t.Lit != nil && o.Lit != nil {
		return *t.Lit == *o.Lit
	}
	return false
}
