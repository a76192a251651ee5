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

import "github.com/ctreegen/ctreegen/tree"

// Substitute returns φ[c ↦ t]: every free occurrence of constant c, as
// a term or as an SMT free variable of the same name, is replaced by
// t (an SMT occurrence becomes t's string image). c must be
// a Const; substituting a Bound variable is a programmer error and
// panics, since bound variables are eliminated by quantifier
// instantiation (see InstantiateBound), never by general substitution.
//
// Because Var carries an explicit Kind tag rather than relying on
// lexical name scoping alone, a quantifier's bound variable can never
// be mistaken for the constant being substituted even if they share a
// textual name — so this substitution is capture-free without any
// runtime alpha-renaming (see DESIGN.md).
func Substitute(f Formula, c Var, t tree.Tree) Formula {
	if c.Kind != Const {
		panic("formula.Substitute: target variable must be a constant")
	}
	return substVar(f, c, TreeTerm(t))
}

// InstantiateBound replaces every occurrence of bound variable v (as
// introduced by one specific quantifier) with t, within a formula that
// is v's own quantifier body (or a copy of it). Used by the
// elimination transformers when a quantifier fires for a matched
// subtree.
func InstantiateBound(f Formula, v Var, t tree.Tree) Formula {
	return substVar(f, v, TreeTerm(t))
}

func substVar(f Formula, target Var, repl Term) Formula {
	switch n := f.(type) {
	case BoolConst:
		return n
	case SMTAtom:
		return SMTAtom{Expr: n.Expr.Substitute(target.Name, repl.treeStringImage())}
	case StructPred:
		return StructPred{Name: n.Name, Args: substTerms(n.Args, target, repl)}
	case SemPred:
		return SemPred{Name: n.Name, Args: substTerms(n.Args, target, repl)}
	case Quant:
		return Quant{
			Universal: n.Universal,
			Var:       n.Var,
			Bind:      n.Bind,
			Range:     substTerm(n.Range, target, repl),
			Body:      substVar(n.Body, target, repl),
		}
	case And:
		out := make(And, len(n))
		for i, c := range n {
			out[i] = substVar(c, target, repl)
		}
		return out
	case Or:
		out := make(Or, len(n))
		for i, c := range n {
			out[i] = substVar(c, target, repl)
		}
		return out
	case Not:
		return Not{Of: substVar(n.Of, target, repl)}
	default:
		return f
	}
}

func substTerms(args []Term, target Var, repl Term) []Term {
	out := make([]Term, len(args))
	for i, a := range args {
		out[i] = substTerm(a, target, repl)
	}
	return out
}

func substTerm(a Term, target Var, repl Term) Term {
	if a.V != nil && a.V.Equal(target) {
		return repl
	}
	return a
}

func (t Term) treeStringImage() string {
	if t.T != nil {
		return t.T.StringImage()
	}
	return ""
}
