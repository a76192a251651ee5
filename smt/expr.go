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

// Package smt implements the bridge between the core and an external
// SMT decision procedure over string theory: an S-expression value
// type for atoms over string-typed variables, the narrow Backend
// contract the core requires, and a reference in-process backend — a
// small solver sufficient for equality/disequality atoms that keeps
// this module self-contained while a real binding is supplied by the
// caller (see DESIGN.md).
package smt

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Kind distinguishes the shapes an Expr can take.
type Kind int

const (
	KindVar Kind = iota
	KindStr
	KindOp
)

// Expr is an SMT boolean (or string-valued) expression in S-expression
// form: `(op a b ...)`, a string-typed free variable, or a string
// literal.
type Expr struct {
	Kind Kind
	Var  string // set when Kind == KindVar
	Str  string // set when Kind == KindStr
	Op   string // set when Kind == KindOp
	Args []Expr // set when Kind == KindOp
}

func V(name string) Expr { return Expr{Kind: KindVar, Var: name} }
func S(lit string) Expr  { return Expr{Kind: KindStr, Str: lit} }
func Op(op string, args ...Expr) Expr {
	return Expr{Kind: KindOp, Op: op, Args: args}
}

// Eq is shorthand for (= a b).
func Eq(a, b Expr) Expr { return Op("=", a, b) }

// Not is shorthand for (not a).
func Not(a Expr) Expr { return Op("not", a) }

func (e Expr) String() string {
	switch e.Kind {
	case KindVar:
		return e.Var
	case KindStr:
		return fmt.Sprintf("%q", e.Str)
	default:
		parts := make([]string, 0, len(e.Args)+1)
		parts = append(parts, e.Op)
		for _, a := range e.Args {
			parts = append(parts, a.String())
		}
		return "(" + strings.Join(parts, " ") + ")"
	}
}

// Vars returns the free string variables of e, deduplicated, in
// first-occurrence order.
func (e Expr) Vars() []string {
	var out []string
	e.collectVars(&out)
	return out
}

func (e Expr) collectVars(out *[]string) {
	switch e.Kind {
	case KindVar:
		if !slices.Contains(*out, e.Var) {
			*out = append(*out, e.Var)
		}
	case KindOp:
		for _, a := range e.Args {
			a.collectVars(out)
		}
	}
}

// Substitute returns e with every occurrence of variable name replaced
// by the literal string value.
func (e Expr) Substitute(name, value string) Expr {
	switch e.Kind {
	case KindVar:
		if e.Var == name {
			return S(value)
		}
		return e
	case KindOp:
		args := make([]Expr, len(e.Args))
		for i, a := range e.Args {
			args[i] = a.Substitute(name, value)
		}
		return Expr{Kind: KindOp, Op: e.Op, Args: args}
	default:
		return e
	}
}

// Ground reports whether e has no remaining free variables.
func (e Expr) Ground() bool { return len(e.Vars()) == 0 }
