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

// BindPart is one element of a BindExpr: either a literal text
// fragment or a named variable (bound or dummy) standing for an
// as-yet-unconstrained piece of the matched subtree's shape.
type BindPart struct {
	Literal string
	Name    *Var // nil when Literal is set
}

// Lit builds a literal fragment part.
func Lit(s string) BindPart { return BindPart{Literal: s} }

// Bind builds a named variable part.
func Bind(v Var) BindPart { return BindPart{Name: &v} }

// BindExpr is a concatenation of bound variables and literal fragments
// that constrains the shape of a matched subtree and names parts of it
// by path, e.g. `"{lhs} := {rhs}"` where lhs and rhs are Bind parts and
// " := " is a Lit part.
type BindExpr []BindPart

// Vars returns the non-dummy named variables appearing in b, in
// left-to-right order.
func (b BindExpr) Vars() []Var {
	var out []Var
	for _, p := range b {
		if p.Name != nil && p.Name.Kind != Dummy {
			out = append(out, *p.Name)
		}
	}
	return out
}
