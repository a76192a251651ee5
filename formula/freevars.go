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

// FreeConstants collects the free constants (Kind == Const) referenced
// anywhere in f, by name, in first-occurrence order. Bound variables
// are excluded: they are scoped by their introducing quantifier, never
// "free" in the sense relevant to substitution or the SMT bridge,
// which only ever sees constants.
func FreeConstants(f Formula) []Var {
	var out []Var
	seen := make(map[string]bool)
	collectVars(f, func(v Var) {
		if v.Kind == Const && !seen[v.Name] {
			seen[v.Name] = true
			out = append(out, v)
		}
	})
	return out
}

// collectVars calls fn for every Var referenced by a Term, a Quant's
// bound Var, a Quant's Range, a BindExpr's named parts, or an SMTAtom's
// free string variables (reported as untyped Const Vars, since an SMT
// atom only knows variables by name).
func collectVars(f Formula, fn func(Var)) {
	switch n := f.(type) {
	case BoolConst:
	case SMTAtom:
		for _, name := range n.Expr.Vars() {
			fn(Var{Kind: Const, Name: name})
		}
	case StructPred:
		collectTermVars(n.Args, fn)
	case SemPred:
		collectTermVars(n.Args, fn)
	case Quant:
		fn(n.Var)
		collectTermVars([]Term{n.Range}, fn)
		for _, p := range n.Bind {
			if p.Name != nil {
				fn(*p.Name)
			}
		}
		collectVars(n.Body, fn)
	case And:
		for _, c := range n {
			collectVars(c, fn)
		}
	case Or:
		for _, c := range n {
			collectVars(c, fn)
		}
	case Not:
		collectVars(n.Of, fn)
	}
}

func collectTermVars(args []Term, fn func(Var)) {
	for _, a := range args {
		if a.V != nil {
			fn(*a.V)
		}
	}
}

// IsDead reports whether none of a Quant's bound names — the bound
// variable itself or any named part of its bind expression — occurs
// free in its body, i.e. the quantifier is vacuous and can be dropped
// under the rule `forall ≡ true`, `exists ≡ true`.
//
// This cannot reuse collectVars's Const/Bound tagging: an SMT atom only
// knows its variables by bare name, so an occurrence of a bound
// variable inside an as-yet-unfired quantifier's own SMTAtom body (the
// normal shape before instantiation substitutes it away) is reported as
// a Const, not a Bound, var. mentionsName scans by name instead; Check
// already rejects a nested quantifier rebinding a name in scope, so a
// name match below q's own level always denotes q's binding, never a
// shadow.
func (q Quant) IsDead() bool {
	if mentionsName(q.Body, q.Var.Name) {
		return false
	}
	for _, p := range q.Bind {
		if p.Name != nil && p.Name.Kind != Dummy && mentionsName(q.Body, p.Name.Name) {
			return false
		}
	}
	return true
}

func mentionsName(f Formula, name string) bool {
	switch n := f.(type) {
	case BoolConst:
		return false
	case SMTAtom:
		for _, v := range n.Expr.Vars() {
			if v == name {
				return true
			}
		}
		return false
	case StructPred:
		return termsMentionName(n.Args, name)
	case SemPred:
		return termsMentionName(n.Args, name)
	case Quant:
		if termMentionsName(n.Range, name) {
			return true
		}
		for _, p := range n.Bind {
			if p.Name != nil && p.Name.Name == name {
				return true
			}
		}
		if n.Var.Name == name {
			// A nested quantifier rebinding the same name would be
			// rejected by Check; reaching here on a well-formed
			// formula means this is a different scope entirely, but
			// conservatively stop here rather than descend into a
			// body where the name means something else.
			return false
		}
		return mentionsName(n.Body, name)
	case And:
		for _, c := range n {
			if mentionsName(c, name) {
				return true
			}
		}
		return false
	case Or:
		for _, c := range n {
			if mentionsName(c, name) {
				return true
			}
		}
		return false
	case Not:
		return mentionsName(n.Of, name)
	default:
		return false
	}
}

func termsMentionName(args []Term, name string) bool {
	for _, a := range args {
		if termMentionsName(a, name) {
			return true
		}
	}
	return false
}

func termMentionsName(t Term, name string) bool {
	return t.V != nil && t.V.Name == name
}
