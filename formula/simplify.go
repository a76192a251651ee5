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

// Simplify applies the cheap, always-sound rewrites: constant folding
// of And/Or/Not over BoolConst, flattening of nested And/Or, pruning
// of trivially-valid/invalid ground SMT atoms (via smt.Valid), and
// dead-quantifier removal. It does not compute NNF or DNF —
// call NNF/DNF explicitly when the elimination transformers need them.
func Simplify(f Formula) Formula {
	switch n := f.(type) {
	case SMTAtom:
		if v, ok := smt.Valid(n.Expr); ok {
			return BoolConst(v)
		}
		return n
	case Quant:
		body := Simplify(n.Body)
		q := Quant{Universal: n.Universal, Var: n.Var, Bind: n.Bind, Range: n.Range, Body: body}
		if q.IsDead() {
			return BoolConst(true)
		}
		if bc, ok := body.(BoolConst); ok {
			// A quantifier whose body is already a ground truth
			// value is vacuous regardless of variable occurrence.
			return bc
		}
		return q
	case And:
		var out And
		for _, c := range n {
			sc := Simplify(c)
			if bc, ok := sc.(BoolConst); ok {
				if !bool(bc) {
					return BoolConst(false)
				}
				continue
			}
			if inner, ok := sc.(And); ok {
				out = append(out, inner...)
				continue
			}
			out = append(out, sc)
		}
		if len(out) == 0 {
			return BoolConst(true)
		}
		if len(out) == 1 {
			return out[0]
		}
		return out
	case Or:
		var out Or
		for _, c := range n {
			sc := Simplify(c)
			if bc, ok := sc.(BoolConst); ok {
				if bool(bc) {
					return BoolConst(true)
				}
				continue
			}
			if inner, ok := sc.(Or); ok {
				out = append(out, inner...)
				continue
			}
			out = append(out, sc)
		}
		if len(out) == 0 {
			return BoolConst(false)
		}
		if len(out) == 1 {
			return out[0]
		}
		return out
	case Not:
		sof := Simplify(n.Of)
		if bc, ok := sof.(BoolConst); ok {
			return BoolConst(!bool(bc))
		}
		return Not{Of: sof}
	default:
		return f
	}
}

// NNF rewrites f into negation normal form: Not is pushed down until it
// applies only to atoms (SMTAtom, StructPred, SemPred are left negated
// in place since they are already atomic; And/Or/Not/Quant are
// rewritten via De Morgan and quantifier duality).
func NNF(f Formula) Formula {
	return nnf(f, false)
}

func nnf(f Formula, negate bool) Formula {
	switch n := f.(type) {
	case BoolConst:
		if negate {
			return BoolConst(!bool(n))
		}
		return n
	case Not:
		return nnf(n.Of, !negate)
	case And:
		out := make([]Formula, len(n))
		for i, c := range n {
			out[i] = nnf(c, negate)
		}
		if negate {
			return Or(out)
		}
		return And(out)
	case Or:
		out := make([]Formula, len(n))
		for i, c := range n {
			out[i] = nnf(c, negate)
		}
		if negate {
			return And(out)
		}
		return Or(out)
	case Quant:
		body := nnf(n.Body, negate)
		universal := n.Universal
		if negate {
			universal = !universal
		}
		return Quant{Universal: universal, Var: n.Var, Bind: n.Bind, Range: n.Range, Body: body}
	default:
		if negate {
			return Not{Of: f}
		}
		return f
	}
}

// DNF rewrites an already-NNF formula into a disjunction of
// conjunctions. The elimination steps do not call it (they split only
// the top-level disjunction of the simplified formula), since it can
// blow up exponentially on deeply nested formulas.
func DNF(f Formula) Or {
	switch n := f.(type) {
	case Or:
		var out Or
		for _, c := range n {
			out = append(out, DNF(c)...)
		}
		return out
	case And:
		acc := Or{And{}}
		for _, c := range n {
			cd := DNF(c)
			var next Or
			for _, accConj := range acc {
				for _, cConj := range cd {
					merged := append(And{}, accConj.(And)...)
					merged = append(merged, cConj.(And)...)
					next = append(next, merged)
				}
			}
			acc = next
		}
		return acc
	case Quant:
		return Or{And{n}}
	default:
		return Or{And{n}}
	}
}
