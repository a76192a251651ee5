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

import "fmt"

// WFError is a specification error raised by Check: the formula is
// ill-scoped or ill-typed, which is the caller's mistake, not ours.
type WFError struct {
	Msg string
}

func (e *WFError) Error() string { return "ill-formed formula: " + e.Msg }

func errWF(format string, args ...any) *WFError {
	return &WFError{Msg: fmt.Sprintf(format, args...)}
}

// Check performs the admission checks: every bound variable is
// introduced before use, each quantifier's range is either the goal
// constant or a variable bound by an enclosing quantifier, no SMT atom
// constrains the goal constant alone, and no quantifier rebinds a name
// already in scope.
func Check(f Formula, goal Var) error {
	return checkScope(f, map[string]Var{goal.Name: goal})
}

func checkScope(f Formula, scope map[string]Var) error {
	switch n := f.(type) {
	case BoolConst:
		return nil
	case SMTAtom:
		for _, name := range n.Expr.Vars() {
			if name == GoalName {
				return errWF("SMT atom constrains the goal constant %q directly", GoalName)
			}
			if v, ok := scope[name]; ok && v.Kind == Bound {
				continue
			}
			// A name not matching any enclosing bound variable is
			// assumed to be a free constant, declared elsewhere in
			// the solution state's constant set; only bound-variable
			// use-before-introduction is checked here.
		}
		return nil
	case StructPred:
		return checkTermsInScope(n.Args, scope)
	case SemPred:
		return checkTermsInScope(n.Args, scope)
	case Quant:
		if n.Range.V == nil {
			return errWF("quantifier %q range must be a variable", n.Var.Name)
		}
		rv := *n.Range.V
		switch rv.Kind {
		case Bound:
			if v, ok := scope[rv.Name]; !ok || v.Kind != Bound {
				return errWF("quantifier %q ranges over %q, which is not in scope", n.Var.Name, rv.Name)
			}
		case Const:
			if rv.Name != GoalName {
				return errWF("quantifier %q ranges over constant %q, which is neither the goal constant nor a bound variable", n.Var.Name, rv.Name)
			}
		default:
			return errWF("quantifier %q range variable %q has invalid kind", n.Var.Name, rv.Name)
		}
		if _, clash := scope[n.Var.Name]; clash {
			return errWF("quantifier rebinds name %q already in scope", n.Var.Name)
		}
		inner := make(map[string]Var, len(scope)+1)
		for k, v := range scope {
			inner[k] = v
		}
		inner[n.Var.Name] = n.Var
		for _, p := range n.Bind {
			if p.Name != nil && p.Name.Kind != Dummy {
				if _, clash := inner[p.Name.Name]; clash && p.Name.Name != n.Var.Name {
					return errWF("bind expression rebinds name %q already in scope", p.Name.Name)
				}
				inner[p.Name.Name] = *p.Name
			}
		}
		return checkScope(n.Body, inner)
	case And:
		for _, c := range n {
			if err := checkScope(c, scope); err != nil {
				return err
			}
		}
		return nil
	case Or:
		for _, c := range n {
			if err := checkScope(c, scope); err != nil {
				return err
			}
		}
		return nil
	case Not:
		return checkScope(n.Of, scope)
	default:
		return errWF("unrecognized formula node %T", f)
	}
}

func checkTermsInScope(args []Term, scope map[string]Var) error {
	for _, a := range args {
		if a.V == nil || a.V.Kind != Bound {
			continue
		}
		if v, ok := scope[a.V.Name]; !ok || v.Kind != Bound {
			return errWF("reference to bound variable %q, which is not in scope", a.V.Name)
		}
	}
	return nil
}
