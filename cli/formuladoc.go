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

package cli

import (
	"fmt"

	"sigs.k8s.io/yaml"

	"github.com/ctreegen/ctreegen/formula"
	"github.com/ctreegen/ctreegen/smt"
)

// FormulaDoc is the YAML surface that stands in for the textual
// `const`/`vars`/`constraint` concrete syntax, whose parser is an
// external collaborator. It names every free constant up front, exactly as
// the concrete syntax's `const`/`num` declarations do, then gives the
// constraint as a recursive node tree mirroring formula.Builder.
type FormulaDoc struct {
	Consts     []ConstDecl `json:"consts"`
	Constraint FormulaNode `json:"constraint"`
}

type ConstDecl struct {
	Name string `json:"name"`
	Type string `json:"type"` // a nonterminal, or "NUM"
}

// FormulaNode is a tagged union over the formula constructors; exactly
// one field should be set, the same discipline formula.Term already
// uses for its own tagged union.
type FormulaNode struct {
	Bool   *bool         `json:"bool,omitempty"`
	SMT    *SMTNode      `json:"smt,omitempty"`
	Struct *PredNode     `json:"struct,omitempty"`
	Sem    *PredNode     `json:"sem,omitempty"`
	Forall *QuantNode    `json:"forall,omitempty"`
	Exists *QuantNode    `json:"exists,omitempty"`
	And    []FormulaNode `json:"and,omitempty"`
	Or     []FormulaNode `json:"or,omitempty"`
	Not    *FormulaNode  `json:"not,omitempty"`
}

type PredNode struct {
	Name string     `json:"name"`
	Args []TermNode `json:"args"`
}

// TermNode names a declared const, a bound variable in scope, or
// carries a literal string (for a semantic predicate's non-tree
// arguments, e.g. count's target nonterminal name).
type TermNode struct {
	Var string  `json:"var,omitempty"`
	Lit *string `json:"lit,omitempty"`
}

type QuantNode struct {
	Var   string         `json:"var"`
	Type  string         `json:"type"`
	Bind  []BindPartNode `json:"bind,omitempty"`
	Range string         `json:"range"` // "$goal", a const name, or an enclosing bound variable's name
	Body  FormulaNode    `json:"body"`
}

type BindPartNode struct {
	Var  string `json:"var,omitempty"`
	Type string `json:"type,omitempty"`
	Lit  string `json:"lit,omitempty"`
}

// SMTNode mirrors smt.Expr directly rather than an S-expression string,
// so loading it needs no text parser either.
type SMTNode struct {
	Var  string    `json:"var,omitempty"`
	Str  *string   `json:"str,omitempty"`
	Op   string    `json:"op,omitempty"`
	Args []SMTNode `json:"args,omitempty"`
}

// LoadFormulaDoc parses a FormulaDoc from YAML (or JSON, which is valid
// YAML) source.
func LoadFormulaDoc(doc []byte) (FormulaDoc, error) {
	var d FormulaDoc
	if err := yaml.Unmarshal(doc, &d); err != nil {
		return FormulaDoc{}, fmt.Errorf("cli: parsing formula doc: %w", err)
	}
	return d, nil
}

// scope tracks every variable name in play while a FormulaDoc is built
// into a formula.Formula: the declared free constants plus whichever
// bound variables the quantifiers currently being descended into have
// introduced.
type scope struct {
	vars map[string]formula.Var
}

func newScope(consts []ConstDecl) *scope {
	s := &scope{vars: make(map[string]formula.Var, len(consts)+1)}
	s.vars[formula.GoalName] = formula.Var{} // placeholder; goal's type is the grammar start symbol, bound by caller
	for _, c := range consts {
		s.vars[c.Name] = formula.ConstVar(c.Name, c.Type)
	}
	return s
}

func (s *scope) with(v formula.Var) *scope {
	next := &scope{vars: make(map[string]formula.Var, len(s.vars)+1)}
	for k, v := range s.vars {
		next.vars[k] = v
	}
	next.vars[v.Name] = v
	return next
}

func (s *scope) term(n TermNode) (formula.Term, error) {
	if n.Lit != nil {
		return formula.LitTerm(*n.Lit), nil
	}
	v, ok := s.vars[n.Var]
	if !ok {
		return formula.Term{}, fmt.Errorf("cli: reference to undeclared variable %q", n.Var)
	}
	return formula.VarTerm(v), nil
}

func (s *scope) terms(ns []TermNode) ([]formula.Term, error) {
	out := make([]formula.Term, len(ns))
	for i, n := range ns {
		t, err := s.term(n)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

func (s *scope) smt(n SMTNode) smt.Expr {
	switch {
	case n.Str != nil:
		return smt.S(*n.Str)
	case n.Op != "":
		args := make([]smt.Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = s.smt(a)
		}
		return smt.Op(n.Op, args...)
	default:
		return smt.V(n.Var)
	}
}

func (s *scope) bind(parts []BindPartNode) formula.BindExpr {
	if len(parts) == 0 {
		return nil
	}
	out := make(formula.BindExpr, len(parts))
	for i, p := range parts {
		if p.Var == "" {
			out[i] = formula.Lit(p.Lit)
			continue
		}
		out[i] = formula.Bind(formula.Var{Kind: formula.Bound, Name: p.Var, Type: p.Type})
	}
	return out
}

func (s *scope) quant(universal bool, n QuantNode) (formula.Formula, error) {
	rv, ok := s.vars[n.Range]
	if !ok {
		return nil, fmt.Errorf("cli: quantifier range refers to undeclared variable %q", n.Range)
	}
	bind := s.bind(n.Bind)
	bv := formula.Var{Kind: formula.Bound, Name: n.Var, Type: n.Type}
	inner := s.with(bv)
	for _, p := range n.Bind {
		if p.Var != "" {
			inner = inner.with(formula.Var{Kind: formula.Bound, Name: p.Var, Type: p.Type})
		}
	}
	body, err := inner.build(n.Body)
	if err != nil {
		return nil, err
	}
	return formula.Quant{Universal: universal, Var: bv, Bind: bind, Range: formula.VarTerm(rv), Body: body}, nil
}

// build recursively converts a FormulaNode into a formula.Formula under
// s, the declared-variable scope in effect at this point in the tree.
func (s *scope) build(n FormulaNode) (formula.Formula, error) {
	switch {
	case n.Bool != nil:
		return formula.BoolConst(*n.Bool), nil
	case n.SMT != nil:
		return formula.SMTAtom{Expr: s.smt(*n.SMT)}, nil
	case n.Struct != nil:
		args, err := s.terms(n.Struct.Args)
		if err != nil {
			return nil, err
		}
		return formula.StructPred{Name: n.Struct.Name, Args: args}, nil
	case n.Sem != nil:
		args, err := s.terms(n.Sem.Args)
		if err != nil {
			return nil, err
		}
		return formula.SemPred{Name: n.Sem.Name, Args: args}, nil
	case n.Forall != nil:
		return s.quant(true, *n.Forall)
	case n.Exists != nil:
		return s.quant(false, *n.Exists)
	case len(n.And) > 0:
		out := make(formula.And, len(n.And))
		for i, c := range n.And {
			f, err := s.build(c)
			if err != nil {
				return nil, err
			}
			out[i] = f
		}
		return out, nil
	case len(n.Or) > 0:
		out := make(formula.Or, len(n.Or))
		for i, c := range n.Or {
			f, err := s.build(c)
			if err != nil {
				return nil, err
			}
			out[i] = f
		}
		return out, nil
	case n.Not != nil:
		f, err := s.build(*n.Not)
		if err != nil {
			return nil, err
		}
		return formula.Not{Of: f}, nil
	default:
		return nil, fmt.Errorf("cli: empty formula node")
	}
}

// Build converts d into a formula.Formula, binding d's consts plus the
// distinguished goal constant (of type start, the grammar's start
// symbol) in scope before descending into the constraint tree.
func (d FormulaDoc) Build(start string) (formula.Formula, error) {
	s := newScope(d.Consts)
	s.vars[formula.GoalName] = formula.Goal(start)
	return s.build(d.Constraint)
}

// ConstTypes returns d's declared constants as the name->type map
// elim.Config.ConstTypes needs to give SMT atoms typed variables.
func (d FormulaDoc) ConstTypes() map[string]string {
	out := make(map[string]string, len(d.Consts))
	for _, c := range d.Consts {
		out[c.Name] = c.Type
	}
	return out
}
