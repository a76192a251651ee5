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

// Package predicate implements the structural and semantic predicate
// contracts: pure path functions for the structural family, and a
// three-valued true/false/unready/substitute contract for the semantic
// family, plus the built-in predicate library.
package predicate

import (
	"fmt"

	"github.com/ctreegen/ctreegen/formula"
	"github.com/ctreegen/ctreegen/gram"
	"github.com/ctreegen/ctreegen/tree"
)

// Outcome is the three-valued (plus substitution) result of evaluating
// a semantic predicate.
type Outcome int

const (
	// Unready means the arguments are not yet concrete enough; the
	// elimination transformer leaves the atom in place for re-evaluation
	// after further expansion.
	Unready Outcome = iota
	// Decided means the predicate has settled to True or False.
	Decided
	// Substitute means applying Subst to the state decides the formula
	// to true.
	Substitute
)

// Substitution is one proposed replacement: Target names the variable
// or embedded-tree term the predicate is replacing (its own argument,
// by position), and Replacement is the new tree.
type Substitution struct {
	Target      formula.Term
	Replacement tree.Tree
}

// Result is the full outcome of a semantic-predicate evaluation.
type Result struct {
	Outcome Outcome
	Value   bool // meaningful only when Outcome == Decided
	Subst   []Substitution
}

func True() Result     { return Result{Outcome: Decided, Value: true} }
func False() Result    { return Result{Outcome: Decided, Value: false} }
func NotReady() Result { return Result{Outcome: Unready} }
func SubstituteOne(target formula.Term, replacement tree.Tree) Result {
	return Result{Outcome: Substitute, Subst: []Substitution{{Target: target, Replacement: replacement}}}
}

// Func is the signature every built-in semantic predicate implements.
// args mirrors the SemPred atom's Args: a Term is either a variable not
// yet bound to anything concrete (treated as the unresolved output
// slot), a tree.Tree embedded directly (a known value), or a literal
// (a constant like a nonterminal name). ctx mints identities for any
// fresh tree nodes the predicate constructs; g is consulted for
// reachability and for reparsing a proposed string into a tree.
type Func func(ctx *tree.Context, g *gram.Grammar, args []formula.Term) (Result, error)

// Arity mismatches and unsupported argument shapes are specification
// errors, not internal panics, since they stem from a
// malformed predicate call in the formula.
type ArityError struct {
	Name string
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("predicate: %s expects %d argument(s), got %d", e.Name, e.Want, e.Got)
}

func argTree(t formula.Term) (tree.Tree, bool) {
	if t.T != nil {
		return *t.T, true
	}
	return tree.Tree{}, false
}
