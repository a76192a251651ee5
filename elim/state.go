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

// Package elim implements the priority-ordered elimination
// transformers: given one solution state, produce its
// successor states by discharging SMT conjuncts, evaluating ready
// semantic and structural predicates, instantiating quantifiers, and,
// failing all of those, expanding one open leaf. The rules run in a
// fixed, explicit pass order over a mutable accumulator, rather than
// through a generic rule-matching engine.
package elim

import (
	"github.com/ctreegen/ctreegen/formula"
	"github.com/ctreegen/ctreegen/tree"
)

// State is one point of the derivation search: a partial tree paired
// with the formula still to be discharged against it.
type State struct {
	Tree    tree.Tree
	Formula formula.Formula
}

// Outcome classifies what Step did with a state.
type Outcome int

const (
	// Applied means Step produced zero or more successor states that
	// replace s; the caller should push Successors and drop s.
	Applied Outcome = iota
	// Pruned means s can never lead to a solution (φ is false, or an
	// SMT block came back unsat/unknown, or a ready predicate failed);
	// the caller drops s and produces nothing.
	Pruned
	// Final means s.Tree is complete and s.Formula has simplified to
	// true: s itself is a solution.
	Final
	// Stuck means no elimination rule applied and s.Tree has no open
	// leaf left to expand either; this is a dead end, treated the same
	// as Pruned by callers.
	Stuck
)
