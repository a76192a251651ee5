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

package elim

import (
	"github.com/ctreegen/ctreegen/gram"
	"github.com/ctreegen/ctreegen/predicate"
	"github.com/ctreegen/ctreegen/smt"
)

// Config bundles the read-only collaborators every elimination rule
// needs. The structural-predicate family is fixed (predicate.StructNames)
// and needs no registry entry; Semantic supplies the built-in and any
// format-specific semantic predicates by name (predicate.SemRegistry
// plus whatever the caller layers in).
type Config struct {
	Grammar  *gram.Grammar
	Backend  smt.Backend
	Semantic map[string]predicate.Func

	// ConstTypes maps a declared free constant's name to its nonterminal
	// (or formula.NumType) type. SMT atoms only carry variable names, not
	// types, so the SMT-block rule consults this to build smt.VarType
	// when asking the backend for a model.
	ConstTypes map[string]string

	// MaxSMTModels bounds how many distinct models Instantiate requests
	// per SMT block, the max_smt_instantiations cap.
	MaxSMTModels int

	// MaxFreeInstantiations is the "-f FREE" instantiation cap: it bounds
	// how many current matches rule 4 instantiates and how many
	// successor states rule 5 produces in one call; 0 means unbounded.
	MaxFreeInstantiations int
}
