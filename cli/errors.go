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

// Package cli implements the solve/fuzz/stub command surface: a thin
// consumer of solve, gram and the YAML-based formula loader. The option
// parsing and validation rules it enforces (weight-vector shape, -d
// required) are part of the external interface contract and are tested
// here.
package cli

// Exit codes: 0 success, 2 usage, a distinct code for data-
// format errors (weight-vector shape/type, malformed grammar or
// formula doc).
const (
	ExitOK         = 0
	ExitUsageError = 2
	ExitDataFormat = 3
)
