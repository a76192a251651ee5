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

package predicate

// SemRegistry is the built-in semantic-predicate name table, analogous
// to the original's module-level *_PREDICATE constants. octalStart and
// decimalStart parameterize octal_to_decimal's reparse targets; callers
// assembling a registry for a specific grammar supply them.
func SemRegistry(octalStart, decimalStart string) map[string]Func {
	return map[string]Func{
		"count":            Count,
		"crop":             Crop,
		"ljust":            Just(true, false),
		"ljust_crop":       Just(true, true),
		"rjust":            Just(false, false),
		"rjust_crop":       Just(false, true),
		"octal_to_decimal": OctalToDecimal(octalStart, decimalStart),
	}
}

// BindsTree reports whether name's result, when it substitutes, owns
// and may replace its own tree argument outright (rather than just
// proposing a value for an unresolved constant argument) — count's
// in_tree argument and the tree argument of the crop/just family are
// both owned this way; octal_to_decimal never replaces a whole
// in-scope tree argument, only an unresolved sibling.
func BindsTree(name string) bool {
	switch name {
	case "count", "crop", "ljust", "ljust_crop", "rjust", "rjust_crop":
		return true
	default:
		return false
	}
}

// StructNames is the built-in structural-predicate name table; each
// entry's arity is fixed at 2 except level, which is 3 (kind, p, q).
var StructNames = map[string]int{
	"before":             2,
	"after":              2,
	"same_position":      2,
	"different_position": 2,
	"level":              3,
}
