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

package match

import (
	"sort"

	"github.com/ctreegen/ctreegen/tree"
)

// Product enumerates every combination of one candidate path per key
// of bindings, as a Binding. Used when an elimination step must settle
// more than one bound variable at once and each variable has several
// independently discovered candidate paths — the Go counterpart of the
// original's dict-of-lists-to-list-of-dicts helper.
//
// Keys are visited in sorted order so the result is deterministic
// regardless of map iteration order.
func Product(bindings map[string][]tree.Path) []Binding {
	keys := make([]string, 0, len(bindings))
	for k := range bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	results := []Binding{{}}
	for _, k := range keys {
		candidates := bindings[k]
		if len(candidates) == 0 {
			return nil
		}
		var next []Binding
		for _, r := range results {
			for _, c := range candidates {
				b := make(Binding, len(r)+1)
				for kk, vv := range r {
					b[kk] = vv
				}
				b[k] = c
				next = append(next, b)
			}
		}
		results = next
	}
	return results
}
