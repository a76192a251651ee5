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
	"github.com/ctreegen/ctreegen/tree"
)

// expandAlt builds one open/terminal child per symbol of alt, the same
// way insert.expandChildren and gram.ParseExact's parseNT do: an
// epsilon alternative becomes a single empty-text terminal leaf, since
// tree.Node requires at least one child.
func expandAlt(ctx *tree.Context, alt gram.Alt) []tree.Tree {
	if len(alt) == 0 {
		return []tree.Tree{tree.Leaf(ctx, "")}
	}
	children := make([]tree.Tree, len(alt))
	for i, sym := range alt {
		if sym.IsTerminal {
			children[i] = tree.Leaf(ctx, sym.Name)
		} else {
			children[i] = tree.Open(ctx, sym.Name)
		}
	}
	return children
}
