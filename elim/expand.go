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

import "github.com/ctreegen/ctreegen/tree"

// expand implements rule 6: pick the leftmost-topmost open leaf of
// s.Tree (Paths()/OpenLeaves() both walk pre-order) and produce one
// successor per grammar alternative for that leaf's nonterminal. A
// tree with no open leaf left and a formula that never simplified to
// a bool const is a dead end: no rule can ever make further progress.
func expand(ctx *tree.Context, cfg Config, s State) ([]State, Outcome, error) {
	leaves := s.Tree.OpenLeaves()
	if len(leaves) == 0 {
		return nil, Stuck, nil
	}
	leaf := leaves[0]
	alts := cfg.Grammar.Alternatives(leaf.Tree.Symbol())
	if len(alts) == 0 {
		return nil, Stuck, nil
	}

	succs := make([]State, 0, len(alts))
	for _, alt := range alts {
		node := tree.Node(ctx, leaf.Tree.Symbol(), expandAlt(ctx, alt))
		succs = append(succs, State{Tree: s.Tree.Replace(leaf.Path, node), Formula: s.Formula})
	}
	return succs, Applied, nil
}
