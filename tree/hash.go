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

package tree

import (
	"encoding/binary"

	"github.com/dchest/siphash"
)

const (
	hashK0, hashK1 = 0, 1
)

// StructuralHash hashes t's content only (labels and shape); it agrees
// for any two structurally Equal trees regardless of their identities.
// Used by search deduplication (same tree reached by different paths
// through the queue should collapse).
func (t Tree) StructuralHash() uint64 {
	var buf []byte
	buf = t.appendHashBytes(buf, false)
	return siphash.Hash(hashK0, hashK1, buf)
}

// IdentityHash hashes t's content and node identities, so two
// structurally-equal trees built through different node allocations
// hash differently. Callers use it when "the same tree" must mean the
// same object, not just an equal one.
func (t Tree) IdentityHash() uint64 {
	var buf []byte
	buf = t.appendHashBytes(buf, true)
	return siphash.Hash(hashK0, hashK1, buf)
}

func (t Tree) appendHashBytes(buf []byte, withIdentity bool) []byte {
	if t.label.IsTerminal {
		buf = append(buf, 'T')
	} else {
		buf = append(buf, 'N')
	}
	buf = append(buf, t.label.Symbol...)
	buf = append(buf, 0)
	if withIdentity {
		var idbuf [8]byte
		binary.LittleEndian.PutUint64(idbuf[:], uint64(t.id))
		buf = append(buf, idbuf[:]...)
	}
	if t.children == nil {
		buf = append(buf, '-')
		return buf
	}
	buf = append(buf, '(')
	for _, c := range t.children {
		buf = c.appendHashBytes(buf, withIdentity)
	}
	buf = append(buf, ')')
	return buf
}
