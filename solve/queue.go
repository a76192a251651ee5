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

package solve

import (
	"github.com/ctreegen/ctreegen/elim"
	"github.com/ctreegen/ctreegen/heap"
)

// item is one queued solution state together with the cost it was
// given on insertion: the phase active at push time, not at pop time,
// decides its weighted rank, so a later phase change never reorders
// states already queued.
type item struct {
	state    elim.State
	cost     Cost
	weighted float64
	seq      int64 // insertion order, breaks ties deterministically (FIFO among equal cost)
}

func itemLess(a, b item) bool {
	if a.weighted != b.weighted {
		return a.weighted < b.weighted
	}
	return a.seq < b.seq
}

// queue is a min-priority queue over item, backed by the generic
// slice heap.
type queue struct {
	items   []item
	nextSeq int64
}

func (q *queue) push(state elim.State, cost Cost, weighted float64) {
	heap.PushSlice(&q.items, item{state: state, cost: cost, weighted: weighted, seq: q.nextSeq}, itemLess)
	q.nextSeq++
}

func (q *queue) pop() (item, bool) {
	if len(q.items) == 0 {
		return item{}, false
	}
	return heap.PopSlice(&q.items, itemLess), true
}

func (q *queue) len() int { return len(q.items) }
