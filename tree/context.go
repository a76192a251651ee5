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

// Context owns the monotonic node-identity counter for one top-level
// solver invocation, threaded explicitly so tests (and concurrent
// solver instances, each owning their own Context) can reset it
// deterministically instead of sharing global mutable state.
type Context struct {
	next int64
}

// NewContext returns a Context whose first-assigned identity is 1.
func NewContext() *Context {
	return &Context{}
}

func (c *Context) nextID() int64 {
	c.next++
	return c.next
}
