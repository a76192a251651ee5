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

package xmldump

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ctreegen/ctreegen/solve"
)

func TestEscapeReplacesControlCharacters(t *testing.T) {
	in := "a\x00b\x0bc\x0cd"
	got := escape(in)
	if strings.ContainsAny(got, "\x00\x0b\x0c") {
		t.Fatalf("escape left a raw control character: %q", got)
	}
	if got != `a\x00b\x0bc\x0cd` {
		t.Fatalf("escape(%q) = %q", in, got)
	}
}

func TestEscapeLeavesOrdinaryTextUntouched(t *testing.T) {
	in := "plain text with no control chars"
	if got := escape(in); got != in {
		t.Fatalf("escape(%q) = %q, want unchanged", in, got)
	}
}

func TestWriteProducesWellFormedNestedDocument(t *testing.T) {
	root := NewNode(0xdeadbeef, solve.Cost{Depth: 1, OpenLeaves: 2}, "forall x in <start>: true", "<start>")
	child := NewNode(0x1, solve.Cost{Depth: 2}, "true", "A")
	root.AddChild(child)

	var buf bytes.Buffer
	if err := Write(&buf, root); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"<state>", "<hash>00000000deadbeef</hash>", "<children>", "<tree>A</tree>"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}
