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

package gram

import "testing"

const assignmentsBNF = `
<start> ::= <stmt>
<stmt> ::= <assgn> ";" <stmt> | <assgn>
<assgn> ::= <var> " := " <rhs>
<rhs> ::= <var> | <digit>
<var> ::= "a" | "b" | "c"
<digit> ::= "0" | "1"
`

func TestParseBNF(t *testing.T) {
	g, err := ParseBNF(assignmentsBNF)
	if err != nil {
		t.Fatalf("ParseBNF: %v", err)
	}
	if g.Start != "<start>" {
		t.Fatalf("Start = %q, want <start>", g.Start)
	}
	if len(g.Alternatives("<assgn>")) != 1 {
		t.Fatalf("expected exactly one <assgn> alternative")
	}
	if len(g.Alternatives("<stmt>")) != 2 {
		t.Fatalf("expected two <stmt> alternatives")
	}
}

func TestReachable(t *testing.T) {
	g, err := ParseBNF(assignmentsBNF)
	if err != nil {
		t.Fatalf("ParseBNF: %v", err)
	}
	if !g.Reachable("<start>", "<assgn>") {
		t.Fatalf("expected <start> to reach <assgn>")
	}
	if !g.Reachable("<assgn>", "<assgn>") {
		t.Fatalf("reflexive reachability should hold")
	}
	if g.Reachable("<digit>", "<assgn>") {
		t.Fatalf("<digit> should not reach <assgn>")
	}
}

func TestValidateRejectsUndefinedNonterminal(t *testing.T) {
	_, err := ParseBNF("<start> ::= <missing>\n")
	if err == nil {
		t.Fatalf("expected validation error for undefined nonterminal")
	}
}
