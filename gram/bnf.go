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

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ParseBNF reads the minimal surface syntax of the external interface:
// one production per line, "<nt> ::= alt | alt | ...", nonterminals in
// angle brackets, terminals as double-quoted literals or bare
// characters. This is intentionally narrow — no EBNF sugar, no
// precedence — the full concrete-syntax grammar parser is an external
// collaborator; this is only enough to drive this module's own CLI and
// tests.
func ParseBNF(src string) (*Grammar, error) {
	rules := make(map[string][]Alt)
	var order []string
	var start string

	lines := strings.Split(src, "\n")
	for lineno, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, "::=")
		if idx < 0 {
			return nil, fmt.Errorf("gram.ParseBNF: line %d: missing '::='", lineno+1)
		}
		lhs := strings.TrimSpace(line[:idx])
		nt, err := parseNonterminal(lhs)
		if err != nil {
			return nil, fmt.Errorf("gram.ParseBNF: line %d: %w", lineno+1, err)
		}
		if start == "" {
			start = nt
		}
		if _, seen := rules[nt]; !seen {
			order = append(order, nt)
		}
		rhs := line[idx+len("::="):]
		for _, altSrc := range strings.Split(rhs, "|") {
			alt, err := parseAlt(altSrc)
			if err != nil {
				return nil, fmt.Errorf("gram.ParseBNF: line %d: %w", lineno+1, err)
			}
			rules[nt] = append(rules[nt], alt)
		}
	}
	if start == "" {
		return nil, fmt.Errorf("gram.ParseBNF: empty grammar")
	}
	if _, ok := rules["<start>"]; ok {
		start = "<start>"
	}
	g := New(start, rules, order)
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func parseNonterminal(s string) (string, error) {
	if !strings.HasPrefix(s, "<") || !strings.HasSuffix(s, ">") {
		return "", fmt.Errorf("expected <nonterminal>, got %q", s)
	}
	return s, nil
}

func parseAlt(s string) (Alt, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Alt{}, nil
	}
	var alt Alt
	i := 0
	for i < len(s) {
		switch {
		case s[i] == ' ' || s[i] == '\t':
			i++
		case s[i] == '<':
			j := strings.IndexByte(s[i:], '>')
			if j < 0 {
				return nil, fmt.Errorf("unterminated nonterminal in %q", s)
			}
			alt = append(alt, NT(s[i:i+j+1]))
			i += j + 1
		case s[i] == '"':
			j := strings.IndexByte(s[i+1:], '"')
			if j < 0 {
				return nil, fmt.Errorf("unterminated terminal literal in %q", s)
			}
			alt = append(alt, T(s[i+1:i+1+j]))
			i += j + 2
		default:
			// bare run of non-space characters is a single-char
			// terminal sequence, one Symbol per rune, matching the
			// "a..z"/"0..9" shorthand used informally in grammars.
			_, size := utf8.DecodeRuneInString(s[i:])
			alt = append(alt, T(s[i:i+size]))
			i += size
		}
	}
	return alt, nil
}
