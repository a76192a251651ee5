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

package cli

import (
	"fmt"
	"strings"

	"github.com/ctreegen/ctreegen/gram"
)

// loadGrammar accepts either form of the grammar input: a YAML
// document (recognized, once whitespace is trimmed, by a leading "{",
// "start:" or "rules:", or by a line starting with "rules:") or the
// flat BNF surface syntax, otherwise.
func loadGrammar(src []byte) (*gram.Grammar, error) {
	trimmed := strings.TrimSpace(string(src))
	if looksLikeYAML(trimmed) {
		g, err := gram.FromYAML(src)
		if err != nil {
			return nil, fmt.Errorf("cli: %w", err)
		}
		return g, nil
	}
	g, err := gram.ParseBNF(trimmed)
	if err != nil {
		return nil, fmt.Errorf("cli: %w", err)
	}
	return g, nil
}

func looksLikeYAML(trimmed string) bool {
	return strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "start:") || strings.Contains(trimmed, "\nrules:") || strings.HasPrefix(trimmed, "rules:")
}
