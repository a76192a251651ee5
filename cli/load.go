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
	"os"

	"github.com/ctreegen/ctreegen/formula"
	"github.com/ctreegen/ctreegen/gram"
)

// exitErr pairs an error message with the exit code it should produce,
// distinguishing a missing/unreadable file (USAGE_ERROR) from content
// that parses but is malformed (DATA_FORMAT_ERROR).
type exitErr struct {
	msg  string
	exit int
}

func (e *exitErr) Error() string { return e.msg }

func usageErr(format string, args ...interface{}) *exitErr {
	return &exitErr{msg: fmt.Sprintf(format, args...), exit: ExitUsageError}
}

func dataErr(format string, args ...interface{}) *exitErr {
	return &exitErr{msg: fmt.Sprintf(format, args...), exit: ExitDataFormat}
}

// readGrammarFile reads and parses the grammar named by path.
func readGrammarFile(path string) (*gram.Grammar, *exitErr) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, usageErr("reading grammar: %v", err)
	}
	g, err := loadGrammar(src)
	if err != nil {
		return nil, dataErr("%v", err)
	}
	return g, nil
}

// readFormulaFile reads and parses the formula document named by
// path, building it into a formula.Formula against start and checking
// it for well-formedness.
func readFormulaFile(path, start string) (FormulaDoc, formula.Formula, *exitErr) {
	src, err := os.ReadFile(path)
	if err != nil {
		return FormulaDoc{}, nil, usageErr("reading constraint: %v", err)
	}
	doc, err := LoadFormulaDoc(src)
	if err != nil {
		return FormulaDoc{}, nil, dataErr("%v", err)
	}
	f, err := doc.Build(start)
	if err != nil {
		return FormulaDoc{}, nil, dataErr("%v", err)
	}
	if err := formula.Check(f, formula.Goal(start)); err != nil {
		return FormulaDoc{}, nil, dataErr("%v", err)
	}
	return doc, f, nil
}
