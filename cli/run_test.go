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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return p
}

func TestRunSolveRequiresOutputDirectory(t *testing.T) {
	var out, errs bytes.Buffer
	code := Run([]string{"solve", "--grammar", "g", "--constraint", "c"}, nil, &out, &errs)
	if code != ExitUsageError {
		t.Fatalf("code = %d, want ExitUsageError", code)
	}
}

func TestRunSolveRejectsMalformedWeightVector(t *testing.T) {
	dir := t.TempDir()
	gpath := writeTemp(t, dir, "g.bnf", "<start> ::= \"a\"\n")
	cpath := writeTemp(t, dir, "c.yaml", "constraint:\n  bool: true\n")

	var out, errs bytes.Buffer
	code := Run([]string{"solve", "-d", dir, "-w", "1,2,3", "--grammar", gpath, "--constraint", cpath}, nil, &out, &errs)
	if code != ExitDataFormat {
		t.Fatalf("code = %d, want ExitDataFormat, stderr=%s", code, errs.String())
	}
}

func TestRunSolveRejectsNonNumericWeight(t *testing.T) {
	dir := t.TempDir()
	gpath := writeTemp(t, dir, "g.bnf", "<start> ::= \"a\"\n")
	cpath := writeTemp(t, dir, "c.yaml", "constraint:\n  bool: true\n")

	var out, errs bytes.Buffer
	code := Run([]string{"solve", "-d", dir, "-w", "1,x,3,4,5", "--grammar", gpath, "--constraint", cpath}, nil, &out, &errs)
	if code != ExitDataFormat {
		t.Fatalf("code = %d, want ExitDataFormat", code)
	}
}

func TestRunSolveEmitsOneSolutionForTrivialGrammar(t *testing.T) {
	dir := t.TempDir()
	gpath := writeTemp(t, dir, "g.bnf", "<start> ::= \"a\"\n")
	cpath := writeTemp(t, dir, "c.yaml", "constraint:\n  bool: true\n")

	var out, errs bytes.Buffer
	code := Run([]string{"solve", "-d", dir, "--grammar", gpath, "--constraint", cpath}, nil, &out, &errs)
	if code != ExitOK {
		t.Fatalf("code = %d, want ExitOK, stderr=%s", code, errs.String())
	}
	if strings.TrimSpace(out.String()) == "" {
		t.Fatalf("expected a solution on stdout, got none")
	}
	if errs.String() != "" {
		t.Fatalf("expected no stderr output, got %q", errs.String())
	}
}

func TestRunSolveReportsUnsatOnStderr(t *testing.T) {
	dir := t.TempDir()
	gpath := writeTemp(t, dir, "g.bnf", "<start> ::= \"a\"\n")
	cpath := writeTemp(t, dir, "c.yaml", "constraint:\n  bool: false\n")

	var out, errs bytes.Buffer
	code := Run([]string{"solve", "-d", dir, "--grammar", gpath, "--constraint", cpath}, nil, &out, &errs)
	if code != ExitOK {
		t.Fatalf("code = %d, want ExitOK (UNSAT is not an error exit)", code)
	}
	if strings.TrimSpace(out.String()) != "" {
		t.Fatalf("expected no solutions on stdout, got %q", out.String())
	}
	if !strings.Contains(errs.String(), "UNSAT") {
		t.Fatalf("expected UNSAT on stderr, got %q", errs.String())
	}
}

func TestRunUnknownCommandIsUsageError(t *testing.T) {
	var out, errs bytes.Buffer
	code := Run([]string{"bogus"}, nil, &out, &errs)
	if code != ExitUsageError {
		t.Fatalf("code = %d, want ExitUsageError", code)
	}
}

func TestRunFuzzProducesATreeWithinCap(t *testing.T) {
	dir := t.TempDir()
	gpath := writeTemp(t, dir, "g.bnf", "<start> ::= \"a\" | \"b\"\n")

	var out, errs bytes.Buffer
	code := Run([]string{"fuzz", "-d", dir, "-n", "2", "--grammar", gpath}, nil, &out, &errs)
	if code != ExitOK {
		t.Fatalf("code = %d, want ExitOK, stderr=%s", code, errs.String())
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 solutions, got %d: %q", len(lines), out.String())
	}
}
