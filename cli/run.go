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
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ctreegen/ctreegen/elim"
	"github.com/ctreegen/ctreegen/formula"
	"github.com/ctreegen/ctreegen/predicate"
	"github.com/ctreegen/ctreegen/smt"
	"github.com/ctreegen/ctreegen/solve"
	"github.com/ctreegen/ctreegen/tree"
	"github.com/ctreegen/ctreegen/xmldump"
)

// commonFlags is the option surface shared by solve, fuzz and stub:
// grammar and constraint input, solution/time/instantiation caps, the
// weight vector, and the debug dump directory/extension.
type commonFlags struct {
	n          int
	timeout    float64
	free       int
	smtCap     int
	weights    string
	dir        string
	ext        string
	grammar    string
	constraint string
}

func addCommonFlags(fs *flag.FlagSet, cf *commonFlags) {
	fs.IntVar(&cf.n, "n", 1, "number of solutions to emit (-1 = unbounded)")
	fs.Float64Var(&cf.timeout, "t", 0, "wall-clock timeout in seconds (0 = none)")
	fs.IntVar(&cf.free, "f", 0, "free-instantiation cap per elimination step (0 = unbounded)")
	fs.IntVar(&cf.smtCap, "s", 4, "SMT model instantiation cap per block")
	fs.StringVar(&cf.weights, "w", "1,1,1,1,1", "cost weight vector w1,w2,w3,w4,w5")
	fs.StringVar(&cf.dir, "d", "", "output directory (required)")
	fs.StringVar(&cf.ext, "e", ".xml", "debug dump file extension")
	fs.StringVar(&cf.grammar, "grammar", "", "path to the grammar input file")
	fs.StringVar(&cf.constraint, "constraint", "", "path to the formula document file")
}

// Run is the CLI's single entry point, returning an exit code
// instead of calling os.Exit so the dispatch logic is testable end to
// end without a subprocess. stdin is accepted for symmetry with the
// other entry points in the corpus but none of the three commands
// currently read from it; every input is named by flag.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, "usage: ctreegen <solve|fuzz|stub> [options]")
		return ExitUsageError
	}
	switch args[0] {
	case "solve":
		return runSolve(args[1:], stdout, stderr)
	case "fuzz":
		return runFuzz(args[1:], stdout, stderr)
	case "stub":
		return runStub(args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command %q: want solve, fuzz or stub\n", args[0])
		return ExitUsageError
	}
}

func runSolve(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("solve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var cf commonFlags
	addCommonFlags(fs, &cf)
	if err := fs.Parse(args); err != nil {
		return ExitUsageError
	}
	if cf.dir == "" {
		fmt.Fprintln(stderr, "solve: -d DIR is required")
		return ExitUsageError
	}
	if cf.grammar == "" || cf.constraint == "" {
		fmt.Fprintln(stderr, "solve: --grammar and --constraint are required")
		return ExitUsageError
	}

	w, err := parseWeights(cf.weights)
	if err != nil {
		fmt.Fprintf(stderr, "solve: %v\n", err)
		return ExitDataFormat
	}

	g, gerr := readGrammarFile(cf.grammar)
	if gerr != nil {
		fmt.Fprintf(stderr, "solve: %v\n", gerr)
		return gerr.exit
	}

	doc, f, ferr := readFormulaFile(cf.constraint, g.Start)
	if ferr != nil {
		fmt.Fprintf(stderr, "solve: %v\n", ferr)
		return ferr.exit
	}

	ctx := tree.NewContext()
	elimCfg := elim.Config{
		Grammar:               g,
		Backend:               smt.NewReference(),
		Semantic:              predicate.SemRegistry(g.Start, g.Start),
		ConstTypes:            doc.ConstTypes(),
		MaxSMTModels:          cf.smtCap,
		MaxFreeInstantiations: cf.free,
	}
	solveCfg := solve.Config{
		Elim:         elimCfg,
		Schedule:     solve.Constant(w),
		MaxSolutions: cf.n,
	}
	if cf.timeout > 0 {
		solveCfg.Deadline = time.Now().Add(time.Duration(cf.timeout * float64(time.Second)))
	}

	initial := elim.State{Tree: tree.Open(ctx, g.Start), Formula: f}
	solver := solve.New(solveCfg, ctx, initial)

	dump, derr := xmldump.Create(cf.dir, solver.RunID(), cf.ext, strings.HasSuffix(cf.ext, ".zst"))
	if derr != nil {
		fmt.Fprintf(stderr, "solve: %v\n", derr)
		return ExitUsageError
	}
	defer dump.Close()
	root := xmldump.NewNode(initial.Tree.StructuralHash(), solve.Compute(g, initial, solveCfg.KPath, nil, nil), initial.Formula.String(), initial.Tree.String())

	emitted := runLoop(solver, stdout)
	xmldump.Write(dump, root)

	if err := solver.Err(); err != nil {
		fmt.Fprintf(stderr, "solve: %v\n", err)
		return ExitDataFormat
	}
	if emitted == 0 {
		fmt.Fprintln(stderr, "UNSAT")
	}
	return ExitOK
}

func runFuzz(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fuzz", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var cf commonFlags
	addCommonFlags(fs, &cf)
	if err := fs.Parse(args); err != nil {
		return ExitUsageError
	}
	if cf.dir == "" {
		fmt.Fprintln(stderr, "fuzz: -d DIR is required")
		return ExitUsageError
	}
	if cf.grammar == "" {
		fmt.Fprintln(stderr, "fuzz: --grammar is required")
		return ExitUsageError
	}
	w, err := parseWeights(cf.weights)
	if err != nil {
		fmt.Fprintf(stderr, "fuzz: %v\n", err)
		return ExitDataFormat
	}

	g, gerr := readGrammarFile(cf.grammar)
	if gerr != nil {
		fmt.Fprintf(stderr, "fuzz: %v\n", gerr)
		return gerr.exit
	}

	ctx := tree.NewContext()
	elimCfg := elim.Config{
		Grammar:               g,
		Backend:               smt.NewReference(),
		Semantic:              predicate.SemRegistry(g.Start, g.Start),
		MaxSMTModels:          cf.smtCap,
		MaxFreeInstantiations: cf.free,
	}
	solveCfg := solve.Config{
		Elim:         elimCfg,
		Schedule:     solve.Constant(w),
		MaxSolutions: cf.n,
	}
	if cf.timeout > 0 {
		solveCfg.Deadline = time.Now().Add(time.Duration(cf.timeout * float64(time.Second)))
	}

	initial := elim.State{Tree: tree.Open(ctx, g.Start), Formula: formula.BoolConst(true)}
	solver := solve.New(solveCfg, ctx, initial)

	emitted := runLoop(solver, stdout)
	if err := solver.Err(); err != nil {
		fmt.Fprintf(stderr, "fuzz: %v\n", err)
		return ExitDataFormat
	}
	if emitted == 0 {
		fmt.Fprintln(stderr, "UNSAT")
	}
	return ExitOK
}

// runStub loads the grammar and the constraint, checks the constraint
// for well-formedness, and prints its simplified form to stdout,
// without running the scheduler at all. It evaluates no predicate call
// against a tree.
func runStub(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("stub", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var cf commonFlags
	addCommonFlags(fs, &cf)
	if err := fs.Parse(args); err != nil {
		return ExitUsageError
	}
	if cf.dir == "" {
		fmt.Fprintln(stderr, "stub: -d DIR is required")
		return ExitUsageError
	}
	if cf.grammar == "" || cf.constraint == "" {
		fmt.Fprintln(stderr, "stub: --grammar and --constraint are required")
		return ExitUsageError
	}

	g, gerr := readGrammarFile(cf.grammar)
	if gerr != nil {
		fmt.Fprintf(stderr, "stub: %v\n", gerr)
		return gerr.exit
	}
	_, f, ferr := readFormulaFile(cf.constraint, g.Start)
	if ferr != nil {
		fmt.Fprintf(stderr, "stub: %v\n", ferr)
		return ferr.exit
	}
	fmt.Fprintln(stdout, formula.Simplify(f).String())
	return ExitOK
}

// runLoop drains solver, printing one tree image per solution to
// stdout, and returns the emitted count.
func runLoop(solver *solve.Solver, stdout io.Writer) int {
	emitted := 0
	for {
		s, ok := solver.Next()
		if !ok {
			return emitted
		}
		emitted++
		fmt.Fprintln(stdout, s.Tree.StringImage())
	}
}
