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

// Package solve implements the priority-queue scheduler: the
// cost record, phased weight vectors, deduplication, and an on-demand
// solution iterator driving elim.Step to a fixed point per state.
package solve

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ctreegen/ctreegen/elim"
	"github.com/ctreegen/ctreegen/tree"
)

// Config bundles everything one solver invocation needs beyond the
// initial state: the grammar, elim's rule collaborators, the cost
// model's k-path window, the weight schedule, and the termination and
// dedup knobs exposed by the CLI.
type Config struct {
	Elim elim.Config

	Schedule Schedule

	// KPath is the k-path window length for the coverage cost
	// component; 0 disables it (KPathDeficit and GlobalKPathDeficit
	// stay zero regardless of weight).
	KPath int
	// KPathUniverseBudget bounds the per-nonterminal revisit count used
	// to enumerate the grammar's length-k path universe once per run;
	// 0 picks a default.
	KPathUniverseBudget int

	// UniqueTreesInQueue enables queue dedup: a state is dropped before
	// enqueue if another queued-or-emitted state shares (structural
	// hash of T, string image of normalized φ).
	UniqueTreesInQueue bool

	// MaxSolutions bounds how many solutions Next ever returns; -1 means
	// unbounded (`-n -1`).
	MaxSolutions int
	// Deadline, if non-zero, stops the run (returning whatever solutions
	// were already found) once time.Now() passes it; this is resource
	// exhaustion, not an error.
	Deadline time.Time

	Logger *log.Logger
}

// Solver drives one top-level invocation's search from an initial
// state to a stream of solutions, exposed as a stepwise next/stop
// iterator rather than a callback.
type Solver struct {
	cfg   Config
	ctx   *tree.Context
	q     queue
	runID uuid.UUID
	step  int
	seen  map[dedupKey]bool

	universe      map[string]bool
	globalCovered map[string]bool

	emitted int
	stopped bool
	err     error
}

type dedupKey struct {
	structHash uint64
	formula    string
}

// New starts a solver from the initial state. ctx is the tree identity
// context the initial state's tree was built with; every tree node
// elim produces during this run is minted from the same ctx, keeping
// node identities unique across the whole search: one monotonic
// identity counter per invocation rather than a process-wide global.
// cfg.Logger, if nil, discards
// its output.
func New(cfg Config, ctx *tree.Context, initial elim.State) *Solver {
	if cfg.Logger == nil {
		cfg.Logger = log.New(discard{}, "", 0)
	}
	if cfg.MaxSolutions == 0 {
		cfg.MaxSolutions = -1
	}
	s := &Solver{
		cfg:   cfg,
		ctx:   ctx,
		runID: uuid.New(),
		seen:  map[dedupKey]bool{},
	}
	if cfg.KPath > 0 {
		budget := cfg.KPathUniverseBudget
		if budget <= 0 {
			budget = 4
		}
		s.universe = grammarKPaths(cfg.Elim.Grammar, cfg.KPath, budget)
		s.globalCovered = map[string]bool{}
	}
	s.enqueue(initial)
	s.cfg.Logger.Printf("solve: run %s started", s.runID)
	return s
}

// RunID returns the UUID identifying this invocation, used to namespace
// xmldump output and log lines.
func (s *Solver) RunID() uuid.UUID { return s.runID }

func (s *Solver) enqueue(state elim.State) {
	if s.cfg.UniqueTreesInQueue {
		key := dedupKey{structHash: state.Tree.StructuralHash(), formula: state.Formula.String()}
		if s.seen[key] {
			return
		}
		s.seen[key] = true
	}
	cost := Compute(s.cfg.Elim.Grammar, state, s.cfg.KPath, s.universe, s.globalCovered)
	w := s.cfg.Schedule.At(s.step)
	s.q.push(state, cost, cost.Weighted(w))
}

// Next advances the search until it produces one more solution, the
// queue empties, the solution cap is reached, or the deadline passes.
// It returns (solution state, true) on a solution, or (zero, false)
// when the run is over — the caller distinguishes UNSAT (zero
// emissions, queue empty) from "done because the cap/deadline was hit"
// by calling Emitted after Next returns false.
func (s *Solver) Next() (elim.State, bool) {
	if s.stopped {
		return elim.State{}, false
	}
	if s.cfg.MaxSolutions >= 0 && s.emitted >= s.cfg.MaxSolutions {
		s.stopped = true
		return elim.State{}, false
	}
	for {
		if !s.cfg.Deadline.IsZero() && !time.Now().Before(s.cfg.Deadline) {
			s.cfg.Logger.Printf("solve: run %s deadline reached after %d steps, %d emitted", s.runID, s.step, s.emitted)
			s.stopped = true
			return elim.State{}, false
		}
		it, ok := s.q.pop()
		if !ok {
			s.cfg.Logger.Printf("solve: run %s queue exhausted after %d steps, %d emitted", s.runID, s.step, s.emitted)
			s.stopped = true
			return elim.State{}, false
		}
		s.step++
		if s.universe != nil {
			mergeInto(s.globalCovered, kpaths(it.state.Tree, s.cfg.KPath))
		}

		succs, outcome, err := elim.Step(s.ctx, s.cfg.Elim, it.state)
		if err != nil {
			// A class-1 specification error (e.g. an unrecognized
			// predicate name) propagates to the caller via Err; it does
			// not abort the process.
			s.err = err
			s.stopped = true
			return elim.State{}, false
		}
		switch outcome {
		case elim.Final:
			s.emitted++
			return succs[0], true
		case elim.Applied:
			for _, succ := range succs {
				s.enqueue(succ)
			}
		case elim.Pruned, elim.Stuck:
			// dropped, nothing to requeue
		}
	}
}

// Stop ends the run early; subsequent Next calls return (zero, false).
func (s *Solver) Stop() { s.stopped = true }

// Err returns the specification error, if any, that ended the run. A
// nil Err after Next returns false with Emitted() == 0 means UNSAT, not
// an error.
func (s *Solver) Err() error { return s.err }

// Emitted reports how many solutions Next has returned so far.
func (s *Solver) Emitted() int { return s.emitted }

// Steps reports how many states Next has popped and processed so far.
func (s *Solver) Steps() int { return s.step }

// QueueLen reports the current queue size, mostly for xmldump/tests.
func (s *Solver) QueueLen() int { return s.q.len() }

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
