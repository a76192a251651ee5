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

import "fmt"

// Weights is one weight vector over Cost's five components, plus an
// optional sixth (GlobalKPathDeficit) activated only when the caller
// supplies exactly 6 values.
type Weights struct {
	Depth              float64
	OpenLeaves         float64
	ConjunctCount      float64
	KPathDeficit       float64
	VacuousQuants      float64
	GlobalKPathDeficit float64
	hasGlobal          bool
}

// NewWeights builds a Weights from a flat slice of length 5 or 6, the
// shape the CLI's `-w` flag parses into.
func NewWeights(v []float64) (Weights, error) {
	switch len(v) {
	case 5:
		return Weights{Depth: v[0], OpenLeaves: v[1], ConjunctCount: v[2], KPathDeficit: v[3], VacuousQuants: v[4]}, nil
	case 6:
		return Weights{Depth: v[0], OpenLeaves: v[1], ConjunctCount: v[2], KPathDeficit: v[3], VacuousQuants: v[4], GlobalKPathDeficit: v[5], hasGlobal: true}, nil
	default:
		return Weights{}, fmt.Errorf("solve: weight vector must have length 5 or 6, got %d", len(v))
	}
}

// Phase pairs one Weights with the number of successive scheduler steps
// it governs before the schedule advances to the next phase.
type Phase struct {
	Weights Weights
	Steps   int
}

// Schedule is a cyclic sequence of phases: early phases typically favor
// depth reduction (finishing trees sooner), later phases favor k-path
// coverage. A Schedule of one phase with Steps <=
// 0 behaves as a single constant weight vector.
type Schedule []Phase

// At returns the weights governing the step'th pop from the queue
// (step is 0-based and counts across the whole run, cycling through
// the schedule once every phase's Steps have elapsed).
func (s Schedule) At(step int) Weights {
	if len(s) == 0 {
		return Weights{}
	}
	total := 0
	for _, p := range s {
		if p.Steps > 0 {
			total += p.Steps
		} else {
			total++
		}
	}
	if total == 0 {
		return s[0].Weights
	}
	pos := step % total
	for _, p := range s {
		n := p.Steps
		if n <= 0 {
			n = 1
		}
		if pos < n {
			return p.Weights
		}
		pos -= n
	}
	return s[len(s)-1].Weights
}

// Constant builds a single-phase Schedule from one Weights; the CLI
// always runs with such a schedule.
func Constant(w Weights) Schedule {
	return Schedule{{Weights: w, Steps: 0}}
}
