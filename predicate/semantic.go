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

package predicate

import (
	"fmt"
	"strconv"

	"github.com/ctreegen/ctreegen/formula"
	"github.com/ctreegen/ctreegen/gram"
	"github.com/ctreegen/ctreegen/insert"
	"github.com/ctreegen/ctreegen/tree"
)

// maxCountSearch bounds the worklist used to find an insertion that
// settles count's target exactly, so a pathological grammar cannot
// hang the solver.
const maxCountSearch = 4096

// Count implements count(t, nt, n): number of nodes of t labeled nt.
// An exhausted insertion search decides false; use CountUnreadyOnExhaustion
// for the alternative reading.
func Count(ctx *tree.Context, g *gram.Grammar, args []formula.Term) (Result, error) {
	return countPred(ctx, g, args, false)
}

// CountUnreadyOnExhaustion is Count except that an insertion search that
// runs out of candidates reports unready instead of false, keeping the
// atom alive for re-evaluation after unrelated expansion. Callers that
// want this reading register it in place of Count.
func CountUnreadyOnExhaustion(ctx *tree.Context, g *gram.Grammar, args []formula.Term) (Result, error) {
	return countPred(ctx, g, args, true)
}

func countPred(ctx *tree.Context, g *gram.Grammar, args []formula.Term, exhaustedUnready bool) (Result, error) {
	if len(args) != 3 {
		return Result{}, &ArityError{Name: "count", Want: 3, Got: len(args)}
	}
	inTree, ok := argTree(args[0])
	if !ok {
		return NotReady(), nil
	}
	if args[1].Lit == nil {
		return Result{}, fmt.Errorf("predicate: count's second argument must be a nonterminal literal")
	}
	needle := *args[1].Lit

	occurrences := countOccurrences(inTree, needle)
	morePossible := moreNeedlesPossible(g, inTree, needle)

	if args[2].V != nil {
		if morePossible {
			return NotReady(), nil
		}
		return SubstituteOne(args[2], numTree(ctx, occurrences)), nil
	}

	targetTree, ok := argTree(args[2])
	if !ok {
		return NotReady(), nil
	}
	target, err := strconv.Atoi(targetTree.StringImage())
	if err != nil {
		return Result{}, fmt.Errorf("predicate: count's target is not numeric: %w", err)
	}

	if occurrences > target {
		return False(), nil
	}
	if !morePossible {
		return boolResult(occurrences == target), nil
	}
	if occurrences == target {
		return NotReady(), nil
	}
	return searchInsertion(ctx, g, inTree, needle, target, args[0], exhaustedUnready)
}

func countOccurrences(t tree.Tree, needle string) int {
	n := 0
	for _, pt := range t.Paths() {
		if pt.Tree.Symbol() == needle {
			n++
		}
	}
	return n
}

func moreNeedlesPossible(g *gram.Grammar, t tree.Tree, needle string) bool {
	for _, ol := range t.OpenLeaves() {
		if ol.Tree.Symbol() == needle || g.Reachable(ol.Tree.Symbol(), needle) {
			return true
		}
	}
	return false
}

func numTree(ctx *tree.Context, n int) tree.Tree {
	return tree.Leaf(ctx, strconv.Itoa(n))
}

func boolResult(v bool) Result {
	if v {
		return True()
	}
	return False()
}

func searchInsertion(ctx *tree.Context, g *gram.Grammar, start tree.Tree, needle string, target int, origTerm formula.Term, exhaustedUnready bool) (Result, error) {
	type item struct{ t tree.Tree }
	worklist := []item{}
	seen := map[uint64]bool{}
	for _, cand := range insert.Insert(ctx, g, start, needle) {
		if countOccurrences(cand, needle) <= target {
			worklist = append(worklist, item{cand})
			seen[cand.StructuralHash()] = true
		}
	}

	checked := 0
	for len(worklist) > 0 && checked < maxCountSearch {
		cur := worklist[0]
		worklist = worklist[1:]
		checked++

		n := countOccurrences(cur.t, needle)
		more := moreNeedlesPossible(g, cur.t, needle)
		if !more && n == target {
			return SubstituteOne(origTerm, cur.t), nil
		}
		if n < target {
			for _, next := range insert.Insert(ctx, g, cur.t, needle) {
				if countOccurrences(next, needle) > target {
					continue
				}
				h := next.StructuralHash()
				if seen[h] {
					continue
				}
				seen[h] = true
				worklist = append(worklist, item{next})
			}
		}
	}
	// Exhausted insertion search without settling the target exactly
	// decides false, unless the caller registered the
	// unready-on-exhaustion reading.
	if exhaustedUnready {
		return NotReady(), nil
	}
	return False(), nil
}

// Crop implements crop(t, w): constrains t's string image to width w,
// possibly reparsing a truncated prefix.
func Crop(ctx *tree.Context, g *gram.Grammar, args []formula.Term) (Result, error) {
	if len(args) != 2 {
		return Result{}, &ArityError{Name: "crop", Want: 2, Got: len(args)}
	}
	t, ok := argTree(args[0])
	if !ok || !t.IsComplete() {
		return NotReady(), nil
	}
	unparsed := t.StringImage()

	if args[1].V != nil {
		return SubstituteOne(args[1], numTree(ctx, len(unparsed))), nil
	}
	wTree, ok := argTree(args[1])
	if !ok || !wTree.IsComplete() {
		return NotReady(), nil
	}
	width, err := strconv.Atoi(wTree.StringImage())
	if err != nil {
		return Result{}, fmt.Errorf("predicate: crop's width is not numeric: %w", err)
	}
	if len(unparsed) <= width {
		return True(), nil
	}
	parsed, ok := g.ParseExact(ctx, t.Symbol(), unparsed[:width])
	if !ok {
		return False(), nil
	}
	return SubstituteOne(args[0], parsed), nil
}

// Just implements ljust/rjust/ljust_crop/rjust_crop(t, w, fill).
func Just(ljust, crop bool) Func {
	return func(ctx *tree.Context, g *gram.Grammar, args []formula.Term) (Result, error) {
		name := justName(ljust, crop)
		if len(args) != 3 {
			return Result{}, &ArityError{Name: name, Want: 3, Got: len(args)}
		}
		t, ok := argTree(args[0])
		if !ok || !t.IsComplete() {
			return NotReady(), nil
		}
		unparsed := t.StringImage()

		if args[1].V != nil {
			return SubstituteOne(args[1], numTree(ctx, len(unparsed))), nil
		}
		wTree, ok := argTree(args[1])
		if !ok || !wTree.IsComplete() {
			return NotReady(), nil
		}
		width, err := strconv.Atoi(wTree.StringImage())
		if err != nil {
			return Result{}, fmt.Errorf("predicate: %s's width is not numeric: %w", name, err)
		}

		fill, err := fillChar(args[2])
		if err != nil {
			return Result{}, err
		}

		if len(unparsed) == width {
			return True(), nil
		}
		if !crop && len(unparsed) > width {
			return False(), nil
		}

		var out string
		if ljust {
			out = ljustPad(unparsed, width, fill)
		} else {
			out = rjustPad(unparsed, width, fill)
		}
		if len(out) > width {
			out = out[len(out)-width:]
		}

		parsed, ok := g.ParseExact(ctx, t.Symbol(), out)
		if !ok {
			return False(), nil
		}
		return SubstituteOne(args[0], parsed), nil
	}
}

func justName(ljust, crop bool) string {
	switch {
	case ljust && crop:
		return "ljust_crop"
	case ljust:
		return "ljust"
	case crop:
		return "rjust_crop"
	default:
		return "rjust"
	}
}

func fillChar(t formula.Term) (byte, error) {
	var s string
	switch {
	case t.Lit != nil:
		s = *t.Lit
	case t.T != nil:
		s = t.T.StringImage()
	default:
		return 0, fmt.Errorf("predicate: fill character argument must be a literal or a concrete tree")
	}
	if len(s) != 1 {
		return 0, fmt.Errorf("predicate: fill character must be exactly one byte, got %q", s)
	}
	return s[0], nil
}

func ljustPad(s string, width int, fill byte) string {
	if len(s) >= width {
		return s
	}
	b := make([]byte, width)
	copy(b, s)
	for i := len(s); i < width; i++ {
		b[i] = fill
	}
	return string(b)
}

func rjustPad(s string, width int, fill byte) string {
	if len(s) >= width {
		return s
	}
	b := make([]byte, width)
	pad := width - len(s)
	for i := 0; i < pad; i++ {
		b[i] = fill
	}
	copy(b[pad:], s)
	return string(b)
}

// OctalToDecimal implements octal_to_decimal(o, d): bidirectional
// numeric conversion, substituting whichever side is not yet concrete.
// octalStart/decimalStart are the nonterminals the two sides must be
// reparsed against when a new value is computed.
func OctalToDecimal(octalStart, decimalStart string) Func {
	return func(ctx *tree.Context, g *gram.Grammar, args []formula.Term) (Result, error) {
		if len(args) != 2 {
			return Result{}, &ArityError{Name: "octal_to_decimal", Want: 2, Got: len(args)}
		}
		octal, octalOK := argTree(args[0])
		decimal, decimalOK := argTree(args[1])

		switch {
		case octalOK && !octal.IsComplete():
			return NotReady(), nil
		case decimalOK && !decimal.IsComplete():
			return NotReady(), nil
		case octalOK:
			n, err := strconv.ParseInt(octal.StringImage(), 8, 64)
			if err != nil {
				return Result{}, fmt.Errorf("predicate: octal_to_decimal: %w", err)
			}
			if decimalOK {
				return boolResult(strconv.FormatInt(n, 10) == decimal.StringImage()), nil
			}
			parsed, ok := g.ParseExact(ctx, decimalStart, strconv.FormatInt(n, 10))
			if !ok {
				return False(), nil
			}
			return SubstituteOne(args[1], parsed), nil
		case decimalOK:
			n, err := strconv.ParseInt(decimal.StringImage(), 10, 64)
			if err != nil {
				return Result{}, fmt.Errorf("predicate: octal_to_decimal: %w", err)
			}
			octalStr := strconv.FormatInt(n, 8)
			parsed, ok := g.ParseExact(ctx, octalStart, octalStr)
			if !ok {
				return False(), nil
			}
			return SubstituteOne(args[0], parsed), nil
		default:
			return NotReady(), nil
		}
	}
}
