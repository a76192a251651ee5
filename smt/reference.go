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

package smt

import "fmt"

// Reference is a small in-process Backend covering equality and
// disequality atoms over string variables and literals — enough to
// drive this module's own tests and CLI without a real SMT binding
// (see the package doc comment). Any atom shape it does not recognize
// makes the whole query Unknown, which callers treat as Unsat.
type Reference struct{}

// NewReference returns a Reference backend.
func NewReference() *Reference { return &Reference{} }

type unionFind struct {
	parent map[string]string
	lit    map[string]string // representative -> bound literal, if any
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[string]string), lit: make(map[string]string)}
}

func (u *unionFind) find(id string) string {
	p, ok := u.parent[id]
	if !ok {
		u.parent[id] = id
		return id
	}
	if p == id {
		return id
	}
	root := u.find(p)
	u.parent[id] = root
	return root
}

// union merges the classes of a and b (recording litA/litB as the
// literal each denotes directly, or "" if it is a variable). It
// reports false if the merge is a direct contradiction (both sides
// already bound to different literals).
func (u *unionFind) union(idA string, litA string, hasLitA bool, idB string, litB string, hasLitB bool) bool {
	ra, rb := u.find(idA), u.find(idB)
	if hasLitA {
		if cur, ok := u.lit[ra]; ok && cur != litA {
			return false
		}
		u.lit[ra] = litA
	}
	if hasLitB {
		if cur, ok := u.lit[rb]; ok && cur != litB {
			return false
		}
		u.lit[rb] = litB
	}
	if ra == rb {
		return true
	}
	la, aok := u.lit[ra]
	lb, bok := u.lit[rb]
	if aok && bok && la != lb {
		return false
	}
	u.parent[ra] = rb
	if aok {
		u.lit[rb] = la
	}
	return true
}

type diseqPair struct{ a, b string }

func nodeOf(e Expr) (id string, lit string, hasLit bool, ok bool) {
	switch e.Kind {
	case KindVar:
		return "v:" + e.Var, "", false, true
	case KindStr:
		return "l:" + e.Str, e.Str, true, true
	default:
		return "", "", false, false
	}
}

// solve processes assertions into a union-find plus a disequality
// list. ok is false when an unsupported atom shape was encountered.
func solve(assertions []Expr) (uf *unionFind, diseq []diseqPair, sat bool, ok bool) {
	uf = newUnionFind()
	for _, a := range assertions {
		pos := true
		cur := a
		for cur.Kind == KindOp && cur.Op == "not" && len(cur.Args) == 1 {
			pos = !pos
			cur = cur.Args[0]
		}
		if cur.Kind != KindOp || cur.Op != "=" || len(cur.Args) != 2 {
			return uf, diseq, false, false
		}
		idA, litA, hasLitA, okA := nodeOf(cur.Args[0])
		idB, litB, hasLitB, okB := nodeOf(cur.Args[1])
		if !okA || !okB {
			return uf, diseq, false, false
		}
		if pos {
			if !uf.union(idA, litA, hasLitA, idB, litB, hasLitB) {
				return uf, diseq, false, true
			}
		} else {
			diseq = append(diseq, diseqPair{idA, idB})
		}
	}
	for _, d := range diseq {
		ra, rb := uf.find(d.a), uf.find(d.b)
		if ra == rb {
			return uf, diseq, false, true
		}
		la, aok := uf.lit[ra]
		lb, bok := uf.lit[rb]
		if aok && bok && la == lb {
			return uf, diseq, false, true
		}
	}
	return uf, diseq, true, true
}

// CheckSat implements Backend.
func (r *Reference) CheckSat(assertions []Expr) (Outcome, error) {
	_, _, sat, ok := solve(assertions)
	if !ok {
		return Unknown, nil
	}
	if !sat {
		return Unsat, nil
	}
	return Sat, nil
}

// Model implements Backend.
func (r *Reference) Model(assertions []Expr, vars []string, exclude []map[string]string) (map[string]string, Outcome, error) {
	uf, diseq, sat, ok := solve(assertions)
	if !ok {
		return nil, Unknown, nil
	}
	if !sat {
		return nil, Unsat, nil
	}

	assign := func(attempt int) map[string]string {
		classLit := make(map[string]string)
		fresh := attempt
		litFor := func(root string) string {
			if v, ok := uf.lit[root]; ok {
				return v
			}
			if v, ok := classLit[root]; ok {
				return v
			}
			for {
				cand := fmt.Sprintf("s%d", fresh)
				fresh++
				conflict := false
				for _, d := range diseq {
					ra, rb := uf.find(d.a), uf.find(d.b)
					if ra == root {
						if ov, ok := uf.lit[rb]; ok && ov == cand {
							conflict = true
							break
						}
						if ov, ok := classLit[rb]; ok && ov == cand {
							conflict = true
							break
						}
					}
				}
				if !conflict {
					classLit[root] = cand
					return cand
				}
			}
		}
		out := make(map[string]string, len(vars))
		for _, v := range vars {
			root := uf.find("v:" + v)
			out[v] = litFor(root)
		}
		return out
	}

	for attempt := 0; attempt < len(exclude)+1+maxModelSearchSlack; attempt++ {
		m := assign(attempt * modelSearchStride)
		if !containsModel(exclude, m) {
			return m, Sat, nil
		}
	}
	return nil, Unknown, nil
}

const (
	maxModelSearchSlack = 64
	modelSearchStride   = 97
)

func containsModel(models []map[string]string, m map[string]string) bool {
	for _, e := range models {
		if len(e) != len(m) {
			continue
		}
		same := true
		for k, v := range m {
			if e[k] != v {
				same = false
				break
			}
		}
		if same {
			return true
		}
	}
	return false
}
