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

// Package xmldump implements the optional derivation-search persisted
// dump: a tree of <state> elements, each carrying <constraint>,
// <tree>, <cost> and <hash>, with recursive <children> mirroring the
// successor relation the scheduler explored. It depends on solve only
// for the solve.Cost record; the caller (cli) builds the Node tree and
// hands the root to Write when the run ends.
package xmldump

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/ctreegen/ctreegen/solve"
)

// Cost mirrors solve.Cost as XML attributes.
type Cost struct {
	Depth              float64 `xml:"depth,attr"`
	OpenLeaves         float64 `xml:"openLeaves,attr"`
	ConjunctCount      float64 `xml:"conjunctCount,attr"`
	KPathDeficit       float64 `xml:"kPathDeficit,attr"`
	VacuousQuants      float64 `xml:"vacuousQuants,attr"`
	GlobalKPathDeficit float64 `xml:"globalKPathDeficit,attr"`
}

func fromSolveCost(c solve.Cost) Cost {
	return Cost{
		Depth:              c.Depth,
		OpenLeaves:         c.OpenLeaves,
		ConjunctCount:      c.ConjunctCount,
		KPathDeficit:       c.KPathDeficit,
		VacuousQuants:      c.VacuousQuants,
		GlobalKPathDeficit: c.GlobalKPathDeficit,
	}
}

// Node is one dumped solution state: its formula (constraint), its
// tree's pretty-printed image, its cost record, a structural hash, and
// the successor states it produced, in generation order.
type Node struct {
	XMLName    xml.Name `xml:"state"`
	Hash       string   `xml:"hash"`
	Cost       Cost     `xml:"cost"`
	Constraint string   `xml:"constraint"`
	Tree       string   `xml:"tree"`
	Children   []*Node  `xml:"children>state,omitempty"`
}

// NewNode builds one dumped node from a tree's pretty-print image, its
// formula's string form, its structural hash, and its cost record.
// Escape is applied to the two free-text fields (constraint, tree)
// since either may embed a terminal literal carrying a control
// character that XML 1.0 forbids even as a numeric character reference.
func NewNode(hash uint64, cost solve.Cost, constraint, treeImage string) *Node {
	return &Node{
		Hash:       uint64ToHex(hash),
		Cost:       fromSolveCost(cost),
		Constraint: escape(constraint),
		Tree:       escape(treeImage),
	}
}

// AddChild appends c as one more explored successor of n.
func (n *Node) AddChild(c *Node) {
	n.Children = append(n.Children, c)
}

// Write serializes root as an indented XML document to w.
func Write(w io.Writer, root *Node) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(root)
}

const hexDigits = "0123456789abcdef"

func uint64ToHex(v uint64) string {
	var b [16]byte
	for i := 15; i >= 0; i-- {
		b[i] = hexDigits[v&0xf]
		v >>= 4
	}
	return string(b[:])
}

// escape replaces the three control characters XML 1.0 never permits
// in text content, even via a numeric character reference (NUL,
// vertical tab, form feed), with a visible escape sequence so the
// document stays well-formed instead of silently corrupt.
func escape(s string) string {
	if !strings.ContainsAny(s, "\x00\x0b\x0c") {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\x00':
			b.WriteString(`\x00`)
		case '\x0b':
			b.WriteString(`\x0b`)
		case '\x0c':
			b.WriteString(`\x0c`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
