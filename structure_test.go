// seehuhn.de/go/interp - a PDF content stream interpreter
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package interp

import (
	"errors"
	"testing"

	"seehuhn.de/go/pdf"
)

func TestCommonAncestor(t *testing.T) {
	root := &StructElem{Type: "Document", UID: 1}
	sect := &StructElem{Type: "Sect", UID: 2, Parent: root}
	p1 := &StructElem{Type: "P", UID: 3, Parent: sect}
	p2 := &StructElem{Type: "P", UID: 4, Parent: sect}
	span := &StructElem{Type: "Span", UID: 5, Parent: p1}
	other := &StructElem{Type: "Art", UID: 6}

	type testCase struct {
		a, b, want *StructElem
	}
	cases := []testCase{
		{nil, nil, nil},
		{nil, span, nil},
		{span, span, span},
		{span, p1, p1},
		{p1, span, p1},
		{span, p2, sect},
		{p2, root, root},
		{span, other, nil},
	}
	for i, tc := range cases {
		got, err := commonAncestor(tc.a, tc.b)
		if err != nil {
			t.Errorf("%d: unexpected error %v", i, err)
		} else if got != tc.want {
			t.Errorf("%d: got %v, want %v", i, got, tc.want)
		}
	}
}

func TestStructDepthCycle(t *testing.T) {
	a := &StructElem{Type: "P"}
	b := &StructElem{Type: "Div", Parent: a}
	a.Parent = b

	if _, err := structDepth(a); !errors.Is(err, ErrMalformedStructure) {
		t.Errorf("got %v, want %v", err, ErrMalformedStructure)
	}
	c := &StructElem{Type: "Span", Parent: b}
	if _, err := commonAncestor(nil, c); !errors.Is(err, ErrMalformedStructure) {
		t.Errorf("got %v, want %v", err, ErrMalformedStructure)
	}
}

func TestStructureType(t *testing.T) {
	p := &Interpreter{
		roleMap: map[pdf.Name]pdf.Name{
			"Chapter": "Sect",
			"Para":    "Body",
			"Body":    "P",
			"A":       "B",
			"B":       "A",
		},
	}
	type testCase struct {
		name pdf.Name
		want StructureType
	}
	cases := []testCase{
		{"P", StructP},
		{"Figure", StructFigure},
		{"Chapter", StructSect},
		{"Para", StructP},
		{"A", StructInvalid},
		{"Unknown", StructInvalid},
		{"Invalid", StructInvalid},
	}
	for _, tc := range cases {
		if got := p.structureType(tc.name); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}
