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

package interp_test

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"testing"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/graphics/color"
	"seehuhn.de/go/pdf/graphics/content"
	"seehuhn.de/go/pdf/graphics/pattern"

	"seehuhn.de/go/interp"
	"seehuhn.de/go/interp/coverage"
	"seehuhn.de/go/interp/testcases"
)

// BenchmarkCases runs all test scenarios against a device which ignores
// the drawing calls.
func BenchmarkCases(b *testing.B) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		b.Run(category, func(b *testing.B) {
			cases := testcases.All[category]
			ops := make([]content.Stream, len(cases))
			opts := make([]*interp.Options, len(cases))
			for i := range cases {
				ops[i] = cases[i].Ops()
				opts[i] = cases[i].Options()
			}

			b.ReportAllocs()
			for b.Loop() {
				for i, tc := range cases {
					p := interp.New(interp.NopDevice{}, opts[i])
					_ = p.Run(context.Background(), tc.Resources, ops[i])
				}
			}
		})
	}
}

// BenchmarkPatternFill measures filling an area with a tiling pattern.
func BenchmarkPatternFill(b *testing.B) {
	pat := &pattern.Type1{
		TilingType: 1,
		BBox:       &pdf.Rectangle{URx: 1, URy: 1},
		XStep:      1,
		YStep:      1,
		Color:      true,
		Content:    testcases.Parse("0 0 0.5 0.5 re f"),
		Res:        &content.Resources{},
	}
	res := &content.Resources{
		Pattern: map[pdf.Name]color.Pattern{"P": pat},
	}

	for _, size := range []int{20, 200} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			ops := testcases.Parse(fmt.Sprintf("/Pattern cs /P scn 0 0 %d %d re f", size, size))

			b.ReportAllocs()
			for b.Loop() {
				p := interp.New(interp.NopDevice{}, nil)
				_ = p.Run(context.Background(), res, ops)
			}
		})
	}
}

// BenchmarkCoverageO fills an "O" shape on the coverage device.
func BenchmarkCoverageO(b *testing.B) {
	for _, size := range []int{20, 200, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			center := float64(size) / 2
			ops := testcases.Parse(oShape(center, center, float64(size)*0.45, float64(size)*0.30) + " f*")
			dev := coverage.New(size, size)

			b.ReportAllocs()
			for b.Loop() {
				p := interp.New(dev, nil)
				_ = p.Run(context.Background(), &content.Resources{}, ops)
			}
		})
	}
}

// oShape returns the path operators for an outer circle drawn
// counter-clockwise and an inner circle drawn clockwise.
func oShape(cx, cy, outerR, innerR float64) string {
	var b strings.Builder
	circle := func(r float64, clockwise bool) {
		const k = 0.5522847498
		kr := k * r
		s := 1.0
		if clockwise {
			s = -1
		}
		fmt.Fprintf(&b, "%g %g m\n", cx, cy-r)
		fmt.Fprintf(&b, "%g %g %g %g %g %g c\n", cx+s*kr, cy-r, cx+s*r, cy-kr, cx+s*r, cy)
		fmt.Fprintf(&b, "%g %g %g %g %g %g c\n", cx+s*r, cy+kr, cx+s*kr, cy+r, cx, cy+r)
		fmt.Fprintf(&b, "%g %g %g %g %g %g c\n", cx-s*kr, cy+r, cx-s*r, cy+kr, cx-s*r, cy)
		fmt.Fprintf(&b, "%g %g %g %g %g %g c\n", cx-s*r, cy-kr, cx-s*kr, cy-r, cx, cy-r)
		b.WriteString("h\n")
	}
	circle(outerR, false)
	circle(innerR, true)
	return b.String()
}
