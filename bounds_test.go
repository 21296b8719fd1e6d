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
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestPathBounds(t *testing.T) {
	square := (&path.Data{}).
		MoveTo(vec.Vec2{X: 1, Y: 1}).
		LineTo(vec.Vec2{X: 3, Y: 1}).
		LineTo(vec.Vec2{X: 3, Y: 4}).
		Close()

	// the highest point of this curve is at (2, 3)
	arch := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		CubeTo(vec.Vec2{X: 0, Y: 4}, vec.Vec2{X: 4, Y: 4}, vec.Vec2{X: 4, Y: 0})

	type testCase struct {
		name string
		p    *path.Data
		ctm  matrix.Matrix
		want rect.Rect
	}
	cases := []testCase{
		{"empty", &path.Data{}, matrix.Identity, rect.Rect{}},
		{"square", square, matrix.Identity, rect.Rect{LLx: 1, LLy: 1, URx: 3, URy: 4}},
		{"scaled", square, matrix.Scale(2, 3), rect.Rect{LLx: 2, LLy: 3, URx: 6, URy: 12}},
		{"translated", square, matrix.Translate(-1, 10), rect.Rect{LLx: 0, LLy: 11, URx: 2, URy: 14}},
		{"rotated", square, matrix.Matrix{0, 1, -1, 0, 0, 0}, rect.Rect{LLx: -4, LLy: 1, URx: -1, URy: 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := pathBounds(tc.p, tc.ctm)
			if d := cmp.Diff(tc.want, got, approx); d != "" {
				t.Errorf("bounds mismatch (-want +got):\n%s", d)
			}
		})
	}

	got := pathBounds(arch, matrix.Scale(10, 10))
	if got.URy > 30+boundsFlatness || got.URy < 30-boundsFlatness {
		t.Errorf("arch top %g, want 30", got.URy)
	}
	if got.LLx != 0 || got.URx != 40 {
		t.Errorf("arch x-range [%g, %g], want [0, 40]", got.LLx, got.URx)
	}
}

func TestStrokeExpansion(t *testing.T) {
	type testCase struct {
		name  string
		style StrokeStyle
		ctm   matrix.Matrix
		want  float64
	}
	cases := []testCase{
		{"round", StrokeStyle{LineWidth: 4, Join: graphics.LineJoinRound}, matrix.Identity, 2},
		{"miter", StrokeStyle{LineWidth: 4, Join: graphics.LineJoinMiter, MiterLimit: 10}, matrix.Identity, 20},
		{"square cap", StrokeStyle{LineWidth: 2, Join: graphics.LineJoinBevel, Cap: graphics.LineCapSquare}, matrix.Identity, math.Sqrt2},
		{"scaled", StrokeStyle{LineWidth: 1, Join: graphics.LineJoinRound}, matrix.Scale(1, 6), 3},
		{"hairline", StrokeStyle{LineWidth: 0, Join: graphics.LineJoinRound}, matrix.Identity, 0.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := strokeExpansion(&tc.style, tc.ctm)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("got %g, want %g", got, tc.want)
			}
		})
	}
}

func TestInvert(t *testing.T) {
	ms := []matrix.Matrix{
		matrix.Identity,
		{2, 0, 0, 4, 10, -3},
		{0, 1, -1, 0, 5, 5},
		{1, 2, 3, 4, 5, 6},
	}
	for _, m := range ms {
		inv, ok := invert(m)
		if !ok {
			t.Errorf("%v: not invertible", m)
			continue
		}
		if d := cmp.Diff(matrix.Identity, m.Mul(inv), approx); d != "" {
			t.Errorf("%v: m*inv(m) != I (-want +got):\n%s", m, d)
		}
	}

	if _, ok := invert(matrix.Matrix{1, 2, 2, 4, 0, 0}); ok {
		t.Error("singular matrix was inverted")
	}
}

func TestTransformRect(t *testing.T) {
	got := transformRect(Infinite, matrix.Scale(2, 2))
	if !IsInfinite(got) {
		t.Errorf("infinite rectangle became %v", got)
	}

	got = transformRect(unitRect, matrix.Matrix{1, 1, -1, 1, 0, 0})
	want := rect.Rect{LLx: -1, LLy: 0, URx: 1, URy: 2}
	if d := cmp.Diff(want, got, approx); d != "" {
		t.Errorf("rotated unit square (-want +got):\n%s", d)
	}

	sh := &Shading{}
	if !IsInfinite(shadeBounds(sh, matrix.Identity)) {
		t.Error("unbounded shading has finite bounds")
	}
}
