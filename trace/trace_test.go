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

package trace

import (
	"math"
	"strings"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf/function"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"
	"seehuhn.de/go/pdf/graphics/pattern"

	"seehuhn.de/go/interp"
)

func TestNum(t *testing.T) {
	type testCase struct {
		x    float64
		want string
	}
	cases := []testCase{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{-0.00001, "0"},
		{1, "1"},
		{0.5, "0.5"},
		{1.0 / 3, "0.3333"},
		{-2.71828, "-2.7183"},
		{1e6, "1e+06"},
		{math.Inf(1), "+Inf"},
	}
	for _, tc := range cases {
		if got := num(tc.x); got != tc.want {
			t.Errorf("num(%g) = %q, want %q", tc.x, got, tc.want)
		}
	}
}

func TestCheck(t *testing.T) {
	d := New()
	d.BeginGroup(rect.Rect{URx: 1, URy: 1}, nil, false, false, graphics.BlendMode{graphics.BlendModeNormal}, 1)
	d.BeginLayer("L")
	d.EndLayer()
	d.EndGroup()
	if err := d.Check(); err != nil {
		t.Errorf("balanced calls reported as %v", err)
	}

	d = New()
	d.BeginLayer("L")
	d.PopClip()
	err := d.Check()
	if err == nil {
		t.Fatal("unbalanced calls not detected")
	}
	for _, want := range []string{"pop_clip without matching begin", "1 unclosed layer"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestEndMaskOpensClip(t *testing.T) {
	d := New()
	d.BeginMask(interp.Infinite, false, nil, nil, interp.RenderingParams{})
	d.EndMask()
	if err := d.Check(); err == nil {
		t.Error("mask without PopClip not detected")
	}
	d.PopClip()
	if err := d.Check(); err != nil {
		t.Error(err)
	}

	want := []string{"begin_mask [inf] alpha", "end_mask", "pop_clip"}
	if strings.Join(d.Lines, "\n") != strings.Join(want, "\n") {
		t.Errorf("got\n%s", d)
	}
}

func TestTileCache(t *testing.T) {
	d := New()
	d.CacheTiles = true
	p1 := &pattern.Type1{XStep: 1, YStep: 1, Color: true}
	p2 := &pattern.Type1{XStep: 2, YStep: 2, Color: true}
	var cached []bool
	for _, key := range []*pattern.Type1{p1, p1, nil, nil, p2} {
		cached = append(cached, d.BeginTile(rect.Rect{}, rect.Rect{}, 1, 1, matrix.Identity, key))
		d.EndTile()
	}
	want := []bool{false, true, false, false, false}
	for i := range want {
		if cached[i] != want[i] {
			t.Errorf("tile %d: cached=%t, want %t", i, cached[i], want[i])
		}
	}

	wantLines := []string{
		"begin_tile id=1 ctm=[1 0 0 1 0 0]",
		"end_tile",
		"begin_tile id=1 ctm=[1 0 0 1 0 0] cached",
		"end_tile",
		"begin_tile id=0 ctm=[1 0 0 1 0 0]",
		"end_tile",
		"begin_tile id=0 ctm=[1 0 0 1 0 0]",
		"end_tile",
		"begin_tile id=2 ctm=[1 0 0 1 0 0]",
		"end_tile",
	}
	if got := strings.Join(d.Lines, "\n"); got != strings.Join(wantLines, "\n") {
		t.Errorf("got\n%s", got)
	}
}

func TestSpaceName(t *testing.T) {
	tint := &function.Type2{
		XMin: 0,
		XMax: 1,
		C0:   []float64{0, 0, 0, 0},
		C1:   []float64{0, 0, 0, 1},
		N:    1,
	}
	sep, err := color.Separation("Spot", color.SpaceDeviceCMYK, tint)
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		cs   color.Space
		want string
	}{
		{nil, "none"},
		{color.SpaceDeviceGray, "DeviceGray"},
		{color.SpaceDeviceCMYK, "DeviceCMYK"},
		{sep, "Separation(Spot)"},
	}
	for _, tc := range cases {
		if got := spaceName(tc.cs); got != tc.want {
			t.Errorf("spaceName(%v) = %q, want %q", tc.cs, got, tc.want)
		}
	}
}
