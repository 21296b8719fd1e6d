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

package coverage_test

import (
	"context"
	"image"
	"testing"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/content"
	"seehuhn.de/go/pdf/graphics/extgstate"
	"seehuhn.de/go/pdf/graphics/form"
	"seehuhn.de/go/pdf/graphics/group"
	"seehuhn.de/go/pdf/graphics/softclip"

	"seehuhn.de/go/interp"
	"seehuhn.de/go/interp/coverage"
	"seehuhn.de/go/interp/testcases"
)

func render(t *testing.T, tc *testcases.TestCase) *image.Alpha {
	t.Helper()
	dev := coverage.New(tc.Width, tc.Height)
	p := interp.New(dev, tc.Options())
	if err := p.Run(context.Background(), tc.Resources, tc.Ops()); err != nil {
		t.Fatal(err)
	}
	return dev.Img
}

func TestPathCases(t *testing.T) {
	type pixel struct {
		x, y int
		want uint8
	}
	pixels := map[string][]pixel{
		"rectangle":        {{32, 32, 255}, {11, 11, 255}, {5, 5, 0}, {60, 60, 0}},
		"circle":           {{32, 32, 255}, {32, 14, 255}, {13, 13, 0}, {50, 50, 0}},
		"triangle_nonzero": {{32, 40, 255}, {12, 12, 0}},
		"scaled_triangle":  {{16, 20, 255}, {32, 40, 0}},
		"two_triangles":    {{20, 32, 255}, {44, 32, 255}, {32, 20, 0}},
	}

	for _, tc := range testcases.All["path"] {
		if tc.Width <= 0 {
			continue
		}
		t.Run(tc.Name, func(t *testing.T) {
			img := render(t, &tc)
			for _, pr := range pixels[tc.Name] {
				got := img.AlphaAt(pr.x, pr.y).A
				if got != pr.want {
					t.Errorf("pixel (%d,%d): got %d, want %d", pr.x, pr.y, got, pr.want)
				}
			}
		})
	}
}

func TestClip(t *testing.T) {
	tc := &testcases.TestCase{
		Content: "q 0 0 16 16 re W n 8 8 16 16 re f Q 20 0 4 4 re f",
		Width:   32,
		Height:  32,
	}
	img := render(t, tc)

	type pixel struct {
		x, y int
		want uint8
	}
	for _, pr := range []pixel{
		{10, 10, 255}, // inside clip and path
		{4, 4, 0},     // outside the path
		{10, 5, 0},    // below the path, inside the clip
		{15, 15, 255},
		{10, 17, 0},
		{20, 20, 0},   // outside the clip
		{21, 1, 255},  // after the clip was popped
	} {
		if got := img.AlphaAt(pr.x, pr.y).A; got != pr.want {
			t.Errorf("pixel (%d,%d): got %d, want %d", pr.x, pr.y, got, pr.want)
		}
	}
}

func TestClipOffset(t *testing.T) {
	tc := &testcases.TestCase{
		Content: "4 6 10 3 re W n 0 0 32 32 re f",
		Width:   32,
		Height:  32,
	}
	img := render(t, tc)

	var count int
	for y := range 32 {
		for x := range 32 {
			a := img.AlphaAt(x, y).A
			inside := x >= 4 && x < 14 && y >= 6 && y < 9
			if inside && a != 255 || !inside && a != 0 {
				t.Fatalf("pixel (%d,%d): got %d, inside=%t", x, y, a, inside)
			}
			if inside {
				count++
			}
		}
	}
	if count != 30 {
		t.Errorf("painted %d pixels, want 30", count)
	}
}

func TestAlpha(t *testing.T) {
	tc := &testcases.TestCase{
		Content: "/A gs 0 0 8 8 re f",
		Resources: &content.Resources{
			ExtGState: map[pdf.Name]*extgstate.ExtGState{
				"A": {Set: graphics.StateFillAlpha, FillAlpha: 0.5},
			},
		},
		Width:  8,
		Height: 8,
	}
	img := render(t, tc)
	if got := img.AlphaAt(4, 4).A; got != 128 {
		t.Errorf("got alpha %d, want 128", got)
	}
}

func TestSoftMaskNotPainted(t *testing.T) {
	mask := &form.Form{
		Content: testcases.Parse("1 g 0 0 8 8 re f"),
		Res:     &content.Resources{},
		BBox:    pdf.Rectangle{URx: 8, URy: 8},
		Group:   &group.TransparencyAttributes{Isolated: true},
	}
	tc := &testcases.TestCase{
		Content: "/M gs 0 0 4 4 re f",
		Resources: &content.Resources{
			ExtGState: map[pdf.Name]*extgstate.ExtGState{
				"M": {
					Set:      graphics.StateSoftMask,
					SoftMask: &softclip.Mask{S: softclip.Luminosity, G: mask},
				},
			},
		},
		Width:  8,
		Height: 8,
	}
	img := render(t, tc)
	if got := img.AlphaAt(6, 6).A; got != 0 {
		t.Errorf("mask content was painted: alpha %d", got)
	}
	if got := img.AlphaAt(2, 2).A; got != 255 {
		t.Errorf("masked fill: got alpha %d, want 255", got)
	}
}
