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
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/function"
	"seehuhn.de/go/pdf/graphics/color"
	"seehuhn.de/go/pdf/graphics/content"
	"seehuhn.de/go/pdf/graphics/pattern"
)

func mustSpace[T color.Space](cs T, err error) T {
	if err != nil {
		panic(err)
	}
	return cs
}

func gold() color.Space {
	tint := &function.Type2{
		XMin: 0,
		XMax: 1,
		C0:   []float64{0, 0, 0, 0},
		C1:   []float64{0, 0.2, 1, 0},
		N:    1,
	}
	return mustSpace(color.Separation("Gold", color.SpaceDeviceCMYK, tint))
}

func grays(n int) color.Space {
	colors := make([]color.Color, n)
	for i := range colors {
		colors[i] = color.DeviceGray(float64(i) / float64(n-1))
	}
	return mustSpace(color.Indexed(colors))
}

func TestDefaultColor(t *testing.T) {
	type testCase struct {
		name string
		cs   color.Space
		want []float64
	}
	cases := []testCase{
		{"gray", color.SpaceDeviceGray, []float64{0}},
		{"rgb", color.SpaceDeviceRGB, []float64{0, 0, 0}},
		{"cmyk", color.SpaceDeviceCMYK, []float64{0, 0, 0, 1}},
		{"separation", gold(), []float64{1}},
		{"indexed", grays(4), []float64{0}},
		{"lab", mustSpace(color.Lab(color.WhitePointD65, nil, nil)), []float64{0, 0, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := &Material{}
			m.setDefaultColor(tc.cs)
			if d := cmp.Diff(tc.want, m.Components()); d != "" {
				t.Errorf("initial colour (-want +got):\n%s", d)
			}
		})
	}
}

func TestSetComponents(t *testing.T) {
	type testCase struct {
		name string
		cs   color.Space
		in   []float64
		want []float64
	}
	lab := mustSpace(color.Lab(color.WhitePointD65, nil, []float64{-20, 20, -30, 30}))
	cases := []testCase{
		{"in range", color.SpaceDeviceRGB, []float64{0.1, 0.5, 1}, []float64{0.1, 0.5, 1}},
		{"clamped", color.SpaceDeviceRGB, []float64{-1, 2, 0.5}, []float64{0, 1, 0.5}},
		{"indexed", grays(8), []float64{9}, []float64{7}},
		{"lab", lab, []float64{120, -150, 10}, []float64{100, -128, 10}},
		{"ranges", &color.SpaceICCBased{N: 2, Ranges: []float64{-1, 1, 0, 4}}, []float64{-3, 3}, []float64{-1, 3}},
		{"short", color.SpaceDeviceCMYK, []float64{0.5}, []float64{0.5, 0, 0, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := &Material{}
			m.setDefaultColor(tc.cs)
			m.setComponents(tc.in)
			if d := cmp.Diff(tc.want, m.Components()); d != "" {
				t.Errorf("colour (-want +got):\n%s", d)
			}
		})
	}
}

func TestDefaultColorSpaceSubstitution(t *testing.T) {
	calGray := mustSpace(color.CalGray(color.WhitePointD65, nil, 1))
	bad := &color.SpaceICCBased{N: 4}
	d := &defaultSpaces{}
	d.update(&content.Resources{
		ColorSpace: map[pdf.Name]color.Space{
			"DefaultGray": calGray,
			"DefaultRGB":  bad,
			"Other":       color.SpaceDeviceCMYK,
		},
	})

	if got := d.substitute(color.SpaceDeviceGray); got != calGray {
		t.Errorf("DeviceGray: got %v, want %v", got, calGray)
	}
	if got := d.substitute(color.SpaceDeviceRGB); got != color.SpaceDeviceRGB {
		t.Errorf("DeviceRGB with wrong channel count: got %v", got)
	}
	if got := d.substitute(color.SpaceDeviceCMYK); got != color.SpaceDeviceCMYK {
		t.Errorf("DeviceCMYK: got %v", got)
	}

	// entries missing from nested resources are inherited
	d.update(&content.Resources{})
	if got := d.substitute(color.SpaceDeviceGray); got != calGray {
		t.Errorf("inherited DeviceGray: got %v, want %v", got, calGray)
	}
}

func TestPatternBase(t *testing.T) {
	if base := patternBase(color.SpacePatternColored); base != nil {
		t.Errorf("coloured patterns: got base %v", base)
	}

	pat := &pattern.Type1{
		TilingType: 1,
		BBox:       &pdf.Rectangle{URx: 1, URy: 1},
		XStep:      1,
		YStep:      1,
	}
	cs := color.PatternUncolored(pat, color.DeviceRGB{1, 0, 0}).ColorSpace()
	if base := patternBase(cs); base == nil || base.Family() != color.FamilyDeviceRGB {
		t.Errorf("uncoloured RGB pattern: got base %v", base)
	}
}

func TestUnsetPattern(t *testing.T) {
	pat := &pattern.Type1{TilingType: 1, XStep: 1, YStep: 1}

	m := &Material{Kind: MaterialPattern, Pattern: pat}
	m.unsetPattern()
	if m.Kind != MaterialNone || m.Pattern != nil {
		t.Errorf("coloured pattern: got kind %v", m.Kind)
	}

	m = &Material{Kind: MaterialPattern, Space: color.SpaceDeviceGray, Pattern: pat}
	m.unsetPattern()
	if m.Kind != MaterialColor {
		t.Errorf("uncoloured pattern: got kind %v, want %v", m.Kind, MaterialColor)
	}
}
