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

package testcases

import (
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/font"
	"seehuhn.de/go/pdf/graphics/color"
	"seehuhn.de/go/pdf/graphics/content"
	"seehuhn.de/go/pdf/property"
	"seehuhn.de/go/postscript/cid"
)

var textCases = []TestCase{
	{
		Name:      "show",
		Content:   "BT /F1 10 Tf 5 5 Td (ab) Tj ET",
		Resources: fonts(),
		Want: []string{
			`fill_text "ab" DeviceGray[0]`,
		},
	},
	{
		Name:      "show_array",
		Content:   "BT /F1 10 Tf [(a) -250 (b) 100 (c)] TJ ET",
		Resources: fonts(),
		Want: []string{
			`fill_text "abc" DeviceGray[0]`,
		},
	},
	{
		Name:      "next_line",
		Content:   "BT /F1 10 Tf 12 TL (a) Tj (b) ' 1 2 (c) \" ET",
		Resources: fonts(),
		Want: []string{
			`fill_text "abc" DeviceGray[0]`,
		},
	},
	{
		Name:      "mode_change",
		Content:   "BT /F1 10 Tf (a) Tj 1 Tr (b) Tj 2 Tr (c) Tj ET",
		Resources: fonts(),
		Want: []string{
			`fill_text "a" DeviceGray[0]`,
			`stroke_text "b" DeviceGray[0]`,
			`fill_text "c" DeviceGray[0]`,
			`stroke_text "c" DeviceGray[0]`,
		},
	},
	{
		Name:      "color_change",
		Content:   "BT /F1 10 Tf (a) Tj 1 0 0 rg (b) Tj ET",
		Resources: fonts(),
		Want: []string{
			`fill_text "a" DeviceGray[0]`,
			`fill_text "b" DeviceRGB[1 0 0]`,
		},
	},
	{
		Name:      "invisible",
		Content:   "BT /F1 10 Tf 3 Tr (ab) Tj ET",
		Resources: fonts(),
		Want: []string{
			`ignore_text "ab"`,
		},
	},
	{
		Name:      "clip",
		Content:   "BT /F1 10 Tf 7 Tr (a) Tj 1 0 0 rg (b) Tj ET 0 0 1 1 re f",
		Resources: fonts(),
		Want: []string{
			`clip_text "a"`,
			`clip_text "b" accumulate`,
			"fill_path [0 0 1 1] nonzero DeviceRGB[1 0 0]",
			"pop_clip",
		},
	},
	{
		Name:      "fill_and_clip",
		Content:   "q BT /F1 10 Tf 4 Tr (a) Tj ET Q",
		Resources: fonts(),
		Want: []string{
			`fill_text "a" DeviceGray[0]`,
			`clip_text "a"`,
			"pop_clip",
		},
	},
	{
		// a clipping text object without glyphs clips everything
		Name:    "empty_clip",
		Content: "q BT 7 Tr ET 0 0 1 1 re f Q",
		Want: []string{
			`clip_text ""`,
			"fill_path [0 0 1 1] nonzero DeviceGray[0]",
			"pop_clip",
		},
	},
	{
		Name:    "no_font",
		Content: "BT (ab) Tj ET",
		Want:    []string{},
	},
	{
		Name:      "hidden",
		Content:   "/OC /H BDC BT /F1 10 Tf (ab) Tj ET EMC",
		Resources: fonts(),
		Hidden:    []string{"H"},
		Want: []string{
			`begin_layer "H"`,
			`ignore_text "ab"`,
			"end_layer",
		},
	},
	{
		Name:      "pattern_text",
		Content:   "/Pattern cs /P scn BT /F1 4 Tf 2 2 Td (a) Tj ET",
		Resources: fonts(),
		Want: []string{
			`clip_text "a"`,
			"clip_path [0 0 10 10] nonzero",
			"fill_path [0 0 5 5] nonzero DeviceRGB[0 0 1]",
			"pop_clip",
			"pop_clip",
		},
	},
	{
		// without a codec, every byte is one character code
		Name:      "no_codec",
		Content:   "BT /R 10 Tf (ab) Tj ET",
		Resources: fonts(),
		Want: []string{
			`fill_text "ab" DeviceGray[0]`,
		},
	},
	{
		Name:      "two_byte_codes",
		Content:   "BT /W 10 Tf <00610062> Tj ET",
		Resources: fonts(),
		Want: []string{
			`fill_text "ab" DeviceGray[0]`,
		},
	},
	{
		// the incomplete code at the end is shown as a single glyph
		Name:      "truncated_code",
		Content:   "BT /W 10 Tf <006162> Tj ET",
		Resources: fonts(),
		Want: []string{
			`fill_text "a" DeviceGray[0]`,
		},
	},
	{
		Name:      "type3_uncacheable",
		Content:   "BT /T3 1 Tf (x) Tj ET",
		Resources: fonts(),
		Want: []string{
			"fill_path [0 0 1 1] nonzero DeviceGray[0]",
		},
	},
	{
		Name:      "type3_cached",
		Content:   "BT /T3 1 Tf (y) Tj ET",
		Resources: fonts(),
		Want: []string{
			`fill_text "y" DeviceGray[0]`,
		},
	},
	{
		Name:      "type3_invisible",
		Content:   "BT /T3 1 Tf 3 Tr (x) Tj ET",
		Resources: fonts(),
		Want:      []string{},
	},
	{
		Name:      "type3_uncolored",
		Content:   "1 0 0 rg BT /T3 1 Tf (z) Tj ET",
		Resources: fonts(),
		Want: []string{
			"fill_path [0 0 1 1] nonzero DeviceRGB[1 0 0]",
		},
	},
}

// fonts returns resources with the simple font F1, the font R without
// codec, the vertical two-byte font W and the Type 3 font T3.  The glyph
// "x" of T3 paints a square and then tries to use T3 recursively.  The
// glyph "z" is declared with d1 and ignores its own colour.
func fonts() *content.Resources {
	t3 := &GlyphFont{
		Procs: map[cid.CID]string{
			'x': "1000 0 d0 0 0 1000 1000 re f BT /T3 1 Tf (x) Tj ET",
			'y': "1000 0 d0 0 0 1000 1000 re f",
			'z': "1000 0 0 0 1000 1000 d1 0 1 0 rg 0 0 1000 1000 re f",
		},
		NoCache: map[cid.CID]bool{'x': true, 'z': true},
	}
	res := &content.Resources{
		Font: map[pdf.Name]font.Instance{
			"F1": &SimpleFont{},
			"R":  &RawFont{},
			"W":  NewWideFont(),
			"T3": t3,
		},
		Properties: map[pdf.Name]property.List{"H": ocg("H")},
		Pattern:    map[pdf.Name]color.Pattern{"P": bluePattern()},
	}
	t3.Res = res
	return res
}
