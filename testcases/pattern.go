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
	"seehuhn.de/go/pdf/graphics/color"
	"seehuhn.de/go/pdf/graphics/content"
	"seehuhn.de/go/pdf/graphics/pattern"
)

var patternCases = []TestCase{
	{
		Name:      "tile_three_by_three",
		Content:   "/Pattern cs /P scn 0 0 30 30 re f",
		Resources: patterns("P", bluePattern()),
		Want: []string{
			"clip_path [0 0 30 30] nonzero",
			"begin_tile id=1 ctm=[1 0 0 1 0 0]",
			"clip_path [0 0 10 10] nonzero",
			"fill_path [0 0 5 5] nonzero DeviceRGB[0 0 1]",
			"pop_clip",
			"end_tile",
			"pop_clip",
		},
	},
	{
		Name:      "single_cell",
		Content:   "/Pattern cs /P scn 0 0 10 10 re f",
		Resources: patterns("P", bluePattern()),
		Want: []string{
			"clip_path [0 0 10 10] nonzero",
			"clip_path [0 0 10 10] nonzero",
			"fill_path [0 0 5 5] nonzero DeviceRGB[0 0 1]",
			"pop_clip",
			"pop_clip",
		},
	},
	{
		Name:      "four_cells",
		Content:   "/Pattern cs /P scn 5 5 10 10 re f",
		Resources: patterns("P", bluePattern()),
		Want: []string{
			"clip_path [5 5 15 15] nonzero",
			"clip_path [0 0 10 10] nonzero",
			"fill_path [0 0 5 5] nonzero DeviceRGB[0 0 1]",
			"pop_clip",
			"clip_path [10 0 20 10] nonzero",
			"fill_path [10 0 15 5] nonzero DeviceRGB[0 0 1]",
			"pop_clip",
			"clip_path [0 10 10 20] nonzero",
			"fill_path [0 10 5 15] nonzero DeviceRGB[0 0 1]",
			"pop_clip",
			"clip_path [10 10 20 20] nonzero",
			"fill_path [10 10 15 15] nonzero DeviceRGB[0 0 1]",
			"pop_clip",
			"pop_clip",
		},
	},
	{
		// cell content outside the bounding box is clipped away
		Name:    "cell_clipped_to_bbox",
		Content: "/Pattern cs /P scn 0 0 30 30 re f",
		Resources: patterns("P", &pattern.Type1{
			TilingType: 1,
			BBox:       &pdf.Rectangle{URx: 10, URy: 10},
			XStep:      10,
			YStep:      10,
			Color:      true,
			Content:    Parse("0 0 1 rg -5 -5 20 20 re f"),
			Res:        &content.Resources{},
		}),
		Want: []string{
			"clip_path [0 0 30 30] nonzero",
			"begin_tile id=1 ctm=[1 0 0 1 0 0]",
			"clip_path [0 0 10 10] nonzero",
			"fill_path [-5 -5 15 15] nonzero DeviceRGB[0 0 1]",
			"pop_clip",
			"end_tile",
			"pop_clip",
		},
	},
	{
		// a cell which paints nothing does not clip
		Name:    "empty_cell",
		Content: "/Pattern cs /P scn 0 0 30 30 re f",
		Resources: patterns("P", &pattern.Type1{
			TilingType: 1,
			BBox:       &pdf.Rectangle{URx: 10, URy: 10},
			XStep:      10,
			YStep:      10,
			Color:      true,
			Content:    Parse("q 1 0 0 rg Q"),
			Res:        &content.Resources{},
		}),
		Want: []string{
			"clip_path [0 0 30 30] nonzero",
			"begin_tile id=1 ctm=[1 0 0 1 0 0]",
			"end_tile",
			"pop_clip",
		},
	},
	{
		Name:       "cached_tile",
		Content:    "/Pattern cs /P scn 0 0 30 30 re f 0 0 30 30 re f",
		Resources:  patterns("P", bluePattern()),
		CacheTiles: true,
		Want: []string{
			"clip_path [0 0 30 30] nonzero",
			"begin_tile id=1 ctm=[1 0 0 1 0 0]",
			"clip_path [0 0 10 10] nonzero",
			"fill_path [0 0 5 5] nonzero DeviceRGB[0 0 1]",
			"pop_clip",
			"end_tile",
			"pop_clip",
			"clip_path [0 0 30 30] nonzero",
			"begin_tile id=1 ctm=[1 0 0 1 0 0] cached",
			"end_tile",
			"pop_clip",
		},
	},
	{
		// the pattern is anchored at the CTM in effect when it was selected
		Name:      "captured_ctm",
		Content:   "/Pattern cs /P scn 2 0 0 2 0 0 cm 0 0 5 5 re f",
		Resources: patterns("P", bluePattern()),
		Want: []string{
			"clip_path [0 0 10 10] nonzero",
			"clip_path [0 0 10 10] nonzero",
			"fill_path [0 0 5 5] nonzero DeviceRGB[0 0 1]",
			"pop_clip",
			"pop_clip",
		},
	},
	{
		Name:      "uncolored",
		Content:   "/PCS cs 0 1 0 /U scn 0 0 30 30 re f",
		Resources: uncoloredResources(),
		Want: []string{
			"clip_path [0 0 30 30] nonzero",
			"begin_tile id=0 ctm=[1 0 0 1 0 0]",
			"clip_path [0 0 10 10] nonzero",
			"fill_path [0 0 5 5] nonzero DeviceRGB[0 1 0]",
			"pop_clip",
			"end_tile",
			"pop_clip",
		},
	},
	{
		Name:      "stroke_with_pattern",
		Content:   "/Pattern CS /P SCN 0 0 30 30 re S",
		Resources: patterns("P", bluePattern()),
		Want: []string{
			"clip_stroke_path [0 0 30 30] w=1",
			"begin_tile id=1 ctm=[1 0 0 1 0 0]",
			"clip_path [0 0 10 10] nonzero",
			"fill_path [0 0 5 5] nonzero DeviceRGB[0 0 1]",
			"pop_clip",
			"end_tile",
			"pop_clip",
		},
	},
	{
		Name:      "self_reference",
		Content:   "/Pattern cs /S scn 0 0 30 30 re f",
		Resources: selfPattern(),
		Want: []string{
			"clip_path [0 0 30 30] nonzero",
			"begin_tile id=1 ctm=[1 0 0 1 0 0]",
			"clip_path [0 0 10 10] nonzero",
			"clip_path [0 0 5 5] nonzero",
			"pop_clip",
			"pop_clip",
			"end_tile",
			"pop_clip",
		},
	},
	{
		Name:    "missing_pattern",
		Content: "/Pattern cs /Nope scn 0 0 1 1 re f",
		Want:    []string{},
	},
	{
		// excess Q operators cannot remove the clip to the cell
		Name:    "unbalanced_cell",
		Content: "/Pattern cs /P scn 0 0 10 10 re f",
		Resources: patterns("P", &pattern.Type1{
			TilingType: 1,
			BBox:       &pdf.Rectangle{URx: 10, URy: 10},
			Color:      true,
			Content:    Join(
				Parse("q 0 0 2 2 re W n Q"),
				Op(content.OpPopGraphicsState),
				Op(content.OpPopGraphicsState),
				Parse("q 1 1 1 1 re W n"),
			),
			Res: &content.Resources{},
		}),
		Want: []string{
			"clip_path [0 0 10 10] nonzero",
			"clip_path [0 0 10 10] nonzero",
			"clip_path [0 0 2 2] nonzero",
			"pop_clip",
			"clip_path [1 1 2 2] nonzero",
			"pop_clip",
			"pop_clip",
			"pop_clip",
		},
	},
}

// uncoloredResources returns resources with an uncoloured pattern U,
// which paints a 5x5 square in each 10x10 cell, and the matching pattern
// colour space PCS.
func uncoloredResources() *content.Resources {
	pat := &pattern.Type1{
		TilingType: 1,
		BBox:       &pdf.Rectangle{URx: 10, URy: 10},
		XStep:      10,
		YStep:      10,
		Content:    Parse("1 0 0 rg 0 0 5 5 re f"),
		Res:        &content.Resources{},
	}
	return &content.Resources{
		ColorSpace: map[pdf.Name]color.Space{"PCS": uncolored(pat)},
		Pattern:    map[pdf.Name]color.Pattern{"U": pat},
	}
}

// selfPattern returns resources containing a pattern which uses itself
// as the fill colour.
func selfPattern() *content.Resources {
	pat := bluePattern()
	pat.Content = Parse("/Pattern cs /S scn 0 0 5 5 re f")
	res := patterns("S", pat)
	pat.Res = res
	return res
}
