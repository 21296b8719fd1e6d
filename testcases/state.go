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
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/content"
	"seehuhn.de/go/pdf/graphics/extgstate"
)

var stateCases = []TestCase{
	{
		Name:    "save_fill_restore",
		Content: "q 1 0 0 rg 10 10 50 50 re f Q",
		Want: []string{
			"fill_path [10 10 60 60] nonzero DeviceRGB[1 0 0]",
		},
	},
	{
		Name:    "restore_colour",
		Content: "q 1 0 0 rg Q 0 0 1 1 re f",
		Want: []string{
			"fill_path [0 0 1 1] nonzero DeviceGray[0]",
		},
	},
	{
		Name:    "concat",
		Content: "2 0 0 2 5 5 cm 0 0 10 10 re f",
		Want: []string{
			"fill_path [5 5 25 25] nonzero DeviceGray[0]",
		},
	},
	{
		Name:    "page_ctm",
		Content: "0 0 10 10 re f",
		CTM:     matrix.Matrix{1, 0, 0, -1, 0, 100},
		Want: []string{
			"fill_path [0 90 10 100] nonzero DeviceGray[0]",
		},
	},
	{
		Name:    "nested_clips",
		Content: "q 0 0 10 10 re W n q 0 0 5 5 re W* n Q Q",
		Want: []string{
			"clip_path [0 0 10 10] nonzero",
			"clip_path [0 0 5 5] evenodd",
			"pop_clip",
			"pop_clip",
		},
	},
	{
		Name:    "two_clips_one_level",
		Content: "q 0 0 10 10 re W n 2 2 5 5 re W n Q",
		Want: []string{
			"clip_path [0 0 10 10] nonzero",
			"clip_path [2 2 7 7] nonzero",
			"pop_clip",
			"pop_clip",
		},
	},
	{
		Name:   "excess_restore",
		Stream: Join(
			Parse("q 0 0 10 10 re W n Q"),
			Op(content.OpPopGraphicsState),
			Op(content.OpPopGraphicsState),
			Parse("1 1 2 2 re f"),
		),
		Want: []string{
			"clip_path [0 0 10 10] nonzero",
			"pop_clip",
			"fill_path [1 1 3 3] nonzero DeviceGray[0]",
		},
	},
	{
		Name:    "unclosed_save",
		Content: "q 0 0 10 10 re W n q",
		Want: []string{
			"clip_path [0 0 10 10] nonzero",
			"pop_clip",
		},
	},
	{
		Name:    "clip_and_fill",
		Content: "0 0 10 10 re W f 0 0 20 20 re f",
		Want: []string{
			"fill_path [0 0 10 10] nonzero DeviceGray[0]",
			"clip_path [0 0 10 10] nonzero",
			"fill_path [0 0 20 20] nonzero DeviceGray[0]",
			"pop_clip",
		},
	},
	{
		Name:   "bad_operands_skipped",
		Stream: Join(
			Op(content.OpSetLineWidth, pdf.String("x")),
			Parse("0 0 1 1 re f"),
			Op(content.OpLineTo, pdf.Integer(1), pdf.Integer(1)),
		),
		Want: []string{
			"fill_path [0 0 1 1] nonzero DeviceGray[0]",
		},
	},
	{
		Name:    "stroke_alpha",
		Content: "/A gs 0 0 10 10 re S",
		Resources: &content.Resources{
			ExtGState: map[pdf.Name]*extgstate.ExtGState{
				"A": {Set: graphics.StateStrokeAlpha, StrokeAlpha: 0.5},
			},
		},
		Want: []string{
			"stroke_path [0 0 10 10] w=1 DeviceGray[0] alpha=0.5",
		},
	},
	{
		Name:    "line_width_from_extgstate",
		Content: "q /W gs 0 0 10 10 re S Q 0 0 10 10 re S",
		Resources: &content.Resources{
			ExtGState: map[pdf.Name]*extgstate.ExtGState{
				"W": {Set: graphics.StateLineWidth, LineWidth: 3},
			},
		},
		Want: []string{
			"stroke_path [0 0 10 10] w=3 DeviceGray[0]",
			"stroke_path [0 0 10 10] w=1 DeviceGray[0]",
		},
	},
}
