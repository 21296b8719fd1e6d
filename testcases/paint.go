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
	"seehuhn.de/go/pdf/graphics/color"
	"seehuhn.de/go/pdf/graphics/content"
	"seehuhn.de/go/pdf/graphics/extgstate"
	"seehuhn.de/go/pdf/graphics/form"
	"seehuhn.de/go/pdf/graphics/group"
	"seehuhn.de/go/pdf/graphics/pattern"
	"seehuhn.de/go/pdf/graphics/softclip"
)

var paintCases = []TestCase{
	{
		Name:      "knockout_fill_stroke",
		Content:   "/K gs 0 0 10 10 re B",
		Resources: extGState("K", &extgstate.ExtGState{Set: graphics.StateStrokeAlpha, StrokeAlpha: 0.5}),
		Want: []string{
			"begin_group [-5 -5 15 15] knockout",
			"fill_path [0 0 10 10] nonzero DeviceGray[0]",
			"stroke_path [0 0 10 10] w=1 DeviceGray[0] alpha=0.5",
			"end_group",
		},
	},
	{
		Name:    "blend_mode",
		Content: "/M gs 0 0 10 10 re f",
		Resources: extGState("M", &extgstate.ExtGState{
			Set:       graphics.StateBlendMode,
			BlendMode: graphics.BlendMode{graphics.BlendModeMultiply},
		}),
		Want: []string{
			"begin_group [0 0 10 10] Multiply",
			"fill_path [0 0 10 10] nonzero DeviceGray[0]",
			"end_group",
		},
	},
	{
		// the first supported entry of a blend mode array is used
		Name:    "blend_mode_fallback",
		Content: "/M gs 0 0 10 10 re f",
		Resources: extGState("M", &extgstate.ExtGState{
			Set:       graphics.StateBlendMode,
			BlendMode: graphics.BlendMode{"Fancy", graphics.BlendModeScreen},
		}),
		Want: []string{
			"begin_group [0 0 10 10] Screen",
			"fill_path [0 0 10 10] nonzero DeviceGray[0]",
			"end_group",
		},
	},
	{
		Name:    "cmyk",
		Content: "/DeviceCMYK cs 0 0 1 1 re f 0.1 0.2 0.3 0.4 k 0 0 1 1 re f",
		Want: []string{
			"fill_path [0 0 1 1] nonzero DeviceCMYK[0 0 0 1]",
			"fill_path [0 0 1 1] nonzero DeviceCMYK[0.1 0.2 0.3 0.4]",
		},
	},
	{
		Name:    "clamped_color",
		Content: "2 -1 0.5 rg 0 0 1 1 re f",
		Want: []string{
			"fill_path [0 0 1 1] nonzero DeviceRGB[1 0 0.5]",
		},
	},
	{
		Name:    "separation",
		Content: "/Sep cs 0 0 1 1 re f 0.3 sc 0 0 1 1 re f",
		Resources: &content.Resources{
			ColorSpace: map[pdf.Name]color.Space{"Sep": spot()},
		},
		Want: []string{
			"fill_path [0 0 1 1] nonzero Separation(Spot)[1]",
			"fill_path [0 0 1 1] nonzero Separation(Spot)[0.3]",
		},
	},
	{
		Name:    "indexed",
		Content: "/I CS 300 SC 0 0 1 1 re S",
		Resources: &content.Resources{
			ColorSpace: map[pdf.Name]color.Space{"I": palette()},
		},
		Want: []string{
			"stroke_path [0 0 1 1] w=1 Indexed(DeviceRGB,255)[255]",
		},
	},
	{
		Name:      "shading_pattern_capture",
		Content:   "/Pattern cs /P scn 2 0 0 2 0 0 cm 0 0 10 10 re f",
		Resources: patterns("P", &pattern.Type2{Shading: axial(nil)}),
		Want: []string{
			"clip_path [0 0 20 20] nonzero",
			"fill_shade type=2 ctm=[1 0 0 1 0 0]",
			"pop_clip",
		},
	},
	{
		Name:    "shading_pattern_matrix",
		Content: "q 2 0 0 2 0 0 cm /Pattern CS /P SCN 0 0 1 1 re S Q",
		Resources: patterns("P", &pattern.Type2{
			Matrix:  matrix.Translate(5, 0),
			Shading: axial(nil),
		}),
		Want: []string{
			"clip_stroke_path [0 0 2 2] w=1",
			"fill_shade type=2 ctm=[1 0 0 1 5 0]",
			"pop_clip",
		},
	},
	{
		Name:      "color_on_shading",
		Content:   "/Pattern cs /P scn 1 sc 0 0 1 1 re f",
		Resources: patterns("P", &pattern.Type2{Shading: axial(nil)}),
		Want: []string{
			"clip_path [0 0 1 1] nonzero",
			"fill_shade type=2 ctm=[1 0 0 1 0 0]",
			"pop_clip",
		},
	},
	{
		Name:    "sh_operator",
		Content: "2 0 0 2 0 0 cm /S sh",
		Resources: &content.Resources{
			Shading: map[pdf.Name]graphics.Shading{"S": axial(nil)},
		},
		Want: []string{
			"fill_shade type=2 ctm=[2 0 0 2 0 0]",
		},
	},
	{
		Name:    "sh_alpha_blend",
		Content: "/A gs /S sh",
		Resources: &content.Resources{
			ExtGState: map[pdf.Name]*extgstate.ExtGState{
				"A": {
					Set:       graphics.StateFillAlpha | graphics.StateBlendMode,
					FillAlpha: 0.25,
					BlendMode: graphics.BlendMode{graphics.BlendModeScreen},
				},
			},
			Shading: map[pdf.Name]graphics.Shading{
				"S": axial(&pdf.Rectangle{URx: 4, URy: 4}),
			},
		},
		Want: []string{
			"begin_group [0 0 4 4] Screen",
			"fill_shade type=2 ctm=[1 0 0 1 0 0] alpha=0.25",
			"end_group",
		},
	},
	{
		Name:    "luminosity_mask",
		Content: "/SM gs 0 0 5 5 re f",
		Resources: extGState("SM", &extgstate.ExtGState{
			Set: graphics.StateSoftMask,
			SoftMask: &softclip.Mask{
				S: softclip.Luminosity,
				G: &form.Form{
					Content: Parse("1 g 0 0 10 10 re f"),
					Res:     &content.Resources{},
					BBox:    box10,
					Group:   &group.TransparencyAttributes{},
				},
			},
		}),
		Want: []string{
			"begin_mask [inf] luminosity",
			"begin_group [0 0 10 10] isolated",
			"clip_path [0 0 10 10] nonzero",
			"fill_path [0 0 10 10] nonzero DeviceGray[1]",
			"pop_clip",
			"end_group",
			"end_mask",
			"fill_path [0 0 5 5] nonzero DeviceGray[0]",
			"pop_clip",
		},
	},
	{
		// the mask keeps the CTM from the time it was set
		Name:    "alpha_mask_capture",
		Content: "/SM gs 2 0 0 2 0 0 cm 0 0 5 5 re f",
		Resources: extGState("SM", &extgstate.ExtGState{
			Set: graphics.StateSoftMask,
			SoftMask: &softclip.Mask{
				S: softclip.Alpha,
				G: &form.Form{
					Content: Parse("0 0 10 10 re f"),
					Res:     &content.Resources{},
					BBox:    box10,
					Group:   &group.TransparencyAttributes{Isolated: true},
				},
			},
		}),
		Want: []string{
			"begin_mask [0 0 10 10] alpha",
			"begin_group [0 0 10 10] isolated",
			"clip_path [0 0 10 10] nonzero",
			"fill_path [0 0 10 10] nonzero DeviceGray[0]",
			"pop_clip",
			"end_group",
			"end_mask",
			"fill_path [0 0 10 10] nonzero DeviceGray[0]",
			"pop_clip",
		},
	},
	{
		// a mask group which paints nothing produces no clip
		Name:    "empty_mask_group",
		Content: "/SM gs 0 0 5 5 re f",
		Resources: extGState("SM", &extgstate.ExtGState{
			Set: graphics.StateSoftMask,
			SoftMask: &softclip.Mask{
				S: softclip.Luminosity,
				G: &form.Form{
					Res:   &content.Resources{},
					BBox:  box10,
					Group: &group.TransparencyAttributes{},
				},
			},
		}),
		Want: []string{
			"begin_mask [inf] luminosity",
			"begin_group [0 0 10 10] isolated",
			"end_group",
			"end_mask",
			"fill_path [0 0 5 5] nonzero DeviceGray[0]",
			"pop_clip",
		},
	},
	{
		Name:    "remove_soft_mask",
		Content: "/SM gs /None gs 0 0 1 1 re f",
		Resources: &content.Resources{
			ExtGState: map[pdf.Name]*extgstate.ExtGState{
				"SM": {
					Set: graphics.StateSoftMask,
					SoftMask: &softclip.Mask{
						G: &form.Form{
							Res:   &content.Resources{},
							BBox:  pdf.Rectangle{URx: 1, URy: 1},
							Group: &group.TransparencyAttributes{},
						},
					},
				},
				"None": {Set: graphics.StateSoftMask},
			},
		},
		Want: []string{
			"fill_path [0 0 1 1] nonzero DeviceGray[0]",
		},
	},
}

// extGState returns resources containing a single graphics state
// parameter dictionary.
func extGState(name pdf.Name, ext *extgstate.ExtGState) *content.Resources {
	return &content.Resources{
		ExtGState: map[pdf.Name]*extgstate.ExtGState{name: ext},
	}
}

// patterns returns resources containing a single pattern.
func patterns(name pdf.Name, pat color.Pattern) *content.Resources {
	return &content.Resources{
		Pattern: map[pdf.Name]color.Pattern{name: pat},
	}
}
