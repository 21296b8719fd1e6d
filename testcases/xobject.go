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
	"seehuhn.de/go/pdf/graphics/image"
	"seehuhn.de/go/pdf/property"
)

var xobjectCases = []TestCase{
	{
		Name:    "form",
		Content: "/F Do",
		Resources: xobject("F", &form.Form{
			Content: Parse("0 0 10 10 re f"),
			Res:     &content.Resources{},
			Matrix:  matrix.Translate(100, 0),
			BBox:    box10,
		}),
		Want: []string{
			"clip_path [100 0 110 10] nonzero",
			"fill_path [100 0 110 10] nonzero DeviceGray[0]",
			"pop_clip",
		},
	},
	{
		// the clip to the bounding box is only set once the form paints
		Name:    "form_empty",
		Content: "/F Do 0 0 20 20 re f",
		Resources: xobject("F", &form.Form{
			Content: Parse("1 0 0 rg 0 0 10 10 re n"),
			Res:     &content.Resources{},
			BBox:    box10,
		}),
		Want: []string{
			"fill_path [0 0 20 20] nonzero DeviceGray[0]",
		},
	},
	{
		Name:      "form_self_reference",
		Content:   "/F Do",
		Resources: selfForm(),
		Want: []string{
			"clip_path [0 0 10 10] nonzero",
			"fill_path [0 0 1 1] nonzero DeviceGray[0]",
			"pop_clip",
		},
	},
	{
		Name:      "form_mutual_recursion",
		Content:   "/A Do",
		Resources: mutualForms(),
		Want: []string{
			"clip_path [0 0 10 10] nonzero",
			"clip_path [0 0 10 10] nonzero",
			"fill_path [0 0 1 1] nonzero DeviceGray[0]",
			"pop_clip",
			"pop_clip",
		},
	},
	{
		Name:    "form_inherits_resources",
		Content: "/F Do",
		Resources: &content.Resources{
			XObject: map[pdf.Name]graphics.XObject{
				"F": &form.Form{Content: Parse("/S sh"), BBox: box10},
			},
			Shading: map[pdf.Name]graphics.Shading{"S": axial(nil)},
		},
		Want: []string{
			"clip_path [0 0 10 10] nonzero",
			"fill_shade type=2 ctm=[1 0 0 1 0 0]",
			"pop_clip",
		},
	},
	{
		Name:    "transparency_group",
		Content: "/A gs /G Do",
		Resources: &content.Resources{
			ExtGState: map[pdf.Name]*extgstate.ExtGState{
				"A": {Set: graphics.StateFillAlpha, FillAlpha: 0.5},
			},
			XObject: map[pdf.Name]graphics.XObject{
				"G": &form.Form{
					Content: Parse("0 0 10 10 re f"),
					Res:     &content.Resources{},
					BBox:    box10,
					Group: &group.TransparencyAttributes{
						CS:       color.SpaceDeviceRGB,
						Isolated: true,
					},
				},
			},
		},
		Want: []string{
			"begin_group [0 0 10 10] isolated alpha=0.5",
			"clip_path [0 0 10 10] nonzero",
			"fill_path [0 0 10 10] nonzero DeviceGray[0]",
			"pop_clip",
			"end_group",
		},
	},
	{
		Name:    "knockout_group_blend",
		Content: "/M gs /G Do",
		Resources: &content.Resources{
			ExtGState: map[pdf.Name]*extgstate.ExtGState{
				"M": {
					Set:       graphics.StateBlendMode,
					BlendMode: graphics.BlendMode{graphics.BlendModeMultiply},
				},
			},
			XObject: map[pdf.Name]graphics.XObject{
				"G": &form.Form{
					Content: Parse("0 0 10 10 re f"),
					Res:     &content.Resources{},
					BBox:    box10,
					Group:   &group.TransparencyAttributes{Knockout: true},
				},
			},
		},
		Want: []string{
			"begin_group [0 0 10 10] knockout Multiply",
			"clip_path [0 0 10 10] nonzero",
			"fill_path [0 0 10 10] nonzero DeviceGray[0]",
			"pop_clip",
			"end_group",
		},
	},
	{
		Name:    "form_unbalanced",
		Content: "/F Do 0 0 20 20 re f",
		Resources: xobject("F", &form.Form{
			Content: Join(
				Parse("q 0 0 5 5 re W n Q"),
				Op(content.OpPopGraphicsState),
				Op(content.OpPopGraphicsState),
				Parse("0 0 1 1 re W n"),
			),
			Res:  &content.Resources{},
			BBox: box10,
		}),
		Want: []string{
			"clip_path [0 0 10 10] nonzero",
			"clip_path [0 0 5 5] nonzero",
			"pop_clip",
			"clip_path [0 0 1 1] nonzero",
			"pop_clip",
			"pop_clip",
			"fill_path [0 0 20 20] nonzero DeviceGray[0]",
		},
	},
	{
		Name:    "form_pattern_anchor",
		Content: "/F Do",
		Resources: &content.Resources{
			XObject: map[pdf.Name]graphics.XObject{
				"F": &form.Form{
					Content: Parse("/Pattern cs /P scn 0 0 5 5 re f"),
					Matrix:  matrix.Scale(2, 2),
					BBox:    box10,
				},
			},
			Pattern: map[pdf.Name]color.Pattern{"P": bluePattern()},
		},
		Want: []string{
			"clip_path [0 0 20 20] nonzero",
			"clip_path [0 0 10 10] nonzero",
			"clip_path [0 0 20 20] nonzero",
			"fill_path [0 0 10 10] nonzero DeviceRGB[0 0 1]",
			"pop_clip",
			"pop_clip",
			"pop_clip",
		},
	},
	{
		Name:    "form_hidden",
		Content: "/F Do",
		Resources: xobject("F", &form.Form{
			Content:         Parse("0 0 10 10 re f"),
			Res:             &content.Resources{},
			BBox:            box10,
			OptionalContent: ocGroup("H"),
		}),
		Hidden: []string{"H"},
		Want:   []string{},
	},
	{
		Name:    "form_layer",
		Content: "/F Do",
		Resources: xobject("F", &form.Form{
			Content:         Parse("0 0 10 10 re f"),
			Res:             &content.Resources{},
			BBox:            box10,
			OptionalContent: ocGroup("L"),
		}),
		Want: []string{
			`begin_layer "L"`,
			"clip_path [0 0 10 10] nonzero",
			"fill_path [0 0 10 10] nonzero DeviceGray[0]",
			"pop_clip",
			"end_layer",
		},
	},
	{
		// neither the layer nor the clip reach the device
		Name:    "form_layer_empty",
		Content: "/F Do",
		Resources: xobject("F", &form.Form{
			Res:             &content.Resources{},
			BBox:            box10,
			OptionalContent: ocGroup("L"),
		}),
		Want: []string{},
	},
	{
		Name:    "empty_form_in_layer",
		Content: "/OC /L1 BDC /F Do EMC",
		Resources: &content.Resources{
			XObject: map[pdf.Name]graphics.XObject{
				"F": &form.Form{Res: &content.Resources{}, BBox: box10},
			},
			Properties: map[pdf.Name]property.List{"L1": ocg("L1")},
		},
		Want: []string{},
	},
	{
		Name:      "image",
		Content:   "10 0 0 20 5 5 cm /Im Do",
		Resources: xobject("Im", grayImage(2, 3)),
		Want: []string{
			"fill_image 2x3 [5 5 15 25]",
		},
	},
	{
		Name:      "image_mask",
		Content:   "1 0 0 rg /M Do",
		Resources: xobject("M", &image.Mask{Width: 1, Height: 1}),
		Want: []string{
			"fill_image_mask 1x1 [0 0 1 1] DeviceRGB[1 0 0]",
		},
	},
	{
		Name:    "image_soft_mask",
		Content: "/Im Do",
		Resources: xobject("Im", &image.Dict{
			Width:            2,
			Height:           2,
			ColorSpace:       color.SpaceDeviceGray,
			BitsPerComponent: 8,
			SMask: &image.SoftMask{
				Width:            2,
				Height:           2,
				BitsPerComponent: 8,
			},
		}),
		Want: []string{
			"begin_mask [0 0 1 1] luminosity",
			"fill_image 2x2 [0 0 1 1]",
			"end_mask",
			"fill_image 2x2 [0 0 1 1]",
			"pop_clip",
		},
	},
	{
		Name:    "image_mask_pattern",
		Content: "/Pattern cs /P scn /M Do",
		Resources: &content.Resources{
			XObject: map[pdf.Name]graphics.XObject{"M": &image.Mask{Width: 1, Height: 1}},
			Pattern: map[pdf.Name]color.Pattern{"P": bluePattern()},
		},
		Want: []string{
			"clip_image_mask 1x1 [0 0 1 1]",
			"clip_path [0 0 10 10] nonzero",
			"fill_path [0 0 5 5] nonzero DeviceRGB[0 0 1]",
			"pop_clip",
			"pop_clip",
		},
	},
	{
		Name:    "image_layer",
		Content: "/Im Do",
		Resources: xobject("Im", &image.Dict{
			Width:            4,
			Height:           4,
			ColorSpace:       color.SpaceDeviceGray,
			BitsPerComponent: 8,
			OptionalContent:  ocGroup("Photos"),
		}),
		Want: []string{
			`begin_layer "Photos"`,
			"fill_image 4x4 [0 0 1 1]",
			"end_layer",
		},
	},
	{
		Name:    "image_hidden",
		Content: "/Im Do",
		Resources: xobject("Im", &image.Mask{
			Width:           1,
			Height:          1,
			OptionalContent: ocGroup("H"),
		}),
		Hidden: []string{"H"},
		Want:   []string{},
	},
	{
		Name: "inline_image",
		Stream: Join(
			Parse("2 0 0 2 0 0 cm"),
			Op(content.OpInlineImage,
				pdf.Dict{"W": pdf.Integer(2), "H": pdf.Integer(1), "CS": pdf.Name("G"), "BPC": pdf.Integer(8)},
				pdf.String("ab")),
		),
		Want: []string{
			"fill_image 2x1 [0 0 2 2]",
		},
	},
	{
		Name: "inline_image_mask",
		Stream: Join(
			Parse("0 0 1 rg"),
			Op(content.OpInlineImage,
				pdf.Dict{"W": pdf.Integer(1), "H": pdf.Integer(1), "IM": pdf.Boolean(true)},
				pdf.String("a")),
		),
		Want: []string{
			"fill_image_mask 1x1 [0 0 1 1] DeviceRGB[0 0 1]",
		},
	},
	{
		Name: "inline_image_bad",
		Stream: Join(
			Op(content.OpInlineImage, pdf.Dict{"W": pdf.Integer(1)}, pdf.String("a")),
			Parse("0 0 1 1 re f"),
		),
		Want: []string{
			"fill_path [0 0 1 1] nonzero DeviceGray[0]",
		},
	},
	{
		Name:    "missing_xobject",
		Content: "/Nope Do 0 0 1 1 re f",
		Want: []string{
			"fill_path [0 0 1 1] nonzero DeviceGray[0]",
		},
	},
}

// xobject returns resources containing a single XObject.
func xobject(name pdf.Name, x graphics.XObject) *content.Resources {
	return &content.Resources{
		XObject: map[pdf.Name]graphics.XObject{name: x},
	}
}

func grayImage(width, height int) *image.Dict {
	return &image.Dict{
		Width:            width,
		Height:           height,
		ColorSpace:       color.SpaceDeviceGray,
		BitsPerComponent: 8,
	}
}

// selfForm returns resources containing a form which invokes itself.
func selfForm() *content.Resources {
	f := &form.Form{
		Content: Parse("/F Do 0 0 1 1 re f"),
		BBox:    box10,
	}
	res := xobject("F", f)
	f.Res = res
	return res
}

// mutualForms returns resources containing two forms A and B which
// invoke each other.
func mutualForms() *content.Resources {
	res := &content.Resources{}
	res.XObject = map[pdf.Name]graphics.XObject{
		"A": &form.Form{
			Content: Parse("/B Do"),
			Res:     res,
			BBox:    box10,
		},
		"B": &form.Form{
			Content: Parse("/A Do 0 0 1 1 re f"),
			Res:     res,
			BBox:    box10,
		},
	}
	return res
}
