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
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/content"
	"seehuhn.de/go/pdf/property"
)

var markedCases = []TestCase{
	{
		Name:    "artifact",
		Content: "/Artifact BMC 0 0 1 1 re f EMC",
		Want: []string{
			`begin_structure Artifact "Artifact" 0`,
			"fill_path [0 0 1 1] nonzero DeviceGray[0]",
			"end_structure",
		},
	},
	{
		Name:    "metatext",
		Content: "/Span <</ActualText (Hi) /Alt (Greeting)>> BDC EMC",
		Want: []string{
			`begin_structure Span "Span" 0`,
			`begin_metatext ActualText "Hi"`,
			`begin_metatext Alt "Greeting"`,
			"end_metatext",
			"end_metatext",
			"end_structure",
		},
	},
	{
		// text strings in UTF-16 are decoded
		Name:    "metatext_utf16",
		Content: "/Span <</ActualText <FEFF00E4>>> BDC EMC",
		Want: []string{
			`begin_structure Span "Span" 0`,
			`begin_metatext ActualText "ä"`,
			"end_metatext",
			"end_structure",
		},
	},
	{
		Name:      "metatext_named",
		Content:   "/Span /Txt BDC EMC",
		Resources: &content.Resources{Properties: map[pdf.Name]property.List{"Txt": actualText("Ho")}},
		Want: []string{
			`begin_structure Span "Span" 0`,
			`begin_metatext ActualText "Ho"`,
			"end_metatext",
			"end_structure",
		},
	},
	{
		Name:      "layer_unpainted",
		Content:   "/OC /L1 BDC EMC",
		Resources: layers(),
		Want:      []string{},
	},
	{
		Name:      "layer_painted",
		Content:   "/OC /L1 BDC 0 0 1 1 re f EMC",
		Resources: layers(),
		Want: []string{
			`begin_layer "L1"`,
			"fill_path [0 0 1 1] nonzero DeviceGray[0]",
			"end_layer",
		},
	},
	{
		Name:      "layer_inline_dict",
		Content:   "/OC <</Type /OCG /Name (Inline)>> BDC 0 0 1 1 re f EMC",
		Resources: layers(),
		Want: []string{
			`begin_layer "Inline"`,
			"fill_path [0 0 1 1] nonzero DeviceGray[0]",
			"end_layer",
		},
	},
	{
		Name:      "inner_layer_unpainted",
		Content:   "/OC /L1 BDC 0 0 1 1 re f /OC /L2 BDC EMC EMC",
		Resources: layers(),
		Want: []string{
			`begin_layer "L1"`,
			"fill_path [0 0 1 1] nonzero DeviceGray[0]",
			"end_layer",
		},
	},
	{
		Name:      "hidden_layer",
		Content:   "/OC /H BDC 0 0 1 1 re f /S sh EMC 0 0 2 2 re f",
		Resources: layers(),
		Hidden:    []string{"H"},
		Want: []string{
			"fill_path [0 0 2 2] nonzero DeviceGray[0]",
		},
	},
	{
		// clipping still applies inside hidden content
		Name:      "hidden_layer_clip",
		Content:   "/OC /H BDC 0 0 1 1 re W n EMC",
		Resources: layers(),
		Hidden:    []string{"H"},
		Want: []string{
			`begin_layer "H"`,
			"clip_path [0 0 1 1] nonzero",
			"end_layer",
			"pop_clip",
		},
	},
	{
		Name:      "membership",
		Content:   "/OC /M BDC 0 0 1 1 re f EMC",
		Resources: layers(),
		Want: []string{
			`begin_layer "L1"`,
			`begin_layer "L2"`,
			"fill_path [0 0 1 1] nonzero DeviceGray[0]",
			"end_layer",
			"end_layer",
		},
	},
	{
		// with the default AnyOn policy, one visible group suffices
		Name:      "membership_partly_hidden",
		Content:   "/OC /M BDC 0 0 1 1 re f EMC",
		Resources: layers(),
		Hidden:    []string{"L1"},
		Want: []string{
			`begin_layer "L1"`,
			`begin_layer "L2"`,
			"fill_path [0 0 1 1] nonzero DeviceGray[0]",
			"end_layer",
			"end_layer",
		},
	},
	{
		Name:      "membership_hidden",
		Content:   "/OC /M BDC 0 0 1 1 re f EMC",
		Resources: layers(),
		Hidden:    []string{"L1", "L2"},
		Want:      []string{},
	},
	{
		// a structure tag around a layer is still reported
		Name:      "tagged_layer",
		Content:   "/P BMC /OC /L1 BDC 0 0 1 1 re f EMC EMC",
		Resources: layers(),
		Want: []string{
			`begin_structure P "P" 0`,
			`begin_layer "L1"`,
			"fill_path [0 0 1 1] nonzero DeviceGray[0]",
			"end_layer",
			"end_structure",
		},
	},
	{
		Name:       "structure_diff",
		Content:    "/Span <</MCID 0>> BDC EMC /Figure <</MCID 1>> BDC EMC",
		StructTree: sampleTree(),
		Want: []string{
			`begin_structure Sect "Sect" 1`,
			`begin_structure P "P" 2`,
			`begin_structure Span "Span" 3`,
			"end_structure",
			"end_structure",
			"end_structure",
			`begin_structure Figure "Figure" 4`,
			`begin_metatext Alt "a picture"`,
			"end_metatext",
			"end_structure",
		},
	},
	{
		Name:       "structure_sibling",
		Content:    "/Span <</MCID 0>> BDC EMC /Span <</MCID 2>> BDC EMC",
		StructTree: sampleTree(),
		Want: []string{
			`begin_structure Sect "Sect" 1`,
			`begin_structure P "P" 2`,
			`begin_structure Span "Span" 3`,
			"end_structure",
			`begin_structure Span "Span" 5`,
			"end_structure",
			"end_structure",
			"end_structure",
		},
	},
	{
		Name:       "unknown_mcid",
		Content:    "/P <</MCID 7>> BDC EMC",
		StructTree: sampleTree(),
		Want: []string{
			`begin_structure P "P" 0`,
			"end_structure",
		},
	},
	{
		// tags which are not structure types produce no events
		Name:    "unknown_tag",
		Content: "/Highlight BMC 0 0 1 1 re f EMC",
		Want: []string{
			"fill_path [0 0 1 1] nonzero DeviceGray[0]",
		},
	},
	{
		Name: "unbalanced_emc",
		Stream: Join(
			Op(content.OpEndMarkedContent),
			Parse("0 0 1 1 re f"),
		),
		Want: []string{
			"fill_path [0 0 1 1] nonzero DeviceGray[0]",
		},
	},
	{
		Name:   "unclosed_bmc",
		Stream: Op(content.OpBeginMarkedContent, pdf.Name("P")),
		Want: []string{
			`begin_structure P "P" 0`,
			"end_structure",
		},
	},
	{
		Name:    "marked_points",
		Content: "/X MP /Y <</MCID 3>> DP",
		Want:    []string{},
	},
}

// layers returns resources with the optional content groups L1, L2 and
// H, the membership dictionary M containing L1 and L2, and a shading S.
func layers() *content.Resources {
	return &content.Resources{
		Properties: map[pdf.Name]property.List{
			"L1": ocg("L1"),
			"L2": ocg("L2"),
			"H":  ocg("H"),
			"M":  ocmd("L1", "L2"),
		},
		Shading: map[pdf.Name]graphics.Shading{"S": axial(nil)},
	}
}

// actualText returns a property list with an ActualText entry.
func actualText(text string) property.List {
	return mustList(pdf.Dict{"ActualText": pdf.String(text)})
}
