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
	"errors"
	"iter"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/font"
	"seehuhn.de/go/pdf/font/charcode"
	"seehuhn.de/go/pdf/function"
	"seehuhn.de/go/pdf/graphics/color"
	"seehuhn.de/go/pdf/graphics/content"
	"seehuhn.de/go/pdf/graphics/pattern"
	"seehuhn.de/go/pdf/graphics/shading"
	"seehuhn.de/go/pdf/oc"
	"seehuhn.de/go/pdf/property"
	"seehuhn.de/go/postscript/cid"

	"seehuhn.de/go/interp"
)

var errNotEmbeddable = errors.New("test font cannot be embedded")

// SimpleFont is a font with one-byte character codes.  The CID equals
// the character code and all glyphs are 500 units wide.
type SimpleFont struct{}

var _ font.Instance = (*SimpleFont)(nil)

// PostScriptName implements the [font.Instance] interface.
func (*SimpleFont) PostScriptName() string {
	return "Simple"
}

// WritingMode implements the [font.Instance] interface.
func (*SimpleFont) WritingMode() font.WritingMode {
	return font.Horizontal
}

// Codec implements the [font.Instance] interface.
func (*SimpleFont) Codec() *charcode.Codec {
	return charcode.SimpleCodec
}

// Codes implements the [font.Instance] interface.
func (*SimpleFont) Codes(s pdf.String) iter.Seq[*font.Code] {
	return func(yield func(*font.Code) bool) {
		var code font.Code
		for _, b := range s {
			code = font.Code{
				CID:            cid.CID(b),
				Width:          0.5,
				Text:           string(rune(b)),
				UseWordSpacing: b == ' ',
			}
			if !yield(&code) {
				return
			}
		}
	}
}

// FontInfo implements the [font.Instance] interface.
func (*SimpleFont) FontInfo() any {
	return nil
}

// Embed implements the [pdf.Embedder] interface.
func (*SimpleFont) Embed(*pdf.EmbedHelper) (pdf.Native, error) {
	return nil, errNotEmbeddable
}

// RawFont is a one-byte font which does not provide a codec.
type RawFont struct {
	SimpleFont
}

// Codec implements the [font.Instance] interface.
func (*RawFont) Codec() *charcode.Codec {
	return nil
}

// WideFont is a vertical font with two-byte character codes.  Glyphs are
// 1000 units high and the advance is downwards.  Incomplete codes map to
// CID 0 and have no text.
type WideFont struct {
	codec *charcode.Codec
}

var _ font.Instance = (*WideFont)(nil)

// NewWideFont returns a new two-byte font.
func NewWideFont() *WideFont {
	codec, err := charcode.NewCodec(charcode.UCS2)
	if err != nil {
		panic(err)
	}
	return &WideFont{codec: codec}
}

// PostScriptName implements the [font.Instance] interface.
func (*WideFont) PostScriptName() string {
	return "Wide"
}

// WritingMode implements the [font.Instance] interface.
func (*WideFont) WritingMode() font.WritingMode {
	return font.Vertical
}

// Codec implements the [font.Instance] interface.
func (f *WideFont) Codec() *charcode.Codec {
	return f.codec
}

// Codes implements the [font.Instance] interface.
func (f *WideFont) Codes(s pdf.String) iter.Seq[*font.Code] {
	return func(yield func(*font.Code) bool) {
		var code font.Code
		for len(s) > 0 {
			c, n, valid := f.codec.Decode(s)
			s = s[n:]
			code = font.Code{Width: -1}
			if valid {
				code.CID = cid.CID(c)
				code.Text = string(rune(c&0xFF<<8 | c>>8))
			}
			if !yield(&code) {
				return
			}
		}
	}
}

// FontInfo implements the [font.Instance] interface.
func (*WideFont) FontInfo() any {
	return nil
}

// Embed implements the [pdf.Embedder] interface.
func (*WideFont) Embed(*pdf.EmbedHelper) (pdf.Native, error) {
	return nil, errNotEmbeddable
}

// GlyphFont is a Type 3 font.  Procs maps CIDs to glyph descriptions in
// PDF syntax.  Glyphs listed in NoCache are executed by the interpreter
// every time they are shown.
type GlyphFont struct {
	SimpleFont
	Procs   map[cid.CID]string
	Res     *content.Resources
	NoCache map[cid.CID]bool
}

var _ interp.Type3Font = (*GlyphFont)(nil)

// FontMatrix implements the [interp.Type3Font] interface.
func (f *GlyphFont) FontMatrix() matrix.Matrix {
	return matrix.Matrix{0.001, 0, 0, 0.001, 0, 0}
}

// Resources implements the [interp.Type3Font] interface.
func (f *GlyphFont) Resources() *content.Resources {
	return f.Res
}

// CharProc implements the [interp.Type3Font] interface.
func (f *GlyphFont) CharProc(c cid.CID) content.Stream {
	src, ok := f.Procs[c]
	if !ok {
		return nil
	}
	return ParseGlyph(src)
}

// Uncacheable implements the [interp.Type3Font] interface.
func (f *GlyphFont) Uncacheable(c cid.CID) bool {
	return f.NoCache[c]
}

// ocg returns the property list of an optional content group dictionary.
func ocg(name string) property.List {
	return mustList(pdf.Dict{
		"Type": pdf.Name("OCG"),
		"Name": pdf.String(name),
	})
}

// ocmd returns the property list of an optional content membership
// dictionary with the given groups and the default AnyOn policy.
func ocmd(names ...string) property.List {
	groups := make(pdf.Array, len(names))
	for i, name := range names {
		groups[i] = pdf.Dict{
			"Type": pdf.Name("OCG"),
			"Name": pdf.String(name),
		}
	}
	return mustList(pdf.Dict{
		"Type": pdf.Name("OCMD"),
		"OCGs": groups,
	})
}

func mustList(dict pdf.Dict) property.List {
	list, err := property.ExtractList(pdf.NewExtractor(nil), dict)
	if err != nil {
		panic(err)
	}
	return list
}

// ocGroup returns an optional content group for use in XObjects.
func ocGroup(name string) *oc.Group {
	return &oc.Group{Name: name}
}

// StructMap is a structure tree which maps marked-content identifiers
// directly to structure elements, ignoring the StructParents key.
type StructMap map[int]*interp.StructElem

// Lookup implements the [interp.StructTree] interface.
func (m StructMap) Lookup(_, mcid int) *interp.StructElem {
	return m[mcid]
}

// sampleTree returns a small structure tree:
//
//	Sect (1)
//	  P (2)
//	    Span (3)   MCID 0
//	    Span (5)   MCID 2
//	Figure (4)     MCID 1
func sampleTree() StructMap {
	sect := &interp.StructElem{Type: "Sect", UID: 1}
	para := &interp.StructElem{Type: "P", Parent: sect, UID: 2}
	span := &interp.StructElem{Type: "Span", Parent: para, UID: 3}
	span2 := &interp.StructElem{Type: "Span", Parent: para, UID: 5}
	figure := &interp.StructElem{
		Type:     "Figure",
		UID:      4,
		Metatext: map[interp.MetatextKind]string{interp.MetatextAlt: "a picture"},
	}
	return StructMap{0: span, 1: figure, 2: span2}
}

var box10 = pdf.Rectangle{URx: 10, URy: 10}

// grayRamp maps t in [0, 1] to the grey value t.
func grayRamp() *function.Type2 {
	return &function.Type2{XMin: 0, XMax: 1, C0: []float64{0}, C1: []float64{1}, N: 1}
}

// axial returns a grey axial shading.  bbox may be nil.
func axial(bbox *pdf.Rectangle) *shading.Type2 {
	return &shading.Type2{
		ColorSpace: color.SpaceDeviceGray,
		P1:         vec.Vec2{X: 1},
		F:          grayRamp(),
		TMax:       1,
		BBox:       bbox,
	}
}

// spot returns a Separation colour space for the colorant "Spot", with
// DeviceCMYK as the alternate space.
func spot() color.Space {
	tint := &function.Type2{
		XMin: 0,
		XMax: 1,
		C0:   []float64{0, 0, 0, 0},
		C1:   []float64{0, 0, 0, 1},
		N:    1,
	}
	cs, err := color.Separation("Spot", color.SpaceDeviceCMYK, tint)
	if err != nil {
		panic(err)
	}
	return cs
}

// palette returns an indexed colour space with 256 grey levels in
// DeviceRGB.
func palette() color.Space {
	colors := make([]color.Color, 256)
	for i := range colors {
		x := float64(i) / 255
		colors[i] = color.DeviceRGB{x, x, x}
	}
	cs, err := color.Indexed(colors)
	if err != nil {
		panic(err)
	}
	return cs
}

// bluePattern returns a coloured tiling pattern with 10x10 cells, each
// containing a blue 5x5 square.
func bluePattern() *pattern.Type1 {
	return &pattern.Type1{
		TilingType: 1,
		BBox:       &pdf.Rectangle{URx: 10, URy: 10},
		XStep:      10,
		YStep:      10,
		Color:      true,
		Content:    Parse("0 0 1 rg 0 0 5 5 re f"),
		Res:        &content.Resources{},
	}
}

// uncolored returns the pattern colour space for uncoloured patterns
// with base space DeviceRGB.
func uncolored(pat *pattern.Type1) color.Space {
	return color.PatternUncolored(pat, color.DeviceRGB{0, 0, 0}).ColorSpace()
}
