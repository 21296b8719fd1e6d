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
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf/font"
	"seehuhn.de/go/pdf/font/charcode"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"
	"seehuhn.de/go/pdf/graphics/pattern"
	"seehuhn.de/go/postscript/cid"
)

// Device receives the drawing calls produced by the interpreter.
//
// Every Begin call is matched by the corresponding End call, and every
// clip (including the mask established by BeginMask/EndMask) is matched
// by a PopClip, on all exit paths of [Interpreter.Run].
// Coordinates passed to the device are in user space; the ctm argument
// maps them to device space.
type Device interface {
	FillPath(p *path.Data, rule FillRule, ctm matrix.Matrix, paint Paint)
	StrokePath(p *path.Data, style *StrokeStyle, ctm matrix.Matrix, paint Paint)
	ClipPath(p *path.Data, rule FillRule, ctm matrix.Matrix, scissor rect.Rect)
	ClipStrokePath(p *path.Data, style *StrokeStyle, ctm matrix.Matrix, scissor rect.Rect)

	FillText(t *Text, ctm matrix.Matrix, paint Paint)
	StrokeText(t *Text, style *StrokeStyle, ctm matrix.Matrix, paint Paint)

	// ClipText intersects the clip with the glyph outlines.  If
	// accumulate is true, the glyphs are added to the clip started by
	// the previous ClipText call instead of starting a new clip.
	ClipText(t *Text, ctm matrix.Matrix, scissor rect.Rect, accumulate bool)
	ClipStrokeText(t *Text, style *StrokeStyle, ctm matrix.Matrix, scissor rect.Rect)

	// IgnoreText receives text which is not drawn, for example text
	// in render mode 3.
	IgnoreText(t *Text, ctm matrix.Matrix)

	FillShade(sh graphics.Shading, ctm matrix.Matrix, alpha float64, params RenderingParams)
	FillImage(img graphics.Image, ctm matrix.Matrix, alpha float64, params RenderingParams)
	FillImageMask(img graphics.Image, ctm matrix.Matrix, paint Paint)
	ClipImageMask(img graphics.Image, ctm matrix.Matrix, scissor rect.Rect)

	PopClip()

	// BeginMask starts the definition of a soft mask.  After EndMask the
	// mask acts as a clip, which is removed by PopClip.
	BeginMask(area rect.Rect, luminosity bool, cs color.Space, backdrop []float64, params RenderingParams)
	EndMask()

	// BeginGroup opens a transparency group.  blend holds a single blend
	// mode.
	BeginGroup(area rect.Rect, cs color.Space, isolated, knockout bool, blend graphics.BlendMode, alpha float64)
	EndGroup()

	// BeginTile starts a tiling pattern cell covering area.  key
	// identifies the pattern for tile caching; it is nil if the tile
	// depends on the current colour and cannot be reused.  If the return
	// value is true, the device already has the tile for key and the cell
	// content is not sent again.
	BeginTile(area, view rect.Rect, xstep, ystep float64, ctm matrix.Matrix, key *pattern.Type1) (cached bool)
	EndTile()

	BeginLayer(name string)
	EndLayer()

	BeginStructure(kind StructureType, tag string, uid int)
	EndStructure()

	BeginMetatext(kind MetatextKind, text string)
	EndMetatext()
}

// NopDevice implements all methods of [Device] as no-ops.
// It can be embedded to implement only part of the interface.
type NopDevice struct{}

func (NopDevice) FillPath(*path.Data, FillRule, matrix.Matrix, Paint) {}
func (NopDevice) StrokePath(*path.Data, *StrokeStyle, matrix.Matrix, Paint) {}
func (NopDevice) ClipPath(*path.Data, FillRule, matrix.Matrix, rect.Rect) {}
func (NopDevice) ClipStrokePath(*path.Data, *StrokeStyle, matrix.Matrix, rect.Rect) {}
func (NopDevice) FillText(*Text, matrix.Matrix, Paint) {}
func (NopDevice) StrokeText(*Text, *StrokeStyle, matrix.Matrix, Paint) {}
func (NopDevice) ClipText(*Text, matrix.Matrix, rect.Rect, bool) {}
func (NopDevice) ClipStrokeText(*Text, *StrokeStyle, matrix.Matrix, rect.Rect) {}
func (NopDevice) IgnoreText(*Text, matrix.Matrix) {}
func (NopDevice) FillShade(graphics.Shading, matrix.Matrix, float64, RenderingParams) {}
func (NopDevice) FillImage(graphics.Image, matrix.Matrix, float64, RenderingParams) {}
func (NopDevice) FillImageMask(graphics.Image, matrix.Matrix, Paint) {}
func (NopDevice) ClipImageMask(graphics.Image, matrix.Matrix, rect.Rect) {}
func (NopDevice) PopClip() {}
func (NopDevice) BeginMask(rect.Rect, bool, color.Space, []float64, RenderingParams) {}
func (NopDevice) EndMask() {}
func (NopDevice) BeginGroup(rect.Rect, color.Space, bool, bool, graphics.BlendMode, float64) {}
func (NopDevice) EndGroup() {}
func (NopDevice) BeginTile(rect.Rect, rect.Rect, float64, float64, matrix.Matrix, *pattern.Type1) bool {
	return false
}
func (NopDevice) EndTile() {}
func (NopDevice) BeginLayer(string) {}
func (NopDevice) EndLayer() {}
func (NopDevice) BeginStructure(StructureType, string, int) {}
func (NopDevice) EndStructure() {}
func (NopDevice) BeginMetatext(MetatextKind, string) {}
func (NopDevice) EndMetatext() {}

// FillRule specifies the rule for determining interior points.
type FillRule int

const (
	NonZero FillRule = iota
	EvenOdd
)

func (r FillRule) String() string {
	if r == EvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

// StrokeStyle holds the line parameters of the graphics state.
// The Dash slice is never modified in place, so that copies of the
// graphics state can share it.
type StrokeStyle struct {
	LineWidth  float64
	Cap        graphics.LineCapStyle
	Join       graphics.LineJoinStyle
	MiterLimit float64
	Dash       []float64
	DashPhase  float64
}

// Paint describes a flat colour, as used for painting.
type Paint struct {
	Space  color.Space
	Color  []float64
	Alpha  float64
	Params RenderingParams
}

// Text is a run of glyphs, collected between two flushes of the text
// buffer.
type Text struct {
	Spans []*TextSpan
}

// TextSpan is a sequence of glyphs sharing font, size, orientation and
// writing mode.
type TextSpan struct {
	Font font.Instance

	// Trm is the text rendering matrix without its translation part.
	// It maps glyph space (1 unit = 1 em) to user space.
	Trm   matrix.Matrix
	WMode font.WritingMode

	Items []TextItem
}

// TextItem is a single glyph.
type TextItem struct {
	X, Y float64 // glyph origin in user space
	CID  cid.CID
	Code charcode.Code
	Text string
}

// Infinite is the rectangle used for unbounded areas.
var Infinite = rect.Rect{
	LLx: math.Inf(-1),
	LLy: math.Inf(-1),
	URx: math.Inf(1),
	URy: math.Inf(1),
}

// IsInfinite reports whether r is unbounded in some direction.
func IsInfinite(r rect.Rect) bool {
	return math.IsInf(r.LLx, 0) || math.IsInf(r.LLy, 0) ||
		math.IsInf(r.URx, 0) || math.IsInf(r.URy, 0)
}
