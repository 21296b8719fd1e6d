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
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf/font"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"
	"seehuhn.de/go/pdf/graphics/content"
	"seehuhn.de/go/pdf/graphics/form"
)

// GState is one level of the graphics state stack.
type GState struct {
	CTM matrix.Matrix

	// ClipDepth counts the device clips which are in effect for this
	// state.  It never decreases while the state is on the stack.
	ClipDepth int

	Line StrokeStyle

	Fill   Material
	Stroke Material

	Text TextState

	// BlendMode holds a single, supported blend mode.
	BlendMode graphics.BlendMode
	SoftMask  *softMask

	// Uncolored is set while painting an uncoloured tiling pattern or
	// a Type 3 glyph declared with d1.  Colour changes are ignored.
	Uncolored bool

	Flatness     float64
	Smoothness   float64
	StrokeAdjust bool
	AlphaIsShape bool
}

// TextState holds the text parameters of the graphics state.
type TextState struct {
	Font        font.Instance
	Size        float64
	CharSpacing float64
	WordSpacing float64
	Scale       float64 // horizontal scaling, 1 = 100%
	Leading     float64
	Render      graphics.TextRenderingMode
	Rise        float64
	Knockout    bool
}

// softMask is a soft mask, as set by an ExtGState dictionary.
type softMask struct {
	form       *form.Form
	resources  *content.Resources
	ctm        matrix.Matrix
	backdrop   []float64
	luminosity bool
}

func newGState(ctm matrix.Matrix) *GState {
	gs := &GState{
		CTM: ctm,
		Line: StrokeStyle{
			LineWidth:  1,
			Cap:        graphics.LineCapButt,
			Join:       graphics.LineJoinMiter,
			MiterLimit: 10,
		},
		Text: TextState{
			Scale: 1,
		},
		BlendMode: normalBlend,
		Flatness:  1,
	}
	for _, mat := range []*Material{&gs.Fill, &gs.Stroke} {
		mat.Kind = MaterialColor
		mat.Alpha = 1
		mat.setDefaultColor(color.SpaceDeviceGray)
		mat.Params.Intent = graphics.RelativeColorimetric
	}
	return gs
}

func (gs *GState) material(what paintTarget) *Material {
	if what == targetStroke {
		return &gs.Stroke
	}
	return &gs.Fill
}

// top returns the current graphics state.
func (p *Interpreter) top() *GState {
	return p.gstate[len(p.gstate)-1]
}

// depth returns the index of the current graphics state.
func (p *Interpreter) depth() int {
	return len(p.gstate) - 1
}

// gsave pushes a copy of the current graphics state.
func (p *Interpreter) gsave() {
	gs := *p.top()
	p.gstate = append(p.gstate, &gs)
}

// grestore implements the Q operator.  The stack is never popped below
// the floor of the current content stream.
func (p *Interpreter) grestore() {
	if p.depth() <= p.gbot {
		p.warn("gstate underflow in content stream")
		return
	}
	p.popState()
}

// popState removes the top graphics state, ignoring the floor.
func (p *Interpreter) popState() {
	n := len(p.gstate)
	if n < 2 {
		return
	}
	p.dropClips(n - 1)
	old, below := p.gstate[n-1], p.gstate[n-2]
	p.gstate[n-1] = nil
	p.gstate = p.gstate[:n-1]
	for i := old.ClipDepth; i > below.ClipDepth; i-- {
		p.dev.PopClip()
	}
}

// restoreTo pops graphics states until the given index is on top.
func (p *Interpreter) restoreTo(level int) {
	for p.depth() > level {
		p.popState()
	}
}

// captured returns the graphics state with index idx, clamped to the
// current stack.
func (p *Interpreter) captured(idx int) *GState {
	idx = min(max(idx, 0), p.depth())
	return p.gstate[idx]
}

// shadeCTM returns the matrix for painting the shading material mat.
func (p *Interpreter) shadeCTM(mat *Material) matrix.Matrix {
	return formMatrix(mat.Matrix).Mul(p.captured(mat.GState).CTM)
}
