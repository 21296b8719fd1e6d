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
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/font"
	"seehuhn.de/go/pdf/font/charcode"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/content"
	"seehuhn.de/go/postscript/cid"
)

// Type3Font is implemented by Type 3 fonts whose glyphs can be executed
// by the interpreter.
type Type3Font interface {
	font.Instance
	FontMatrix() matrix.Matrix
	Resources() *content.Resources

	// CharProc returns the glyph procedure for a glyph, or nil.
	CharProc(c cid.CID) content.Stream

	// Uncacheable reports whether a glyph must be executed directly,
	// for example because it refers to the font itself.
	Uncacheable(c cid.CID) bool
}

// GlyphBounder can optionally be implemented by fonts to give tighter
// glyph bounding boxes.  The box is given in glyph space, where 1 unit
// is 1 em.
type GlyphBounder interface {
	GlyphBBox(c cid.CID) rect.Rect
}

// defaultGlyphBox is used for fonts which do not implement GlyphBounder.
var defaultGlyphBox = rect.Rect{LLx: 0, LLy: -0.25, URx: 1, URy: 1}

// textObject holds the state of the current text object.
type textObject struct {
	tm  matrix.Matrix
	tlm matrix.Matrix

	buf  *Text
	mode graphics.TextRenderingMode // render mode of buf

	clipMode bool // a clipping render mode was used in this text object
	clipped  bool // ClipText was already called for this text object
}

func newTextObject() textObject {
	return textObject{
		tm:  matrix.Identity,
		tlm: matrix.Identity,
	}
}

func (p *Interpreter) beginText() {
	p.text = newTextObject()
}

func (p *Interpreter) endText() {
	gs := p.flushText()
	if (p.text.clipMode || isClipMode(gs.Text.Render)) && !p.text.clipped {
		// a clipping text object without glyphs clips everything
		p.flushPending()
		gs.ClipDepth++
		p.dev.ClipText(&Text{}, gs.CTM, rect.Rect{}, false)
	}
	p.text = newTextObject()
}

func isClipMode(mode graphics.TextRenderingMode) bool {
	return mode >= graphics.TextRenderingModeFillClip
}

func (p *Interpreter) moveText(dx, dy float64) {
	p.text.tlm = matrix.Translate(dx, dy).Mul(p.text.tlm)
	p.text.tm = p.text.tlm
}

func (p *Interpreter) setRenderMode(mode graphics.TextRenderingMode) {
	gs := p.top()
	if gs.Text.Render != mode {
		gs = p.flushText()
		gs.Text.Render = mode
	}
}

// showString implements the Tj operator.
func (p *Interpreter) showString(s pdf.String) error {
	f := p.top().Text.Font
	if f == nil {
		p.warn("cannot draw text since font and size not set")
		return nil
	}
	codec := f.Codec()
	for len(s) > 0 {
		n := 1
		code := charcode.Code(s[0])
		if codec != nil {
			code, n, _ = codec.Decode(s)
		}
		n = min(max(n, 1), len(s))
		chunk := s[:n]
		s = s[n:]

		var info font.Code
		found := false
		for c := range f.Codes(chunk) {
			info = *c
			found = true
			break
		}
		if !found {
			continue
		}

		err := p.showGlyph(f, code, &info)
		if !isRecoverable(err) {
			return err
		} else if err != nil {
			p.warn("cannot show glyph", "code", code, "err", err)
		}
	}
	return nil
}

// showArray implements the TJ operator.
func (p *Interpreter) showArray(a pdf.Array) error {
	for _, obj := range a {
		switch obj := obj.(type) {
		case pdf.String:
			if err := p.showString(obj); err != nil {
				return err
			}
		default:
			x, ok := getNumber(obj)
			if !ok {
				continue
			}
			ts := &p.top().Text
			wmode := font.Horizontal
			if ts.Font != nil {
				wmode = ts.Font.WritingMode()
			}
			if wmode == font.Horizontal {
				p.text.tm = matrix.Translate(-x/1000*ts.Size*ts.Scale, 0).Mul(p.text.tm)
			} else {
				p.text.tm = matrix.Translate(0, -x/1000*ts.Size).Mul(p.text.tm)
			}
		}
	}
	return nil
}

// showGlyph adds one glyph to the text buffer and advances the text
// matrix.
func (p *Interpreter) showGlyph(f font.Instance, code charcode.Code, info *font.Code) error {
	gs := p.top()
	ts := &gs.Text
	wmode := f.WritingMode()
	trm := matrix.Matrix{ts.Size * ts.Scale, 0, 0, ts.Size, 0, ts.Rise}.Mul(p.text.tm)

	var err error
	if t3, ok := f.(Type3Font); ok && t3.Uncacheable(info.CID) {
		mode := ts.Render
		p.flushText()
		if mode != graphics.TextRenderingModeInvisible {
			err = p.renderType3Glyph(t3, info.CID, trm)
		}
	} else {
		p.addGlyph(f, trm, wmode, code, info)
	}

	ts = &p.top().Text
	width := info.Width*ts.Size + ts.CharSpacing
	if info.UseWordSpacing {
		width += ts.WordSpacing
	}
	if wmode == font.Horizontal {
		width *= ts.Scale
		p.text.tm = matrix.Translate(width, 0).Mul(p.text.tm)
	} else {
		p.text.tm = matrix.Translate(0, width).Mul(p.text.tm)
	}
	return err
}

func (p *Interpreter) addGlyph(f font.Instance, trm matrix.Matrix, wmode font.WritingMode, code charcode.Code, info *font.Code) {
	mode := p.top().Text.Render
	if p.text.buf != nil && p.text.mode != mode {
		p.flushText()
	}
	if p.text.buf == nil {
		p.text.buf = &Text{}
		p.text.mode = mode
	}
	if isClipMode(mode) {
		p.text.clipMode = true
	}

	lin := trm
	lin[4], lin[5] = 0, 0

	t := p.text.buf
	var span *TextSpan
	if n := len(t.Spans); n > 0 {
		last := t.Spans[n-1]
		if last.Font == f && last.Trm == lin && last.WMode == wmode {
			span = last
		}
	}
	if span == nil {
		span = &TextSpan{Font: f, Trm: lin, WMode: wmode}
		t.Spans = append(t.Spans, span)
	}
	span.Items = append(span.Items, TextItem{
		X:    trm[4],
		Y:    trm[5],
		CID:  info.CID,
		Code: code,
		Text: info.Text,
	})
}

// flushText sends buffered glyphs to the device and returns the current
// graphics state.  Fatal errors are recorded in p.fatal.
func (p *Interpreter) flushText() *GState {
	if t := p.text.buf; t != nil {
		p.text.buf = nil
		err := p.showText(t, p.text.mode)
		if !isRecoverable(err) {
			if p.fatal == nil {
				p.fatal = err
			}
		} else if err != nil {
			p.warn("cannot show text", "err", err)
		}
	}
	return p.top()
}

// showText paints a text run using the given render mode.
func (p *Interpreter) showText(t *Text, mode graphics.TextRenderingMode) error {
	var fill, stroke, clip, invisible bool
	switch mode {
	case graphics.TextRenderingModeFill:
		fill = true
	case graphics.TextRenderingModeStroke:
		stroke = true
	case graphics.TextRenderingModeFillStroke:
		fill, stroke = true, true
	case graphics.TextRenderingModeInvisible:
		invisible = true
	case graphics.TextRenderingModeFillClip:
		fill, clip = true, true
	case graphics.TextRenderingModeStrokeClip:
		stroke, clip = true, true
	case graphics.TextRenderingModeFillStrokeClip:
		fill, stroke, clip = true, true, true
	case graphics.TextRenderingModeClip:
		clip = true
	}
	if p.hidden > 0 {
		fill, stroke = false, false
		invisible = true
	}

	gs := p.top()
	bbox := textBounds(t, gs.CTM)
	if stroke {
		bbox = inflate(bbox, strokeExpansion(&gs.Line, gs.CTM))
	}

	if invisible {
		p.flushPending()
		p.dev.IgnoreText(t, gs.CTM)
	}

	var err error
	if fill || stroke {
		p.flushPending()
		err = p.inGroup(bbox, func(gs *GState) error {
			if fill && stroke && needsKnockout(gs) {
				p.dev.BeginGroup(bbox, nil, false, true, normalBlend, 1)
				defer p.dev.EndGroup()
			}
			if fill {
				if err := p.fillText(gs, t, bbox); err != nil {
					return err
				}
			}
			if stroke {
				return p.strokeText(gs, t, bbox)
			}
			return nil
		})
		if !isRecoverable(err) {
			return err
		}
	}

	if clip {
		p.flushPending()
		gs := p.top()
		if !p.text.clipped {
			gs.ClipDepth++
			p.text.clipped = true
			p.dev.ClipText(t, gs.CTM, bbox, false)
		} else {
			p.dev.ClipText(t, gs.CTM, bbox, true)
		}
	}
	return err
}

func (p *Interpreter) fillText(gs *GState, t *Text, bbox rect.Rect) error {
	mat := &gs.Fill
	switch mat.Kind {
	case MaterialColor:
		p.dev.FillText(t, gs.CTM, mat.paint())
	case MaterialPattern:
		if mat.Pattern == nil {
			return nil
		}
		p.dev.ClipText(t, gs.CTM, bbox, false)
		defer p.dev.PopClip()
		return p.paintPattern(mat.Pattern, mat.GState, bbox, targetFill)
	case MaterialShading:
		if mat.Shading == nil {
			return nil
		}
		p.dev.ClipText(t, gs.CTM, bbox, false)
		p.dev.FillShade(mat.Shading, p.shadeCTM(mat), mat.Alpha, mat.Params)
		p.dev.PopClip()
	}
	return nil
}

func (p *Interpreter) strokeText(gs *GState, t *Text, bbox rect.Rect) error {
	mat := &gs.Stroke
	switch mat.Kind {
	case MaterialColor:
		p.dev.StrokeText(t, &gs.Line, gs.CTM, mat.paint())
	case MaterialPattern:
		if mat.Pattern == nil {
			return nil
		}
		p.dev.ClipStrokeText(t, &gs.Line, gs.CTM, bbox)
		defer p.dev.PopClip()
		return p.paintPattern(mat.Pattern, mat.GState, bbox, targetStroke)
	case MaterialShading:
		if mat.Shading == nil {
			return nil
		}
		p.dev.ClipStrokeText(t, &gs.Line, gs.CTM, bbox)
		p.dev.FillShade(mat.Shading, p.shadeCTM(mat), mat.Alpha, mat.Params)
		p.dev.PopClip()
	}
	return nil
}

// textBounds returns the device space bounding box of a text run.
func textBounds(t *Text, ctm matrix.Matrix) rect.Rect {
	b := newBounds(ctm)
	for _, span := range t.Spans {
		gb, _ := span.Font.(GlyphBounder)
		for _, item := range span.Items {
			box := defaultGlyphBox
			if gb != nil {
				box = gb.GlyphBBox(item.CID)
			}
			m := span.Trm
			m[4], m[5] = item.X, item.Y
			b.CTM = m.Mul(ctm)
			b.addPoint(vec.Vec2{X: box.LLx, Y: box.LLy})
			b.addPoint(vec.Vec2{X: box.URx, Y: box.LLy})
			b.addPoint(vec.Vec2{X: box.URx, Y: box.URy})
			b.addPoint(vec.Vec2{X: box.LLx, Y: box.URy})
		}
	}
	return b.rect()
}

// renderType3Glyph executes the glyph procedure of an uncacheable Type 3
// glyph.  trm maps text space to user space.
func (p *Interpreter) renderType3Glyph(f Type3Font, c cid.CID, trm matrix.Matrix) (err error) {
	if p.cycle[f] {
		return nil
	}
	proc := f.CharProc(c)
	if proc == nil {
		return nil
	}
	p.cycle[f] = true
	defer delete(p.cycle, f)
	defer func() { err = flattenNested("Type 3 glyph", err) }()

	base := p.depth()
	p.gsave()
	defer p.restoreTo(base)

	gs := p.top()
	gs.CTM = formMatrix(f.FontMatrix()).Mul(trm).Mul(gs.CTM)

	oldbot := p.gbot
	p.gbot = p.depth()
	defer func() { p.gbot = oldbot }()

	res := f.Resources()
	if res == nil {
		res = p.resources()
	}
	return p.runContent(res, proc)
}
