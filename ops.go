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
	"errors"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/font"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"
	"seehuhn.de/go/pdf/graphics/content"
	"seehuhn.de/go/pdf/graphics/extgstate"
	"seehuhn.de/go/pdf/property"
)

var errInvalidOperands = errors.New("invalid operands")

// textOps lists the operators which do not require buffered text to be
// flushed first.
var textOps = map[content.OpName]bool{
	content.OpTextBegin:                      true,
	content.OpTextSetCharacterSpacing:        true,
	content.OpTextSetWordSpacing:             true,
	content.OpTextSetHorizontalScaling:       true,
	content.OpTextSetLeading:                 true,
	content.OpTextSetFont:                    true,
	content.OpTextSetRenderingMode:           true,
	content.OpTextSetRise:                    true,
	content.OpTextMoveOffset:                 true,
	content.OpTextMoveOffsetSetLeading:       true,
	content.OpTextSetMatrix:                  true,
	content.OpTextNextLine:                   true,
	content.OpTextShow:                       true,
	content.OpTextShowArray:                  true,
	content.OpTextShowMoveNextLine:           true,
	content.OpTextShowMoveNextLineSetSpacing: true,
	content.OpType3ColoredGlyph:              true,
	content.OpType3UncoloredGlyph:            true,
	content.OpMoveTo:                         true,
	content.OpLineTo:                         true,
	content.OpCurveTo:                        true,
	content.OpCurveToV:                       true,
	content.OpCurveToY:                       true,
	content.OpClosePath:                      true,
	content.OpRectangle:                      true,
	content.OpBeginCompatibility:             true,
	content.OpEndCompatibility:               true,
}

// do executes a single operator.
func (p *Interpreter) do(op content.Operator) error {
	args := op.Args
	opName := string(op.Name)

	getInteger := func() (int, bool) {
		if len(args) == 0 {
			return 0, false
		}
		x, ok := args[0].(pdf.Integer)
		args = args[1:]
		return int(x), ok
	}
	getNum := func() (float64, bool) {
		if len(args) == 0 {
			return 0, false
		}
		x, ok := getNumber(args[0])
		args = args[1:]
		return x, ok
	}
	getName := func() (pdf.Name, bool) {
		if len(args) == 0 {
			return "", false
		}
		x, ok := args[0].(pdf.Name)
		args = args[1:]
		return x, ok
	}
	getString := func() (pdf.String, bool) {
		if len(args) == 0 {
			return nil, false
		}
		x, ok := args[0].(pdf.String)
		args = args[1:]
		return x, ok
	}
	getArray := func() (pdf.Array, bool) {
		if len(args) == 0 {
			return nil, false
		}
		x, ok := args[0].(pdf.Array)
		args = args[1:]
		return x, ok
	}
	getMatrix := func() (matrix.Matrix, bool) {
		var m matrix.Matrix
		for i := range m {
			x, ok := getNum()
			if !ok {
				return m, false
			}
			m[i] = x
		}
		return m, true
	}
	getNums := func() ([]float64, bool) {
		res := make([]float64, 0, len(args))
		for len(args) > 0 {
			x, ok := getNumber(args[0])
			if !ok {
				return res, false
			}
			res = append(res, x)
			args = args[1:]
		}
		return res, true
	}
	bad := func() error {
		return &ContentError{Op: opName, Err: errInvalidOperands}
	}

	if !textOps[op.Name] {
		p.flushText()
	}

	// Operators are listed in the order of table 50 ("Operator categories") in
	// ISO 32000-2:2020.

	switch op.Name {

	// == General graphics state =========================================

	case content.OpSetLineWidth: // line width
		x, ok := getNum()
		if !ok {
			return bad()
		}
		p.top().Line.LineWidth = x

	case content.OpSetLineCap: // line cap style
		x, ok := getInteger()
		if !ok {
			return bad()
		}
		p.top().Line.Cap = lineCap(x)

	case content.OpSetLineJoin: // line join style
		x, ok := getInteger()
		if !ok {
			return bad()
		}
		p.top().Line.Join = lineJoin(x)

	case content.OpSetMiterLimit: // miter limit
		x, ok := getNum()
		if !ok {
			return bad()
		}
		p.top().Line.MiterLimit = max(x, 1)

	case content.OpSetLineDash: // dash pattern and phase
		a, ok1 := getArray()
		phase, ok2 := getNum()
		if !(ok1 && ok2) {
			return bad()
		}
		dash, ok := convertDashPattern(a)
		if !ok {
			return bad()
		}
		gs := p.top()
		gs.Line.Dash = dash
		gs.Line.DashPhase = phase

	case content.OpSetRenderingIntent: // rendering intent
		name, ok := getName()
		if !ok {
			return bad()
		}
		gs := p.top()
		gs.Fill.Params.Intent = graphics.RenderingIntent(name)
		gs.Stroke.Params.Intent = graphics.RenderingIntent(name)

	case content.OpSetFlatnessTolerance: // flatness tolerance
		x, ok := getNum()
		if !ok {
			return bad()
		}
		p.top().Flatness = x

	case content.OpSetExtGState: // set parameters from graphics state parameter dictionary
		name, ok := getName()
		if !ok {
			return bad()
		}
		var ext map[pdf.Name]*extgstate.ExtGState
		if res := p.resources(); res != nil {
			ext = res.ExtGState
		}
		val, err := lookup(opName, "ExtGState", ext, name)
		if err != nil {
			return err
		}
		p.applyExtGState(val)

	// == Special graphics state =========================================

	case content.OpPushGraphicsState:
		p.gsave()

	case content.OpPopGraphicsState:
		p.grestore()

	case content.OpTransform:
		m, ok := getMatrix()
		if !ok {
			return bad()
		}
		gs := p.top()
		gs.CTM = m.Mul(gs.CTM)

	// == Path construction ==============================================

	case content.OpMoveTo:
		x, ok1 := getNum()
		y, ok2 := getNum()
		if !(ok1 && ok2) {
			return bad()
		}
		p.moveTo(x, y)

	case content.OpLineTo:
		x, ok1 := getNum()
		y, ok2 := getNum()
		if !(ok1 && ok2) {
			return bad()
		}
		return p.lineTo(x, y)

	case content.OpCurveTo, content.OpCurveToV, content.OpCurveToY:
		want := 4
		if op.Name == content.OpCurveTo {
			want = 6
		}
		coords, ok := getNums()
		if !ok || len(coords) != want {
			return bad()
		}
		return p.curveTo(opName, coords)

	case content.OpClosePath:
		p.closePath()

	case content.OpRectangle:
		x, ok1 := getNum()
		y, ok2 := getNum()
		w, ok3 := getNum()
		h, ok4 := getNum()
		if !(ok1 && ok2 && ok3 && ok4) {
			return bad()
		}
		p.rectangle(x, y, w, h)

	// == Path painting ==================================================

	case content.OpStroke:
		return p.paintPath(false, false, true, NonZero)
	case content.OpCloseAndStroke:
		return p.paintPath(true, false, true, NonZero)
	case content.OpFill, content.OpFillCompat:
		return p.paintPath(false, true, false, NonZero)
	case content.OpFillEvenOdd:
		return p.paintPath(false, true, false, EvenOdd)
	case content.OpFillAndStroke:
		return p.paintPath(false, true, true, NonZero)
	case content.OpFillAndStrokeEvenOdd:
		return p.paintPath(false, true, true, EvenOdd)
	case content.OpCloseFillAndStroke:
		return p.paintPath(true, true, true, NonZero)
	case content.OpCloseFillAndStrokeEvenOdd:
		return p.paintPath(true, true, true, EvenOdd)
	case content.OpEndPath:
		return p.paintPath(false, false, false, NonZero)

	// == Clipping paths =================================================

	case content.OpClipNonZero:
		p.clip = true
		p.clipRule = NonZero
	case content.OpClipEvenOdd:
		p.clip = true
		p.clipRule = EvenOdd

	// == Text objects ===================================================

	case content.OpTextBegin:
		p.beginText()

	case content.OpTextEnd:
		p.endText()

	// == Text state =====================================================

	case content.OpTextSetCharacterSpacing:
		x, ok := getNum()
		if !ok {
			return bad()
		}
		p.top().Text.CharSpacing = x

	case content.OpTextSetWordSpacing:
		x, ok := getNum()
		if !ok {
			return bad()
		}
		p.top().Text.WordSpacing = x

	case content.OpTextSetHorizontalScaling:
		x, ok := getNum()
		if !ok {
			return bad()
		}
		p.top().Text.Scale = x / 100

	case content.OpTextSetLeading:
		x, ok := getNum()
		if !ok {
			return bad()
		}
		p.top().Text.Leading = x

	case content.OpTextSetFont:
		name, ok1 := getName()
		size, ok2 := getNum()
		if !(ok1 && ok2) {
			return bad()
		}
		var fonts map[pdf.Name]font.Instance
		if res := p.resources(); res != nil {
			fonts = res.Font
		}
		f, err := lookup(opName, "Font", fonts, name)
		if err != nil {
			return err
		}
		gs := p.top()
		gs.Text.Font = f
		gs.Text.Size = size

	case content.OpTextSetRenderingMode:
		x, ok := getInteger()
		if !ok || x < 0 || x > 7 {
			return bad()
		}
		p.setRenderMode(graphics.TextRenderingMode(x))

	case content.OpTextSetRise:
		x, ok := getNum()
		if !ok {
			return bad()
		}
		p.top().Text.Rise = x

	// == Text positioning ===============================================

	case content.OpTextMoveOffset:
		dx, ok1 := getNum()
		dy, ok2 := getNum()
		if !(ok1 && ok2) {
			return bad()
		}
		p.moveText(dx, dy)

	case content.OpTextMoveOffsetSetLeading:
		dx, ok1 := getNum()
		dy, ok2 := getNum()
		if !(ok1 && ok2) {
			return bad()
		}
		p.top().Text.Leading = -dy
		p.moveText(dx, dy)

	case content.OpTextSetMatrix:
		m, ok := getMatrix()
		if !ok {
			return bad()
		}
		p.text.tm = m
		p.text.tlm = m

	case content.OpTextNextLine:
		p.moveText(0, -p.top().Text.Leading)

	// == Text showing ===================================================

	case content.OpTextShow:
		s, ok := getString()
		if !ok {
			return bad()
		}
		return p.showString(s)

	case content.OpTextShowMoveNextLine:
		s, ok := getString()
		if !ok {
			return bad()
		}
		p.moveText(0, -p.top().Text.Leading)
		return p.showString(s)

	case content.OpTextShowMoveNextLineSetSpacing:
		aw, ok1 := getNum()
		ac, ok2 := getNum()
		s, ok3 := getString()
		if !(ok1 && ok2 && ok3) {
			return bad()
		}
		gs := p.top()
		gs.Text.WordSpacing = aw
		gs.Text.CharSpacing = ac
		p.moveText(0, -gs.Text.Leading)
		return p.showString(s)

	case content.OpTextShowArray:
		a, ok := getArray()
		if !ok {
			return bad()
		}
		return p.showArray(a)

	// == Type 3 fonts ===================================================

	case content.OpType3ColoredGlyph:
		// coloured glyph, nothing to do

	case content.OpType3UncoloredGlyph:
		p.top().Uncolored = true

	// == Color ==========================================================

	case content.OpSetStrokeColorSpace, content.OpSetFillColorSpace:
		name, ok := getName()
		if !ok {
			return bad()
		}
		cs, err := p.colorSpace(opName, name)
		if err != nil {
			return err
		}
		p.setColorSpace(targetOf(op.Name == content.OpSetStrokeColorSpace), cs)

	case content.OpSetStrokeColor, content.OpSetFillColor:
		v, ok := getNums()
		if !ok {
			return bad()
		}
		p.setColor(targetOf(op.Name == content.OpSetStrokeColor), v)

	case content.OpSetStrokeColorN, content.OpSetFillColorN:
		what := targetOf(op.Name == content.OpSetStrokeColorN)
		if n := len(args); n > 0 {
			if name, isName := args[n-1].(pdf.Name); isName {
				args = args[:n-1]
				v, ok := getNums()
				if !ok {
					return bad()
				}
				if len(v) == 0 {
					v = nil
				}
				return p.selectPattern(opName, what, name, v)
			}
		}
		v, ok := getNums()
		if !ok {
			return bad()
		}
		p.setColor(what, v)

	case content.OpSetStrokeGray, content.OpSetFillGray:
		v, ok := getNums()
		if !ok || len(v) != 1 {
			return bad()
		}
		what := targetOf(op.Name == content.OpSetStrokeGray)
		p.setColorSpace(what, color.SpaceDeviceGray)
		p.setColor(what, v)

	case content.OpSetStrokeRGB, content.OpSetFillRGB:
		v, ok := getNums()
		if !ok || len(v) != 3 {
			return bad()
		}
		what := targetOf(op.Name == content.OpSetStrokeRGB)
		p.setColorSpace(what, color.SpaceDeviceRGB)
		p.setColor(what, v)

	case content.OpSetStrokeCMYK, content.OpSetFillCMYK:
		v, ok := getNums()
		if !ok || len(v) != 4 {
			return bad()
		}
		what := targetOf(op.Name == content.OpSetStrokeCMYK)
		p.setColorSpace(what, color.SpaceDeviceCMYK)
		p.setColor(what, v)

	// == Shading patterns ===============================================

	case content.OpShading:
		name, ok := getName()
		if !ok {
			return bad()
		}
		var shadings map[pdf.Name]graphics.Shading
		if res := p.resources(); res != nil {
			shadings = res.Shading
		}
		sh, err := lookup(opName, "Shading", shadings, name)
		if err != nil {
			return err
		}
		return p.showShade(sh)

	// == Inline images ==================================================

	case content.OpInlineImage:
		if len(args) != 2 {
			return bad()
		}
		dict, ok1 := args[0].(pdf.Dict)
		data, ok2 := args[1].(pdf.String)
		if !(ok1 && ok2) {
			return bad()
		}
		img, err := p.inlineImage(dict, data)
		if err != nil {
			return &ContentError{Op: "BI", Err: err}
		}
		return p.showImage(img)

	// == XObjects =======================================================

	case content.OpXObject:
		name, ok := getName()
		if !ok {
			return bad()
		}
		return p.doXObject(opName, name)

	// == Marked content =================================================

	case content.OpMarkedContentPoint, content.OpMarkedContentPointWithProperties:
		// marked-content points carry no device calls

	case content.OpBeginMarkedContent:
		tag, ok := getName()
		if !ok {
			return bad()
		}
		return p.pushMarkedContent(tag, nil)

	case content.OpBeginMarkedContentWithProperties:
		tag, ok := getName()
		if !ok || len(args) != 1 {
			return bad()
		}
		var list property.List
		switch x := args[0].(type) {
		case pdf.Dict:
			l, err := property.ExtractList(pdf.NewExtractor(nil), x)
			if err != nil {
				return &ContentError{Op: opName, Err: err}
			}
			list = l
		case pdf.Name:
			var props map[pdf.Name]property.List
			if res := p.resources(); res != nil {
				props = res.Properties
			}
			l, err := lookup(opName, "Properties", props, x)
			if err != nil {
				return err
			}
			list = l
		default:
			return bad()
		}
		return p.pushMarkedContent(tag, list)

	case content.OpEndMarkedContent:
		p.popMarkedContent(true)

	// == Compatibility ==================================================

	case content.OpBeginCompatibility, content.OpEndCompatibility:
		// unknown operators are always ignored
	}

	return nil
}

func targetOf(stroke bool) paintTarget {
	if stroke {
		return targetStroke
	}
	return targetFill
}

// colorSpace resolves the operand of the CS and cs operators.
func (p *Interpreter) colorSpace(op string, name pdf.Name) (color.Space, error) {
	if cs := deviceSpace(name); cs != nil {
		return cs, nil
	}
	var spaces map[pdf.Name]color.Space
	if res := p.resources(); res != nil {
		spaces = res.ColorSpace
	}
	return lookup(op, "ColorSpace", spaces, name)
}

// selectPattern implements SCN and scn with a pattern name.
func (p *Interpreter) selectPattern(op string, what paintTarget, name pdf.Name, v []float64) error {
	var patterns map[pdf.Name]color.Pattern
	if res := p.resources(); res != nil {
		patterns = res.Pattern
	}
	pat, err := lookup(op, "Pattern", patterns, name)
	if err != nil {
		return err
	}
	p.setPattern(what, pat, v)
	return nil
}

func getNumber(x pdf.Object) (float64, bool) {
	switch x := x.(type) {
	case pdf.Real:
		return float64(x), true
	case pdf.Integer:
		return float64(x), true
	default:
		return 0, false
	}
}

func convertDashPattern(dashPattern pdf.Array) (pat []float64, ok bool) {
	if len(dashPattern) == 0 {
		return nil, true
	}
	pat = make([]float64, len(dashPattern))
	allZero := true
	for i, obj := range dashPattern {
		x, ok := getNumber(obj)
		if !ok || x < 0 {
			return nil, false
		}
		if x != 0 {
			allZero = false
		}
		pat[i] = x
	}
	if allZero {
		return nil, false
	}
	return pat, true
}

func lineCap(x int) graphics.LineCapStyle {
	return graphics.LineCapStyle(min(max(x, 0), 2))
}

func lineJoin(x int) graphics.LineJoinStyle {
	return graphics.LineJoinStyle(min(max(x, 0), 2))
}
