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
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/extgstate"
	"seehuhn.de/go/pdf/graphics/softclip"
)

// applyExtGState implements the gs operator.  Only the parameters selected
// by ext.Set are changed.
func (p *Interpreter) applyExtGState(ext *extgstate.ExtGState) {
	gs := p.top()
	set := ext.Set

	if set&graphics.StateTextFont != 0 {
		gs.Text.Font = ext.TextFont
		gs.Text.Size = ext.TextFontSize
	}
	if set&graphics.StateTextKnockout != 0 {
		gs.Text.Knockout = ext.TextKnockout
	}
	if set&graphics.StateLineWidth != 0 {
		gs.Line.LineWidth = ext.LineWidth
	}
	if set&graphics.StateLineCap != 0 {
		gs.Line.Cap = lineCap(int(ext.LineCap))
	}
	if set&graphics.StateLineJoin != 0 {
		gs.Line.Join = lineJoin(int(ext.LineJoin))
	}
	if set&graphics.StateMiterLimit != 0 {
		gs.Line.MiterLimit = max(ext.MiterLimit, 1)
	}
	if set&graphics.StateLineDash != 0 {
		gs.Line.Dash = ext.DashPattern
		gs.Line.DashPhase = ext.DashPhase
	}
	if set&graphics.StateRenderingIntent != 0 {
		gs.Fill.Params.Intent = ext.RenderingIntent
		gs.Stroke.Params.Intent = ext.RenderingIntent
	}
	if set&graphics.StateStrokeAdjustment != 0 {
		gs.StrokeAdjust = ext.StrokeAdjustment
	}
	if set&graphics.StateBlendMode != 0 {
		gs.BlendMode = resolveBlend(ext.BlendMode)
	}
	if set&graphics.StateSoftMask != 0 {
		gs.SoftMask = nil
		if sm, ok := ext.SoftMask.(*softclip.Mask); ok && sm != nil && sm.G != nil {
			gs.SoftMask = &softMask{
				form:       sm.G,
				resources:  p.resources(),
				ctm:        gs.CTM,
				backdrop:   sm.BC,
				luminosity: sm.S == softclip.Luminosity,
			}
		}
	}
	if set&graphics.StateStrokeAlpha != 0 {
		gs.Stroke.Alpha = min(max(ext.StrokeAlpha, 0), 1)
	}
	if set&graphics.StateFillAlpha != 0 {
		gs.Fill.Alpha = min(max(ext.FillAlpha, 0), 1)
	}
	if set&graphics.StateAlphaSourceFlag != 0 {
		gs.AlphaIsShape = ext.AlphaSourceFlag
	}
	if set&graphics.StateBlackPointCompensation != 0 {
		gs.Fill.Params.BlackPointCompensation = ext.BlackPointCompensation
		gs.Stroke.Params.BlackPointCompensation = ext.BlackPointCompensation
	}
	if set&graphics.StateOverprint != 0 {
		gs.Fill.Params.OverprintFill = ext.OverprintFill
		gs.Stroke.Params.OverprintStroke = ext.OverprintStroke
	}
	if set&graphics.StateOverprintMode != 0 {
		gs.Fill.Params.OverprintMode = ext.OverprintMode
		gs.Stroke.Params.OverprintMode = ext.OverprintMode
	}
	if set&graphics.StateFlatnessTolerance != 0 {
		gs.Flatness = ext.FlatnessTolerance
	}
	if set&graphics.StateSmoothnessTolerance != 0 {
		gs.Smoothness = ext.SmoothnessTolerance
	}
}
