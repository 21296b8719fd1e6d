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
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

func (p *Interpreter) moveTo(x, y float64) {
	pt := vec.Vec2{X: x, Y: y}
	p.path = p.path.MoveTo(pt)
	p.current = pt
	p.start = pt
	p.hasCurrent = true
}

func (p *Interpreter) lineTo(x, y float64) error {
	if !p.hasCurrent {
		return errorf("l", "no current point")
	}
	pt := vec.Vec2{X: x, Y: y}
	p.path = p.path.LineTo(pt)
	p.current = pt
	return nil
}

// curveTo implements the c, v and y operators.
func (p *Interpreter) curveTo(op string, c []float64) error {
	if !p.hasCurrent {
		return errorf(op, "no current point")
	}
	var p1, p2, p3 vec.Vec2
	switch op {
	case "c":
		p1 = vec.Vec2{X: c[0], Y: c[1]}
		p2 = vec.Vec2{X: c[2], Y: c[3]}
		p3 = vec.Vec2{X: c[4], Y: c[5]}
	case "v":
		p1 = p.current
		p2 = vec.Vec2{X: c[0], Y: c[1]}
		p3 = vec.Vec2{X: c[2], Y: c[3]}
	default: // "y"
		p1 = vec.Vec2{X: c[0], Y: c[1]}
		p2 = vec.Vec2{X: c[2], Y: c[3]}
		p3 = p2
	}
	p.path = p.path.CubeTo(p1, p2, p3)
	p.current = p3
	return nil
}

func (p *Interpreter) closePath() {
	if !p.hasCurrent {
		return
	}
	p.path = p.path.Close()
	p.current = p.start
}

func (p *Interpreter) rectangle(x, y, w, h float64) {
	p.moveTo(x, y)
	p.path = p.path.
		LineTo(vec.Vec2{X: x + w, Y: y}).
		LineTo(vec.Vec2{X: x + w, Y: y + h}).
		LineTo(vec.Vec2{X: x, Y: y + h}).
		Close()
}

// takePath removes the current path and returns it.
func (p *Interpreter) takePath() *path.Data {
	res := p.path
	p.path = &path.Data{}
	p.hasCurrent = false
	return res
}

// paintPath implements the path painting operators.  A pending clip
// (W or W*) is applied after painting.
func (p *Interpreter) paintPath(closePath, fill, stroke bool, rule FillRule) error {
	doClip, clipRule := p.clip, p.clipRule
	p.clip = false

	pth := p.takePath()
	n := len(pth.Cmds)
	if closePath && n > 0 && pth.Cmds[n-1] != path.CmdClose {
		pth = pth.Close()
	}
	if n == 0 && !doClip {
		return nil
	}

	if p.hidden > 0 {
		fill = false
		stroke = false
	}

	gs := p.top()
	var bbox rect.Rect
	if stroke {
		bbox = strokeBounds(pth, &gs.Line, gs.CTM)
	} else {
		bbox = pathBounds(pth, gs.CTM)
	}

	var paintErr error
	if fill || stroke {
		p.flushPending()
		paintErr = p.inGroup(bbox, func(gs *GState) error {
			if fill && stroke && needsKnockout(gs) {
				p.dev.BeginGroup(bbox, nil, false, true, normalBlend, 1)
				defer p.dev.EndGroup()
			}
			if fill {
				if err := p.fillPath(gs, pth, rule, bbox); err != nil {
					return err
				}
			}
			if stroke {
				return p.strokePath(gs, pth, bbox)
			}
			return nil
		})
		if !isRecoverable(paintErr) {
			return paintErr
		}
	}

	if doClip {
		p.flushPending()
		gs := p.top()
		gs.ClipDepth++
		p.dev.ClipPath(pth, clipRule, gs.CTM, bbox)
	}
	return paintErr
}

func (p *Interpreter) fillPath(gs *GState, pth *path.Data, rule FillRule, bbox rect.Rect) error {
	mat := &gs.Fill
	switch mat.Kind {
	case MaterialColor:
		p.dev.FillPath(pth, rule, gs.CTM, mat.paint())
	case MaterialPattern:
		if mat.Pattern == nil {
			return nil
		}
		p.dev.ClipPath(pth, rule, gs.CTM, bbox)
		defer p.dev.PopClip()
		return p.paintPattern(mat.Pattern, mat.GState, bbox, targetFill)
	case MaterialShading:
		if mat.Shading == nil {
			return nil
		}
		p.dev.ClipPath(pth, rule, gs.CTM, bbox)
		p.dev.FillShade(mat.Shading, p.shadeCTM(mat), mat.Alpha, mat.Params)
		p.dev.PopClip()
	}
	return nil
}

func (p *Interpreter) strokePath(gs *GState, pth *path.Data, bbox rect.Rect) error {
	mat := &gs.Stroke
	switch mat.Kind {
	case MaterialColor:
		p.dev.StrokePath(pth, &gs.Line, gs.CTM, mat.paint())
	case MaterialPattern:
		if mat.Pattern == nil {
			return nil
		}
		p.dev.ClipStrokePath(pth, &gs.Line, gs.CTM, bbox)
		defer p.dev.PopClip()
		return p.paintPattern(mat.Pattern, mat.GState, bbox, targetStroke)
	case MaterialShading:
		if mat.Shading == nil {
			return nil
		}
		p.dev.ClipStrokePath(pth, &gs.Line, gs.CTM, bbox)
		p.dev.FillShade(mat.Shading, p.shadeCTM(mat), mat.Alpha, mat.Params)
		p.dev.PopClip()
	}
	return nil
}
