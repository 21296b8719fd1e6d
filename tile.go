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
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/pattern"
)

// tileFudge avoids an extra row or column of cells caused by rounding
// errors at cell boundaries.
const tileFudge = 0.001

// paintPattern fills area (in device space) with a tiling pattern.  The
// pattern is anchored at the CTM of the graphics state with index capture.
// what says whether the pattern is used for filling or stroking.
func (p *Interpreter) paintPattern(pat *pattern.Type1, capture int, area rect.Rect, what paintTarget) (err error) {
	if p.cycle[pat] {
		return nil
	}
	p.cycle[pat] = true
	defer delete(p.cycle, pat)
	defer func() { err = flattenNested("pattern", err) }()

	bbox := pdfRect(pat.BBox)
	xstep, ystep := pat.XStep, pat.YStep
	if xstep == 0 {
		xstep = bbox.URx - bbox.LLx
	}
	if ystep == 0 {
		ystep = bbox.URy - bbox.LLy
	}
	if xstep == 0 || ystep == 0 {
		return nil
	}

	parent := p.captured(capture)

	base := p.depth()
	p.gsave()
	defer p.restoreTo(base)

	gs := p.top()
	gs.CTM = parent.CTM
	gs.Text.Font = parent.Text.Font
	gs.Line = parent.Line

	key := pat
	if !pat.Color {
		// The tile is painted in the current colour, so it cannot be
		// reused for other invocations.
		gs.Fill.unsetPattern()
		gs.Stroke.unsetPattern()
		if what == targetFill {
			gs.Stroke = gs.Fill
		} else {
			gs.Fill = gs.Stroke
		}
		gs.Uncolored = true
		key = nil
	} else {
		gs.material(what).unsetPattern()
	}
	gs.SoftMask = nil

	ptm := formMatrix(pat.Matrix).Mul(parent.CTM)
	inv, ok := invert(ptm)
	if !ok {
		return nil
	}

	saveParent := p.gparent
	newParent := p.depth() - 1
	saveParentCTM := p.gstate[newParent].CTM
	p.gparent = newParent
	p.gstate[newParent].CTM = ptm
	defer func() {
		p.gstate[newParent].CTM = saveParentCTM
		p.gparent = saveParent
	}()

	if IsInfinite(area) {
		area = transformRect(bbox, ptm)
	}
	local := transformRect(area, inv)

	fx0 := (local.LLx - bbox.LLx) / xstep
	fy0 := (local.LLy - bbox.LLy) / ystep
	fx1 := (local.URx - bbox.LLx) / xstep
	fy1 := (local.URy - bbox.LLy) / ystep
	if fx0 > fx1 {
		fx0, fx1 = fx1, fx0
	}
	if fy0 > fy1 {
		fy0, fy1 = fy1, fy0
	}

	if fx1-fx0 > 1 || fy1-fy0 > 1 {
		cached := p.dev.BeginTile(local, bbox, xstep, ystep, ptm, key)
		if !cached {
			p.top().CTM = ptm
			err = p.runPatternCell(pat)
		}
		p.dev.EndTile()
		return err
	}

	x0 := math.Floor(fx0 + tileFudge)
	y0 := math.Floor(fy0 + tileFudge)
	x1 := math.Ceil(fx1 - tileFudge)
	y1 := math.Ceil(fy1 - tileFudge)
	if fx1 > fx0 && x1 == x0 {
		x1 = x0 + 1
	}
	if fy1 > fy0 && y1 == y0 {
		y1 = y0 + 1
	}

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			p.top().CTM = matrix.Translate(x*xstep, y*ystep).Mul(ptm)
			if err := p.runPatternCell(pat); err != nil {
				return err
			}
		}
	}
	return nil
}

// runPatternCell runs the pattern content once, clipped to the pattern
// bounding box and under a fresh floor.  Unbalanced q operators in the
// content are undone.
func (p *Interpreter) runPatternCell(pat *pattern.Type1) error {
	oldbot := p.gbot
	p.gsave()
	level := p.depth()
	p.gbot = level
	defer func() {
		p.restoreTo(level - 1)
		p.gbot = oldbot
	}()
	if pat.BBox != nil {
		p.queueClip(pdfRect(pat.BBox))
	}

	res := pat.Res
	if res == nil {
		res = p.resources()
	}
	return p.runContent(res, pat.Content)
}

// showShade implements the sh operator.
func (p *Interpreter) showShade(sh graphics.Shading) error {
	if p.hidden > 0 {
		return nil
	}
	p.flushPending()
	gs := p.top()
	bbox := shadeBounds(sh, gs.CTM)
	return p.inGroup(bbox, func(gs *GState) error {
		p.dev.FillShade(sh, gs.CTM, gs.Fill.Alpha, gs.Fill.Params)
		return nil
	})
}
