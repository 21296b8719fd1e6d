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
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"
)

// normalBlend is the blend mode of the initial graphics state.
var normalBlend = graphics.BlendMode{graphics.BlendModeNormal}

var knownBlendModes = map[pdf.Name]bool{
	graphics.BlendModeNormal:     true,
	graphics.BlendModeMultiply:   true,
	graphics.BlendModeScreen:     true,
	graphics.BlendModeOverlay:    true,
	graphics.BlendModeDarken:     true,
	graphics.BlendModeLighten:    true,
	graphics.BlendModeColorDodge: true,
	graphics.BlendModeColorBurn:  true,
	graphics.BlendModeHardLight:  true,
	graphics.BlendModeSoftLight:  true,
	graphics.BlendModeDifference: true,
	graphics.BlendModeExclusion:  true,
	graphics.BlendModeHue:        true,
	graphics.BlendModeSaturation: true,
	graphics.BlendModeColor:      true,
	graphics.BlendModeLuminosity: true,
}

// resolveBlend reduces the BM entry of an ExtGState dictionary to a single
// blend mode.  The first recognised name is used.  Compatible and unknown
// blend modes map to Normal.
func resolveBlend(bm graphics.BlendMode) graphics.BlendMode {
	for _, name := range bm {
		if knownBlendModes[name] {
			return graphics.BlendMode{name}
		}
	}
	return normalBlend
}

// isNormalBlend reports whether bm is the Normal blend mode.
func isNormalBlend(bm graphics.BlendMode) bool {
	return len(bm) == 0 || bm[0] == graphics.BlendModeNormal
}

// groupScope records what beginGroup opened on the device.
// The end method must be called on every exit path.
type groupScope struct {
	p     *Interpreter
	mask  *softMask
	blend bool
}

// beginGroup renders a pending soft mask and opens a transparency group
// for non-normal blend modes.  Even if an error is returned, the caller
// must call end on the returned scope.
func (p *Interpreter) beginGroup(bbox rect.Rect) (groupScope, error) {
	g := groupScope{p: p}
	if err := p.beginSoftMask(&g); err != nil {
		return g, err
	}
	gs := p.top()
	if !isNormalBlend(gs.BlendMode) {
		p.dev.BeginGroup(bbox, nil, false, false, gs.BlendMode, 1)
		g.blend = true
	}
	return g, nil
}

func (g groupScope) end() {
	if g.blend {
		g.p.dev.EndGroup()
	}
	g.p.endSoftMask(g.mask)
}

// inGroup runs f between beginGroup and end.
func (p *Interpreter) inGroup(bbox rect.Rect, f func(gs *GState) error) error {
	g, err := p.beginGroup(bbox)
	defer g.end()
	if err != nil {
		return err
	}
	return f(p.top())
}

// beginSoftMask renders the soft mask of the current graphics state, if
// any.  The mask is removed from the graphics state until endSoftMask is
// called, so that it is not applied recursively.
func (p *Interpreter) beginSoftMask(g *groupScope) error {
	gs := p.top()
	sm := gs.SoftMask
	if sm == nil {
		return nil
	}
	g.mask = sm

	saveCTM := gs.CTM
	saveTm, saveTlm := p.text.tm, p.text.tlm

	area := Infinite
	if !sm.luminosity {
		fm := formMatrix(sm.form.Matrix)
		area = transformRect(rect.Rect(sm.form.BBox), fm.Mul(sm.ctm))
	}
	var cs color.Space
	if sm.form.Group != nil {
		cs = sm.form.Group.CS
	}
	if sm.luminosity && cs == nil {
		cs = color.SpaceDeviceGray
	}

	gs.SoftMask = nil
	gs.CTM = sm.ctm

	p.flushPending()
	p.dev.BeginMask(area, sm.luminosity, cs, sm.backdrop, gs.Fill.Params)
	saveBlend := gs.BlendMode
	gs.BlendMode = normalBlend
	err := p.runXObject(sm.form, sm.resources, matrix.Identity, true)
	gs = p.top()
	gs.BlendMode = saveBlend
	p.dev.EndMask()

	p.text.tm, p.text.tlm = saveTm, saveTlm
	gs.CTM = saveCTM
	return err
}

// endSoftMask reinstates the soft mask and removes the mask clip.
func (p *Interpreter) endSoftMask(sm *softMask) {
	if sm == nil {
		return
	}
	p.top().SoftMask = sm
	p.dev.PopClip()
}

// needsKnockout reports whether combined fill and stroke operations need
// a knockout group to avoid the stroke blending with the fill.
func needsKnockout(gs *GState) bool {
	a := gs.Stroke.Alpha
	return a != 0 && !(a == 1 && isNormalBlend(gs.BlendMode))
}
