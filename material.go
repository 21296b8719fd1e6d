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
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"
	"seehuhn.de/go/pdf/graphics/pattern"
)

// MaterialKind says how a fill or stroke operation is painted.
type MaterialKind uint8

const (
	MaterialNone MaterialKind = iota
	MaterialColor
	MaterialPattern
	MaterialShading
)

func (k MaterialKind) String() string {
	switch k {
	case MaterialColor:
		return "color"
	case MaterialPattern:
		return "pattern"
	case MaterialShading:
		return "shading"
	default:
		return "none"
	}
}

// RenderingParams holds the graphics state parameters which influence
// colour rendering.
type RenderingParams struct {
	Intent                 graphics.RenderingIntent
	BlackPointCompensation pdf.Name
	OverprintFill          bool
	OverprintStroke        bool
	OverprintMode          int
}

// Material is the paint used for fill or stroke operations.
type Material struct {
	Kind MaterialKind

	// Space is the colour space of Color.  For pattern materials this
	// is the underlying colour space of uncoloured patterns, or nil.
	Space color.Space
	Color [MaxColors]float64

	Alpha  float64
	Params RenderingParams

	Pattern *pattern.Type1
	Shading graphics.Shading

	// Matrix is the pattern matrix of a shading pattern.  The zero
	// matrix means the identity.
	Matrix matrix.Matrix

	// GState is the index of the graphics state whose CTM is used to
	// paint patterns and shadings.
	GState int
}

// Components returns the colour components in use.
func (m *Material) Components() []float64 {
	return m.Color[:channels(m.Space)]
}

func (m *Material) paint() Paint {
	return Paint{
		Space:  m.Space,
		Color:  m.Components(),
		Alpha:  m.Alpha,
		Params: m.Params,
	}
}

// setDefaultColor sets the initial colour of cs.
func (m *Material) setDefaultColor(cs color.Space) {
	m.Space = cs
	m.Color = [MaxColors]float64{0, 0, 0, 1}
	if cs == nil {
		return
	}
	n := channels(cs)
	if isTint(cs) {
		for i := range n {
			m.Color[i] = 1
		}
	}
	for i := n; i < MaxColors; i++ {
		m.Color[i] = 0
	}
}

// setComponents stores v, clamped to the valid range of the colour space.
func (m *Material) setComponents(v []float64) {
	n := channels(m.Space)
	for i := range n {
		var x float64
		if i < len(v) {
			x = v[i]
		}
		lo, hi := componentRange(m.Space, i)
		m.Color[i] = min(max(x, lo), hi)
	}
}

// unsetPattern turns a pattern material into a plain colour in the
// underlying colour space.
func (m *Material) unsetPattern() {
	if m.Kind != MaterialPattern {
		return
	}
	m.Pattern = nil
	if m.Space == nil {
		m.Kind = MaterialNone
	} else {
		m.Kind = MaterialColor
	}
}

// paintTarget selects the fill or the stroke material.
type paintTarget int

const (
	targetFill paintTarget = iota
	targetStroke
)

// setColorSpace resets the material for what to the initial colour of cs.
func (p *Interpreter) setColorSpace(what paintTarget, cs color.Space) {
	gs := p.flushText()
	if gs.Uncolored {
		return
	}
	mat := gs.material(what)
	mat.Pattern = nil
	mat.Shading = nil
	mat.Matrix = matrix.Matrix{}
	mat.GState = p.gparent
	if cs.Family() == color.FamilyPattern {
		mat.Kind = MaterialPattern
		mat.setDefaultColor(p.defaultCS.substitute(patternBase(cs)))
		return
	}
	mat.Kind = MaterialColor
	mat.setDefaultColor(p.defaultCS.substitute(cs))
}

// setColor changes the colour components of the material for what.
func (p *Interpreter) setColor(what paintTarget, v []float64) {
	gs := p.flushText()
	if gs.Uncolored {
		return
	}
	mat := gs.material(what)
	switch mat.Kind {
	case MaterialColor, MaterialPattern:
		if mat.Space != nil {
			mat.setComponents(v)
		}
	default:
		p.warn("color incompatible with material")
	}
	mat.GState = p.gparent
}

// setPattern selects a tiling or shading pattern for what.  If v is
// non-nil, it gives the colour for uncoloured patterns.
func (p *Interpreter) setPattern(what paintTarget, pat color.Pattern, v []float64) {
	gs := p.flushText()
	if gs.Uncolored {
		return
	}
	var tiling *pattern.Type1
	switch pat := pat.(type) {
	case *pattern.Type2:
		if pat.Shading != nil {
			p.setShading(what, pat.Shading, pat.Matrix)
			return
		}
	case *pattern.Type1:
		tiling = pat
	}
	mat := gs.material(what)
	mat.Kind = MaterialPattern
	mat.Pattern = tiling
	mat.Shading = nil
	mat.Matrix = matrix.Matrix{}
	if v != nil && mat.Space != nil {
		mat.setComponents(v)
	}
	mat.GState = p.gparent
}

// setShading selects the shading of a shading pattern for what.  m is the
// pattern matrix.
func (p *Interpreter) setShading(what paintTarget, sh graphics.Shading, m matrix.Matrix) {
	gs := p.flushText()
	if gs.Uncolored {
		return
	}
	mat := gs.material(what)
	mat.Kind = MaterialShading
	mat.Shading = sh
	mat.Pattern = nil
	mat.Matrix = m
	mat.GState = p.gparent
}
