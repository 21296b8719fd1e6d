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
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// boundsFlatness is the curve flattening tolerance in device units used
// for bounding box computations.
const boundsFlatness = 0.25

// bounds accumulates the device space bounding box of a path.
type bounds struct {
	// CTM maps user space to device space.
	CTM matrix.Matrix

	first                  bool
	xMin, xMax, yMin, yMax float64
}

func newBounds(ctm matrix.Matrix) *bounds {
	return &bounds{CTM: ctm, first: true}
}

// transformLinear applies only the 2×2 linear part of CTM to a vector.
func (b *bounds) transformLinear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: b.CTM[0]*v.X + b.CTM[2]*v.Y,
		Y: b.CTM[1]*v.X + b.CTM[3]*v.Y,
	}
}

// addPoint adds a user space point to the bounding box.
func (b *bounds) addPoint(p vec.Vec2) {
	x := b.CTM[0]*p.X + b.CTM[2]*p.Y + b.CTM[4]
	y := b.CTM[1]*p.X + b.CTM[3]*p.Y + b.CTM[5]
	if b.first {
		b.xMin, b.xMax = x, x
		b.yMin, b.yMax = y, y
		b.first = false
		return
	}
	b.xMin = min(b.xMin, x)
	b.xMax = max(b.xMax, x)
	b.yMin = min(b.yMin, y)
	b.yMax = max(b.yMax, y)
}

func (b *bounds) addSegment(_, to vec.Vec2) {
	b.addPoint(to)
}

// flattenQuadratic flattens a quadratic Bézier and calls emit for each
// line segment.  All points are in user space; the segment count is
// chosen so that the error in device space stays below boundsFlatness.
func (b *bounds) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(from, to vec.Vec2)) {
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)
	errDev := b.transformLinear(e).Length()

	n := 1
	if errDev > boundsFlatness {
		n = int(math.Ceil(math.Sqrt(errDev / boundsFlatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		pt := p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic flattens a cubic Bézier and calls emit for each line
// segment, using Wang's formula for the segment count.
func (b *bounds) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(from, to vec.Vec2)) {
	d1 := p0.Sub(p1.Mul(2)).Add(p2)
	d2 := p1.Sub(p2.Mul(2)).Add(p3)
	mDev := max(b.transformLinear(d1).Length(), b.transformLinear(d2).Length())

	n := 1
	if mDev > 0 {
		nFloat := math.Sqrt(3 * mDev / (4 * boundsFlatness))
		if nFloat > 1 {
			n = int(math.Ceil(min(nFloat, 1000)))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		omt2 := omt * omt
		t2 := t * t
		pt := p0.Mul(omt2 * omt).Add(p1.Mul(3 * omt2 * t)).Add(p2.Mul(3 * omt * t2)).Add(p3.Mul(t2 * t))
		emit(prev, pt)
		prev = pt
	}
}

// addPath walks the path and adds all points on it.
func (b *bounds) addPath(p *path.Data) {
	var current vec.Vec2
	var subpath vec.Vec2

	coordIdx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			current = p.Coords[coordIdx]
			subpath = current
			b.addPoint(current)
			coordIdx++

		case path.CmdLineTo:
			current = p.Coords[coordIdx]
			b.addPoint(current)
			coordIdx++

		case path.CmdQuadTo:
			b.flattenQuadratic(current, p.Coords[coordIdx], p.Coords[coordIdx+1], b.addSegment)
			current = p.Coords[coordIdx+1]
			coordIdx += 2

		case path.CmdCubeTo:
			b.flattenCubic(current, p.Coords[coordIdx], p.Coords[coordIdx+1], p.Coords[coordIdx+2], b.addSegment)
			current = p.Coords[coordIdx+2]
			coordIdx += 3

		case path.CmdClose:
			current = subpath
		}
	}
}

// rect returns the accumulated bounding box.  The result is the zero
// rectangle if no points were added.
func (b *bounds) rect() rect.Rect {
	if b.first {
		return rect.Rect{}
	}
	return rect.Rect{LLx: b.xMin, LLy: b.yMin, URx: b.xMax, URy: b.yMax}
}

// pathBounds returns the device space bounding box of a path.
func pathBounds(p *path.Data, ctm matrix.Matrix) rect.Rect {
	b := newBounds(ctm)
	b.addPath(p)
	return b.rect()
}

// strokeBounds returns the device space bounding box of a stroked path.
func strokeBounds(p *path.Data, style *StrokeStyle, ctm matrix.Matrix) rect.Rect {
	r := pathBounds(p, ctm)
	if len(p.Cmds) == 0 {
		return r
	}
	return inflate(r, strokeExpansion(style, ctm))
}

// strokeExpansion returns by how much, in device units, a stroke can
// extend beyond the path.
func strokeExpansion(style *StrokeStyle, ctm matrix.Matrix) float64 {
	factor := 1.0
	if style.Join == graphics.LineJoinMiter {
		factor = max(factor, style.MiterLimit)
	}
	if style.Cap == graphics.LineCapSquare {
		factor = max(factor, math.Sqrt2)
	}
	d := style.LineWidth / 2 * factor * maxExpansion(ctm)
	// zero-width lines are drawn one device pixel wide
	return max(d, 0.5)
}

// maxExpansion returns the largest factor by which the linear part of m
// stretches a unit vector along the coordinate axes.
func maxExpansion(m matrix.Matrix) float64 {
	return max(math.Hypot(m[0], m[1]), math.Hypot(m[2], m[3]))
}

func inflate(r rect.Rect, d float64) rect.Rect {
	if IsInfinite(r) {
		return r
	}
	return rect.Rect{LLx: r.LLx - d, LLy: r.LLy - d, URx: r.URx + d, URy: r.URy + d}
}

// transformRect returns the bounding box of r after applying m.
func transformRect(r rect.Rect, m matrix.Matrix) rect.Rect {
	if IsInfinite(r) {
		return Infinite
	}
	b := newBounds(m)
	b.addPoint(vec.Vec2{X: r.LLx, Y: r.LLy})
	b.addPoint(vec.Vec2{X: r.URx, Y: r.LLy})
	b.addPoint(vec.Vec2{X: r.URx, Y: r.URy})
	b.addPoint(vec.Vec2{X: r.LLx, Y: r.URy})
	return b.rect()
}

// invert returns the inverse of m.  The second return value is false if m
// is singular.
func invert(m matrix.Matrix) (matrix.Matrix, bool) {
	det := m[0]*m[3] - m[1]*m[2]
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return matrix.Matrix{}, false
	}
	a := m[3] / det
	b := -m[1] / det
	c := -m[2] / det
	d := m[0] / det
	return matrix.Matrix{
		a, b,
		c, d,
		-m[4]*a - m[5]*c, -m[4]*b - m[5]*d,
	}, true
}

var unitRect = rect.Rect{LLx: 0, LLy: 0, URx: 1, URy: 1}

// shadeBounds returns the device space area covered by the sh operator.
func shadeBounds(sh graphics.Shading, ctm matrix.Matrix) rect.Rect {
	bbox := shadingBBox(sh)
	if bbox == (rect.Rect{}) {
		return Infinite
	}
	return transformRect(bbox, ctm)
}
