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

package testcases

import (
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics/content"
)

var pathCases = []TestCase{
	{
		Name:    "triangle_nonzero",
		Content: pathOps(triangle(10, 50, 32, 10, 54, 50)) + " f",
		Width:   64,
		Height:  64,
		Want: []string{
			"fill_path [10 10 54 50] nonzero DeviceGray[0]",
		},
	},
	{
		Name:    "triangle_evenodd",
		Content: pathOps(triangle(10, 50, 32, 10, 54, 50)) + " f*",
		Width:   64,
		Height:  64,
		Want: []string{
			"fill_path [10 10 54 50] evenodd DeviceGray[0]",
		},
	},
	{
		Name:    "star_nonzero",
		Content: pathOps(fivePointStar(32, 32, 25)) + " f",
		Width:   64,
		Height:  64,
	},
	{
		Name:    "star_evenodd",
		Content: pathOps(fivePointStar(32, 32, 25)) + " f*",
		Width:   64,
		Height:  64,
	},
	{
		Name:    "rectangle",
		Content: pathOps(rectangle(10, 10, 54, 54)) + " f",
		Width:   64,
		Height:  64,
		Want: []string{
			"fill_path [10 10 54 54] nonzero DeviceGray[0]",
		},
	},
	{
		Name:    "circle",
		Content: pathOps(circle(32, 32, 20)) + " f",
		Width:   64,
		Height:  64,
		Want: []string{
			"fill_path [12 12 52 52] nonzero DeviceGray[0]",
		},
	},
	{
		Name:    "ring_evenodd",
		Content: pathOps(ringShape(32, 32, 20, 10)) + " f*",
		Width:   64,
		Height:  64,
		Want: []string{
			"fill_path [12 12 52 52] evenodd DeviceGray[0]",
		},
	},
	{
		Name:    "two_triangles",
		Content: pathOps(twoTriangles(20, 32, 44, 32, 10)) + " f",
		Width:   64,
		Height:  64,
		Want: []string{
			"fill_path [10 22 54 42] nonzero DeviceGray[0]",
		},
	},
	{
		Name:    "scaled_triangle",
		Content: pathOps(triangle(10, 50, 32, 10, 54, 50)) + " f",
		CTM:     matrix.Scale(0.5, 0.5),
		Width:   64,
		Height:  64,
		Want: []string{
			"fill_path [5 5 27 25] nonzero DeviceGray[0]",
		},
	},
	{
		Name:    "stroke_round",
		Content: "4 w 1 J 1 j " + pathOps(triangle(10, 50, 32, 10, 54, 50)) + " S",
		Width:   64,
		Height:  64,
		Want: []string{
			"stroke_path [10 10 54 50] w=4 DeviceGray[0]",
		},
	},
	{
		Name:    "dashed_line",
		Content: "[6 3] 0 d 2 w 8 32 m 56 32 l S",
		Width:   64,
		Height:  64,
		Want: []string{
			"stroke_path [8 32 56 32] w=2 DeviceGray[0]",
		},
	},
	{
		Name:    "curve_shorthands",
		Content: "10 10 m 20 40 50 50 v 60 10 70 20 y S",
		Width:   80,
		Height:  64,
		Want: []string{
			"stroke_path [10 10 70 50] w=1 DeviceGray[0]",
		},
	},
	{
		Name:    "close_and_stroke",
		Content: "0.5 G 0 0 1 rg " + pathOps(triangle(10, 50, 32, 10, 54, 50)) + " b",
		Width:   64,
		Height:  64,
		Want: []string{
			"fill_path [10 10 54 50] nonzero DeviceRGB[0 0 1]",
			"stroke_path [10 10 54 50] w=1 DeviceGray[0.5]",
		},
	},
	{
		Name:   "empty_path",
		Stream: Join(
			Op(content.OpFill),
			Op(content.OpStroke),
			Op(content.OpFillAndStroke),
			Op(content.OpEndPath),
		),
		Want: []string{},
	},
}

// kappa is the distance of the Bézier control points for approximating a
// quarter circle, relative to the radius.
const kappa = 0.5522847498

// pathOps converts a path into path construction operators.
// Quadratic segments are converted to cubic ones.
func pathOps(p *path.Data) string {
	var ops []string
	for cmd, pts := range p.Iter().ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			ops = append(ops, coords(pts[0])+" m")
		case path.CmdLineTo:
			ops = append(ops, coords(pts[0])+" l")
		case path.CmdCubeTo:
			ops = append(ops, coords(pts...)+" c")
		case path.CmdClose:
			ops = append(ops, "h")
		}
	}
	return strings.Join(ops, " ")
}

func coords(pts ...vec.Vec2) string {
	parts := make([]string, 0, 2*len(pts))
	for _, pt := range pts {
		parts = append(parts,
			strconv.FormatFloat(pt.X, 'f', -1, 64),
			strconv.FormatFloat(pt.Y, 'f', -1, 64))
	}
	return strings.Join(parts, " ")
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// triangle builds a triangular path.
func triangle(x1, y1, x2, y2, x3, y3 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x3, y3)).
		Close()
}

// fivePointStar builds a five-pointed star (self-intersecting).
func fivePointStar(cx, cy, r float64) *path.Data {
	pts := make([]vec.Vec2, 5)
	for i := range 5 {
		angle := float64(i)*2*math.Pi/5 - math.Pi/2
		pts[i] = pt(cx+r*math.Cos(angle), cy+r*math.Sin(angle))
	}

	// connect every second point: 0 -> 2 -> 4 -> 1 -> 3 -> 0
	p := (&path.Data{}).MoveTo(pts[0])
	for _, i := range []int{2, 4, 1, 3} {
		p = p.LineTo(pts[i])
	}
	return p.Close()
}

// rectangle builds an axis-aligned rectangle from two corners.
func rectangle(x1, y1, x2, y2 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y1)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x1, y2)).
		Close()
}

// circle approximates a circle using four cubic Bézier curves.
func circle(cx, cy, r float64) *path.Data {
	k := r * kappa

	return (&path.Data{}).
		MoveTo(pt(cx+r, cy)).
		CubeTo(pt(cx+r, cy-k), pt(cx+k, cy-r), pt(cx, cy-r)).
		CubeTo(pt(cx-k, cy-r), pt(cx-r, cy-k), pt(cx-r, cy)).
		CubeTo(pt(cx-r, cy+k), pt(cx-k, cy+r), pt(cx, cy+r)).
		CubeTo(pt(cx+k, cy+r), pt(cx+r, cy+k), pt(cx+r, cy)).
		Close()
}

// ringShape builds two nested squares with the same orientation.
// With the even-odd rule, the inner square is a hole.
func ringShape(cx, cy, outerSize, innerSize float64) *path.Data {
	p := &path.Data{}
	for _, s := range []float64{outerSize, innerSize} {
		p = p.MoveTo(pt(cx-s, cy-s)).
			LineTo(pt(cx+s, cy-s)).
			LineTo(pt(cx+s, cy+s)).
			LineTo(pt(cx-s, cy+s)).
			Close()
	}
	return p
}

// twoTriangles builds two separate triangles as subpaths of one path.
func twoTriangles(cx1, cy1, cx2, cy2 float64, size float64) *path.Data {
	p := &path.Data{}
	for _, c := range []vec.Vec2{pt(cx1, cy1), pt(cx2, cy2)} {
		p = p.MoveTo(pt(c.X-size, c.Y-size)).
			LineTo(pt(c.X+size, c.Y-size)).
			LineTo(pt(c.X, c.Y+size)).
			Close()
	}
	return p
}
