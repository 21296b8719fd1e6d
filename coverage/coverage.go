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

// Package coverage implements a minimal raster [interp.Device].
//
// The device paints the area covered by filled paths and image masks into
// an 8-bit alpha image, using the paint alpha as the intensity.  Colours,
// strokes, text, shadings and images are ignored.  Clip paths are
// approximated by their bounding boxes, and content inside soft mask
// definitions is not painted.
package coverage

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
	pdfcolor "seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/interp"
)

// Device paints fill coverage into Img.
// Device space is the pixel space of Img.
type Device struct {
	interp.NopDevice

	Img *image.Alpha

	ras       *vector.Rasterizer
	clips     []image.Rectangle
	maskLevel int
}

var _ interp.Device = (*Device)(nil)

// New allocates a new device with a transparent image of the given size.
func New(width, height int) *Device {
	img := image.NewAlpha(image.Rect(0, 0, width, height))
	return &Device{
		Img: img,
		ras: vector.NewRasterizer(width, height),
	}
}

// clip returns the current clip rectangle.
func (d *Device) clip() image.Rectangle {
	if n := len(d.clips); n > 0 {
		return d.clips[n-1]
	}
	return d.Img.Bounds()
}

func (d *Device) pushClip(r rect.Rect) {
	c := d.clip()
	if !interp.IsInfinite(r) {
		c = c.Intersect(image.Rect(
			int(math.Floor(r.LLx)), int(math.Floor(r.LLy)),
			int(math.Ceil(r.URx)), int(math.Ceil(r.URy)),
		))
	}
	d.clips = append(d.clips, c)
}

// FillPath rasterises the path.  Only the nonzero winding rule is
// supported by the rasteriser; even-odd paths are filled using nonzero.
func (d *Device) FillPath(p *path.Data, rule interp.FillRule, ctm matrix.Matrix, paint interp.Paint) {
	if d.maskLevel > 0 {
		return
	}
	clip := d.clip()
	if clip.Empty() {
		return
	}

	// The rasteriser covers the clip rectangle only.  Drawing into the
	// full image with r=clip maps rasteriser (0,0) to clip.Min.
	dx := float64(clip.Min.X)
	dy := float64(clip.Min.Y)
	tr := func(x, y float64) (float32, float32) {
		return float32(ctm[0]*x + ctm[2]*y + ctm[4] - dx),
			float32(ctm[1]*x + ctm[3]*y + ctm[5] - dy)
	}

	d.ras.Reset(clip.Dx(), clip.Dy())
	open := false
	for cmd, pts := range p.Iter() {
		switch cmd {
		case path.CmdMoveTo:
			if open {
				d.ras.ClosePath()
			}
			d.ras.MoveTo(tr(pts[0].X, pts[0].Y))
			open = true
		case path.CmdLineTo:
			d.ras.LineTo(tr(pts[0].X, pts[0].Y))
		case path.CmdQuadTo:
			x1, y1 := tr(pts[0].X, pts[0].Y)
			x2, y2 := tr(pts[1].X, pts[1].Y)
			d.ras.QuadTo(x1, y1, x2, y2)
		case path.CmdCubeTo:
			x1, y1 := tr(pts[0].X, pts[0].Y)
			x2, y2 := tr(pts[1].X, pts[1].Y)
			x3, y3 := tr(pts[2].X, pts[2].Y)
			d.ras.CubeTo(x1, y1, x2, y2, x3, y3)
		case path.CmdClose:
			if open {
				d.ras.ClosePath()
				open = false
			}
		}
	}
	if open {
		d.ras.ClosePath()
	}

	alpha := uint8(math.Round(min(max(paint.Alpha, 0), 1) * 255))
	src := image.NewUniform(color.Alpha{A: alpha})
	d.ras.Draw(d.Img, clip, src, image.Point{})
}

// FillImageMask paints the unit square of the mask.
func (d *Device) FillImageMask(img graphics.Image, ctm matrix.Matrix, paint interp.Paint) {
	unit := (&path.Data{}).
		MoveTo(pt(0, 0)).LineTo(pt(1, 0)).LineTo(pt(1, 1)).LineTo(pt(0, 1)).Close()
	d.FillPath(unit, interp.NonZero, ctm, paint)
}

func (d *Device) ClipPath(p *path.Data, rule interp.FillRule, ctm matrix.Matrix, scissor rect.Rect) {
	d.pushClip(scissor)
}

func (d *Device) ClipStrokePath(p *path.Data, style *interp.StrokeStyle, ctm matrix.Matrix, scissor rect.Rect) {
	d.pushClip(scissor)
}

func (d *Device) ClipText(t *interp.Text, ctm matrix.Matrix, scissor rect.Rect, accumulate bool) {
	if !accumulate {
		d.pushClip(scissor)
	}
}

func (d *Device) ClipStrokeText(t *interp.Text, style *interp.StrokeStyle, ctm matrix.Matrix, scissor rect.Rect) {
	d.pushClip(scissor)
}

func (d *Device) ClipImageMask(img graphics.Image, ctm matrix.Matrix, scissor rect.Rect) {
	d.pushClip(scissor)
}

func (d *Device) PopClip() {
	if n := len(d.clips); n > 0 {
		d.clips = d.clips[:n-1]
	}
}

func (d *Device) BeginMask(area rect.Rect, luminosity bool, cs pdfcolor.Space, backdrop []float64, params interp.RenderingParams) {
	d.maskLevel++
}

// EndMask finishes a soft mask definition.  The mask is treated as a clip
// to the full image.
func (d *Device) EndMask() {
	d.maskLevel--
	d.pushClip(interp.Infinite)
}

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
