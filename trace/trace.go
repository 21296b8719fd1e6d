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

// Package trace implements an [interp.Device] which records all calls as
// lines of text.  This is used for testing and debugging.
package trace

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"
	"seehuhn.de/go/pdf/graphics/pattern"

	"seehuhn.de/go/interp"
)

// Device records the calls it receives.
type Device struct {
	// Lines holds one line per device call.
	Lines []string

	// CacheTiles makes BeginTile report previously seen, cacheable
	// tiles as cached.
	CacheTiles bool

	// tiles numbers the tiling patterns in the order they are first
	// seen, starting at 1.
	tiles  map[*pattern.Type1]int
	counts map[string]int
	errs   []string
}

var _ interp.Device = (*Device)(nil)

// New returns a new, empty trace device.
func New() *Device {
	return &Device{
		tiles:  make(map[*pattern.Type1]int),
		counts: make(map[string]int),
	}
}

func (d *Device) printf(format string, args ...any) {
	d.Lines = append(d.Lines, fmt.Sprintf(format, args...))
}

func (d *Device) open(kind string) {
	d.counts[kind]++
}

func (d *Device) close(kind, call string) {
	if d.counts[kind] == 0 {
		d.errs = append(d.errs, fmt.Sprintf("%s without matching begin (line %d)", call, len(d.Lines)))
		return
	}
	d.counts[kind]--
}

// Check reports unbalanced begin/end and clip/pop calls.
func (d *Device) Check() error {
	var msgs []string
	msgs = append(msgs, d.errs...)
	for _, kind := range []string{"clip", "mask", "group", "tile", "layer", "structure", "metatext"} {
		if n := d.counts[kind]; n != 0 {
			msgs = append(msgs, fmt.Sprintf("%d unclosed %s", n, kind))
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	return fmt.Errorf("trace: %s", strings.Join(msgs, ", "))
}

// Count returns the number of recorded lines which start with prefix.
func (d *Device) Count(prefix string) int {
	n := 0
	for _, line := range d.Lines {
		if strings.HasPrefix(line, prefix) {
			n++
		}
	}
	return n
}

func (d *Device) String() string {
	return strings.Join(d.Lines, "\n")
}

func (d *Device) FillPath(p *path.Data, rule interp.FillRule, ctm matrix.Matrix, paint interp.Paint) {
	d.printf("fill_path %s %s %s", pathBox(p, ctm), rule, formatPaint(paint))
}

func (d *Device) StrokePath(p *path.Data, style *interp.StrokeStyle, ctm matrix.Matrix, paint interp.Paint) {
	d.printf("stroke_path %s w=%s %s", pathBox(p, ctm), num(style.LineWidth), formatPaint(paint))
}

func (d *Device) ClipPath(p *path.Data, rule interp.FillRule, ctm matrix.Matrix, scissor rect.Rect) {
	d.open("clip")
	d.printf("clip_path %s %s", pathBox(p, ctm), rule)
}

func (d *Device) ClipStrokePath(p *path.Data, style *interp.StrokeStyle, ctm matrix.Matrix, scissor rect.Rect) {
	d.open("clip")
	d.printf("clip_stroke_path %s w=%s", pathBox(p, ctm), num(style.LineWidth))
}

func (d *Device) FillText(t *interp.Text, ctm matrix.Matrix, paint interp.Paint) {
	d.printf("fill_text %q %s", text(t), formatPaint(paint))
}

func (d *Device) StrokeText(t *interp.Text, style *interp.StrokeStyle, ctm matrix.Matrix, paint interp.Paint) {
	d.printf("stroke_text %q %s", text(t), formatPaint(paint))
}

func (d *Device) ClipText(t *interp.Text, ctm matrix.Matrix, scissor rect.Rect, accumulate bool) {
	if accumulate {
		d.printf("clip_text %q accumulate", text(t))
		return
	}
	d.open("clip")
	d.printf("clip_text %q", text(t))
}

func (d *Device) ClipStrokeText(t *interp.Text, style *interp.StrokeStyle, ctm matrix.Matrix, scissor rect.Rect) {
	d.open("clip")
	d.printf("clip_stroke_text %q", text(t))
}

func (d *Device) IgnoreText(t *interp.Text, ctm matrix.Matrix) {
	d.printf("ignore_text %q", text(t))
}

func (d *Device) FillShade(sh graphics.Shading, ctm matrix.Matrix, alpha float64, params interp.RenderingParams) {
	d.printf("fill_shade type=%d ctm=%s%s", sh.ShadingType(), formatMatrix(ctm), formatAlpha(alpha))
}

func (d *Device) FillImage(img graphics.Image, ctm matrix.Matrix, alpha float64, params interp.RenderingParams) {
	d.printf("fill_image %s %s%s", imageSize(img), formatRect(unitBox(ctm)), formatAlpha(alpha))
}

func (d *Device) FillImageMask(img graphics.Image, ctm matrix.Matrix, paint interp.Paint) {
	d.printf("fill_image_mask %s %s %s", imageSize(img), formatRect(unitBox(ctm)), formatPaint(paint))
}

func (d *Device) ClipImageMask(img graphics.Image, ctm matrix.Matrix, scissor rect.Rect) {
	d.open("clip")
	d.printf("clip_image_mask %s %s", imageSize(img), formatRect(unitBox(ctm)))
}

func (d *Device) PopClip() {
	d.close("clip", "pop_clip")
	d.printf("pop_clip")
}

func (d *Device) BeginMask(area rect.Rect, luminosity bool, cs color.Space, backdrop []float64, params interp.RenderingParams) {
	d.open("mask")
	kind := "alpha"
	if luminosity {
		kind = "luminosity"
	}
	d.printf("begin_mask %s %s", formatRect(area), kind)
}

func (d *Device) EndMask() {
	d.close("mask", "end_mask")
	d.open("clip")
	d.printf("end_mask")
}

func (d *Device) BeginGroup(area rect.Rect, cs color.Space, isolated, knockout bool, blend graphics.BlendMode, alpha float64) {
	d.open("group")
	var flags []string
	if isolated {
		flags = append(flags, "isolated")
	}
	if knockout {
		flags = append(flags, "knockout")
	}
	if len(blend) > 0 && blend[0] != graphics.BlendModeNormal {
		flags = append(flags, string(blend[0]))
	}
	line := "begin_group " + formatRect(area)
	if len(flags) > 0 {
		line += " " + strings.Join(flags, " ")
	}
	d.Lines = append(d.Lines, line+formatAlpha(alpha))
}

func (d *Device) EndGroup() {
	d.close("group", "end_group")
	d.printf("end_group")
}

func (d *Device) BeginTile(area, view rect.Rect, xstep, ystep float64, ctm matrix.Matrix, key *pattern.Type1) bool {
	d.open("tile")
	id, seen := 0, false
	if key != nil {
		id, seen = d.tiles[key]
		if !seen {
			id = len(d.tiles) + 1
			d.tiles[key] = id
		}
	}
	cached := d.CacheTiles && seen
	if cached {
		d.printf("begin_tile id=%d ctm=%s cached", id, formatMatrix(ctm))
	} else {
		d.printf("begin_tile id=%d ctm=%s", id, formatMatrix(ctm))
	}
	return cached
}

func (d *Device) EndTile() {
	d.close("tile", "end_tile")
	d.printf("end_tile")
}

func (d *Device) BeginLayer(name string) {
	d.open("layer")
	d.printf("begin_layer %q", name)
}

func (d *Device) EndLayer() {
	d.close("layer", "end_layer")
	d.printf("end_layer")
}

func (d *Device) BeginStructure(kind interp.StructureType, tag string, uid int) {
	d.open("structure")
	d.printf("begin_structure %s %q %d", kind, tag, uid)
}

func (d *Device) EndStructure() {
	d.close("structure", "end_structure")
	d.printf("end_structure")
}

func (d *Device) BeginMetatext(kind interp.MetatextKind, text string) {
	d.open("metatext")
	d.printf("begin_metatext %s %q", kind, text)
}

func (d *Device) EndMetatext() {
	d.close("metatext", "end_metatext")
	d.printf("end_metatext")
}

// text returns the Unicode text of a text run.
func text(t *interp.Text) string {
	var b strings.Builder
	for _, span := range t.Spans {
		for _, item := range span.Items {
			b.WriteString(item.Text)
		}
	}
	return b.String()
}

// num formats a number, rounded to 4 decimal places.
func num(x float64) string {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	x = math.Round(x*1e4) / 1e4
	if x == 0 {
		x = 0 // avoid "-0"
	}
	return strconv.FormatFloat(x, 'g', -1, 64)
}

func nums(xs []float64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = num(x)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func formatMatrix(m matrix.Matrix) string {
	return nums(m[:])
}

func formatRect(r rect.Rect) string {
	if interp.IsInfinite(r) {
		return "[inf]"
	}
	return nums([]float64{r.LLx, r.LLy, r.URx, r.URy})
}

func formatAlpha(alpha float64) string {
	if alpha == 1 {
		return ""
	}
	return " alpha=" + num(alpha)
}

func formatPaint(p interp.Paint) string {
	return spaceName(p.Space) + nums(p.Color) + formatAlpha(p.Alpha)
}

// spaceName gives a short description of a colour space.
func spaceName(cs color.Space) string {
	switch cs := cs.(type) {
	case nil:
		return "none"
	case *color.SpaceSeparation:
		return fmt.Sprintf("Separation(%s)", cs.Colorant)
	case *color.SpaceIndexed:
		return fmt.Sprintf("Indexed(%s,%d)", spaceName(cs.Base), cs.NumCol-1)
	case *color.SpaceDeviceN:
		names := make([]string, len(cs.Colorants))
		for i, c := range cs.Colorants {
			names[i] = string(c)
		}
		return "DeviceN(" + strings.Join(names, ",") + ")"
	}
	return string(cs.Family())
}

func imageSize(img graphics.Image) string {
	b := img.Bounds()
	return fmt.Sprintf("%dx%d", b.Dx(), b.Dy())
}

// pathBox returns the device space bounding box of the path's points,
// including control points.
func pathBox(p *path.Data, ctm matrix.Matrix) string {
	if len(p.Coords) == 0 {
		return "[]"
	}
	r := rect.Rect{LLx: math.Inf(1), LLy: math.Inf(1), URx: math.Inf(-1), URy: math.Inf(-1)}
	for _, pt := range p.Coords {
		x := ctm[0]*pt.X + ctm[2]*pt.Y + ctm[4]
		y := ctm[1]*pt.X + ctm[3]*pt.Y + ctm[5]
		r.LLx = min(r.LLx, x)
		r.LLy = min(r.LLy, y)
		r.URx = max(r.URx, x)
		r.URy = max(r.URy, y)
	}
	return nums([]float64{r.LLx, r.LLy, r.URx, r.URy})
}

// unitBox returns the image of the unit square under ctm.
func unitBox(ctm matrix.Matrix) rect.Rect {
	xs := []float64{ctm[4], ctm[0] + ctm[4], ctm[2] + ctm[4], ctm[0] + ctm[2] + ctm[4]}
	ys := []float64{ctm[5], ctm[1] + ctm[5], ctm[3] + ctm[5], ctm[1] + ctm[3] + ctm[5]}
	return rect.Rect{
		LLx: min(xs[0], xs[1], xs[2], xs[3]),
		LLy: min(ys[0], ys[1], ys[2], ys[3]),
		URx: max(xs[0], xs[1], xs[2], xs[3]),
		URy: max(ys[0], ys[1], ys[2], ys[3]),
	}
}
