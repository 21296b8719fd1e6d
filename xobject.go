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
	"bytes"
	"errors"
	"fmt"
	"io"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"
	"seehuhn.de/go/pdf/graphics/content"
	"seehuhn.de/go/pdf/graphics/form"
	"seehuhn.de/go/pdf/graphics/image"
	"seehuhn.de/go/pdf/oc"
)

// doXObject implements the Do operator.
func (p *Interpreter) doXObject(op string, name pdf.Name) error {
	var xobjects map[pdf.Name]graphics.XObject
	if res := p.resources(); res != nil {
		xobjects = res.XObject
	}
	val, err := lookup(op, "XObject", xobjects, name)
	if err != nil {
		return err
	}
	switch x := val.(type) {
	case *form.Form:
		if p.ocHidden(x.OptionalContent) {
			return nil
		}
		return p.runXObject(x, p.resources(), matrix.Identity, false)
	case graphics.Image:
		cond := imageConditional(x)
		if p.ocHidden(cond) {
			return nil
		}
		if cond != nil {
			p.beginOC(cond)
			defer p.endOC(cond)
		}
		return p.showImage(x)
	default:
		return errorf(op, "XObject %q has unexpected type %T", name, val)
	}
}

// imageConditional returns the optional content entry of an image.
func imageConditional(img graphics.Image) oc.Conditional {
	switch img := img.(type) {
	case *image.Dict:
		return img.OptionalContent
	case *image.Mask:
		return img.OptionalContent
	}
	return nil
}

// runXObject executes a form XObject.  The form's own resources are used
// if present, otherwise parentRes.  extra is applied after the form
// matrix.
func (p *Interpreter) runXObject(f *form.Form, parentRes *content.Resources, extra matrix.Matrix, isSoftMask bool) (err error) {
	if p.cycle[f] {
		return nil
	}
	p.cycle[f] = true
	defer delete(p.cycle, f)
	defer func() { err = flattenNested("form XObject", err) }()

	p.flushText()

	saveCS := p.defaultCS
	saveMarked := p.marked
	saveStructParent := p.structParent
	p.marked = nil
	defer func() {
		p.clearMarkedContent()
		p.marked = saveMarked
		p.defaultCS = saveCS
		p.structParent = saveStructParent
	}()

	if p.structTree != nil {
		p.structParent = -1
		if key, ok := f.StructParent.Get(); ok {
			p.structParent = int(key)
		}
	}

	if f.OptionalContent != nil {
		p.beginOC(f.OptionalContent)
		defer p.endOC(f.OptionalContent)
	}

	base := p.depth()
	p.gsave()
	defer p.restoreTo(base)

	gs := p.top()
	transform := formMatrix(f.Matrix).Mul(extra)
	gs.CTM = transform.Mul(gs.CTM)

	saveParent := p.gparent
	p.gparent = p.depth()
	defer func() { p.gparent = saveParent }()

	bbox := rect.Rect(f.BBox)
	if f.Group != nil {
		p.flushPending()

		g := groupScope{p: p}
		maskErr := p.beginSoftMask(&g)
		defer p.endSoftMask(g.mask)
		if !isRecoverable(maskErr) {
			return maskErr
		}

		gs = p.top()
		area := transformRect(bbox, gs.CTM)
		var cs color.Space
		if f.Group.Isolated {
			cs = f.Group.CS
		}
		p.dev.BeginGroup(area, cs, f.Group.Isolated || isSoftMask,
			f.Group.Knockout, gs.BlendMode, gs.Fill.Alpha)
		defer p.dev.EndGroup()

		gs.BlendMode = normalBlend
		gs.Stroke.Alpha = 1
		gs.Fill.Alpha = 1
	}

	// the clip to the bounding box must not outlast the form
	p.gsave()
	clipLevel := p.depth()
	p.queueClip(bbox)

	res := f.Res
	if res == nil {
		res = parentRes
	}
	p.defaultCS.update(res)

	oldbot := p.gbot
	p.gbot = p.depth()
	defer func() {
		p.gbot = oldbot
		p.restoreTo(clipLevel - 1)
	}()

	return p.runContent(res, f.Content)
}

// showImage paints an image XObject or an inline image.
func (p *Interpreter) showImage(img graphics.Image) error {
	if p.hidden > 0 {
		return nil
	}
	p.flushPending()

	var smask *image.SoftMask
	if d, ok := img.(*image.Dict); ok {
		smask = d.SMask
	}

	gs := p.top()
	bbox := transformRect(unitRect, gs.CTM)
	return p.inGroup(bbox, func(gs *GState) error {
		if smask != nil {
			p.dev.BeginMask(bbox, true, color.SpaceDeviceGray, nil, gs.Fill.Params)
			p.dev.FillImage(smask, gs.CTM, 1, gs.Fill.Params)
			p.dev.EndMask()
			defer p.dev.PopClip()
		}

		if !graphics.IsImageMask(img) {
			p.dev.FillImage(img, gs.CTM, gs.Fill.Alpha, gs.Fill.Params)
			return nil
		}

		mat := &gs.Fill
		switch mat.Kind {
		case MaterialColor:
			p.dev.FillImageMask(img, gs.CTM, mat.paint())
		case MaterialPattern:
			if mat.Pattern == nil {
				return nil
			}
			p.dev.ClipImageMask(img, gs.CTM, bbox)
			defer p.dev.PopClip()
			return p.paintPattern(mat.Pattern, mat.GState, bbox, targetFill)
		case MaterialShading:
			if mat.Shading == nil {
				return nil
			}
			p.dev.ClipImageMask(img, gs.CTM, bbox)
			p.dev.FillShade(mat.Shading, p.shadeCTM(mat), mat.Alpha, mat.Params)
			p.dev.PopClip()
		}
		return nil
	})
}

// inlineAbbrev maps the abbreviated keys of inline image dictionaries
// to the full names.
var inlineAbbrev = map[pdf.Name]pdf.Name{
	"BPC": "BitsPerComponent",
	"CS":  "ColorSpace",
	"D":   "Decode",
	"DP":  "DecodeParms",
	"F":   "Filter",
	"H":   "Height",
	"IM":  "ImageMask",
	"I":   "Interpolate",
	"L":   "Length",
	"W":   "Width",
}

// inlineSpaceAbbrev maps abbreviated colour space names.
var inlineSpaceAbbrev = map[pdf.Name]pdf.Name{
	"G":    "DeviceGray",
	"RGB":  "DeviceRGB",
	"CMYK": "DeviceCMYK",
	"I":    "Indexed",
}

var errInlineImage = errors.New("malformed inline image")

// inlineImage converts the dictionary and data of a BI ... ID ... EI
// sequence into an image.  The sample data is passed on as found in the
// content stream.
func (p *Interpreter) inlineImage(abbr pdf.Dict, data pdf.String) (graphics.Image, error) {
	dict := make(pdf.Dict, len(abbr))
	for key, val := range abbr {
		if full, ok := inlineAbbrev[key]; ok {
			key = full
		}
		dict[key] = val
	}

	width, ok1 := dict["Width"].(pdf.Integer)
	height, ok2 := dict["Height"].(pdf.Integer)
	if !(ok1 && ok2) || width <= 0 || height <= 0 {
		return nil, errInlineImage
	}
	writeData := func(w io.Writer) error {
		_, err := io.Copy(w, bytes.NewReader(data))
		return err
	}
	interpolate, _ := dict["Interpolate"].(pdf.Boolean)
	decode, _ := dict["Decode"].(pdf.Array)

	if isMask, _ := dict["ImageMask"].(pdf.Boolean); isMask {
		m := &image.Mask{
			Width:       int(width),
			Height:      int(height),
			WriteData:   writeData,
			Interpolate: bool(interpolate),
		}
		if len(decode) == 2 {
			x, _ := getNumber(decode[0])
			m.Inverted = x == 1
		}
		return m, nil
	}

	cs, err := p.inlineColorSpace(dict["ColorSpace"])
	if err != nil {
		return nil, err
	}
	bpc, _ := dict["BitsPerComponent"].(pdf.Integer)
	if bpc == 0 {
		bpc = 8
	}
	img := &image.Dict{
		Width:            int(width),
		Height:           int(height),
		ColorSpace:       cs,
		BitsPerComponent: int(bpc),
		WriteData:        writeData,
		Interpolate:      bool(interpolate),
	}
	for _, obj := range decode {
		x, ok := getNumber(obj)
		if !ok {
			return nil, errInlineImage
		}
		img.Decode = append(img.Decode, x)
	}
	return img, nil
}

// inlineColorSpace resolves the colour space of an inline image.  Names
// which are not device colour spaces refer to the ColorSpace resources.
func (p *Interpreter) inlineColorSpace(obj pdf.Object) (color.Space, error) {
	switch obj := obj.(type) {
	case nil:
		return nil, fmt.Errorf("%w: missing colour space", errInlineImage)
	case pdf.Name:
		if full, ok := inlineSpaceAbbrev[obj]; ok {
			obj = full
		}
		if cs := deviceSpace(obj); cs != nil && obj != color.FamilyPattern {
			return cs, nil
		}
		var spaces map[pdf.Name]color.Space
		if res := p.resources(); res != nil {
			spaces = res.ColorSpace
		}
		cs, ok := spaces[obj]
		if !ok {
			return nil, fmt.Errorf("ColorSpace %q: %w", obj, ErrNotFound)
		}
		return cs, nil
	case pdf.Array:
		expanded := make(pdf.Array, len(obj))
		for i, elem := range obj {
			if name, ok := elem.(pdf.Name); ok {
				if full, ok := inlineSpaceAbbrev[name]; ok {
					elem = full
				}
			}
			expanded[i] = elem
		}
		return color.ExtractSpace(pdf.NewExtractor(nil), expanded)
	default:
		return nil, errInlineImage
	}
}
