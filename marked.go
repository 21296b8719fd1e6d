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
	"fmt"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/oc"
	"seehuhn.de/go/pdf/property"
)

// MetatextKind identifies a replacement text attached to marked content
// or to a structure element.
type MetatextKind uint8

const (
	MetatextActualText MetatextKind = iota
	MetatextAlt
	MetatextAbbreviation
	MetatextTitle
)

func (k MetatextKind) String() string {
	switch k {
	case MetatextActualText:
		return "ActualText"
	case MetatextAlt:
		return "Alt"
	case MetatextAbbreviation:
		return "E"
	case MetatextTitle:
		return "T"
	default:
		return fmt.Sprintf("MetatextKind(%d)", k)
	}
}

// metatextOrder is the order in which metatext spans are opened.
var metatextOrder = []MetatextKind{
	MetatextActualText,
	MetatextAlt,
	MetatextAbbreviation,
	MetatextTitle,
}

// mcFrame is an open marked-content sequence.
type mcFrame struct {
	tag   pdf.Name
	props property.List
	oc    oc.Conditional

	// elem is the structure element owning the sequence, or nil.
	elem *StructElem

	// text holds the metatext entries of the property list.
	text map[MetatextKind]string

	metatext   []MetatextKind
	hidden     bool
	structOpen bool
}

// pushMarkedContent implements the BMC and BDC operators.  props is nil
// for BMC.
func (p *Interpreter) pushMarkedContent(tag pdf.Name, props property.List) error {
	p.flushText()

	f := &mcFrame{tag: tag, props: props}
	p.marked = append(p.marked, f)

	if tag == "OC" && props != nil {
		c, err := listConditional(props)
		if err != nil {
			p.warn("ignoring optional content", "err", err)
		} else {
			f.oc = c
		}
	}

	if mcid, ok := listMCID(props); ok && p.structTree != nil && p.structParent >= 0 {
		f.elem = p.structTree.Lookup(p.structParent, mcid)
	}
	f.text = listMetatext(props)

	if f.oc != nil {
		p.beginOC(f.oc)
		if p.ocHidden(f.oc) {
			f.hidden = true
			p.hidden++
		}
	}

	if f.elem != nil {
		p.flushPending()
		if err := p.openStructure(f.elem); err != nil {
			return err
		}
	} else if st := p.structureType(tag); st != StructInvalid {
		p.flushPending()
		p.dev.BeginStructure(st, string(tag), 0)
		f.structOpen = true
	}

	for _, kind := range metatextOrder {
		text, ok := f.lookupMetatext(kind)
		if !ok {
			continue
		}
		p.flushPending()
		p.dev.BeginMetatext(kind, text)
		f.metatext = append(f.metatext, kind)
	}
	return nil
}

// lookupMetatext finds a metatext entry, first in the property list and
// then in the structure element.
func (f *mcFrame) lookupMetatext(kind MetatextKind) (string, bool) {
	if text, ok := f.text[kind]; ok {
		return text, true
	}
	if f.elem != nil {
		if text, ok := f.elem.Metatext[kind]; ok {
			return text, true
		}
	}
	return "", false
}

// popMarkedContent implements the EMC operator.  If neat is false, the
// frame is discarded without any device calls.
func (p *Interpreter) popMarkedContent(neat bool) {
	n := len(p.marked)
	if n == 0 {
		if neat {
			p.warn("unbalanced EMC")
		}
		return
	}
	if neat {
		p.flushText()
	}

	f := p.marked[n-1]
	p.marked[n-1] = nil
	p.marked = p.marked[:n-1]
	if f.hidden {
		p.hidden--
	}
	if !neat {
		return
	}

	for i := len(f.metatext) - 1; i >= 0; i-- {
		p.dev.EndMetatext()
	}
	if f.structOpen {
		p.dev.EndStructure()
	}
	if f.oc != nil {
		p.endOC(f.oc)
	}
}

// clearMarkedContent closes all open marked-content sequences.  If a
// fatal error occurs while closing, the remaining frames are dropped
// without further device calls.
func (p *Interpreter) clearMarkedContent() {
	neat := true
	for len(p.marked) > 0 {
		before := p.fatal
		p.popMarkedContent(neat)
		if p.fatal != before {
			neat = false
		}
	}
}

// deferred is a layer or a rectangular clip which has not yet been sent
// to the device.  Both are only emitted once something is painted.
type deferred struct {
	layer string

	isClip bool
	rect   rect.Rect
	ctm    matrix.Matrix
	level  int // index of the graphics state owning the clip
}

// ocLayers returns the layer names of an optional content group or
// membership.
func ocLayers(c oc.Conditional) []string {
	switch c := c.(type) {
	case *oc.Group:
		if c == nil {
			return nil
		}
		return []string{c.Name}
	case *oc.Membership:
		var names []string
		for _, g := range c.OCGs {
			if g != nil {
				names = append(names, g.Name)
			}
		}
		return names
	}
	return nil
}

// beginOC queues the layers of an optional content group or membership.
func (p *Interpreter) beginOC(c oc.Conditional) {
	for _, name := range ocLayers(c) {
		p.flushText()
		p.pending = append(p.pending, deferred{layer: name})
	}
}

// endOC closes what beginOC opened, in reverse order.  Layers which never
// reached the device are dropped from the queue.
func (p *Interpreter) endOC(c oc.Conditional) {
	for range ocLayers(c) {
		if !p.dropLayer() {
			p.dev.EndLayer()
		}
	}
}

// dropLayer removes the newest queued layer.  The result is false if no
// layer is queued.
func (p *Interpreter) dropLayer() bool {
	for i := len(p.pending) - 1; i >= 0; i-- {
		if !p.pending[i].isClip {
			p.pending = append(p.pending[:i], p.pending[i+1:]...)
			return true
		}
	}
	return false
}

// queueClip intersects the clip with a rectangle given in user space,
// once something is painted.
func (p *Interpreter) queueClip(r rect.Rect) {
	p.pending = append(p.pending, deferred{
		isClip: true,
		rect:   r,
		ctm:    p.top().CTM,
		level:  p.depth(),
	})
}

// dropClips discards the queued clips of the graphics states with index
// level and above.
func (p *Interpreter) dropClips(level int) {
	keep := p.pending[:0]
	for _, d := range p.pending {
		if d.isClip && d.level >= level {
			continue
		}
		keep = append(keep, d)
	}
	p.pending = keep
}

// flushPending sends the queued layers and clips to the device.
func (p *Interpreter) flushPending() {
	for _, d := range p.pending {
		if !d.isClip {
			p.dev.BeginLayer(d.layer)
			continue
		}
		for i := d.level; i < len(p.gstate); i++ {
			p.gstate[i].ClipDepth++
		}
		clip := (&path.Data{}).
			MoveTo(vec.Vec2{X: d.rect.LLx, Y: d.rect.LLy}).
			LineTo(vec.Vec2{X: d.rect.URx, Y: d.rect.LLy}).
			LineTo(vec.Vec2{X: d.rect.URx, Y: d.rect.URy}).
			LineTo(vec.Vec2{X: d.rect.LLx, Y: d.rect.URy}).
			Close()
		p.dev.ClipPath(clip, NonZero, d.ctm, transformRect(d.rect, d.ctm))
	}
	p.pending = p.pending[:0]
}
