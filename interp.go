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
	"context"
	"log/slog"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/graphics/content"
	"seehuhn.de/go/pdf/oc"
)

// defaultMaxErrors is the default for Options.MaxSyntaxErrors.
const defaultMaxErrors = 100

// Options configure an [Interpreter].
// The zero value is valid and gives the defaults described below.
type Options struct {
	// CTM maps default user space to device space.
	// The zero matrix means the identity.
	CTM matrix.Matrix

	// Logger receives warnings about problems in the content stream.
	// If nil, messages are discarded.
	Logger *slog.Logger

	// Cookie, if non-nil, can be used to abort interpretation and to
	// collect error counts.
	Cookie *Cookie

	// StructTree is used to resolve marked-content identifiers to
	// structure elements.  If nil, marked content is reported using
	// the tags only.
	StructTree StructTree

	// StructParents is the StructParents key of the page.
	StructParents int

	// RoleMap maps non-standard structure types to standard ones.
	RoleMap map[pdf.Name]pdf.Name

	// OCStates gives the visibility of optional content groups.  Groups
	// are matched by name, and groups not listed here are visible.
	OCStates map[*oc.Group]bool

	// MaxSyntaxErrors is the number of recoverable errors tolerated in
	// a single content stream.  The default is 100.
	MaxSyntaxErrors int
}

// Interpreter executes a content stream and sends the resulting drawing
// calls to a [Device].
type Interpreter struct {
	dev    Device
	log    *slog.Logger
	cookie *Cookie

	baseCTM    matrix.Matrix
	structTree StructTree
	roleMap    map[pdf.Name]pdf.Name
	maxErrors  int

	ctx  context.Context
	used bool

	// gstate is the graphics state stack.  Index 0 holds a pristine
	// copy of the initial state.  gbot is the floor of the current
	// content stream and gparent the state used to paint patterns and
	// shadings.
	gstate  []*GState
	gbot    int
	gparent int

	res []*content.Resources

	path       *path.Data
	current    vec.Vec2
	start      vec.Vec2
	hasCurrent bool
	clip       bool
	clipRule   FillRule

	text textObject

	// cycle holds the forms, patterns and Type 3 glyphs which are
	// currently being executed.
	cycle map[any]bool

	marked       []*mcFrame
	hidden       int
	pending      []deferred
	openStruct   *StructElem
	structParent int

	ocStates map[*oc.Group]bool
	ocNames  map[string]*oc.Group

	defaultCS defaultSpaces

	// fatal records an unrecoverable error which occurred while
	// flushing buffered text.
	fatal error
}

// New allocates a new interpreter which draws onto dev.
func New(dev Device, opt *Options) *Interpreter {
	if opt == nil {
		opt = &Options{}
	}
	p := &Interpreter{
		dev:          dev,
		log:          opt.Logger,
		cookie:       opt.Cookie,
		baseCTM:      formMatrix(opt.CTM),
		structTree:   opt.StructTree,
		roleMap:      opt.RoleMap,
		maxErrors:    opt.MaxSyntaxErrors,
		cycle:        make(map[any]bool),
		structParent: -1,
		path:         &path.Data{},
		ocStates:     make(map[*oc.Group]bool),
		ocNames:      make(map[string]*oc.Group),
	}
	for g, visible := range opt.OCStates {
		if g == nil {
			continue
		}
		p.ocStates[g] = visible
		p.ocNames[g.Name] = g
	}
	if p.log == nil {
		p.log = slog.New(slog.DiscardHandler)
	}
	if p.maxErrors <= 0 {
		p.maxErrors = defaultMaxErrors
	}
	if p.structTree != nil {
		p.structParent = opt.StructParents
	}
	return p
}

// Run interprets the content stream with the given resources.  The
// stream is usually obtained from [content.ReadStream].
//
// Recoverable problems in the content stream are logged and skipped.
// The returned error is non-nil if interpretation was stopped, either
// because of too many errors, a malformed structure tree, cancellation of
// ctx, or a call to [Cookie.Abort].  In all cases, the device receives
// balanced begin/end calls.
//
// Run can only be called once.
func (p *Interpreter) Run(ctx context.Context, res *content.Resources, stream content.Stream) error {
	if p.used {
		return errUsed
	}
	p.used = true
	p.ctx = ctx
	defer func() { p.ctx = nil }()

	// The top-level stream runs one level above the initial state, so
	// that patterns selected by the page content are anchored at the
	// default user space.
	p.gstate = []*GState{newGState(p.baseCTM)}
	p.gsave()
	p.gparent = 0
	p.gbot = 1
	p.defaultCS.update(res)

	defer p.teardown()

	return p.runContent(res, stream)
}

// runContent executes a sequence of operators with res as the current
// resource dictionary.
func (p *Interpreter) runContent(res *content.Resources, ops content.Stream) error {
	p.res = append(p.res, res)
	saveText := p.text
	p.text = newTextObject()
	defer func() {
		p.res = p.res[:len(p.res)-1]
		p.text = saveText
	}()

	numErrors := 0
	for _, op := range ops {
		if err := p.checkAbort(); err != nil {
			return err
		}

		err := p.do(op)
		if p.fatal != nil {
			return p.fatal
		}
		if err == nil {
			continue
		}
		if !isRecoverable(err) {
			return err
		}

		p.log.Warn("skipping operator", "op", string(op.Name), "depth", p.depth(), "err", err)
		if p.cookie != nil {
			p.cookie.errors.Add(1)
			p.cookie.incomplete.Store(true)
		}
		numErrors++
		if numErrors > p.maxErrors {
			return &ContentError{Err: ErrTooManyErrors}
		}
	}

	p.flushText()
	return p.fatal
}

func (p *Interpreter) checkAbort() error {
	if p.cookie != nil && p.cookie.Aborted() {
		return ErrAborted
	}
	if p.ctx != nil {
		if err := p.ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

// teardown closes everything which is still open on the device.
func (p *Interpreter) teardown() {
	p.text = textObject{}
	p.restoreTo(0)
	p.clearMarkedContent()
	p.popStructureTo(nil)
	p.pending = nil
}

// warn reports a non-fatal problem.
func (p *Interpreter) warn(msg string, args ...any) {
	p.log.Warn(msg, args...)
	if p.cookie != nil {
		p.cookie.warnings.Add(1)
	}
}

// resources returns the current resource dictionary.
func (p *Interpreter) resources() *content.Resources {
	if len(p.res) == 0 {
		return nil
	}
	return p.res[len(p.res)-1]
}
