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


package interp_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"
	"seehuhn.de/go/pdf/graphics/content"
	"seehuhn.de/go/pdf/graphics/extgstate"
	"seehuhn.de/go/pdf/graphics/form"
	"seehuhn.de/go/pdf/graphics/group"
	"seehuhn.de/go/pdf/oc"
	"seehuhn.de/go/pdf/property"

	"seehuhn.de/go/interp"
	"seehuhn.de/go/interp/testcases"
	"seehuhn.de/go/interp/trace"
)

func TestCases(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			t.Run(category+"_"+tc.Name, func(t *testing.T) {
				dev := trace.New()
				dev.CacheTiles = tc.CacheTiles
				p := interp.New(dev, tc.Options())
				err := p.Run(context.Background(), tc.Resources, tc.Ops())
				if err != nil {
					t.Fatal(err)
				}
				if err := dev.Check(); err != nil {
					t.Errorf("%v\n%s", err, dev)
				}
				if tc.Want == nil {
					return
				}
				if d := cmp.Diff(tc.Want, dev.Lines, cmpopts.EquateEmpty()); d != "" {
					t.Errorf("device calls (-want +got):\n%s", d)
				}
			})
		}
	}
}

// run interprets ops with the given resources and options and returns
// the trace.  Unbalanced device calls are reported as test errors.
func run(t *testing.T, opt *interp.Options, res *content.Resources, ops content.Stream) (*trace.Device, error) {
	t.Helper()
	if res == nil {
		res = &content.Resources{}
	}
	dev := trace.New()
	p := interp.New(dev, opt)
	err := p.Run(context.Background(), res, ops)
	if err := dev.Check(); err != nil {
		t.Errorf("%v\n%s", err, dev)
	}
	return dev, err
}

func TestRunOnce(t *testing.T) {
	p := interp.New(interp.NopDevice{}, nil)
	res := &content.Resources{}
	if err := p.Run(context.Background(), res, nil); err != nil {
		t.Fatal(err)
	}
	if err := p.Run(context.Background(), res, nil); err == nil {
		t.Error("second call to Run succeeded")
	}
}

func TestInlineImage(t *testing.T) {
	dict := pdf.Dict{
		"W":   pdf.Integer(8),
		"H":   pdf.Integer(4),
		"CS":  pdf.Name("RGB"),
		"BPC": pdf.Integer(8),
	}
	ops := testcases.Join(
		testcases.Op(content.OpPushGraphicsState),
		testcases.Op(content.OpTransform,
			pdf.Integer(4), pdf.Integer(0), pdf.Integer(0), pdf.Integer(2), pdf.Integer(1), pdf.Integer(1)),
		testcases.Op(content.OpInlineImage, dict, pdf.String(make([]byte, 8*4*3))),
		testcases.Op(content.OpInlineImage), // missing image
		testcases.Op(content.OpPopGraphicsState),
	)

	cookie := &interp.Cookie{}
	dev, err := run(t, &interp.Options{Cookie: cookie}, nil, ops)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"fill_image 8x4 [1 1 5 3]"}
	if d := cmp.Diff(want, dev.Lines); d != "" {
		t.Errorf("device calls (-want +got):\n%s", d)
	}
	if cookie.Errors() != 1 {
		t.Errorf("got %d errors, want 1", cookie.Errors())
	}
}

func TestInlineImageColorSpace(t *testing.T) {
	res := &content.Resources{
		ColorSpace: map[pdf.Name]color.Space{"Spot": color.SpaceDeviceCMYK},
	}
	for _, cs := range []pdf.Object{
		pdf.Name("G"),
		pdf.Name("DeviceRGB"),
		pdf.Name("Spot"),
		pdf.Array{pdf.Name("I"), pdf.Name("G"), pdf.Integer(1), pdf.String("\x00\xff")},
	} {
		dict := pdf.Dict{
			"W":   pdf.Integer(1),
			"H":   pdf.Integer(1),
			"CS":  cs,
			"BPC": pdf.Integer(8),
		}
		dev, err := run(t, nil, res, testcases.Op(content.OpInlineImage, dict, pdf.String("\x00\x00\x00\x00")))
		if err != nil {
			t.Fatal(err)
		}
		if n := dev.Count("fill_image"); n != 1 {
			t.Errorf("%v: got %d images, want 1", cs, n)
		}
	}
}

// abortDevice aborts interpretation after the first filled path.
type abortDevice struct {
	*trace.Device
	cookie *interp.Cookie
}

func (d *abortDevice) FillPath(p *path.Data, rule interp.FillRule, ctm matrix.Matrix, paint interp.Paint) {
	d.Device.FillPath(p, rule, ctm, paint)
	d.cookie.Abort()
}

func TestAbort(t *testing.T) {
	f := &form.Form{
		Content: testcases.Parse("q 0 0 5 5 re W n /B gs 0 0 1 1 re f 0 0 3 3 re f Q"),
		BBox:    pdf.Rectangle{URx: 10, URy: 10},
		Group:   &group.TransparencyAttributes{Isolated: true},
	}
	layer, err := property.ExtractList(pdf.NewExtractor(nil), pdf.Dict{
		"Type": pdf.Name("OCG"),
		"Name": pdf.String("L"),
	})
	if err != nil {
		t.Fatal(err)
	}
	res := &content.Resources{
		XObject: map[pdf.Name]graphics.XObject{"F": f},
		ExtGState: map[pdf.Name]*extgstate.ExtGState{
			"B": {
				Set:       graphics.StateBlendMode,
				BlendMode: graphics.BlendMode{graphics.BlendModeScreen},
			},
		},
		Properties: map[pdf.Name]property.List{"L": layer},
	}

	cookie := &interp.Cookie{}
	dev := &abortDevice{Device: trace.New(), cookie: cookie}
	p := interp.New(dev, &interp.Options{Cookie: cookie})
	src := "q 0 0 10 10 re W n /OC /L BDC /Span <</ActualText (x)>> BDC /F Do 0 0 2 2 re f EMC EMC Q"
	err = p.Run(context.Background(), res, testcases.Parse(src))
	if !errors.Is(err, interp.ErrAborted) {
		t.Fatalf("got error %v, want %v", err, interp.ErrAborted)
	}
	if err := dev.Check(); err != nil {
		t.Errorf("%v\n%s", err, dev.Device)
	}
	if n := dev.Count("fill_path"); n != 1 {
		t.Errorf("got %d fill_path calls, want 1", n)
	}
	if n := dev.Count("end_metatext"); n != 1 {
		t.Errorf("got %d end_metatext calls, want 1", n)
	}
	if n := dev.Count("end_layer"); n != 1 {
		t.Errorf("got %d end_layer calls, want 1", n)
	}
}

func TestContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dev := trace.New()
	p := interp.New(dev, nil)
	err := p.Run(ctx, &content.Resources{}, testcases.Parse("0 0 1 1 re f"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got error %v, want %v", err, context.Canceled)
	}
	if len(dev.Lines) != 0 {
		t.Errorf("unexpected device calls:\n%s", dev)
	}
}

// badOps returns n operators with invalid operands.
func badOps(n int) content.Stream {
	var ops content.Stream
	for range n {
		ops = append(ops, testcases.Op(content.OpLineTo, pdf.Integer(1))...)
	}
	return ops
}

func TestTooManyErrors(t *testing.T) {
	cookie := &interp.Cookie{}
	opt := &interp.Options{Cookie: cookie, MaxSyntaxErrors: 3}
	ops := testcases.Join(
		testcases.Parse("0 0 9 9 re W n"),
		badOps(4),
		testcases.Parse("0 0 1 1 re f"),
	)
	dev, err := run(t, opt, nil, ops)
	if !errors.Is(err, interp.ErrTooManyErrors) {
		t.Fatalf("got error %v, want %v", err, interp.ErrTooManyErrors)
	}
	var ce *interp.ContentError
	if !errors.As(err, &ce) {
		t.Errorf("error %v is not a ContentError", err)
	}
	if dev.Count("fill_path") != 0 {
		t.Error("interpretation continued after too many errors")
	}
	if cookie.Errors() != 4 {
		t.Errorf("got %d errors, want 4", cookie.Errors())
	}
	if !cookie.Incomplete() {
		t.Error("output not marked as incomplete")
	}
}

// A form which fails is abandoned, but the page continues.
func TestNestedError(t *testing.T) {
	res := &content.Resources{
		XObject: map[pdf.Name]graphics.XObject{
			"F": &form.Form{
				Content: testcases.Join(testcases.Parse("0 0 1 1 re f"), badOps(4)),
				Res:     &content.Resources{},
				BBox:    pdf.Rectangle{URx: 1, URy: 1},
			},
		},
	}
	cookie := &interp.Cookie{}
	opt := &interp.Options{Cookie: cookie, MaxSyntaxErrors: 3}
	dev, err := run(t, opt, res, testcases.Parse("/F Do 0 0 2 2 re f"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"clip_path [0 0 1 1] nonzero",
		"fill_path [0 0 1 1] nonzero DeviceGray[0]",
		"pop_clip",
		"fill_path [0 0 2 2] nonzero DeviceGray[0]",
	}
	if d := cmp.Diff(want, dev.Lines); d != "" {
		t.Errorf("device calls (-want +got):\n%s", d)
	}
	if cookie.Errors() != 5 {
		t.Errorf("got %d errors, want 5", cookie.Errors())
	}
}

func TestMalformedStructure(t *testing.T) {
	a := &interp.StructElem{Type: "P", UID: 1}
	b := &interp.StructElem{Type: "Div", UID: 2, Parent: a}
	a.Parent = b

	opt := &interp.Options{StructTree: testcases.StructMap{0: a}}
	src := "/P BMC 0 0 1 1 re f /Span <</MCID 0>> BDC 0 0 1 1 re f EMC EMC"
	dev, err := run(t, opt, nil, testcases.Parse(src))
	if !errors.Is(err, interp.ErrMalformedStructure) {
		t.Fatalf("got error %v, want %v", err, interp.ErrMalformedStructure)
	}
	if n := dev.Count("fill_path"); n != 1 {
		t.Errorf("got %d fill_path calls, want 1", n)
	}
}

func TestRoleMap(t *testing.T) {
	opt := &interp.Options{
		RoleMap: map[pdf.Name]pdf.Name{
			"Heading": "Title2",
			"Title2":  "H1",
			"Loop":    "Loop",
		},
	}
	dev, err := run(t, opt, nil, testcases.Parse("/Heading BMC EMC /Loop BMC EMC"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		`begin_structure H1 "Heading" 0`,
		"end_structure",
	}
	if d := cmp.Diff(want, dev.Lines); d != "" {
		t.Errorf("device calls (-want +got):\n%s", d)
	}
}

func TestOptionalContentStates(t *testing.T) {
	hidden := &oc.Group{Name: "Draft"}
	opt := &interp.Options{
		OCStates: map[*oc.Group]bool{hidden: false},
	}
	res := &content.Resources{
		XObject: map[pdf.Name]graphics.XObject{
			"F": &form.Form{
				Content:         testcases.Parse("0 0 1 1 re f"),
				Res:             &content.Resources{},
				BBox:            pdf.Rectangle{URx: 1, URy: 1},
				OptionalContent: hidden,
			},
			"G": &form.Form{
				Content:         testcases.Parse("0 0 2 2 re f"),
				Res:             &content.Resources{},
				BBox:            pdf.Rectangle{URx: 2, URy: 2},
				OptionalContent: &oc.Group{Name: "Final"},
			},
		},
	}
	dev, err := run(t, opt, res, testcases.Parse("/F Do /G Do"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		`begin_layer "Final"`,
		"clip_path [0 0 2 2] nonzero",
		"fill_path [0 0 2 2] nonzero DeviceGray[0]",
		"pop_clip",
		"end_layer",
	}
	if d := cmp.Diff(want, dev.Lines); d != "" {
		t.Errorf("device calls (-want +got):\n%s", d)
	}
}

func TestWarnings(t *testing.T) {
	buf := &bytes.Buffer{}
	cookie := &interp.Cookie{}
	opt := &interp.Options{
		Logger: slog.New(slog.NewTextHandler(buf, nil)),
		Cookie: cookie,
	}
	ops := testcases.Join(
		testcases.Op(content.OpPopGraphicsState),
		testcases.Op(content.OpEndMarkedContent),
		testcases.Parse("BT (x) Tj ET /Nope gs"),
	)
	_, err := run(t, opt, nil, ops)
	if err != nil {
		t.Fatal(err)
	}

	log := buf.String()
	for _, msg := range []string{
		"gstate underflow",
		"unbalanced EMC",
		"font and size not set",
		"skipping operator",
	} {
		if !strings.Contains(log, msg) {
			t.Errorf("log does not contain %q:\n%s", msg, log)
		}
	}
	if cookie.Warnings() != 3 {
		t.Errorf("got %d warnings, want 3", cookie.Warnings())
	}
	if cookie.Errors() != 1 {
		t.Errorf("got %d errors, want 1", cookie.Errors())
	}
}

func TestDefaultColorSpace(t *testing.T) {
	calRGB, err := color.CalRGB(color.WhitePointD65, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	res := &content.Resources{
		ColorSpace: map[pdf.Name]color.Space{"DefaultRGB": calRGB},
	}
	src := "1 0 0 rg 0 0 1 1 re f 0.5 g 0 0 1 1 re f"
	dev, err := run(t, nil, res, testcases.Parse(src))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"fill_path [0 0 1 1] nonzero CalRGB[1 0 0]",
		"fill_path [0 0 1 1] nonzero DeviceGray[0.5]",
	}
	if d := cmp.Diff(want, dev.Lines); d != "" {
		t.Errorf("device calls (-want +got):\n%s", d)
	}
}
