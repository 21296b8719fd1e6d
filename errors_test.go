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
	"errors"
	"fmt"
	"testing"

	"seehuhn.de/go/pdf"
)

func TestRecoverable(t *testing.T) {
	content := &ContentError{Op: "l", Err: errors.New("bad operands")}

	type testCase struct {
		err  error
		want bool
	}
	cases := []testCase{
		{nil, true},
		{content, true},
		{fmt.Errorf("wrapped: %w", content), true},
		{flattenNested("pattern", content), true},
		{ErrAborted, false},
		{ErrMalformedStructure, false},
		{flattenNested("form XObject", ErrAborted), false},
	}
	for i, tc := range cases {
		if got := isRecoverable(tc.err); got != tc.want {
			t.Errorf("%d: isRecoverable(%v) = %t, want %t", i, tc.err, got, tc.want)
		}
	}
}

func TestFlattenNested(t *testing.T) {
	cause := &ContentError{Op: "re", Err: errors.New("bad operands")}

	inner := flattenNested("form XObject", cause)
	outer := flattenNested("pattern", inner)

	if !errors.Is(outer, ErrNestedContent) {
		t.Error("flattened error does not match ErrNestedContent")
	}
	var ne *nestedError
	if !errors.As(outer, &ne) {
		t.Fatal("flattened error is not a nestedError")
	}
	if ne.what != "pattern" || ne.cause != cause {
		t.Errorf("got %q wrapping %v", ne.what, ne.cause)
	}

	if err := flattenNested("form XObject", nil); err != nil {
		t.Errorf("nil error became %v", err)
	}
	if err := flattenNested("form XObject", ErrAborted); err != ErrAborted {
		t.Errorf("fatal error became %v", err)
	}
}

func TestContentErrorMessage(t *testing.T) {
	err := errorf("Tf", "font %q not found", "F1")
	want := `operator "Tf": font "F1" not found`
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}

	err = &ContentError{Err: ErrTooManyErrors}
	if !errors.Is(err, ErrTooManyErrors) {
		t.Error("ContentError does not unwrap")
	}
}

func TestLookup(t *testing.T) {
	m := map[pdf.Name]int{"A": 1}

	if v, err := lookup("gs", "ExtGState", m, "A"); err != nil || v != 1 {
		t.Errorf("got %d, %v", v, err)
	}

	_, err := lookup("gs", "ExtGState", m, "B")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got error %v, want %v", err, ErrNotFound)
	}
	if !isRecoverable(err) {
		t.Error("missing resource is not recoverable")
	}

	_, err = lookup[int]("gs", "ExtGState", nil, "A")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("nil map: got error %v", err)
	}
}
