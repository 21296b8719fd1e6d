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

	"seehuhn.de/go/pdf"
)

var (
	// ErrNotFound is wrapped into the [ContentError] reported when a
	// content stream names a resource which is missing from the current
	// resource dictionary.
	ErrNotFound = errors.New("resource not found")

	// ErrNestedContent marks a failure inside a nested content stream
	// (form XObject, pattern cell, soft mask or Type 3 glyph).  Only the
	// nested invocation is abandoned; the enclosing stream continues.
	ErrNestedContent = errors.New("error in nested content stream")

	// ErrTooManyErrors is returned when a content stream contains more
	// recoverable errors than [Options.MaxSyntaxErrors] allows.
	ErrTooManyErrors = errors.New("too many errors in content stream")

	// ErrMalformedStructure indicates a structure tree whose parent chain
	// does not terminate.
	ErrMalformedStructure = errors.New("malformed structure tree")

	// ErrAborted is returned when interpretation was stopped via
	// [Cookie.Abort].
	ErrAborted = errors.New("interpretation aborted")

	errUsed = errors.New("interpreter already used")
)

// ContentError reports a malformed operator or a problem with a resource
// referenced from a content stream.  Errors of this type are recoverable:
// the offending operator is skipped and interpretation continues.
type ContentError struct {
	Op  string
	Err error
}

func (e *ContentError) Error() string {
	if e.Op == "" {
		return "content stream: " + e.Err.Error()
	}
	return fmt.Sprintf("operator %q: %v", e.Op, e.Err)
}

func (e *ContentError) Unwrap() error {
	return e.Err
}

// nestedError is what a recursion boundary returns when the nested content
// failed in a recoverable way.
type nestedError struct {
	what  string
	cause error
}

func (e *nestedError) Error() string {
	return fmt.Sprintf("%s: %v", e.what, e.cause)
}

func (e *nestedError) Is(target error) bool {
	return target == ErrNestedContent
}

func (e *nestedError) Unwrap() error {
	return e.cause
}

// isRecoverable reports whether err only affects the current operator.
func isRecoverable(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, ErrNestedContent) {
		return true
	}
	var ce *ContentError
	return errors.As(err, &ce)
}

// flattenNested converts a recoverable error escaping from nested content
// into a single generic error.  Fatal errors pass through unchanged.
func flattenNested(what string, err error) error {
	if err == nil || !isRecoverable(err) {
		return err
	}
	var ne *nestedError
	if errors.As(err, &ne) {
		// already flattened further down
		return &nestedError{what: what, cause: ne.cause}
	}
	return &nestedError{what: what, cause: err}
}

func errorf(op string, format string, args ...any) error {
	return &ContentError{Op: op, Err: fmt.Errorf(format, args...)}
}

// lookup finds a named resource in one category of a resource dictionary.
func lookup[T any](op, category string, m map[pdf.Name]T, name pdf.Name) (T, error) {
	val, ok := m[name]
	if !ok {
		var zero T
		return zero, &ContentError{Op: op, Err: fmt.Errorf("%s %q: %w", category, name, ErrNotFound)}
	}
	return val, nil
}
