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
	"reflect"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/graphics/color"
	"seehuhn.de/go/pdf/graphics/content"
)

// MaxColors is the maximum number of colour components a [Material] can
// hold.
const MaxColors = 32

// isTint reports whether cs is a Separation or DeviceN colour space.
// The initial colour in these spaces is full tint.
func isTint(cs color.Space) bool {
	f := cs.Family()
	return f == color.FamilySeparation || f == color.FamilyDeviceN
}

// channels returns the number of components of cs, clamped to MaxColors.
func channels(cs color.Space) int {
	if cs == nil {
		return 0
	}
	return min(max(cs.Channels(), 0), MaxColors)
}

// componentRange returns the valid interval for component i of cs.
func componentRange(cs color.Space, i int) (lo, hi float64) {
	switch cs := cs.(type) {
	case *color.SpaceIndexed:
		return 0, float64(max(cs.NumCol-1, 0))
	case *color.SpaceICCBased:
		if 2*i+1 < len(cs.Ranges) {
			return cs.Ranges[2*i], cs.Ranges[2*i+1]
		}
	case *color.SpaceLab:
		// The a* and b* ranges of the colour space are not exported.
		if i == 0 {
			return 0, 100
		}
		return -128, 127
	}
	return 0, 1
}

// patternBase returns the underlying colour space of an uncoloured Pattern
// colour space.  The result is nil for coloured patterns.
func patternBase(cs color.Space) color.Space {
	n := cs.Channels()
	if n <= 0 {
		return nil
	}

	// The initial colour of an uncoloured pattern space carries a colour
	// in the base space.
	v := reflect.ValueOf(cs.Default())
	if v.Kind() == reflect.Struct {
		if f := v.FieldByName("Col"); f.IsValid() && f.CanInterface() {
			if c, ok := f.Interface().(color.Color); ok && c != nil {
				if base := c.ColorSpace(); base != nil && base.Channels() == n {
					return base
				}
			}
		}
	}

	switch n {
	case 1:
		return color.SpaceDeviceGray
	case 3:
		return color.SpaceDeviceRGB
	case 4:
		return color.SpaceDeviceCMYK
	}
	return nil
}

// defaultSpaces holds the DefaultGray, DefaultRGB and DefaultCMYK colour
// spaces in effect.  Nil fields mean that the corresponding device colour
// space is used as is.
type defaultSpaces struct {
	gray, rgb, cmyk color.Space
}

// update takes the default colour spaces present in res.  Entries which
// res does not define are inherited.
func (d *defaultSpaces) update(res *content.Resources) {
	if res == nil {
		return
	}
	for name, cs := range res.ColorSpace {
		switch name {
		case "DefaultGray":
			d.gray = cs
		case "DefaultRGB":
			d.rgb = cs
		case "DefaultCMYK":
			d.cmyk = cs
		}
	}
}

// substitute replaces device colour spaces by their defaults.
func (d *defaultSpaces) substitute(cs color.Space) color.Space {
	if cs == nil {
		return nil
	}
	var repl color.Space
	switch cs.Family() {
	case color.FamilyDeviceGray:
		repl = d.gray
	case color.FamilyDeviceRGB:
		repl = d.rgb
	case color.FamilyDeviceCMYK:
		repl = d.cmyk
	}
	if repl != nil && repl.Channels() == cs.Channels() && !color.IsSpecial(repl) {
		return repl
	}
	return cs
}

// deviceSpace returns the device colour space for the operand of the CS
// and cs operators, or nil if name refers to a resource.
func deviceSpace(name pdf.Name) color.Space {
	switch name {
	case color.FamilyDeviceGray:
		return color.SpaceDeviceGray
	case color.FamilyDeviceRGB:
		return color.SpaceDeviceRGB
	case color.FamilyDeviceCMYK:
		return color.SpaceDeviceCMYK
	case color.FamilyPattern:
		return color.SpacePatternColored
	}
	return nil
}
