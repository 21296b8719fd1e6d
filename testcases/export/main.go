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

// Command export writes the test scenarios, together with the device
// calls recorded by the trace device, to testdata/testcases.json.
// Run from the module root directory.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"maps"
	"os"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf/graphics/content"

	"seehuhn.de/go/interp"
	"seehuhn.de/go/interp/testcases"
	"seehuhn.de/go/interp/trace"
)

func main() {
	var out struct {
		TestCases []jsonTestCase `json:"testcases"`
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			jtc, err := toJSON(category, tc)
			if err != nil {
				log.Fatalf("%s_%s: %v", category, tc.Name, err)
			}
			out.TestCases = append(out.TestCases, jtc)
		}
	}

	if err := os.MkdirAll("testdata", 0o755); err != nil {
		log.Fatal(err)
	}
	f, err := os.Create("testdata/testcases.json")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatal(err)
	}
}

type jsonTestCase struct {
	Name    string     `json:"name"`
	Width   int        `json:"width,omitempty"`
	Height  int        `json:"height,omitempty"`
	CTM     [6]float64 `json:"ctm"`
	Content string     `json:"content"`
	Trace   []string   `json:"trace"`
}

func toJSON(category string, tc testcases.TestCase) (jsonTestCase, error) {
	dev := trace.New()
	dev.CacheTiles = tc.CacheTiles
	p := interp.New(dev, tc.Options())
	err := p.Run(context.Background(), tc.Resources, tc.Ops())
	if err != nil {
		return jsonTestCase{}, err
	}
	if err := dev.Check(); err != nil {
		return jsonTestCase{}, err
	}

	src := tc.Content
	if tc.Stream != nil {
		buf := &bytes.Buffer{}
		for _, op := range tc.Stream {
			if err := content.WriteOperator(buf, op); err != nil {
				return jsonTestCase{}, err
			}
		}
		src = buf.String()
	}

	ctm := tc.CTM
	if ctm == (matrix.Matrix{}) {
		ctm = matrix.Identity
	}
	return jsonTestCase{
		Name:    category + "_" + tc.Name,
		Width:   tc.Width,
		Height:  tc.Height,
		CTM:     ctm,
		Content: src,
		Trace:   dev.Lines,
	}, nil
}
