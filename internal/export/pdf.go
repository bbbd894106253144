/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"pinboard/internal/element"
)

// PDFOptions controls PDF export. Coordinates are canvas px mapped 1:1 to pt.
type PDFOptions struct {
	// IncludeGuides draws a hairline around the canvas bounds.
	IncludeGuides bool
	Title         string
	FontSize      float64
}

// PDF renders records onto a single page sized to the canvas and writes it
// to outPath, creating parent directories.
func PDF(records []element.Record, outPath string, opt PDFOptions) error {
	boxes, w, h := layout(records)
	fsz := opt.FontSize
	if fsz <= 0 {
		fsz = 10
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: w, Ht: h},
	})
	title := opt.Title
	if title == "" {
		title = "Pinboard"
	}
	pdf.SetTitle(title, true)
	pdf.SetAuthor("pinboard", false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPageFormat("", gofpdf.SizeType{Wd: w, Ht: h})
	// core fonts are cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if opt.IncludeGuides {
		setDrawColor(pdf, color.RGBA{R: 200, G: 200, B: 200, A: 255})
		pdf.SetLineWidth(0.3)
		pdf.Rect(0.5, 0.5, w-1, h-1, "D")
	}

	for _, b := range boxes {
		setFillColor(pdf, element.Background(b.rec.BackgroundColor))
		setDrawColor(pdf, color.RGBA{A: 255})
		pdf.SetLineWidth(1)
		pdf.Rect(b.x, b.y, b.w, b.h, "FD")

		pdf.ClipRect(b.x, b.y, b.w, b.h, false)
		cy := b.y + padding + fsz
		for i, line := range Lines(b.rec) {
			style := ""
			if i == 0 {
				style = "B"
			}
			pdf.SetFont("Helvetica", style, fsz)
			pdf.Text(b.x+padding, cy, tr(line))
			cy += fsz * 1.4
		}
		pdf.ClipEnd()
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func setDrawColor(pdf *gofpdf.Fpdf, c color.RGBA) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c color.RGBA) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}
