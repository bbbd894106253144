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
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"pinboard/internal/element"
)

// PNGOptions controls PNG export.
//   - Scale multiplies canvas px into output pixels (default 1)
//   - IncludeGuides draws a border around the canvas bounds
type PNGOptions struct {
	Scale         float64
	IncludeGuides bool
}

// PNG rasterizes records and writes the image to outPath.
func PNG(records []element.Record, outPath string, opt PNGOptions) error {
	img := Render(records, opt)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close png: %w", err)
	}
	return nil
}

// Render draws records into a new RGBA image.
func Render(records []element.Record, opt PNGOptions) *image.RGBA {
	scale := opt.Scale
	if scale <= 0 {
		scale = 1
	}
	boxes, w, h := layout(records)
	px := func(v float64) int { return int(math.Round(v * scale)) }

	img := image.NewRGBA(image.Rect(0, 0, px(w), px(h)))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{255, 255, 255, 255}}, image.Point{}, draw.Src)
	if opt.IncludeGuides {
		strokeRect(img, 0, 0, px(w)-1, px(h)-1, color.RGBA{200, 200, 200, 255})
	}

	black := color.RGBA{A: 255}
	face := basicfont.Face7x13
	for _, b := range boxes {
		x0, y0 := px(b.x), px(b.y)
		x1, y1 := x0+px(b.w)-1, y0+px(b.h)-1
		fillRect(img, x0, y0, x1, y1, element.Background(b.rec.BackgroundColor))
		strokeRect(img, x0, y0, x1, y1, black)

		// text is clipped to the box interior
		clip, ok := img.SubImage(image.Rect(x0+1, y0+1, x1, y1)).(*image.RGBA)
		if !ok {
			continue
		}
		d := &font.Drawer{Dst: clip, Src: image.NewUniform(black), Face: face}
		y := y0 + int(padding) + face.Ascent
		for _, line := range Lines(b.rec) {
			d.Dot = fixed.P(x0+int(padding), y)
			d.DrawString(line)
			y += int(lineHeight)
		}
	}
	return img
}

// strokeRect draws a 1px axis-aligned rectangle border inclusive of endpoints.
func strokeRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y0, col)
		img.SetRGBA(x, y1, col)
	}
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x0, y, col)
		img.SetRGBA(x1, y, col)
	}
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			img.SetRGBA(x, y, col)
		}
	}
}
