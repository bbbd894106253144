/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders a saved canvas to PDF or PNG. Elements are drawn as
// fixed-size boxes at their stored positions, filled with their background
// color and labelled with their content.
package export

import (
	"fmt"
	"math"
	"strings"

	"pinboard/internal/element"
)

// Margin surrounds the element bounds on every side, in px.
const Margin = 20.0

const (
	lineHeight = 14.0
	padding    = 8.0
)

// BoxSize returns the drawn width and height of a variant's box in px.
func BoxSize(v element.Variant) (w, h float64) {
	switch v {
	case element.Note:
		return 200, 180
	case element.Todo:
		return 220, 230
	case element.Label:
		return 140, 60
	case element.Timer, element.Stopwatch:
		return 180, 110
	}
	return 160, 100
}

// box is a record placed in output coordinates.
type box struct {
	x, y, w, h float64
	rec        element.Record
}

// layout shifts every box so the canvas bounds plus Margin start at 0,0.
// Elements dragged to negative offsets stay visible.
func layout(records []element.Record) (boxes []box, width, height float64) {
	if len(records) == 0 {
		return nil, 2 * Margin, 2 * Margin
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, r := range records {
		w, h := BoxSize(r.Variant)
		x, y := element.ParsePx(r.Position.Left), element.ParsePx(r.Position.Top)
		boxes = append(boxes, box{x: x, y: y, w: w, h: h, rec: r})
		minX, minY = math.Min(minX, x), math.Min(minY, y)
		maxX, maxY = math.Max(maxX, x+w), math.Max(maxY, y+h)
	}
	minX, minY = math.Min(minX, 0), math.Min(minY, 0)
	for i := range boxes {
		boxes[i].x += Margin - minX
		boxes[i].y += Margin - minY
	}
	return boxes, maxX - minX + 2*Margin, maxY - minY + 2*Margin
}

// Lines returns the heading and content lines drawn for a record.
func Lines(r element.Record) []string {
	title := string(r.Variant)
	if spec, ok := element.Lookup(r.Variant); ok {
		title = spec.Title
	}
	out := []string{title}
	switch c := r.Content.(type) {
	case element.NoteContent:
		if c.Title != "" {
			out = append(out, c.Title)
		}
		if c.Text != "" {
			out = append(out, strings.Split(c.Text, "\n")...)
		}
	case element.TodoContent:
		for _, t := range c.Tasks {
			mark := "[ ]"
			if t.Checked {
				mark = "[x]"
			}
			out = append(out, mark+" "+t.Text)
		}
	case element.LabelContent:
		out = append(out, c.Title)
	case element.TimerContent:
		out = append(out, fmt.Sprintf("%d min", c.Duration))
	case element.StopwatchContent:
		out = append(out, element.FormatStopwatch(c.Seconds))
	}
	return out
}
