/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package board

import (
	"strings"
	"unicode/utf8"

	"pinboard/internal/element"
)

// Text area metrics used for auto-grow.
const (
	MinTextAreaHeight = 100.0
	TextLineHeight    = 18.0
	TextAreaColumns   = 24
)

// TextInput is a single-line input. Set truncates to MaxLength runes when
// MaxLength > 0.
type TextInput struct {
	Value       string
	MaxLength   int
	Placeholder string
}

func (t *TextInput) Set(s string) {
	if t.MaxLength > 0 && utf8.RuneCountInString(s) > t.MaxLength {
		s = string([]rune(s)[:t.MaxLength])
	}
	t.Value = s
}

// TextArea is a bounded multi-line input whose Height follows its content.
// Height never drops below MinTextAreaHeight and has no maximum.
type TextArea struct {
	TextInput
	Height float64
}

func (a *TextArea) Set(s string) {
	a.TextInput.Set(s)
	a.grow()
}

// grow recomputes the height from wrapped line count.
func (a *TextArea) grow() {
	rows := 0
	for _, line := range strings.Split(a.Value, "\n") {
		n := utf8.RuneCountInString(line)
		r := (n + TextAreaColumns - 1) / TextAreaColumns
		if r < 1 {
			r = 1
		}
		rows += r
	}
	a.Height = max(float64(rows)*TextLineHeight, MinTextAreaHeight)
}

type Checkbox struct {
	Checked bool
}

// Display is read-only text, used by timers and stopwatches.
type Display struct {
	Text string
}

// Palette is the color chooser attached to every element. It starts hidden
// and its visibility is never persisted.
type Palette struct {
	Hidden   bool
	Swatches [6]string
}

func newPalette() Palette { return Palette{Hidden: true, Swatches: element.Palette} }

// TaskRow is one entry of a todo list. Struck mirrors the checkbox as the
// strike-through marker on the text.
type TaskRow struct {
	Done   Checkbox
	Text   string
	Struck bool
}

func (r *TaskRow) toggle() {
	r.Done.Checked = !r.Done.Checked
	r.Struck = r.Done.Checked
}
