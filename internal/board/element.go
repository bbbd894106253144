/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package board

import (
	"pinboard/internal/element"
	"pinboard/internal/tick"
)

// Element is a live canvas element. It is a handle: its state is only
// reachable through Board methods, which serialize access.
type Element struct {
	variant    element.Variant
	top, left  string
	background string
	palette    Palette

	title     TextInput // note title, label title
	text      TextArea  // note body
	taskInput TextInput
	tasks     []*TaskRow
	minutes   TextInput
	display   Display

	dragging     bool
	dragX, dragY float64

	// cancel stops the running countdown or count-up, if any. gen changes
	// on every start and stop so ticks already in flight can detect they
	// are stale.
	cancel  tick.Cancel
	gen     int
	removed bool
}

// Variant returns the element's immutable kind.
func (e *Element) Variant() element.Variant { return e.variant }

// View is a copy of an element's visible state for hosts.
type View struct {
	Index           int
	Variant         element.Variant
	Position        element.Position
	BackgroundColor string
	Palette         Palette
	Title           TextInput
	Text            TextArea
	TaskInput       TextInput
	Tasks           []TaskRow
	Minutes         TextInput
	Display         Display
	Running         bool
}

func (e *Element) view(index int) View {
	v := View{
		Index:           index,
		Variant:         e.variant,
		Position:        element.Position{Top: e.top, Left: e.left},
		BackgroundColor: e.background,
		Palette:         e.palette,
		Title:           e.title,
		Text:            e.text,
		TaskInput:       e.taskInput,
		Minutes:         e.minutes,
		Display:         e.display,
		Running:         e.cancel != nil,
	}
	if len(e.tasks) > 0 {
		v.Tasks = make([]TaskRow, len(e.tasks))
		for i, t := range e.tasks {
			v.Tasks[i] = *t
		}
	}
	return v
}

func (e *Element) stopTicking() {
	e.gen++
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}
