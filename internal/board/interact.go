/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package board

import (
	"fmt"
	"strings"

	"pinboard/internal/element"
)

// Delete removes el from the canvas, stops its ticks and saves.
func (b *Board) Delete(el *Element) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.indexOf(el)
	if i < 0 {
		return ErrNotFound
	}
	el.stopTicking()
	el.removed = true
	b.elements = append(b.elements[:i], b.elements[i+1:]...)
	b.save("delete")
	return nil
}

// TogglePalette opens or closes el's palette. Visibility is not persisted.
func (b *Board) TogglePalette(el *Element) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.lookup(el, ""); err != nil {
		return err
	}
	el.palette.Hidden = !el.palette.Hidden
	b.changed(el)
	return nil
}

// SelectColor applies a palette swatch as el's background, closes the
// palette and saves.
func (b *Board) SelectColor(el *Element, c string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.lookup(el, ""); err != nil {
		return err
	}
	swatch, ok := element.Swatch(c)
	if !ok {
		return fmt.Errorf("%q: %w", c, ErrNotInPalette)
	}
	el.background = swatch
	el.palette.Hidden = true
	b.changed(el)
	b.save("color")
	return nil
}

// DragStart records the pointer offset from el's top-left corner.
func (b *Board) DragStart(el *Element, x, y float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.lookup(el, ""); err != nil {
		return err
	}
	el.dragging = true
	el.dragX = x - element.ParsePx(el.left)
	el.dragY = y - element.ParsePx(el.top)
	return nil
}

// DragEnd places el so the pointer keeps the offset captured by DragStart
// and saves. Positions are unbounded.
func (b *Board) DragEnd(el *Element, x, y float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.lookup(el, ""); err != nil {
		return err
	}
	if !el.dragging {
		el.dragX, el.dragY = 0, 0
	}
	el.left = element.Px(x - el.dragX)
	el.top = element.Px(y - el.dragY)
	el.dragging = false
	el.dragX, el.dragY = 0, 0
	b.changed(el)
	b.save("drag")
	return nil
}

// MoveTo sets el's position directly and saves.
func (b *Board) MoveTo(el *Element, left, top float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.lookup(el, ""); err != nil {
		return err
	}
	el.left, el.top = element.Px(left), element.Px(top)
	b.changed(el)
	b.save("move")
	return nil
}

// SubmitTask appends an unchecked task to a todo list and clears the task
// input. Blank text is ignored. A full list discards the input, shows the
// limit notice and returns ErrTaskLimit.
func (b *Board) SubmitTask(el *Element, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.lookup(el, element.Todo); err != nil {
		return err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(el.tasks) >= element.MaxTasks {
		el.taskInput.Set("")
		b.changed(el)
		b.notifier.Notify(TaskLimitNotice)
		return ErrTaskLimit
	}
	el.tasks = append(el.tasks, &TaskRow{Text: text})
	el.taskInput.Set("")
	b.changed(el)
	b.save("task_add")
	return nil
}

// SetTaskInput updates the pending task text without submitting it.
func (b *Board) SetTaskInput(el *Element, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.lookup(el, element.Todo); err != nil {
		return err
	}
	el.taskInput.Set(text)
	return nil
}

// ToggleTask flips the checked flag of task i and its strike marker.
func (b *Board) ToggleTask(el *Element, i int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.lookup(el, element.Todo); err != nil {
		return err
	}
	if i < 0 || i >= len(el.tasks) {
		return fmt.Errorf("toggle %d: %w", i, ErrNoTask)
	}
	el.tasks[i].toggle()
	b.changed(el)
	b.save("task_toggle")
	return nil
}

// DeleteTask removes task i.
func (b *Board) DeleteTask(el *Element, i int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.lookup(el, element.Todo); err != nil {
		return err
	}
	if i < 0 || i >= len(el.tasks) {
		return fmt.Errorf("delete %d: %w", i, ErrNoTask)
	}
	el.tasks = append(el.tasks[:i], el.tasks[i+1:]...)
	b.changed(el)
	b.save("task_delete")
	return nil
}

func (b *Board) SetNoteTitle(el *Element, s string) error {
	return b.edit(el, element.Note, "note_title", func() { el.title.Set(s) })
}

// SetNoteText replaces the note body, truncating to its limit and growing
// the text area to fit.
func (b *Board) SetNoteText(el *Element, s string) error {
	return b.edit(el, element.Note, "note_text", func() { el.text.Set(s) })
}

func (b *Board) SetLabelTitle(el *Element, s string) error {
	return b.edit(el, element.Label, "label_title", func() { el.title.Set(s) })
}

// SetTimerMinutes sets the configured duration text. A running countdown
// is unaffected.
func (b *Board) SetTimerMinutes(el *Element, s string) error {
	return b.edit(el, element.Timer, "timer_minutes", func() { el.minutes.Set(s) })
}

func (b *Board) edit(el *Element, want element.Variant, op string, apply func()) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.lookup(el, want); err != nil {
		return err
	}
	apply()
	b.changed(el)
	b.save(op)
	return nil
}
