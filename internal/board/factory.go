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
	"log/slog"

	"pinboard/internal/element"
)

const defaultPosition = "0px"

// Create builds a live element of variant v, seeded from prior when given,
// appends it to the canvas and saves. Absent prior fields take the variant
// defaults. An unknown variant produces no element and no save.
func (b *Board) Create(v element.Variant, prior *element.Record) (*Element, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	el, err := b.create(v, prior)
	if err != nil {
		return nil, err
	}
	b.save("create")
	return el, nil
}

func (b *Board) create(v element.Variant, prior *element.Record) (*Element, error) {
	spec, ok := element.Lookup(v)
	if !ok {
		b.log.Warn("create skipped", slog.String("variant", string(v)))
		return nil, fmt.Errorf("create %q: %w", v, element.ErrUnknownVariant)
	}
	el := &Element{
		variant: v,
		top:     defaultPosition,
		left:    defaultPosition,
		palette: newPalette(),
	}
	content, _ := element.ZeroContent(v)
	if prior != nil {
		if prior.Position.Top != "" {
			el.top = prior.Position.Top
		}
		if prior.Position.Left != "" {
			el.left = prior.Position.Left
		}
		el.background = prior.BackgroundColor
		if prior.Content != nil && prior.Content.Variant() == v {
			content = prior.Content
		}
	}

	switch c := content.(type) {
	case element.NoteContent:
		el.title = input(spec, element.CtrlTitle)
		el.title.Set(c.Title)
		el.text = TextArea{TextInput: input(spec, element.CtrlText)}
		el.text.Set(c.Text)
	case element.TodoContent:
		el.taskInput = input(spec, element.CtrlTaskInput)
		// stored lists are restored as-is; the limit applies to new tasks
		for _, t := range c.Tasks {
			el.tasks = append(el.tasks, &TaskRow{Done: Checkbox{Checked: t.Checked}, Text: t.Text, Struck: t.Checked})
		}
	case element.LabelContent:
		el.title = input(spec, element.CtrlTitle)
		el.title.Set(c.Title)
	case element.TimerContent:
		el.minutes = input(spec, element.CtrlMinutes)
		if c.Duration != 0 {
			el.minutes.Set(fmt.Sprint(c.Duration))
		}
		el.display.Text = element.TimerIdle
	case element.StopwatchContent:
		el.display.Text = element.FormatStopwatch(c.Seconds)
	default:
		return nil, fmt.Errorf("create %q: unexpected content %T", v, content)
	}

	b.elements = append(b.elements, el)
	b.changed(el)
	return el, nil
}

func input(spec element.Spec, name string) TextInput {
	c, _ := spec.Control(name)
	return TextInput{MaxLength: c.MaxLength, Placeholder: c.Placeholder}
}
