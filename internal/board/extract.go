/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package board

import "pinboard/internal/element"

// Extract reads el's current control state back into its content shape.
// It does not mutate el.
func (b *Board) Extract(el *Element) element.Content {
	b.mu.Lock()
	defer b.mu.Unlock()
	return extract(el)
}

func extract(el *Element) element.Content {
	switch el.variant {
	case element.Note:
		return element.NoteContent{Title: el.title.Value, Text: el.text.Value}
	case element.Todo:
		tasks := make([]element.Task, 0, len(el.tasks))
		for _, t := range el.tasks {
			tasks = append(tasks, element.Task{Text: t.Text, Checked: t.Done.Checked})
		}
		return element.TodoContent{Tasks: tasks}
	case element.Label:
		return element.LabelContent{Title: el.title.Value}
	case element.Timer:
		return element.TimerContent{Duration: element.LeadingInt(el.minutes.Value)}
	case element.Stopwatch:
		// the display is the only record of elapsed time
		return element.StopwatchContent{Seconds: element.ParseStopwatch(el.display.Text)}
	}
	return nil
}

func record(el *Element) element.Record {
	return element.Record{
		Variant:         el.variant,
		Position:        element.Position{Top: el.top, Left: el.left},
		BackgroundColor: el.background,
		Content:         extract(el),
	}
}
