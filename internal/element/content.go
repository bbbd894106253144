/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package element

import "strings"

// Capacity and length limits enforced by the live input controls.
const (
	MaxTasks         = 7
	NoteTextMaxLen   = 120
	LabelTitleMaxLen = 10
)

// Palette is the fixed set of background colors offered by every element.
var Palette = [6]string{"hotpink", "lightgreen", "lightblue", "#FFFF88", "#ce81ff", "#ffc14a"}

// Swatch matches c against the palette case-insensitively and returns the
// palette's own spelling.
func Swatch(c string) (string, bool) {
	c = strings.TrimSpace(c)
	for _, p := range Palette {
		if strings.EqualFold(p, c) {
			return p, true
		}
	}
	return "", false
}

// Content is the variant-specific payload of a record. The set of
// implementations is closed: NoteContent, TodoContent, LabelContent,
// TimerContent and StopwatchContent.
type Content interface {
	Variant() Variant
	isContent()
}

type NoteContent struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type Task struct {
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

type TodoContent struct {
	Tasks []Task `json:"tasks"`
}

type LabelContent struct {
	Title string `json:"title"`
}

// TimerContent holds the configured duration in minutes. The running
// countdown is never part of the content.
type TimerContent struct {
	Duration int `json:"duration"`
}

type StopwatchContent struct {
	Seconds int `json:"seconds"`
}

func (NoteContent) Variant() Variant      { return Note }
func (TodoContent) Variant() Variant      { return Todo }
func (LabelContent) Variant() Variant     { return Label }
func (TimerContent) Variant() Variant     { return Timer }
func (StopwatchContent) Variant() Variant { return Stopwatch }

func (NoteContent) isContent()      {}
func (TodoContent) isContent()      {}
func (LabelContent) isContent()     {}
func (TimerContent) isContent()     {}
func (StopwatchContent) isContent() {}

// ZeroContent returns the defaults used when a record carries no content:
// empty strings, an empty task list, zero duration and seconds.
func ZeroContent(v Variant) (Content, error) {
	switch v {
	case Note:
		return NoteContent{}, nil
	case Todo:
		return TodoContent{Tasks: []Task{}}, nil
	case Label:
		return LabelContent{}, nil
	case Timer:
		return TimerContent{}, nil
	case Stopwatch:
		return StopwatchContent{}, nil
	}
	return nil, ErrUnknownVariant
}
