/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package element

import (
	"errors"
	"fmt"
	"strings"
)

// Variant tags one of the fixed element kinds. It never changes after an
// element is created.
type Variant string

const (
	Note      Variant = "note"
	Todo      Variant = "todo"
	Label     Variant = "label"
	Timer     Variant = "timer"
	Stopwatch Variant = "stopwatch"
)

// ErrUnknownVariant is returned for tags outside the registry.
var ErrUnknownVariant = errors.New("unknown element variant")

// ParseVariant validates a tag read from user input or persisted state.
func ParseVariant(s string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := registry[v]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
	}
	return v, nil
}

// Valid reports whether v is registered.
func (v Variant) Valid() bool {
	_, ok := registry[v]
	return ok
}

func (v Variant) String() string { return string(v) }

// ControlKind classifies the sub-controls an element owns.
type ControlKind string

const (
	ControlText      ControlKind = "text"      // single-line input
	ControlTextArea  ControlKind = "textarea"  // bounded, auto-growing multi-line input
	ControlNumber    ControlKind = "number"    // numeric input
	ControlTaskInput ControlKind = "taskinput" // Enter-submitted task entry
	ControlTaskList  ControlKind = "tasklist"  // ordered checkbox rows
	ControlButton    ControlKind = "button"
	ControlDisplay   ControlKind = "display" // read-only text
)

// Control describes one interactive sub-control and the content field it
// maps to. Field is empty for controls that hold no persisted state.
type Control struct {
	Name        string
	Kind        ControlKind
	Field       string
	MaxLength   int
	Placeholder string
}

// Spec is the registry entry for a variant: its display title and the
// controls it owns, in render order.
type Spec struct {
	Variant  Variant
	Title    string
	Controls []Control
}

// Control returns the named control of the spec.
func (s Spec) Control(name string) (Control, bool) {
	for _, c := range s.Controls {
		if c.Name == name {
			return c, true
		}
	}
	return Control{}, false
}

// Control names shared by the factory and hosts.
const (
	CtrlTitle     = "title"
	CtrlText      = "text"
	CtrlTaskInput = "task-input"
	CtrlTasks     = "tasks"
	CtrlMinutes   = "minutes"
	CtrlStart     = "start"
	CtrlStop      = "stop"
	CtrlReset     = "reset"
	CtrlDisplay   = "display"
)

// order is the creation-trigger order shown by hosts.
var order = []Variant{Note, Todo, Label, Timer, Stopwatch}

var registry = map[Variant]Spec{
	Note: {Variant: Note, Title: "Note", Controls: []Control{
		{Name: CtrlTitle, Kind: ControlText, Field: "title", Placeholder: "Title"},
		{Name: CtrlText, Kind: ControlTextArea, Field: "text", MaxLength: NoteTextMaxLen, Placeholder: "Write your note here..."},
	}},
	Todo: {Variant: Todo, Title: "To-do", Controls: []Control{
		{Name: CtrlTaskInput, Kind: ControlTaskInput, Placeholder: "Add a task..."},
		{Name: CtrlTasks, Kind: ControlTaskList, Field: "tasks", MaxLength: MaxTasks},
	}},
	Label: {Variant: Label, Title: "Label", Controls: []Control{
		{Name: CtrlTitle, Kind: ControlText, Field: "title", MaxLength: LabelTitleMaxLen, Placeholder: "Enter Title"},
	}},
	Timer: {Variant: Timer, Title: "Timer", Controls: []Control{
		{Name: CtrlMinutes, Kind: ControlNumber, Field: "duration", Placeholder: "Set timer (minutes)"},
		{Name: CtrlStart, Kind: ControlButton},
		{Name: CtrlDisplay, Kind: ControlDisplay},
	}},
	Stopwatch: {Variant: Stopwatch, Title: "Stopwatch", Controls: []Control{
		{Name: CtrlStart, Kind: ControlButton},
		{Name: CtrlStop, Kind: ControlButton},
		{Name: CtrlReset, Kind: ControlButton},
		{Name: CtrlDisplay, Kind: ControlDisplay, Field: "seconds"},
	}},
}

// Lookup returns the registry entry for v.
func Lookup(v Variant) (Spec, bool) {
	s, ok := registry[v]
	return s, ok
}

// Variants lists every registered variant in creation-trigger order.
func Variants() []Variant { return append([]Variant(nil), order...) }
