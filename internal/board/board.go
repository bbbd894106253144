/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package board is the canvas controller. It owns the ordered collection of
// live elements, builds them from records, projects them back into records,
// applies user interactions and persists the whole canvas on every mutation.
//
// Every exported method runs under a single lock, as do timer ticks, so
// handlers execute one at a time in arrival order.
package board

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"pinboard/internal/config"
	"pinboard/internal/element"
	applog "pinboard/internal/log"
	"pinboard/internal/storage"
	"pinboard/internal/tick"
)

var (
	ErrTaskLimit    = errors.New("task limit reached")
	ErrNotInPalette = errors.New("color is not in the palette")
	ErrNotFound     = errors.New("element is not on the board")
	ErrWrongVariant = errors.New("operation does not apply to this element variant")
	ErrNoTask       = errors.New("task index out of range")
)

// TaskLimitNotice is the message shown when a todo list is full.
const TaskLimitNotice = "Task limit reached. You can only add up to 7 tasks."

// Notifier surfaces blocking user notices. Notify returns once the user
// has acknowledged the message.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

func (f NotifierFunc) Notify(msg string) { f(msg) }

// Options configure a Board. Zero values select an in-memory store, the
// default state key, real tickers and synchronous saves.
type Options struct {
	Store     storage.Store
	Key       string
	Scheduler tick.Scheduler
	Notifier  Notifier
	// Debounce coalesces saves issued within the interval; 0 writes on
	// every mutation.
	Debounce time.Duration
	// OnChange is called under the board lock whenever an element's visible
	// state changes (nil element after Load, Clear and Import). It must not
	// call back into the board synchronously.
	OnChange func(*Element)
	Logger   *slog.Logger
}

// Board is the canvas controller.
type Board struct {
	mu       sync.Mutex
	elements []*Element

	sched    tick.Scheduler
	notifier Notifier
	onChange func(*Element)
	saver    *Saver
	log      *slog.Logger

	loading bool
	closed  bool
}

// New creates an empty board. Call Load to restore the persisted canvas.
func New(opts Options) *Board {
	if opts.Store == nil {
		opts.Store = storage.NewMemoryStore()
	}
	if opts.Key == "" {
		opts.Key = config.DefaultStateKey
	}
	if opts.Scheduler == nil {
		opts.Scheduler = tick.Real()
	}
	if opts.Logger == nil {
		opts.Logger = applog.WithComponent("board")
	}
	if opts.Notifier == nil {
		l := opts.Logger
		opts.Notifier = NotifierFunc(func(msg string) { l.Warn("notice", slog.String("msg", msg)) })
	}
	return &Board{
		sched:    opts.Scheduler,
		notifier: opts.Notifier,
		onChange: opts.OnChange,
		saver:    NewSaver(opts.Store, opts.Key, opts.Debounce, opts.Logger),
		log:      opts.Logger,
	}
}

// Len returns the number of elements on the canvas.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.elements)
}

// Elements returns the live elements in canvas order.
func (b *Board) Elements() []*Element {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*Element(nil), b.elements...)
}

// At returns the element at canvas position i.
func (b *Board) At(i int) (*Element, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i < 0 || i >= len(b.elements) {
		return nil, ErrNotFound
	}
	return b.elements[i], nil
}

// View returns a copy of el's visible state.
func (b *Board) View(el *Element) (View, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.indexOf(el)
	if i < 0 {
		return View{}, ErrNotFound
	}
	return el.view(i), nil
}

// Views returns the visible state of every element in canvas order.
func (b *Board) Views() []View {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]View, len(b.elements))
	for i, el := range b.elements {
		out[i] = el.view(i)
	}
	return out
}

func (b *Board) indexOf(el *Element) int {
	if el == nil || el.removed {
		return -1
	}
	for i, e := range b.elements {
		if e == el {
			return i
		}
	}
	return -1
}

// lookup resolves el and checks its variant when want is non-empty.
func (b *Board) lookup(el *Element, want element.Variant) error {
	if b.indexOf(el) < 0 {
		return ErrNotFound
	}
	if want != "" && el.variant != want {
		return ErrWrongVariant
	}
	return nil
}

func (b *Board) changed(el *Element) {
	if b.onChange != nil {
		b.onChange(el)
	}
}
