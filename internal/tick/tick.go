/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package tick schedules repeating callbacks such as timer and stopwatch
// ticks. A repeat keeps firing until its Cancel is called, so every owner
// must cancel on stop, reset, restart and teardown.
package tick

import (
	"sort"
	"sync"
	"time"
)

// Cancel stops a scheduled repeat. Calling it more than once is a no-op.
type Cancel func()

// Scheduler runs fn every d until cancelled.
type Scheduler interface {
	Every(d time.Duration, fn func()) Cancel
}

// Real returns a Scheduler backed by time.Ticker. Each repeat runs on its own
// goroutine; callers serialize fn against their own state.
func Real() Scheduler { return realScheduler{} }

type realScheduler struct{}

func (realScheduler) Every(d time.Duration, fn func()) Cancel {
	t := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-t.C:
				// a tick may be delivered after Cancel; re-check before firing
				select {
				case <-done:
					return
				default:
				}
				fn()
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			t.Stop()
			close(done)
		})
	}
}

// Fake is a deterministic Scheduler for tests. Time only moves in Advance,
// which fires due callbacks synchronously in deadline order. Callbacks may
// schedule or cancel repeats but must not call Advance.
type Fake struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	repeats []*repeat
}

type repeat struct {
	next     time.Duration
	interval time.Duration
	seq      int
	fn       func()
	stopped  bool
}

// NewFake returns a Fake at time zero.
func NewFake() *Fake { return &Fake{} }

// Every registers a repeat whose first firing is d after the current fake time.
func (f *Fake) Every(d time.Duration, fn func()) Cancel {
	if d <= 0 {
		panic("tick: non-positive interval")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	r := &repeat{next: f.now + d, interval: d, seq: f.seq, fn: fn}
	f.repeats = append(f.repeats, r)
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		r.stopped = true
	}
}

// Advance moves fake time forward by d, firing every due callback.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now + d
	f.mu.Unlock()
	for {
		f.mu.Lock()
		r := f.nextDueLocked(target)
		if r == nil {
			f.now = target
			f.mu.Unlock()
			return
		}
		f.now = r.next
		r.next += r.interval
		fn := r.fn
		f.mu.Unlock()
		fn()
	}
}

// Pending reports the number of repeats that have not been cancelled.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.repeats {
		if !r.stopped {
			n++
		}
	}
	return n
}

func (f *Fake) nextDueLocked(target time.Duration) *repeat {
	live := f.repeats[:0]
	for _, r := range f.repeats {
		if !r.stopped {
			live = append(live, r)
		}
	}
	f.repeats = live
	sort.SliceStable(f.repeats, func(i, j int) bool {
		if f.repeats[i].next != f.repeats[j].next {
			return f.repeats[i].next < f.repeats[j].next
		}
		return f.repeats[i].seq < f.repeats[j].seq
	})
	if len(f.repeats) == 0 || f.repeats[0].next > target {
		return nil
	}
	return f.repeats[0]
}
