/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package board

import (
	"time"

	"pinboard/internal/element"
)

// TickInterval is the resolution of timers and stopwatches.
const TickInterval = time.Second

// StartTimer starts a countdown from the configured minutes. Any running
// countdown on el is cancelled first. A duration of zero (or a non-numeric
// one) shows "00:00" and schedules nothing. Countdown state is never saved.
func (b *Board) StartTimer(el *Element) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.lookup(el, element.Timer); err != nil {
		return err
	}
	el.stopTicking()
	remaining := element.LeadingInt(el.minutes.Value) * 60
	if remaining <= 0 {
		el.display.Text = element.TimerIdle
		b.changed(el)
		return nil
	}
	gen := el.gen
	el.cancel = b.sched.Every(TickInterval, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if el.gen != gen || el.removed || b.closed {
			return
		}
		remaining--
		if remaining <= 0 {
			el.stopTicking()
			el.display.Text = element.TimerIdle
		} else {
			el.display.Text = element.FormatTimer(remaining)
		}
		b.changed(el)
	})
	b.changed(el)
	return nil
}

// StartStopwatch counts up from the displayed time, replacing any count-up
// already running on el. Ticks do not save.
func (b *Board) StartStopwatch(el *Element) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.lookup(el, element.Stopwatch); err != nil {
		return err
	}
	el.stopTicking()
	seconds := element.ParseStopwatch(el.display.Text)
	gen := el.gen
	el.cancel = b.sched.Every(TickInterval, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if el.gen != gen || el.removed || b.closed {
			return
		}
		seconds++
		el.display.Text = element.FormatStopwatch(seconds)
		b.changed(el)
	})
	b.changed(el)
	return nil
}

// StopStopwatch pauses the count-up and saves the elapsed time.
func (b *Board) StopStopwatch(el *Element) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.lookup(el, element.Stopwatch); err != nil {
		return err
	}
	el.stopTicking()
	b.changed(el)
	b.save("stopwatch_stop")
	return nil
}

// ResetStopwatch stops counting, shows "00:00:00" and saves.
func (b *Board) ResetStopwatch(el *Element) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.lookup(el, element.Stopwatch); err != nil {
		return err
	}
	el.stopTicking()
	el.display.Text = element.StopwatchIdle
	b.changed(el)
	b.save("stopwatch_reset")
	return nil
}
