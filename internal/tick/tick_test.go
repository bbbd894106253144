/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package tick

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestFakeFiresOncePerInterval(t *testing.T) {
	f := NewFake()
	n := 0
	cancel := f.Every(time.Second, func() { n++ })
	f.Advance(999 * time.Millisecond)
	if n != 0 {
		t.Fatalf("fired early: %d", n)
	}
	f.Advance(time.Millisecond)
	if n != 1 {
		t.Fatalf("expected 1 tick, got %d", n)
	}
	f.Advance(5 * time.Second)
	if n != 6 {
		t.Fatalf("expected 6 ticks, got %d", n)
	}
	cancel()
	cancel()
	f.Advance(10 * time.Second)
	if n != 6 || f.Pending() != 0 {
		t.Fatalf("ticked after cancel: n=%d pending=%d", n, f.Pending())
	}
}

func TestFakeCancelFromCallback(t *testing.T) {
	f := NewFake()
	n := 0
	var cancel Cancel
	cancel = f.Every(time.Second, func() {
		n++
		if n == 3 {
			cancel()
		}
	})
	f.Advance(time.Minute)
	if n != 3 {
		t.Fatalf("expected 3 ticks, got %d", n)
	}
}

func TestFakeOrdersByDeadline(t *testing.T) {
	f := NewFake()
	var got []string
	f.Every(2*time.Second, func() { got = append(got, "slow") })
	f.Every(time.Second, func() { got = append(got, "fast") })
	f.Advance(2 * time.Second)
	want := []string{"fast", "slow", "fast"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestRealSchedulerStops(t *testing.T) {
	var n atomic.Int32
	cancel := Real().Every(5*time.Millisecond, func() { n.Add(1) })
	deadline := time.Now().Add(2 * time.Second)
	for n.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	// a callback already in flight may still land
	time.Sleep(20 * time.Millisecond)
	after := n.Load()
	if after < 2 {
		t.Fatalf("real scheduler did not tick: %d", after)
	}
	time.Sleep(30 * time.Millisecond)
	if n.Load() != after {
		t.Fatalf("ticked after cancel: %d -> %d", after, n.Load())
	}
}
