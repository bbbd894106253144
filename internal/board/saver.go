/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package board

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"pinboard/internal/storage"
)

// writeTimeout bounds a single store write.
const writeTimeout = 5 * time.Second

// Saver writes encoded canvas snapshots to one store key. With a positive
// interval, snapshots submitted within the interval coalesce and only the
// latest is written when it elapses.
type Saver struct {
	store    storage.Store
	key      string
	interval time.Duration
	log      *slog.Logger

	mu      sync.Mutex
	pending []byte
	dirty   bool
	timer   *time.Timer
	writes  int
}

func NewSaver(store storage.Store, key string, interval time.Duration, log *slog.Logger) *Saver {
	return &Saver{store: store, key: key, interval: interval, log: log}
}

// Submit queues data as the next stored value. Without debouncing it is
// written before Submit returns.
func (s *Saver) Submit(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending, s.dirty = data, true
	if s.interval <= 0 {
		return s.writeLocked()
	}
	if s.timer == nil {
		s.timer = time.AfterFunc(s.interval, s.fire)
	}
	return nil
}

func (s *Saver) fire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timer = nil
	if err := s.writeLocked(); err != nil {
		s.log.Error("deferred save failed", slog.String("key", s.key), slog.Any("err", err))
	}
}

// Flush writes any pending snapshot now.
func (s *Saver) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	return s.writeLocked()
}

// Pending reports whether a snapshot is waiting to be written.
func (s *Saver) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Writes counts successful store writes.
func (s *Saver) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *Saver) writeLocked() error {
	if !s.dirty {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := s.store.Set(ctx, s.key, string(s.pending)); err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	s.pending, s.dirty = nil, false
	s.writes++
	return nil
}
