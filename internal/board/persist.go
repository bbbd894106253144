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

	"pinboard/internal/element"
	applog "pinboard/internal/log"
)

// Snapshot re-extracts every live element into a record, in canvas order.
func (b *Board) Snapshot() []element.Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshot()
}

func (b *Board) snapshot() []element.Record {
	out := make([]element.Record, 0, len(b.elements))
	for _, el := range b.elements {
		out = append(out, record(el))
	}
	return out
}

// Save writes the current canvas to the store, replacing the stored value.
func (b *Board) Save() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saveLocked()
}

// Flush forces a debounced save to be written now.
func (b *Board) Flush() error { return b.saver.Flush() }

// Saver exposes the board's save pipeline.
func (b *Board) Saver() *Saver { return b.saver }

// save is the mutation hook: failures are logged, not returned, so a
// broken store never blocks editing.
func (b *Board) save(op string) {
	if b.loading {
		return
	}
	if err := b.saveLocked(); err != nil {
		applog.WithOperation(b.log, op).Error("save failed", slog.Any("err", err))
	}
}

func (b *Board) saveLocked() error {
	data, err := element.EncodeState(b.snapshot())
	if err != nil {
		return fmt.Errorf("encode canvas: %w", err)
	}
	return b.saver.Submit(data)
}

// Load replaces the canvas with the stored state. A missing or unparsable
// value yields an empty canvas and no error; records that fail validation
// are skipped and listed in the report. Creation is replayed with saving
// suppressed, followed by one save when anything was rebuilt. Only a failing
// store read is returned as an error.
func (b *Board) Load(ctx context.Context) (element.DecodeReport, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	l := applog.WithOperation(b.log, "load")

	raw, ok, err := b.saver.store.Get(ctx, b.saver.key)
	if err != nil {
		return element.DecodeReport{}, fmt.Errorf("read %s: %w", b.saver.key, err)
	}
	b.clearLocked()
	defer b.changed(nil)
	if !ok {
		l.Info("no saved state", slog.String("key", b.saver.key))
		return element.DecodeReport{}, nil
	}
	records, report, err := element.DecodeState([]byte(raw))
	if err != nil {
		l.Warn("saved state unparsable, starting empty", slog.Any("err", err))
		return report, nil
	}
	for _, s := range report.Skipped {
		l.Warn("record skipped", slog.Int("index", s.Index), slog.String("reason", s.Reason))
	}
	b.replay(records)
	l.Info("canvas restored", slog.Int("elements", len(b.elements)), slog.Int("skipped", len(report.Skipped)))
	if len(b.elements) == 0 {
		return report, nil
	}
	return report, b.saveLocked()
}

// Replace discards the canvas, rebuilds it from records and saves.
func (b *Board) Replace(records []element.Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clearLocked()
	b.replay(records)
	b.changed(nil)
	return b.saveLocked()
}

// Clear removes every element and saves the empty canvas.
func (b *Board) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clearLocked()
	b.changed(nil)
	return b.saveLocked()
}

// Close stops every running tick and writes any pending save.
func (b *Board) Close() error {
	b.mu.Lock()
	b.closed = true
	for _, el := range b.elements {
		el.stopTicking()
	}
	b.mu.Unlock()
	return b.saver.Flush()
}

func (b *Board) replay(records []element.Record) {
	b.loading = true
	defer func() { b.loading = false }()
	for i := range records {
		if _, err := b.create(records[i].Variant, &records[i]); err != nil {
			b.log.Warn("replay skipped record", slog.Int("index", i), slog.Any("err", err))
		}
	}
}

func (b *Board) clearLocked() {
	for _, el := range b.elements {
		el.stopTicking()
		el.removed = true
	}
	b.elements = nil
}
