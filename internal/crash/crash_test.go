/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package crash

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pinboard/internal/board"
	"pinboard/internal/config"
	"pinboard/internal/element"
	"pinboard/internal/storage"
	"pinboard/internal/tick"
)

func TestWriteReportUnderDataDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.EnvDataDir, dir)
	path, err := writeReport("boom", []byte("stacktrace"))
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	if filepath.Dir(path) != filepath.Join(dir, ReportsDirName) {
		t.Fatalf("report written to %s", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, "Pinboard Crash Report") || !strings.Contains(s, "Panic: boom") {
		t.Fatalf("unexpected report: %s", s)
	}
}

// TestRecover_SavesBoardAndExits checks that a panic is reported, the
// debounced save is flushed and exit is requested with code 2.
func TestRecover_SavesBoardAndExits(t *testing.T) {
	t.Setenv(config.EnvDataDir, t.TempDir())
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w
	defer func() {
		_ = w.Close()
		os.Stderr = oldStderr
		_, _ = io.Copy(io.Discard, r)
	}()

	called := 0
	oldExit := exitFn
	exitFn = func(code int) { called = code }
	defer func() { exitFn = oldExit }()

	store := storage.NewMemoryStore()
	b := board.New(board.Options{Store: store, Scheduler: tick.NewFake(), Debounce: 1 << 40})
	if _, err := b.Create(element.Label, nil); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if store.Writes() != 0 {
		t.Fatal("save should still be pending")
	}

	func() {
		defer Recover(b)
		panic("boom")
	}()

	if called != 2 {
		t.Fatalf("expected exit code 2, got %d", called)
	}
	raw, ok, _ := store.Get(context.Background(), config.DefaultStateKey)
	if !ok || !bytes.Contains([]byte(raw), []byte(`"label"`)) {
		t.Fatalf("canvas not saved on crash: %q", raw)
	}
	dir, _ := config.DataDir()
	files, _ := os.ReadDir(filepath.Join(dir, ReportsDirName))
	if len(files) == 0 {
		t.Fatal("expected a crash report")
	}
}

func TestRecoverWithoutPanicIsNoop(t *testing.T) {
	called := false
	oldExit := exitFn
	exitFn = func(int) { called = true }
	defer func() { exitFn = oldExit }()
	func() {
		defer Recover(nil)
	}()
	if called {
		t.Fatal("exit called without panic")
	}
}
