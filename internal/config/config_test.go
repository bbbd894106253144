/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points the config file at a temp dir so the developer's real
// config never leaks into a test.
func isolate(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(EnvConfigPath, path)
	for _, k := range []string{EnvStoreBackend, EnvStorePath, EnvStateKey, EnvDebounceMs, EnvLogLevel, EnvLogFormat, EnvLogSource, EnvLogFile} {
		t.Setenv(k, "")
	}
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Store.Backend != "file" || cfg.Store.Key != DefaultStateKey {
		t.Fatalf("unexpected store defaults: %#v", cfg.Store)
	}
	if cfg.Save.Debounce() != 0 {
		t.Fatalf("default debounce should be zero, got %v", cfg.Save.Debounce())
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	isolate(t)
	cfg := Defaults()
	cfg.Store.Backend = "sqlite"
	cfg.Store.Path = "/tmp/pb.sqlite"
	cfg.Save.DebounceMs = 250
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Store.Backend != "sqlite" || got.Store.Path != "/tmp/pb.sqlite" {
		t.Fatalf("store not persisted: %#v", got.Store)
	}
	if got.Save.Debounce() != 250*time.Millisecond {
		t.Fatalf("debounce = %v", got.Save.Debounce())
	}
}

func TestMalformedFileIsIgnored(t *testing.T) {
	path := isolate(t)
	if err := os.WriteFile(path, []byte("store: [not: a map"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Store.Backend != "file" {
		t.Fatalf("expected defaults after malformed file, got %#v", cfg.Store)
	}
}

func TestEnvOverridesStore(t *testing.T) {
	isolate(t)
	t.Setenv(EnvStoreBackend, "SQLite")
	t.Setenv(EnvStateKey, "otherKey")
	t.Setenv(EnvDebounceMs, "40")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Store.Backend != "sqlite" || cfg.Store.Key != "otherKey" || cfg.Save.DebounceMs != 40 {
		t.Fatalf("env overrides not applied: %#v %#v", cfg.Store, cfg.Save)
	}
	if env, ok := EnvOverrideFor("store.key"); !ok || env != EnvStateKey {
		t.Fatalf("EnvOverrideFor(store.key) = %q, %v", env, ok)
	}
	if _, ok := EnvOverrideFor("store.path"); ok {
		t.Fatalf("store.path should not report an override")
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Logging.Level = "DEBUG"
	src.Logging.Format = "json"
	src.Logging.Source = true
	src.Logging.File = "/tmp/pb.log"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "/tmp/pb.log" {
		t.Fatalf("logging fields not merged correctly: %#v", dst.Logging)
	}
}

func TestResolvePathUsesDataDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDataDir, dir)
	p, err := StoreConfig{Backend: "sqlite"}.ResolvePath()
	if err != nil {
		t.Fatal(err)
	}
	if p != filepath.Join(dir, "pinboard.sqlite") {
		t.Fatalf("sqlite path = %q", p)
	}
	p, err = StoreConfig{Backend: "file"}.ResolvePath()
	if err != nil || p != dir {
		t.Fatalf("file path = %q, %v", p, err)
	}
}
