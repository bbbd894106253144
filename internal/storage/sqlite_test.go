/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func TestSQLiteStore_SetGetHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pinboard.sqlite")
	s, err := OpenSQLite(path, 2)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()
	ctx := context.Background()
	if _, ok, err := s.Get(ctx, "workspaceState"); ok || err != nil {
		t.Fatalf("expected absent key, ok=%v err=%v", ok, err)
	}
	for _, v := range []string{"[]", "[1]", "[1,2]"} {
		if err := s.Set(ctx, "workspaceState", v); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}
	v, ok, err := s.Get(ctx, "workspaceState")
	if err != nil || !ok || v != "[1,2]" {
		t.Fatalf("Get = %q ok=%v err=%v", v, ok, err)
	}
	hist, err := s.History(ctx, "workspaceState")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(hist) != 2 || hist[0].Value != "[1,2]" || hist[1].Value != "[1]" {
		t.Fatalf("unexpected history: %+v", hist)
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pinboard.sqlite")
	s, err := OpenSQLite(path, 0)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := s.Set(context.Background(), "k", "persisted"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	_ = s.Close()
	s2, err := OpenSQLite(path, 0)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	if v, ok, _ := s2.Get(context.Background(), "k"); !ok || v != "persisted" {
		t.Fatalf("got %q ok=%v", v, ok)
	}
}

func TestSQLiteStore_RecreatesCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pinboard.sqlite")
	if err := os.WriteFile(path, bytes.Repeat([]byte("not a sqlite database "), 400), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := OpenSQLite(path, 0)
	if err != nil {
		t.Fatalf("OpenSQLite on corrupt file: %v", err)
	}
	defer s.Close()
	if err := s.Set(context.Background(), "k", "v"); err != nil {
		t.Fatalf("Set after recreate: %v", err)
	}
	ents, _ := os.ReadDir(filepath.Join(dir, BackupsDirName))
	if len(ents) == 0 {
		t.Fatal("expected a backup of the corrupt file")
	}
}

// TestMigrations_UpgradeV1ToV2 ensures a schema=1 database is migrated and keeps its values.
func TestMigrations_UpgradeV1ToV2(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pinboard.sqlite")
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(2000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	stmts := []string{
		`PRAGMA journal_mode=WAL;`,
		`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT NOT NULL);`,
		`CREATE TABLE IF NOT EXISTS version (id INTEGER PRIMARY KEY CHECK(id=1), schema INTEGER NOT NULL, app TEXT, created_at TEXT NOT NULL, updated_at TEXT NOT NULL);`,
		`INSERT INTO version(id, schema, app, created_at, updated_at) VALUES(1, 1, 'test', '2020-01-01T00:00:00Z', '2020-01-01T00:00:00Z');`,
		`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL, updated_at TEXT NOT NULL);`,
		`INSERT INTO kv(key, value, updated_at) VALUES('workspaceState', '[]', '2020-01-01T00:00:00Z');`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			t.Fatalf("seed v1 schema: %v (q=%s)", err, q)
		}
	}
	db.Close()

	s, err := OpenSQLite(path, 5)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()
	var schema int
	if err := s.db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&schema); err != nil {
		t.Fatalf("read schema: %v", err)
	}
	if schema != schemaVersion {
		t.Fatalf("expected schema %d after migration, got %d", schemaVersion, schema)
	}
	var cnt int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name='idx_history_key_id'`).Scan(&cnt); err != nil {
		t.Fatalf("query indexes: %v", err)
	}
	if cnt != 1 {
		t.Fatalf("expected history index after migration, got %d", cnt)
	}
	if v, ok, _ := s.Get(ctx, "workspaceState"); !ok || v != "[]" {
		t.Fatalf("value lost in migration: %q ok=%v", v, ok)
	}
}
