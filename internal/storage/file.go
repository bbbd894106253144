/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	applog "pinboard/internal/log"
)

const (
	BackupsDirName = "backups"
	valueExt       = ".json"
	backupStamp    = "20060102-150405.000000000"
)

// FileStore keeps each key in <root>/<key>.json. Writes go through a temp
// file in the same directory and a rename; the previous value is copied to
// <root>/backups/<key>.json.<stamp>.bak first and only the newest keep
// backups survive.
type FileStore struct {
	root string
	keep int
	mu   sync.Mutex
}

// NewFileStore creates root (and its backups folder) if needed. keep <= 0
// disables backups.
func NewFileStore(root string, keep int) (*FileStore, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("store root is required")
	}
	if err := os.MkdirAll(filepath.Join(root, BackupsDirName), 0o755); err != nil {
		return nil, fmt.Errorf("create store root: %w", err)
	}
	return &FileStore{root: root, keep: keep}, nil
}

// Root returns the store directory.
func (s *FileStore) Root() string { return s.root }

// Path returns the file holding key.
func (s *FileStore) Path(key string) (string, error) {
	if !validKey(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.root, key+valueExt), nil
}

// Get returns the stored value. If the value file is unreadable but backups
// exist, the newest backup is returned instead.
func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	path, err := s.Path(key)
	if err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := os.ReadFile(path)
	if err == nil {
		return string(b), true, nil
	}
	backups, berr := s.backupsLocked(key)
	if berr != nil || len(backups) == 0 {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	latest := backups[len(backups)-1]
	applog.WithComponent("storage").Warn("value unreadable, using latest backup",
		slog.String("key", key), slog.String("backup", latest), slog.Any("err", err))
	b, err = os.ReadFile(latest)
	if err != nil {
		return "", false, fmt.Errorf("read latest backup: %w", err)
	}
	return string(b), true, nil
}

// Set replaces the value transactionally.
func (s *FileStore) Set(_ context.Context, key, value string) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.keep > 0 {
		if _, statErr := os.Stat(path); statErr == nil {
			bname := fmt.Sprintf("%s%s.%s.bak", key, valueExt, time.Now().Format(backupStamp))
			if cerr := copyFile(path, filepath.Join(s.root, BackupsDirName, bname)); cerr != nil {
				return fmt.Errorf("backup current value: %w", cerr)
			}
			s.pruneLocked(key)
		}
	}

	temp := filepath.Join(s.root, fmt.Sprintf(".%s.tmp-%d-%d", key, os.Getpid(), rand.Int()))
	if err := writeFileSync(temp, []byte(value)); err != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("write temp value: %w", err)
	}
	if err := os.Rename(temp, path); err != nil {
		// Windows refuses to rename over an existing file
		_ = os.Remove(path)
		if rerr := os.Rename(temp, path); rerr != nil {
			_ = os.Remove(temp)
			return fmt.Errorf("replace value: %w", rerr)
		}
	}
	return nil
}

// Backups lists backup files for key, oldest first.
func (s *FileStore) Backups(key string) ([]string, error) {
	if !validKey(key) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backupsLocked(key)
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) backupsLocked(key string) ([]string, error) {
	bdir := filepath.Join(s.root, BackupsDirName)
	ents, err := os.ReadDir(bdir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read backups dir: %w", err)
	}
	prefix := key + valueExt + "."
	var out []string
	for _, e := range ents {
		name := e.Name()
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, ".bak") {
			out = append(out, filepath.Join(bdir, name))
		}
	}
	sort.Strings(out) // stamp in name yields chronological order
	return out, nil
}

func (s *FileStore) pruneLocked(key string) {
	backups, err := s.backupsLocked(key)
	if err != nil || len(backups) <= s.keep {
		return
	}
	for _, p := range backups[:len(backups)-s.keep] {
		_ = os.Remove(p)
	}
}

func validKey(key string) bool {
	if key == "" || key == "." || key == ".." || strings.HasPrefix(key, ".") {
		return false
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}

// writeFileSync writes data to a file and flushes it to disk.
func writeFileSync(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return writeFileSync(dst, data)
}
