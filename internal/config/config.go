/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted as YAML in the user
// config directory. Environment variables are read-only overrides applied on
// top of the file at load time and are never written back by Save.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type StoreConfig struct {
	Backend string `yaml:"backend"` // "file" | "sqlite" | "memory"
	Path    string `yaml:"path"`    // directory (file) or database file (sqlite); empty = data dir default
	Key     string `yaml:"key"`     // the single slot holding the canvas state
	Backups int    `yaml:"backups"` // file backend: backups kept; sqlite: history rows kept
}

type SaveConfig struct {
	DebounceMs int `yaml:"debounce_ms"` // 0 writes synchronously on every mutation
}

type UIConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Store         StoreConfig   `yaml:"store"`
	Save          SaveConfig    `yaml:"save"`
	UI            UIConfig      `yaml:"ui"`
	Logging       LoggingConfig `yaml:"logging"`
}

// DefaultStateKey is the store key used by the browser build of the workspace.
const DefaultStateKey = "workspaceState"

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Store:         StoreConfig{Backend: "file", Key: DefaultStateKey, Backups: 5},
		Save:          SaveConfig{DebounceMs: 0},
		UI:            UIConfig{Width: 1200, Height: 800},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvConfigPath   = "PINBOARD_CONFIG"
	EnvDataDir      = "PINBOARD_DATA_DIR"
	EnvStoreBackend = "PINBOARD_STORE_BACKEND"
	EnvStorePath    = "PINBOARD_STORE_PATH"
	EnvStateKey     = "PINBOARD_STATE_KEY"
	EnvDebounceMs   = "PINBOARD_SAVE_DEBOUNCE_MS"
	EnvLogLevel     = "PINBOARD_LOG_LEVEL"
	EnvLogFormat    = "PINBOARD_LOG_FORMAT"
	EnvLogSource    = "PINBOARD_LOG_SOURCE"
	EnvLogFile      = "PINBOARD_LOG_FILE"
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "Pinboard")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "Pinboard")
	default:
		base = filepath.Join(os.Getenv("HOME"), ".config", "pinboard")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// DataDir returns the directory holding the store when no explicit path is
// configured. PINBOARD_DATA_DIR wins over the OS default.
func DataDir() (string, error) {
	if custom := strings.TrimSpace(os.Getenv(EnvDataDir)); custom != "" {
		return custom, nil
	}
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return filepath.Join(appdata, "Pinboard", "data"), nil
		}
		return "", errors.New("APPDATA not set")
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			return filepath.Join(home, "Library", "Application Support", "Pinboard", "data"), nil
		}
		return "", errors.New("home directory not found")
	default:
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			return filepath.Join(home, ".local", "share", "pinboard"), nil
		}
		return "", errors.New("home directory not found")
	}
}

// Load reads the user config file (if present), applies defaults and merges
// environment overrides. A missing file is not an error; a malformed one is
// ignored so a typo never locks the user out of their canvas.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the config YAML to ConfigPath.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Marshal renders cfg as YAML.
func Marshal(cfg AppConfig) ([]byte, error) { return yaml.Marshal(cfg) }

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if s := strings.ToLower(strings.TrimSpace(src.Store.Backend)); s != "" {
		dst.Store.Backend = s
	}
	if s := strings.TrimSpace(src.Store.Path); s != "" {
		dst.Store.Path = s
	}
	if s := strings.TrimSpace(src.Store.Key); s != "" {
		dst.Store.Key = s
	}
	if src.Store.Backups > 0 {
		dst.Store.Backups = src.Store.Backups
	}
	if src.Save.DebounceMs > 0 {
		dst.Save.DebounceMs = src.Save.DebounceMs
	}
	if src.UI.Width > 0 {
		dst.UI.Width = src.UI.Width
	}
	if src.UI.Height > 0 {
		dst.UI.Height = src.UI.Height
	}
	if s := strings.TrimSpace(src.Logging.Level); s != "" {
		dst.Logging.Level = strings.ToLower(s)
	}
	if s := strings.TrimSpace(src.Logging.Format); s != "" {
		dst.Logging.Format = strings.ToLower(s)
	}
	dst.Logging.Source = src.Logging.Source
	if s := strings.TrimSpace(src.Logging.File); s != "" {
		dst.Logging.File = s
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvStoreBackend)); v != "" {
		cfg.Store.Backend = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvStorePath)); v != "" {
		cfg.Store.Path = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvStateKey)); v != "" {
		cfg.Store.Key = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDebounceMs)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Save.DebounceMs = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	env := map[string]string{
		"store.backend":    EnvStoreBackend,
		"store.path":       EnvStorePath,
		"store.key":        EnvStateKey,
		"save.debounce_ms": EnvDebounceMs,
		"logging.level":    EnvLogLevel,
		"logging.format":   EnvLogFormat,
		"logging.source":   EnvLogSource,
		"logging.file":     EnvLogFile,
	}[key]
	if env != "" && os.Getenv(env) != "" {
		return env, true
	}
	return "", false
}

// Debounce returns the save coalescing interval.
func (s SaveConfig) Debounce() time.Duration {
	if s.DebounceMs <= 0 {
		return 0
	}
	return time.Duration(s.DebounceMs) * time.Millisecond
}

// ResolvePath returns the configured store path or the data-dir default for
// the backend.
func (s StoreConfig) ResolvePath() (string, error) {
	if s.Path != "" {
		return s.Path, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if s.Backend == "sqlite" {
		return filepath.Join(dir, "pinboard.sqlite"), nil
	}
	return dir, nil
}
