/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package log provides centralized slog-based logging for pinboard.
// Every logger carries app/ver attributes; WithComponent and WithOperation
// add the component and op fields used throughout the board and store layers.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"pinboard/internal/version"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Env var names read by FromEnv.
const (
	EnvLevel  = "PINBOARD_LOG_LEVEL"
	EnvFormat = "PINBOARD_LOG_FORMAT"
	EnvSource = "PINBOARD_LOG_SOURCE"
	EnvFile   = "PINBOARD_LOG_FILE"
)

// Options controls logger initialization.
//
// Format is "console" (one human-friendly line per record) or "json".
// If File is set, records are additionally written as JSON to a rotating
// file. Writer replaces stderr for the console handler; tests use it to
// capture output.
type Options struct {
	Level     string
	Format    string
	AddSource bool
	File      string
	Writer    io.Writer

	// Rotation limits for File; zero values use 10 MB, 3 backups, 28 days.
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

var (
	mu      sync.RWMutex
	current *slog.Logger
	level   = new(slog.LevelVar)
	rotator *lj.Logger
)

// L returns the application logger, initializing it from env on first use.
func L() *slog.Logger {
	mu.RLock()
	l := current
	mu.RUnlock()
	if l != nil {
		return l
	}
	Init(FromEnv())
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Init configures the application logger and installs it as slog.Default.
// Calling Init again replaces the previous logger and closes its log file.
func Init(opts Options) {
	level.Set(parseLevel(opts.Level))
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	var console slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		console = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level, AddSource: opts.AddSource})
	} else {
		console = newConsoleHandler(w, level, opts.AddSource)
	}
	handlers := []slog.Handler{console}

	var rot *lj.Logger
	if f := strings.TrimSpace(opts.File); f != "" {
		rot = &lj.Logger{
			Filename:   f,
			MaxSize:    orDefault(opts.MaxSizeMB, 10),
			MaxBackups: orDefault(opts.MaxBackups, 3),
			MaxAge:     orDefault(opts.MaxAgeDays, 28),
			Compress:   true,
		}
		handlers = append(handlers, slog.NewJSONHandler(rot, &slog.HandlerOptions{Level: level, AddSource: opts.AddSource}))
	}

	var h slog.Handler = handlers[0]
	if len(handlers) > 1 {
		h = fanout(handlers)
	}
	logger := slog.New(h).With(
		slog.String("app", "pinboard"),
		slog.String("ver", version.Version),
	)

	mu.Lock()
	prev := rotator
	current = logger
	rotator = rot
	mu.Unlock()
	if prev != nil {
		_ = prev.Close()
	}
	slog.SetDefault(logger)
}

// SetLevel changes the minimum level of the running logger.
func SetLevel(s string) { level.Set(parseLevel(s)) }

// Close releases the rotating log file, if any.
func Close() error {
	mu.Lock()
	rot := rotator
	rotator = nil
	mu.Unlock()
	if rot == nil {
		return nil
	}
	return rot.Close()
}

// FromEnv builds Options from PINBOARD_LOG_* variables.
func FromEnv() Options {
	return Options{
		Level:     getenv(EnvLevel, "info"),
		Format:    getenv(EnvFormat, "console"),
		AddSource: parseBool(getenv(EnvSource, "false")),
		File:      os.Getenv(EnvFile),
	}
}

// WithComponent returns a logger with the component attribute pre-set.
func WithComponent(name string) *slog.Logger { return L().With(slog.String("component", name)) }

// WithOperation annotates the logger with an operation name.
func WithOperation(l *slog.Logger, op string) *slog.Logger { return l.With(slog.String("op", op)) }

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
