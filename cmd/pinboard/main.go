/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"pinboard/internal/board"
	"pinboard/internal/config"
	"pinboard/internal/crash"
	"pinboard/internal/element"
	"pinboard/internal/export"
	applog "pinboard/internal/log"
	"pinboard/internal/storage"
	"pinboard/internal/tick"
	"pinboard/internal/ui"
	"pinboard/internal/version"
)

func usage(w io.Writer) {
	fmt.Fprintf(w, `Pinboard: freeform workspace of notes, to-dos, labels, timers and stopwatches
Version: %s

Usage:
  pinboard version                          Show version
  pinboard ui                               Launch desktop UI (build with -tags fyne)
  pinboard list [--json]                    Print the saved canvas
  pinboard add <variant> [flags]            Add an element (note|todo|label|timer|stopwatch)
  pinboard delete <index>                   Delete the element at <index>
  pinboard color <index> <color>            Apply a palette color (%s)
  pinboard move <index> <left> <top>        Move an element (px)
  pinboard export --pdf|--png <path>        Render the canvas
  pinboard import <file.jsonc>              Replace the canvas with a JSONC record array
  pinboard reset                            Remove every element
  pinboard history                          List retained revisions of the canvas
  pinboard config [--save]                  Print (or write) the effective configuration
`, version.String(), strings.Join(element.Palette[:], ", "))
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
	}
	applog.Init(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	err = run(os.Args[1:], cfg, os.Stdout, os.Stderr)
	_ = applog.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// errUsage marks argument errors; the usage text has already been printed.
var errUsage = errors.New("invalid arguments")

func run(args []string, cfg config.AppConfig, stdout, stderr io.Writer) error {
	l := applog.WithComponent("cli")
	if len(args) == 0 {
		usage(stdout)
		return nil
	}
	cmd, rest := args[0], args[1:]
	l.Debug("start", slog.String("cmd", cmd), slog.Int("args", len(rest)))
	switch cmd {
	case "version", "--version", "-v":
		fmt.Fprintln(stdout, "Pinboard", version.String())
		return nil
	case "help", "--help", "-h":
		usage(stdout)
		return nil
	case "config":
		return configCmd(cfg, rest, stdout)
	case "history":
		return history(cfg, stdout)
	case "ui":
		store, err := storage.Open(cfg.Store)
		if err != nil {
			return err
		}
		defer store.Close()
		return ui.Run(cfg, store)
	case "list", "add", "delete", "color", "move", "export", "import", "reset":
		return withBoard(cfg, stderr, func(b *board.Board) error {
			return boardCommand(b, cmd, rest, stdout, stderr)
		})
	}
	fmt.Fprintf(stderr, "unknown command %q\n\n", cmd)
	usage(stderr)
	return errUsage
}

// withBoard loads the canvas, runs fn and flushes the board. A panic is
// turned into a crash report and a last save.
func withBoard(cfg config.AppConfig, stderr io.Writer, fn func(*board.Board) error) (err error) {
	store, err := storage.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()
	b := board.New(board.Options{
		Store:     store,
		Key:       cfg.Store.Key,
		Scheduler: tick.Real(),
		Debounce:  cfg.Save.Debounce(),
		Notifier:  board.NotifierFunc(func(msg string) { fmt.Fprintln(stderr, msg) }),
	})
	defer crash.Recover(b)
	defer func() {
		if cerr := b.Close(); err == nil {
			err = cerr
		}
	}()
	rep, err := b.Load(context.Background())
	if err != nil {
		return err
	}
	for _, s := range rep.Skipped {
		fmt.Fprintf(stderr, "skipped stored record %d: %s\n", s.Index, s.Reason)
	}
	return fn(b)
}

func boardCommand(b *board.Board, cmd string, args []string, stdout, stderr io.Writer) error {
	switch cmd {
	case "list":
		return list(b, args, stdout)
	case "add":
		return add(b, args, stdout)
	case "delete":
		el, _, err := target(b, args, 1)
		if err != nil {
			return err
		}
		return b.Delete(el)
	case "color":
		el, rest, err := target(b, args, 2)
		if err != nil {
			return err
		}
		return b.SelectColor(el, rest[0])
	case "move":
		el, rest, err := target(b, args, 3)
		if err != nil {
			return err
		}
		left, lerr := strconv.ParseFloat(rest[0], 64)
		top, terr := strconv.ParseFloat(rest[1], 64)
		if lerr != nil || terr != nil {
			return fmt.Errorf("move: left and top must be numbers")
		}
		return b.MoveTo(el, left, top)
	case "export":
		return exportCmd(b, args, stdout)
	case "import":
		if len(args) != 1 {
			return fmt.Errorf("import requires <file.jsonc>")
		}
		rep, err := b.ImportFile(args[0])
		if err != nil {
			return err
		}
		for _, s := range rep.Skipped {
			fmt.Fprintf(stderr, "skipped record %d: %s\n", s.Index, s.Reason)
		}
		fmt.Fprintf(stdout, "Imported %d of %d records\n", rep.Total-len(rep.Skipped), rep.Total)
		return nil
	case "reset":
		return b.Clear()
	}
	return errUsage
}

func list(b *board.Board, args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("list", pflag.ContinueOnError)
	asJSON := fs.Bool("json", false, "print the stored record array")
	if err := fs.Parse(args); err != nil {
		return err
	}
	recs := b.Snapshot()
	if *asJSON {
		data, err := element.EncodeState(recs)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, string(data))
		return err
	}
	if len(recs) == 0 {
		fmt.Fprintln(stdout, "(empty canvas)")
		return nil
	}
	for i, r := range recs {
		color := r.BackgroundColor
		if color == "" {
			color = "-"
		}
		fmt.Fprintf(stdout, "%d\t%s\t%s,%s\t%s\t%s\n", i, r.Variant, r.Position.Left, r.Position.Top, color,
			strings.Join(export.Lines(r)[1:], " | "))
	}
	return nil
}

func add(b *board.Board, args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("add", pflag.ContinueOnError)
	title := fs.String("title", "", "note or label title")
	text := fs.String("text", "", "note text")
	tasks := fs.StringArray("task", nil, "todo task (repeatable)")
	duration := fs.Int("duration", 0, "timer minutes")
	seconds := fs.Int("seconds", 0, "stopwatch elapsed seconds")
	top := fs.Float64("top", 0, "top offset in px")
	left := fs.Float64("left", 0, "left offset in px")
	color := fs.String("color", "", "palette color")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("add requires exactly one <variant>")
	}
	v, err := element.ParseVariant(fs.Arg(0))
	if err != nil {
		return err
	}
	prior := &element.Record{Position: element.Position{Top: element.Px(*top), Left: element.Px(*left)}}
	if v == element.Stopwatch {
		prior.Content = element.StopwatchContent{Seconds: max(*seconds, 0)}
	}
	el, err := b.Create(v, prior)
	if err != nil {
		return err
	}
	switch v {
	case element.Note:
		err = errors.Join(b.SetNoteTitle(el, *title), b.SetNoteText(el, *text))
	case element.Label:
		err = b.SetLabelTitle(el, *title)
	case element.Todo:
		for _, t := range *tasks {
			if err = b.SubmitTask(el, t); err != nil {
				break
			}
		}
	case element.Timer:
		if *duration > 0 {
			err = b.SetTimerMinutes(el, strconv.Itoa(*duration))
		}
	}
	if err == nil && *color != "" {
		err = b.SelectColor(el, *color)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Added %s at index %d\n", v, b.Len()-1)
	return nil
}

func exportCmd(b *board.Board, args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("export", pflag.ContinueOnError)
	pdfPath := fs.String("pdf", "", "write a PDF to this path")
	pngPath := fs.String("png", "", "write a PNG to this path")
	scale := fs.Float64("scale", 1, "PNG pixel scale")
	guides := fs.Bool("guides", false, "draw the canvas border")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *pdfPath == "" && *pngPath == "" {
		return fmt.Errorf("export requires --pdf or --png")
	}
	recs := b.Snapshot()
	if *pdfPath != "" {
		if err := export.PDF(recs, *pdfPath, export.PDFOptions{IncludeGuides: *guides}); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "Exported", *pdfPath)
	}
	if *pngPath != "" {
		if err := export.PNG(recs, *pngPath, export.PNGOptions{Scale: *scale, IncludeGuides: *guides}); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "Exported", *pngPath)
	}
	return nil
}

// target resolves args[0] as a canvas index and checks the argument count.
func target(b *board.Board, args []string, want int) (*board.Element, []string, error) {
	if len(args) != want {
		return nil, nil, errUsage
	}
	i, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("index %q: %w", args[0], err)
	}
	el, err := b.At(i)
	if err != nil {
		return nil, nil, fmt.Errorf("index %d: %w", i, err)
	}
	return el, args[1:], nil
}

func configCmd(cfg config.AppConfig, args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("config", pflag.ContinueOnError)
	save := fs.Bool("save", false, "write the effective configuration to the config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *save {
		if err := config.Save(cfg); err != nil {
			return err
		}
		path, _ := config.ConfigPath()
		fmt.Fprintln(stdout, "Wrote", path)
		return nil
	}
	out, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = stdout.Write(out)
	return err
}

// history lists the previous values kept by the store: SQLite history rows
// or file backups.
func history(cfg config.AppConfig, stdout io.Writer) error {
	store, err := storage.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()
	key := cfg.Store.Key
	if key == "" {
		key = config.DefaultStateKey
	}
	switch s := store.(type) {
	case *storage.SQLiteStore:
		revs, err := s.History(context.Background(), key)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "sqlite %s: %d revisions\n", s.Path(), len(revs))
		for i, r := range revs {
			fmt.Fprintf(stdout, "%d\t%s\t%s\n", i, r.At.Local().Format("2006-01-02 15:04:05"), recordCount(r.Value))
		}
	case *storage.FileStore:
		backups, err := s.Backups(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "file %s: %d backups\n", s.Root(), len(backups))
		for i := len(backups) - 1; i >= 0; i-- {
			data, err := os.ReadFile(backups[i])
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "%d\t%s\t%s\n", len(backups)-1-i, filepath.Base(backups[i]), recordCount(string(data)))
		}
	default:
		fmt.Fprintf(stdout, "backend %q keeps no history\n", cfg.Store.Backend)
	}
	return nil
}

func recordCount(value string) string {
	recs, rep, err := element.DecodeState([]byte(value))
	if err != nil {
		return "unreadable"
	}
	if len(rep.Skipped) > 0 {
		return fmt.Sprintf("%d records (%d skipped)", len(recs), len(rep.Skipped))
	}
	return fmt.Sprintf("%d records", len(recs))
}
