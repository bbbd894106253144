//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"context"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	fstorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"pinboard/internal/board"
	"pinboard/internal/config"
	"pinboard/internal/crash"
	"pinboard/internal/element"
	"pinboard/internal/export"
	applog "pinboard/internal/log"
	"pinboard/internal/storage"
	"pinboard/internal/tick"
)

// Run opens the desktop window on the canvas held by store and blocks until
// the window is closed.
func Run(cfg config.AppConfig, store storage.Store) error {
	l := applog.WithComponent("ui")
	l.Info("starting UI")

	fyneApp := app.NewWithID("pinboard")
	w := fyneApp.NewWindow("Pinboard")
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", cfg.UI.Width)
	winH := prefs.IntWithFallback("window.height", cfg.UI.Height)
	w.Resize(fyne.NewSize(float32(max(winW, 640)), float32(max(winH, 480))))

	ws := newWorkspace()
	b := board.New(board.Options{
		Store:     store,
		Key:       cfg.Store.Key,
		Scheduler: tick.Real(),
		Debounce:  cfg.Save.Debounce(),
		Notifier: board.NotifierFunc(func(msg string) {
			fyne.Do(func() { dialog.ShowInformation("To-do", msg, w) })
		}),
		OnChange: func(el *board.Element) {
			fyne.Do(func() { ws.refresh(el) })
		},
	})
	ws.b = b
	defer crash.Recover(b)

	if _, err := b.Load(context.Background()); err != nil {
		l.Error("load failed", slog.Any("err", err))
		dialog.ShowError(err, w)
	}

	var triggers []fyne.CanvasObject
	for _, v := range element.Variants() {
		spec, _ := element.Lookup(v)
		triggers = append(triggers, widget.NewButton("+ "+spec.Title, func() {
			if _, err := b.Create(v, nil); err != nil {
				l.Error("create failed", slog.String("variant", string(v)), slog.Any("err", err))
			}
		}))
	}
	toolbar := container.NewHBox(triggers...)

	bg := canvas.NewRectangle(element.DefaultBackground)
	content := container.NewBorder(toolbar, nil, nil, nil, container.NewScroll(container.NewStack(bg, ws.area)))
	w.SetContent(content)
	w.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu("File",
			fyne.NewMenuItem("Export PDF…", func() { exportDialog(w, b, ".pdf") }),
			fyne.NewMenuItem("Export PNG…", func() { exportDialog(w, b, ".png") }),
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("Clear Board", func() {
				dialog.ShowConfirm("Clear Board", "Remove every element?", func(ok bool) {
					if ok {
						_ = b.Clear()
					}
				}, w)
			}),
		),
	))

	w.SetCloseIntercept(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		if err := b.Close(); err != nil {
			l.Error("final save failed", slog.Any("err", err))
		}
		w.Close()
	})

	ws.refresh(nil)
	w.ShowAndRun()
	return nil
}

func exportDialog(w fyne.Window, b *board.Board, ext string) {
	save := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		if uc == nil {
			return
		}
		outPath := uc.URI().Path()
		_ = uc.Close()
		recs := b.Snapshot()
		if ext == ".pdf" {
			err = export.PDF(recs, outPath, export.PDFOptions{})
		} else {
			err = export.PNG(recs, outPath, export.PNGOptions{})
		}
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		dialog.ShowInformation("Export", "Exported to "+outPath, w)
	}, w)
	save.SetFileName("pinboard" + ext)
	save.SetFilter(fstorage.NewExtensionFileFilter([]string{ext}))
	save.Show()
}

// workspace mirrors the board's elements as absolutely placed cards.
type workspace struct {
	b     *board.Board
	area  *fyne.Container
	cards map[*board.Element]*card
}

func newWorkspace() *workspace {
	return &workspace{area: container.NewWithoutLayout(), cards: map[*board.Element]*card{}}
}

// refresh updates one card, or resyncs the card set when el is nil or new.
func (ws *workspace) refresh(el *board.Element) {
	if el != nil {
		if c, ok := ws.cards[el]; ok {
			if v, err := ws.b.View(el); err == nil {
				c.update(v)
				return
			}
		}
	}
	live := map[*board.Element]bool{}
	for _, e := range ws.b.Elements() {
		live[e] = true
		if _, ok := ws.cards[e]; !ok {
			c := newCard(ws.b, e)
			ws.cards[e] = c
			ws.area.Add(c)
		}
		if v, err := ws.b.View(e); err == nil {
			ws.cards[e].update(v)
		}
	}
	for e, c := range ws.cards {
		if !live[e] {
			ws.area.Remove(c)
			delete(ws.cards, e)
		}
	}
	ws.area.Refresh()
}
