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
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pinboard/internal/board"
	"pinboard/internal/element"
	"pinboard/internal/export"
)

// cardChrome is the vertical space taken by the header row.
const cardChrome = 48

// card renders one element and forwards native drags to the board.
type card struct {
	widget.BaseWidget
	b  *board.Board
	el *board.Element

	bg      *canvas.Rectangle
	palette *fyne.Container
	body    *fyne.Container

	title   *widget.Entry
	text    *widget.Entry
	task    *widget.Entry
	tasks   *fyne.Container
	minutes *widget.Entry
	display *widget.Label

	// updating suppresses entry callbacks while the card mirrors board state
	updating bool
	dragging bool
	last     fyne.Position
	content  fyne.CanvasObject
}

func newCard(b *board.Board, el *board.Element) *card {
	c := &card{b: b, el: el, bg: canvas.NewRectangle(element.DefaultBackground)}
	c.bg.StrokeColor = color.Black
	c.bg.StrokeWidth = 1

	spec, _ := element.Lookup(el.Variant())
	del := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() { _ = b.Delete(el) })
	pick := widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), func() { _ = b.TogglePalette(el) })
	header := container.NewBorder(nil, nil, widget.NewLabelWithStyle(spec.Title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}), container.NewHBox(pick, del))

	var swatches []fyne.CanvasObject
	for _, sw := range element.Palette {
		rgba := element.Background(sw)
		btn := widget.NewButton("", func() { _ = b.SelectColor(el, sw) })
		swatches = append(swatches, container.NewStack(canvas.NewRectangle(rgba), btn))
	}
	c.palette = container.NewGridWithColumns(len(swatches), swatches...)
	c.palette.Hide()

	c.body = container.NewVBox()
	c.display = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Monospace: true})
	switch el.Variant() {
	case element.Note:
		c.title = c.entry(spec, element.CtrlTitle, false, func(s string) { _ = b.SetNoteTitle(el, s) })
		c.text = c.entry(spec, element.CtrlText, true, func(s string) { _ = b.SetNoteText(el, s) })
		c.body.Add(c.title)
		c.body.Add(c.text)
	case element.Todo:
		c.task = c.entry(spec, element.CtrlTaskInput, false, func(s string) { _ = b.SetTaskInput(el, s) })
		c.task.OnSubmitted = func(s string) { _ = b.SubmitTask(el, s) }
		c.tasks = container.NewVBox()
		c.body.Add(c.task)
		c.body.Add(c.tasks)
	case element.Label:
		c.title = c.entry(spec, element.CtrlTitle, false, func(s string) { _ = b.SetLabelTitle(el, s) })
		c.body.Add(c.title)
	case element.Timer:
		c.minutes = c.entry(spec, element.CtrlMinutes, false, func(s string) { _ = b.SetTimerMinutes(el, s) })
		start := widget.NewButtonWithIcon("", theme.MediaPlayIcon(), func() { _ = b.StartTimer(el) })
		c.body.Add(container.NewBorder(nil, nil, nil, start, c.minutes))
		c.body.Add(c.display)
	case element.Stopwatch:
		c.body.Add(container.NewHBox(
			widget.NewButtonWithIcon("", theme.MediaPlayIcon(), func() { _ = b.StartStopwatch(el) }),
			widget.NewButtonWithIcon("", theme.MediaPauseIcon(), func() { _ = b.StopStopwatch(el) }),
			widget.NewButtonWithIcon("", theme.MediaReplayIcon(), func() { _ = b.ResetStopwatch(el) }),
		))
		c.body.Add(c.display)
	}

	c.content = container.NewStack(c.bg, container.NewPadded(container.NewVBox(header, c.palette, c.body)))
	c.ExtendBaseWidget(c)
	return c
}

func (c *card) entry(spec element.Spec, name string, multi bool, onChange func(string)) *widget.Entry {
	e := widget.NewEntry()
	if multi {
		e = widget.NewMultiLineEntry()
		e.Wrapping = fyne.TextWrapWord
	}
	if ctl, ok := spec.Control(name); ok {
		e.SetPlaceHolder(ctl.Placeholder)
	}
	e.OnChanged = func(s string) {
		if !c.updating {
			onChange(s)
		}
	}
	return e
}

func (c *card) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.content)
}

// update mirrors v into the card's widgets.
func (c *card) update(v board.View) {
	c.updating = true
	defer func() { c.updating = false }()

	c.bg.FillColor = element.Background(v.BackgroundColor)
	c.bg.Refresh()
	if v.Palette.Hidden {
		c.palette.Hide()
	} else {
		c.palette.Show()
	}
	setText(c.title, v.Title.Value)
	setText(c.text, v.Text.Value)
	setText(c.task, v.TaskInput.Value)
	setText(c.minutes, v.Minutes.Value)
	c.display.SetText(v.Display.Text)
	if c.tasks != nil {
		c.tasks.RemoveAll()
		for i, t := range v.Tasks {
			check := widget.NewCheck("", func(bool) {
				if !c.updating {
					_ = c.b.ToggleTask(c.el, i)
				}
			})
			check.SetChecked(t.Done.Checked)
			label := widget.NewLabel(t.Text)
			if t.Struck {
				label.Importance = widget.LowImportance
				label.TextStyle = fyne.TextStyle{Italic: true}
			}
			del := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() { _ = c.b.DeleteTask(c.el, i) })
			c.tasks.Add(container.NewBorder(nil, nil, check, del, label))
		}
	}

	if !c.dragging {
		c.Move(fyne.NewPos(float32(element.ParsePx(v.Position.Left)), float32(element.ParsePx(v.Position.Top))))
	}
	c.Resize(cardSize(v))
	c.Refresh()
}

func setText(e *widget.Entry, s string) {
	if e != nil && e.Text != s {
		e.SetText(s)
	}
}

// cardSize uses the export box size, grown to fit a tall note.
func cardSize(v board.View) fyne.Size {
	w, h := export.BoxSize(v.Variant)
	if v.Variant == element.Note {
		h = max(h, v.Text.Height+cardChrome+40)
	}
	if v.Variant == element.Todo {
		h = max(h, float64(cardChrome+40+36*len(v.Tasks)))
	}
	if !v.Palette.Hidden {
		h += 36
	}
	return fyne.NewSize(float32(w), float32(h))
}

// Dragged moves the card with the pointer; the board is told about the
// gesture start here and its end in DragEnd.
func (c *card) Dragged(e *fyne.DragEvent) {
	ptr := c.Position().Add(e.Position)
	if !c.dragging {
		c.dragging = true
		start := ptr.Subtract(e.Dragged)
		_ = c.b.DragStart(c.el, float64(start.X), float64(start.Y))
	}
	c.last = ptr
	c.Move(c.Position().Add(e.Dragged))
}

func (c *card) DragEnd() {
	c.dragging = false
	_ = c.b.DragEnd(c.el, float64(c.last.X), float64(c.last.Y))
}

var _ fyne.Draggable = (*card)(nil)
