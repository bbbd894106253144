//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// These tests validate the Fyne-based cards. They are gated behind the
// "fyne" build tag so CI (which is headless) does not need Fyne or a display.
// To run locally:
//
//	go test -tags fyne ./internal/ui
package ui

import (
	"io"
	"log/slog"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"

	"pinboard/internal/board"
	"pinboard/internal/element"
	"pinboard/internal/export"
	"pinboard/internal/tick"
)

func TestCardSize_GrowsWithContent(t *testing.T) {
	w, h := export.BoxSize(element.Todo)
	v := board.View{Variant: element.Todo, Palette: board.Palette{Hidden: true}}
	if got := cardSize(v); got != fyne.NewSize(float32(w), float32(h)) {
		t.Fatalf("empty todo card = %v", got)
	}
	v.Tasks = make([]board.TaskRow, element.MaxTasks)
	if got := cardSize(v); got.Height <= float32(h) {
		t.Fatalf("full todo card should grow, got %v", got)
	}
}

func TestCardDrag_MovesElement(t *testing.T) {
	test.NewApp()
	b := board.New(board.Options{Scheduler: tick.NewFake(), Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	el, err := b.Create(element.Label, &element.Record{Position: element.Position{Top: "10px", Left: "10px"}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	c := newCard(b, el)
	v, _ := b.View(el)
	c.update(v)

	c.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(15, 15)}, Dragged: fyne.NewDelta(5, 5)})
	// grabbed 10,10 inside the card; the pointer travels to 55,65
	c.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(40, 50)}, Dragged: fyne.NewDelta(30, 40)})
	c.DragEnd()

	v, _ = b.View(el)
	if v.Position != (element.Position{Top: "55px", Left: "45px"}) {
		t.Fatalf("position after drag = %+v", v.Position)
	}
	if c.Position() != fyne.NewPos(45, 55) {
		t.Fatalf("card at %v", c.Position())
	}
}
