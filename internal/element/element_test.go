/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package element

import (
	"encoding/json"
	"errors"
	"image/color"
	"reflect"
	"strings"
	"testing"
)

func TestFormatStopwatch(t *testing.T) {
	cases := map[int]string{0: "00:00:00", 59: "00:00:59", 3661: "01:01:01", 360000: "100:00:00", -5: "00:00:00"}
	for in, want := range cases {
		if got := FormatStopwatch(in); got != want {
			t.Errorf("FormatStopwatch(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestParseStopwatch(t *testing.T) {
	cases := map[string]int{
		"01:01:01":  3661,
		"00:00:00":  0,
		"100:00:01": 360001,
		"1:2":       0,
		"aa:bb:cc":  0,
		"":          0,
		"00:-1:00":  0,
	}
	for in, want := range cases {
		if got := ParseStopwatch(in); got != want {
			t.Errorf("ParseStopwatch(%q) = %d, want %d", in, got, want)
		}
	}
	for _, s := range []int{0, 1, 59, 60, 3599, 3600, 86399, 123456} {
		if got := ParseStopwatch(FormatStopwatch(s)); got != s {
			t.Errorf("round trip %d -> %d", s, got)
		}
	}
}

func TestFormatTimer(t *testing.T) {
	if got := FormatTimer(0); got != TimerIdle {
		t.Fatalf("FormatTimer(0) = %q", got)
	}
	if got := FormatTimer(299); got != "04:59" {
		t.Fatalf("FormatTimer(299) = %q", got)
	}
	if got := FormatTimer(6000); got != "100:00" {
		t.Fatalf("FormatTimer(6000) = %q", got)
	}
}

func TestLeadingIntAndPx(t *testing.T) {
	for in, want := range map[string]int{"12": 12, " 7 ": 7, "12abc": 12, "abc": 0, "": 0, "-3": -3, "+": 0} {
		if got := LeadingInt(in); got != want {
			t.Errorf("LeadingInt(%q) = %d, want %d", in, got, want)
		}
	}
	if Px(120) != "120px" || Px(12.5) != "12.5px" {
		t.Fatalf("Px formatting: %q %q", Px(120), Px(12.5))
	}
	if ParsePx("120px") != 120 || ParsePx("") != 0 || ParsePx("-4.5px") != -4.5 || ParsePx("auto") != 0 {
		t.Fatalf("ParsePx mismatch")
	}
}

func TestParseVariant(t *testing.T) {
	for _, v := range Variants() {
		got, err := ParseVariant(" " + strings.ToUpper(string(v)) + " ")
		if err != nil || got != v {
			t.Fatalf("ParseVariant(%q) = %q, %v", v, got, err)
		}
	}
	if _, err := ParseVariant("sticker"); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
	if len(Variants()) != 5 {
		t.Fatalf("expected five variants, got %d", len(Variants()))
	}
}

func TestRegistryCoversEveryVariant(t *testing.T) {
	for _, v := range Variants() {
		spec, ok := Lookup(v)
		if !ok || spec.Variant != v || len(spec.Controls) == 0 {
			t.Fatalf("registry entry for %s missing or empty: %+v", v, spec)
		}
		zc, err := ZeroContent(v)
		if err != nil || zc.Variant() != v {
			t.Fatalf("ZeroContent(%s) = %v, %v", v, zc, err)
		}
	}
	text, _ := registry[Note].Control(CtrlText)
	if text.MaxLength != 120 {
		t.Fatalf("note text max length = %d", text.MaxLength)
	}
	title, _ := registry[Label].Control(CtrlTitle)
	if title.MaxLength != 10 {
		t.Fatalf("label title max length = %d", title.MaxLength)
	}
}

func TestRecordJSONShape(t *testing.T) {
	r := Record{
		Variant:         Todo,
		Position:        Position{Top: "10px", Left: "20px"},
		BackgroundColor: "hotpink",
		Content:         TodoContent{Tasks: []Task{{Text: "A"}, {Text: "B", Checked: true}}},
	}
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"variant":"todo","position":{"top":"10px","left":"20px"},"backgroundColor":"hotpink","content":{"tasks":[{"text":"A","checked":false},{"text":"B","checked":true}]}}`
	if string(b) != want {
		t.Fatalf("json = %s\nwant   %s", b, want)
	}
	var back Record
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(back, r) {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}

func TestRecordMarshalRejectsMismatchedContent(t *testing.T) {
	_, err := json.Marshal(Record{Variant: Note, Content: LabelContent{Title: "x"}})
	if err == nil {
		t.Fatalf("expected error for label content on note record")
	}
	b, err := json.Marshal(Record{Variant: Todo})
	if err != nil || !strings.Contains(string(b), `"tasks":[]`) {
		t.Fatalf("nil content should encode zero content: %s, %v", b, err)
	}
}

func TestDecodeStateLegacyBrowserFormat(t *testing.T) {
	doc := `[
		{"type":"timer","position":{"top":"5px","left":"6px"},"backgroundColor":"rgb(255, 105, 180)","content":{"duration":"15"}},
		{"type":"timer","position":{"top":"","left":""},"backgroundColor":"","content":{"duration":""}},
		{"type":"stopwatch","position":{"top":"0px","left":"0px"},"backgroundColor":"","content":{"seconds":3661}}
	]`
	recs, rep, err := DecodeState([]byte(doc))
	if err != nil {
		t.Fatalf("DecodeState: %v", err)
	}
	if len(rep.Skipped) != 0 || len(recs) != 3 {
		t.Fatalf("unexpected result: %d records, skipped %+v", len(recs), rep.Skipped)
	}
	if c := recs[0].Content.(TimerContent); c.Duration != 15 {
		t.Fatalf("duration = %d", c.Duration)
	}
	if c := recs[1].Content.(TimerContent); c.Duration != 0 {
		t.Fatalf("empty duration = %d", c.Duration)
	}
	if c := recs[2].Content.(StopwatchContent); c.Seconds != 3661 {
		t.Fatalf("seconds = %d", c.Seconds)
	}
}

func TestDecodeStateSkipsBadRecords(t *testing.T) {
	doc := `[
		{"variant":"note","content":{"title":"ok","text":"kept"}},
		{"variant":"sticker","content":{}},
		{"variant":"todo","content":{"tasks":"not-a-list"}},
		{"position":{"top":"1px"}},
		{"variant":"label","content":null}
	]`
	recs, rep, err := DecodeState([]byte(doc))
	if err != nil {
		t.Fatalf("DecodeState: %v", err)
	}
	if rep.Total != 5 || len(rep.Skipped) != 3 {
		t.Fatalf("report = %+v", rep)
	}
	if len(recs) != 2 || recs[0].Variant != Note || recs[1].Variant != Label {
		t.Fatalf("kept records = %+v", recs)
	}
	if recs[1].Content != (LabelContent{}) {
		t.Fatalf("null content should default, got %+v", recs[1].Content)
	}
	for i, want := range []int{1, 2, 3} {
		if rep.Skipped[i].Index != want {
			t.Fatalf("skipped[%d].Index = %d, want %d", i, rep.Skipped[i].Index, want)
		}
	}
}

func TestDecodeStateMalformed(t *testing.T) {
	for _, doc := range []string{"", "{", `{"variant":"note"}`, "not json"} {
		if _, _, err := DecodeState([]byte(doc)); err == nil {
			t.Errorf("DecodeState(%q) expected error", doc)
		}
	}
	recs, _, err := DecodeState([]byte("null"))
	if err != nil || len(recs) != 0 {
		t.Fatalf("null should decode to empty: %v %v", recs, err)
	}
}

func TestEncodeStateEmpty(t *testing.T) {
	b, err := EncodeState(nil)
	if err != nil || string(b) != "[]" {
		t.Fatalf("EncodeState(nil) = %s, %v", b, err)
	}
}

func TestParseColor(t *testing.T) {
	cases := map[string]color.RGBA{
		"hotpink":             {R: 255, G: 105, B: 180, A: 255},
		"#FFFF88":             {R: 255, G: 255, B: 136, A: 255},
		"#abc":                {R: 0xaa, G: 0xbb, B: 0xcc, A: 255},
		"rgb(206, 129, 255)":  {R: 206, G: 129, B: 255, A: 255},
		"rgba(0, 0, 0, 0.5)":  {R: 0, G: 0, B: 0, A: 128},
	}
	for in, want := range cases {
		got, ok := ParseColor(in)
		if !ok || got != want {
			t.Errorf("ParseColor(%q) = %v, %v; want %v", in, got, ok, want)
		}
	}
	for _, bad := range []string{"", "#12", "rgb(1,2)", "nocolor", "rgb(300, 0, 0)"} {
		if _, ok := ParseColor(bad); ok {
			t.Errorf("ParseColor(%q) should fail", bad)
		}
	}
	for _, p := range Palette {
		if _, ok := ParseColor(p); !ok {
			t.Errorf("palette color %q does not parse", p)
		}
	}
	if Background("") != DefaultBackground {
		t.Fatalf("empty background should fall back to default")
	}
}

func TestSwatch(t *testing.T) {
	for in, want := range map[string]string{"HotPink": "hotpink", " #ffff88 ": "#FFFF88", "#CE81FF": "#ce81ff"} {
		got, ok := Swatch(in)
		if !ok || got != want {
			t.Errorf("Swatch(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}
	if _, ok := Swatch("red"); ok {
		t.Fatalf("red is not a palette color")
	}
}

func TestDecodeOutOfRangeCounts(t *testing.T) {
	doc := `[
		{"variant":"timer","content":{"duration":1e30}},
		{"variant":"timer","content":{"duration":"99999999999999999"}},
		{"variant":"timer","content":{"duration":-1e12}},
		{"variant":"stopwatch","content":{"seconds":1e30}},
		{"variant":"timer","content":{"duration":25}}
	]`
	recs, rep, err := DecodeState([]byte(doc))
	if err != nil || len(rep.Skipped) != 0 || len(recs) != 5 {
		t.Fatalf("DecodeState: %v %+v", err, rep)
	}
	want := []Content{TimerContent{}, TimerContent{}, TimerContent{}, StopwatchContent{}, TimerContent{Duration: 25}}
	for i, w := range want {
		if recs[i].Content != w {
			t.Errorf("record %d content = %+v, want %+v", i, recs[i].Content, w)
		}
	}
	if LeadingInt("9999999999999") != 0 || ParseStopwatch("9999999999:00:00") != 0 {
		t.Fatalf("oversized text counts should read as 0")
	}
}

func TestDecodeNullTasks(t *testing.T) {
	recs, rep, err := DecodeState([]byte(`[{"variant":"todo","content":{"tasks":null}}]`))
	if err != nil || len(rep.Skipped) != 0 || len(recs) != 1 {
		t.Fatalf("DecodeState: %v %+v", err, rep)
	}
	td, ok := recs[0].Content.(TodoContent)
	if !ok || td.Tasks == nil || len(td.Tasks) != 0 {
		t.Fatalf("null tasks should decode to an empty list, got %#v", recs[0].Content)
	}
}
