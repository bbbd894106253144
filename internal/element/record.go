/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package element

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Position holds CSS length strings such as "120px".
type Position struct {
	Top  string `json:"top"`
	Left string `json:"left"`
}

// Record is the persisted form of one live element. Records have no stable
// identity; an element is identified by its index in the canvas sequence.
type Record struct {
	Variant         Variant
	Position        Position
	BackgroundColor string
	Content         Content
}

type wireRecord struct {
	Variant         Variant         `json:"variant"`
	Position        Position        `json:"position"`
	BackgroundColor string          `json:"backgroundColor"`
	Content         json.RawMessage `json:"content"`
}

// legacyRecord additionally accepts the "type" key used by the browser build.
type legacyRecord struct {
	wireRecord
	Type Variant `json:"type"`
}

// MarshalJSON writes the record with its content encoded per variant.
func (r Record) MarshalJSON() ([]byte, error) {
	c := r.Content
	if c == nil {
		zc, err := ZeroContent(r.Variant)
		if err != nil {
			return nil, fmt.Errorf("marshal record: %w: %q", err, r.Variant)
		}
		c = zc
	}
	if c.Variant() != r.Variant {
		return nil, fmt.Errorf("marshal record: %s content on %s element", c.Variant(), r.Variant)
	}
	if td, ok := c.(TodoContent); ok && td.Tasks == nil {
		c = TodoContent{Tasks: []Task{}}
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireRecord{Variant: r.Variant, Position: r.Position, BackgroundColor: r.BackgroundColor, Content: raw})
}

// UnmarshalJSON decodes a record, dispatching the content on the variant tag.
// An unknown or missing tag yields ErrUnknownVariant.
func (r *Record) UnmarshalJSON(b []byte) error {
	var w legacyRecord
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	tag := w.Variant
	if tag == "" {
		tag = w.Type
	}
	if !tag.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownVariant, string(tag))
	}
	c, err := decodeContent(tag, w.Content)
	if err != nil {
		return fmt.Errorf("%s content: %w", tag, err)
	}
	*r = Record{Variant: tag, Position: w.Position, BackgroundColor: w.BackgroundColor, Content: c}
	return nil
}

func decodeContent(v Variant, raw json.RawMessage) (Content, error) {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return ZeroContent(v)
	}
	switch v {
	case Note:
		var c NoteContent
		err := json.Unmarshal(raw, &c)
		return c, err
	case Todo:
		var c TodoContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		if c.Tasks == nil {
			c.Tasks = []Task{}
		}
		return c, nil
	case Label:
		var c LabelContent
		err := json.Unmarshal(raw, &c)
		return c, err
	case Timer:
		var w struct {
			Duration flexInt `json:"duration"`
		}
		err := json.Unmarshal(raw, &w)
		return TimerContent{Duration: int(w.Duration)}, err
	case Stopwatch:
		var w struct {
			Seconds flexInt `json:"seconds"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return StopwatchContent{Seconds: max(int(w.Seconds), 0)}, nil
	}
	return nil, ErrUnknownVariant
}

// flexInt accepts a JSON number, a numeric string or an empty string. The
// browser build stored the raw input value for timer durations.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexInt(LeadingInt(s))
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	if math.IsNaN(n) || n > MaxCount || n < -MaxCount {
		*f = 0
		return nil
	}
	*f = flexInt(math.Trunc(n))
	return nil
}
