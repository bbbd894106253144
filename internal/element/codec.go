/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package element

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	gojsonschema "github.com/xeipuuv/gojsonschema"
)

//go:embed record.schema.json
var recordSchemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func recordSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(recordSchemaJSON))
	})
	return schema, schemaErr
}

// Skipped describes a stored record that could not be restored.
type Skipped struct {
	Index  int
	Reason string
}

// DecodeReport lists the records DecodeState dropped.
type DecodeReport struct {
	Total   int
	Skipped []Skipped
}

// EncodeState serializes the canvas sequence as a JSON array.
func EncodeState(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	return json.Marshal(records)
}

// DecodeState parses a stored canvas sequence. Only a document that is not a
// JSON array is an error; individual records that fail the schema or name an
// unknown variant are skipped and listed in the report. A JSON null decodes
// to an empty sequence.
func DecodeState(data []byte) ([]Record, DecodeReport, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, DecodeReport{}, fmt.Errorf("decode state: %w", err)
	}
	rep := DecodeReport{Total: len(raws)}
	sch, err := recordSchema()
	if err != nil {
		return nil, rep, fmt.Errorf("load record schema: %w", err)
	}
	out := make([]Record, 0, len(raws))
	for i, raw := range raws {
		res, err := sch.Validate(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			rep.Skipped = append(rep.Skipped, Skipped{Index: i, Reason: err.Error()})
			continue
		}
		if !res.Valid() {
			msgs := make([]string, 0, len(res.Errors()))
			for _, e := range res.Errors() {
				msgs = append(msgs, e.String())
			}
			rep.Skipped = append(rep.Skipped, Skipped{Index: i, Reason: strings.Join(msgs, "; ")})
			continue
		}
		var r Record
		if err := json.Unmarshal(raw, &r); err != nil {
			rep.Skipped = append(rep.Skipped, Skipped{Index: i, Reason: err.Error()})
			continue
		}
		out = append(out, r)
	}
	return out, rep, nil
}
