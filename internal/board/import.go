/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package board

import (
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"pinboard/internal/element"
)

// ParseJSONC decodes a record array that may carry comments and trailing
// commas, using the same lenient rules as the stored state.
func ParseJSONC(data []byte) ([]element.Record, element.DecodeReport, error) {
	return element.DecodeState(jsonc.ToJSON(data))
}

// ImportFile replaces the canvas with the records in a JSONC file and saves.
func (b *Board) ImportFile(path string) (element.DecodeReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return element.DecodeReport{}, fmt.Errorf("import: %w", err)
	}
	records, report, err := ParseJSONC(data)
	if err != nil {
		return report, fmt.Errorf("import %s: %w", path, err)
	}
	return report, b.Replace(records)
}
