//go:build !fyne

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package ui hosts the board in a desktop window. Builds without the fyne
// tag get a stub so CI remains headless.
package ui

import (
	"fmt"

	"pinboard/internal/config"
	"pinboard/internal/storage"
)

// Run starts the desktop UI. In non-fyne builds, this is a stub.
func Run(_ config.AppConfig, _ storage.Store) error {
	return fmt.Errorf("UI not built in this binary. Rebuild with: go run -tags fyne ./cmd/pinboard ui")
}
