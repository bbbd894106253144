/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package storage implements the opaque key-value blob store that holds the
// canvas state. Values are strings written wholesale on every save; the store
// never interprets them.
//
// Backends: MemoryStore for tests and throwaway sessions, FileStore (one file
// per key with transactional writes and timestamped backups) and SQLiteStore
// (a kv table plus a bounded write history in a pure-Go SQLite database).
package storage
