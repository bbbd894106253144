/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package element

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Display texts shown by idle timers and stopwatches.
const (
	TimerIdle     = "00:00"
	StopwatchIdle = "00:00:00"
)

// FormatStopwatch renders elapsed seconds as HH:MM:SS. Hours keep growing
// past 99; negative input renders as zero.
func FormatStopwatch(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// ParseStopwatch reads an HH:MM:SS display back into total seconds.
// Anything that is not three non-negative integer fields yields 0, as does
// a total beyond MaxCount.
func ParseStopwatch(text string) int {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) != 3 {
		return 0
	}
	total := 0
	for i, unit := range [3]int{3600, 60, 1} {
		n, err := strconv.Atoi(parts[i])
		if err != nil || n < 0 || n > MaxCount {
			return 0
		}
		total += n * unit
	}
	if total > MaxCount {
		return 0
	}
	return total
}

// FormatTimer renders remaining seconds as MM:SS. Minutes keep growing past 59.
func FormatTimer(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// MaxCount bounds stored minutes and seconds. Larger magnitudes decode as 0.
const MaxCount = math.MaxInt32

// LeadingInt parses the leading decimal integer of s, ignoring surrounding
// whitespace and any trailing garbage ("12abc" -> 12, "abc" -> 0). Values
// beyond MaxCount in magnitude yield 0.
func LeadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n > MaxCount || n < -MaxCount {
		return 0
	}
	return n
}

// Px formats a pixel offset as a CSS length.
func Px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// ParsePx reads a CSS pixel length. Empty or malformed values read as 0.
func ParsePx(s string) float64 {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
