/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package element

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// DefaultBackground is used when an element carries no background color.
var DefaultBackground = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// ParseColor resolves a CSS color: a named color, #rgb, #rrggbb, or the
// rgb()/rgba() form browsers report for inline styles. ok is false for
// empty or unrecognized input.
func ParseColor(s string) (c color.RGBA, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return color.RGBA{}, false
	}
	if named, found := colornames.Map[s]; found {
		return named, true
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	if strings.HasPrefix(s, "rgb") {
		return parseRGBFunc(s)
	}
	return color.RGBA{}, false
}

// Background returns the element fill for s, falling back to DefaultBackground.
func Background(s string) color.RGBA {
	if c, ok := ParseColor(s); ok {
		return c
	}
	return DefaultBackground
}

func parseHex(h string) (color.RGBA, bool) {
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6:
	default:
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
}

func parseRGBFunc(s string) (color.RGBA, bool) {
	open, closing := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || closing < open {
		return color.RGBA{}, false
	}
	fields := strings.Split(s[open+1:closing], ",")
	if len(fields) != 3 && len(fields) != 4 {
		return color.RGBA{}, false
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(fields[i]))
		if err != nil || n < 0 || n > 255 {
			return color.RGBA{}, false
		}
		ch[i] = uint8(n)
	}
	a := uint8(255)
	if len(fields) == 4 {
		f, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
		if err != nil || f < 0 || f > 1 {
			return color.RGBA{}, false
		}
		a = uint8(f*255 + 0.5)
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: a}, true
}
