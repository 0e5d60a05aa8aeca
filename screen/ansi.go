//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
package screen

import (
	"bytes"
	"strconv"

	"github.com/timburks/kilo/types"
)

// VT100 escape sequences
const (
	hideCursor    = "\x1b[?25l"
	showCursor    = "\x1b[?25h"
	home          = "\x1b[H"
	eraseLine     = "\x1b[K"
	reverseVideo  = "\x1b[7m"
	resetAttrs    = "\x1b[m"
	defaultColor  = "\x1b[39m"
	lineSeparator = "\r\n"
)

const noColor = -1

func writeColor(w *bytes.Buffer, color int) {
	w.WriteString("\x1b[")
	w.WriteString(strconv.Itoa(color))
	w.WriteByte('m')
}

// Encode writes the escape sequences that draw the frame on a VT100
// terminal. Color changes are only written where the color changes.
func (f *Frame) Encode(w *bytes.Buffer) {
	w.WriteString(hideCursor)
	w.WriteString(home)
	for y, line := range f.Lines {
		color := noColor
		reverse := false
		for _, c := range line {
			if c.Reverse != reverse {
				reverse = c.Reverse
				if reverse {
					w.WriteString(reverseVideo)
				} else {
					w.WriteString(resetAttrs)
					if color != noColor {
						writeColor(w, color)
					}
				}
			}
			switch {
			case reverse:
			case c.Class == types.HighlightNormal:
				if color != noColor {
					w.WriteString(defaultColor)
					color = noColor
				}
			default:
				if cc := c.Class.Color(); cc != color {
					writeColor(w, cc)
					color = cc
				}
			}
			w.WriteByte(c.Ch)
		}
		if reverse {
			w.WriteString(resetAttrs)
		}
		if color != noColor {
			w.WriteString(defaultColor)
		}
		w.WriteString(eraseLine)
		if y < len(f.Lines)-1 {
			w.WriteString(lineSeparator)
		}
	}
	w.WriteString("\x1b[")
	w.WriteString(strconv.Itoa(f.Cursor.Row + 1))
	w.WriteByte(';')
	w.WriteString(strconv.Itoa(f.Cursor.Col + 1))
	w.WriteByte('H')
	w.WriteString(showCursor)
}
