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
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/timburks/kilo/editor"
	"github.com/timburks/kilo/types"
)

const Version = "0.0.1"

// A Frame is everything that is drawn for one refresh: the text rows,
// the status bar and the message bar. Lines are not padded; the rest
// of each line is erased when it is drawn.
type Frame struct {
	Lines  [][]types.Cell
	Cursor types.Point // relative to the top left of the screen
}

// String returns the characters of the frame, one line per row.
func (f *Frame) String() string {
	var sb strings.Builder
	for y, line := range f.Lines {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range line {
			sb.WriteByte(c.Ch)
		}
	}
	return sb.String()
}

func textCells(s string, reverse bool) []types.Cell {
	cells := make([]types.Cell, len(s))
	for i := 0; i < len(s); i++ {
		cells[i] = types.Cell{Ch: s[i], Reverse: reverse}
	}
	return cells
}

func isControl(c byte) bool {
	return c < 32 || c == 127
}

// Render composes a frame for the editor on a screen of the given size.
// The editor should already be scrolled to its cursor.
func Render(e *editor.Editor, size types.Size, now time.Time) *Frame {
	f := &Frame{
		Cursor: types.Point{
			Row: e.Cursor.Row - e.Offset.Rows,
			Col: e.RenderCol - e.Offset.Cols,
		},
	}
	textRows := size.Rows - 2
	for y := 0; y < textRows; y++ {
		f.Lines = append(f.Lines, renderRow(e, y, textRows, size.Cols))
	}
	f.Lines = append(f.Lines, statusBar(e, size.Cols), messageBar(e, size.Cols, now))
	return f
}

func renderRow(e *editor.Editor, y, textRows, cols int) []types.Cell {
	b := e.Buffer
	fileRow := y + e.Offset.Rows
	if fileRow >= b.RowCount() {
		if b.RowCount() == 0 && y == textRows/3 {
			return welcome(cols)
		}
		return textCells("~", false)
	}
	r := b.Row(fileRow)
	render := r.Render()
	hl := r.Highlights()
	start := min(e.Offset.Cols, len(render))
	end := min(len(render), start+cols)
	cells := make([]types.Cell, 0, end-start)
	for i := start; i < end; i++ {
		c := render[i]
		if isControl(c) {
			sym := byte('?')
			if c <= 26 {
				sym = '@' + c
			}
			cells = append(cells, types.Cell{Ch: sym, Class: hl[i], Reverse: true})
			continue
		}
		cells = append(cells, types.Cell{Ch: c, Class: hl[i]})
	}
	return cells
}

func welcome(cols int) []types.Cell {
	message := "Kilo editor -- version " + Version
	if len(message) > cols {
		message = message[:cols]
	}
	padding := (cols - len(message)) / 2
	var line string
	if padding > 0 {
		line = "~"
		padding--
	}
	line += strings.Repeat(" ", padding) + message
	return textCells(line, false)
}

func statusBar(e *editor.Editor, cols int) []types.Cell {
	b := e.Buffer
	name := b.FileName()
	if name == "" {
		name = "[No Name]"
	}
	modified := ""
	if b.Dirty() > 0 {
		modified = "(modified)"
	}
	left := fmt.Sprintf("%s - %d lines %s", runewidth.Truncate(name, 20, ""), b.RowCount(), modified)
	fileType := "no ft"
	if s := b.Syntax(); s != nil {
		fileType = s.FileType
	}
	right := fmt.Sprintf("%s | %d/%d", fileType, e.Cursor.Row+1, b.RowCount())

	if len(left) > cols {
		left = left[:cols]
	}
	line := left
	for len(line) < cols {
		if cols-len(line) == len(right) {
			line += right
			break
		}
		line += " "
	}
	return textCells(line, true)
}

func messageBar(e *editor.Editor, cols int, now time.Time) []types.Cell {
	message := e.StatusMessage(now)
	if len(message) > cols {
		message = message[:cols]
	}
	return textCells(message, false)
}
