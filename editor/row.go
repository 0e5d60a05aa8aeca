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
package editor

import (
	"github.com/timburks/kilo/types"
)

// TabStop is the number of rendered columns between tab stops.
const TabStop = 8

// A Row is one line of text in a Buffer.
type Row struct {
	index       int
	chars       []byte
	render      []byte
	hl          []types.Highlight
	openComment bool // row ends inside an unterminated block comment
}

func newRow(index int, chars []byte) *Row {
	r := &Row{index: index}
	r.chars = append(make([]byte, 0, len(chars)), chars...)
	r.update()
	return r
}

// Index returns the position of the row in its buffer.
func (r *Row) Index() int {
	return r.index
}

func (r *Row) Size() int {
	return len(r.chars)
}

// Chars returns the text of the row as it was typed or loaded.
// The slice belongs to the row and must not be modified.
func (r *Row) Chars() []byte {
	return r.chars
}

// Render returns the text of the row with tabs expanded to spaces.
func (r *Row) Render() []byte {
	return r.render
}

// Highlights returns one highlight class for each byte of Render().
func (r *Row) Highlights() []types.Highlight {
	return r.hl
}

// OpenComment reports whether the row ends inside a block comment.
func (r *Row) OpenComment() bool {
	return r.openComment
}

func (r *Row) String() string {
	return string(r.chars)
}

// update rebuilds the rendered text. Highlights are reset to normal;
// the buffer re-highlights the row afterwards.
func (r *Row) update() {
	tabs := 0
	for _, c := range r.chars {
		if c == '\t' {
			tabs++
		}
	}
	render := make([]byte, 0, len(r.chars)+tabs*(TabStop-1))
	for _, c := range r.chars {
		if c == '\t' {
			render = append(render, ' ')
			for len(render)%TabStop != 0 {
				render = append(render, ' ')
			}
		} else {
			render = append(render, c)
		}
	}
	r.render = render
	if cap(r.hl) >= len(render) {
		r.hl = r.hl[:len(render)]
		for i := range r.hl {
			r.hl[i] = types.HighlightNormal
		}
	} else {
		r.hl = make([]types.Highlight, len(render))
	}
}

func (r *Row) insertChar(at int, c byte) {
	if at < 0 || at > len(r.chars) {
		at = len(r.chars)
	}
	r.chars = append(r.chars, 0)
	copy(r.chars[at+1:], r.chars[at:])
	r.chars[at] = c
	r.update()
}

// deleteChar removes the byte at position at and reports whether
// anything was removed.
func (r *Row) deleteChar(at int) bool {
	if at < 0 || at >= len(r.chars) {
		return false
	}
	r.chars = append(r.chars[:at], r.chars[at+1:]...)
	r.update()
	return true
}

func (r *Row) appendBytes(s []byte) {
	r.chars = append(r.chars, s...)
	r.update()
}

// truncate cuts the row at col and returns a copy of the removed text.
func (r *Row) truncate(col int) []byte {
	if col < 0 {
		col = 0
	}
	if col > len(r.chars) {
		col = len(r.chars)
	}
	rest := append([]byte(nil), r.chars[col:]...)
	r.chars = r.chars[:col]
	r.update()
	return rest
}

// CxToRx converts a raw column into a rendered column.
func (r *Row) CxToRx(cx int) int {
	if cx > len(r.chars) {
		cx = len(r.chars)
	}
	rx := 0
	for j := 0; j < cx; j++ {
		if r.chars[j] == '\t' {
			rx += (TabStop - 1) - (rx % TabStop)
		}
		rx++
	}
	return rx
}

// RxToCx converts a rendered column into the raw column whose
// rendering covers it. A column inside a tab maps to the tab.
func (r *Row) RxToCx(rx int) int {
	curRx := 0
	cx := 0
	for ; cx < len(r.chars); cx++ {
		if r.chars[cx] == '\t' {
			curRx += (TabStop - 1) - (curRx % TabStop)
		}
		curRx++
		if curRx > rx {
			return cx
		}
	}
	return cx
}
