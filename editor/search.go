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
	"bytes"

	"github.com/timburks/kilo/logging"
	"github.com/timburks/kilo/types"
)

// findRow looks for query in the rendered rows after from, stepping by
// direction and wrapping around. It returns the row and the rendered
// column of the match, or -1.
func findRow(b *Buffer, query string, from, direction int) (int, int) {
	n := b.RowCount()
	if query == "" || n == 0 {
		return -1, 0
	}
	q := []byte(query)
	current := from
	for i := 0; i < n; i++ {
		current += direction
		if current < 0 {
			current = n - 1
		} else if current >= n {
			current = 0
		}
		if rx := bytes.Index(b.rows[current].render, q); rx >= 0 {
			return current, rx
		}
	}
	return -1, 0
}

// A Search is an incremental search session. It is driven by a prompt
// and sees every key typed into it.
type Search struct {
	editor    *Editor
	lastMatch int
	direction int

	savedLine int
	savedHl   []types.Highlight

	savedCursor types.Point
	savedOffset types.Size
}

// NewSearch starts a search, remembering the cursor and viewport so
// that they can be restored if the search is canceled.
func NewSearch(e *Editor) *Search {
	return &Search{
		editor:      e,
		lastMatch:   -1,
		direction:   1,
		savedCursor: e.Cursor,
		savedOffset: e.Offset,
	}
}

func (s *Search) restoreHighlight() {
	if s.savedHl == nil {
		return
	}
	if r := s.editor.Buffer.Row(s.savedLine); r != nil && len(r.hl) == len(s.savedHl) {
		copy(r.hl, s.savedHl)
	}
	s.savedHl = nil
}

func (s *Search) reset() {
	s.lastMatch = -1
	s.direction = 1
}

// OnKey updates the search after a key was typed into the prompt.
func (s *Search) OnKey(query string, k types.Key) types.PromptSignal {
	s.restoreHighlight()

	switch k {
	case types.KeyEnter:
		s.reset()
		if query == "" {
			return types.PromptContinue
		}
		return types.PromptAccept
	case types.KeyEsc:
		s.reset()
		s.editor.Cursor = s.savedCursor
		s.editor.Offset = s.savedOffset
		return types.PromptCancel
	case types.KeyArrowRight, types.KeyArrowDown:
		s.direction = 1
	case types.KeyArrowLeft, types.KeyArrowUp:
		s.direction = -1
	default:
		s.reset()
	}
	if s.lastMatch == -1 {
		s.direction = 1
	}

	b := s.editor.Buffer
	row, rx := findRow(b, query, s.lastMatch, s.direction)
	if row < 0 {
		return types.PromptContinue
	}
	logging.Debug(logging.CatSearch, "match", "query", query, "row", row, "col", rx)
	s.lastMatch = row
	r := b.rows[row]
	s.editor.Cursor = types.Point{Row: row, Col: r.RxToCx(rx)}
	// scroll so that the match ends up at the top of the screen
	s.editor.Offset.Rows = b.RowCount()

	s.savedLine = row
	s.savedHl = append([]types.Highlight(nil), r.hl...)
	fill(r.hl[rx:rx+len(query)], types.HighlightMatch)
	return types.PromptContinue
}
