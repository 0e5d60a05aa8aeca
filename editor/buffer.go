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
)

// A Buffer holds the rows of the file being edited.
// Every change re-renders and re-highlights the rows it touches.
type Buffer struct {
	rows        []*Row
	fileName    string
	highlighter *Highlighter
	dirty       int // number of changes since the last load or save
}

func NewBuffer() *Buffer {
	return &Buffer{highlighter: NewHighlighter(nil)}
}

func (b *Buffer) FileName() string {
	return b.fileName
}

// SetFileName names the buffer and selects a syntax for the name.
func (b *Buffer) SetFileName(name string) {
	b.fileName = name
	b.SetSyntax(SelectSyntax(name))
}

func (b *Buffer) Syntax() *Syntax {
	return b.highlighter.Syntax()
}

// SetSyntax switches the syntax and re-highlights every row.
func (b *Buffer) SetSyntax(s *Syntax) {
	b.highlighter = NewHighlighter(s)
	inComment := false
	for _, r := range b.rows {
		b.highlighter.Highlight(r, inComment)
		inComment = r.openComment
	}
}

func (b *Buffer) RowCount() int {
	return len(b.rows)
}

// Row returns the row at index i, or nil if there is none.
func (b *Buffer) Row(i int) *Row {
	if i < 0 || i >= len(b.rows) {
		return nil
	}
	return b.rows[i]
}

// Dirty returns the number of unsaved changes.
func (b *Buffer) Dirty() int {
	return b.dirty
}

func (b *Buffer) MarkClean() {
	b.dirty = 0
}

// startsInComment reports whether the row at i begins inside a block comment.
func (b *Buffer) startsInComment(i int) bool {
	return i > 0 && i <= len(b.rows) && b.rows[i-1].openComment
}

// highlightFrom highlights the row at i and keeps going for as long as
// a row's open comment state changes.
func (b *Buffer) highlightFrom(i int) {
	for ; i < len(b.rows); i++ {
		if !b.highlighter.Highlight(b.rows[i], b.startsInComment(i)) {
			return
		}
	}
}

// InsertRow inserts a row containing a copy of chars before the row at at.
func (b *Buffer) InsertRow(at int, chars []byte) {
	if at < 0 {
		at = 0
	}
	if at > len(b.rows) {
		at = len(b.rows)
	}
	r := newRow(at, chars)
	// the following row was highlighted with this incoming state
	r.openComment = b.startsInComment(at)
	b.rows = append(b.rows, nil)
	copy(b.rows[at+1:], b.rows[at:])
	b.rows[at] = r
	for j := at + 1; j < len(b.rows); j++ {
		b.rows[j].index++
	}
	b.highlightFrom(at)
	b.dirty++
}

// DeleteRow removes the row at at.
func (b *Buffer) DeleteRow(at int) {
	if at < 0 || at >= len(b.rows) {
		return
	}
	deleted := b.rows[at]
	copy(b.rows[at:], b.rows[at+1:])
	b.rows[len(b.rows)-1] = nil
	b.rows = b.rows[:len(b.rows)-1]
	for j := at; j < len(b.rows); j++ {
		b.rows[j].index--
	}
	if at < len(b.rows) && b.startsInComment(at) != deleted.openComment {
		b.highlightFrom(at)
	}
	b.dirty++
}

// RowInsertChar inserts c into a row. Positions past the end append.
func (b *Buffer) RowInsertChar(row, at int, c byte) {
	r := b.Row(row)
	if r == nil {
		return
	}
	r.insertChar(at, c)
	b.highlightFrom(row)
	b.dirty++
}

// RowDeleteChar removes the byte at position at of a row.
func (b *Buffer) RowDeleteChar(row, at int) {
	r := b.Row(row)
	if r == nil || !r.deleteChar(at) {
		return
	}
	b.highlightFrom(row)
	b.dirty++
}

// RowAppend appends chars to the end of a row.
func (b *Buffer) RowAppend(row int, chars []byte) {
	r := b.Row(row)
	if r == nil {
		return
	}
	r.appendBytes(chars)
	b.highlightFrom(row)
	b.dirty++
}

// SplitRow cuts a row at col and moves the rest into a new row below it.
func (b *Buffer) SplitRow(row, col int) {
	r := b.Row(row)
	if r == nil {
		return
	}
	rest := r.truncate(col)
	b.highlightFrom(row)
	b.InsertRow(row+1, rest)
}

// JoinRow appends a row to the one above it and removes it.
// It returns the former length of the row above, or -1 if the row
// can't be joined.
func (b *Buffer) JoinRow(row int) int {
	if row <= 0 || row >= len(b.rows) {
		return -1
	}
	at := b.rows[row-1].Size()
	b.RowAppend(row-1, b.rows[row].chars)
	b.DeleteRow(row)
	return at
}

// Bytes returns the contents of the buffer with every row terminated
// by a newline.
func (b *Buffer) Bytes() []byte {
	size := 0
	for _, r := range b.rows {
		size += r.Size() + 1
	}
	var buf bytes.Buffer
	buf.Grow(size)
	for _, r := range b.rows {
		buf.Write(r.chars)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
