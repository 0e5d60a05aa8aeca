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
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/timburks/kilo/logging"
	"github.com/timburks/kilo/types"
)

// DefaultStatusTimeout is how long a status message stays visible.
const DefaultStatusTimeout = 5 * time.Second

// The Editor holds the state of an editing session: the buffer, the
// cursor and the part of the buffer that is visible.
type Editor struct {
	Cursor        types.Point // Row is an index into the buffer, Col into Row.Chars()
	RenderCol     int         // cursor column in Row.Render()
	Offset        types.Size  // first visible row and rendered column
	Buffer        *Buffer
	StatusTimeout time.Duration
	size          types.Size // size of the text area
	statusMessage string
	statusTime    time.Time
}

func NewEditor() *Editor {
	return &Editor{
		Buffer:        NewBuffer(),
		StatusTimeout: DefaultStatusTimeout,
	}
}

func (e *Editor) Size() types.Size {
	return e.size
}

// SetSize sets the size of the text area.
func (e *Editor) SetSize(size types.Size) {
	if size.Rows < 0 {
		size.Rows = 0
	}
	if size.Cols < 0 {
		size.Cols = 0
	}
	e.size = size
}

// SetStatusMessage shows a message in the message bar until it expires.
func (e *Editor) SetStatusMessage(format string, args ...any) {
	e.statusMessage = fmt.Sprintf(format, args...)
	e.statusTime = time.Now()
}

// StatusMessage returns the status message, or "" once it has expired.
func (e *Editor) StatusMessage(now time.Time) string {
	if e.statusMessage == "" || now.Sub(e.statusTime) >= e.StatusTimeout {
		return ""
	}
	return e.statusMessage
}

// LoadLines replaces the buffer with one row per line.
func (e *Editor) LoadLines(filename string, lines [][]byte) {
	e.Buffer = NewBuffer()
	e.Buffer.SetFileName(filename)
	for _, line := range lines {
		e.Buffer.InsertRow(e.Buffer.RowCount(), line)
	}
	e.Buffer.MarkClean()
	e.Cursor = types.Point{}
	e.Offset = types.Size{}
	e.RenderCol = 0
}

// Open reads a file into the buffer. A file that doesn't exist yet
// opens as an empty buffer with that name.
func (e *Editor) Open(path string) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		logging.Info(logging.CatEditor, "new file", "path", path)
		e.LoadLines(path, nil)
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()
	lines, err := readLines(f)
	if err != nil {
		return err
	}
	e.LoadLines(path, lines)
	logging.Info(logging.CatEditor, "opened file", "path", path, "rows", len(lines))
	return nil
}

// readLines splits r into lines without their trailing newlines and
// carriage returns.
func readLines(r io.Reader) ([][]byte, error) {
	var lines [][]byte
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			lines = append(lines, bytes.TrimRight(line, "\r\n"))
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// Save writes the buffer to its file and returns the number of bytes
// written. Failures are reported in the status message and leave the
// buffer marked as modified.
func (e *Editor) Save() (int, error) {
	name := e.Buffer.FileName()
	if name == "" {
		return 0, errors.New("no file name")
	}
	n, err := writeFile(name, e.Buffer.Bytes())
	if err != nil {
		logging.ErrorErr(logging.CatEditor, "save failed", err, "path", name)
		e.SetStatusMessage("Can't save! I/O error: %s", err)
		return 0, err
	}
	e.Buffer.MarkClean()
	e.SetStatusMessage("%d bytes written to disk", n)
	logging.Info(logging.CatEditor, "saved file", "path", name, "bytes", n)
	return n, nil
}

func writeFile(name string, data []byte) (int, error) {
	f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return 0, err
	}
	if err := f.Truncate(int64(len(data))); err != nil {
		f.Close()
		return 0, err
	}
	n, err := f.Write(data)
	if err != nil {
		f.Close()
		return 0, err
	}
	return n, f.Close()
}

// Scroll moves the viewport so that the cursor is visible.
func (e *Editor) Scroll() {
	e.RenderCol = 0
	if r := e.Buffer.Row(e.Cursor.Row); r != nil {
		e.RenderCol = r.CxToRx(e.Cursor.Col)
	}
	if e.Cursor.Row < e.Offset.Rows {
		e.Offset.Rows = e.Cursor.Row
	}
	if e.Cursor.Row >= e.Offset.Rows+e.size.Rows {
		e.Offset.Rows = e.Cursor.Row - e.size.Rows + 1
	}
	if e.RenderCol < e.Offset.Cols {
		e.Offset.Cols = e.RenderCol
	}
	if e.RenderCol >= e.Offset.Cols+e.size.Cols {
		e.Offset.Cols = e.RenderCol - e.size.Cols + 1
	}
}

func (e *Editor) rowLength(row int) int {
	if r := e.Buffer.Row(row); r != nil {
		return r.Size()
	}
	return 0
}

// MoveCursor moves the cursor one step for an arrow key.
func (e *Editor) MoveCursor(k types.Key) {
	onRow := e.Cursor.Row < e.Buffer.RowCount()
	switch k {
	case types.KeyArrowLeft:
		if e.Cursor.Col > 0 {
			e.Cursor.Col--
		} else if e.Cursor.Row > 0 {
			e.Cursor.Row--
			e.Cursor.Col = e.rowLength(e.Cursor.Row)
		}
	case types.KeyArrowRight:
		if onRow && e.Cursor.Col < e.rowLength(e.Cursor.Row) {
			e.Cursor.Col++
		} else if onRow {
			e.Cursor.Row++
			e.Cursor.Col = 0
		}
	case types.KeyArrowUp:
		if e.Cursor.Row > 0 {
			e.Cursor.Row--
		}
	case types.KeyArrowDown:
		if e.Cursor.Row < e.Buffer.RowCount() {
			e.Cursor.Row++
		}
	}
	// don't go past the end of the current line
	if n := e.rowLength(e.Cursor.Row); e.Cursor.Col > n {
		e.Cursor.Col = n
	}
}

func (e *Editor) MoveToBeginningOfLine() {
	e.Cursor.Col = 0
}

func (e *Editor) MoveToEndOfLine() {
	if e.Cursor.Row < e.Buffer.RowCount() {
		e.Cursor.Col = e.rowLength(e.Cursor.Row)
	}
}

// PageUp moves the cursor to the top of the screen and then up a screen.
func (e *Editor) PageUp() {
	e.Cursor.Row = e.Offset.Rows
	for i := 0; i < e.size.Rows; i++ {
		e.MoveCursor(types.KeyArrowUp)
	}
}

// PageDown moves the cursor to the bottom of the screen and then down a screen.
func (e *Editor) PageDown() {
	e.Cursor.Row = e.Offset.Rows + e.size.Rows - 1
	if e.Cursor.Row > e.Buffer.RowCount() {
		e.Cursor.Row = e.Buffer.RowCount()
	}
	for i := 0; i < e.size.Rows; i++ {
		e.MoveCursor(types.KeyArrowDown)
	}
}

// InsertChar inserts c at the cursor, adding a row if the cursor is
// past the last row.
func (e *Editor) InsertChar(c byte) {
	if e.Cursor.Row == e.Buffer.RowCount() {
		e.Buffer.InsertRow(e.Buffer.RowCount(), nil)
	}
	e.Buffer.RowInsertChar(e.Cursor.Row, e.Cursor.Col, c)
	e.Cursor.Col++
}

// InsertNewline splits the current row at the cursor and moves the
// cursor to the start of the new row.
func (e *Editor) InsertNewline() {
	if e.Cursor.Col == 0 {
		e.Buffer.InsertRow(e.Cursor.Row, nil)
	} else {
		e.Buffer.SplitRow(e.Cursor.Row, e.Cursor.Col)
	}
	e.Cursor.Row++
	e.Cursor.Col = 0
}

// DeleteChar deletes the character before the cursor. At the start of
// a row the row is joined to the one above.
func (e *Editor) DeleteChar() {
	if e.Cursor.Row == e.Buffer.RowCount() {
		return
	}
	if e.Cursor.Col == 0 && e.Cursor.Row == 0 {
		return
	}
	if e.Cursor.Col > 0 {
		e.Buffer.RowDeleteChar(e.Cursor.Row, e.Cursor.Col-1)
		e.Cursor.Col--
	} else {
		e.Cursor.Col = e.Buffer.JoinRow(e.Cursor.Row)
		e.Cursor.Row--
	}
}

// DeleteForward deletes the character under the cursor.
func (e *Editor) DeleteForward() {
	last := e.Buffer.RowCount() - 1
	if e.Cursor.Row > last || (e.Cursor.Row == last && e.Cursor.Col == e.rowLength(last)) {
		return
	}
	e.MoveCursor(types.KeyArrowRight)
	e.DeleteChar()
}

// Find moves the cursor to the next row after the cursor that contains
// query, wrapping around the buffer. It returns the row, or -1.
func (e *Editor) Find(query string) int {
	row, rx := findRow(e.Buffer, query, e.Cursor.Row, 1)
	if row < 0 {
		return -1
	}
	e.Cursor.Row = row
	e.Cursor.Col = e.Buffer.Row(row).RxToCx(rx)
	return row
}
