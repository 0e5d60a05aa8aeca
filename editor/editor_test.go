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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timburks/kilo/types"
)

const source = "testdata/hello.c"

func setup(t *testing.T) *Editor {
	e := NewEditor()
	require.NoError(t, e.Open(source))
	return e
}

func newTestEditor(lines ...string) *Editor {
	e := NewEditor()
	var bs [][]byte
	for _, line := range lines {
		bs = append(bs, []byte(line))
	}
	e.LoadLines("", bs)
	e.SetSize(types.Size{Rows: 10, Cols: 40})
	return e
}

// read and write a file without changing it
func TestReadWriteInvariance(t *testing.T) {
	e := setup(t)
	assert.Equal(t, 8, e.Buffer.RowCount())
	assert.Equal(t, "c", e.Buffer.Syntax().FileType)
	assert.Equal(t, 0, e.Buffer.Dirty())

	out := filepath.Join(t.TempDir(), "hello.c")
	e.Buffer.SetFileName(out)
	n, err := e.Save()
	require.NoError(t, err)

	want, err := os.ReadFile(source)
	require.NoError(t, err)
	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
	assert.Equal(t, len(want), n)
}

func TestOpenNormalizesLineEndings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\r\nb\r\nlast"), 0o644))

	e := NewEditor()
	require.NoError(t, e.Open(path))
	assert.Equal(t, []string{"a", "b", "last"}, rowStrings(e.Buffer))

	_, err := e.Save()
	require.NoError(t, err)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nlast\n", string(got))
}

func TestOpenMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.go")
	e := NewEditor()
	require.NoError(t, e.Open(path))
	assert.Equal(t, 0, e.Buffer.RowCount())
	assert.Equal(t, path, e.Buffer.FileName())
	assert.Equal(t, "go", e.Buffer.Syntax().FileType)
}

func TestOpenDirectoryFails(t *testing.T) {
	e := NewEditor()
	assert.Error(t, e.Open(t.TempDir()))
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("a much longer previous content\n"), 0o644))

	e := newTestEditor("hi")
	e.Buffer.SetFileName(path)
	e.InsertChar('!')
	assert.Equal(t, 1, e.Buffer.Dirty())

	n, err := e.Save()
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, 0, e.Buffer.Dirty())
	assert.Equal(t, "4 bytes written to disk", e.StatusMessage(time.Now()))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "!hi\n", string(got))
}

func TestSaveFailureKeepsDirty(t *testing.T) {
	e := newTestEditor("x")
	e.InsertChar('y')
	e.Buffer.SetFileName(t.TempDir())

	_, err := e.Save()
	require.Error(t, err)
	assert.Equal(t, 1, e.Buffer.Dirty())
	assert.True(t, strings.HasPrefix(e.StatusMessage(time.Now()), "Can't save! I/O error: "))
}

func TestSaveWithoutName(t *testing.T) {
	e := newTestEditor("x")
	_, err := e.Save()
	assert.Error(t, err)
}

func TestStatusMessageExpires(t *testing.T) {
	e := NewEditor()
	assert.Equal(t, "", e.StatusMessage(time.Now()))
	e.SetStatusMessage("%d lines", 3)
	now := time.Now()
	assert.Equal(t, "3 lines", e.StatusMessage(now))
	assert.Equal(t, "", e.StatusMessage(now.Add(DefaultStatusTimeout)))
}

func TestInsertCharOnEmptyBuffer(t *testing.T) {
	e := newTestEditor()
	e.InsertChar('a')
	e.InsertChar('b')
	assert.Equal(t, []string{"ab"}, rowStrings(e.Buffer))
	assert.Equal(t, types.Point{Row: 0, Col: 2}, e.Cursor)
}

func TestInsertNewline(t *testing.T) {
	e := newTestEditor("hello world")
	e.Cursor = types.Point{Row: 0, Col: 5}
	e.InsertNewline()
	assert.Equal(t, []string{"hello", " world"}, rowStrings(e.Buffer))
	assert.Equal(t, types.Point{Row: 1, Col: 0}, e.Cursor)

	e.InsertNewline()
	assert.Equal(t, []string{"hello", "", " world"}, rowStrings(e.Buffer))
	assert.Equal(t, types.Point{Row: 2, Col: 0}, e.Cursor)
}

func TestDeleteChar(t *testing.T) {
	e := newTestEditor("ab", "cd")
	e.DeleteChar()
	assert.Equal(t, []string{"ab", "cd"}, rowStrings(e.Buffer))

	e.Cursor = types.Point{Row: 1, Col: 0}
	e.DeleteChar()
	assert.Equal(t, []string{"abcd"}, rowStrings(e.Buffer))
	assert.Equal(t, types.Point{Row: 0, Col: 2}, e.Cursor)

	e.DeleteChar()
	assert.Equal(t, []string{"acd"}, rowStrings(e.Buffer))
	assert.Equal(t, types.Point{Row: 0, Col: 1}, e.Cursor)

	// past the last row there is nothing to delete
	e.Cursor = types.Point{Row: 1, Col: 0}
	e.DeleteChar()
	assert.Equal(t, []string{"acd"}, rowStrings(e.Buffer))
}

func TestDeleteForward(t *testing.T) {
	e := newTestEditor("ab", "cd")
	e.Cursor = types.Point{Row: 0, Col: 2}
	e.DeleteForward()
	assert.Equal(t, []string{"abcd"}, rowStrings(e.Buffer))
	assert.Equal(t, types.Point{Row: 0, Col: 2}, e.Cursor)

	e.DeleteForward()
	assert.Equal(t, []string{"abd"}, rowStrings(e.Buffer))

	e.MoveToEndOfLine()
	e.DeleteForward()
	assert.Equal(t, []string{"abd"}, rowStrings(e.Buffer))
	assert.Equal(t, types.Point{Row: 0, Col: 3}, e.Cursor)
}

func TestMoveCursor(t *testing.T) {
	e := newTestEditor("long line", "ab")
	e.MoveToEndOfLine()
	assert.Equal(t, types.Point{Row: 0, Col: 9}, e.Cursor)

	e.MoveCursor(types.KeyArrowDown)
	assert.Equal(t, types.Point{Row: 1, Col: 2}, e.Cursor)

	e.MoveCursor(types.KeyArrowRight)
	assert.Equal(t, types.Point{Row: 2, Col: 0}, e.Cursor)

	// the row past the end can be reached but not passed
	e.MoveCursor(types.KeyArrowRight)
	e.MoveCursor(types.KeyArrowDown)
	assert.Equal(t, types.Point{Row: 2, Col: 0}, e.Cursor)

	e.MoveCursor(types.KeyArrowLeft)
	assert.Equal(t, types.Point{Row: 1, Col: 2}, e.Cursor)

	e.MoveToBeginningOfLine()
	e.MoveCursor(types.KeyArrowLeft)
	assert.Equal(t, types.Point{Row: 0, Col: 9}, e.Cursor)

	e.Cursor = types.Point{}
	e.MoveCursor(types.KeyArrowLeft)
	e.MoveCursor(types.KeyArrowUp)
	assert.Equal(t, types.Point{}, e.Cursor)
}

func TestScroll(t *testing.T) {
	var lines []string
	for i := 0; i < 30; i++ {
		lines = append(lines, strings.Repeat("x", i))
	}
	e := newTestEditor(lines...)
	e.SetSize(types.Size{Rows: 5, Cols: 10})

	e.Cursor = types.Point{Row: 7, Col: 0}
	e.Scroll()
	assert.Equal(t, types.Size{Rows: 3, Cols: 0}, e.Offset)

	e.Cursor = types.Point{Row: 25, Col: 25}
	e.Scroll()
	assert.Equal(t, types.Size{Rows: 21, Cols: 16}, e.Offset)
	assert.Equal(t, 25, e.RenderCol)

	e.Cursor = types.Point{Row: 2, Col: 1}
	e.Scroll()
	assert.Equal(t, types.Size{Rows: 2, Cols: 1}, e.Offset)
}

func TestScrollUsesRenderedColumn(t *testing.T) {
	e := newTestEditor("\t\tx")
	e.SetSize(types.Size{Rows: 5, Cols: 10})
	e.Cursor = types.Point{Row: 0, Col: 2}
	e.Scroll()
	assert.Equal(t, 16, e.RenderCol)
	assert.Equal(t, 7, e.Offset.Cols)
}

func TestPaging(t *testing.T) {
	var lines []string
	for i := 0; i < 50; i++ {
		lines = append(lines, "line")
	}
	e := newTestEditor(lines...)
	e.SetSize(types.Size{Rows: 10, Cols: 20})

	e.PageDown()
	assert.Equal(t, 19, e.Cursor.Row)
	e.Scroll()
	assert.Equal(t, 10, e.Offset.Rows)

	e.PageUp()
	assert.Equal(t, 0, e.Cursor.Row)

	e.Cursor.Row = 45
	e.Offset.Rows = 45
	e.PageDown()
	assert.Equal(t, 50, e.Cursor.Row)
}

func TestFind(t *testing.T) {
	e := newTestEditor("alpha", "beta", "gamma")
	assert.Equal(t, 1, e.Find("a"))
	assert.Equal(t, types.Point{Row: 1, Col: 3}, e.Cursor)
	assert.Equal(t, 2, e.Find("a"))
	assert.Equal(t, 0, e.Find("a"))
	assert.Equal(t, -1, e.Find("zzz"))
	assert.Equal(t, -1, e.Find(""))
	assert.Equal(t, types.Point{Row: 0, Col: 0}, e.Cursor)
}
