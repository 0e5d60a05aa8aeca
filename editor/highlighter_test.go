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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/timburks/kilo/types"
)

// classes returns a compact form of a row's highlights, one letter per
// rendered byte.
func classes(hl []types.Highlight) string {
	letters := map[types.Highlight]byte{
		types.HighlightNormal:    '.',
		types.HighlightComment:   'c',
		types.HighlightMLComment: 'm',
		types.HighlightKeyword1:  'k',
		types.HighlightKeyword2:  't',
		types.HighlightString:    's',
		types.HighlightNumber:    'n',
		types.HighlightMatch:     'x',
	}
	out := make([]byte, len(hl))
	for i, h := range hl {
		out[i] = letters[h]
	}
	return string(out)
}

func highlightLine(s *Syntax, line string, inComment bool) (*Row, bool) {
	r := newRow(0, []byte(line))
	NewHighlighter(s).Highlight(r, inComment)
	return r, r.OpenComment()
}

func TestHighlightC(t *testing.T) {
	c := SelectSyntax("main.c")
	require.NotNil(t, c)

	tests := []struct {
		line    string
		classes string
	}{
		{"int x = 42; // hi", "ttt.....nn..ccccc"},
		{`"a\"b" 'c'`, "ssssss.sss"},
		{"x1 1.5", "...nnn"},
		{"integer", "......."},
		{"if(x)return;", "kk...kkkkkk."},
		{"a /* b */ c", "..mmmmmmm.."},
		{`"/*" x`, "ssss.."},
		{"return 0;", "kkkkkk.n."},
	}
	for _, tt := range tests {
		r, open := highlightLine(c, tt.line, false)
		assert.Equal(t, tt.classes, classes(r.Highlights()), "line %q", tt.line)
		assert.False(t, open, "line %q", tt.line)
	}
}

func TestHighlightBlockCommentState(t *testing.T) {
	c := SelectSyntax("main.c")

	r, open := highlightLine(c, "x /* open", false)
	assert.Equal(t, "..mmmmmmm", classes(r.Highlights()))
	assert.True(t, open)

	r, open = highlightLine(c, "still // open", true)
	assert.Equal(t, "mmmmmmmmmmmmm", classes(r.Highlights()))
	assert.True(t, open)

	r, open = highlightLine(c, "done */ 7", true)
	assert.Equal(t, "mmmmmmm.n", classes(r.Highlights()))
	assert.False(t, open)
}

func TestHighlightLongestKeyword(t *testing.T) {
	s := &Syntax{
		FileType:  "test",
		Keywords1: []string{"in"},
		Keywords2: []string{"int"},
		Flags:     HighlightNumbers,
	}
	r, _ := highlightLine(s, "int in inx", false)
	assert.Equal(t, "ttt.kk....", classes(r.Highlights()))
}

func TestHighlightWithoutSyntax(t *testing.T) {
	r, open := highlightLine(nil, `int x = "1"; /*`, false)
	assert.Equal(t, "...............", classes(r.Highlights()))
	assert.False(t, open)
}

func TestHighlightIsIdempotent(t *testing.T) {
	c := SelectSyntax("main.c")
	alphabet := []byte{'a', 'i', 'n', 't', ' ', '/', '*', '"', '\'', '\\', '1', '.', '\t', '#'}
	rapid.Check(t, func(rt *rapid.T) {
		line := rapid.SliceOf(rapid.SampledFrom(alphabet)).Draw(rt, "line")
		inComment := rapid.Bool().Draw(rt, "inComment")
		h := NewHighlighter(c)
		r := newRow(0, line)
		h.Highlight(r, inComment)
		first := append([]types.Highlight(nil), r.Highlights()...)
		open := r.OpenComment()

		require.False(rt, h.Highlight(r, inComment))
		require.Equal(rt, first, r.Highlights())
		require.Equal(rt, open, r.OpenComment())
		require.Len(rt, r.Highlights(), len(r.Render()))
	})
}

func TestSelectSyntax(t *testing.T) {
	tests := []struct {
		name     string
		fileType string
	}{
		{"main.c", "c"},
		{"include/x.h", "c"},
		{"a.cpp", "c"},
		{"main.go", "go"},
		{"setup.py", "python"},
		{"build.sh", "sh"},
		{".bashrc", "sh"},
		{"main.c.bak", ""},
		{"notes.txt", ""},
		{"Makefile", ""},
		{"", ""},
	}
	for _, tt := range tests {
		s := SelectSyntax(tt.name)
		if tt.fileType == "" {
			assert.Nil(t, s, "name %q", tt.name)
			continue
		}
		if assert.NotNil(t, s, "name %q", tt.name) {
			assert.Equal(t, tt.fileType, s.FileType)
		}
	}
}
