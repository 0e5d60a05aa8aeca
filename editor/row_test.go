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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var rowAlphabet = []byte{'a', 'b', ' ', '\t', '/', '*', '"', '1'}

func TestRowTabExpansion(t *testing.T) {
	tests := []struct {
		chars  string
		render string
	}{
		{"", ""},
		{"abc", "abc"},
		{"\tx", "        x"},
		{"ab\tc", "ab      c"},
		{"12345678\t|", "12345678        |"},
		{"\t\t", strings.Repeat(" ", 16)},
	}
	for _, tt := range tests {
		r := newRow(0, []byte(tt.chars))
		assert.Equal(t, tt.render, string(r.Render()), "chars %q", tt.chars)
		assert.Len(t, r.Highlights(), len(r.Render()))
	}
}

func TestRowCopiesInput(t *testing.T) {
	chars := []byte("hello")
	r := newRow(0, chars)
	chars[0] = 'j'
	assert.Equal(t, "hello", r.String())
}

func TestRowColumnMapping(t *testing.T) {
	r := newRow(0, []byte("a\tb"))
	assert.Equal(t, 0, r.CxToRx(0))
	assert.Equal(t, 1, r.CxToRx(1))
	assert.Equal(t, 8, r.CxToRx(2))
	assert.Equal(t, 9, r.CxToRx(3))
	// past the end clamps to the end
	assert.Equal(t, 9, r.CxToRx(10))

	// columns inside a tab map to the tab
	for rx := 1; rx < 8; rx++ {
		assert.Equal(t, 1, r.RxToCx(rx), "rx %d", rx)
	}
	assert.Equal(t, 2, r.RxToCx(8))
	assert.Equal(t, 3, r.RxToCx(20))
}

func TestRowColumnRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		chars := rapid.SliceOf(rapid.SampledFrom(rowAlphabet)).Draw(rt, "chars")
		cx := rapid.IntRange(0, len(chars)).Draw(rt, "cx")
		r := newRow(0, chars)
		rx := r.CxToRx(cx)
		require.Equal(rt, cx, r.RxToCx(rx))
		require.LessOrEqual(rt, rx, len(r.Render()))
	})
}

func TestRowEdits(t *testing.T) {
	r := newRow(0, []byte("ac"))
	r.insertChar(1, 'b')
	assert.Equal(t, "abc", r.String())
	r.insertChar(99, 'd')
	assert.Equal(t, "abcd", r.String())
	r.insertChar(-1, 'e')
	assert.Equal(t, "abcde", r.String())

	assert.True(t, r.deleteChar(0))
	assert.Equal(t, "bcde", r.String())
	assert.False(t, r.deleteChar(4))
	assert.False(t, r.deleteChar(-1))
	assert.Equal(t, "bcde", r.String())

	r.appendBytes([]byte("\tf"))
	assert.Equal(t, "bcde    f", string(r.Render()))

	rest := r.truncate(2)
	assert.Equal(t, "de\tf", string(rest))
	assert.Equal(t, "bc", r.String())
	assert.Len(t, r.Highlights(), 2)
}
