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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/timburks/kilo/types"
)

func cell(c byte, class types.Highlight) types.Cell {
	return types.Cell{Ch: c, Class: class}
}

func TestEncode(t *testing.T) {
	f := &Frame{
		Lines: [][]types.Cell{
			{
				cell('a', types.HighlightNormal),
				cell('b', types.HighlightKeyword1),
				cell('c', types.HighlightKeyword1),
				cell('d', types.HighlightNormal),
			},
			textCells("xy", true),
			nil,
		},
		Cursor: types.Point{Row: 1, Col: 2},
	}
	var buf bytes.Buffer
	f.Encode(&buf)
	assert.Equal(t,
		"\x1b[?25l\x1b[H"+
			"a\x1b[33mbc\x1b[39md\x1b[K\r\n"+
			"\x1b[7mxy\x1b[m\x1b[K\r\n"+
			"\x1b[K"+
			"\x1b[2;3H\x1b[?25h",
		buf.String())
}

func TestEncodeRestoresColorAfterReverse(t *testing.T) {
	f := &Frame{
		Lines: [][]types.Cell{{
			cell('a', types.HighlightString),
			{Ch: 'A', Class: types.HighlightString, Reverse: true},
			cell('b', types.HighlightString),
			cell('1', types.HighlightNumber),
		}},
	}
	var buf bytes.Buffer
	f.Encode(&buf)
	assert.Equal(t,
		"\x1b[?25l\x1b[H"+
			"\x1b[35ma\x1b[7mA\x1b[m\x1b[35mb\x1b[31m1\x1b[39m\x1b[K"+
			"\x1b[1;1H\x1b[?25h",
		buf.String())
}
