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
package terminal

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timburks/kilo/types"
)

func TestReadKeySequences(t *testing.T) {
	tests := []struct {
		input string
		want  types.Key
	}{
		{"a", types.Key('a')},
		{"\r", types.KeyEnter},
		{"\x11", types.KeyCtrlQ},
		{"\x7f", types.KeyBackspace},
		{"\x1b[A", types.KeyArrowUp},
		{"\x1b[B", types.KeyArrowDown},
		{"\x1b[C", types.KeyArrowRight},
		{"\x1b[D", types.KeyArrowLeft},
		{"\x1b[H", types.KeyHome},
		{"\x1b[F", types.KeyEnd},
		{"\x1bOH", types.KeyHome},
		{"\x1bOF", types.KeyEnd},
		{"\x1b[1~", types.KeyHome},
		{"\x1b[7~", types.KeyHome},
		{"\x1b[3~", types.KeyDelete},
		{"\x1b[4~", types.KeyEnd},
		{"\x1b[8~", types.KeyEnd},
		{"\x1b[5~", types.KeyPgup},
		{"\x1b[6~", types.KeyPgdn},
	}
	for _, tt := range tests {
		d := NewDecoder(strings.NewReader(tt.input))
		k, err := d.ReadKey()
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, k, "input %q", tt.input)
	}
}

func TestReadKeyIncompleteSequences(t *testing.T) {
	for _, input := range []string{"\x1b", "\x1b[", "\x1b[5", "\x1b[2~", "\x1b[Z", "\x1bOA", "\x1bx1", "\x1b[9x"} {
		d := NewDecoder(strings.NewReader(input))
		k, err := d.ReadKey()
		require.NoError(t, err)
		assert.Equal(t, types.KeyEsc, k, "input %q", input)
	}
}

func TestReadKeyTimeout(t *testing.T) {
	d := NewDecoder(strings.NewReader(""))
	k, err := d.ReadKey()
	require.NoError(t, err)
	assert.Equal(t, types.KeyNone, k)
}

func TestReadKeyStream(t *testing.T) {
	d := NewDecoder(strings.NewReader("x\x1b[Ay"))
	var keys []types.Key
	for {
		k, err := d.ReadKey()
		require.NoError(t, err)
		if k == types.KeyNone {
			break
		}
		keys = append(keys, k)
	}
	assert.Equal(t, []types.Key{'x', types.KeyArrowUp, 'y'}, keys)
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("broken")
}

func TestReadKeyError(t *testing.T) {
	d := NewDecoder(failingReader{})
	_, err := d.ReadKey()
	require.Error(t, err)
}
