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
	"os"

	"github.com/timburks/kilo/terminal"
	"github.com/timburks/kilo/types"
)

// VT100 draws frames with escape sequences on a raw-mode terminal.
type VT100 struct {
	term *terminal.Terminal
	buf  bytes.Buffer
	size types.Size // size at the last call to Size
}

func OpenVT100(in, out *os.File) (*VT100, error) {
	t, err := terminal.Open(in, out)
	if err != nil {
		return nil, err
	}
	return &VT100{term: t}, nil
}

func (v *VT100) Size() (types.Size, error) {
	size, err := v.term.Size()
	if err != nil {
		return size, err
	}
	v.size = size
	return size, nil
}

// ReadKey waits briefly for a key. When none arrives it reports a
// resize if the window size changed since the last frame.
func (v *VT100) ReadKey() (types.Key, error) {
	k, err := v.term.ReadKey()
	if err != nil || k != types.KeyNone {
		return k, err
	}
	if size, err := v.term.WindowSize(); err == nil && size != v.size {
		return types.KeyResize, nil
	}
	return types.KeyNone, nil
}

// Draw writes the whole frame with a single write.
func (v *VT100) Draw(f *Frame) error {
	v.buf.Reset()
	f.Encode(&v.buf)
	_, err := v.term.Write(v.buf.Bytes())
	return err
}

func (v *VT100) Close() error {
	return v.term.Restore()
}
