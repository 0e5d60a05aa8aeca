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
	"io"

	"golang.org/x/sys/unix"

	"github.com/timburks/kilo/types"
)

// A Decoder converts raw terminal input into keys.
type Decoder struct {
	r   io.Reader
	buf [1]byte
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// readByte reads one byte; ok is false if the read timed out.
func (d *Decoder) readByte() (c byte, ok bool, err error) {
	n, err := d.r.Read(d.buf[:])
	if n == 1 {
		return d.buf[0], true, nil
	}
	if err == nil || errors.Is(err, io.EOF) || errors.Is(err, unix.EAGAIN) {
		return 0, false, nil
	}
	return 0, false, err
}

// ReadKey reads the next key. It returns types.KeyNone if no input
// arrived before the reader's timeout.
func (d *Decoder) ReadKey() (types.Key, error) {
	c, ok, err := d.readByte()
	if err != nil || !ok {
		return types.KeyNone, err
	}
	if c != byte(types.KeyEsc) {
		return types.Key(c), nil
	}

	var seq [3]byte
	for i := 0; i < 2; i++ {
		seq[i], ok, err = d.readByte()
		if err != nil {
			return types.KeyNone, err
		}
		if !ok {
			return types.KeyEsc, nil
		}
	}

	switch seq[0] {
	case '[':
		if seq[1] >= '0' && seq[1] <= '9' {
			seq[2], ok, err = d.readByte()
			if err != nil {
				return types.KeyNone, err
			}
			if !ok || seq[2] != '~' {
				return types.KeyEsc, nil
			}
			switch seq[1] {
			case '1', '7':
				return types.KeyHome, nil
			case '3':
				return types.KeyDelete, nil
			case '4', '8':
				return types.KeyEnd, nil
			case '5':
				return types.KeyPgup, nil
			case '6':
				return types.KeyPgdn, nil
			}
			return types.KeyEsc, nil
		}
		switch seq[1] {
		case 'A':
			return types.KeyArrowUp, nil
		case 'B':
			return types.KeyArrowDown, nil
		case 'C':
			return types.KeyArrowRight, nil
		case 'D':
			return types.KeyArrowLeft, nil
		case 'H':
			return types.KeyHome, nil
		case 'F':
			return types.KeyEnd, nil
		}
	case 'O':
		switch seq[1] {
		case 'H':
			return types.KeyHome, nil
		case 'F':
			return types.KeyEnd, nil
		}
	}
	return types.KeyEsc, nil
}
