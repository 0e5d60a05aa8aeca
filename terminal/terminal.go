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

// Package terminal puts a terminal into raw mode and decodes its input.
package terminal

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/timburks/kilo/logging"
	"github.com/timburks/kilo/types"
)

const (
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
)

var ErrNotTerminal = errors.New("input is not a terminal")

// A Terminal is a raw-mode terminal. The original attributes are
// restored by Restore, which callers must defer.
type Terminal struct {
	in       *os.File
	out      *os.File
	original *unix.Termios
	decoder  *Decoder
}

// Open switches in to raw mode: no echo, no canonical input, no signal
// keys and no output post-processing. Reads time out after 100ms.
func Open(in, out *os.File) (*Terminal, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}
	original, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return nil, fmt.Errorf("tcgetattr: %w", err)
	}
	raw := *original
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 1
	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, &raw); err != nil {
		return nil, fmt.Errorf("tcsetattr: %w", err)
	}
	logging.Debug(logging.CatTerm, "raw mode enabled", "fd", fd)
	return &Terminal{
		in:       in,
		out:      out,
		original: original,
		decoder:  NewDecoder(in),
	}, nil
}

// Restore clears the screen and puts back the original terminal
// attributes. It is safe to call more than once.
func (t *Terminal) Restore() error {
	if t.original == nil {
		return nil
	}
	t.out.WriteString(clearScreen + cursorHome)
	err := unix.IoctlSetTermios(int(t.in.Fd()), ioctlWriteTermios, t.original)
	t.original = nil
	if err != nil {
		return fmt.Errorf("tcsetattr: %w", err)
	}
	logging.Debug(logging.CatTerm, "raw mode disabled")
	return nil
}

// WindowSize asks the kernel for the terminal size.
func (t *Terminal) WindowSize() (types.Size, error) {
	cols, rows, err := term.GetSize(int(t.out.Fd()))
	if err != nil {
		return types.Size{}, err
	}
	if cols == 0 {
		return types.Size{}, errors.New("window size: zero columns")
	}
	return types.Size{Rows: rows, Cols: cols}, nil
}

// Size returns the terminal size, falling back to asking the terminal
// for its cursor position when the kernel doesn't know.
func (t *Terminal) Size() (types.Size, error) {
	if size, err := t.WindowSize(); err == nil {
		return size, nil
	}
	// move to the bottom-right corner and ask where the cursor is
	if _, err := t.out.WriteString("\x1b[999C\x1b[999B"); err != nil {
		return types.Size{}, fmt.Errorf("window size: %w", err)
	}
	return t.cursorPosition()
}

func (t *Terminal) cursorPosition() (types.Size, error) {
	if _, err := t.out.WriteString("\x1b[6n"); err != nil {
		return types.Size{}, fmt.Errorf("cursor position: %w", err)
	}
	var response []byte
	for len(response) < 32 {
		c, ok, err := t.decoder.readByte()
		if err != nil {
			return types.Size{}, fmt.Errorf("cursor position: %w", err)
		}
		if !ok || c == 'R' {
			break
		}
		response = append(response, c)
	}
	var size types.Size
	if len(response) < 2 || response[0] != 0x1b || response[1] != '[' {
		return size, errors.New("cursor position: unexpected response")
	}
	if _, err := fmt.Sscanf(string(response[2:]), "%d;%d", &size.Rows, &size.Cols); err != nil {
		return size, fmt.Errorf("cursor position: %w", err)
	}
	return size, nil
}

// ReadKey waits up to the read timeout for the next key.
func (t *Terminal) ReadKey() (types.Key, error) {
	return t.decoder.ReadKey()
}

func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// Die restores the terminal and exits with a diagnostic.
func (t *Terminal) Die(err error) {
	t.Restore()
	Die(err)
}

// Die clears the screen, prints err to standard error and exits.
func Die(err error) {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		os.Stdout.WriteString(clearScreen + cursorHome)
	}
	logging.ErrorErr(logging.CatTerm, "fatal", err)
	fmt.Fprintf(os.Stderr, "kilo: %v\n", err)
	os.Exit(1)
}
