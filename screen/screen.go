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
	"fmt"
	"os"
	"time"

	"github.com/timburks/kilo/editor"
	"github.com/timburks/kilo/logging"
	"github.com/timburks/kilo/types"
)

// A Backend puts frames on a terminal and reads keys from it.
type Backend interface {
	Size() (types.Size, error)
	ReadKey() (types.Key, error)
	Draw(f *Frame) error
	Close() error
}

// Open returns the backend with the given name.
func Open(name string) (Backend, error) {
	logging.Info(logging.CatTerm, "opening backend", "name", name)
	switch name {
	case "", "vt100":
		return OpenVT100(os.Stdin, os.Stdout)
	case "termbox":
		return OpenTermbox()
	case "tcell":
		return OpenTcell()
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

// The Screen draws the state of an Editor.
type Screen struct {
	backend Backend
	closed  bool
}

func NewScreen(b Backend) *Screen {
	return &Screen{backend: b}
}

// Refresh fits the editor to the terminal, scrolls it to the cursor
// and draws it.
func (s *Screen) Refresh(e *editor.Editor) error {
	size, err := s.backend.Size()
	if err != nil {
		return fmt.Errorf("window size: %w", err)
	}
	e.SetSize(types.Size{Rows: size.Rows - 2, Cols: size.Cols})
	e.Scroll()
	return s.backend.Draw(Render(e, size, time.Now()))
}

func (s *Screen) ReadKey() (types.Key, error) {
	return s.backend.ReadKey()
}

// Wake interrupts a ReadKey that is waiting for input. It may be called
// from any goroutine. Backends that poll for input ignore it.
func (s *Screen) Wake() {
	if w, ok := s.backend.(interface{ Wake() }); ok {
		w.Wake()
	}
}

// Close releases the terminal. It is safe to call more than once.
func (s *Screen) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.backend.Close()
}
