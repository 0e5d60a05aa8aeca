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
	"errors"

	"github.com/gdamore/tcell/v2"

	"github.com/timburks/kilo/types"
)

var errScreenClosed = errors.New("screen closed")

// Tcell draws frames on a tcell screen.
type Tcell struct {
	screen tcell.Screen
}

func OpenTcell() (*Tcell, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTcell(s)
}

// NewTcell initializes s and draws on it.
func NewTcell(s tcell.Screen) (*Tcell, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	return &Tcell{screen: s}, nil
}

func (t *Tcell) Size() (types.Size, error) {
	cols, rows := t.screen.Size()
	return types.Size{Rows: rows, Cols: cols}, nil
}

func (t *Tcell) Draw(f *Frame) error {
	t.screen.Clear()
	for y, line := range f.Lines {
		for x, c := range line {
			t.screen.SetContent(x, y, rune(c.Ch), nil, tcellStyle(c))
		}
	}
	t.screen.ShowCursor(f.Cursor.Col, f.Cursor.Row)
	t.screen.Show()
	return nil
}

func tcellStyle(c types.Cell) tcell.Style {
	style := tcell.StyleDefault
	if c.Reverse {
		return style.Reverse(true)
	}
	if c.Class == types.HighlightNormal {
		return style
	}
	return style.Foreground(tcell.PaletteColor(c.Class.Color() - 30))
}

func (t *Tcell) ReadKey() (types.Key, error) {
	switch ev := t.screen.PollEvent().(type) {
	case *tcell.EventKey:
		return tcellKey(ev), nil
	case *tcell.EventResize:
		t.screen.Sync()
		return types.KeyResize, nil
	case *tcell.EventError:
		return types.KeyNone, ev
	case nil:
		// the screen was finalized
		return types.KeyNone, errScreenClosed
	default:
		return types.KeyNone, nil
	}
}

func tcellKey(ev *tcell.EventKey) types.Key {
	switch ev.Key() {
	case tcell.KeyRune:
		if r := ev.Rune(); r < 128 {
			return types.Key(r)
		}
		return types.KeyNone
	case tcell.KeyUp:
		return types.KeyArrowUp
	case tcell.KeyDown:
		return types.KeyArrowDown
	case tcell.KeyLeft:
		return types.KeyArrowLeft
	case tcell.KeyRight:
		return types.KeyArrowRight
	case tcell.KeyDelete:
		return types.KeyDelete
	case tcell.KeyHome:
		return types.KeyHome
	case tcell.KeyEnd:
		return types.KeyEnd
	case tcell.KeyPgUp:
		return types.KeyPgup
	case tcell.KeyPgDn:
		return types.KeyPgdn
	}
	// control keys are their ASCII codes
	if k := ev.Key(); k <= tcell.KeyBackspace2 {
		return types.Key(k)
	}
	return types.KeyNone
}

// Wake makes a blocked ReadKey return KeyNone.
func (t *Tcell) Wake() {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

func (t *Tcell) Close() error {
	t.screen.Fini()
	return nil
}
