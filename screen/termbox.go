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
	"github.com/nsf/termbox-go"

	"github.com/timburks/kilo/types"
)

// Termbox draws frames with termbox.
type Termbox struct{}

func OpenTermbox() (*Termbox, error) {
	if err := termbox.Init(); err != nil {
		return nil, err
	}
	termbox.SetInputMode(termbox.InputEsc)
	return &Termbox{}, nil
}

func (t *Termbox) Size() (types.Size, error) {
	cols, rows := termbox.Size()
	return types.Size{Rows: rows, Cols: cols}, nil
}

func (t *Termbox) Draw(f *Frame) error {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	for y, line := range f.Lines {
		for x, c := range line {
			termbox.SetCell(x, y, rune(c.Ch), termboxColor(c), termbox.ColorDefault)
		}
	}
	termbox.SetCursor(f.Cursor.Col, f.Cursor.Row)
	return termbox.Flush()
}

func termboxColor(c types.Cell) termbox.Attribute {
	if c.Reverse {
		return termbox.ColorDefault | termbox.AttrReverse
	}
	if c.Class == types.HighlightNormal {
		return termbox.ColorDefault
	}
	// termbox numbers the eight ANSI colors from 1
	return termbox.Attribute(c.Class.Color() - 30 + 1)
}

func (t *Termbox) ReadKey() (types.Key, error) {
	event := termbox.PollEvent()
	switch event.Type {
	case termbox.EventKey:
		return termboxKey(event), nil
	case termbox.EventResize:
		termbox.Flush()
		return types.KeyResize, nil
	case termbox.EventError:
		return types.KeyNone, event.Err
	default:
		return types.KeyNone, nil
	}
}

func termboxKey(event termbox.Event) types.Key {
	if event.Ch != 0 {
		if event.Ch > 127 {
			return types.KeyNone
		}
		return types.Key(event.Ch)
	}
	switch event.Key {
	case termbox.KeyArrowDown:
		return types.KeyArrowDown
	case termbox.KeyArrowLeft:
		return types.KeyArrowLeft
	case termbox.KeyArrowRight:
		return types.KeyArrowRight
	case termbox.KeyArrowUp:
		return types.KeyArrowUp
	case termbox.KeyDelete:
		return types.KeyDelete
	case termbox.KeyHome:
		return types.KeyHome
	case termbox.KeyEnd:
		return types.KeyEnd
	case termbox.KeyPgup:
		return types.KeyPgup
	case termbox.KeyPgdn:
		return types.KeyPgdn
	}
	// control keys are their ASCII codes
	if event.Key <= termbox.KeyBackspace2 {
		return types.Key(event.Key)
	}
	return types.KeyNone
}

// Wake makes a blocked ReadKey return KeyNone.
func (t *Termbox) Wake() {
	termbox.Interrupt()
}

func (t *Termbox) Close() error {
	termbox.Close()
	return nil
}
