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
package commander

import (
	"errors"
	"fmt"

	"github.com/timburks/kilo/editor"
	"github.com/timburks/kilo/logging"
	"github.com/timburks/kilo/types"
)

// HelpMessage is shown in the message bar when the editor starts.
const HelpMessage = "HELP: Ctrl-S = save | Ctrl-Q = quit | Ctrl-F = find"

// DefaultQuitTimes is the number of extra Ctrl-Q presses needed to quit
// with unsaved changes.
const DefaultQuitTimes = 3

var (
	// ErrQuit is returned by ProcessKey when the user asked to quit.
	ErrQuit = errors.New("quit")
	// ErrPromptCanceled is returned by Prompt when the user pressed Esc.
	ErrPromptCanceled = errors.New("prompt canceled")
)

// A Display shows the editor and reads keys from the user.
type Display interface {
	Refresh(e *editor.Editor) error
	ReadKey() (types.Key, error)
}

// A Notifier reports changes to the open file made by other programs.
type Notifier interface {
	// Poll returns a pending notice without blocking.
	Poll() (string, bool)
	// Saved is called before the editor writes path itself.
	Saved(path string)
}

// The Commander converts user input into commands for the Editor.
type Commander struct {
	editor    *editor.Editor
	display   Display
	notifier  Notifier
	quitTimes int
	quitCount int // Ctrl-Q presses still needed to quit a modified file
}

func NewCommander(e *editor.Editor, d Display) *Commander {
	e.SetStatusMessage(HelpMessage)
	return &Commander{
		editor:    e,
		display:   d,
		quitTimes: DefaultQuitTimes,
		quitCount: DefaultQuitTimes,
	}
}

// SetQuitTimes sets the number of extra Ctrl-Q presses needed to quit
// with unsaved changes.
func (c *Commander) SetQuitTimes(n int) {
	if n < 0 {
		n = 0
	}
	c.quitTimes = n
	c.quitCount = n
}

// Watch shows the notices of n on the status line.
func (c *Commander) Watch(n Notifier) {
	c.notifier = n
}

func (c *Commander) poll() bool {
	if c.notifier == nil {
		return false
	}
	notice, ok := c.notifier.Poll()
	if !ok {
		return false
	}
	logging.Info(logging.CatWatch, "notice", "message", notice)
	c.editor.SetStatusMessage("%s", notice)
	return true
}

// Run draws the editor and processes keys until the user quits.
func (c *Commander) Run() error {
	redraw := true
	for {
		if redraw {
			if err := c.display.Refresh(c.editor); err != nil {
				return err
			}
		}
		k, err := c.display.ReadKey()
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}
		switch k {
		case types.KeyNone:
			redraw = c.poll()
			continue
		case types.KeyResize:
			redraw = true
			continue
		}
		redraw = true
		err = c.ProcessKey(k)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// ProcessKey performs the command for a key.
func (c *Commander) ProcessKey(k types.Key) error {
	e := c.editor
	switch k {
	case types.KeyEnter:
		e.InsertNewline()
	case types.KeyCtrlQ:
		if e.Buffer.Dirty() > 0 && c.quitCount > 0 {
			e.SetStatusMessage("WARNING!!! File has unsaved changes. Press Ctrl-Q %d more times to quit.", c.quitCount)
			c.quitCount--
			return nil
		}
		return ErrQuit
	case types.KeyCtrlS:
		if err := c.Save(); err != nil {
			return err
		}
	case types.KeyCtrlF:
		if err := c.Find(); err != nil {
			return err
		}
	case types.KeyHome:
		e.MoveToBeginningOfLine()
	case types.KeyEnd:
		e.MoveToEndOfLine()
	case types.KeyBackspace, types.KeyCtrlH:
		e.DeleteChar()
	case types.KeyDelete:
		e.DeleteForward()
	case types.KeyPgup:
		e.PageUp()
	case types.KeyPgdn:
		e.PageDown()
	case types.KeyArrowUp, types.KeyArrowDown, types.KeyArrowLeft, types.KeyArrowRight:
		e.MoveCursor(k)
	case types.KeyCtrlL, types.KeyEsc:
	default:
		if k >= 0 && k <= 0xff {
			e.InsertChar(byte(k))
		}
	}
	c.quitCount = c.quitTimes
	return nil
}

// Prompt reads a line of input in the message bar. format is shown with
// the input so far in place of its %s. h, if not nil, sees every key.
func (c *Commander) Prompt(format string, h types.PromptHandler) (string, error) {
	var input []byte
	redraw := true
	for {
		if redraw {
			c.editor.SetStatusMessage(format, input)
			if err := c.display.Refresh(c.editor); err != nil {
				return "", err
			}
		}
		k, err := c.display.ReadKey()
		if err != nil {
			return "", fmt.Errorf("read key: %w", err)
		}
		redraw = k != types.KeyNone
		if k == types.KeyNone || k == types.KeyResize {
			continue
		}

		done, canceled := false, false
		switch {
		case k == types.KeyBackspace || k == types.KeyCtrlH || k == types.KeyDelete:
			if len(input) > 0 {
				input = input[:len(input)-1]
			}
		case k == types.KeyEsc:
			canceled = true
		case k == types.KeyEnter:
			done = len(input) > 0
		case k.IsPrintable():
			input = append(input, byte(k))
		}
		if h != nil {
			switch h.OnKey(string(input), k) {
			case types.PromptAccept:
				done = true
			case types.PromptCancel:
				canceled = true
			}
		}
		if canceled {
			c.editor.SetStatusMessage("")
			return "", ErrPromptCanceled
		}
		if done {
			c.editor.SetStatusMessage("")
			return string(input), nil
		}
	}
}

// Save writes the buffer, asking for a file name if it has none.
// Write failures are shown on the status line.
func (c *Commander) Save() error {
	e := c.editor
	if e.Buffer.FileName() == "" {
		name, err := c.Prompt("Save as: %s (ESC to cancel)", nil)
		if errors.Is(err, ErrPromptCanceled) {
			e.SetStatusMessage("Save aborted")
			return nil
		}
		if err != nil {
			return err
		}
		e.Buffer.SetFileName(name)
	}
	if c.notifier != nil {
		c.notifier.Saved(e.Buffer.FileName())
	}
	e.Save()
	return nil
}

// Find runs an incremental search.
func (c *Commander) Find() error {
	_, err := c.Prompt("Search: %s (Use ESC/Arrows/Enter)", editor.NewSearch(c.editor))
	if errors.Is(err, ErrPromptCanceled) {
		return nil
	}
	return err
}
