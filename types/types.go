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
package types

type Point struct {
	Row int
	Col int
}

type Size struct {
	Rows int
	Cols int
}

// A Key is a decoded keypress.
// Values 0-255 are literal bytes; special keys are numbered from 1000.
type Key int32

// KeyNone is returned when no key arrived before the read timeout.
const KeyNone Key = -1

// KeyResize is returned when the terminal changed size.
const KeyResize Key = -2

// Literal keys with special meaning
const (
	KeyCtrlF     Key = 0x06
	KeyCtrlH     Key = 0x08
	KeyTab       Key = 0x09
	KeyCtrlL     Key = 0x0c
	KeyEnter     Key = 0x0d
	KeyCtrlQ     Key = 0x11
	KeyCtrlS     Key = 0x13
	KeyEsc       Key = 0x1b
	KeySpace     Key = 0x20
	KeyBackspace Key = 0x7f
)

// Keys decoded from escape sequences
const (
	KeyArrowLeft Key = iota + 1000
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyDelete
	KeyHome
	KeyEnd
	KeyPgup
	KeyPgdn
)

// Ctrl returns the key produced by pressing c with the control key.
func Ctrl(c byte) Key {
	return Key(c & 0x1f)
}

// IsPrintable reports whether k is a printable ASCII character.
func (k Key) IsPrintable() bool {
	return k >= 32 && k < 127
}

// A Highlight classifies one rendered byte of a row.
type Highlight uint8

// Highlight classes
const (
	HighlightNormal Highlight = iota
	HighlightComment
	HighlightMLComment
	HighlightKeyword1
	HighlightKeyword2
	HighlightString
	HighlightNumber
	HighlightMatch
)

// Color returns the ANSI foreground color code for a highlight class.
func (h Highlight) Color() int {
	switch h {
	case HighlightComment, HighlightMLComment:
		return 36
	case HighlightKeyword1:
		return 33
	case HighlightKeyword2:
		return 32
	case HighlightString:
		return 35
	case HighlightNumber:
		return 31
	case HighlightMatch:
		return 34
	default:
		return 37
	}
}

// A Cell is one character position of a rendered frame.
type Cell struct {
	Ch      byte
	Class   Highlight
	Reverse bool
}

// PromptSignal tells a prompt loop whether to keep reading input.
type PromptSignal int

const (
	PromptContinue PromptSignal = iota
	PromptAccept
	PromptCancel
)

// A PromptHandler observes every keystroke of a prompt.
type PromptHandler interface {
	OnKey(query string, k Key) PromptSignal
}
