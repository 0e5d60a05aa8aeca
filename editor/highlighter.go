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
package editor

import (
	"bytes"
	"strings"

	"github.com/timburks/kilo/types"
)

const separators = ",.()+-/*=~%<>[];"

func isSeparator(c byte) bool {
	return c == 0 || c == ' ' || (c >= '\t' && c <= '\r') || strings.IndexByte(separators, c) >= 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

type keyword struct {
	text  []byte
	class types.Highlight
}

// The Highlighter classifies the rendered bytes of rows for a Syntax.
type Highlighter struct {
	syntax   *Syntax
	scs      []byte
	mcs      []byte
	mce      []byte
	keywords []keyword
}

// NewHighlighter returns a highlighter for s. A nil syntax classifies
// everything as normal text.
func NewHighlighter(s *Syntax) *Highlighter {
	h := &Highlighter{syntax: s}
	if s == nil {
		return h
	}
	h.scs = []byte(s.SingleLineComment)
	h.mcs = []byte(s.BlockCommentStart)
	h.mce = []byte(s.BlockCommentEnd)
	for _, k := range s.Keywords1 {
		h.keywords = append(h.keywords, keyword{text: []byte(k), class: types.HighlightKeyword1})
	}
	for _, k := range s.Keywords2 {
		h.keywords = append(h.keywords, keyword{text: []byte(k), class: types.HighlightKeyword2})
	}
	return h
}

func (h *Highlighter) Syntax() *Syntax {
	return h.syntax
}

// keywordAt returns the longest keyword starting at i and followed by
// a separator or the end of the row.
func (h *Highlighter) keywordAt(render []byte, i int) (int, types.Highlight) {
	length, class := 0, types.HighlightNormal
	for _, k := range h.keywords {
		n := len(k.text)
		if n <= length || !bytes.HasPrefix(render[i:], k.text) {
			continue
		}
		if i+n < len(render) && !isSeparator(render[i+n]) {
			continue
		}
		length, class = n, k.class
	}
	return length, class
}

// Highlight classifies the row, starting inside a block comment if
// inComment is set. It returns true if the row's open comment state
// changed, which means the following row must be highlighted again.
func (h *Highlighter) Highlight(r *Row, inComment bool) bool {
	hl := r.hl
	for i := range hl {
		hl[i] = types.HighlightNormal
	}
	s := h.syntax
	if s == nil {
		changed := r.openComment
		r.openComment = false
		return changed
	}

	render := r.render
	prevSep := true
	var inString byte

	i := 0
	for i < len(render) {
		c := render[i]
		prevHl := types.HighlightNormal
		if i > 0 {
			prevHl = hl[i-1]
		}

		if len(h.scs) > 0 && inString == 0 && !inComment {
			if bytes.HasPrefix(render[i:], h.scs) {
				fill(hl[i:], types.HighlightComment)
				break
			}
		}

		if len(h.mcs) > 0 && len(h.mce) > 0 && inString == 0 {
			if inComment {
				hl[i] = types.HighlightMLComment
				if bytes.HasPrefix(render[i:], h.mce) {
					fill(hl[i:i+len(h.mce)], types.HighlightMLComment)
					i += len(h.mce)
					inComment = false
					prevSep = true
					continue
				}
				i++
				continue
			} else if bytes.HasPrefix(render[i:], h.mcs) {
				fill(hl[i:i+len(h.mcs)], types.HighlightMLComment)
				i += len(h.mcs)
				inComment = true
				continue
			}
		}

		if s.Flags&HighlightStrings != 0 {
			if inString != 0 {
				hl[i] = types.HighlightString
				if c == '\\' && i+1 < len(render) {
					hl[i+1] = types.HighlightString
					i += 2
					continue
				}
				if c == inString {
					inString = 0
				}
				i++
				prevSep = true
				continue
			} else if c == '"' || c == '\'' {
				inString = c
				hl[i] = types.HighlightString
				i++
				continue
			}
		}

		if s.Flags&HighlightNumbers != 0 {
			if (isDigit(c) && (prevSep || prevHl == types.HighlightNumber)) ||
				(c == '.' && prevHl == types.HighlightNumber) {
				hl[i] = types.HighlightNumber
				i++
				prevSep = false
				continue
			}
		}

		if prevSep {
			if n, class := h.keywordAt(render, i); n > 0 {
				fill(hl[i:i+n], class)
				i += n
				prevSep = false
				continue
			}
		}

		prevSep = isSeparator(c)
		i++
	}

	changed := r.openComment != inComment
	r.openComment = inComment
	return changed
}

func fill(hl []types.Highlight, class types.Highlight) {
	for i := range hl {
		hl[i] = class
	}
}
