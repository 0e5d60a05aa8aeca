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
	"strings"
)

// Syntax flags
const (
	HighlightNumbers = 1 << iota
	HighlightStrings
)

// A Syntax describes how to highlight one kind of file.
type Syntax struct {
	FileType string
	// Entries starting with "." match the file extension exactly,
	// others match anywhere in the file name.
	FileMatch         []string
	Keywords1         []string // control flow
	Keywords2         []string // types
	SingleLineComment string
	BlockCommentStart string
	BlockCommentEnd   string
	Flags             int
}

// Syntaxes lists the built-in syntax definitions in match order.
var Syntaxes = []*Syntax{
	{
		FileType:  "c",
		FileMatch: []string{".c", ".h", ".cpp"},
		Keywords1: []string{
			"switch", "if", "while", "for", "break", "continue", "return", "else",
			"struct", "union", "typedef", "static", "enum", "class", "case",
		},
		Keywords2: []string{
			"int", "long", "double", "float", "char", "unsigned", "signed", "void",
		},
		SingleLineComment: "//",
		BlockCommentStart: "/*",
		BlockCommentEnd:   "*/",
		Flags:             HighlightNumbers | HighlightStrings,
	},
	{
		FileType:  "go",
		FileMatch: []string{".go"},
		Keywords1: []string{
			"break", "default", "func", "interface", "select", "case", "defer",
			"go", "map", "struct", "chan", "else", "goto", "package", "switch",
			"const", "fallthrough", "if", "range", "type", "continue", "for",
			"import", "return", "var",
		},
		Keywords2: []string{
			"bool", "byte", "complex64", "complex128", "error", "float32",
			"float64", "int", "int8", "int16", "int32", "int64", "rune",
			"string", "uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
			"true", "false", "nil", "iota",
		},
		SingleLineComment: "//",
		BlockCommentStart: "/*",
		BlockCommentEnd:   "*/",
		Flags:             HighlightNumbers | HighlightStrings,
	},
	{
		FileType:  "python",
		FileMatch: []string{".py"},
		Keywords1: []string{
			"and", "as", "assert", "break", "class", "continue", "def", "del",
			"elif", "else", "except", "finally", "for", "from", "global", "if",
			"import", "in", "is", "lambda", "nonlocal", "not", "or", "pass",
			"raise", "return", "try", "while", "with", "yield",
		},
		Keywords2: []string{
			"True", "False", "None", "int", "float", "str", "list", "dict",
			"tuple", "set", "bool", "bytes",
		},
		SingleLineComment: "#",
		Flags:             HighlightNumbers | HighlightStrings,
	},
	{
		FileType:  "sh",
		FileMatch: []string{".sh", ".bash", "bashrc", "profile"},
		Keywords1: []string{
			"if", "then", "else", "elif", "fi", "case", "esac", "for", "while",
			"until", "do", "done", "in", "function", "return",
		},
		Keywords2: []string{
			"echo", "export", "local", "readonly", "set", "unset", "shift",
		},
		SingleLineComment: "#",
		Flags:             HighlightStrings,
	},
}

// SelectSyntax returns the first syntax with a matcher for filename,
// or nil.
func SelectSyntax(filename string) *Syntax {
	if filename == "" {
		return nil
	}
	var ext string
	if i := strings.LastIndexByte(filename, '.'); i >= 0 {
		ext = filename[i:]
	}
	for _, s := range Syntaxes {
		for _, m := range s.FileMatch {
			isExt := strings.HasPrefix(m, ".")
			if (isExt && ext == m) || (!isExt && strings.Contains(filename, m)) {
				return s
			}
		}
	}
	return nil
}
