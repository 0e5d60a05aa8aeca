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
	"fmt"
	"os"

	"github.com/steelseries/golisp"

	"github.com/timburks/kilo/editor"
	"github.com/timburks/kilo/logging"
	"github.com/timburks/kilo/types"
)

// A Script runs lisp programs against an editor.
// Primitives are global in golisp, so the most recently created Script
// receives all calls.
type Script struct {
	editor *editor.Editor
}

func NewScript(e *editor.Editor) *Script {
	s := &Script{editor: e}
	s.register()
	return s
}

func (s *Script) register() {
	golisp.MakePrimitiveFunction("insert-text", "1", s.insertText)
	golisp.MakePrimitiveFunction("insert-newline", "0", s.insertNewline)
	golisp.MakePrimitiveFunction("delete-char", "0", s.deleteChar)
	golisp.MakePrimitiveFunction("move-up", "1", s.mover(types.KeyArrowUp))
	golisp.MakePrimitiveFunction("move-down", "1", s.mover(types.KeyArrowDown))
	golisp.MakePrimitiveFunction("move-left", "1", s.mover(types.KeyArrowLeft))
	golisp.MakePrimitiveFunction("move-right", "1", s.mover(types.KeyArrowRight))
	golisp.MakePrimitiveFunction("goto", "2", s.gotoPoint)
	golisp.MakePrimitiveFunction("find", "1", s.find)
	golisp.MakePrimitiveFunction("row-count", "0", s.rowCount)
	golisp.MakePrimitiveFunction("row-text", "1", s.rowText)
	golisp.MakePrimitiveFunction("cursor-row", "0", s.cursorRow)
	golisp.MakePrimitiveFunction("cursor-col", "0", s.cursorCol)
	golisp.MakePrimitiveFunction("save", "0", s.save)
}

func intArg(name string, val *golisp.Data) (int, error) {
	if !golisp.IntegerP(val) {
		return 0, fmt.Errorf("%s requires an integer argument", name)
	}
	return int(golisp.IntegerValue(val)), nil
}

func stringArg(name string, val *golisp.Data) (string, error) {
	if !golisp.StringP(val) {
		return "", fmt.Errorf("%s requires a string argument", name)
	}
	return golisp.StringValue(val), nil
}

func (s *Script) insertText(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	text, err := stringArg("insert-text", golisp.Car(args))
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			s.editor.InsertNewline()
		} else {
			s.editor.InsertChar(text[i])
		}
	}
	return nil, nil
}

func (s *Script) insertNewline(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	s.editor.InsertNewline()
	return nil, nil
}

func (s *Script) deleteChar(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	s.editor.DeleteChar()
	return nil, nil
}

func (s *Script) mover(k types.Key) func(*golisp.Data, *golisp.SymbolTableFrame) (*golisp.Data, error) {
	return func(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
		n, err := intArg("move", golisp.Car(args))
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			s.editor.MoveCursor(k)
		}
		return nil, nil
	}
}

func (s *Script) gotoPoint(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	row, err := intArg("goto", golisp.Car(args))
	if err != nil {
		return nil, err
	}
	col, err := intArg("goto", golisp.Cadr(args))
	if err != nil {
		return nil, err
	}
	b := s.editor.Buffer
	row = max(0, min(row, b.RowCount()))
	length := 0
	if r := b.Row(row); r != nil {
		length = r.Size()
	}
	col = max(0, min(col, length))
	s.editor.Cursor = types.Point{Row: row, Col: col}
	return nil, nil
}

func (s *Script) find(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	query, err := stringArg("find", golisp.Car(args))
	if err != nil {
		return nil, err
	}
	return golisp.IntegerWithValue(int64(s.editor.Find(query))), nil
}

func (s *Script) rowCount(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	return golisp.IntegerWithValue(int64(s.editor.Buffer.RowCount())), nil
}

func (s *Script) rowText(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	n, err := intArg("row-text", golisp.Car(args))
	if err != nil {
		return nil, err
	}
	r := s.editor.Buffer.Row(n)
	if r == nil {
		return nil, fmt.Errorf("row-text: no row %d", n)
	}
	return golisp.StringWithValue(r.String()), nil
}

func (s *Script) cursorRow(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	return golisp.IntegerWithValue(int64(s.editor.Cursor.Row)), nil
}

func (s *Script) cursorCol(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	return golisp.IntegerWithValue(int64(s.editor.Cursor.Col)), nil
}

func (s *Script) save(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	n, err := s.editor.Save()
	if err != nil {
		return nil, err
	}
	return golisp.IntegerWithValue(int64(n)), nil
}

// Eval evaluates the expressions in src and returns the printed value
// of the last one.
func (s *Script) Eval(src string) (string, error) {
	value, err := golisp.ParseAndEval("(begin " + src + "\n)")
	if err != nil {
		logging.ErrorErr(logging.CatLisp, "eval failed", err)
		return "", err
	}
	result := golisp.String(value)
	logging.Debug(logging.CatLisp, "eval", "result", result)
	return result, nil
}

// EvalFile evaluates the program in a file.
func (s *Script) EvalFile(path string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return s.Eval(string(src))
}
