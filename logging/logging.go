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

// Package logging writes leveled debug logs to a file.
// The terminal belongs to the editor, so nothing is ever logged to it.
// Until Init is called every logging call is dropped.
package logging

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Category groups related log messages.
type Category string

const (
	CatTerm   Category = "term"
	CatEditor Category = "editor"
	CatSearch Category = "search"
	CatConfig Category = "config"
	CatWatch  Category = "watch"
	CatLisp   Category = "lisp"
)

var (
	mu       sync.Mutex
	logger   *log.Logger
	minLevel = LevelDebug
)

// Init opens path for appending and starts logging to it.
// It returns a function that closes the log file.
func Init(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	mu.Lock()
	logger = log.New(f, "", log.LstdFlags)
	mu.Unlock()
	return func() {
		mu.Lock()
		logger = nil
		mu.Unlock()
		f.Close()
	}, nil
}

// SetMinLevel drops messages below level.
func SetMinLevel(level Level) {
	mu.Lock()
	minLevel = level
	mu.Unlock()
}

func Debug(cat Category, msg string, fields ...any) {
	output(LevelDebug, cat, msg, fields...)
}

func Info(cat Category, msg string, fields ...any) {
	output(LevelInfo, cat, msg, fields...)
}

func Warn(cat Category, msg string, fields ...any) {
	output(LevelWarn, cat, msg, fields...)
}

func Error(cat Category, msg string, fields ...any) {
	output(LevelError, cat, msg, fields...)
}

// ErrorErr logs msg at error level with err attached as a field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	output(LevelError, cat, msg, fields...)
}

func output(level Level, cat Category, msg string, fields ...any) {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil || level < minLevel {
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] [%s] %s", level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&b, " %v=<missing>", fields[len(fields)-1])
	}
	logger.Output(3, b.String())
}
