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
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/timburks/kilo/logging"
)

const (
	NoticeChanged = "File changed on disk"
	NoticeRemoved = "File removed from disk"
)

// Watcher reports changes made to the edited file by other programs.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debounce  time.Duration
	quiet     time.Duration
	wake      func()
	notices   chan string
	done      chan struct{}

	mu         sync.Mutex
	path       string
	quietUntil time.Time
}

type Config struct {
	Path     string
	Debounce time.Duration // events closer together than this are reported once
	Quiet    time.Duration // events this soon after Saved are ignored
	Wake     func()        // called from the watcher goroutine when a notice is ready
}

func DefaultConfig(path string) Config {
	return Config{
		Path:     path,
		Debounce: 100 * time.Millisecond,
		Quiet:    time.Second,
	}
}

// New starts watching the directory that holds cfg.Path.
func New(cfg Config) (*Watcher, error) {
	path, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", cfg.Path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}
	w := &Watcher{
		fsWatcher: fsw,
		debounce:  cfg.Debounce,
		quiet:     cfg.Quiet,
		wake:      cfg.Wake,
		notices:   make(chan string, 1),
		done:      make(chan struct{}),
		path:      path,
	}
	logging.Debug(logging.CatWatch, "watching", "path", path)
	go w.loop()
	return w, nil
}

// Poll returns the pending notice, if any, without blocking.
func (w *Watcher) Poll() (string, bool) {
	select {
	case notice := <-w.notices:
		return notice, true
	default:
		return "", false
	}
}

// Saved tells the watcher that the editor is about to write path itself.
func (w *Watcher) Saved(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.quietUntil = time.Now().Add(w.quiet)
	if abs == w.path {
		return
	}
	oldDir, newDir := filepath.Dir(w.path), filepath.Dir(abs)
	if oldDir != newDir {
		if err := w.fsWatcher.Add(newDir); err != nil {
			logging.ErrorErr(logging.CatWatch, "failed to watch directory", err, "dir", newDir)
			return
		}
		_ = w.fsWatcher.Remove(oldDir)
	}
	w.path = abs
	logging.Debug(logging.CatWatch, "watching", "path", abs)
}

func (w *Watcher) Close() error {
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		pending string
	)
	timerC := func() <-chan time.Time {
		if timer != nil {
			return timer.C
		}
		return nil
	}

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			notice := w.noticeFor(event)
			if notice == "" {
				continue
			}
			pending = notice
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-timerC():
			timer = nil
			if pending == "" {
				continue
			}
			// drop the older notice if the editor hasn't seen it yet
			select {
			case <-w.notices:
			default:
			}
			w.notices <- pending
			logging.Debug(logging.CatWatch, "notice", "message", pending)
			pending = ""
			if w.wake != nil {
				w.wake()
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			logging.ErrorErr(logging.CatWatch, "watch error", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// noticeFor returns the notice for event, or "" if it should be ignored.
func (w *Watcher) noticeFor(event fsnotify.Event) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if filepath.Clean(event.Name) != w.path {
		return ""
	}
	if time.Now().Before(w.quietUntil) {
		return ""
	}
	switch {
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		return NoticeRemoved
	case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
		return NoticeChanged
	}
	return ""
}
