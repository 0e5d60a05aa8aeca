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
package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/timburks/kilo/commander"
	"github.com/timburks/kilo/config"
	"github.com/timburks/kilo/editor"
	"github.com/timburks/kilo/logging"
	"github.com/timburks/kilo/screen"
	"github.com/timburks/kilo/watcher"
)

// NewRootCommand returns the kilo command.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	var cfgFile, script string

	cmd := &cobra.Command{
		Use:           "kilo [file]",
		Short:         "A small terminal text editor",
		Version:       screen.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, cfgFile)
			if err != nil {
				return err
			}
			return run(cfg, args, script, cmd.OutOrStdout())
		},
	}

	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/kilo/config.yaml)")
	cmd.Flags().StringVarP(&script, "eval", "e", "",
		"run a lisp program against the file and exit")
	cmd.Flags().StringP("backend", "b", "", "terminal backend: vt100, termbox or tcell")
	cmd.Flags().Bool("debug", false, "write a debug log")
	_ = v.BindPFlag("backend", cmd.Flags().Lookup("backend"))
	_ = v.BindPFlag("debug", cmd.Flags().Lookup("debug"))
	return cmd
}

// loadConfig reads the settings and creates the default config file
// on first run.
func loadConfig(v *viper.Viper, path string) (config.Config, error) {
	firstRun := false
	if path == "" {
		_, err := os.Stat(config.DefaultPath())
		firstRun = errors.Is(err, fs.ErrNotExist)
	}
	cfg, err := config.Load(v, path)
	if err != nil {
		return cfg, err
	}
	if firstRun {
		// without a config file the defaults still apply
		_ = config.WriteDefault(config.DefaultPath())
	}
	return cfg, nil
}

func run(cfg config.Config, args []string, script string, out io.Writer) error {
	if cfg.Debug {
		closeLog, err := logging.Init(cfg.LogFile)
		if err != nil {
			return err
		}
		defer closeLog()
	}

	e := editor.NewEditor()
	e.StatusTimeout = cfg.StatusTimeout
	if len(args) > 0 {
		if err := e.Open(args[0]); err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
	}

	if script != "" {
		result, err := commander.NewScript(e).EvalFile(script)
		if err != nil {
			return fmt.Errorf("running %s: %w", script, err)
		}
		fmt.Fprintln(out, result)
		return nil
	}

	backend, err := screen.Open(cfg.Backend)
	if err != nil {
		return err
	}
	// deferred calls still run on a panic, so the terminal is restored
	// before the trace is printed
	s := screen.NewScreen(backend)
	defer s.Close()

	c := commander.NewCommander(e, s)
	c.SetQuitTimes(cfg.QuitTimes)
	if cfg.Watch && e.Buffer.FileName() != "" {
		wc := watcher.DefaultConfig(e.Buffer.FileName())
		wc.Wake = s.Wake
		w, err := watcher.New(wc)
		if err != nil {
			logging.Warn(logging.CatWatch, "not watching file", "error", err)
		} else {
			defer w.Close()
			c.Watch(w)
		}
	}
	return c.Run()
}

// Execute runs the kilo command with the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}
