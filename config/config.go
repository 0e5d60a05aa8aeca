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
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/timburks/kilo/logging"
)

// Backends lists the terminal backends that can be configured.
var Backends = []string{"vt100", "termbox", "tcell"}

// Config holds the editor settings.
type Config struct {
	Backend       string        `mapstructure:"backend"`        // vt100 (default), termbox or tcell
	StatusTimeout time.Duration `mapstructure:"status_timeout"` // how long status messages stay visible
	QuitTimes     int           `mapstructure:"quit_times"`     // extra Ctrl-Q presses to quit with unsaved changes
	Debug         bool          `mapstructure:"debug"`          // write debug output to LogFile
	LogFile       string        `mapstructure:"log_file"`
	Watch         bool          `mapstructure:"watch"` // report changes made to the file by other programs
}

func Defaults() Config {
	return Config{
		Backend:       "vt100",
		StatusTimeout: 5 * time.Second,
		QuitTimes:     3,
		Debug:         false,
		LogFile:       "~/.kilolog",
		Watch:         true,
	}
}

// DefaultPath returns the path of the user's config file.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "kilo", "config.yaml")
}

func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("backend", d.Backend)
	v.SetDefault("status_timeout", d.StatusTimeout)
	v.SetDefault("quit_times", d.QuitTimes)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("watch", d.Watch)
}

// Load reads the config file at path, or the default config file if
// path is empty, into v and decodes the result. A missing default
// config file is not an error.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix("KILO")
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		logging.Debug(logging.CatConfig, "no config file")
	} else {
		logging.Info(logging.CatConfig, "loaded config", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.LogFile = ExpandHome(cfg.LogFile)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings for values the editor can't use.
func (c Config) Validate() error {
	valid := false
	for _, b := range Backends {
		if c.Backend == b {
			valid = true
		}
	}
	if !valid {
		return fmt.Errorf("invalid backend %q: must be one of %s", c.Backend, strings.Join(Backends, ", "))
	}
	if c.StatusTimeout <= 0 {
		return fmt.Errorf("invalid status_timeout %s: must be positive", c.StatusTimeout)
	}
	if c.QuitTimes < 0 {
		return fmt.Errorf("invalid quit_times %d: must not be negative", c.QuitTimes)
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// file is the layout of the config file.
type file struct {
	Backend       string `yaml:"backend"`
	StatusTimeout string `yaml:"status_timeout"`
	QuitTimes     int    `yaml:"quit_times"`
	Debug         bool   `yaml:"debug"`
	LogFile       string `yaml:"log_file"`
	Watch         bool   `yaml:"watch"`
}

// WriteDefault writes a config file containing the default settings.
func WriteDefault(path string) error {
	d := Defaults()
	out, err := yaml.Marshal(file{
		Backend:       d.Backend,
		StatusTimeout: d.StatusTimeout.String(),
		QuitTimes:     d.QuitTimes,
		Debug:         d.Debug,
		LogFile:       d.LogFile,
		Watch:         d.Watch,
	})
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		logging.ErrorErr(logging.CatConfig, "failed to create config directory", err, "path", path)
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, out, 0o600); err != nil {
		logging.ErrorErr(logging.CatConfig, "failed to write config file", err, "path", path)
		return fmt.Errorf("writing config file: %w", err)
	}
	logging.Info(logging.CatConfig, "created default config", "path", path)
	return nil
}
