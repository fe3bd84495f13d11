// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package config loads key bindings, package tool commands and log settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
)

// Configuration errors.
var (
	ErrInvalidKey   = errors.New("key binding must be a single character")
	ErrDuplicateKey = errors.New("key bound to more than one action")
	ErrInvalidLevel = errors.New("unknown log level")
)

// Keys maps actions to single characters. Arrow keys and ctrl+c are always
// bound in addition to these.
type Keys struct {
	Quit               string `toml:"quit"`
	Down               string `toml:"down"`
	Up                 string `toml:"up"`
	Left               string `toml:"left"`
	Right              string `toml:"right"`
	NextPage           string `toml:"next_page"`
	PrevPage           string `toml:"prev_page"`
	Select             string `toml:"select"`
	Search             string `toml:"search"`
	Remove             string `toml:"remove"`
	Update             string `toml:"update"`
	OnlyUpdatable      string `toml:"only_updatable"`
	SelectAllUpdatable string `toml:"select_all_updatable"`
	Help               string `toml:"help"`
}

// Commands configures the package tool invocation of batch mutations.
type Commands struct {
	Privilege []string `toml:"privilege"`
	Tool      string   `toml:"tool"`
	ExtraArgs []string `toml:"extra_args"`
}

// Log configures the log file.
type Log struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Config is the effective configuration of a session.
type Config struct {
	Keys     Keys     `toml:"keys"`
	Commands Commands `toml:"commands"`
	Log      Log      `toml:"log"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Keys: Keys{
			Quit:               "q",
			Down:               "j",
			Up:                 "m",
			Left:               "h",
			Right:              "l",
			NextPage:           "n",
			PrevPage:           "p",
			Select:             " ",
			Search:             "/",
			Remove:             "r",
			Update:             "u",
			OnlyUpdatable:      "o",
			SelectAllUpdatable: "A",
			Help:               "?",
		},
		Commands: Commands{
			Privilege: []string{"sudo"},
			Tool:      "apt-get",
		},
		Log: Log{
			File:  DefaultLogPath(),
			Level: "info",
		},
	}
}

// Load builds the effective configuration: defaults, then the TOML file at
// tomlPath, then the legacy key file at legacyPath. Missing files are not
// an error; either path may be empty to skip it.
func Load(tomlPath, legacyPath string) (Config, error) {
	cfg := Default()

	if tomlPath != "" {
		if err := mergeTOML(&cfg, tomlPath); err != nil {
			return cfg, err
		}
	}

	if legacyPath != "" {
		if err := mergeLegacy(&cfg, legacyPath); err != nil {
			return cfg, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func mergeTOML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) // #nosec G304 - user configuration path
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// Unmarshal over the defaults so omitted keys keep their values.
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.Keys = cfg.Keys.normalized()

	return nil
}

func mergeLegacy(cfg *Config, path string) error {
	data, err := os.ReadFile(path) // #nosec G304 - user configuration path
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to read key file %s: %w", path, err)
	}

	cfg.Keys = ApplyLegacy(cfg.Keys, string(data))

	return nil
}

// ApplyLegacy applies "action=c" lines of the legacy key file to keys. Only
// the first character of a value is used. Unknown actions and lines
// without "=" are ignored. The legacy file has no help action, so a
// character it binds elsewhere takes the help key away.
func ApplyLegacy(keys Keys, content string) Keys {
	fields := keys.fields()
	helpSet := false

	for line := range strings.Lines(content) {
		line = strings.TrimRight(line, "\r\n")

		name, value, found := strings.Cut(line, "=")
		if !found || value == "" {
			continue
		}

		field, ok := fields[name]
		if !ok {
			continue
		}

		r, _ := utf8.DecodeRuneInString(value)
		*field = string(r)
		helpSet = helpSet || name == "help"
	}

	if !helpSet && keys.Help != "" {
		for _, b := range keys.Bindings() {
			if b.Action != "help" && b.Key == keys.Help {
				keys.Help = ""

				break
			}
		}
	}

	return keys
}

// Validate checks that every binding is one character and no character
// is bound twice. Help may be left unbound.
func (c Config) Validate() error {
	seen := make(map[string]string)

	for _, binding := range c.Keys.Bindings() {
		if binding.Action == "help" && binding.Key == "" {
			continue
		}

		if utf8.RuneCountInString(binding.Key) != 1 {
			return fmt.Errorf("%w: %s = %q", ErrInvalidKey, binding.Action, binding.Key)
		}

		if other, dup := seen[binding.Key]; dup {
			return fmt.Errorf("%w: %q is bound to %s and %s", ErrDuplicateKey, binding.Key, other, binding.Action)
		}

		seen[binding.Key] = binding.Action
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error", "":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLevel, c.Log.Level)
	}

	return nil
}

// Binding is one action and the character bound to it.
type Binding struct {
	Action string
	Key    string
}

// Bindings lists the key bindings in menu order.
func (k Keys) Bindings() []Binding {
	return []Binding{
		{"quit", k.Quit},
		{"down", k.Down},
		{"up", k.Up},
		{"left", k.Left},
		{"right", k.Right},
		{"next_page", k.NextPage},
		{"prev_page", k.PrevPage},
		{"select", k.Select},
		{"search", k.Search},
		{"remove", k.Remove},
		{"update", k.Update},
		{"only_updatable", k.OnlyUpdatable},
		{"select_all_updatable", k.SelectAllUpdatable},
		{"help", k.Help},
	}
}

func (k *Keys) fields() map[string]*string {
	return map[string]*string{
		"quit":                 &k.Quit,
		"down":                 &k.Down,
		"up":                   &k.Up,
		"left":                 &k.Left,
		"right":                &k.Right,
		"next_page":            &k.NextPage,
		"prev_page":            &k.PrevPage,
		"select":               &k.Select,
		"search":               &k.Search,
		"remove":               &k.Remove,
		"update":               &k.Update,
		"only_updatable":       &k.OnlyUpdatable,
		"select_all_updatable": &k.SelectAllUpdatable,
		"help":                 &k.Help,
	}
}

// normalized maps the readable name "space" onto the space character.
func (k Keys) normalized() Keys {
	for _, field := range k.fields() {
		if strings.EqualFold(*field, "space") {
			*field = " "
		}
	}

	return k
}
