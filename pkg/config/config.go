// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/walteh/hashdrop/pkg/hotkey"
	"github.com/walteh/hashdrop/pkg/settings"
	"gitlab.com/tozd/go/errors"
)

// DefaultShortcut is the accelerator bound when none is configured
const DefaultShortcut = "CommandOrControl+Alt+D"

// DefaultLogLevel is used when no log level is configured
const DefaultLogLevel = "info"

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config represents the complete configuration
type Config struct {
	API      string   `json:"api,omitempty" yaml:"api,omitempty" hcl:"api,optional"`                // Kubo RPC address, empty for the local repo
	Shortcut string   `json:"shortcut,omitempty" yaml:"shortcut,omitempty" hcl:"shortcut,optional"` // Hotkey accelerator
	Settings string   `json:"settings,omitempty" yaml:"settings,omitempty" hcl:"settings,optional"` // Settings file path
	LogLevel string   `json:"log_level,omitempty" yaml:"log_level,omitempty" hcl:"log_level,optional"`
	Ignore   []string `json:"ignore,omitempty" yaml:"ignore,omitempty" hcl:"ignore,optional"` // Globs of retrieved files never written

	location string
}

// 📍 DefaultPath returns the config file below the XDG config directory
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "hashdrop", "config.yaml")
}

// 🏭 Default returns the configuration used when no file exists
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.Shortcut == "" {
		cfg.Shortcut = DefaultShortcut
	}
	if cfg.Settings == "" {
		cfg.Settings = settings.DefaultPath()
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
}

// Location returns the file the config was loaded from, empty for defaults
func (cfg *Config) Location() string {
	return cfg.location
}

// 🎯 Load loads the configuration from a file. An empty path selects the
// default location, and a missing default file yields the defaults.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	logger.Debug().Str("path", path).Bool("explicit", explicit).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			logger.Debug().Str("path", path).Msg("no config file, using defaults")
			return Default(), nil
		}
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	cfg.location = path

	// Relative settings paths are relative to the config file
	if cfg.Settings != "" && !filepath.IsAbs(cfg.Settings) {
		cfg.Settings = filepath.Join(filepath.Dir(path), cfg.Settings)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate fills in defaults and checks that the configuration is usable
func (cfg *Config) Validate() error {
	cfg.applyDefaults()

	if _, err := hotkey.ParseAccelerator(cfg.Shortcut); err != nil {
		return errors.Errorf("shortcut %q: %w", cfg.Shortcut, err)
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		return errors.Errorf("unknown log_level %q", cfg.LogLevel)
	}

	cfg.Settings = filepath.Clean(cfg.Settings)
	return nil
}

// 📊 Level returns the parsed log level
func (cfg *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	api := cfg.API
	if api == "" {
		api = "local"
	}
	return fmt.Sprintf("%s via %s (settings %s)", cfg.Shortcut, api, cfg.Settings)
}
