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
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, dir string, cfg *Config)
	}{
		{
			name: "full_yaml",
			file: "config.yaml",
			config: `
api: /ip4/127.0.0.1/tcp/5001
shortcut: Ctrl+Shift+H
settings: /tmp/hashdrop/settings.yaml
log_level: debug
ignore:
  - "**/*.tmp"
  - "**/.DS_Store"
`,
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, "/ip4/127.0.0.1/tcp/5001", cfg.API, "api should match")
				assert.Equal(t, "Ctrl+Shift+H", cfg.Shortcut, "shortcut should match")
				assert.Equal(t, "/tmp/hashdrop/settings.yaml", cfg.Settings, "settings should match")
				assert.Equal(t, zerolog.DebugLevel, cfg.Level(), "level should match")
				assert.Equal(t, []string{"**/*.tmp", "**/.DS_Store"}, cfg.Ignore, "ignore should match")
				assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.Location())
			},
		},
		{
			name:   "minimal_yaml",
			file:   "config.yml",
			config: "api: http://127.0.0.1:5001\n",
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, DefaultShortcut, cfg.Shortcut, "shortcut should have default value")
				assert.Equal(t, DefaultLogLevel, cfg.LogLevel, "log level should have default value")
				assert.NotEmpty(t, cfg.Settings, "settings should have default value")
				assert.Empty(t, cfg.Ignore)
			},
		},
		{
			name:   "empty_yaml",
			file:   "config.yaml",
			config: "",
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, DefaultShortcut, cfg.Shortcut)
			},
		},
		{
			name:   "relative_settings",
			file:   "config.yaml",
			config: "settings: state/settings.yaml\n",
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, filepath.Join(dir, "state", "settings.yaml"), cfg.Settings)
			},
		},
		{
			name:   "json",
			file:   "config.json",
			config: `{"api": "http://127.0.0.1:5001", "log_level": "warn", "ignore": ["*.log"]}`,
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, "http://127.0.0.1:5001", cfg.API)
				assert.Equal(t, zerolog.WarnLevel, cfg.Level())
				assert.Equal(t, []string{"*.log"}, cfg.Ignore)
			},
		},
		{
			name: "hcl",
			file: "config.hcl",
			config: `
api       = env("HASHDROP_TEST_API")
shortcut  = "Alt+Shift+F5"
settings  = "${home}/hashdrop-settings.yaml"
ignore    = ["**/*.part"]
`,
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, "/ip4/10.0.0.1/tcp/5001", cfg.API)
				assert.Equal(t, "Alt+Shift+F5", cfg.Shortcut)
				assert.True(t, filepath.IsAbs(cfg.Settings), "settings should be absolute")
				assert.Equal(t, "hashdrop-settings.yaml", filepath.Base(cfg.Settings))
				assert.Equal(t, []string{"**/*.part"}, cfg.Ignore)
				assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
			},
		},
		{
			name:        "unknown_yaml_field",
			file:        "config.yaml",
			config:      "destination: /tmp\n",
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name:        "unknown_json_field",
			file:        "config.json",
			config:      `{"provider": {}}`,
			wantErr:     true,
			errContains: "parsing JSON",
		},
		{
			name:        "unknown_hcl_attribute",
			file:        "config.hcl",
			config:      `force = true`,
			wantErr:     true,
			errContains: "decoding HCL",
		},
		{
			name:        "invalid_shortcut",
			file:        "config.yaml",
			config:      "shortcut: Ctrl+Alt\n",
			wantErr:     true,
			errContains: "shortcut",
		},
		{
			name:        "invalid_log_level",
			file:        "config.yaml",
			config:      "log_level: loud\n",
			wantErr:     true,
			errContains: "log_level",
		},
		{
			name:        "unsupported_extension",
			file:        "config.toml",
			config:      "api = ''\n",
			wantErr:     true,
			errContains: "no parser found",
		},
	}

	t.Setenv("HASHDROP_TEST_API", "/ip4/10.0.0.1/tcp/5001")
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create temporary config file
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, tt.file)
			err := os.WriteFile(configPath, []byte(tt.config), 0644)
			require.NoError(t, err, "writing config file should succeed")

			// Load config
			cfg, err := Load(ctx, configPath)
			if tt.wantErr {
				require.Error(t, err, "Load should return error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "Load should succeed")
			if tt.check != nil {
				tt.check(t, tmpDir, cfg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())

	_, err := Load(ctx, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "an explicit path must exist")

	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	cfg, err := Load(ctx, "")
	require.NoError(t, err, "a missing default file means defaults")
	assert.Equal(t, DefaultShortcut, cfg.Shortcut)
	assert.Empty(t, cfg.Location())
}

func TestConfigString(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
		want string
	}{
		{
			name: "local_api",
			cfg:  &Config{Shortcut: DefaultShortcut, Settings: "/s.yaml"},
			want: "CommandOrControl+Alt+D via local (settings /s.yaml)",
		},
		{
			name: "remote_api",
			cfg:  &Config{Shortcut: "Alt+D", API: "http://node:5001", Settings: "/s.yaml"},
			want: "Alt+D via http://node:5001 (settings /s.yaml)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.String()
			assert.Equal(t, tt.want, got, "String() should match")
		})
	}
}
