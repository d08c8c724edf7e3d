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

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/hashdrop/cmd/hashdrop/commands"
	"github.com/walteh/hashdrop/cmd/hashdrop/opts"
	"github.com/walteh/hashdrop/pkg/config"
	"github.com/walteh/hashdrop/pkg/settings"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	debug      bool
)

// newRootCmd builds the command tree around ro. Fields already set on ro
// are kept, the rest is loaded before any subcommand runs.
func newRootCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hashdrop",
		Short: "Download IPFS content referenced by the clipboard",
		Long: `hashdrop downloads content-addressed references (multihashes, CIDs and
/ipfs/ paths) from an IPFS node into a directory of your choice.

Run "hashdrop run" to start the tray application. While the "Download Hash
Shortcut" setting is on, pressing the shortcut (CommandOrControl+Alt+D by
default) fetches whatever reference is on the clipboard.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupRootOpts(cmd, ro)
		},
	}

	addRootFlags(cmd)

	cmd.AddCommand(
		commands.NewRunCmd(ro),
		commands.NewGetCmd(ro),
		commands.NewSettingsCmd(ro),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (default "+config.DefaultPath()+")")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupRootOpts loads config and settings and adjusts the logger level
func setupRootOpts(cmd *cobra.Command, ro *opts.RootOpts) error {
	ctx := cmd.Context()

	if ro.Config == nil {
		cfg, err := config.Load(ctx, configFile)
		if err != nil {
			return errors.Errorf("loading config: %w", err)
		}
		ro.Config = cfg
	}

	level := ro.Config.Level()
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.Ctx(ctx).Level(level)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Debug().Str("config", ro.Config.Location()).Stringer("summary", ro.Config).Msg("configuration loaded")

	if ro.Settings == nil {
		store, err := settings.Open(ctx, ro.Config.Settings)
		if err != nil {
			return errors.Errorf("opening settings: %w", err)
		}
		ro.Settings = store
	}

	return nil
}

// newLogger creates the process logger
func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Logger()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), FormatVersion())
		},
	}
}
