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

package commands

import (
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/hashdrop/cmd/hashdrop/opts"
	"github.com/walteh/hashdrop/pkg/settings"
	"gitlab.com/tozd/go/errors"
)

// NewSettingsCmd creates the settings command group
func NewSettingsCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the download shortcut setting",
		Long: `Settings reads or changes whether the download shortcut is enabled. A
running "hashdrop run" picks changes up immediately.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Print whether the download shortcut is enabled",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				enabled := opts.Settings.Bool(settings.DownloadHashShortcut, false)
				pterm.Info.WithWriter(cmd.OutOrStdout()).Printfln("%s: %t", settings.DownloadHashShortcut, enabled)
				return nil
			},
		},
		&cobra.Command{
			Use:       "set <true|false>",
			Short:     "Enable or disable the download shortcut",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{"true", "false"},
			RunE: func(cmd *cobra.Command, args []string) error {
				enabled, err := strconv.ParseBool(args[0])
				if err != nil {
					return errors.Errorf("parsing %q: %w", args[0], err)
				}
				if err := opts.Settings.SetBool(cmd.Context(), settings.DownloadHashShortcut, enabled); err != nil {
					return errors.Errorf("storing setting: %w", err)
				}
				pterm.Success.WithWriter(cmd.OutOrStdout()).Printfln("%s set to %t in %s",
					settings.DownloadHashShortcut, enabled, opts.Settings.Path())
				return nil
			},
		},
	)

	return cmd
}
