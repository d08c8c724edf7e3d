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
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/hashdrop/cmd/hashdrop/opts"
	"github.com/walteh/hashdrop/pkg/desktop"
	"github.com/walteh/hashdrop/pkg/log"
	"github.com/walteh/hashdrop/pkg/operation"
	"github.com/walteh/hashdrop/pkg/picker"
	"gitlab.com/tozd/go/errors"
)

// ErrDownloadFailed is returned when a one-shot download does not complete
var ErrDownloadFailed = errors.Base("download did not complete")

// consoleAlerter prints alerts instead of showing dialogs
type consoleAlerter struct {
	console *log.Logger
}

func (a consoleAlerter) Alert(ctx context.Context, title, message string) {
	a.console.Error(title + ": " + message)
}

// NewGetCmd creates the one-shot download command
func NewGetCmd(opts *opts.RootOpts) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "get <reference>",
		Short: "Download a reference into a directory",
		Long: `Get runs a single download without the tray or the shortcut. The reference
is handled exactly like clipboard text:
1. It must be a multihash, a CID or an /ipfs/ path
2. A single file is written into --dir, several files go below --dir/<reference>
3. Files that already exist are kept as they are`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "get").Logger().WithContext(cmd.Context())
			logger := zerolog.Ctx(ctx)
			console := log.New(cmd.OutOrStdout(), *logger)
			ctx = log.NewContext(ctx, console)

			pipeline, err := operation.NewPipeline(operation.PipelineOptions{
				Source:    opts.RemoteSource(ctx),
				Clipboard: desktop.FixedText(args[0]),
				Alerter:   consoleAlerter{console: console},
				Chooser:   picker.New(picker.StaticDialog{Dir: dir}),
				Materializer: operation.NewMaterializer(operation.MaterializerOptions{
					IgnorePatterns: opts.Config.Ignore,
				}),
			})
			if err != nil {
				return errors.Errorf("creating pipeline: %w", err)
			}

			res, err := operation.NewRunner(logger, false).Run(ctx, pipeline)
			if err != nil {
				return errors.Errorf("downloading %s: %w", args[0], err)
			}

			switch res.Outcome {
			case operation.OutcomeMaterialized:
				s := res.Summary
				if s.Failed() > 0 {
					console.Warningf("%s → %s: %d of %d file(s) failed", res.Reference, res.Target, s.Failed(), len(s.Results))
					return errors.WithDetails(ErrDownloadFailed, "reference", res.Reference, "failed", s.Failed())
				}
				console.Successf("%s → %s", res.Reference, res.Target)
				return nil
			case operation.OutcomeSkipped:
				return errors.WithDetails(ErrDownloadFailed, "reference", res.Reference, "reason", "no IPFS node available")
			default:
				return errors.WithDetails(ErrDownloadFailed, "reference", res.Reference, "outcome", res.Outcome.String())
			}
		},
	}

	cwd, _ := os.Getwd()
	cmd.Flags().StringVar(&dir, "dir", cwd, "directory to download into")

	return cmd
}
