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
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/hashdrop/cmd/hashdrop/opts"
	"github.com/walteh/hashdrop/pkg/desktop"
	"github.com/walteh/hashdrop/pkg/hotkey"
	"github.com/walteh/hashdrop/pkg/log"
	"github.com/walteh/hashdrop/pkg/operation"
	"github.com/walteh/hashdrop/pkg/picker"
	"github.com/walteh/hashdrop/pkg/settings"
	"github.com/walteh/hashdrop/pkg/toggle"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// NewRunCmd creates the command that runs the tray application
func NewRunCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the tray application and listen for the download shortcut",
		Long: `Run starts hashdrop in the system tray. It will:
1. Watch the settings file for changes
2. Register the download shortcut while it is enabled
3. On every press, fetch the reference on the clipboard and ask where to save it

It keeps running until Quit is chosen from the tray menu or the process is
interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "run").Logger().WithContext(cmd.Context())
			return runTray(ctx, opts)
		},
	}

	return cmd
}

func runTray(ctx context.Context, opts *opts.RootOpts) error {
	logger := zerolog.Ctx(ctx)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = log.NewContext(ctx, log.New(os.Stdout, *logger))

	shell := desktop.NewShell(ctx)

	pipeline, err := operation.NewPipeline(operation.PipelineOptions{
		Source:    opts.RemoteSource(ctx),
		Clipboard: desktop.NewClipboard(ctx),
		Alerter:   shell,
		Chooser:   picker.New(shell),
		Materializer: operation.NewMaterializer(operation.MaterializerOptions{
			IgnorePatterns: opts.Config.Ignore,
		}),
	})
	if err != nil {
		return errors.Errorf("creating pipeline: %w", err)
	}

	runner := operation.NewRunner(logger, true)
	facility := hotkey.NewFacility(ctx)

	controller, err := toggle.New(toggle.Options{
		Binder:      shell.UIBinder(facility),
		Accelerator: opts.Config.Shortcut,
		Handler:     runner.Handler(ctx, pipeline),
		Key:         settings.DownloadHashShortcut,
	})
	if err != nil {
		return errors.Errorf("creating shortcut toggle: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := opts.Settings.Watch(gctx); err != nil {
			return errors.Errorf("watching settings: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shell.Quit()
		return nil
	})

	detachTray, _ := shell.InstallTray(ctx, opts.Settings, settings.DownloadHashShortcut)

	logger.Info().Str("shortcut", opts.Config.Shortcut).Str("settings", opts.Settings.Path()).Msg("hashdrop running")

	// the toggle arms once the event loop is up, so registration can happen
	// on the UI goroutine
	stopToggle := make(chan func(), 1)
	shell.Run(func() {
		stopToggle <- controller.Init(gctx, opts.Settings)
	})

	stop()
	select {
	case fn := <-stopToggle:
		fn()
	default:
	}
	detachTray()
	if err := facility.Close(); err != nil {
		logger.Warn().Err(err).Msg("releasing shortcuts")
	}
	runner.Wait()

	logger.Info().Msg("hashdrop stopped")
	return g.Wait()
}
