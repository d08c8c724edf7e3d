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

// Package picker asks the user for a destination directory.
package picker

import (
	"context"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📛 Title is shown on the directory chooser
const Title = "Select a directory"

// ErrCancelled is returned by a Dialog when the user dismisses it
var ErrCancelled = errors.Base("directory selection cancelled")

// Options configures a single directory chooser
type Options struct {
	Title    string
	StartDir string
}

// 🪟 Dialog is a modal, single-selection directory chooser. It blocks until the
// user answers and may offer to create a new directory.
type Dialog interface {
	ChooseDirectory(ctx context.Context, opts Options) (string, error)
}

// 📂 Picker wraps a Dialog with the default title and start location
type Picker struct {
	dialog   Dialog
	startDir func() string
}

// 🏭 New creates a picker starting in the platform downloads directory
func New(dialog Dialog) *Picker {
	return &Picker{
		dialog:   dialog,
		startDir: DownloadsDir,
	}
}

// DownloadsDir returns the platform downloads directory, or the home directory
// when none is known
func DownloadsDir() string {
	if xdg.UserDirs.Download != "" {
		return xdg.UserDirs.Download
	}
	return xdg.Home
}

// 🎯 Choose asks for a directory. ok is false when the user cancelled or the
// dialog came back empty.
func (p *Picker) Choose(ctx context.Context) (dir string, ok bool, err error) {
	logger := zerolog.Ctx(ctx)

	start := p.startDir()
	if _, err := os.Stat(start); err != nil {
		logger.Debug().Str("start_dir", start).Err(err).Msg("start directory not usable, falling back to home")
		start = xdg.Home
	}

	chosen, err := p.dialog.ChooseDirectory(ctx, Options{Title: Title, StartDir: start})
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			return "", false, nil
		}
		return "", false, errors.Errorf("choosing directory: %w", err)
	}
	if chosen == "" {
		return "", false, nil
	}

	abs, err := filepath.Abs(chosen)
	if err != nil {
		return "", false, errors.Errorf("resolving %s: %w", chosen, err)
	}
	return abs, true, nil
}

// StaticDialog always answers with Dir; an empty Dir acts as a cancellation
type StaticDialog struct {
	Dir string
}

func (d StaticDialog) ChooseDirectory(ctx context.Context, opts Options) (string, error) {
	if d.Dir == "" {
		return "", ErrCancelled
	}
	return d.Dir, nil
}
