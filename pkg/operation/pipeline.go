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

package operation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/hashdrop/pkg/log"
	"github.com/walteh/hashdrop/pkg/reference"
	"github.com/walteh/hashdrop/pkg/remote"
	"github.com/walteh/hashdrop/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 💬 Dialog texts shown to the user
const (
	InvalidHashTitle   = "Invalid Hash"
	InvalidHashMessage = "The hash you provided is invalid."
	DownloadErrorTitle = "Error while downloading"
	DownloadErrorBody  = "Some error happened while getting the hash. Please check the logs."
)

// 📋 Clipboard reads the current clipboard text
type Clipboard interface {
	ReadText() string
}

// 🚨 Alerter shows a blocking error box and returns once it is dismissed
type Alerter interface {
	Alert(ctx context.Context, title, message string)
}

// 📂 Chooser asks for a destination directory; ok is false on cancellation
type Chooser interface {
	Choose(ctx context.Context) (dir string, ok bool, err error)
}

// 🚦 Stage is a step of a single invocation
type Stage int

const (
	StageIdle Stage = iota
	StageReadClipboard
	StageValidate
	StageFetching
	StageChoosingDirectory
	StageMaterializing
)

func (s Stage) String() string {
	switch s {
	case StageReadClipboard:
		return "read_clipboard"
	case StageValidate:
		return "validate"
	case StageFetching:
		return "fetching"
	case StageChoosingDirectory:
		return "choosing_directory"
	case StageMaterializing:
		return "materializing"
	default:
		return "idle"
	}
}

// 🏁 Outcome is how an invocation ended
type Outcome int

const (
	OutcomeSkipped          Outcome = iota // No client or empty clipboard
	OutcomeInvalidReference                // Clipboard text is not a reference
	OutcomeFetchFailed                     // The network client failed
	OutcomeCancelled                       // No directory was chosen
	OutcomeMaterialized                    // Files were handed to the materializer
	OutcomeAborted                         // The target subdirectory could not be created
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeInvalidReference:
		return "invalid_reference"
	case OutcomeFetchFailed:
		return "fetch_failed"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeMaterialized:
		return "materialized"
	case OutcomeAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// 📊 Result describes a finished invocation
type Result struct {
	Outcome   Outcome
	Reference string
	Target    string
	Summary   status.Summary
}

// 🧱 SubdirectoryError reports that the hash-named directory for a multi-file
// set could not be created. It ends the invocation.
type SubdirectoryError struct {
	Path  string
	Cause error
}

func (e *SubdirectoryError) Error() string {
	return fmt.Sprintf("creating subdirectory %s: %v", e.Path, e.Cause)
}

func (e *SubdirectoryError) Unwrap() error {
	return e.Cause
}

// 📂 subdirectory returns the directory below dir that a multi-file reference
// is written into. Text that would land on dir itself or outside it is refused.
func subdirectory(dir, text string) (string, error) {
	target := filepath.Join(dir, filepath.FromSlash(text))
	rel, err := filepath.Rel(dir, target)
	if err != nil {
		return target, errors.Errorf("relating %s to %s: %w", target, dir, err)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return target, errors.WithDetails(status.ErrOutsideRoot, "reference", text, "dir", dir)
	}
	return target, nil
}

// 🔧 PipelineOptions contains the collaborators of a Pipeline
type PipelineOptions struct {
	Source       remote.Source
	Clipboard    Clipboard
	Alerter      Alerter
	Chooser      Chooser
	Materializer *Materializer
}

// 🚀 Pipeline turns the clipboard content into files on disk, once per Run
type Pipeline struct {
	source       remote.Source
	clipboard    Clipboard
	alerter      Alerter
	chooser      Chooser
	materializer *Materializer
}

// 🏭 NewPipeline creates a new pipeline with the given options
func NewPipeline(opts PipelineOptions) (*Pipeline, error) {
	if opts.Source == nil {
		return nil, errors.Errorf("source is required")
	}
	if opts.Clipboard == nil {
		return nil, errors.Errorf("clipboard is required")
	}
	if opts.Alerter == nil {
		return nil, errors.Errorf("alerter is required")
	}
	if opts.Chooser == nil {
		return nil, errors.Errorf("chooser is required")
	}
	if opts.Materializer == nil {
		opts.Materializer = NewMaterializer(MaterializerOptions{})
	}
	return &Pipeline{
		source:       opts.Source,
		clipboard:    opts.Clipboard,
		alerter:      opts.Alerter,
		chooser:      opts.Chooser,
		materializer: opts.Materializer,
	}, nil
}

// 🏃 Run performs one invocation end to end. User-facing problems are shown
// through the Alerter and reported in the Result; the only error returned is
// a *SubdirectoryError.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	logger := zerolog.Ctx(ctx)
	stage := func(s Stage) {
		logger.Debug().Stringer("stage", s).Msg("pipeline stage")
	}

	stage(StageReadClipboard)
	text := strings.TrimSpace(p.clipboard.ReadText())
	client := p.source.Client()
	if client == nil || text == "" {
		logger.Debug().Bool("client", client != nil).Bool("text", text != "").Msg("nothing to download")
		stage(StageIdle)
		return Result{Outcome: OutcomeSkipped, Reference: text}, nil
	}

	ctx = logger.With().Str("reference", text).Logger().WithContext(ctx)
	logger = zerolog.Ctx(ctx)

	stage(StageValidate)
	if !reference.IsContentReference(text) {
		logger.Info().Msg("clipboard does not hold a content reference")
		p.alerter.Alert(ctx, InvalidHashTitle, InvalidHashMessage)
		stage(StageIdle)
		return Result{Outcome: OutcomeInvalidReference, Reference: text}, nil
	}

	stage(StageFetching)
	files, err := remote.Fetch(ctx, client, text)
	if err != nil {
		logger.Error().Err(err).Msg("download failed")
		p.alerter.Alert(ctx, DownloadErrorTitle, DownloadErrorBody)
		stage(StageIdle)
		return Result{Outcome: OutcomeFetchFailed, Reference: text}, nil
	}
	logger.Info().Int("files", files.Len()).Msgf("Hash %s downloaded.", text)

	stage(StageChoosingDirectory)
	dir, ok, err := p.chooser.Choose(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("directory chooser failed")
		ok = false
	}
	if !ok {
		logger.Info().Msgf("Dropping hash %s: user didn't choose a path.", text)
		stage(StageIdle)
		return Result{Outcome: OutcomeCancelled, Reference: text}, nil
	}

	stage(StageMaterializing)
	target := dir
	if files.IsMultiFile() {
		target, err = subdirectory(dir, text)
		if err == nil {
			err = os.MkdirAll(target, 0o755)
		}
		if err != nil {
			stage(StageIdle)
			return Result{Outcome: OutcomeAborted, Reference: text, Target: target},
				errors.WithStack(&SubdirectoryError{Path: target, Cause: err})
		}
	}

	if console := log.FromContext(ctx); console != nil {
		download := console.StartDownload(ctx, log.DownloadOperation{Reference: text, Destination: target, Files: files.Len()})
		ctx = log.WithDownload(ctx, download)
		defer download.End(ctx)
	}

	summary := p.materializer.Materialize(ctx, target, files)
	logger.Info().
		Str("target", target).
		Int("written", summary.Written()).
		Int("skipped", summary.Skipped()).
		Int("failed", summary.Failed()).
		Int("ignored", summary.Ignored()).
		Msg(status.NewDefaultFileFormatter().FormatSummary(summary))

	stage(StageIdle)
	return Result{Outcome: OutcomeMaterialized, Reference: text, Target: target, Summary: summary}, nil
}
