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

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/hashdrop/pkg/log"
	"github.com/walteh/hashdrop/pkg/remote"
	"github.com/walteh/hashdrop/pkg/status"
)

// 🔧 MaterializerOptions configures a Materializer
type MaterializerOptions struct {
	// IgnorePatterns are doublestar globs matched against relative paths
	IgnorePatterns []string
}

// 📦 Materializer writes retrieved files below a target directory, never
// overwriting anything that is already there
type Materializer struct {
	ignore []string
}

// 🏭 NewMaterializer creates a new materializer
func NewMaterializer(opts MaterializerOptions) *Materializer {
	return &Materializer{
		ignore: opts.IgnorePatterns,
	}
}

// 🏃 Materialize writes each file of files below targetRoot. Files are handled
// independently: an existing destination is skipped and a failed write is
// logged and recorded, and neither stops the remaining files.
func (m *Materializer) Materialize(ctx context.Context, targetRoot string, files remote.RetrievedSet) status.Summary {
	mgr := status.New(targetRoot)
	summary := status.Summary{Root: mgr.BaseDir()}
	download := log.DownloadFromContext(ctx)

	for _, file := range files {
		res := m.materializeFile(ctx, mgr, file)
		summary.Record(res)
		if download != nil {
			download.LogFileResult(ctx, res)
		}
	}

	return summary
}

// 📄 materializeFile handles a single file
func (m *Materializer) materializeFile(ctx context.Context, mgr *status.Manager, file remote.RetrievedFile) status.FileResult {
	logger := zerolog.Ctx(ctx)
	res := status.FileResult{Path: file.Path}

	if m.shouldIgnore(ctx, file.Path) {
		res.Outcome = status.OutcomeIgnored
		return res
	}

	dest, err := mgr.AbsPath(file.Path)
	if err != nil {
		logger.Error().Err(err).Str("file", file.Path).Msg("refusing to write file")
		res.Outcome = status.OutcomeFailed
		res.Error = err
		return res
	}
	res.Destination = dest

	exists, err := mgr.Exists(ctx, dest)
	if err != nil {
		logger.Error().Err(err).Str("file", file.Path).Str("destination", dest).Msg("checking destination")
		res.Outcome = status.OutcomeFailed
		res.Error = err
		return res
	}
	if exists {
		logger.Debug().Str("file", file.Path).Str("destination", dest).Msg("destination exists, keeping it")
		res.Outcome = status.OutcomeSkipped
		return res
	}

	checksum, err := mgr.WriteFile(ctx, dest, file.Content)
	if err != nil {
		logger.Error().Err(err).Str("file", file.Path).Str("destination", dest).Msg("writing file")
		res.Outcome = status.OutcomeFailed
		res.Error = err
		return res
	}

	res.Outcome = status.OutcomeWritten
	res.Size = int64(len(file.Content))
	res.Checksum = checksum
	logger.Info().
		Str("checksum", checksum).
		Int64("size", res.Size).
		Msgf("File '%s' downloaded to %s.", file.Path, dest)
	return res
}

// 🔍 shouldIgnore checks if a file should be ignored
func (m *Materializer) shouldIgnore(ctx context.Context, path string) bool {
	for _, pattern := range m.ignore {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Str("path", path).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			zerolog.Ctx(ctx).Debug().Str("file", path).Str("pattern", pattern).Msg("file ignored by pattern")
			return true
		}
	}
	return false
}
