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

package status

import (
	"context"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/zeebo/blake3"
	"gitlab.com/tozd/go/errors"
)

// 📊 Outcome is what happened to a single retrieved file
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeWritten         // File did not exist and was written
	OutcomeSkipped         // Something already existed at the destination
	OutcomeFailed          // Writing failed
	OutcomeIgnored         // File matched an ignore pattern
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeWritten:
		return "written"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	case OutcomeIgnored:
		return "ignored"
	default:
		return "unknown"
	}
}

var (
	// ErrOutsideRoot is returned for relative paths that escape the base directory
	ErrOutsideRoot = errors.Base("path escapes target directory")
)

// 📄 FileResult records the outcome for one retrieved file
type FileResult struct {
	Path        string  // Relative path inside the retrieved set
	Destination string  // Absolute destination on disk
	Outcome     Outcome // What happened
	Size        int64   // Bytes written
	Checksum    string  // blake3 of the written content
	Error       error   // Set when Outcome is OutcomeFailed
}

// 🧾 Summary collects the per-file results of one materialization
type Summary struct {
	Root    string
	Results []FileResult
}

// Record appends a result
func (s *Summary) Record(r FileResult) {
	s.Results = append(s.Results, r)
}

// Count returns how many results have the given outcome
func (s Summary) Count(o Outcome) int {
	n := 0
	for _, r := range s.Results {
		if r.Outcome == o {
			n++
		}
	}
	return n
}

func (s Summary) Written() int { return s.Count(OutcomeWritten) }
func (s Summary) Skipped() int { return s.Count(OutcomeSkipped) }
func (s Summary) Failed() int  { return s.Count(OutcomeFailed) }
func (s Summary) Ignored() int { return s.Count(OutcomeIgnored) }

// Total returns the number of recorded results
func (s Summary) Total() int { return len(s.Results) }

// 💾 Manager performs file operations below a base directory
type Manager struct {
	baseDir string // Base directory for all operations
}

// 🏭 New creates a new manager rooted at baseDir
func New(baseDir string) *Manager {
	return &Manager{
		baseDir: filepath.Clean(baseDir),
	}
}

// BaseDir returns the directory the manager writes into
func (m *Manager) BaseDir() string {
	return m.baseDir
}

// 🔒 AbsPath resolves a slash separated relative path below the base directory
func (m *Manager) AbsPath(rel string) (string, error) {
	local := filepath.FromSlash(rel)
	if rel == "" || filepath.IsAbs(local) || strings.HasPrefix(rel, "/") {
		return "", errors.WithDetails(ErrOutsideRoot, "path", rel)
	}
	abs := filepath.Join(m.baseDir, local)
	inside, err := filepath.Rel(m.baseDir, abs)
	if err != nil || inside == "." || inside == ".." || strings.HasPrefix(inside, ".."+string(filepath.Separator)) {
		return "", errors.WithDetails(ErrOutsideRoot, "path", rel)
	}
	return abs, nil
}

// 🔍 Exists reports whether any filesystem entry is present at abs.
// Entries of any kind count, including dangling symlinks and directories.
func (m *Manager) Exists(ctx context.Context, abs string) (bool, error) {
	_, err := os.Lstat(abs)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

// ✍️ WriteFile writes content to abs through a temp file in the same directory,
// creating parent directories first. It returns the blake3 checksum.
func (m *Manager) WriteFile(ctx context.Context, abs string, content []byte) (string, error) {
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Errorf("creating parent directories: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(abs)+".*.tmp")
	if err != nil {
		return "", errors.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return "", errors.Errorf("setting file mode: %w", err)
	}

	if err := os.Rename(tmpPath, abs); err != nil {
		os.Remove(tmpPath)
		return "", errors.Errorf("renaming temp file: %w", err)
	}

	zerolog.Ctx(ctx).Trace().Str("path", abs).Int("bytes", len(content)).Msg("file written")
	return Checksum(content), nil
}

// 🔍 Checksum returns the hex blake3 digest of content
func Checksum(content []byte) string {
	sum := blake3.Sum256(content)
	return hex.EncodeToString(sum[:])
}
