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

package operation_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/hashdrop/pkg/log"
	"github.com/walteh/hashdrop/pkg/operation"
	"github.com/walteh/hashdrop/pkg/remote"
	"github.com/walteh/hashdrop/pkg/status"
)

func readTree(t *testing.T, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = string(content)
		return nil
	})
	require.NoError(t, err)
	return out
}

func TestMaterializeWritesFiles(t *testing.T) {
	ctx := testContext(t)
	root := t.TempDir()

	files := remote.RetrievedSet{
		{Path: "readme.txt", Content: []byte("read me")},
		{Path: "docs/guide.md", Content: []byte("# guide")},
		{Path: "empty.txt", Content: []byte{}},
	}

	summary := operation.NewMaterializer(operation.MaterializerOptions{}).Materialize(ctx, root, files)

	assert.Equal(t, 3, summary.Written())
	assert.Equal(t, 0, summary.Failed())
	assert.Equal(t, map[string]string{
		"readme.txt":    "read me",
		"docs/guide.md": "# guide",
		"empty.txt":     "",
	}, readTree(t, root))

	require.Len(t, summary.Results, 3)
	assert.Equal(t, filepath.Join(root, "readme.txt"), summary.Results[0].Destination)
	assert.Equal(t, status.Checksum([]byte("read me")), summary.Results[0].Checksum)
	assert.Equal(t, int64(7), summary.Results[0].Size)
}

func TestMaterializeIsIdempotent(t *testing.T) {
	ctx := testContext(t)
	root := t.TempDir()
	m := operation.NewMaterializer(operation.MaterializerOptions{})

	files := remote.RetrievedSet{
		{Path: "a.txt", Content: []byte("a")},
		{Path: "sub/b.txt", Content: []byte("b")},
	}

	first := m.Materialize(ctx, root, files)
	require.Equal(t, 2, first.Written())
	before := readTree(t, root)

	second := m.Materialize(ctx, root, files)
	assert.Equal(t, 0, second.Written(), "second run should not write anything")
	assert.Equal(t, 2, second.Skipped())
	assert.Equal(t, before, readTree(t, root))
}

func TestMaterializeNeverOverwrites(t *testing.T) {
	ctx := testContext(t)
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "readme.txt"), []byte("partial"), 0o644))

	summary := operation.NewMaterializer(operation.MaterializerOptions{}).Materialize(ctx, root, remote.RetrievedSet{
		{Path: "readme.txt", Content: []byte("the real content")},
	})

	assert.Equal(t, 1, summary.Skipped())
	got, err := os.ReadFile(filepath.Join(root, "readme.txt"))
	require.NoError(t, err)
	assert.Equal(t, "partial", string(got), "existing file is authoritative even when stale")
}

func TestMaterializeContainsPartialFailure(t *testing.T) {
	ctx := testContext(t)
	root := t.TempDir()

	// a regular file where a directory is needed makes the second write fail
	require.NoError(t, os.WriteFile(filepath.Join(root, "blocker"), []byte("x"), 0o644))

	files := remote.RetrievedSet{
		{Path: "one.txt", Content: []byte("1")},
		{Path: "blocker/two.txt", Content: []byte("2")},
		{Path: "three.txt", Content: []byte("3")},
		{Path: "../escape.txt", Content: []byte("4")},
		{Path: "five.txt", Content: []byte("5")},
	}

	summary := operation.NewMaterializer(operation.MaterializerOptions{}).Materialize(ctx, root, files)

	assert.Equal(t, 3, summary.Written())
	assert.Equal(t, 2, summary.Failed())
	assert.Equal(t, status.OutcomeFailed, summary.Results[1].Outcome)
	assert.Error(t, summary.Results[1].Error)
	assert.Equal(t, status.OutcomeFailed, summary.Results[3].Outcome)
	assert.ErrorIs(t, summary.Results[3].Error, status.ErrOutsideRoot)

	tree := readTree(t, root)
	assert.Equal(t, "1", tree["one.txt"])
	assert.Equal(t, "3", tree["three.txt"])
	assert.Equal(t, "5", tree["five.txt"])
	_, err := os.Stat(filepath.Join(filepath.Dir(root), "escape.txt"))
	assert.True(t, os.IsNotExist(err), "nothing may be written outside the root")
}

func TestMaterializeIgnorePatterns(t *testing.T) {
	ctx := testContext(t)
	root := t.TempDir()

	m := operation.NewMaterializer(operation.MaterializerOptions{
		IgnorePatterns: []string{"**/*.tmp", "[invalid"},
	})

	summary := m.Materialize(ctx, root, remote.RetrievedSet{
		{Path: "keep.txt", Content: []byte("k")},
		{Path: "cache/x.tmp", Content: []byte("x")},
	})

	assert.Equal(t, 1, summary.Written())
	assert.Equal(t, 1, summary.Ignored())
	assert.Equal(t, map[string]string{"keep.txt": "k"}, readTree(t, root))
}

func TestMaterializeReportsToConsole(t *testing.T) {
	ctx := testContext(t)
	buf := &bytes.Buffer{}
	download := log.New(buf, zerolog.Nop()).StartDownload(ctx, log.DownloadOperation{Reference: "ref", Files: 1})
	ctx = log.WithDownload(ctx, download)

	operation.NewMaterializer(operation.MaterializerOptions{}).Materialize(ctx, t.TempDir(), remote.RetrievedSet{
		{Path: "readme.txt", Content: []byte("r")},
	})

	assert.Contains(t, buf.String(), "readme.txt")
	assert.Contains(t, buf.String(), "written")
	require.Len(t, download.Results(), 1)
	assert.Equal(t, status.OutcomeWritten, download.Results()[0].Outcome)
}
