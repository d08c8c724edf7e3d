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

package kubo

import (
	"context"
	"testing"

	"github.com/ipfs/boxo/files"
	"github.com/ipfs/kubo/client/rpc"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

const cidV0 = "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"

func TestCollect(t *testing.T) {
	t.Run("single_file_root_named_after_reference", func(t *testing.T) {
		got, err := Collect(cidV0, files.NewBytesFile([]byte("hello")))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, cidV0, got[0].Path)
		assert.Equal(t, []byte("hello"), got[0].Content)
	})

	t.Run("single_file_root_named_after_subpath", func(t *testing.T) {
		got, err := Collect("/ipfs/"+cidV0+"/readme.txt", files.NewBytesFile([]byte("read me")))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "readme.txt", got[0].Path)
	})

	t.Run("directory_tree", func(t *testing.T) {
		root := files.NewMapDirectory(map[string]files.Node{
			"b.txt": files.NewBytesFile([]byte("b")),
			"a.txt": files.NewBytesFile([]byte("a")),
			"docs": files.NewMapDirectory(map[string]files.Node{
				"guide.md": files.NewBytesFile([]byte("# guide")),
			}),
			"empty": files.NewMapDirectory(map[string]files.Node{}),
			"link":  files.NewLinkFile("a.txt", nil),
		})

		got, err := Collect(cidV0, root)
		require.NoError(t, err)

		paths := make([]string, 0, len(got))
		for _, f := range got {
			paths = append(paths, f.Path)
		}
		assert.ElementsMatch(t, []string{"a.txt", "b.txt", "docs/guide.md"}, paths)
	})
}

func TestNodeClient(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	t.Run("unavailable_returns_nil", func(t *testing.T) {
		node := NewNode(ctx, "")
		calls := 0
		node.connect = func(string) (*rpc.HttpApi, error) {
			calls++
			return nil, errors.New("no api file")
		}

		assert.Nil(t, node.Client())
		assert.Nil(t, node.Client())
		assert.Equal(t, 2, calls, "connection is attempted on every call until it succeeds")
	})

	t.Run("connected_client_is_cached", func(t *testing.T) {
		node := NewNode(ctx, "http://127.0.0.1:5001")
		calls := 0
		node.connect = func(string) (*rpc.HttpApi, error) {
			calls++
			return &rpc.HttpApi{}, nil
		}

		first := node.Client()
		require.NotNil(t, first)
		assert.Same(t, first, node.Client())
		assert.Equal(t, 1, calls)
	})
}
