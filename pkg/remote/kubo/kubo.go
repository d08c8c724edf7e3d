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

// Package kubo talks to a Kubo (go-ipfs) daemon over its RPC API.
package kubo

import (
	"context"
	"io"
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/ipfs/boxo/files"
	"github.com/ipfs/kubo/client/rpc"
	"github.com/multiformats/go-multiaddr"
	"github.com/rs/zerolog"
	"github.com/walteh/hashdrop/pkg/reference"
	"github.com/walteh/hashdrop/pkg/remote"
	"gitlab.com/tozd/go/errors"
)

// 🌐 Node connects lazily to a Kubo daemon and implements remote.Source
type Node struct {
	address string
	logger  zerolog.Logger

	mu     sync.Mutex
	client *Client

	// connect is swapped in tests
	connect func(address string) (*rpc.HttpApi, error)
}

// 🏭 NewNode creates a Node for address. An empty address uses the local repo's
// api file, an address starting with "/" is a multiaddr, anything else a URL.
func NewNode(ctx context.Context, address string) *Node {
	return &Node{
		address: address,
		logger:  zerolog.Ctx(ctx).With().Str("component", "kubo").Logger(),
		connect: dial,
	}
}

func dial(address string) (*rpc.HttpApi, error) {
	switch {
	case address == "":
		api, err := rpc.NewLocalApi()
		if err != nil {
			return nil, errors.Errorf("opening local api: %w", err)
		}
		return api, nil
	case strings.HasPrefix(address, "/"):
		maddr, err := multiaddr.NewMultiaddr(address)
		if err != nil {
			return nil, errors.Errorf("parsing multiaddr %q: %w", address, err)
		}
		api, err := rpc.NewApiWithClient(maddr, &http.Client{})
		if err != nil {
			return nil, errors.Errorf("opening api at %s: %w", address, err)
		}
		return api, nil
	default:
		api, err := rpc.NewURLApiWithClient(address, &http.Client{})
		if err != nil {
			return nil, errors.Errorf("opening api at %s: %w", address, err)
		}
		return api, nil
	}
}

// Client returns the connected client, or nil while the daemon is unreachable
func (n *Node) Client() remote.Client {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.client != nil {
		return n.client
	}

	api, err := n.connect(n.address)
	if err != nil {
		n.logger.Debug().Err(err).Str("address", n.address).Msg("kubo api not available")
		return nil
	}

	n.logger.Info().Str("address", n.address).Msg("connected to kubo api")
	n.client = &Client{api: api}
	return n.client
}

// 📦 Client fetches content through the Kubo unixfs API
type Client struct {
	api *rpc.HttpApi
}

// Get implements remote.Client
func (c *Client) Get(ctx context.Context, ref string) ([]remote.RetrievedFile, error) {
	p, err := reference.Resolve(ref)
	if err != nil {
		return nil, errors.Errorf("resolving reference: %w", err)
	}

	node, err := c.api.Unixfs().Get(ctx, p)
	if err != nil {
		return nil, errors.Errorf("getting %s: %w", p, err)
	}
	defer node.Close()

	return Collect(ref, node)
}

// 🌳 Collect flattens a unixfs tree into retrieved files, depth first, in
// directory order. A root that is itself a file is named after the reference.
func Collect(ref string, root files.Node) ([]remote.RetrievedFile, error) {
	var out []remote.RetrievedFile
	if err := collect("", root, ref, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func collect(rel string, nd files.Node, ref string, out *[]remote.RetrievedFile) error {
	switch n := nd.(type) {
	case *files.Symlink:
		return nil
	case files.File:
		name := rel
		if name == "" {
			name = reference.BaseName(ref)
		}
		content, err := io.ReadAll(n)
		if err != nil {
			return errors.Errorf("reading %s: %w", name, err)
		}
		*out = append(*out, remote.RetrievedFile{Path: name, Content: content})
		return nil
	case files.Directory:
		it := n.Entries()
		for it.Next() {
			if err := collect(path.Join(rel, it.Name()), it.Node(), ref, out); err != nil {
				return err
			}
		}
		if err := it.Err(); err != nil {
			return errors.Errorf("listing %s: %w", rel, err)
		}
		return nil
	default:
		return nil
	}
}
