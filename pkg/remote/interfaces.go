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

package remote

import (
	"context"
)

// Client is the content-addressed network client (e.g. a Kubo node)
type Client interface {
	// Get retrieves every file reachable from reference, in the client's order
	Get(ctx context.Context, reference string) ([]RetrievedFile, error)
}

// Source hands out the Client once it is connected
type Source interface {
	// Client returns nil while the network client is not available
	Client() Client
}

// SourceFunc adapts a function to Source
type SourceFunc func() Client

func (f SourceFunc) Client() Client { return f() }

// Static returns a Source that always yields c
func Static(c Client) Source {
	return SourceFunc(func() Client { return c })
}

// RetrievedFile is one file produced by a fetch
type RetrievedFile struct {
	// Path is slash separated and relative to the fetch root
	Path    string
	Content []byte
}

// RetrievedSet is the ordered result of fetching a single reference
type RetrievedSet []RetrievedFile

// Len returns the number of files in the set
func (s RetrievedSet) Len() int { return len(s) }

// IsMultiFile reports whether the set holds more than one entry
func (s RetrievedSet) IsMultiFile() bool { return len(s) > 1 }
