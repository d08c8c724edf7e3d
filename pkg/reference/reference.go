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

// Package reference recognizes content-addressed references (multihashes, CIDs
// and immutable content paths) in arbitrary text.
package reference

import (
	"strings"

	"github.com/ipfs/boxo/path"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"gitlab.com/tozd/go/errors"
)

// 📛 DefaultNamespace is the prefix tried for bare hashes
const DefaultNamespace = "/ipfs/"

var (
	// ErrInvalidReference is returned by Resolve for text no check accepts
	ErrInvalidReference = errors.Base("invalid content reference")
)

// 🔍 IsContentReference reports whether text is a plausible content-addressed reference.
// It never touches the network and never fails: unrecognized input is simply false.
func IsContentReference(text string) bool {
	if text == "" {
		return false
	}
	return isMultihash(text) ||
		isCID(text) ||
		isImmutablePath(text) ||
		isImmutablePath(DefaultNamespace+text)
}

func isMultihash(text string) bool {
	_, err := multihash.FromB58String(text)
	return err == nil
}

func isCID(text string) bool {
	_, err := cid.Decode(text)
	return err == nil
}

func isImmutablePath(text string) bool {
	_, err := immutablePath(text)
	return err == nil
}

func immutablePath(text string) (path.ImmutablePath, error) {
	if !strings.HasPrefix(text, "/") {
		return path.ImmutablePath{}, errors.Errorf("%q is not rooted", text)
	}
	if hasDotSegments(text) {
		return path.ImmutablePath{}, errors.Errorf("%q has empty or dot segments", text)
	}
	p, err := path.NewPath(text)
	if err != nil {
		return path.ImmutablePath{}, errors.Errorf("parsing path: %w", err)
	}
	ip, err := path.NewImmutablePath(p)
	if err != nil {
		return path.ImmutablePath{}, errors.Errorf("path is not immutable: %w", err)
	}
	return ip, nil
}

// hasDotSegments reports whether a rooted path has an empty, "." or ".."
// segment anywhere but a single trailing slash. Such text would be cleaned into
// a different path, so it never names the content it appears to.
func hasDotSegments(text string) bool {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(text, "/"), "/")
	for _, segment := range strings.Split(trimmed, "/") {
		switch segment {
		case "", ".", "..":
			return true
		}
	}
	return false
}

// 🎯 Resolve turns an accepted reference into the content path to fetch
func Resolve(text string) (path.ImmutablePath, error) {
	if ip, err := immutablePath(text); err == nil {
		return ip, nil
	}
	if c, err := cid.Decode(text); err == nil {
		return path.FromCid(c), nil
	}
	if mh, err := multihash.FromB58String(text); err == nil {
		return path.FromCid(cid.NewCidV1(cid.DagProtobuf, mh)), nil
	}
	if ip, err := immutablePath(DefaultNamespace + text); err == nil {
		return ip, nil
	}
	return path.ImmutablePath{}, errors.WithDetails(ErrInvalidReference, "reference", text)
}

// 📄 BaseName names the root of a reference when the root itself is a file:
// the last subpath segment when there is one, the reference text otherwise.
func BaseName(text string) string {
	trimmed := strings.Trim(text, "/")
	segments := strings.Split(trimmed, "/")
	if strings.HasPrefix(text, "/") {
		// namespace and root hash
		if len(segments) > 2 {
			return segments[len(segments)-1]
		}
		if len(segments) == 2 {
			return segments[1]
		}
		return trimmed
	}
	if len(segments) > 1 {
		return segments[len(segments)-1]
	}
	return text
}
