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
	"fmt"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrNoClient is the cause used when Fetch is handed a nil client
var ErrNoClient = errors.Base("retrieval client not available")

// 🚨 RetrievalError reports that the network client failed to produce a reference.
// Sub-causes (unreachable peer, missing content, timeout) are not distinguished.
type RetrievalError struct {
	Reference string
	Cause     error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieving %s: %v", e.Reference, e.Cause)
}

func (e *RetrievalError) Unwrap() error {
	return e.Cause
}

// 📥 Fetch retrieves reference through client. The set is returned whole, in the
// client's order, or not at all. Nothing is retried.
func Fetch(ctx context.Context, client Client, reference string) (RetrievedSet, error) {
	logger := zerolog.Ctx(ctx)

	if client == nil {
		return nil, &RetrievalError{Reference: reference, Cause: ErrNoClient}
	}

	logger.Debug().Msg("fetching reference")

	files, err := client.Get(ctx, reference)
	if err != nil {
		return nil, &RetrievalError{Reference: reference, Cause: errors.WithStack(err)}
	}

	set := make(RetrievedSet, len(files))
	copy(set, files)
	return set, nil
}
