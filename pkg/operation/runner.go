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
	"sync"

	"github.com/rs/zerolog"
)

// 🎬 Invocation is a single end-to-end run, usually a *Pipeline
type Invocation interface {
	Run(ctx context.Context) (Result, error)
}

// 🏃 Runner executes invocations. In async mode every Trigger starts its own
// goroutine; invocations are neither serialized nor deduplicated.
type Runner struct {
	logger *zerolog.Logger
	async  bool
	wg     sync.WaitGroup
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *zerolog.Logger, async bool) *Runner {
	return &Runner{
		logger: logger,
		async:  async,
	}
}

// 🏃 Trigger runs inv, in the background when the runner is async
func (r *Runner) Trigger(ctx context.Context, inv Invocation) {
	if r.async {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			r.runSync(ctx, inv)
		}()
		return
	}
	r.runSync(ctx, inv)
}

// 🎹 Handler returns a zero-argument function that triggers inv, suitable for
// a hotkey binding
func (r *Runner) Handler(ctx context.Context, inv Invocation) func() {
	return func() {
		r.Trigger(ctx, inv)
	}
}

// Run executes inv inline and returns its result
func (r *Runner) Run(ctx context.Context, inv Invocation) (Result, error) {
	return r.runSync(ctx, inv)
}

// ⏳ Wait blocks until every background invocation has returned
func (r *Runner) Wait() {
	r.wg.Wait()
}

// 🔄 runSync runs an invocation and logs a failure
func (r *Runner) runSync(ctx context.Context, inv Invocation) (Result, error) {
	res, err := inv.Run(ctx)
	if err != nil {
		r.logger.Error().Err(err).Str("reference", res.Reference).Msg("download invocation failed")
		return res, err
	}
	r.logger.Debug().Str("reference", res.Reference).Stringer("outcome", res.Outcome).Msg("download invocation finished")
	return res, nil
}
