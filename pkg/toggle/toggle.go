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

// Package toggle arms and disarms the download hotkey so that it is
// registered exactly when the persisted setting says it should be.
package toggle

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🎹 Binder registers global hotkeys
type Binder interface {
	Register(accelerator string, handler func()) error
	Unregister(accelerator string) error
}

// 🗄️ Store is the persisted boolean setting the controller follows
type Store interface {
	Bool(key string, def bool) bool
	OnBoolChange(key string, def bool, fn func(newValue, oldValue bool)) func()
}

// State is whether the hotkey is currently registered
type State int

const (
	Unarmed State = iota
	Armed
)

func (s State) String() string {
	if s == Armed {
		return "armed"
	}
	return "unarmed"
}

// 🔧 Options configures a Controller
type Options struct {
	Binder      Binder
	Accelerator string
	Handler     func()
	// Key and Default select the persisted setting used by Init
	Key     string
	Default bool
}

// 🎚️ Controller owns the armed state of one hotkey
type Controller struct {
	binder      Binder
	accelerator string
	handler     func()
	key         string
	def         bool

	mu    sync.Mutex
	state State

	// syncMu orders the initial read of the setting with change notifications
	syncMu sync.Mutex
}

// 🏭 New creates an unarmed controller
func New(opts Options) (*Controller, error) {
	if opts.Binder == nil {
		return nil, errors.Errorf("binder is required")
	}
	if opts.Accelerator == "" {
		return nil, errors.Errorf("accelerator is required")
	}
	if opts.Handler == nil {
		return nil, errors.Errorf("handler is required")
	}
	return &Controller{
		binder:      opts.Binder,
		accelerator: opts.Accelerator,
		handler:     opts.Handler,
		key:         opts.Key,
		def:         opts.Default,
	}, nil
}

// State returns the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// 🔀 SetArmed registers or unregisters the hotkey when the requested state
// differs from the current one. A failed registration leaves the controller
// unarmed.
func (c *Controller) SetArmed(ctx context.Context, armed bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	logger := zerolog.Ctx(ctx).With().Str("accelerator", c.accelerator).Logger()

	switch {
	case armed && c.state == Unarmed:
		if err := c.binder.Register(c.accelerator, c.handler); err != nil {
			return errors.Errorf("registering hotkey %s: %w", c.accelerator, err)
		}
		c.state = Armed
		logger.Info().Msg("Hash download shortcut enabled")
	case !armed && c.state == Armed:
		if err := c.binder.Unregister(c.accelerator); err != nil {
			return errors.Errorf("unregistering hotkey %s: %w", c.accelerator, err)
		}
		c.state = Unarmed
		logger.Info().Msg("Hash download shortcut disabled")
	default:
		logger.Trace().Bool("armed", armed).Msg("hotkey already in requested state")
	}
	return nil
}

// 🔔 OnChange reacts to a setting change notification
func (c *Controller) OnChange(ctx context.Context, newValue, oldValue bool) error {
	if newValue == oldValue {
		return nil
	}
	return c.SetArmed(ctx, newValue)
}

// 🚀 Init arms the controller from the persisted setting and follows later
// changes of it. The subscription is made before the setting is read, so a
// change landing in between is still delivered. The returned function stops
// following.
func (c *Controller) Init(ctx context.Context, store Store) func() {
	stop := store.OnBoolChange(c.key, c.def, func(newValue, oldValue bool) {
		c.syncMu.Lock()
		defer c.syncMu.Unlock()
		if err := c.OnChange(ctx, newValue, oldValue); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Bool("armed", newValue).Msg("applying hotkey setting")
		}
	})

	c.syncMu.Lock()
	defer c.syncMu.Unlock()
	if err := c.SetArmed(ctx, store.Bool(c.key, c.def)); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("arming hotkey from settings")
	}

	return stop
}
