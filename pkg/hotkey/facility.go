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

// Package hotkey registers system wide keyboard shortcuts described by
// accelerator strings such as "CommandOrControl+Alt+D".
package hotkey

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.design/x/hotkey"
)

var (
	// ErrAlreadyRegistered is returned when the accelerator is already bound
	ErrAlreadyRegistered = errors.Base("accelerator already registered")
	// ErrNotRegistered is returned when unregistering an unknown accelerator
	ErrNotRegistered = errors.Base("accelerator not registered")
)

// nativeHotkey is the part of *hotkey.Hotkey the facility uses
type nativeHotkey interface {
	Register() error
	Unregister() error
	Keydown() <-chan hotkey.Event
}

type binding struct {
	hk   nativeHotkey
	stop chan struct{}
	done chan struct{}
}

// 🎹 Facility binds accelerators to handlers. Handlers run on a dedicated
// goroutine per binding, one keypress at a time.
type Facility struct {
	ctx context.Context

	mu       sync.Mutex
	bindings map[string]*binding

	newHotkey func(Accelerator) (nativeHotkey, error)
}

// 🏭 NewFacility creates a facility; ctx carries the logger
func NewFacility(ctx context.Context) *Facility {
	return &Facility{
		ctx:       ctx,
		bindings:  make(map[string]*binding),
		newHotkey: newNativeHotkey,
	}
}

func newNativeHotkey(acc Accelerator) (nativeHotkey, error) {
	mods, key, ok := acc.native()
	if !ok {
		return nil, errors.WithDetails(ErrInvalidAccelerator, "accelerator", acc.String(), "reason", "key not supported")
	}
	return hotkey.New(mods, key), nil
}

// ➕ Register binds handler to accelerator
func (f *Facility) Register(accelerator string, handler func()) error {
	acc, err := ParseAccelerator(accelerator)
	if err != nil {
		return err
	}
	name := acc.String()

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.bindings[name]; ok {
		return errors.WithDetails(ErrAlreadyRegistered, "accelerator", name)
	}

	hk, err := f.newHotkey(acc)
	if err != nil {
		return err
	}
	if err := hk.Register(); err != nil {
		return errors.Errorf("registering %s: %w", name, err)
	}

	b := &binding{hk: hk, stop: make(chan struct{}), done: make(chan struct{})}
	f.bindings[name] = b
	go f.listen(name, b, handler)

	zerolog.Ctx(f.ctx).Debug().Str("accelerator", name).Msg("hotkey registered")
	return nil
}

func (f *Facility) listen(name string, b *binding, handler func()) {
	defer close(b.done)
	keydown := b.hk.Keydown()
	for {
		select {
		case <-b.stop:
			return
		case _, ok := <-keydown:
			if !ok {
				return
			}
			zerolog.Ctx(f.ctx).Debug().Str("accelerator", name).Msg("hotkey pressed")
			handler()
		}
	}
}

// ➖ Unregister removes the binding for accelerator
func (f *Facility) Unregister(accelerator string) error {
	acc, err := ParseAccelerator(accelerator)
	if err != nil {
		return err
	}
	name := acc.String()

	f.mu.Lock()
	b, ok := f.bindings[name]
	if ok {
		delete(f.bindings, name)
	}
	f.mu.Unlock()

	if !ok {
		return errors.WithDetails(ErrNotRegistered, "accelerator", name)
	}

	close(b.stop)
	err = b.hk.Unregister()
	<-b.done
	if err != nil {
		return errors.Errorf("unregistering %s: %w", name, err)
	}

	zerolog.Ctx(f.ctx).Debug().Str("accelerator", name).Msg("hotkey unregistered")
	return nil
}

// 🧹 Close unregisters every binding
func (f *Facility) Close() error {
	f.mu.Lock()
	names := make([]string, 0, len(f.bindings))
	for name := range f.bindings {
		names = append(names, name)
	}
	f.mu.Unlock()

	var errs []error
	for _, name := range names {
		if err := f.Unregister(name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
