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

// Package settings persists small user preferences in a file and notifies
// subscribers when a value changes, either through SetBool or because the
// file was edited by another process.
package settings

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gitlab.com/tozd/go/errors"
)

// DownloadHashShortcut is the key of the hotkey toggle
const DownloadHashShortcut = "download_hash_shortcut"

// 📍 DefaultPath returns the settings file below the XDG config directory
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "hashdrop", "settings.yaml")
}

type subscription struct {
	id   int
	key  string
	def  bool
	last bool
	fn   func(newValue, oldValue bool)
}

// 🗄️ Store is a file backed settings store. It is safe for concurrent use.
type Store struct {
	path string

	// reloadMu orders reads of the file with the notifications they cause
	reloadMu sync.Mutex

	mu     sync.Mutex
	v      *viper.Viper
	subs   []*subscription
	nextID int
}

// 🏭 Open loads the settings file at path. A missing file is treated as empty
// and is created on the first write.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		path = DefaultPath()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Errorf("resolving settings path: %w", err)
	}

	v, err := read(abs)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().Str("path", abs).Msg("settings loaded")

	return &Store{path: abs, v: v}, nil
}

// read parses the file into a fresh viper instance
func read(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return v, nil
		}
		return nil, errors.Errorf("checking settings file: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Errorf("reading settings file %s: %w", path, err)
	}
	return v, nil
}

// Path returns the absolute path of the settings file
func (s *Store) Path() string {
	return s.path
}

// Bool returns the value stored under key, or def when it is not set
func (s *Store) Bool(key string, def bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boolLocked(key, def)
}

func (s *Store) boolLocked(key string, def bool) bool {
	if !s.v.IsSet(key) {
		return def
	}
	return s.v.GetBool(key)
}

// ✏️ SetBool persists value under key and notifies subscribers if it changed
func (s *Store) SetBool(ctx context.Context, key string, value bool) error {
	s.mu.Lock()

	w, err := read(s.path)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	w.Set(key, value)

	if err := s.replace(w); err != nil {
		s.mu.Unlock()
		return err
	}

	zerolog.Ctx(ctx).Debug().Str("key", key).Bool("value", value).Msg("setting stored")

	s.mu.Unlock()
	return s.Reload(ctx)
}

// replace writes w next to the settings file and renames it into place, so a
// concurrent reader sees either the old or the new file and never a partial one
func (s *Store) replace(w *viper.Viper) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Errorf("creating settings directory: %w", err)
	}

	// viper picks the encoding from the extension, so the temporary file keeps it
	ext := filepath.Ext(s.path)
	tmp, err := os.CreateTemp(dir, "."+strings.TrimSuffix(filepath.Base(s.path), ext)+"-*"+ext)
	if err != nil {
		return errors.Errorf("creating temporary settings file: %w", err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("closing temporary settings file: %w", err)
	}

	if err := w.WriteConfigAs(tmpPath); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("writing settings file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("replacing settings file: %w", err)
	}
	return nil
}

// 🔔 OnBoolChange calls fn whenever the value under key changes. The returned
// function removes the subscription.
func (s *Store) OnBoolChange(key string, def bool, fn func(newValue, oldValue bool)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, &subscription{
		id:   id,
		key:  key,
		def:  def,
		last: s.boolLocked(key, def),
		fn:   fn,
	})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

type notification struct {
	fn       func(newValue, oldValue bool)
	new, old bool
}

// 🔄 Reload re-reads the file and notifies subscribers of changed values.
// Reloads are serialized, so subscribers see changes in the order they were
// read and never an older file after a newer one. Subscribers must not call
// SetBool or Reload from inside their callback.
func (s *Store) Reload(ctx context.Context) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	v, err := read(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.v = v
	var pending []notification
	for _, sub := range s.subs {
		cur := s.boolLocked(sub.key, sub.def)
		if cur == sub.last {
			continue
		}
		pending = append(pending, notification{fn: sub.fn, new: cur, old: sub.last})
		sub.last = cur
	}
	s.mu.Unlock()

	for _, n := range pending {
		n.fn(n.new, n.old)
	}

	zerolog.Ctx(ctx).Trace().Int("notified", len(pending)).Msg("settings reloaded")
	return nil
}

// 👀 Watch reloads the store whenever the settings file is written, created
// or replaced, until ctx is done. The parent directory is created if needed.
func (s *Store) Watch(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	dir := filepath.Dir(s.path)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Errorf("creating settings directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Errorf("creating settings watcher: %w", err)
	}
	defer watcher.Close()

	// editors often replace files, so the directory is watched instead of the file
	if err := watcher.Add(dir); err != nil {
		return errors.Errorf("watching %s: %w", dir, err)
	}

	logger.Debug().Str("path", s.path).Msg("watching settings file")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != s.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := s.Reload(ctx); err != nil {
				logger.Warn().Err(err).Str("path", s.path).Msg("reloading settings")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("settings watcher error")
		}
	}
}
