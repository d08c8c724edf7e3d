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

// Package desktop adapts the windowing toolkit and the system clipboard to
// the small interfaces the download pipeline needs.
package desktop

import (
	"context"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	fynedesktop "fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"github.com/rs/zerolog"
	"github.com/walteh/hashdrop/pkg/picker"
	"gitlab.com/tozd/go/errors"
)

// AppID identifies the application to the toolkit
const AppID = "io.walteh.hashdrop"

// TrayItemLabel is the label of the tray checkbox
const TrayItemLabel = "Download Hash Shortcut"

// 🗄️ SettingStore is the persisted boolean the tray item reflects
type SettingStore interface {
	Bool(key string, def bool) bool
	SetBool(ctx context.Context, key string, value bool) error
	OnBoolChange(key string, def bool, fn func(newValue, oldValue bool)) func()
}

// 🪟 Shell owns the toolkit application. Dialogs are shown in a helper
// window that stays hidden while no dialog is open.
type Shell struct {
	app    fyne.App
	window fyne.Window
	logger *zerolog.Logger

	open    int // dialogs currently shown, only touched on the UI goroutine
	running atomic.Bool
}

// 🏭 NewShell creates the toolkit application
func NewShell(ctx context.Context) *Shell {
	return NewShellWithApp(ctx, app.NewWithID(AppID))
}

// NewShellWithApp wraps an existing application
func NewShellWithApp(ctx context.Context, a fyne.App) *Shell {
	w := a.NewWindow("hashdrop")
	w.Resize(fyne.NewSize(720, 480))
	w.SetCloseIntercept(w.Hide)
	return &Shell{
		app:    a,
		window: w,
		logger: zerolog.Ctx(ctx),
	}
}

// App returns the toolkit application
func (s *Shell) App() fyne.App {
	return s.app
}

// ▶️ Run runs the event loop; it must be called from the main goroutine and
// returns after Quit. Every fn is started on its own goroutine once the
// loop is up.
func (s *Shell) Run(fns ...func()) {
	s.app.Lifecycle().SetOnStarted(func() {
		s.running.Store(true)
		for _, fn := range fns {
			go fn()
		}
	})
	s.app.Lifecycle().SetOnStopped(func() {
		s.running.Store(false)
	})
	s.app.Run()
	s.running.Store(false)
}

// ⏹️ Quit stops the event loop if it is running
func (s *Shell) Quit() {
	if !s.running.Load() {
		return
	}
	fyne.Do(s.app.Quit)
}

// 🎹 Binder registers global hotkeys
type Binder interface {
	Register(accelerator string, handler func()) error
	Unregister(accelerator string) error
}

// UIBinder performs the registrations of b on the UI goroutine while the
// event loop runs, which some platforms require for global hotkeys
func (s *Shell) UIBinder(b Binder) Binder {
	return uiBinder{shell: s, b: b}
}

type uiBinder struct {
	shell *Shell
	b     Binder
}

func (u uiBinder) onUI(fn func() error) error {
	if !u.shell.running.Load() {
		return fn()
	}
	var err error
	fyne.DoAndWait(func() { err = fn() })
	return err
}

func (u uiBinder) Register(accelerator string, handler func()) error {
	return u.onUI(func() error { return u.b.Register(accelerator, handler) })
}

func (u uiBinder) Unregister(accelerator string) error {
	return u.onUI(func() error { return u.b.Unregister(accelerator) })
}

// present shows d in the helper window; UI goroutine only
func (s *Shell) present(title string, d interface{ Show() }) {
	s.open++
	s.window.SetTitle(title)
	s.window.Show()
	s.window.RequestFocus()
	d.Show()
}

// dismissed hides the helper window once the last dialog is closed; UI
// goroutine only
func (s *Shell) dismissed() {
	s.open--
	if s.open <= 0 {
		s.open = 0
		s.window.Hide()
	}
}

type choice struct {
	dir string
	err error
}

// 📂 ChooseDirectory shows a folder dialog and blocks until it is closed
func (s *Shell) ChooseDirectory(ctx context.Context, opts picker.Options) (string, error) {
	result := make(chan choice, 1)

	fyne.Do(func() {
		d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
			switch {
			case err != nil:
				result <- choice{err: errors.Errorf("folder dialog: %w", err)}
			case uri == nil:
				result <- choice{err: picker.ErrCancelled}
			default:
				result <- choice{dir: uri.Path()}
			}
		}, s.window)

		if opts.StartDir != "" {
			lister, err := storage.ListerForURI(storage.NewFileURI(opts.StartDir))
			if err != nil {
				s.logger.Debug().Err(err).Str("dir", opts.StartDir).Msg("folder dialog start location")
			} else {
				d.SetLocation(lister)
			}
		}
		d.SetOnClosed(s.dismissed)
		s.present(opts.Title, d)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case c := <-result:
		return c.dir, c.err
	}
}

// 🚨 Alert shows an information dialog and blocks until it is dismissed
func (s *Shell) Alert(ctx context.Context, title, message string) {
	done := make(chan struct{})

	fyne.Do(func() {
		d := dialog.NewInformation(title, message, s.window)
		d.SetOnClosed(func() {
			s.dismissed()
			close(done)
		})
		s.present(title, d)
	})

	select {
	case <-ctx.Done():
	case <-done:
	}
}

// 🧰 InstallTray puts a checkbox bound to key and a Quit item into the system
// tray. It returns false when the driver has no tray support. The returned
// function detaches the item from the store.
func (s *Shell) InstallTray(ctx context.Context, store SettingStore, key string) (func(), bool) {
	desk, ok := s.app.(fynedesktop.App)
	if !ok {
		s.logger.Warn().Msg("system tray not supported by this driver")
		return func() {}, false
	}

	menu, detach := TrayMenu(ctx, store, key, s.app.Quit)
	desk.SetSystemTrayMenu(menu)
	return detach, true
}

// 📋 TrayMenu builds the tray menu. Selecting the checkbox flips the stored
// value; the check mark follows the store, including edits made elsewhere.
func TrayMenu(ctx context.Context, store SettingStore, key string, quit func()) (*fyne.Menu, func()) {
	logger := zerolog.Ctx(ctx)

	item := fyne.NewMenuItem(TrayItemLabel, nil)
	item.Checked = store.Bool(key, false)

	quitItem := fyne.NewMenuItem("Quit", quit)
	quitItem.IsQuit = true

	menu := fyne.NewMenu("hashdrop", item, fyne.NewMenuItemSeparator(), quitItem)

	item.Action = func() {
		next := !item.Checked
		go func() {
			if err := store.SetBool(ctx, key, next); err != nil {
				logger.Error().Err(err).Str("key", key).Msg("storing setting from tray")
			}
		}()
	}

	detach := store.OnBoolChange(key, false, func(newValue, _ bool) {
		fyne.Do(func() {
			item.Checked = newValue
			menu.Refresh()
		})
	})

	return menu, detach
}
