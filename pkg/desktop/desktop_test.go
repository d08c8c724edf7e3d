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

package desktop

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/hashdrop/pkg/settings"
	"gitlab.com/tozd/go/errors"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func TestClipboardReadText(t *testing.T) {
	tests := []struct {
		name string
		text string
		err  error
		want string
	}{
		{name: "text", text: "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG", want: "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"},
		{name: "empty", text: "", want: ""},
		{name: "error yields empty", text: "ignored", err: errors.New("no clipboard utility"), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClipboard(testContext(t))
			c.read = func() (string, error) { return tt.text, tt.err }
			assert.Equal(t, tt.want, c.ReadText())
		})
	}
}

func TestFixedText(t *testing.T) {
	assert.Equal(t, "abc", FixedText("abc").ReadText())
}

type fakeStore struct {
	value bool
	set   chan bool
	fn    func(newValue, oldValue bool)
}

func (f *fakeStore) Bool(key string, def bool) bool { return f.value }

func (f *fakeStore) SetBool(ctx context.Context, key string, value bool) error {
	f.set <- value
	return nil
}

func (f *fakeStore) OnBoolChange(key string, def bool, fn func(newValue, oldValue bool)) func() {
	f.fn = fn
	return func() { f.fn = nil }
}

func TestTrayMenu(t *testing.T) {
	test.NewTempApp(t)
	ctx := testContext(t)

	store := &fakeStore{value: true, set: make(chan bool, 1)}
	quit := 0
	menu, detach := TrayMenu(ctx, store, settings.DownloadHashShortcut, func() { quit++ })

	require.Len(t, menu.Items, 3)
	item := menu.Items[0]
	assert.Equal(t, TrayItemLabel, item.Label)
	assert.True(t, item.Checked, "initial check mark follows the store")
	assert.True(t, menu.Items[1].IsSeparator)
	assert.True(t, menu.Items[2].IsQuit)

	// clicking the item stores the flipped value
	item.Action()
	select {
	case v := <-store.set:
		assert.False(t, v)
	case <-time.After(defaultWait):
		t.Fatal("tray action did not store a value")
	}

	// a change made elsewhere moves the check mark
	require.NotNil(t, store.fn)
	store.fn(false, true)
	assert.Eventually(t, func() bool { return !item.Checked }, defaultWait, defaultTick)

	menu.Items[2].Action()
	assert.Equal(t, 1, quit)

	detach()
	assert.Nil(t, store.fn)
}

func TestInstallTray(t *testing.T) {
	ctx := testContext(t)
	shell := NewShellWithApp(ctx, test.NewTempApp(t))

	store, err := settings.Open(ctx, filepath.Join(t.TempDir(), "settings.yaml"))
	require.NoError(t, err)

	// the test driver may or may not provide a tray; either way a detach
	// function comes back
	detach, _ := shell.InstallTray(ctx, store, settings.DownloadHashShortcut)
	require.NotNil(t, detach)
	detach()
	assert.NotNil(t, shell.App())
}

const (
	defaultWait = 2 * time.Second
	defaultTick = 10 * time.Millisecond
)

type recordingBinder struct {
	registered []string
}

func (r *recordingBinder) Register(accelerator string, handler func()) error {
	r.registered = append(r.registered, accelerator)
	return nil
}

func (r *recordingBinder) Unregister(accelerator string) error {
	r.registered = r.registered[:0]
	return nil
}

func TestUIBinderOutsideEventLoop(t *testing.T) {
	ctx := testContext(t)
	shell := NewShellWithApp(ctx, test.NewTempApp(t))

	inner := &recordingBinder{}
	b := shell.UIBinder(inner)

	require.NoError(t, b.Register("CommandOrControl+Alt+D", func() {}))
	assert.Equal(t, []string{"CommandOrControl+Alt+D"}, inner.registered)
	require.NoError(t, b.Unregister("CommandOrControl+Alt+D"))
	assert.Empty(t, inner.registered)
}
