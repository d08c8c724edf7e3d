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

package picker

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

// 🔧 MockDialog is a mock implementation of Dialog
type MockDialog struct {
	mock.Mock
}

func (m *MockDialog) ChooseDirectory(ctx context.Context, opts Options) (string, error) {
	result := m.Called(ctx, opts)
	return result.String(0), result.Error(1)
}

func TestChoose(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())
	start := t.TempDir()
	chosen := t.TempDir()

	tests := []struct {
		name    string
		answer  string
		err     error
		wantDir string
		wantOK  bool
		wantErr bool
	}{
		{name: "chosen", answer: chosen, wantDir: chosen, wantOK: true},
		{name: "cancelled", err: ErrCancelled},
		{name: "empty_result", answer: ""},
		{name: "dialog_failure", err: errors.New("no display"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dialog := &MockDialog{}
			dialog.On("ChooseDirectory", ctx, Options{Title: "Select a directory", StartDir: start}).
				Return(tt.answer, tt.err)

			p := New(dialog)
			p.startDir = func() string { return start }

			dir, ok, err := p.Choose(ctx)
			if tt.wantErr {
				require.Error(t, err)
				assert.False(t, ok)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantDir, dir)
			dialog.AssertExpectations(t)
		})
	}
}

func TestChooseMakesPathAbsolute(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	p := New(StaticDialog{Dir: "relative/out"})
	p.startDir = func() string { return t.TempDir() }

	dir, ok, err := p.Choose(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, filepath.IsAbs(dir), "path should be absolute")
	assert.Equal(t, "out", filepath.Base(dir))
}

func TestStaticDialogCancels(t *testing.T) {
	_, err := StaticDialog{}.ChooseDirectory(context.Background(), Options{})
	assert.True(t, errors.Is(err, ErrCancelled))
}
