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

package operation_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/walteh/hashdrop/pkg/remote"
)

const cidV0 = "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"

// 🧪 testContext returns a context carrying a test logger
func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
	return logger.WithContext(context.Background())
}

// 📋 staticClipboard always returns its text
type staticClipboard string

func (c staticClipboard) ReadText() string { return string(c) }

// 🔧 MockAlerter is a mock implementation of operation.Alerter
type MockAlerter struct {
	mock.Mock
}

func (m *MockAlerter) Alert(ctx context.Context, title, message string) {
	m.Called(ctx, title, message)
}

// 🔧 MockChooser is a mock implementation of operation.Chooser
type MockChooser struct {
	mock.Mock
}

func (m *MockChooser) Choose(ctx context.Context) (string, bool, error) {
	result := m.Called(ctx)
	return result.String(0), result.Bool(1), result.Error(2)
}

// 🔧 MockClient is a mock implementation of remote.Client
type MockClient struct {
	mock.Mock
}

func (m *MockClient) Get(ctx context.Context, reference string) ([]remote.RetrievedFile, error) {
	result := m.Called(ctx, reference)
	files, _ := result.Get(0).([]remote.RetrievedFile)
	return files, result.Error(1)
}

const (
	defaultWait = 2 * time.Second
	defaultTick = 10 * time.Millisecond
)
