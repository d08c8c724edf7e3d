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

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"
)

// 📋 Clipboard reads the system clipboard
type Clipboard struct {
	logger *zerolog.Logger
	read   func() (string, error)
}

// 🏭 NewClipboard creates a clipboard reader; ctx carries the logger
func NewClipboard(ctx context.Context) *Clipboard {
	return &Clipboard{
		logger: zerolog.Ctx(ctx),
		read:   clipboard.ReadAll,
	}
}

// ReadText returns the clipboard text, or "" when it cannot be read
func (c *Clipboard) ReadText() string {
	text, err := c.read()
	if err != nil {
		c.logger.Debug().Err(err).Msg("reading clipboard")
		return ""
	}
	return text
}

// FixedText is a clipboard stand-in that always holds the same text
type FixedText string

// ReadText returns the fixed text
func (t FixedText) ReadText() string {
	return string(t)
}
