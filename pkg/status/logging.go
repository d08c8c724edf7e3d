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

package status

import (
	"fmt"
)

// FileFormatter defines how file results and summaries should be formatted
type FileFormatter interface {
	// FormatResult formats a single file result
	FormatResult(r FileResult) string

	// FormatSummary formats the totals of a materialization
	FormatSummary(s Summary) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatResult formats a file result with emojis
func (f *DefaultFileFormatter) FormatResult(r FileResult) string {
	switch r.Outcome {
	case OutcomeWritten:
		return fmt.Sprintf("✨ Downloaded %s", r.Path)
	case OutcomeSkipped:
		return fmt.Sprintf("👍 Kept existing %s", r.Path)
	case OutcomeIgnored:
		return fmt.Sprintf("🙈 Ignored %s", r.Path)
	case OutcomeFailed:
		if r.Error != nil {
			return fmt.Sprintf("❌ Failed %s: %v", r.Path, r.Error)
		}
		return fmt.Sprintf("❌ Failed %s", r.Path)
	default:
		return fmt.Sprintf("❔ %s", r.Path)
	}
}

// FormatSummary formats the totals of a summary
func (f *DefaultFileFormatter) FormatSummary(s Summary) string {
	prefix := "✅"
	if s.Failed() > 0 {
		prefix = "⚠️ "
	}
	return fmt.Sprintf("%s %d written, %d skipped, %d failed, %d ignored",
		prefix, s.Written(), s.Skipped(), s.Failed(), s.Ignored())
}
