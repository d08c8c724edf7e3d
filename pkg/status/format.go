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
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent    = 4  // spaces to indent file entries
	nameWidth     = 35 // Base width for filename
	outcomeWidth  = 10 // Width for outcome text
	checksumWidth = 12 // Leading checksum characters shown
)

// 🎯 FormatFileOperation formats a file result as a console line
func FormatFileOperation(r FileResult) string {
	var prefix string
	switch r.Outcome {
	case OutcomeWritten:
		prefix = color.GreenString("✓")
	case OutcomeSkipped:
		prefix = color.HiBlackString("-")
	case OutcomeIgnored:
		prefix = color.YellowString("~")
	case OutcomeFailed:
		prefix = color.RedString("✗")
	default:
		prefix = color.HiBlackString("?")
	}

	checksum := r.Checksum
	if len(checksum) > checksumWidth {
		checksum = checksum[:checksumWidth]
	}

	return strings.TrimRight(fmt.Sprintf("%s%s %s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		fmt.Sprintf("%-*s", nameWidth, r.Path),
		fmt.Sprintf("%-*s", outcomeWidth, r.Outcome),
		checksum,
	), " ")
}
