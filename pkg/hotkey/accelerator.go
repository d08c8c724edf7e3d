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

package hotkey

import (
	"fmt"
	"sort"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ErrInvalidAccelerator is returned for accelerators that cannot be parsed
var ErrInvalidAccelerator = errors.Base("invalid accelerator")

// Mod is a platform independent modifier
type Mod int

const (
	ModCommandOrControl Mod = iota // Command on macOS, Control elsewhere
	ModCommand
	ModControl
	ModAlt
	ModShift
	ModSuper
)

var modNames = map[Mod]string{
	ModCommandOrControl: "CommandOrControl",
	ModCommand:          "Command",
	ModControl:          "Control",
	ModAlt:              "Alt",
	ModShift:            "Shift",
	ModSuper:            "Super",
}

var modAliases = map[string]Mod{
	"commandorcontrol": ModCommandOrControl,
	"cmdorctrl":        ModCommandOrControl,
	"command":          ModCommand,
	"cmd":              ModCommand,
	"control":          ModControl,
	"ctrl":             ModControl,
	"alt":              ModAlt,
	"option":           ModAlt,
	"shift":            ModShift,
	"super":            ModSuper,
	"meta":             ModSuper,
}

func (m Mod) String() string {
	if name, ok := modNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mod(%d)", int(m))
}

var keyAliases = map[string]string{
	"space":  "Space",
	"enter":  "Return",
	"return": "Return",
	"esc":    "Escape",
	"escape": "Escape",
	"tab":    "Tab",
	"delete": "Delete",
	"up":     "Up",
	"down":   "Down",
	"left":   "Left",
	"right":  "Right",
}

// ⌨️ Accelerator is a parsed key combination such as CommandOrControl+Alt+D
type Accelerator struct {
	Mods []Mod
	Key  string
}

// String renders the accelerator in canonical form
func (a Accelerator) String() string {
	parts := make([]string, 0, len(a.Mods)+1)
	for _, m := range a.Mods {
		parts = append(parts, m.String())
	}
	return strings.Join(append(parts, a.Key), "+")
}

// 🔍 ParseAccelerator parses a "+" separated accelerator. Modifier names are
// case insensitive and may appear in any order; exactly one key is required.
func ParseAccelerator(s string) (Accelerator, error) {
	invalid := func(reason string) (Accelerator, error) {
		return Accelerator{}, errors.WithDetails(ErrInvalidAccelerator, "accelerator", s, "reason", reason)
	}

	if strings.TrimSpace(s) == "" {
		return invalid("empty")
	}

	var acc Accelerator
	seen := map[Mod]bool{}
	for _, raw := range strings.Split(s, "+") {
		part := strings.TrimSpace(raw)
		if part == "" {
			return invalid("empty part")
		}
		if mod, ok := modAliases[strings.ToLower(part)]; ok {
			if seen[mod] {
				return invalid("duplicate modifier " + mod.String())
			}
			seen[mod] = true
			acc.Mods = append(acc.Mods, mod)
			continue
		}
		if acc.Key != "" {
			return invalid("more than one key")
		}
		key, ok := normalizeKey(part)
		if !ok {
			return invalid("unknown key " + part)
		}
		acc.Key = key
	}

	if acc.Key == "" {
		return invalid("missing key")
	}
	if len(acc.Mods) == 0 {
		return invalid("missing modifier")
	}

	sort.Slice(acc.Mods, func(i, j int) bool { return acc.Mods[i] < acc.Mods[j] })
	return acc, nil
}

// normalizeKey maps a key token onto the names used by the key table
func normalizeKey(part string) (string, bool) {
	if len(part) == 1 {
		c := strings.ToUpper(part)[0]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			return string(c), true
		}
		return "", false
	}
	lower := strings.ToLower(part)
	if name, ok := keyAliases[lower]; ok {
		return name, true
	}
	if strings.HasPrefix(lower, "f") {
		var n int
		if _, err := fmt.Sscanf(lower, "f%d", &n); err == nil && n >= 1 && n <= 20 && fmt.Sprintf("f%d", n) == lower {
			return fmt.Sprintf("F%d", n), true
		}
	}
	return "", false
}
