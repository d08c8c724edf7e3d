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

//go:build windows

package hotkey

import "golang.design/x/hotkey"

func nativeMod(m Mod) hotkey.Modifier {
	switch m {
	case ModAlt:
		return hotkey.ModAlt
	case ModShift:
		return hotkey.ModShift
	case ModCommand, ModSuper:
		return hotkey.ModWin
	default:
		return hotkey.ModCtrl
	}
}
