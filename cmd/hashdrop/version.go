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

package main

import (
	"fmt"
	"runtime"
	runtimedebug "runtime/debug"
	"strings"
)

// trackedDeps are the libraries whose versions matter when reporting bugs
var trackedDeps = []string{
	"github.com/ipfs/kubo",
	"github.com/ipfs/boxo",
	"fyne.io/fyne/v2",
	"golang.design/x/hotkey",
}

// VersionInfo represents the version information of the binary
type VersionInfo struct {
	Version   string            `json:"version"`
	GoVersion string            `json:"go_version"`
	Platform  string            `json:"platform"`
	Revision  string            `json:"revision"`
	Time      string            `json:"time"`
	Modified  bool              `json:"modified"`
	Deps      map[string]string `json:"deps"`
}

// GetVersionInfo returns the version information from build info
func GetVersionInfo() *VersionInfo {
	info := &VersionInfo{
		Version:   "dev",
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		Deps:      map[string]string{},
	}

	buildInfo, ok := runtimedebug.ReadBuildInfo()
	if !ok {
		return info
	}

	if v := buildInfo.Main.Version; v != "" && v != "(devel)" {
		info.Version = v
	}
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.Revision = setting.Value
		case "vcs.time":
			info.Time = setting.Value
		case "vcs.modified":
			info.Modified = setting.Value == "true"
		}
	}
	for _, dep := range buildInfo.Deps {
		for _, tracked := range trackedDeps {
			if dep.Path == tracked {
				info.Deps[dep.Path] = dep.Version
			}
		}
	}

	return info
}

// FormatVersion returns a formatted string of version information
func FormatVersion() string {
	info := GetVersionInfo()
	modified := ""
	if info.Modified {
		modified = " (modified)"
	}

	var deps strings.Builder
	for _, path := range trackedDeps {
		if v, ok := info.Deps[path]; ok {
			fmt.Fprintf(&deps, "  %-24s %s\n", path, v)
		}
	}

	out := fmt.Sprintf(`🚀 hashdrop version info:
Version:   %s
Revision:  %s%s
Built:     %s
Go:        %s
Platform:  %s
`, info.Version, info.Revision, modified, info.Time, info.GoVersion, info.Platform)

	if deps.Len() > 0 {
		out += "Libraries:\n" + deps.String()
	}
	return out
}
