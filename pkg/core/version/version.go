// ============================================================================
// vmel - Script Engine
// ============================================================================
//
// Package:     version
// Description: Build and release information of the vmel binaries
// Author:      msto63
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version is the release version. Commit and BuildDate are set at link
// time:
//
//	go build -ldflags "-X github.com/msto63/vmel/pkg/core/version.Commit=$(git rev-parse --short HEAD)"
var (
	Version   = "0.1.0"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Language is the version of the vmel language accepted by the engine
const Language = "1"

// Info describes the running binary
type Info struct {
	Version   string `json:"version"`
	Language  string `json:"language"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the build information
func Get() Info {
	return Info{
		Version:   Version,
		Language:  Language,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns a one-line summary
func (i Info) String() string {
	return fmt.Sprintf("vmel %s (language %s, commit %s, built %s, %s %s)",
		i.Version, i.Language, i.Commit, i.BuildDate, i.GoVersion, i.Platform)
}
