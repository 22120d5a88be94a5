// Package version reports what build is running
package version

import (
	"runtime"
	"runtime/debug"
	"sync"
)

// Service is the default service name in logs and meta endpoints
const Service = "reviewsense-api"

// Stamped with -ldflags "-X reviewsense/internal/core/version.version=v1.2.0 ..."
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// BuildInfo describes the running binary
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
	Dirty   bool   `json:"dirty,omitempty"`
}

var (
	once sync.Once
	info BuildInfo
)

// Info returns the linker stamped values, falling back to the vcs settings the go tool
// embeds when a field was not stamped
func Info() BuildInfo {
	once.Do(func() { info = collect(version, commit, date, debug.ReadBuildInfo) })
	return info
}

func collect(ver, rev, at string, read func() (*debug.BuildInfo, bool)) BuildInfo {
	out := BuildInfo{Service: Service, Version: ver, Commit: rev, Date: at, Go: runtime.Version()}
	if bi, ok := read(); ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if out.Commit == "" {
					out.Commit = s.Value
				}
			case "vcs.time":
				if out.Date == "" {
					out.Date = s.Value
				}
			case "vcs.modified":
				out.Dirty = s.Value == "true"
			}
		}
	}
	if len(out.Commit) > 12 {
		out.Commit = out.Commit[:12]
	}
	if out.Commit == "" {
		out.Commit = "none"
	}
	if out.Date == "" {
		out.Date = "unknown"
	}
	return out
}
