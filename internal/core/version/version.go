// Package version reports what build is running
package version

import "runtime/debug"

// Stamped with -ldflags "-X unirank/internal/core/version.version=v1.2.0 -X ...commit=abc -X ...date=2025-09-02"
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// BuildInfo is the build stamp of a binary
type BuildInfo struct {
	Service  string `json:"service"`
	Version  string `json:"version"`
	Commit   string `json:"commit"`
	Date     string `json:"date"`
	Modified bool   `json:"modified,omitempty"`
}

var readBuildInfo = debug.ReadBuildInfo

// Info returns the stamp for service. Unstamped commit and date fall back to the vcs settings the go tool embeds
func Info(service string) BuildInfo {
	bi := BuildInfo{Service: service, Version: version, Commit: commit, Date: date}
	if info, ok := readBuildInfo(); ok {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if bi.Commit == "" {
					bi.Commit = s.Value
				}
			case "vcs.time":
				if bi.Date == "" {
					bi.Date = s.Value
				}
			case "vcs.modified":
				bi.Modified = s.Value == "true"
			}
		}
	}
	if bi.Commit == "" {
		bi.Commit = "none"
	}
	if bi.Date == "" {
		bi.Date = "unknown"
	}
	return bi
}
