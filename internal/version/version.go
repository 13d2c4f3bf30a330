// Package version holds the artifactbuilder release identifiers.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at link time:
// go build -ldflags "-X git.home.luguber.info/inful/artifactbuilder/internal/version.Version=v0.3.0".
var (
	Version   = "unknown"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const unknown = "unknown"

// Info is the resolved version triple.
type Info struct {
	Version   string
	BuildTime string
	GitCommit string
}

// Current returns the linked values, falling back to module and VCS data
// embedded by the go tool.
func Current() Info {
	info := Info{Version: Version, BuildTime: BuildTime, GitCommit: GitCommit}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = fillFromBuildInfo(info, bi)
	}
	return info
}

func fillFromBuildInfo(info Info, bi *debug.BuildInfo) Info {
	if info.Version == unknown && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == unknown {
				info.GitCommit = s.Value
			}
		case "vcs.time":
			if info.BuildTime == unknown {
				info.BuildTime = s.Value
			}
		}
	}
	return info
}

// String renders "artifactbuilder <version> (commit <sha>, built <time>)".
func (i Info) String() string {
	commit := i.GitCommit
	if len(commit) > 12 {
		commit = commit[:12]
	}
	return fmt.Sprintf("artifactbuilder %s (commit %s, built %s)", i.Version, commit, i.BuildTime)
}
