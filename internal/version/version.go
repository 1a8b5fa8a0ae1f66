// Package version reports build information for the fincast binary.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Set via -ldflags "-X fincast/internal/version.Version=..."
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// Info is the build information served on /api/version
type Info struct {
	Version     string `json:"version"`
	BuildTime   string `json:"buildTime"`
	GoVersion   string `json:"goVersion"`
	VCSRevision string `json:"vcsRevision,omitempty"`
	VCSTime     string `json:"vcsTime,omitempty"`
	VCSModified bool   `json:"vcsModified"`
}

// Get collects the ldflags values and the VCS stamp of the running binary
func Get() Info {
	info := Info{
		Version:   Version,
		BuildTime: BuildTime,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.VCSRevision = s.Value
		case "vcs.time":
			info.VCSTime = s.Value
		case "vcs.modified":
			info.VCSModified = s.Value == "true"
		}
	}
	return info
}

// Short is the abbreviated revision, marked when the tree was dirty
func (i Info) Short() string {
	rev := i.VCSRevision
	if len(rev) > 8 {
		rev = rev[:8]
	}
	if rev != "" && i.VCSModified {
		rev += "+dirty"
	}
	return rev
}

// String is the one-line form printed by `fincast version`
func (i Info) String() string {
	parts := []string{"fincast " + i.Version}
	if i.BuildTime != "unknown" {
		parts = append(parts, "built "+i.BuildTime)
	}
	if i.GoVersion != "" {
		parts = append(parts, i.GoVersion)
	}
	if rev := i.Short(); rev != "" {
		parts = append(parts, "commit "+rev)
	}
	return strings.Join(parts, ", ")
}

// Check returns a warning for builds that cannot be traced to a commit, or
// "" when there is nothing to report
func (i Info) Check() string {
	switch {
	case i.VCSModified:
		return fmt.Sprintf("fincast %s was built from a modified source tree", i.Version)
	case i.VCSRevision == "" && i.Version == "dev":
		return "development build without version control information"
	default:
		return ""
	}
}
