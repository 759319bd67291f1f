package version

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
)

const unknown = "unknown"

// These variables are set during build time
var (
	// Version is the current version
	Version = "0.0.0"

	// Branch is current branch name the code is built off.
	Branch = unknown

	// Revision is the short commit hash of source tree
	Revision = unknown

	// BuiltAt is the build time
	BuiltAt = unknown
)

// Info contains version information
type Info struct {
	Version   string `json:"version"`
	Branch    string `json:"branch"`
	Revision  string `json:"revision"`
	BuiltAt   string `json:"builtAt"`
	GoVersion string `json:"goVersion"`
	Dirty     bool   `json:"dirty,omitempty"`
}

// GetVersionInfo returns version information, completed from the embedded
// build info where ldflags left a value unset.
func GetVersionInfo() Info {
	info := Info{
		Version:   Version,
		Branch:    Branch,
		Revision:  Revision,
		BuiltAt:   BuiltAt,
		GoVersion: runtime.Version(),
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "0.0.0" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Revision == unknown {
				info.Revision = shortRevision(s.Value)
			}
		case "vcs.time":
			if info.BuiltAt == unknown {
				info.BuiltAt = s.Value
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	return info
}

func shortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// String returns a one-line description.
func (i Info) String() string {
	s := fmt.Sprintf("%s (%s@%s, built %s, %s)", i.Version, i.Branch, i.Revision, i.BuiltAt, i.GoVersion)
	if i.Dirty {
		s += " dirty"
	}
	return s
}

// JSON returns the indented JSON encoding.
func (i Info) JSON() string {
	b, _ := json.MarshalIndent(i, "", "  ")
	return string(b)
}
