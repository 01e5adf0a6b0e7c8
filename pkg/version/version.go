package version

import (
	"runtime"
	"runtime/debug"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Info is the build metadata reported by the command-line tool
type Info struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Compiler  string `json:"compiler"`
	Source    string `json:"source,omitempty"`
	Tag       string `json:"tag,omitempty"`
	Branch    string `json:"branch,omitempty"`
	Hash      string `json:"hash,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	Platform  string `json:"platform,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Set with -ldflags -X at build time
var (
	GitSource   string
	GitTag      string
	GitBranch   string
	GitHash     string
	GoBuildTime string
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Version returns the git tag, then the branch, then the short revision,
// or "dev" when none are known
func Version() string {
	if GitTag != "" {
		return GitTag
	}
	if GitBranch != "" {
		return GitBranch
	}
	if hash := revision(); hash != "" {
		if len(hash) > 12 {
			return hash[:12]
		}
		return hash
	}
	return "dev"
}

// Get returns the build metadata for the named executable. Values set at
// link time take precedence over the embedded build info.
func Get(name string) Info {
	info := Info{
		Name:      name,
		Version:   Version(),
		Compiler:  runtime.Version(),
		Source:    GitSource,
		Tag:       GitTag,
		Branch:    GitBranch,
		Hash:      GitHash,
		BuildTime: GoBuildTime,
	}

	build, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if info.Source == "" {
		info.Source = build.Main.Path
	}
	var goos, goarch string
	for _, s := range build.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Hash == "" {
				info.Hash = s.Value
			}
		case "vcs.time":
			if info.BuildTime == "" {
				info.BuildTime = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		case "GOOS":
			goos = s.Value
		case "GOARCH":
			goarch = s.Value
		}
	}
	if goos != "" && goarch != "" {
		info.Platform = goos + "/" + goarch
	}

	// Return the metadata
	return info
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (i Info) String() string {
	return types.Stringify(i)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func revision() string {
	if build, ok := debug.ReadBuildInfo(); ok {
		for _, s := range build.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return ""
}
