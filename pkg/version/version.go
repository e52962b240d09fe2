package version

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
)

var (
	// These variables are set at build time using ldflags
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// develVersion is what runtime/debug reports for binaries built from a work tree
const develVersion = "(devel)"

// Info holds version information
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// Get returns version information. moduleVersion, read from the build info, is used
// when no version was injected with ldflags.
func Get(moduleVersion string) Info {
	v := Version
	if v == "dev" && moduleVersion != "" && moduleVersion != develVersion {
		v = moduleVersion
	}
	return Info{
		Version:   v,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a human-readable version string
func (i Info) String() string {
	return fmt.Sprintf("rig version %s\nGit commit: %s\nBuild date: %s\nGo version: %s\nPlatform: %s",
		color.New(color.FgCyan, color.Bold).Sprint(i.Version), i.GitCommit, i.BuildDate, i.GoVersion, i.Platform)
}
