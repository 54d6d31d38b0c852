// Package version reports build information for the tintplay binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	// Version is the release version, set via ldflags.
	Version string
	// BuildDate is when the binary was built, set via ldflags.
	BuildDate string
)

// Info describes one build.
type Info struct {
	Version   string `json:"version"`
	Revision  string `json:"revision"`
	BuildDate string `json:"buildDate,omitempty"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// Get returns the build information of the running binary.
func Get() Info {
	return fromBuildInfo(debug.ReadBuildInfo())
}

func fromBuildInfo(bi *debug.BuildInfo, ok bool) Info {
	info := Info{
		Version:   Version,
		Revision:  "unknown",
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	if !ok {
		if info.Version == "" {
			info.Version = "devel"
		}

		return info
	}

	if info.Version == "" {
		info.Version = bi.Main.Version
	}

	if info.Version == "" || info.Version == "(devel)" {
		info.Version = "devel"
	}

	modified := false

	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
		case "vcs.time":
			if info.BuildDate == "" {
				info.BuildDate = s.Value
			}
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}

	if modified {
		info.Revision += "-dirty"
	}

	return info
}

// String formats the information for the version command.
func (i Info) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "tintplay %s\n", i.Version)
	fmt.Fprintf(&b, "  revision: %s\n", i.Revision)

	if i.BuildDate != "" {
		fmt.Fprintf(&b, "  built:    %s\n", i.BuildDate)
	}

	fmt.Fprintf(&b, "  go:       %s %s", i.GoVersion, i.Platform)

	return b.String()
}
