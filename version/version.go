package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

const shortCommitLen = 7

var (
	// Set at build time with -ldflags.
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// Info is the build identity reported by the version command and the
// status server.
type Info struct {
	Version   string    `json:"version" yaml:"version"`
	GitCommit string    `json:"git_commit,omitempty" yaml:"git_commit,omitempty"`
	BuildTime string    `json:"build_time,omitempty" yaml:"build_time,omitempty"`
	GoVersion string    `json:"go_version" yaml:"go_version"`
	BuildDate time.Time `json:"-" yaml:"-"`
	IsRelease bool      `json:"is_release" yaml:"is_release"`
	IsDirty   bool      `json:"is_dirty" yaml:"is_dirty"`
}

// GetVersionInfo resolves the build identity. Linker values take precedence
// over the embedded VCS settings.
func GetVersionInfo() *Info {
	info := &Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		IsRelease: isRelease(Version),
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.GitCommit == "" {
					info.GitCommit = s.Value
				}
			case "vcs.modified":
				info.IsDirty = s.Value == "true"
			case "vcs.time":
				if info.BuildTime == "" {
					info.BuildTime = s.Value
				}
			}
		}
	}

	if len(info.GitCommit) > shortCommitLen {
		info.GitCommit = info.GitCommit[:shortCommitLen]
	}
	if info.BuildTime != "" {
		if t, err := time.Parse(time.RFC3339, info.BuildTime); err == nil {
			info.BuildDate = t.UTC()
		}
	}
	if info.IsDirty {
		info.IsRelease = false
	}
	return info
}

// isRelease reports whether v looks like a tagged semver build.
func isRelease(v string) bool {
	v = strings.TrimPrefix(v, "v")
	if v == "" || v == "dev" || strings.Contains(v, "dirty") {
		return false
	}
	return v[0] >= '0' && v[0] <= '9'
}

// String renders "version (commit, built date)" with the parts that are known.
func (i *Info) String() string {
	var extra []string
	if i.GitCommit != "" {
		commit := i.GitCommit
		if i.IsDirty {
			commit += "-dirty"
		}
		extra = append(extra, commit)
	}
	if !i.BuildDate.IsZero() {
		extra = append(extra, "built "+i.BuildDate.Format("2006-01-02"))
	}
	if len(extra) == 0 {
		return i.Version
	}
	return fmt.Sprintf("%s (%s)", i.Version, strings.Join(extra, ", "))
}

// UserAgent returns the User-Agent sent to GitHub and Manifold.
func UserAgent() string {
	return "calabi/" + GetVersionInfo().Version
}
