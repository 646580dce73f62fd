package version

import (
	"strings"
	"testing"
)

func saveAndRestore() func() {
	v, c, b := Version, GitCommit, BuildTime
	return func() {
		Version, GitCommit, BuildTime = v, c, b
	}
}

func TestGetVersionInfoDefaults(t *testing.T) {
	defer saveAndRestore()()
	Version, GitCommit, BuildTime = "dev", "", ""

	info := GetVersionInfo()
	if info.Version != "dev" {
		t.Errorf("expected version 'dev', got %q", info.Version)
	}
	if info.IsRelease {
		t.Error("dev should not be a release")
	}
	if info.GoVersion == "" {
		t.Error("expected go version from build info")
	}
}

func TestGetVersionInfoLinkerValues(t *testing.T) {
	defer saveAndRestore()()
	Version = "v0.3.0"
	GitCommit = "0123456789abcdef"
	BuildTime = "2023-09-05T10:30:00Z"

	info := GetVersionInfo()
	if info.GitCommit != "0123456" {
		t.Errorf("expected commit shortened to 0123456, got %q", info.GitCommit)
	}
	if info.BuildDate.Year() != 2023 || info.BuildDate.Day() != 5 {
		t.Errorf("unexpected build date %v", info.BuildDate)
	}
	if !info.IsDirty && !info.IsRelease {
		t.Error("v0.3.0 should be a release unless the tree is dirty")
	}
}

func TestIsRelease(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"dev", false},
		{"", false},
		{"v1.2.3", true},
		{"1.2.3", true},
		{"1.2.3-dirty", false},
		{"main", false},
	}
	for _, tc := range tests {
		if got := isRelease(tc.in); got != tc.want {
			t.Errorf("isRelease(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestInfoString(t *testing.T) {
	info := &Info{Version: "dev"}
	if got := info.String(); got != "dev" {
		t.Errorf("expected bare version, got %q", got)
	}

	info = &Info{Version: "v1.0.0", GitCommit: "abc1234", IsDirty: true}
	if got := info.String(); got != "v1.0.0 (abc1234-dirty)" {
		t.Errorf("unexpected string %q", got)
	}
}

func TestUserAgent(t *testing.T) {
	defer saveAndRestore()()
	Version = "v0.1.0"
	if ua := UserAgent(); !strings.HasPrefix(ua, "calabi/v0.1.0") {
		t.Errorf("unexpected user agent %q", ua)
	}
}
