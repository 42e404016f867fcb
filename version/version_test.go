package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func saveAndRestore() func() {
	origVersion, origCommit, origBranch, origBuildTime, origGoVersion :=
		Version, GitCommit, GitBranch, BuildTime, GoVersion
	return func() {
		Version = origVersion
		GitCommit = origCommit
		GitBranch = origBranch
		BuildTime = origBuildTime
		GoVersion = origGoVersion
	}
}

func TestGetVersionInfo_LinkerValues(t *testing.T) {
	defer saveAndRestore()()
	Version = "v1.2.0"
	GitCommit = "abcdef0123"
	BuildTime = "2026-01-02T03:04:05Z"
	GoVersion = "go1.26.0"

	info := GetVersionInfo()
	if !info.IsRelease {
		t.Error("expected tagged version to be a release")
	}
	if info.GitCommit != "abcdef0" {
		t.Errorf("expected short commit, got %q", info.GitCommit)
	}
	if info.BuildDate.Year() != 2026 {
		t.Errorf("expected parsed build date, got %v", info.BuildDate)
	}
	if info.GoVersion != "go1.26.0" {
		t.Errorf("expected linker go version, got %q", info.GoVersion)
	}
}

func TestGetVersionInfo_Dev(t *testing.T) {
	defer saveAndRestore()()
	Version = "dev"
	if GetVersionInfo().IsRelease {
		t.Error("dev should not be a release")
	}
	Version = "v1.0.0-dirty"
	if GetVersionInfo().IsRelease {
		t.Error("dirty version should not be a release")
	}
}

func TestApplyBuildInfo(t *testing.T) {
	info := &Info{}
	applyBuildInfo(info, &debug.BuildInfo{
		GoVersion: "go1.26.1",
		Main:      debug.Module{Path: "github.com/kbukum/streamfusion"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.modified", Value: "true"},
			{Key: "vcs.time", Value: "2026-03-01T00:00:00Z"},
		},
	})
	if info.Module != "github.com/kbukum/streamfusion" {
		t.Errorf("unexpected module %q", info.Module)
	}
	if info.GitCommit != "0123456" || !info.IsDirty {
		t.Errorf("unexpected vcs info %+v", info)
	}
	if info.BuildTime != "2026-03-01T00:00:00Z" || info.GoVersion != "go1.26.1" {
		t.Errorf("unexpected build info %+v", info)
	}

	pinned := &Info{GitCommit: "fixed", BuildTime: "set", GoVersion: "go1.0"}
	applyBuildInfo(pinned, &debug.BuildInfo{GoVersion: "go1.26.1", Settings: []debug.BuildSetting{
		{Key: "vcs.revision", Value: "other"},
		{Key: "vcs.time", Value: "other"},
	}})
	if pinned.GitCommit != "fixed" || pinned.BuildTime != "set" || pinned.GoVersion != "go1.0" {
		t.Errorf("expected linker values to win, got %+v", pinned)
	}
}

func TestGetShortVersion(t *testing.T) {
	defer saveAndRestore()()
	Version = "v2.0.0"
	GitCommit = "1234567"
	got := GetShortVersion()
	if !strings.HasPrefix(got, "v2.0.0-1234567") {
		t.Errorf("expected v2.0.0-1234567 prefix, got %q", got)
	}
}

func TestGetFullVersion(t *testing.T) {
	tests := []struct {
		name     string
		branch   string
		contains []string
		excludes []string
	}{
		{"main branch omitted", "main", []string{"v1.0.0-abc1234", "(built 2026-01-02T03:04:05Z)"}, []string{"-main"}},
		{"feature branch kept", "feat/x", []string{"v1.0.0-abc1234-feat/x"}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer saveAndRestore()()
			Version = "v1.0.0"
			GitCommit = "abc1234"
			GitBranch = tc.branch
			BuildTime = "2026-01-02T03:04:05Z"
			got := GetFullVersion()
			for _, want := range tc.contains {
				if !strings.Contains(got, want) {
					t.Errorf("expected %q in %q", want, got)
				}
			}
			for _, bad := range tc.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("expected %q absent from %q", bad, got)
				}
			}
		})
	}
}
