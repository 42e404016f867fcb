// Package version reports the build version of streamfusion binaries.
//
// Version, git commit, branch, and build time are set at compile time
// via -ldflags, falling back to the VCS stamps of the Go toolchain:
//
//	go build -ldflags "-X github.com/kbukum/streamfusion/version.Version=1.0.0"
package version
