// Package version exposes the build identity of the calabi binary.
//
// Values are stamped at link time and fall back to the VCS settings the Go
// toolchain embeds in the binary:
//
//	go build -ldflags "-X github.com/alextes/calabi/version.Version=v0.3.0 \
//	  -X github.com/alextes/calabi/version.GitCommit=$(git rev-parse --short HEAD)"
package version
