// Package pkg provides the core libraries for devenv dependency resolution.
//
// # Overview
//
// devenv downloads the development tools a project declares in its
// devenv.toml manifest, picking the best source for the machine it runs on.
// The pkg directory is organized into five areas:
//
//  1. [platform] - Platform identifiers (arch-vendor-os-abi), matching, specificity
//  2. [manifest] - Manifest loading and the declared-source model
//  3. [fetch] - Checksummed, atomic URL downloads with retry
//  4. [resolve] - Source selection, fallback, and concurrent orchestration
//  5. [errors] - Structured errors with stable codes
//
// # Architecture
//
// The typical data flow through devenv:
//
//	devenv.toml
//	     ↓
//	[manifest] package (parse declarations)
//	     ↓
//	[resolve] package (rank sources against the host, fan out per dependency)
//	     ↓
//	[fetch] package (download, verify, promote)
//	     ↓
//	artifact name → local path
//
// # Quick Start
//
// Resolve every declared dependency for the current machine:
//
//	import (
//	    "context"
//	    "github.com/nikeokoronkwo/swift-devenv/pkg/fetch"
//	    "github.com/nikeokoronkwo/swift-devenv/pkg/manifest"
//	    "github.com/nikeokoronkwo/swift-devenv/pkg/resolve"
//	)
//
//	m, _ := manifest.Load("devenv.toml", nil)
//	r := resolve.New(fetch.New(fetch.Options{}), resolve.Options{})
//	result := r.Resolve(context.Background(), m.Dependencies)
//	for dep, artifacts := range result.Artifacts {
//	    for name, path := range artifacts {
//	        fmt.Printf("%s/%s -> %s\n", dep, name, path)
//	    }
//	}
//
// # Main Packages
//
// [platform] - Four-axis platform identifiers with wildcard axes. Parses the
// 1/3/4-segment grammar, folds common aliases (amd64, macos, win32), detects
// the running machine, and orders identifiers by specificity.
//
// [manifest] - devenv.toml parsing. Each dependency declares an ordered list
// of sources; URL sources are fetchable, while package-manager and
// version-control kinds are carried as declared-but-unsupported.
//
// [fetch] - Downloads a URL source to a temporary file, verifies its SHA-256
// checksum, and promotes it atomically into place. Transient failures (5xx,
// 429, network errors) are retried with doubling backoff.
//
// [resolve] - Ranks a dependency's sources by platform specificity, tries
// them in order until one succeeds, and runs dependencies concurrently with
// one worker per declaration.
//
// [errors] - Error type with stable codes (CHECKSUM_MISMATCH,
// NO_ELIGIBLE_SOURCE, ...) used across all packages, plus input validation
// for dependency names and artifact paths.
//
// [buildinfo] - Build-time version information injected via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/resolve/...   # Specific package
//
// [platform]: https://pkg.go.dev/github.com/nikeokoronkwo/swift-devenv/pkg/platform
// [manifest]: https://pkg.go.dev/github.com/nikeokoronkwo/swift-devenv/pkg/manifest
// [fetch]: https://pkg.go.dev/github.com/nikeokoronkwo/swift-devenv/pkg/fetch
// [resolve]: https://pkg.go.dev/github.com/nikeokoronkwo/swift-devenv/pkg/resolve
// [errors]: https://pkg.go.dev/github.com/nikeokoronkwo/swift-devenv/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/nikeokoronkwo/swift-devenv/pkg/buildinfo
package pkg
