// Package manifest loads dependency declarations from a devenv.toml file.
//
// # Format
//
// Each dependency is an array of source tables. Source order in the file is
// advisory only: resolution re-ranks sources by platform specificity and
// uses file order purely as the tie-break for equally specific sources.
//
//	[[dependency.protoc]]
//	type = "url"
//	url = "https://example.com/protoc-29.0-osx-x86_64.zip"
//	sha = "2c6c1f7ad2f6e8a3d2f0d4a34812bd7b70ffb2d9"
//	platforms = ["x86_64-apple-darwin"]
//
//	[dependency.protoc.artifacts]
//	protoc = "bin/protoc"
//
//	[[dependency.protoc]]
//	type = "url"
//	url = "https://example.com/protoc-29.0-linux-x86_64.zip"
//	platforms = ["linux"]
//
// The "type" field discriminates the source kind. Only "url" sources can be
// fetched; "git", "brew", "apt", "winget" and "choco" are recognized so a
// shared manifest stays loadable, but selecting one of them fails the
// attempt with UNSUPPORTED_SOURCE. Anything else is an INVALID_MANIFEST
// error.
//
// A malformed entry inside a source's platforms list is logged and dropped;
// the rest of the list, and the source itself, stay usable.
package manifest
