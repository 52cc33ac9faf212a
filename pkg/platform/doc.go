// Package platform models four-axis platform identifiers and their
// specificity ordering.
//
// # Overview
//
// A platform identifier describes a machine class along four axes:
// architecture, vendor, operating system, and ABI. Declarations may leave
// axes open with the "*" wildcard; the running host is always concrete on
// the axes it knows about.
//
// Identifiers are written as hyphen-separated triples in three accepted
// shapes:
//
//	x86_64-apple-darwin-gnu    four segments: arch-vendor-os-abi
//	x86_64-apple-darwin        three segments: abi defaults to *
//	darwin                     one segment: os only, everything else *
//
// Axis tokens come from a known set (see the alias tables in platform.go);
// unrecognized tokens are kept verbatim so that new platforms keep working
// without a code change. "*" is the wildcard on any axis.
//
// # Matching and specificity
//
// Matching is directional: a declared identifier matches a host when each
// of its axes is either the wildcard or equal to the host's axis. Among
// matching declarations, [Specificity] ranks the most precisely pinned one
// first, with axis priority architecture > vendor > OS > ABI. See [Vector]
// for the ordering rules.
package platform
