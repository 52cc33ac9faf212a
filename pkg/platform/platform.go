package platform

import (
	"strings"

	"github.com/nikeokoronkwo/swift-devenv/pkg/errors"
)

// Wildcard is the universal axis value. It matches any host value but
// equals only itself.
const Wildcard = "*"

// Value is a single axis value: a canonical known token, a verbatim
// unrecognized token, or the wildcard.
type Value string

// IsWildcard reports whether the value is the universal wildcard.
func (v Value) IsWildcard() bool { return v == Wildcard }

// Known canonical tokens per axis, with accepted aliases. Aliases cover the
// spellings that show up in the wild (Go toolchain names, Apple marketing
// names) and fold them onto one canonical token so equality stays exact.
var (
	archAliases = map[string]string{
		"x86_64":      "x86_64",
		"amd64":       "x86_64",
		"aarch64":     "aarch64",
		"arm64":       "aarch64",
		"i686":        "i686",
		"i386":        "i686",
		"386":         "i686",
		"x86":         "i686",
		"armv7":       "armv7",
		"arm":         "armv7",
		"riscv64":     "riscv64",
		"powerpc64le": "powerpc64le",
		"ppc64le":     "powerpc64le",
		"s390x":       "s390x",
		"wasm32":      "wasm32",
	}

	vendorAliases = map[string]string{
		"apple":   "apple",
		"pc":      "pc",
		"unknown": "unknown",
	}

	osAliases = map[string]string{
		"darwin":  "darwin",
		"macos":   "darwin",
		"macosx":  "darwin",
		"osx":     "darwin",
		"linux":   "linux",
		"windows": "windows",
		"win32":   "windows",
		"freebsd": "freebsd",
		"netbsd":  "netbsd",
		"openbsd": "openbsd",
		"android": "android",
		"ios":     "ios",
		"wasi":    "wasi",
	}

	abiAliases = map[string]string{
		"gnu":       "gnu",
		"musl":      "musl",
		"msvc":      "msvc",
		"gnueabi":   "gnueabi",
		"gnueabihf": "gnueabihf",
		"android":   "android",
	}
)

// axisValue resolves one segment against an axis alias table. Unrecognized
// tokens are kept verbatim rather than rejected.
func axisValue(seg string, aliases map[string]string) Value {
	if seg == Wildcard {
		return Wildcard
	}
	if canonical, ok := aliases[strings.ToLower(seg)]; ok {
		return Value(canonical)
	}
	return Value(seg)
}

// Identifier is a four-axis platform descriptor. Construct with [Parse],
// [Host] or [Universal]; the zero value is not a valid identifier.
type Identifier struct {
	Arch   Value
	Vendor Value
	OS     Value
	ABI    Value
}

// Universal returns the identifier with all axes wildcarded. It matches
// every host and ranks below any identifier pinning at least one axis.
func Universal() Identifier {
	return Identifier{Arch: Wildcard, Vendor: Wildcard, OS: Wildcard, ABI: Wildcard}
}

// Parse parses a hyphen-separated platform string.
//
// Accepted shapes:
//   - four segments: arch-vendor-os-abi
//   - three segments: arch-vendor-os, abi forced to wildcard
//   - one segment: os only, every other axis forced to wildcard
//
// Any other segment count, an empty string, or an empty segment is an
// INVALID_PLATFORM error.
func Parse(s string) (Identifier, error) {
	if s == "" {
		return Identifier{}, errors.New(errors.ErrCodeInvalidPlatform, "empty platform string")
	}

	segs := strings.Split(s, "-")
	for _, seg := range segs {
		if seg == "" {
			return Identifier{}, errors.New(errors.ErrCodeInvalidPlatform,
				"malformed platform string %q: empty segment", s)
		}
	}
	switch len(segs) {
	case 4:
		return Identifier{
			Arch:   axisValue(segs[0], archAliases),
			Vendor: axisValue(segs[1], vendorAliases),
			OS:     axisValue(segs[2], osAliases),
			ABI:    axisValue(segs[3], abiAliases),
		}, nil
	case 3:
		return Identifier{
			Arch:   axisValue(segs[0], archAliases),
			Vendor: axisValue(segs[1], vendorAliases),
			OS:     axisValue(segs[2], osAliases),
			ABI:    Wildcard,
		}, nil
	case 1:
		return Identifier{
			Arch:   Wildcard,
			Vendor: Wildcard,
			OS:     axisValue(segs[0], osAliases),
			ABI:    Wildcard,
		}, nil
	default:
		return Identifier{}, errors.New(errors.ErrCodeInvalidPlatform,
			"malformed platform string %q: want 1, 3 or 4 hyphen-separated segments, got %d", s, len(segs))
	}
}

// String renders the identifier in the shortest accepted grammar shape:
// a single OS segment when only the OS is pinned, three segments when the
// ABI is open, four otherwise.
func (id Identifier) String() string {
	if id.Arch.IsWildcard() && id.Vendor.IsWildcard() && id.ABI.IsWildcard() && !id.OS.IsWildcard() {
		return string(id.OS)
	}
	segs := []string{string(id.Arch), string(id.Vendor), string(id.OS)}
	if !id.ABI.IsWildcard() {
		segs = append(segs, string(id.ABI))
	}
	return strings.Join(segs, "-")
}

// Matches reports whether the identifier, viewed as a declaration, applies
// to host. Each axis must be the wildcard or equal the host's axis.
// Matching is directional: only the declaration side may carry wildcards.
func (id Identifier) Matches(host Identifier) bool {
	return axisMatches(id.Arch, host.Arch) &&
		axisMatches(id.Vendor, host.Vendor) &&
		axisMatches(id.OS, host.OS) &&
		axisMatches(id.ABI, host.ABI)
}

func axisMatches(candidate, host Value) bool {
	return candidate.IsWildcard() || candidate == host
}
