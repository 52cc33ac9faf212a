package platform

import "runtime"

// goarchTokens maps Go architecture names to canonical triple tokens.
var goarchTokens = map[string]Value{
	"amd64":   "x86_64",
	"arm64":   "aarch64",
	"386":     "i686",
	"arm":     "armv7",
	"riscv64": "riscv64",
	"ppc64le": "powerpc64le",
	"s390x":   "s390x",
}

// Host returns the identifier of the running machine, derived from the Go
// runtime. The architecture, vendor and OS axes are always concrete. The
// ABI axis is concrete where a single answer exists (gnu on linux, msvc on
// windows, android on android) and wildcard elsewhere; Darwin has no ABI
// component in common usage.
func Host() Identifier {
	arch, ok := goarchTokens[runtime.GOARCH]
	if !ok {
		arch = Value(runtime.GOARCH)
	}

	var vendor Value
	switch runtime.GOOS {
	case "darwin", "ios":
		vendor = "apple"
	case "windows":
		vendor = "pc"
	default:
		vendor = "unknown"
	}

	os := axisValue(runtime.GOOS, osAliases)

	var abi Value
	switch runtime.GOOS {
	case "linux":
		abi = "gnu"
	case "windows":
		abi = "msvc"
	case "android":
		abi = "android"
	default:
		abi = Wildcard
	}

	return Identifier{Arch: arch, Vendor: vendor, OS: os, ABI: abi}
}
