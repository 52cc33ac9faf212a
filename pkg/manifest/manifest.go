package manifest

import (
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/nikeokoronkwo/swift-devenv/pkg/errors"
	"github.com/nikeokoronkwo/swift-devenv/pkg/platform"
)

// Manifest holds the parsed dependency declarations of one devenv.toml.
type Manifest struct {
	Dependencies []Declaration
}

// rawSource mirrors one source table on disk before conversion into the
// tagged union.
type rawSource struct {
	Type      string            `toml:"type"`
	URL       string            `toml:"url"`
	SHA       string            `toml:"sha"`
	Artifacts map[string]string `toml:"artifacts"`
	Platforms []string          `toml:"platforms"`
}

type rawManifest struct {
	Dependency map[string][]rawSource `toml:"dependency"`
}

// Load reads and parses a manifest file. Warn receives non-fatal issues
// (malformed platform entries); it may be nil.
//
// Dependencies are returned sorted by name so load output is deterministic
// regardless of TOML map iteration order.
func Load(path string, warn func(format string, args ...any)) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "cannot read manifest %s", path)
	}
	return Parse(data, warn)
}

// Parse parses manifest TOML content. See [Load].
func Parse(data []byte, warn func(format string, args ...any)) (*Manifest, error) {
	if warn == nil {
		warn = func(string, ...any) {}
	}

	var raw rawManifest
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "invalid manifest TOML")
	}

	names := make([]string, 0, len(raw.Dependency))
	for name := range raw.Dependency {
		names = append(names, name)
	}
	sort.Strings(names)

	m := &Manifest{Dependencies: make([]Declaration, 0, len(names))}
	for _, name := range names {
		if err := errors.ValidateDependencyName(name); err != nil {
			return nil, err
		}
		decl := Declaration{Name: name}
		for i, rs := range raw.Dependency[name] {
			src, err := convertSource(name, i, rs, warn)
			if err != nil {
				return nil, err
			}
			decl.Sources = append(decl.Sources, src)
		}
		m.Dependencies = append(m.Dependencies, decl)
	}
	return m, nil
}

// convertSource turns one raw source table into its union variant.
func convertSource(dep string, idx int, rs rawSource, warn func(string, ...any)) (Source, error) {
	kind := Kind(rs.Type)
	if !recognizedKinds[kind] {
		return nil, errors.New(errors.ErrCodeInvalidManifest,
			"dependency %s source %d: unknown source type %q", dep, idx, rs.Type)
	}

	for name, rel := range rs.Artifacts {
		if err := errors.ValidateArtifactPath(rel); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err,
				"dependency %s source %d: artifact %q", dep, idx, name)
		}
	}

	platforms := parsePlatforms(dep, idx, rs.Platforms, warn)

	if kind != KindURL {
		return &UnsupportedSource{SourceKind: kind, ArtifactPaths: rs.Artifacts, On: platforms}, nil
	}

	if rs.URL == "" {
		return nil, errors.New(errors.ErrCodeInvalidManifest,
			"dependency %s source %d: url sources require the url field", dep, idx)
	}
	return &URLSource{
		URL:           rs.URL,
		SHA256:        rs.SHA,
		ArtifactPaths: rs.Artifacts,
		On:            platforms,
	}, nil
}

// parsePlatforms parses a source's platform list. A malformed entry is
// warned about and dropped; the rest of the list remains usable. An absent
// or emptied-out list means universally applicable.
func parsePlatforms(dep string, idx int, raw []string, warn func(string, ...any)) []platform.Identifier {
	var out []platform.Identifier
	for _, s := range raw {
		id, err := platform.Parse(s)
		if err != nil {
			warn("dependency %s source %d: dropping malformed platform %q: %v", dep, idx, s, err)
			continue
		}
		out = append(out, id)
	}
	return out
}
