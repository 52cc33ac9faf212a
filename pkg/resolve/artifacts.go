package resolve

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nikeokoronkwo/swift-devenv/pkg/errors"
	"github.com/nikeokoronkwo/swift-devenv/pkg/manifest"
)

// ResolveArtifacts maps a fetched source's artifacts to absolute paths
// under root, the directory the source was materialized into.
//
// With a declared artifact table, every entry must exist on disk; a missing
// entry fails the whole source with ARTIFACT_MISSING so the caller's
// fallback chain can try the next candidate instead of silently handing
// out an incomplete map.
//
// Without one, the top-level entries of root are discovered: each
// non-hidden entry maps from its filename without extension to its
// absolute path. When two entries strip to the same name the
// last-enumerated one wins; directory enumeration order is
// filesystem-dependent, so that collision outcome is not deterministic.
func ResolveArtifacts(src manifest.Source, root string) (map[string]string, error) {
	if declared := src.Artifacts(); declared != nil {
		return resolveDeclared(declared, root)
	}
	return discover(root)
}

func resolveDeclared(declared map[string]string, root string) (map[string]string, error) {
	out := make(map[string]string, len(declared))
	for name, rel := range declared {
		path := filepath.Join(root, rel)
		if _, err := os.Stat(path); err != nil {
			return nil, errors.New(errors.ErrCodeArtifactMissing,
				"declared artifact %s (%s) not found under %s", name, rel, root)
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "cannot resolve %s", path)
		}
		out[name] = abs
	}
	return out, nil
}

func discover(root string) (map[string]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "cannot enumerate %s", root)
	}

	out := make(map[string]string, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		abs, err := filepath.Abs(filepath.Join(root, name))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "cannot resolve %s", name)
		}
		out[strings.TrimSuffix(name, filepath.Ext(name))] = abs
	}
	return out, nil
}
