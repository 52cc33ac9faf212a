package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nikeokoronkwo/swift-devenv/pkg/errors"
	"github.com/nikeokoronkwo/swift-devenv/pkg/manifest"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(name), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestResolveArtifactsDeclared(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "bin/protoc", "include/descriptor.proto")

	src := &manifest.URLSource{ArtifactPaths: map[string]string{
		"protoc":     "bin/protoc",
		"descriptor": "include/descriptor.proto",
	}}

	got, err := ResolveArtifacts(src, root)
	if err != nil {
		t.Fatalf("ResolveArtifacts error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d artifacts, want 2", len(got))
	}
	for name, p := range got {
		if !filepath.IsAbs(p) {
			t.Errorf("artifact %s path %s is not absolute", name, p)
		}
		if _, err := os.Stat(p); err != nil {
			t.Errorf("artifact %s path %s: %v", name, p, err)
		}
	}
}

// A declared artifact that does not exist fails the whole source so the
// fallback chain can move on.
func TestResolveArtifactsMissingDeclared(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "bin/protoc")

	src := &manifest.URLSource{ArtifactPaths: map[string]string{
		"protoc": "bin/protoc",
		"gone":   "bin/gone",
	}}

	_, err := ResolveArtifacts(src, root)
	if !errors.Is(err, errors.ErrCodeArtifactMissing) {
		t.Fatalf("expected ARTIFACT_MISSING, got %v", err)
	}
}

// Discovery maps top-level entries by filename without extension, skipping
// hidden entries and descending into nothing.
func TestResolveArtifactsDiscovery(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.tar", "b", ".hidden", "sub/nested")

	got, err := ResolveArtifacts(&manifest.URLSource{}, root)
	if err != nil {
		t.Fatalf("ResolveArtifacts error: %v", err)
	}

	want := map[string]string{
		"a":   filepath.Join(root, "a.tar"),
		"b":   filepath.Join(root, "b"),
		"sub": filepath.Join(root, "sub"),
	}
	if len(got) != len(want) {
		t.Fatalf("got %d artifacts %v, want %d", len(got), got, len(want))
	}
	for name, path := range want {
		abs, _ := filepath.Abs(path)
		if got[name] != abs {
			t.Errorf("artifact %s = %s, want %s", name, got[name], abs)
		}
	}
}
