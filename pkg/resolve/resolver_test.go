package resolve

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nikeokoronkwo/swift-devenv/pkg/errors"
	"github.com/nikeokoronkwo/swift-devenv/pkg/manifest"
	"github.com/nikeokoronkwo/swift-devenv/pkg/platform"
)

// stubFetcher scripts per-URL outcomes and records attempts in order.
type stubFetcher struct {
	mu       sync.Mutex
	fail     map[string]error // URL → error to return
	attempts []string
}

func (s *stubFetcher) Fetch(ctx context.Context, src manifest.Source, dest string) (string, error) {
	u, ok := src.(*manifest.URLSource)
	if !ok {
		return "", errors.New(errors.ErrCodeUnsupportedSource, "kind %q", src.Kind())
	}

	s.mu.Lock()
	s.attempts = append(s.attempts, u.URL)
	err := s.fail[u.URL]
	s.mu.Unlock()

	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(dest, []byte(u.URL), 0o644); err != nil {
		return "", err
	}
	return dest, nil
}

func (s *stubFetcher) attempted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.attempts...)
}

func testOptions(t *testing.T, host string) Options {
	t.Helper()
	return Options{
		Host:    mustParse(t, host),
		DestDir: t.TempDir(),
	}
}

func TestResolveSingleDependency(t *testing.T) {
	fetcher := &stubFetcher{}
	r := New(fetcher, testOptions(t, "x86_64-unknown-linux-gnu"))

	deps := []manifest.Declaration{{
		Name:    "tool",
		Sources: []manifest.Source{urlSource(t, "https://example.com/tool.bin", "linux")},
	}}

	res := r.Resolve(context.Background(), deps)
	if res.Failed() {
		t.Fatalf("unexpected failures: %v", res.Failures)
	}

	artifacts := res.Artifacts["tool"]
	path, ok := artifacts["tool"]
	if !ok {
		t.Fatalf("artifact map = %v, want key tool", artifacts)
	}
	if !filepath.IsAbs(path) {
		t.Errorf("artifact path %s is not absolute", path)
	}
}

// Zero eligible sources ends in a NO_ELIGIBLE_SOURCE failure without ever
// invoking the fetcher.
func TestResolveNoEligibleSource(t *testing.T) {
	fetcher := &stubFetcher{}
	r := New(fetcher, testOptions(t, "x86_64-unknown-linux-gnu"))

	deps := []manifest.Declaration{{
		Name:    "mac-only",
		Sources: []manifest.Source{urlSource(t, "https://example.com/mac", "darwin")},
	}}

	res := r.Resolve(context.Background(), deps)
	if !errors.Is(res.Failures["mac-only"], errors.ErrCodeNoEligibleSource) {
		t.Fatalf("expected NO_ELIGIBLE_SOURCE, got %v", res.Failures["mac-only"])
	}
	if len(fetcher.attempted()) != 0 {
		t.Errorf("fetcher was invoked: %v", fetcher.attempted())
	}
}

// A failing first candidate falls back to the second; the result uses the
// second candidate's artifacts only.
func TestResolveFallback(t *testing.T) {
	fetcher := &stubFetcher{fail: map[string]error{
		"https://primary.example.com/tool": errors.New(errors.ErrCodeChecksumMismatch, "bad sum"),
	}}
	r := New(fetcher, testOptions(t, "x86_64-apple-darwin-gnu"))

	deps := []manifest.Declaration{{
		Name: "tool",
		Sources: []manifest.Source{
			urlSource(t, "https://primary.example.com/tool", "x86_64-apple-darwin-gnu"),
			urlSource(t, "https://mirror.example.com/tool", "darwin"),
		},
	}}

	res := r.Resolve(context.Background(), deps)
	if res.Failed() {
		t.Fatalf("unexpected failures: %v", res.Failures)
	}

	want := []string{"https://primary.example.com/tool", "https://mirror.example.com/tool"}
	got := fetcher.attempted()
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("attempts = %v, want %v", got, want)
	}

	data, err := os.ReadFile(res.Artifacts["tool"]["tool"])
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "https://mirror.example.com/tool" {
		t.Errorf("resolved artifact came from %s, want the mirror", data)
	}
}

func TestResolveAllSourcesExhausted(t *testing.T) {
	fetcher := &stubFetcher{fail: map[string]error{
		"https://a.example.com/tool": errors.New(errors.ErrCodeNetwork, "down"),
		"https://b.example.com/tool": errors.New(errors.ErrCodeChecksumMismatch, "bad sum"),
	}}
	r := New(fetcher, testOptions(t, "x86_64-unknown-linux-gnu"))

	deps := []manifest.Declaration{{
		Name: "tool",
		Sources: []manifest.Source{
			urlSource(t, "https://a.example.com/tool", "linux"),
			urlSource(t, "https://b.example.com/tool", "linux"),
		},
	}}

	res := r.Resolve(context.Background(), deps)
	err := res.Failures["tool"]
	if !errors.Is(err, errors.ErrCodeAllSourcesFailed) {
		t.Fatalf("expected ALL_SOURCES_FAILED, got %v", err)
	}
	// The terminal error names the attempted sources.
	for _, u := range []string{"https://a.example.com/tool", "https://b.example.com/tool"} {
		if !strings.Contains(err.Error(), u) {
			t.Errorf("error %q does not mention %s", err, u)
		}
	}
}

// An unsupported source kind is a soft failure: the chain moves past it.
func TestResolveUnsupportedKindFallsBack(t *testing.T) {
	fetcher := &stubFetcher{}
	r := New(fetcher, testOptions(t, "x86_64-apple-darwin-gnu"))

	deps := []manifest.Declaration{{
		Name: "tool",
		Sources: []manifest.Source{
			&manifest.UnsupportedSource{SourceKind: manifest.KindBrew, On: []platform.Identifier{mustParse(t, "darwin")}},
			urlSource(t, "https://example.com/tool", "darwin"),
		},
	}}

	res := r.Resolve(context.Background(), deps)
	if res.Failed() {
		t.Fatalf("unexpected failures: %v", res.Failures)
	}
}

// A fetched source whose declared artifact is missing fails that source
// and falls back. The abandoned candidate's file must be removed so the
// next candidate's discovery only ever sees its own download.
func TestResolveMissingArtifactFallsBack(t *testing.T) {
	fetcher := &stubFetcher{}
	opts := testOptions(t, "x86_64-unknown-linux-gnu")
	r := New(fetcher, opts)

	first := urlSource(t, "https://example.com/first.bin", "linux")
	first.ArtifactPaths = map[string]string{"tool": "nonexistent/path"}
	second := urlSource(t, "https://example.com/second.bin", "linux")

	deps := []manifest.Declaration{{Name: "tool", Sources: []manifest.Source{first, second}}}

	res := r.Resolve(context.Background(), deps)
	if res.Failed() {
		t.Fatalf("unexpected failures: %v", res.Failures)
	}
	if len(fetcher.attempted()) != 2 {
		t.Errorf("attempts = %v, want both sources", fetcher.attempted())
	}

	artifacts := res.Artifacts["tool"]
	if _, ok := artifacts["first"]; ok {
		t.Errorf("artifact map %v contains the abandoned candidate's file", artifacts)
	}
	if _, ok := artifacts["second"]; !ok {
		t.Errorf("artifact map %v is missing the succeeding candidate's file", artifacts)
	}
	if _, err := os.Stat(filepath.Join(opts.DestDir, "tool", "first.bin")); !os.IsNotExist(err) {
		t.Errorf("abandoned candidate's file still on disk (stat err = %v)", err)
	}
}

// Dependencies fail independently: one bad dependency never blocks the rest.
func TestResolveIndependentFailures(t *testing.T) {
	fetcher := &stubFetcher{fail: map[string]error{
		"https://example.com/broken": errors.New(errors.ErrCodeNetwork, "down"),
	}}
	r := New(fetcher, testOptions(t, "x86_64-unknown-linux-gnu"))

	deps := []manifest.Declaration{
		{Name: "broken", Sources: []manifest.Source{urlSource(t, "https://example.com/broken", "linux")}},
		{Name: "fine", Sources: []manifest.Source{urlSource(t, "https://example.com/fine", "linux")}},
	}

	res := r.Resolve(context.Background(), deps)
	if !errors.Is(res.Failures["broken"], errors.ErrCodeAllSourcesFailed) {
		t.Errorf("broken: got %v", res.Failures["broken"])
	}
	if _, ok := res.Artifacts["fine"]; !ok {
		t.Error("fine should have resolved despite broken failing")
	}
}

// With a concurrency limit, no more than that many dependencies ever
// resolve at once.
func TestResolveConcurrencyLimit(t *testing.T) {
	var mu sync.Mutex
	inFlight, peak := 0, 0

	fetcher := fetchFunc(func(ctx context.Context, src manifest.Source, dest string) (string, error) {
		mu.Lock()
		inFlight++
		if inFlight > peak {
			peak = inFlight
		}
		mu.Unlock()

		time.Sleep(20 * time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()

		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return "", err
		}
		return dest, os.WriteFile(dest, []byte("x"), 0o644)
	})

	opts := testOptions(t, "x86_64-unknown-linux-gnu")
	opts.Concurrency = 2
	r := New(fetcher, opts)

	var deps []manifest.Declaration
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		deps = append(deps, manifest.Declaration{
			Name:    name,
			Sources: []manifest.Source{urlSource(t, "https://example.com/"+name+".bin", "linux")},
		})
	}

	res := r.Resolve(context.Background(), deps)
	if res.Failed() {
		t.Fatalf("unexpected failures: %v", res.Failures)
	}
	if peak > 2 {
		t.Errorf("peak in-flight fetches = %d, want at most 2", peak)
	}
}

// fetchFunc adapts a function to SourceFetcher.
type fetchFunc func(ctx context.Context, src manifest.Source, dest string) (string, error)

func (f fetchFunc) Fetch(ctx context.Context, src manifest.Source, dest string) (string, error) {
	return f(ctx, src, dest)
}

func TestResolveManyDependenciesConcurrently(t *testing.T) {
	fetcher := &stubFetcher{}
	r := New(fetcher, testOptions(t, "x86_64-unknown-linux-gnu"))

	var deps []manifest.Declaration
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		deps = append(deps, manifest.Declaration{
			Name:    name,
			Sources: []manifest.Source{urlSource(t, "https://example.com/"+name+".bin", "linux")},
		})
	}

	res := r.Resolve(context.Background(), deps)
	if res.Failed() {
		t.Fatalf("unexpected failures: %v", res.Failures)
	}
	if len(res.Artifacts) != len(deps) {
		t.Errorf("got %d resolved dependencies, want %d", len(res.Artifacts), len(deps))
	}
}
