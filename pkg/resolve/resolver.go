package resolve

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikeokoronkwo/swift-devenv/pkg/errors"
	"github.com/nikeokoronkwo/swift-devenv/pkg/manifest"
	"github.com/nikeokoronkwo/swift-devenv/pkg/platform"
)

const defaultSourceTimeout = 5 * time.Minute

// SourceFetcher materializes one source at a destination path.
// *fetch.Fetcher satisfies this; tests substitute stubs.
type SourceFetcher interface {
	Fetch(ctx context.Context, src manifest.Source, dest string) (string, error)
}

// Options configures a Resolver.
type Options struct {
	Host          platform.Identifier  // Target platform (default: the running machine)
	DestDir       string               // Root directory dependencies materialize under (default: .devenv/deps)
	SourceTimeout time.Duration        // Per-source-attempt timeout (default: 5m)
	Concurrency   int                  // Max dependencies resolving at once (default: unlimited)
	Logger        func(string, ...any) // Fallback/warning callback (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Host == (platform.Identifier{}) {
		opts.Host = platform.Host()
	}
	if opts.DestDir == "" {
		opts.DestDir = filepath.Join(".devenv", "deps")
	}
	if opts.SourceTimeout <= 0 {
		opts.SourceTimeout = defaultSourceTimeout
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Result maps dependency names to their resolved artifacts, and records
// which dependencies failed and why. Read-only once Resolve returns.
type Result struct {
	// Artifacts maps dependency name → artifact name → absolute local path.
	Artifacts map[string]map[string]string

	// Failures maps dependency name → terminal error for dependencies that
	// did not resolve.
	Failures map[string]error
}

// Failed reports whether any dependency ended in a failed state.
func (r *Result) Failed() bool { return len(r.Failures) > 0 }

// Resolver resolves declared dependencies for one host platform.
type Resolver struct {
	fetcher SourceFetcher
	opts    Options
}

// New creates a Resolver that fetches with fetcher.
func New(fetcher SourceFetcher, opts Options) *Resolver {
	return &Resolver{fetcher: fetcher, opts: opts.WithDefaults()}
}

// outcome is one dependency's terminal state, sent from its worker to the
// collector.
type outcome struct {
	name      string
	artifacts map[string]string
	err       error
}

// Resolve fans out one worker per declaration and joins them all. The
// collector loop below is the only writer of the result maps. Failure of
// one dependency never aborts the others; inspect [Result.Failures] (or
// [Result.Failed]) for the overall outcome.
//
// All workers launch immediately; with Options.Concurrency set, a
// semaphore gates how many run their fallback chains at once.
func (r *Resolver) Resolve(ctx context.Context, deps []manifest.Declaration) *Result {
	var sem chan struct{}
	if r.opts.Concurrency > 0 {
		sem = make(chan struct{}, r.opts.Concurrency)
	}

	results := make(chan outcome)
	for _, decl := range deps {
		go func(decl manifest.Declaration) {
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			results <- r.resolveOne(ctx, decl)
		}(decl)
	}

	res := &Result{
		Artifacts: make(map[string]map[string]string, len(deps)),
		Failures:  make(map[string]error),
	}
	for range deps {
		o := <-results
		if o.err != nil {
			res.Failures[o.name] = o.err
			continue
		}
		res.Artifacts[o.name] = o.artifacts
	}
	return res
}

// resolveOne walks one dependency's ranked fallback chain: select, then
// fetch and map artifacts per candidate until one succeeds or the chain is
// exhausted. Attempt failures are absorbed and logged; only the terminal
// states surface.
func (r *Resolver) resolveOne(ctx context.Context, decl manifest.Declaration) outcome {
	candidates := Select(r.opts.Host, decl.Sources)
	if len(candidates) == 0 {
		return outcome{name: decl.Name, err: errors.New(errors.ErrCodeNoEligibleSource,
			"no declared source of %s applies to %s", decl.Name, r.opts.Host)}
	}

	root := filepath.Join(r.opts.DestDir, decl.Name)
	var attempted []string

	for i, c := range candidates {
		if ctx.Err() != nil {
			return outcome{name: decl.Name, err: ctx.Err()}
		}
		if c.Source.Kind() != manifest.KindURL {
			r.opts.Logger("%s: source %d has kind %q, which cannot be fetched", decl.Name, i, c.Source.Kind())
		}

		desc := describeSource(c.Source)
		dest := filepath.Join(root, destName(c.Source))

		attemptCtx, cancel := context.WithTimeout(ctx, r.opts.SourceTimeout)
		_, err := r.fetcher.Fetch(attemptCtx, c.Source, dest)
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				return outcome{name: decl.Name, err: ctx.Err()}
			}
			attempted = append(attempted, fmt.Sprintf("%s (%v)", desc, errors.UserMessage(err)))
			r.opts.Logger("%s: %s failed, trying next source: %v", decl.Name, desc, err)
			continue
		}

		artifacts, err := ResolveArtifacts(c.Source, root)
		if err != nil {
			// Abandoning the candidate after promotion: take its file back
			// out so a later candidate's discovery never picks it up.
			_ = os.Remove(dest)
			attempted = append(attempted, fmt.Sprintf("%s (%v)", desc, errors.UserMessage(err)))
			r.opts.Logger("%s: %s resolved no usable artifacts, trying next source: %v", decl.Name, desc, err)
			continue
		}
		return outcome{name: decl.Name, artifacts: artifacts}
	}

	return outcome{name: decl.Name, err: errors.New(errors.ErrCodeAllSourcesFailed,
		"all %d eligible sources of %s failed: %s",
		len(candidates), decl.Name, strings.Join(attempted, "; "))}
}

// destName picks the local filename a source materializes as.
func destName(src manifest.Source) string {
	if u, ok := src.(*manifest.URLSource); ok {
		if parsed, err := url.Parse(u.URL); err == nil {
			if base := path.Base(parsed.Path); base != "." && base != "/" {
				return base
			}
		}
	}
	return "download"
}

// describeSource renders a source for attempt reports.
func describeSource(src manifest.Source) string {
	if u, ok := src.(*manifest.URLSource); ok {
		return u.URL
	}
	return string(src.Kind())
}
