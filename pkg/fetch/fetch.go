package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nikeokoronkwo/swift-devenv/pkg/errors"
	"github.com/nikeokoronkwo/swift-devenv/pkg/manifest"
)

const (
	defaultTimeout  = 5 * time.Minute
	defaultAttempts = 3
	defaultDelay    = time.Second

	userAgent = "devenv/1.0"
)

// Options configures a Fetcher.
type Options struct {
	Client   *http.Client         // HTTP client (default: 5 minute timeout)
	Attempts int                  // Retry attempts for transient failures (default: 3)
	Delay    time.Duration        // Initial retry backoff (default: 1s, doubling)
	Logger   func(string, ...any) // Progress/warning callback (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: defaultTimeout}
	}
	if opts.Attempts <= 0 {
		opts.Attempts = defaultAttempts
	}
	if opts.Delay <= 0 {
		opts.Delay = defaultDelay
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Fetcher materializes declared sources as verified local files.
// It is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	opts Options
}

// New creates a Fetcher.
func New(opts Options) *Fetcher {
	return &Fetcher{opts: opts.WithDefaults()}
}

// Fetch materializes src at dest and returns dest. The contract is
// kind-agnostic so future source kinds slot into the same fallback loop:
// dispatch happens on the concrete variant, and anything that is not a URL
// source fails with UNSUPPORTED_SOURCE.
func (f *Fetcher) Fetch(ctx context.Context, src manifest.Source, dest string) (string, error) {
	switch s := src.(type) {
	case *manifest.URLSource:
		return f.fetchURL(ctx, s, dest)
	default:
		return "", errors.New(errors.ErrCodeUnsupportedSource,
			"source kind %q is declared but cannot be fetched", src.Kind())
	}
}

// fetchURL downloads to a private temporary file, verifies the checksum,
// and atomically promotes the result to dest. The temporary file lives in
// the destination directory so the final rename stays on one volume.
func (f *Fetcher) fetchURL(ctx context.Context, src *manifest.URLSource, dest string) (string, error) {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeFetchFailed, err, "cannot create %s", dir)
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s-%s.partial", filepath.Base(dest), uuid.NewString()))
	promoted := false
	defer func() {
		if !promoted {
			_ = os.Remove(tmp)
		}
	}()

	err := Retry(ctx, f.opts.Attempts, f.opts.Delay, func() error {
		return f.download(ctx, src.URL, tmp)
	})
	if err != nil {
		return "", err
	}

	if src.SHA256 != "" {
		sum, err := ChecksumFile(tmp)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeFetchFailed, err, "cannot hash download of %s", src.URL)
		}
		if !strings.EqualFold(sum, src.SHA256) {
			return "", errors.New(errors.ErrCodeChecksumMismatch,
				"checksum mismatch for %s: expected %s, got %s", src.URL, strings.ToLower(src.SHA256), sum)
		}
	}

	if err := promote(tmp, dest); err != nil {
		return "", errors.Wrap(errors.ErrCodeFetchFailed, err, "cannot place %s", dest)
	}
	promoted = true

	f.opts.Logger("fetched %s", src.URL)
	return dest, nil
}

// download streams one HTTP GET into path, truncating any earlier partial
// attempt. Transient failures come back wrapped as retryable.
func (f *Fetcher) download(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFetchFailed, err, "invalid url %s", url)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.opts.Client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "request to %s failed", url))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return Retryable(errors.New(errors.ErrCodeNetwork, "%s returned HTTP %d", url, resp.StatusCode))
	default:
		return errors.New(errors.ErrCodeFetchFailed, "%s returned HTTP %d", url, resp.StatusCode)
	}

	out, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFetchFailed, err, "cannot create temporary file")
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "download of %s interrupted", url))
	}
	return out.Close()
}

// promote moves a verified temporary file into place. Rename is atomic on
// one volume; if it fails (e.g. tmp and dest ended up on different mounts)
// fall back to copy plus delete, cleaning up on failure.
func promote(tmp, dest string) error {
	if err := os.Rename(tmp, dest); err == nil {
		return nil
	}

	in, err := os.Open(tmp)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dest)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dest)
		return err
	}
	return os.Remove(tmp)
}
