package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikeokoronkwo/swift-devenv/pkg/fetch"
	"github.com/nikeokoronkwo/swift-devenv/pkg/manifest"
	"github.com/nikeokoronkwo/swift-devenv/pkg/platform"
	"github.com/nikeokoronkwo/swift-devenv/pkg/resolve"
)

// resolveOpts holds the command-line flags for the resolve command.
type resolveOpts struct {
	manifestPath string        // manifest file to load
	destDir      string        // directory dependencies materialize under
	plat         string        // platform override (defaults to the running machine)
	timeout      time.Duration // per-source-attempt timeout
	concurrency  int           // max dependencies downloading at once (0 = unlimited)
	jsonOut      bool          // emit machine-readable JSON instead of styled text
}

// resolveReport is the JSON shape emitted with --json.
type resolveReport struct {
	Platform  string                       `json:"platform"`
	Artifacts map[string]map[string]string `json:"artifacts"`
	Failures  map[string]string            `json:"failures,omitempty"`
}

// newResolveCmd creates the resolve command.
//
// Default options:
//   - manifest: devenv.toml in the current directory
//   - dest: .devenv/deps
//   - timeout: 5 minutes per source attempt
func newResolveCmd() *cobra.Command {
	opts := resolveOpts{manifestPath: "devenv.toml", timeout: 5 * time.Minute}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve and download all dependencies for the current platform",
		Long: `Resolve and download all dependencies declared in the manifest.

For each dependency, the most specific source matching the current platform
is tried first; less specific sources serve as fallbacks. Downloads are
checksum-verified and written atomically.

Examples:
  devenv resolve                          # Use ./devenv.toml
  devenv resolve -m tools/devenv.toml     # Explicit manifest path
  devenv resolve -p aarch64-apple-darwin  # Resolve for another platform
  devenv resolve --json                   # Machine-readable output`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runResolve(c.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.manifestPath, "manifest", "m", opts.manifestPath, "manifest file to load")
	cmd.Flags().StringVarP(&opts.destDir, "dest", "d", "", "destination directory (default .devenv/deps)")
	cmd.Flags().StringVarP(&opts.plat, "platform", "p", "", "platform identifier override (default: detected host)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", opts.timeout, "per-source download timeout")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "max dependencies downloading at once (0 = unlimited)")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "emit JSON instead of styled text")

	return cmd
}

// runResolve loads the manifest, resolves every declared dependency for the
// target platform, and prints the resulting artifact paths. It returns an
// error when any dependency fails so the process exits nonzero.
func runResolve(ctx context.Context, opts *resolveOpts) error {
	logger := loggerFromContext(ctx)

	host := platform.Host()
	if opts.plat != "" {
		parsed, err := platform.Parse(opts.plat)
		if err != nil {
			return err
		}
		host = parsed
	}

	m, err := manifest.Load(opts.manifestPath, logger.Warnf)
	if err != nil {
		return err
	}
	logger.Infof("Loaded %d dependencies from %s", len(m.Dependencies), opts.manifestPath)
	logger.Debugf("Target platform: %s", host)

	fetcher := fetch.New(fetch.Options{Logger: logger.Debugf})
	resolver := resolve.New(fetcher, resolve.Options{
		Host:          host,
		DestDir:       opts.destDir,
		SourceTimeout: opts.timeout,
		Concurrency:   opts.concurrency,
		Logger:        logger.Warnf,
	})

	prog := newProgress(logger)
	spin := newSpinner(ctx, fmt.Sprintf("Resolving %d dependencies...", len(m.Dependencies)))
	spin.Start()
	result := resolver.Resolve(ctx, m.Dependencies)
	spin.Stop()

	if err := ctx.Err(); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Resolved %d of %d dependencies", len(result.Artifacts), len(m.Dependencies)))

	if opts.jsonOut {
		return writeReport(host, result)
	}

	printResult(result)
	if result.Failed() {
		return fmt.Errorf("%d of %d dependencies failed to resolve", len(result.Failures), len(m.Dependencies))
	}
	return nil
}

// printResult renders resolved artifacts and failures as styled text,
// dependencies sorted by name for stable output.
func printResult(result *resolve.Result) {
	for _, name := range sortedKeys(result.Artifacts) {
		printSuccess("%s", StyleTitle.Render(name))
		artifacts := result.Artifacts[name]
		for _, artifact := range sortedKeys(artifacts) {
			printArtifact(artifact, artifacts[artifact])
		}
	}
	for _, name := range sortedKeys(result.Failures) {
		printError("%s: %v", name, result.Failures[name])
	}
}

// writeReport emits the result as JSON on stdout.
func writeReport(host platform.Identifier, result *resolve.Result) error {
	report := resolveReport{
		Platform:  host.String(),
		Artifacts: result.Artifacts,
	}
	if result.Failed() {
		report.Failures = make(map[string]string, len(result.Failures))
		for name, err := range result.Failures {
			report.Failures[name] = err.Error()
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return err
	}
	if result.Failed() {
		return fmt.Errorf("%d dependencies failed to resolve", len(result.Failures))
	}
	return nil
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
