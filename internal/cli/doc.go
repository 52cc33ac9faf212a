// Package cli implements the devenv command-line interface.
//
// This package provides commands for resolving the dependencies declared in
// a devenv.toml manifest into local files, and for inspecting the platform
// identifier of the running machine. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - resolve: Fetch every declared dependency that applies to the host
//   - platform: Print or parse platform identifiers
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/nikeokoronkwo/swift-devenv/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(context.Background()); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli
