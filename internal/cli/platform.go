package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikeokoronkwo/swift-devenv/pkg/platform"
)

// newPlatformCmd creates the platform command.
// With no arguments it prints the detected host identifier; with an argument
// it parses the identifier, prints its canonical form, and reports whether
// it applies to the host.
func newPlatformCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "platform [identifier]",
		Short: "Print or inspect platform identifiers",
		Long: `Print the detected platform identifier of the running machine, or parse
an identifier and report whether it applies to this machine.

Examples:
  devenv platform                        # Detected host, e.g. x86_64-unknown-linux-gnu
  devenv platform macos                  # Canonical form: darwin
  devenv platform arm64-apple-darwin     # Canonical form plus host match`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			host := platform.Host()
			if len(args) == 0 {
				fmt.Println(StyleValue.Render(host.String()))
				return nil
			}

			id, err := platform.Parse(args[0])
			if err != nil {
				return err
			}
			fmt.Println(StyleValue.Render(id.String()))
			if id.Matches(host) {
				printSuccess("applies to this machine (%s)", host)
			} else {
				printWarning("does not apply to this machine (%s)", host)
			}
			return nil
		},
	}
}
