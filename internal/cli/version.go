package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikeokoronkwo/swift-devenv/pkg/buildinfo"
)

// newVersionCmd creates the version command. Equivalent to --version but
// kept as a subcommand for scripting.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build version information",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			fmt.Println(buildinfo.String())
		},
	}
}
