package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// set at build time with -ldflags "-X github.com/onflow/flow-sha2/cmd/sha2util/cmd.semver=..."
var (
	semver = "undefined"
	commit = "undefined"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of sha2util",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "sha2util %s (commit %s)\n", semver, commit)
			return err
		},
	}
}
