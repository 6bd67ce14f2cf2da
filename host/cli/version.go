package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"holdboard/protocol"
)

// version is set at build time via -ldflags "-X holdboard/host/cli.version=x.y.z"
var version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show holdboard and protocol versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "holdboard version %s\n", version)
		fmt.Fprintf(cmd.OutOrStdout(), "protocol: %s (%d-byte units)\n", protocol.Version, protocol.TransportUnitSize)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
