package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tendertools/tender-autofill/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tender-autofill %s\n", version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
