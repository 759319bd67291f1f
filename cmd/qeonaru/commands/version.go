package commands

import (
	"fmt"

	"github.com/ncobase/qeonaru/version"
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			info := version.GetVersionInfo()
			if asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), info.JSON())
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), info.String())
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
