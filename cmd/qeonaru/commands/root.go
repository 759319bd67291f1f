package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command. Without a subcommand it serves.
func NewRootCmd() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "qeonaru",
		Short:         "Qeonaru blog and forum API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configFile)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "conf", "c", "", "config file path (default searches ./config.yaml)")

	rootCmd.AddCommand(
		NewServeCommand(&configFile),
		NewVersionCommand(),
	)

	return rootCmd
}
