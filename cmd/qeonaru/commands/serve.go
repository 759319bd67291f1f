package commands

import (
	"context"

	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command
func NewServeCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), *configFile)
		},
	}
}

func serve(ctx context.Context, configFile string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	app, cleanup, err := NewApp(ctx, configFile)
	if err != nil {
		return err
	}
	defer cleanup()
	return app.Run(ctx)
}
