package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/studyplan/studyplan/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Task and Tag Store HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		application, err := app.NewApplication(ctx, cfg)
		if err != nil {
			return err
		}
		return application.Run(ctx)
	},
}
