package cmd

import (
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Bool("migrate", false, "Run database migrations on startup even in release mode")
}

func runServe(cmd *cobra.Command, args []string) error {
	migrate, _ := cmd.Flags().GetBool("migrate")
	application, err := newApp(cmd, migrate)
	if err != nil {
		return err
	}
	return application.Run()
}
