package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApp(cmd, true)
		if err != nil {
			return err
		}
		defer application.Close(context.Background())

		fmt.Fprintln(cmd.OutOrStdout(), "Database migration completed")
		return nil
	},
}
