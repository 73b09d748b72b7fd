package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the built-in skill catalog and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApp(cmd, true)
		if err != nil {
			return err
		}
		defer application.Close(cmd.Context())

		n, err := application.Seed(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d skills\n", n)
		return nil
	},
}
