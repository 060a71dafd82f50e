package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-tania/config"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the session tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := config.OpenDB(cmd.Context(), a.cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := config.Migrate(cmd.Context(), db, a.logger)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(applied) == 0 {
				fmt.Fprintln(out, "database is up to date")
				return nil
			}
			for _, name := range applied {
				fmt.Fprintf(out, "applied %s\n", name)
			}
			return nil
		},
	}
}
