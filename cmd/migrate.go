package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wganko/liff-for-auto-responce/config"
	"github.com/wganko/liff-for-auto-responce/db"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the roster, form config and response tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := config.LoadDatabase()
			if err != nil {
				return err
			}

			dbConn, err := db.Connect(database.Driver, database.URL, dbConnectTimeout)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer dbConn.Close()

			if err := db.Migrate(cmd.Context(), dbConn, database.Driver); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema applied (%s)\n", database.Driver)
			return nil
		},
	}
}
