package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wganko/liff-for-auto-responce/config"
	"github.com/wganko/liff-for-auto-responce/db"
	"github.com/wganko/liff-for-auto-responce/repositories"
)

func newResponsesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "responses",
		Short: "Inspect recorded form responses",
	}
	cmd.AddCommand(newResponsesListCommand())
	return cmd
}

func newResponsesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <response-table>",
		Short: "Print the responses of one table as JSON, oldest first",
		Args:  cobra.ExactArgs(1),
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

			records, err := repositories.NewSQLResponseRepository(dbConn).ListByTable(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		},
	}
}
