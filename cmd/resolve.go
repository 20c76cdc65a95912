package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wganko/liff-for-auto-responce/config"
	"github.com/wganko/liff-for-auto-responce/db"
	"github.com/wganko/liff-for-auto-responce/repositories"
	"github.com/wganko/liff-for-auto-responce/services"
	"github.com/wganko/liff-for-auto-responce/utils"
)

type resolveOptions struct {
	userID       string
	rosterNumber string
	name         string
}

// newResolveCommand runs the reconciler once against the configured database.
// A match on roster number or display name links the row exactly as a real
// submission would.
func newResolveCommand() *cobra.Command {
	opts := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a LINE user to a roster number",
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

			reconciler := services.NewReconciler(repositories.NewSQLRosterRepository(dbConn), stderrLogger())
			result, err := reconciler.Resolve(cmd.Context(),
				opts.userID,
				utils.NormalizeRosterNumber(opts.rosterNumber),
				opts.name,
			)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVar(&opts.userID, "user-id", "", "LINE user ID (required)")
	cmd.Flags().StringVar(&opts.rosterNumber, "roster-number", "", "declared bamboo number")
	cmd.Flags().StringVar(&opts.name, "name", "", "display name")
	_ = cmd.MarkFlagRequired("user-id")

	return cmd
}
