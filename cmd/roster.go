package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wganko/liff-for-auto-responce/config"
	"github.com/wganko/liff-for-auto-responce/db"
	"github.com/wganko/liff-for-auto-responce/models"
	"github.com/wganko/liff-for-auto-responce/repositories"
	"github.com/wganko/liff-for-auto-responce/utils"
)

func newRosterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Manage roster rows",
	}
	cmd.AddCommand(newRosterAddCommand())
	return cmd
}

func newRosterAddCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add <bamboo-number>",
		Short: "Add an unlinked roster row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rosterNumber := utils.NormalizeRosterNumber(args[0])
			if rosterNumber == "" {
				return errors.New("bamboo number must not be empty")
			}

			database, err := config.LoadDatabase()
			if err != nil {
				return err
			}

			dbConn, err := db.Connect(database.Driver, database.URL, dbConnectTimeout)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer dbConn.Close()

			rec := &models.RosterRecord{
				RosterNumber: rosterNumber,
				DisplayName:  name,
			}
			if err := repositories.NewSQLRosterRepository(dbConn).Create(cmd.Context(), rec); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "roster row %d added (%s)\n", rec.ID, rec.RosterNumber)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name registered for the row")
	return cmd
}
