package cmd

import (
	"context"

	"github.com/arcana-cards/arcana/arcana"
	"github.com/arcana-cards/arcana/arcana/logger"
	"github.com/spf13/cobra"
)

var resetTables bool

var migrateCMD = &cobra.Command{
	Use:   "migrate",
	Short: "create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *arcana.App) error {
			if err := app.DB.InitializeSchema(ctx); err != nil {
				return err
			}
			if resetTables {
				if err := app.DB.ResetAppTables(ctx); err != nil {
					return err
				}
			}
			logger.LogSystem("Migration completed")
			return nil
		})
	},
}

func init() {
	migrateCMD.Flags().BoolVar(&resetTables, "reset", false, "truncate every application table after migrating")
	rootCmd.AddCommand(migrateCMD)
}
