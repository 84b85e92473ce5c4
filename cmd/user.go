package cmd

import (
	"context"
	"fmt"

	"github.com/arcana-cards/arcana/arcana"
	"github.com/spf13/cobra"
)

var userCMD = &cobra.Command{
	Use:   "user",
	Short: "register and remove users",
}

var userRegisterCMD = &cobra.Command{
	Use:   "register <user-id>",
	Short: "create a user with an empty collection and full packs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *arcana.App) error {
			c, err := app.Accounts.OnUserCreated(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %s ready, collection %d\n", c.UserID, c.ID)
			return nil
		})
	},
}

var userDeleteCMD = &cobra.Command{
	Use:   "delete <user-id>",
	Short: "delete a user with their collection, packs and upload",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *arcana.App) error {
			if err := app.Accounts.DeleteUser(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %s deleted\n", args[0])
			return nil
		})
	},
}

func init() {
	userCMD.AddCommand(userRegisterCMD, userDeleteCMD)
	rootCmd.AddCommand(userCMD)
}
