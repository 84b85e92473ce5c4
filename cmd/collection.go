package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/arcana-cards/arcana/arcana"
	"github.com/spf13/cobra"
)

var collectionCMD = &cobra.Command{
	Use:   "collection",
	Short: "inspect a user's collection",
}

var collectionListCMD = &cobra.Command{
	Use:   "list <user-id>",
	Short: "list owned cards with quantities",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *arcana.App) error {
			owned, err := app.Ledger.Entries(ctx, args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CARD\tTITLE\tSET\tQTY\tOBTAINED")
			for _, o := range owned {
				fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\n",
					o.Card.ID, o.Card.Title, o.Card.SetID, o.Quantity, o.ObtainedAt.Local().Format(time.DateOnly))
			}
			return w.Flush()
		})
	},
}

var collectionProgressCMD = &cobra.Command{
	Use:   "progress <user-id>",
	Short: "show distinct cards owned per set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *arcana.App) error {
			progress, err := app.Ledger.Progress(ctx, args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SET\tTITLE\tOWNED")
			for _, p := range progress {
				fmt.Fprintf(w, "%d\t%s\t%d/%d\n", p.Set.ID, p.Set.Title, p.Owned, p.Total)
			}
			return w.Flush()
		})
	},
}

func init() {
	collectionCMD.AddCommand(collectionListCMD, collectionProgressCMD)
	rootCmd.AddCommand(collectionCMD)
}
