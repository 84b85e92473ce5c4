package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/arcana-cards/arcana/arcana"
	"github.com/arcana-cards/arcana/internal/domain/packs"
	"github.com/spf13/cobra"
)

var packCMD = &cobra.Command{
	Use:   "pack",
	Short: "open packs and inspect pack regeneration",
}

var packOpenCMD = &cobra.Command{
	Use:   "open <user-id> <set-id>",
	Short: "open one pack from a set",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		setID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid set id %q: %w", args[1], err)
		}
		return withApp(cmd, func(ctx context.Context, app *arcana.App) error {
			res, err := app.Claims.OpenPack(ctx, args[0], setID)
			if errors.Is(err, packs.ErrNoPacksAvailable) {
				printNextPack(cmd, app.Packs.Clock(), res.Status)
				return err
			}
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CARD\tTITLE\tRARITY\tQTY\t")
			for _, m := range res.Cards {
				mark := ""
				if m.IsNew {
					mark = "new"
				}
				fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\n", m.Card.ID, m.Card.Title, m.Card.RarityID, m.NewQuantity, mark)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d pack(s) left\n", res.Status.PacksAvailable)
			return nil
		})
	},
}

var packStatusCMD = &cobra.Command{
	Use:   "status <user-id>",
	Short: "show available packs and the next regeneration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *arcana.App) error {
			status, err := app.Packs.Status(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d pack(s) available\n", status.PacksAvailable)
			printNextPack(cmd, app.Packs.Clock(), *status)
			return nil
		})
	},
}

func printNextPack(cmd *cobra.Command, clock packs.Clock, status packs.Status) {
	next, ok := clock.NextPackAt(status)
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "packs are full")
		return
	}
	wait := time.Until(next).Round(time.Minute)
	fmt.Fprintf(cmd.OutOrStdout(), "next pack at %s (in %s)\n", next.Local().Format(time.DateTime), max(wait, 0))
}

func init() {
	packCMD.AddCommand(packOpenCMD, packStatusCMD)
	rootCmd.AddCommand(packCMD)
}
