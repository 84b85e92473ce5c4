package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/arcana-cards/arcana/arcana"
	"github.com/arcana-cards/arcana/arcana/config"
	"github.com/arcana-cards/arcana/internal/domain/catalog"
	"github.com/spf13/cobra"
)

var catalogCMD = &cobra.Command{
	Use:   "catalog",
	Short: "manage rarities, sets and cards",
}

var catalogImportCMD = &cobra.Command{
	Use:   "import <manifest.toml>",
	Short: "upsert rarities, sets and cards from a TOML manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manifest, err := catalog.LoadManifest(args[0])
		if err != nil {
			return err
		}
		return withApp(cmd, func(ctx context.Context, app *arcana.App) error {
			report, err := app.Catalog.Import(ctx, app.Tx, manifest)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d rarities, %d sets, %d cards\n",
				report.Rarities, report.Sets, report.Cards)
			return nil
		})
	},
}

var catalogSetsCMD = &cobra.Command{
	Use:   "sets",
	Short: "list card sets with their draw odds",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *arcana.App) error {
			sets, err := app.Catalog.Sets(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCARDS")
			for _, set := range sets {
				cards, err := app.Catalog.CardsInSet(ctx, set.ID)
				if err != nil && !errors.Is(err, catalog.ErrEmptySet) {
					return err
				}
				fmt.Fprintf(w, "%d\t%s\t%d\n", set.ID, set.Title, len(cards))
			}
			return w.Flush()
		})
	},
}

var catalogOddsCMD = &cobra.Command{
	Use:   "odds <set-id>",
	Short: "show the chance of drawing each card of a set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid set id %q: %w", args[0], err)
		}
		return withApp(cmd, func(ctx context.Context, app *arcana.App) error {
			cards, err := app.Catalog.CardsInSet(ctx, setID)
			if err != nil {
				return err
			}
			odds, err := app.Engine.Odds(ctx, setID)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCHANCE")
			for _, c := range cards {
				fmt.Fprintf(w, "%d\t%s\t%.2f%%\n", c.ID, c.Title, odds[c.ID]*100)
			}
			return w.Flush()
		})
	},
}

var searchLimit int

var catalogSearchCMD = &cobra.Command{
	Use:   "search <query>",
	Short: "fuzzy search card titles",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit := min(max(searchLimit, 1), config.MaxSearchLimit)
		return withApp(cmd, func(ctx context.Context, app *arcana.App) error {
			cards, err := app.Catalog.Search(ctx, args[0], limit)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tSET")
			for _, c := range cards {
				fmt.Fprintf(w, "%d\t%s\t%d\n", c.ID, c.Title, c.SetID)
			}
			return w.Flush()
		})
	},
}

func init() {
	catalogSearchCMD.Flags().IntVarP(&searchLimit, "limit", "n", config.DefaultSearchLimit, "maximum results")
	catalogCMD.AddCommand(catalogImportCMD, catalogSetsCMD, catalogOddsCMD, catalogSearchCMD)
	rootCmd.AddCommand(catalogCMD)
}
