package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/arcana-cards/arcana/arcana"
	"github.com/arcana-cards/arcana/arcana/config"
	"github.com/arcana-cards/arcana/internal/domain/accounts"
	"github.com/spf13/cobra"
)

var (
	uploadTitle       string
	uploadDescription string
	uploadRarity      int64
)

var uploadCMD = &cobra.Command{
	Use:   "upload",
	Short: "manage user uploaded cards",
}

var uploadReplaceCMD = &cobra.Command{
	Use:   "replace <user-id> <image>",
	Short: "replace the user's uploaded card with a new image",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := readUpload(args[1])
		if err != nil {
			return err
		}
		upload := accounts.Upload{
			Title:       uploadTitle,
			Description: uploadDescription,
			RarityID:    uploadRarity,
			ContentType: http.DetectContentType(body),
			Body:        body,
		}

		return withApp(cmd, func(ctx context.Context, app *arcana.App) error {
			card, err := app.Accounts.ReplaceUserUpload(ctx, args[0], upload)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "upload %d stored as %s\n", card.ID, card.ImageRef)
			return nil
		})
	},
}

var uploadShowCMD = &cobra.Command{
	Use:   "show <user-id>",
	Short: "show the user's uploaded card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *arcana.App) error {
			card, err := app.Accounts.Upload(ctx, args[0])
			if err != nil {
				return err
			}
			if card == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "no upload")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\trarity %d\t%s\n", card.ID, card.Title, card.RarityID, card.ImageRef)
			return nil
		})
	},
}

func readUpload(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	body, err := io.ReadAll(io.LimitReader(f, config.MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(body) > config.MaxUploadSize {
		return nil, fmt.Errorf("upload exceeds %d bytes", config.MaxUploadSize)
	}
	return body, nil
}

func init() {
	uploadReplaceCMD.Flags().StringVar(&uploadTitle, "title", "", "card title")
	uploadReplaceCMD.Flags().StringVar(&uploadDescription, "description", "", "card description")
	uploadReplaceCMD.Flags().Int64Var(&uploadRarity, "rarity", 0, "rarity id")
	_ = uploadReplaceCMD.MarkFlagRequired("title")
	_ = uploadReplaceCMD.MarkFlagRequired("rarity")

	uploadCMD.AddCommand(uploadReplaceCMD, uploadShowCMD)
	rootCmd.AddCommand(uploadCMD)
}
