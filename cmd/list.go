package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docpush/gdocs/internal/drive"
)

func newListCmd() *cobra.Command {
	var (
		account  string
		folderID string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent files in Google Drive",
		Long: `List files in Google Drive, most recently modified first, optionally
restricted to one folder.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := drive.NewClientForAccount(ctx, account)
			if err != nil {
				return fmt.Errorf("failed to create Drive client for account %s: %w", account, err)
			}

			files, _, err := client.ListFiles(ctx, &drive.ListOptions{
				FolderID:   folderID,
				MaxResults: limit,
				OrderBy:    "modifiedTime desc",
			})
			if err != nil {
				return fmt.Errorf("failed to list files: %w", err)
			}
			for _, f := range files {
				fmt.Printf("  %s  %s\n", f.Name, f.WebViewLink)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account name to use (default: 'default')")
	cmd.Flags().StringVar(&folderID, "folder-id", "", "Folder ID to list")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of files to list")

	return cmd
}
