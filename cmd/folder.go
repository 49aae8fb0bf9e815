package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docpush/gdocs/internal/drive"
)

func newFolderCmd() *cobra.Command {
	var (
		account   string
		parent    string
		shareWith string
		shareRole string
	)

	cmd := &cobra.Command{
		Use:   "folder NAME",
		Short: "Create a Drive folder",
		Long: `Create a Google Drive folder. If a folder with the same name already
exists it is reused rather than duplicated.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := drive.NewClientForAccount(ctx, account)
			if err != nil {
				return fmt.Errorf("failed to create Drive client for account %s: %w", account, err)
			}

			folder, err := client.EnsureFolder(ctx, args[0], parent)
			if err != nil {
				return fmt.Errorf("failed to create folder %s: %w", args[0], err)
			}
			fmt.Printf("Created: %s\n", drive.FolderURL(folder.ID))

			if shareWith != "" {
				if _, err := client.ShareFile(ctx, folder.ID, &drive.ShareOptions{
					Type:                  "user",
					Role:                  shareRole,
					EmailAddress:          shareWith,
					SendNotificationEmail: true,
				}); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: could not share with %s: %v\n", shareWith, err)
					return nil
				}
				fmt.Printf("Shared with %s\n", shareWith)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account name to use (default: 'default')")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent folder ID (default: Drive root)")
	cmd.Flags().StringVar(&shareWith, "share", "", "Email to share the folder with")
	cmd.Flags().StringVar(&shareRole, "role", "writer", "Role for --share (reader or writer)")

	return cmd
}
