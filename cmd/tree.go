package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docpush/gdocs/internal/drive"
)

func newTreeCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "tree FOLDER_ID",
		Short: "Print a recursive tree of a Drive folder",
		Long: `Print the contents of a Drive folder recursively. Each entry is marked
with its type: d for folders, D for documents, V for videos, I for
images and ? for anything else.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := drive.NewClientForAccount(ctx, account)
			if err != nil {
				return fmt.Errorf("failed to create Drive client for account %s: %w", account, err)
			}

			return client.Walk(ctx, args[0], func(f *drive.FileInfo, depth int) error {
				fmt.Printf("%s%s %s\n", strings.Repeat("  ", depth), treeIcon(f.MimeType), f.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account name to use (default: 'default')")

	return cmd
}

func treeIcon(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "folder"):
		return "d"
	case strings.Contains(mimeType, "document"):
		return "D"
	case strings.Contains(mimeType, "video"):
		return "V"
	case strings.Contains(mimeType, "image"):
		return "I"
	default:
		return "?"
	}
}
