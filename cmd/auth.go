package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docpush/gdocs/internal/drive"
)

func newAuthCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "auth [CODE]",
		Short: "Authorize access to Google Docs and Drive",
		Long: `Authorize gdocs to access Google Docs and Drive on your behalf.

Run without arguments to print the authorization URL. Open it in a
browser, approve access, and run the command again with the code Google
displays. Tokens are stored per account, so separate work and personal
accounts can be authorized side by side.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				url, err := drive.GetAuthURLForAccount(account)
				if err != nil {
					return fmt.Errorf("failed to build authorization URL: %w", err)
				}
				fmt.Println("Open this URL in your browser and approve access:")
				fmt.Println()
				fmt.Println(url)
				fmt.Println()
				fmt.Printf("Then run: gdocs auth --account %s CODE\n", account)
				return nil
			}

			ctx := context.Background()
			if err := drive.SaveTokenForAccount(ctx, account, args[0]); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}
			fmt.Printf("Token saved for account %s\n", account)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account name to authorize (default: 'default')")

	return cmd
}
