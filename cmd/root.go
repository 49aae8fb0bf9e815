package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gdocs",
	Short: "Publish markdown files as native Google Docs",
	Long: `gdocs renders markdown files into native Google Docs and manages the
Drive folders they are published into.

It can run as:
  - A standalone CLI tool for uploading and browsing documents
  - An MCP (Model Context Protocol) server for AI assistants`,
	SilenceUsage: true,
}

var version = "dev"

// SetVersion records the build-time version on the root command.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute runs the CLI, exiting nonzero on error.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "gdocs version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(
		newUploadCmd(),
		newFolderCmd(),
		newListCmd(),
		newTreeCmd(),
		newAuthCmd(),
		newServeCmd(),
		newGenerateDocsCmd(),
		newVersionCmd(),
	)
}
