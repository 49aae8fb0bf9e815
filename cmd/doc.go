// Package cmd implements the command-line interface for gdocs.
//
// This package provides the following commands:
//   - upload: Render markdown files into Google Docs inside a Drive folder
//   - folder: Create (or reuse) a Drive folder
//   - list: List recent files in Google Drive
//   - tree: Print a recursive tree of a Drive folder
//   - auth: Authorize access to Google Docs and Drive
//   - serve: Start the MCP server to provide tools for AI assistants
//   - generate-docs: Generate markdown documentation for all MCP tools
//   - version: Display version information
package cmd
