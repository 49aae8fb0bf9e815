package cmd

import (
	"context"
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/docpush/gdocs/internal/server"
	"github.com/docpush/gdocs/internal/tools/docs_tools"
	"github.com/docpush/gdocs/internal/tools/drive_tools"
)

func newGenerateDocsCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "generate-docs",
		Short: "Generate MCP tool documentation",
		Long: `Generate markdown documentation for all available MCP tools.
The tool list is built by registering the real tool definitions, so the
output never drifts from what the server actually exposes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerateDocs(outputFile)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runGenerateDocs(outputFile string) error {
	// No credentials needed; registration only builds tool schemas.
	serverContext, err := server.NewServerContext(context.Background())
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		_ = serverContext.Shutdown()
	}()

	mcpSrv := mcpserver.NewMCPServer("gdocs", version,
		mcpserver.WithToolCapabilities(true),
	)

	// Write tools must be registered too, so document the yolo surface.
	if err := docs_tools.RegisterDocsTools(mcpSrv, serverContext, false); err != nil {
		return fmt.Errorf("failed to register Docs tools: %w", err)
	}
	if err := drive_tools.RegisterDriveTools(mcpSrv, serverContext, false); err != nil {
		return fmt.Errorf("failed to register Drive tools: %w", err)
	}

	tools := make([]mcp.Tool, 0, len(mcpSrv.ListTools()))
	for _, st := range mcpSrv.ListTools() {
		tools = append(tools, st.Tool)
	}

	markdown := renderToolsReference(tools)

	if outputFile == "" {
		fmt.Print(markdown)
		return nil
	}
	if err := os.WriteFile(outputFile, []byte(markdown), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Documentation written to: %s\n", outputFile)
	return nil
}

func renderToolsReference(tools []mcp.Tool) string {
	groups := map[string][]mcp.Tool{}
	for _, tool := range tools {
		groups[toolGroup(tool.Name)] = append(groups[toolGroup(tool.Name)], tool)
	}
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("# MCP Tools Reference\n\n")
	sb.WriteString("Reference for every tool exposed when gdocs runs as an MCP server.\n\n")
	sb.WriteString("**Note:** This file is generated with `gdocs generate-docs`; edit the tool definitions instead.\n\n")

	sb.WriteString("## Table of Contents\n\n")
	for _, name := range names {
		anchor := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
		fmt.Fprintf(&sb, "- [%s](#%s)\n", name, anchor)
	}
	sb.WriteString("\n")

	sb.WriteString("## Multi-Account Support\n\n")
	sb.WriteString("Every tool takes an optional `account` parameter naming the stored OAuth\n")
	sb.WriteString("token to act under. Tokens are kept per account name (`work`, `personal`,\n")
	sb.WriteString("and so on), each call may name a different one, and omitting the parameter\n")
	sb.WriteString("falls back to the `default` account.\n\n")

	for _, name := range names {
		group := groups[name]
		sort.Slice(group, func(i, j int) bool { return group[i].Name < group[j].Name })

		fmt.Fprintf(&sb, "## %s\n\n", name)
		for _, tool := range group {
			writeToolSection(&sb, tool)
		}
	}

	return sb.String()
}

func toolGroup(name string) string {
	switch prefix, _, _ := strings.Cut(name, "_"); prefix {
	case "docs":
		return "Google Docs Tools"
	case "drive":
		return "Google Drive Tools"
	default:
		return "Other"
	}
}

func writeToolSection(sb *strings.Builder, tool mcp.Tool) {
	fmt.Fprintf(sb, "### %s\n\n", tool.Name)
	if tool.Description != "" {
		fmt.Fprintf(sb, "%s\n\n", tool.Description)
	}

	if len(tool.InputSchema.Properties) == 0 {
		sb.WriteString("\n")
		return
	}

	sb.WriteString("**Arguments:**\n")
	propNames := make([]string, 0, len(tool.InputSchema.Properties))
	for name := range tool.InputSchema.Properties {
		propNames = append(propNames, name)
	}
	sort.Strings(propNames)

	for _, name := range propNames {
		prop, ok := tool.InputSchema.Properties[name].(map[string]interface{})
		if !ok {
			continue
		}
		req := "optional"
		if slices.Contains(tool.InputSchema.Required, name) {
			req = "required"
		}
		desc, ok := prop["description"].(string)
		if !ok {
			if t, ok := prop["type"].(string); ok {
				desc = t + " parameter"
			} else {
				desc = "any parameter"
			}
		}
		fmt.Fprintf(sb, "- `%s` (%s): %s\n", name, req, desc)
	}
	sb.WriteString("\n\n")
}
