package drive_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/docpush/gdocs/internal/drive"
	"github.com/docpush/gdocs/internal/server"
	"github.com/docpush/gdocs/internal/tools/batch"
	"github.com/docpush/gdocs/internal/tools/common"
)

func registerFileTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	s.AddTool(mcp.NewTool("drive_list_files",
		mcp.WithDescription("List files in Google Drive with optional filtering"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("query",
			mcp.Description("Query for filtering files using Google Drive's query language (e.g., \"name contains 'report'\", \"mimeType='application/pdf'\")"),
		),
		mcp.WithString("folderId",
			mcp.Description("Restrict results to children of this folder"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of files to return (default: 100, max: 1000)"),
		),
		mcp.WithString("orderBy",
			mcp.Description("Sort order (e.g., 'folder,modifiedTime desc,name')"),
		),
		mcp.WithBoolean("includeTrashed",
			mcp.Description("Include trashed files in results (default: false)"),
		),
		mcp.WithString("pageToken",
			mcp.Description("Page token for retrieving the next page of results"),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleListFiles(ctx, request, sc)
	})

	s.AddTool(mcp.NewTool("drive_get_files",
		mcp.WithDescription("Get metadata for one or more files in Google Drive"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("fileIds",
			mcp.Required(),
			mcp.Description("File ID (string) or array of file IDs to retrieve"),
		),
		mcp.WithBoolean("includeCapabilities",
			mcp.Description("Include what the authenticated user may do with each file (default: false)"),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGetFiles(ctx, request, sc)
	})

	if readOnly {
		return nil
	}

	s.AddTool(mcp.NewTool("drive_delete_file",
		mcp.WithDescription("Delete one or more files from Google Drive"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("fileIds",
			mcp.Required(),
			mcp.Description("File ID (string) or array of file IDs to delete"),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleDeleteFile(ctx, request, sc)
	})

	return nil
}

func handleListFiles(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := toolArgs(request)

	client, err := getDriveClient(ctx, common.GetAccountFromArgs(args), sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	options := &drive.ListOptions{
		Query:          stringArg(args, "query"),
		FolderID:       stringArg(args, "folderId"),
		OrderBy:        stringArg(args, "orderBy"),
		PageToken:      stringArg(args, "pageToken"),
		IncludeTrashed: boolArg(args, "includeTrashed"),
		MaxResults:     100,
	}
	if n, ok := args["maxResults"].(float64); ok && n > 0 {
		options.MaxResults = int(n)
	}

	files, nextPageToken, err := client.ListFiles(ctx, options)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list files: %v", err)), nil
	}

	result, _ := json.MarshalIndent(map[string]interface{}{
		"files":         files,
		"nextPageToken": nextPageToken,
	}, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetFiles(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := toolArgs(request)

	fileIDs, err := batch.ParseStringOrArray(args["fileIds"], "fileIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	withCaps := boolArg(args, "includeCapabilities")

	client, err := getDriveClient(ctx, common.GetAccountFromArgs(args), sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results := batch.ProcessBatch(ctx, fileIDs, func(ctx context.Context, fileID string) (string, error) {
		fileInfo, err := client.GetFile(ctx, fileID)
		if err != nil {
			return "", err
		}
		if !withCaps {
			out, _ := json.Marshal(fileInfo)
			return string(out), nil
		}
		caps, err := client.Capabilities(ctx, fileID)
		if err != nil {
			return "", err
		}
		out, _ := json.Marshal(map[string]interface{}{
			"file":         fileInfo,
			"capabilities": caps,
		})
		return string(out), nil
	})

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}

func handleDeleteFile(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := toolArgs(request)

	fileIDs, err := batch.ParseStringOrArray(args["fileIds"], "fileIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getDriveClient(ctx, common.GetAccountFromArgs(args), sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results := batch.ProcessBatch(ctx, fileIDs, func(ctx context.Context, fileID string) (string, error) {
		if err := client.DeleteFile(ctx, fileID); err != nil {
			return "", err
		}
		return fmt.Sprintf("File %s deleted successfully", fileID), nil
	})

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}

// parseCommaList splits a comma-separated list, trimming whitespace and
// dropping empty entries.
func parseCommaList(s string) []string {
	var result []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
