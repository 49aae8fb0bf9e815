package drive_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/docpush/gdocs/internal/drive"
	"github.com/docpush/gdocs/internal/server"
	"github.com/docpush/gdocs/internal/tools/common"
)

// All folder tools modify Drive state, so none are registered in
// read-only mode.
func registerFolderTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if readOnly {
		return nil
	}

	s.AddTool(mcp.NewTool("drive_create_folder",
		mcp.WithDescription("Create a new folder in Google Drive"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The name of the folder"),
		),
		mcp.WithString("parentFolders",
			mcp.Description("Comma-separated list of parent folder IDs where the folder should be created"),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleCreateFolder(ctx, request, sc)
	})

	s.AddTool(mcp.NewTool("drive_ensure_folder",
		mcp.WithDescription("Find a folder by name, creating it if it does not exist"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The name of the folder"),
		),
		mcp.WithString("parentId",
			mcp.Description("Parent folder ID to search and create under (default: Drive root)"),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleEnsureFolder(ctx, request, sc)
	})

	s.AddTool(mcp.NewTool("drive_move_file",
		mcp.WithDescription("Move or rename a file in Google Drive"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The ID of the file to move or rename"),
		),
		mcp.WithString("newName",
			mcp.Description("The new name for the file (leave empty to keep current name)"),
		),
		mcp.WithString("addParents",
			mcp.Description("Comma-separated list of folder IDs to add as parents"),
		),
		mcp.WithString("removeParents",
			mcp.Description("Comma-separated list of folder IDs to remove as parents"),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleMoveFile(ctx, request, sc)
	})

	return nil
}

func handleCreateFolder(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := toolArgs(request)

	name := stringArg(args, "name")
	if name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	client, err := getDriveClient(ctx, common.GetAccountFromArgs(args), sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var parents []string
	if list := stringArg(args, "parentFolders"); list != "" {
		parents = parseCommaList(list)
	}

	folderInfo, err := client.CreateFolder(ctx, name, parents)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create folder: %v", err)), nil
	}

	result, _ := json.MarshalIndent(folderInfo, "", "  ")
	return mcp.NewToolResultText(fmt.Sprintf("Folder created successfully:\n%s", string(result))), nil
}

func handleEnsureFolder(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := toolArgs(request)

	name := stringArg(args, "name")
	if name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	client, err := getDriveClient(ctx, common.GetAccountFromArgs(args), sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	folderInfo, err := client.EnsureFolder(ctx, name, stringArg(args, "parentId"))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to ensure folder: %v", err)), nil
	}

	result, _ := json.MarshalIndent(folderInfo, "", "  ")
	return mcp.NewToolResultText(fmt.Sprintf("Folder ready:\n%s", string(result))), nil
}

func handleMoveFile(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := toolArgs(request)

	fileID := stringArg(args, "fileId")
	if fileID == "" {
		return mcp.NewToolResultError("fileId is required"), nil
	}

	options := &drive.MoveOptions{NewName: stringArg(args, "newName")}
	if list := stringArg(args, "addParents"); list != "" {
		options.AddParents = parseCommaList(list)
	}
	if list := stringArg(args, "removeParents"); list != "" {
		options.RemoveParents = parseCommaList(list)
	}
	if options.NewName == "" && len(options.AddParents) == 0 && len(options.RemoveParents) == 0 {
		return mcp.NewToolResultError("At least one of newName, addParents, or removeParents must be specified"), nil
	}

	client, err := getDriveClient(ctx, common.GetAccountFromArgs(args), sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	fileInfo, err := client.MoveFile(ctx, fileID, options)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to move file: %v", err)), nil
	}

	result, _ := json.MarshalIndent(fileInfo, "", "  ")
	return mcp.NewToolResultText(fmt.Sprintf("File moved/renamed successfully:\n%s", string(result))), nil
}
