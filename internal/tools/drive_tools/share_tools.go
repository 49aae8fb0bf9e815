package drive_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/docpush/gdocs/internal/drive"
	"github.com/docpush/gdocs/internal/server"
	"github.com/docpush/gdocs/internal/tools/batch"
	"github.com/docpush/gdocs/internal/tools/common"
)

func registerShareTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// Listing permissions is harmless, so it stays available in
	// read-only mode; granting and revoking do not.
	s.AddTool(mcp.NewTool("drive_list_permissions",
		mcp.WithDescription("List all permissions for a file in Google Drive"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The ID of the file"),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleListPermissions(ctx, request, sc)
	})

	if readOnly {
		return nil
	}

	s.AddTool(mcp.NewTool("drive_share_file",
		mcp.WithDescription("Share one or more files in Google Drive by granting permissions"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("fileIds",
			mcp.Required(),
			mcp.Description("File ID (string) or array of file IDs to share"),
		),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("The type of grantee: 'user', 'group', 'domain', or 'anyone'"),
		),
		mcp.WithString("role",
			mcp.Required(),
			mcp.Description("The role to grant: 'owner', 'organizer', 'fileOrganizer', 'writer', 'commenter', or 'reader'"),
		),
		mcp.WithString("emailAddress",
			mcp.Description("Email address (required if type is 'user' or 'group')"),
		),
		mcp.WithString("domain",
			mcp.Description("Domain name (required if type is 'domain')"),
		),
		mcp.WithBoolean("sendNotificationEmail",
			mcp.Description("Send a notification email to the grantee (default: false)"),
		),
		mcp.WithString("emailMessage",
			mcp.Description("Custom message to include in the notification email"),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleShareFile(ctx, request, sc)
	})

	s.AddTool(mcp.NewTool("drive_remove_permission",
		mcp.WithDescription("Remove a permission from a file in Google Drive"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The ID of the file"),
		),
		mcp.WithString("permissionId",
			mcp.Required(),
			mcp.Description("The ID of the permission to remove (get this from drive_list_permissions)"),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleRemovePermission(ctx, request, sc)
	})

	return nil
}

func handleShareFile(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := toolArgs(request)

	fileIDs, err := batch.ParseStringOrArray(args["fileIds"], "fileIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	options := &drive.ShareOptions{
		Type:                  stringArg(args, "type"),
		Role:                  stringArg(args, "role"),
		EmailAddress:          stringArg(args, "emailAddress"),
		Domain:                stringArg(args, "domain"),
		SendNotificationEmail: boolArg(args, "sendNotificationEmail"),
		EmailMessage:          stringArg(args, "emailMessage"),
	}
	if options.Type == "" {
		return mcp.NewToolResultError("type is required"), nil
	}
	if options.Role == "" {
		return mcp.NewToolResultError("role is required"), nil
	}

	client, err := getDriveClient(ctx, common.GetAccountFromArgs(args), sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Grantee identity for the result message: email, then domain, then
	// the bare grantee type (covers "anyone").
	grantee := options.EmailAddress
	if grantee == "" {
		grantee = options.Domain
	}
	if grantee == "" {
		grantee = options.Type
	}

	results := batch.ProcessBatch(ctx, fileIDs, func(ctx context.Context, fileID string) (string, error) {
		permission, err := client.ShareFile(ctx, fileID, options)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("File %s shared with %s (%s)", fileID, grantee, permission.Role), nil
	})

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}

func handleListPermissions(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := toolArgs(request)

	fileID := stringArg(args, "fileId")
	if fileID == "" {
		return mcp.NewToolResultError("fileId is required"), nil
	}

	client, err := getDriveClient(ctx, common.GetAccountFromArgs(args), sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	permissions, err := client.ListPermissions(ctx, fileID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list permissions: %v", err)), nil
	}

	result, _ := json.MarshalIndent(permissions, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleRemovePermission(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := toolArgs(request)

	fileID := stringArg(args, "fileId")
	if fileID == "" {
		return mcp.NewToolResultError("fileId is required"), nil
	}
	permissionID := stringArg(args, "permissionId")
	if permissionID == "" {
		return mcp.NewToolResultError("permissionId is required"), nil
	}

	client, err := getDriveClient(ctx, common.GetAccountFromArgs(args), sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := client.RemovePermission(ctx, fileID, permissionID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to remove permission: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Permission %s removed successfully from file %s", permissionID, fileID)), nil
}
