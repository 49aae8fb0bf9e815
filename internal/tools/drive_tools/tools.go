package drive_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/docpush/gdocs/internal/drive"
	"github.com/docpush/gdocs/internal/google"
	"github.com/docpush/gdocs/internal/server"
)

// getDriveClient returns the cached Drive client for account, creating
// and caching one when the account has a stored token.
func getDriveClient(ctx context.Context, account string, sc *server.ServerContext) (*drive.Client, error) {
	if client := sc.DriveClientForAccount(account); client != nil {
		return client, nil
	}
	if !drive.HasTokenForAccount(account) {
		return nil, fmt.Errorf("%s", google.GetAuthenticationErrorMessage(account))
	}
	client, err := drive.NewClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive client for account %s: %w", account, err)
	}
	sc.SetDriveClientForAccount(account, client)
	return client, nil
}

// toolArgs extracts the argument map from a tool request. A nil map is
// returned for requests without arguments.
func toolArgs(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	return args
}

// stringArg returns the named string argument, or "" when absent or not
// a string.
func stringArg(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return s
}

// boolArg returns the named bool argument, defaulting to false.
func boolArg(args map[string]interface{}, key string) bool {
	b, _ := args[key].(bool)
	return b
}

// RegisterDriveTools registers all Google Drive tools. With readOnly set,
// only listing and metadata tools are exposed.
func RegisterDriveTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := registerFileTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register file tools: %w", err)
	}
	if err := registerFolderTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register folder tools: %w", err)
	}
	if err := registerShareTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register share tools: %w", err)
	}
	return nil
}
