package google_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/docpush/gdocs/internal/google"
	"github.com/docpush/gdocs/internal/server"
	"github.com/docpush/gdocs/internal/tools/common"
)

// RegisterGoogleTools registers the OAuth flow tools. These stay available
// in read-only mode: without a token no other tool can work.
func RegisterGoogleTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	accountArg := mcp.WithString("account",
		mcp.Description("Account name to authorize (default: 'default'). Each account keeps its own token."),
	)

	s.AddTool(mcp.NewTool("google_get_auth_url",
		mcp.WithDescription("Get the OAuth consent URL that authorizes Google Docs and Drive access for an account"),
		accountArg,
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGetAuthURL(ctx, request, sc)
	})

	s.AddTool(mcp.NewTool("google_save_auth_code",
		mcp.WithDescription("Exchange and store the OAuth authorization code, completing authentication for an account"),
		accountArg,
		mcp.WithString("authCode",
			mcp.Required(),
			mcp.Description("Authorization code copied from the Google consent page"),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleSaveAuthCode(ctx, request, sc)
	})

	return nil
}

func handleGetAuthURL(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	account := common.GetAccountFromArgs(request.GetArguments())

	authURL, err := google.GetAuthURLForAccount(account)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to build authorization URL for account %s: %v", account, err)), nil
	}

	result := fmt.Sprintf(`Authorizing Google Docs and Drive access for account %q:

1. Open this URL in a browser:
   %s

2. Sign in and grant access to Docs and Drive
3. Copy the authorization code Google shows you
4. Pass the code to the google_save_auth_code tool (with the same account name) to finish`, account, authURL)

	return mcp.NewToolResultText(result), nil
}

func handleSaveAuthCode(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	authCode, _ := args["authCode"].(string)
	if authCode == "" {
		return mcp.NewToolResultError("authCode is required"), nil
	}

	if err := google.SaveTokenForAccount(ctx, account, authCode); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to save authorization code for account %s: %v", account, err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Authorization successful for account %q. Token saved; Docs and Drive tools can now use this account.", account)), nil
}
