package docs_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/docpush/gdocs/internal/docs"
	"github.com/docpush/gdocs/internal/google"
	"github.com/docpush/gdocs/internal/server"
	"github.com/docpush/gdocs/internal/tools/common"
)

// getDocsClient retrieves or creates a docs client for the specified account
func getDocsClient(ctx context.Context, account string, sc *server.ServerContext) (*docs.Client, error) {
	client := sc.DocsClientForAccount(account)
	if client == nil {
		// Check if token exists before trying to create client
		if !docs.HasTokenForAccount(account) {
			errorMsg := google.GetAuthenticationErrorMessage(account)
			return nil, fmt.Errorf("%s", errorMsg)
		}

		var err error
		client, err = docs.NewClientForAccount(ctx, account,
			docs.WithLogger(sc.Logger()), docs.WithMetrics(sc.Metrics()))
		if err != nil {
			return nil, fmt.Errorf("failed to create Docs client for account %s: %w", account, err)
		}
		sc.SetDocsClientForAccount(account, client)
	}
	return client, nil
}

// RegisterDocsTools registers all Google Docs-related tools with the MCP server
func RegisterDocsTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// Register write tools only if not in read-only mode
	if !readOnly {
		// Create document from markdown tool
		createTool := mcp.NewTool("docs_create_from_markdown",
			mcp.WithDescription("Create a new Google Doc from markdown source"),
			mcp.WithString("account",
				mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
			),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("The title of the new document"),
			),
			mcp.WithString("markdown",
				mcp.Required(),
				mcp.Description("The markdown source to render into the document"),
			),
			mcp.WithString("folderId",
				mcp.Description("Drive folder ID to place the document in"),
			),
			mcp.WithNumber("batchSize",
				mcp.Description("Maximum number of update requests per batchUpdate call (default: 35)"),
			),
			mcp.WithBoolean("strictStatus",
				mcp.Description("Reject unknown status labels instead of rendering them with neutral styling (default: false)"),
			),
		)

		s.AddTool(createTool, common.InstrumentedToolHandlerWithService(
			"docs_create_from_markdown", "docs", "create", sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleCreateFromMarkdown(ctx, request, sc)
			}))

		// Replace document content from markdown tool
		replaceTool := mcp.NewTool("docs_replace_from_markdown",
			mcp.WithDescription("Replace the entire body of a Google Doc with rendered markdown"),
			mcp.WithString("account",
				mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
			),
			mcp.WithString("documentId",
				mcp.Required(),
				mcp.Description("The ID of the Google Doc"),
			),
			mcp.WithString("markdown",
				mcp.Required(),
				mcp.Description("The markdown source to render into the document"),
			),
			mcp.WithNumber("batchSize",
				mcp.Description("Maximum number of update requests per batchUpdate call (default: 35)"),
			),
			mcp.WithBoolean("strictStatus",
				mcp.Description("Reject unknown status labels instead of rendering them with neutral styling (default: false)"),
			),
		)

		s.AddTool(replaceTool, common.InstrumentedToolHandlerWithService(
			"docs_replace_from_markdown", "docs", "update", sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleReplaceFromMarkdown(ctx, request, sc)
			}))

		// Clear document tool
		clearTool := mcp.NewTool("docs_clear_document",
			mcp.WithDescription("Delete all body content of a Google Doc, leaving it empty"),
			mcp.WithString("account",
				mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
			),
			mcp.WithString("documentId",
				mcp.Required(),
				mcp.Description("The ID of the Google Doc"),
			),
		)

		s.AddTool(clearTool, common.InstrumentedToolHandlerWithService(
			"docs_clear_document", "docs", "update", sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleClearDocument(ctx, request, sc)
			}))

		// Insert image tool
		insertImageTool := mcp.NewTool("docs_insert_image",
			mcp.WithDescription("Insert an inline image at the top of a Google Doc (logo or banner)"),
			mcp.WithString("account",
				mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
			),
			mcp.WithString("documentId",
				mcp.Required(),
				mcp.Description("The ID of the Google Doc"),
			),
			mcp.WithString("imageUri",
				mcp.Required(),
				mcp.Description("Publicly fetchable URI of the image"),
			),
			mcp.WithNumber("widthPt",
				mcp.Description("Image width in points (default: 150)"),
			),
			mcp.WithNumber("heightPt",
				mcp.Description("Image height in points (default: 50)"),
			),
			mcp.WithBoolean("centered",
				mcp.Description("Center the image paragraph (default: true)"),
			),
		)

		s.AddTool(insertImageTool, common.InstrumentedToolHandlerWithService(
			"docs_insert_image", "docs", "update", sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleInsertImage(ctx, request, sc)
			}))
	}

	// Get document tool
	getDocumentTool := mcp.NewTool("docs_get_document",
		mcp.WithDescription("Get Google Docs content by document ID"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: 'markdown' (default), 'text', or 'json'"),
		),
	)

	s.AddTool(getDocumentTool, common.InstrumentedToolHandlerWithService(
		"docs_get_document", "docs", "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetDocument(ctx, request, sc)
		}))

	// Get document metadata tool
	getMetadataTool := mcp.NewTool("docs_get_document_metadata",
		mcp.WithDescription("Get metadata about a Google Doc or Drive file"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc or Drive file"),
		),
	)

	s.AddTool(getMetadataTool, common.InstrumentedToolHandlerWithService(
		"docs_get_document_metadata", "docs", "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetMetadata(ctx, request, sc)
		}))

	return nil
}

func handleCreateFromMarkdown(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	title, ok := args["title"].(string)
	if !ok || title == "" {
		return mcp.NewToolResultError("title is required"), nil
	}

	source, ok := args["markdown"].(string)
	if !ok || source == "" {
		return mcp.NewToolResultError("markdown is required"), nil
	}

	client, err := getDocsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	options := &docs.CreateOptions{}

	if folderID, ok := args["folderId"].(string); ok && folderID != "" {
		options.FolderID = folderID
	}

	if batchSize, ok := args["batchSize"].(float64); ok && batchSize > 0 {
		options.BatchSize = int(batchSize)
	}

	if strict, ok := args["strictStatus"].(bool); ok {
		options.StrictStatus = strict
	}

	created, err := client.CreateDocumentFromMarkdown(ctx, title, source, options)
	if err != nil {
		if created != nil {
			// The document exists but not all batches were applied
			return mcp.NewToolResultError(fmt.Sprintf("Document %s created but rendering failed: %v", created.ID, err)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create document: %v", err)), nil
	}

	result, _ := json.MarshalIndent(map[string]interface{}{
		"id":      created.ID,
		"title":   created.Title,
		"url":     created.URL,
		"batches": created.Batches,
	}, "", "  ")
	return mcp.NewToolResultText(fmt.Sprintf("Document created successfully:\n%s", string(result))), nil
}

func handleReplaceFromMarkdown(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	documentID, ok := args["documentId"].(string)
	if !ok || documentID == "" {
		return mcp.NewToolResultError("documentId is required"), nil
	}

	source, ok := args["markdown"].(string)
	if !ok || source == "" {
		return mcp.NewToolResultError("markdown is required"), nil
	}

	client, err := getDocsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	options := &docs.CreateOptions{}

	if batchSize, ok := args["batchSize"].(float64); ok && batchSize > 0 {
		options.BatchSize = int(batchSize)
	}

	if strict, ok := args["strictStatus"].(bool); ok {
		options.StrictStatus = strict
	}

	batches, err := client.ReplaceDocumentFromMarkdown(ctx, documentID, source, options)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to replace document content: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Document %s replaced successfully in %d batches", documentID, batches)), nil
}

func handleGetDocument(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	documentID, ok := args["documentId"].(string)
	if !ok || documentID == "" {
		return mcp.NewToolResultError("documentId is required"), nil
	}

	format := "markdown"
	if formatVal, ok := args["format"].(string); ok && formatVal != "" {
		format = formatVal
	}

	client, err := getDocsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	switch format {
	case "markdown":
		content, err := client.GetDocumentAsMarkdown(ctx, documentID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get document: %v", err)), nil
		}
		result := fmt.Sprintf("Document content (Markdown, %d bytes):\n%s", len(content), content)
		return mcp.NewToolResultText(result), nil

	case "text":
		content, err := client.GetDocumentAsPlainText(ctx, documentID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get document: %v", err)), nil
		}
		result := fmt.Sprintf("Document content (plain text, %d bytes):\n%s", len(content), content)
		return mcp.NewToolResultText(result), nil

	case "json":
		doc, err := client.GetDocument(ctx, documentID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get document: %v", err)), nil
		}
		jsonBytes, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize document: %v", err)), nil
		}
		result := fmt.Sprintf("Document content (JSON, %d bytes):\n%s", len(jsonBytes), string(jsonBytes))
		return mcp.NewToolResultText(result), nil

	default:
		return mcp.NewToolResultError(fmt.Sprintf("Invalid format '%s', must be 'markdown', 'text', or 'json'", format)), nil
	}
}

func handleGetMetadata(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	documentID, ok := args["documentId"].(string)
	if !ok || documentID == "" {
		return mcp.NewToolResultError("documentId is required"), nil
	}

	client, err := getDocsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	metadata, err := client.GetFileMetadata(ctx, documentID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get metadata: %v", err)), nil
	}

	jsonBytes, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize metadata: %v", err)), nil
	}

	result := fmt.Sprintf("Document metadata:\n%s", string(jsonBytes))
	return mcp.NewToolResultText(result), nil
}

func handleClearDocument(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	documentID, ok := args["documentId"].(string)
	if !ok || documentID == "" {
		return mcp.NewToolResultError("documentId is required"), nil
	}

	client, err := getDocsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := client.ClearDocument(ctx, documentID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to clear document: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Document %s cleared successfully", documentID)), nil
}

func handleInsertImage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	documentID, ok := args["documentId"].(string)
	if !ok || documentID == "" {
		return mcp.NewToolResultError("documentId is required"), nil
	}

	imageURI, ok := args["imageUri"].(string)
	if !ok || imageURI == "" {
		return mcp.NewToolResultError("imageUri is required"), nil
	}

	client, err := getDocsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	options := &docs.ImageOptions{Center: true}

	if width, ok := args["widthPt"].(float64); ok && width > 0 {
		options.WidthPt = width
	}

	if height, ok := args["heightPt"].(float64); ok && height > 0 {
		options.HeightPt = height
	}

	if centered, ok := args["centered"].(bool); ok {
		options.Center = centered
	}

	if err := client.InsertImageTop(ctx, documentID, imageURI, options); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to insert image: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Image inserted at the top of document %s", documentID)), nil
}
