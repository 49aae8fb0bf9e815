package docs_tools

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/docpush/gdocs/internal/server"
)

// newTestServerContext creates a ServerContext isolated from the user's
// real token and config directories.
func newTestServerContext(t *testing.T) *server.ServerContext {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	sc, err := server.NewServerContext(context.Background())
	if err != nil {
		t.Fatalf("Failed to create server context: %v", err)
	}
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

// TestRegisterDocsTools tests the registration of Docs tools
func TestRegisterDocsTools(t *testing.T) {
	serverContext := newTestServerContext(t)

	tests := []struct {
		name     string
		readOnly bool
		wantErr  bool
	}{
		{
			name:     "register in read-write mode",
			readOnly: false,
			wantErr:  false,
		},
		{
			name:     "register in read-only mode",
			readOnly: true,
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mcpSrv := mcpserver.NewMCPServer("test-server", "1.0.0",
				mcpserver.WithToolCapabilities(true),
			)

			err := RegisterDocsTools(mcpSrv, serverContext, tt.readOnly)

			if (err != nil) != tt.wantErr {
				t.Errorf("RegisterDocsTools() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestHandleCreateFromMarkdownValidation tests input validation for handleCreateFromMarkdown
func TestHandleCreateFromMarkdownValidation(t *testing.T) {
	ctx := context.Background()
	serverContext := newTestServerContext(t)

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{
			name: "missing title",
			args: map[string]interface{}{
				"markdown": "# Hello",
			},
		},
		{
			name: "missing markdown",
			args: map[string]interface{}{
				"title": "Test Document",
			},
		},
		{
			name: "empty title",
			args: map[string]interface{}{
				"title":    "",
				"markdown": "# Hello",
			},
		},
		{
			name: "empty markdown",
			args: map[string]interface{}{
				"title":    "Test Document",
				"markdown": "",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := mcp.CallToolRequest{
				Params: mcp.CallToolParams{
					Name:      "docs_create_from_markdown",
					Arguments: tt.args,
				},
			}

			result, err := handleCreateFromMarkdown(ctx, request, serverContext)

			if err != nil {
				t.Errorf("handleCreateFromMarkdown() unexpected error = %v", err)
			}

			if result == nil {
				t.Fatal("handleCreateFromMarkdown() returned nil result")
			}

			// Should return an error result for invalid input
			if !result.IsError {
				t.Error("handleCreateFromMarkdown() expected error result")
			}
		})
	}
}

// TestHandleGetDocumentValidation tests input validation for handleGetDocument
func TestHandleGetDocumentValidation(t *testing.T) {
	ctx := context.Background()
	serverContext := newTestServerContext(t)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "docs_get_document",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := handleGetDocument(ctx, request, serverContext)

	if err != nil {
		t.Errorf("handleGetDocument() unexpected error = %v", err)
	}

	if result == nil {
		t.Fatal("handleGetDocument() returned nil result")
	}

	if !result.IsError {
		t.Error("handleGetDocument() expected error result for missing documentId")
	}
}

// TestHandleGetDocumentNoToken tests that handlers surface an authorization
// hint when no token exists for the account
func TestHandleGetDocumentNoToken(t *testing.T) {
	ctx := context.Background()
	serverContext := newTestServerContext(t)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "docs_get_document",
			Arguments: map[string]interface{}{
				"documentId": "doc123",
			},
		},
	}

	result, err := handleGetDocument(ctx, request, serverContext)

	if err != nil {
		t.Errorf("handleGetDocument() unexpected error = %v", err)
	}

	if result == nil {
		t.Fatal("handleGetDocument() returned nil result")
	}

	// No token in the isolated environment, so the handler should return
	// an error result rather than a Go error
	if !result.IsError {
		t.Error("handleGetDocument() expected error result without a token")
	}
}

// TestHandleClearDocumentValidation tests input validation for handleClearDocument
func TestHandleClearDocumentValidation(t *testing.T) {
	ctx := context.Background()
	serverContext := newTestServerContext(t)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "docs_clear_document",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := handleClearDocument(ctx, request, serverContext)

	if err != nil {
		t.Errorf("handleClearDocument() unexpected error = %v", err)
	}

	if result == nil {
		t.Fatal("handleClearDocument() returned nil result")
	}

	if !result.IsError {
		t.Error("handleClearDocument() expected error result for missing documentId")
	}
}

// TestHandleInsertImageValidation tests input validation for handleInsertImage
func TestHandleInsertImageValidation(t *testing.T) {
	ctx := context.Background()
	serverContext := newTestServerContext(t)

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{
			name: "missing documentId",
			args: map[string]interface{}{
				"imageUri": "https://example.com/logo.png",
			},
		},
		{
			name: "missing imageUri",
			args: map[string]interface{}{
				"documentId": "doc123",
			},
		},
		{
			name: "empty imageUri",
			args: map[string]interface{}{
				"documentId": "doc123",
				"imageUri":   "",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := mcp.CallToolRequest{
				Params: mcp.CallToolParams{
					Name:      "docs_insert_image",
					Arguments: tt.args,
				},
			}

			result, err := handleInsertImage(ctx, request, serverContext)

			if err != nil {
				t.Errorf("handleInsertImage() unexpected error = %v", err)
			}

			if result == nil {
				t.Fatal("handleInsertImage() returned nil result")
			}

			if !result.IsError {
				t.Error("handleInsertImage() expected error result")
			}
		})
	}
}
