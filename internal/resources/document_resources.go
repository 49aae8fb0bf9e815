package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/docpush/gdocs/internal/docs"
	"github.com/docpush/gdocs/internal/server"
)

const documentURIPrefix = "gdocs://document/"

// RegisterDocumentResources registers document content resources.
// These resources let MCP clients read Google Docs without invoking a tool.
func RegisterDocumentResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Document content by ID
	documentTemplate := mcp.NewResourceTemplate(
		documentURIPrefix+"{documentId}",
		"Google Doc Content",
		mcp.WithTemplateDescription("Plain text content and referenced images of a Google Doc"),
		mcp.WithTemplateMIMEType("application/json"),
	)

	s.AddResourceTemplate(documentTemplate, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleDocumentContent(ctx, request, sc)
	})

	return nil
}

// extractDocumentIDFromURI extracts the document ID from "gdocs://document/{id}"
func extractDocumentIDFromURI(uri string) string {
	if !strings.HasPrefix(uri, documentURIPrefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, documentURIPrefix)
	// A trailing path would mean a malformed URI
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}

// handleDocumentContent returns the plain text and image references of a document
func handleDocumentContent(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	documentID := extractDocumentIDFromURI(request.Params.URI)
	if documentID == "" {
		return nil, fmt.Errorf("could not extract documentId from URI: %s", request.Params.URI)
	}

	docsClient := sc.DocsClient()
	if docsClient == nil {
		if !docs.HasToken() {
			return nil, fmt.Errorf("no Docs client available: no OAuth token for the default account")
		}
		var err error
		docsClient, err = docs.NewClient(ctx, docs.WithLogger(sc.Logger()), docs.WithMetrics(sc.Metrics()))
		if err != nil {
			return nil, fmt.Errorf("failed to create Docs client: %w", err)
		}
		sc.SetDocsClient(docsClient)
	}

	content, err := docsClient.ReadDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	jsonData, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document content: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
