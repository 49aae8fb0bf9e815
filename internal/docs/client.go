package docs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	docs "google.golang.org/api/docs/v1"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/docpush/gdocs/internal/google"
	"github.com/docpush/gdocs/internal/instrumentation"
	"github.com/docpush/gdocs/internal/markdown"
)

// Client wraps the Google Docs API service, plus the Drive service for
// the file-level operations document workflows need (moving a fresh
// document into a folder, reading file metadata).
type Client struct {
	docsService  *docs.Service
	driveService *drive.Service
	account      string
	logger       *slog.Logger
	metrics      *instrumentation.Metrics
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithLogger sets the logger batch dispatch reports progress on.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics records batch submissions on m.
func WithMetrics(m *instrumentation.Metrics) ClientOption {
	return func(c *Client) { c.metrics = m }
}

// Account returns the account name this client is associated with.
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccount checks if a valid OAuth token exists for the specified account.
func HasTokenForAccount(account string) bool {
	return google.HasTokenForAccount(account)
}

// HasToken checks if a valid OAuth token exists for the default account.
func HasToken() bool {
	return google.HasToken()
}

// NewClientForAccount creates a new Google Docs client with OAuth2
// authentication for a specific account. It returns an error if no valid
// token exists; use HasTokenForAccount() to check first.
func NewClientForAccount(ctx context.Context, account string, opts ...ClientOption) (*Client, error) {
	httpClient, err := google.GetHTTPClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s. Please authorize access first: %w", account, err)
	}

	docsService, err := docs.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Docs service: %w", err)
	}

	driveService, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	c := &Client{
		docsService:  docsService,
		driveService: driveService,
		account:      account,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewClient creates a new Google Docs client for the default account.
func NewClient(ctx context.Context, opts ...ClientOption) (*Client, error) {
	return NewClientForAccount(ctx, "default", opts...)
}

// DocumentURL returns the edit URL for a document ID.
func DocumentURL(documentID string) string {
	return "https://docs.google.com/document/d/" + documentID + "/edit"
}

// BatchUpdate submits one slice of requests against a document. It
// implements BatchUpdater.
func (c *Client) BatchUpdate(ctx context.Context, documentID string, requests []*docs.Request) error {
	if len(requests) == 0 {
		return nil
	}
	_, err := c.docsService.Documents.BatchUpdate(documentID, &docs.BatchUpdateDocumentRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to apply batch update to document %s: %w", documentID, err)
	}
	return nil
}

// CreateOptions control document creation.
type CreateOptions struct {
	// FolderID moves the new document into a folder when set.
	FolderID string
	// BatchSize overrides the dispatcher's default batch ceiling.
	BatchSize int
	// StrictStatus rejects unknown status labels instead of using the
	// neutral highlight.
	StrictStatus bool
}

// CreatedDocument describes the result of CreateDocument.
type CreatedDocument struct {
	ID      string
	Title   string
	URL     string
	Batches int
}

// CreateDocument creates a document titled title and renders blocks into
// it. Blocks are compiled before anything is created, so validation
// failures leave no document behind. If dispatching fails partway the
// returned document is non-nil and the error wraps a *TransportError;
// batches already applied remain in the document.
func (c *Client) CreateDocument(ctx context.Context, title string, blocks []markdown.Block, opts *CreateOptions) (*CreatedDocument, error) {
	if title == "" {
		return nil, fmt.Errorf("document title is required")
	}
	if opts == nil {
		opts = &CreateOptions{}
	}

	var compilerOpts []CompilerOption
	if opts.StrictStatus {
		compilerOpts = append(compilerOpts, WithStrictStatus())
	}
	ops, _, err := NewCompiler(compilerOpts...).Compile(blocks)
	if err != nil {
		return nil, fmt.Errorf("failed to compile document content: %w", err)
	}

	doc, err := c.docsService.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	created := &CreatedDocument{
		ID:    doc.DocumentId,
		Title: title,
		URL:   DocumentURL(doc.DocumentId),
	}

	if opts.FolderID != "" {
		if err := c.moveToFolder(ctx, doc.DocumentId, opts.FolderID); err != nil {
			return created, err
		}
	}

	dispatcher := NewDispatcher(c,
		WithBatchSize(opts.BatchSize),
		WithDispatchLogger(c.logger),
		WithDispatchMetrics(c.metrics))
	batches, err := dispatcher.Dispatch(ctx, doc.DocumentId, ops)
	created.Batches = batches
	if err != nil {
		return created, fmt.Errorf("failed to render document %s: %w", doc.DocumentId, err)
	}
	return created, nil
}

// CreateDocumentFromMarkdown parses markdown source and renders it into a
// new document. Frontmatter is not interpreted here; strip it first if
// the source may carry one.
func (c *Client) CreateDocumentFromMarkdown(ctx context.Context, title, source string, opts *CreateOptions) (*CreatedDocument, error) {
	blocks := markdown.NewParser().Parse([]byte(source))
	return c.CreateDocument(ctx, title, blocks, opts)
}

// ReplaceDocumentFromMarkdown clears an existing document and renders
// markdown source into it. The source is compiled before the document
// is touched, so validation failures leave the existing content intact.
// opts.FolderID is ignored; the document keeps its location.
func (c *Client) ReplaceDocumentFromMarkdown(ctx context.Context, documentID, source string, opts *CreateOptions) (int, error) {
	if documentID == "" {
		return 0, fmt.Errorf("documentID is required")
	}
	if opts == nil {
		opts = &CreateOptions{}
	}

	var compilerOpts []CompilerOption
	if opts.StrictStatus {
		compilerOpts = append(compilerOpts, WithStrictStatus())
	}
	blocks := markdown.NewParser().Parse([]byte(source))
	ops, _, err := NewCompiler(compilerOpts...).Compile(blocks)
	if err != nil {
		return 0, fmt.Errorf("failed to compile document content: %w", err)
	}

	if err := c.ClearDocument(ctx, documentID); err != nil {
		return 0, err
	}

	dispatcher := NewDispatcher(c,
		WithBatchSize(opts.BatchSize),
		WithDispatchLogger(c.logger),
		WithDispatchMetrics(c.metrics))
	batches, err := dispatcher.Dispatch(ctx, documentID, ops)
	if err != nil {
		return batches, fmt.Errorf("failed to render document %s: %w", documentID, err)
	}
	return batches, nil
}

// moveToFolder reparents a file under folderID, detaching its current
// parents.
func (c *Client) moveToFolder(ctx context.Context, fileID, folderID string) error {
	file, err := c.driveService.Files.Get(fileID).
		Fields("parents").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to read parents of %s: %w", fileID, err)
	}

	call := c.driveService.Files.Update(fileID, &drive.File{}).
		AddParents(folderID).
		Context(ctx)
	if len(file.Parents) > 0 {
		call = call.RemoveParents(strings.Join(file.Parents, ","))
	}
	if _, err := call.Do(); err != nil {
		return fmt.Errorf("failed to move %s into folder %s: %w", fileID, folderID, err)
	}
	return nil
}

// GetDocument retrieves a document by ID, including all tabs for
// documents that have them.
func (c *Client) GetDocument(ctx context.Context, documentID string) (*docs.Document, error) {
	if documentID == "" {
		return nil, fmt.Errorf("documentID is required")
	}

	doc, err := c.docsService.Documents.Get(documentID).
		IncludeTabsContent(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", documentID, err)
	}
	return doc, nil
}

// GetDocumentAsMarkdown converts a document to markdown.
func (c *Client) GetDocumentAsMarkdown(ctx context.Context, documentID string) (string, error) {
	doc, err := c.GetDocument(ctx, documentID)
	if err != nil {
		return "", err
	}
	return DocumentToMarkdown(doc)
}

// GetDocumentAsPlainText extracts plain text from a document.
func (c *Client) GetDocumentAsPlainText(ctx context.Context, documentID string) (string, error) {
	doc, err := c.GetDocument(ctx, documentID)
	if err != nil {
		return "", err
	}
	return DocumentToPlainText(doc)
}

// ReadDocument returns the document's plain text along with the images
// it references, in order of appearance.
func (c *Client) ReadDocument(ctx context.Context, documentID string) (*DocContent, error) {
	doc, err := c.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	text, err := DocumentToPlainText(doc)
	if err != nil {
		return nil, err
	}

	return &DocContent{
		ID:     doc.DocumentId,
		Title:  doc.Title,
		Text:   text,
		Images: ExtractImages(doc),
	}, nil
}

// ClearDocument deletes all body content, leaving an empty document the
// compiler can render into from BodyStart.
func (c *Client) ClearDocument(ctx context.Context, documentID string) error {
	doc, err := c.GetDocument(ctx, documentID)
	if err != nil {
		return err
	}
	if doc.Body == nil || len(doc.Body.Content) == 0 {
		return nil
	}

	// The final newline of the body cannot be deleted.
	end := doc.Body.Content[len(doc.Body.Content)-1].EndIndex - 1
	if end <= BodyStart {
		return nil
	}

	return c.BatchUpdate(ctx, documentID, []*docs.Request{{
		DeleteContentRange: &docs.DeleteContentRangeRequest{
			Range: &docs.Range{StartIndex: BodyStart, EndIndex: end},
		},
	}})
}

// ImageOptions control InsertImageTop.
type ImageOptions struct {
	WidthPt  float64
	HeightPt float64
	Center   bool
}

// InsertImageTop places an inline image at the very top of a document,
// above existing content, typically a logo or banner.
func (c *Client) InsertImageTop(ctx context.Context, documentID, uri string, opts *ImageOptions) error {
	if uri == "" {
		return fmt.Errorf("image URI is required")
	}
	width, height := float64(imageWidthPt), float64(imageHeightPt)
	center := true
	if opts != nil {
		if opts.WidthPt > 0 {
			width = opts.WidthPt
		}
		if opts.HeightPt > 0 {
			height = opts.HeightPt
		}
		center = opts.Center
	}

	ops := []Operation{
		{Kind: OpInsertImage, At: BodyStart, URI: uri, WidthPt: width, HeightPt: height},
		{Kind: OpInsertText, At: BodyStart + 1, Text: "\n"},
	}
	if center {
		ops = append(ops, Operation{
			Kind:      OpParagraphStyle,
			Range:     Range{Start: BodyStart, End: BodyStart + 2},
			Alignment: "CENTER",
		})
	}
	return c.BatchUpdate(ctx, documentID, EncodeRequests(ops))
}

// GetFileMetadata retrieves Drive metadata for any file.
func (c *Client) GetFileMetadata(ctx context.Context, fileID string) (*DocumentMetadata, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	file, err := c.driveService.Files.Get(fileID).
		Fields("id, name, mimeType, createdTime, modifiedTime, size, owners").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get file metadata %s: %w", fileID, err)
	}

	metadata := &DocumentMetadata{
		ID:           file.Id,
		Name:         file.Name,
		MimeType:     file.MimeType,
		CreatedTime:  file.CreatedTime,
		ModifiedTime: file.ModifiedTime,
		Size:         file.Size,
	}
	for _, owner := range file.Owners {
		metadata.Owners = append(metadata.Owners, User{
			DisplayName:  owner.DisplayName,
			EmailAddress: owner.EmailAddress,
		})
	}
	return metadata, nil
}
