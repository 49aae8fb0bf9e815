package drive

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/docpush/gdocs/internal/google"
)

const (
	// FolderMimeType is the MIME type of Drive folders.
	FolderMimeType = "application/vnd.google-apps.folder"

	// DocumentMimeType is the MIME type of native Google Docs.
	DocumentMimeType = "application/vnd.google-apps.document"
)

// Field selections requested from the Files API. Keeping them narrow
// keeps responses small on large listings.
const (
	fileFields       = "id, name, mimeType, size, createdTime, modifiedTime, webViewLink, webContentLink, parents, owners, shared, trashed, trashedTime"
	permissionFields = "id, type, role, emailAddress, domain, displayName"
)

// Client wraps the Drive API service for one account.
type Client struct {
	service *drive.Service
	account string
}

// Account returns the account name this client was created for.
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccount reports whether a stored OAuth token exists for account.
func HasTokenForAccount(account string) bool {
	return google.HasTokenForAccount(account)
}

// HasToken reports whether a stored OAuth token exists for the default account.
func HasToken() bool {
	return google.HasToken()
}

// GetAuthURLForAccount returns the OAuth consent URL for account.
func GetAuthURLForAccount(account string) (string, error) {
	return google.GetAuthURLForAccount(account)
}

// GetAuthURL returns the OAuth consent URL for the default account.
func GetAuthURL() (string, error) {
	return google.GetAuthURL()
}

// SaveTokenForAccount exchanges authCode and stores the resulting token
// under account.
func SaveTokenForAccount(ctx context.Context, account string, authCode string) error {
	return google.SaveTokenForAccount(ctx, account, authCode)
}

// SaveToken exchanges authCode and stores the token for the default account.
func SaveToken(ctx context.Context, authCode string) error {
	return google.SaveToken(ctx, authCode)
}

// NewClientForAccount builds a Drive client from the stored token of
// account. Check HasTokenForAccount first; this fails without a token.
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	httpClient, err := google.GetHTTPClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s. Please authorize access first: %w", account, err)
	}

	service, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	return &Client{service: service, account: account}, nil
}

// NewClient builds a Drive client for the default account.
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// FolderURL returns the browser URL of a folder.
func FolderURL(folderID string) string {
	return "https://drive.google.com/drive/folders/" + folderID
}

// ListFiles returns one page of files plus the token for the next page.
// Query, FolderID and the trashed filter combine into a single Drive
// query expression.
func (c *Client) ListFiles(ctx context.Context, options *ListOptions) ([]*FileInfo, string, error) {
	if options == nil {
		options = &ListOptions{}
	}

	call := c.service.Files.List().
		Context(ctx).
		Fields("nextPageToken, files(" + fileFields + ")")

	if query := buildListQuery(options); query != "" {
		call = call.Q(query)
	}
	if options.MaxResults > 0 {
		call = call.PageSize(int64(options.MaxResults))
	}
	if options.OrderBy != "" {
		call = call.OrderBy(options.OrderBy)
	}
	if options.PageToken != "" {
		call = call.PageToken(options.PageToken)
	}
	if options.Spaces != "" {
		call = call.Spaces(options.Spaces)
	}

	fileList, err := call.Do()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list files: %w", err)
	}

	files := make([]*FileInfo, len(fileList.Files))
	for i, f := range fileList.Files {
		files[i] = convertToFileInfo(f)
	}
	return files, fileList.NextPageToken, nil
}

// GetFile retrieves metadata for one file, permissions included.
func (c *Client) GetFile(ctx context.Context, fileID string) (*FileInfo, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	file, err := c.service.Files.Get(fileID).
		Context(ctx).
		Fields(fileFields + ", permissions").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get file %s: %w", fileID, err)
	}
	return convertToFileInfo(file), nil
}

// Capabilities reports what the authenticated user may do with a file.
func (c *Client) Capabilities(ctx context.Context, fileID string) (*Capabilities, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	file, err := c.service.Files.Get(fileID).
		Context(ctx).
		Fields("capabilities(canEdit, canComment, canShare, canRename, canAddChildren, canDelete)").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get capabilities of file %s: %w", fileID, err)
	}

	caps := &Capabilities{}
	if c := file.Capabilities; c != nil {
		caps.CanEdit = c.CanEdit
		caps.CanComment = c.CanComment
		caps.CanShare = c.CanShare
		caps.CanRename = c.CanRename
		caps.CanAddChildren = c.CanAddChildren
		caps.CanDelete = c.CanDelete
	}
	return caps, nil
}

// DeleteFile deletes a file permanently, bypassing the trash.
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	if fileID == "" {
		return fmt.Errorf("fileID is required")
	}
	if err := c.service.Files.Delete(fileID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", fileID, err)
	}
	return nil
}

// CreateFolder creates a folder, optionally under the given parents.
func (c *Client) CreateFolder(ctx context.Context, name string, parentFolders []string) (*FileInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("folder name is required")
	}

	folder := &drive.File{
		Name:     name,
		MimeType: FolderMimeType,
		Parents:  parentFolders,
	}

	created, err := c.service.Files.Create(folder).
		Context(ctx).
		Fields(fileFields).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	return convertToFileInfo(created), nil
}

// EnsureFolder returns the folder with the given name, creating it when
// absent. With a parentID the lookup and creation are scoped to that
// folder. When several folders match, the first listed wins.
func (c *Client) EnsureFolder(ctx context.Context, name, parentID string) (*FileInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("folder name is required")
	}

	query := fmt.Sprintf("name = '%s' and mimeType = '%s'", escapeQuery(name), FolderMimeType)
	if parentID != "" {
		query += fmt.Sprintf(" and '%s' in parents", escapeQuery(parentID))
	}

	files, _, err := c.ListFiles(ctx, &ListOptions{Query: query, MaxResults: 1})
	if err != nil {
		return nil, fmt.Errorf("failed to look up folder %s: %w", name, err)
	}
	if len(files) > 0 {
		return files[0], nil
	}

	var parents []string
	if parentID != "" {
		parents = []string{parentID}
	}
	return c.CreateFolder(ctx, name, parents)
}

// FindInFolder returns the non-trashed children of folderID whose name
// matches exactly.
func (c *Client) FindInFolder(ctx context.Context, folderID, name string) ([]*FileInfo, error) {
	if folderID == "" {
		return nil, fmt.Errorf("folderID is required")
	}

	query := fmt.Sprintf("name = '%s'", escapeQuery(name))
	files, _, err := c.ListFiles(ctx, &ListOptions{Query: query, FolderID: folderID})
	if err != nil {
		return nil, fmt.Errorf("failed to find %q in folder %s: %w", name, folderID, err)
	}
	return files, nil
}

// MoveFile applies a rename and/or parent changes in one update call.
func (c *Client) MoveFile(ctx context.Context, fileID string, options *MoveOptions) (*FileInfo, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}
	if options == nil {
		return nil, fmt.Errorf("move options are required")
	}

	call := c.service.Files.Update(fileID, &drive.File{Name: options.NewName}).
		Context(ctx).
		Fields(fileFields)

	if len(options.AddParents) > 0 {
		call = call.AddParents(strings.Join(options.AddParents, ","))
	}
	if len(options.RemoveParents) > 0 {
		call = call.RemoveParents(strings.Join(options.RemoveParents, ","))
	}

	updated, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to move file: %w", err)
	}
	return convertToFileInfo(updated), nil
}

// Rename changes a file's name and nothing else.
func (c *Client) Rename(ctx context.Context, fileID, newName string) (*FileInfo, error) {
	if newName == "" {
		return nil, fmt.Errorf("new name is required")
	}
	return c.MoveFile(ctx, fileID, &MoveOptions{NewName: newName})
}

// ShareFile grants a permission on a file.
func (c *Client) ShareFile(ctx context.Context, fileID string, options *ShareOptions) (*Permission, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}
	if options == nil {
		return nil, fmt.Errorf("share options are required")
	}
	if options.Type == "" {
		return nil, fmt.Errorf("permission type is required")
	}
	if options.Role == "" {
		return nil, fmt.Errorf("permission role is required")
	}

	call := c.service.Permissions.Create(fileID, &drive.Permission{
		Type:         options.Type,
		Role:         options.Role,
		EmailAddress: options.EmailAddress,
		Domain:       options.Domain,
	}).
		Context(ctx).
		Fields(permissionFields)

	if options.SendNotificationEmail {
		call = call.SendNotificationEmail(true)
		if options.EmailMessage != "" {
			call = call.EmailMessage(options.EmailMessage)
		}
	}

	created, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to share file: %w", err)
	}
	return convertToPermission(created), nil
}

// SharePublic opens a file to anyone with the link. Role defaults to
// reader when empty.
func (c *Client) SharePublic(ctx context.Context, fileID, role string) (*Permission, error) {
	if role == "" {
		role = "reader"
	}
	return c.ShareFile(ctx, fileID, &ShareOptions{Type: "anyone", Role: role})
}

// RemovePermission revokes one permission from a file.
func (c *Client) RemovePermission(ctx context.Context, fileID, permissionID string) error {
	if fileID == "" {
		return fmt.Errorf("fileID is required")
	}
	if permissionID == "" {
		return fmt.Errorf("permissionID is required")
	}
	if err := c.service.Permissions.Delete(fileID, permissionID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to remove permission: %w", err)
	}
	return nil
}

// ListPermissions lists every permission on a file.
func (c *Client) ListPermissions(ctx context.Context, fileID string) ([]*Permission, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	permList, err := c.service.Permissions.List(fileID).
		Context(ctx).
		Fields("permissions(" + permissionFields + ")").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}

	permissions := make([]*Permission, len(permList.Permissions))
	for i, p := range permList.Permissions {
		permissions[i] = convertToPermission(p)
	}
	return permissions, nil
}

// SkipFolder can be returned by a WalkFunc for a folder to skip
// descending into it.
var SkipFolder = errors.New("skip this folder")

// WalkFunc visits one file during a folder tree traversal.
type WalkFunc func(file *FileInfo, depth int) error

// Walk traverses the folder tree rooted at folderID depth-first. Children
// are visited folders-first in name order. Folders reachable through more
// than one parent are descended into once.
func (c *Client) Walk(ctx context.Context, folderID string, fn WalkFunc) error {
	if folderID == "" {
		return fmt.Errorf("folderID is required")
	}
	seen := map[string]bool{folderID: true}
	return c.walk(ctx, folderID, 0, seen, fn)
}

func (c *Client) walk(ctx context.Context, folderID string, depth int, seen map[string]bool, fn WalkFunc) error {
	pageToken := ""
	for {
		files, next, err := c.ListFiles(ctx, &ListOptions{
			FolderID:   folderID,
			OrderBy:    "folder,name",
			MaxResults: 1000,
			PageToken:  pageToken,
		})
		if err != nil {
			return err
		}

		for _, f := range files {
			err := fn(f, depth)
			if errors.Is(err, SkipFolder) {
				continue
			}
			if err != nil {
				return err
			}
			if f.MimeType == FolderMimeType && !seen[f.ID] {
				seen[f.ID] = true
				if err := c.walk(ctx, f.ID, depth+1, seen, fn); err != nil {
					return err
				}
			}
		}

		if next == "" {
			return nil
		}
		pageToken = next
	}
}

// buildListQuery combines the user query, folder scope and trashed filter
// into one Drive query expression. The user query is parenthesized when
// other terms join it so its own or-branches stay grouped.
func buildListQuery(options *ListOptions) string {
	var terms []string
	if options.FolderID != "" {
		terms = append(terms, fmt.Sprintf("'%s' in parents", escapeQuery(options.FolderID)))
	}
	if !options.IncludeTrashed {
		terms = append(terms, "trashed = false")
	}
	if options.Query != "" {
		if len(terms) == 0 {
			return options.Query
		}
		terms = append([]string{"(" + options.Query + ")"}, terms...)
	}
	return strings.Join(terms, " and ")
}

// escapeQuery escapes backslashes and single quotes for the Drive query
// language.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

func convertToFileInfo(f *drive.File) *FileInfo {
	fi := &FileInfo{
		ID:             f.Id,
		Name:           f.Name,
		MimeType:       f.MimeType,
		Size:           f.Size,
		WebViewLink:    f.WebViewLink,
		WebContentLink: f.WebContentLink,
		Parents:        f.Parents,
		Shared:         f.Shared,
		Trashed:        f.Trashed,
	}

	fi.CreatedTime = parseAPITime(f.CreatedTime)
	fi.ModifiedTime = parseAPITime(f.ModifiedTime)
	if f.TrashedTime != "" {
		if t := parseAPITime(f.TrashedTime); !t.IsZero() {
			fi.TrashedTime = &t
		}
	}

	for _, owner := range f.Owners {
		fi.Owners = append(fi.Owners, User{
			DisplayName:  owner.DisplayName,
			EmailAddress: owner.EmailAddress,
			PhotoLink:    owner.PhotoLink,
		})
	}
	for _, perm := range f.Permissions {
		fi.Permissions = append(fi.Permissions, *convertToPermission(perm))
	}
	return fi
}

// parseAPITime parses the RFC 3339 timestamps the Drive API returns.
// Malformed or empty values become the zero time.
func parseAPITime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func convertToPermission(p *drive.Permission) *Permission {
	return &Permission{
		ID:           p.Id,
		Type:         p.Type,
		Role:         p.Role,
		EmailAddress: p.EmailAddress,
		Domain:       p.Domain,
		DisplayName:  p.DisplayName,
	}
}
