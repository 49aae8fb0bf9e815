package drive

import "time"

// FileInfo is the subset of Drive file metadata this package exposes.
type FileInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`

	// Size in bytes. Not populated for folders.
	Size int64 `json:"size,omitempty"`

	CreatedTime  time.Time `json:"createdTime"`
	ModifiedTime time.Time `json:"modifiedTime"`

	// WebViewLink opens the file in the relevant Google editor or viewer.
	// WebContentLink downloads the content; absent for folders.
	WebViewLink    string `json:"webViewLink,omitempty"`
	WebContentLink string `json:"webContentLink,omitempty"`

	Parents     []string     `json:"parents,omitempty"`
	Owners      []User       `json:"owners,omitempty"`
	Shared      bool         `json:"shared"`
	Permissions []Permission `json:"permissions,omitempty"`

	Trashed     bool       `json:"trashed"`
	TrashedTime *time.Time `json:"trashedTime,omitempty"`
}

// IsFolder reports whether the file is a Drive folder.
func (f *FileInfo) IsFolder() bool {
	return f.MimeType == FolderMimeType
}

// User identifies a Drive user, as it appears in owner and permission
// listings.
type User struct {
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
	PhotoLink    string `json:"photoLink,omitempty"`
}

// Permission is one access grant on a file.
type Permission struct {
	ID string `json:"id"`

	// Type of grantee: user, group, domain, or anyone.
	Type string `json:"type"`

	// Role: owner, organizer, fileOrganizer, writer, commenter, or reader.
	Role string `json:"role"`

	// EmailAddress is set for user and group grants, Domain for domain
	// grants.
	EmailAddress string `json:"emailAddress,omitempty"`
	Domain       string `json:"domain,omitempty"`

	DisplayName string `json:"displayName,omitempty"`
}

// Capabilities reports what the authenticated user may do with a file.
type Capabilities struct {
	CanEdit        bool `json:"canEdit"`
	CanComment     bool `json:"canComment"`
	CanShare       bool `json:"canShare"`
	CanRename      bool `json:"canRename"`
	CanAddChildren bool `json:"canAddChildren"`
	CanDelete      bool `json:"canDelete"`
}

// ListOptions controls ListFiles.
type ListOptions struct {
	// Query in Drive's query language, e.g. "name contains 'report'" or
	// "mimeType='application/pdf'". See
	// https://developers.google.com/drive/api/guides/search-files
	Query string

	// FolderID restricts results to children of this folder.
	FolderID string

	// MaxResults caps the page size. The API maximum is 1000.
	MaxResults int

	// OrderBy is a Drive sort expression, e.g. "folder,modifiedTime desc,name".
	OrderBy string

	// PageToken resumes a previous listing.
	PageToken string

	IncludeTrashed bool

	// Spaces is a comma-separated list of spaces to query (drive,
	// appDataFolder, photos).
	Spaces string
}

// MoveOptions controls MoveFile. At least one field must be set.
type MoveOptions struct {
	// NewName renames the file; empty keeps the current name.
	NewName string

	AddParents    []string
	RemoveParents []string
}

// ShareOptions controls ShareFile.
type ShareOptions struct {
	// Type of grantee: "user", "group", "domain", or "anyone".
	Type string

	// Role to grant: "owner", "organizer", "fileOrganizer", "writer",
	// "commenter", or "reader".
	Role string

	// EmailAddress is required when Type is "user" or "group"; Domain
	// when Type is "domain".
	EmailAddress string
	Domain       string

	SendNotificationEmail bool
	EmailMessage          string
}
