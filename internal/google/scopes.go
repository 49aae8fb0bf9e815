package google

import (
	docs "google.golang.org/api/docs/v1"
	drive "google.golang.org/api/drive/v3"
)

// DefaultOAuthScopes are the Google OAuth scopes the tool requests.
//
// The scopes provide access to:
//   - Google Docs: full access (create, read, and edit documents)
//   - Google Drive: full access (folders, moves, sharing, deletion)
var DefaultOAuthScopes = []string{
	docs.DocumentsScope,
	drive.DriveScope,
}
