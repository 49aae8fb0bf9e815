// Package drive is a client for the Google Drive operations the document
// pipeline needs:
//
//   - listing and searching files and folders
//   - creating folders and finding-or-creating them by name
//   - moving and renaming files
//   - sharing and permission management, public links included
//   - walking folder trees
//   - deleting files
//
// Each Client is bound to one account and authenticates with the stored
// OAuth token from the google package. The requested scope is full Drive
// access, so listing, writing and sharing all work against the user's
// entire Drive.
//
// Example:
//
//	ctx := context.Background()
//	client, err := drive.NewClient(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Find or create the target folder
//	folder, err := client.EnsureFolder(ctx, "Reports", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// List the documents inside it
//	files, _, err := client.ListFiles(ctx, &drive.ListOptions{
//	    FolderID: folder.ID,
//	    Query:    "mimeType='" + drive.DocumentMimeType + "'",
//	    OrderBy:  "modifiedTime desc",
//	})
package drive
