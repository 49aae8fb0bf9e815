// Package drive_tools registers the MCP tools that expose Google Drive
// file management, folder operations and permission sharing to MCP
// clients such as AI assistants.
//
// The tools:
//
//   - drive_list_files: list and search files with filtering
//   - drive_get_files: metadata (and optionally capabilities) for one or more files
//   - drive_delete_file: delete one or more files
//   - drive_create_folder: create folders
//   - drive_ensure_folder: find a folder by name, creating it when absent
//   - drive_move_file: move or rename files
//   - drive_share_file: grant permissions on files
//   - drive_list_permissions: list the permissions of a file
//   - drive_remove_permission: revoke a permission
//
// Every tool takes an optional 'account' parameter naming the stored
// OAuth token to act under. In read-only mode the write tools are never
// registered.
//
// Example tool usage:
//
//	drive_list_files({
//	  account: "work",
//	  folderId: "folder_id",
//	  maxResults: 10
//	})
//
//	drive_share_file({
//	  account: "work",
//	  fileIds: ["doc_id_1", "doc_id_2"],
//	  type: "user",
//	  role: "writer",
//	  emailAddress: "reviewer@example.com"
//	})
package drive_tools
