// Package google_tools registers the MCP tools for the Google OAuth flow:
// google_get_auth_url builds the consent URL for an account, and
// google_save_auth_code exchanges the pasted authorization code for a
// token on disk.
//
// A single token covers both Docs and Drive scopes, so completing the
// flow once per account unlocks every other tool. Refresh afterwards is
// automatic.
package google_tools
