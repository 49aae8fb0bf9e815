// Package docs_tools registers the MCP tools for Google Docs: creating
// documents from markdown, replacing or clearing their content, reading
// them back as markdown or plain text, fetching metadata and inserting
// header images.
//
// Write tools are not registered when the server runs in read-only mode.
// Every tool takes an optional 'account' parameter naming the stored
// OAuth token to act under.
package docs_tools
