// Package resources provides MCP resources for exposing document data.
// Resources are read-only data sources that MCP clients can fetch, such as
// document content, without going through a tool invocation.
package resources
