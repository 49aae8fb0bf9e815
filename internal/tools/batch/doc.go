// Package batch supports MCP tools that accept one or many Drive file
// IDs in a single call: parsing arguments that may be a string or an
// array, running an operation per ID with cancellation handled, and
// rendering the per-item outcomes, partial failures included, in one
// consistent structure.
package batch
