// Package common provides helpers shared by the Docs and Drive MCP tool
// packages: account extraction from tool arguments and instrumented
// handler wrappers that record metrics and audit events per invocation.
package common
