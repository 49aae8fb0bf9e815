package common

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/docpush/gdocs/internal/instrumentation"
	"github.com/docpush/gdocs/internal/server"
)

// InstrumentedToolHandler wraps a tool handler with metrics and audit logging.
// Each invocation is timed, classified as success or error, and recorded
// against the tool name.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", sc, handler))
func InstrumentedToolHandler(toolName string, sc *server.ServerContext, handler mcpserver.ToolHandlerFunc) mcpserver.ToolHandlerFunc {
	return instrument(toolName, "", "", sc, handler)
}

// InstrumentedToolHandlerWithService is like InstrumentedToolHandler but also
// attributes the invocation to a Google service and operation, so the metrics
// show which Docs and Drive calls dominate and how long they take.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandlerWithService("my_tool", "drive", "list", sc, handler))
func InstrumentedToolHandlerWithService(toolName, serviceName, operation string, sc *server.ServerContext, handler mcpserver.ToolHandlerFunc) mcpserver.ToolHandlerFunc {
	return instrument(toolName, serviceName, operation, sc, handler)
}

func instrument(toolName, serviceName, operation string, sc *server.ServerContext, handler mcpserver.ToolHandlerFunc) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		metrics := sc.Metrics()
		auditLogger := sc.AuditLogger()

		// Nothing configured, skip the bookkeeping entirely.
		if metrics == nil && auditLogger == nil {
			return handler(ctx, request)
		}

		invocation := instrumentation.NewToolInvocation(toolName).WithSpanContext(ctx)
		if serviceName != "" {
			invocation.WithService(serviceName, operation)
		}
		account := GetAccountFromArgs(request.GetArguments())
		if account != "" {
			invocation.WithAccount(account)
		}

		start := time.Now()
		result, err := handler(ctx, request)
		duration := time.Since(start)

		completeInvocation(invocation, result, err)

		if metrics != nil {
			metrics.RecordToolInvocationWithAccount(ctx, toolName, invocation.Status(), account, duration)
			if serviceName != "" {
				metrics.RecordGoogleAPIOperation(ctx, serviceName, operation, invocation.Status(), duration)
			}
		}
		if auditLogger != nil {
			auditLogger.LogToolInvocation(invocation)
		}

		return result, err
	}
}

// completeInvocation stamps the outcome. A handler can fail two ways: a
// Go error, or a well-formed result that carries IsError for the client.
// Both count as errors.
func completeInvocation(invocation *instrumentation.ToolInvocation, result *mcp.CallToolResult, err error) {
	switch {
	case err != nil:
		invocation.CompleteWithError(err)
	case result != nil && result.IsError:
		invocation.Complete(false, nil)
	default:
		invocation.CompleteSuccess()
	}
}
