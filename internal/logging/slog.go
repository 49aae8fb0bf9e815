package logging

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"
)

// Attribute keys shared across the codebase so log lines stay greppable.
const (
	KeyOperation  = "operation"
	KeyService    = "service"
	KeyAccount    = "account"
	KeyUserHash   = "user_hash"
	KeyDuration   = "duration"
	KeyStatus     = "status"
	KeyError      = "error"
	KeyTool       = "tool"
	KeyDocumentID = "document_id"
	KeyFileID     = "file_id"
	KeyFolderID   = "folder_id"
	KeyBatch      = "batch"
)

// Status values. Duplicated from the instrumentation package rather than
// imported, since instrumentation itself depends on logging.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// WithOperation returns logger with the operation attribute attached.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(Operation(operation))
}

// WithTool returns logger with the tool attribute attached.
func WithTool(logger *slog.Logger, tool string) *slog.Logger {
	return logger.With(Tool(tool))
}

// WithService returns logger with the service attribute attached.
func WithService(logger *slog.Logger, service string) *slog.Logger {
	return logger.With(Service(service))
}

// WithAccount returns logger with the account attribute attached.
func WithAccount(logger *slog.Logger, account string) *slog.Logger {
	return logger.With(Account(account))
}

func Operation(op string) slog.Attr { return slog.String(KeyOperation, op) }

func Service(svc string) slog.Attr { return slog.String(KeyService, svc) }

func Account(account string) slog.Attr { return slog.String(KeyAccount, account) }

func Tool(tool string) slog.Attr { return slog.String(KeyTool, tool) }

func Status(status string) slog.Attr { return slog.String(KeyStatus, status) }

func DocumentID(id string) slog.Attr { return slog.String(KeyDocumentID, id) }

func FileID(id string) slog.Attr { return slog.String(KeyFileID, id) }

func FolderID(id string) slog.Attr { return slog.String(KeyFolderID, id) }

// Err returns an error attribute. A nil err yields an empty group, which
// slog omits from output, so Err(maybeNil) is always safe to pass.
func Err(err error) slog.Attr {
	if err != nil {
		return slog.String(KeyError, err.Error())
	}
	return slog.Group("")
}

// AnonymizeEmail hashes an email for logging. Log entries stay
// correlatable per user without carrying the address itself.
func AnonymizeEmail(email string) string {
	if email == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(email))
	return "user:" + hex.EncodeToString(sum[:8])
}

// UserHash returns the anonymized email as an attribute.
func UserHash(email string) slog.Attr {
	return slog.String(KeyUserHash, AnonymizeEmail(email))
}

// ExtractDomain returns the domain part of an email address, or "" when
// the input is not a plain user@domain form.
func ExtractDomain(email string) string {
	_, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return ""
	}
	return domain
}

// Domain returns the email's domain as an attribute. Far lower
// cardinality than the full address.
func Domain(email string) slog.Attr {
	return slog.String("user_domain", ExtractDomain(email))
}
