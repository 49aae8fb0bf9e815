package instrumentation

import "strings"

// ExtractUserDomain reduces an email address to its domain so metrics and
// general logs never carry a label per user. Anything that does not look
// like an address maps to "unknown".
func ExtractUserDomain(email string) string {
	at := strings.IndexByte(email, '@')
	if at < 0 || at == len(email)-1 || strings.IndexByte(email[at+1:], '@') >= 0 {
		return "unknown"
	}
	return email[at+1:]
}

// Operation names used as metric labels. Status, OAuth and service
// constants live in config.go.
const (
	OperationList   = "list"
	OperationGet    = "get"
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
	OperationMove   = "move"
	OperationShare  = "share"
	OperationSearch = "search"
)
