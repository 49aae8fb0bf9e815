// Package logging holds the slog helpers shared by the rest of gdocs:
// canonical attribute keys, With* logger decorators, and PII-safe
// attribute constructors.
//
// Emails never reach the log stream directly. UserHash logs a truncated
// SHA-256 of the address (stable, so entries still correlate) and Domain
// logs only the part after the @.
//
//	logger := logging.WithOperation(slog.Default(), "docs.batch_update")
//	logger.Info("applied batches",
//	    logging.DocumentID(docID),
//	    logging.Status(logging.StatusSuccess))
package logging
