package docs

import "fmt"

// ValidationError reports a block that cannot be compiled. Block is the
// zero-based position of the offending block in the input sequence.
type ValidationError struct {
	Block  int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid block %d: %s", e.Block, e.Reason)
}

// TransportError reports a failed batch submission. Batch is the
// zero-based index of the batch that failed out of Batches planned.
// Batches before the failing one were already applied, so the document
// may hold a partial write.
type TransportError struct {
	Batch   int
	Batches int
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("batch update %d of %d failed: %v", e.Batch+1, e.Batches, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
