package docs

import (
	"context"
	"log/slog"
	"time"

	docs "google.golang.org/api/docs/v1"

	"github.com/docpush/gdocs/internal/instrumentation"
	"github.com/docpush/gdocs/internal/logging"
)

// DefaultBatchSize is the number of operations submitted per batch
// update. Large documents compile to hundreds of requests; bounded
// slices keep each call comfortably inside the API request limits.
const DefaultBatchSize = 35

// BatchUpdater submits one slice of requests against a document.
// *Client implements it over the live API.
type BatchUpdater interface {
	BatchUpdate(ctx context.Context, documentID string, requests []*docs.Request) error
}

// Dispatcher slices an operation list into bounded batches and submits
// them strictly in order. There is no retry and no rollback: when a
// batch fails, everything before it is already applied to the document.
type Dispatcher struct {
	updater   BatchUpdater
	batchSize int
	logger    *slog.Logger
	metrics   *instrumentation.Metrics
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithBatchSize overrides DefaultBatchSize. Values below one are ignored.
func WithBatchSize(n int) DispatcherOption {
	return func(d *Dispatcher) {
		if n > 0 {
			d.batchSize = n
		}
	}
}

// WithDispatchLogger sets the logger used for batch progress.
func WithDispatchLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithDispatchMetrics records batch submissions on m.
func WithDispatchMetrics(m *instrumentation.Metrics) DispatcherOption {
	return func(d *Dispatcher) { d.metrics = m }
}

// NewDispatcher creates a Dispatcher submitting through updater.
func NewDispatcher(updater BatchUpdater, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		updater:   updater,
		batchSize: DefaultBatchSize,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch encodes ops and submits them against documentID in order.
// It returns the number of batches applied. A failure surfaces as a
// *TransportError naming the failing batch; earlier batches remain
// applied. Context cancellation is honored between batches.
func (d *Dispatcher) Dispatch(ctx context.Context, documentID string, ops []Operation) (int, error) {
	batches := splitBatches(ops, d.batchSize)

	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			return i, &TransportError{Batch: i, Batches: len(batches), Err: err}
		}

		reqs := EncodeRequests(batch)
		if len(reqs) == 0 {
			continue
		}

		start := time.Now()
		err := d.updater.BatchUpdate(ctx, documentID, reqs)
		if d.metrics != nil {
			status := logging.StatusSuccess
			if err != nil {
				status = logging.StatusError
			}
			d.metrics.RecordBatchUpdate(ctx, len(reqs), status, time.Since(start))
		}
		if err != nil {
			d.logger.Error("batch update failed",
				logging.Operation("docs.batch_update"),
				logging.DocumentID(documentID),
				slog.Int(logging.KeyBatch, i),
				slog.Int("batches", len(batches)),
				logging.Err(err))
			return i, &TransportError{Batch: i, Batches: len(batches), Err: err}
		}
		d.logger.Debug("batch update applied",
			logging.Operation("docs.batch_update"),
			logging.DocumentID(documentID),
			slog.Int(logging.KeyBatch, i),
			slog.Int("requests", len(reqs)))
	}
	return len(batches), nil
}

// splitBatches slices ops into contiguous runs of at most size
// operations, preserving order.
func splitBatches(ops []Operation, size int) [][]Operation {
	if size <= 0 {
		size = DefaultBatchSize
	}
	var batches [][]Operation
	for start := 0; start < len(ops); start += size {
		end := min(start+size, len(ops))
		batches = append(batches, ops[start:end])
	}
	return batches
}
