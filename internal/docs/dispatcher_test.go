package docs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	docs "google.golang.org/api/docs/v1"
)

type fakeUpdater struct {
	calls  [][]*docs.Request
	docIDs []string

	// failAt is the 0-based call index that returns err; -1 never fails.
	failAt int
	err    error

	// cancel, when set, is invoked after the first call.
	cancel context.CancelFunc
}

func (f *fakeUpdater) BatchUpdate(ctx context.Context, documentID string, reqs []*docs.Request) error {
	f.calls = append(f.calls, reqs)
	f.docIDs = append(f.docIDs, documentID)
	if f.cancel != nil && len(f.calls) == 1 {
		f.cancel()
	}
	if f.failAt >= 0 && len(f.calls)-1 == f.failAt {
		return f.err
	}
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func insertOps(n int) []Operation {
	ops := make([]Operation, n)
	for i := range ops {
		ops[i] = Operation{Kind: OpInsertText, At: int64(1 + i), Text: fmt.Sprintf("op%d", i)}
	}
	return ops
}

func TestSplitBatches(t *testing.T) {
	tests := []struct {
		ops  int
		size int
		want []int
	}{
		{120, 50, []int{50, 50, 20}},
		{35, 35, []int{35}},
		{36, 35, []int{35, 1}},
		{1, 35, []int{1}},
		{0, 35, nil},
	}
	for _, tt := range tests {
		batches := splitBatches(insertOps(tt.ops), tt.size)
		if len(batches) != len(tt.want) {
			t.Errorf("splitBatches(%d, %d) yielded %d batches, want %d", tt.ops, tt.size, len(batches), len(tt.want))
			continue
		}
		for i, b := range batches {
			if len(b) != tt.want[i] {
				t.Errorf("splitBatches(%d, %d) batch %d has %d ops, want %d", tt.ops, tt.size, i, len(b), tt.want[i])
			}
		}
	}
}

func TestDispatchBatchesInOrder(t *testing.T) {
	fake := &fakeUpdater{failAt: -1}
	d := NewDispatcher(fake, WithBatchSize(35), WithDispatchLogger(quietLogger()))

	n, err := d.Dispatch(context.Background(), "doc1", insertOps(80))
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if n != 3 {
		t.Errorf("Dispatch() batches = %d, want 3", n)
	}
	if len(fake.calls) != 3 {
		t.Fatalf("got %d calls, want 3", len(fake.calls))
	}

	wantSizes := []int{35, 35, 10}
	wantFirst := []string{"op0", "op35", "op70"}
	for i, call := range fake.calls {
		if len(call) != wantSizes[i] {
			t.Errorf("call %d has %d requests, want %d", i, len(call), wantSizes[i])
		}
		if got := call[0].InsertText.Text; got != wantFirst[i] {
			t.Errorf("call %d starts with %q, want %q", i, got, wantFirst[i])
		}
		if fake.docIDs[i] != "doc1" {
			t.Errorf("call %d document = %q, want doc1", i, fake.docIDs[i])
		}
	}
}

func TestDispatchDefaultBatchSize(t *testing.T) {
	fake := &fakeUpdater{failAt: -1}
	d := NewDispatcher(fake, WithDispatchLogger(quietLogger()))

	if _, err := d.Dispatch(context.Background(), "doc1", insertOps(DefaultBatchSize+1)); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if len(fake.calls) != 2 {
		t.Fatalf("got %d calls, want 2", len(fake.calls))
	}
	if len(fake.calls[0]) != DefaultBatchSize || len(fake.calls[1]) != 1 {
		t.Errorf("call sizes = %d, %d", len(fake.calls[0]), len(fake.calls[1]))
	}
}

func TestDispatchStopsAtFailedBatch(t *testing.T) {
	boom := errors.New("boom")
	fake := &fakeUpdater{failAt: 1, err: boom}
	d := NewDispatcher(fake, WithBatchSize(35), WithDispatchLogger(quietLogger()))

	n, err := d.Dispatch(context.Background(), "doc1", insertOps(80))
	if n != 1 {
		t.Errorf("Dispatch() batches applied = %d, want 1", n)
	}
	if len(fake.calls) != 2 {
		t.Errorf("got %d calls, want 2 (no call after the failure)", len(fake.calls))
	}

	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("Dispatch() error = %v, want *TransportError", err)
	}
	if terr.Batch != 1 || terr.Batches != 3 {
		t.Errorf("TransportError = batch %d of %d, want 1 of 3", terr.Batch, terr.Batches)
	}
	if !errors.Is(err, boom) {
		t.Errorf("errors.Is(err, boom) = false, want unwrap to reach the cause")
	}
}

func TestDispatchContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fake := &fakeUpdater{failAt: -1, cancel: cancel}
	d := NewDispatcher(fake, WithBatchSize(35), WithDispatchLogger(quietLogger()))

	_, err := d.Dispatch(ctx, "doc1", insertOps(80))
	if len(fake.calls) != 1 {
		t.Errorf("got %d calls, want 1 (cancellation checked between batches)", len(fake.calls))
	}

	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("Dispatch() error = %v, want *TransportError", err)
	}
	if terr.Batch != 1 {
		t.Errorf("TransportError.Batch = %d, want 1", terr.Batch)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("errors.Is(err, context.Canceled) = false")
	}
}

func TestDispatchSkipsDegenerateBatches(t *testing.T) {
	fake := &fakeUpdater{failAt: -1}
	d := NewDispatcher(fake, WithBatchSize(1), WithDispatchLogger(quietLogger()))

	// The style op's range collapsed to nothing, so its whole batch
	// encodes to zero requests and is skipped without a call.
	ops := []Operation{
		{Kind: OpInsertText, At: 1, Text: "kept\n"},
		{Kind: OpTextStyle, Range: Range{Start: 3, End: 3}, Bold: true},
	}
	n, err := d.Dispatch(context.Background(), "doc1", ops)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Dispatch() batches = %d, want 2", n)
	}
	if len(fake.calls) != 1 {
		t.Errorf("got %d calls, want 1", len(fake.calls))
	}
}

func TestDispatchNoOperations(t *testing.T) {
	fake := &fakeUpdater{failAt: -1}
	d := NewDispatcher(fake)

	n, err := d.Dispatch(context.Background(), "doc1", nil)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if n != 0 || len(fake.calls) != 0 {
		t.Errorf("Dispatch() = %d batches, %d calls, want 0 and 0", n, len(fake.calls))
	}
}

func TestTransportErrorMessage(t *testing.T) {
	err := &TransportError{Batch: 1, Batches: 3, Err: errors.New("quota exceeded")}
	want := "batch update 2 of 3 failed: quota exceeded"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
