package docs

import (
	"errors"
	"testing"

	"github.com/docpush/gdocs/internal/markdown"
)

func TestBuilderStatusReport(t *testing.T) {
	b := NewBuilder().
		Heading(1, "Weekly Report").
		Status("in_progress").
		Blank().
		Bullet("shipped the parser").
		Bullet("started on batching")

	blocks := b.Blocks()
	if len(blocks) != 5 {
		t.Fatalf("got %d blocks, want 5", len(blocks))
	}
	if blocks[1].Status != "IN_PROGRESS" {
		t.Errorf("status label = %q, want uppercased IN_PROGRESS", blocks[1].Status)
	}

	ops, _, err := b.Operations()
	if err != nil {
		t.Fatalf("Operations() error = %v", err)
	}

	var bullets int
	for _, op := range ops {
		if op.Kind == OpCreateBullets {
			bullets++
		}
	}
	if bullets != 1 {
		t.Errorf("got %d bullet operations, want 1 merged run", bullets)
	}
}

func TestBuilderCodeLinesMerge(t *testing.T) {
	ops, _, err := NewBuilder().Code("a := 1", "b := 2", "c := 3").Operations()
	if err != nil {
		t.Fatalf("Operations() error = %v", err)
	}

	var styles int
	for _, op := range ops {
		if op.Kind == OpTextStyle && op.FontFamily == "Courier New" {
			styles++
		}
	}
	if styles != 1 {
		t.Errorf("got %d code style operations, want 1", styles)
	}
}

func TestBuilderParagraphSpans(t *testing.T) {
	ops, _, err := NewBuilder().
		Paragraph("read the docs", markdown.Span{Start: 9, End: 13, Style: markdown.SpanLink, URL: "https://example.com"}).
		Operations()
	if err != nil {
		t.Fatalf("Operations() error = %v", err)
	}
	if len(ops) != 2 || ops[1].LinkURL != "https://example.com" {
		t.Errorf("ops = %+v, want insert plus link style", ops)
	}
}

func TestBuilderStrictStatus(t *testing.T) {
	_, _, err := NewBuilder(WithStrictStatus()).Status("shipped").Operations()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Operations() error = %v, want *ValidationError", err)
	}
}

func TestBuilderEmpty(t *testing.T) {
	ops, end, err := NewBuilder().Operations()
	if err != nil {
		t.Fatalf("Operations() error = %v", err)
	}
	if len(ops) != 0 || end != BodyStart {
		t.Errorf("Operations() = %d ops, cursor %d; want none at start", len(ops), end)
	}
}
