package markdown

import (
	"reflect"
	"testing"
)

func TestParseHeadings(t *testing.T) {
	p := NewParser()
	blocks := p.Parse([]byte("# Title\n## Sub\n###### Deep\n"))

	want := []Block{
		{Kind: KindHeading, Level: 1, Text: "Title"},
		{Kind: KindHeading, Level: 2, Text: "Sub"},
		{Kind: KindHeading, Level: 6, Text: "Deep"},
	}
	if !reflect.DeepEqual(blocks, want) {
		t.Errorf("Parse() = %+v, want %+v", blocks, want)
	}
}

func TestParseParagraphSpans(t *testing.T) {
	p := NewParser()
	blocks := p.Parse([]byte("This **bold** and *ital* and `code` and [link](https://example.com)."))

	if len(blocks) != 1 {
		t.Fatalf("Parse() returned %d blocks, want 1", len(blocks))
	}
	b := blocks[0]
	if b.Kind != KindParagraph {
		t.Errorf("Kind = %q, want %q", b.Kind, KindParagraph)
	}
	if b.Text != "This bold and ital and code and link." {
		t.Errorf("Text = %q", b.Text)
	}
	want := []Span{
		{Start: 5, End: 9, Style: SpanBold},
		{Start: 14, End: 18, Style: SpanItalic},
		{Start: 23, End: 27, Style: SpanCode},
		{Start: 32, End: 36, Style: SpanLink, URL: "https://example.com"},
	}
	if !reflect.DeepEqual(b.Spans, want) {
		t.Errorf("Spans = %+v, want %+v", b.Spans, want)
	}
}

func TestParseSoftBreakJoinsLines(t *testing.T) {
	p := NewParser()
	blocks := p.Parse([]byte("line one\nline two\n"))

	if len(blocks) != 1 {
		t.Fatalf("Parse() returned %d blocks, want 1", len(blocks))
	}
	if blocks[0].Text != "line one line two" {
		t.Errorf("Text = %q, want %q", blocks[0].Text, "line one line two")
	}
}

func TestParseStatusTag(t *testing.T) {
	tests := []struct {
		name   string
		source string
		kind   Kind
		status string
	}{
		{"simple label", "Status: PENDING", KindStatusTag, "PENDING"},
		{"label with underscore", "Status: IN_PROGRESS", KindStatusTag, "IN_PROGRESS"},
		{"lowercase is prose", "Status: done today", KindParagraph, ""},
		{"styled label is prose", "Status: **DONE**", KindParagraph, ""},
		{"no space after colon", "Status:DONE", KindParagraph, ""},
	}
	p := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := p.Parse([]byte(tt.source))
			if len(blocks) != 1 {
				t.Fatalf("Parse() returned %d blocks, want 1", len(blocks))
			}
			if blocks[0].Kind != tt.kind {
				t.Errorf("Kind = %q, want %q", blocks[0].Kind, tt.kind)
			}
			if blocks[0].Status != tt.status {
				t.Errorf("Status = %q, want %q", blocks[0].Status, tt.status)
			}
		})
	}
}

func TestParseNestedList(t *testing.T) {
	src := "- top\n  - nested\n- back\n"
	p := NewParser()
	blocks := p.Parse([]byte(src))

	want := []Block{
		{Kind: KindBulletItem, Level: 0, Text: "top"},
		{Kind: KindBulletItem, Level: 1, Text: "nested"},
		{Kind: KindBulletItem, Level: 0, Text: "back"},
	}
	if !reflect.DeepEqual(blocks, want) {
		t.Errorf("Parse() = %+v, want %+v", blocks, want)
	}
}

func TestParseOrderedList(t *testing.T) {
	p := NewParser()
	blocks := p.Parse([]byte("1. one\n2. two\n"))

	want := []Block{
		{Kind: KindNumberedItem, Level: 0, Text: "one"},
		{Kind: KindNumberedItem, Level: 0, Text: "two"},
	}
	if !reflect.DeepEqual(blocks, want) {
		t.Errorf("Parse() = %+v, want %+v", blocks, want)
	}
}

func TestParseTaskList(t *testing.T) {
	p := NewParser()
	blocks := p.Parse([]byte("- [x] done\n- [ ] open\n"))

	want := []Block{
		{Kind: KindCheckItem, Level: 0, Text: "done", Checked: true},
		{Kind: KindCheckItem, Level: 0, Text: "open", Checked: false},
	}
	if !reflect.DeepEqual(blocks, want) {
		t.Errorf("Parse() = %+v, want %+v", blocks, want)
	}
}

func TestParseCodeBlock(t *testing.T) {
	src := "```\nfoo\n\nbar\n```\n"
	p := NewParser()
	blocks := p.Parse([]byte(src))

	want := []Block{
		{Kind: KindCodeLine, Text: "foo"},
		{Kind: KindCodeLine, Text: ""},
		{Kind: KindCodeLine, Text: "bar"},
	}
	if !reflect.DeepEqual(blocks, want) {
		t.Errorf("Parse() = %+v, want %+v", blocks, want)
	}
}

func TestParseTable(t *testing.T) {
	src := "| Name | Value |\n|------|-------|\n| a    | 1     |\n| b    | 2     |\n"
	p := NewParser()
	blocks := p.Parse([]byte(src))

	if len(blocks) != 1 {
		t.Fatalf("Parse() returned %d blocks, want 1", len(blocks))
	}
	want := [][]string{
		{"Name", "Value"},
		{"a", "1"},
		{"b", "2"},
	}
	if blocks[0].Kind != KindTable {
		t.Errorf("Kind = %q, want %q", blocks[0].Kind, KindTable)
	}
	if !reflect.DeepEqual(blocks[0].Rows, want) {
		t.Errorf("Rows = %v, want %v", blocks[0].Rows, want)
	}
}

func TestParseQuote(t *testing.T) {
	p := NewParser()
	blocks := p.Parse([]byte("> quoted *text*\n"))

	if len(blocks) != 1 {
		t.Fatalf("Parse() returned %d blocks, want 1", len(blocks))
	}
	b := blocks[0]
	if b.Kind != KindQuote {
		t.Errorf("Kind = %q, want %q", b.Kind, KindQuote)
	}
	if b.Text != "quoted text" {
		t.Errorf("Text = %q, want %q", b.Text, "quoted text")
	}
	wantSpans := []Span{{Start: 7, End: 11, Style: SpanItalic}}
	if !reflect.DeepEqual(b.Spans, wantSpans) {
		t.Errorf("Spans = %+v, want %+v", b.Spans, wantSpans)
	}
}

func TestParseHorizontalRule(t *testing.T) {
	p := NewParser()
	blocks := p.Parse([]byte("before\n\n---\n\nafter\n"))

	want := []Kind{KindParagraph, KindBlank, KindHorizontalRule, KindBlank, KindParagraph}
	if len(blocks) != len(want) {
		t.Fatalf("Parse() returned %d blocks, want %d", len(blocks), len(want))
	}
	for i, k := range want {
		if blocks[i].Kind != k {
			t.Errorf("blocks[%d].Kind = %q, want %q", i, blocks[i].Kind, k)
		}
	}
}

func TestParseImageParagraph(t *testing.T) {
	p := NewParser()
	blocks := p.Parse([]byte("![alt text](https://example.com/x.png)\n"))

	want := []Block{{Kind: KindImage, URL: "https://example.com/x.png", Alt: "alt text"}}
	if !reflect.DeepEqual(blocks, want) {
		t.Errorf("Parse() = %+v, want %+v", blocks, want)
	}
}

func TestParseInlineImageDegradesToAlt(t *testing.T) {
	p := NewParser()
	blocks := p.Parse([]byte("see ![pic](https://example.com/p.png) here\n"))

	if len(blocks) != 1 {
		t.Fatalf("Parse() returned %d blocks, want 1", len(blocks))
	}
	if blocks[0].Kind != KindParagraph {
		t.Errorf("Kind = %q, want %q", blocks[0].Kind, KindParagraph)
	}
	if blocks[0].Text != "see pic here" {
		t.Errorf("Text = %q, want %q", blocks[0].Text, "see pic here")
	}
}

func TestParseBlankSeparators(t *testing.T) {
	p := NewParser()
	blocks := p.Parse([]byte("a\n\nb\n\n\n\nc\n"))

	want := []Kind{KindParagraph, KindBlank, KindParagraph, KindBlank, KindParagraph}
	if len(blocks) != len(want) {
		t.Fatalf("Parse() returned %d blocks, want %d", len(blocks), len(want))
	}
	for i, k := range want {
		if blocks[i].Kind != k {
			t.Errorf("blocks[%d].Kind = %q, want %q", i, blocks[i].Kind, k)
		}
	}
}

func TestParseAutoLink(t *testing.T) {
	p := NewParser()
	blocks := p.Parse([]byte("Visit https://example.com now\n"))

	if len(blocks) != 1 {
		t.Fatalf("Parse() returned %d blocks, want 1", len(blocks))
	}
	b := blocks[0]
	if b.Text != "Visit https://example.com now" {
		t.Errorf("Text = %q", b.Text)
	}
	wantSpans := []Span{{Start: 6, End: 25, Style: SpanLink, URL: "https://example.com"}}
	if !reflect.DeepEqual(b.Spans, wantSpans) {
		t.Errorf("Spans = %+v, want %+v", b.Spans, wantSpans)
	}
}

func TestParseMixedDocument(t *testing.T) {
	src := `# Report

Some intro text.

- first
- second

` + "```" + `
x = 1
` + "```" + `

Status: DONE
`
	p := NewParser()
	blocks := p.Parse([]byte(src))

	want := []Kind{
		KindHeading,
		KindBlank, KindParagraph,
		KindBlank, KindBulletItem, KindBulletItem,
		KindBlank, KindCodeLine,
		KindBlank, KindStatusTag,
	}
	if len(blocks) != len(want) {
		t.Fatalf("Parse() returned %d blocks, want %d: %+v", len(blocks), len(want), blocks)
	}
	for i, k := range want {
		if blocks[i].Kind != k {
			t.Errorf("blocks[%d].Kind = %q, want %q", i, blocks[i].Kind, k)
		}
	}
}
