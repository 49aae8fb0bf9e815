package markdown

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// statusRe matches a status macro line such as "Status: IN_PROGRESS".
// Labels are uppercase by convention, which keeps ordinary prose like
// "Status: unclear" from being promoted to a tag.
var statusRe = regexp.MustCompile(`^Status:\s+([A-Z][A-Z0-9_]*)$`)

// Parser converts markdown source into a flat sequence of Blocks.
// It is stateless and safe for concurrent use.
type Parser struct {
	md goldmark.Markdown
}

// NewParser creates a Parser with GitHub-flavored table, task list and
// autolink support enabled.
func NewParser() *Parser {
	return &Parser{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.Table,
				extension.TaskList,
				extension.Linkify,
			),
		),
	}
}

// Parse converts markdown source into Blocks. Nested structures are
// flattened: list items carry their nesting depth, fenced code becomes one
// block per line and blockquote paragraphs become quote blocks. A single
// blank block separates top-level elements that had blank lines between
// them in the source.
func (p *Parser) Parse(source []byte) []Block {
	root := p.md.Parser().Parse(text.NewReader(source))

	var blocks []Block
	for node := root.FirstChild(); node != nil; node = node.NextSibling() {
		if len(blocks) > 0 && node.HasBlankPreviousLines() {
			blocks = append(blocks, Block{Kind: KindBlank})
		}
		blocks = append(blocks, blockNodes(node, source)...)
	}
	return blocks
}

// blockNodes converts one top-level AST node into zero or more Blocks.
func blockNodes(node ast.Node, source []byte) []Block {
	switch n := node.(type) {
	case *ast.Heading:
		txt, spans := flattenInlines(n, source)
		return []Block{{Kind: KindHeading, Level: n.Level, Text: txt, Spans: spans}}
	case *ast.Paragraph:
		return []Block{paragraphBlock(n, source)}
	case *ast.List:
		return listBlocks(n, source, 0)
	case *ast.FencedCodeBlock:
		return codeBlocks(n, source)
	case *ast.CodeBlock:
		return codeBlocks(n, source)
	case *ast.ThematicBreak:
		return []Block{{Kind: KindHorizontalRule}}
	case *ast.Blockquote:
		return quoteBlocks(n, source)
	case *extast.Table:
		return []Block{tableBlock(n, source)}
	case *ast.HTMLBlock:
		// Raw HTML has no Docs representation.
		return nil
	default:
		txt, spans := flattenInlines(n, source)
		if txt == "" {
			return nil
		}
		return []Block{{Kind: KindParagraph, Text: txt, Spans: spans}}
	}
}

// paragraphBlock handles the two paragraph special cases: a paragraph
// consisting solely of an image becomes an image block, and a plain
// "Status: LABEL" line becomes a status tag.
func paragraphBlock(n *ast.Paragraph, source []byte) Block {
	if n.ChildCount() == 1 {
		if img, ok := n.FirstChild().(*ast.Image); ok {
			alt, _ := flattenInlines(img, source)
			return Block{Kind: KindImage, URL: string(img.Destination), Alt: alt}
		}
	}
	txt, spans := flattenInlines(n, source)
	if len(spans) == 0 {
		if m := statusRe.FindStringSubmatch(txt); m != nil {
			return Block{Kind: KindStatusTag, Status: m[1]}
		}
	}
	return Block{Kind: KindParagraph, Text: txt, Spans: spans}
}

// listBlocks flattens a list and its sublists into item blocks that carry
// their nesting depth. Task list items become check items regardless of
// the surrounding list kind.
func listBlocks(list *ast.List, source []byte, depth int) []Block {
	kind := KindBulletItem
	if list.IsOrdered() {
		kind = KindNumberedItem
	}

	var blocks []Block
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			switch c := child.(type) {
			case *ast.List:
				blocks = append(blocks, listBlocks(c, source, depth+1)...)
			case *ast.TextBlock, *ast.Paragraph:
				blocks = append(blocks, itemBlock(c, source, kind, depth))
			case *ast.FencedCodeBlock, *ast.CodeBlock:
				blocks = append(blocks, codeBlocks(c, source)...)
			default:
				blocks = append(blocks, blockNodes(c, source)...)
			}
		}
	}
	return blocks
}

func itemBlock(n ast.Node, source []byte, kind Kind, depth int) Block {
	b := Block{Kind: kind, Level: depth}
	if cb, ok := n.FirstChild().(*extast.TaskCheckBox); ok {
		b.Kind = KindCheckItem
		b.Checked = cb.IsChecked
	}
	b.Text, b.Spans = flattenInlines(n, source)
	return b
}

// codeBlocks emits one block per source line of a code region, without
// trailing line terminators.
func codeBlocks(n ast.Node, source []byte) []Block {
	var blocks []Block
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := strings.TrimRight(string(seg.Value(source)), "\r\n")
		blocks = append(blocks, Block{Kind: KindCodeLine, Text: line})
	}
	return blocks
}

// quoteBlocks turns each paragraph of a blockquote into a quote block.
// Nested quotes flatten into the same level; lists and code inside a
// quote keep their own kinds.
func quoteBlocks(q *ast.Blockquote, source []byte) []Block {
	var blocks []Block
	for c := q.FirstChild(); c != nil; c = c.NextSibling() {
		switch n := c.(type) {
		case *ast.Paragraph, *ast.TextBlock:
			txt, spans := flattenInlines(n, source)
			blocks = append(blocks, Block{Kind: KindQuote, Text: txt, Spans: spans})
		case *ast.Blockquote:
			blocks = append(blocks, quoteBlocks(n, source)...)
		default:
			blocks = append(blocks, blockNodes(n, source)...)
		}
	}
	return blocks
}

// tableBlock collects header and body rows into a single table block.
// Cell text is flattened to plain text, inline styles inside cells are
// not carried into the document.
func tableBlock(t *extast.Table, source []byte) Block {
	var rows [][]string
	for r := t.FirstChild(); r != nil; r = r.NextSibling() {
		var cells []string
		for c := r.FirstChild(); c != nil; c = c.NextSibling() {
			txt, _ := flattenInlines(c, source)
			cells = append(cells, txt)
		}
		rows = append(rows, cells)
	}
	return Block{Kind: KindTable, Rows: rows}
}

// inlineFlattener walks inline AST nodes accumulating plain text and the
// style spans covering it. Offsets are tracked in UTF-16 code units.
type inlineFlattener struct {
	source      []byte
	b           strings.Builder
	n           int64
	spans       []Span
	skipLeading bool
}

func flattenInlines(n ast.Node, source []byte) (string, []Span) {
	f := &inlineFlattener{source: source}
	f.walk(n)
	return f.b.String(), f.spans
}

func (f *inlineFlattener) append(s string) {
	if f.skipLeading {
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			return
		}
		f.skipLeading = false
	}
	f.b.WriteString(s)
	f.n += UTF16Len(s)
}

// close finishes a span opened at s.Start. Degenerate spans are dropped.
func (f *inlineFlattener) close(s Span) {
	s.End = f.n
	if s.End > s.Start {
		f.spans = append(f.spans, s)
	}
}

func (f *inlineFlattener) walk(n ast.Node) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			f.append(string(v.Segment.Value(f.source)))
			if v.SoftLineBreak() || v.HardLineBreak() {
				f.append(" ")
			}
		case *ast.String:
			f.append(string(v.Value))
		case *ast.CodeSpan:
			start := f.n
			f.walk(v)
			f.close(Span{Start: start, Style: SpanCode})
		case *ast.Emphasis:
			start := f.n
			f.walk(v)
			style := SpanItalic
			if v.Level >= 2 {
				style = SpanBold
			}
			f.close(Span{Start: start, Style: style})
		case *ast.Link:
			start := f.n
			f.walk(v)
			f.close(Span{Start: start, Style: SpanLink, URL: string(v.Destination)})
		case *ast.AutoLink:
			start := f.n
			url := string(v.URL(f.source))
			if v.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:") {
				url = "mailto:" + url
			}
			f.append(string(v.Label(f.source)))
			f.close(Span{Start: start, Style: SpanLink, URL: url})
		case *ast.Image:
			// Inline images degrade to their alt text.
			f.walk(v)
		case *extast.TaskCheckBox:
			// The checkbox itself renders as a text prefix later; drop
			// the marker and the space that follows it.
			f.skipLeading = true
		case *ast.RawHTML:
			// dropped
		default:
			f.walk(v)
		}
	}
}
