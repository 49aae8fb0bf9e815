package docs

import (
	"strings"

	"github.com/docpush/gdocs/internal/markdown"
)

// Builder assembles a document programmatically, as an alternative to
// parsing markdown source. Calls append blocks; Operations compiles them
// in one pass, so adjacent list items and code lines merge exactly as
// they do for parsed markdown.
type Builder struct {
	compiler *Compiler
	blocks   []markdown.Block
}

// NewBuilder creates a Builder with the given compile options.
func NewBuilder(opts ...CompilerOption) *Builder {
	return &Builder{compiler: NewCompiler(opts...)}
}

// Heading appends a heading at the given level (1-6).
func (b *Builder) Heading(level int, text string) *Builder {
	b.blocks = append(b.blocks, markdown.Block{Kind: markdown.KindHeading, Level: level, Text: text})
	return b
}

// Paragraph appends a text paragraph with optional inline spans.
func (b *Builder) Paragraph(text string, spans ...markdown.Span) *Builder {
	b.blocks = append(b.blocks, markdown.Block{Kind: markdown.KindParagraph, Text: text, Spans: spans})
	return b
}

// Bullet appends a top-level bullet list item.
func (b *Builder) Bullet(text string) *Builder {
	b.blocks = append(b.blocks, markdown.Block{Kind: markdown.KindBulletItem, Text: text})
	return b
}

// Numbered appends a top-level numbered list item.
func (b *Builder) Numbered(text string) *Builder {
	b.blocks = append(b.blocks, markdown.Block{Kind: markdown.KindNumberedItem, Text: text})
	return b
}

// CheckItem appends a task list item.
func (b *Builder) CheckItem(text string, checked bool) *Builder {
	b.blocks = append(b.blocks, markdown.Block{Kind: markdown.KindCheckItem, Text: text, Checked: checked})
	return b
}

// Code appends one code line per argument; adjacent lines render as a
// single fixed-width region.
func (b *Builder) Code(lines ...string) *Builder {
	for _, line := range lines {
		b.blocks = append(b.blocks, markdown.Block{Kind: markdown.KindCodeLine, Text: line})
	}
	return b
}

// Table appends a table, header row first.
func (b *Builder) Table(rows [][]string) *Builder {
	b.blocks = append(b.blocks, markdown.Block{Kind: markdown.KindTable, Rows: rows})
	return b
}

// Quote appends an indented, italicized quote paragraph.
func (b *Builder) Quote(text string) *Builder {
	b.blocks = append(b.blocks, markdown.Block{Kind: markdown.KindQuote, Text: text})
	return b
}

// Status appends a highlighted status tag. The label is uppercased to
// match the well-known label set.
func (b *Builder) Status(label string) *Builder {
	b.blocks = append(b.blocks, markdown.Block{Kind: markdown.KindStatusTag, Status: strings.ToUpper(label)})
	return b
}

// Image appends a block image.
func (b *Builder) Image(url string) *Builder {
	b.blocks = append(b.blocks, markdown.Block{Kind: markdown.KindImage, URL: url})
	return b
}

// HorizontalRule appends a horizontal rule.
func (b *Builder) HorizontalRule() *Builder {
	b.blocks = append(b.blocks, markdown.Block{Kind: markdown.KindHorizontalRule})
	return b
}

// Blank appends an empty separator line.
func (b *Builder) Blank() *Builder {
	b.blocks = append(b.blocks, markdown.Block{Kind: markdown.KindBlank})
	return b
}

// Blocks returns the blocks appended so far.
func (b *Builder) Blocks() []markdown.Block {
	return b.blocks
}

// Operations compiles the appended blocks, returning the operations and
// the cursor position after the last insert.
func (b *Builder) Operations() ([]Operation, int64, error) {
	return b.compiler.Compile(b.blocks)
}
