package markdown

import "unicode/utf16"

// Kind identifies the structural role of a Block.
type Kind string

const (
	KindHeading        Kind = "heading"
	KindParagraph      Kind = "paragraph"
	KindBulletItem     Kind = "bullet_item"
	KindNumberedItem   Kind = "numbered_item"
	KindCheckItem      Kind = "check_item"
	KindCodeLine       Kind = "code_line"
	KindTable          Kind = "table"
	KindHorizontalRule Kind = "horizontal_rule"
	KindBlank          Kind = "blank"
	KindQuote          Kind = "quote"
	KindImage          Kind = "image"
	KindStatusTag      Kind = "status_tag"
)

// SpanStyle identifies an inline formatting style within a block's text.
type SpanStyle string

const (
	SpanBold   SpanStyle = "bold"
	SpanItalic SpanStyle = "italic"
	SpanCode   SpanStyle = "code"
	SpanLink   SpanStyle = "link"
)

// Span marks an inline style over a half-open range of a block's text.
// Start and End are measured in UTF-16 code units relative to the start
// of the text, matching how the Docs API addresses character ranges.
type Span struct {
	Start int64
	End   int64
	Style SpanStyle
	URL   string // set for SpanLink
}

// Block is one structural element of a parsed markdown document.
// Only the fields relevant to its Kind are populated.
type Block struct {
	Kind Kind

	// Text is the flattened inline content without a trailing newline.
	// Unused for tables, images, horizontal rules and blanks.
	Text string

	// Spans describe inline formatting within Text.
	Spans []Span

	// Level is the heading level (1-6) for headings, or the zero-based
	// nesting depth for list items.
	Level int

	// Checked reports the state of a task list checkbox.
	Checked bool

	// Rows holds table content, outer slice per row, header first.
	Rows [][]string

	// URL and Alt describe an image block.
	URL string
	Alt string

	// Status is the uppercase label of a status tag block.
	Status string
}

// UTF16Len returns the length of s in UTF-16 code units. The Docs API
// counts document indexes in UTF-16, so runes outside the Basic
// Multilingual Plane occupy two units.
func UTF16Len(s string) int64 {
	var n int64
	for _, r := range s {
		if utf16.RuneLen(r) == 2 {
			n += 2
		} else {
			n++
		}
	}
	return n
}
