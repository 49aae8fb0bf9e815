package docs

import (
	"fmt"

	"github.com/docpush/gdocs/internal/markdown"
)

// Code regions render in a fixed-width font at a slightly reduced size.
const (
	codeFontFamily = "Courier New"
	codeFontSizePt = 9
)

// List items and quotes indent in steps of half an inch and a quarter
// inch respectively.
const (
	indentBasePt  = 36
	indentStepPt  = 18
	quoteIndentPt = 36
)

// Default inline image dimensions.
const (
	imageWidthPt  = 400
	imageHeightPt = 250
)

// Compiler translates markdown blocks into an ordered operation list.
//
// Every insert lands at the current cursor, which starts at the first
// editable body index and advances by the UTF-16 length of each inserted
// string (plus element sizes for tables and images). Styles for a block
// are emitted immediately after its insert, so a batch boundary can fall
// between any two operations without invalidating later indexes.
type Compiler struct {
	strictStatus bool
}

// CompilerOption configures a Compiler.
type CompilerOption func(*Compiler)

// WithStrictStatus makes unknown status labels a compile error instead of
// falling back to the neutral highlight color.
func WithStrictStatus() CompilerOption {
	return func(c *Compiler) { c.strictStatus = true }
}

// NewCompiler creates a Compiler.
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile translates blocks into operations for a document whose body is
// empty apart from the final newline. It returns the operations and the
// cursor position after the last insert. On error no operations are
// returned.
func (c *Compiler) Compile(blocks []markdown.Block) ([]Operation, int64, error) {
	return c.CompileAt(BodyStart, blocks)
}

// CompileAt is Compile with an explicit starting cursor, for appending
// after known existing content.
func (c *Compiler) CompileAt(cursor int64, blocks []markdown.Block) ([]Operation, int64, error) {
	s := &compileState{c: c, cur: cursor}
	for i, b := range blocks {
		if err := s.block(i, b); err != nil {
			return nil, 0, err
		}
	}
	s.flushRuns()
	return s.ops, s.cur, nil
}

// runKind tracks an open run of adjacent blocks that share one trailing
// operation: a bullet preset for list runs, a font style for code runs.
type runKind int

const (
	runNone runKind = iota
	runBullet
	runNumbered
	runCode
)

type compileState struct {
	c   *Compiler
	ops []Operation
	cur int64

	run      runKind
	runStart int64

	// indents queues per-item indent styles of the open list run. They
	// are emitted after the run's bullet operation so operation offsets
	// stay non-decreasing.
	indents []Operation
}

func (s *compileState) block(i int, b markdown.Block) error {
	switch b.Kind {
	case markdown.KindHeading:
		s.flushRuns()
		return s.heading(i, b)
	case markdown.KindParagraph:
		s.flushRuns()
		return s.paragraph(i, b)
	case markdown.KindBulletItem:
		return s.listItem(i, b, runBullet)
	case markdown.KindNumberedItem:
		return s.listItem(i, b, runNumbered)
	case markdown.KindCheckItem:
		s.flushRuns()
		return s.checkItem(i, b)
	case markdown.KindCodeLine:
		return s.codeLine(i, b)
	case markdown.KindTable:
		s.flushRuns()
		return s.table(i, b)
	case markdown.KindHorizontalRule:
		s.flushRuns()
		s.horizontalRule()
		return nil
	case markdown.KindBlank:
		s.flushRuns()
		s.insert("\n")
		return nil
	case markdown.KindQuote:
		s.flushRuns()
		return s.quote(i, b)
	case markdown.KindImage:
		s.flushRuns()
		return s.image(i, b)
	case markdown.KindStatusTag:
		s.flushRuns()
		return s.statusTag(i, b)
	default:
		return &ValidationError{Block: i, Reason: fmt.Sprintf("unknown block kind %q", b.Kind)}
	}
}

// insert emits an insert-text at the cursor and advances it, returning
// the range the text occupies.
func (s *compileState) insert(text string) Range {
	start := s.cur
	s.ops = append(s.ops, Operation{Kind: OpInsertText, At: start, Text: text})
	s.cur += markdown.UTF16Len(text)
	return Range{Start: start, End: s.cur}
}

// flushRuns closes any open list or code run by emitting the operation
// covering the whole run, then any queued indent styles.
func (s *compileState) flushRuns() {
	switch s.run {
	case runBullet, runNumbered:
		kind := ListBullet
		if s.run == runNumbered {
			kind = ListNumbered
		}
		s.ops = append(s.ops, Operation{
			Kind:  OpCreateBullets,
			Range: Range{Start: s.runStart, End: s.cur},
			List:  kind,
		})
		s.ops = append(s.ops, s.indents...)
		s.indents = nil
	case runCode:
		// The final newline stays unstyled so text typed after the
		// region does not inherit the code font.
		r := Range{Start: s.runStart, End: s.cur - 1}
		if !r.Empty() {
			s.ops = append(s.ops, Operation{
				Kind:       OpTextStyle,
				Range:      r,
				FontFamily: codeFontFamily,
				FontSizePt: codeFontSizePt,
			})
		}
	}
	s.run = runNone
}

// spanOps validates and emits text styles for inline spans. base is the
// absolute index of the block text's first code unit.
func (s *compileState) spanOps(i int, b markdown.Block, base int64) error {
	textLen := markdown.UTF16Len(b.Text)
	for _, sp := range b.Spans {
		if sp.Start < 0 || sp.End < sp.Start || sp.End > textLen {
			return &ValidationError{
				Block:  i,
				Reason: fmt.Sprintf("span [%d,%d) outside text of length %d", sp.Start, sp.End, textLen),
			}
		}
		if sp.End == sp.Start {
			continue
		}
		op := Operation{Kind: OpTextStyle, Range: Range{Start: base + sp.Start, End: base + sp.End}}
		switch sp.Style {
		case markdown.SpanBold:
			op.Bold = true
		case markdown.SpanItalic:
			op.Italic = true
		case markdown.SpanCode:
			op.FontFamily = codeFontFamily
		case markdown.SpanLink:
			if sp.URL == "" {
				return &ValidationError{Block: i, Reason: "link span has no URL"}
			}
			op.LinkURL = sp.URL
		default:
			return &ValidationError{Block: i, Reason: fmt.Sprintf("unknown span style %q", sp.Style)}
		}
		s.ops = append(s.ops, op)
	}
	return nil
}

func (s *compileState) heading(i int, b markdown.Block) error {
	style, err := HeadingStyle(b.Level)
	if err != nil {
		return &ValidationError{Block: i, Reason: err.Error()}
	}
	r := s.insert(b.Text + "\n")
	s.ops = append(s.ops, Operation{Kind: OpParagraphStyle, Range: r, Named: style})
	return s.spanOps(i, b, r.Start)
}

func (s *compileState) paragraph(i int, b markdown.Block) error {
	r := s.insert(b.Text + "\n")
	return s.spanOps(i, b, r.Start)
}

func (s *compileState) listItem(i int, b markdown.Block, kind runKind) error {
	if s.run != kind {
		s.flushRuns()
		s.run = kind
		s.runStart = s.cur
	}
	r := s.insert(b.Text + "\n")
	if b.Level > 0 {
		startPt, firstPt := listIndents(b.Level)
		s.indents = append(s.indents, Operation{
			Kind:              OpParagraphStyle,
			Range:             r,
			IndentStartPt:     startPt,
			IndentFirstLinePt: firstPt,
		})
	}
	return s.spanOps(i, b, r.Start)
}

func (s *compileState) checkItem(i int, b markdown.Block) error {
	prefix := "[ ] "
	if b.Checked {
		prefix = "[x] "
	}
	r := s.insert(prefix + b.Text + "\n")
	startPt, firstPt := listIndents(b.Level)
	s.ops = append(s.ops, Operation{
		Kind:              OpParagraphStyle,
		Range:             r,
		IndentStartPt:     startPt,
		IndentFirstLinePt: firstPt,
	})
	return s.spanOps(i, b, r.Start+markdown.UTF16Len(prefix))
}

// listIndents returns the paragraph indentation of a nested item. The
// first line hangs one step to the left so markers align.
func listIndents(depth int) (startPt, firstLinePt float64) {
	startPt = indentBasePt + indentStepPt*float64(depth)
	return startPt, startPt - indentStepPt
}

func (s *compileState) codeLine(i int, b markdown.Block) error {
	if s.run != runCode {
		s.flushRuns()
		s.run = runCode
		s.runStart = s.cur
	}
	r := s.insert(b.Text + "\n")
	return s.spanOps(i, b, r.Start)
}

func (s *compileState) table(i int, b markdown.Block) error {
	rows := int64(len(b.Rows))
	if rows == 0 {
		return &ValidationError{Block: i, Reason: "table has no rows"}
	}
	cols := int64(len(b.Rows[0]))
	if cols == 0 {
		return &ValidationError{Block: i, Reason: "table has no columns"}
	}
	for r, row := range b.Rows {
		if int64(len(row)) != cols {
			return &ValidationError{
				Block:  i,
				Reason: fmt.Sprintf("table row %d has %d cells, want %d", r, len(row), cols),
			}
		}
	}

	s.ops = append(s.ops, Operation{Kind: OpInsertTable, At: s.cur, Rows: rows, Cols: cols})
	// The API inserts a newline before the table element.
	tableStart := s.cur + 1

	// Cells are filled from the bottom-right corner backwards so every
	// insertion index can be computed against the empty table layout:
	// each insert happens at a lower index than everything inserted
	// before it.
	var textUnits int64
	for r := rows - 1; r >= 0; r-- {
		for c := cols - 1; c >= 0; c-- {
			text := b.Rows[r][c]
			if text == "" {
				continue
			}
			textUnits += markdown.UTF16Len(text)
			s.ops = append(s.ops, Operation{
				Kind:       OpInsertCellText,
				TableStart: tableStart,
				Rows:       rows,
				Cols:       cols,
				Row:        int64(r),
				Col:        int64(c),
				Text:       text,
			})
		}
	}
	s.cur = tableStart + tableSize(rows, cols) + textUnits
	return nil
}

// horizontalRule renders as an empty paragraph carrying a bottom border.
func (s *compileState) horizontalRule() {
	r := s.insert("\n")
	s.ops = append(s.ops, Operation{Kind: OpParagraphStyle, Range: r, BorderBottom: true})
}

func (s *compileState) quote(i int, b markdown.Block) error {
	r := s.insert(b.Text + "\n")
	s.ops = append(s.ops, Operation{Kind: OpParagraphStyle, Range: r, IndentStartPt: quoteIndentPt})
	if text := (Range{Start: r.Start, End: r.End - 1}); !text.Empty() {
		s.ops = append(s.ops, Operation{Kind: OpTextStyle, Range: text, Italic: true})
	}
	return s.spanOps(i, b, r.Start)
}

func (s *compileState) image(i int, b markdown.Block) error {
	if b.URL == "" {
		return &ValidationError{Block: i, Reason: "image block has no URL"}
	}
	// The image occupies one index; the newline after it starts a fresh
	// paragraph for whatever follows.
	s.ops = append(s.ops, Operation{
		Kind:     OpInsertImage,
		At:       s.cur,
		URI:      b.URL,
		WidthPt:  imageWidthPt,
		HeightPt: imageHeightPt,
	})
	s.cur++
	s.insert("\n")
	return nil
}

func (s *compileState) statusTag(i int, b markdown.Block) error {
	color, known := StatusColor(b.Status)
	if !known && s.c.strictStatus {
		return &ValidationError{Block: i, Reason: fmt.Sprintf("unknown status label %q", b.Status)}
	}
	r := s.insert("Status: " + b.Status + "\n")
	bg := color
	s.ops = append(s.ops, Operation{
		Kind:       OpTextStyle,
		Range:      Range{Start: r.Start, End: r.End - 1},
		Bold:       true,
		Background: &bg,
	})
	return nil
}
