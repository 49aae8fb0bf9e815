package docs

import "fmt"

// BodyStart is the first editable index of a document body. Index zero
// addresses the body's implicit section break and cannot receive text.
const BodyStart int64 = 1

// Range is a half-open interval of document indexes, measured in UTF-16
// code units like all Docs API positions.
type Range struct {
	Start int64
	End   int64
}

// Empty reports whether the range covers no content.
func (r Range) Empty() bool { return r.End <= r.Start }

// Color is an RGB color with components in [0, 1].
type Color struct {
	Red   float64
	Green float64
	Blue  float64
}

// NamedStyle selects a built-in Docs paragraph style.
type NamedStyle string

const (
	StyleNormalText NamedStyle = "NORMAL_TEXT"
	StyleHeading1   NamedStyle = "HEADING_1"
	StyleHeading2   NamedStyle = "HEADING_2"
	StyleHeading3   NamedStyle = "HEADING_3"
	StyleHeading4   NamedStyle = "HEADING_4"
	StyleHeading5   NamedStyle = "HEADING_5"
	StyleHeading6   NamedStyle = "HEADING_6"
)

var headingStyles = [...]NamedStyle{
	StyleHeading1, StyleHeading2, StyleHeading3,
	StyleHeading4, StyleHeading5, StyleHeading6,
}

// HeadingStyle maps a heading level (1-6) to its named style.
func HeadingStyle(level int) (NamedStyle, error) {
	if level < 1 || level > len(headingStyles) {
		return "", fmt.Errorf("heading level %d out of range 1-%d", level, len(headingStyles))
	}
	return headingStyles[level-1], nil
}

// ListKind selects the bullet preset applied to a run of list items.
type ListKind string

const (
	ListBullet   ListKind = "BULLET_DISC_CIRCLE_SQUARE"
	ListNumbered ListKind = "NUMBERED_DECIMAL_NESTED"
)

// statusColors maps well-known status labels to their highlight colors.
var statusColors = map[string]Color{
	"PENDING":     {Red: 0.85, Green: 0.55, Blue: 0},
	"IN_PROGRESS": {Red: 0.2, Green: 0.45, Blue: 0.85},
	"BLOCKED":     {Red: 0.8, Green: 0.15, Blue: 0.15},
	"DONE":        {Red: 0, Green: 0.6, Blue: 0},
}

// statusDefault highlights labels outside the well-known set.
var statusDefault = Color{Red: 0.55, Green: 0.55, Blue: 0.55}

// StatusColor returns the highlight color for a status label and whether
// the label is one of the well-known set.
func StatusColor(label string) (Color, bool) {
	if c, ok := statusColors[label]; ok {
		return c, true
	}
	return statusDefault, false
}

// OpKind discriminates Operation variants.
type OpKind string

const (
	OpInsertText     OpKind = "insert_text"
	OpParagraphStyle OpKind = "paragraph_style"
	OpTextStyle      OpKind = "text_style"
	OpCreateBullets  OpKind = "create_bullets"
	OpInsertTable    OpKind = "insert_table"
	OpInsertCellText OpKind = "insert_cell_text"
	OpInsertImage    OpKind = "insert_image"
)

// Operation is one document mutation, pinned to absolute indexes at
// compile time. Only the field group matching Kind is populated.
type Operation struct {
	Kind OpKind

	// At is the insertion index for insert operations.
	At int64

	// Text is the content of insert_text and insert_cell_text.
	Text string

	// Range is the target of style and bullet operations.
	Range Range

	// Paragraph style fields.
	Named             NamedStyle
	IndentStartPt     float64
	IndentFirstLinePt float64
	Alignment         string
	BorderBottom      bool

	// Text style fields. Nil colors leave the corresponding property
	// untouched.
	Bold       bool
	Italic     bool
	FontFamily string
	FontSizePt float64
	LinkURL    string
	Foreground *Color
	Background *Color

	// List holds the bullet preset of a create_bullets operation.
	List ListKind

	// Table geometry. Rows and Cols describe the whole table; Row and
	// Col address one cell of an insert_cell_text.
	Rows int64
	Cols int64
	Row  int64
	Col  int64

	// TableStart is the index of the table element targeted by an
	// insert_cell_text, one past the newline the table insertion adds.
	TableStart int64

	// Image fields.
	URI      string
	WidthPt  float64
	HeightPt float64
}

// CellIndex returns the insertion index of the first paragraph of cell
// (row, col) in a table of the given width whose element starts at
// tableStart, assuming no cell content has been inserted at or before
// that position. Each empty row occupies 1+2*cols indexes: the row
// element plus a cell element and an empty paragraph per cell.
func CellIndex(tableStart, cols, row, col int64) int64 {
	return tableStart + row*(2*cols+1) + 2*col + 3
}

// tableSize returns the number of indexes an empty rows-by-cols table
// element occupies, excluding the newline inserted before it.
func tableSize(rows, cols int64) int64 {
	return 1 + rows*(2*cols+1)
}
