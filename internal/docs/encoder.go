package docs

import (
	"strings"

	docs "google.golang.org/api/docs/v1"
)

// ruleBorderColor is the gray used for horizontal rule bottom borders.
var ruleBorderColor = Color{Red: 0.6, Green: 0.6, Blue: 0.6}

// EncodeRequests lowers operations into Docs API batch update requests.
// Style operations whose ranges collapsed to nothing are dropped, the
// API rejects empty ranges.
func EncodeRequests(ops []Operation) []*docs.Request {
	reqs := make([]*docs.Request, 0, len(ops))
	for _, op := range ops {
		if r := encodeRequest(op); r != nil {
			reqs = append(reqs, r)
		}
	}
	return reqs
}

func encodeRequest(op Operation) *docs.Request {
	switch op.Kind {
	case OpInsertText:
		if op.Text == "" {
			return nil
		}
		return &docs.Request{InsertText: &docs.InsertTextRequest{
			Location: &docs.Location{Index: op.At},
			Text:     op.Text,
		}}
	case OpParagraphStyle:
		if op.Range.Empty() {
			return nil
		}
		return encodeParagraphStyle(op)
	case OpTextStyle:
		if op.Range.Empty() {
			return nil
		}
		return encodeTextStyle(op)
	case OpCreateBullets:
		if op.Range.Empty() {
			return nil
		}
		return &docs.Request{CreateParagraphBullets: &docs.CreateParagraphBulletsRequest{
			Range:        apiRange(op.Range),
			BulletPreset: string(op.List),
		}}
	case OpInsertTable:
		return &docs.Request{InsertTable: &docs.InsertTableRequest{
			Location: &docs.Location{Index: op.At},
			Rows:     op.Rows,
			Columns:  op.Cols,
		}}
	case OpInsertCellText:
		if op.Text == "" {
			return nil
		}
		return &docs.Request{InsertText: &docs.InsertTextRequest{
			Location: &docs.Location{Index: CellIndex(op.TableStart, op.Cols, op.Row, op.Col)},
			Text:     op.Text,
		}}
	case OpInsertImage:
		req := &docs.InsertInlineImageRequest{
			Location: &docs.Location{Index: op.At},
			Uri:      op.URI,
		}
		if op.WidthPt > 0 && op.HeightPt > 0 {
			req.ObjectSize = &docs.Size{
				Width:  points(op.WidthPt),
				Height: points(op.HeightPt),
			}
		}
		return &docs.Request{InsertInlineImage: req}
	}
	return nil
}

func encodeParagraphStyle(op Operation) *docs.Request {
	style := &docs.ParagraphStyle{}
	var fields []string

	if op.Named != "" {
		style.NamedStyleType = string(op.Named)
		fields = append(fields, "namedStyleType")
	}
	if op.IndentStartPt > 0 {
		style.IndentStart = points(op.IndentStartPt)
		fields = append(fields, "indentStart")
	}
	if op.IndentFirstLinePt > 0 {
		style.IndentFirstLine = points(op.IndentFirstLinePt)
		fields = append(fields, "indentFirstLine")
	}
	if op.Alignment != "" {
		style.Alignment = op.Alignment
		fields = append(fields, "alignment")
	}
	if op.BorderBottom {
		style.BorderBottom = &docs.ParagraphBorder{
			Color:     apiColor(ruleBorderColor),
			Width:     points(1),
			Padding:   points(1),
			DashStyle: "SOLID",
		}
		fields = append(fields, "borderBottom")
	}
	if len(fields) == 0 {
		return nil
	}

	return &docs.Request{UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
		Range:          apiRange(op.Range),
		ParagraphStyle: style,
		Fields:         strings.Join(fields, ","),
	}}
}

func encodeTextStyle(op Operation) *docs.Request {
	style := &docs.TextStyle{}
	var fields []string

	if op.Bold {
		style.Bold = true
		fields = append(fields, "bold")
	}
	if op.Italic {
		style.Italic = true
		fields = append(fields, "italic")
	}
	if op.FontFamily != "" {
		style.WeightedFontFamily = &docs.WeightedFontFamily{FontFamily: op.FontFamily}
		fields = append(fields, "weightedFontFamily")
	}
	if op.FontSizePt > 0 {
		style.FontSize = points(op.FontSizePt)
		fields = append(fields, "fontSize")
	}
	if op.LinkURL != "" {
		style.Link = &docs.Link{Url: op.LinkURL}
		fields = append(fields, "link")
	}
	if op.Foreground != nil {
		style.ForegroundColor = apiColor(*op.Foreground)
		fields = append(fields, "foregroundColor")
	}
	if op.Background != nil {
		style.BackgroundColor = apiColor(*op.Background)
		fields = append(fields, "backgroundColor")
	}
	if len(fields) == 0 {
		return nil
	}

	return &docs.Request{UpdateTextStyle: &docs.UpdateTextStyleRequest{
		Range:     apiRange(op.Range),
		TextStyle: style,
		Fields:    strings.Join(fields, ","),
	}}
}

func apiRange(r Range) *docs.Range {
	return &docs.Range{StartIndex: r.Start, EndIndex: r.End}
}

func points(pt float64) *docs.Dimension {
	return &docs.Dimension{Magnitude: pt, Unit: "PT"}
}

func apiColor(c Color) *docs.OptionalColor {
	return &docs.OptionalColor{Color: &docs.Color{RgbColor: &docs.RgbColor{
		Red:   c.Red,
		Green: c.Green,
		Blue:  c.Blue,
	}}}
}
