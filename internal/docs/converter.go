package docs

import (
	"fmt"
	"strings"

	docs "google.golang.org/api/docs/v1"
)

// DocumentToMarkdown converts a document to markdown. It is the rough
// inverse of the compiler: named heading styles map back to #-prefixes,
// bulleted paragraphs to list items, bold/italic/fixed-width runs to
// inline markers and tables to pipe syntax. Inline images resolve to
// their source URI when the document carries it.
func DocumentToMarkdown(doc *docs.Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("document is nil")
	}

	var md strings.Builder
	if doc.Title != "" {
		fmt.Fprintf(&md, "# %s\n\n", doc.Title)
	}
	for _, element := range bodyContent(doc) {
		writeElementMarkdown(&md, element, doc)
	}
	return md.String(), nil
}

// DocumentToPlainText extracts the document's text without formatting.
func DocumentToPlainText(doc *docs.Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("document is nil")
	}

	var text strings.Builder
	if doc.Title != "" {
		text.WriteString(doc.Title)
		text.WriteString("\n\n")
	}
	for _, element := range bodyContent(doc) {
		writeElementText(&text, element)
	}
	return text.String(), nil
}

// ExtractImages returns the inline images of a document in order of
// appearance, with their source URI when available.
func ExtractImages(doc *docs.Document) []ImageRef {
	if doc == nil {
		return nil
	}
	var refs []ImageRef
	for _, element := range bodyContent(doc) {
		if element.Paragraph == nil {
			continue
		}
		for _, pe := range element.Paragraph.Elements {
			if pe.InlineObjectElement == nil {
				continue
			}
			id := pe.InlineObjectElement.InlineObjectId
			refs = append(refs, ImageRef{ObjectID: id, URI: inlineObjectURI(doc, id)})
		}
	}
	return refs
}

// bodyContent flattens a document's structural elements. Documents
// created after the tabs rollout may carry their body inside tabs; older
// ones use Body directly.
func bodyContent(doc *docs.Document) []*docs.StructuralElement {
	if len(doc.Tabs) == 0 {
		if doc.Body == nil {
			return nil
		}
		return doc.Body.Content
	}

	var content []*docs.StructuralElement
	var walk func(tabs []*docs.Tab)
	walk = func(tabs []*docs.Tab) {
		for _, tab := range tabs {
			if tab.DocumentTab != nil && tab.DocumentTab.Body != nil {
				content = append(content, tab.DocumentTab.Body.Content...)
			}
			walk(tab.ChildTabs)
		}
	}
	walk(doc.Tabs)
	return content
}

func inlineObjectURI(doc *docs.Document, objectID string) string {
	obj, ok := doc.InlineObjects[objectID]
	if !ok {
		return ""
	}
	props := obj.InlineObjectProperties
	if props == nil || props.EmbeddedObject == nil || props.EmbeddedObject.ImageProperties == nil {
		return ""
	}
	if uri := props.EmbeddedObject.ImageProperties.SourceUri; uri != "" {
		return uri
	}
	return props.EmbeddedObject.ImageProperties.ContentUri
}

func writeElementMarkdown(md *strings.Builder, element *docs.StructuralElement, doc *docs.Document) {
	switch {
	case element.Paragraph != nil:
		writeParagraphMarkdown(md, element.Paragraph, doc)
	case element.Table != nil:
		writeTableMarkdown(md, element.Table)
	}
}

func writeParagraphMarkdown(md *strings.Builder, para *docs.Paragraph, doc *docs.Document) {
	if para == nil || len(para.Elements) == 0 {
		return
	}

	heading := headingLevel(para.ParagraphStyle)
	if heading > 0 {
		md.WriteString(strings.Repeat("#", heading))
		md.WriteString(" ")
	} else if para.Bullet != nil {
		// List type information lives behind ListId lookups; render
		// everything as bullets.
		md.WriteString("- ")
	}

	for _, pe := range para.Elements {
		switch {
		case pe.TextRun != nil:
			writeTextRunMarkdown(md, pe.TextRun)
		case pe.InlineObjectElement != nil:
			fmt.Fprintf(md, "![](%s)", inlineObjectURI(doc, pe.InlineObjectElement.InlineObjectId))
		}
	}

	md.WriteString("\n")
	if heading > 0 || para.Bullet == nil {
		md.WriteString("\n")
	}
}

func headingLevel(style *docs.ParagraphStyle) int {
	if style == nil {
		return 0
	}
	var level int
	if n, err := fmt.Sscanf(style.NamedStyleType, "HEADING_%d", &level); n == 1 && err == nil {
		return level
	}
	return 0
}

func writeTextRunMarkdown(md *strings.Builder, run *docs.TextRun) {
	content := strings.TrimSuffix(run.Content, "\n")
	if content == "" {
		return
	}

	style := run.TextStyle
	if style == nil {
		md.WriteString(content)
		return
	}

	switch {
	case style.Link != nil && style.Link.Url != "":
		fmt.Fprintf(md, "[%s](%s)", strings.TrimSpace(content), style.Link.Url)
	case style.WeightedFontFamily != nil && strings.Contains(style.WeightedFontFamily.FontFamily, "Courier"):
		fmt.Fprintf(md, "`%s`", strings.TrimSpace(content))
	case style.Bold && style.Italic:
		fmt.Fprintf(md, "***%s***", content)
	case style.Bold:
		fmt.Fprintf(md, "**%s**", content)
	case style.Italic:
		fmt.Fprintf(md, "*%s*", content)
	default:
		md.WriteString(content)
	}
}

func writeTableMarkdown(md *strings.Builder, table *docs.Table) {
	if table == nil || len(table.TableRows) == 0 {
		return
	}

	for rowIndex, row := range table.TableRows {
		md.WriteString("|")
		for _, cell := range row.TableCells {
			md.WriteString(" ")
			md.WriteString(cellText(cell))
			md.WriteString(" |")
		}
		md.WriteString("\n")

		if rowIndex == 0 {
			md.WriteString("|")
			for range row.TableCells {
				md.WriteString(" --- |")
			}
			md.WriteString("\n")
		}
	}
	md.WriteString("\n")
}

func cellText(cell *docs.TableCell) string {
	var text strings.Builder
	for _, element := range cell.Content {
		if element.Paragraph == nil {
			continue
		}
		for _, pe := range element.Paragraph.Elements {
			if pe.TextRun != nil {
				text.WriteString(strings.TrimSpace(pe.TextRun.Content))
			}
		}
	}
	return strings.ReplaceAll(text.String(), "\n", " ")
}

func writeElementText(text *strings.Builder, element *docs.StructuralElement) {
	switch {
	case element.Paragraph != nil:
		for _, pe := range element.Paragraph.Elements {
			if pe.TextRun != nil {
				text.WriteString(pe.TextRun.Content)
			}
		}
	case element.Table != nil:
		for _, row := range element.Table.TableRows {
			for _, cell := range row.TableCells {
				text.WriteString(cellText(cell))
				text.WriteString("\t")
			}
			text.WriteString("\n")
		}
	}
}
