// Package markdown parses markdown source into a flat sequence of Blocks,
// the intermediate representation the docs package compiles into Google
// Docs batch update requests.
//
// The parser is built on goldmark with GitHub-flavored tables, task lists
// and autolinks enabled. Structure that Google Docs cannot represent
// directly is flattened at parse time: fenced code becomes one block per
// line, blockquote paragraphs become quote blocks and nested list items
// carry a numeric depth instead of a tree.
//
// All text offsets in the package are measured in UTF-16 code units, the
// unit the Docs API uses for document indexes.
//
// Usage:
//
//	parser := markdown.NewParser()
//	meta, blocks, err := parser.ParseDocument(source)
//	if err != nil {
//	    return err
//	}
package markdown
