package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// Meta holds the YAML frontmatter fields recognized at the top of a
// markdown document.
type Meta struct {
	Title string `yaml:"title"`
}

// SplitFrontmatter separates an optional YAML frontmatter header from the
// document body. Sources without frontmatter are returned unchanged with
// an empty Meta.
func SplitFrontmatter(source []byte) (Meta, []byte, error) {
	var meta Meta
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return Meta{}, nil, fmt.Errorf("parsing frontmatter: %w", err)
	}
	return meta, body, nil
}

// ParseDocument splits frontmatter from source and parses the remaining
// body into blocks.
func (p *Parser) ParseDocument(source []byte) (Meta, []Block, error) {
	meta, body, err := SplitFrontmatter(source)
	if err != nil {
		return Meta{}, nil, err
	}
	return meta, p.Parse(body), nil
}
