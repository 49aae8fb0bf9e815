package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFrontmatter(t *testing.T) {
	src := "---\ntitle: Weekly Report\n---\n\n# Body\n"

	meta, body, err := SplitFrontmatter([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, "Weekly Report", meta.Title)
	assert.Contains(t, string(body), "# Body")
	assert.NotContains(t, string(body), "title:")
}

func TestSplitFrontmatterAbsent(t *testing.T) {
	src := "# Just a doc\n"

	meta, body, err := SplitFrontmatter([]byte(src))
	require.NoError(t, err)

	assert.Empty(t, meta.Title)
	assert.Equal(t, src, string(body))
}

func TestSplitFrontmatterUnknownKeys(t *testing.T) {
	src := "---\ntitle: Notes\nauthor: someone\n---\nbody\n"

	meta, body, err := SplitFrontmatter([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, "Notes", meta.Title)
	assert.Contains(t, string(body), "body")
	assert.NotContains(t, string(body), "author:")
}

func TestSplitFrontmatterMalformed(t *testing.T) {
	_, _, err := SplitFrontmatter([]byte("---\ntitle: [unclosed\n---\n"))
	assert.Error(t, err)
}

func TestParseDocument(t *testing.T) {
	src := "---\ntitle: Notes\n---\n\nHello world.\n"

	meta, blocks, err := NewParser().ParseDocument([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, "Notes", meta.Title)
	require.Len(t, blocks, 1)
	assert.Equal(t, KindParagraph, blocks[0].Kind)
	assert.Equal(t, "Hello world.", blocks[0].Text)
}

func TestParseDocumentMalformedFrontmatter(t *testing.T) {
	_, _, err := NewParser().ParseDocument([]byte("---\ntitle: [unclosed\n---\nbody\n"))
	assert.Error(t, err)
}
