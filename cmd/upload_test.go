package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTitleFromFilename(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{
			name:     "plain name",
			path:     "report.md",
			expected: "report",
		},
		{
			name:     "underscores become spaces",
			path:     "project_plan.md",
			expected: "project plan",
		},
		{
			name:     "leading ordering number stripped",
			path:     "03_project_plan.md",
			expected: "project plan",
		},
		{
			name:     "ordering number with literal space",
			path:     "03 project plan.md",
			expected: "project plan",
		},
		{
			name:     "directory ignored",
			path:     "docs/notes/intro.md",
			expected: "intro",
		},
		{
			name:     "digits without separator kept",
			path:     "2024report.md",
			expected: "2024report",
		},
		{
			name:     "digits only",
			path:     "0001.md",
			expected: "0001",
		},
		{
			name:     "no extension",
			path:     "README",
			expected: "README",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := titleFromFilename(tt.path); got != tt.expected {
				t.Errorf("titleFromFilename(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestUploaderLoad(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
		return path
	}

	t.Run("title derived from filename", func(t *testing.T) {
		path := write("01_weekly_report.md", "# Hello\n")
		u := &uploader{}

		title, body, err := u.load(path)
		if err != nil {
			t.Fatalf("load() error = %v", err)
		}
		if title != "weekly report" {
			t.Errorf("title = %q, want %q", title, "weekly report")
		}
		if string(body) != "# Hello\n" {
			t.Errorf("body = %q, want source unchanged", body)
		}
	})

	t.Run("frontmatter title wins over filename", func(t *testing.T) {
		path := write("02_notes.md", "---\ntitle: Launch Plan\n---\n\n# Notes\n")
		u := &uploader{}

		title, body, err := u.load(path)
		if err != nil {
			t.Fatalf("load() error = %v", err)
		}
		if title != "Launch Plan" {
			t.Errorf("title = %q, want %q", title, "Launch Plan")
		}
		if strings.Contains(string(body), "title:") {
			t.Errorf("body still contains frontmatter: %q", body)
		}
	})

	t.Run("explicit title wins over frontmatter", func(t *testing.T) {
		path := write("03_notes.md", "---\ntitle: Launch Plan\n---\n\n# Notes\n")
		u := &uploader{title: "Final"}

		title, _, err := u.load(path)
		if err != nil {
			t.Fatalf("load() error = %v", err)
		}
		if title != "Final" {
			t.Errorf("title = %q, want %q", title, "Final")
		}
	})

	t.Run("prefix applies to resolved title", func(t *testing.T) {
		path := write("plan.md", "body\n")
		u := &uploader{prefix: "Q3"}

		title, _, err := u.load(path)
		if err != nil {
			t.Fatalf("load() error = %v", err)
		}
		if title != "Q3 - plan" {
			t.Errorf("title = %q, want %q", title, "Q3 - plan")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		u := &uploader{}
		if _, _, err := u.load(filepath.Join(dir, "absent.md")); err == nil {
			t.Error("load() error = nil, want read error")
		}
	})

	t.Run("malformed frontmatter", func(t *testing.T) {
		path := write("bad.md", "---\ntitle: [unclosed\n---\n")
		u := &uploader{}
		if _, _, err := u.load(path); err == nil {
			t.Error("load() error = nil, want parse error")
		}
	})
}

func TestTreeIcon(t *testing.T) {
	tests := []struct {
		mimeType string
		expected string
	}{
		{mimeType: "application/vnd.google-apps.folder", expected: "d"},
		{mimeType: "application/vnd.google-apps.document", expected: "D"},
		{mimeType: "video/mp4", expected: "V"},
		{mimeType: "image/png", expected: "I"},
		{mimeType: "application/pdf", expected: "?"},
	}

	for _, tt := range tests {
		if got := treeIcon(tt.mimeType); got != tt.expected {
			t.Errorf("treeIcon(%q) = %q, want %q", tt.mimeType, got, tt.expected)
		}
	}
}
