package download

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "normal filename", input: "document.pdf", expected: "document.pdf"},
		{name: "filename with spaces", input: "my document.pdf", expected: "my document.pdf"},
		{name: "path traversal", input: "../../../etc/passwd", expected: "passwd"},
		{name: "windows traversal", input: "..\\..\\Windows\\System32\\config", expected: "config"},
		{name: "absolute path", input: "/etc/passwd", expected: "passwd"},
		{name: "hidden file kept", input: ".bashrc", expected: ".bashrc"},
		{name: "dot only", input: ".", expected: "download"},
		{name: "double dot only", input: "..", expected: "download"},
		{name: "empty string", input: "", expected: "download"},
		{name: "control characters", input: "rep\x00ort\n.pdf", expected: "report.pdf"},
		{name: "surrounding whitespace", input: "  notes.md  ", expected: "notes.md"},
		{name: "trailing slash", input: "dir/", expected: "dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestSanitizeFilename_TruncatesKeepingExtension(t *testing.T) {
	long := strings.Repeat("é", 200) + ".pdf"

	got := SanitizeFilename(long)

	assert.LessOrEqual(t, len(got), maxFilenameBytes)
	assert.Equal(t, ".pdf", filepath.Ext(got))
	assert.True(t, strings.HasPrefix(got, "é"))
}

func TestSanitizeFilenameWithExtension(t *testing.T) {
	assert.Equal(t, "download.pdf", SanitizeFilenameWithExtension("download", "application/pdf"))
	assert.Equal(t, "report.pdf", SanitizeFilenameWithExtension("report.pdf", "image/png"))
	assert.Equal(t, "report.pdf", SanitizeFilenameWithExtension("../report", "application/pdf"))
	assert.Equal(t, "report", SanitizeFilenameWithExtension("report", ""))
}

func TestExtractFilenameFromURI(t *testing.T) {
	tests := map[string]string{
		"https://example.com/files/document.pdf":           "document.pdf",
		"https://example.com/files/document.pdf?token=abc": "document.pdf",
		"https://example.com/":                             "download",
		"":                                                 "download",
		"/path/to/file.txt":                                "file.txt",
	}
	for in, want := range tests {
		assert.Equal(t, want, ExtractFilenameFromURI(in), "input %q", in)
	}
}

func TestMakeUniqueFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		existing []string
		expected string
	}{
		{name: "no conflict", filename: "document.pdf", expected: "document.pdf"},
		{name: "one conflict", filename: "document.pdf", existing: []string{"document.pdf"}, expected: "document_(1).pdf"},
		{
			name:     "two conflicts",
			filename: "document.pdf",
			existing: []string{"document.pdf", "document_(1).pdf"},
			expected: "document_(2).pdf",
		},
		{name: "no extension", filename: "download", existing: []string{"download"}, expected: "download_(1)"},
		{name: "dotted name", filename: ".config.bak", existing: []string{".config.bak"}, expected: ".config_(1).bak"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := "/downloads"
			taken := make(map[string]bool)
			for _, e := range tt.existing {
				taken[filepath.Join(dir, e)] = true
			}

			got := MakeUniqueFilename(dir, tt.filename, func(p string) bool { return taken[p] })
			assert.Equal(t, tt.expected, got)
		})
	}
}
