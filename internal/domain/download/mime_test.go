package download

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFallbackExtension(t *testing.T) {
	tests := map[string]string{
		"image/jpeg":                "jpg",
		"image/png":                 "png",
		"application/pdf":           "pdf",
		"text/plain":                "txt",
		"text/plain; charset=utf-8": "txt",
		"IMAGE/PNG":                 "png",
		"application/zip":           "bin",
		"":                          "bin",
		"garbage":                   "bin",
	}
	for in, want := range tests {
		assert.Equal(t, want, FallbackExtension(in), "input %q", in)
	}
}

func TestResolveFilename(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	tests := []struct {
		name     string
		supplied string
		mimeType string
		expected string
	}{
		{name: "empty", supplied: "", mimeType: "image/png", expected: "download_1700000000123.png"},
		{name: "literal null", supplied: "null", mimeType: "application/pdf", expected: "download_1700000000123.pdf"},
		{name: "whitespace", supplied: "   ", mimeType: "image/jpeg", expected: "download_1700000000123.jpg"},
		{name: "unknown type", supplied: "", mimeType: "application/x-thing", expected: "download_1700000000123.bin"},
		{name: "supplied wins", supplied: "report.csv", mimeType: "image/png", expected: "report.csv"},
		{name: "supplied sanitized", supplied: "../../x.txt", mimeType: "", expected: "x.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveFilename(tt.supplied, tt.mimeType, now))
		})
	}
}

func TestResolveMIMEType(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		declared string
		expected string
	}{
		{name: "registry overrides declared", filename: "photo.png", declared: "text/plain", expected: "image/png"},
		{name: "case-insensitive extension", filename: "SCAN.PDF", declared: "application/octet-stream", expected: "application/pdf"},
		{name: "unknown extension keeps declared", filename: "data.zzqx", declared: "application/x-custom", expected: "application/x-custom"},
		{name: "no extension keeps declared", filename: "README", declared: "text/markdown", expected: "text/markdown"},
		{name: "declared parameters stripped", filename: "README", declared: "text/html; charset=utf-8", expected: "text/html"},
		{name: "nothing known", filename: "README", declared: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveMIMEType(tt.filename, tt.declared))
		})
	}
}

func TestSniff(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	assert.Equal(t, "image/png", Sniff(png))
	assert.Equal(t, "application/pdf", Sniff([]byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n")))
	assert.Equal(t, "text/plain", Sniff([]byte("hello, plain world")))
}

func TestGetExtensionFromMimeType(t *testing.T) {
	tests := map[string]string{
		"":                                "",
		"application/unknown":             "",
		"application/pdf":                 ".pdf",
		"application/pdf; charset=binary": ".pdf",
		"text/html; charset=utf-8":        ".html",
		"image/jpeg":                      ".jpg",
		"not-a-valid-mime":                "",
	}
	for in, want := range tests {
		assert.Equal(t, want, GetExtensionFromMimeType(in), "input %q", in)
	}
}
