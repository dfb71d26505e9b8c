// Package download holds the pure rules of the download pipeline: routing
// by scheme, filename and MIME resolution, and destination naming.
package download

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	// DefaultFilename is used when no valid filename can be determined.
	DefaultFilename = "download"

	maxFilenameBytes = 255
)

// SanitizeFilename reduces name to a safe base name: directory components,
// control characters and surrounding whitespace are removed.
func SanitizeFilename(name string) string {
	// filepath.Base only knows the OS separator; fold Windows paths first.
	name = strings.ReplaceAll(name, "\\", "/")
	clean := filepath.Base(name)

	clean = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, clean)
	clean = strings.TrimSpace(clean)

	if clean == "." || clean == ".." || clean == "" || clean == "/" {
		return DefaultFilename
	}

	return truncateFilename(clean)
}

// SanitizeFilenameWithExtension sanitizes a filename and adds an extension
// inferred from the MIME type if the filename has no extension.
func SanitizeFilenameWithExtension(name, mimeType string) string {
	clean := SanitizeFilename(name)
	if filepath.Ext(clean) == "" {
		if ext := GetExtensionFromMimeType(mimeType); ext != "" {
			return clean + ext
		}
	}
	return clean
}

// truncateFilename keeps the extension while cutting the stem to fit
// common filesystem limits.
func truncateFilename(name string) string {
	if len(name) <= maxFilenameBytes {
		return name
	}
	ext := filepath.Ext(name)
	if len(ext) > 32 {
		ext = ""
	}
	stem := strings.TrimSuffix(name, ext)
	limit := maxFilenameBytes - len(ext)
	for len(stem) > limit {
		_, size := utf8.DecodeLastRuneInString(stem)
		stem = stem[:len(stem)-size]
	}
	return stem + ext
}

// ExtractFilenameFromURI returns the last path segment of uri, or
// DefaultFilename when there is none.
func ExtractFilenameFromURI(uri string) string {
	if uri == "" {
		return DefaultFilename
	}

	parsed, err := url.Parse(uri)
	if err != nil {
		return extractFromPath(uri)
	}
	return extractFromPath(parsed.Path)
}

func extractFromPath(path string) string {
	base := filepath.Base(path)
	if base == "." || base == "" || base == "/" {
		return DefaultFilename
	}
	return base
}

// MakeUniqueFilename appends _(N) to filename until exists reports false
// for the joined path.
func MakeUniqueFilename(dir, filename string, exists func(path string) bool) string {
	if !exists(filepath.Join(dir, filename)) {
		return filename
	}

	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	for i := 1; i < 1000; i++ {
		candidate := fmt.Sprintf("%s_(%d)%s", base, i, ext)
		if !exists(filepath.Join(dir, candidate)) {
			return candidate
		}
	}

	return fmt.Sprintf("%s_%d%s", base, time.Now().UnixNano(), ext)
}
