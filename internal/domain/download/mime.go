package download

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// OctetStream is the generic binary MIME type.
const OctetStream = "application/octet-stream"

// fallbackExtensions is the fixed table used when a generated filename
// needs an extension. Anything else gets "bin".
var fallbackExtensions = map[string]string{
	"image/jpeg":      "jpg",
	"image/png":       "png",
	"application/pdf": "pdf",
	"text/plain":      "txt",
}

// FallbackExtension returns the extension, without dot, for a generated
// filename of the given declared MIME type.
func FallbackExtension(mimeType string) string {
	if ext, ok := fallbackExtensions[MediaType(mimeType)]; ok {
		return ext
	}
	return "bin"
}

// GeneratedFilename builds download_<unix millis>.<ext>.
func GeneratedFilename(now time.Time, mimeType string) string {
	return fmt.Sprintf("download_%d.%s", now.UnixMilli(), FallbackExtension(mimeType))
}

// ResolveFilename returns the sanitized supplied name, or a generated one
// when the supplied name is empty or the literal "null".
func ResolveFilename(supplied, mimeType string, now time.Time) string {
	trimmed := strings.TrimSpace(supplied)
	if trimmed == "" || trimmed == "null" {
		return GeneratedFilename(now, mimeType)
	}
	return SanitizeFilename(trimmed)
}

// ResolveMIMEType looks the filename's extension up in the system MIME
// registry. A registry hit overrides the declared type; otherwise the
// declared type is kept.
func ResolveMIMEType(filename, declared string) string {
	if registered := TypeByFilename(filename); registered != "" {
		return registered
	}
	return MediaType(declared)
}

// TypeByFilename returns the registry MIME type for filename's extension,
// without parameters, or "".
func TypeByFilename(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || ext == "." {
		return ""
	}
	return MediaType(mime.TypeByExtension(ext))
}

// MediaType strips parameters and normalizes case. Unparseable input
// yields "".
func MediaType(mimeType string) string {
	if strings.TrimSpace(mimeType) == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return ""
	}
	return mediaType
}

// Sniff detects the MIME type of payload from its content.
func Sniff(payload []byte) string {
	return MediaType(mimetype.Detect(payload).String())
}

// preferredExtensions maps MIME types whose registry extension list is
// platform-dependent to the canonical extension.
var preferredExtensions = map[string]string{
	"text/html":             ".html",
	"text/plain":            ".txt",
	"text/xml":              ".xml",
	"text/csv":              ".csv",
	"application/xhtml+xml": ".xhtml",
	"image/jpeg":            ".jpg",
	"image/svg+xml":         ".svg",
	"audio/mpeg":            ".mp3",
	"video/mp4":             ".mp4",
	OctetStream:             ".bin",
}

// GetExtensionFromMimeType returns a file extension, with dot, for a MIME
// type. Unknown or empty types yield "".
func GetExtensionFromMimeType(mimeType string) string {
	mediaType := MediaType(mimeType)
	if mediaType == "" {
		return ""
	}

	if ext, ok := preferredExtensions[mediaType]; ok {
		return ext
	}

	exts, err := mime.ExtensionsByType(mediaType)
	if err == nil && len(exts) > 0 {
		return exts[0]
	}

	if m := mimetype.Lookup(mediaType); m != nil {
		return m.Extension()
	}
	return ""
}
