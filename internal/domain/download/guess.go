package download

import (
	"mime"
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

const guessedDefaultStem = "downloadfile"

var dispositionFilenameRe = regexp.MustCompile(`(?i)filename\s*=\s*"?([^";]+)"?`)

// GuessFilename picks a filename for a direct download. A URL path segment
// carrying an extension wins, then the Content-Disposition filename, then
// any URL segment, then a generic stem. A missing extension is filled in
// from the MIME type.
func GuessFilename(rawURL, contentDisposition, mimeType string) string {
	fromURL := filenameFromURL(rawURL)
	fromHeader := FilenameFromContentDisposition(contentDisposition)

	var name string
	switch {
	case fromURL != "" && filepath.Ext(fromURL) != "":
		name = fromURL
	case fromHeader != "":
		name = fromHeader
	case fromURL != "":
		name = fromURL
	default:
		name = guessedDefaultStem
	}

	name = SanitizeFilename(name)
	if filepath.Ext(name) == "" {
		ext := GetExtensionFromMimeType(mimeType)
		if ext == "" {
			ext = ".bin"
		}
		name += ext
	}
	return name
}

// FilenameFromContentDisposition extracts the filename parameter from a
// Content-Disposition header value. RFC 2231 encoded names are decoded.
func FilenameFromContentDisposition(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}

	if _, params, err := mime.ParseMediaType(header); err == nil {
		if name := strings.TrimSpace(params["filename"]); name != "" {
			return name
		}
	}

	// Servers send plenty of headers ParseMediaType rejects.
	if m := dispositionFilenameRe.FindStringSubmatch(header); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func filenameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	p := parsed.Path
	if p == "" || strings.HasSuffix(p, "/") {
		return ""
	}
	base := path.Base(p)
	if base == "." || base == "/" {
		return ""
	}
	return base
}
