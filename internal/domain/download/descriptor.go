package download

import "time"

// Descriptor accumulates what is known about one download as it moves
// through the pipeline. Payload is set only on the blob route.
type Descriptor struct {
	SourceURL          string
	DeclaredMIMEType   string
	ContentDisposition string
	CapturedFilename   string
	FinalFilename      string
	FinalMIMEType      string
	Payload            []byte
	Route              Route
}

// NewBlobDescriptor resolves the final name and type of a blob payload.
// An absent declared type is sniffed from the payload before the name is
// generated so the generated extension matches the content.
func NewBlobDescriptor(sourceURL string, payload []byte, declaredMIME, capturedName string, now time.Time) Descriptor {
	declared := MediaType(declaredMIME)
	if declared == "" {
		declared = Sniff(payload)
	}

	name := ResolveFilename(capturedName, declared, now)
	return Descriptor{
		SourceURL:        sourceURL,
		DeclaredMIMEType: declaredMIME,
		CapturedFilename: capturedName,
		FinalFilename:    name,
		FinalMIMEType:    ResolveMIMEType(name, declared),
		Payload:          payload,
		Route:            RouteBlob,
	}
}

// NewDirectDescriptor resolves the guessed name and type of a URL download.
func NewDirectDescriptor(sourceURL, contentDisposition, declaredMIME string) Descriptor {
	name := GuessFilename(sourceURL, contentDisposition, declaredMIME)
	return Descriptor{
		SourceURL:          sourceURL,
		DeclaredMIMEType:   declaredMIME,
		ContentDisposition: contentDisposition,
		FinalFilename:      name,
		FinalMIMEType:      ResolveMIMEType(name, declaredMIME),
		Route:              RouteDirect,
	}
}
