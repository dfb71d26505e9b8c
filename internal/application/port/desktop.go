package port

import "context"

// FileNotice describes a stored file announced to the desktop.
type FileNotice struct {
	Title    string
	Body     string
	Path     string
	MIMEType string
}

// DesktopNotifier posts a system notification whose default action opens
// the referenced file with an application registered for its MIME type.
type DesktopNotifier interface {
	NotifyFile(ctx context.Context, notice FileNotice) error
}

// FileOpener opens a file with the desktop's handler for mimeType.
type FileOpener interface {
	Open(ctx context.Context, path, mimeType string) error
}
