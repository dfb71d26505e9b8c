package usecase

import (
	"context"
	"fmt"
	"mime"

	"github.com/bnema/webshell/internal/application/port"
	"github.com/bnema/webshell/internal/domain/download"
	"github.com/bnema/webshell/internal/domain/script"
	"github.com/bnema/webshell/internal/logging"
)

// DownloadRequest is a download the render host could not complete itself.
type DownloadRequest struct {
	URL                string
	MIMEType           string
	ContentDisposition string
	// SuggestedFilename is the render host's own guess, used when no
	// Content-Disposition header is known.
	SuggestedFilename string
	UserAgent         string
	ContentLength     int64
}

// InterceptDownloadOutput reports the route taken.
type InterceptDownloadOutput struct {
	Descriptor download.Descriptor
	// TransferID is set on the direct route.
	TransferID port.TransferID
}

// InterceptDownloadUseCase routes a download by scheme: blob URLs are read
// back through the page, network URLs go to the transfer manager, and
// everything else is refused with a visible notice.
type InterceptDownloadUseCase struct {
	scripts port.ScriptRunner
	queue   port.TransferQueue
	session port.SessionStore
	toaster port.Toaster
	main    port.MainThread
}

// NewInterceptDownloadUseCase creates a new InterceptDownloadUseCase.
func NewInterceptDownloadUseCase(
	scripts port.ScriptRunner,
	queue port.TransferQueue,
	session port.SessionStore,
	toaster port.Toaster,
	main port.MainThread,
) *InterceptDownloadUseCase {
	return &InterceptDownloadUseCase{
		scripts: scripts,
		queue:   queue,
		session: session,
		toaster: toaster,
		main:    main,
	}
}

// Execute classifies req and starts the matching route. It returns
// download.ErrUnsupportedScheme for refused URLs.
func (u *InterceptDownloadUseCase) Execute(ctx context.Context, req DownloadRequest) (*InterceptDownloadOutput, error) {
	ctx = logging.WithURL(ctx, req.URL)
	log := logging.FromContext(ctx)

	route := download.Classify(req.URL)
	log.Debug().Str("route", route.String()).Str("mime", req.MIMEType).Msg("download intercepted")

	switch route {
	case download.RouteBlob:
		return u.fetchBlob(ctx, req), nil
	case download.RouteDirect:
		return u.enqueue(ctx, req)
	default:
		return u.refuse(ctx, req)
	}
}

func (u *InterceptDownloadUseCase) fetchBlob(ctx context.Context, req DownloadRequest) *InterceptDownloadOutput {
	fallback := download.FilenameFromContentDisposition(req.ContentDisposition)
	if fallback == "" {
		fallback = req.SuggestedFilename
	}

	u.scripts.Evaluate(ctx, script.BlobFetch(script.BlobFetchParams{
		URL:              req.URL,
		MIMEType:         req.MIMEType,
		FallbackFilename: fallback,
	}))

	return &InterceptDownloadOutput{Descriptor: download.Descriptor{
		SourceURL:          req.URL,
		DeclaredMIMEType:   req.MIMEType,
		ContentDisposition: req.ContentDisposition,
		Route:              download.RouteBlob,
	}}
}

func (u *InterceptDownloadUseCase) enqueue(ctx context.Context, req DownloadRequest) (*InterceptDownloadOutput, error) {
	log := logging.FromContext(ctx)

	desc := download.NewDirectDescriptor(req.URL, dispositionFor(req), req.MIMEType)

	cookie, err := u.session.CookieHeader(ctx, req.URL)
	if err != nil {
		log.Warn().Err(err).Msg("cookies unavailable, transferring without them")
		cookie = ""
	}
	userAgent := req.UserAgent
	if userAgent == "" {
		userAgent = u.session.UserAgent()
	}

	id, err := u.queue.Enqueue(ctx, port.TransferRequest{
		URL:         req.URL,
		Filename:    desc.FinalFilename,
		MIMEType:    desc.FinalMIMEType,
		Cookie:      cookie,
		UserAgent:   userAgent,
		Description: "Downloading file...",
	})
	if err != nil {
		postToast(ctx, u.main, u.toaster, "Download failed", port.NotificationError)
		return nil, fmt.Errorf("enqueue transfer: %w", err)
	}

	postToast(ctx, u.main, u.toaster, "Downloading "+desc.FinalFilename, port.NotificationInfo)
	return &InterceptDownloadOutput{Descriptor: desc, TransferID: id}, nil
}

func (u *InterceptDownloadUseCase) refuse(ctx context.Context, req DownloadRequest) (*InterceptDownloadOutput, error) {
	scheme := download.Scheme(req.URL)
	message := "This download is not supported"
	if scheme == "data" {
		message = "Downloads from data: URLs are not supported"
	}
	postToast(ctx, u.main, u.toaster, message, port.NotificationWarning)

	out := &InterceptDownloadOutput{Descriptor: download.Descriptor{
		SourceURL:        req.URL,
		DeclaredMIMEType: req.MIMEType,
		Route:            download.RouteUnsupported,
	}}
	return out, fmt.Errorf("%w: %q", download.ErrUnsupportedScheme, scheme)
}

// dispositionFor returns the known Content-Disposition, or one synthesized
// from the render host's suggested filename.
func dispositionFor(req DownloadRequest) string {
	if req.ContentDisposition != "" || req.SuggestedFilename == "" {
		return req.ContentDisposition
	}
	return mime.FormatMediaType("attachment", map[string]string{"filename": req.SuggestedFilename})
}
