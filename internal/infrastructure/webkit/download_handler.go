package webkit

import (
	"context"
	"errors"
	"mime"
	"sync"

	"github.com/bnema/puregotk-webkit/webkit"
	"github.com/bnema/webshell/internal/application/usecase"
	"github.com/bnema/webshell/internal/domain/download"
	"github.com/bnema/webshell/internal/logging"
)

// DownloadInterceptor takes over downloads WebKit would otherwise store.
type DownloadInterceptor interface {
	Execute(ctx context.Context, req usecase.DownloadRequest) (*usecase.InterceptDownloadOutput, error)
}

// DownloadHandler cancels every WebKit download once its response is known
// and hands it to the interceptor. WebKit never writes to disk itself.
type DownloadHandler struct {
	intercept DownloadInterceptor
	userAgent func() string

	mu        sync.Mutex
	callbacks []interface{}
}

// NewDownloadHandler creates a new download handler. userAgent may be nil.
func NewDownloadHandler(intercept DownloadInterceptor, userAgent func() string) *DownloadHandler {
	return &DownloadHandler{intercept: intercept, userAgent: userAgent}
}

// HandleDownload connects the signals of a download that just started.
func (h *DownloadHandler) HandleDownload(ctx context.Context, dl *webkit.Download) {
	log := logging.FromContext(ctx)

	var intercepted bool

	decideDestCb := func(d webkit.Download, suggestedFilename string) bool {
		var uri, mimeType string
		var length uint64
		if req := d.GetRequest(); req != nil {
			uri = req.GetUri()
		}
		if resp := d.GetResponse(); resp != nil {
			mimeType = resp.GetMimeType()
			length = resp.GetContentLength()
			if name := resp.GetSuggestedFilename(); name != "" {
				suggestedFilename = name
			}
		}

		intercepted = true
		d.Cancel()

		var ua string
		if h.userAgent != nil {
			ua = h.userAgent()
		}
		req := buildDownloadRequest(uri, mimeType, suggestedFilename, ua, length)
		log.Debug().
			Str("uri", uri).
			Str("mime", mimeType).
			Str("suggested", suggestedFilename).
			Msg("download intercepted from webkit")

		go h.route(ctx, req)
		return true
	}
	dl.ConnectDecideDestination(&decideDestCb)

	failedCb := func(_ webkit.Download, _ uintptr) {
		if intercepted {
			return
		}
		log.Warn().Msg("webkit download failed before a destination was chosen")
	}
	dl.ConnectFailed(&failedCb)

	h.mu.Lock()
	h.callbacks = append(h.callbacks, decideDestCb, failedCb)
	h.mu.Unlock()
}

func (h *DownloadHandler) route(ctx context.Context, req usecase.DownloadRequest) {
	if h.intercept == nil {
		return
	}
	_, err := h.intercept.Execute(ctx, req)
	switch {
	case err == nil:
	case errors.Is(err, download.ErrUnsupportedScheme):
		logging.FromContext(ctx).Debug().Str("url", req.URL).Msg("download refused")
	default:
		logging.FromContext(ctx).Error().Err(err).Str("url", req.URL).Msg("failed to route download")
	}
}

// buildDownloadRequest describes an intercepted download. WebKit does not
// expose response headers, so the disposition is rebuilt from its filename.
func buildDownloadRequest(uri, mimeType, suggested, userAgent string, length uint64) usecase.DownloadRequest {
	req := usecase.DownloadRequest{
		URL:               uri,
		MIMEType:          mimeType,
		SuggestedFilename: suggested,
		UserAgent:         userAgent,
		ContentLength:     int64(length), //nolint:gosec // lengths beyond int64 do not occur
	}
	if suggested != "" {
		req.ContentDisposition = mime.FormatMediaType("attachment", map[string]string{"filename": suggested})
	}
	return req
}
