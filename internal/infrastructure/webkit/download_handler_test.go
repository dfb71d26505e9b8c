package webkit

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/webshell/internal/application/usecase"
	"github.com/bnema/webshell/internal/domain/download"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingInterceptor struct {
	reqs []usecase.DownloadRequest
	err  error
}

func (r *recordingInterceptor) Execute(_ context.Context, req usecase.DownloadRequest) (*usecase.InterceptDownloadOutput, error) {
	r.reqs = append(r.reqs, req)
	return nil, r.err
}

func TestBuildDownloadRequest(t *testing.T) {
	t.Run("filename becomes an attachment disposition", func(t *testing.T) {
		req := buildDownloadRequest("https://app.local/export", "text/csv", "orders 2024.csv", "UA/1", 42)

		assert.Equal(t, "https://app.local/export", req.URL)
		assert.Equal(t, "text/csv", req.MIMEType)
		assert.Equal(t, "orders 2024.csv", req.SuggestedFilename)
		assert.Equal(t, `attachment; filename="orders 2024.csv"`, req.ContentDisposition)
		assert.Equal(t, "UA/1", req.UserAgent)
		assert.Equal(t, int64(42), req.ContentLength)
		assert.Equal(t, "orders 2024.csv", download.FilenameFromContentDisposition(req.ContentDisposition))
	})

	t.Run("no filename leaves disposition empty", func(t *testing.T) {
		req := buildDownloadRequest("blob:https://app.local/1", "", "", "", 0)
		assert.Empty(t, req.ContentDisposition)
	})
}

func TestDownloadHandler_Route(t *testing.T) {
	ctx := context.Background()

	t.Run("forwards request", func(t *testing.T) {
		rec := &recordingInterceptor{}
		h := NewDownloadHandler(rec, nil)

		h.route(ctx, usecase.DownloadRequest{URL: "https://app.local/a.pdf"})

		require.Len(t, rec.reqs, 1)
		assert.Equal(t, "https://app.local/a.pdf", rec.reqs[0].URL)
	})

	t.Run("refusal is not fatal", func(t *testing.T) {
		rec := &recordingInterceptor{err: download.ErrUnsupportedScheme}
		h := NewDownloadHandler(rec, nil)

		assert.NotPanics(t, func() { h.route(ctx, usecase.DownloadRequest{URL: "data:,x"}) })
		assert.Len(t, rec.reqs, 1)
	})

	t.Run("queue failure is logged", func(t *testing.T) {
		rec := &recordingInterceptor{err: errors.New("queue closed")}
		h := NewDownloadHandler(rec, nil)

		assert.NotPanics(t, func() { h.route(ctx, usecase.DownloadRequest{URL: "https://app.local/b"}) })
	})

	t.Run("nil interceptor", func(t *testing.T) {
		h := NewDownloadHandler(nil, nil)
		assert.NotPanics(t, func() { h.route(ctx, usecase.DownloadRequest{URL: "https://app.local/c"}) })
	})
}
