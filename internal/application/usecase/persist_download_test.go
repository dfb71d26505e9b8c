package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bnema/webshell/internal/application/port"
	portmocks "github.com/bnema/webshell/internal/application/port/mocks"
	"github.com/bnema/webshell/internal/domain/download"
	"github.com/bnema/webshell/internal/domain/entity"
	repomocks "github.com/bnema/webshell/internal/domain/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type persistFixture struct {
	uc       *PersistDownloadUseCase
	store    *memStore
	main     *inlineMain
	toaster  *portmocks.MockToaster
	notifier *portmocks.MockDesktopNotifier
	history  *repomocks.MockDownloadRepository
}

func newPersistFixture(t *testing.T) *persistFixture {
	f := &persistFixture{
		store:    newMemStore(),
		main:     &inlineMain{},
		toaster:  portmocks.NewMockToaster(t),
		notifier: portmocks.NewMockDesktopNotifier(t),
		history:  repomocks.NewMockDownloadRepository(t),
	}
	f.uc = NewPersistDownloadUseCase(PersistDownloadDeps{
		Store:    f.store,
		Prepare:  NewPrepareDownloadUseCase(f.store),
		Notifier: f.notifier,
		Toaster:  f.toaster,
		Main:     f.main,
		History:  f.history,
	})
	f.uc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return f
}

func TestPersistDownload_StoresWithRegistryMIME(t *testing.T) {
	f := newPersistFixture(t)
	ctx := context.Background()

	f.toaster.EXPECT().Show(mock.Anything, "Downloaded photo.png", port.NotificationSuccess, 0).Return()
	f.notifier.EXPECT().
		NotifyFile(mock.Anything, port.FileNotice{
			Title:    "Download complete",
			Body:     "photo.png",
			Path:     "/home/user/Downloads/photo.png",
			MIMEType: "image/png",
		}).
		Return(nil)
	f.history.EXPECT().
		Save(mock.Anything, mock.MatchedBy(func(r *entity.DownloadRecord) bool {
			return r.Filename == "photo.png" && r.Route == "blob" && r.Size == int64(len(pngBytes)) && r.SourceURL == "blob:app/1"
		})).
		Return(nil)

	out, err := f.uc.Execute(ctx, PersistDownloadInput{
		Base64:    base64.StdEncoding.EncodeToString(pngBytes),
		MIMEType:  "text/plain",
		Filename:  "photo.png",
		SourceURL: "blob:app/1",
	})

	require.NoError(t, err)
	assert.Equal(t, "/home/user/Downloads/photo.png", out.Path)
	assert.Equal(t, "image/png", out.Descriptor.FinalMIMEType)
	assert.Equal(t, download.RouteBlob, out.Descriptor.Route)
	assert.Equal(t, pngBytes, f.store.files[out.Path])
	assert.Equal(t, 1, f.main.posts, "toast must go through the main thread")
}

func TestPersistDownload_GeneratesNameForNull(t *testing.T) {
	f := newPersistFixture(t)

	f.toaster.EXPECT().Show(mock.Anything, "Downloaded download_1700000000000.pdf", port.NotificationSuccess, 0).Return()
	f.notifier.EXPECT().NotifyFile(mock.Anything, mock.Anything).Return(errors.New("no notification daemon"))
	f.history.EXPECT().Save(mock.Anything, mock.Anything).Return(nil)

	out, err := f.uc.Execute(context.Background(), PersistDownloadInput{
		Base64:   base64.StdEncoding.EncodeToString([]byte("%PDF-1.7\n")),
		MIMEType: "application/pdf",
		Filename: "null",
	})

	require.NoError(t, err, "notification failures do not fail the download")
	assert.Equal(t, "download_1700000000000.pdf", out.Descriptor.FinalFilename)
	assert.Equal(t, "application/pdf", out.Descriptor.FinalMIMEType)
}

func TestPersistDownload_UniqueNameOnConflict(t *testing.T) {
	f := newPersistFixture(t)
	f.store.files["/home/user/Downloads/a.txt"] = []byte("old")

	f.toaster.EXPECT().Show(mock.Anything, "Downloaded a_(1).txt", port.NotificationSuccess, 0).Return()
	f.notifier.EXPECT().NotifyFile(mock.Anything, mock.Anything).Return(nil)
	f.history.EXPECT().Save(mock.Anything, mock.Anything).Return(nil)

	out, err := f.uc.Execute(context.Background(), PersistDownloadInput{
		Base64:   base64.StdEncoding.EncodeToString([]byte("new")),
		MIMEType: "text/plain",
		Filename: "a.txt",
	})

	require.NoError(t, err)
	assert.Equal(t, "/home/user/Downloads/a_(1).txt", out.Path)
	assert.Equal(t, []byte("old"), f.store.files["/home/user/Downloads/a.txt"])
}

func TestPersistDownload_RetriesWhenNameTakenConcurrently(t *testing.T) {
	f := newPersistFixture(t)
	f.store.taken = 1

	f.toaster.EXPECT().Show(mock.Anything, "Downloaded a_(1).txt", port.NotificationSuccess, 0).Return()
	f.notifier.EXPECT().NotifyFile(mock.Anything, mock.Anything).Return(nil)
	f.history.EXPECT().Save(mock.Anything, mock.Anything).Return(nil)

	out, err := f.uc.Execute(context.Background(), PersistDownloadInput{
		Base64:   base64.StdEncoding.EncodeToString([]byte("new")),
		MIMEType: "text/plain",
		Filename: "a.txt",
	})

	require.NoError(t, err)
	assert.Equal(t, "a_(1).txt", out.Descriptor.FinalFilename)
	assert.Equal(t, []byte("new"), f.store.files[out.Path])
}

func TestPersistDownload_InvalidPayload(t *testing.T) {
	f := newPersistFixture(t)
	f.toaster.EXPECT().Show(mock.Anything, "Download failed", port.NotificationError, 0).Return().Once()

	_, err := f.uc.Execute(context.Background(), PersistDownloadInput{Base64: "!!not base64!!", Filename: "x.bin"})

	require.ErrorIs(t, err, ErrDecodePayload)
	assert.Empty(t, f.store.files)
}

func TestPersistDownload_WriteFailure(t *testing.T) {
	f := newPersistFixture(t)
	f.store.writeErr = errors.New("disk full")
	f.toaster.EXPECT().Show(mock.Anything, "Download failed", port.NotificationError, 0).Return().Once()

	_, err := f.uc.Execute(context.Background(), PersistDownloadInput{
		Base64:   base64.StdEncoding.EncodeToString([]byte("x")),
		Filename: "x.bin",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestPersistDownload_OptionalCollaborators(t *testing.T) {
	store := newMemStore()
	uc := NewPersistDownloadUseCase(PersistDownloadDeps{Store: store})

	out, err := uc.Execute(context.Background(), PersistDownloadInput{
		Base64:   base64.StdEncoding.EncodeToString([]byte("hello")),
		Filename: "hello.txt",
	})

	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), store.files[out.Path])
}

func TestPersistDownload_EmitsFinishedEvent(t *testing.T) {
	store := newMemStore()
	events := portmocks.NewMockEventEmitter(t)
	uc := NewPersistDownloadUseCase(PersistDownloadDeps{Store: store, Events: events})

	events.EXPECT().
		Emit(mock.Anything, port.DownloadEventName, port.DownloadOutcome{
			Status:   port.DownloadStatusFinished,
			Route:    "blob",
			Filename: "report.pdf",
			Path:     "/home/user/Downloads/report.pdf",
			MIMEType: "application/pdf",
		}).
		Return(nil).Once()

	_, err := uc.Execute(context.Background(), PersistDownloadInput{
		Base64:   base64.StdEncoding.EncodeToString([]byte("%PDF-1.7 body")),
		MIMEType: "application/octet-stream",
		Filename: "report.pdf",
	})
	require.NoError(t, err)
}

func TestPersistDownload_EmitsFailedEvent(t *testing.T) {
	store := newMemStore()
	store.writeErr = errors.New("disk full")
	events := portmocks.NewMockEventEmitter(t)
	uc := NewPersistDownloadUseCase(PersistDownloadDeps{Store: store, Events: events})

	events.EXPECT().
		Emit(mock.Anything, port.DownloadEventName, mock.MatchedBy(func(o port.DownloadOutcome) bool {
			return o.Status == port.DownloadStatusFailed &&
				o.Route == "blob" &&
				o.Filename == "x.bin" &&
				o.Path == "" &&
				strings.Contains(o.Error, "disk full")
		})).
		Return(nil).Once()

	_, err := uc.Execute(context.Background(), PersistDownloadInput{
		Base64:   base64.StdEncoding.EncodeToString([]byte("x")),
		Filename: "x.bin",
	})
	require.Error(t, err)
}

func TestPersistDownload_EmitFailureIsNotFatal(t *testing.T) {
	store := newMemStore()
	events := portmocks.NewMockEventEmitter(t)
	uc := NewPersistDownloadUseCase(PersistDownloadDeps{Store: store, Events: events})
	events.EXPECT().Emit(mock.Anything, port.DownloadEventName, mock.Anything).Return(errors.New("encode")).Once()

	out, err := uc.Execute(context.Background(), PersistDownloadInput{
		Base64:   base64.StdEncoding.EncodeToString([]byte("hello")),
		Filename: "hello.txt",
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), store.files[out.Path])
}

func TestDecodePayload(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "padded", input: "aGVsbG8=", want: "hello"},
		{name: "unpadded", input: "aGVsbG8", want: "hello"},
		{name: "wrapped lines", input: "aGVs\nbG8=\r\n", want: "hello"},
		{name: "data url", input: "data:text/plain;base64,aGVsbG8=", want: "hello"},
		{name: "url alphabet", input: "-_-_", want: "\xfb\xff\xbf"},
		{name: "empty", input: "", want: ""},
		{name: "garbage", input: "@@@", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodePayload(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrDecodePayload)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}
