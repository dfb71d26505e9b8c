package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/webshell/internal/domain/entity"
	repomocks "github.com/bnema/webshell/internal/domain/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListDownloads_DefaultLimit(t *testing.T) {
	repo := repomocks.NewMockDownloadRepository(t)
	want := []*entity.DownloadRecord{{ID: "1", Filename: "a.pdf"}}
	repo.EXPECT().GetRecent(mock.Anything, 20).Return(want, nil)

	got, err := NewListDownloadsUseCase(repo).Execute(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestListDownloads_WrapsError(t *testing.T) {
	repo := repomocks.NewMockDownloadRepository(t)
	dbErr := errors.New("database is locked")
	repo.EXPECT().GetRecent(mock.Anything, 5).Return(nil, dbErr)

	_, err := NewListDownloadsUseCase(repo).Execute(context.Background(), 5)

	require.ErrorIs(t, err, dbErr)
}
