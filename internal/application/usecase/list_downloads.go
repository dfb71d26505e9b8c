package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/webshell/internal/domain/entity"
	"github.com/bnema/webshell/internal/domain/repository"
)

const defaultDownloadListLimit = 20

// ListDownloadsUseCase reads the download history.
type ListDownloadsUseCase struct {
	repo repository.DownloadRepository
}

// NewListDownloadsUseCase creates a new ListDownloadsUseCase.
func NewListDownloadsUseCase(repo repository.DownloadRepository) *ListDownloadsUseCase {
	return &ListDownloadsUseCase{repo: repo}
}

// Execute returns up to limit records, newest first. A non-positive limit
// uses the default.
func (u *ListDownloadsUseCase) Execute(ctx context.Context, limit int) ([]*entity.DownloadRecord, error) {
	if limit <= 0 {
		limit = defaultDownloadListLimit
	}
	records, err := u.repo.GetRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list downloads: %w", err)
	}
	return records, nil
}
