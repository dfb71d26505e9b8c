package sqlite

import (
	"context"

	"github.com/bnema/webshell/internal/application/port"
	"github.com/bnema/webshell/internal/domain/entity"
	"github.com/bnema/webshell/internal/domain/repository"
)

// lazyDownloadRepository resolves the connection on every call, so a
// database that failed to open can recover once the cause is fixed.
type lazyDownloadRepository struct {
	provider port.DatabaseProvider
}

// NewLazyDownloadRepository returns a download repository that opens the
// database through provider on first use.
func NewLazyDownloadRepository(provider port.DatabaseProvider) repository.DownloadRepository {
	return &lazyDownloadRepository{provider: provider}
}

func (r *lazyDownloadRepository) repo(ctx context.Context) (repository.DownloadRepository, error) {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, err
	}
	return NewDownloadRepository(db), nil
}

func (r *lazyDownloadRepository) Save(ctx context.Context, record *entity.DownloadRecord) error {
	repo, err := r.repo(ctx)
	if err != nil {
		return err
	}
	return repo.Save(ctx, record)
}

func (r *lazyDownloadRepository) GetRecent(ctx context.Context, limit int) ([]*entity.DownloadRecord, error) {
	repo, err := r.repo(ctx)
	if err != nil {
		return nil, err
	}
	return repo.GetRecent(ctx, limit)
}

func (r *lazyDownloadRepository) DeleteAll(ctx context.Context) error {
	repo, err := r.repo(ctx)
	if err != nil {
		return err
	}
	return repo.DeleteAll(ctx)
}
