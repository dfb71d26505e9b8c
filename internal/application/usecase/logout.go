package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/webshell/internal/application/port"
	"github.com/bnema/webshell/internal/logging"
)

// LogoutUseCase ends the web session by dropping its cookies.
type LogoutUseCase struct {
	session port.SessionStore
}

// NewLogoutUseCase creates a new LogoutUseCase.
func NewLogoutUseCase(session port.SessionStore) *LogoutUseCase {
	return &LogoutUseCase{session: session}
}

// Execute clears every cookie then flushes the store. The flush runs even
// when clearing fails so whatever was removed reaches disk.
func (u *LogoutUseCase) Execute(ctx context.Context) error {
	log := logging.FromContext(ctx)

	clearErr := u.session.ClearCookies(ctx)
	if clearErr != nil {
		clearErr = fmt.Errorf("clear cookies: %w", clearErr)
	}
	flushErr := u.session.FlushCookies(ctx)
	if flushErr != nil {
		flushErr = fmt.Errorf("flush cookies: %w", flushErr)
	}

	if err := errors.Join(clearErr, flushErr); err != nil {
		return err
	}
	log.Info().Msg("session cookies cleared")
	return nil
}
