package usecase

import (
	"context"
	"errors"
	"testing"

	portmocks "github.com/bnema/webshell/internal/application/port/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLogout_ClearsThenFlushes(t *testing.T) {
	session := portmocks.NewMockSessionStore(t)
	var order []string
	session.EXPECT().ClearCookies(mock.Anything).
		RunAndReturn(func(context.Context) error { order = append(order, "clear"); return nil })
	session.EXPECT().FlushCookies(mock.Anything).
		RunAndReturn(func(context.Context) error { order = append(order, "flush"); return nil })

	require.NoError(t, NewLogoutUseCase(session).Execute(context.Background()))
	assert.Equal(t, []string{"clear", "flush"}, order)
}

func TestLogout_FlushesEvenWhenClearFails(t *testing.T) {
	session := portmocks.NewMockSessionStore(t)
	clearErr := errors.New("data manager busy")
	session.EXPECT().ClearCookies(mock.Anything).Return(clearErr)
	session.EXPECT().FlushCookies(mock.Anything).Return(nil)

	err := NewLogoutUseCase(session).Execute(context.Background())

	require.ErrorIs(t, err, clearErr)
}
