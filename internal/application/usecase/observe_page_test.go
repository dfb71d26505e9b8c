package usecase

import (
	"context"
	"errors"
	"testing"

	portmocks "github.com/bnema/webshell/internal/application/port/mocks"
	"github.com/bnema/webshell/internal/domain/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestObservePage_OnPageFinished(t *testing.T) {
	scripts := &recordingScripts{}
	uc := NewObservePageUseCase(scripts, portmocks.NewMockErrorDialog(t), &inlineMain{})

	uc.OnPageFinished(context.Background(), "https://app.example.com/")
	uc.OnPageFinished(context.Background(), "https://app.example.com/")

	require.Len(t, scripts.scripts, 2)
	assert.Equal(t, script.PageHook(), scripts.scripts[0])
}

func TestObservePage_OnLoadFailed(t *testing.T) {
	dialogs := portmocks.NewMockErrorDialog(t)
	main := &inlineMain{}
	uc := NewObservePageUseCase(&recordingScripts{}, dialogs, main)

	dialogs.EXPECT().
		ShowError(mock.Anything, "Error", "The page cannot be loaded: connection refused\nhttps://app.example.com/").
		Return()

	uc.OnLoadFailed(context.Background(), "https://app.example.com/", errors.New("connection refused"))

	assert.Equal(t, 1, main.posts)
}
