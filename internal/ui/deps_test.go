package ui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/webshell/internal/infrastructure/config"
)

func TestDependencies_Validate(t *testing.T) {
	var nilDeps *Dependencies
	require.Error(t, nilDeps.Validate())

	deps := &Dependencies{}
	err := deps.Validate()
	require.Error(t, err)
	assert.Equal(t, "missing required dependency: Ctx", err.Error())

	deps.Ctx = context.Background()
	err = deps.Validate()
	require.Error(t, err)

	var depErr DependencyError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, "Config", depErr.Name)
}

func TestDependencies_StartURL(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.App.StartURL = "https://app.example/"

	deps := &Dependencies{Config: cfg}
	assert.Equal(t, "https://app.example/", deps.StartURL())

	deps.InitialURL = "https://app.example/orders"
	assert.Equal(t, "https://app.example/orders", deps.StartURL())
}
