// Package bootstrap assembles the long-lived services behind the window.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/webshell/internal/application/port"
	"github.com/bnema/webshell/internal/infrastructure/config"
	"github.com/bnema/webshell/internal/infrastructure/webkit"
	"github.com/bnema/webshell/internal/logging"
)

// WebKitStackInput holds the input for BuildWebKitStack.
type WebKitStackInput struct {
	Ctx    context.Context
	Config *config.Config
}

// WebKitStack is everything the window needs from WebKit before the view
// exists.
type WebKitStack struct {
	Context  *webkit.WebKitContext
	Settings *webkit.SettingsManager
	Injector *webkit.ContentInjector
	Session  *webkit.SessionStore
}

// BuildWebKitStack creates the persistent network session and the helpers
// configured against it.
func BuildWebKitStack(input WebKitStackInput) (*WebKitStack, error) {
	ctx := input.Ctx
	cfg := input.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	log := logging.FromContext(ctx)

	opts, err := buildWebKitContextOptions(cfg)
	if err != nil {
		return nil, err
	}
	wkCtx, err := webkit.NewWebKitContext(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("initialize webkit context: %w", err)
	}
	log.Debug().
		Str("data_dir", opts.DataDir).
		Str("cache_dir", opts.CacheDir).
		Str("cookie_policy", string(opts.CookiePolicy)).
		Msg("webkit context ready")

	return &WebKitStack{
		Context:  wkCtx,
		Settings: webkit.NewSettingsManager(ctx, cfg),
		Injector: webkit.NewContentInjector(cfg.Bridge.HandlerName, nil),
		Session:  webkit.NewSessionStore(wkCtx, nil),
	}, nil
}

// Close releases the session store, then the context.
func (s *WebKitStack) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.Session != nil {
		errs = append(errs, s.Session.Close())
	}
	if s.Context != nil {
		errs = append(errs, s.Context.Close())
	}
	return errors.Join(errs...)
}

func buildWebKitContextOptions(cfg *config.Config) (port.WebKitContextOptions, error) {
	opts := port.WebKitContextOptions{
		DataDir:      cfg.WebKit.DataDir,
		CacheDir:     cfg.WebKit.CacheDir,
		CookiePolicy: port.WebKitCookiePolicy(cfg.WebKit.CookiePolicy),
	}

	var err error
	if opts.DataDir == "" {
		if opts.DataDir, err = config.GetWebKitDataDir(); err != nil {
			return opts, fmt.Errorf("resolve webkit data directory: %w", err)
		}
	}
	if opts.CacheDir == "" {
		if opts.CacheDir, err = config.GetWebKitCacheDir(); err != nil {
			return opts, fmt.Errorf("resolve webkit cache directory: %w", err)
		}
	}
	return opts, opts.Validate()
}
