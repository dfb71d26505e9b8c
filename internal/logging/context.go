package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// FromContext returns the logger carried by ctx, or a disabled one.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext attaches logger to ctx.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// WithComponent tags every event logged through ctx with component.
func WithComponent(ctx context.Context, component string) context.Context {
	return withField(ctx, "component", component)
}

// WithCallbackID tags events with the bridge callback they answer.
// An empty id leaves ctx untouched.
func WithCallbackID(ctx context.Context, callbackID string) context.Context {
	if callbackID == "" {
		return ctx
	}
	return withField(ctx, "callback_id", callbackID)
}

// WithURL tags events with the page or resource they concern.
func WithURL(ctx context.Context, url string) context.Context {
	return withField(ctx, "url", url)
}

func withField(ctx context.Context, key, value string) context.Context {
	return WithContext(ctx, FromContext(ctx).With().Str(key, value).Logger())
}
