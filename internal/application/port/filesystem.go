package port

import "context"

// PathProber answers whether a destination is already taken.
type PathProber interface {
	Exists(ctx context.Context, path string) (bool, error)
}
