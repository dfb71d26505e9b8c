package port

import (
	"errors"
	"fmt"
)

// ErrInvalidWebKitOptions wraps every WebKitContextOptions.Validate failure.
var ErrInvalidWebKitOptions = errors.New("invalid webkit options")

// WebKitCookiePolicy is the session's cookie acceptance rule.
type WebKitCookiePolicy string

const (
	WebKitCookiePolicyAlways       WebKitCookiePolicy = "always"
	WebKitCookiePolicyNoThirdParty WebKitCookiePolicy = "no_third_party"
	WebKitCookiePolicyNever        WebKitCookiePolicy = "never"
)

// WebKitContextOptions describes the persistent network session.
type WebKitContextOptions struct {
	// DataDir holds cookies.db, local storage and IndexedDB.
	DataDir  string
	CacheDir string
	// CookiePolicy defaults to always when empty.
	CookiePolicy WebKitCookiePolicy
}

// Validate rejects missing directories and unknown cookie policies.
func (o WebKitContextOptions) Validate() error {
	switch {
	case o.DataDir == "":
		return fmt.Errorf("%w: data directory is empty", ErrInvalidWebKitOptions)
	case o.CacheDir == "":
		return fmt.Errorf("%w: cache directory is empty", ErrInvalidWebKitOptions)
	}
	switch o.CookiePolicy {
	case "", WebKitCookiePolicyAlways, WebKitCookiePolicyNoThirdParty, WebKitCookiePolicyNever:
		return nil
	default:
		return fmt.Errorf("%w: cookie policy %q", ErrInvalidWebKitOptions, o.CookiePolicy)
	}
}
