package download

import (
	"errors"
	"strings"
)

// ErrUnsupportedScheme is reported for downloads no route can persist.
var ErrUnsupportedScheme = errors.New("unsupported download scheme")

// Route is the persistence path chosen for a download.
type Route int

const (
	RouteUnsupported Route = iota
	// RouteBlob fetches the payload back through the page script.
	RouteBlob
	// RouteDirect hands the URL to the transfer manager.
	RouteDirect
)

func (r Route) String() string {
	switch r {
	case RouteBlob:
		return "blob"
	case RouteDirect:
		return "direct"
	default:
		return "unsupported"
	}
}

// directSchemes are the network schemes the transfer manager can fetch.
var directSchemes = map[string]bool{
	"http":  true,
	"https": true,
}

// Scheme returns the lower-cased scheme of rawURL, or "".
func Scheme(rawURL string) string {
	i := strings.IndexByte(rawURL, ':')
	if i <= 0 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(rawURL[:i]))
}

// Classify routes a download by the scheme of its source URL.
func Classify(rawURL string) Route {
	scheme := Scheme(rawURL)
	switch {
	case scheme == "blob":
		return RouteBlob
	case directSchemes[scheme]:
		return RouteDirect
	default:
		return RouteUnsupported
	}
}
