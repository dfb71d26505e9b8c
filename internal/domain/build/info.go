// Package build provides domain entities for build information.
package build

// Info holds build-time information injected via ldflags, plus the
// version pair reported to the hosted application.
type Info struct {
	Version     string
	VersionCode int
	Commit      string
	BuildDate   string
	GoVersion   string
}

// AppVersion is the payload answered to GET_APP_VERSION.
type AppVersion struct {
	VersionName string `json:"versionName"`
	VersionCode int    `json:"versionCode"`
}

// AppVersion returns the version pair exposed over the bridge.
func (i Info) AppVersion() AppVersion {
	return AppVersion{VersionName: i.Version, VersionCode: i.VersionCode}
}

// RepoURL returns the GitHub repository URL.
func RepoURL() string {
	return "https://github.com/bnema/webshell"
}
