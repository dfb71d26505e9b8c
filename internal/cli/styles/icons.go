package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconGlobe     = "" // browser/web
	IconVersion   = "" // tag
	IconGitBranch = "" // git branch
	IconCalendar  = "" // calendar
	IconGithub    = "" // github
	IconGo        = "" // go gopher
	IconCheck     = "" // check
	IconX         = "" // x
	IconDownload  = "" // download
	IconFolder    = "" // folder
	IconConfig    = "" // config
)
