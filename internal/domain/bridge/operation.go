package bridge

import "fmt"

// Action is the string tag of an envelope.
type Action string

// The closed action set.
const (
	ActionLogout        Action = "LOGOUT"
	ActionExitApp       Action = "EXIT_APP"
	ActionShowToast     Action = "SHOW_TOAST"
	ActionErrorDialog   Action = "ERROR_DIALOG"
	ActionGetAppVersion Action = "GET_APP_VERSION"
	ActionDelayedWork   Action = "DELAYED_WORK"
	// ActionDownloadBlob is posted by the injected blob-fetch script only.
	ActionDownloadBlob Action = "DOWNLOAD_BLOB"
)

// Actions lists every known action.
func Actions() []Action {
	return []Action{
		ActionLogout,
		ActionExitApp,
		ActionShowToast,
		ActionErrorDialog,
		ActionGetAppVersion,
		ActionDelayedWork,
		ActionDownloadBlob,
	}
}

// Kind distinguishes operations that never answer from those that do.
type Kind int

const (
	KindFireAndForget Kind = iota
	KindRequestResponse
)

func (k Kind) String() string {
	if k == KindRequestResponse {
		return "request-response"
	}
	return "fire-and-forget"
}

// Operation is implemented only by the types in this package.
type Operation interface {
	Action() Action
	Kind() Kind
	sealed()
}

type (
	// Logout clears session cookies and flushes the cookie store.
	Logout struct{}
	// ExitApp terminates the foreground surface.
	ExitApp struct{}
	// ShowToast shows transient text.
	ShowToast struct{ Message string }
	// ErrorDialog shows a blocking modal error.
	ErrorDialog struct{ Message string }
	// GetAppVersion answers with the version pair.
	GetAppVersion struct{}
	// DelayedWork runs a simulated long task then answers {status:"done"}.
	DelayedWork struct{}
	// DownloadBlob carries a blob payload fetched back by the page script.
	DownloadBlob struct {
		Base64    string
		MIMEType  string
		Filename  string
		SourceURL string
	}
)

func (Logout) Action() Action        { return ActionLogout }
func (ExitApp) Action() Action       { return ActionExitApp }
func (ShowToast) Action() Action     { return ActionShowToast }
func (ErrorDialog) Action() Action   { return ActionErrorDialog }
func (GetAppVersion) Action() Action { return ActionGetAppVersion }
func (DelayedWork) Action() Action   { return ActionDelayedWork }
func (DownloadBlob) Action() Action  { return ActionDownloadBlob }

func (Logout) Kind() Kind        { return KindFireAndForget }
func (ExitApp) Kind() Kind       { return KindFireAndForget }
func (ShowToast) Kind() Kind     { return KindFireAndForget }
func (ErrorDialog) Kind() Kind   { return KindFireAndForget }
func (GetAppVersion) Kind() Kind { return KindRequestResponse }
func (DelayedWork) Kind() Kind   { return KindRequestResponse }
func (DownloadBlob) Kind() Kind  { return KindFireAndForget }

func (Logout) sealed()        {}
func (ExitApp) sealed()       {}
func (ShowToast) sealed()     {}
func (ErrorDialog) sealed()   {}
func (GetAppVersion) sealed() {}
func (DelayedWork) sealed()   {}
func (DownloadBlob) sealed()  {}

func newOperation(action Action, data map[string]any) (Operation, error) {
	switch action {
	case ActionLogout:
		return Logout{}, nil
	case ActionExitApp:
		return ExitApp{}, nil
	case ActionShowToast:
		return ShowToast{Message: stringField(data, "message")}, nil
	case ActionErrorDialog:
		return ErrorDialog{Message: stringField(data, "message")}, nil
	case ActionGetAppVersion:
		return GetAppVersion{}, nil
	case ActionDelayedWork:
		return DelayedWork{}, nil
	case ActionDownloadBlob:
		return DownloadBlob{
			Base64:    stringField(data, "base64"),
			MIMEType:  stringField(data, "mimeType"),
			Filename:  stringField(data, "filename"),
			SourceURL: stringField(data, "sourceUrl"),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, string(action))
	}
}
