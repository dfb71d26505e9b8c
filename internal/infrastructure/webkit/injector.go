package webkit

import (
	"context"

	"github.com/bnema/puregotk-webkit/webkit"
	"github.com/bnema/webshell/internal/domain/script"
	"github.com/bnema/webshell/internal/logging"
)

// ContentInjector installs the bridge shim into every top-level page.
type ContentInjector struct {
	handlerName string
	// allowList restricts injection to matching URIs; nil means every page.
	allowList []string
}

// NewContentInjector creates an injector for the given message handler.
func NewContentInjector(handlerName string, allowList []string) *ContentInjector {
	return &ContentInjector{handlerName: handlerName, allowList: allowList}
}

// Scripts returns the user scripts in injection order.
func (ci *ContentInjector) Scripts() []string {
	return []string{script.BridgeShim(ci.handlerName)}
}

// InjectScripts adds the user scripts to ucm at document start.
func (ci *ContentInjector) InjectScripts(ctx context.Context, ucm *webkit.UserContentManager) {
	log := logging.FromContext(ctx).With().Str("component", "content-injector").Logger()

	if ucm == nil {
		log.Warn().Msg("cannot inject scripts: user content manager is nil")
		return
	}

	for i, src := range ci.Scripts() {
		userScript := webkit.NewUserScript(
			src,
			webkit.UserContentInjectTopFrameValue,
			webkit.UserScriptInjectAtDocumentStartValue,
			ci.allowList,
			nil,
		)
		if userScript == nil {
			log.Warn().Int("index", i).Msg("failed to create user script")
			continue
		}
		ucm.AddScript(userScript)
	}

	log.Debug().Str("handler", ci.handlerName).Msg("bridge shim injected")
}
